// Copyright 2026 Gustavo C. Viegas. All rights reserved.

// Package rtexture implements named GPU textures: image allocation,
// mipmap generation, layout transitions and sampler state, layered over
// driver.GPU/driver.Image the same way gpumem layers over driver.Buffer.
package rtexture

import (
	"errors"
	"math/bits"

	"github.com/kestrelgfx/forge/driver"
	"github.com/kestrelgfx/forge/gpumem"
	"github.com/kestrelgfx/forge/memtag"
)

// ErrInvalidLayoutTransition is returned by Texture operations that would
// require a layout transition the package's transition table does not
// support; it is driver.ErrInvalidLayoutTransition itself.
var ErrInvalidLayoutTransition = driver.ErrInvalidLayoutTransition

// ErrNotSupported means the image's format does not support the requested
// operation (e.g. linear blit for mipmap generation).
var ErrNotSupported = errors.New("rtexture: format does not support operation")

// Flags describe the fixed characteristics of a Texture, set at creation
// time.
type Flags int

const (
	// Wrapped textures are backed by an image whose memory is owned
	// elsewhere (typically the swapchain); they own no device memory
	// and Destroy/Resize are no-ops on them.
	Wrapped Flags = 1 << iota
	Writable
	RenderTarget
	Multisampled
)

// Texture is a GPU-resident image addressable by a stable name.
type Texture struct {
	Name string

	Width, Height int
	Channels      int
	MipLevels     int
	Format        driver.PixelFmt
	Aspect        driver.ViewType
	Samples       int
	Usage         driver.Usage
	Flags         Flags

	gpu     driver.GPU
	image   driver.Image
	view    driver.ImageView
	written bool
}

// MipLevels returns floor(log2(max(w,h))) + 1 property 7
// and its literal mipmap-derivation scenario (1024x512 -> 11 levels).
func MipLevels(w, h int) int {
	m := w
	if h > m {
		m = h
	}
	if m <= 0 {
		return 1
	}
	return bits.Len(uint(m))
}

// New allocates a new device image and a full 2D view over it. samples>1
// marks the texture Multisampled; usg must include driver.UShaderSample
// for the texture to be sampled in shaders.
func New(gpu driver.GPU, name string, width, height int, mips bool, samples int, format driver.PixelFmt, usg driver.Usage) (*Texture, error) {
	levels := 1
	if mips {
		levels = MipLevels(width, height)
	}
	if samples < 1 {
		samples = 1
	}
	dim := driver.Dim3D{Width: width, Height: height, Depth: 1}
	img, err := gpu.NewImage(format, dim, 1, levels, samples, usg)
	if err != nil {
		return nil, err
	}
	view, err := img.NewView(driver.IView2D, 0, 1, 0, levels)
	if err != nil {
		img.Destroy()
		return nil, err
	}
	var flags Flags
	if usg&driver.UShaderWrite != 0 {
		flags |= Writable
	}
	if usg&driver.URenderTarget != 0 {
		flags |= RenderTarget
	}
	if samples > 1 {
		flags |= Multisampled
	}
	memtag.Alloc(memtag.Texture, int64(width)*int64(height)*4)
	return &Texture{
		Name: name, Width: width, Height: height, MipLevels: levels,
		Format: format, Samples: samples, Usage: usg, Flags: flags,
		gpu: gpu, image: img, view: view,
	}, nil
}

// Wrap creates a Texture view over an image whose memory is owned
// elsewhere, typically one of the
// swapchain's presentable images. A wrapped Texture owns no memory: Resize
// and Destroy are no-ops.
func Wrap(name string, view driver.ImageView, width, height int, format driver.PixelFmt) *Texture {
	return &Texture{
		Name: name, Width: width, Height: height, MipLevels: 1,
		Format: format, Samples: 1, Flags: Wrapped, view: view,
	}
}

// Rewrap points a wrapped texture at a new backing view, after the
// swapchain that owns the underlying image is recreated. It is a no-op on
// textures that own their image.
func (t *Texture) Rewrap(view driver.ImageView, width, height int) {
	if t.Flags&Wrapped == 0 {
		return
	}
	t.view = view
	t.Width, t.Height = width, height
}

// View returns the texture's full image view, for use as a render target
// attachment or a shader-sampled resource.
func (t *Texture) View() driver.ImageView { return t.view }

// Image returns the underlying driver.Image, or nil for a wrapped
// texture.
func (t *Texture) Image() driver.Image { return t.image }

// Destroy releases the texture's view and backing image. It is a no-op on
// wrapped textures.
func (t *Texture) Destroy() {
	if t == nil || t.Flags&Wrapped != 0 {
		return
	}
	if t.view != nil {
		t.view.Destroy()
		t.view = nil
	}
	if t.Flags&Wrapped == 0 && t.image != nil {
		t.image.Destroy()
		t.image = nil
		memtag.Free(memtag.Texture, int64(t.Width)*int64(t.Height)*4)
	}
}

// Resize destroys the backing image and reallocates one with the same
// format and mip policy at the new dimensions. It is a no-op on wrapped
// textures
func (t *Texture) Resize(width, height int) error {
	if t.Flags&Wrapped != 0 {
		return nil
	}
	mips := t.MipLevels > 1
	usg := t.Usage
	nt, err := New(t.gpu, t.Name, width, height, mips, t.Samples, t.Format, usg)
	if err != nil {
		return err
	}
	t.Destroy()
	*t = *nt
	return nil
}
