// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package system

import (
	"fmt"

	"github.com/kestrelgfx/forge/driver"
	"github.com/kestrelgfx/forge/gpumem"
	"github.com/kestrelgfx/forge/internal/log"
	"github.com/kestrelgfx/forge/resource"
	"github.com/kestrelgfx/forge/rtexture"
)

// DefaultTextureName is the name of the built-in default texture, never
// auto-released, substituted whenever an Acquire fails or a material's
// map name is empty.
const DefaultTextureName = "default"

// Textures is the named, reference-counted texture cache.
type Textures struct {
	gpu   driver.GPU
	res   *resource.System
	cache *refcache[*rtexture.Texture]
	def   *rtexture.Texture
}

// NewTextures creates a texture system backed by res for resolving named
// textures, and builds the built-in default texture (a 2x2 magenta/black
// checkerboard, the conventional "missing texture" pattern).
func NewTextures(gpu driver.GPU, res *resource.System) (*Textures, error) {
	t := &Textures{gpu: gpu, res: res, cache: newRefcache[*rtexture.Texture]()}
	def, err := buildDefaultTexture(gpu)
	if err != nil {
		return nil, fmt.Errorf("system: building default texture: %w", err)
	}
	t.def = def
	t.cache.insert(DefaultTextureName, def, false)
	return t, nil
}

// Default returns the built-in default texture.
func (t *Textures) Default() *rtexture.Texture { return t.def }

// Acquire loads (or returns the already-cached) texture named name,
// incrementing its reference count. An overlong name, or any load
// failure, is logged and gracefully degrades to the default texture
// rather than propagating the error/§7.
func (t *Textures) Acquire(name string) (*rtexture.Texture, error) {
	if !validName(name) {
		log.Warnf(logPrefix, "texture %q: invalid name, using default", name)
		return t.acquireDefault(), nil
	}
	tex, err := t.cache.acquire(name, true, func() (*rtexture.Texture, error) {
		return t.load(name)
	})
	if err != nil {
		log.Warnf(logPrefix, "texture %q: %v, using default", name, err)
		return t.acquireDefault(), nil
	}
	return tex, nil
}

// acquireDefault increments the default texture's reference count (purely
// for bookkeeping symmetry: it is never destroyed) and returns it.
func (t *Textures) acquireDefault() *rtexture.Texture {
	tex, _ := t.cache.acquire(DefaultTextureName, false, func() (*rtexture.Texture, error) {
		return t.def, nil
	})
	return tex
}

// Release decrements name's reference count, destroying the GPU-side
// texture if it reaches zero and the texture was not a built-in default.
func (t *Textures) Release(name string) {
	tex, destroy := t.cache.release(name)
	if destroy {
		tex.Destroy()
	}
}

func (t *Textures) load(name string) (*rtexture.Texture, error) {
	res, err := t.res.Load(resource.Image, name)
	if err != nil {
		return nil, err
	}
	img := res.Data.(*resource.ImageData)

	tex, err := rtexture.New(t.gpu, name, img.Width, img.Height, true, 1, driver.RGBA8un,
		driver.UShaderSample|driver.UShaderWrite)
	if err != nil {
		return nil, err
	}

	var staging *gpumem.Buffer
	err = oneShotBlit(t.gpu, func(cb driver.CmdBuffer) error {
		var werr error
		staging, werr = tex.Write(cb, img.Pix, len(img.Pix), 0)
		return werr
	})
	if staging != nil {
		staging.Destroy()
	}
	if err != nil {
		tex.Destroy()
		return nil, err
	}
	return tex, nil
}

// buildDefaultTexture creates a small built-in texture that never needs a
// resource-system load: a 2x2 magenta/black checkerboard, the conventional
// "missing texture" placeholder.
func buildDefaultTexture(gpu driver.GPU) (*rtexture.Texture, error) {
	tex, err := rtexture.New(gpu, DefaultTextureName, 2, 2, false, 1, driver.RGBA8un,
		driver.UShaderSample|driver.UShaderWrite)
	if err != nil {
		return nil, err
	}
	pix := []byte{
		255, 0, 255, 255, 0, 0, 0, 255,
		0, 0, 0, 255, 255, 0, 255, 255,
	}
	var staging *gpumem.Buffer
	err = oneShotBlit(gpu, func(cb driver.CmdBuffer) error {
		var werr error
		staging, werr = tex.Write(cb, pix, len(pix), 0)
		return werr
	})
	if staging != nil {
		staging.Destroy()
	}
	if err != nil {
		tex.Destroy()
		return nil, err
	}
	return tex, nil
}

// oneShotBlit records fn inside a one-time command buffer's data-transfer
// block and submits it, blocking until the GPU has finished executing it,
// following the same Begin/record/End/Commit-and-wait shape the backend's
// own one-shot image-layout transition uses (driver/vk's image.transition).
func oneShotBlit(gpu driver.GPU, fn func(cb driver.CmdBuffer) error) error {
	cb, err := gpu.NewCmdBuffer()
	if err != nil {
		return err
	}
	defer cb.Destroy()

	if err := cb.Begin(); err != nil {
		return err
	}
	cb.BeginBlit(true)
	if err := fn(cb); err != nil {
		return err
	}
	cb.EndBlit()
	if err := cb.End(); err != nil {
		return err
	}

	ch := make(chan error, 1)
	gpu.Commit([]driver.CmdBuffer{cb}, ch)
	return <-ch
}
