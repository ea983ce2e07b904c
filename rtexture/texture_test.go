// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package rtexture

import (
	"testing"

	"github.com/kestrelgfx/forge/driver"
)

// fakeImageView is a no-op driver.ImageView used to exercise rtexture
// without a real GPU.
type fakeImageView struct{ destroyed bool }

func (v *fakeImageView) Destroy() { v.destroyed = true }

// fakeImage is a minimal driver.Image that hands out fakeImageViews and
// records how many it has created.
type fakeImage struct {
	views     int
	destroyed bool
}

func (i *fakeImage) Destroy() { i.destroyed = true }
func (i *fakeImage) NewView(typ driver.ViewType, layer, layers, level, levels int) (driver.ImageView, error) {
	i.views++
	return &fakeImageView{}, nil
}

// fakeSampler is a no-op driver.Sampler.
type fakeSampler struct{ destroyed bool }

func (s *fakeSampler) Destroy() { s.destroyed = true }

// fakeGPU implements driver.GPU, panicking on every method rtexture
// doesn't exercise.
type fakeGPU struct{}

func (fakeGPU) Driver() driver.Driver                         { panic("unused") }
func (fakeGPU) Commit(cb []driver.CmdBuffer, ch chan<- error) { panic("unused") }
func (fakeGPU) NewCmdBuffer() (driver.CmdBuffer, error)       { panic("unused") }
func (fakeGPU) NewRenderPass(att []driver.Attachment, sub []driver.Subpass) (driver.RenderPass, error) {
	panic("unused")
}
func (fakeGPU) NewShaderCode(data []byte) (driver.ShaderCode, error) { panic("unused") }
func (fakeGPU) NewDescHeap(ds []driver.Descriptor) (driver.DescHeap, error) {
	panic("unused")
}
func (fakeGPU) NewDescTable(dh []driver.DescHeap) (driver.DescTable, error) {
	panic("unused")
}
func (fakeGPU) NewPipeline(state any) (driver.Pipeline, error) { panic("unused") }
func (fakeGPU) NewBuffer(size int64, visible bool, usg driver.Usage) (driver.Buffer, error) {
	return &fakeBuffer{b: make([]byte, size)}, nil
}

// fakeBuffer is a host-visible driver.Buffer backed by a Go slice, used
// for Write's staging buffer.
type fakeBuffer struct{ b []byte }

func (*fakeBuffer) Destroy()         {}
func (*fakeBuffer) Visible() bool    { return true }
func (f *fakeBuffer) Bytes() []byte  { return f.b }
func (f *fakeBuffer) Cap() int64     { return int64(len(f.b)) }
func (fakeGPU) NewImage(pf driver.PixelFmt, size driver.Dim3D, layers, levels, samples int, usg driver.Usage) (driver.Image, error) {
	return &fakeImage{}, nil
}
func (fakeGPU) NewSampler(spln *driver.Sampling) (driver.Sampler, error) {
	return &fakeSampler{}, nil
}
func (fakeGPU) Limits() driver.Limits { panic("unused") }

func TestMipLevels(t *testing.T) {
	cases := []struct{ w, h, want int }{
		{1024, 512, 11},
		{1, 1, 1},
		{1, 1024, 11},
		{256, 256, 9},
		{3, 3, 2},
	}
	for _, c := range cases {
		if got := MipLevels(c.w, c.h); got != c.want {
			t.Errorf("MipLevels(%d, %d) = %d, want %d", c.w, c.h, got, c.want)
		}
	}
}

func TestNewComputesMipLevels(t *testing.T) {
	tex, err := New(fakeGPU{}, "t", 1024, 512, true, 1, driver.RGBA8un, driver.UShaderSample)
	if err != nil {
		t.Fatal(err)
	}
	defer tex.Destroy()
	if tex.MipLevels != 11 {
		t.Fatalf("MipLevels = %d, want 11", tex.MipLevels)
	}
}

func TestNewWithoutMipsHasOneLevel(t *testing.T) {
	tex, err := New(fakeGPU{}, "t", 1024, 512, false, 1, driver.RGBA8un, driver.UShaderSample)
	if err != nil {
		t.Fatal(err)
	}
	defer tex.Destroy()
	if tex.MipLevels != 1 {
		t.Fatalf("MipLevels = %d, want 1", tex.MipLevels)
	}
}

func TestWrapResizeIsNoop(t *testing.T) {
	tex := Wrap("swapchain", &fakeImageView{}, 800, 600, driver.BGRA8un)
	if err := tex.Resize(1920, 1080); err != nil {
		t.Fatal(err)
	}
	if tex.Width != 800 || tex.Height != 600 {
		t.Fatalf("Resize mutated a wrapped texture: %dx%d", tex.Width, tex.Height)
	}
}

func TestDestroyWrappedKeepsImage(t *testing.T) {
	img := &fakeImage{}
	view, _ := img.NewView(driver.IView2D, 0, 1, 0, 1)
	tex := Wrap("swapchain", view, 800, 600, driver.BGRA8un)
	tex.Destroy()
	if img.destroyed {
		t.Fatal("Destroy on a wrapped texture destroyed the underlying image")
	}
}
