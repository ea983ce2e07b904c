// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package system

import (
	"testing"

	"github.com/kestrelgfx/forge/driver"
)

// The fakes below exercise Textures end to end (NewTextures, Acquire,
// Release) without a real GPU, following the same fakeGPU-panics-on-unused
// shape rtexture's own tests use.

type fakeImageView struct{ destroyed bool }

func (v *fakeImageView) Destroy() { v.destroyed = true }

type fakeImage struct{ destroyed bool }

func (i *fakeImage) Destroy() { i.destroyed = true }
func (i *fakeImage) NewView(typ driver.ViewType, layer, layers, level, levels int) (driver.ImageView, error) {
	return &fakeImageView{}, nil
}

type fakeSampler struct{ destroyed bool }

func (s *fakeSampler) Destroy() { s.destroyed = true }

type fakeBuffer struct {
	bytes     []byte
	destroyed bool
}

func (b *fakeBuffer) Destroy()        { b.destroyed = true }
func (b *fakeBuffer) Visible() bool   { return true }
func (b *fakeBuffer) Bytes() []byte   { return b.bytes }
func (b *fakeBuffer) Cap() int64      { return int64(len(b.bytes)) }

type fakeCmdBuffer struct{ destroyed bool }

func (c *fakeCmdBuffer) Destroy()                                           { c.destroyed = true }
func (c *fakeCmdBuffer) Begin() error                                       { return nil }
func (c *fakeCmdBuffer) BeginPass(pass driver.RenderPass, fb driver.Framebuf, clear []driver.ClearValue) {
	panic("unused")
}
func (c *fakeCmdBuffer) NextSubpass()                                    { panic("unused") }
func (c *fakeCmdBuffer) EndPass()                                        { panic("unused") }
func (c *fakeCmdBuffer) BeginWork(wait bool)                             { panic("unused") }
func (c *fakeCmdBuffer) EndWork()                                        { panic("unused") }
func (c *fakeCmdBuffer) BeginBlit(wait bool)                             {}
func (c *fakeCmdBuffer) EndBlit()                                        {}
func (c *fakeCmdBuffer) SetPipeline(pl driver.Pipeline)                  { panic("unused") }
func (c *fakeCmdBuffer) SetViewport(vp []driver.Viewport)                { panic("unused") }
func (c *fakeCmdBuffer) SetScissor(s []driver.Scissor)                   { panic("unused") }
func (c *fakeCmdBuffer) SetBlendColor(r, g, b, a float32)                { panic("unused") }
func (c *fakeCmdBuffer) SetStencilRef(value uint32)                      { panic("unused") }
func (c *fakeCmdBuffer) SetVertexBuf(start int, buf []driver.Buffer, off []int64) {
	panic("unused")
}
func (c *fakeCmdBuffer) SetIndexBuf(format driver.IndexFmt, buf driver.Buffer, off int64) {
	panic("unused")
}
func (c *fakeCmdBuffer) SetDescTableGraph(table driver.DescTable, start int, heapCopy []int) {
	panic("unused")
}
func (c *fakeCmdBuffer) SetDescTableComp(table driver.DescTable, start int, heapCopy []int) {
	panic("unused")
}
func (c *fakeCmdBuffer) Draw(vertCount, instCount, baseVert, baseInst int) { panic("unused") }
func (c *fakeCmdBuffer) DrawIndexed(idxCount, instCount, baseIdx, vertOff, baseInst int) {
	panic("unused")
}
func (c *fakeCmdBuffer) Dispatch(x, y, z int)                 { panic("unused") }
func (c *fakeCmdBuffer) CopyBuffer(param *driver.BufferCopy)  { panic("unused") }
func (c *fakeCmdBuffer) CopyImage(param *driver.ImageCopy)    { panic("unused") }
func (c *fakeCmdBuffer) CopyBufToImg(param *driver.BufImgCopy) {}
func (c *fakeCmdBuffer) CopyImgToBuf(param *driver.BufImgCopy) { panic("unused") }
func (c *fakeCmdBuffer) BlitImage(param *driver.ImageBlit, filter driver.Filter) {}
func (c *fakeCmdBuffer) Fill(buf driver.Buffer, off int64, value byte, size int64) {
	panic("unused")
}
func (c *fakeCmdBuffer) Barrier(b []driver.Barrier)         {}
func (c *fakeCmdBuffer) Transition(t []driver.Transition)   {}
func (c *fakeCmdBuffer) End() error                         { return nil }
func (c *fakeCmdBuffer) Reset() error                       { panic("unused") }

type fakeGPU struct{}

func (fakeGPU) Driver() driver.Driver { panic("unused") }
func (fakeGPU) Commit(cb []driver.CmdBuffer, ch chan<- error) { ch <- nil }
func (fakeGPU) NewCmdBuffer() (driver.CmdBuffer, error)       { return &fakeCmdBuffer{}, nil }
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
	return &fakeBuffer{bytes: make([]byte, size)}, nil
}
func (fakeGPU) NewImage(pf driver.PixelFmt, size driver.Dim3D, layers, levels, samples int, usg driver.Usage) (driver.Image, error) {
	return &fakeImage{}, nil
}
func (fakeGPU) NewSampler(spln *driver.Sampling) (driver.Sampler, error) {
	return &fakeSampler{}, nil
}
func (fakeGPU) Limits() driver.Limits { return driver.Limits{UBOAlignment: 256, MaxAnisotropy: 16} }

func TestNewTexturesBuildsDefault(t *testing.T) {
	ts, err := NewTextures(fakeGPU{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if ts.Default() == nil {
		t.Fatal("Default() returned nil")
	}
	if got := ts.cache.refCount(DefaultTextureName); got != 1 {
		t.Fatalf("default refCount = %d, want 1", got)
	}
}

func TestTexturesAcquireInvalidNameReturnsDefault(t *testing.T) {
	ts, err := NewTextures(fakeGPU{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	tex, err := ts.Acquire("")
	if err != nil {
		t.Fatalf("Acquire(\"\") returned error %v, want graceful default", err)
	}
	if tex != ts.Default() {
		t.Fatal("Acquire(\"\") did not return the default texture")
	}
}

func TestTexturesAcquireOverlongNameReturnsDefault(t *testing.T) {
	ts, err := NewTextures(fakeGPU{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	// An overlong name is rejected by validName before ever reaching the
	// (here nil) resource system.
	long := make([]byte, maxNameLen+1)
	for i := range long {
		long[i] = 'a'
	}
	tex, err := ts.Acquire(string(long))
	if err != nil {
		t.Fatalf("Acquire(overlong) returned error %v, want graceful default", err)
	}
	if tex != ts.Default() {
		t.Fatal("Acquire(overlong) did not return the default texture")
	}
}

func TestTexturesReleaseDefaultNeverDestroys(t *testing.T) {
	ts, err := NewTextures(fakeGPU{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	ts.Acquire("")
	ts.Release(DefaultTextureName)
	if ts.Default().Image() == nil {
		t.Fatal("Release destroyed the default texture")
	}
}
