// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package rpass

import (
	"testing"

	"github.com/kestrelgfx/forge/driver"
	"github.com/kestrelgfx/forge/rtexture"
)

type fakeImageView struct{}

func (fakeImageView) Destroy() {}

type fakeImage struct{}

func (fakeImage) Destroy() {}
func (fakeImage) NewView(typ driver.ViewType, layer, layers, level, levels int) (driver.ImageView, error) {
	return fakeImageView{}, nil
}

type fakeFramebuf struct{ destroyed bool }

func (f *fakeFramebuf) Destroy() { f.destroyed = true }

type fakeRenderPass struct {
	att []driver.Attachment
	sub []driver.Subpass
}

func (*fakeRenderPass) Destroy() {}
func (*fakeRenderPass) NewFB(iv []driver.ImageView, width, height, layers int) (driver.Framebuf, error) {
	return &fakeFramebuf{}, nil
}

type fakeGPU struct{}

func (fakeGPU) Driver() driver.Driver                         { panic("unused") }
func (fakeGPU) Commit(cb []driver.CmdBuffer, ch chan<- error) { panic("unused") }
func (fakeGPU) NewCmdBuffer() (driver.CmdBuffer, error)       { panic("unused") }
func (fakeGPU) NewRenderPass(att []driver.Attachment, sub []driver.Subpass) (driver.RenderPass, error) {
	return &fakeRenderPass{att: att, sub: sub}, nil
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
	panic("unused")
}
func (fakeGPU) NewImage(pf driver.PixelFmt, size driver.Dim3D, layers, levels, samples int, usg driver.Usage) (driver.Image, error) {
	return fakeImage{}, nil
}
func (fakeGPU) NewSampler(spln *driver.Sampling) (driver.Sampler, error) { panic("unused") }
func (fakeGPU) Limits() driver.Limits                                   { panic("unused") }

func newColorTarget(t *testing.T, w, h int) *RenderTarget {
	t.Helper()
	tex, err := rtexture.New(fakeGPU{}, "color", w, h, false, 1, driver.RGBA8un, driver.URenderTarget)
	if err != nil {
		t.Fatal(err)
	}
	return NewRenderTarget(w, h, []*Attachment{{Texture: tex}}, SyncNone)
}

func TestGraphFirstPassInitializesAttachments(t *testing.T) {
	p := NewPass(fakeGPU{}, 0, Config{Name: "gbuffer", ColorOutput: true})
	p.AddRenderTarget(newColorTarget(t, 800, 600))

	g := NewGraph()
	if err := g.Add(p).Clear("C").Finish(); err != nil {
		t.Fatal(err)
	}
	if !p.InitColor {
		t.Fatal("first pass's InitColor should remain true")
	}
}

func TestGraphReusedAttachmentDisablesInit(t *testing.T) {
	rt := newColorTarget(t, 800, 600)

	p1 := NewPass(fakeGPU{}, 0, Config{Name: "gbuffer", ColorOutput: true})
	p1.AddRenderTarget(rt)
	p2 := NewPass(fakeGPU{}, 1, Config{Name: "lighting", ColorOutput: true})
	p2.AddRenderTarget(rt)

	g := NewGraph()
	if err := g.Add(p1).Clear("C").Add(p2).Finish(); err != nil {
		t.Fatal(err)
	}
	if p2.InitColor {
		t.Fatal("second pass reusing the same attachment should have InitColor == false")
	}
	if p2.Prev != "gbuffer" || p1.Next != "lighting" {
		t.Fatalf("prev/next links not set: p1.Next=%q p2.Prev=%q", p1.Next, p2.Prev)
	}
}

func TestGraphClearFlagsCarryToNextPass(t *testing.T) {
	p1 := NewPass(fakeGPU{}, 0, Config{Name: "a", ColorOutput: true})
	p1.AddRenderTarget(newColorTarget(t, 64, 64))
	p2 := NewPass(fakeGPU{}, 1, Config{Name: "b", ColorOutput: true})
	p2.AddRenderTarget(newColorTarget(t, 64, 64))

	g := NewGraph()
	if err := g.Add(p1).Add(p2).Clear("CD").Finish(); err != nil {
		t.Fatal(err)
	}
	if p2.ClearFlags != 0 {
		t.Fatalf("clear flags accumulated after the final Add should not retroactively apply to p2, got %v", p2.ClearFlags)
	}
}

func TestGraphClearFlagsOnFirstPass(t *testing.T) {
	// start >> "CDS" >> gpass >> "C" >> ao >> finish: flags queued
	// before the first Add land on that first pass, the next token on
	// the second, and the chain links follow the Add order.
	gpass := NewPass(fakeGPU{}, 0, Config{Name: "gpass", ColorOutput: true})
	gpass.AddRenderTarget(newColorTarget(t, 64, 64))
	ao := NewPass(fakeGPU{}, 1, Config{Name: "ao", ColorOutput: true})
	ao.AddRenderTarget(newColorTarget(t, 64, 64))

	g := NewGraph()
	if err := g.Clear("CDS").Add(gpass).Clear("C").Add(ao).Finish(); err != nil {
		t.Fatal(err)
	}
	if gpass.ClearFlags != ClearColor|ClearDepth|ClearStencil {
		t.Fatalf("gpass.ClearFlags = %v, want C|D|S", gpass.ClearFlags)
	}
	if ao.ClearFlags != ClearColor {
		t.Fatalf("ao.ClearFlags = %v, want C", ao.ClearFlags)
	}
	if gpass.Next != "ao" || ao.Prev != "gpass" {
		t.Fatalf("links: gpass.Next=%q ao.Prev=%q", gpass.Next, ao.Prev)
	}
}

func TestParseClearFlags(t *testing.T) {
	f := ParseClearFlags("CDS")
	if f&ClearColor == 0 || f&ClearDepth == 0 || f&ClearStencil == 0 {
		t.Fatalf("ParseClearFlags(CDS) = %v, want all three bits set", f)
	}
	if ParseClearFlags("") != 0 {
		t.Fatal("ParseClearFlags(\"\") should be 0")
	}
}
