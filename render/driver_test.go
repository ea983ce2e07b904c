// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package render

import (
	"errors"
	"testing"
	"time"

	"github.com/kestrelgfx/forge/driver"
	"github.com/kestrelgfx/forge/rpass"
	"github.com/kestrelgfx/forge/wsi"
)

// The fakes below record the call sequence the frame driver issues so the
// tests can assert ordering without a GPU.

type fakeCmdBuffer struct {
	log   *[]string
	begun bool
}

func (c *fakeCmdBuffer) Destroy()      {}
func (c *fakeCmdBuffer) Begin() error  { c.begun = true; *c.log = append(*c.log, "begin"); return nil }
func (c *fakeCmdBuffer) BeginPass(driver.RenderPass, driver.Framebuf, []driver.ClearValue) {
	*c.log = append(*c.log, "beginPass")
}
func (c *fakeCmdBuffer) NextSubpass() {}
func (c *fakeCmdBuffer) EndPass()     { *c.log = append(*c.log, "endPass") }
func (c *fakeCmdBuffer) BeginWork(bool) {}
func (c *fakeCmdBuffer) EndWork()       {}
func (c *fakeCmdBuffer) BeginBlit(bool) {}
func (c *fakeCmdBuffer) EndBlit()       {}
func (c *fakeCmdBuffer) SetPipeline(driver.Pipeline) {}
func (c *fakeCmdBuffer) SetViewport(vp []driver.Viewport) {
	*c.log = append(*c.log, "viewport")
}
func (c *fakeCmdBuffer) SetScissor([]driver.Scissor)       { *c.log = append(*c.log, "scissor") }
func (c *fakeCmdBuffer) SetBlendColor(_, _, _, _ float32)  {}
func (c *fakeCmdBuffer) SetStencilRef(uint32)              {}
func (c *fakeCmdBuffer) SetVertexBuf(int, []driver.Buffer, []int64) {}
func (c *fakeCmdBuffer) SetIndexBuf(driver.IndexFmt, driver.Buffer, int64) {}
func (c *fakeCmdBuffer) SetDescTableGraph(driver.DescTable, int, []int)    {}
func (c *fakeCmdBuffer) SetDescTableComp(driver.DescTable, int, []int)     {}
func (c *fakeCmdBuffer) Draw(_, _, _, _ int)                               {}
func (c *fakeCmdBuffer) DrawIndexed(_, _, _, _, _ int)                     {}
func (c *fakeCmdBuffer) Dispatch(_, _, _ int)                              {}
func (c *fakeCmdBuffer) CopyBuffer(*driver.BufferCopy)                     {}
func (c *fakeCmdBuffer) CopyImage(*driver.ImageCopy)                       {}
func (c *fakeCmdBuffer) CopyBufToImg(*driver.BufImgCopy)                   {}
func (c *fakeCmdBuffer) CopyImgToBuf(*driver.BufImgCopy)                   {}
func (c *fakeCmdBuffer) BlitImage(*driver.ImageBlit, driver.Filter)        {}
func (c *fakeCmdBuffer) Fill(driver.Buffer, int64, byte, int64)            {}
func (c *fakeCmdBuffer) Barrier([]driver.Barrier)                          {}
func (c *fakeCmdBuffer) Transition([]driver.Transition)                    {}
func (c *fakeCmdBuffer) End() error   { *c.log = append(*c.log, "end"); return nil }
func (c *fakeCmdBuffer) Reset() error { *c.log = append(*c.log, "reset"); return nil }

type fakeImageView struct{}

func (fakeImageView) Destroy() {}

type fakeImage struct{}

func (fakeImage) Destroy() {}
func (fakeImage) NewView(driver.ViewType, int, int, int, int) (driver.ImageView, error) {
	return fakeImageView{}, nil
}

type fakeSwapchain struct {
	log        *[]string
	views      []driver.ImageView
	next       int
	nextErr    error
	presentErr error
	recreated  int
}

func (s *fakeSwapchain) Destroy()                  {}
func (s *fakeSwapchain) Views() []driver.ImageView { return s.views }
func (s *fakeSwapchain) Next(cb driver.CmdBuffer) (int, error) {
	*s.log = append(*s.log, "next")
	if s.nextErr != nil {
		err := s.nextErr
		s.nextErr = nil
		return -1, err
	}
	idx := s.next
	s.next = (s.next + 1) % len(s.views)
	return idx, nil
}
func (s *fakeSwapchain) Present(index int, cb driver.CmdBuffer) error {
	*s.log = append(*s.log, "present")
	return s.presentErr
}
func (s *fakeSwapchain) Recreate() error {
	s.recreated++
	for i := range s.views {
		s.views[i] = fakeImageView{}
	}
	return nil
}
func (s *fakeSwapchain) Format() driver.PixelFmt { return driver.BGRA8un }

type fakeGPU struct {
	log     *[]string
	sc      *fakeSwapchain
	commits []chan<- error
	// stall leaves commit channels unsignaled so tests can exercise
	// the frame-slot wait.
	stall bool
}

func (g *fakeGPU) Driver() driver.Driver { return nil }
func (g *fakeGPU) Commit(cb []driver.CmdBuffer, ch chan<- error) {
	*g.log = append(*g.log, "commit")
	g.commits = append(g.commits, ch)
	if !g.stall {
		ch <- nil
	}
}
func (g *fakeGPU) NewCmdBuffer() (driver.CmdBuffer, error) {
	return &fakeCmdBuffer{log: g.log}, nil
}
func (g *fakeGPU) NewRenderPass([]driver.Attachment, []driver.Subpass) (driver.RenderPass, error) {
	return nil, errors.New("unused")
}
func (g *fakeGPU) NewShaderCode([]byte) (driver.ShaderCode, error) { return nil, errors.New("unused") }
func (g *fakeGPU) NewDescHeap([]driver.Descriptor) (driver.DescHeap, error) {
	return nil, errors.New("unused")
}
func (g *fakeGPU) NewDescTable([]driver.DescHeap) (driver.DescTable, error) {
	return nil, errors.New("unused")
}
func (g *fakeGPU) NewPipeline(any) (driver.Pipeline, error) { return nil, errors.New("unused") }
func (g *fakeGPU) NewBuffer(int64, bool, driver.Usage) (driver.Buffer, error) {
	return nil, errors.New("unused")
}
func (g *fakeGPU) NewImage(pf driver.PixelFmt, size driver.Dim3D, layers, levels, samples int, usg driver.Usage) (driver.Image, error) {
	return fakeImage{}, nil
}
func (g *fakeGPU) NewSampler(*driver.Sampling) (driver.Sampler, error) {
	return nil, errors.New("unused")
}
func (g *fakeGPU) Limits() driver.Limits {
	return driver.Limits{
		UBOAlignment:      256,
		MaxAnisotropy:     16,
		ColorSampleCounts: 0b1011,
		DepthSampleCounts: 0b0011,
	}
}
func (g *fakeGPU) NewSwapchain(win wsi.Window, imageCount int) (driver.Swapchain, error) {
	views := make([]driver.ImageView, imageCount)
	for i := range views {
		views[i] = fakeImageView{}
	}
	g.sc = &fakeSwapchain{log: g.log, views: views}
	return g.sc, nil
}

type fakeWindow struct {
	width, height int
}

func (w *fakeWindow) Map() error                  { return nil }
func (w *fakeWindow) Unmap() error                { return nil }
func (w *fakeWindow) Resize(wd, ht int) error     { w.width, w.height = wd, ht; return nil }
func (w *fakeWindow) SetTitle(string) error       { return nil }
func (w *fakeWindow) Close()                      {}
func (w *fakeWindow) Width() int                  { return w.width }
func (w *fakeWindow) Height() int                 { return w.height }
func (w *fakeWindow) Title() string               { return "fake" }

type markerModule struct {
	name string
	log  *[]string
	err  error
}

func (m *markerModule) Name() string { return m.name }
func (m *markerModule) OnRender(cb driver.CmdBuffer, p *Packet, frame uint64, passIndex int) error {
	*m.log = append(*m.log, "module:"+m.name)
	return m.err
}
func (m *markerModule) Destroy() {}

func newTestDriver(t *testing.T, cfg Config) (*Driver, *fakeGPU, *fakeWindow, *[]string) {
	t.Helper()
	log := new([]string)
	gpu := &fakeGPU{log: log}
	win := &fakeWindow{width: 800, height: 600}
	d, err := New(gpu, win, cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return d, gpu, win, log
}

func TestFrameOrdering(t *testing.T) {
	d, _, _, log := newTestDriver(t, DefaultConfig())
	d.AddModule(&markerModule{name: "a", log: log})
	d.AddModule(&markerModule{name: "b", log: log})

	if err := d.Frame(&Packet{}); err != nil {
		t.Fatalf("Frame: %v", err)
	}
	want := []string{"begin", "next", "viewport", "scissor", "module:a", "module:b", "present", "end", "commit"}
	if len(*log) != len(want) {
		t.Fatalf("call sequence:\nhave %v\nwant %v", *log, want)
	}
	for i := range want {
		if (*log)[i] != want[i] {
			t.Fatalf("call sequence:\nhave %v\nwant %v", *log, want)
		}
	}
}

func TestFramePacketState(t *testing.T) {
	d, gpu, _, log := newTestDriver(t, DefaultConfig())
	var got []int
	probe := &markerModule{name: "probe", log: log}
	d.AddModule(probe)
	d.AddModule(moduleFunc(func(p *Packet, frame uint64) {
		got = append(got, p.ImageIndex)
		if p.FrameNumber != frame {
			t.Errorf("packet frame %d, module frame %d", p.FrameNumber, frame)
		}
	}))

	n := len(gpu.sc.views)
	for i := 0; i < n+1; i++ {
		if err := d.Frame(&Packet{}); err != nil {
			t.Fatalf("Frame %d: %v", i, err)
		}
	}
	for i, idx := range got {
		if idx != i%n {
			t.Errorf("frame %d: image index %d, want %d", i, idx, i%n)
		}
	}
}

// moduleFunc adapts a closure into a Module for probing packet state.
type moduleFunc func(p *Packet, frame uint64)

func (moduleFunc) Name() string { return "probe" }
func (f moduleFunc) OnRender(cb driver.CmdBuffer, p *Packet, frame uint64, passIndex int) error {
	f(p, frame)
	return nil
}
func (moduleFunc) Destroy() {}

func TestFrameSlotTimeout(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FramesInFlight = 1
	cfg.FrameTimeout = 10 * time.Millisecond
	d, gpu, _, _ := newTestDriver(t, cfg)
	gpu.stall = true

	if err := d.Frame(&Packet{}); err != nil {
		t.Fatalf("Frame 0: %v", err)
	}
	// The single slot is still in flight and its commit never
	// completes, so the next frame must time out.
	err := d.Frame(&Packet{})
	if !errors.Is(err, driver.ErrAcquireTimeout) {
		t.Fatalf("Frame 1: have %v, want ErrAcquireTimeout", err)
	}
}

func TestFrameSkipOnSwapchainError(t *testing.T) {
	d, gpu, _, _ := newTestDriver(t, DefaultConfig())
	gpu.sc.nextErr = driver.ErrSwapchain

	if err := d.Frame(&Packet{}); err != nil {
		t.Fatalf("Frame with out-of-date swapchain: %v", err)
	}
	if gpu.sc.recreated != 0 {
		t.Fatalf("recreated during skipped frame")
	}
	// The skip marks the swapchain for recreation; the next frame
	// performs it before acquiring.
	if err := d.Frame(&Packet{}); err != nil {
		t.Fatalf("Frame after skip: %v", err)
	}
	if gpu.sc.recreated != 1 {
		t.Fatalf("recreate count: have %d, want 1", gpu.sc.recreated)
	}
}

func TestResizeFollowsWindow(t *testing.T) {
	d, gpu, win, _ := newTestDriver(t, DefaultConfig())

	var resized []rpass.ResizeArgs
	d.Resize.Subscribe(func(args rpass.ResizeArgs) { resized = append(resized, args) })

	win.width, win.height = 1024, 768
	if err := d.Frame(&Packet{}); err != nil {
		t.Fatalf("Frame: %v", err)
	}
	if gpu.sc.recreated != 1 {
		t.Fatalf("recreate count: have %d, want 1", gpu.sc.recreated)
	}
	if w, h := d.Extent(); w != 1024 || h != 768 {
		t.Fatalf("extent: have %dx%d, want 1024x768", w, h)
	}
	if len(resized) != 1 || resized[0] != (rpass.ResizeArgs{Width: 1024, Height: 768}) {
		t.Fatalf("resize event: have %v", resized)
	}
	for _, tex := range d.ColorTargets() {
		if tex.Width != 1024 || tex.Height != 768 {
			t.Fatalf("wrapped texture not rewrapped: %dx%d", tex.Width, tex.Height)
		}
	}
	if d.DepthTexture().Width != 1024 {
		t.Fatalf("depth texture not resized")
	}
}

func TestModuleFailureResetsFrame(t *testing.T) {
	d, _, _, log := newTestDriver(t, DefaultConfig())
	boom := errors.New("boom")
	d.AddModule(&markerModule{name: "bad", log: log, err: boom})

	err := d.Frame(&Packet{})
	if !errors.Is(err, boom) {
		t.Fatalf("have %v, want wrapped module error", err)
	}
	last := (*log)[len(*log)-1]
	if last != "reset" {
		t.Fatalf("expected command buffer reset after module failure, log tail %q", last)
	}
}

func TestSampleCountSelection(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SampleCeiling = 8
	d, _, _, _ := newTestDriver(t, cfg)
	// Color mask 0b1011 and depth mask 0b0011 intersect at {1, 2};
	// the ceiling never raises it.
	if d.Samples() != 2 {
		t.Fatalf("samples: have %d, want 2", d.Samples())
	}
	if d.MSAAColor() == nil {
		t.Fatalf("expected MSAA color attachment at 2 samples")
	}
}
