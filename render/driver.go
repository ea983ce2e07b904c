// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package render

import (
	"errors"
	"fmt"
	"time"

	"github.com/kestrelgfx/forge/driver"
	"github.com/kestrelgfx/forge/input"
	"github.com/kestrelgfx/forge/internal/log"
	"github.com/kestrelgfx/forge/linear"
	"github.com/kestrelgfx/forge/rpass"
	"github.com/kestrelgfx/forge/rtexture"
	"github.com/kestrelgfx/forge/shader"
	"github.com/kestrelgfx/forge/wsi"
)

// MaxFramesInFlight is the number of frame slots the driver cycles
// through. It matches shader.MaxFramesInFlight so a shader's per-frame
// descriptor copies line up with the driver's slots.
const MaxFramesInFlight = shader.MaxFramesInFlight

// Config tunes the frame driver.
type Config struct {
	// FramesInFlight is the number of frames recorded ahead of GPU
	// completion. Values outside [1, MaxFramesInFlight] are replaced by
	// MaxFramesInFlight.
	FramesInFlight int

	// ImageCount is the number of swapchain images requested.
	// Default is FramesInFlight+1.
	ImageCount int

	// SampleCeiling caps the MSAA sample count picked from the
	// intersection of the device's color and depth sample-count masks.
	// Default is 1 (no multisampling).
	SampleCeiling int

	// DepthFormat is the depth/stencil attachment format.
	DepthFormat driver.PixelFmt

	// FrameTimeout bounds the wait for a frame slot's previous
	// submission. Exceeding it is frame-time fatal.
	FrameTimeout time.Duration
}

// DefaultConfig returns the default frame driver configuration.
func DefaultConfig() Config {
	return Config{
		FramesInFlight: MaxFramesInFlight,
		SampleCeiling:  1,
		DepthFormat:    driver.D24unS8ui,
		FrameTimeout:   10 * time.Second,
	}
}

// Driver owns the swapchain and drives the per-frame
// acquire/record/submit/present loop. Render modules are registered in
// pass order and invoked once per frame with the packet.
type Driver struct {
	gpu driver.GPU
	win wsi.Window
	sc  driver.Swapchain

	modules []Module

	cbs     []driver.CmdBuffer
	pending []chan error
	slot    int
	frame   uint64

	width, height int
	samples       int
	timeout       time.Duration

	colorTargets []*rtexture.Texture
	msaaColor    *rtexture.Texture
	depth        *rtexture.Texture

	// Resize fires after the swapchain is recreated, with the new
	// extent; render targets subscribe via rpass.SubscribeResize.
	Resize input.Event[rpass.ResizeArgs]

	view    linear.M4
	proj    linear.M4
	viewPos linear.V3

	resizeNeeded bool
}

// New creates a frame driver over win. gpu must implement
// driver.Presenter.
func New(gpu driver.GPU, win wsi.Window, cfg Config) (*Driver, error) {
	pres, ok := gpu.(driver.Presenter)
	if !ok {
		return nil, driver.ErrCannotPresent
	}
	if cfg.FramesInFlight < 1 || cfg.FramesInFlight > MaxFramesInFlight {
		cfg.FramesInFlight = MaxFramesInFlight
	}
	if cfg.ImageCount < cfg.FramesInFlight {
		cfg.ImageCount = cfg.FramesInFlight + 1
	}
	if cfg.SampleCeiling < 1 {
		cfg.SampleCeiling = 1
	}
	if cfg.FrameTimeout <= 0 {
		cfg.FrameTimeout = DefaultConfig().FrameTimeout
	}

	sc, err := pres.NewSwapchain(win, cfg.ImageCount)
	if err != nil {
		return nil, err
	}

	lim := gpu.Limits()
	d := &Driver{
		gpu:     gpu,
		win:     win,
		sc:      sc,
		width:   win.Width(),
		height:  win.Height(),
		samples: driver.IntersectSampleCounts(lim.ColorSampleCounts, lim.DepthSampleCounts, cfg.SampleCeiling),
		timeout: cfg.FrameTimeout,
	}
	d.view.I()
	d.proj.I()

	for _, view := range sc.Views() {
		n := len(d.colorTargets)
		name := fmt.Sprintf("swapchain.%d", n)
		d.colorTargets = append(d.colorTargets, rtexture.Wrap(name, view, d.width, d.height, sc.Format()))
	}
	d.depth, err = rtexture.New(gpu, "swapchain.depth", d.width, d.height, false,
		d.samples, cfg.DepthFormat, driver.URenderTarget)
	if err != nil {
		d.Destroy()
		return nil, err
	}
	if d.samples > 1 {
		d.msaaColor, err = rtexture.New(gpu, "swapchain.msaa", d.width, d.height, false,
			d.samples, sc.Format(), driver.URenderTarget)
		if err != nil {
			d.Destroy()
			return nil, err
		}
	}

	d.cbs = make([]driver.CmdBuffer, cfg.FramesInFlight)
	d.pending = make([]chan error, cfg.FramesInFlight)
	for i := range d.cbs {
		if d.cbs[i], err = gpu.NewCmdBuffer(); err != nil {
			d.Destroy()
			return nil, err
		}
	}
	return d, nil
}

// AddModule appends m to the per-frame module list. Modules run in the
// order they were added, which must match the render-pass graph's order.
func (d *Driver) AddModule(m Module) { d.modules = append(d.modules, m) }

// SetView replaces the driver's view state, consumed by every module on
// the next frame.
func (d *Driver) SetView(view, proj *linear.M4, pos linear.V3) {
	d.view = *view
	d.proj = *proj
	d.viewPos = pos
}

// ColorTargets returns one wrapped texture per presentable image, for use
// as the final pass's render-target attachments.
func (d *Driver) ColorTargets() []*rtexture.Texture { return d.colorTargets }

// DepthTexture returns the shared depth/stencil attachment.
func (d *Driver) DepthTexture() *rtexture.Texture { return d.depth }

// MSAAColor returns the multisampled color attachment the swapchain
// images resolve from, or nil when multisampling is off.
func (d *Driver) MSAAColor() *rtexture.Texture { return d.msaaColor }

// Samples returns the swapchain's MSAA sample count.
func (d *Driver) Samples() int { return d.samples }

// Extent returns the current swapchain extent.
func (d *Driver) Extent() (width, height int) { return d.width, d.height }

// RequestResize marks the swapchain for recreation before the next frame,
// e.g. from a window-size callback.
func (d *Driver) RequestResize() { d.resizeNeeded = true }

// Frame runs one frame: wait for the slot's previous submission,
// acquire, record every module, submit and present. A skipped frame (no backbuffer, swapchain out of date) returns
// nil; unrecoverable acquire/submit failures return frame-time fatal
// errors.
func (d *Driver) Frame(p *Packet) error {
	slot := d.slot
	if ch := d.pending[slot]; ch != nil {
		select {
		case err := <-ch:
			if err != nil {
				return fmt.Errorf("render: frame %d: %w: %v", d.frame, driver.ErrSubmitFailure, err)
			}
		case <-time.After(d.timeout):
			return fmt.Errorf("render: frame %d: %w", d.frame, driver.ErrAcquireTimeout)
		}
		d.pending[slot] = nil
	}

	if w, h := d.win.Width(), d.win.Height(); d.resizeNeeded || w != d.width || h != d.height {
		if err := d.recreate(); err != nil {
			return err
		}
	}

	cb := d.cbs[slot]
	if err := cb.Begin(); err != nil {
		return fmt.Errorf("render: frame %d: %w: %v", d.frame, driver.ErrSubmitFailure, err)
	}
	idx, err := d.sc.Next(cb)
	if err != nil {
		if rerr := cb.Reset(); rerr != nil {
			return fmt.Errorf("render: frame %d: %w: %v", d.frame, driver.ErrSubmitFailure, rerr)
		}
		switch {
		case errors.Is(err, driver.ErrNoBackbuffer):
			return nil
		case errors.Is(err, driver.ErrSwapchain):
			d.resizeNeeded = true
			return nil
		}
		return fmt.Errorf("render: frame %d: acquire: %w", d.frame, err)
	}

	// Y-flipped viewport so world space keeps a right-handed,
	// +Y-up convention on screen.
	cb.SetViewport([]driver.Viewport{{
		X:      0,
		Y:      float32(d.height),
		Width:  float32(d.width),
		Height: -float32(d.height),
		Znear:  0,
		Zfar:   1,
	}})
	cb.SetScissor([]driver.Scissor{{X: 0, Y: 0, Width: d.width, Height: d.height}})

	p.FrameNumber = d.frame
	p.ImageIndex = idx
	p.View = d.view
	p.Projection = d.proj
	p.ViewPosition = d.viewPos

	for i, m := range d.modules {
		if err := m.OnRender(cb, p, d.frame, i); err != nil {
			if rerr := cb.Reset(); rerr != nil {
				log.Errorf("render", "frame %d: reset after module failure: %v", d.frame, rerr)
			}
			return fmt.Errorf("render: frame %d: module %s: %w", d.frame, m.Name(), err)
		}
	}

	if err := d.sc.Present(idx, cb); err != nil {
		if !errors.Is(err, driver.ErrSwapchain) {
			if rerr := cb.Reset(); rerr != nil {
				log.Errorf("render", "frame %d: reset after present failure: %v", d.frame, rerr)
			}
			return fmt.Errorf("render: frame %d: present: %w", d.frame, err)
		}
		d.resizeNeeded = true
	}
	if err := cb.End(); err != nil {
		return fmt.Errorf("render: frame %d: %w: %v", d.frame, driver.ErrSubmitFailure, err)
	}

	ch := make(chan error, 1)
	d.gpu.Commit([]driver.CmdBuffer{cb}, ch)
	d.pending[slot] = ch

	d.slot = (slot + 1) % len(d.cbs)
	d.frame++
	return nil
}

// recreate waits out all in-flight frames, recreates the swapchain at the
// window's current size, rewraps the per-image textures, resizes the
// shared depth/MSAA attachments and fires the Resize event so dependent
// render targets follow.
func (d *Driver) recreate() error {
	if err := d.WaitIdle(); err != nil {
		return err
	}
	if err := d.sc.Recreate(); err != nil {
		return fmt.Errorf("render: swapchain recreate: %w", err)
	}
	d.width, d.height = d.win.Width(), d.win.Height()
	views := d.sc.Views()
	for i, t := range d.colorTargets {
		if i < len(views) {
			t.Rewrap(views[i], d.width, d.height)
		}
	}
	if err := d.depth.Resize(d.width, d.height); err != nil {
		return err
	}
	if d.msaaColor != nil {
		if err := d.msaaColor.Resize(d.width, d.height); err != nil {
			return err
		}
	}
	d.resizeNeeded = false
	log.Infof("render", "swapchain recreated at %dx%d", d.width, d.height)
	d.Resize.Fire(rpass.ResizeArgs{Width: d.width, Height: d.height})
	return nil
}

// WaitIdle blocks until every in-flight frame completes.
func (d *Driver) WaitIdle() error {
	var first error
	for i, ch := range d.pending {
		if ch == nil {
			continue
		}
		select {
		case err := <-ch:
			if err != nil && first == nil {
				first = fmt.Errorf("render: %w: %v", driver.ErrSubmitFailure, err)
			}
		case <-time.After(d.timeout):
			if first == nil {
				first = fmt.Errorf("render: %w", driver.ErrAcquireTimeout)
			}
		}
		d.pending[i] = nil
	}
	return first
}

// Destroy waits for in-flight work and releases the driver's swapchain
// textures and command buffers. Modules are destroyed in reverse
// registration order.
func (d *Driver) Destroy() {
	if d == nil {
		return
	}
	if err := d.WaitIdle(); err != nil {
		log.Errorf("render", "wait on destroy: %v", err)
	}
	for i := len(d.modules) - 1; i >= 0; i-- {
		d.modules[i].Destroy()
	}
	d.modules = nil
	for _, cb := range d.cbs {
		if cb != nil {
			cb.Destroy()
		}
	}
	d.cbs = nil
	if d.msaaColor != nil {
		d.msaaColor.Destroy()
	}
	if d.depth != nil {
		d.depth.Destroy()
	}
	for _, t := range d.colorTargets {
		t.Destroy()
	}
	d.colorTargets = nil
	if d.sc != nil {
		d.sc.Destroy()
	}
}
