// Copyright 2026 Gustavo C. Viegas. All rights reserved.

// Package rpass implements the render-pass graph: render passes chained
// with an arrow-style builder, render targets, and framebuffers, layered
// over driver.RenderPass/driver.Framebuf.
package rpass

import "github.com/kestrelgfx/forge/driver"

// ClearFlags selects which aspects of a pass's attachments are cleared on
// begin.
type ClearFlags uint8

// Clear flag bits.
const (
	ClearColor ClearFlags = 1 << iota
	ClearDepth
	ClearStencil
)

// ParseClearFlags turns a token string such as "CDS" into a ClearFlags
// mask. Unrecognized runes are ignored.
func ParseClearFlags(s string) ClearFlags {
	var f ClearFlags
	for _, r := range s {
		switch r {
		case 'C':
			f |= ClearColor
		case 'D':
			f |= ClearDepth
		case 'S':
			f |= ClearStencil
		}
	}
	return f
}

// Config describes a render pass at construction time, mirroring
// the configuration fields.
type Config struct {
	Name          string
	RenderOffset  [2]float32
	ClearColor    [4]float32
	DepthTesting  bool
	Multisampling bool

	// ColorOutput is false for depth-only passes (e.g. a shadow pass),
	// which never write a color attachment.
	ColorOutput bool
}

// Pass is a single render pass in the graph, together with the render
// targets it is associated with.
type Pass struct {
	ID   uint16
	Name string
	Prev string
	Next string

	RenderOffset  [2]float32
	ClearColorVal [4]float32
	ClearFlags    ClearFlags
	DepthTesting  bool
	Multisampling bool
	ColorOutput   bool

	// InitColor/InitDepth/InitResolve are true until the graph commit
	// finds that a prior pass already wrote the corresponding attachment,
	// attachment-reuse invariant.
	InitColor   bool
	InitDepth   bool
	InitResolve bool

	RenderTargets []*RenderTarget

	gpu driver.GPU
	rp  driver.RenderPass
}

// NewPass creates a pass in the Unbound/uninitialized state; it is not
// usable until the owning Graph commits it (see Graph.Add/Graph.Finish).
func NewPass(gpu driver.GPU, id uint16, cfg Config) *Pass {
	colorOutput := cfg.ColorOutput
	return &Pass{
		ID: id, Name: cfg.Name,
		RenderOffset: cfg.RenderOffset, ClearColorVal: cfg.ClearColor,
		DepthTesting: cfg.DepthTesting, Multisampling: cfg.Multisampling,
		ColorOutput: colorOutput,
		InitColor:   true, InitDepth: true, InitResolve: true,
		gpu: gpu,
	}
}

// AddRenderTarget associates a render target with this pass.
func (p *Pass) AddRenderTarget(rt *RenderTarget) {
	p.RenderTargets = append(p.RenderTargets, rt)
}

// ClearRenderTargets detaches all render targets from this pass.
func (p *Pass) ClearRenderTargets() { p.RenderTargets = nil }

// Driver returns the pass's backend driver.RenderPass, for use as
// GraphState.Pass when building a shader's pipeline. It is nil until the
// owning graph commits (Graph.Finish).
func (p *Pass) Driver() driver.RenderPass { return p.rp }

// Samples returns the sample count shared by this pass's attachments, as
// recorded on its first render target, or 1 if the pass has none yet.
func (p *Pass) Samples() int {
	if len(p.RenderTargets) == 0 {
		return 1
	}
	for _, att := range p.RenderTargets[0].Attachments {
		if att != nil && att.Texture != nil {
			return att.Texture.Samples
		}
	}
	return 1
}

// initialize creates the backend driver.RenderPass from the pass's first
// render target's attachment formats, honoring the Init*/ClearFlags state
// computed by the owning graph. Later render targets attached to the same
// pass are expected to share format/sample count with the first.
func (p *Pass) initialize() error {
	if len(p.RenderTargets) == 0 {
		return nil
	}
	rt := p.RenderTargets[0]

	var atts []driver.Attachment
	var sub driver.Subpass
	sub.DS = -1

	for i, att := range rt.Attachments {
		if att == nil {
			continue
		}
		a := driver.Attachment{
			Format:  att.Texture.Format,
			Samples: att.Texture.Samples,
			Store:   [2]driver.StoreOp{driver.SStore, driver.SDontCare},
		}
		switch i {
		case colorSlot:
			a.Load[0] = loadOp(p.ClearFlags&ClearColor != 0, p.InitColor)
			sub.Color = []int{len(atts)}
		case depthSlot:
			if p.DepthTesting {
				a.Load[0] = loadOp(p.ClearFlags&ClearDepth != 0, p.InitDepth)
				a.Load[1] = loadOp(p.ClearFlags&ClearStencil != 0, p.InitDepth)
				sub.DS = len(atts)
			} else {
				a.Load[0] = loadOp(false, p.InitResolve)
				sub.MSR = []int{len(atts)}
			}
		case resolveSlot:
			a.Load[0] = loadOp(false, p.InitResolve)
			sub.MSR = []int{len(atts)}
		}
		atts = append(atts, a)
	}
	sub.Wait = true

	rp, err := p.gpu.NewRenderPass(atts, []driver.Subpass{sub})
	if err != nil {
		return err
	}
	p.rp = rp
	return nil
}

// initializeRenderTargets (re)creates each associated render target's
// framebuffer against this pass's backend render pass.
func (p *Pass) initializeRenderTargets() error {
	for _, rt := range p.RenderTargets {
		if err := rt.recreateFramebuf(p.rp); err != nil {
			return err
		}
	}
	return nil
}

func loadOp(clear, first bool) driver.LoadOp {
	switch {
	case clear:
		return driver.LClear
	case first:
		return driver.LDontCare
	default:
		return driver.LLoad
	}
}

// Attachment slot indices, matching the order the original engine assumes
// within a render target's attachment list (color, depth-or-resolve,
// resolve).
const (
	colorSlot = iota
	depthSlot
	resolveSlot
)

// Begin issues the render pass's begin command against rt's framebuffer,
// assembling clear values from the pass's clear flags
func (p *Pass) Begin(cb driver.CmdBuffer, rt *RenderTarget) {
	var clears []driver.ClearValue
	if p.ClearFlags&ClearColor != 0 {
		clears = append(clears, driver.ClearValue{Color: p.ClearColorVal})
	}
	if p.ClearFlags&(ClearDepth|ClearStencil) != 0 {
		var dv driver.ClearValue
		if p.ClearFlags&ClearDepth != 0 {
			dv.Depth = 1
		}
		clears = append(clears, dv)
	}
	cb.BeginPass(p.rp, rt.framebuf, clears)
}

// End ends the current render pass.
func (p *Pass) End(cb driver.CmdBuffer) { cb.EndPass() }

// Destroy releases the backend render pass.
func (p *Pass) Destroy() {
	if p.rp != nil {
		p.rp.Destroy()
		p.rp = nil
	}
}
