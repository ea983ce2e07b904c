// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package rpass

import "github.com/kestrelgfx/forge/rtexture"

// Graph builds a chain of passes the way the `>>` DSL does: Add(pass)
// arrives at a pass, any Clear tokens accumulated since the last Add are
// applied to that pass, and committing a pass (on the next Add, or on
// Finish) runs the attachment-reuse scan before initializing it. The
// commit policy is: commit the current pass when the next arrow token
// arrives, then begin initializing the new one; Finish commits the last
// pass in the chain.
type Graph struct {
	current *Pass
	pending ClearFlags

	used map[*rtexture.Texture]bool
	byName map[string]*Pass

	err error
}

// NewGraph starts an empty graph, equivalent to RenderPass::start.
func NewGraph() *Graph {
	return &Graph{used: make(map[*rtexture.Texture]bool), byName: make(map[string]*Pass)}
}

// Add arrives at pass p: clear flags gathered via Clear since the
// previous Add (or since the graph started, for the first pass) are
// applied to p. If a pass is already current, it is committed first and
// linked to p via Prev/Next.
func (g *Graph) Add(p *Pass) *Graph {
	if g.err != nil {
		return g
	}
	if g.current != nil {
		g.commit(p)
	} else {
		p.ClearFlags |= g.pending
	}
	g.current = p
	g.pending = 0
	g.byName[p.Name] = p
	return g
}

// Pass looks up a committed (or currently pending) pass by name, for
// callers (e.g. the shader system) that resolve a shader's configured
// render_pass_name to the *Pass it binds its pipeline against.
func (g *Graph) Pass(name string) *Pass { return g.byName[name] }

// Clear accumulates clear-flag tokens (e.g. "CD") to be applied to the
// next pass added to the graph.
func (g *Graph) Clear(flags string) *Graph {
	g.pending |= ParseClearFlags(flags)
	return g
}

// Finish commits the final pass in the chain, equivalent to
// `>> RenderPass::finish`. It returns the first initialization error
// encountered anywhere in the chain, if any.
func (g *Graph) Finish() error {
	if g.err != nil {
		return g.err
	}
	if g.current != nil {
		g.commit(nil)
	}
	return g.err
}

// commit runs the attachment-reuse scan over g.current, initializes it,
// and links it to next (if any) before making next the current pass.
func (g *Graph) commit(next *Pass) {
	g.updateAttachmentInfo(g.current)

	if next != nil {
		g.current.Next = next.Name
		next.Prev = g.current.Name
		next.ClearFlags |= g.pending
	}

	if err := g.current.initialize(); err != nil {
		g.err = err
		return
	}
	if err := g.current.initializeRenderTargets(); err != nil {
		g.err = err
	}
}

// updateAttachmentInfo disables initialization (forcing LLoad instead of
// LClear/LDontCare) for any attachment slot a prior pass in this graph
// already wrote, then marks every attachment on p as
// used.
func (g *Graph) updateAttachmentInfo(p *Pass) {
	for _, rt := range p.RenderTargets {
		for i, att := range rt.Attachments {
			if att == nil || att.Texture == nil || !g.used[att.Texture] {
				continue
			}
			switch i {
			case colorSlot:
				if p.ColorOutput {
					p.InitColor = false
				} else {
					p.InitDepth = false
				}
			case depthSlot:
				if p.DepthTesting {
					p.InitDepth = false
				} else {
					p.InitResolve = false
				}
			case resolveSlot:
				p.InitResolve = false
			}
		}
	}
	for _, rt := range p.RenderTargets {
		for _, att := range rt.Attachments {
			if att != nil && att.Texture != nil {
				g.used[att.Texture] = true
			}
		}
	}
}
