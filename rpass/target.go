// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package rpass

import (
	"github.com/kestrelgfx/forge/driver"
	"github.com/kestrelgfx/forge/input"
	"github.com/kestrelgfx/forge/internal/log"
	"github.com/kestrelgfx/forge/rtexture"
)

// SyncMode controls how a render target's size tracks the swapchain's.
type SyncMode int

const (
	// SyncNone means the render target keeps an explicit, fixed size.
	SyncNone SyncMode = iota
	// SyncWindowSize matches the swapchain's size exactly.
	SyncWindowSize
	// SyncHalfResolution matches half the swapchain's size in each
	// dimension (minimum 1), used by lower-resolution passes such as
	// volumetrics or bloom blur.
	SyncHalfResolution
)

// Attachment pairs a texture with its render-pass slot (color,
// depth/stencil, or multisample resolve)
type Attachment struct {
	Texture *rtexture.Texture
}

// RenderTarget records width/height/attachments and the framebuffer bound
// to them
type RenderTarget struct {
	Width, Height int
	Attachments   []*Attachment
	SyncMode      SyncMode

	framebuf driver.Framebuf
}

// NewRenderTarget creates a render target over the given attachments. The
// framebuffer is created lazily by the owning Pass's graph commit (Pass
// must already know its backend driver.RenderPass).
func NewRenderTarget(width, height int, attachments []*Attachment, sync SyncMode) *RenderTarget {
	return &RenderTarget{Width: width, Height: height, Attachments: attachments, SyncMode: sync}
}

// Framebuf returns the target's backend framebuffer.
func (rt *RenderTarget) Framebuf() driver.Framebuf { return rt.framebuf }

// AddAttachments extends the render target's attachment list, per
// the "add_attachments".
func (rt *RenderTarget) AddAttachments(atts ...*Attachment) {
	rt.Attachments = append(rt.Attachments, atts...)
}

// FreeAttachments clears the render target's attachment list without
// destroying the underlying textures, which may be shared, per
// the "free_attachments".
func (rt *RenderTarget) FreeAttachments() { rt.Attachments = nil }

// Resize resizes every owned attachment and recreates the framebuffer. If
// rp is nil, the target has not yet been associated with a pass and the
// framebuffer is left uncreated (recreateFramebuf is called again once it
// is).
func (rt *RenderTarget) Resize(width, height int, rp driver.RenderPass) error {
	rt.Width, rt.Height = width, height
	for _, att := range rt.Attachments {
		if att.Texture == nil {
			continue
		}
		if err := att.Texture.Resize(width, height); err != nil {
			return err
		}
	}
	if rp == nil {
		return nil
	}
	return rt.recreateFramebuf(rp)
}

func (rt *RenderTarget) recreateFramebuf(rp driver.RenderPass) error {
	if rt.framebuf != nil {
		rt.framebuf.Destroy()
		rt.framebuf = nil
	}
	var views []driver.ImageView
	for _, att := range rt.Attachments {
		if att.Texture == nil {
			continue
		}
		views = append(views, att.Texture.View())
	}
	fb, err := rp.NewFB(views, rt.Width, rt.Height, 1)
	if err != nil {
		return err
	}
	rt.framebuf = fb
	return nil
}

// Destroy releases the target's framebuffer. Attached textures are not
// destroyed, as they may be shared across targets.
func (rt *RenderTarget) Destroy() {
	if rt.framebuf != nil {
		rt.framebuf.Destroy()
		rt.framebuf = nil
	}
}

// ResizeArgs is fired by the swapchain on resize, matching the payload a
// render target needs to apply SyncWindowSize/SyncHalfResolution.
type ResizeArgs struct {
	Width, Height int
}

// SubscribeResize wires rt to resize per ev's fired ResizeArgs, following
// the sync mode recorded at construction. rp is the backend render pass
// used to recreate the framebuffer; pass nil to defer recreation.
func SubscribeResize(rt *RenderTarget, ev *input.Event[ResizeArgs], rp driver.RenderPass) {
	ev.Subscribe(func(args ResizeArgs) {
		if rt.SyncMode == SyncNone {
			return
		}
		w, h := args.Width, args.Height
		if rt.SyncMode == SyncHalfResolution {
			w, h = halve(w), halve(h)
		}
		if w == rt.Width && h == rt.Height {
			return
		}
		if err := rt.Resize(w, h, rp); err != nil {
			log.Errorf("rpass", "resize to %dx%d failed: %v", w, h, err)
		}
	})
}

func halve(n int) int {
	n /= 2
	if n < 1 {
		return 1
	}
	return n
}
