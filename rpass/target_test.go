// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package rpass

import (
	"testing"

	"github.com/kestrelgfx/forge/driver"
	"github.com/kestrelgfx/forge/input"
	"github.com/kestrelgfx/forge/rtexture"
)

func TestSubscribeResizeWindowSize(t *testing.T) {
	tex, err := rtexture.New(fakeGPU{}, "color", 800, 600, false, 1, driver.RGBA8un, driver.URenderTarget)
	if err != nil {
		t.Fatal(err)
	}
	rt := NewRenderTarget(800, 600, []*Attachment{{Texture: tex}}, SyncWindowSize)
	var ev input.Event[ResizeArgs]
	SubscribeResize(rt, &ev, nil)

	ev.Fire(ResizeArgs{Width: 1920, Height: 1080})
	if rt.Width != 1920 || rt.Height != 1080 {
		t.Fatalf("target = %dx%d, want 1920x1080", rt.Width, rt.Height)
	}
}

func TestSubscribeResizeHalfResolution(t *testing.T) {
	tex, err := rtexture.New(fakeGPU{}, "half", 400, 300, false, 1, driver.RGBA8un, driver.URenderTarget)
	if err != nil {
		t.Fatal(err)
	}
	rt := NewRenderTarget(400, 300, []*Attachment{{Texture: tex}}, SyncHalfResolution)
	var ev input.Event[ResizeArgs]
	SubscribeResize(rt, &ev, nil)

	ev.Fire(ResizeArgs{Width: 1920, Height: 1081})
	if rt.Width != 960 || rt.Height != 540 {
		t.Fatalf("half-res target = %dx%d, want 960x540", rt.Width, rt.Height)
	}
}

func TestSubscribeResizeNoneIgnoresEvent(t *testing.T) {
	rt := newColorTarget(t, 800, 600)
	var ev input.Event[ResizeArgs]
	SubscribeResize(rt, &ev, nil)

	ev.Fire(ResizeArgs{Width: 1920, Height: 1080})
	if rt.Width != 800 || rt.Height != 600 {
		t.Fatalf("SyncNone target resized to %dx%d, want unchanged 800x600", rt.Width, rt.Height)
	}
}

func TestFreeAttachmentsClearsWithoutDestroyingTextures(t *testing.T) {
	rt := newColorTarget(t, 640, 480)
	tex := rt.Attachments[0].Texture
	rt.FreeAttachments()
	if len(rt.Attachments) != 0 {
		t.Fatal("FreeAttachments left attachments behind")
	}
	if tex == nil {
		t.Fatal("unexpected nil texture")
	}
}
