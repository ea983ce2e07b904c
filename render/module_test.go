// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package render

import (
	"testing"

	"github.com/kestrelgfx/forge/linear"
	"github.com/kestrelgfx/forge/rpass"
)

func TestTargetSelection(t *testing.T) {
	pass := &rpass.Pass{Name: "post"}
	m := moduleBase{name: "post", pass: pass}

	if _, err := m.target(&Packet{}); err == nil {
		t.Fatal("expected error for pass without render targets")
	}

	single := &rpass.RenderTarget{}
	pass.AddRenderTarget(single)
	rt, err := m.target(&Packet{ImageIndex: 2})
	if err != nil || rt != single {
		t.Fatalf("single target: have %v, %v", rt, err)
	}

	// Per-image targets select by acquired image index.
	second := &rpass.RenderTarget{}
	third := &rpass.RenderTarget{}
	pass.AddRenderTarget(second)
	pass.AddRenderTarget(third)
	for i, want := range []*rpass.RenderTarget{single, second, third} {
		rt, err := m.target(&Packet{ImageIndex: i})
		if err != nil || rt != want {
			t.Fatalf("image %d: wrong target", i)
		}
	}
}

func TestSlot(t *testing.T) {
	for frame := uint64(0); frame < 10; frame++ {
		if s := slot(frame); s != int(frame%MaxFramesInFlight) {
			t.Fatalf("slot(%d) = %d", frame, s)
		}
	}
}

func TestMatrixBytes(t *testing.T) {
	var m linear.M4
	m.I()
	b := m4Bytes(&m)
	if len(b) != 64 {
		t.Fatalf("m4Bytes length %d", len(b))
	}
	// Column 0, row 0 is 1.0f: 0x3f800000 little-endian.
	if b[0] != 0 || b[1] != 0 || b[2] != 0x80 || b[3] != 0x3f {
		t.Fatalf("m4Bytes[0:4] = % x", b[:4])
	}

	v := linear.V4{1, 2, 3, 4}
	if len(v4Bytes(&v)) != 16 {
		t.Fatal("v4Bytes length")
	}
	u := linear.V3{1, 2, 3}
	if len(v3Bytes(&u)) != 12 {
		t.Fatal("v3Bytes length")
	}
	f := float32(1)
	if len(f32Bytes(&f)) != 4 {
		t.Fatal("f32Bytes length")
	}
	if len(f32SliceBytes([]float32{1, 2})) != 8 {
		t.Fatal("f32SliceBytes length")
	}
}

func TestShadowLightSpace(t *testing.T) {
	m := &Shadow{Extent: 16, NearFar: [2]float32{0.1, 64}}
	p := &Packet{Sun: &DirectionalLight{Direction: linear.V3{0, -1, 0}}}
	m.computeLightSpace(p)

	// A point at the view position must land inside the light volume
	// (clip-space xy in [-1, 1], z in [0, 1]).
	pos := linear.V4{0, 0, 0, 1}
	var clip linear.V4
	clip.Mul(m.LightSpace(), &pos)
	for i := 0; i < 2; i++ {
		if clip[i] < -1 || clip[i] > 1 {
			t.Fatalf("clip[%d] = %v out of range", i, clip[i])
		}
	}
	if clip[2] < 0 || clip[2] > 1 {
		t.Fatalf("clip depth %v out of [0,1]", clip[2])
	}

	// A zero sun direction falls back to straight down rather than a
	// degenerate matrix.
	m.computeLightSpace(&Packet{})
	var zero linear.M4
	if *m.LightSpace() == zero {
		t.Fatal("degenerate light-space matrix")
	}
}
