// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package shader

import (
	"errors"
	"reflect"
	"testing"

	"github.com/kestrelgfx/forge/driver"
)

func testConfig(t *testing.T) *Config {
	t.Helper()
	cfg, err := ParseConfig(`
name=world
renderpass=world
stages=vertex,fragment
attribute=vec3, position
attribute=vec2, texcoord
uniform=mat4, 0, projection
uniform=mat4, 0, view
uniform=vec4, 1, diffuse_color
uniform=float32, 1, shininess
uniform=sampler, 1, diffuse_map
uniform=mat4, 2, model
`)
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	return cfg
}

func TestLayoutOffsets(t *testing.T) {
	const alignment = 256
	cfg := testConfig(t)
	l, err := computeLayout(cfg, alignment)
	if err != nil {
		t.Fatalf("computeLayout: %v", err)
	}

	// Global set: projection at 0, view at 64, binding stride padded to
	// the device alignment.
	proj := l.uniforms[l.uniformIndex["projection"]]
	view := l.uniforms[l.uniformIndex["view"]]
	if proj.Range.Offset != 0 || proj.Range.Size != 64 {
		t.Fatalf("projection range: %+v", proj.Range)
	}
	if view.Range.Offset != 64 || view.Range.Size != 64 {
		t.Fatalf("view range: %+v", view.Range)
	}
	if s := l.GlobalStride(); s != alignment {
		t.Fatalf("global stride: %d, want %d", s, alignment)
	}

	// Instance set: vec4 at 0, float32 at 16, stride padded.
	color := l.uniforms[l.uniformIndex["diffuse_color"]]
	shin := l.uniforms[l.uniformIndex["shininess"]]
	if color.Range.Offset != 0 || shin.Range.Offset != 16 {
		t.Fatalf("instance offsets: %d, %d", color.Range.Offset, shin.Range.Offset)
	}
	if s := l.InstanceStride(); s != alignment {
		t.Fatalf("instance stride: %d, want %d", s, alignment)
	}

	// Push constants place sequentially with 4-byte alignment.
	model := l.uniforms[l.uniformIndex["model"]]
	if model.Scope != ScopeLocal || model.Range.Offset != 0 || model.Range.Size != 64 {
		t.Fatalf("push constant: %+v", model)
	}
}

func TestLayoutDeterminism(t *testing.T) {
	// Recomputing the layout of a fixed config is a pure function of the
	// config and the required alignment.
	cfg := testConfig(t)
	a, err := computeLayout(cfg, 64)
	if err != nil {
		t.Fatalf("computeLayout: %v", err)
	}
	for i := 0; i < 8; i++ {
		b, err := computeLayout(cfg, 64)
		if err != nil {
			t.Fatalf("computeLayout: %v", err)
		}
		if !reflect.DeepEqual(a.Sets, b.Sets) {
			t.Fatalf("layout differs between runs:\n%+v\n%+v", a.Sets, b.Sets)
		}
		if !reflect.DeepEqual(a.uniforms, b.uniforms) {
			t.Fatalf("uniforms differ between runs")
		}
	}
}

func TestLayoutAlignmentDependence(t *testing.T) {
	cfg := testConfig(t)
	a, _ := computeLayout(cfg, 64)
	b, _ := computeLayout(cfg, 256)
	if a.GlobalStride() != 128 {
		t.Fatalf("64-aligned global stride: %d", a.GlobalStride())
	}
	if b.GlobalStride() != 256 {
		t.Fatalf("256-aligned global stride: %d", b.GlobalStride())
	}
}

func TestPushConstantWindow(t *testing.T) {
	// Two mat4s fit exactly in the 128-byte window.
	cfg, err := ParseConfig("uniform=mat4, 2, a\nuniform=mat4, 2, b")
	if err != nil {
		t.Fatal(err)
	}
	l, err := computeLayout(cfg, 64)
	if err != nil {
		t.Fatalf("two mat4 push constants: %v", err)
	}
	if l.pushSize != 128 {
		t.Fatalf("push size: %d", l.pushSize)
	}

	// A third byte over the window overflows.
	cfg, err = ParseConfig("uniform=mat4, 2, a\nuniform=mat4, 2, b\nuniform=float32, 2, c")
	if err != nil {
		t.Fatal(err)
	}
	if _, err = computeLayout(cfg, 64); !errors.Is(err, ErrPushConstantOverflow) {
		t.Fatalf("overflow: have %v, want ErrPushConstantOverflow", err)
	}
}

func TestDescriptorTypeCounts(t *testing.T) {
	cfg := testConfig(t)
	l, err := computeLayout(cfg, 64)
	if err != nil {
		t.Fatal(err)
	}
	counts := l.descriptorTypeCounts()
	// One global UBO binding, one instance UBO binding, one sampler.
	if counts[driver.DConstant] != 2 {
		t.Fatalf("constant descriptors: %d", counts[driver.DConstant])
	}
	if counts[driver.DSampler] != 1 {
		t.Fatalf("sampler descriptors: %d", counts[driver.DSampler])
	}
}
