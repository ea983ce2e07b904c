// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package shader

import (
	"strings"
	"testing"

	"github.com/kestrelgfx/forge/driver"
)

const basicCfg = `
# basic world shader
version=1
name=world
renderpass=world
stages=vertex,fragment
cull_mode=back
attribute=vec3, position
uniform=mat4, 0, projection
`

func TestParseBasicConfig(t *testing.T) {
	cfg, err := ParseConfig(basicCfg)
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if cfg.Name != "world" || cfg.RenderPassName != "world" {
		t.Fatalf("name/renderpass: %q/%q", cfg.Name, cfg.RenderPassName)
	}
	if cfg.Stages != driver.SVertex|driver.SFragment {
		t.Fatalf("stages: %v", cfg.Stages)
	}
	if cfg.CullMode != CullBack {
		t.Fatalf("cull mode: %v", cfg.CullMode)
	}
	if len(cfg.Attributes) != 1 {
		t.Fatalf("attribute count: %d", len(cfg.Attributes))
	}
	a := cfg.Attributes[0]
	if a.Name != "position" || a.Type != AttrVec3 || a.Type.Size() != 12 {
		t.Fatalf("attribute: %+v (size %d)", a, a.Type.Size())
	}
	if len(cfg.Sets) != 1 {
		t.Fatalf("set count: %d", len(cfg.Sets))
	}
	set := cfg.Sets[0]
	if set.Scope != ScopeGlobal || len(set.Bindings) != 1 {
		t.Fatalf("global set: %+v", set)
	}
	u := set.Bindings[0].Uniforms[0]
	if u.Name != "projection" || u.Type != UniMatrix4 || u.size() != 64 {
		t.Fatalf("uniform: %+v (size %d)", u, u.size())
	}
}

func TestParseScopes(t *testing.T) {
	cfg, err := ParseConfig(`
name=s
uniform=mat4, 0, projection
uniform=vec4, 1, diffuse_color
uniform=sampler, 1, diffuse_map
uniform=mat4, 2, model
`)
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if len(cfg.Sets) != 2 {
		t.Fatalf("set count: %d", len(cfg.Sets))
	}
	if cfg.Sets[0].Scope != ScopeGlobal || cfg.Sets[1].Scope != ScopeInstance {
		t.Fatalf("set scopes: %v, %v", cfg.Sets[0].Scope, cfg.Sets[1].Scope)
	}
	// Instance set: one uniform binding plus one sampler binding.
	inst := cfg.Sets[1]
	if len(inst.Bindings) != 2 {
		t.Fatalf("instance bindings: %d", len(inst.Bindings))
	}
	if inst.Bindings[0].Type != BindUniform || inst.Bindings[1].Type != BindSampler {
		t.Fatalf("binding types: %v, %v", inst.Bindings[0].Type, inst.Bindings[1].Type)
	}
	if len(cfg.PushConstants) != 1 || cfg.PushConstants[0].Name != "model" {
		t.Fatalf("push constants: %+v", cfg.PushConstants)
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct{ name, text string }{
		{"missing equals", "name"},
		{"unknown key", "color=red"},
		{"unknown stage", "stages=tessellation"},
		{"attribute arity", "attribute=vec3"},
		{"attribute type", "attribute=vec5, position"},
		{"uniform arity", "uniform=mat4, projection"},
		{"uniform type", "uniform=mat5, 0, projection"},
		{"uniform scope", "uniform=mat4, 9, projection"},
		{"uniform size", "uniform=custom, 0, blob, many"},
	}
	for _, c := range cases {
		if _, err := ParseConfig(c.text); err == nil {
			t.Errorf("%s: no error for %q", c.name, c.text)
		}
	}
}

func TestParseCustomSize(t *testing.T) {
	cfg, err := ParseConfig("uniform=custom, 0, lights, 1024")
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	u := cfg.Sets[0].Bindings[0].Uniforms[0]
	if u.size() != 1024 {
		t.Fatalf("custom size: %d", u.size())
	}
}

func TestParseIgnoresCommentsAndBlank(t *testing.T) {
	cfg, err := ParseConfig("# a comment\n\n  \nname=x\n")
	if err != nil || cfg.Name != "x" {
		t.Fatalf("have %+v, %v", cfg, err)
	}
}

func TestVertexInputs(t *testing.T) {
	cfg, err := ParseConfig("attribute=vec3, position\nattribute=vec2, texcoord\nattribute=vec4, color")
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if s := cfg.TotalStride(); s != 12+8+16 {
		t.Fatalf("total stride: %d", s)
	}
	in := cfg.VertexInputs()
	wantFmt := []driver.VertexFmt{driver.Float32x3, driver.Float32x2, driver.Float32x4}
	for i := range in {
		if in[i].Format != wantFmt[i] || in[i].Nr != i {
			t.Fatalf("input %d: %+v", i, in[i])
		}
	}
}

func TestParseLongConfig(t *testing.T) {
	// Every recognized uniform type in one config.
	var b strings.Builder
	for _, typ := range []string{"float32", "vec2", "vec3", "vec4", "int8",
		"int16", "int32", "uint8", "uint16", "uint32", "mat4"} {
		b.WriteString("uniform=" + typ + ", 0, u_" + typ + "\n")
	}
	cfg, err := ParseConfig(b.String())
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if n := len(cfg.Sets[0].Bindings[0].Uniforms); n != 11 {
		t.Fatalf("uniform count: %d", n)
	}
}
