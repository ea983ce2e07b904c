// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package shader

import "github.com/kestrelgfx/forge/driver"

// AttributeConfig describes one vertex attribute
// construction config.
type AttributeConfig struct {
	Name string
	Type AttributeType
}

// UniformConfig describes one named uniform value, either inside a
// binding or a push-constant block.
type UniformConfig struct {
	Name       string
	Type       UniformType
	Size       int // only consulted for UniCustom/UniSampler
	ArrayIndex int
}

func (c UniformConfig) size() int {
	if s := c.Type.Size(); s != 0 {
		return s
	}
	return c.Size
}

// BindingConfig describes one descriptor-set binding.
type BindingConfig struct {
	Index    int
	Type     BindingType
	Count    int
	Stages   driver.Stage
	Uniforms []UniformConfig
}

// DescSetConfig describes one descriptor set.
type DescSetConfig struct {
	Index    int
	Scope    Scope
	Bindings []BindingConfig
}

// Config is the parsed, API-agnostic representation of a .shadercfg
// resource.
type Config struct {
	Name           string
	RenderPassName string
	Stages         driver.Stage
	Attributes     []AttributeConfig
	Sets           []DescSetConfig
	PushConstants  []UniformConfig
	CullMode       CullMode
	Wireframe      bool

	// VertSource/FragSource hold the GLSL stage sources resolved as
	// sibling files next to the .shadercfg (<name>.vert.glsl /
	// <name>.frag.glsl), compiled through shaderc at load and reload
	// time (the reload() contract).
	VertSource string
	FragSource string
}
