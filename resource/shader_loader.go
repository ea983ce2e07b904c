// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package resource

import (
	"fmt"
	"os"
	"strings"

	"github.com/kestrelgfx/forge/shader"
)

// ShaderLoader reads a .shadercfg resource and the GLSL stage sources it
// names, producing a *shader.Config ready for shader.New. Stage sources
// are resolved as sibling files named "<name>.<stage>.glsl" next to the
// .shadercfg itself ("<name>.vert.glsl", "<name>.frag.glsl").
type ShaderLoader struct{}

// Type implements Loader.
func (*ShaderLoader) Type() Type { return Shader }

// Load implements Loader. res.Data is a *shader.Config with VertSource/
// FragSource populated.
func (*ShaderLoader) Load(root, name string) (*Resource, error) {
	path := joinResolved(root, name, ".shadercfg")
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg, err := shader.ParseConfig(string(b))
	if err != nil {
		return nil, fmt.Errorf("resource: parse %s: %w", name, err)
	}

	base := strings.TrimSuffix(path, ".shadercfg")
	vert, err := os.ReadFile(base + ".vert.glsl")
	if err != nil {
		return nil, fmt.Errorf("resource: %s: vertex source: %w", name, err)
	}
	frag, err := os.ReadFile(base + ".frag.glsl")
	if err != nil {
		return nil, fmt.Errorf("resource: %s: fragment source: %w", name, err)
	}
	cfg.VertSource = string(vert)
	cfg.FragSource = string(frag)

	return &Resource{Name: name, Path: path, LoaderType: Shader, Data: cfg}, nil
}

// Unload implements Loader.
func (*ShaderLoader) Unload(res *Resource) {
	if !warnUnload(res) {
		return
	}
	_ = wrongType(Shader, res)
}
