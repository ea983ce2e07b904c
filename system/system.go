// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package system

import (
	"github.com/kestrelgfx/forge/driver"
	"github.com/kestrelgfx/forge/mesh"
	"github.com/kestrelgfx/forge/resource"
	"github.com/kestrelgfx/forge/rpass"
)

// System bundles the four resource systems behind one
// construction call, wired to share a single resource.System and GPU
// buffer the way a render module or frame driver needs them. Nothing below
// requires callers to go through System: each of Textures, Shaders,
// Materials and Geometries is independently usable.
type System struct {
	Textures   *Textures
	Shaders    *Shaders
	Materials  *Materials
	Geometries *Geometries
}

// New builds every resource system over res and graph, compiling shaders
// against graph's passes and sub-allocating geometry from a freshly
// created shared vertex/index buffer. maxInstanceCount bounds each
// acquired shader's instance slots (0 defers to shader.MaxInstanceCount).
func New(gpu driver.GPU, res *resource.System, graph *rpass.Graph, maxInstanceCount int) (*System, error) {
	textures, err := NewTextures(gpu, res)
	if err != nil {
		return nil, err
	}
	shaders := NewShaders(gpu, res, graph, maxInstanceCount)
	materials := NewMaterials(res, shaders, textures)
	geometries := NewGeometries(res, mesh.NewBuffer(gpu))
	return &System{
		Textures:   textures,
		Shaders:    shaders,
		Materials:  materials,
		Geometries: geometries,
	}, nil
}
