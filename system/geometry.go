// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package system

import (
	"fmt"

	"github.com/kestrelgfx/forge/mesh"
	"github.com/kestrelgfx/forge/resource"
)

// Geometries is the named, reference-counted geometry cache.
// A single mesh resource names a slice of primitives (one .obj/.mesh
// file may hold several material groups), so Acquire/Release operate over
// []*mesh.Geometry rather than a single value; every geometry sub-allocates
// from one shared vertex/index buffer.
type Geometries struct {
	res   *resource.System
	buf   *mesh.Buffer
	cache *refcache[[]*mesh.Geometry]
}

// NewGeometries creates a geometry system backed by res, sub-allocating
// every acquired geometry from buf.
func NewGeometries(res *resource.System, buf *mesh.Buffer) *Geometries {
	return &Geometries{res: res, buf: buf, cache: newRefcache[[]*mesh.Geometry]()}
}

// Acquire loads (or returns the already-cached) set of geometries named
// name, incrementing its reference count. As with Shaders and Materials,
// a load failure is returned rather than substituted, since there is no
// meaningful default mesh to draw in place of missing geometry.
func (g *Geometries) Acquire(name string) ([]*mesh.Geometry, error) {
	if !validName(name) {
		return nil, fmt.Errorf("system: geometry %q: invalid name", name)
	}
	return g.cache.acquire(name, true, func() ([]*mesh.Geometry, error) {
		return g.load(name)
	})
}

// Release decrements name's reference count, freeing every geometry's
// shared-buffer space if it reaches zero.
func (g *Geometries) Release(name string) {
	geoms, destroy := g.cache.release(name)
	if !destroy {
		return
	}
	for _, geo := range geoms {
		geo.Free(g.buf)
	}
}

func (g *Geometries) load(name string) ([]*mesh.Geometry, error) {
	res, err := g.res.Load(resource.Mesh, name)
	if err != nil {
		return nil, err
	}
	configs := res.Data.([]*resource.GeometryConfig)

	geoms := make([]*mesh.Geometry, 0, len(configs))
	for _, cfg := range configs {
		data := cfg.ToGeometryData()
		if cfg.DimCount != 2 {
			addTangents(data, cfg)
		}
		geo, err := mesh.NewGeometry(g.buf, data)
		if err != nil {
			for _, done := range geoms {
				done.Free(g.buf)
			}
			return nil, fmt.Errorf("system: geometry %q: %w", name, err)
		}
		geoms = append(geoms, geo)
	}
	return geoms, nil
}
