// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package system

import (
	"bytes"

	"github.com/kestrelgfx/forge/driver"
	"github.com/kestrelgfx/forge/linear"
	"github.com/kestrelgfx/forge/mesh"
	"github.com/kestrelgfx/forge/resource"
	"github.com/kestrelgfx/forge/serialize"
)

// addTangents augments data (already built from a 3D GeometryConfig) with
// generated Normal and Tangent vertex semantics, restoring the Geometry
// System's "tangent generation" step.
// The OBJ/.mesh pipeline this module loads from does not carry normals
// (resource.parseOBJ documents "normals ... are ignored"), so flat
// per-face normals are derived from the triangle list first; tangents are
// then computed from those normals plus the existing UV/position data via
// mesh.GenerateTangents, the same routine a mesh carrying real normals
// would use.
//
// cfg.Indices must be a triangle list; 2D geometry has no use for tangent-space
// data and is left untouched by the caller.
func addTangents(data *mesh.GeometryData, cfg *resource.GeometryConfig) {
	if len(cfg.Indices) == 0 || len(cfg.Indices)%3 != 0 {
		return
	}
	positions := make([]linear.V3, len(cfg.Vertices3D))
	for i, v := range cfg.Vertices3D {
		positions[i] = v.Position
	}
	normals := flatNormals(positions, cfg.Indices)

	verts := make([]mesh.Vertex3D, len(cfg.Vertices3D))
	for i, v := range cfg.Vertices3D {
		verts[i] = mesh.Vertex3D{Position: v.Position, Normal: normals[i], UV: v.TexCoord}
	}
	tangents := mesh.GenerateTangents(verts, cfg.Indices)

	normW, tanW := serialize.NewWriter(), serialize.NewWriter()
	for _, n := range normals {
		normW.F32(n[0])
		normW.F32(n[1])
		normW.F32(n[2])
	}
	for _, t := range tangents {
		tanW.F32(t[0])
		tanW.F32(t[1])
		tanW.F32(t[2])
		tanW.F32(t[3])
	}

	normSrc := len(data.Srcs)
	data.Srcs = append(data.Srcs, bytes.NewReader(normW.Bytes()))
	tanSrc := len(data.Srcs)
	data.Srcs = append(data.Srcs, bytes.NewReader(tanW.Bytes()))

	data.SemanticMask |= mesh.Normal | mesh.Tangent
	data.Semantics[mesh.Normal.I()] = mesh.SemanticData{Format: driver.Float32x3, Src: normSrc}
	data.Semantics[mesh.Tangent.I()] = mesh.SemanticData{Format: driver.Float32x4, Src: tanSrc}
}

// flatNormals computes a per-vertex normal as the area-weighted average of
// the face normals of every triangle the vertex belongs to.
func flatNormals(positions []linear.V3, indices []uint32) []linear.V3 {
	normals := make([]linear.V3, len(positions))
	for i := 0; i+2 < len(indices); i += 3 {
		i0, i1, i2 := indices[i], indices[i+1], indices[i+2]
		var e1, e2, face linear.V3
		e1.Sub(&positions[i1], &positions[i0])
		e2.Sub(&positions[i2], &positions[i0])
		face.Cross(&e1, &e2)
		for _, idx := range [3]uint32{i0, i1, i2} {
			normals[idx].Add(&normals[idx], &face)
		}
	}
	for i := range normals {
		if l := normals[i].Len(); l > 1e-8 {
			normals[i].Norm(&normals[i])
		} else {
			normals[i] = linear.V3{0, 1, 0}
		}
	}
	return normals
}
