// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package system

import (
	"math"
	"testing"

	"github.com/kestrelgfx/forge/linear"
	"github.com/kestrelgfx/forge/mesh"
	"github.com/kestrelgfx/forge/resource"
)

func TestFlatNormalsPointsAwayFromPlane(t *testing.T) {
	// A single triangle in the XY plane, CCW when viewed from +Z, should
	// produce a +Z normal at every vertex.
	positions := []linear.V3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}
	indices := []uint32{0, 1, 2}
	normals := flatNormals(positions, indices)
	for i, n := range normals {
		if math.Abs(float64(n[2]-1)) > 1e-5 || math.Abs(float64(n[0])) > 1e-5 || math.Abs(float64(n[1])) > 1e-5 {
			t.Errorf("normal[%d] = %v, want ~{0,0,1}", i, n)
		}
	}
}

func TestFlatNormalsDegenerateTriangleFallsBack(t *testing.T) {
	// Three collinear points: cross product is the zero vector.
	positions := []linear.V3{{0, 0, 0}, {1, 0, 0}, {2, 0, 0}}
	indices := []uint32{0, 1, 2}
	normals := flatNormals(positions, indices)
	for i, n := range normals {
		if n.Len() < 1e-8 {
			t.Errorf("normal[%d] was left zero-length", i)
		}
	}
}

func TestAddTangentsSetsSemanticMaskAndSources(t *testing.T) {
	cfg := &resource.GeometryConfig{
		DimCount: 3,
		Indices:  []uint32{0, 1, 2},
		Vertices3D: []resource.Vertex3D{
			{Position: [3]float32{0, 0, 0}, TexCoord: [2]float32{0, 0}},
			{Position: [3]float32{1, 0, 0}, TexCoord: [2]float32{1, 0}},
			{Position: [3]float32{0, 1, 0}, TexCoord: [2]float32{0, 1}},
		},
	}
	data := cfg.ToGeometryData()
	srcsBefore := len(data.Srcs)

	addTangents(data, cfg)

	if data.SemanticMask&mesh.Normal == 0 || data.SemanticMask&mesh.Tangent == 0 {
		t.Fatalf("SemanticMask = %v, want Normal and Tangent set", data.SemanticMask)
	}
	if len(data.Srcs) != srcsBefore+2 {
		t.Fatalf("len(Srcs) = %d, want %d", len(data.Srcs), srcsBefore+2)
	}
	normSem := data.Semantics[mesh.Normal.I()]
	tanSem := data.Semantics[mesh.Tangent.I()]
	if normSem.Src == tanSem.Src {
		t.Fatal("Normal and Tangent semantics point at the same source")
	}
}

func TestAddTangentsIgnoresNonTriangleIndexCounts(t *testing.T) {
	cfg := &resource.GeometryConfig{
		DimCount:   3,
		Indices:    []uint32{0, 1},
		Vertices3D: []resource.Vertex3D{{}, {}},
	}
	data := cfg.ToGeometryData()
	before := data.SemanticMask
	addTangents(data, cfg)
	if data.SemanticMask != before {
		t.Fatal("addTangents mutated SemanticMask for a non-triangle index list")
	}
}
