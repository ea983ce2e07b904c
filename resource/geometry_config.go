// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package resource

import (
	"bytes"
	"io"

	"github.com/kestrelgfx/forge/driver"
	"github.com/kestrelgfx/forge/geom"
	"github.com/kestrelgfx/forge/mesh"
	"github.com/kestrelgfx/forge/serialize"
)

// Vertex3D is one 3D mesh vertex.
type Vertex3D struct {
	Position [3]float32
	Color    [3]float32
	TexCoord [2]float32
}

// Vertex2D is one 2D (UI) mesh vertex.
type Vertex2D struct {
	Position [3]float32
	TexCoord [2]float32
}

// GeometryConfig is the CPU-side, serializable intermediate form a mesh
// loader produces — the thing actually written to and read back from a
// .mesh sidecar, kept
// distinct from mesh.GeometryData (which addresses GPU-upload byte
// streams) because the two have different lifetimes: a GeometryConfig
// outlives the load, a GeometryData's Srcs do not.
type GeometryConfig struct {
	DimCount     uint8
	Name         string
	MaterialName string
	AutoRelease  bool
	Indices      []uint32
	Extent       geom.AABB3
	Vertices3D   []Vertex3D // valid when DimCount == 3
	Vertices2D   []Vertex2D // valid when DimCount == 2
}

// ToGeometryData converts cfg into a mesh.GeometryData ready for
// mesh.NewGeometry, materializing the vertex/index byte streams
// mesh.NewGeometry reads from.
func (cfg *GeometryConfig) ToGeometryData() *mesh.GeometryData {
	data := &mesh.GeometryData{
		Name:         cfg.Name,
		MaterialName: cfg.MaterialName,
		AutoRelease:  cfg.AutoRelease,
		Topology:     driver.TTriangle,
		Extent:       cfg.Extent,
	}

	pos, uv, col := serialize.NewWriter(), serialize.NewWriter(), serialize.NewWriter()
	switch cfg.DimCount {
	case 2:
		data.VertexCount = len(cfg.Vertices2D)
		for _, v := range cfg.Vertices2D {
			pos.F32(v.Position[0])
			pos.F32(v.Position[1])
			pos.F32(v.Position[2])
			uv.F32(v.TexCoord[0])
			uv.F32(v.TexCoord[1])
		}
	default:
		data.VertexCount = len(cfg.Vertices3D)
		for _, v := range cfg.Vertices3D {
			pos.F32(v.Position[0])
			pos.F32(v.Position[1])
			pos.F32(v.Position[2])
			uv.F32(v.TexCoord[0])
			uv.F32(v.TexCoord[1])
			col.F32(v.Color[0])
			col.F32(v.Color[1])
			col.F32(v.Color[2])
			col.F32(1)
		}
	}

	data.Srcs = []io.ReadSeeker{
		bytes.NewReader(pos.Bytes()),
		bytes.NewReader(uv.Bytes()),
		bytes.NewReader(col.Bytes()),
	}
	data.SemanticMask = mesh.Position | mesh.TexCoord0
	data.Semantics[mesh.Position.I()] = mesh.SemanticData{Format: driver.Float32x3, Src: 0}
	data.Semantics[mesh.TexCoord0.I()] = mesh.SemanticData{Format: driver.Float32x2, Src: 1}
	if cfg.DimCount != 2 {
		data.SemanticMask |= mesh.Color0
		data.Semantics[mesh.Color0.I()] = mesh.SemanticData{Format: driver.Float32x4, Src: 2}
	}

	if len(cfg.Indices) > 0 {
		data.IndexCount = len(cfg.Indices)
		data.Index = mesh.IndexData{Format: driver.Index32, Src: len(data.Srcs)}
		idx := serialize.NewWriter()
		for _, i := range cfg.Indices {
			idx.U32(i)
		}
		data.Srcs = append(data.Srcs, bytes.NewReader(idx.Bytes()))
	}

	return data
}
