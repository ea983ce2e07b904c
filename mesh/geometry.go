// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package mesh

import (
	"io"

	"github.com/kestrelgfx/forge/driver"
	"github.com/kestrelgfx/forge/geom"
)

// SemanticData describes how to fetch one semantic's data from
// GeometryData.Srcs.
type SemanticData struct {
	Format driver.VertexFmt
	Offset int64
	Src    int
}

// IndexData describes how to fetch index data from GeometryData.Srcs.
type IndexData struct {
	Format driver.IndexFmt
	Offset int64
	Src    int
}

// GeometryData describes one geometry's source data, as produced by a
// mesh loader.
type GeometryData struct {
	Name         string
	MaterialName string
	AutoRelease  bool
	Topology     driver.Topology
	VertexCount  int
	IndexCount   int
	// SemanticMask indicates which semantics this geometry provides.
	SemanticMask Semantic
	Semantics    [MaxSemantic]SemanticData
	// Index describes the index buffer's data. Ignored if IndexCount<=0.
	Index IndexData
	// Extent is the bounding box supplied by the loader (e.g. from a
	// .mesh sidecar); if both Min and Max are zero, it is recomputed
	// from the Position semantic instead.
	Extent geom.AABB3

	Srcs []io.ReadSeeker
}

// Geometry is a single drawable primitive: a stable handle into the
// shared vertex/index Buffer plus a bounding box and a material
// reference.
type Geometry struct {
	name         string
	materialName string
	autoRelease  bool
	topology     driver.Topology
	count        int
	mask         Semantic
	vertex       [MaxSemantic]struct {
		format driver.VertexFmt
		span
	}
	index struct {
		format driver.IndexFmt
		span
	}
	bbox geom.AABB3
}

// Name returns the geometry's resource name.
func (g *Geometry) Name() string { return g.name }

// MaterialName returns the name of the material this geometry
// references (resolved via the material system at draw time).
func (g *Geometry) MaterialName() string { return g.materialName }

// AutoRelease reports whether the geometry should be destroyed once its
// reference count reaches zero.
func (g *Geometry) AutoRelease() bool { return g.autoRelease }

// BoundingBox returns the geometry's local-space bounding box.
func (g *Geometry) BoundingBox() *geom.AABB3 { return &g.bbox }

// Inputs returns the driver.VertexIn slice describing this geometry's
// vertex input layout. Inputs are ordered by the Semantic value they
// represent; VertexIn.Nr is set to Semantic.I().
func (g *Geometry) Inputs() []driver.VertexIn {
	var vin [MaxSemantic]driver.VertexIn
	var n int
	for i := 0; i < MaxSemantic; i++ {
		if g.mask&(1<<i) == 0 {
			continue
		}
		vin[n] = driver.VertexIn{
			Format: g.vertex[i].format,
			Stride: g.vertex[i].format.Size(),
			Nr:     i,
		}
		n++
	}
	return vin[:n]
}

// Draw records the vertex/index buffer bindings and draw command for
// this geometry. The caller must have an active render pass and a
// compatible pipeline bound (vertex inputs matching Inputs()).
func (g *Geometry) Draw(buf *Buffer, cb driver.CmdBuffer, instCnt int) {
	if instCnt < 1 {
		instCnt = 1
	}
	var vb [MaxSemantic]driver.Buffer
	var off [MaxSemantic]int64
	var n int
	for i := 0; i < MaxSemantic; i++ {
		if g.mask&(1<<i) == 0 {
			continue
		}
		vb[n] = buf.Driver()
		off[n] = g.vertex[i].byteStart()
		n++
	}
	cb.SetVertexBuf(0, vb[:n], off[:n])
	if g.index.start >= g.index.end {
		cb.Draw(g.count, instCnt, 0, 0)
	} else {
		cb.SetIndexBuf(g.index.format, buf.Driver(), g.index.byteStart())
		cb.DrawIndexed(g.count, instCnt, 0, 0, 0)
	}
}

// NewGeometry stores data's vertex/index attributes into buf and returns
// a handle to the resulting Geometry.
func NewGeometry(buf *Buffer, data *GeometryData) (*Geometry, error) {
	if err := validateGeometryData(data); err != nil {
		return nil, err
	}

	buf.Lock()
	defer buf.Unlock()

	g := &Geometry{
		name:         data.Name,
		materialName: data.MaterialName,
		autoRelease:  data.AutoRelease,
		topology:     data.Topology,
		mask:         data.SemanticMask,
		bbox:         data.Extent,
	}

	if data.IndexCount != 0 {
		g.count = data.IndexCount
		g.index.format = data.Index.Format
		var isz int
		switch g.index.format {
		case driver.Index16:
			isz = 2
		case driver.Index32:
			isz = 4
		default:
			return nil, newErr("undefined driver.IndexFmt constant")
		}
		src := data.Srcs[data.Index.Src]
		if _, err := src.Seek(data.Index.Offset, io.SeekStart); err != nil {
			return nil, err
		}
		var err error
		if g.index.span, err = buf.store(src, g.count*isz); err != nil {
			return nil, err
		}
	} else {
		g.count = data.VertexCount
	}

	var positions []byte
	for i := range data.Semantics {
		sem := Semantic(1 << i)
		if data.SemanticMask&sem == 0 {
			continue
		}
		fmt := data.Semantics[i].Format
		src := data.Srcs[data.Semantics[i].Src]
		off := data.Semantics[i].Offset
		if _, err := src.Seek(off, io.SeekStart); err != nil {
			g.free(buf)
			return nil, err
		}
		conv, err := sem.conv(fmt, src, data.VertexCount)
		if err != nil {
			g.free(buf)
			return nil, err
		}
		fmt = sem.format()
		g.vertex[i].format = fmt
		if sem == Position {
			positions = make([]byte, data.VertexCount*fmt.Size())
			if _, err := io.ReadFull(conv, positions); err != nil {
				g.free(buf)
				return nil, err
			}
			conv = bytesReader(positions)
		}
		if g.vertex[i].span, err = buf.store(conv, data.VertexCount*fmt.Size()); err != nil {
			g.free(buf)
			return nil, err
		}
	}

	if (!g.bbox.IsValid() || g.bbox == (geom.AABB3{})) && positions != nil {
		g.bbox.Reset()
		computeBBox(&g.bbox, positions)
	}

	return g, nil
}

// Free invalidates g and makes the buffer space it holds available for
// reuse.
func (g *Geometry) Free(buf *Buffer) {
	buf.Lock()
	defer buf.Unlock()
	g.free(buf)
}

func (g *Geometry) free(buf *Buffer) {
	for i := range g.vertex {
		if g.mask&(1<<i) != 0 {
			buf.free(g.vertex[i].span)
		}
	}
	if g.index.start < g.index.end {
		buf.free(g.index.span)
	}
}

func validateGeometryData(data *GeometryData) error {
	switch {
	case data == nil:
		return newErr("nil data")
	case data.VertexCount < 0:
		return newErr("invalid vertex count")
	case data.SemanticMask&Position == 0:
		return newErr("no position semantic")
	case len(data.Srcs) == 0:
		return newErr("no data source")
	case data.IndexCount > 0 && uint(data.Index.Src) >= uint(len(data.Srcs)):
		return newErr("index data source out of bounds")
	}
	cnt := data.VertexCount
	if data.IndexCount > 0 {
		cnt = data.IndexCount
	}
	switch data.Topology {
	case driver.TPoint:
	case driver.TLine:
		if cnt&1 != 0 {
			return newErr("invalid count for driver.TLine")
		}
	case driver.TLnStrip:
		if cnt < 2 {
			return newErr("invalid count for driver.TLnStrip")
		}
	case driver.TTriangle:
		if cnt%3 != 0 {
			return newErr("invalid count for driver.TTriangle")
		}
	case driver.TTriStrip:
		if cnt < 3 {
			return newErr("invalid count for driver.TTriStrip")
		}
	default:
		return newErr("undefined driver.Topology constant")
	}
	for i := range data.Semantics {
		if data.SemanticMask&(1<<i) == 0 {
			continue
		}
		if uint(data.Semantics[i].Src) >= uint(len(data.Srcs)) {
			return newErr("semantic data source out of bounds")
		}
	}
	return nil
}
