// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package resource

import (
	"fmt"
	"os"

	"github.com/kestrelgfx/forge/serialize"
)

// meshFileVersion is the wire version written to every .mesh sidecar.
const meshFileVersion = 1

// SaveMesh writes configs to path in the proprietary binary .mesh format,
//: "u64 version | string name | u32 geometry_count | for
// each geometry: u8 dim_count, vertices, indices, extent, name,
// material_name, auto_release, as produced by the serializer."
func SaveMesh(path, name string, configs []*GeometryConfig) error {
	w := serialize.NewWriter()
	w.U64(meshFileVersion)
	w.String(name)
	w.U32(uint32(len(configs)))
	for _, c := range configs {
		writeGeometryConfig(w, c)
	}
	return os.WriteFile(path, w.Bytes(), 0644)
}

// LoadMesh reads a .mesh sidecar previously written by SaveMesh.
func LoadMesh(path string) (name string, configs []*GeometryConfig, err error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", nil, err
	}
	r := serialize.NewReader(b)

	version, err := r.U64()
	if err != nil {
		return "", nil, err
	}
	if version != meshFileVersion {
		return "", nil, fmt.Errorf("resource: %s: unsupported .mesh version %d", path, version)
	}
	if name, err = r.String(); err != nil {
		return "", nil, err
	}
	count, err := r.U32()
	if err != nil {
		return "", nil, err
	}
	configs = make([]*GeometryConfig, count)
	for i := range configs {
		cfg, err := readGeometryConfig(r)
		if err != nil {
			return "", nil, err
		}
		configs[i] = cfg
	}
	return name, configs, nil
}

func writeGeometryConfig(w *serialize.Writer, c *GeometryConfig) {
	w.U8(c.DimCount)

	if c.DimCount == 2 {
		w.U32(uint32(len(c.Vertices2D)))
		for _, v := range c.Vertices2D {
			w.F32(v.Position[0])
			w.F32(v.Position[1])
			w.F32(v.Position[2])
			w.F32(v.TexCoord[0])
			w.F32(v.TexCoord[1])
		}
	} else {
		w.U32(uint32(len(c.Vertices3D)))
		for _, v := range c.Vertices3D {
			w.F32(v.Position[0])
			w.F32(v.Position[1])
			w.F32(v.Position[2])
			w.F32(v.Color[0])
			w.F32(v.Color[1])
			w.F32(v.Color[2])
			w.F32(v.TexCoord[0])
			w.F32(v.TexCoord[1])
		}
	}

	w.U32(uint32(len(c.Indices)))
	for _, idx := range c.Indices {
		w.U32(idx)
	}

	w.F32(c.Extent.Min[0])
	w.F32(c.Extent.Min[1])
	w.F32(c.Extent.Min[2])
	w.F32(c.Extent.Max[0])
	w.F32(c.Extent.Max[1])
	w.F32(c.Extent.Max[2])

	w.String(c.Name)
	w.String(c.MaterialName)
	w.Bool(c.AutoRelease)
}

func readGeometryConfig(r *serialize.Reader) (*GeometryConfig, error) {
	c := &GeometryConfig{}

	dim, err := r.U8()
	if err != nil {
		return nil, err
	}
	c.DimCount = dim

	vertCount, err := r.U32()
	if err != nil {
		return nil, err
	}
	if dim == 2 {
		c.Vertices2D = make([]Vertex2D, vertCount)
		for i := range c.Vertices2D {
			v := &c.Vertices2D[i]
			if v.Position[0], err = r.F32(); err != nil {
				return nil, err
			}
			if v.Position[1], err = r.F32(); err != nil {
				return nil, err
			}
			if v.Position[2], err = r.F32(); err != nil {
				return nil, err
			}
			if v.TexCoord[0], err = r.F32(); err != nil {
				return nil, err
			}
			if v.TexCoord[1], err = r.F32(); err != nil {
				return nil, err
			}
		}
	} else {
		c.Vertices3D = make([]Vertex3D, vertCount)
		for i := range c.Vertices3D {
			v := &c.Vertices3D[i]
			if v.Position[0], err = r.F32(); err != nil {
				return nil, err
			}
			if v.Position[1], err = r.F32(); err != nil {
				return nil, err
			}
			if v.Position[2], err = r.F32(); err != nil {
				return nil, err
			}
			if v.Color[0], err = r.F32(); err != nil {
				return nil, err
			}
			if v.Color[1], err = r.F32(); err != nil {
				return nil, err
			}
			if v.Color[2], err = r.F32(); err != nil {
				return nil, err
			}
			if v.TexCoord[0], err = r.F32(); err != nil {
				return nil, err
			}
			if v.TexCoord[1], err = r.F32(); err != nil {
				return nil, err
			}
		}
	}

	idxCount, err := r.U32()
	if err != nil {
		return nil, err
	}
	c.Indices = make([]uint32, idxCount)
	for i := range c.Indices {
		if c.Indices[i], err = r.U32(); err != nil {
			return nil, err
		}
	}

	for _, f := range []*float32{&c.Extent.Min[0], &c.Extent.Min[1], &c.Extent.Min[2], &c.Extent.Max[0], &c.Extent.Max[1], &c.Extent.Max[2]} {
		if *f, err = r.F32(); err != nil {
			return nil, err
		}
	}

	if c.Name, err = r.String(); err != nil {
		return nil, err
	}
	if c.MaterialName, err = r.String(); err != nil {
		return nil, err
	}
	if c.AutoRelease, err = r.Bool(); err != nil {
		return nil, err
	}

	return c, nil
}
