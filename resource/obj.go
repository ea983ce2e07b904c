// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package resource

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/kestrelgfx/forge/geom"
	"github.com/kestrelgfx/forge/linear"
)

// epsilon32 bounds the position-match tolerance used to collapse duplicate
// OBJ vertices into a shared index
// match (Epsilon32)".
const epsilon32 = 1e-5

// objVertexKey truncates a vertex's fields to a grid of epsilon32-sized
// cells, so values that fall in the same cell hash identically.
type objVertexKey struct {
	px, py, pz int32
	u, v       int32
}

func quantize(f float32) int32 { return int32(f / epsilon32) }

// objShape accumulates one OBJ "o"/"g" group's deduplicated vertex/index
// data as faces are parsed.
type objShape struct {
	name    string
	indices map[objVertexKey]uint32
	verts   []Vertex3D
	idx     []uint32
	bbox    geom.AABB3
}

// parseOBJ parses a Wavefront .obj file into one GeometryConfig per "o"/"g"
// group (a single default group if the file declares none), producing
// {position, texture_coord(1-v)} vertices with unique-index collapse.
// Only the subset of the format the renderer's geometry
// pipeline consumes is recognized (v/vt/f); normals, smoothing groups and
// curves are ignored — OBJ parsing is an out-of-scope collaborator
// surface, not a core module, so this loader covers triangulated meshes
// rather than the full specification.
func parseOBJ(path string) ([]*GeometryConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var positions [][3]float32
	var texCoords [][2]float32

	shapes := []*objShape{{name: "default", indices: map[objVertexKey]uint32{}}}
	shapes[0].bbox.Reset()
	cur := shapes[0]

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), 1<<20)
	line := 0
	for sc.Scan() {
		line++
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		fields := strings.Fields(s)
		switch fields[0] {
		case "v":
			p, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("resource: %s:%d: %w", path, line, err)
			}
			positions = append(positions, p)
		case "vt":
			if len(fields) < 3 {
				return nil, fmt.Errorf("resource: %s:%d: malformed vt", path, line)
			}
			u, err1 := strconv.ParseFloat(fields[1], 32)
			v, err2 := strconv.ParseFloat(fields[2], 32)
			if err1 != nil || err2 != nil {
				return nil, fmt.Errorf("resource: %s:%d: malformed vt", path, line)
			}
			// OBJ's v axis is bottom-up; the renderer samples top-down.
			texCoords = append(texCoords, [2]float32{float32(u), 1 - float32(v)})
		case "o", "g":
			name := "default"
			if len(fields) > 1 {
				name = fields[1]
			}
			if len(cur.idx) == 0 && len(cur.verts) == 0 && cur.name == "default" {
				cur.name = name
			} else {
				ns := &objShape{name: name, indices: map[objVertexKey]uint32{}}
				ns.bbox.Reset()
				shapes = append(shapes, ns)
				cur = ns
			}
		case "f":
			if err := parseFace(cur, fields[1:], positions, texCoords); err != nil {
				return nil, fmt.Errorf("resource: %s:%d: %w", path, line, err)
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	var configs []*GeometryConfig
	for _, sh := range shapes {
		if len(sh.verts) == 0 {
			continue
		}
		configs = append(configs, &GeometryConfig{
			DimCount:    3,
			Name:        sh.name,
			AutoRelease: true,
			Indices:     sh.idx,
			Extent:      sh.bbox,
			Vertices3D:  sh.verts,
		})
	}
	if len(configs) == 0 {
		return nil, fmt.Errorf("resource: %s: no geometry found", path)
	}
	return configs, nil
}

func parseVec3(fields []string) ([3]float32, error) {
	var v [3]float32
	if len(fields) < 3 {
		return v, fmt.Errorf("expected 3 components, got %d", len(fields))
	}
	for i := 0; i < 3; i++ {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return v, fmt.Errorf("malformed float %q", fields[i])
		}
		v[i] = float32(f)
	}
	return v, nil
}

func parseFace(sh *objShape, fields []string, positions [][3]float32, texCoords [][2]float32) error {
	if len(fields) < 3 {
		return fmt.Errorf("face needs at least 3 vertices")
	}
	faceIdx := make([]uint32, len(fields))
	for i, tok := range fields {
		parts := strings.Split(tok, "/")
		pi, err := parseOBJIndex(parts[0], len(positions))
		if err != nil {
			return err
		}
		var uv [2]float32
		if len(parts) > 1 && parts[1] != "" {
			ti, err := parseOBJIndex(parts[1], len(texCoords))
			if err != nil {
				return err
			}
			uv = texCoords[ti]
		}
		pos := positions[pi]
		key := objVertexKey{quantize(pos[0]), quantize(pos[1]), quantize(pos[2]), quantize(uv[0]), quantize(uv[1])}
		idx, ok := sh.indices[key]
		if !ok {
			idx = uint32(len(sh.verts))
			sh.verts = append(sh.verts, Vertex3D{Position: pos, Color: [3]float32{1, 1, 1}, TexCoord: uv})
			sh.indices[key] = idx
			v := linear.V3(pos)
			sh.bbox.ExpandPoint(&v)
		}
		faceIdx[i] = idx
	}
	// Fan-triangulate (faces are assumed convex, matching a standard OBJ
	// triangulated/quad export).
	for i := 1; i+1 < len(faceIdx); i++ {
		sh.idx = append(sh.idx, faceIdx[0], faceIdx[i], faceIdx[i+1])
	}
	return nil
}

func parseOBJIndex(s string, count int) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("malformed index %q", s)
	}
	if n < 0 {
		n = count + n
	} else {
		n--
	}
	if n < 0 || n >= count {
		return 0, fmt.Errorf("index %d out of range", n+1)
	}
	return n, nil
}
