// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package mesh

import (
	"math"

	"github.com/kestrelgfx/forge/linear"
)

// Vertex3D is the minimal per-vertex shape GenerateTangents operates on:
// enough to derive a tangent from the UV-space derivative of the
// triangle's edges, restoring the GeometrySystem::generate_tangents step
// the mesh loader calls after index collapse, not otherwise present in the retrieved sources.
type Vertex3D struct {
	Position linear.V3
	Normal   linear.V3
	UV       [2]float32
}

// GenerateTangents computes a per-vertex tangent (with handedness in the
// w component) for an indexed triangle list, accumulating the
// UV-space edge derivative of each triangle into its three vertices and
// orthonormalizing against each vertex's normal (Gram-Schmidt), the
// standard technique for deriving tangents when a mesh format doesn't
// carry them directly.
func GenerateTangents(verts []Vertex3D, indices []uint32) [][4]float32 {
	tan := make([]linear.V3, len(verts))
	bitan := make([]linear.V3, len(verts))

	for i := 0; i+2 < len(indices); i += 3 {
		i0, i1, i2 := indices[i], indices[i+1], indices[i+2]
		v0, v1, v2 := verts[i0], verts[i1], verts[i2]

		var e1, e2 linear.V3
		for k := 0; k < 3; k++ {
			e1[k] = v1.Position[k] - v0.Position[k]
			e2[k] = v2.Position[k] - v0.Position[k]
		}
		du1, dv1 := v1.UV[0]-v0.UV[0], v1.UV[1]-v0.UV[1]
		du2, dv2 := v2.UV[0]-v0.UV[0], v2.UV[1]-v0.UV[1]

		det := du1*dv2 - du2*dv1
		if det == 0 {
			continue
		}
		r := 1 / det

		var t, b linear.V3
		for k := 0; k < 3; k++ {
			t[k] = r * (dv2*e1[k] - dv1*e2[k])
			b[k] = r * (du1*e2[k] - du2*e1[k])
		}
		for _, idx := range [3]uint32{i0, i1, i2} {
			for k := 0; k < 3; k++ {
				tan[idx][k] += t[k]
				bitan[idx][k] += b[k]
			}
		}
	}

	out := make([][4]float32, len(verts))
	for i := range verts {
		n := verts[i].Normal
		t := tan[i]

		// Gram-Schmidt orthonormalize t against n.
		d := dot(n, t)
		var ortho linear.V3
		for k := 0; k < 3; k++ {
			ortho[k] = t[k] - n[k]*d
		}
		l := length(ortho)
		if l < 1e-8 {
			// Degenerate (e.g. an isolated vertex outside any
			// triangle): fall back to an arbitrary axis
			// orthogonal to the normal.
			ortho = arbitraryOrthogonal(n)
			l = length(ortho)
		}
		for k := 0; k < 3; k++ {
			out[i][k] = ortho[k] / l
		}

		// Handedness: +1 if (n x t) agrees with the accumulated
		// bitangent, -1 otherwise.
		cross := linear.V3{
			n[1]*t[2] - n[2]*t[1],
			n[2]*t[0] - n[0]*t[2],
			n[0]*t[1] - n[1]*t[0],
		}
		if dot(cross, bitan[i]) < 0 {
			out[i][3] = -1
		} else {
			out[i][3] = 1
		}
	}
	return out
}

func dot(a, b linear.V3) float32 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func length(v linear.V3) float32 {
	d := dot(v, v)
	if d <= 0 {
		return 0
	}
	return float32(math.Sqrt(float64(d)))
}

func arbitraryOrthogonal(n linear.V3) linear.V3 {
	if n[0] < 0.9 {
		return linear.V3{1 - n[0]*n[0], -n[0] * n[1], -n[0] * n[2]}
	}
	return linear.V3{-n[1] * n[0], 1 - n[1]*n[1], -n[1] * n[2]}
}
