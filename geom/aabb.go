// Copyright 2026 Gustavo C. Viegas. All rights reserved.

// Package geom implements the axis-aligned bounding box types used to
// describe geometry extents and their rigid/affine transform, as two
// concrete types for the dimension counts the renderer actually needs.
package geom

import "github.com/kestrelgfx/forge/linear"

// AABB3 is a 3-dimensional axis-aligned bounding box.
// The zero value is a degenerate box at the origin, which IsValid
// reports as valid; use Reset to obtain an invalid (empty) box ready for
// repeated ExpandPoint calls.
type AABB3 struct {
	Min, Max linear.V3
}

// Reset makes b an invalid (empty) box: any ExpandPoint/ExpandBox call
// against it behaves as if b did not contain anything yet.
func (b *AABB3) Reset() {
	const inf = float32(3.4e38)
	b.Min = linear.V3{inf, inf, inf}
	b.Max = linear.V3{-inf, -inf, -inf}
}

// IsValid reports whether b has non-negative extent on every axis.
func (b *AABB3) IsValid() bool {
	return b.Min[0] <= b.Max[0] && b.Min[1] <= b.Max[1] && b.Min[2] <= b.Max[2]
}

// Center returns the midpoint of b.
func (b *AABB3) Center() linear.V3 {
	var c linear.V3
	for i := range c {
		c[i] = (b.Min[i] + b.Max[i]) * 0.5
	}
	return c
}

// Extent returns the full size of b along each axis.
func (b *AABB3) Extent() linear.V3 {
	var e linear.V3
	for i := range e {
		e[i] = b.Max[i] - b.Min[i]
	}
	return e
}

// ExpandPoint grows b, if necessary, so that it contains p.
func (b *AABB3) ExpandPoint(p *linear.V3) {
	for i := range p {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
}

// ExpandBox grows b, if necessary, so that it contains o.
func (b *AABB3) ExpandBox(o *AABB3) {
	b.ExpandPoint(&o.Min)
	b.ExpandPoint(&o.Max)
}

// Contains reports whether p lies within b.
func (b *AABB3) Contains(p *linear.V3) bool {
	for i := range p {
		if p[i] < b.Min[i] || p[i] > b.Max[i] {
			return false
		}
	}
	return true
}

// Transform sets dst to the AABB of b's eight corners transformed by the
// rotation/scale matrix m followed by the translation t - i.e., it computes
// the AABB of the 2^3 transformed corners.
func (b *AABB3) Transform(dst *AABB3, m *linear.M3, t *linear.V3) {
	corners := cornersOf3(b)
	var out AABB3
	out.Reset()
	for i := range corners {
		var c linear.V3
		for r := 0; r < 3; r++ {
			c[r] = t[r]
			for k := 0; k < 3; k++ {
				c[r] += m[k][r] * corners[i][k]
			}
		}
		out.ExpandPoint(&c)
	}
	*dst = out
}

func cornersOf3(o *AABB3) [8]linear.V3 {
	return [8]linear.V3{
		{o.Min[0], o.Min[1], o.Min[2]},
		{o.Max[0], o.Min[1], o.Min[2]},
		{o.Min[0], o.Max[1], o.Min[2]},
		{o.Max[0], o.Max[1], o.Min[2]},
		{o.Min[0], o.Min[1], o.Max[2]},
		{o.Max[0], o.Min[1], o.Max[2]},
		{o.Min[0], o.Max[1], o.Max[2]},
		{o.Max[0], o.Max[1], o.Max[2]},
	}
}

// AABB2 is a 2-dimensional axis-aligned bounding box, used for UI/sprite
// geometry.
type AABB2 struct {
	Min, Max [2]float32
}

// Reset makes b an invalid (empty) box.
func (b *AABB2) Reset() {
	const inf = float32(3.4e38)
	b.Min = [2]float32{inf, inf}
	b.Max = [2]float32{-inf, -inf}
}

// ExpandPoint grows b, if necessary, so that it contains p.
func (b *AABB2) ExpandPoint(p [2]float32) {
	for i := range p {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
}

// Transform sets dst to the AABB of b's four corners transformed by m and t.
func (b *AABB2) Transform(dst *AABB2, m *linear.M3, t [2]float32) {
	corners := [4][2]float32{
		{b.Min[0], b.Min[1]},
		{b.Max[0], b.Min[1]},
		{b.Min[0], b.Max[1]},
		{b.Max[0], b.Max[1]},
	}
	var out AABB2
	out.Reset()
	for i := range corners {
		var c [2]float32
		for r := 0; r < 2; r++ {
			c[r] = t[r]
			for k := 0; k < 2; k++ {
				c[r] += m[k][r] * corners[i][k]
			}
		}
		out.ExpandPoint(c)
	}
	*dst = out
}
