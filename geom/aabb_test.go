// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package geom

import (
	"math"
	"testing"

	"github.com/kestrelgfx/forge/linear"
)

func almostEqual(a, b float32) bool { return math.Abs(float64(a-b)) < 1e-4 }

func TestAABB3TransformMatchesCorners(t *testing.T) {
	b := AABB3{Min: linear.V3{-1, -2, -3}, Max: linear.V3{1, 2, 3}}

	var m linear.M3
	m.I()
	m[0][0] = 2 // scale X by 2
	trans := linear.V3{5, 0, 0}

	var got AABB3
	b.Transform(&got, &m, &trans)

	want := AABB3{Min: linear.V3{3, -2, -3}, Max: linear.V3{7, 2, 3}}
	for i := 0; i < 3; i++ {
		if !almostEqual(got.Min[i], want.Min[i]) || !almostEqual(got.Max[i], want.Max[i]) {
			t.Fatalf("Transform() = %+v, want %+v", got, want)
		}
	}
}

func TestAABB3ExpandPoint(t *testing.T) {
	var b AABB3
	b.Reset()
	if b.IsValid() {
		t.Fatal("reset box should be invalid")
	}
	b.ExpandPoint(&linear.V3{1, 2, 3})
	b.ExpandPoint(&linear.V3{-1, 5, 0})
	if !b.IsValid() {
		t.Fatal("box should be valid after expansion")
	}
	want := AABB3{Min: linear.V3{-1, 2, 0}, Max: linear.V3{1, 5, 3}}
	if b != want {
		t.Fatalf("got %+v, want %+v", b, want)
	}
}
