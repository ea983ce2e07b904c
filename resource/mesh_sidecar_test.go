// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package resource

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/kestrelgfx/forge/geom"
)

// TestMeshRoundTrip mirrors the concrete "Mesh round-trip"
// scenario: save a single triangle, reload it, and expect an identical
// config under field-wise equality of {dim_count, vertices, indices,
// extent, name, material_name, auto_release}.
func TestMeshRoundTrip(t *testing.T) {
	want := &GeometryConfig{
		DimCount:     3,
		Name:         "triangle",
		MaterialName: "default",
		AutoRelease:  true,
		Indices:      []uint32{0, 1, 2},
		Extent: geom.AABB3{
			Min: [3]float32{0, 0, 0},
			Max: [3]float32{1, 1, 0},
		},
		Vertices3D: []Vertex3D{
			{Position: [3]float32{0, 0, 0}, Color: [3]float32{1, 1, 1}, TexCoord: [2]float32{0, 0}},
			{Position: [3]float32{1, 0, 0}, Color: [3]float32{1, 1, 1}, TexCoord: [2]float32{1, 0}},
			{Position: [3]float32{0, 1, 0}, Color: [3]float32{1, 1, 1}, TexCoord: [2]float32{0, 1}},
		},
	}

	path := filepath.Join(t.TempDir(), "triangle.mesh")
	if err := SaveMesh(path, "triangle_array", []*GeometryConfig{want}); err != nil {
		t.Fatalf("SaveMesh: %v", err)
	}

	name, got, err := LoadMesh(path)
	if err != nil {
		t.Fatalf("LoadMesh: %v", err)
	}
	if name != "triangle_array" {
		t.Errorf("array name = %q, want %q", name, "triangle_array")
	}
	if len(got) != 1 {
		t.Fatalf("len(got) = %d, want 1", len(got))
	}
	if !reflect.DeepEqual(got[0], want) {
		t.Errorf("round-tripped config differs:\ngot  %+v\nwant %+v", got[0], want)
	}
}

func TestMeshRoundTripEmptyArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.mesh")
	if err := SaveMesh(path, "empty", nil); err != nil {
		t.Fatalf("SaveMesh: %v", err)
	}
	name, got, err := LoadMesh(path)
	if err != nil {
		t.Fatalf("LoadMesh: %v", err)
	}
	if name != "empty" || len(got) != 0 {
		t.Errorf("got (%q, len %d), want (\"empty\", len 0)", name, len(got))
	}
}

func TestLoadMeshRejectsBadVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.mesh")
	if err := SaveMesh(path, "bad", nil); err != nil {
		t.Fatalf("SaveMesh: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	b[0] = 0xFF // corrupt the version field
	if err := os.WriteFile(path, b, 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, _, err := LoadMesh(path); err == nil {
		t.Error("LoadMesh succeeded on a corrupted version field, want error")
	}
}
