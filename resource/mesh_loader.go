// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package resource

import (
	"os"
	"strings"

	"github.com/kestrelgfx/forge/internal/log"
)

// MeshLoader loads geometry configs, preferring the proprietary binary
// .mesh format when present and falling back to .obj otherwise; a
// successful .obj load writes a .mesh sidecar next to the source file so
// future loads take the binary path.
type MeshLoader struct{}

// Type implements Loader.
func (*MeshLoader) Type() Type { return Mesh }

// Load implements Loader. res.Data is a []*GeometryConfig.
func (*MeshLoader) Load(root, name string) (*Resource, error) {
	base := strings.TrimSuffix(name, filepathExt(name))
	meshPath := joinResolved(root, base, ".mesh")

	if _, err := os.Stat(meshPath); err == nil {
		_, configs, err := LoadMesh(meshPath)
		if err != nil {
			return nil, err
		}
		return &Resource{Name: name, Path: meshPath, LoaderType: Mesh, Data: configs}, nil
	}

	objPath := joinResolved(root, base, ".obj")
	configs, err := parseOBJ(objPath)
	if err != nil {
		return nil, err
	}

	if err := SaveMesh(meshPath, base, configs); err != nil {
		log.Warnf(logPrefix, "writing .mesh sidecar for %q: %v", name, err)
	}

	return &Resource{Name: name, Path: objPath, LoaderType: Mesh, Data: configs}, nil
}

// Unload implements Loader.
func (*MeshLoader) Unload(res *Resource) {
	if !warnUnload(res) {
		return
	}
	_ = wrongType(Mesh, res)
}

func filepathExt(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[i:]
	}
	return ""
}
