// Copyright 2026 Gustavo C. Viegas. All rights reserved.

// Package resource implements the resource-loading layer: a uniform
// Loader interface keyed by a type tag, concrete loaders for text,
// binary, image, material, shader and mesh resources, and a System that
// resolves names to paths under a configurable base directory.
package resource

import (
	"errors"
	"fmt"

	"github.com/kestrelgfx/forge/internal/log"
)

const logPrefix = "resource: "

// Sentinel errors.
var (
	ErrInvalidArgument = errors.New("resource: invalid argument")
	ErrNotFound        = errors.New("resource: not found")
	ErrWrongLoaderType = errors.New("resource: wrong loader type for resource")
)

// Type identifies the kind of resource a Loader produces.
type Type int

// Resource types.
const (
	Text Type = iota
	Binary
	Image
	Material
	Shader
	Mesh

	numTypes
)

// typePath is the directory component each Type resolves under, relative
// to System.BasePath.
var typePath = [numTypes]string{
	Text:     "text",
	Binary:   "binary",
	Image:    "images",
	Material: "materials",
	Shader:   "shaders",
	Mesh:     "meshes",
}

// String implements fmt.Stringer.
func (t Type) String() string {
	switch t {
	case Text:
		return "Text"
	case Binary:
		return "Binary"
	case Image:
		return "Image"
	case Material:
		return "Material"
	case Shader:
		return "Shader"
	case Mesh:
		return "Mesh"
	default:
		return "!resource.Type"
	}
}

// Resource is the common header every loaded asset carries: name, full
// path, loader-type tag, optional id.
type Resource struct {
	Name       string
	Path       string
	LoaderType Type
	ID         int

	// Data holds the loader-specific payload: string for Text, []byte for
	// Binary, *ImageData for Image, *MaterialConfig for Material,
	// *shader.Config for Shader, []*GeometryConfig for Mesh.
	Data any
}

// Loader resolves and loads/unloads one resource type
type Loader interface {
	// Type returns the resource type this loader handles.
	Type() Type

	// Load resolves name under root (System.typeDir(Type())) and returns
	// the loaded Resource.
	Load(root, name string) (*Resource, error)

	// Unload releases any resources the loader itself owns (e.g. file
	// handles kept open); most loaders are stateless and no-op here.
	Unload(res *Resource)
}

func wrongType(loaderType Type, res *Resource) error {
	if res.LoaderType != loaderType {
		return fmt.Errorf("%w: %s loader used for %q resource", ErrWrongLoaderType, loaderType, res.Name)
	}
	return nil
}

func warnUnload(res *Resource) bool {
	if res == nil {
		log.Warnf(logPrefix, "unload called with nil resource")
		return false
	}
	return true
}
