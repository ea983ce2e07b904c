// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package resource

import (
	"fmt"
	"path/filepath"

	"github.com/kestrelgfx/forge/internal/log"
)

// Config configures a System.
type Config struct {
	// BasePath is the root every loader resolves under: the "the
	// only configurable root". Defaults to "./assets".
	BasePath string
}

// DefaultConfig returns the system's default configuration.
func DefaultConfig() Config {
	return Config{BasePath: "./assets"}
}

// System dispatches Load calls to the Loader registered for a resource's
// type tag
type System struct {
	cfg     Config
	loaders [numTypes]Loader
}

// NewSystem creates a System with cfg and all six built-in loaders
// registered (Text, Binary, Image, Material, Shader, Mesh). A caller that
// needs a different loader for one of these types (e.g. a test double)
// may call Register again to replace it.
func NewSystem(cfg Config) *System {
	if cfg.BasePath == "" {
		cfg.BasePath = DefaultConfig().BasePath
	}
	s := &System{cfg: cfg}
	s.Register(&TextLoader{})
	s.Register(&BinaryLoader{})
	s.Register(&ImageLoader{})
	s.Register(&MaterialLoader{})
	s.Register(&ShaderLoader{})
	s.Register(&MeshLoader{})
	return s
}

// Register installs l as the loader for its Type, replacing any loader
// previously registered for that type.
func (s *System) Register(l Loader) {
	s.loaders[l.Type()] = l
}

// typeDir returns the directory a given Type resolves under.
func (s *System) typeDir(t Type) string {
	return filepath.Join(s.cfg.BasePath, typePath[t])
}

// Path resolves name to its on-disk path under t's type directory, without
// loading it. No extension is appended; loaders apply their own extension
// rules to the type directory that Load passes them.
func (s *System) Path(t Type, name string) string {
	return filepath.Join(s.typeDir(t), name)
}

// Load dispatches to the loader registered for t, resolving name under
// that loader's type directory. Overlong or otherwise malformed names
// fail gracefully: this function always returns a non-nil
// error in that case so the caller (a texture/material/shader/geometry
// system) can substitute its built-in default, but never panics.
func (s *System) Load(t Type, name string) (*Resource, error) {
	if int(t) < 0 || int(t) >= int(numTypes) {
		return nil, fmt.Errorf("%w: undefined resource type %d", ErrInvalidArgument, t)
	}
	if err := validateName(name); err != nil {
		log.Warnf(logPrefix, "%s %q: %v", t, name, err)
		return nil, err
	}
	l := s.loaders[t]
	if l == nil {
		return nil, fmt.Errorf("%w: no loader registered for %s", ErrInvalidArgument, t)
	}
	res, err := l.Load(s.typeDir(t), name)
	if err != nil {
		log.Warnf(logPrefix, "load %s %q: %v", t, name, err)
		return nil, err
	}
	return res, nil
}

// Unload releases any loader-owned state for res, per res.LoaderType.
func (s *System) Unload(res *Resource) {
	if !warnUnload(res) {
		return
	}
	if l := s.loaders[res.LoaderType]; l != nil {
		l.Unload(res)
	}
}

// maxNameLen bounds a resolvable resource name; names over this length are
// rejected locally rather than handed to the filesystem
// "overlong names fail gracefully" invariant.
const maxNameLen = 255

func validateName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: empty resource name", ErrInvalidArgument)
	case len(name) > maxNameLen:
		return fmt.Errorf("%w: resource name exceeds %d bytes", ErrInvalidArgument, maxNameLen)
	case filepath.IsAbs(name):
		return fmt.Errorf("%w: resource name must be relative: %q", ErrInvalidArgument, name)
	}
	return nil
}
