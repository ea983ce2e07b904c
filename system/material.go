// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package system

import (
	"fmt"

	"github.com/kestrelgfx/forge/resource"
	"github.com/kestrelgfx/forge/rtexture"
	"github.com/kestrelgfx/forge/shader"
)

// Material is the runtime state of a loaded .mat resource
// Material data model: its uniform values, the three texture maps it binds
// (diffuse, specular, normal, in the binding order .shadercfg declares its
// instance samplers), and the shader instance those maps and uniforms are
// pushed into.
type Material struct {
	Name         string
	ShaderName   string
	DiffuseColor [4]float32
	Shininess    float32

	Diffuse  rtexture.Map
	Specular rtexture.Map
	Normal   rtexture.Map

	diffuseName  string
	specularName string
	normalName   string

	shader   *shader.Shader
	instance *shader.Instance

	updateRequired bool
}

// Instance returns the shader instance this material's uniforms and maps
// are bound to, for a render module to pass to Shader.BindInstance.
func (m *Material) Instance() *shader.Instance { return m.instance }

// Shader returns the shader this material was acquired against.
func (m *Material) Shader() *shader.Shader { return m.shader }

// MarkDirty flags the material's instance descriptor as needing a rewrite
// on every frame slot's next use, e.g. after SetMaps or a uniform edit made
// directly against Instance().
func (m *Material) MarkDirty() {
	m.updateRequired = true
	m.instance.SetMaps(m.instance.Maps())
}

// Materials is the named, reference-counted material cache.
// It depends on the Shaders and Textures systems to resolve a
// material's shader and texture maps.
type Materials struct {
	res      *resource.System
	shaders  *Shaders
	textures *Textures
	cache    *refcache[*Material]
}

// NewMaterials creates a material system backed by res, resolving shaders
// through shaders and texture maps through textures.
func NewMaterials(res *resource.System, shaders *Shaders, textures *Textures) *Materials {
	return &Materials{res: res, shaders: shaders, textures: textures, cache: newRefcache[*Material]()}
}

// Acquire loads (or returns the already-cached) material named name,
// incrementing its reference count. A load failure, or any failure
// resolving its shader or texture maps, is returned to the caller: unlike
// Textures there is no built-in default material, since a material without
// a valid shader cannot be drawn with at all.
func (m *Materials) Acquire(name string) (*Material, error) {
	if !validName(name) {
		return nil, fmt.Errorf("system: material %q: invalid name", name)
	}
	return m.cache.acquire(name, true, func() (*Material, error) {
		return m.load(name)
	})
}

// Release decrements name's reference count. On reaching zero, the
// material's shader instance, texture maps and shader reference are all
// released.
func (m *Materials) Release(name string) {
	mat, destroy := m.cache.release(name)
	if !destroy {
		return
	}
	mat.shader.Release(mat.instance)
	m.releaseMap(mat.diffuseName)
	m.releaseMap(mat.specularName)
	m.releaseMap(mat.normalName)
	m.shaders.Release(mat.ShaderName)
}

func (m *Materials) releaseMap(name string) {
	if name != "" {
		m.textures.Release(name)
	}
}

func (m *Materials) load(name string) (*Material, error) {
	res, err := m.res.Load(resource.Material, name)
	if err != nil {
		return nil, err
	}
	cfg := res.Data.(*resource.MaterialConfig)

	sh, err := m.shaders.Acquire(cfg.ShaderName)
	if err != nil {
		return nil, fmt.Errorf("system: material %q: shader %q: %w", name, cfg.ShaderName, err)
	}

	mat := &Material{
		Name:         cfg.Name,
		ShaderName:   cfg.ShaderName,
		DiffuseColor: cfg.DiffuseColor,
		Shininess:    cfg.Shininess,
		diffuseName:  cfg.DiffuseMapName,
		specularName: cfg.SpecularMapName,
		normalName:   cfg.NormalMapName,
		shader:       sh,
	}

	mat.Diffuse = m.acquireMap(cfg.DiffuseMapName)
	mat.Specular = m.acquireMap(cfg.SpecularMapName)
	mat.Normal = m.acquireMap(cfg.NormalMapName)

	maps := []rtexture.Map{mat.Diffuse, mat.Specular, mat.Normal}
	inst, err := sh.Acquire(maps, rtexture.DefaultMap(m.textures.Default()))
	if err != nil {
		m.releaseMap(cfg.DiffuseMapName)
		m.releaseMap(cfg.SpecularMapName)
		m.releaseMap(cfg.NormalMapName)
		m.shaders.Release(cfg.ShaderName)
		return nil, fmt.Errorf("system: material %q: acquiring shader instance: %w", name, err)
	}
	mat.instance = inst
	return mat, nil
}

func (m *Materials) acquireMap(name string) rtexture.Map {
	if name == "" {
		return rtexture.DefaultMap(m.textures.Default())
	}
	tex, err := m.textures.Acquire(name)
	if err != nil {
		// Textures.Acquire never actually returns a non-nil error (it
		// degrades to the default internally); this is defensive only.
		tex = m.textures.Default()
	}
	return rtexture.DefaultMap(tex)
}
