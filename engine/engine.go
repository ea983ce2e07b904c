// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package engine implements real-time rendering.
//
// It is the front-end tying the subsystems together: driver selection,
// the shared mesh buffer, the resource loaders and the named resource
// systems, the render-pass graph and the frame driver. Callers register
// drawables and lights, configure the pass graph and modules, and call
// Render once per frame.
package engine

import (
	"time"

	"github.com/kestrelgfx/forge/driver"
	"github.com/kestrelgfx/forge/engine/internal/shader"
	"github.com/kestrelgfx/forge/linear"
	"github.com/kestrelgfx/forge/mesh"
	"github.com/kestrelgfx/forge/render"
	"github.com/kestrelgfx/forge/resource"
	"github.com/kestrelgfx/forge/rpass"
	"github.com/kestrelgfx/forge/scene"
	"github.com/kestrelgfx/forge/system"
	"github.com/kestrelgfx/forge/wsi"
)

const (
	// The maximum number of frames in flight.
	MaxFrame = render.MaxFramesInFlight

	// The maximum number of lights per frame.
	MaxLight = int(shader.MaxLight)

	// The maximum number of shadow maps per frame.
	MaxShadow = int(shader.MaxShadow)

	dflMaxDrawable = 2048
	dflMaxMaterial = 512
)

// Config is used to configure the engine.
type Config struct {
	// Prefer double-buffering rather than the
	// default triple-buffering.
	//
	// Default is false.
	DoubleBuffered bool

	// The maximum number of lights per frame.
	//
	// Default is MaxLight.
	MaxLight int

	// The maximum number of shadow maps per frame.
	//
	// Default is MaxShadow.
	MaxShadow int

	// The maximum number of drawables per frame.
	//
	// Default is 2048.
	MaxDrawable int

	// The maximum number of materials per frame.
	//
	// Default is 512.
	MaxMaterial int

	// The root directory resources are loaded from.
	//
	// Default is "./assets".
	AssetPath string
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		DoubleBuffered: false,
		MaxLight:       MaxLight,
		MaxShadow:      MaxShadow,
		MaxDrawable:    dflMaxDrawable,
		MaxMaterial:    dflMaxMaterial,
	}
}

// Engine owns the renderer's subsystems and the registered scene
// entities.
type Engine struct {
	cfg Config
	win wsi.Window

	meshBuf   *mesh.Buffer
	resources *resource.System
	textures  *system.Textures
	shaders   *system.Shaders
	materials *system.Materials
	geoms     *system.Geometries
	graph     *rpass.Graph
	renderer  *render.Driver
	scene     *scene.Scene

	drawables drawableMap
	lights    lightMap

	elapsed time.Duration
	ambient linear.V4
}

// New creates an engine over win.
func New(win wsi.Window, config *Config) (*Engine, error) {
	cfg := DefaultConfig()
	if config != nil {
		cfg = *config
	}
	if cfg.MaxLight <= 0 || cfg.MaxLight > MaxLight {
		cfg.MaxLight = MaxLight
	}
	if cfg.MaxDrawable <= 0 {
		cfg.MaxDrawable = dflMaxDrawable
	}
	if cfg.MaxMaterial <= 0 {
		cfg.MaxMaterial = dflMaxMaterial
	}

	rcfg := render.DefaultConfig()
	if cfg.DoubleBuffered {
		rcfg.FramesInFlight = 2
	}
	renderer, err := render.New(gpu, win, rcfg)
	if err != nil {
		return nil, err
	}

	graph := rpass.NewGraph()
	resources := resource.NewSystem(resource.Config{BasePath: cfg.AssetPath})
	textures, err := system.NewTextures(gpu, resources)
	if err != nil {
		renderer.Destroy()
		return nil, err
	}
	shaders := system.NewShaders(gpu, resources, graph, cfg.MaxMaterial)
	materials := system.NewMaterials(resources, shaders, textures)
	meshBuf := mesh.NewBuffer(gpu)

	return &Engine{
		cfg:       cfg,
		win:       win,
		meshBuf:   meshBuf,
		resources: resources,
		textures:  textures,
		shaders:   shaders,
		materials: materials,
		geoms:     system.NewGeometries(resources, meshBuf),
		graph:     graph,
		renderer:  renderer,
		scene:     scene.New(),
		ambient:   linear.V4{0.25, 0.25, 0.25, 1},
	}, nil
}

// GPU returns the engine's GPU.
func (e *Engine) GPU() driver.GPU { return gpu }

// Renderer returns the frame driver, for pass/module setup and view
// updates.
func (e *Engine) Renderer() *render.Driver { return e.renderer }

// Graph returns the render-pass graph the engine's shaders bind against.
// Callers add their passes before acquiring any shader or material.
func (e *Engine) Graph() *rpass.Graph { return e.graph }

// Scene returns the scene graph. Drawables attached to one of its nodes
// (DrawParam.Node) take their world transform from the graph on every
// Render.
func (e *Engine) Scene() *scene.Scene { return e.scene }

// Resources returns the resource system.
func (e *Engine) Resources() *resource.System { return e.resources }

// Textures returns the texture system.
func (e *Engine) Textures() *system.Textures { return e.textures }

// Shaders returns the shader system.
func (e *Engine) Shaders() *system.Shaders { return e.shaders }

// Materials returns the material system.
func (e *Engine) Materials() *system.Materials { return e.materials }

// Geometries returns the geometry system.
func (e *Engine) Geometries() *system.Geometries { return e.geoms }

// MeshBuffer returns the shared vertex/index buffer.
func (e *Engine) MeshBuffer() *mesh.Buffer { return e.meshBuf }

// SetAmbient sets the ambient light color.
func (e *Engine) SetAmbient(color linear.V4) { e.ambient = color }

// Render assembles this frame's packet from the registered drawables and
// lights and runs the frame driver once. dt is the time since the
// previous frame.
func (e *Engine) Render(dt time.Duration) error {
	e.elapsed += dt
	e.scene.Update()

	p := render.Packet{
		DT:           float32(dt.Seconds()),
		AmbientColor: e.ambient,
	}
	e.drawables.each(func(id Drawable, d *drawable) bool {
		world := e.resolveWorld(id, d)
		for i, geom := range d.geoms {
			var mat *system.Material
			if i < len(d.mats) {
				mat = d.mats[i]
			}
			p.Geometries = append(p.Geometries, render.GeometryRenderData{
				Geometry: geom,
				Material: mat,
				World:    world,
			})
		}
		return true
	})
	e.lights.each(func(id Light, l *light) bool {
		appendLight(&p, l)
		return true
	})
	return e.renderer.Frame(&p)
}

// Destroy releases everything the engine owns. The window is not closed.
func (e *Engine) Destroy() {
	if e == nil {
		return
	}
	e.renderer.Destroy()
	e.meshBuf.Destroy()
}
