// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"github.com/kestrelgfx/forge/engine/internal/shader"
	"github.com/kestrelgfx/forge/linear"
	"github.com/kestrelgfx/forge/mesh"
	"github.com/kestrelgfx/forge/node"
	"github.com/kestrelgfx/forge/system"
)

// drawableMap is a dataMap for drawables.
type drawableMap struct{ dataMap[Drawable, drawable] }

// drawable is what a drawableMap stores.
type drawable struct {
	geoms  []*mesh.Geometry
	mats   []*system.Material
	node   node.Node
	layout shader.DrawableLayout
}

// Drawable identifies an entity to be rendered.
// A Drawable is always associated with an Engine,
// thus there might be identical Drawable values
// that belong to different engines.
type Drawable int

// DrawParam describes how to render a Drawable.
// Mat is a list of non-nil materials where each
// element corresponds to a geometry in Geom; a
// short list leaves the trailing geometries
// without a material (such geometries are skipped
// by passes that need one).
// If Node is not node.Nil, it must belong to the
// engine's scene graph, and the drawable's world
// transform is taken from there on every Render
// (the World/Normal fields then only seed the
// layout until the first scene update).
type DrawParam struct {
	World  linear.M4
	Normal linear.M3
	Node   node.Node
	Geom   []*mesh.Geometry
	Mat    []*system.Material
}

// setLayout sets d.layout.
func (d *drawable) setLayout(world *linear.M4, normal *linear.M3, id Drawable) {
	d.layout.SetWorld(world)
	d.layout.SetNormal(normal)
	d.layout.SetID(uint32(id))
}

// NewDrawable registers an entity to be rendered every frame until
// removed.
func (e *Engine) NewDrawable(param *DrawParam) Drawable {
	d := drawable{
		geoms: param.Geom,
		mats:  param.Mat,
		node:  param.Node,
	}
	id := e.drawables.insert(d)
	p, _ := e.drawables.get(id)
	world, normal := param.World, param.Normal
	p.setLayout(&world, &normal, id)
	return id
}

// SetWorld replaces id's world and normal matrices.
func (e *Engine) SetWorld(id Drawable, world *linear.M4, normal *linear.M3) error {
	d, err := e.drawables.get(id)
	if err != nil {
		return err
	}
	d.setLayout(world, normal, id)
	return nil
}

// RemoveDrawable unregisters id. The geometries and materials it
// referenced are not released, and neither is the scene node it may be
// attached to; the caller owns those.
func (e *Engine) RemoveDrawable(id Drawable) error {
	_, err := e.drawables.remove(id)
	return err
}

// resolveWorld returns d's world matrix for this frame. A drawable
// attached to a scene node refreshes its layout from the graph (which
// must have been updated this frame); a detached one keeps the matrices
// set through NewDrawable/SetWorld.
func (e *Engine) resolveWorld(id Drawable, d *drawable) linear.M4 {
	if d.node == node.Nil {
		return d.layout.World()
	}
	world := *e.scene.World(d.node)
	var normal linear.M3
	normal.FromM4(&world)
	normal.Invert(&normal)
	normal.Transpose(&normal)
	d.setLayout(&world, &normal, id)
	return world
}
