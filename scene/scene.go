// Copyright 2022 Gustavo C. Viegas. All rights reserved.

// Package scene provides functionality for creating and
// rendering scene graphs.
package scene

import (
	"github.com/kestrelgfx/forge/linear"
	"github.com/kestrelgfx/forge/node"
)

// Scene defines a scene graph.
type Scene struct {
	graph node.Graph
}

// New creates an initialized scene.
func New() *Scene { return new(Scene).Init() }

// Init initializes a scene.
func (s *Scene) Init() *Scene {
	return s
}

// Xform is a node with a settable local transform.
// It implements node.Interface, so it can be inserted
// into a scene; the engine attaches drawables to Xform
// nodes to have their world transforms derived from
// the graph.
type Xform struct {
	local   linear.M4
	changed bool
}

// NewXform creates an Xform whose local transform is
// the identity.
func NewXform() *Xform {
	x := new(Xform)
	x.local.I()
	x.changed = true
	return x
}

// SetLocal replaces the local transform.
func (x *Xform) SetLocal(m *linear.M4) {
	x.local = *m
	x.changed = true
}

// Local returns the local transform of the node.
func (x *Xform) Local() *linear.M4 { return &x.local }

// Changed returns whether the local transform has
// changed since it was last observed.
// Graph.Update calls it exactly once per update, so
// the flag is cleared here.
func (x *Xform) Changed() bool {
	changed := x.changed
	x.changed = false
	return changed
}

// Insert inserts n as a descendant of parent.
// parent can be node.Nil, in which case n becomes an
// unconnected (root) node.
func (s *Scene) Insert(n node.Interface, parent node.Node) node.Node {
	return s.graph.Insert(n, parent)
}

// Remove removes n and its descendants, returning the
// Interface of every removed node (n's first).
func (s *Scene) Remove(n node.Node) []node.Interface {
	return s.graph.Remove(n)
}

// World returns n's world transform as of the last
// Update call.
func (s *Scene) World(n node.Node) *linear.M4 {
	return s.graph.World(n)
}

// SetWorld sets the global world transform applied to
// every root node.
func (s *Scene) SetWorld(w linear.M4) {
	s.graph.SetWorld(w)
}

// Update recomputes the world transform of every node
// whose local transform (or whose ancestor's) changed.
func (s *Scene) Update() {
	s.graph.Update()
}

// Len returns the number of nodes in the scene.
func (s *Scene) Len() int { return s.graph.Len() }
