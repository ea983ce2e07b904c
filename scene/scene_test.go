// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package scene

import (
	"testing"

	"github.com/kestrelgfx/forge/linear"
	"github.com/kestrelgfx/forge/node"
)

func TestNew(t *testing.T) {
	var z Scene
	s := New()
	if s.graph.Len() != z.graph.Len() {
		t.Fatal("New().graph.Len: New should not insert any nodes")
	}
	if *s.graph.World(node.Nil) != *z.graph.World(node.Nil) {
		t.Fatal("New().graph.World: New should not set the global world transform")
	}
}

func translate(x, y, z float32) linear.M4 {
	var m linear.M4
	m.Translate(&linear.V3{x, y, z})
	return m
}

func TestXformHierarchy(t *testing.T) {
	s := New()

	parent := NewXform()
	m := translate(1, 0, 0)
	parent.SetLocal(&m)
	pn := s.Insert(parent, node.Nil)

	child := NewXform()
	m = translate(0, 2, 0)
	child.SetLocal(&m)
	cn := s.Insert(child, pn)

	if s.Len() != 2 {
		t.Fatalf("Len: have %d, want 2", s.Len())
	}

	s.Update()
	w := s.World(cn)
	if w[3] != (linear.V4{1, 2, 0, 1}) {
		t.Fatalf("child world translation: have %v, want [1 2 0 1]", w[3])
	}
	if pw := s.World(pn); pw[3] != (linear.V4{1, 0, 0, 1}) {
		t.Fatalf("parent world translation: have %v, want [1 0 0 1]", pw[3])
	}

	// Unchanged transforms are not recomputed; changed ones propagate
	// to descendants.
	s.Update()
	m = translate(5, 0, 0)
	parent.SetLocal(&m)
	s.Update()
	if w := s.World(cn); w[3] != (linear.V4{5, 2, 0, 1}) {
		t.Fatalf("child world after parent move: have %v, want [5 2 0 1]", w[3])
	}
}

func TestXformRemove(t *testing.T) {
	s := New()
	parent := NewXform()
	pn := s.Insert(parent, node.Nil)
	s.Insert(NewXform(), pn)
	s.Insert(NewXform(), pn)

	removed := s.Remove(pn)
	if len(removed) != 3 || removed[0] != node.Interface(parent) {
		t.Fatalf("Remove: have %d interfaces (first %v), want 3 with parent first", len(removed), removed[0])
	}
	if s.Len() != 0 {
		t.Fatalf("Len after Remove: have %d, want 0", s.Len())
	}
}

func TestSetWorld(t *testing.T) {
	s := New()
	x := NewXform()
	m := translate(1, 0, 0)
	x.SetLocal(&m)
	n := s.Insert(x, node.Nil)

	s.SetWorld(translate(0, 0, 3))
	s.Update()
	if w := s.World(n); w[3] != (linear.V4{1, 0, 3, 1}) {
		t.Fatalf("world with global transform: have %v, want [1 0 3 1]", w[3])
	}
}
