// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package node

import (
	"testing"

	"github.com/kestrelgfx/forge/linear"
)

// xform implements Interface for testing.
type xform struct {
	local   linear.M4
	changed bool
}

func newXform(m linear.M4) *xform { return &xform{local: m, changed: true} }

func (x *xform) Local() *linear.M4 { return &x.local }

func (x *xform) Changed() bool {
	changed := x.changed
	x.changed = false
	return changed
}

func translation(x, y, z float32) linear.M4 {
	var m linear.M4
	m.Translate(&linear.V3{x, y, z})
	return m
}

func TestInsert(t *testing.T) {
	var g Graph
	if g.Len() != 0 {
		t.Fatalf("Graph.Len:\nhave %d\nwant 0", g.Len())
	}

	a := g.Insert(newXform(translation(1, 0, 0)), Nil)
	if a == Nil {
		t.Fatal("Graph.Insert: unexpected Nil Node")
	}
	b := g.Insert(newXform(translation(0, 1, 0)), a)
	c := g.Insert(newXform(translation(0, 0, 1)), a)
	if b == Nil || c == Nil || b == a || c == a || b == c {
		t.Fatalf("Graph.Insert: bad Node values %d, %d, %d", a, b, c)
	}
	if g.Len() != 3 {
		t.Fatalf("Graph.Len:\nhave %d\nwant 3", g.Len())
	}
}

func TestGet(t *testing.T) {
	var g Graph
	x := newXform(translation(1, 2, 3))
	n := g.Insert(x, Nil)
	if got := g.Get(n); got != Interface(x) {
		t.Fatalf("Graph.Get:\nhave %v\nwant %v", got, x)
	}
	if got := g.Get(Nil); got != nil {
		t.Fatalf("Graph.Get(Nil):\nhave %v\nwant nil", got)
	}
}

func TestUpdateWorld(t *testing.T) {
	var g Graph
	parent := newXform(translation(1, 0, 0))
	child := newXform(translation(0, 2, 0))
	grandchild := newXform(translation(0, 0, 4))

	pn := g.Insert(parent, Nil)
	cn := g.Insert(child, pn)
	gn := g.Insert(grandchild, cn)

	g.Update()

	if w := g.World(pn); w[3] != (linear.V4{1, 0, 0, 1}) {
		t.Fatalf("Graph.World (root):\nhave %v\nwant [1 0 0 1]", w[3])
	}
	if w := g.World(cn); w[3] != (linear.V4{1, 2, 0, 1}) {
		t.Fatalf("Graph.World (child):\nhave %v\nwant [1 2 0 1]", w[3])
	}
	if w := g.World(gn); w[3] != (linear.V4{1, 2, 4, 1}) {
		t.Fatalf("Graph.World (grandchild):\nhave %v\nwant [1 2 4 1]", w[3])
	}

	// A change in an ancestor propagates to every descendant on the
	// next Update, even though the descendants did not change.
	parent.local = translation(10, 0, 0)
	parent.changed = true
	g.Update()
	if w := g.World(gn); w[3] != (linear.V4{10, 2, 4, 1}) {
		t.Fatalf("Graph.World after ancestor change:\nhave %v\nwant [10 2 4 1]", w[3])
	}
}

func TestSetWorld(t *testing.T) {
	var g Graph
	n := g.Insert(newXform(translation(1, 0, 0)), Nil)
	g.SetWorld(translation(0, 5, 0))
	g.Update()
	if w := g.World(n); w[3] != (linear.V4{1, 5, 0, 1}) {
		t.Fatalf("Graph.World with global transform:\nhave %v\nwant [1 5 0 1]", w[3])
	}
	if w := g.World(Nil); w[3] != (linear.V4{0, 5, 0, 1}) {
		t.Fatalf("Graph.World(Nil):\nhave %v\nwant the global transform", w[3])
	}
}

func TestRemove(t *testing.T) {
	var g Graph
	parent := newXform(translation(0, 0, 0))
	pn := g.Insert(parent, Nil)
	g.Insert(newXform(translation(1, 0, 0)), pn)
	g.Insert(newXform(translation(2, 0, 0)), pn)
	other := g.Insert(newXform(translation(3, 0, 0)), Nil)

	ns := g.Remove(pn)
	if len(ns) != 3 {
		t.Fatalf("Graph.Remove:\nhave %d interfaces\nwant 3", len(ns))
	}
	if ns[0] != Interface(parent) {
		t.Fatalf("Graph.Remove: index 0\nhave %v\nwant the removed node itself", ns[0])
	}
	if g.Len() != 1 {
		t.Fatalf("Graph.Len after Remove:\nhave %d\nwant 1", g.Len())
	}
	if g.Get(other) == nil {
		t.Fatal("Graph.Remove: unrelated node removed")
	}
	if ns := g.Remove(Nil); ns != nil {
		t.Fatalf("Graph.Remove(Nil):\nhave %v\nwant nil", ns)
	}
}

func TestReinsertAfterRemove(t *testing.T) {
	var g Graph
	a := g.Insert(newXform(translation(1, 0, 0)), Nil)
	g.Remove(a)
	b := g.Insert(newXform(translation(2, 0, 0)), Nil)
	if b == Nil {
		t.Fatal("Graph.Insert after Remove: unexpected Nil Node")
	}
	if g.Len() != 1 {
		t.Fatalf("Graph.Len:\nhave %d\nwant 1", g.Len())
	}
	g.Update()
	if w := g.World(b); w[3] != (linear.V4{2, 0, 0, 1}) {
		t.Fatalf("Graph.World (reused slot):\nhave %v\nwant [2 0 0 1]", w[3])
	}
}
