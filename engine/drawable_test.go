// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"testing"

	"github.com/kestrelgfx/forge/linear"
	"github.com/kestrelgfx/forge/node"
	"github.com/kestrelgfx/forge/scene"
)

func TestResolveWorldDetached(t *testing.T) {
	e := &Engine{scene: scene.New()}
	var world linear.M4
	world.Translate(&linear.V3{1, 2, 3})
	var normal linear.M3
	normal.I()

	id := e.NewDrawable(&DrawParam{World: world, Normal: normal})
	d, err := e.drawables.get(id)
	if err != nil {
		t.Fatal(err)
	}
	if got := e.resolveWorld(id, d); got != world {
		t.Fatalf("detached world:\nhave %v\nwant %v", got, world)
	}
}

func TestResolveWorldFromScene(t *testing.T) {
	e := &Engine{scene: scene.New()}

	parent := scene.NewXform()
	var m linear.M4
	m.Translate(&linear.V3{1, 0, 0})
	parent.SetLocal(&m)
	pn := e.scene.Insert(parent, node.Nil)

	child := scene.NewXform()
	m.Translate(&linear.V3{0, 2, 0})
	child.SetLocal(&m)
	cn := e.scene.Insert(child, pn)

	id := e.NewDrawable(&DrawParam{Node: cn})
	d, err := e.drawables.get(id)
	if err != nil {
		t.Fatal(err)
	}

	e.scene.Update()
	world := e.resolveWorld(id, d)
	if world[3] != (linear.V4{1, 2, 0, 1}) {
		t.Fatalf("scene world translation:\nhave %v\nwant [1 2 0 1]", world[3])
	}
	// The layout now reflects the graph-derived transform and the
	// drawable's own ID.
	if d.layout.World() != world {
		t.Fatalf("layout world:\nhave %v\nwant %v", d.layout.World(), world)
	}
	if d.layout.ID() != uint32(id) {
		t.Fatalf("layout ID:\nhave %d\nwant %d", d.layout.ID(), id)
	}

	// Moving the parent node moves the drawable on the next update.
	m.Translate(&linear.V3{7, 0, 0})
	parent.SetLocal(&m)
	e.scene.Update()
	if world := e.resolveWorld(id, d); world[3] != (linear.V4{7, 2, 0, 1}) {
		t.Fatalf("scene world after move:\nhave %v\nwant [7 2 0 1]", world[3])
	}
}
