// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package render

import (
	"github.com/kestrelgfx/forge/driver"
	"github.com/kestrelgfx/forge/mesh"
	"github.com/kestrelgfx/forge/rpass"
	"github.com/kestrelgfx/forge/rtexture"
	"github.com/kestrelgfx/forge/shader"
)

// GPrepass writes the view-space normal and depth targets the screen-space
// passes (AO, SSR) sample later in the frame. It draws the same visible
// set as the world pass but with a prepass shader that carries no material
// state beyond the per-draw model matrix.
type GPrepass struct {
	moduleBase
	buf  *mesh.Buffer
	pool *instancePool
}

// NewGPrepass creates the G-prepass module. def backs any sampler slot the
// prepass shader might declare (normally none).
func NewGPrepass(pass *rpass.Pass, sh *shader.Shader, buf *mesh.Buffer, def rtexture.Map) *GPrepass {
	return &GPrepass{moduleBase{name: "gprepass", pass: pass, sh: sh}, buf, newInstancePool(sh, def)}
}

// OnRender records the prepass draw of every visible geometry.
func (m *GPrepass) OnRender(cb driver.CmdBuffer, p *Packet, frame uint64, passIndex int) error {
	if _, err := m.begin(cb, p, frame); err != nil {
		return err
	}
	defer m.end(cb)

	view, proj := p.View, p.Projection
	setIfPresent(m.sh, "view", m4Bytes(&view))
	setIfPresent(m.sh, "projection", m4Bytes(&proj))
	m.sh.ApplyGlobal(cb, slot(frame))

	for i := range p.Geometries {
		g := &p.Geometries[i]
		inst, err := m.pool.at(i)
		if err != nil {
			return err
		}
		if err := m.sh.BindInstance(inst); err != nil {
			return err
		}
		world := g.World
		setIfPresent(m.sh, "model", m4Bytes(&world))
		if err := m.sh.ApplyInstance(cb, slot(frame), inst); err != nil {
			return err
		}
		g.Geometry.Draw(m.buf, cb, 1)
	}
	return nil
}

// Destroy returns the module's per-draw instances to its shader.
func (m *GPrepass) Destroy() { m.pool.release() }
