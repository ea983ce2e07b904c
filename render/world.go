// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package render

import (
	"github.com/kestrelgfx/forge/driver"
	"github.com/kestrelgfx/forge/internal/log"
	"github.com/kestrelgfx/forge/linear"
	"github.com/kestrelgfx/forge/mesh"
	"github.com/kestrelgfx/forge/rpass"
	"github.com/kestrelgfx/forge/shader"
)

// World is the main forward-shaded pass: it draws every visible geometry
// with its own material, lit by the packet's sun and point/spot lights.
type World struct {
	moduleBase
	buf *mesh.Buffer
}

// NewWorld creates the world module over the given pass/shader pair. Every
// material drawn by this module must have been acquired against sh.
func NewWorld(pass *rpass.Pass, sh *shader.Shader, buf *mesh.Buffer) *World {
	return &World{moduleBase{name: "world", pass: pass, sh: sh}, buf}
}

// OnRender records the world pass: globals once, then per geometry the
// material instance bind, instance apply and draw.
func (m *World) OnRender(cb driver.CmdBuffer, p *Packet, frame uint64, passIndex int) error {
	if _, err := m.begin(cb, p, frame); err != nil {
		return err
	}
	defer m.end(cb)

	view, proj := p.View, p.Projection
	setIfPresent(m.sh, "view", m4Bytes(&view))
	setIfPresent(m.sh, "projection", m4Bytes(&proj))
	viewPos := p.ViewPosition
	setIfPresent(m.sh, "view_position", v3Bytes(&viewPos))
	ambient := p.AmbientColor
	setIfPresent(m.sh, "ambient_color", v4Bytes(&ambient))
	if p.Sun != nil {
		dir, color := p.Sun.Direction, p.Sun.Color
		setIfPresent(m.sh, "sun_direction", v3Bytes(&dir))
		setIfPresent(m.sh, "sun_color", v3Bytes(&color))
		intensity := p.Sun.Intensity
		setIfPresent(m.sh, "sun_intensity", f32Bytes(&intensity))
	}
	m.sh.ApplyGlobal(cb, slot(frame))

	for i := range p.Geometries {
		g := &p.Geometries[i]
		mat := g.Material
		if mat == nil {
			log.Warnf("render", "world: geometry %q has no material, skipped", g.Geometry.Name())
			continue
		}
		inst := mat.Instance()
		if err := m.sh.BindInstance(inst); err != nil {
			return err
		}
		world := g.World
		setIfPresent(m.sh, "model", m4Bytes(&world))
		diffuse := linear.V4(mat.DiffuseColor)
		setIfPresent(m.sh, "diffuse_color", v4Bytes(&diffuse))
		shininess := mat.Shininess
		setIfPresent(m.sh, "shininess", f32Bytes(&shininess))
		if err := m.sh.ApplyInstance(cb, slot(frame), inst); err != nil {
			return err
		}
		g.Geometry.Draw(m.buf, cb, 1)
	}
	return nil
}
