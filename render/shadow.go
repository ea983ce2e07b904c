// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package render

import (
	"github.com/kestrelgfx/forge/driver"
	"github.com/kestrelgfx/forge/linear"
	"github.com/kestrelgfx/forge/mesh"
	"github.com/kestrelgfx/forge/rpass"
	"github.com/kestrelgfx/forge/rtexture"
	"github.com/kestrelgfx/forge/shader"
)

// Shadow renders the directional-light depth map: every shadow-casting
// geometry drawn from the sun's point of view into a depth-only target.
type Shadow struct {
	moduleBase
	buf  *mesh.Buffer
	pool *instancePool

	// Extent/NearFar bound the light-space orthographic volume.
	Extent  float32
	NearFar [2]float32

	lightSpace linear.M4
}

// NewShadow creates the shadow module over a depth-only pass.
func NewShadow(pass *rpass.Pass, sh *shader.Shader, buf *mesh.Buffer, def rtexture.Map) *Shadow {
	return &Shadow{
		moduleBase: moduleBase{name: "shadow", pass: pass, sh: sh},
		buf:        buf,
		pool:       newInstancePool(sh, def),
		Extent:     32,
		NearFar:    [2]float32{0.1, 128},
	}
}

// LightSpace returns the light's view-projection matrix as computed for
// the most recent frame, for the world pass to project shadow lookups
// with.
func (m *Shadow) LightSpace() *linear.M4 { return &m.lightSpace }

// computeLightSpace derives the orthographic light-space matrix from the
// sun direction, centered on the view position so the shadowed volume
// follows the camera.
func (m *Shadow) computeLightSpace(p *Packet) {
	var dir linear.V3
	if p.Sun != nil {
		dir = p.Sun.Direction
	}
	if dir.Len() == 0 {
		dir = linear.V3{0, -1, 0}
	}
	dir.Norm(&dir)

	center := p.ViewPosition
	var eye, off linear.V3
	off.Scale(-m.NearFar[1]/2, &dir)
	eye.Add(&center, &off)

	up := linear.V3{0, 1, 0}
	if d := dir.Dot(&up); d > 0.99 || d < -0.99 {
		up = linear.V3{0, 0, 1}
	}
	var view, proj linear.M4
	view.LookAt(&eye, &center, &up)
	proj.Ortho(-m.Extent, m.Extent, -m.Extent, m.Extent, m.NearFar[0], m.NearFar[1])
	m.lightSpace.Mul(&proj, &view)
}

// OnRender records the shadow-map pass over the packet's shadow set.
func (m *Shadow) OnRender(cb driver.CmdBuffer, p *Packet, frame uint64, passIndex int) error {
	m.computeLightSpace(p)

	if _, err := m.begin(cb, p, frame); err != nil {
		return err
	}
	defer m.end(cb)

	setIfPresent(m.sh, "light_space", m4Bytes(&m.lightSpace))
	m.sh.ApplyGlobal(cb, slot(frame))

	set := p.shadowSet()
	for i := range set {
		g := &set[i]
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
func (m *Shadow) Destroy() { m.pool.release() }
