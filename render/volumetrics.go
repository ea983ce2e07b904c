// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package render

import (
	"github.com/kestrelgfx/forge/driver"
	"github.com/kestrelgfx/forge/linear"
	"github.com/kestrelgfx/forge/rpass"
	"github.com/kestrelgfx/forge/rtexture"
	"github.com/kestrelgfx/forge/shader"
)

// Volumetrics ray-marches sun shafts through the shadow map at reduced
// resolution, producing a scattering target the post pass composites.
type Volumetrics struct {
	screenModule
	shadow *Shadow

	// Steps is the ray-march sample count per pixel.
	Steps int32
	// Density scales the scattering contribution.
	Density float32
}

// NewVolumetrics creates the volumetrics module. maps are the depth target
// and the shadow map, in the shader's declared sampler order. shadow
// provides the per-frame light-space matrix.
func NewVolumetrics(pass *rpass.Pass, sh *shader.Shader, maps []rtexture.Map, def rtexture.Map, shadow *Shadow) (*Volumetrics, error) {
	sm, err := newScreenModule("volumetrics", pass, sh, maps, def)
	if err != nil {
		return nil, err
	}
	return &Volumetrics{screenModule: sm, shadow: shadow, Steps: 32, Density: 0.6}, nil
}

// OnRender records the volumetrics pass.
func (m *Volumetrics) OnRender(cb driver.CmdBuffer, p *Packet, frame uint64, passIndex int) error {
	return m.render(cb, p, frame, func() {
		var viewProj, inv linear.M4
		view, proj := p.View, p.Projection
		viewProj.Mul(&proj, &view)
		inv.Invert(&viewProj)
		setIfPresent(m.sh, "inv_view_projection", m4Bytes(&inv))
		if m.shadow != nil {
			setIfPresent(m.sh, "light_space", m4Bytes(m.shadow.LightSpace()))
		}
		viewPos := p.ViewPosition
		setIfPresent(m.sh, "view_position", v3Bytes(&viewPos))
		if p.Sun != nil {
			dir, color := p.Sun.Direction, p.Sun.Color
			setIfPresent(m.sh, "sun_direction", v3Bytes(&dir))
			setIfPresent(m.sh, "sun_color", v3Bytes(&color))
		}
		steps := float32(m.Steps)
		setIfPresent(m.sh, "march_steps", f32Bytes(&steps))
		setIfPresent(m.sh, "density", f32Bytes(&m.Density))
	})
}
