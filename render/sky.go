// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package render

import (
	"github.com/kestrelgfx/forge/driver"
	"github.com/kestrelgfx/forge/linear"
	"github.com/kestrelgfx/forge/rpass"
	"github.com/kestrelgfx/forge/rtexture"
	"github.com/kestrelgfx/forge/shader"
)

// Sky fills the background with an equirectangular environment texture
// (or a procedural gradient when none is given), reconstructing the view
// ray per pixel from the inverse view-projection so no geometry is
// needed. Depth testing leaves previously written fragments intact.
type Sky struct {
	screenModule
}

// NewSky creates the sky module. env is the equirectangular environment
// map to sample; pass a zero Map to fall back to the default texture.
func NewSky(pass *rpass.Pass, sh *shader.Shader, env rtexture.Map, def rtexture.Map) (*Sky, error) {
	sm, err := newScreenModule("sky", pass, sh, []rtexture.Map{env}, def)
	if err != nil {
		return nil, err
	}
	return &Sky{sm}, nil
}

// OnRender records the sky pass.
func (m *Sky) OnRender(cb driver.CmdBuffer, p *Packet, frame uint64, passIndex int) error {
	return m.render(cb, p, frame, func() {
		// Drop the view translation so the sky stays at infinity.
		view := p.View
		view[3] = linear.V4{0, 0, 0, 1}
		var viewProj, inv linear.M4
		proj := p.Projection
		viewProj.Mul(&proj, &view)
		inv.Invert(&viewProj)
		setIfPresent(m.sh, "inv_view_projection", m4Bytes(&inv))
		if p.Sun != nil {
			dir := p.Sun.Direction
			setIfPresent(m.sh, "sun_direction", v3Bytes(&dir))
		}
	})
}
