// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package render

import (
	"github.com/kestrelgfx/forge/driver"
	"github.com/kestrelgfx/forge/linear"
	"github.com/kestrelgfx/forge/rpass"
	"github.com/kestrelgfx/forge/rtexture"
	"github.com/kestrelgfx/forge/shader"
)

// AO computes screen-space ambient occlusion from the prepass depth and
// normal targets into a single-channel target, blurred by the blur module
// before the world pass samples it.
type AO struct {
	screenModule

	// Radius is the world-space sampling radius.
	Radius float32
	// Bias offsets depth comparisons to avoid self-occlusion acne.
	Bias float32
	// Strength scales the final occlusion term.
	Strength float32
}

// NewAO creates the AO module. maps are the prepass outputs it samples, in
// the shader's declared sampler order (depth, then normal).
func NewAO(pass *rpass.Pass, sh *shader.Shader, maps []rtexture.Map, def rtexture.Map) (*AO, error) {
	sm, err := newScreenModule("ao", pass, sh, maps, def)
	if err != nil {
		return nil, err
	}
	return &AO{screenModule: sm, Radius: 0.5, Bias: 0.025, Strength: 1}, nil
}

// OnRender records the AO pass.
func (m *AO) OnRender(cb driver.CmdBuffer, p *Packet, frame uint64, passIndex int) error {
	return m.render(cb, p, frame, func() {
		proj := p.Projection
		setIfPresent(m.sh, "projection", m4Bytes(&proj))
		var invProj linear.M4
		invProj.Invert(&proj)
		setIfPresent(m.sh, "inv_projection", m4Bytes(&invProj))
		setIfPresent(m.sh, "ao_radius", f32Bytes(&m.Radius))
		setIfPresent(m.sh, "ao_bias", f32Bytes(&m.Bias))
		setIfPresent(m.sh, "ao_strength", f32Bytes(&m.Strength))
	})
}
