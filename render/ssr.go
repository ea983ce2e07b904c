// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package render

import (
	"github.com/kestrelgfx/forge/driver"
	"github.com/kestrelgfx/forge/linear"
	"github.com/kestrelgfx/forge/rpass"
	"github.com/kestrelgfx/forge/rtexture"
	"github.com/kestrelgfx/forge/shader"
)

// SSR traces screen-space reflections against the prepass depth/normal
// targets, sampling the lit world color where a ray hit is found.
type SSR struct {
	screenModule

	// MaxSteps bounds the screen-space ray march.
	MaxSteps int32
	// Thickness is the depth tolerance for a hit.
	Thickness float32
}

// NewSSR creates the SSR module. maps are the world color, depth and
// normal targets, in the shader's declared sampler order.
func NewSSR(pass *rpass.Pass, sh *shader.Shader, maps []rtexture.Map, def rtexture.Map) (*SSR, error) {
	sm, err := newScreenModule("ssr", pass, sh, maps, def)
	if err != nil {
		return nil, err
	}
	return &SSR{screenModule: sm, MaxSteps: 64, Thickness: 0.1}, nil
}

// OnRender records the SSR pass.
func (m *SSR) OnRender(cb driver.CmdBuffer, p *Packet, frame uint64, passIndex int) error {
	return m.render(cb, p, frame, func() {
		view, proj := p.View, p.Projection
		setIfPresent(m.sh, "view", m4Bytes(&view))
		setIfPresent(m.sh, "projection", m4Bytes(&proj))
		var invProj linear.M4
		invProj.Invert(&proj)
		setIfPresent(m.sh, "inv_projection", m4Bytes(&invProj))
		steps := float32(m.MaxSteps)
		setIfPresent(m.sh, "max_steps", f32Bytes(&steps))
		setIfPresent(m.sh, "thickness", f32Bytes(&m.Thickness))
	})
}
