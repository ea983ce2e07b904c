// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package render

import (
	"github.com/kestrelgfx/forge/driver"
	"github.com/kestrelgfx/forge/rpass"
	"github.com/kestrelgfx/forge/rtexture"
	"github.com/kestrelgfx/forge/shader"
)

// Post is the final pass: it composites the lit world color with the
// SSR and volumetric targets, tone-maps and writes the swapchain image.
// Its render targets are the per-image swapchain targets, so it must be
// the last module in the frame.
type Post struct {
	screenModule

	// Exposure scales color before tone mapping.
	Exposure float32
	// Gamma is the output transfer exponent.
	Gamma float32
}

// NewPost creates the post module. maps are the world color and the
// optional SSR/volumetric targets, in the shader's declared sampler
// order.
func NewPost(pass *rpass.Pass, sh *shader.Shader, maps []rtexture.Map, def rtexture.Map) (*Post, error) {
	sm, err := newScreenModule("post", pass, sh, maps, def)
	if err != nil {
		return nil, err
	}
	return &Post{screenModule: sm, Exposure: 1, Gamma: 2.2}, nil
}

// OnRender records the post pass into this frame's swapchain target.
func (m *Post) OnRender(cb driver.CmdBuffer, p *Packet, frame uint64, passIndex int) error {
	return m.render(cb, p, frame, func() {
		setIfPresent(m.sh, "exposure", f32Bytes(&m.Exposure))
		setIfPresent(m.sh, "gamma", f32Bytes(&m.Gamma))
	})
}
