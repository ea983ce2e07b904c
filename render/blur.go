// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package render

import (
	"github.com/kestrelgfx/forge/driver"
	"github.com/kestrelgfx/forge/rpass"
	"github.com/kestrelgfx/forge/rtexture"
	"github.com/kestrelgfx/forge/shader"
)

// Blur is a separable box/gaussian blur over a single input target,
// typically run at half resolution over the raw AO output.
type Blur struct {
	screenModule

	// Direction selects the blur axis: {1, 0} horizontal, {0, 1}
	// vertical. Two chained Blur modules give the full separable blur.
	Direction [2]float32
}

// NewBlur creates a blur module over the single map it filters.
func NewBlur(name string, pass *rpass.Pass, sh *shader.Shader, src rtexture.Map, def rtexture.Map, dir [2]float32) (*Blur, error) {
	sm, err := newScreenModule(name, pass, sh, []rtexture.Map{src}, def)
	if err != nil {
		return nil, err
	}
	return &Blur{screenModule: sm, Direction: dir}, nil
}

// OnRender records the blur pass.
func (m *Blur) OnRender(cb driver.CmdBuffer, p *Packet, frame uint64, passIndex int) error {
	return m.render(cb, p, frame, func() {
		dir := m.Direction
		setIfPresent(m.sh, "blur_direction", f32SliceBytes(dir[:]))
	})
}
