// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package render

import (
	"github.com/kestrelgfx/forge/driver"
	"github.com/kestrelgfx/forge/rpass"
	"github.com/kestrelgfx/forge/rtexture"
	"github.com/kestrelgfx/forge/shader"
)

// screenModule is the common shape of the screen-space passes (AO, blur,
// volumetrics, sky, SSR, post): one full-screen triangle sampling the
// outputs of earlier passes through a single shader instance.
type screenModule struct {
	moduleBase
	inst *shader.Instance
}

// newScreenModule acquires the module's shader instance over the maps it
// samples (attachments written by earlier passes, in the shader's declared
// sampler order).
func newScreenModule(name string, pass *rpass.Pass, sh *shader.Shader, maps []rtexture.Map, def rtexture.Map) (screenModule, error) {
	inst, err := sh.Acquire(maps, def)
	if err != nil {
		return screenModule{}, err
	}
	return screenModule{moduleBase{name: name, pass: pass, sh: sh}, inst}, nil
}

// render records the pass: globals via setGlobals, then the instance bind
// and the single triangle.
func (m *screenModule) render(cb driver.CmdBuffer, p *Packet, frame uint64, setGlobals func()) error {
	if _, err := m.begin(cb, p, frame); err != nil {
		return err
	}
	defer m.end(cb)

	if setGlobals != nil {
		setGlobals()
	}
	m.sh.ApplyGlobal(cb, slot(frame))
	if err := m.sh.BindInstance(m.inst); err != nil {
		return err
	}
	if err := m.sh.ApplyInstance(cb, slot(frame), m.inst); err != nil {
		return err
	}
	fullscreen(cb)
	return nil
}

// Destroy releases the module's shader instance.
func (m *screenModule) Destroy() {
	if m.inst != nil {
		m.sh.Release(m.inst)
		m.inst = nil
	}
}
