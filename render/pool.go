// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package render

import (
	"github.com/kestrelgfx/forge/rtexture"
	"github.com/kestrelgfx/forge/shader"
)

// instancePool hands out one shader instance per drawn object for modules
// whose shaders carry per-draw state (the model matrix) but no material of
// their own, such as the G-prepass and shadow modules. Instances are
// acquired lazily by object index and reused across frames.
type instancePool struct {
	sh    *shader.Shader
	def   rtexture.Map
	insts []*shader.Instance
}

func newInstancePool(sh *shader.Shader, def rtexture.Map) *instancePool {
	return &instancePool{sh: sh, def: def}
}

// at returns the instance for object index i, acquiring as needed.
func (ip *instancePool) at(i int) (*shader.Instance, error) {
	for len(ip.insts) <= i {
		inst, err := ip.sh.Acquire(nil, ip.def)
		if err != nil {
			return nil, err
		}
		ip.insts = append(ip.insts, inst)
	}
	return ip.insts[i], nil
}

// release returns every acquired instance to the shader.
func (ip *instancePool) release() {
	for _, inst := range ip.insts {
		ip.sh.Release(inst)
	}
	ip.insts = nil
}
