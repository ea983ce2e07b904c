// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package rtexture

import "github.com/kestrelgfx/forge/driver"

// RepeatMode is the addressing mode applied when sampling outside [0,1]
// texture coordinates along one axis.
type RepeatMode = driver.AddrMode

// Map references a Texture plus filter/repeat/sampler state, owned by a
// material or a shader's global/instance state.
type Map struct {
	Texture *Texture

	FilterMin driver.Filter
	FilterMag driver.Filter
	RepeatU   RepeatMode
	RepeatV   RepeatMode
	RepeatW   RepeatMode

	sampler driver.Sampler
}

// DefaultMap returns a Map over tex with linear filtering and wrap
// addressing, matching the engine's default texture sampling state.
func DefaultMap(tex *Texture) Map {
	return Map{
		Texture:   tex,
		FilterMin: driver.FLinear,
		FilterMag: driver.FLinear,
		RepeatU:   driver.AWrap,
		RepeatV:   driver.AWrap,
		RepeatW:   driver.AWrap,
	}
}

// Sampler lazily creates (and caches) the backend Sampler matching the
// map's filter/repeat state.
func (m *Map) Sampler(gpu driver.GPU, maxAniso int) (driver.Sampler, error) {
	if m.sampler != nil {
		return m.sampler, nil
	}
	mipFilter := driver.FLinear
	if m.Texture == nil || m.Texture.MipLevels <= 1 {
		mipFilter = driver.FNoMipmap
	}
	s, err := gpu.NewSampler(&driver.Sampling{
		Min:      m.FilterMin,
		Mag:      m.FilterMag,
		Mipmap:   mipFilter,
		AddrU:    m.RepeatU,
		AddrV:    m.RepeatV,
		AddrW:    m.RepeatW,
		MaxAniso: maxAniso,
		MinLOD:   0,
		MaxLOD:   float32(maxMip(m.Texture)),
	})
	if err != nil {
		return nil, err
	}
	m.sampler = s
	return s, nil
}

func maxMip(t *Texture) int {
	if t == nil {
		return 0
	}
	return t.MipLevels - 1
}

// Destroy releases the map's cached sampler, if any. It does not destroy
// the referenced Texture, which may be shared.
func (m *Map) Destroy() {
	if m.sampler != nil {
		m.sampler.Destroy()
		m.sampler = nil
	}
}
