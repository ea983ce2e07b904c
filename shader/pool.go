// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package shader

import "github.com/kestrelgfx/forge/driver"

// MaxInstanceCount bounds how many shader instances may be acquired
// concurrently from one Shader.
const MaxInstanceCount = 1024

// descriptors returns one driver.Descriptor per binding in set, each
// sized by the binding's own element count (bounded below by 1), for use
// in a single driver.NewDescHeap call. The number of per-frame/per-instance
// copies of that heap is a separate axis (driver.DescHeap.New(n)), sized
// by New in runtime.go:
// maxFramesInFlight copies for the global set, maxInstanceCount ×
// maxFramesInFlight for the instance set.
func (s *descSet) descriptors() []driver.Descriptor {
	descs := make([]driver.Descriptor, len(s.Bindings))
	for i, b := range s.Bindings {
		n := b.Count
		if n < 1 {
			n = 1
		}
		descs[i] = driver.Descriptor{
			Type:   b.Type.descType(),
			Stages: b.Stages,
			Nr:     b.Index,
			Len:    n,
		}
	}
	return descs
}
