// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package shader

import (
	"errors"

	"github.com/kestrelgfx/forge/rtexture"
)

// Instance is per-material or per-UI-element state bound to a shader:
// its own UBO region and descriptor-id/should-update tracking.
type Instance struct {
	id     int
	uboOff int64
	maps   []rtexture.Map

	shouldUpdate [MaxFramesInFlight]bool
	initialized  [MaxFramesInFlight]bool
}

// ID returns the instance's stable slot id.
func (i *Instance) ID() int { return i.id }

// Maps returns the instance's bound texture maps.
func (i *Instance) Maps() []rtexture.Map { return i.maps }

// SetMaps replaces the instance's texture maps and marks every frame's
// descriptor set dirty, so the next ApplyInstance rewrites the image/
// sampler bindings.
func (i *Instance) SetMaps(maps []rtexture.Map) {
	i.maps = maps
	for f := range i.shouldUpdate {
		i.shouldUpdate[f] = true
	}
}

// copyIndex maps (instance slot, frame) to the instance descriptor heap's
// flat copy index.
func (i *Instance) copyIndex(frame, maxFramesInFlight int) int {
	return i.id*maxFramesInFlight + frame
}

// freeSlots hands out small integer slot indices in [0, n), for use as
// instance descriptor-heap copy bases.
type freeSlots struct {
	free []int
}

func newFreeSlots(n int) freeSlots {
	fs := freeSlots{free: make([]int, n)}
	for i := range fs.free {
		fs.free[i] = n - 1 - i
	}
	return fs
}

var errNoFreeSlots = errors.New("shader: no free instance slots")

func (fs *freeSlots) take() (int, error) {
	if len(fs.free) == 0 {
		return 0, errNoFreeSlots
	}
	n := len(fs.free) - 1
	slot := fs.free[n]
	fs.free = fs.free[:n]
	return slot, nil
}

func (fs *freeSlots) release(slot int) {
	fs.free = append(fs.free, slot)
}
