// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package driver

import "errors"

// ErrNoSuitableDevice means that device enumeration completed but no
// candidate satisfied the required queue families, extensions and feature
// set.
var ErrNoSuitableDevice = errors.New("driver: no suitable device")

// QueueFamilies holds the queue family index used for each kind of work a
// backend's logical device exposes. A family may serve more than one role
// (e.g. the same family commonly serves both Graphics and Present).
type QueueFamilies struct {
	Graphics int
	Compute  int
	Transfer int
	Present  int
}

// Complete reports whether every required role was found.
// A negative index marks a role as missing.
func (q *QueueFamilies) Complete() bool {
	return q.Graphics >= 0 && q.Compute >= 0 && q.Transfer >= 0 && q.Present >= 0
}

// MemoryHeap describes one heap of device or host memory.
type MemoryHeap struct {
	Size     int64
	DeviceLocal bool
	HostVisible bool
	HostCoherent bool
}

// DeviceInfo describes a physical device candidate, immutable once the
// device has been selected and the logical device created. SwapchainSupport and FormatProperties are first-class
// functions rather than query objects, matching driver.GPU.Limits'
// preference for values over strategy interfaces.
type DeviceInfo struct {
	Name          string
	DriverVersion uint32
	APIVersion    uint32
	Discrete      bool
	MaxImage2D    int
	Queues        QueueFamilies
	Limits        Limits
	Heaps         []MemoryHeap

	// SwapchainSupport reports the color formats, present modes and
	// capabilities this device exposes for a given surface. The concrete
	// argument/result types are backend-specific (declared in driver/vk),
	// so this is modeled as an opaque function value the backend installs.
	SwapchainSupport func() any

	// FormatProperties reports the features a given PixelFmt supports
	// (linear/optimal tiling, blit, etc.), backend-specific like
	// SwapchainSupport above.
	FormatProperties func(PixelFmt) any
}

// Candidate is the information PickDevice needs about one physical device
// in order to score it. Backends fill this in from their own enumeration
// and hand the slice to PickDevice, keeping the scoring policy itself
// backend-agnostic and unit-testable without a real GPU.
type Candidate struct {
	Info             DeviceInfo
	HasExtensions    bool
	HasFeatures      bool
	ColorSampleMask  int
	DepthSampleMask  int
}

// score ranks a candidate: discrete GPUs are strongly preferred, then
// larger maximum 2D image dimensions.
func score(c *Candidate) int64 {
	s := int64(c.Info.MaxImage2D)
	if c.Info.Discrete {
		s += 1 << 32
	}
	return s
}

// PickDevice selects the best-scoring candidate that satisfies the required
// queue families, extensions and feature set It returns
// ErrNoSuitableDevice if none qualify.
func PickDevice(candidates []Candidate) (*Candidate, error) {
	var best *Candidate
	var bestScore int64 = -1
	for i := range candidates {
		c := &candidates[i]
		if !c.Info.Queues.Complete() || !c.HasExtensions || !c.HasFeatures {
			continue
		}
		if s := score(c); best == nil || s > bestScore {
			best, bestScore = c, s
		}
	}
	if best == nil {
		return nil, ErrNoSuitableDevice
	}
	return best, nil
}

// IntersectSampleCounts returns the largest sample count present in both
// masks (bit i set means 1<<i samples, so 1,2,4,8,16,32,64 occupy bits
// 0..6) that does not exceed ceiling. Swapchains use it to pick their
// MSAA level from the device's color and depth sample-count masks.
func IntersectSampleCounts(colorMask, depthMask int, ceiling int) int {
	both := colorMask & depthMask
	best := 1
	for bit := 0; bit < 7; bit++ {
		n := 1 << bit
		if n > ceiling {
			break
		}
		if both&(1<<bit) != 0 {
			best = n
		}
	}
	return best
}
