// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package input

import (
	"time"

	"github.com/kestrelgfx/forge/wsi"
)

// Type is the kind of action a Control fires on.
type Type int

// Control types.
const (
	Press Type = iota
	Release
	Hold
)

// HeldArgs are the arguments passed to a Hold control's callbacks once per
// frame while it is active: the frame's delta time and the time elapsed
// since the key was first pressed.
type HeldArgs struct {
	DT         time.Duration
	SincePress time.Duration
}

// EdgeArgs are the arguments passed to a Press/Release control's
// callbacks: the absolute-time deltas since the last press and the last
// release.
type EdgeArgs struct {
	SincePress   time.Duration
	SinceRelease time.Duration
}

// Control is a named input binding: one or more key codes mapped to a
// Type, firing subscribed callbacks on the matching edge.
type Control struct {
	Name string
	Kind Type
	Keys []wsi.Key

	holdActive  int
	lastPress   time.Time
	lastRelease time.Time

	OnEdge Event[EdgeArgs]
	OnHeld Event[HeldArgs]
}

// NewControl creates a Control bound to the given keys.
func NewControl(name string, kind Type, keys ...wsi.Key) *Control {
	return &Control{Name: name, Kind: kind, Keys: keys}
}

func (c *Control) mapsKey(k wsi.Key) bool {
	for _, key := range c.Keys {
		if key == k {
			return true
		}
	}
	return false
}

// HoldActive reports whether a Hold control currently has at least one of
// its mapped keys down.
func (c *Control) HoldActive() bool { return c.holdActive > 0 }

// Map routes press/release events from every registered Control by key
// code, mirroring the "presses/releases route by key code to
// named Controls".
type Map struct {
	controls []*Control
	now      func() time.Time
}

// NewMap creates an empty input Map. now defaults to time.Now; tests may
// override it for deterministic timestamps.
func NewMap(now func() time.Time) *Map {
	if now == nil {
		now = time.Now
	}
	return &Map{now: now}
}

// Add registers a Control with the map.
func (m *Map) Add(c *Control) { m.controls = append(m.controls, c) }

// Remove unregisters a Control by name.
func (m *Map) Remove(name string) {
	for i, c := range m.controls {
		if c.Name == name {
			m.controls = append(m.controls[:i], m.controls[i+1:]...)
			return
		}
	}
}

// Find returns the Control registered under name, or nil.
func (m *Map) Find(name string) *Control {
	for _, c := range m.controls {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// PressKey routes a key-down event to every Control mapping k, per
// the literal scenario: a Press control fires immediately; a
// Hold control's active counter increments (held fires continue on
// InvokeHeldKeys); a Release control does not fire here.
func (m *Map) PressKey(k wsi.Key) {
	now := m.now()
	for _, c := range m.controls {
		if !c.mapsKey(k) {
			continue
		}
		sinceRelease := now.Sub(c.lastRelease)
		c.lastPress = now
		switch c.Kind {
		case Press:
			c.OnEdge.Fire(EdgeArgs{SincePress: 0, SinceRelease: sinceRelease})
		case Hold:
			c.holdActive++
		}
	}
}

// ReleaseKey routes a key-up event. A Release control fires; a Hold
// control's active counter decrements; a Press control does not fire.
func (m *Map) ReleaseKey(k wsi.Key) {
	now := m.now()
	for _, c := range m.controls {
		if !c.mapsKey(k) {
			continue
		}
		sincePress := now.Sub(c.lastPress)
		c.lastRelease = now
		switch c.Kind {
		case Release:
			c.OnEdge.Fire(EdgeArgs{SincePress: sincePress, SinceRelease: 0})
		case Hold:
			if c.holdActive > 0 {
				c.holdActive--
			}
		}
	}
}

// InvokeHeldKeys fires every active Hold control's callbacks once, called
// once per frame ("invoke_held_keys(dt) is called once per
// frame and fires all active Holds with (dt, time_since_press)").
func (m *Map) InvokeHeldKeys(dt time.Duration) {
	now := m.now()
	for _, c := range m.controls {
		if c.Kind != Hold || !c.HoldActive() {
			continue
		}
		c.OnHeld.Fire(HeldArgs{DT: dt, SincePress: now.Sub(c.lastPress)})
	}
}
