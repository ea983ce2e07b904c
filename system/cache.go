// Copyright 2026 Gustavo C. Viegas. All rights reserved.

// Package system implements the named, reference-counted resource
// caches: Texture, Material, Geometry and Shader systems, each a
// single-producer cache over named handles that loads on first Acquire,
// increments a count on subsequent Acquires, and destroys the GPU-side
// resource when Release drops the count to zero and auto-release is set.
package system

import (
	"sync"

	"github.com/kestrelgfx/forge/internal/log"
)

const logPrefix = "system: "

// maxNameLen bounds a resolvable resource name, matching resource.System's
// own limit; the "overlong names fail gracefully, returning the
// default" is enforced by each concrete system, not by refcache itself.
const maxNameLen = 255

// refentry is one cached value together with its reference count and
// auto-release policy.
type refentry[T any] struct {
	value       T
	refs        int
	autoRelease bool
}

// refcache is the generic reference-counted cache shared by every concrete
// system in this package.
type refcache[T any] struct {
	mu      sync.Mutex
	entries map[string]*refentry[T]
}

func newRefcache[T any]() *refcache[T] {
	return &refcache[T]{entries: make(map[string]*refentry[T])}
}

// acquire returns the cached value for name, incrementing its reference
// count. If name is not yet cached, load is called to create it; on
// success the entry is inserted with refs=1 and the given autoRelease
// policy. A load error is returned unchanged; nothing is cached.
func (c *refcache[T]) acquire(name string, autoRelease bool, load func() (T, error)) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[name]; ok {
		e.refs++
		return e.value, nil
	}
	v, err := load()
	if err != nil {
		var zero T
		return zero, err
	}
	c.entries[name] = &refentry[T]{value: v, refs: 1, autoRelease: autoRelease}
	return v, nil
}

// insert directly installs a named entry (used for built-in defaults,
// which are inserted with refs=1 and autoRelease=false so they are never
// torn down by release).
func (c *refcache[T]) insert(name string, v T, autoRelease bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[name] = &refentry[T]{value: v, refs: 1, autoRelease: autoRelease}
}

// release decrements name's reference count. It returns the cached value,
// and whether the caller must now destroy its GPU-side state (refs hit
// zero and auto-release is set, in which case the entry is also removed
// from the cache). Releasing an absent entry, or one already at zero
// references, is a no-op that logs a warning property 3.
func (c *refcache[T]) release(name string) (v T, shouldDestroy bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[name]
	if !ok {
		log.Warnf(logPrefix, "release %q: not acquired", name)
		return v, false
	}
	if e.refs <= 0 {
		log.Warnf(logPrefix, "release %q: reference count already zero", name)
		return v, false
	}
	e.refs--
	if e.refs == 0 && e.autoRelease {
		delete(c.entries, name)
		return e.value, true
	}
	return e.value, false
}

// refCount returns name's current reference count, or 0 if not cached.
func (c *refcache[T]) refCount(name string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[name]; ok {
		return e.refs
	}
	return 0
}

func validName(name string) bool {
	return name != "" && len(name) <= maxNameLen
}
