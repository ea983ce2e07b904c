// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package shader

import (
	"errors"
	"fmt"

	"github.com/kestrelgfx/forge/driver"
)

// ErrPushConstantOverflow is returned when a shader's push-constant
// uniforms do not fit within the 128-byte window
var ErrPushConstantOverflow = errors.New("shader: push constants exceed 128-byte window")

// pushConstantWindow is the guaranteed minimum push-constant size across
// Vulkan implementations.
const pushConstantWindow = 128

// ByteRange describes a contiguous byte span within a buffer.
type ByteRange struct {
	Offset uint64
	Size   uint64
}

// uniform is a resolved, laid-out uniform, indexed by name via
// Layout.uniformIndex.
type uniform struct {
	UniformConfig
	Range      ByteRange
	BindingIdx int // -1 for push constants
	SetIdx     int // -1 for push constants
	Scope      Scope
}

// binding is a resolved, laid-out descriptor-set binding.
type binding struct {
	BindingConfig
	SetIndex  int
	Range     ByteRange
	TotalSize uint64
	Uniforms  []int // indices into Layout.uniforms
}

// descSet is a resolved, laid-out descriptor set.
type descSet struct {
	Index     int
	Scope     Scope
	Bindings  []binding
	Stride    uint64
	TotalSize uint64
}

// Layout is the computed byte-level layout of a shader's uniforms,
// bindings and descriptor sets
// algorithm.
type Layout struct {
	Sets          []descSet
	uniforms      []uniform
	uniformIndex  map[string]int
	pushConstants []uniform
	pushSize      uint64

	requiredUBOAlignment uint64
}

func align(size, alignment uint64) uint64 {
	if alignment == 0 {
		return size
	}
	return (size + alignment - 1) &^ (alignment - 1)
}

// computeLayout lays out cfg's descriptor sets and push constants against
// the device's minimum uniform-buffer offset alignment.
func computeLayout(cfg *Config, requiredUBOAlignment uint64) (*Layout, error) {
	l := &Layout{
		uniformIndex:         make(map[string]int),
		requiredUBOAlignment: requiredUBOAlignment,
	}

	for _, sc := range cfg.Sets {
		ds := descSet{Index: sc.Index, Scope: sc.Scope}
		var setOffset uint64
		for _, bc := range sc.Bindings {
			b := binding{BindingConfig: bc, SetIndex: sc.Index}
			var bindingOffset uint64
			for _, uc := range bc.Uniforms {
				sz := uint64(uc.size())
				u := uniform{
					UniformConfig: uc,
					Range:         ByteRange{Offset: bindingOffset, Size: sz},
					BindingIdx:    bc.Index,
					SetIdx:        sc.Index,
					Scope:         sc.Scope,
				}
				idx := len(l.uniforms)
				l.uniforms = append(l.uniforms, u)
				l.uniformIndex[uc.Name] = idx
				b.Uniforms = append(b.Uniforms, idx)
				bindingOffset += sz
			}
			b.TotalSize = bindingOffset
			stride := align(bindingOffset, requiredUBOAlignment)
			b.Range = ByteRange{Offset: setOffset, Size: stride}
			setOffset += stride
			ds.Bindings = append(ds.Bindings, b)
		}
		ds.TotalSize = setOffset
		ds.Stride = align(setOffset, requiredUBOAlignment)
		l.Sets = append(l.Sets, ds)
	}

	var pushOffset uint64
	for _, uc := range cfg.PushConstants {
		sz := uint64(uc.size())
		off := align(pushOffset, 4)
		if off+sz > pushConstantWindow {
			return nil, fmt.Errorf("%w: %q at offset %d size %d", ErrPushConstantOverflow, uc.Name, off, sz)
		}
		u := uniform{
			UniformConfig: uc,
			Range:         ByteRange{Offset: off, Size: sz},
			BindingIdx:    -1, SetIdx: -1, Scope: ScopeLocal,
		}
		idx := len(l.uniforms)
		l.uniforms = append(l.uniforms, u)
		l.uniformIndex[uc.Name] = idx
		l.pushConstants = append(l.pushConstants, u)
		pushOffset = off + sz
	}
	l.pushSize = pushOffset

	return l, nil
}

// setByScope returns the set with the matching scope, or nil.
func (l *Layout) setByScope(scope Scope) *descSet {
	for i := range l.Sets {
		if l.Sets[i].Scope == scope {
			return &l.Sets[i]
		}
	}
	return nil
}

// GlobalStride is the per-frame global UBO's stride in bytes.
func (l *Layout) GlobalStride() uint64 {
	if s := l.setByScope(ScopeGlobal); s != nil {
		return s.Stride
	}
	return 0
}

// InstanceStride is one instance's UBO stride in bytes.
func (l *Layout) InstanceStride() uint64 {
	if s := l.setByScope(ScopeInstance); s != nil {
		return s.Stride
	}
	return 0
}

// descriptorTypeCounts tallies descriptor-type usage across every
// non-local (non-push-constant) binding, for descriptor pool sizing.
func (l *Layout) descriptorTypeCounts() map[driver.DescType]int {
	counts := make(map[driver.DescType]int)
	for _, s := range l.Sets {
		for _, b := range s.Bindings {
			counts[b.Type.descType()] += b.Count
		}
	}
	return counts
}
