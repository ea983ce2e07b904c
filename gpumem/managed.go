// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package gpumem

import (
	"github.com/kestrelgfx/forge/driver"
	"github.com/kestrelgfx/forge/memtag"
)

// Managed is a Buffer layered with a FreeList, restoring the source's
// VulkanManagedBuffer: callers Allocate/Deallocate in-buffer offsets
// instead of managing the whole buffer as one region.
type Managed struct {
	Buffer
	alloc *FreeList
}

// NewManaged creates a buffer of the given size and wraps it with a
// FreeList using the given placement policy.
func NewManaged(gpu driver.GPU, size int64, visible bool, usg driver.Usage, placement Placement, tag memtag.Tag) (*Managed, error) {
	b, err := NewBuffer(gpu, size, visible, usg, tag)
	if err != nil {
		return nil, err
	}
	return &Managed{Buffer: *b, alloc: NewFreeList(size, placement)}, nil
}

// Allocate reserves size bytes aligned to alignment and returns the
// in-buffer offset at which the allocation begins.
func (m *Managed) Allocate(size, alignment int64) (int64, error) {
	return m.alloc.Alloc(size, alignment)
}

// Deallocate releases the allocation that begins at offset.
func (m *Managed) Deallocate(offset int64) {
	m.alloc.Free(offset)
}

// Allocated reports whether [ptr, ptr+size) is currently allocated.
func (m *Managed) Allocated(ptr, size int64) bool {
	return m.alloc.Allocated(ptr, size)
}

// LoadData copies src into the buffer at off. It fails with
// ErrSegmentationFault if [off, off+len(src)) is not a currently
// allocated region, matching the source's load_data check against the
// allocator before touching memory.
func (m *Managed) LoadData(src []byte, off int64) error {
	if !m.Allocated(off, int64(len(src))) {
		return ErrSegmentationFault
	}
	m.Buffer.LoadData(src, off)
	return nil
}

// Resize grows the backing buffer and the free list together. Shrinking
// is not supported.
func (m *Managed) Resize(newSize int64) error {
	if err := m.Buffer.Resize(newSize); err != nil {
		return err
	}
	m.alloc.Grow(newSize)
	return nil
}
