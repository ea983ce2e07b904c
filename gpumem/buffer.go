// Copyright 2026 Gustavo C. Viegas. All rights reserved.

// Package gpumem implements a device buffer wrapper and a free-list
// sub-allocator layered over it: a raw GPU buffer plus a client-side
// free-list allocator handing out in-buffer offsets, on top of the
// driver package's Buffer interface.
package gpumem

import (
	"errors"

	"github.com/kestrelgfx/forge/driver"
	"github.com/kestrelgfx/forge/memtag"
)

// ErrOutOfMemory means that no free block satisfies a requested
// allocation.
var ErrOutOfMemory = errors.New("gpumem: out of memory")

// ErrSegmentationFault means that a load targeted a byte range that is
// not currently allocated.
var ErrSegmentationFault = errors.New("gpumem: segmentation fault")

// Buffer wraps a driver.Buffer, tracking the GPU and usage/visibility it
// was created with so it can be recreated on Resize.
type Buffer struct {
	gpu  driver.GPU
	buf  driver.Buffer
	size int64
	visb bool
	usg  driver.Usage
	tag  memtag.Tag
}

// NewBuffer creates a buffer of the given size, visibility and usage.
func NewBuffer(gpu driver.GPU, size int64, visible bool, usg driver.Usage, tag memtag.Tag) (*Buffer, error) {
	b, err := gpu.NewBuffer(size, visible, usg)
	if err != nil {
		return nil, err
	}
	memtag.Alloc(tag, size)
	return &Buffer{gpu: gpu, buf: b, size: size, visb: visible, usg: usg, tag: tag}, nil
}

// Visible reports whether the buffer's memory is host visible.
func (b *Buffer) Visible() bool { return b.buf.Visible() }

// Bytes returns the host-visible byte slice backing the buffer, or nil
// if it is not host visible.
func (b *Buffer) Bytes() []byte { return b.buf.Bytes() }

// Cap returns the buffer's capacity in bytes.
func (b *Buffer) Cap() int64 { return b.buf.Cap() }

// Driver returns the underlying driver.Buffer, for use in command
// recording (CopyBuffer, CopyBufToImg, SetVertexBuf, etc).
func (b *Buffer) Driver() driver.Buffer { return b.buf }

// LoadData copies src into the buffer at off. The buffer must be host
// visible.
func (b *Buffer) LoadData(src []byte, off int64) {
	copy(b.Bytes()[off:], src)
}

// Resize grows the buffer to newSize, allocating a new driver.Buffer and
// copying over the first min(size, newSize) bytes if the buffer is host
// visible. Shrinking is not supported; the operation is grow-only.
func (b *Buffer) Resize(newSize int64) error {
	if newSize <= b.size {
		return nil
	}
	nb, err := b.gpu.NewBuffer(newSize, b.visb, b.usg)
	if err != nil {
		return err
	}
	if b.visb {
		copy(nb.Bytes(), b.Bytes())
	}
	memtag.Free(b.tag, b.size)
	b.buf.Destroy()
	b.buf = nb
	memtag.Alloc(b.tag, newSize)
	b.size = newSize
	return nil
}

// Destroy releases the buffer's GPU resources.
func (b *Buffer) Destroy() {
	if b == nil || b.buf == nil {
		return
	}
	memtag.Free(b.tag, b.size)
	b.buf.Destroy()
	b.buf = nil
}
