// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package mesh

import (
	"fmt"
	"io"
	"sync"

	"github.com/kestrelgfx/forge/driver"
	"github.com/kestrelgfx/forge/internal/bitvec"
)

// span block size, in bytes. Every geometry's vertex/index sub-allocation
// is rounded up to a multiple of this.
const spanBlock = 512

const spanMapNBit = 32

// span defines a buffer range in number of blocks.
type span struct {
	start, end int
}

func (s span) byteStart() int64    { return int64(s.start) * spanBlock }
func (s span) byteLen() int        { return (s.end - s.start) * spanBlock }
func (s span) String() string {
	return fmt.Sprintf("{%d(%dB) %d(%dB)}", s.start, s.byteStart(), s.end, int64(s.end)*spanBlock)
}

// Buffer is the GPU buffer that every Geometry's vertex/index data is
// sub-allocated from.
type Buffer struct {
	gpu     driver.GPU
	buf     driver.Buffer
	spanMap bitvec.V[uint32]
	sync.RWMutex
}

// NewBuffer creates an empty shared geometry buffer.
func NewBuffer(gpu driver.GPU) *Buffer { return &Buffer{gpu: gpu} }

// Driver returns the underlying driver.Buffer, or nil if nothing has
// been stored yet.
func (b *Buffer) Driver() driver.Buffer { return b.buf }

// store reads byteLen bytes from src and writes them into the shared
// buffer, growing it if no free span of sufficient size exists.
func (b *Buffer) store(src io.Reader, byteLen int) (span, error) {
	nb := (byteLen + (spanBlock - 1)) &^ (spanBlock - 1)
	ns := nb / spanBlock
	is, ok := b.spanMap.SearchRange(ns)
	if !ok {
		nplus := (ns + (spanMapNBit - 1)) / spanMapNBit
		bcap := int64(b.spanMap.Len()+nplus*spanMapNBit) * spanBlock
		buf, err := b.gpu.NewBuffer(bcap, true, driver.UVertexData|driver.UIndexData)
		if err != nil {
			return span{}, err
		}
		if b.buf != nil {
			copy(buf.Bytes(), b.buf.Bytes())
			b.buf.Destroy()
		}
		b.buf = buf
		is = b.spanMap.Grow(nplus)
	}
	slc := b.buf.Bytes()[is*spanBlock : is*spanBlock+byteLen]
	for len(slc) > 0 {
		switch n, err := src.Read(slc); {
		case n > 0:
			slc = slc[n:]
		case err != nil:
			return span{}, err
		}
	}
	for i := 0; i < ns; i++ {
		b.spanMap.Set(is + i)
	}
	return span{is, is + ns}, nil
}

// Destroy releases the underlying GPU buffer. Every Geometry stored in
// the buffer is invalidated.
func (b *Buffer) Destroy() {
	b.Lock()
	defer b.Unlock()
	if b.buf != nil {
		b.buf.Destroy()
		b.buf = nil
	}
	b.spanMap.Clear()
}

// free releases the blocks s occupies, making them available for reuse.
// It does not shrink the underlying GPU buffer.
func (b *Buffer) free(s span) {
	for i := s.start; i < s.end; i++ {
		b.spanMap.Unset(i)
	}
}
