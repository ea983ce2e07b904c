// Copyright 2026 Gustavo C. Viegas. All rights reserved.

// Package serialize implements the small endian-normalized binary
// encoding used for the proprietary ".mesh" sidecar format: each
// primitive's bytes are written in a fixed wire order regardless of host
// endianness, and strings are NUL-terminated rather than length-prefixed.
package serialize

import (
	"encoding/binary"
	"errors"
	"math"
)

// ErrTruncated means a Decode call ran past the end of the input before
// finding the data it needed (a short buffer or a missing NUL
// terminator).
var ErrTruncated = errors.New("serialize: truncated input")

// Writer appends primitives to an in-memory buffer in wire order
// (little-endian, regardless of host byte order).
type Writer struct {
	buf []byte
}

// NewWriter creates an empty Writer.
func NewWriter() *Writer { return &Writer{} }

// Bytes returns the accumulated output.
func (w *Writer) Bytes() []byte { return w.buf }

// U8 appends a single byte.
func (w *Writer) U8(v uint8) { w.buf = append(w.buf, v) }

// U32 appends a uint32 in wire order.
func (w *Writer) U32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

// U64 appends a uint64 in wire order.
func (w *Writer) U64(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

// F32 appends a float32 in wire order.
func (w *Writer) F32(v float32) { w.U32(math.Float32bits(v)) }

// Bool appends a bool as a single 0/1 byte.
func (w *Writer) Bool(v bool) {
	if v {
		w.U8(1)
	} else {
		w.U8(0)
	}
}

// Raw appends raw bytes with no framing - the caller is responsible for
// recording their length separately (e.g. via U32) if needed.
func (w *Writer) Raw(b []byte) { w.buf = append(w.buf, b...) }

// String appends a NUL-terminated string, matching the original
// serializer's serialize_string.
func (w *Writer) String(s string) {
	w.buf = append(w.buf, s...)
	w.buf = append(w.buf, 0)
}

// Reader consumes primitives from a byte slice in the same wire order
// Writer produces.
type Reader struct {
	buf []byte
	pos int
}

// NewReader creates a Reader over buf.
func NewReader(buf []byte) *Reader { return &Reader{buf: buf} }

// Pos returns the current read offset.
func (r *Reader) Pos() int { return r.pos }

// Len returns the number of unread bytes.
func (r *Reader) Len() int { return len(r.buf) - r.pos }

func (r *Reader) take(n int) ([]byte, error) {
	if r.pos+n > len(r.buf) {
		return nil, ErrTruncated
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// U8 reads a single byte.
func (r *Reader) U8() (uint8, error) {
	b, err := r.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// U32 reads a uint32 in wire order.
func (r *Reader) U32() (uint32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// U64 reads a uint64 in wire order.
func (r *Reader) U64() (uint64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// F32 reads a float32 in wire order.
func (r *Reader) F32() (float32, error) {
	v, err := r.U32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

// Bool reads a single 0/1 byte.
func (r *Reader) Bool() (bool, error) {
	v, err := r.U8()
	return v != 0, err
}

// Raw reads n raw bytes.
func (r *Reader) Raw(n int) ([]byte, error) { return r.take(n) }

// String reads a NUL-terminated string, matching the original
// serializer's deserialize_string.
func (r *Reader) String() (string, error) {
	for i := r.pos; i < len(r.buf); i++ {
		if r.buf[i] == 0 {
			s := string(r.buf[r.pos:i])
			r.pos = i + 1
			return s, nil
		}
	}
	return "", ErrTruncated
}
