// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package mesh

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"

	"github.com/kestrelgfx/forge/geom"
	"github.com/kestrelgfx/forge/linear"
)

func bytesReader(b []byte) io.Reader { return bytes.NewReader(b) }

// computeBBox expands b to contain every float32x3 position encoded in
// positions (little-endian), used when a loader did not already supply
// an extent.
func computeBBox(b *geom.AABB3, positions []byte) {
	for len(positions) >= 12 {
		var p linear.V3
		p[0] = math.Float32frombits(binary.LittleEndian.Uint32(positions[0:4]))
		p[1] = math.Float32frombits(binary.LittleEndian.Uint32(positions[4:8]))
		p[2] = math.Float32frombits(binary.LittleEndian.Uint32(positions[8:12]))
		b.ExpandPoint(&p)
		positions = positions[12:]
	}
}
