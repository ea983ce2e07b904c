// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package shader

import "github.com/kestrelgfx/forge/driver"

// TotalStride returns the sum of every attribute's byte size. The driver's
// vertex-input model keeps each attribute in its own buffer stream
// (driver.VertexIn: "Each vertex input represents a separate buffer
// binding, interleaved inputs are not supported"), so this value is
// informational rather than a single interleaved-vertex byte count,
// matching how mesh.Geometry addresses one buffer per semantic.
func (c *Config) TotalStride() int {
	var total int
	for _, a := range c.Attributes {
		total += a.Type.Size()
	}
	return total
}

// VertexInputs returns one driver.VertexIn per configured attribute, in
// declaration order, with Nr set to the attribute's index (its shader
// location).
func (c *Config) VertexInputs() []driver.VertexIn {
	in := make([]driver.VertexIn, len(c.Attributes))
	for i, a := range c.Attributes {
		in[i] = driver.VertexIn{
			Format: a.Type.vertexFmt(),
			Stride: a.Type.Size(),
			Nr:     i,
			Name:   a.Name,
		}
	}
	return in
}
