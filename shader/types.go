// Copyright 2026 Gustavo C. Viegas. All rights reserved.

// Package shader implements the shader runtime: config parsing,
// descriptor-set/binding layout computation, descriptor pool sizing,
// pipeline creation, the Unbound/BoundGlobal/BoundInstance state machine,
// push constants, and instance acquisition.
package shader

import "github.com/kestrelgfx/forge/driver"

// AttributeType is the type of a vertex attribute, mapped to
// driver.VertexFmt during pipeline creation.
type AttributeType int

const (
	AttrFloat32 AttributeType = iota
	AttrVec2
	AttrVec3
	AttrVec4
	AttrInt8
	AttrInt16
	AttrInt32
	AttrUint8
	AttrUint16
	AttrUint32
)

// Size returns the attribute's size in bytes.
func (t AttributeType) Size() int {
	switch t {
	case AttrFloat32, AttrInt32, AttrUint32:
		return 4
	case AttrVec2:
		return 8
	case AttrVec3:
		return 12
	case AttrVec4:
		return 16
	case AttrInt16, AttrUint16:
		return 2
	case AttrInt8, AttrUint8:
		return 1
	default:
		return 0
	}
}

func (t AttributeType) vertexFmt() driver.VertexFmt {
	switch t {
	case AttrFloat32:
		return driver.Float32
	case AttrVec2:
		return driver.Float32x2
	case AttrVec3:
		return driver.Float32x3
	case AttrVec4:
		return driver.Float32x4
	case AttrInt8:
		return driver.Int8
	case AttrInt16:
		return driver.Int16
	case AttrInt32:
		return driver.Int32
	case AttrUint8:
		return driver.UInt8
	case AttrUint16:
		return driver.UInt16
	case AttrUint32:
		return driver.UInt32
	default:
		return driver.Float32
	}
}

// UniformType is the type of a uniform value.
type UniformType int

const (
	UniFloat32 UniformType = iota
	UniVec2
	UniVec3
	UniVec4
	UniInt32
	UniUint32
	UniMatrix4
	UniSampler
	UniCustom
	UniInt8
	UniInt16
	UniUint8
	UniUint16
)

// Size returns the uniform's size in bytes, or 0 for UniCustom/UniSampler
// (whose size is caller-supplied via UniformConfig.Size).
func (t UniformType) Size() int {
	switch t {
	case UniFloat32, UniInt32, UniUint32:
		return 4
	case UniVec2:
		return 8
	case UniVec3:
		return 12
	case UniVec4:
		return 16
	case UniMatrix4:
		return 64
	case UniInt16, UniUint16:
		return 2
	case UniInt8, UniUint8:
		return 1
	default:
		return 0
	}
}

// Scope is the binding scope of a uniform or descriptor set, per
// the Unbound/BoundGlobal/BoundInstance state machine.
type Scope int

const (
	ScopeGlobal Scope = iota
	ScopeInstance
	ScopeLocal
)

// CullMode selects which triangle winding is culled.
type CullMode int

const (
	CullNone CullMode = iota
	CullFront
	CullBack
	CullBoth
)

func (c CullMode) driverCull() driver.CullMode {
	switch c {
	case CullFront:
		return driver.CFront
	case CullBack, CullBoth:
		return driver.CBack
	default:
		return driver.CNone
	}
}

// BindingType is the kind of resource a descriptor-set binding exposes.
type BindingType int

const (
	BindUniform BindingType = iota
	BindSampler
	BindStorage
)

func (t BindingType) descType() driver.DescType {
	switch t {
	case BindSampler:
		return driver.DSampler
	case BindStorage:
		return driver.DBuffer
	default:
		return driver.DConstant
	}
}

// BoundState is the shader's current binding state machine position.
type BoundState int

const (
	Unbound BoundState = iota
	BoundGlobal
	BoundInstance
)
