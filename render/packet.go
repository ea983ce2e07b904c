// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package render

import (
	"github.com/kestrelgfx/forge/linear"
	"github.com/kestrelgfx/forge/mesh"
	"github.com/kestrelgfx/forge/system"
)

// GeometryRenderData pairs one geometry with the transform and material it
// is drawn with this frame. Material may be nil for depth-only passes.
type GeometryRenderData struct {
	Geometry *mesh.Geometry
	Material *system.Material
	World    linear.M4
}

// DirectionalLight is a light at infinity, the shadow-casting light the
// shadow module renders its depth map for.
type DirectionalLight struct {
	Direction linear.V3
	Color     linear.V3
	Intensity float32
}

// PointLight is an omnidirectional, positional light.
type PointLight struct {
	Position  linear.V3
	Color     linear.V3
	Range     float32
	Intensity float32
}

// SpotLight is a positional light bounded by a cone.
type SpotLight struct {
	Position   linear.V3
	Direction  linear.V3
	Color      linear.V3
	InnerAngle float32
	OuterAngle float32
	Range      float32
	Intensity  float32
}

// Packet is the per-frame input to the frame driver: the visible set, the
// lights, and the view state the modules consume. The View/Projection and
// ImageIndex fields are filled in by Driver.Frame before any module runs;
// callers populate the rest.
type Packet struct {
	DT          float32
	FrameNumber uint64

	// ImageIndex is the swapchain image acquired for this frame, set by
	// Driver.Frame after Swapchain.Next returns.
	ImageIndex int

	View         linear.M4
	Projection   linear.M4
	ViewPosition linear.V3

	AmbientColor linear.V4

	// Geometries is the visible set for the world/G-prepass modules.
	// ShadowGeometries is the (possibly larger) set visible from the
	// shadow-casting light; if nil, Geometries is used.
	Geometries       []GeometryRenderData
	ShadowGeometries []GeometryRenderData

	Sun    *DirectionalLight
	Points []PointLight
	Spots  []SpotLight
}

// shadowSet returns the geometry list the shadow pass should draw.
func (p *Packet) shadowSet() []GeometryRenderData {
	if p.ShadowGeometries != nil {
		return p.ShadowGeometries
	}
	return p.Geometries
}
