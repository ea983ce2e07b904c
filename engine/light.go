// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"github.com/kestrelgfx/forge/engine/internal/shader"
	"github.com/kestrelgfx/forge/linear"
	"github.com/kestrelgfx/forge/render"
)

// SunLight is a directional light.
type SunLight struct {
	Direction linear.V3
	Intensity float32
	R, G, B   float32
}

// PointLight is an omnidirectional, positional light.
type PointLight struct {
	Position  linear.V3
	Range     float32
	Intensity float32
	R, G, B   float32
}

// SpotLight is a directional, positional light defined
// by a conical shape.
type SpotLight struct {
	Direction  linear.V3
	Position   linear.V3
	InnerAngle float32
	OuterAngle float32
	Range      float32
	Intensity  float32
	R, G, B    float32
}

// lightMap is a dataMap for lights.
type lightMap struct{ dataMap[Light, light] }

// light is what a lightMap stores.
type light struct {
	typ    int32
	layout shader.LightLayout
}

// Light identifies a light source registered with an
// Engine.
type Light int

// NewSunLight registers a directional light.
func (e *Engine) NewSunLight(param *SunLight) Light {
	var l light
	l.typ = shader.DirectLight
	l.layout.SetType(shader.DirectLight)
	dir := param.Direction
	l.layout.SetDirection(&dir)
	l.layout.SetIntensity(param.Intensity)
	l.layout.SetColor(&linear.V3{param.R, param.G, param.B})
	return e.lights.insert(l)
}

// NewPointLight registers a point light.
func (e *Engine) NewPointLight(param *PointLight) Light {
	var l light
	l.typ = shader.PointLight
	l.layout.SetType(shader.PointLight)
	pos := param.Position
	l.layout.SetPosition(&pos)
	l.layout.SetRange(param.Range)
	l.layout.SetIntensity(param.Intensity)
	l.layout.SetColor(&linear.V3{param.R, param.G, param.B})
	return e.lights.insert(l)
}

// NewSpotLight registers a spot light.
func (e *Engine) NewSpotLight(param *SpotLight) Light {
	var l light
	l.typ = shader.SpotLight
	l.layout.SetType(shader.SpotLight)
	dir, pos := param.Direction, param.Position
	l.layout.SetDirection(&dir)
	l.layout.SetPosition(&pos)
	l.layout.SetRange(param.Range)
	l.layout.SetIntensity(param.Intensity)
	l.layout.SetAngScale(param.InnerAngle)
	l.layout.SetAngOffset(param.OuterAngle)
	l.layout.SetColor(&linear.V3{param.R, param.G, param.B})
	return e.lights.insert(l)
}

// RemoveLight unregisters id.
func (e *Engine) RemoveLight(id Light) error {
	_, err := e.lights.remove(id)
	return err
}

// appendLight lowers l into p: the first directional light becomes the
// packet's sun (consumed by the shadow, volumetrics and sky modules);
// everything else goes into the point/spot lists.
func appendLight(p *render.Packet, l *light) {
	switch l.typ {
	case shader.DirectLight:
		if p.Sun != nil {
			break
		}
		p.Sun = &render.DirectionalLight{
			Direction: l.layout.Direction(),
			Color:     l.layout.Color(),
			Intensity: l.layout.Intensity(),
		}
	case shader.PointLight:
		p.Points = append(p.Points, render.PointLight{
			Position:  l.layout.Position(),
			Color:     l.layout.Color(),
			Range:     l.layout.Range(),
			Intensity: l.layout.Intensity(),
		})
	case shader.SpotLight:
		p.Spots = append(p.Spots, render.SpotLight{
			Position:   l.layout.Position(),
			Direction:  l.layout.Direction(),
			Color:      l.layout.Color(),
			InnerAngle: l.layout.AngScale(),
			OuterAngle: l.layout.AngOffset(),
			Range:      l.layout.Range(),
			Intensity:  l.layout.Intensity(),
		})
	}
}
