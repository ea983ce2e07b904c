// Copyright 2026 Gustavo C. Viegas. All rights reserved.

// Package render drives frames: it owns the swapchain scheduler
// (acquire, record, submit, present over a fixed number of in-flight
// slots) and the render modules that record each pass of the frame
// (G-prepass, AO, blur, shadows, volumetrics, sky, world, SSR, post).
package render

import (
	"fmt"
	"unsafe"

	"github.com/kestrelgfx/forge/driver"
	"github.com/kestrelgfx/forge/linear"
	"github.com/kestrelgfx/forge/rpass"
	"github.com/kestrelgfx/forge/shader"
)

// Module is one render phase of the frame: it records the commands of a
// single render pass ("the module begins the pass, uses
// its shader, applies globals, iterates visible geometry for the pass,
// binds the per-geometry instance, binds VB/IB offsets, and emits draws").
type Module interface {
	// Name identifies the module in logs.
	Name() string

	// OnRender records the module's render pass into cb. frame is the
	// monotonic frame number; passIndex is the module's position in the
	// frame driver's module list.
	OnRender(cb driver.CmdBuffer, p *Packet, frame uint64, passIndex int) error

	// Destroy releases resources the module owns. Shaders acquired
	// through a shader system are released by their owner, not here.
	Destroy()
}

// moduleBase carries the pass/shader pair every module records through and
// the begin/end plumbing common to all of them.
type moduleBase struct {
	name string
	pass *rpass.Pass
	sh   *shader.Shader
}

func (m *moduleBase) Name() string { return m.name }

func (m *moduleBase) Destroy() {}

// target picks the render target to draw into: passes that write a
// swapchain image carry one target per presentable image, selected by the
// acquired image index; offscreen passes carry a single target.
func (m *moduleBase) target(p *Packet) (*rpass.RenderTarget, error) {
	n := len(m.pass.RenderTargets)
	if n == 0 {
		return nil, fmt.Errorf("render: %s: pass %q has no render targets", m.name, m.pass.Name)
	}
	if n == 1 {
		return m.pass.RenderTargets[0], nil
	}
	return m.pass.RenderTargets[p.ImageIndex%n], nil
}

// begin starts the module's pass against this frame's target and binds the
// shader's global state for the given frame slot.
func (m *moduleBase) begin(cb driver.CmdBuffer, p *Packet, frame uint64) (*rpass.RenderTarget, error) {
	rt, err := m.target(p)
	if err != nil {
		return nil, err
	}
	m.pass.Begin(cb, rt)
	m.sh.Use()
	cb.SetPipeline(m.sh.Pipeline())
	return rt, nil
}

func (m *moduleBase) end(cb driver.CmdBuffer) { m.pass.End(cb) }

// slot maps a monotonic frame number to its frame-in-flight slot.
func slot(frame uint64) int { return int(frame % shader.MaxFramesInFlight) }

// fullscreen emits the single-triangle draw the screen-space modules use:
// three vertices, positions derived from gl_VertexIndex, no buffers bound.
func fullscreen(cb driver.CmdBuffer) { cb.Draw(3, 1, 0, 0) }

// m4Bytes views a matrix's 16 floats as the byte slice SetUniform expects.
// The slice aliases m, so it must be consumed before m is next written.
func m4Bytes(m *linear.M4) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(m)), 64)
}

// v4Bytes views a vector's 4 floats as bytes. Aliases v.
func v4Bytes(v *linear.V4) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), 16)
}

// v3Bytes views a vector's 3 floats as bytes. Aliases v.
func v3Bytes(v *linear.V3) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), 12)
}

// f32SliceBytes views a float slice's storage as bytes. Aliases s.
func f32SliceBytes(s []float32) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), 4*len(s))
}

// f32Bytes views a float's storage as bytes. Aliases f.
func f32Bytes(f *float32) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(f)), 4)
}

// setIfPresent writes a uniform, ignoring the unknown-name case so modules
// can share shaders whose configs omit optional uniforms.
func setIfPresent(sh *shader.Shader, name string, data []byte) {
	_ = sh.SetUniform(name, data)
}
