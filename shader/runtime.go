// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package shader

import (
	"errors"
	"fmt"

	"github.com/kestrelgfx/forge/driver"
	"github.com/kestrelgfx/forge/gpumem"
	"github.com/kestrelgfx/forge/internal/log"
	"github.com/kestrelgfx/forge/memtag"
	"github.com/kestrelgfx/forge/rpass"
	"github.com/kestrelgfx/forge/rtexture"
	"github.com/kestrelgfx/forge/shaderc"
)

// MaxFramesInFlight is the number of frame slots every Shader double/triple
// buffers its descriptor sets over, matching the frame driver's own slot
// count.
const MaxFramesInFlight = 3

// ErrMapCountMismatch is returned by Acquire when the caller supplies fewer
// texture maps than the shader's instance scope declares sampler slots for.
var ErrMapCountMismatch = errors.New("shader: map count mismatch")

// errWrongState means a call was made while the shader's bind state
// machine was not in the state the operation requires.
var errWrongState = errors.New("shader: wrong bound state")

// errWrongScope means SetUniform named a uniform whose scope cannot be
// written from the shader's current bind state (e.g. an instance-scope
// uniform with no instance bound).
var errWrongScope = errors.New("shader: uniform scope not bound")

// Shader is the runtime counterpart of a parsed Config: it owns the
// compiled pipeline, the descriptor heaps/table, and the managed uniform
// buffer backing the global and instance scopes
type Shader struct {
	Name           string
	RenderPassName string
	cull           CullMode

	cfg    *Config
	layout *Layout

	gpu  driver.GPU
	pass *rpass.Pass

	maxInstanceCount  int
	maxFramesInFlight int
	maxAniso          int

	vertCode driver.ShaderCode
	fragCode driver.ShaderCode
	pipeline driver.Pipeline

	globalHeap   driver.DescHeap
	instanceHeap driver.DescHeap
	table        driver.DescTable

	ubo       *gpumem.Managed
	globalOff int64

	slots     freeSlots
	instances map[int]*Instance

	state       BoundState
	curInstance *Instance

	push [pushConstantWindow]byte
}

// New parses nothing itself (see ParseConfig): it takes an already-parsed
// Config, computes its layout against the device's UBO alignment, compiles
// its GLSL stage sources through shaderc, and builds the pipeline, the
// uniform buffer and the descriptor heaps.
func New(gpu driver.GPU, pass *rpass.Pass, cfg *Config, maxInstanceCount int) (*Shader, error) {
	if maxInstanceCount <= 0 || maxInstanceCount > MaxInstanceCount {
		maxInstanceCount = MaxInstanceCount
	}
	lim := gpu.Limits()
	layout, err := computeLayout(cfg, uint64(lim.UBOAlignment))
	if err != nil {
		return nil, err
	}

	s := &Shader{
		Name:              cfg.Name,
		RenderPassName:    cfg.RenderPassName,
		cull:              cfg.CullMode,
		cfg:               cfg,
		layout:            layout,
		gpu:               gpu,
		pass:              pass,
		maxInstanceCount:  maxInstanceCount,
		maxFramesInFlight: MaxFramesInFlight,
		maxAniso:          int(lim.MaxAnisotropy),
		slots:             newFreeSlots(maxInstanceCount),
		instances:         make(map[int]*Instance),
	}

	if err := s.compile(); err != nil {
		return nil, err
	}
	if err := s.buildDescriptors(); err != nil {
		s.Destroy()
		return nil, err
	}
	if err := s.buildUBO(); err != nil {
		s.Destroy()
		return nil, err
	}
	if err := s.buildPipeline(); err != nil {
		s.Destroy()
		return nil, err
	}

	log.Debugf("shader", "%s: global stride %d, instance stride %d, %d instance slots",
		s.Name, layout.GlobalStride(), layout.InstanceStride(), maxInstanceCount)
	return s, nil
}

func (s *Shader) compile() error {
	vertSPV, err := shaderc.Compile(s.cfg.VertSource, s.cfg.Name+".vert", shaderc.Vertex)
	if err != nil {
		return fmt.Errorf("shader %s: vertex stage: %w", s.Name, err)
	}
	s.vertCode, err = s.gpu.NewShaderCode(vertSPV)
	if err != nil {
		return err
	}
	fragSPV, err := shaderc.Compile(s.cfg.FragSource, s.cfg.Name+".frag", shaderc.Fragment)
	if err != nil {
		return fmt.Errorf("shader %s: fragment stage: %w", s.Name, err)
	}
	s.fragCode, err = s.gpu.NewShaderCode(fragSPV)
	return err
}

func (s *Shader) buildDescriptors() error {
	gset := s.layout.setByScope(ScopeGlobal)
	iset := s.layout.setByScope(ScopeInstance)

	var heaps []driver.DescHeap
	if gset != nil {
		h, err := s.gpu.NewDescHeap(gset.descriptors())
		if err != nil {
			return err
		}
		if err := h.New(s.maxFramesInFlight); err != nil {
			h.Destroy()
			return err
		}
		s.globalHeap = h
		heaps = append(heaps, h)
	}
	if iset != nil {
		h, err := s.gpu.NewDescHeap(iset.descriptors())
		if err != nil {
			return err
		}
		if err := h.New(s.maxInstanceCount * s.maxFramesInFlight); err != nil {
			h.Destroy()
			return err
		}
		s.instanceHeap = h
		heaps = append(heaps, h)
	}
	if len(heaps) == 0 {
		return nil
	}
	t, err := s.gpu.NewDescTable(heaps)
	if err != nil {
		return err
	}
	s.table = t
	return nil
}

func (s *Shader) buildUBO() error {
	size := int64(s.layout.GlobalStride()) + int64(s.maxInstanceCount)*int64(s.layout.InstanceStride())
	if size == 0 {
		return nil
	}
	ubo, err := gpumem.NewManaged(s.gpu, size, true, driver.UShaderConst, gpumem.FindFirst, memtag.Shader)
	if err != nil {
		return err
	}
	s.ubo = ubo

	if stride := s.layout.GlobalStride(); stride != 0 {
		off, err := ubo.Allocate(int64(stride), int64(s.gpu.Limits().UBOAlignment))
		if err != nil {
			return err
		}
		s.globalOff = off
		if b := s.layout.setByScope(ScopeGlobal).uboBinding(); b != nil && s.globalHeap != nil {
			for frame := 0; frame < s.maxFramesInFlight; frame++ {
				s.globalHeap.SetBuffer(frame, b.Index, 0,
					[]driver.Buffer{ubo.Driver()}, []int64{off}, []int64{int64(stride)})
			}
		}
	}
	return nil
}

func (s *Shader) buildPipeline() error {
	fill := driver.FFill
	if s.cfg.Wireframe {
		fill = driver.FLines
	}
	state := driver.GraphState{
		VertFunc: driver.ShaderFunc{Code: s.vertCode, Name: "main"},
		FragFunc: driver.ShaderFunc{Code: s.fragCode, Name: "main"},
		Desc:     s.table,
		Input:    s.cfg.VertexInputs(),
		Topology: driver.TTriangle,
		Raster: driver.RasterState{
			Clockwise: false, // front face is CCW
			Cull:      s.cull.driverCull(),
			Fill:      fill,
		},
		Samples: s.pass.Samples(),
		DS: driver.DSState{
			DepthTest:  s.pass.DepthTesting,
			DepthWrite: s.pass.DepthTesting,
			DepthCmp:   driver.CLess,
		},
		Blend: driver.BlendState{
			Color: []driver.ColorBlend{{
				Blend:     true,
				WriteMask: driver.CAll,
				Op:        [2]driver.BlendOp{driver.BAdd, driver.BAdd},
				SrcFac:    [2]driver.BlendFac{driver.BSrcAlpha, driver.BSrcAlpha},
				DstFac:    [2]driver.BlendFac{driver.BInvSrcAlpha, driver.BInvSrcAlpha},
			}},
		},
		Pass:    s.pass.Driver(),
		Subpass: 0,
	}
	pl, err := s.gpu.NewPipeline(&state)
	if err != nil {
		return err
	}
	s.pipeline = pl
	return nil
}

// Reload recompiles the shader's GLSL sources and recreates the
// pipeline, keeping the uniform buffer and descriptor heaps intact.
func (s *Shader) Reload() error {
	if s.vertCode != nil {
		s.vertCode.Destroy()
	}
	if s.fragCode != nil {
		s.fragCode.Destroy()
	}
	if err := s.compile(); err != nil {
		return err
	}
	if s.pipeline != nil {
		s.pipeline.Destroy()
	}
	return s.buildPipeline()
}

// Use transitions the shader to BoundGlobal
// machine.
func (s *Shader) Use() {
	s.state = BoundGlobal
	s.curInstance = nil
}

// BindInstance transitions to BoundInstance for the given instance. It
// requires the shader to already be BoundGlobal or BoundInstance.
func (s *Shader) BindInstance(inst *Instance) error {
	if s.state == Unbound {
		return errWrongState
	}
	s.state = BoundInstance
	s.curInstance = inst
	return nil
}

// SetUniform writes value's bytes into the uniform named name, targeting
// the global region or the currently bound instance's region depending on
// the uniform's own declared scope.
func (s *Shader) SetUniform(name string, data []byte) error {
	idx, ok := s.layout.uniformIndex[name]
	if !ok {
		return fmt.Errorf("shader %s: unknown uniform %q", s.Name, name)
	}
	u := s.layout.uniforms[idx]
	var base int64
	switch u.Scope {
	case ScopeGlobal:
		base = s.globalOff
	case ScopeInstance:
		if s.curInstance == nil {
			return errWrongScope
		}
		base = s.curInstance.uboOff
	default:
		return fmt.Errorf("shader %s: %q is a push constant, use SetPushConstant", s.Name, name)
	}
	off := base + int64(u.Range.Offset)
	n := copy(s.ubo.Bytes()[off:], data)
	if int64(n) < int64(u.Range.Size) {
		return fmt.Errorf("shader %s: %q: short write", s.Name, name)
	}
	return nil
}

// Pipeline returns the shader's compiled graphics pipeline, for binding
// via CmdBuffer.SetPipeline before draw commands are recorded.
func (s *Shader) Pipeline() driver.Pipeline { return s.pipeline }

// SetPushConstant writes data into the named local-scope uniform's range
// within the shader's push-constant window. The window's bytes are read
// back with PushConstantBytes by callers that deliver them to the
// backend.
func (s *Shader) SetPushConstant(name string, data []byte) error {
	idx, ok := s.layout.uniformIndex[name]
	if !ok {
		return fmt.Errorf("shader %s: unknown uniform %q", s.Name, name)
	}
	u := s.layout.uniforms[idx]
	if u.Scope != ScopeLocal {
		return fmt.Errorf("shader %s: %q is not a push constant", s.Name, name)
	}
	n := copy(s.push[u.Range.Offset:u.Range.Offset+u.Range.Size], data)
	if uint64(n) < u.Range.Size {
		return fmt.Errorf("shader %s: %q: short write", s.Name, name)
	}
	return nil
}

// PushConstantBytes returns the populated prefix of the shader's
// push-constant window.
func (s *Shader) PushConstantBytes() []byte { return s.push[:s.layout.pushSize] }

// PushConstants returns the byte layout of the shader's push-constant
// block, for callers assembling the
// CmdBuffer push-constant payload themselves (the driver interface this
// module targets has no dedicated push-constant command). The ranges are
// offsets within the shader's own push-constant window, which
// SetPushConstant writes and PushConstantBytes returns; that window is
// separate from the instance uniform buffer.
func (s *Shader) PushConstants() []ByteRange {
	out := make([]ByteRange, len(s.layout.pushConstants))
	for i, u := range s.layout.pushConstants {
		out[i] = u.Range
	}
	return out
}

// ApplyGlobal binds the global descriptor set (set 0) for the given frame
// slot. The underlying buffer range was already written at construction,
// so this call only issues the bind.
func (s *Shader) ApplyGlobal(cb driver.CmdBuffer, frame int) {
	if s.table == nil || s.globalHeap == nil {
		return
	}
	cb.SetDescTableGraph(s.table, 0, []int{frame})
}

// ApplyInstance binds the instance descriptor set (set 1) for inst at the
// given frame slot, writing any pending texture-map updates first.
func (s *Shader) ApplyInstance(cb driver.CmdBuffer, frame int, inst *Instance) error {
	if inst == nil {
		return errors.New("shader: nil instance")
	}
	if s.instanceHeap == nil || s.table == nil {
		return nil
	}
	cpy := inst.copyIndex(frame, s.maxFramesInFlight)
	if inst.shouldUpdate[frame] || !inst.initialized[frame] {
		if err := s.writeInstanceDescriptors(inst, cpy); err != nil {
			return err
		}
		inst.shouldUpdate[frame] = false
		inst.initialized[frame] = true
	}
	cb.SetDescTableGraph(s.table, 1, []int{cpy})
	return nil
}

func (s *Shader) writeInstanceDescriptors(inst *Instance, cpy int) error {
	iset := s.layout.setByScope(ScopeInstance)
	if iset == nil {
		return nil
	}
	if b := iset.uboBinding(); b != nil {
		s.instanceHeap.SetBuffer(cpy, b.Index, 0,
			[]driver.Buffer{s.ubo.Driver()}, []int64{inst.uboOff}, []int64{int64(iset.Stride)})
	}
	mi := 0
	for _, b := range iset.Bindings {
		if b.Type != BindSampler {
			continue
		}
		n := b.Count
		if n < 1 {
			n = 1
		}
		views := make([]driver.ImageView, n)
		samplers := make([]driver.Sampler, n)
		for i := 0; i < n; i++ {
			if mi+i >= len(inst.maps) {
				return ErrMapCountMismatch
			}
			m := &inst.maps[mi+i]
			if m.Texture == nil {
				return fmt.Errorf("shader %s: instance map %d has no texture", s.Name, mi+i)
			}
			views[i] = m.Texture.View()
			splr, err := m.Sampler(s.gpu, s.maxAniso)
			if err != nil {
				return err
			}
			samplers[i] = splr
		}
		s.instanceHeap.SetImage(cpy, b.Index, 0, views)
		s.instanceHeap.SetSampler(cpy, b.Index, 0, samplers)
		mi += n
	}
	return nil
}

// instanceTextureCount returns the number of texture maps an instance
// acquire must supply
// count".
func (s *Shader) instanceTextureCount() int {
	iset := s.layout.setByScope(ScopeInstance)
	if iset == nil {
		return 0
	}
	var n int
	for _, b := range iset.Bindings {
		if b.Type == BindSampler {
			if b.Count > 0 {
				n += b.Count
			} else {
				n++
			}
		}
	}
	return n
}

// Acquire reserves an instance slot and UBO region for a new material or
// UI element. def (typically the texture system's default) fills in any
// nil texture in maps.
func (s *Shader) Acquire(maps []rtexture.Map, def rtexture.Map) (*Instance, error) {
	want := s.instanceTextureCount()
	if len(maps) < want {
		return nil, ErrMapCountMismatch
	}
	if len(maps) > want {
		log.Warnf("shader", "%s: acquire given %d maps, want %d; ignoring surplus", s.Name, len(maps), want)
		maps = maps[:want]
	}
	owned := make([]rtexture.Map, want)
	copy(owned, maps)
	for i := range owned {
		if owned[i].Texture == nil {
			owned[i] = def
		}
	}

	slot, err := s.slots.take()
	if err != nil {
		return nil, err
	}
	stride := int64(s.layout.InstanceStride())
	var off int64
	if stride != 0 {
		off, err = s.ubo.Allocate(stride, int64(s.gpu.Limits().UBOAlignment))
		if err != nil {
			s.slots.release(slot)
			return nil, err
		}
	}
	inst := &Instance{
		id:     slot,
		uboOff: off,
		maps:   owned,
	}
	for i := range inst.shouldUpdate {
		inst.shouldUpdate[i] = true
	}
	s.instances[slot] = inst
	return inst, nil
}

// Release returns inst's slot and UBO region to the free list.
func (s *Shader) Release(inst *Instance) {
	if inst == nil {
		return
	}
	if _, ok := s.instances[inst.id]; !ok {
		return
	}
	delete(s.instances, inst.id)
	if s.layout.InstanceStride() != 0 {
		s.ubo.Deallocate(inst.uboOff)
	}
	s.slots.release(inst.id)
}

// Destroy releases the shader's GPU resources.
func (s *Shader) Destroy() {
	if s == nil {
		return
	}
	if s.pipeline != nil {
		s.pipeline.Destroy()
	}
	if s.table != nil {
		s.table.Destroy()
	}
	if s.globalHeap != nil {
		s.globalHeap.Destroy()
	}
	if s.instanceHeap != nil {
		s.instanceHeap.Destroy()
	}
	if s.ubo != nil {
		s.ubo.Destroy()
	}
	if s.vertCode != nil {
		s.vertCode.Destroy()
	}
	if s.fragCode != nil {
		s.fragCode.Destroy()
	}
}

// uboBinding returns the set's single uniform-buffer binding, if any.
func (s *descSet) uboBinding() *binding {
	for i := range s.Bindings {
		if s.Bindings[i].Type == BindUniform {
			return &s.Bindings[i]
		}
	}
	return nil
}
