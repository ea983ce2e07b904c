// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package system

import (
	"fmt"

	"github.com/kestrelgfx/forge/driver"
	"github.com/kestrelgfx/forge/resource"
	"github.com/kestrelgfx/forge/rpass"
	"github.com/kestrelgfx/forge/shader"
)

// Shaders is the named, reference-counted shader cache. It
// resolves a shader's configured render_pass_name against a *rpass.Graph
// (built once, ahead of any Acquire) so shader.New can bind the pipeline to
// the right pass.
type Shaders struct {
	gpu   driver.GPU
	res   *resource.System
	graph *rpass.Graph
	cache *refcache[*shader.Shader]

	maxInstanceCount int
}

// NewShaders creates a shader system backed by res for resolving named
// .shadercfg resources, binding pipelines against passes in graph.
// maxInstanceCount bounds the instance-descriptor slots every acquired
// shader reserves; 0 defers to shader.MaxInstanceCount.
func NewShaders(gpu driver.GPU, res *resource.System, graph *rpass.Graph, maxInstanceCount int) *Shaders {
	return &Shaders{
		gpu:              gpu,
		res:              res,
		graph:            graph,
		cache:            newRefcache[*shader.Shader](),
		maxInstanceCount: maxInstanceCount,
	}
}

// Acquire loads (or returns the already-cached) shader named name,
// incrementing its reference count. Unlike Textures, there is no built-in
// default shader to degrade to: a load failure is returned to the caller,
// since a material system has nothing sensible to render with otherwise.
func (s *Shaders) Acquire(name string) (*shader.Shader, error) {
	if !validName(name) {
		return nil, fmt.Errorf("system: shader %q: invalid name", name)
	}
	return s.cache.acquire(name, true, func() (*shader.Shader, error) {
		return s.load(name)
	})
}

// Release decrements name's reference count, destroying the shader's GPU
// resources if it reaches zero.
func (s *Shaders) Release(name string) {
	sh, destroy := s.cache.release(name)
	if destroy {
		sh.Destroy()
	}
}

// RefCount returns the shader cached under name's current reference count,
// or 0 if it is not currently acquired.
func (s *Shaders) RefCount(name string) int { return s.cache.refCount(name) }

func (s *Shaders) load(name string) (*shader.Shader, error) {
	res, err := s.res.Load(resource.Shader, name)
	if err != nil {
		return nil, err
	}
	cfg := res.Data.(*shader.Config)

	pass := s.graph.Pass(cfg.RenderPassName)
	if pass == nil {
		return nil, fmt.Errorf("system: shader %q: unknown render pass %q", name, cfg.RenderPassName)
	}
	return shader.New(s.gpu, pass, cfg, s.maxInstanceCount)
}
