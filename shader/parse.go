// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package shader

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/kestrelgfx/forge/driver"
)

// ParseConfig parses the small key=value .shadercfg text format: one
// directive per line, blank lines ignored, '#' starts a line comment.
// Recognized keys: version (ignored beyond validation), name, renderpass,
// stages (comma-separated "vertex"/"fragment"/"compute"), cull_mode
// ("none"/"front"/"back"/"both"), wireframe ("true"/"false"),
// attribute=<type>,<name>, and uniform=<type>,<scope>,<name>[,<size>]
// (size required only for "custom"). Sets are inferred from uniform
// scope: all Global-scope non-sampler uniforms share set 0, all
// Instance-scope uniforms share set 1, each naming a single binding;
// sampler uniforms get their own binding within their scope's set.
func ParseConfig(text string) (*Config, error) {
	cfg := &Config{}
	var globalUniforms, instanceUniforms []UniformConfig

	sc := bufio.NewScanner(strings.NewReader(text))
	for lineNo := 1; sc.Scan(); lineNo++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, val, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("shader: %d: missing '=' in %q", lineNo, line)
		}
		key, val = strings.TrimSpace(key), strings.TrimSpace(val)

		switch key {
		case "version":
			// Validated only for presence; no behavior depends on it.
		case "name":
			cfg.Name = val
		case "renderpass":
			cfg.RenderPassName = val
		case "wireframe":
			cfg.Wireframe = val == "true"
		case "cull_mode":
			cfg.CullMode = parseCullMode(val)
		case "stages":
			stages, err := parseStages(val)
			if err != nil {
				return nil, fmt.Errorf("shader: %d: %w", lineNo, err)
			}
			cfg.Stages = stages
		case "attribute":
			a, err := parseAttribute(val)
			if err != nil {
				return nil, fmt.Errorf("shader: %d: %w", lineNo, err)
			}
			cfg.Attributes = append(cfg.Attributes, a)
		case "uniform":
			scope, u, err := parseUniform(val)
			if err != nil {
				return nil, fmt.Errorf("shader: %d: %w", lineNo, err)
			}
			switch scope {
			case ScopeGlobal:
				globalUniforms = append(globalUniforms, u)
			case ScopeInstance:
				instanceUniforms = append(instanceUniforms, u)
			case ScopeLocal:
				cfg.PushConstants = append(cfg.PushConstants, u)
			}
		default:
			return nil, fmt.Errorf("shader: %d: unknown key %q", lineNo, key)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	if len(globalUniforms) > 0 {
		cfg.Sets = append(cfg.Sets, buildSet(0, ScopeGlobal, globalUniforms))
	}
	if len(instanceUniforms) > 0 {
		cfg.Sets = append(cfg.Sets, buildSet(1, ScopeInstance, instanceUniforms))
	}
	return cfg, nil
}

// buildSet splits uniforms into one uniform-buffer binding (index 0,
// holding every non-sampler uniform; omitted when there are none) and one
// sampler binding per sampler, numbered consecutively after it (from 0
// when there is no uniform-buffer binding).
func buildSet(setIndex int, scope Scope, uniforms []UniformConfig) DescSetConfig {
	var ubo []UniformConfig
	var samplers []UniformConfig
	for _, u := range uniforms {
		if u.Type == UniSampler {
			samplers = append(samplers, u)
		} else {
			ubo = append(ubo, u)
		}
	}
	set := DescSetConfig{Index: setIndex, Scope: scope}
	if len(ubo) > 0 {
		set.Bindings = append(set.Bindings, BindingConfig{
			Index: 0, Type: BindUniform, Count: 1,
			Stages: driver.SVertex | driver.SFragment, Uniforms: ubo,
		})
	}
	for _, s := range samplers {
		set.Bindings = append(set.Bindings, BindingConfig{
			Index: len(set.Bindings), Type: BindSampler, Count: 1,
			Stages: driver.SFragment, Uniforms: []UniformConfig{s},
		})
	}
	return set
}

func parseStages(val string) (driver.Stage, error) {
	var s driver.Stage
	for _, tok := range strings.Split(val, ",") {
		switch strings.TrimSpace(tok) {
		case "vertex":
			s |= driver.SVertex
		case "fragment":
			s |= driver.SFragment
		case "compute":
			s |= driver.SCompute
		default:
			return 0, fmt.Errorf("unknown stage %q", tok)
		}
	}
	return s, nil
}

func parseCullMode(val string) CullMode {
	switch val {
	case "front":
		return CullFront
	case "back":
		return CullBack
	case "both":
		return CullBoth
	default:
		return CullNone
	}
}

func parseAttribute(val string) (AttributeConfig, error) {
	parts := strings.SplitN(val, ",", 2)
	if len(parts) != 2 {
		return AttributeConfig{}, fmt.Errorf("attribute needs <type>,<name>, got %q", val)
	}
	t, err := parseAttributeType(strings.TrimSpace(parts[0]))
	if err != nil {
		return AttributeConfig{}, err
	}
	return AttributeConfig{Type: t, Name: strings.TrimSpace(parts[1])}, nil
}

func parseAttributeType(s string) (AttributeType, error) {
	switch s {
	case "float32":
		return AttrFloat32, nil
	case "vec2":
		return AttrVec2, nil
	case "vec3":
		return AttrVec3, nil
	case "vec4":
		return AttrVec4, nil
	case "int8":
		return AttrInt8, nil
	case "int16":
		return AttrInt16, nil
	case "int32":
		return AttrInt32, nil
	case "uint8":
		return AttrUint8, nil
	case "uint16":
		return AttrUint16, nil
	case "uint32":
		return AttrUint32, nil
	default:
		return 0, fmt.Errorf("unknown attribute type %q", s)
	}
}

func parseUniform(val string) (Scope, UniformConfig, error) {
	parts := strings.Split(val, ",")
	if len(parts) < 3 {
		return 0, UniformConfig{}, fmt.Errorf("uniform needs <type>,<scope>,<name>[,<size>], got %q", val)
	}
	typ, err := parseUniformType(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, UniformConfig{}, err
	}
	scope, err := parseScope(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, UniformConfig{}, err
	}
	u := UniformConfig{Type: typ, Name: strings.TrimSpace(parts[2])}
	if len(parts) > 3 {
		n, err := strconv.Atoi(strings.TrimSpace(parts[3]))
		if err != nil {
			return 0, UniformConfig{}, fmt.Errorf("invalid uniform size %q", parts[3])
		}
		u.Size = n
	}
	return scope, u, nil
}

func parseUniformType(s string) (UniformType, error) {
	switch s {
	case "float32":
		return UniFloat32, nil
	case "vec2":
		return UniVec2, nil
	case "vec3":
		return UniVec3, nil
	case "vec4":
		return UniVec4, nil
	case "int32":
		return UniInt32, nil
	case "uint32":
		return UniUint32, nil
	case "mat4", "matrix4":
		return UniMatrix4, nil
	case "int8":
		return UniInt8, nil
	case "int16":
		return UniInt16, nil
	case "uint8":
		return UniUint8, nil
	case "uint16":
		return UniUint16, nil
	case "sampler":
		return UniSampler, nil
	case "custom":
		return UniCustom, nil
	default:
		return 0, fmt.Errorf("unknown uniform type %q", s)
	}
}

func parseScope(s string) (Scope, error) {
	switch s {
	case "0", "global":
		return ScopeGlobal, nil
	case "1", "instance":
		return ScopeInstance, nil
	case "2", "local":
		return ScopeLocal, nil
	default:
		return 0, fmt.Errorf("unknown scope %q", s)
	}
}
