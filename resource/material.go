// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package resource

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// MaterialConfig is the parsed form of a .mat resource
// "Material config file" fields.
type MaterialConfig struct {
	Version         int
	Name            string
	ShaderName      string
	DiffuseColor    [4]float32
	Shininess       float32
	DiffuseMapName  string
	SpecularMapName string
	NormalMapName   string
}

// MaterialLoader parses .mat text files into MaterialConfig.
type MaterialLoader struct{}

// Type implements Loader.
func (*MaterialLoader) Type() Type { return Material }

// Load implements Loader. res.Data is a *MaterialConfig.
func (*MaterialLoader) Load(root, name string) (*Resource, error) {
	path := joinResolved(root, name, ".mat")
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cfg := MaterialConfig{Name: withoutExt(name), DiffuseColor: [4]float32{1, 1, 1, 1}, Shininess: 32}

	sc := bufio.NewScanner(f)
	line := 0
	for sc.Scan() {
		line++
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		key, val, ok := strings.Cut(s, "=")
		if !ok {
			return nil, fmt.Errorf("resource: %s:%d: malformed line %q", name, line, s)
		}
		key, val = strings.TrimSpace(key), strings.TrimSpace(val)
		if err := cfg.set(key, val); err != nil {
			return nil, fmt.Errorf("resource: %s:%d: %w", name, line, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	return &Resource{Name: name, Path: path, LoaderType: Material, Data: &cfg}, nil
}

func (cfg *MaterialConfig) set(key, val string) error {
	switch key {
	case "version":
		n, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("invalid version %q", val)
		}
		cfg.Version = n
	case "name":
		cfg.Name = val
	case "shader":
		cfg.ShaderName = val
	case "diffuse_color":
		fs := strings.Fields(val)
		if len(fs) != 4 {
			return fmt.Errorf("diffuse_color wants 4 components, got %d", len(fs))
		}
		for i, f := range fs {
			v, err := strconv.ParseFloat(f, 32)
			if err != nil {
				return fmt.Errorf("invalid diffuse_color component %q", f)
			}
			cfg.DiffuseColor[i] = float32(v)
		}
	case "shininess":
		v, err := strconv.ParseFloat(val, 32)
		if err != nil {
			return fmt.Errorf("invalid shininess %q", val)
		}
		cfg.Shininess = float32(v)
	case "diffuse_map_name":
		cfg.DiffuseMapName = val
	case "specular_map_name":
		cfg.SpecularMapName = val
	case "normal_map_name":
		cfg.NormalMapName = val
	default:
		return fmt.Errorf("unknown key %q", key)
	}
	return nil
}

// Unload implements Loader.
func (*MaterialLoader) Unload(res *Resource) {
	if !warnUnload(res) {
		return
	}
	_ = wrongType(Material, res)
}
