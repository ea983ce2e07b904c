// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package resource

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMaterialLoaderParse(t *testing.T) {
	dir := t.TempDir()
	content := "version=1\n" +
		"name=brick\n" +
		"shader=phong\n" +
		"# a comment line\n" +
		"diffuse_color=0.8 0.1 0.1 1.0\n" +
		"shininess=16\n" +
		"diffuse_map_name=brick_diffuse\n"
	path := filepath.Join(dir, "brick.mat")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	l := &MaterialLoader{}
	res, err := l.Load(dir, "brick.mat")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cfg, ok := res.Data.(*MaterialConfig)
	if !ok {
		t.Fatalf("Data is %T, want *MaterialConfig", res.Data)
	}
	if cfg.ShaderName != "phong" || cfg.Shininess != 16 || cfg.DiffuseMapName != "brick_diffuse" {
		t.Errorf("unexpected config: %+v", cfg)
	}
	want := [4]float32{0.8, 0.1, 0.1, 1.0}
	if cfg.DiffuseColor != want {
		t.Errorf("DiffuseColor = %v, want %v", cfg.DiffuseColor, want)
	}
}

func TestMaterialLoaderMalformedLine(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.mat")
	if err := os.WriteFile(path, []byte("not a key value line"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := (&MaterialLoader{}).Load(dir, "bad.mat"); err == nil {
		t.Error("Load succeeded on malformed content, want error")
	}
}
