// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package resource

import "os"

// TextLoader loads whole files as UTF-8 text. The Material and Shader
// loaders open their .mat and .shadercfg files themselves rather than
// going through this loader.
type TextLoader struct{}

// Type implements Loader.
func (*TextLoader) Type() Type { return Text }

// Load implements Loader. res.Data is a string.
func (*TextLoader) Load(root, name string) (*Resource, error) {
	path := joinResolved(root, name, "")
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &Resource{Name: name, Path: path, LoaderType: Text, Data: string(b)}, nil
}

// Unload implements Loader.
func (*TextLoader) Unload(res *Resource) {
	if !warnUnload(res) {
		return
	}
	_ = wrongType(Text, res)
}

// BinaryLoader loads whole files as raw bytes.
type BinaryLoader struct{}

// Type implements Loader.
func (*BinaryLoader) Type() Type { return Binary }

// Load implements Loader. res.Data is a []byte.
func (*BinaryLoader) Load(root, name string) (*Resource, error) {
	path := joinResolved(root, name, "")
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &Resource{Name: name, Path: path, LoaderType: Binary, Data: b}, nil
}

// Unload implements Loader.
func (*BinaryLoader) Unload(res *Resource) {
	if !warnUnload(res) {
		return
	}
	_ = wrongType(Binary, res)
}
