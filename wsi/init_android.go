// Copyright 2026 Gustavo C. Viegas. All rights reserved.

//go:build android

package wsi

// GLFW has no Android backend; this platform always falls back to the
// dummy implementation.
func init() { initDummy() }
