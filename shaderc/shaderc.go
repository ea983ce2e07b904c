// Copyright 2026 Gustavo C. Viegas. All rights reserved.

// Package shaderc wraps the shaderc GLSL-to-SPIR-V compiler, used by the
// shader package to turn .shadercfg stage sources into bytecode at load
// and reload time (the reload() contract).
//
// Grounded on NOT-REAL-GAMES-vulkango/shaderc/shaderc.go.
package shaderc

/*
#cgo pkg-config: shaderc
#include <shaderc/shaderc.h>
#include <stdlib.h>
*/
import "C"

import (
	"fmt"
	"unsafe"
)

// Kind identifies which pipeline stage a GLSL source targets.
type Kind int

const (
	Vertex Kind = iota
	Fragment
	Compute
)

func (k Kind) cKind() C.shaderc_shader_kind {
	switch k {
	case Vertex:
		return C.shaderc_vertex_shader
	case Fragment:
		return C.shaderc_fragment_shader
	default:
		return C.shaderc_compute_shader
	}
}

// Compile compiles a single GLSL source string into SPIR-V bytecode.
// filename is used only for diagnostic messages embedded in errors.
func Compile(source, filename string, kind Kind) ([]byte, error) {
	compiler := C.shaderc_compiler_initialize()
	if compiler == nil {
		return nil, fmt.Errorf("shaderc: failed to initialize compiler")
	}
	defer C.shaderc_compiler_release(compiler)

	opts := C.shaderc_compile_options_initialize()
	defer C.shaderc_compile_options_release(opts)
	C.shaderc_compile_options_set_target_env(opts, C.shaderc_target_env_vulkan, C.shaderc_env_version_vulkan_1_3)
	C.shaderc_compile_options_set_optimization_level(opts, C.shaderc_optimization_level_performance)

	cSource := C.CString(source)
	defer C.free(unsafe.Pointer(cSource))
	cFilename := C.CString(filename)
	defer C.free(unsafe.Pointer(cFilename))
	cEntry := C.CString("main")
	defer C.free(unsafe.Pointer(cEntry))

	result := C.shaderc_compile_into_spv(
		compiler, cSource, C.size_t(len(source)), kind.cKind(), cFilename, cEntry, opts,
	)
	defer C.shaderc_result_release(result)

	if status := C.shaderc_result_get_compilation_status(result); status != C.shaderc_compilation_status_success {
		return nil, fmt.Errorf("shaderc: %s", C.GoString(C.shaderc_result_get_error_message(result)))
	}

	ptr := C.shaderc_result_get_bytes(result)
	n := C.shaderc_result_get_length(result)
	return C.GoBytes(unsafe.Pointer(ptr), C.int(n)), nil
}
