// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package vk

// #include <proc.h>
import "C"

import (
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/kestrelgfx/forge/driver"
)

// BUG: Not tested.

// proc is responsible for loading and unloading the Vulkan library.
type proc struct {
	h windows.Handle
}

// open loads the Vulkan library and fetches vkGetInstanceProcAddr.
// The library is resolved from the system directory only, so a DLL
// planted next to the executable cannot shadow the ICD loader.
func (p *proc) open() error {
	h, err := windows.LoadLibraryEx("vulkan-1.dll", 0, windows.LOAD_LIBRARY_SEARCH_SYSTEM32)
	if err != nil {
		return driver.ErrNotInstalled
	}
	f, err := windows.GetProcAddress(h, "vkGetInstanceProcAddr")
	if err != nil || f == 0 {
		windows.FreeLibrary(h)
		return driver.ErrNotInstalled
	}
	p.h = h
	C.getInstanceProcAddr = C.PFN_vkGetInstanceProcAddr(unsafe.Pointer(f))
	return nil
}

// close unloads the Vulkan library and invalidates all symbols.
func (p *proc) close() {
	if p.h != 0 {
		windows.FreeLibrary(p.h)
	}
	C.getInstanceProcAddr = nil
	*p = proc{}
}
