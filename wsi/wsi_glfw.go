// Copyright 2026 Gustavo C. Viegas. All rights reserved.

//go:build !android

package wsi

import (
	"errors"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// window is the GLFW-backed implementation of Window.
type window struct {
	win    *glfw.Window
	title  string
	mapped bool
}

func initGLFW() error {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return errors.New("wsi: failed to initialize GLFW: " + err.Error())
	}
	newWindow = newWindowGLFW
	dispatch = dispatchGLFW
	setAppName = setAppNameGLFW
	platform = platformGLFW()
	return nil
}

func newWindowGLFW(width, height int, title string) (Window, error) {
	// The driver owns the graphics context (Vulkan), so GLFW must not
	// create one of its own.
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		return nil, errors.New("wsi: failed to create GLFW window: " + err.Error())
	}

	w := &window{win: win, title: title}

	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
		if keyboardHandler == nil || key < 0 {
			return
		}
		switch action {
		case glfw.Press, glfw.Repeat:
			keyboardHandler.KeyboardKey(keyFrom(int(key)), true, modFromGLFW(mods))
		case glfw.Release:
			keyboardHandler.KeyboardKey(keyFrom(int(key)), false, modFromGLFW(mods))
		}
	})

	win.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		if pointerHandler == nil {
			return
		}
		x, y := win.GetCursorPos()
		pointerHandler.PointerButton(btnFromGLFW(button), action == glfw.Press, int(x), int(y))
	})

	win.SetCursorPosCallback(func(_ *glfw.Window, xpos, ypos float64) {
		if pointerHandler != nil {
			pointerHandler.PointerMotion(int(xpos), int(ypos))
		}
	})

	win.SetCursorEnterCallback(func(_ *glfw.Window, entered bool) {
		if pointerHandler == nil {
			return
		}
		if entered {
			x, y := win.GetCursorPos()
			pointerHandler.PointerIn(w, int(x), int(y))
		} else {
			pointerHandler.PointerOut(w)
		}
	})

	win.SetFocusCallback(func(_ *glfw.Window, focused bool) {
		if keyboardHandler == nil {
			return
		}
		if focused {
			keyboardHandler.KeyboardIn(w)
		} else {
			keyboardHandler.KeyboardOut(w)
		}
	})

	win.SetSizeCallback(func(_ *glfw.Window, newWidth, newHeight int) {
		if windowHandler != nil {
			windowHandler.WindowResize(w, newWidth, newHeight)
		}
	})

	win.SetCloseCallback(func(_ *glfw.Window) {
		if windowHandler != nil {
			windowHandler.WindowClose(w)
		}
	})

	return w, nil
}

func (w *window) Map() error {
	w.win.Show()
	w.mapped = true
	return nil
}

func (w *window) Unmap() error {
	w.win.Hide()
	w.mapped = false
	return nil
}

func (w *window) Resize(width, height int) error {
	w.win.SetSize(width, height)
	return nil
}

func (w *window) SetTitle(title string) error {
	w.win.SetTitle(title)
	w.title = title
	return nil
}

func (w *window) Close() {
	closeWindow(w)
	w.win.Destroy()
}

func (w *window) Width() int {
	width, _ := w.win.GetSize()
	return width
}

func (w *window) Height() int {
	_, height := w.win.GetSize()
	return height
}

func (w *window) Title() string { return w.title }

func dispatchGLFW() { glfw.PollEvents() }

func setAppNameGLFW(string) {
	// GLFW has no application-name concept independent of each window's
	// title, so this is a no-op on every platform it supports.
}

func platformGLFW() Platform {
	switch runtime.GOOS {
	case "windows":
		return Win32
	case "darwin":
		return XCB // closest existing Platform value; GLFW hides the Cocoa backend
	default:
		return XCB
	}
}

func modFromGLFW(mods glfw.ModifierKey) Modifier {
	var m Modifier
	if mods&glfw.ModShift != 0 {
		m |= ModShift
	}
	if mods&glfw.ModControl != 0 {
		m |= ModCtrl
	}
	if mods&glfw.ModAlt != 0 {
		m |= ModAlt
	}
	if mods&glfw.ModCapsLock != 0 {
		m |= ModCapsLock
	}
	return m
}

func btnFromGLFW(b glfw.MouseButton) Button {
	switch b {
	case glfw.MouseButtonLeft:
		return BtnLeft
	case glfw.MouseButtonRight:
		return BtnRight
	case glfw.MouseButtonMiddle:
		return BtnMiddle
	case glfw.MouseButton4:
		return BtnBackward
	case glfw.MouseButton5:
		return BtnForward
	default:
		return BtnUnknown
	}
}
