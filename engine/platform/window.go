// Package platform owns the GLFW window and feeds its events straight into
// a ui.Context. It must be used from the main goroutine.
package platform

import (
	"runtime"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/thicketui/thicket/engine/ui"
)

// WindowConfig sizes and titles the OS window.
type WindowConfig struct {
	Title  string
	Width  int
	Height int
	VSync  bool
}

// Window wraps a GLFW window whose input callbacks drive a ui.Context.
type Window struct {
	w   *glfw.Window
	ctx *ui.Context
}

// NewWindow initializes GLFW, opens the window and makes its GL 3.3 core
// context current. Input events are forwarded to ctx as they arrive.
func NewWindow(cfg WindowConfig, ctx *ui.Context) (*Window, error) {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return nil, err
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	win, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, err
	}
	win.MakeContextCurrent()
	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
	if err := gl.Init(); err != nil {
		win.Destroy()
		glfw.Terminate()
		return nil, err
	}

	gw := &Window{w: win, ctx: ctx}

	win.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		ctx.InputMouseMove(int(x), int(y))
	})
	win.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		btn := translateButton(button)
		if btn == 0 {
			return
		}
		x, y := w.GetCursorPos()
		if action == glfw.Press {
			ctx.InputMouseDown(int(x), int(y), btn)
		} else if action == glfw.Release {
			ctx.InputMouseUp(int(x), int(y), btn)
		}
	})
	win.SetScrollCallback(func(_ *glfw.Window, xoff, yoff float64) {
		// GLFW reports wheel-up as positive; scrolling content goes the
		// other way.
		ctx.InputScroll(int(xoff * -30), int(yoff * -30))
	})
	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		k := translateKey(key)
		if k == 0 {
			return
		}
		switch action {
		case glfw.Press, glfw.Repeat:
			ctx.InputKeyDown(k)
		case glfw.Release:
			ctx.InputKeyUp(k)
		}
	})
	win.SetCharCallback(func(_ *glfw.Window, r rune) {
		ctx.InputText(string(r))
	})

	return gw, nil
}

// Terminate destroys the window and shuts GLFW down.
func (g *Window) Terminate() {
	g.w.Destroy()
	glfw.Terminate()
}

func (g *Window) PollEvents()                 { glfw.PollEvents() }
func (g *Window) SwapBuffers()                { g.w.SwapBuffers() }
func (g *Window) ShouldClose() bool           { return g.w.ShouldClose() }
func (g *Window) SetShouldClose(v bool)       { g.w.SetShouldClose(v) }
func (g *Window) FramebufferSize() (int, int) { return g.w.GetFramebufferSize() }
func (g *Window) SetTitle(t string)           { g.w.SetTitle(t) }

func translateButton(b glfw.MouseButton) ui.MouseButton {
	switch b {
	case glfw.MouseButtonLeft:
		return ui.MouseLeft
	case glfw.MouseButtonRight:
		return ui.MouseRight
	case glfw.MouseButtonMiddle:
		return ui.MouseMiddle
	default:
		return 0
	}
}

func translateKey(k glfw.Key) ui.Key {
	switch k {
	case glfw.KeyLeftShift, glfw.KeyRightShift:
		return ui.KeyShift
	case glfw.KeyLeftControl, glfw.KeyRightControl:
		return ui.KeyCtrl
	case glfw.KeyLeftAlt, glfw.KeyRightAlt:
		return ui.KeyAlt
	case glfw.KeyBackspace:
		return ui.KeyBackspace
	case glfw.KeyEnter, glfw.KeyKPEnter:
		return ui.KeyReturn
	default:
		return 0
	}
}
