package ui

import "github.com/thicketui/thicket/engine/geom"

// MouseButton is a bitmask of pointer buttons.
type MouseButton uint8

const (
	MouseLeft MouseButton = 1 << iota
	MouseRight
	MouseMiddle
)

// Key is a bitmask of the modifier and editing keys the engine itself
// interprets. Everything else reaches controls as text input.
type Key uint8

const (
	KeyShift Key = 1 << iota
	KeyCtrl
	KeyAlt
	KeyBackspace
	KeyReturn
)

// input is the per-frame snapshot of host input. The engine only reads the
// state accumulated by the Input* calls since the previous frame; it never
// polls the OS.
type input struct {
	mousePos     geom.Vec2
	lastMousePos geom.Vec2
	mouseDelta   geom.Vec2
	scrollDelta  geom.Vec2

	mouseDown     MouseButton
	mousePressed  MouseButton
	mouseReleased MouseButton

	keyDown    Key
	keyPressed Key

	textInput []byte
}

// InputMouseMove records the pointer position.
func (c *Context) InputMouseMove(x, y int) {
	c.in.mousePos = geom.V(x, y)
}

// InputMouseDown records a button press at (x, y). The rising edge is
// remembered until the end of the next frame.
func (c *Context) InputMouseDown(x, y int, btn MouseButton) {
	c.InputMouseMove(x, y)
	c.in.mouseDown |= btn
	c.in.mousePressed |= btn
}

// InputMouseUp records a button release at (x, y).
func (c *Context) InputMouseUp(x, y int, btn MouseButton) {
	c.InputMouseMove(x, y)
	c.in.mouseDown &^= btn
	c.in.mouseReleased |= btn
}

// InputScroll accumulates wheel movement, applied at EndFrame to the
// container under the pointer.
func (c *Context) InputScroll(dx, dy int) {
	c.in.scrollDelta.X += dx
	c.in.scrollDelta.Y += dy
}

// InputKeyDown records a key press.
func (c *Context) InputKeyDown(k Key) {
	c.in.keyDown |= k
	c.in.keyPressed |= k
}

// InputKeyUp records a key release.
func (c *Context) InputKeyUp(k Key) {
	c.in.keyDown &^= k
}

// InputText appends UTF-8 text for the focused control to consume.
func (c *Context) InputText(s string) {
	c.in.textInput = append(c.in.textInput, s...)
}

// MousePos returns the pointer position from the current snapshot.
func (c *Context) MousePos() geom.Vec2 { return c.in.mousePos }
