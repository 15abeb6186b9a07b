package ui

import (
	"fmt"
	"sort"

	"github.com/thicketui/thicket/engine/geom"
)

// BeginFrame starts a new frame: per-frame state and buffers are reset and
// the pointer delta is derived from the position accumulated since the last
// EndFrame. Frames must not nest.
func (c *Context) BeginFrame() {
	if c.frameOpen {
		panic("ui: BeginFrame while a frame is already open")
	}
	c.frameOpen = true
	c.frame++

	c.cmds.reset()
	c.pool.reset()
	c.commands = 0
	c.rootList = c.rootList[:0]
	c.scrollTarget = nil

	// Hover is re-derived from scratch every frame; what survives is the
	// root container the pointer was over last frame, which gates hover
	// attribution under overlap.
	c.hoverRoot = c.nextHoverRoot
	c.nextHoverRoot = nil
	c.hover = 0

	c.in.mouseDelta = c.in.mousePos.Sub(c.in.lastMousePos)

	// The head jump is patched at EndFrame to enter the z-order chain; its
	// fallthrough destination covers the no-windows frame.
	c.frameHead = c.pushJump(jumpCommandSize)
}

// EndFrame finishes the frame: stacks are checked for balance, deferred
// scroll input is applied, interaction state is settled and the per-root
// command runs are linked into one bottom-to-top stream.
func (c *Context) EndFrame() {
	if !c.frameOpen {
		panic("ui: EndFrame without BeginFrame")
	}
	if n := len(c.containerStack); n != 0 {
		panic(fmt.Sprintf("ui: EndFrame with %d unclosed window(s) or panel(s)", n))
	}
	if n := len(c.clipStack); n != 0 {
		panic(fmt.Sprintf("ui: EndFrame with %d unpopped clip rect(s)", n))
	}
	if n := len(c.idStack); n != 0 {
		panic(fmt.Sprintf("ui: EndFrame with %d unpopped id scope(s)", n))
	}
	if n := len(c.layoutStack); n != 0 {
		panic(fmt.Sprintf("ui: EndFrame with %d unclosed layout column(s)", n))
	}

	// Wheel input goes to the container under the pointer, not to any
	// focused or active widget.
	if c.scrollTarget != nil {
		c.scrollTarget.Scroll.X += c.in.scrollDelta.X
		c.scrollTarget.Scroll.Y += c.in.scrollDelta.Y
	}

	// A press on a window that is not already frontmost raises it.
	if c.in.mousePressed != 0 && c.nextHoverRoot != nil &&
		c.nextHoverRoot.ZIndex < c.lastZIndex {
		c.BringToFront(c.nextHoverRoot)
	}

	// Releasing all buttons ends the gesture.
	if c.in.mouseDown == 0 {
		c.active = 0
		c.activeRoot = nil
	}

	// State owned by a container that closed this frame is orphaned.
	if c.focusRoot != nil && !c.focusRoot.Open {
		c.focus = 0
		c.focusRoot = nil
	}
	if c.activeRoot != nil && !c.activeRoot.Open {
		c.active = 0
		c.activeRoot = nil
	}

	c.in.keyPressed = 0
	c.in.textInput = c.in.textInput[:0]
	c.in.mousePressed = 0
	c.in.mouseReleased = 0
	c.in.scrollDelta = geom.Vec2{}
	c.in.lastMousePos = c.in.mousePos

	c.linkRootChain()
	c.frameOpen = false
}

// linkRootChain patches the jump placeholders so that iterating the command
// buffer visits each root container's commands in ascending z-order,
// skipping the placeholders themselves.
func (c *Context) linkRootChain() {
	if len(c.rootList) == 0 {
		return
	}
	sort.SliceStable(c.rootList, func(i, j int) bool {
		return c.rootList[i].ZIndex < c.rootList[j].ZIndex
	})
	c.patchJump(c.frameHead, c.rootList[0].head+jumpCommandSize)
	for i, cnt := range c.rootList {
		if i+1 < len(c.rootList) {
			c.patchJump(cnt.tail, c.rootList[i+1].head+jumpCommandSize)
		} else {
			c.patchJump(cnt.tail, len(c.cmds.buf))
		}
	}
}
