package ui

import (
	"fmt"

	"github.com/thicketui/thicket/engine/geom"
)

// Option flags modify window, panel and control behavior.
type Option uint32

const (
	// OptAlignCenter centers control text.
	OptAlignCenter Option = 1 << iota
	// OptAlignRight right-aligns control text.
	OptAlignRight
	// OptNoInteract makes a control inert: drawn but never hovered.
	OptNoInteract
	// OptNoFrame suppresses the background frame.
	OptNoFrame
	// OptNoResize removes the window resize handle.
	OptNoResize
	// OptNoScroll disables container scrollbars.
	OptNoScroll
	// OptNoClose removes the title bar close box.
	OptNoClose
	// OptNoTitle removes the title bar entirely.
	OptNoTitle
	// OptHoldFocus makes a press claim keyboard focus (text boxes).
	OptHoldFocus
	// OptAutoSize fits the window to its content each frame.
	OptAutoSize
	// OptPopup closes the window when a click lands outside it.
	OptPopup
	// OptClosed creates the container in the closed state.
	OptClosed
)

// Container is the persistent record behind a window, panel or popup. It
// survives across frames so user-dragged geometry and scroll offsets are
// preserved; closing only hides it from iteration.
type Container struct {
	Rect        geom.Rect
	Body        geom.Rect
	ContentSize geom.Vec2
	Scroll      geom.Vec2
	ZIndex      int
	Open        bool

	// head and tail locate this container's jump placeholders in the
	// command buffer; EndFrame patches them into the z-order chain.
	head, tail int
	root       bool
}

// Container returns the persistent container registered under name,
// creating it on first use.
func (c *Context) Container(name string) *Container {
	return c.getContainer(c.IDString(name), 0)
}

// CurrentContainer returns the innermost open window or panel.
func (c *Context) CurrentContainer() *Container {
	if len(c.containerStack) == 0 {
		panic("ui: no container is open")
	}
	return c.containerStack[len(c.containerStack)-1]
}

func (c *Context) getContainer(id ID, opt Option) *Container {
	if cnt, ok := c.containers[id]; ok {
		return cnt
	}
	if opt&OptClosed != 0 {
		return nil
	}
	if len(c.containers) >= c.maxContainers {
		panic(fmt.Sprintf("ui: container limit exceeded (%d); raise Config.MaxContainers", c.maxContainers))
	}
	cnt := &Container{Open: true}
	c.containers[id] = cnt
	c.BringToFront(cnt)
	return cnt
}

// BringToFront raises cnt above every other root container.
func (c *Context) BringToFront(cnt *Container) {
	c.lastZIndex++
	cnt.ZIndex = c.lastZIndex
}

func (c *Context) pushContainer(cnt *Container) {
	if len(c.containerStack) >= maxLayoutStack {
		panic(fmt.Sprintf("ui: container stack overflow (depth %d)", maxLayoutStack))
	}
	c.containerStack = append(c.containerStack, cnt)
}

// popContainer finalizes the open container: records its content extent for
// scrolling/auto-size and unwinds the container, layout and id scopes.
func (c *Context) popContainer() {
	cnt := c.CurrentContainer()
	l := c.currentLayout()
	cnt.ContentSize = geom.V(l.max.X-l.body.X, l.max.Y-l.body.Y)
	c.containerStack = c.containerStack[:len(c.containerStack)-1]
	c.layoutStack = c.layoutStack[:len(c.layoutStack)-1]
	c.PopID()
}

func (c *Context) pushContainerBody(cnt *Container, body geom.Rect, opt Option) {
	if opt&OptNoScroll == 0 {
		c.scrollbars(cnt, &body)
	}
	c.pushLayout(body.Expand(-c.Style.Padding), cnt.Scroll)
	cnt.Body = body
}

// scrollbars reserves track space and emits a scrollbar per overflowing
// axis; the overflow test uses the body from the previous frame, which is
// the immediate-mode steady state.
func (c *Context) scrollbars(cnt *Container, body *geom.Rect) {
	sz := c.Style.ScrollbarSize
	cs := cnt.ContentSize
	cs.X += c.Style.Padding * 2
	cs.Y += c.Style.Padding * 2
	c.PushClip(*body)
	if cs.Y > cnt.Body.H {
		body.W -= sz
	}
	if cs.X > cnt.Body.W {
		body.H -= sz
	}
	c.scrollbarVertical(cnt, *body, cs)
	c.scrollbarHorizontal(cnt, *body, cs)
	c.PopClip()
}

func (c *Context) scrollbarVertical(cnt *Container, body geom.Rect, cs geom.Vec2) {
	maxScroll := cs.Y - body.H
	if maxScroll <= 0 || body.H <= 0 {
		cnt.Scroll.Y = 0
		return
	}
	id := c.IDString("!scrollbar-v")
	track := body
	track.X = body.X + body.W
	track.W = c.Style.ScrollbarSize

	c.updateControl(id, track, 0)
	if c.active == id && c.in.mouseDown&MouseLeft != 0 {
		cnt.Scroll.Y += c.in.mouseDelta.Y * cs.Y / track.H
	}
	cnt.Scroll.Y = geom.Clamp(cnt.Scroll.Y, 0, maxScroll)

	c.drawFrame(c, track, ColorScrollBase)
	thumb := track
	thumb.H = max(c.Style.ThumbSize, track.H*body.H/cs.Y)
	thumb.Y += cnt.Scroll.Y * (track.H - thumb.H) / maxScroll
	c.drawFrame(c, thumb, ColorScrollThumb)

	if c.mouseOver(body) {
		c.scrollTarget = cnt
	}
}

func (c *Context) scrollbarHorizontal(cnt *Container, body geom.Rect, cs geom.Vec2) {
	maxScroll := cs.X - body.W
	if maxScroll <= 0 || body.W <= 0 {
		cnt.Scroll.X = 0
		return
	}
	id := c.IDString("!scrollbar-h")
	track := body
	track.Y = body.Y + body.H
	track.H = c.Style.ScrollbarSize

	c.updateControl(id, track, 0)
	if c.active == id && c.in.mouseDown&MouseLeft != 0 {
		cnt.Scroll.X += c.in.mouseDelta.X * cs.X / track.W
	}
	cnt.Scroll.X = geom.Clamp(cnt.Scroll.X, 0, maxScroll)

	c.drawFrame(c, track, ColorScrollBase)
	thumb := track
	thumb.W = max(c.Style.ThumbSize, track.W*body.W/cs.X)
	thumb.X += cnt.Scroll.X * (track.W - thumb.W) / maxScroll
	c.drawFrame(c, thumb, ColorScrollThumb)

	if c.mouseOver(body) {
		c.scrollTarget = cnt
	}
}

// Scrollbar drives a caller-owned vertical scroll offset from a drag on an
// explicit track rect. It reports false, drawing and doing nothing, when
// content fits the visible extent.
func (c *Context) Scrollbar(name string, track geom.Rect, scroll *int, content, visible int) bool {
	if visible <= 0 || content <= visible {
		*scroll = 0
		return false
	}
	id := c.IDString(name)
	maxScroll := content - visible

	c.updateControl(id, track, 0)
	if c.active == id && c.in.mouseDown&MouseLeft != 0 && track.H > 0 {
		*scroll += c.in.mouseDelta.Y * content / track.H
	}
	*scroll = geom.Clamp(*scroll, 0, maxScroll)

	c.drawFrame(c, track, ColorScrollBase)
	thumb := track
	thumb.H = max(c.Style.ThumbSize, track.H*visible/content)
	thumb.Y += *scroll * (track.H - thumb.H) / maxScroll
	c.drawFrame(c, thumb, ColorScrollThumb)
	return true
}
