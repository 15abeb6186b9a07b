package ui

import "github.com/thicketui/thicket/engine/geom"

const (
	minWindowW = 96
	minWindowH = 64
)

func (c *Context) beginRootContainer(cnt *Container) {
	cnt.root = true
	c.pushContainer(cnt)
	c.rootList = append(c.rootList, cnt)

	// The jump destination is unknown until EndFrame links the z-order
	// chain; push a placeholder and remember where it lives.
	cnt.head = c.pushJump(-1)

	if cnt.Rect.Contains(c.in.mousePos) &&
		(c.nextHoverRoot == nil || cnt.ZIndex > c.nextHoverRoot.ZIndex) {
		c.nextHoverRoot = cnt
	}

	// Root containers reset clipping so overlapping windows never clip
	// each other; the splice order alone decides what ends up on top.
	c.pushClipRaw(unclippedRect)
}

func (c *Context) endRootContainer() {
	cnt := c.CurrentContainer()
	cnt.tail = c.pushJump(-1)
	c.PopClip()
	c.popContainer()
}

// BeginWindow begins a top-level window. It returns false when the window is
// closed, in which case nothing was pushed and EndWindow must not be called.
func (c *Context) BeginWindow(title string, rect geom.Rect, opt Option) bool {
	id := c.IDString(title)
	cnt := c.getContainer(id, opt)
	if cnt == nil || !cnt.Open {
		return false
	}
	c.PushIDString(title)

	// rect only seeds the first frame; afterwards the container's own
	// geometry, possibly user-dragged, wins.
	if cnt.Rect.W == 0 {
		cnt.Rect = rect
	}

	c.beginRootContainer(cnt)
	body := cnt.Rect

	if opt&OptNoFrame == 0 {
		c.drawFrame(c, cnt.Rect, ColorWindowBG)
	}

	if opt&OptNoTitle == 0 {
		tr := cnt.Rect
		tr.H = c.Style.TitleHeight
		c.drawFrame(c, tr, ColorTitleBG)

		titleID := c.IDString("!title")
		c.updateControl(titleID, tr, opt)
		c.drawControlText(title, tr, ColorTitleText, opt)
		if c.active == titleID && c.in.mouseDown&MouseLeft != 0 {
			cnt.Rect.X += c.in.mouseDelta.X
			cnt.Rect.Y += c.in.mouseDelta.Y
		}
		body.Y += tr.H
		body.H -= tr.H

		if opt&OptNoClose == 0 {
			closeID := c.IDString("!close")
			cr := geom.R(tr.X+tr.W-tr.H, tr.Y, tr.H, tr.H)
			tr.W -= cr.W
			c.DrawIcon(IconClose, cr, c.Style.Colors[ColorTitleText])
			c.updateControl(closeID, cr, opt)
			if c.in.mouseReleased&MouseLeft != 0 && c.active == closeID && c.hover == closeID {
				cnt.Open = false
			}
		}
	}

	c.pushContainerBody(cnt, body, opt)

	if opt&OptNoResize == 0 {
		sz := c.Style.TitleHeight
		resizeID := c.IDString("!resize")
		rr := geom.R(cnt.Rect.X+cnt.Rect.W-sz, cnt.Rect.Y+cnt.Rect.H-sz, sz, sz)
		c.updateControl(resizeID, rr, opt)
		if c.active == resizeID && c.in.mouseDown&MouseLeft != 0 {
			cnt.Rect.W = max(minWindowW, cnt.Rect.W+c.in.mouseDelta.X)
			cnt.Rect.H = max(minWindowH, cnt.Rect.H+c.in.mouseDelta.Y)
		}
	}

	if opt&OptAutoSize != 0 {
		l := c.currentLayout()
		cnt.Rect.W = cnt.ContentSize.X + (cnt.Rect.W - l.body.W)
		cnt.Rect.H = cnt.ContentSize.Y + (cnt.Rect.H - l.body.H)
	}

	if opt&OptPopup != 0 && c.in.mousePressed != 0 && c.hoverRoot != cnt {
		cnt.Open = false
	}

	c.PushClip(cnt.Body)
	return true
}

// EndWindow closes the window begun by a true-returning BeginWindow.
func (c *Context) EndWindow() {
	c.PopClip()
	c.endRootContainer()
}

// OpenPopup opens the named popup at the pointer position and raises it. The
// 1x1 seed rect lets OptAutoSize grow it to fit on its first frame.
func (c *Context) OpenPopup(name string) {
	cnt := c.Container(name)
	// Start as the hovered root so the open click cannot immediately count
	// as a click-away.
	c.hoverRoot = cnt
	c.nextHoverRoot = cnt
	cnt.Rect = geom.R(c.in.mousePos.X, c.in.mousePos.Y, 1, 1)
	cnt.Open = true
	c.BringToFront(cnt)
}

// BeginPopup begins a popup window previously opened with OpenPopup. Popups
// auto-size to content and close when a click lands outside them.
func (c *Context) BeginPopup(name string) bool {
	opt := OptPopup | OptAutoSize | OptNoResize | OptNoScroll | OptNoTitle | OptClosed
	return c.BeginWindow(name, geom.Rect{}, opt)
}

// EndPopup closes the popup begun by a true-returning BeginPopup.
func (c *Context) EndPopup() {
	c.EndWindow()
}

// BeginPanel begins an inline scrollable region inside the current window,
// sized by the enclosing layout.
func (c *Context) BeginPanel(name string) {
	c.BeginPanelEx(name, 0)
}

// BeginPanelEx is BeginPanel with options.
func (c *Context) BeginPanelEx(name string, opt Option) {
	c.PushIDString(name)
	cnt := c.getContainer(c.lastID, 0)
	cnt.Rect = c.LayoutNext()
	if opt&OptNoFrame == 0 {
		c.drawFrame(c, cnt.Rect, ColorPanelBG)
	}
	c.pushContainer(cnt)
	c.pushContainerBody(cnt, cnt.Rect, opt)
	c.PushClip(cnt.Body)
}

// EndPanel closes the panel begun by BeginPanel.
func (c *Context) EndPanel() {
	c.PopClip()
	c.popContainer()
}
