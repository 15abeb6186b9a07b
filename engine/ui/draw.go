package ui

import (
	"github.com/thicketui/thicket/engine/colors"
	"github.com/thicketui/thicket/engine/geom"
)

// SetClip emits an explicit Clip command for the renderer's scissor state.
func (c *Context) SetClip(r geom.Rect) {
	off := c.pushCommand(CommandClip, clipCommandSize)
	putRect(c.cmds.buf[off+cmdHeaderSize:], r)
}

// DrawRect fills r with col, clipped CPU-side against the current clip rect
// so no scissor command is needed.
func (c *Context) DrawRect(r geom.Rect, col colors.Color) {
	r = r.Intersect(c.ClipRect())
	if r.Empty() {
		return
	}
	off := c.pushCommand(CommandRect, rectCommandSize)
	b := c.cmds.buf[off+cmdHeaderSize:]
	putRect(b, r)
	putColor(b[16:], col)
}

// DrawBox strokes a one-pixel border around r.
func (c *Context) DrawBox(r geom.Rect, col colors.Color) {
	c.DrawRect(geom.R(r.X+1, r.Y, r.W-2, 1), col)
	c.DrawRect(geom.R(r.X+1, r.Y+r.H-1, r.W-2, 1), col)
	c.DrawRect(geom.R(r.X, r.Y, 1, r.H), col)
	c.DrawRect(geom.R(r.X+r.W-1, r.Y, 1, r.H), col)
}

// DrawText records a text command. Text cannot be trimmed byte-wise, so a
// partially visible string is bracketed by scissor commands instead.
func (c *Context) DrawText(font Font, s string, pos geom.Vec2, col colors.Color) {
	r := geom.R(pos.X, pos.Y, c.measurer.TextWidth(font, s), c.measurer.TextHeight(font))
	clipped := c.CheckClip(r)
	if clipped == ClipAll {
		return
	}
	if clipped == ClipPart {
		c.SetClip(c.ClipRect())
	}
	strOff, strLen := c.pool.add(s)
	off := c.pushCommand(CommandText, textCommandSize)
	b := c.cmds.buf[off+cmdHeaderSize:]
	putI32(b, pos.X)
	putI32(b[4:], pos.Y)
	putI32(b[8:], int(font))
	putColor(b[12:], col)
	putI32(b[16:], strOff)
	putI32(b[20:], strLen)
	if clipped == ClipPart {
		c.SetClip(unclippedRect)
	}
}

// DrawIcon records an icon command, scissored like text when partially
// visible.
func (c *Context) DrawIcon(icon IconID, r geom.Rect, col colors.Color) {
	clipped := c.CheckClip(r)
	if clipped == ClipAll {
		return
	}
	if clipped == ClipPart {
		c.SetClip(c.ClipRect())
	}
	off := c.pushCommand(CommandIcon, iconCommandSize)
	b := c.cmds.buf[off+cmdHeaderSize:]
	putRect(b, r)
	putI32(b[16:], int(icon))
	putColor(b[20:], col)
	if clipped == ClipPart {
		c.SetClip(unclippedRect)
	}
}

// defaultDrawFrame fills the rect with the style color and borders
// everything except scroll tracks and title bars.
func defaultDrawFrame(c *Context, r geom.Rect, color ColorID) {
	c.DrawRect(r, c.Style.Colors[color])
	if color == ColorScrollBase || color == ColorScrollThumb || color == ColorTitleBG {
		return
	}
	if c.Style.Colors[ColorBorder].A != 0 {
		c.DrawBox(r.Expand(1), c.Style.Colors[ColorBorder])
	}
}

// drawControlFrame picks the hover/active color variant for an interactive
// control's background.
func (c *Context) drawControlFrame(id ID, r geom.Rect, color ColorID, opt Option) {
	if opt&OptNoFrame != 0 {
		return
	}
	switch {
	case c.focus == id || c.active == id:
		color += 2
	case c.hover == id:
		color++
	}
	c.drawFrame(c, r, color)
}

// drawControlText draws a single line aligned inside r, clipped to it.
func (c *Context) drawControlText(s string, r geom.Rect, color ColorID, opt Option) {
	font := c.Style.Font
	tw := c.measurer.TextWidth(font, s)
	var pos geom.Vec2
	pos.Y = r.Y + (r.H-c.measurer.TextHeight(font))/2
	switch {
	case opt&OptAlignCenter != 0:
		pos.X = r.X + (r.W-tw)/2
	case opt&OptAlignRight != 0:
		pos.X = r.X + r.W - tw - c.Style.Padding
	default:
		pos.X = r.X + c.Style.Padding
	}
	c.PushClip(r)
	c.DrawText(font, s, pos, c.Style.Colors[color])
	c.PopClip()
}
