package ui

import (
	"fmt"

	"github.com/thicketui/thicket/engine/geom"
)

// ClipResult classifies a rect against the current clip rect.
type ClipResult int

const (
	// ClipNone: fully inside, draw without scissoring.
	ClipNone ClipResult = iota
	// ClipPart: partially inside, emit a Clip command before drawing.
	ClipPart
	// ClipAll: fully outside, skip drawing entirely.
	ClipAll
)

// unclippedRect is the sentinel at the conceptual bottom of the clip stack:
// large enough that nothing practical escapes it, with a negative origin so
// windows dragged off-screen still draw.
var unclippedRect = geom.Rect{X: -(1 << 24), Y: -(1 << 24), W: 1 << 25, H: 1 << 25}

// PushClip pushes the intersection of r with the current clip rect, so
// nested clips only ever tighten.
func (c *Context) PushClip(r geom.Rect) {
	c.pushClipRaw(r.Intersect(c.ClipRect()))
}

func (c *Context) pushClipRaw(r geom.Rect) {
	if len(c.clipStack) >= maxClipStack {
		panic(fmt.Sprintf("ui: clip stack overflow (depth %d)", maxClipStack))
	}
	c.clipStack = append(c.clipStack, r)
}

// PopClip restores the previous clip rect.
func (c *Context) PopClip() {
	if len(c.clipStack) == 0 {
		panic("ui: PopClip without matching PushClip")
	}
	c.clipStack = c.clipStack[:len(c.clipStack)-1]
}

// ClipRect returns the active clip rect, defaulting to the unbounded
// sentinel when no clip has been pushed.
func (c *Context) ClipRect() geom.Rect {
	if n := len(c.clipStack); n > 0 {
		return c.clipStack[n-1]
	}
	return unclippedRect
}

// CheckClip classifies r against the current clip rect so callers can skip,
// draw directly, or draw under an explicit scissor.
func (c *Context) CheckClip(r geom.Rect) ClipResult {
	cr := c.ClipRect()
	if r.X > cr.X+cr.W || r.X+r.W < cr.X ||
		r.Y > cr.Y+cr.H || r.Y+r.H < cr.Y {
		return ClipAll
	}
	if cr.ContainsRect(r) {
		return ClipNone
	}
	return ClipPart
}
