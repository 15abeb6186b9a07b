package ui

import (
	"fmt"

	"github.com/thicketui/thicket/engine/geom"
)

const maxLayoutWidths = 16

const (
	nextNone = iota
	nextRelative
	nextAbsolute
)

// layoutFrame is one entry in a container's layout stack: a body rectangle,
// a cursor, the active row's column widths and a running content maximum
// used for scrolling and auto-size.
type layoutFrame struct {
	body      geom.Rect
	next      geom.Rect
	position  geom.Vec2
	size      geom.Vec2
	max       geom.Vec2
	widths    [maxLayoutWidths]int
	nitems    int
	itemIndex int
	nextRow   int
	nextType  int
	indent    int
}

func (c *Context) pushLayout(body geom.Rect, scroll geom.Vec2) {
	if len(c.layoutStack) >= maxLayoutStack {
		panic(fmt.Sprintf("ui: layout stack overflow (depth %d)", maxLayoutStack))
	}
	c.layoutStack = append(c.layoutStack, layoutFrame{
		body: geom.R(body.X-scroll.X, body.Y-scroll.Y, body.W, body.H),
		max:  geom.V(-(1 << 24), -(1 << 24)),
	})
	c.LayoutRow([]int{0}, 0)
}

func (c *Context) currentLayout() *layoutFrame {
	if len(c.layoutStack) == 0 {
		panic("ui: layout call outside of a window or panel")
	}
	return &c.layoutStack[len(c.layoutStack)-1]
}

// LayoutRow starts a row with explicit column widths. A positive width is
// absolute; zero means the style's default control size; a negative width
// claims a share of the remaining row space proportional to its magnitude,
// so widths of -1 and -2 split the leftover one third to two thirds.
// height applies to every cell in the row, zero meaning the default.
func (c *Context) LayoutRow(widths []int, height int) {
	l := c.currentLayout()
	if len(widths) > maxLayoutWidths {
		panic(fmt.Sprintf("ui: too many layout columns (%d, max %d)", len(widths), maxLayoutWidths))
	}
	n := copy(l.widths[:], widths)
	l.nitems = n

	fixed, units := 0, 0
	lastFill := -1
	for i, w := range widths {
		if w < 0 {
			units += -w
			lastFill = i
		} else {
			fixed += w
		}
	}
	if units > 0 {
		avail := l.body.W - l.indent - fixed - c.Style.Spacing*(n-1)
		if avail < 0 {
			avail = 0
		}
		rem := avail
		for i, w := range widths {
			if w >= 0 {
				continue
			}
			share := avail * (-w) / units
			if i == lastFill {
				share = rem
			}
			rem -= share
			l.widths[i] = share
		}
	}

	l.position = geom.V(l.indent, l.nextRow)
	l.size.Y = height
	l.itemIndex = 0
}

// LayoutRowItems starts a row of n default-width cells.
func (c *Context) LayoutRowItems(n, height int) {
	l := c.currentLayout()
	if n > maxLayoutWidths {
		panic(fmt.Sprintf("ui: too many layout columns (%d, max %d)", n, maxLayoutWidths))
	}
	for i := 0; i < n; i++ {
		l.widths[i] = 0
	}
	l.nitems = n
	l.position = geom.V(l.indent, l.nextRow)
	l.size.Y = height
	l.itemIndex = 0
}

// LayoutWidth sets the default cell width used outside explicit rows.
func (c *Context) LayoutWidth(w int) { c.currentLayout().size.X = w }

// LayoutHeight sets the default cell height.
func (c *Context) LayoutHeight(h int) { c.currentLayout().size.Y = h }

// SetNextLayout places the next control at an explicit rect instead of the
// cursor; relative rects are offset by the container body.
func (c *Context) SetNextLayout(r geom.Rect, relative bool) {
	l := c.currentLayout()
	l.next = r
	if relative {
		l.nextType = nextRelative
	} else {
		l.nextType = nextAbsolute
	}
}

// LayoutBeginColumn nests a fresh vertical layout inside the next cell.
func (c *Context) LayoutBeginColumn() {
	c.pushLayout(c.LayoutNext(), geom.Vec2{})
}

// LayoutEndColumn closes the column and folds its cursor and content extent
// back into the parent.
func (c *Context) LayoutEndColumn() {
	b := c.currentLayout()
	inner := *b
	c.layoutStack = c.layoutStack[:len(c.layoutStack)-1]
	a := c.currentLayout()
	a.position.X = max(a.position.X, inner.position.X+inner.body.X-a.body.X)
	a.nextRow = max(a.nextRow, inner.nextRow+inner.body.Y-a.body.Y)
	a.max.X = max(a.max.X, inner.max.X)
	a.max.Y = max(a.max.Y, inner.max.Y)
}

// LayoutNext allocates the next control's rectangle. It never fails: when
// the container is smaller than requested the rect degrades to whatever
// space is left (possibly zero-area) and controls are expected to render
// degenerately rather than error.
func (c *Context) LayoutNext() geom.Rect {
	l := c.currentLayout()
	style := c.Style
	var res geom.Rect

	switch l.nextType {
	case nextAbsolute:
		l.nextType = nextNone
		res = l.next
		c.lastRect = res
		return res
	case nextRelative:
		l.nextType = nextNone
		res = l.next
	default:
		if l.itemIndex == l.nitems {
			// wrap to a new row, keeping the column setup
			l.position = geom.V(l.indent, l.nextRow)
			l.itemIndex = 0
		}
		res.X = l.position.X
		if l.itemIndex > 0 {
			res.X += style.Spacing
		}
		res.Y = l.position.Y
		if l.nitems > 0 {
			res.W = l.widths[l.itemIndex]
		} else {
			res.W = l.size.X
		}
		res.H = l.size.Y
		if res.W == 0 {
			res.W = style.Size.X + style.Padding*2
		}
		if res.H == 0 {
			res.H = style.Size.Y + style.Padding*2
		}
		if res.W < 0 {
			res.W += l.body.W - res.X + 1
		}
		if res.H < 0 {
			res.H += l.body.H - res.Y + 1
		}
		l.itemIndex++
	}

	l.position.X = res.X + res.W
	l.nextRow = max(l.nextRow, res.Y+res.H+style.Spacing)

	res.X += l.body.X
	res.Y += l.body.Y

	l.max.X = max(l.max.X, res.X+res.W)
	l.max.Y = max(l.max.Y, res.Y+res.H)

	c.lastRect = res
	return res
}
