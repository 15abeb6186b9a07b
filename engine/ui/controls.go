package ui

import (
	"encoding/binary"
	"fmt"
	"math"
	"unicode/utf8"
	"unsafe"

	"github.com/thicketui/thicket/engine/geom"
)

// Result reports what happened to a control this frame.
type Result uint32

const (
	// ResActive: the control is engaged (pressed button, expanded header).
	ResActive Result = 1 << iota
	// ResSubmit: the control's action fired (click release, text return).
	ResSubmit
	// ResChange: the control mutated the caller's value.
	ResChange
)

// Scalar covers the numeric types Slider and NumberField operate on.
type Scalar interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint8 | ~uint16 | ~uint32 | ~float32 | ~float64
}

// mouseOver reports whether the pointer is over r, inside the current clip
// rect, and attributed to the window under the pointer. The last condition
// is what keeps an overlapped window from responding through the one above
// it.
func (c *Context) mouseOver(r geom.Rect) bool {
	return r.Contains(c.in.mousePos) &&
		c.ClipRect().Contains(c.in.mousePos) &&
		c.inHoverRoot()
}

func (c *Context) inHoverRoot() bool {
	for i := len(c.containerStack) - 1; i >= 0; i-- {
		cnt := c.containerStack[i]
		if cnt == c.hoverRoot {
			return true
		}
		// Only the innermost root container decides attribution.
		if cnt.root {
			return false
		}
	}
	return false
}

// updateControl runs the shared interaction step for a control occupying r:
// hover attribution (last writer wins, so later-drawn controls shadow
// earlier ones) and gesture acquisition on press.
func (c *Context) updateControl(id ID, r geom.Rect, opt Option) {
	if opt&OptNoInteract != 0 {
		return
	}
	mouseover := c.mouseOver(r)
	held := c.in.mouseDown != 0

	// During a drag no other control may take hover; the exceptions are
	// the press frame itself and the gesture owner.
	if mouseover && (!held || c.in.mousePressed != 0 || c.active == id) {
		c.hover = id
	}

	if c.hover == id {
		if c.in.mousePressed != 0 {
			c.setActive(id)
			if opt&OptHoldFocus != 0 {
				c.SetFocus(id)
			}
		} else if !mouseover {
			c.hover = 0
		}
	}
}

func (c *Context) buttonLogic(id ID, r geom.Rect, opt Option) Result {
	c.updateControl(id, r, opt)
	var res Result
	if c.in.mouseReleased&MouseLeft != 0 && c.active == id && c.hover == id {
		res |= ResSubmit
	}
	if c.active == id {
		res |= ResActive
	}
	return res
}

// Button emits a clickable button. ResSubmit is set on the frame the pointer
// is released over it.
func (c *Context) Button(label string) Result {
	return c.ButtonEx(label, IconNone, OptAlignCenter)
}

// ButtonEx is Button with an optional icon and options. The identity comes
// from the label, or from the icon when the label is empty.
func (c *Context) ButtonEx(label string, icon IconID, opt Option) Result {
	var id ID
	if label != "" {
		id = c.IDString(label)
	} else {
		var ib [4]byte
		binary.LittleEndian.PutUint32(ib[:], uint32(icon))
		id = c.ID(ib[:])
	}
	r := c.LayoutNext()
	res := c.buttonLogic(id, r, opt)
	c.drawControlFrame(id, r, ColorButton, opt)
	if label != "" {
		c.drawControlText(label, r, ColorText, opt)
	}
	if icon != IconNone {
		c.DrawIcon(icon, r, c.Style.Colors[ColorText])
	}
	return res
}

// Label emits non-interactive text in the next layout slot.
func (c *Context) Label(text string) {
	c.drawControlText(text, c.LayoutNext(), ColorText, 0)
}

// Text emits a word-wrapped paragraph spanning the full row width. Words
// wider than a line are emitted unbroken and clipped.
func (c *Context) Text(text string) {
	font := c.Style.Font
	color := c.Style.Colors[ColorText]
	c.LayoutBeginColumn()
	c.LayoutRow([]int{-1}, c.measurer.TextHeight(font))
	p := 0
	for p < len(text) {
		r := c.LayoutNext()
		w := 0
		lineStart, end := p, p
		// Fit whole words until the line overflows.
		for end < len(text) && text[end] != '\n' {
			wordStart := end
			for end < len(text) && text[end] != ' ' && text[end] != '\n' {
				end++
			}
			w += c.measurer.TextWidth(font, text[wordStart:end])
			if w > r.W && wordStart != lineStart {
				end = wordStart
				break
			}
			if end < len(text) && text[end] == ' ' {
				w += c.measurer.TextWidth(font, " ")
				end++
			}
		}
		c.DrawText(font, text[lineStart:end], geom.V(r.X, r.Y), color)
		if end < len(text) && text[end] == '\n' {
			end++
		}
		p = end
	}
	c.LayoutEndColumn()
}

// Checkbox emits a toggle bound to state. Identity is keyed off the state
// pointer so two checkboxes with the same label stay distinct.
func (c *Context) Checkbox(label string, state *bool) Result {
	id := c.ID(ptrBytes(unsafe.Pointer(state)))
	r := c.LayoutNext()
	box := geom.R(r.X, r.Y, r.H, r.H)
	c.updateControl(id, r, 0)
	var res Result
	if c.in.mousePressed&MouseLeft != 0 && c.active == id {
		*state = !*state
		res |= ResChange
	}
	c.drawControlFrame(id, box, ColorBase, 0)
	if *state {
		c.DrawIcon(IconCheck, box, c.Style.Colors[ColorText])
	}
	r = geom.R(r.X+box.W, r.Y, r.W-box.W, r.H)
	c.drawControlText(label, r, ColorText, 0)
	return res
}

// Slider emits a horizontal slider binding value to [lo, hi]. A nonzero step
// snaps the value to the step grid anchored at lo. format is a
// fmt.Sprintf verb for the overlay text; empty means "%v".
func Slider[T Scalar](c *Context, value *T, lo, hi, step T, format string, opt Option) Result {
	last := *value
	id := c.ID(ptrBytes(unsafe.Pointer(value)))
	r := c.LayoutNext()
	c.updateControl(id, r, opt)

	if c.active == id && c.in.mouseDown&MouseLeft != 0 && r.W > 0 {
		frac := float64(c.in.mousePos.X-r.X) / float64(r.W)
		frac = math.Min(1, math.Max(0, frac))
		*value = T(float64(lo) + (float64(hi)-float64(lo))*frac)
	}
	if step != 0 {
		s := float64(step)
		*value = T(math.Round((float64(*value)-float64(lo))/s)*s + float64(lo))
	}
	if float64(*value) < float64(lo) {
		*value = lo
	}
	if float64(*value) > float64(hi) {
		*value = hi
	}

	var res Result
	if *value != last {
		res |= ResChange
	}

	c.drawControlFrame(id, r, ColorBase, opt)
	span := float64(hi) - float64(lo)
	frac := 0.0
	if span != 0 {
		frac = (float64(*value) - float64(lo)) / span
	}
	tw := c.Style.ThumbSize
	tx := r.X + int(frac*float64(r.W-tw))
	thumb := geom.R(tx, r.Y, tw, r.H)
	c.drawControlFrame(id, thumb, ColorButton, opt)

	if format == "" {
		format = "%v"
	}
	c.drawControlText(fmt.Sprintf(format, *value), r, ColorText, opt|OptAlignCenter)
	return res
}

// NumberField emits a numeric value adjusted by horizontal dragging: each
// pixel of pointer travel changes the value by step.
func NumberField[T Scalar](c *Context, value *T, step T, format string, opt Option) Result {
	last := *value
	id := c.ID(ptrBytes(unsafe.Pointer(value)))
	r := c.LayoutNext()
	c.updateControl(id, r, opt)

	if c.active == id && c.in.mouseDown&MouseLeft != 0 {
		*value = T(float64(*value) + float64(c.in.mouseDelta.X)*float64(step))
	}

	var res Result
	if *value != last {
		res |= ResChange
	}

	c.drawControlFrame(id, r, ColorBase, opt)
	if format == "" {
		format = "%v"
	}
	c.drawControlText(fmt.Sprintf(format, *value), r, ColorText, opt|OptAlignCenter)
	return res
}

// NumberFieldEx is NumberField bracketed by decrement and increment buttons
// sharing the current row slot.
func NumberFieldEx[T Scalar](c *Context, value *T, step T, format string, opt Option) Result {
	c.PushID(ptrBytes(unsafe.Pointer(value)))
	defer c.PopID()

	r := c.LayoutNext()
	bw := r.H
	var res Result

	dec := geom.R(r.X, r.Y, bw, r.H)
	decID := c.IDString("!dec")
	if c.buttonLogic(decID, dec, opt)&ResSubmit != 0 {
		*value -= step
		res |= ResChange
	}
	c.drawControlFrame(decID, dec, ColorButton, opt)
	c.drawControlText("-", dec, ColorText, opt|OptAlignCenter)

	inc := geom.R(r.X+r.W-bw, r.Y, bw, r.H)
	incID := c.IDString("!inc")
	if c.buttonLogic(incID, inc, opt)&ResSubmit != 0 {
		*value += step
		res |= ResChange
	}
	c.drawControlFrame(incID, inc, ColorButton, opt)
	c.drawControlText("+", inc, ColorText, opt|OptAlignCenter)

	field := geom.R(r.X+bw, r.Y, r.W-bw*2, r.H)
	fieldID := c.IDString("!field")
	c.updateControl(fieldID, field, opt)
	if c.active == fieldID && c.in.mouseDown&MouseLeft != 0 {
		*value = T(float64(*value) + float64(c.in.mouseDelta.X)*float64(step))
		res |= ResChange
	}
	c.drawControlFrame(fieldID, field, ColorBase, opt)
	if format == "" {
		format = "%v"
	}
	c.drawControlText(fmt.Sprintf(format, *value), field, ColorText, opt|OptAlignCenter)
	return res
}

// TextBox emits a single-line text input bound to buf. Focus is claimed on
// click and held until Return, a click elsewhere, or the window closes.
func (c *Context) TextBox(buf *string, opt Option) Result {
	id := c.ID(ptrBytes(unsafe.Pointer(buf)))
	r := c.LayoutNext()
	return c.textBoxRaw(buf, id, r, opt)
}

func (c *Context) textBoxRaw(buf *string, id ID, r geom.Rect, opt Option) Result {
	var res Result
	c.updateControl(id, r, opt|OptHoldFocus)

	if c.focus == id {
		if len(c.in.textInput) > 0 {
			room := c.textLimit - len(*buf)
			if room > 0 {
				in := c.in.textInput
				if len(in) > room {
					in = in[:room]
				}
				*buf += string(in)
				res |= ResChange
			}
		}
		if c.in.keyPressed&KeyBackspace != 0 && len(*buf) > 0 {
			_, n := utf8.DecodeLastRuneInString(*buf)
			*buf = (*buf)[:len(*buf)-n]
			res |= ResChange
		}
		if c.in.keyPressed&KeyReturn != 0 {
			c.ClearFocus()
			res |= ResSubmit
		}
	}

	c.drawControlFrame(id, r, ColorBase, opt)
	if c.focus == id {
		font := c.Style.Font
		color := c.Style.Colors[ColorText]
		textw := c.measurer.TextWidth(font, *buf)
		texth := c.measurer.TextHeight(font)
		// Keep the caret end of the text in view when it overflows.
		ofx := r.W - c.Style.Padding - textw - 1
		textx := r.X + min(ofx, c.Style.Padding)
		texty := r.Y + (r.H-texth)/2
		c.PushClip(r)
		c.DrawText(font, *buf, geom.V(textx, texty), color)
		c.DrawRect(geom.R(textx+textw, texty, 1, texth), color)
		c.PopClip()
	} else {
		c.drawControlText(*buf, r, ColorText, opt)
	}
	return res
}

// Header emits a collapsible section header toggled by clicking anywhere on
// it. The caller owns the expanded flag.
func (c *Context) Header(label string, expanded *bool) Result {
	return c.headerLogic(label, expanded, false, 0, 0)
}

// TreeNode emits a tree row indented by level. Unlike Header, only a click
// on the disclosure icon toggles it, leaving the rest of the row free for
// selection handling by the caller.
func (c *Context) TreeNode(label string, expanded *bool, level int) Result {
	return c.headerLogic(label, expanded, true, level, 0)
}

func (c *Context) headerLogic(label string, expanded *bool, istree bool, level int, opt Option) Result {
	id := c.ID(ptrBytes(unsafe.Pointer(expanded)))
	c.LayoutRow([]int{-1}, 0)
	r := c.LayoutNext()
	if istree {
		r.X += level * c.Style.Indent
		r.W -= level * c.Style.Indent
	}
	c.updateControl(id, r, opt)

	icon := geom.R(r.X, r.Y, r.H, r.H)
	var res Result
	if c.in.mousePressed&MouseLeft != 0 && c.active == id {
		if !istree || icon.Contains(c.in.mousePos) {
			*expanded = !*expanded
			res |= ResChange
		}
	}
	if *expanded {
		res |= ResActive
	}

	if istree {
		if c.hover == id {
			c.drawFrame(c, r, ColorButtonHover)
		}
	} else {
		c.drawControlFrame(id, r, ColorButton, 0)
	}
	ic := IconCollapsed
	if *expanded {
		ic = IconExpanded
	}
	c.DrawIcon(ic, icon, c.Style.Colors[ColorText])
	tr := geom.R(r.X+r.H, r.Y, r.W-r.H, r.H)
	c.drawControlText(label, tr, ColorText, 0)
	return res
}
