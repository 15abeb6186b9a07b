package ui

import (
	"encoding/binary"
	"fmt"
	"unsafe"

	"github.com/thicketui/thicket/engine/colors"
	"github.com/thicketui/thicket/engine/geom"
)

// CommandKind tags one record in the draw command stream.
type CommandKind uint8

const (
	commandNone CommandKind = iota
	// CommandJump redirects stream traversal to another offset. It carries
	// no visual payload; renderers never see it from CommandIterator.
	CommandJump
	// CommandClip sets the scissor rect for subsequent draws.
	CommandClip
	// CommandRect fills a rectangle.
	CommandRect
	// CommandText draws a string at a position. The bytes live in the
	// per-frame string pool, not inline in the record.
	CommandText
	// CommandIcon draws a built-in or host-defined icon inside a rect.
	CommandIcon
)

// Record layout: a 4 byte header [kind u8][reserved u8][size u16 LE]
// followed by a fixed little-endian payload. Self-describing sizes let a
// reader skip records it does not care about.
const (
	cmdHeaderSize = 4

	jumpCommandSize = cmdHeaderSize + 4               // dst i32
	clipCommandSize = cmdHeaderSize + 16              // rect 4*i32
	rectCommandSize = cmdHeaderSize + 16 + 4          // rect, color rgba8
	textCommandSize = cmdHeaderSize + 8 + 4 + 4 + 8   // pos 2*i32, font i32, color, pool off+len 2*i32
	iconCommandSize = cmdHeaderSize + 16 + 4 + 4      // rect, icon i32, color
)

// Command is one decoded record. Which fields are meaningful depends on Kind.
type Command struct {
	Kind  CommandKind
	Rect  geom.Rect    // Clip, Rect, Icon
	Color colors.Color // Rect, Text, Icon
	Pos   geom.Vec2    // Text
	Font  Font         // Text
	Text  string       // Text; view into the frame's string pool
	Icon  IconID       // Icon
}

// IconID names an icon for the renderer to draw. Values above IconExpanded
// are free for host use.
type IconID int32

const (
	IconNone IconID = iota
	IconClose
	IconCheck
	IconCollapsed
	IconExpanded
)

// commandBuffer is the append-only fixed-capacity byte arena holding one
// frame's commands. Overflow is a static sizing mistake and panics.
type commandBuffer struct {
	buf []byte
}

func (cb *commandBuffer) reset() { cb.buf = cb.buf[:0] }

func (cb *commandBuffer) push(kind CommandKind, size int) int {
	off := len(cb.buf)
	if off+size > cap(cb.buf) {
		panic(fmt.Sprintf("ui: command buffer overflow (%d byte capacity); raise Config.CommandBytes", cap(cb.buf)))
	}
	cb.buf = cb.buf[:off+size]
	b := cb.buf[off:]
	b[0] = byte(kind)
	b[1] = 0
	binary.LittleEndian.PutUint16(b[2:], uint16(size))
	return off
}

// stringPool holds the frame's text payloads. Its length resets every frame
// but the backing capacity is kept at its high-water mark; growth past the
// configured ceiling panics.
type stringPool struct {
	buf   []byte
	limit int
}

func (p *stringPool) reset() { p.buf = p.buf[:0] }

func (p *stringPool) add(s string) (off, n int) {
	if len(p.buf)+len(s) > p.limit {
		panic(fmt.Sprintf("ui: string pool overflow (%d byte ceiling); raise Config.StringBytes", p.limit))
	}
	off = len(p.buf)
	p.buf = append(p.buf, s...)
	return off, len(s)
}

// view returns a zero-copy string over pool bytes. Valid until the next
// BeginFrame.
func (p *stringPool) view(off, n int) string {
	if n == 0 {
		return ""
	}
	b := p.buf[off : off+n]
	return unsafe.String(&b[0], len(b))
}

func putRect(b []byte, r geom.Rect) {
	binary.LittleEndian.PutUint32(b[0:], uint32(int32(r.X)))
	binary.LittleEndian.PutUint32(b[4:], uint32(int32(r.Y)))
	binary.LittleEndian.PutUint32(b[8:], uint32(int32(r.W)))
	binary.LittleEndian.PutUint32(b[12:], uint32(int32(r.H)))
}

func getRect(b []byte) geom.Rect {
	return geom.Rect{
		X: int(int32(binary.LittleEndian.Uint32(b[0:]))),
		Y: int(int32(binary.LittleEndian.Uint32(b[4:]))),
		W: int(int32(binary.LittleEndian.Uint32(b[8:]))),
		H: int(int32(binary.LittleEndian.Uint32(b[12:]))),
	}
}

func putColor(b []byte, col colors.Color) {
	b[0], b[1], b[2], b[3] = col.R, col.G, col.B, col.A
}

func getColor(b []byte) colors.Color {
	return colors.Color{R: b[0], G: b[1], B: b[2], A: b[3]}
}

func putI32(b []byte, v int) {
	binary.LittleEndian.PutUint32(b, uint32(int32(v)))
}

func getI32(b []byte) int {
	return int(int32(binary.LittleEndian.Uint32(b)))
}

func (c *Context) pushCommand(kind CommandKind, size int) int {
	off := c.cmds.push(kind, size)
	c.commands++
	return off
}

func (c *Context) pushJump(dst int) int {
	off := c.pushCommand(CommandJump, jumpCommandSize)
	putI32(c.cmds.buf[off+cmdHeaderSize:], dst)
	return off
}

// patchJump rewrites the destination of an already-written Jump record. This
// is how container command ranges are spliced into z-order after recording,
// without moving any payload bytes.
func (c *Context) patchJump(off, dst int) {
	if CommandKind(c.cmds.buf[off]) != CommandJump {
		panic("ui: patchJump target is not a jump command")
	}
	putI32(c.cmds.buf[off+cmdHeaderSize:], dst)
}

// CommandAt decodes the record at a previously returned offset.
func (c *Context) CommandAt(off int) Command {
	cmd, _ := c.decodeCommand(off)
	return cmd
}

func (c *Context) decodeCommand(off int) (Command, int) {
	buf := c.cmds.buf
	kind := CommandKind(buf[off])
	size := int(binary.LittleEndian.Uint16(buf[off+2:]))
	p := buf[off+cmdHeaderSize:]
	cmd := Command{Kind: kind}
	switch kind {
	case CommandJump:
		// destination surfaced nowhere; the iterator consumes it
	case CommandClip:
		cmd.Rect = getRect(p)
	case CommandRect:
		cmd.Rect = getRect(p)
		cmd.Color = getColor(p[16:])
	case CommandText:
		cmd.Pos = geom.V(getI32(p), getI32(p[4:]))
		cmd.Font = Font(getI32(p[8:]))
		cmd.Color = getColor(p[12:])
		cmd.Text = c.pool.view(getI32(p[16:]), getI32(p[20:]))
	case CommandIcon:
		cmd.Rect = getRect(p)
		cmd.Icon = IconID(getI32(p[16:]))
		cmd.Color = getColor(p[20:])
	default:
		panic(fmt.Sprintf("ui: corrupt command stream (kind %d at offset %d)", kind, off))
	}
	return cmd, size
}

// CommandIterator walks the frame's command stream in paint order, following
// Jump records transparently. Obtain one from Context.Commands after
// EndFrame.
type CommandIterator struct {
	ctx *Context
	off int
}

// Commands returns an iterator positioned at the top of the stream.
func (c *Context) Commands() CommandIterator {
	return CommandIterator{ctx: c}
}

// Next yields the next visual command, or ok=false at end of stream.
func (it *CommandIterator) Next() (Command, bool) {
	buf := it.ctx.cmds.buf
	for it.off < len(buf) {
		if CommandKind(buf[it.off]) == CommandJump {
			it.off = getI32(buf[it.off+cmdHeaderSize:])
			continue
		}
		cmd, size := it.ctx.decodeCommand(it.off)
		it.off += size
		return cmd, true
	}
	return Command{}, false
}
