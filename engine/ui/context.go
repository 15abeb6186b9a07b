// Package ui implements an immediate-mode UI engine. Application code
// re-describes its whole interface every frame between BeginFrame and
// EndFrame; the engine turns those calls into stable per-widget identities,
// a computed layout, hover/active/focus interaction state and a compact
// backend-agnostic stream of draw commands. It performs no rasterization and
// no window-system work: the host injects text measurement and consumes the
// command stream with its own renderer (see engine/gfx/glrender and
// engine/gfx/termgrid for two such backends).
package ui

import (
	"errors"

	"github.com/thicketui/thicket/engine/geom"
)

// Font is an opaque handle. The engine never inspects it; the host's
// TextMeasurer and renderer agree on what it names.
type Font int

// TextMeasurer supplies the two metrics the engine needs before any drawing
// occurs.
type TextMeasurer interface {
	TextWidth(font Font, s string) int
	TextHeight(font Font) int
}

// DrawFrameFunc draws the background frame of a control. Hosts may replace
// the default flat fill + border.
type DrawFrameFunc func(c *Context, r geom.Rect, color ColorID)

// Config configures a Context. Measurer is required; everything else has a
// usable default.
type Config struct {
	Measurer TextMeasurer
	Style    *Style
	// DrawFrame overrides the default control frame drawing.
	DrawFrame DrawFrameFunc
	// CommandBytes is the fixed per-frame command buffer capacity.
	CommandBytes int
	// StringBytes is the string pool growth ceiling.
	StringBytes int
	// MaxContainers caps the persistent container registry.
	MaxContainers int
	// TextLimit is the length a TextBox truncates its buffer to.
	TextLimit int
}

const (
	defaultCommandBytes  = 256 * 1024
	defaultStringBytes   = 64 * 1024
	defaultMaxContainers = 48
	defaultTextLimit     = 1024

	maxIDStack     = 32
	maxClipStack   = 32
	maxLayoutStack = 16
)

// Statistics is a per-frame snapshot useful for capacity tuning.
type Statistics struct {
	Commands     int
	CommandBytes int
	StringBytes  int
	Containers   int
}

// Context is the root object of one UI instance. It owns the command
// buffer, all stacks and the persistent container registry, and is not safe
// for concurrent use.
type Context struct {
	// Style is read by every control; swap it wholesale or mutate fields
	// between frames.
	Style *Style

	measurer  TextMeasurer
	drawFrame DrawFrameFunc
	textLimit int

	hover  ID
	focus  ID
	active ID

	lastID   ID
	lastRect geom.Rect

	frame      int
	frameOpen  bool
	frameHead  int
	lastZIndex int

	hoverRoot     *Container
	nextHoverRoot *Container
	scrollTarget  *Container
	focusRoot     *Container
	activeRoot    *Container

	cmds commandBuffer
	pool stringPool

	idStack        []ID
	clipStack      []geom.Rect
	layoutStack    []layoutFrame
	containerStack []*Container
	rootList       []*Container

	containers    map[ID]*Container
	maxContainers int

	in       input
	commands int
}

// New builds a Context. The text measurer is a hard precondition: without it
// layout results would be undefined.
func New(cfg Config) (*Context, error) {
	if cfg.Measurer == nil {
		return nil, errors.New("ui: Config.Measurer is required")
	}
	if cfg.CommandBytes <= 0 {
		cfg.CommandBytes = defaultCommandBytes
	}
	if cfg.StringBytes <= 0 {
		cfg.StringBytes = defaultStringBytes
	}
	if cfg.MaxContainers <= 0 {
		cfg.MaxContainers = defaultMaxContainers
	}
	if cfg.TextLimit <= 0 {
		cfg.TextLimit = defaultTextLimit
	}
	style := cfg.Style
	if style == nil {
		style = DefaultStyle()
	}
	drawFrame := cfg.DrawFrame
	if drawFrame == nil {
		drawFrame = defaultDrawFrame
	}
	return &Context{
		Style:          style,
		measurer:       cfg.Measurer,
		drawFrame:      drawFrame,
		textLimit:      cfg.TextLimit,
		cmds:           commandBuffer{buf: make([]byte, 0, cfg.CommandBytes)},
		pool:           stringPool{limit: cfg.StringBytes},
		idStack:        make([]ID, 0, maxIDStack),
		clipStack:      make([]geom.Rect, 0, maxClipStack),
		layoutStack:    make([]layoutFrame, 0, maxLayoutStack),
		containerStack: make([]*Container, 0, maxLayoutStack),
		rootList:       make([]*Container, 0, 16),
		containers:     make(map[ID]*Container, cfg.MaxContainers),
		maxContainers:  cfg.MaxContainers,
	}, nil
}

// Hover reports the identity under the pointer this frame.
func (c *Context) Hover() ID { return c.hover }

// Active reports the identity owning the current pointer-down gesture.
func (c *Context) Active() ID { return c.active }

// Focus reports the identity owning keyboard input.
func (c *Context) Focus() ID { return c.focus }

// LastID returns the identity computed by the most recent control or ID call,
// so a caller can associate external state with the control it just emitted.
func (c *Context) LastID() ID { return c.lastID }

// LastRect returns the rectangle of the most recently laid out control.
func (c *Context) LastRect() geom.Rect { return c.lastRect }

// SetFocus hands keyboard input to id. Focus is sticky: it persists across
// frames until reassigned, cleared, or its owning container closes.
func (c *Context) SetFocus(id ID) {
	c.focus = id
	c.focusRoot = c.rootContainer()
}

// ClearFocus releases keyboard input.
func (c *Context) ClearFocus() {
	c.focus = 0
	c.focusRoot = nil
}

func (c *Context) setActive(id ID) {
	c.active = id
	c.activeRoot = c.rootContainer()
}

// rootContainer returns the innermost open root container, or nil outside of
// any window.
func (c *Context) rootContainer() *Container {
	for i := len(c.containerStack) - 1; i >= 0; i-- {
		if c.containerStack[i].root {
			return c.containerStack[i]
		}
	}
	return nil
}

// Stats reports sizes for the frame recorded so far.
func (c *Context) Stats() Statistics {
	return Statistics{
		Commands:     c.commands,
		CommandBytes: len(c.cmds.buf),
		StringBytes:  len(c.pool.buf),
		Containers:   len(c.containers),
	}
}
