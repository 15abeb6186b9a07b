package ui

import (
	"testing"

	"github.com/thicketui/thicket/engine/geom"
)

// fixedMeasurer gives every rune a fixed advance so layout math in tests is
// exact.
type fixedMeasurer struct {
	w, h int
}

func (m fixedMeasurer) TextWidth(_ Font, s string) int { return m.w * len(s) }
func (m fixedMeasurer) TextHeight(_ Font) int          { return m.h }

func newTestContext(t *testing.T) *Context {
	t.Helper()
	c, err := New(Config{Measurer: fixedMeasurer{w: 4, h: 8}})
	if err != nil {
		t.Fatal(err)
	}
	return c
}

// step runs one full frame.
func step(c *Context, fn func(*Context)) {
	c.BeginFrame()
	fn(c)
	c.EndFrame()
}

// click presses and releases the left button at p across two frames, with
// fn describing the UI each frame. A preceding frame establishes hover
// attribution for the window under the pointer.
func click(c *Context, p geom.Vec2, fn func(*Context)) {
	c.InputMouseMove(p.X, p.Y)
	step(c, fn)
	c.InputMouseDown(p.X, p.Y, MouseLeft)
	step(c, fn)
	c.InputMouseUp(p.X, p.Y, MouseLeft)
	step(c, fn)
}

func TestNewRequiresMeasurer(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Fatal("expected error for missing measurer")
	}
}

func TestStatsAccumulate(t *testing.T) {
	c := newTestContext(t)
	step(c, func(c *Context) {
		if c.BeginWindow("w", geom.R(0, 0, 100, 100), 0) {
			c.Label("hello")
			c.EndWindow()
		}
	})
	st := c.Stats()
	if st.Commands == 0 {
		t.Error("no commands recorded")
	}
	if st.CommandBytes == 0 {
		t.Error("no command bytes recorded")
	}
	if st.StringBytes == 0 {
		t.Error("no string bytes recorded")
	}
	if st.Containers != 1 {
		t.Errorf("Containers = %d, want 1", st.Containers)
	}
}

func TestCommandBufferOverflowPanics(t *testing.T) {
	c, err := New(Config{Measurer: fixedMeasurer{w: 4, h: 8}, CommandBytes: 64})
	if err != nil {
		t.Fatal(err)
	}
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on command buffer overflow")
		}
	}()
	c.BeginFrame()
	for i := 0; i < 100; i++ {
		c.DrawRect(geom.R(0, 0, 10, 10), c.Style.Colors[ColorText])
	}
}
