package ui

import (
	"testing"

	"github.com/thicketui/thicket/engine/colors"
	"github.com/thicketui/thicket/engine/geom"
)

func TestRectCommandRoundTrip(t *testing.T) {
	c := newTestContext(t)
	c.BeginFrame()
	before := len(c.cmds.buf)
	c.DrawRect(geom.R(10, 20, 30, 40), colors.Color{R: 1, G: 2, B: 3, A: 255})
	cmd := c.CommandAt(before)
	if cmd.Kind != CommandRect {
		t.Fatalf("Kind = %v, want CommandRect", cmd.Kind)
	}
	if cmd.Rect != geom.R(10, 20, 30, 40) {
		t.Errorf("Rect = %v", cmd.Rect)
	}
	if cmd.Color != (colors.Color{R: 1, G: 2, B: 3, A: 255}) {
		t.Errorf("Color = %v", cmd.Color)
	}
	c.EndFrame()
}

func TestTextCommandRoundTrip(t *testing.T) {
	c := newTestContext(t)
	c.BeginFrame()
	before := len(c.cmds.buf)
	c.DrawText(3, "hello", geom.V(-7, 9), colors.Yellow)
	cmd := c.CommandAt(before)
	if cmd.Kind != CommandText {
		t.Fatalf("Kind = %v, want CommandText", cmd.Kind)
	}
	if cmd.Text != "hello" {
		t.Errorf("Text = %q", cmd.Text)
	}
	if cmd.Pos != geom.V(-7, 9) {
		t.Errorf("Pos = %v", cmd.Pos)
	}
	if cmd.Font != 3 {
		t.Errorf("Font = %v", cmd.Font)
	}
	c.EndFrame()
}

func TestIconCommandRoundTrip(t *testing.T) {
	c := newTestContext(t)
	c.BeginFrame()
	before := len(c.cmds.buf)
	c.DrawIcon(IconCheck, geom.R(1, 2, 16, 16), colors.White)
	cmd := c.CommandAt(before)
	if cmd.Kind != CommandIcon {
		t.Fatalf("Kind = %v, want CommandIcon", cmd.Kind)
	}
	if cmd.Icon != IconCheck {
		t.Errorf("Icon = %v", cmd.Icon)
	}
	if cmd.Rect != geom.R(1, 2, 16, 16) {
		t.Errorf("Rect = %v", cmd.Rect)
	}
	c.EndFrame()
}

func TestIteratorSkipsJumps(t *testing.T) {
	c := newTestContext(t)
	step(c, func(c *Context) {
		if c.BeginWindow("w", geom.R(0, 0, 100, 100), 0) {
			c.EndWindow()
		}
	})
	it := c.Commands()
	for cmd, ok := it.Next(); ok; cmd, ok = it.Next() {
		if cmd.Kind == CommandJump {
			t.Fatal("iterator yielded a jump command")
		}
	}
}

func TestIteratorEmptyFrame(t *testing.T) {
	c := newTestContext(t)
	step(c, func(*Context) {})
	it := c.Commands()
	if _, ok := it.Next(); ok {
		t.Fatal("empty frame yielded a command")
	}
}

// Text recorded in a frame must be readable from the iterator even though
// the engine pools string bytes instead of copying them per command.
func TestPooledTextSurvivesFrame(t *testing.T) {
	c := newTestContext(t)
	step(c, func(c *Context) {
		if c.BeginWindow("w", geom.R(0, 0, 200, 100), 0) {
			c.Label("first")
			c.Label("second")
			c.EndWindow()
		}
	})
	var texts []string
	it := c.Commands()
	for cmd, ok := it.Next(); ok; cmd, ok = it.Next() {
		if cmd.Kind == CommandText {
			texts = append(texts, cmd.Text)
		}
	}
	want := []string{"w", "first", "second"}
	if len(texts) != len(want) {
		t.Fatalf("got %d text commands %v, want %d", len(texts), texts, len(want))
	}
	for i := range want {
		if texts[i] != want[i] {
			t.Errorf("texts[%d] = %q, want %q", i, texts[i], want[i])
		}
	}
}

func TestStringPoolCeilingPanics(t *testing.T) {
	c, err := New(Config{Measurer: fixedMeasurer{w: 4, h: 8}, StringBytes: 16})
	if err != nil {
		t.Fatal(err)
	}
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on string pool overflow")
		}
	}()
	c.BeginFrame()
	c.DrawText(0, "this string is longer than the pool ceiling", geom.V(0, 0), colors.White)
}
