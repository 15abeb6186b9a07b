package ui

import (
	"testing"

	"github.com/thicketui/thicket/engine/geom"
)

// plainWindowOpt removes the chrome so the layout body is the window rect
// shrunk by padding only.
const plainWindowOpt = OptNoTitle | OptNoResize | OptNoScroll | OptNoFrame

func TestLayoutRowFixedWidths(t *testing.T) {
	c := newTestContext(t)
	pad, sp := c.Style.Padding, c.Style.Spacing
	var r1, r2 geom.Rect
	step(c, func(c *Context) {
		if c.BeginWindow("w", geom.R(0, 0, 200, 200), plainWindowOpt) {
			c.LayoutRow([]int{50, 30}, 20)
			r1 = c.LayoutNext()
			r2 = c.LayoutNext()
			c.EndWindow()
		}
	})
	if r1 != geom.R(pad, pad, 50, 20) {
		t.Errorf("first cell = %v", r1)
	}
	want2 := geom.R(pad+50+sp, pad, 30, 20)
	if r2 != want2 {
		t.Errorf("second cell = %v, want %v", r2, want2)
	}
}

// The horizontal space a row consumes is the sum of its widths plus
// (N-1) spacings.
func TestLayoutRowAdditivity(t *testing.T) {
	c := newTestContext(t)
	pad, sp := c.Style.Padding, c.Style.Spacing
	widths := []int{40, 25, 60, 10}
	var rects []geom.Rect
	step(c, func(c *Context) {
		if c.BeginWindow("w", geom.R(0, 0, 400, 200), plainWindowOpt) {
			c.LayoutRow(widths, 0)
			for range widths {
				rects = append(rects, c.LayoutNext())
			}
			c.EndWindow()
		}
	})
	total := 0
	for _, w := range widths {
		total += w
	}
	wantEnd := pad + total + sp*(len(widths)-1)
	last := rects[len(rects)-1]
	if got := last.X + last.W; got != wantEnd {
		t.Errorf("row end = %d, want %d", got, wantEnd)
	}
	for i := 1; i < len(rects); i++ {
		if gap := rects[i].X - (rects[i-1].X + rects[i-1].W); gap != sp {
			t.Errorf("gap before cell %d = %d, want %d", i, gap, sp)
		}
	}
}

func TestLayoutRowProportional(t *testing.T) {
	c := newTestContext(t)
	pad, sp := c.Style.Padding, c.Style.Spacing
	var r1, r2, r3 geom.Rect
	step(c, func(c *Context) {
		if c.BeginWindow("w", geom.R(0, 0, 200, 200), plainWindowOpt) {
			c.LayoutRow([]int{-1, -2}, 0)
			r1 = c.LayoutNext()
			r2 = c.LayoutNext()
			c.LayoutRow([]int{100, -1}, 0)
			c.LayoutNext()
			r3 = c.LayoutNext()
			c.EndWindow()
		}
	})
	bodyW := 200 - pad*2
	avail := bodyW - sp
	if want := avail * 1 / 3; r1.W != want {
		t.Errorf("1-unit cell width = %d, want %d", r1.W, want)
	}
	if want := avail - avail*1/3; r2.W != want {
		t.Errorf("2-unit cell width = %d, want %d", r2.W, want)
	}
	// Fill cells end exactly at the body's right edge.
	if end := r2.X + r2.W; end != pad+bodyW {
		t.Errorf("proportional row end = %d, want %d", end, pad+bodyW)
	}
	if end := r3.X + r3.W; end != pad+bodyW {
		t.Errorf("fill-after-fixed row end = %d, want %d", end, pad+bodyW)
	}
}

func TestLayoutDefaultSizeAndWrap(t *testing.T) {
	c := newTestContext(t)
	pad, sp := c.Style.Padding, c.Style.Spacing
	defW := c.Style.Size.X + pad*2
	defH := c.Style.Size.Y + pad*2
	var r1, r2 geom.Rect
	step(c, func(c *Context) {
		if c.BeginWindow("w", geom.R(0, 0, 400, 200), plainWindowOpt) {
			c.LayoutRow([]int{0}, 0)
			r1 = c.LayoutNext()
			// row has one column; the next cell wraps to a new row
			r2 = c.LayoutNext()
			c.EndWindow()
		}
	})
	if r1.W != defW || r1.H != defH {
		t.Errorf("default cell = %v, want %dx%d", r1, defW, defH)
	}
	if r2.X != r1.X {
		t.Errorf("wrapped cell x = %d, want %d", r2.X, r1.X)
	}
	if want := r1.Y + defH + sp; r2.Y != want {
		t.Errorf("wrapped cell y = %d, want %d", r2.Y, want)
	}
}

func TestLayoutColumn(t *testing.T) {
	c := newTestContext(t)
	var col1, col2, after geom.Rect
	step(c, func(c *Context) {
		if c.BeginWindow("w", geom.R(0, 0, 300, 300), plainWindowOpt) {
			c.LayoutRow([]int{120, -1}, 100)
			c.LayoutBeginColumn()
			c.LayoutRow([]int{-1}, 10)
			col1 = c.LayoutNext()
			col2 = c.LayoutNext()
			c.LayoutEndColumn()
			c.LayoutRow([]int{-1}, 0)
			after = c.LayoutNext()
			c.EndWindow()
		}
	})
	if col1.W != 120 {
		t.Errorf("column cell width = %d, want 120", col1.W)
	}
	if col2.Y <= col1.Y {
		t.Errorf("column cells did not stack: %v then %v", col1, col2)
	}
	// The row after the column starts below everything the column emitted.
	if after.Y <= col2.Y {
		t.Errorf("post-column row at y=%d, inside column ending y=%d", after.Y, col2.Y)
	}
}

func TestSetNextLayoutAbsolute(t *testing.T) {
	c := newTestContext(t)
	var got geom.Rect
	step(c, func(c *Context) {
		if c.BeginWindow("w", geom.R(0, 0, 300, 300), plainWindowOpt) {
			c.SetNextLayout(geom.R(42, 17, 30, 10), false)
			got = c.LayoutNext()
			c.EndWindow()
		}
	})
	if got != geom.R(42, 17, 30, 10) {
		t.Errorf("absolute rect = %v", got)
	}
}

func TestLayoutFillHeight(t *testing.T) {
	c := newTestContext(t)
	pad := c.Style.Padding
	var got geom.Rect
	step(c, func(c *Context) {
		if c.BeginWindow("w", geom.R(0, 0, 200, 150), plainWindowOpt) {
			c.LayoutRow([]int{-1}, -1)
			got = c.LayoutNext()
			c.EndWindow()
		}
	})
	if want := 150 - pad*2; got.H != want {
		t.Errorf("fill height = %d, want %d", got.H, want)
	}
}

func TestLayoutOutsideWindowPanics(t *testing.T) {
	c := newTestContext(t)
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for layout call outside a window")
		}
	}()
	c.BeginFrame()
	c.LayoutRow([]int{-1}, 0)
}
