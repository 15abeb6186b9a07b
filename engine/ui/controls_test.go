package ui

import (
	"testing"

	"github.com/thicketui/thicket/engine/geom"
)

// buttonFrame lays out a single full-width button and records its result
// and rect.
func buttonFrame(res *Result, rect *geom.Rect) func(*Context) {
	return func(c *Context) {
		if c.BeginWindow("w", geom.R(0, 0, 200, 100), plainWindowOpt) {
			c.LayoutRow([]int{-1}, 0)
			*res = c.Button("btn")
			*rect = c.LastRect()
			c.EndWindow()
		}
	}
}

func TestButtonSubmitOnRelease(t *testing.T) {
	c := newTestContext(t)
	var res Result
	var rect geom.Rect
	frame := buttonFrame(&res, &rect)

	step(c, frame)
	mid := geom.V(rect.X+rect.W/2, rect.Y+rect.H/2)

	c.InputMouseMove(mid.X, mid.Y)
	step(c, frame)
	if res&ResSubmit != 0 {
		t.Fatal("hover alone submitted")
	}

	c.InputMouseDown(mid.X, mid.Y, MouseLeft)
	step(c, frame)
	if res&ResActive == 0 {
		t.Fatal("press did not make the button active")
	}
	if res&ResSubmit != 0 {
		t.Fatal("press submitted before release")
	}

	c.InputMouseUp(mid.X, mid.Y, MouseLeft)
	step(c, frame)
	if res&ResSubmit == 0 {
		t.Fatal("release over the button did not submit")
	}
}

func TestButtonNoSubmitWhenReleasedElsewhere(t *testing.T) {
	c := newTestContext(t)
	var res Result
	var rect geom.Rect
	frame := buttonFrame(&res, &rect)

	step(c, frame)
	mid := geom.V(rect.X+rect.W/2, rect.Y+rect.H/2)

	c.InputMouseMove(mid.X, mid.Y)
	step(c, frame)
	c.InputMouseDown(mid.X, mid.Y, MouseLeft)
	step(c, frame)
	// Drag off the button, then release.
	c.InputMouseMove(500, 500)
	step(c, frame)
	c.InputMouseUp(500, 500, MouseLeft)
	step(c, frame)
	if res&ResSubmit != 0 {
		t.Fatal("release away from the button submitted")
	}
}

func TestButtonNoInteractionWithoutPointer(t *testing.T) {
	c := newTestContext(t)
	var res Result
	var rect geom.Rect
	frame := buttonFrame(&res, &rect)
	step(c, frame)
	step(c, frame)
	if res != 0 {
		t.Fatalf("res = %v with pointer elsewhere, want 0", res)
	}
}

func TestCheckboxToggles(t *testing.T) {
	c := newTestContext(t)
	state := false
	var res Result
	_ = res
	var rect geom.Rect
	frame := func(c *Context) {
		if c.BeginWindow("w", geom.R(0, 0, 200, 100), plainWindowOpt) {
			c.LayoutRow([]int{-1}, 0)
			res = c.Checkbox("check me", &state)
			rect = c.LastRect()
			c.EndWindow()
		}
	}
	step(c, frame)
	click(c, geom.V(rect.X+5, rect.Y+rect.H/2), frame)
	if !state {
		t.Fatal("click did not set the checkbox")
	}
	click(c, geom.V(rect.X+5, rect.Y+rect.H/2), frame)
	if state {
		t.Fatal("second click did not clear the checkbox")
	}
}

func TestCheckboxChangeReportedOnce(t *testing.T) {
	c := newTestContext(t)
	state := false
	changes := 0
	var rect geom.Rect
	frame := func(c *Context) {
		if c.BeginWindow("w", geom.R(0, 0, 200, 100), plainWindowOpt) {
			c.LayoutRow([]int{-1}, 0)
			if c.Checkbox("check", &state)&ResChange != 0 {
				changes++
			}
			rect = c.LastRect()
			c.EndWindow()
		}
	}
	step(c, frame)
	click(c, geom.V(rect.X+5, rect.Y+rect.H/2), frame)
	step(c, frame)
	step(c, frame)
	if changes != 1 {
		t.Errorf("ResChange fired %d times for one click, want 1", changes)
	}
}

func TestSliderDragSetsProportionalValue(t *testing.T) {
	c := newTestContext(t)
	value := 0.0
	var rect geom.Rect
	frame := func(c *Context) {
		if c.BeginWindow("w", geom.R(0, 0, 200, 100), plainWindowOpt) {
			c.LayoutRow([]int{-1}, 0)
			Slider(c, &value, 0, 10, 0, "", 0)
			rect = c.LastRect()
			c.EndWindow()
		}
	}
	step(c, frame)
	// Press at 80% of the track.
	px := rect.X + rect.W*8/10
	py := rect.Y + rect.H/2
	c.InputMouseMove(px, py)
	step(c, frame)
	c.InputMouseDown(px, py, MouseLeft)
	step(c, frame)
	c.InputMouseUp(px, py, MouseLeft)
	step(c, frame)
	if value < 7.5 || value > 8.5 {
		t.Errorf("value = %v after pressing at 80%%, want ~8", value)
	}
}

func TestSliderStepSnaps(t *testing.T) {
	c := newTestContext(t)
	value := 0.0
	var rect geom.Rect
	frame := func(c *Context) {
		if c.BeginWindow("w", geom.R(0, 0, 200, 100), plainWindowOpt) {
			c.LayoutRow([]int{-1}, 0)
			Slider(c, &value, 0, 10, 2, "", 0)
			rect = c.LastRect()
			c.EndWindow()
		}
	}
	step(c, frame)
	px := rect.X + rect.W*7/10
	py := rect.Y + rect.H/2
	c.InputMouseMove(px, py)
	step(c, frame)
	c.InputMouseDown(px, py, MouseLeft)
	step(c, frame)
	snapped := value == 0 || value == 2 || value == 4 || value == 6 || value == 8 || value == 10
	if !snapped {
		t.Errorf("value = %v, want a multiple of the step", value)
	}
	c.InputMouseUp(px, py, MouseLeft)
	step(c, frame)
}

func TestSliderClampsToRange(t *testing.T) {
	c := newTestContext(t)
	value := 42.0
	frame := func(c *Context) {
		if c.BeginWindow("w", geom.R(0, 0, 200, 100), plainWindowOpt) {
			c.LayoutRow([]int{-1}, 0)
			Slider(c, &value, 0, 10, 0, "", 0)
			c.EndWindow()
		}
	}
	step(c, frame)
	if value != 10 {
		t.Errorf("out-of-range value = %v, want clamped to 10", value)
	}
}

func TestNumberFieldDragByStep(t *testing.T) {
	c := newTestContext(t)
	value := 5.0
	var rect geom.Rect
	frame := func(c *Context) {
		if c.BeginWindow("w", geom.R(0, 0, 200, 100), plainWindowOpt) {
			c.LayoutRow([]int{-1}, 0)
			NumberField(c, &value, 0.5, "", 0)
			rect = c.LastRect()
			c.EndWindow()
		}
	}
	step(c, frame)
	mid := geom.V(rect.X+rect.W/2, rect.Y+rect.H/2)
	c.InputMouseMove(mid.X, mid.Y)
	step(c, frame)
	c.InputMouseDown(mid.X, mid.Y, MouseLeft)
	step(c, frame)
	c.InputMouseMove(mid.X+10, mid.Y)
	step(c, frame)
	if value != 10 {
		t.Errorf("value = %v after 10px drag at step 0.5, want 10", value)
	}
	c.InputMouseUp(mid.X+10, mid.Y, MouseLeft)
	step(c, frame)
}

func TestTextBoxInputAndSubmit(t *testing.T) {
	c := newTestContext(t)
	buf := ""
	var res Result
	frame := func(c *Context) {
		if c.BeginWindow("w", geom.R(0, 0, 200, 100), plainWindowOpt) {
			c.LayoutRow([]int{-1}, 0)
			res = c.TextBox(&buf, 0)
			c.EndWindow()
		}
	}
	step(c, frame)

	// Focus it directly and type.
	c.BeginFrame()
	if c.BeginWindow("w", geom.R(0, 0, 200, 100), plainWindowOpt) {
		c.LayoutRow([]int{-1}, 0)
		c.TextBox(&buf, 0)
		c.SetFocus(c.LastID())
		c.EndWindow()
	}
	c.EndFrame()

	c.InputText("hi")
	step(c, frame)
	if buf != "hi" {
		t.Fatalf("buf = %q, want %q", buf, "hi")
	}
	if res&ResChange == 0 {
		t.Error("typed input did not report ResChange")
	}

	c.InputText("!")
	step(c, frame)
	if buf != "hi!" {
		t.Fatalf("buf = %q, want %q", buf, "hi!")
	}

	c.InputKeyDown(KeyBackspace)
	step(c, frame)
	if buf != "hi" {
		t.Fatalf("buf = %q after backspace, want %q", buf, "hi")
	}
	c.InputKeyUp(KeyBackspace)

	c.InputKeyDown(KeyReturn)
	step(c, frame)
	if res&ResSubmit == 0 {
		t.Error("return did not submit")
	}
	if c.Focus() != 0 {
		t.Error("return did not release focus")
	}
}

func TestTextBoxBackspaceRemovesWholeRune(t *testing.T) {
	c := newTestContext(t)
	buf := "héllo"
	frame := func(c *Context) {
		if c.BeginWindow("w", geom.R(0, 0, 200, 100), plainWindowOpt) {
			c.LayoutRow([]int{-1}, 0)
			c.TextBox(&buf, 0)
			c.SetFocus(c.LastID())
			c.EndWindow()
		}
	}
	step(c, frame)
	for i := 0; i < 4; i++ {
		c.InputKeyDown(KeyBackspace)
		step(c, frame)
		c.InputKeyUp(KeyBackspace)
	}
	if buf != "h" {
		t.Errorf("buf = %q after four backspaces, want %q", buf, "h")
	}
}

func TestTextBoxRespectsLimit(t *testing.T) {
	c, err := New(Config{Measurer: fixedMeasurer{w: 4, h: 8}, TextLimit: 4})
	if err != nil {
		t.Fatal(err)
	}
	buf := ""
	frame := func(c *Context) {
		if c.BeginWindow("w", geom.R(0, 0, 200, 100), plainWindowOpt) {
			c.LayoutRow([]int{-1}, 0)
			c.TextBox(&buf, 0)
			c.SetFocus(c.LastID())
			c.EndWindow()
		}
	}
	step(c, frame)
	c.InputText("abcdefgh")
	step(c, frame)
	if buf != "abcd" {
		t.Errorf("buf = %q, want truncated to %q", buf, "abcd")
	}
}

func TestHeaderTogglesAnywhere(t *testing.T) {
	c := newTestContext(t)
	expanded := false
	var rect geom.Rect
	frame := func(c *Context) {
		if c.BeginWindow("w", geom.R(0, 0, 200, 100), plainWindowOpt) {
			c.Header("section", &expanded)
			rect = c.LastRect()
			c.EndWindow()
		}
	}
	step(c, frame)
	// Click near the right end, far from the disclosure icon.
	click(c, geom.V(rect.X+rect.W-10, rect.Y+rect.H/2), frame)
	if !expanded {
		t.Fatal("click on header body did not expand it")
	}
}

func TestTreeNodeTogglesOnIconOnly(t *testing.T) {
	c := newTestContext(t)
	expanded := false
	var rect geom.Rect
	frame := func(c *Context) {
		if c.BeginWindow("w", geom.R(0, 0, 200, 100), plainWindowOpt) {
			c.TreeNode("node", &expanded, 0)
			rect = c.LastRect()
			c.EndWindow()
		}
	}
	step(c, frame)
	// A click on the label area selects but does not toggle.
	click(c, geom.V(rect.X+rect.W-10, rect.Y+rect.H/2), frame)
	if expanded {
		t.Fatal("click outside the icon toggled the tree node")
	}
	// A click on the icon square toggles.
	click(c, geom.V(rect.X+rect.H/2, rect.Y+rect.H/2), frame)
	if !expanded {
		t.Fatal("click on the icon did not toggle the tree node")
	}
}

func TestNoInteractControlStaysInert(t *testing.T) {
	c := newTestContext(t)
	var res Result
	var rect geom.Rect
	frame := func(c *Context) {
		if c.BeginWindow("w", geom.R(0, 0, 200, 100), plainWindowOpt) {
			c.LayoutRow([]int{-1}, 0)
			res = c.ButtonEx("btn", IconNone, OptNoInteract)
			rect = c.LastRect()
			c.EndWindow()
		}
	}
	step(c, frame)
	click(c, geom.V(rect.X+rect.W/2, rect.Y+rect.H/2), frame)
	if res != 0 {
		t.Errorf("inert button reported %v", res)
	}
	if c.Hover() != 0 {
		t.Error("inert button took hover")
	}
}

func TestTwoCheckboxesSameLabelStayDistinct(t *testing.T) {
	c := newTestContext(t)
	var a, b bool
	var rectA geom.Rect
	frame := func(c *Context) {
		if c.BeginWindow("w", geom.R(0, 0, 200, 100), plainWindowOpt) {
			c.LayoutRow([]int{-1}, 0)
			c.Checkbox("same", &a)
			rectA = c.LastRect()
			c.Checkbox("same", &b)
			c.EndWindow()
		}
	}
	step(c, frame)
	click(c, geom.V(rectA.X+5, rectA.Y+rectA.H/2), frame)
	if !a {
		t.Fatal("first checkbox did not toggle")
	}
	if b {
		t.Fatal("second checkbox toggled from a click on the first")
	}
}
