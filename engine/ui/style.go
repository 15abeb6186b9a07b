package ui

import (
	"github.com/thicketui/thicket/engine/colors"
	"github.com/thicketui/thicket/engine/geom"
)

// ColorID names a slot in the style palette.
type ColorID int

const (
	ColorText ColorID = iota
	ColorBorder
	ColorWindowBG
	ColorTitleBG
	ColorTitleText
	ColorPanelBG
	ColorButton
	ColorButtonHover
	ColorButtonFocus
	ColorBase
	ColorBaseHover
	ColorBaseFocus
	ColorScrollBase
	ColorScrollThumb
	colorCount
)

// Style holds every metric and color the engine reads while laying out and
// drawing. All metrics are pixels; a terminal backend sets them in cells.
type Style struct {
	Font Font
	// Size is the default control size used when a layout slot is zero.
	Size          geom.Vec2
	Padding       int
	Spacing       int
	Indent        int
	TitleHeight   int
	ScrollbarSize int
	ThumbSize     int
	Colors        [colorCount]colors.Color
}

// DefaultStyle returns the built-in dark theme.
func DefaultStyle() *Style {
	return &Style{
		Size:          geom.V(68, 10),
		Padding:       5,
		Spacing:       4,
		Indent:        24,
		TitleHeight:   24,
		ScrollbarSize: 12,
		ThumbSize:     8,
		Colors: [colorCount]colors.Color{
			ColorText:        {R: 230, G: 230, B: 230, A: 255},
			ColorBorder:      {R: 25, G: 25, B: 25, A: 255},
			ColorWindowBG:    {R: 50, G: 50, B: 50, A: 255},
			ColorTitleBG:     {R: 25, G: 25, B: 25, A: 255},
			ColorTitleText:   {R: 240, G: 240, B: 240, A: 255},
			ColorPanelBG:     {},
			ColorButton:      {R: 75, G: 75, B: 75, A: 255},
			ColorButtonHover: {R: 95, G: 95, B: 95, A: 255},
			ColorButtonFocus: {R: 115, G: 115, B: 115, A: 255},
			ColorBase:        {R: 30, G: 30, B: 30, A: 255},
			ColorBaseHover:   {R: 35, G: 35, B: 35, A: 255},
			ColorBaseFocus:   {R: 40, G: 40, B: 40, A: 255},
			ColorScrollBase:  {R: 43, G: 43, B: 43, A: 255},
			ColorScrollThumb: {R: 30, G: 30, B: 30, A: 255},
		},
	}
}
