package ui

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/thicketui/thicket/engine/colors"
)

// themeDoc mirrors the TOML theme file. Pointer fields distinguish "absent"
// from zero so a theme can override metrics selectively.
type themeDoc struct {
	Padding       *int `toml:"padding"`
	Spacing       *int `toml:"spacing"`
	Indent        *int `toml:"indent"`
	TitleHeight   *int `toml:"title_height"`
	ScrollbarSize *int `toml:"scrollbar_size"`
	ThumbSize     *int `toml:"thumb_size"`
	ControlWidth  *int `toml:"control_width"`
	ControlHeight *int `toml:"control_height"`

	Colors map[string]string `toml:"colors"`
}

var themeColorNames = map[string]ColorID{
	"text":         ColorText,
	"border":       ColorBorder,
	"window_bg":    ColorWindowBG,
	"title_bg":     ColorTitleBG,
	"title_text":   ColorTitleText,
	"panel_bg":     ColorPanelBG,
	"button":       ColorButton,
	"button_hover": ColorButtonHover,
	"button_focus": ColorButtonFocus,
	"base":         ColorBase,
	"base_hover":   ColorBaseHover,
	"base_focus":   ColorBaseFocus,
	"scroll_base":  ColorScrollBase,
	"scroll_thumb": ColorScrollThumb,
}

// ParseTheme decodes a TOML theme over a copy of the default style. Metrics
// and colors not named in the document keep their defaults; an unknown
// color name is an error rather than a silent drop.
func ParseTheme(data []byte) (*Style, error) {
	var doc themeDoc
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse theme: %w", err)
	}
	style := *DefaultStyle()

	setInt := func(dst *int, src *int) {
		if src != nil {
			*dst = *src
		}
	}
	setInt(&style.Padding, doc.Padding)
	setInt(&style.Spacing, doc.Spacing)
	setInt(&style.Indent, doc.Indent)
	setInt(&style.TitleHeight, doc.TitleHeight)
	setInt(&style.ScrollbarSize, doc.ScrollbarSize)
	setInt(&style.ThumbSize, doc.ThumbSize)
	setInt(&style.Size.X, doc.ControlWidth)
	setInt(&style.Size.Y, doc.ControlHeight)

	for name, hex := range doc.Colors {
		id, ok := themeColorNames[name]
		if !ok {
			return nil, fmt.Errorf("parse theme: unknown color %q", name)
		}
		col, err := colors.ParseHex(hex)
		if err != nil {
			return nil, fmt.Errorf("parse theme: color %q: %w", name, err)
		}
		style.Colors[id] = col
	}
	return &style, nil
}

// LoadTheme reads and parses a TOML theme file.
func LoadTheme(path string) (*Style, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load theme %s: %w", path, err)
	}
	return ParseTheme(data)
}
