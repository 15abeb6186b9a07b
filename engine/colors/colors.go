// Package colors defines the 8-bit RGBA color type used throughout the
// engine's command stream and styles.
package colors

import (
	"fmt"
	"strings"
)

type Color struct {
	R, G, B, A uint8
}

var (
	White    = Color{255, 255, 255, 255}
	Black    = Color{0, 0, 0, 255}
	Red      = Color{255, 0, 0, 255}
	Green    = Color{0, 255, 0, 255}
	Blue     = Color{0, 0, 255, 255}
	Yellow   = Color{255, 255, 0, 255}
	Cyan     = Color{0, 255, 255, 255}
	Magenta  = Color{255, 0, 255, 255}
	Gray     = Color{128, 128, 128, 255}
	DarkGray = Color{20, 26, 31, 255}
)

// RGBA builds a color from explicit components.
func RGBA(r, g, b, a uint8) Color { return Color{r, g, b, a} }

func (c Color) WithAlpha(a uint8) Color {
	c.A = a
	return c
}

// Floats converts to normalized [0,1] components for GPU submission.
func (c Color) Floats() (r, g, b, a float32) {
	return float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255, float32(c.A) / 255
}

// Hex renders the color as "#rrggbbaa".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// ParseHex reads "#rgb", "#rrggbb" or "#rrggbbaa".
func ParseHex(s string) (Color, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	hex := func(b byte) (uint8, bool) {
		switch {
		case b >= '0' && b <= '9':
			return b - '0', true
		case b >= 'a' && b <= 'f':
			return b - 'a' + 10, true
		case b >= 'A' && b <= 'F':
			return b - 'A' + 10, true
		}
		return 0, false
	}
	pair := func(i int) (uint8, bool) {
		hi, ok1 := hex(s[i])
		lo, ok2 := hex(s[i+1])
		return hi<<4 | lo, ok1 && ok2
	}
	switch len(s) {
	case 3:
		var out [3]uint8
		for i := 0; i < 3; i++ {
			v, ok := hex(s[i])
			if !ok {
				return Color{}, fmt.Errorf("colors: invalid hex color %q", s)
			}
			out[i] = v<<4 | v
		}
		return Color{out[0], out[1], out[2], 255}, nil
	case 6, 8:
		var out [4]uint8
		out[3] = 255
		for i := 0; i*2 < len(s); i++ {
			v, ok := pair(i * 2)
			if !ok {
				return Color{}, fmt.Errorf("colors: invalid hex color %q", s)
			}
			out[i] = v
		}
		return Color{out[0], out[1], out[2], out[3]}, nil
	}
	return Color{}, fmt.Errorf("colors: invalid hex color %q", s)
}
