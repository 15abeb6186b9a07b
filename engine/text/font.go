// Package text rasterizes TrueType fonts into CPU-side glyph atlases and
// answers the pixel measurements the ui package needs. It holds no GPU
// state: a renderer uploads Font.Atlas once and draws quads from the glyph
// table.
package text

import (
	"fmt"
	"image"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/thicketui/thicket/engine/ui"
)

// Glyph locates one rune in the atlas and carries its layout metrics in
// pixels.
type Glyph struct {
	Rune     rune
	Advance  int
	BearingX int
	// BearingY is the distance from the baseline up to the glyph top.
	BearingY int
	W, H     int
	// Atlas pixel rect of the rendered glyph.
	AX, AY int
}

// Font is a rasterized face at one pixel size.
type Font struct {
	SizePx  int
	Ascent  int
	Descent int
	// LineHeight is the baseline-to-baseline distance.
	LineHeight int
	Glyphs     map[rune]Glyph
	// Atlas holds white glyphs with alpha coverage on a transparent
	// background.
	Atlas *image.RGBA

	face font.Face
}

const (
	runeFirst = 32
	runeLast  = 126

	atlasPad       = 1
	atlasSizeStart = 256
	atlasSizeMax   = 4096
)

// LoadTTF parses TrueType data and rasterizes the printable ASCII range at
// sizePx.
func LoadTTF(data []byte, sizePx int) (*Font, error) {
	ft, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(ft, &opentype.FaceOptions{
		Size: float64(sizePx), DPI: 72, Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("new face: %w", err)
	}

	m := face.Metrics()
	f := &Font{
		SizePx:     sizePx,
		Ascent:     m.Ascent.Round(),
		Descent:    -m.Descent.Round(),
		LineHeight: m.Height.Round(),
		Glyphs:     make(map[rune]Glyph, runeLast-runeFirst+1),
		face:       face,
	}

	type meas struct {
		r      rune
		w, h   int
		adv    int
		bx, by int
	}
	measure := make([]meas, 0, runeLast-runeFirst+1)
	for r := rune(runeFirst); r <= runeLast; r++ {
		br, adv, ok := face.GlyphBounds(r)
		if !ok {
			continue
		}
		measure = append(measure, meas{
			r:   r,
			w:   (br.Max.X - br.Min.X).Ceil(),
			h:   (br.Max.Y - br.Min.Y).Ceil(),
			adv: adv.Round(),
			bx:  br.Min.X.Round(),
			by:  -br.Min.Y.Round(),
		})
	}

	// Shelf-pack into the smallest power-of-two square that fits.
	size := atlasSizeStart
	var pos map[rune]image.Point
	for {
		x, y, rowH := atlasPad, atlasPad, 0
		fits := true
		pos = make(map[rune]image.Point, len(measure))
		for _, g := range measure {
			if g.w == 0 || g.h == 0 {
				continue
			}
			if x+g.w+atlasPad > size {
				x = atlasPad
				y += rowH + atlasPad
				rowH = 0
			}
			if y+g.h+atlasPad > size {
				fits = false
				break
			}
			pos[g.r] = image.Pt(x, y)
			x += g.w + atlasPad
			if g.h > rowH {
				rowH = g.h
			}
		}
		if fits {
			break
		}
		size *= 2
		if size > atlasSizeMax {
			return nil, fmt.Errorf("font atlas exceeds %dpx", atlasSizeMax)
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	drawer := &font.Drawer{Dst: dst, Src: image.White, Face: face}
	for _, g := range measure {
		gl := Glyph{
			Rune: g.r, Advance: g.adv,
			BearingX: g.bx, BearingY: g.by,
			W: g.w, H: g.h,
		}
		if g.w > 0 && g.h > 0 {
			p := pos[g.r]
			drawer.Dot = fixed.P(p.X-g.bx, p.Y+g.by)
			drawer.DrawString(string(g.r))
			gl.AX, gl.AY = p.X, p.Y
		}
		f.Glyphs[g.r] = gl
	}
	f.Atlas = dst
	return f, nil
}

// LoadTTFFile is LoadTTF over a file on disk.
func LoadTTFFile(path string, sizePx int) (*Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font: %w", err)
	}
	return LoadTTF(data, sizePx)
}

// Close releases the underlying face.
func (f *Font) Close() error {
	if f.face == nil {
		return nil
	}
	err := f.face.Close()
	f.face = nil
	return err
}

// MeasureWidth returns the advance width of s in pixels. Runes outside the
// rasterized range fall back to the '?' glyph, matching what a renderer
// would draw.
func (f *Font) MeasureWidth(s string) int {
	w := 0
	for _, r := range s {
		g, ok := f.Glyphs[r]
		if !ok {
			g = f.Glyphs['?']
		}
		w += g.Advance
	}
	return w
}

// Bank maps ui.Font handles to loaded fonts and implements ui.TextMeasurer.
// Handle 0 is the first font added.
type Bank struct {
	fonts []*Font
}

// Add registers f and returns its handle.
func (b *Bank) Add(f *Font) ui.Font {
	b.fonts = append(b.fonts, f)
	return ui.Font(len(b.fonts) - 1)
}

// Get returns the font behind a handle. Unknown handles resolve to the
// first font so a stale handle degrades instead of crashing the frame.
func (b *Bank) Get(h ui.Font) *Font {
	if int(h) < 0 || int(h) >= len(b.fonts) {
		return b.fonts[0]
	}
	return b.fonts[h]
}

func (b *Bank) TextWidth(h ui.Font, s string) int {
	return b.Get(h).MeasureWidth(s)
}

func (b *Bank) TextHeight(h ui.Font) int {
	return b.Get(h).LineHeight
}
