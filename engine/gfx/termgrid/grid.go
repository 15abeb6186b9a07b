// Package termgrid renders a ui command stream into a grid of terminal
// cells. Style metrics are interpreted as cells instead of pixels, so a
// Context driving this backend should use TermStyle and a CellMeasurer.
package termgrid

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/thicketui/thicket/engine/colors"
	"github.com/thicketui/thicket/engine/geom"
	"github.com/thicketui/thicket/engine/ui"
)

// CellMeasurer measures text in terminal cells, wide runes counting double.
type CellMeasurer struct{}

func (CellMeasurer) TextWidth(_ ui.Font, s string) int { return runewidth.StringWidth(s) }
func (CellMeasurer) TextHeight(_ ui.Font) int          { return 1 }

// TermStyle returns a ui style with all metrics in cells.
func TermStyle() *ui.Style {
	s := ui.DefaultStyle()
	s.Size = geom.V(10, 1)
	s.Padding = 0
	s.Spacing = 0
	s.Indent = 2
	s.TitleHeight = 1
	s.ScrollbarSize = 1
	s.ThumbSize = 1
	return s
}

// Cell is one terminal character cell.
type Cell struct {
	Rune rune
	FG   colors.Color
	BG   colors.Color
}

// Grid rasterizes commands into a W by H cell matrix and serializes it with
// ANSI styling for a terminal program's view.
type Grid struct {
	W, H  int
	cells []Cell
	clip  geom.Rect
}

// NewGrid allocates a grid of the given size in cells.
func NewGrid(w, h int) *Grid {
	return &Grid{W: w, H: h, cells: make([]Cell, w*h)}
}

// Resize reallocates the grid. Contents are discarded.
func (g *Grid) Resize(w, h int) {
	g.W, g.H = w, h
	g.cells = make([]Cell, w*h)
}

// Cell returns the cell at x,y, or a zero Cell out of bounds.
func (g *Grid) Cell(x, y int) Cell {
	if x < 0 || y < 0 || x >= g.W || y >= g.H {
		return Cell{}
	}
	return g.cells[y*g.W+x]
}

var iconRunes = map[ui.IconID]rune{
	ui.IconClose:     'x',
	ui.IconCheck:     'x',
	ui.IconCollapsed: '+',
	ui.IconExpanded:  '-',
}

// Render clears the grid and replays ctx's finished frame into it.
func (g *Grid) Render(ctx *ui.Context, background colors.Color) {
	for i := range g.cells {
		g.cells[i] = Cell{Rune: ' ', BG: background}
	}
	g.clip = geom.R(0, 0, g.W, g.H)

	it := ctx.Commands()
	for cmd, ok := it.Next(); ok; cmd, ok = it.Next() {
		switch cmd.Kind {
		case ui.CommandClip:
			g.clip = cmd.Rect.Intersect(geom.R(0, 0, g.W, g.H))
		case ui.CommandRect:
			g.fillRect(cmd.Rect, cmd.Color)
		case ui.CommandText:
			g.writeText(cmd.Pos, cmd.Text, cmd.Color)
		case ui.CommandIcon:
			r, ok := iconRunes[cmd.Icon]
			if !ok {
				continue
			}
			pos := geom.V(cmd.Rect.X+cmd.Rect.W/2, cmd.Rect.Y+cmd.Rect.H/2)
			g.writeText(pos, string(r), cmd.Color)
		}
	}
}

func (g *Grid) fillRect(r geom.Rect, col colors.Color) {
	if col.A == 0 {
		return
	}
	r = r.Intersect(g.clip)
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			c := &g.cells[y*g.W+x]
			c.Rune = ' '
			c.BG = col
		}
	}
}

func (g *Grid) writeText(pos geom.Vec2, s string, col colors.Color) {
	x, y := pos.X, pos.Y
	if y < g.clip.Y || y >= g.clip.Y+g.clip.H {
		return
	}
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if x >= g.clip.X && x+w <= g.clip.X+g.clip.W && x+w <= g.W {
			c := &g.cells[y*g.W+x]
			c.Rune = r
			c.FG = col
			// A wide rune's second column keeps its background but must
			// not render a spurious character.
			for i := 1; i < w; i++ {
				g.cells[y*g.W+x+i].Rune = 0
			}
		}
		x += w
	}
}

func termColor(c colors.Color) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}

// View serializes the grid with ANSI styling, one line per row, suitable as
// a bubbletea model's View output.
func (g *Grid) View() string {
	var b strings.Builder
	for y := 0; y < g.H; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		// Runs of identically styled cells share one escape sequence.
		runStart := 0
		var run strings.Builder
		style := func(x int) (colors.Color, colors.Color) {
			c := g.cells[y*g.W+x]
			return c.FG, c.BG
		}
		flush := func() {
			if run.Len() == 0 {
				return
			}
			fg, bg := style(runStart)
			st := lipgloss.NewStyle().Foreground(termColor(fg)).Background(termColor(bg))
			b.WriteString(st.Render(run.String()))
			run.Reset()
		}
		for x := 0; x < g.W; x++ {
			c := g.cells[y*g.W+x]
			if c.Rune == 0 {
				continue
			}
			if run.Len() > 0 {
				pfg, pbg := style(runStart)
				if c.FG != pfg || c.BG != pbg {
					flush()
					runStart = x
				}
			} else {
				runStart = x
			}
			run.WriteRune(c.Rune)
		}
		flush()
	}
	return b.String()
}
