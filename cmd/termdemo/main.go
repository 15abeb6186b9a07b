// Command termdemo runs the widget showcase inside the terminal on the
// cell-grid backend, driven by bubbletea.
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/thicketui/thicket/engine/colors"
	"github.com/thicketui/thicket/engine/geom"
	"github.com/thicketui/thicket/engine/gfx/termgrid"
	"github.com/thicketui/thicket/engine/ui"
)

type model struct {
	ctx  *ui.Context
	grid *termgrid.Grid

	checks [2]bool
	slider float64
	input  string
	info   bool
	lines  []string
}

func newModel() (*model, error) {
	ctx, err := ui.New(ui.Config{
		Measurer: termgrid.CellMeasurer{},
		Style:    termgrid.TermStyle(),
	})
	if err != nil {
		return nil, err
	}
	m := &model{ctx: ctx, grid: termgrid.NewGrid(80, 24), info: true}
	m.slider = 0.3
	return m, nil
}

func (m *model) Init() tea.Cmd { return nil }

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.grid.Resize(msg.Width, msg.Height)
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyBackspace:
			m.ctx.InputKeyDown(ui.KeyBackspace)
			m.ctx.InputKeyUp(ui.KeyBackspace)
		case tea.KeyEnter:
			m.ctx.InputKeyDown(ui.KeyReturn)
			m.ctx.InputKeyUp(ui.KeyReturn)
		case tea.KeySpace:
			m.ctx.InputText(" ")
		case tea.KeyRunes:
			m.ctx.InputText(string(msg.Runes))
		}
	case tea.MouseMsg:
		switch msg.Action {
		case tea.MouseActionMotion:
			m.ctx.InputMouseMove(msg.X, msg.Y)
		case tea.MouseActionPress:
			switch msg.Button {
			case tea.MouseButtonLeft:
				m.ctx.InputMouseDown(msg.X, msg.Y, ui.MouseLeft)
			case tea.MouseButtonWheelUp:
				m.ctx.InputScroll(0, -1)
			case tea.MouseButtonWheelDown:
				m.ctx.InputScroll(0, 1)
			}
		case tea.MouseActionRelease:
			m.ctx.InputMouseUp(msg.X, msg.Y, ui.MouseLeft)
		}
	}
	return m, nil
}

func (m *model) View() string {
	c := m.ctx
	c.BeginFrame()
	m.frame(c)
	c.EndFrame()
	m.grid.Render(c, colors.DarkGray)
	return m.grid.View()
}

func (m *model) frame(c *ui.Context) {
	if c.BeginWindow("Terminal Demo", geom.R(2, 1, 44, 18), 0) {
		if c.Header("Info", &m.info)&ui.ResActive != 0 {
			c.LayoutRow([]int{10, -1}, 0)
			c.Label("Mouse:")
			p := c.MousePos()
			c.Label(fmt.Sprintf("%d, %d", p.X, p.Y))
		}

		c.LayoutRow([]int{-22, -1}, 0)
		if c.Button("Say hi")&ui.ResSubmit != 0 {
			m.lines = append(m.lines, "hi")
		}
		if c.Button("Clear")&ui.ResSubmit != 0 {
			m.lines = m.lines[:0]
		}

		c.LayoutRow([]int{-1}, 0)
		c.Checkbox("First check", &m.checks[0])
		c.Checkbox("Second check", &m.checks[1])
		ui.Slider(c, &m.slider, 0, 1, 0.1, "%.1f", ui.OptAlignCenter)

		if c.TextBox(&m.input, 0)&ui.ResSubmit != 0 && m.input != "" {
			m.lines = append(m.lines, m.input)
			m.input = ""
		}

		c.LayoutRow([]int{-1}, -1)
		c.BeginPanel("lines")
		c.LayoutRow([]int{-1}, 0)
		for _, l := range m.lines {
			c.Label(l)
		}
		c.EndPanel()

		c.EndWindow()
	}
}

func main() {
	m, err := newModel()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
