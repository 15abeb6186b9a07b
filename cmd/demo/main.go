// Command demo opens a GLFW window and runs the widget showcase on the
// OpenGL backend.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/thicketui/thicket/engine/colors"
	"github.com/thicketui/thicket/engine/geom"
	"github.com/thicketui/thicket/engine/gfx/glrender"
	"github.com/thicketui/thicket/engine/platform"
	"github.com/thicketui/thicket/engine/text"
	"github.com/thicketui/thicket/engine/ui"
)

func main() {
	var (
		fontPath string
		fontSize int
		theme    string
		width    int
		height   int
		vsync    bool
		verbose  bool
	)

	root := &cobra.Command{
		Use:          "demo",
		Short:        "Widget showcase on the OpenGL backend",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			level := log.InfoLevel
			if verbose {
				level = log.DebugLevel
			}
			logger := log.NewWithOptions(os.Stderr, log.Options{
				ReportTimestamp: true,
				TimeFormat:      "15:04:05.00",
				Level:           level,
			})
			return run(logger, fontPath, fontSize, theme, width, height, vsync)
		},
	}
	root.Flags().StringVar(&fontPath, "font", "assets/fonts/RobotoMono.ttf", "TTF font file")
	root.Flags().IntVar(&fontSize, "font-size", 14, "font pixel size")
	root.Flags().StringVar(&theme, "theme", "", "TOML theme file")
	root.Flags().IntVar(&width, "width", 1024, "window width")
	root.Flags().IntVar(&height, "height", 768, "window height")
	root.Flags().BoolVar(&vsync, "vsync", true, "enable vsync")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(logger *log.Logger, fontPath string, fontSize int, theme string, width, height int, vsync bool) error {
	font, err := text.LoadTTFFile(fontPath, fontSize)
	if err != nil {
		return err
	}
	defer font.Close()

	bank := &text.Bank{}
	handle := bank.Add(font)

	var style *ui.Style
	if theme != "" {
		style, err = ui.LoadTheme(theme)
		if err != nil {
			return err
		}
		logger.Debug("loaded theme", "path", theme)
	}

	ctx, err := ui.New(ui.Config{Measurer: bank, Style: style})
	if err != nil {
		return err
	}
	ctx.Style.Font = handle

	win, err := platform.NewWindow(platform.WindowConfig{
		Title: "thicket demo", Width: width, Height: height, VSync: vsync,
	}, ctx)
	if err != nil {
		return err
	}
	defer win.Terminate()

	renderer, err := glrender.New(bank, 0)
	if err != nil {
		return err
	}
	defer renderer.Shutdown()

	logger.Info("running", "width", width, "height", height)

	d := newDemoState()
	last := time.Now()
	for !win.ShouldClose() {
		win.PollEvents()

		ctx.BeginFrame()
		d.frame(ctx)
		ctx.EndFrame()

		fbW, fbH := win.FramebufferSize()
		renderer.Clear(colors.Color{R: d.bg[0], G: d.bg[1], B: d.bg[2], A: 255})
		renderer.Render(ctx, fbW, fbH)
		win.SwapBuffers()

		if d.tick%600 == 0 {
			st := ctx.Stats()
			rs := renderer.Stats()
			logger.Debug("frame",
				"commands", st.Commands,
				"cmdBytes", st.CommandBytes,
				"quads", rs.QuadCount,
				"draws", rs.DrawCalls,
				"dt", time.Since(last))
		}
		last = time.Now()
		d.tick++
	}
	return nil
}

// demoState is the retained side of the showcase: widget values live here,
// the windows are re-described every frame.
type demoState struct {
	tick     int
	bg       [3]uint8
	checks   [3]bool
	slider   float64
	number   float64
	input    string
	logBuf   string
	logNew   bool
	sections [5]bool
	treeOpen [5]bool
}

func newDemoState() *demoState {
	d := &demoState{bg: [3]uint8{90, 95, 100}}
	d.checks[1] = true
	d.sections[0] = true
	d.slider = 0.5
	return d
}

func (d *demoState) log(s string) {
	if d.logBuf != "" {
		d.logBuf += "\n"
	}
	d.logBuf += s
	d.logNew = true
}

func (d *demoState) frame(c *ui.Context) {
	d.demoWindow(c)
	d.logWindow(c)
}

func (d *demoState) demoWindow(c *ui.Context) {
	if !c.BeginWindow("Demo Window", geom.R(40, 40, 300, 450), 0) {
		return
	}
	defer c.EndWindow()

	if c.Header("Window Info", &d.sections[0])&ui.ResActive != 0 {
		cnt := c.CurrentContainer()
		c.LayoutRow([]int{54, -1}, 0)
		c.Label("Position:")
		c.Label(fmt.Sprintf("%d, %d", cnt.Rect.X, cnt.Rect.Y))
		c.Label("Size:")
		c.Label(fmt.Sprintf("%d, %d", cnt.Rect.W, cnt.Rect.H))
	}

	if c.Header("Test Buttons", &d.sections[1])&ui.ResActive != 0 {
		c.LayoutRow([]int{86, -110, -1}, 0)
		c.Label("Test buttons 1:")
		if c.Button("Button 1")&ui.ResSubmit != 0 {
			d.log("Pressed button 1")
		}
		if c.Button("Button 2")&ui.ResSubmit != 0 {
			d.log("Pressed button 2")
		}
		c.Label("Test buttons 2:")
		if c.Button("Button 3")&ui.ResSubmit != 0 {
			d.log("Pressed button 3")
		}
		if c.Button("Popup")&ui.ResSubmit != 0 {
			c.OpenPopup("Test Popup")
		}
		if c.BeginPopup("Test Popup") {
			if c.Button("Hello")&ui.ResSubmit != 0 {
				d.log("Hello")
			}
			if c.Button("World")&ui.ResSubmit != 0 {
				d.log("World")
			}
			c.EndPopup()
		}
	}

	if c.Header("Tree and Text", &d.sections[2])&ui.ResActive != 0 {
		c.LayoutRow([]int{140, -1}, 0)
		c.LayoutBeginColumn()
		d.tree(c)
		c.LayoutEndColumn()

		c.LayoutBeginColumn()
		c.LayoutRow([]int{-1}, 0)
		c.Text("Lorem ipsum dolor sit amet, consectetur adipiscing " +
			"elit. Maecenas lacinia, sem eu lacinia molestie, mi risus faucibus " +
			"ipsum, eu varius magna felis a nulla.")
		c.LayoutEndColumn()
	}

	if c.Header("Background Color", &d.sections[3])&ui.ResActive != 0 {
		c.LayoutRow([]int{-78, -1}, 74)
		c.LayoutBeginColumn()
		c.LayoutRow([]int{46, -1}, 0)
		c.Label("Red:")
		ui.Slider(c, &d.bg[0], 0, 255, 1, "%d", ui.OptAlignCenter)
		c.Label("Green:")
		ui.Slider(c, &d.bg[1], 0, 255, 1, "%d", ui.OptAlignCenter)
		c.Label("Blue:")
		ui.Slider(c, &d.bg[2], 0, 255, 1, "%d", ui.OptAlignCenter)
		c.LayoutEndColumn()
		r := c.LayoutNext()
		c.DrawRect(r, colors.Color{R: d.bg[0], G: d.bg[1], B: d.bg[2], A: 255})
		c.DrawText(c.Style.Font, fmt.Sprintf("#%02X%02X%02X", d.bg[0], d.bg[1], d.bg[2]),
			geom.V(r.X+c.Style.Padding, r.Y+c.Style.Padding), colors.White)
	}

	if c.Header("Values", &d.sections[4])&ui.ResActive != 0 {
		c.LayoutRow([]int{86, -1}, 0)
		c.Label("Checkboxes:")
		c.Checkbox("Check 1", &d.checks[0])
		c.Label("")
		c.Checkbox("Check 2", &d.checks[1])
		c.Label("Slider:")
		if ui.Slider(c, &d.slider, 0, 1, 0.05, "%.2f", ui.OptAlignCenter)&ui.ResChange != 0 {
			d.log(fmt.Sprintf("Slider: %.2f", d.slider))
		}
		c.Label("Number:")
		ui.NumberFieldEx(c, &d.number, 0.5, "%.1f", 0)
	}
}

func (d *demoState) tree(c *ui.Context) {
	if c.TreeNode("Test 1", &d.treeOpen[0], 0)&ui.ResActive != 0 {
		if c.TreeNode("Test 1a", &d.treeOpen[1], 1)&ui.ResActive != 0 {
			c.Label("Hello")
			c.Label("World")
		}
		if c.TreeNode("Test 1b", &d.treeOpen[2], 1)&ui.ResActive != 0 {
			if c.Button("Button 4")&ui.ResSubmit != 0 {
				d.log("Pressed button 4")
			}
		}
	}
	if c.TreeNode("Test 2", &d.treeOpen[3], 0)&ui.ResActive != 0 {
		c.Label("Botanical")
	}
	if c.TreeNode("Test 3", &d.treeOpen[4], 0)&ui.ResActive != 0 {
		c.Checkbox("Check 3", &d.checks[2])
	}
}

func (d *demoState) logWindow(c *ui.Context) {
	if !c.BeginWindow("Log Window", geom.R(360, 40, 340, 200), 0) {
		return
	}
	defer c.EndWindow()

	c.LayoutRow([]int{-1}, -25)
	c.BeginPanel("Log Output")
	panel := c.CurrentContainer()
	c.LayoutRow([]int{-1}, -1)
	c.Text(d.logBuf)
	c.EndPanel()
	if d.logNew {
		panel.Scroll.Y = panel.ContentSize.Y
		d.logNew = false
	}

	c.LayoutRow([]int{-70, -1}, 0)
	submitted := false
	if c.TextBox(&d.input, 0)&ui.ResSubmit != 0 {
		c.SetFocus(c.LastID())
		submitted = true
	}
	if c.Button("Submit")&ui.ResSubmit != 0 {
		submitted = true
	}
	if submitted && d.input != "" {
		d.log(d.input)
		d.input = ""
	}
}
