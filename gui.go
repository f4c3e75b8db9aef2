package svgstock

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"gioui.org/app"
	"gioui.org/font/gofont"
	"gioui.org/io/key"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"github.com/zulmujib/svgstock/utils"
)

type (
	C = layout.Context
	D = layout.Dimensions
)

const (
	windowWidth  = 560
	windowHeight = 760
)

// Gui is the graphical front end: folder and platform selection on
// top, the live batch progress and log below. The batch runs on a
// separate goroutine so the window stays responsive; every frame
// renders the latest reporter snapshot.
type Gui struct {
	theme *material.Theme

	folder    widget.Editor
	checks    []widget.Bool
	scale     widget.Enum
	square    widget.Bool
	keepLoose widget.Bool

	selectAll widget.Clickable
	clearAll  widget.Clickable
	startBtn  widget.Clickable
	stopBtn   widget.Clickable

	logList layout.List

	inkscapePath string
	runner       *Runner
	cancel       context.CancelFunc
	errMsg       string
}

// NewGui initializes the interface with the defaults collected from
// the command line.
func NewGui(opts Options) *Gui {
	g := &Gui{
		theme:        material.NewTheme(gofont.Collection()),
		checks:       make([]widget.Bool, len(Platforms)),
		inkscapePath: opts.InkscapePath,
	}
	g.folder.SingleLine = true
	g.folder.SetText(opts.Dir)
	g.scale.Value = strconv.Itoa(utils.Clamp(opts.Scale, 1, 10))
	g.square.Value = opts.Square
	g.keepLoose.Value = opts.KeepLoose
	g.logList.Axis = layout.Vertical
	g.logList.ScrollToEnd = true

	for i, p := range Platforms {
		for _, id := range opts.Platforms {
			if strings.EqualFold(id, p.ID) {
				g.checks[i].Value = true
			}
		}
	}
	return g
}

// Run opens the window and drives the Gio event loop until the window
// is closed. It must be called from a goroutine other than the one
// running app.Main.
func (g *Gui) Run() error {
	w := app.NewWindow(
		app.Title("SVG Converter for Microstock Platforms"),
		app.Size(unit.Dp(windowWidth), unit.Dp(windowHeight)),
	)

	var ops op.Ops
	for e := range w.Events() {
		switch e := e.(type) {
		case system.DestroyEvent:
			g.stopBatch()
			return e.Err
		case system.FrameEvent:
			gtx := layout.NewContext(&ops, e)
			g.update(w, gtx)
			g.layout(gtx)
			e.Frame(gtx.Ops)
		case key.Event:
			if e.Name == key.NameEscape {
				w.Perform(system.ActionClose)
			}
		}
	}
	return nil
}

// update processes the widget events of the current frame.
func (g *Gui) update(w *app.Window, gtx C) {
	if g.selectAll.Clicked() {
		for i := range g.checks {
			g.checks[i].Value = true
		}
	}
	if g.clearAll.Clicked() {
		for i := range g.checks {
			g.checks[i].Value = false
		}
	}
	if g.startBtn.Clicked() && !g.running() {
		g.startBatch(w)
	}
	if g.stopBtn.Clicked() {
		g.stopBatch()
	}
	if g.running() {
		// Keep the progress bar and log moving between results.
		w.Invalidate()
	}
}

// running reports whether a batch is currently executing.
func (g *Gui) running() bool {
	return g.runner != nil && g.runner.Reporter.Snapshot().Status == StatusRunning
}

// startBatch collects the widget state into Options and spawns the
// batch worker goroutine.
func (g *Gui) startBatch(w *app.Window) {
	opts := Options{
		Dir:          strings.TrimSpace(g.folder.Text()),
		Scale:        1,
		Square:       g.square.Value,
		KeepLoose:    g.keepLoose.Value,
		InkscapePath: g.inkscapePath,
	}
	if v, err := strconv.Atoi(g.scale.Value); err == nil {
		opts.Scale = v
	}
	for i, p := range Platforms {
		if g.checks[i].Value {
			opts.Platforms = append(opts.Platforms, p.ID)
		}
	}

	runner, err := NewRunner(opts)
	if err != nil {
		g.errMsg = err.Error()
		return
	}
	g.errMsg = ""
	g.runner = runner
	g.runner.OnResult = func(Result) { w.Invalidate() }

	ctx, cancel := context.WithCancel(context.Background())
	g.cancel = cancel

	go func() {
		defer cancel()
		if _, err := runner.Run(ctx); err != nil && ctx.Err() == nil {
			runner.Reporter.Logf("ERROR: %v", err)
		}
		w.Invalidate()
	}()
}

// stopBatch requests a cooperative cancellation of the running batch.
func (g *Gui) stopBatch() {
	if g.cancel != nil {
		g.cancel()
		g.cancel = nil
	}
}

// layout renders the whole window content.
func (g *Gui) layout(gtx C) D {
	th := g.theme
	inset := layout.UniformInset(unit.Dp(10))

	return inset.Layout(gtx, func(gtx C) D {
		return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
			layout.Rigid(func(gtx C) D {
				return material.H6(th, "SVG Converter for Microstock Platforms").Layout(gtx)
			}),
			layout.Rigid(g.spacer),
			layout.Rigid(func(gtx C) D {
				return material.Editor(th, &g.folder, "Folder with SVG files").Layout(gtx)
			}),
			layout.Rigid(g.spacer),
			layout.Rigid(g.layoutPlatforms),
			layout.Rigid(g.spacer),
			layout.Rigid(g.layoutScale),
			layout.Rigid(g.spacer),
			layout.Rigid(func(gtx C) D {
				return layout.Flex{Axis: layout.Horizontal}.Layout(gtx,
					layout.Rigid(material.CheckBox(th, &g.square, "Force 1:1 aspect ratio").Layout),
					layout.Rigid(g.hspacer),
					layout.Rigid(material.CheckBox(th, &g.keepLoose, "Keep files next to bundles").Layout),
				)
			}),
			layout.Rigid(g.spacer),
			layout.Rigid(g.layoutControls),
			layout.Rigid(g.spacer),
			layout.Rigid(g.layoutProgress),
			layout.Rigid(g.spacer),
			layout.Flexed(1, g.layoutLog),
		)
	})
}

// layoutPlatforms renders the platform checkboxes in two columns.
func (g *Gui) layoutPlatforms(gtx C) D {
	th := g.theme

	var rows []layout.FlexChild
	for i := 0; i < len(Platforms); i += 2 {
		i := i
		rows = append(rows, layout.Rigid(func(gtx C) D {
			return layout.Flex{Axis: layout.Horizontal}.Layout(gtx,
				layout.Flexed(1, material.CheckBox(th, &g.checks[i], platformLabel(Platforms[i])).Layout),
				layout.Flexed(1, func(gtx C) D {
					if i+1 >= len(Platforms) {
						return D{}
					}
					return material.CheckBox(th, &g.checks[i+1], platformLabel(Platforms[i+1])).Layout(gtx)
				}),
			)
		}))
	}
	rows = append(rows, layout.Rigid(func(gtx C) D {
		return layout.Flex{Axis: layout.Horizontal}.Layout(gtx,
			layout.Rigid(material.Button(th, &g.selectAll, "Select all").Layout),
			layout.Rigid(g.hspacer),
			layout.Rigid(material.Button(th, &g.clearAll, "Deselect all").Layout),
		)
	}))

	return layout.Flex{Axis: layout.Vertical}.Layout(gtx, rows...)
}

// platformLabel renders "Name (FMT + FMT)" the way the platform list
// is usually presented to contributors.
func platformLabel(p Platform) string {
	names := make([]string, 0, len(p.Formats))
	for _, f := range p.Formats {
		names = append(names, f.String())
	}
	label := fmt.Sprintf("%s (%s", p.Name, strings.Join(names, " + "))
	if p.Bundle {
		label += ", zipped"
	}
	return label + ")"
}

// layoutScale renders the 1x-10x resolution selector.
func (g *Gui) layoutScale(gtx C) D {
	th := g.theme

	row := func(from, to int) layout.FlexChild {
		return layout.Rigid(func(gtx C) D {
			var cols []layout.FlexChild
			for s := from; s <= to; s++ {
				key := strconv.Itoa(s)
				cols = append(cols, layout.Rigid(material.RadioButton(th, &g.scale, key, key+"x").Layout))
			}
			return layout.Flex{Axis: layout.Horizontal}.Layout(gtx, cols...)
		})
	}

	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(material.Body2(th, "Resolution scale:").Layout),
		row(1, 5),
		row(6, 10),
	)
}

// layoutControls renders the start/stop buttons and the error line.
func (g *Gui) layoutControls(gtx C) D {
	th := g.theme

	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(func(gtx C) D {
			return layout.Flex{Axis: layout.Horizontal}.Layout(gtx,
				layout.Rigid(material.Button(th, &g.startBtn, "Start conversion").Layout),
				layout.Rigid(g.hspacer),
				layout.Rigid(material.Button(th, &g.stopBtn, "Stop").Layout),
			)
		}),
		layout.Rigid(func(gtx C) D {
			if g.errMsg == "" {
				return D{}
			}
			return material.Body2(th, g.errMsg).Layout(gtx)
		}),
	)
}

// layoutProgress renders the progress bar with the counters.
func (g *Gui) layoutProgress(gtx C) D {
	th := g.theme

	var snap Snapshot
	if g.runner != nil {
		snap = g.runner.Reporter.Snapshot()
	}

	status := "Ready to start conversion"
	if snap.Status != StatusIdle {
		status = fmt.Sprintf("%s: %d/%d jobs, %d succeeded, %d failed",
			snap.Status, snap.Done, snap.Total, snap.Succeeded, snap.Failed)
	}

	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(material.ProgressBar(th, float32(snap.Progress())).Layout),
		layout.Rigid(material.Body2(th, status).Layout),
	)
}

// layoutLog renders the reporter log as a scrolling list.
func (g *Gui) layoutLog(gtx C) D {
	th := g.theme

	var lines []string
	if g.runner != nil {
		lines = g.runner.Reporter.Snapshot().Lines
	}

	return g.logList.Layout(gtx, len(lines), func(gtx C, i int) D {
		return material.Caption(th, lines[i]).Layout(gtx)
	})
}

// spacer adds uniform vertical breathing room between the sections.
func (g *Gui) spacer(gtx C) D {
	return layout.Spacer{Height: unit.Dp(8)}.Layout(gtx)
}

// hspacer adds horizontal spacing between adjacent controls.
func (g *Gui) hspacer(gtx C) D {
	return layout.Spacer{Width: unit.Dp(8)}.Layout(gtx)
}
