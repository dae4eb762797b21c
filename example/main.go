package main

import (
	"context"
	"image/color"
	"log"
	"os"
	"path/filepath"
	"strings"

	"gioui.org/app"
	"gioui.org/font"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"github.com/oligo/todomark"
	"github.com/oligo/todomark/settings"
	"github.com/oligo/todomark/textstyle"
	"github.com/oligo/todomark/textview"
)

type (
	C = layout.Context
	D = layout.Dimensions
)

const sample = `TODO: write the docs
Nothing to do here.
TODOS is not a token, neither is MYTODO.
- [ ] TODO ship it (TODO)
`

var presets = []string{"#00FF00", "#FFA500", "#E91E63", "#2196F3"}

type DemoApp struct {
	window *app.Window
	th     *material.Theme

	plugin *todomark.Plugin
	tab    *todomark.SettingTab
	sink   *textstyle.GioSink
	view   *textview.TextView

	editor    widget.Editor
	list      widget.List
	presetBtn []widget.Clickable
	resetBtn  widget.Clickable

	first, count int
}

func (a *DemoApp) run() error {
	var ops op.Ops
	for {
		e := a.window.Event()

		switch e := e.(type) {
		case app.DestroyEvent:
			a.plugin.Teardown()
			return e.Err
		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)
			a.update(gtx)
			layout.UniformInset(unit.Dp(8)).Layout(gtx, func(gtx C) D {
				return a.layout(gtx, a.th)
			})
			a.followViewport(gtx)
			e.Frame(gtx.Ops)
		}
	}
}

func (a *DemoApp) update(gtx C) {
	for {
		e, ok := a.editor.Update(gtx)
		if !ok {
			break
		}
		if _, ok := e.(widget.ChangeEvent); ok {
			a.view.SetText(a.editor.Text())
			a.first, a.count = 0, 0
		}
	}

	for i := range a.presetBtn {
		if a.presetBtn[i].Clicked(gtx) {
			if err := a.tab.OnColorChange(context.Background(), presets[i]); err != nil {
				log.Println(err)
			}
		}
	}
	if a.resetBtn.Clicked(gtx) {
		if err := a.tab.OnReset(context.Background()); err != nil {
			log.Println(err)
		}
	}
}

// followViewport narrows the decorated window to the lines the preview
// list shows.
func (a *DemoApp) followViewport(gtx C) {
	pos := a.list.Position
	if pos.First == a.first && pos.Count == a.count {
		return
	}
	a.first, a.count = pos.First, pos.Count
	a.view.ScrollTo(pos.First, pos.Count)
	gtx.Execute(op.InvalidateCmd{})
}

func (a *DemoApp) layout(gtx C, th *material.Theme) D {
	panel := a.tab.Display()

	return layout.Flex{
		Axis: layout.Vertical,
	}.Layout(gtx,
		layout.Rigid(func(gtx C) D {
			lb := material.H6(th, panel.Heading)
			lb.Alignment = text.Middle
			return lb.Layout(gtx)
		}),
		layout.Rigid(layout.Spacer{Height: unit.Dp(6)}.Layout),
		layout.Rigid(func(gtx C) D {
			return a.layoutSettings(gtx, th, panel)
		}),
		layout.Rigid(layout.Spacer{Height: unit.Dp(6)}.Layout),
		layout.Flexed(1, func(gtx C) D {
			return a.bordered(gtx, th, func(gtx C) D {
				ed := material.Editor(th, &a.editor, "Type some TODOs")
				ed.Font.Typeface = "monospace"
				ed.TextSize = unit.Sp(12)
				return ed.Layout(gtx)
			})
		}),
		layout.Rigid(layout.Spacer{Height: unit.Dp(6)}.Layout),
		layout.Flexed(1, func(gtx C) D {
			return a.bordered(gtx, th, func(gtx C) D {
				return material.List(th, &a.list).Layout(gtx, a.view.LineCount(), a.layoutLine)
			})
		}),
	)
}

func (a *DemoApp) layoutSettings(gtx C, th *material.Theme, panel todomark.Panel) D {
	picker := panel.Controls[0]

	children := []layout.FlexChild{
		layout.Rigid(func(gtx C) D {
			lb := material.Body1(th, picker.Name+": "+picker.Value)
			lb.Font.Weight = font.Bold
			return lb.Layout(gtx)
		}),
	}
	for i := range a.presetBtn {
		children = append(children,
			layout.Rigid(layout.Spacer{Width: unit.Dp(6)}.Layout),
			layout.Rigid(func(gtx C) D {
				btn := material.Button(th, &a.presetBtn[i], presets[i])
				c, err := textstyle.ParseColor(presets[i])
				if err == nil {
					btn.Background = c.NRGBA()
					btn.Color = color.NRGBA{A: 0xff}
				}
				return btn.Layout(gtx)
			}),
		)
	}
	children = append(children,
		layout.Rigid(layout.Spacer{Width: unit.Dp(6)}.Layout),
		layout.Rigid(material.Button(th, &a.resetBtn, panel.Controls[1].Name).Layout),
	)

	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(func(gtx C) D {
			return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx, children...)
		}),
		layout.Rigid(material.Caption(th, picker.Desc).Layout),
	)
}

// layoutLine paints one document line as a row of plain and marked runs.
func (a *DemoApp) layoutLine(gtx C, line int) D {
	start := a.view.LineStart(line)
	lineText := strings.TrimSuffix(a.view.Slice(start, a.view.LineStart(line+1)), "\n")
	marks := a.view.Decorations().QueryRange(start, start+len(lineText))

	var children []layout.FlexChild
	label := func(s string, marked bool) {
		children = append(children, layout.Rigid(func(gtx C) D {
			// marked runs are painted with the sink's colour op.
			if markOp := a.sink.Op(); marked && markOp != (op.CallOp{}) {
				return widget.Label{MaxLines: 1}.Layout(gtx, a.th.Shaper,
					font.Font{Typeface: "monospace"}, unit.Sp(12), s, markOp)
			}
			lb := material.Label(a.th, unit.Sp(12), s)
			lb.Font.Typeface = "monospace"
			return lb.Layout(gtx)
		}))
	}

	cursor := 0
	for _, m := range marks {
		from, to := max(m.Start-start, cursor), min(m.End-start, len(lineText))
		if from > cursor {
			label(lineText[cursor:from], false)
		}
		if to > from {
			label(lineText[from:to], true)
			cursor = to
		}
	}
	if cursor < len(lineText) || len(children) == 0 {
		label(lineText[cursor:], false)
	}

	return layout.Flex{Axis: layout.Horizontal}.Layout(gtx, children...)
}

func (a *DemoApp) bordered(gtx C, th *material.Theme, w layout.Widget) D {
	borderColor := th.Fg
	borderColor.A = 0xb6
	return widget.Border{
		Color: borderColor, Width: unit.Dp(1),
	}.Layout(gtx, func(gtx C) D {
		return layout.Inset{
			Top:    unit.Dp(6),
			Bottom: unit.Dp(6),
			Left:   unit.Dp(24),
			Right:  unit.Dp(24),
		}.Layout(gtx, w)
	})
}

func main() {
	log.SetFlags(log.Flags() | log.Lshortfile)
	th := material.NewTheme()

	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	store := settings.NewFileStore(filepath.Join(dir, "todomark", "data.yaml"))

	sink := &textstyle.GioSink{}
	plugin := todomark.New(todomark.Options{Store: store, Sinks: []textstyle.Sink{sink}})
	if err := plugin.Init(context.Background()); err != nil {
		log.Println(err)
	}

	demo := DemoApp{
		window:    &app.Window{},
		th:        th,
		plugin:    plugin,
		tab:       todomark.NewSettingTab(plugin),
		sink:      sink,
		view:      textview.NewTextView(sample),
		presetBtn: make([]widget.Clickable, len(presets)),
	}
	demo.window.Option(app.Title("TODO Highlighter"))
	demo.editor.SetText(sample)
	demo.list.Axis = layout.Vertical

	go func() {
		err := demo.run()
		if err != nil {
			os.Exit(1)
		}

		os.Exit(0)
	}()

	app.Main()
}
