package todomark

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	settingHeading   = "TODO Highlighter Settings"
	colorControlName = "TODO color"
	colorControlDesc = "Choose the highlight colour for your TODOs."
	resetControlName = "Reset color"
	resetControlDesc = "Restore the default highlight colour."
)

// ControlKind is the kind of widget a host shows for a Control.
type ControlKind uint8

const (
	ColorPicker ControlKind = iota
	Button
)

func (k ControlKind) String() string {
	switch k {
	case ColorPicker:
		return "color-picker"
	case Button:
		return "button"
	default:
		return "unknown"
	}
}

// Control is one entry of the settings panel.
type Control struct {
	Kind ControlKind
	Name string
	Desc string
	// Value is the current value of a colour picker.
	Value string
}

// Panel is the content of the settings tab, laid out by the host.
type Panel struct {
	Heading  string
	Controls []Control
}

// SettingTab is the settings panel contribution of a Plugin.
type SettingTab struct {
	plugin *Plugin
}

func NewSettingTab(p *Plugin) *SettingTab {
	return &SettingTab{plugin: p}
}

// Display builds the panel from the current colour. Hosts call it every
// time the tab is opened.
func (t *SettingTab) Display() Panel {
	return Panel{
		Heading: settingHeading,
		Controls: []Control{
			{Kind: ColorPicker, Name: colorControlName, Desc: colorControlDesc, Value: t.plugin.Color()},
			{Kind: Button, Name: resetControlName, Desc: resetControlDesc},
		},
	}
}

// OnColorChange is called when the user picks a colour.
func (t *SettingTab) OnColorChange(ctx context.Context, value string) error {
	return t.plugin.SetColor(ctx, strings.TrimSpace(value))
}

// OnReset is called when the user presses the reset control.
func (t *SettingTab) OnReset(ctx context.Context) error {
	return t.plugin.ResetColor(ctx)
}

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Underline(true).MarginBottom(1)
	nameStyle    = lipgloss.NewStyle().Bold(true)
	descStyle    = lipgloss.NewStyle().Faint(true)
)

// Render writes the panel for terminal hosts. The colour picker shows a
// swatch painted in the current colour.
func (t *SettingTab) Render(w io.Writer) error {
	panel := t.Display()

	rows := []string{headingStyle.Render(panel.Heading)}
	for _, c := range panel.Controls {
		line := nameStyle.Render(c.Name)
		if c.Kind == ColorPicker {
			swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(c.Value)).Render("■")
			line = fmt.Sprintf("%s  %s %s", line, swatch, c.Value)
		}
		rows = append(rows, line, descStyle.Render(c.Desc))
	}

	_, err := io.WriteString(w, lipgloss.JoinVertical(lipgloss.Left, rows...)+"\n")
	return err
}
