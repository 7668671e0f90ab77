package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-orrery/internal/catalog"
)

const (
	infoWrapWidth = 36
	sunTooltip    = "The center of our solar system. Surface temperature: 5,778K"
)

type panelLine struct {
	text  string
	color lipgloss.Color
	bold  bool
}

// panel is a bordered text box stamped onto the canvas.
type panel struct {
	title string
	lines []panelLine
}

func (p panel) width() int {
	w := lipgloss.Width(p.title) + 2
	for _, l := range p.lines {
		if lw := lipgloss.Width(l.text); lw > w {
			w = lw
		}
	}
	return w + 4
}

func (p panel) height() int {
	return len(p.lines) + 2
}

// drawPanel draws p with its top-left corner at (x, y), shifted to stay on
// the canvas.
func (c *canvas) drawPanel(p panel, x, y int, pal palette) {
	w, h := p.width(), p.height()
	if x+w > c.w {
		x = c.w - w
	}
	if y+h > c.h {
		y = c.h - h
	}
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}

	inner := w - 2
	top := "╭─ " + p.title + " " + strings.Repeat("─", max(inner-lipgloss.Width(p.title)-3, 0)) + "╮"
	if p.title == "" {
		top = "╭" + strings.Repeat("─", inner) + "╮"
	}
	c.text(x, y, top, pal.Border, false)
	if p.title != "" {
		c.text(x+3, y, p.title, pal.Accent, true)
	}
	for i, l := range p.lines {
		row := y + 1 + i
		c.text(x, row, "│"+strings.Repeat(" ", inner)+"│", pal.Border, false)
		color := l.color
		if color == "" {
			color = pal.Text
		}
		c.text(x+2, row, l.text, color, l.bold)
	}
	c.text(x, y+h-1, "╰"+strings.Repeat("─", inner)+"╯", pal.Border, false)
}

func (m OrreryModel) speedPanel(pal palette) panel {
	now := m.now()
	ctrl := m.frame.Control

	play := "▶ Playing"
	if !ctrl.Playing {
		play = "⏸ Paused"
	}
	playColor := pal.Text
	if m.feedback.Active(flashPlay, now) {
		playColor = pal.Accent
	}

	lines := []panelLine{
		{text: play + "  [space]", color: playColor, bold: true},
		{text: fmt.Sprintf("Global %4.1fx  [-/+]", ctrl.GlobalSpeed)},
		{text: fmt.Sprintf("Scale  %4.1fx  [[/]]", ctrl.Scale)},
		{text: ""},
	}
	for i, b := range m.engine.Catalog().Planets() {
		marker := "  "
		line := panelLine{color: pal.Muted}
		if i == m.selected {
			marker = "▸ "
			line.color, line.bold = pal.Accent, true
		}
		line.text = fmt.Sprintf("%s%-8s %4.1fx", marker, b.Name, ctrl.Multiplier(b.ID))
		lines = append(lines, line)
	}

	syncColor, resetColor := pal.Muted, pal.Muted
	if m.feedback.Active(flashSync, now) {
		syncColor = pal.Accent
	}
	if m.feedback.Active(flashReset, now) {
		resetColor = pal.Accent
	}
	lines = append(lines,
		panelLine{text: ""},
		panelLine{text: "[a] " + m.feedback.Label(flashSync, "Sync all", now), color: syncColor},
		panelLine{text: "[r] " + m.feedback.Label(flashReset, "Reset speeds", now), color: resetColor},
	)
	return panel{title: "Speed", lines: lines}
}

func (m OrreryModel) infoPanel(pal palette) panel {
	b, ok := m.engine.Catalog().Get(m.infoFor)
	if !ok {
		return panel{}
	}
	field := func(label, value string) panelLine {
		return panelLine{text: fmt.Sprintf("%-12s %s", label, value)}
	}
	lines := []panelLine{
		field("Distance:", b.Info.Distance),
		field("Diameter:", b.Info.Diameter),
		field("Period:", b.Info.Period),
		field("Temperature:", b.Info.Temperature),
		{text: ""},
	}
	for _, l := range wrap(b.Info.Description, infoWrapWidth) {
		lines = append(lines, panelLine{text: l, color: pal.Muted})
	}
	lines = append(lines, panelLine{text: ""}, panelLine{text: "[o] overview", color: pal.Muted})
	return panel{title: b.Name, lines: lines}
}

// tooltip describes the hovered body, if any.
func (m OrreryModel) tooltip(pal palette) (panel, bool) {
	id := m.hover.Current()
	if id == "" || m.mouseX < 0 {
		return panel{}, false
	}
	b, ok := m.engine.Catalog().Get(id)
	if !ok {
		return panel{}, false
	}
	text := fmt.Sprintf("Distance: %s • Period: %s", b.Info.Distance, b.Info.Period)
	if b.Kind == catalog.KindStar {
		text = sunTooltip
	}
	var lines []panelLine
	for _, l := range wrap(text, infoWrapWidth) {
		lines = append(lines, panelLine{text: l, color: pal.Text})
	}
	return panel{title: b.Name, lines: lines}, true
}

// wrap breaks s into lines of at most width cells using lipgloss wrapping.
func wrap(s string, width int) []string {
	if s == "" {
		return nil
	}
	out := lipgloss.NewStyle().Width(width).Render(s)
	lines := strings.Split(out, "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " ")
	}
	return lines
}

func (m OrreryModel) renderHUD(pal palette) string {
	var b strings.Builder

	headerStyle := lipgloss.NewStyle().Foreground(pal.Accent).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(pal.Muted)
	valueStyle := lipgloss.NewStyle().Foreground(pal.Text)
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#E84A27"))

	f := m.frame
	ctrl := f.Control

	// Header line with focus and camera
	if ctrl.Focused != "" {
		name := string(ctrl.Focused)
		if body, ok := m.engine.Catalog().Get(ctrl.Focused); ok {
			name = body.Name
		}
		b.WriteString(headerStyle.Render("◆ " + name))
	} else {
		b.WriteString(headerStyle.Render("☉ Overview"))
	}
	b.WriteString("  ")
	b.WriteString(labelStyle.Render("Camera: "))
	cam := f.CameraState
	if f.TransitionProgress < 1 {
		cam = fmt.Sprintf("%s → %s %3.0f%%", cam, f.CameraTarget, f.TransitionProgress*100)
	}
	b.WriteString(valueStyle.Render(cam))
	b.WriteString("\n")

	// Second line: control values
	play := "▶"
	if !ctrl.Playing {
		play = "⏸"
	}
	fields := []struct{ label, value string }{
		{"", play},
		{"Speed: ", fmt.Sprintf("%.1fx", ctrl.GlobalSpeed)},
		{"Scale: ", fmt.Sprintf("%.1fx", ctrl.Scale)},
		{"Theme: ", string(ctrl.Theme)},
		{"Labels: ", m.labelMode.String()},
		{"", m.fpsLabel()},
		{"T+", fmt.Sprintf("%ds", int(math.Floor(f.Elapsed.Seconds())))},
	}
	for i, fl := range fields {
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(labelStyle.Render(fl.label))
		b.WriteString(valueStyle.Render(fl.value))
	}
	b.WriteString("\n")

	// Third line: last rejected command
	if m.status != "" {
		b.WriteString(errorStyle.Render("! " + m.status))
	}
	return b.String()
}
