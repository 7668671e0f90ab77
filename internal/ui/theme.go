package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-orrery/internal/sim"
)

// palette holds the colours for one theme.
type palette struct {
	Orbit       lipgloss.Color
	OrbitBright lipgloss.Color
	Sun         lipgloss.Color
	Label       lipgloss.Color
	LabelFocus  lipgloss.Color
	Hover       lipgloss.Color
	Text        lipgloss.Color
	Muted       lipgloss.Color
	Accent      lipgloss.Color
	Border      lipgloss.Color
	Meteor      lipgloss.Color

	// StarOpacity dims the backdrop; light backgrounds show fewer stars.
	StarOpacity float64
}

var (
	darkPalette = palette{
		Orbit:       lipgloss.Color("238"),
		OrbitBright: lipgloss.Color("60"),
		Sun:         lipgloss.Color("220"),
		Label:       lipgloss.Color("249"),
		LabelFocus:  lipgloss.Color("229"),
		Hover:       lipgloss.Color("#FFFFFF"),
		Text:        lipgloss.Color("252"),
		Muted:       lipgloss.Color("60"),
		Accent:      lipgloss.Color("#9D4EDD"),
		Border:      lipgloss.Color("#7B2CBF"),
		Meteor:      lipgloss.Color("255"),
		StarOpacity: 0.8,
	}

	lightPalette = palette{
		Orbit:       lipgloss.Color("250"),
		OrbitBright: lipgloss.Color("246"),
		Sun:         lipgloss.Color("214"),
		Label:       lipgloss.Color("238"),
		LabelFocus:  lipgloss.Color("#7B2CBF"),
		Hover:       lipgloss.Color("#000000"),
		Text:        lipgloss.Color("235"),
		Muted:       lipgloss.Color("244"),
		Accent:      lipgloss.Color("#7B2CBF"),
		Border:      lipgloss.Color("#9D4EDD"),
		Meteor:      lipgloss.Color("240"),
		StarOpacity: 0.4,
	}
)

func paletteFor(t sim.Theme) palette {
	if t == sim.ThemeLight {
		return lightPalette
	}
	return darkPalette
}

// starColor maps a star weight (0..1) to a grey, scaled by the theme opacity.
func (p palette) starColor(weight float64) lipgloss.Color {
	w := weight * p.StarOpacity
	if p.StarOpacity < darkPalette.StarOpacity {
		// light theme: darker greys read as brighter stars
		return lipgloss.Color(fmt.Sprintf("%d", 252-int(w*14)))
	}
	return lipgloss.Color(fmt.Sprintf("%d", 236+int(w*19)))
}
