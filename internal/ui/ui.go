// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-orrery/internal/logging"
	"github.com/litescript/ls-orrery/internal/sim"
	"github.com/litescript/ls-orrery/internal/state"
	"github.com/litescript/ls-orrery/internal/version"
)

// Below this height the gradient logo gives way to a one-line title.
const compactHeight = 32

// Msg types for Bubble Tea
type (
	// AnimTickMsg triggers footer animation updates.
	AnimTickMsg time.Time
)

// Model is the root Bubble Tea model.
type Model struct {
	// Sub-models
	orrery OrreryModel

	// UI state
	width    int
	height   int
	ready    bool
	animTick int // Animation tick for shimmer effects
}

// New creates a new root UI model around an engine. The UI goroutine owns
// the engine from here on.
func New(engine *sim.Engine, store *state.Manager, log *logging.Logger) Model {
	return Model{
		orrery: NewOrreryModel(engine, store, log),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		animTickCmd(),
		m.orrery.Init(),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		default:
			cmds = append(cmds, m.updateOrrery(msg))
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		// Header above, one footer line below
		contentHeight := msg.Height - m.headerHeight() - 1
		m.orrery = m.orrery.SetSize(msg.Width, contentHeight)

	case tea.MouseMsg:
		// Shift into canvas coordinates
		msg.Y -= m.headerHeight()
		cmds = append(cmds, m.updateOrrery(msg))

	case AnimTickMsg:
		cmds = append(cmds, animTickCmd())
		m.animTick++

	default:
		cmds = append(cmds, m.updateOrrery(msg))
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) updateOrrery(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.orrery, cmd = m.orrery.Update(msg)
	return cmd
}

// Orrery returns the orrery sub-model.
func (m Model) Orrery() OrreryModel {
	return m.orrery
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}
	return m.renderFrame(m.orrery.View())
}

func (m Model) renderFrame(content string) string {
	return m.renderHeader() + content + "\n" + m.renderFooter()
}

// headerHeight is the number of lines above the canvas.
func (m Model) headerHeight() int {
	return strings.Count(m.renderHeader(), "\n")
}

func (m Model) renderHeader() string {
	if m.height < compactHeight {
		accent := lipgloss.NewStyle().Foreground(lipgloss.Color("#9D4EDD")).Bold(true)
		muted := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
		return "  " + accent.Render("LS-ORRERY") + muted.Render(fmt.Sprintf(" · Solar System Orrery · v%s", version.Version)) + "\n"
	}
	return m.renderLogo()
}

func (m Model) renderLogo() string {
	// ASCII art with smooth truecolor gradient
	logo := []string{
		`  ██╗     ███████╗       ██████╗ ██████╗ ██████╗ ███████╗██████╗ ██╗   ██╗`,
		`  ██║     ██╔════╝      ██╔═══██╗██╔══██╗██╔══██╗██╔════╝██╔══██╗╚██╗ ██╔╝`,
		`  ██║     ███████╗█████╗██║   ██║██████╔╝██████╔╝█████╗  ██████╔╝ ╚████╔╝ `,
		`  ██║     ╚════██║╚════╝██║   ██║██╔══██╗██╔══██╗██╔══╝  ██╔══██╗  ╚██╔╝  `,
		`  ███████╗███████║      ╚██████╔╝██║  ██║██║  ██║███████╗██║  ██║   ██║   `,
		`  ╚══════╝╚══════╝       ╚═════╝ ╚═╝  ╚═╝╚═╝  ╚═╝╚══════╝╚═╝  ╚═╝   ╚═╝   `,
	}

	var b strings.Builder
	b.WriteString("\n")

	// Render each line with a horizontal truecolor gradient
	for row, line := range logo {
		runes := []rune(line)
		lineLen := len(runes)

		for col, r := range runes {
			color := gradientColor(col, row, lineLen, len(logo))
			style := lipgloss.NewStyle().Foreground(lipgloss.Color(color))
			b.WriteString(style.Render(string(r)))
		}
		b.WriteString("\n")
	}

	// Tagline
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	b.WriteString(muted.Render("  Solar System Orrery · Interactive 3D Animation"))
	b.WriteString("\n")

	// Version/copyright line
	copyright := fmt.Sprintf("  (c) 2025 litescript.net | v%s", version.Version)
	b.WriteString(muted.Render(copyright))
	b.WriteString("\n\n")

	return b.String()
}

// gradientColor returns a hex color for a position in the logo gradient.
// Creates a vibrant nebula effect: blue -> purple -> magenta -> pink
func gradientColor(col, row, width, height int) string {
	// Normalize positions to 0-1
	xRatio := float64(col) / float64(width)
	yRatio := float64(row) / float64(height)

	// Blue (#3B82F6) -> Purple (#8B5CF6) -> Magenta (#D946EF) -> Pink (#EC4899)
	var r, g, b float64

	if xRatio < 0.33 {
		// Blue to Purple
		t := xRatio / 0.33
		r = 59 + t*(139-59)
		g = 130 + t*(92-130)
		b = 246
	} else if xRatio < 0.66 {
		// Purple to Magenta
		t := (xRatio - 0.33) / 0.33
		r = 139 + t*(217-139)
		g = 92 + t*(70-92)
		b = 246 + t*(239-246)
	} else {
		// Magenta to Pink
		t := (xRatio - 0.66) / 0.34
		r = 217 + t*(236-217)
		g = 70 + t*(72-70)
		b = 239 + t*(153-239)
	}

	// Vertical fade: brighter at top, darker toward bottom
	brightnessFactor := 1.0 - (yRatio * 0.5)

	return fmt.Sprintf("#%02X%02X%02X",
		clampByte(r*brightnessFactor),
		clampByte(g*brightnessFactor),
		clampByte(b*brightnessFactor))
}

func clampByte(v float64) int {
	switch {
	case v > 255:
		return 255
	case v < 0:
		return 0
	default:
		return int(v)
	}
}

func (m Model) renderFooter() string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#7B2CBF"))

	// Animated spinner frames
	spinnerFrames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	spinner := spinnerFrames[m.animTick%len(spinnerFrames)]

	var status string
	if m.orrery.Frame().Control.Playing {
		status = accentStyle.Render(spinner) + " " + m.renderShimmerText("Orbiting...")
	} else {
		status = accentStyle.Render("⏸") + dimStyle.Render(" Paused")
	}

	help := dimStyle.Render("space: play | +/-: speed | [/]: size | j/k: planet | </>: planet speed | enter: focus | o: overview | a/r/R: sync/reset/reset all | t: theme | l: labels | s: panel | q: quit")

	return "  " + status + "  " + dimStyle.Render("|") + "  " + help
}

func animTickCmd() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return AnimTickMsg(t)
	})
}

// renderShimmerText renders text with a subtle moving shine effect.
func (m Model) renderShimmerText(text string) string {
	runes := []rune(text)
	textLen := len(runes)
	if textLen == 0 {
		return ""
	}

	// Shimmer sweeps smoothly across
	pos := m.animTick % (textLen + 8) // A bit of padding for smooth entry/exit

	var result strings.Builder

	for i, r := range runes {
		// Distance from shimmer center
		dist := i - pos + 4
		if dist < 0 {
			dist = -dist
		}

		var r8, g8, b8 int
		switch {
		case dist <= 1:
			r8, g8, b8 = 180, 160, 220
		case dist <= 3:
			r8, g8, b8 = 140, 120, 180
		case dist <= 5:
			r8, g8, b8 = 110, 90, 150
		default:
			r8, g8, b8 = 80, 70, 120
		}

		hexColor := fmt.Sprintf("#%02X%02X%02X", r8, g8, b8)
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(hexColor))
		result.WriteString(style.Render(string(r)))
	}

	return result.String()
}
