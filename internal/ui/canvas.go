package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Depths for layers that have no real distance.
const (
	backdropDepth = 1e12
	meteorDepth   = 1e11
)

type cell struct {
	r     rune
	color lipgloss.Color
	bold  bool
	depth float64
}

// canvas is a depth-tested character grid. A plot only lands if it is no
// farther than what the cell already holds.
type canvas struct {
	w, h  int
	cells []cell
}

func newCanvas(w, h int) *canvas {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	c := &canvas{w: w, h: h, cells: make([]cell, w*h)}
	for i := range c.cells {
		c.cells[i] = cell{r: ' ', depth: math.Inf(1)}
	}
	return c
}

func (c *canvas) inside(x, y int) bool {
	return x >= 0 && y >= 0 && x < c.w && y < c.h
}

func (c *canvas) plot(x, y int, r rune, color lipgloss.Color, depth float64, bold bool) {
	if !c.inside(x, y) {
		return
	}
	i := y*c.w + x
	if depth > c.cells[i].depth {
		return
	}
	c.cells[i] = cell{r: r, color: color, bold: bold, depth: depth}
}

func (c *canvas) at(x, y int) cell {
	if !c.inside(x, y) {
		return cell{r: ' ', depth: math.Inf(1)}
	}
	return c.cells[y*c.w+x]
}

// text writes s on top of everything, clipped to the canvas.
func (c *canvas) text(x, y int, s string, color lipgloss.Color, bold bool) {
	for i, r := range []rune(s) {
		c.plot(x+i, y, r, color, math.Inf(-1), bold)
	}
}

// String renders the grid, batching runs that share a style.
func (c *canvas) String() string {
	var b strings.Builder
	var run strings.Builder

	for y := 0; y < c.h; y++ {
		var cur cell
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if cur.color == "" {
				b.WriteString(run.String())
			} else {
				style := lipgloss.NewStyle().Foreground(cur.color).Bold(cur.bold)
				b.WriteString(style.Render(run.String()))
			}
			run.Reset()
		}

		for x := 0; x < c.w; x++ {
			cl := c.cells[y*c.w+x]
			if cl.r == ' ' {
				cl.color, cl.bold = "", false
			}
			if run.Len() > 0 && (cl.color != cur.color || cl.bold != cur.bold) {
				flush()
			}
			cur = cl
			run.WriteRune(cl.r)
		}
		flush()
		if y < c.h-1 {
			b.WriteRune('\n')
		}
	}
	return b.String()
}
