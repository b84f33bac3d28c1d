// Package preview draws a star field layout in the terminal.
package preview

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/SengdowJones/portfolio/internal/starfield"
)

const (
	glyphSmall  = '·'
	glyphMedium = '✦'
	glyphLarge  = '✶'

	colorWhite  = "255"
	colorBlue   = "75"  // sky blue
	colorPurple = "135" // violet
	colorEmpty  = "236"

	faintBelow = 0.6
)

type cell struct {
	glyph rune
	color lipgloss.Color
	faint bool
}

// Place maps a star's percentage position onto a width x height canvas.
func Place(s starfield.Star, width, height int) (x, y int) {
	x = int(s.Left / 100 * float64(width))
	y = int(s.Top / 100 * float64(height))
	if x >= width {
		x = width - 1
	}
	if y >= height {
		y = height - 1
	}
	return x, y
}

// Visible reports whether a star is lit on the given animation frame.
// Satellite flashes blink quickly, lighthouse signals slowly; the delay and
// random variants shift the phase.
func Visible(a starfield.Animation, frame int) bool {
	period := 4
	if a.Lighthouse() {
		period = 8
	}
	return (frame+int(a))%period != 0
}

// Render draws stars onto a width x height canvas for one animation frame.
func Render(stars []starfield.Star, width, height, frame int) string {
	if width <= 0 || height <= 0 {
		return ""
	}

	canvas := make([][]cell, height)
	for y := range canvas {
		canvas[y] = make([]cell, width)
		for x := range canvas[y] {
			canvas[y][x] = cell{glyph: ' ', color: colorEmpty}
		}
	}

	for _, s := range stars {
		if !Visible(s.Animation, frame) {
			continue
		}
		x, y := Place(s, width, height)
		canvas[y][x] = cell{
			glyph: glyphFor(s.Size),
			color: colorFor(s.Color),
			faint: s.Opacity < faintBelow,
		}
	}

	var b strings.Builder
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := canvas[y][x]
			style := lipgloss.NewStyle().Foreground(c.color).Faint(c.faint)
			b.WriteString(style.Render(string(c.glyph)))
		}
		if y < height-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func glyphFor(s starfield.Size) rune {
	switch s {
	case starfield.SizeSmall:
		return glyphSmall
	case starfield.SizeLarge:
		return glyphLarge
	default:
		return glyphMedium
	}
}

func colorFor(c starfield.Color) lipgloss.Color {
	switch c {
	case starfield.ColorBlue:
		return colorBlue
	case starfield.ColorPurple:
		return colorPurple
	default:
		return colorWhite
	}
}
