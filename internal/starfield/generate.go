// Package starfield lays out the decorative star field drawn behind the
// site. Layouts are a pure function of (count, seed).
package starfield

import (
	"errors"
	"fmt"
	"math"
)

// DefaultCount is the number of stars drawn when none is configured.
const DefaultCount = 80

const (
	// cellRandomness is the share of a grid cell a star may wander over.
	cellRandomness = 0.8
	// cellPadding keeps stars off the cell edges.
	cellPadding = 0.1

	minOpacity   = 0.4
	opacityRange = 0.4
)

// ErrInvalidCount is returned when a negative star count is requested.
var ErrInvalidCount = errors.New("starfield: invalid star count")

// GridSize returns the side of the smallest square grid holding count cells.
func GridSize(count int) int {
	if count <= 0 {
		return 0
	}
	return int(math.Ceil(math.Sqrt(float64(count))))
}

// Generate returns count stars spread over a gridSize x gridSize grid, one
// per cell in row-major order, each jittered inside its own cell.
//
// Every star consumes six draws from a fresh generator in the order top,
// left, size, color, animation, opacity, so the same (count, seed) always
// yields the same layout.
func Generate(count int, seed int64) ([]Star, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCount, count)
	}

	stars := make([]Star, 0, count)
	if count == 0 {
		return stars, nil
	}

	rng := NewSeeded(seed)
	gridSize := GridSize(count)
	cellWidth := 100 / float64(gridSize)
	cellHeight := 100 / float64(gridSize)

	for i := 0; i < count; i++ {
		gridRow := i / gridSize
		gridCol := i % gridSize

		top := jitter(gridRow, cellHeight, rng.Next())
		left := jitter(gridCol, cellWidth, rng.Next())

		stars = append(stars, Star{
			ID:        i,
			Top:       top,
			Left:      left,
			Size:      Size(rng.Intn(len(sizeNames))),
			Color:     Color(rng.Intn(len(colorNames))),
			Animation: Animation(rng.Intn(len(animationNames))),
			Opacity:   minOpacity + float64(rng.Next()*opacityRange),
		})
	}

	return stars, nil
}

// jitter places a coordinate inside cell index. The explicit conversions
// round each product so no fused multiply-add changes the result.
func jitter(index int, cell, r float64) float64 {
	base := float64(float64(index) * cell)
	offset := float64(float64(r*cell) * cellRandomness)
	padding := float64(cell * cellPadding)
	return base + offset + padding
}
