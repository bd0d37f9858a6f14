package core

import "image"

// Grid stores at most one occupant per cell of a 2D region in row-major
// order. The zero value of T marks an empty cell.
type Grid[T comparable] struct {
	W, H int
	data []T
}

// NewGrid allocates a grid with the given dimensions.
func NewGrid[T comparable](w, h int) *Grid[T] {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &Grid[T]{W: w, H: h, data: make([]T, w*h)}
}

// Cells exposes the backing slice so callers can scan occupants directly.
func (g *Grid[T]) Cells() []T { return g.data }

// Index returns the linear slice index for coordinates (x, y).
func (g *Grid[T]) Index(x, y int) int { return y*g.W + x }

// InBounds reports whether p addresses a cell of the grid.
func (g *Grid[T]) InBounds(p image.Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < g.W && p.Y < g.H
}

// At returns the occupant of p, or the zero value when p is empty or out of
// bounds.
func (g *Grid[T]) At(p image.Point) T {
	if !g.InBounds(p) {
		var zero T
		return zero
	}
	return g.data[g.Index(p.X, p.Y)]
}

// Occupied reports whether p holds a non-zero occupant.
func (g *Grid[T]) Occupied(p image.Point) bool {
	var zero T
	return g.At(p) != zero
}

// Set stores v at p. Out of bounds writes are ignored and reported as false.
func (g *Grid[T]) Set(p image.Point, v T) bool {
	if !g.InBounds(p) {
		return false
	}
	g.data[g.Index(p.X, p.Y)] = v
	return true
}

// Clear empties every cell.
func (g *Grid[T]) Clear() {
	var zero T
	for i := range g.data {
		g.data[i] = zero
	}
}
