package life

import (
	"cmp"
	"image"
	"slices"

	perlin "github.com/aquilax/go-perlin"
)

const (
	noiseAlpha   = 2
	noiseBeta    = 2
	noiseOctaves = 3
	// noiseScale keeps samples off the integer lattice, where gradient
	// noise is always zero.
	noiseScale = 0.137
)

type rankedCell struct {
	p     image.Point
	index int
	value float64
}

// RankCells samples 2D coherent noise at every cell of a width x height
// region and returns the cells in ascending noise order, ties broken by
// row-major index. Any prefix is a set of distinct in-bounds cells, and the
// order depends only on (width, height, seed).
func RankCells(width, height int, seed int64) []image.Point {
	if width <= 0 || height <= 0 {
		return nil
	}
	noise := perlin.NewPerlin(noiseAlpha, noiseBeta, noiseOctaves, seed)
	ranked := make([]rankedCell, 0, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			ranked = append(ranked, rankedCell{
				p:     image.Pt(x, y),
				index: y*width + x,
				value: noise.Noise2D(float64(x)*noiseScale, float64(y)*noiseScale),
			})
		}
	}
	slices.SortFunc(ranked, func(a, b rankedCell) int {
		if c := cmp.Compare(a.value, b.value); c != 0 {
			return c
		}
		return cmp.Compare(a.index, b.index)
	})
	cells := make([]image.Point, len(ranked))
	for i, r := range ranked {
		cells[i] = r.p
	}
	return cells
}
