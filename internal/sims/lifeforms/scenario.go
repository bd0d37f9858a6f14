package lifeforms

import (
	"image"
	"sort"
)

// Zone builds the survival area of a scenario for a w*h grid. A lifeform
// survives its generation when it ends inside the area.
type Zone func(w, h int) func(p image.Point) bool

var scenarios = map[string]Zone{
	"all": func(int, int) func(image.Point) bool {
		return func(image.Point) bool { return true }
	},
	"east": func(w, _ int) func(image.Point) bool {
		half := w / 2
		return func(p image.Point) bool { return p.X >= half }
	},
	"west": func(w, _ int) func(image.Point) bool {
		half := w / 2
		return func(p image.Point) bool { return p.X < half }
	},
	"centre": func(w, h int) func(image.Point) bool {
		cx, cy := w/2, h/2
		r := min(w, h) / 4
		return func(p image.Point) bool {
			dx, dy := p.X-cx, p.Y-cy
			return dx*dx+dy*dy <= r*r
		}
	},
	"corners": func(w, h int) func(image.Point) bool {
		bx, by := max(w/5, 1), max(h/5, 1)
		return func(p image.Point) bool {
			nearX := p.X < bx || p.X >= w-bx
			nearY := p.Y < by || p.Y >= h-by
			return nearX && nearY
		}
	},
	"walls": func(w, h int) func(image.Point) bool {
		return func(p image.Point) bool {
			return p.X == 0 || p.Y == 0 || p.X == w-1 || p.Y == h-1
		}
	},
}

// Survival returns the named scenario.
func Survival(name string) (Zone, bool) {
	fn, ok := scenarios[name]
	return fn, ok
}

// Scenarios lists the scenario names in sorted order.
func Scenarios() []string {
	names := make([]string, 0, len(scenarios))
	for name := range scenarios {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// zoneMask rasterizes a zone into a row-major mask of 0 and 1 values.
func zoneMask(zone Zone, w, h int) []float32 {
	in := zone(w, h)
	mask := make([]float32, w*h)
	for y := range h {
		for x := range w {
			if in(image.Pt(x, y)) {
				mask[y*w+x] = 1
			}
		}
	}
	return mask
}
