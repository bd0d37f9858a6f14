package cells

import (
	"image"
	"math"

	"lifeforms/internal/life"
)

func age(l *life.Lifeform) float64 {
	return 1 - 1/(1+float64(l.Age())/64)
}

// spread maps v in [0, n) onto [-1, 1].
func spread(v, n int) float64 {
	if n <= 1 {
		return 0
	}
	return 2*float64(v)/float64(n-1) - 1
}

func positionX(l *life.Lifeform) float64 {
	return spread(l.Location().X, l.World().Width())
}

func positionY(l *life.Lifeform) float64 {
	return spread(l.Location().Y, l.World().Height())
}

// borderDistance is 0 on the edge and 1 at the centre.
func borderDistance(l *life.Lifeform) float64 {
	w, h := l.World().Width(), l.World().Height()
	p := l.Location()
	d := min(p.X, p.Y, w-1-p.X, h-1-p.Y)
	half := (min(w, h) - 1) / 2
	if half <= 0 {
		return 0
	}
	return float64(d) / float64(half)
}

func lastMoveX(l *life.Lifeform) float64 {
	return float64(l.Location().X - l.PreviousLocation().X)
}

func lastMoveY(l *life.Lifeform) float64 {
	return float64(l.Location().Y - l.PreviousLocation().Y)
}

func random(l *life.Lifeform) float64 {
	return l.World().RNG().Float64()*2 - 1
}

func oscillator(l *life.Lifeform) float64 {
	return math.Sin(2 * math.Pi * float64(l.Age()) / OscillatorPeriod)
}

// density is the occupied fraction of the Moore neighbourhood.
func density(l *life.Lifeform) float64 {
	w := l.World()
	p := l.Location()
	n := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if w.Lifeform(p.Add(image.Pt(dx, dy))) != nil {
				n++
			}
		}
	}
	return float64(n) / 8
}
