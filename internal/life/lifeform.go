package life

import (
	"image"
	"image/color"

	"lifeforms/internal/genome"
)

// Properties is a lifeform's per-tick scratch state.
type Properties struct {
	// Children counts offspring spawned from this lifeform.
	Children int
	// Signals holds one accumulator per registry slot. Zeroed every tick.
	Signals []float64
}

func newProperties(slots int) Properties {
	return Properties{Signals: make([]float64, slots)}
}

func (p *Properties) reset() {
	clear(p.Signals)
}

// Lifeform is one agent: genome, compiled wiring, position and scratch state.
type Lifeform struct {
	genes    []genome.Gene
	network  *Network
	age      int
	colour   color.RGBA
	props    Properties
	location image.Point
	previous image.Point
	world    *World

	pending    image.Point
	hasPending bool
}

func newLifeform(genes []genome.Gene, loc image.Point, w *World) *Lifeform {
	return &Lifeform{
		genes:    genes,
		network:  NewNetwork(genes, w.registry, w.tuning.MaxScale),
		colour:   GenomeColour(genes),
		props:    newProperties(w.registry.Slots()),
		location: loc,
		previous: loc,
		world:    w,
	}
}

// Update advances the lifeform one tick.
func (l *Lifeform) Update() {
	l.age++
	l.props.reset()
	l.network.Compute(l)
}

// MoveTo requests a move to p. Outside a tick the move is applied at once;
// during a tick it becomes the lifeform's move intent, committed by the world
// once every lifeform has updated. A later request in the same tick replaces
// an earlier one. Rejected moves leave the lifeform where it is.
func (l *Lifeform) MoveTo(p image.Point) {
	if l.world == nil {
		return
	}
	if l.world.ticking.Load() {
		l.pending = p
		l.hasPending = true
		return
	}
	l.world.MoveLifeform(l, p)
}

// Shift requests a move by offset relative to the current location.
func (l *Lifeform) Shift(offset image.Point) {
	l.MoveTo(l.location.Add(offset))
}

// CreateChild returns a mutated offspring at loc in w. Every gene rolls its
// own mutation; the child's wiring is compiled fresh against w's registry.
// The child is not placed on w's grid.
func (l *Lifeform) CreateChild(loc image.Point, w *World) *Lifeform {
	genes := make([]genome.Gene, len(l.genes))
	for i, g := range l.genes {
		genes[i] = g.Mutate(w.rng, w.tuning.MutationChance)
	}
	l.props.Children++
	return newLifeform(genes, loc, w)
}

// OneInChance runs the world's two-draw chance test for p.
func (l *Lifeform) OneInChance(p float64) bool {
	return l.world.rng.OneInChance(p)
}

// Age returns the number of completed updates.
func (l *Lifeform) Age() int { return l.age }

// Colour returns the genome fingerprint colour.
func (l *Lifeform) Colour() color.RGBA { return l.colour }

// Genome returns a copy of the genes.
func (l *Lifeform) Genome() []genome.Gene {
	return append([]genome.Gene(nil), l.genes...)
}

// Network returns the compiled wiring.
func (l *Lifeform) Network() *Network { return l.network }

// Properties exposes the scratch state for capabilities.
func (l *Lifeform) Properties() *Properties { return &l.props }

// Location returns the current cell.
func (l *Lifeform) Location() image.Point { return l.location }

// PreviousLocation returns the cell held before the last successful move.
func (l *Lifeform) PreviousLocation() image.Point { return l.previous }

// World returns the owning world.
func (l *Lifeform) World() *World { return l.world }

// GenomeColour sums each gene field modulo 256 per channel (source to red,
// destination to green, strength to blue) and quantizes every channel into 16
// levels.
func GenomeColour(genes []genome.Gene) color.RGBA {
	var r, g, b int64
	for _, gene := range genes {
		r = (r + int64(gene.Source)) % 256
		g = (g + int64(gene.Destination)) % 256
		b = (b + gene.Strength%256) % 256
	}
	return color.RGBA{R: quantize(r), G: quantize(g), B: quantize(b), A: 0xff}
}

func quantize(c int64) uint8 {
	c = (c%256 + 256) % 256
	return uint8(c>>4) * 17
}
