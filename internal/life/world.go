package life

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"math"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"lifeforms/internal/core"
	"lifeforms/internal/genome"
)

var (
	// ErrNoSurvivors is returned by NextGeneration when the predicate keeps
	// no lifeform.
	ErrNoSurvivors = errors.New("life: no survivors")
	// ErrOverpopulated is returned when more lifeforms are requested than
	// the grid has cells.
	ErrOverpopulated = errors.New("life: population exceeds grid cells")
	// ErrInvalidSize is returned for non-positive world dimensions.
	ErrInvalidSize = errors.New("life: world dimensions must be positive")
)

// Tuning holds the evolution tunables.
type Tuning struct {
	// MutationChance is the per-gene probability that reproduction changes
	// one field.
	MutationChance float64
	// MaxScale bounds the magnitude of a single neuron's contribution.
	MaxScale float64
}

// DefaultTuning returns the standard tunables.
func DefaultTuning() Tuning {
	return Tuning{MutationChance: 0.001, MaxScale: 5}
}

// DrawFunc is invoked once per lifeform after every tick.
type DrawFunc func(l *Lifeform)

// Options configures a new World.
type Options struct {
	Width     int
	Height    int
	LifeCount int
	GeneCount int
	Seed      int64
	Tuning    Tuning
	// Workers bounds the goroutines updating lifeforms; 0 uses GOMAXPROCS.
	Workers int
	// RNG overrides the stream derived from Seed.
	RNG    *core.RNG
	Draw   DrawFunc
	Logger *slog.Logger
}

// World owns one generation: its grid, its population and the stream used to
// breed the next generation.
type World struct {
	width, height int
	generation    int
	tick          int

	grid      *core.Grid[*Lifeform]
	lifeforms []*Lifeform

	registry *Registry
	tuning   Tuning
	rng      *core.RNG
	workers  int
	draw     DrawFunc
	log      *slog.Logger

	ticking atomic.Bool
}

// NewWorld seeds a world with opts.LifeCount freshly generated lifeforms
// placed on the lowest noise-ranked cells. The registry is frozen.
func NewWorld(reg *Registry, opts Options) (*World, error) {
	if err := reg.Validate(); err != nil {
		return nil, err
	}
	rng := opts.RNG
	if rng == nil {
		rng = core.NewRNG(opts.Seed)
	}
	if opts.Tuning == (Tuning{}) {
		opts.Tuning = DefaultTuning()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	w, err := newWorld(reg, opts.Width, opts.Height, opts.Tuning, rng, opts.Workers, opts.Draw, logger)
	if err != nil {
		return nil, err
	}
	if opts.LifeCount < 0 {
		opts.LifeCount = 0
	}
	if opts.LifeCount > w.width*w.height {
		return nil, fmt.Errorf("seed %d lifeforms on %dx%d: %w", opts.LifeCount, w.width, w.height, ErrOverpopulated)
	}

	cells := RankCells(w.width, w.height, rng.Int64())
	for _, loc := range cells[:opts.LifeCount] {
		w.place(newLifeform(genome.GenerateGenome(rng, opts.GeneCount), loc, w))
	}
	w.log.Debug("world seeded",
		"width", w.width, "height", w.height,
		"lifeforms", len(w.lifeforms), "genes", opts.GeneCount)
	return w, nil
}

func newWorld(reg *Registry, width, height int, tuning Tuning, rng *core.RNG, workers int, draw DrawFunc, logger *slog.Logger) (*World, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%dx%d: %w", width, height, ErrInvalidSize)
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	reg.Freeze()
	return &World{
		width:    width,
		height:   height,
		grid:     core.NewGrid[*Lifeform](width, height),
		registry: reg,
		tuning:   tuning,
		rng:      rng,
		workers:  workers,
		draw:     draw,
		log:      logger,
	}, nil
}

// Spawn compiles genes into a new lifeform at loc. It returns nil when loc is
// outside the grid or occupied.
func (w *World) Spawn(genes []genome.Gene, loc image.Point) *Lifeform {
	if !w.grid.InBounds(loc) || w.grid.Occupied(loc) {
		return nil
	}
	l := newLifeform(append([]genome.Gene(nil), genes...), loc, w)
	w.place(l)
	return l
}

func (w *World) place(l *Lifeform) {
	w.grid.Set(l.location, l)
	w.lifeforms = append(w.lifeforms, l)
}

// Update runs one tick. Lifeforms update in parallel; their move intents are
// then committed one by one in population order, and finally the draw
// callback sees every lifeform.
func (w *World) Update() {
	w.ticking.Store(true)
	var g errgroup.Group
	for _, chunk := range w.chunks() {
		g.Go(func() error {
			for _, l := range chunk {
				l.Update()
			}
			return nil
		})
	}
	_ = g.Wait()
	w.ticking.Store(false)

	for _, l := range w.lifeforms {
		if !l.hasPending {
			continue
		}
		l.hasPending = false
		w.MoveLifeform(l, l.pending)
	}
	w.tick++

	if w.draw == nil {
		return
	}
	for _, l := range w.lifeforms {
		w.draw(l)
	}
}

// chunks splits the population into at most w.workers contiguous slices.
func (w *World) chunks() [][]*Lifeform {
	n := len(w.lifeforms)
	if n == 0 {
		return nil
	}
	per := (n + w.workers - 1) / w.workers
	out := make([][]*Lifeform, 0, w.workers)
	for start := 0; start < n; start += per {
		out = append(out, w.lifeforms[start:min(start+per, n)])
	}
	return out
}

// MoveLifeform moves l to p when p is in bounds and empty. It reports whether
// the move happened.
func (w *World) MoveLifeform(l *Lifeform, p image.Point) bool {
	if !w.grid.InBounds(p) || w.grid.Occupied(p) {
		return false
	}
	if w.grid.At(l.location) == l {
		w.grid.Set(l.location, nil)
	}
	w.grid.Set(p, l)
	l.previous = l.location
	l.location = p
	return true
}

// NextGeneration breeds a new world of the given size from the lifeforms
// survives keeps. Each survivor spawns round(target/survivors) mutated
// children on consecutive noise-ranked cells. The new world shares only the
// random stream, registry and tunables with w.
func (w *World) NextGeneration(width, height, target int, survives func(*Lifeform) bool) (*World, error) {
	var survivors []*Lifeform
	for _, l := range w.lifeforms {
		if survives(l) {
			survivors = append(survivors, l)
		}
	}
	if len(survivors) == 0 {
		return nil, fmt.Errorf("generation %d: %w", w.generation, ErrNoSurvivors)
	}

	next, err := newWorld(w.registry, width, height, w.tuning, w.rng, w.workers, w.draw, w.log)
	if err != nil {
		return nil, err
	}
	next.generation = w.generation + 1

	childCount := int(math.Round(float64(target) / float64(len(survivors))))
	total := childCount * len(survivors)
	if total > width*height {
		return nil, fmt.Errorf("breed %d children on %dx%d: %w", total, width, height, ErrOverpopulated)
	}

	cells := RankCells(width, height, w.rng.Int64())
	i := 0
	for _, parent := range survivors {
		for range childCount {
			next.place(parent.CreateChild(cells[i], next))
			i++
		}
	}
	w.log.Info("generation bred",
		"generation", next.generation,
		"survivors", len(survivors),
		"population", len(w.lifeforms),
		"children", total)
	return next, nil
}

// Lifeform returns the occupant of p, or nil when p is empty or outside the
// grid.
func (w *World) Lifeform(p image.Point) *Lifeform { return w.grid.At(p) }

// Lifeforms returns the live population in update order.
func (w *World) Lifeforms() []*Lifeform { return w.lifeforms }

// Population returns the number of live lifeforms.
func (w *World) Population() int { return len(w.lifeforms) }

// Width returns the grid width.
func (w *World) Width() int { return w.width }

// Height returns the grid height.
func (w *World) Height() int { return w.height }

// Size returns the grid dimensions.
func (w *World) Size() core.Size { return core.Size{W: w.width, H: w.height} }

// Generation returns the lineage index, 0 for a seeded world.
func (w *World) Generation() int { return w.generation }

// Tick returns the number of completed updates.
func (w *World) Tick() int { return w.tick }

// Tuning returns the evolution tunables.
func (w *World) Tuning() Tuning { return w.tuning }

// Registry returns the capability registry.
func (w *World) Registry() *Registry { return w.registry }

// RNG returns the world's random stream.
func (w *World) RNG() *core.RNG { return w.rng }

// SetDrawFunc replaces the per-lifeform draw callback.
func (w *World) SetDrawFunc(fn DrawFunc) { w.draw = fn }

// SetTuning replaces the tunables used for future children.
func (w *World) SetTuning(t Tuning) { w.tuning = t }
