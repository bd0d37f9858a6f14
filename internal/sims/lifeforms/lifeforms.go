// Package lifeforms drives evolving populations of lifeforms generation after
// generation, selecting survivors with a named scenario.
package lifeforms

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"log/slog"

	"lifeforms/internal/cells"
	"lifeforms/internal/core"
	"lifeforms/internal/life"
	"lifeforms/internal/render"
)

var background = color.RGBA{R: 16, G: 16, B: 20, A: 255}

// GenerationStats summarises one finished generation.
type GenerationStats struct {
	Generation int
	Population int
	Survivors  int
	// Reseeded is set when the next generation could not be bred and a fresh
	// random population replaced it.
	Reseeded bool
}

// SurvivalRate returns the fraction of the population that survived.
func (g GenerationStats) SurvivalRate() float64 {
	if g.Population == 0 {
		return 0
	}
	return float64(g.Survivors) / float64(g.Population)
}

// Sim adapts a life.World lineage to core.Sim.
type Sim struct {
	cfg Config
	log *slog.Logger

	registry *life.Registry
	world    *life.World
	zone     Zone
	mask     []float32
	frame    *render.Frame
	history  []GenerationStats
}

// NewWithConfig validates cfg and seeds the first generation. A nil logger
// uses slog.Default().
func NewWithConfig(cfg Config, logger *slog.Logger) (*Sim, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("lifeforms: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	zone, _ := Survival(cfg.Params.Scenario)
	s := &Sim{
		cfg:   cfg,
		log:   logger,
		zone:  zone,
		mask:  zoneMask(zone, cfg.Width, cfg.Height),
		frame: render.NewFrame(cfg.Width, cfg.Height),
	}
	if err := s.seed(cfg.Seed); err != nil {
		return nil, err
	}
	return s, nil
}

// Name returns the simulation identifier.
func (s *Sim) Name() string { return "lifeforms" }

// Size reports the grid dimensions.
func (s *Sim) Size() core.Size { return core.Size{W: s.cfg.Width, H: s.cfg.Height} }

// Config returns the active configuration.
func (s *Sim) Config() Config { return s.cfg }

// World exposes the current generation.
func (s *Sim) World() *life.World { return s.world }

// Frame exposes the RGBA buffer drawn after the latest tick.
func (s *Sim) Frame() []byte { return s.frame.Pixels() }

// Generation returns the current generation number.
func (s *Sim) Generation() int { return s.world.Generation() }

// Tick returns the ticks completed by the current generation.
func (s *Sim) Tick() int { return s.world.Tick() }

// Population returns the current population.
func (s *Sim) Population() int { return s.world.Population() }

// SurvivalMask marks the cells of the scenario's survival area with 1.
func (s *Sim) SurvivalMask() []float32 { return s.mask }

// Describe reports the lifeform at p: its age and children, then one line
// per gene.
func (s *Sim) Describe(p image.Point) ([]string, bool) {
	l := s.world.Lifeform(p)
	if l == nil {
		return nil, false
	}
	genes := l.Genome()
	lines := make([]string, 0, len(genes)+1)
	lines = append(lines, fmt.Sprintf("(%d,%d) age %d children %d", p.X, p.Y, l.Age(), l.Properties().Children))
	for _, g := range genes {
		lines = append(lines, fmt.Sprintf("%x > %x * %x", g.Source, g.Destination, g.Strength))
	}
	return lines, true
}

// History returns the finished generations, oldest first.
func (s *Sim) History() []GenerationStats {
	out := make([]GenerationStats, len(s.history))
	copy(out, s.history)
	return out
}

// Reset discards the lineage and seeds a new first generation. A zero seed
// reuses the configured one.
func (s *Sim) Reset(seed int64) {
	if seed == 0 {
		seed = s.cfg.Seed
	}
	s.history = s.history[:0]
	if err := s.seed(seed); err != nil {
		s.log.Error("reset lifeforms", "seed", seed, "err", err)
	}
}

func (s *Sim) seed(seed int64) error {
	if s.registry == nil {
		s.registry = life.NewRegistry()
		cells.Register(s.registry, s.cfg.InnerNeurons)
	}
	world, err := life.NewWorld(s.registry, life.Options{
		Width:     s.cfg.Width,
		Height:    s.cfg.Height,
		LifeCount: s.cfg.LifeCount,
		GeneCount: s.cfg.GeneCount,
		Seed:      seed,
		Tuning:    s.cfg.Tuning(),
		Workers:   s.cfg.Workers,
		Draw:      s.draw,
		Logger:    s.log,
	})
	if err != nil {
		return fmt.Errorf("lifeforms: seed world: %w", err)
	}
	s.world = world
	s.redraw()
	return nil
}

func (s *Sim) draw(l *life.Lifeform) {
	s.frame.Set(l.Location(), l.Colour())
}

func (s *Sim) redraw() {
	s.frame.Fill(background)
	for _, l := range s.world.Lifeforms() {
		s.draw(l)
	}
}

// Step advances one tick and breeds the next generation once the current
// one has lived StepsPerGeneration ticks.
func (s *Sim) Step() {
	s.frame.Fill(background)
	s.world.Update()
	if s.world.Tick() >= s.cfg.Params.StepsPerGeneration {
		s.breed()
	}
}

// RunGeneration steps until the current generation is replaced and returns
// its summary.
func (s *Sim) RunGeneration() GenerationStats {
	n := len(s.history)
	for len(s.history) == n {
		s.Step()
	}
	return s.history[n]
}

func (s *Sim) breed() {
	current := s.world
	in := s.zone(current.Width(), current.Height())
	survives := func(l *life.Lifeform) bool { return in(l.Location()) }
	stats := GenerationStats{
		Generation: current.Generation(),
		Population: current.Population(),
	}
	for _, l := range current.Lifeforms() {
		if survives(l) {
			stats.Survivors++
		}
	}

	next, err := current.NextGeneration(s.cfg.Width, s.cfg.Height, s.cfg.LifeCount, survives)
	if err != nil {
		level := slog.LevelError
		if errors.Is(err, life.ErrNoSurvivors) || errors.Is(err, life.ErrOverpopulated) {
			level = slog.LevelWarn
		}
		s.log.Log(context.Background(), level, "reseeding population", "generation", stats.Generation, "err", err)
		stats.Reseeded = true
		s.history = append(s.history, stats)
		if err := s.seed(current.RNG().Int64()); err != nil {
			s.log.Error("reseed lifeforms", "err", err)
		}
		return
	}
	s.history = append(s.history, stats)
	s.world = next
	s.redraw()
}

func init() {
	core.Register("lifeforms", func(cfg map[string]string) core.Sim {
		s, err := NewWithConfig(FromMap(cfg), nil)
		if err != nil {
			slog.Error("lifeforms config rejected, using defaults", "err", err)
			s, _ = NewWithConfig(DefaultConfig(), nil)
		}
		return s
	})
}
