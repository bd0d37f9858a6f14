package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/integrii/flaggy"
	"github.com/logrusorgru/aurora"

	"lifeforms/internal/sims/lifeforms"
	"lifeforms/internal/ui"
)

type envOptions struct {
	configPath  string
	interactive bool
	verbose     bool
	generations int
	tps         int
}

// overrides holds flag values; zero values leave the loaded config alone.
type overrides struct {
	width, height  int
	lifeCount      int
	geneCount      int
	inner          int
	workers        int
	steps          int
	seed           int64
	mutationChance float64
	maxScale       float64
	scenario       string
}

func main() {
	eo, ov := initOptions()

	cfg := lifeforms.DefaultConfig()
	if eo.configPath != "" {
		loaded, err := lifeforms.LoadConfig(eo.configPath)
		if err != nil {
			log.Fatalf("load %s: %v", eo.configPath, err)
		}
		cfg = loaded
	}
	ov.apply(&cfg)
	if err := cfg.Validate(); err != nil {
		flaggy.ShowHelpAndExit(err.Error())
	}

	level := slog.LevelWarn
	if eo.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	sim, err := lifeforms.NewWithConfig(cfg, logger)
	if err != nil {
		log.Fatalf("new simulation: %v", err)
	}

	if eo.interactive {
		term, err := ui.NewTerminal(sim, eo.tps)
		if err != nil {
			log.Fatal(err)
		}
		if err := term.Run(); err != nil {
			log.Fatal(err)
		}
		return
	}
	runHeadless(sim, eo.generations)
}

func runHeadless(sim *lifeforms.Sim, generations int) {
	cfg := sim.Config()
	fmt.Println("Running configuration:")
	printHashData(map[string]interface{}{
		"Dimension":       fmt.Sprintf("%v x %v", cfg.Width, cfg.Height),
		"Lifeforms":       cfg.LifeCount,
		"Genes":           cfg.GeneCount,
		"Inner neurons":   cfg.InnerNeurons,
		"Mutation chance": cfg.Params.MutationChance,
		"Max scale":       cfg.Params.MaxScale,
		"Scenario":        cfg.Params.Scenario,
		"Seed":            cfg.Seed,
	})
	fmt.Println("\nSimulation started...")

	start := time.Now()
	best := 0.0
	reseeds := 0
	for range generations {
		genStart := time.Now()
		stats := sim.RunGeneration()
		rate := stats.SurvivalRate()
		best = max(best, rate)
		line := fmt.Sprintf("  Generation %4d: %5d / %5d survived (%s) in %v",
			stats.Generation, stats.Survivors, stats.Population, rateLabel(rate),
			time.Since(genStart).Round(time.Millisecond))
		if stats.Reseeded {
			reseeds++
			line += " " + aurora.Red("reseeded").String()
		}
		fmt.Println(line)
	}

	fmt.Println("\nFinished:")
	printHashData(map[string]interface{}{
		"Generations bred": generations,
		"Best survival":    fmt.Sprintf("%.1f%%", best*100),
		"Reseeds":          reseeds,
		"Total time":       time.Since(start).Round(time.Millisecond),
	})
}

func rateLabel(rate float64) string {
	label := fmt.Sprintf("%5.1f%%", rate*100)
	switch {
	case rate >= 0.75:
		return aurora.Green(label).String()
	case rate >= 0.25:
		return aurora.Yellow(label).String()
	default:
		return aurora.Red(label).String()
	}
}

func printHashData(d map[string]interface{}) {
	names := make([]string, 0, len(d))
	for k := range d {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %v\n", aurora.Cyan(name), d[name])
	}
}

func (o overrides) apply(cfg *lifeforms.Config) {
	if o.width > 0 {
		cfg.Width = o.width
	}
	if o.height > 0 {
		cfg.Height = o.height
	}
	if o.lifeCount > 0 {
		cfg.LifeCount = o.lifeCount
	}
	if o.geneCount > 0 {
		cfg.GeneCount = o.geneCount
	}
	if o.inner > 0 {
		cfg.InnerNeurons = o.inner
	}
	if o.workers > 0 {
		cfg.Workers = o.workers
	}
	if o.steps > 0 {
		cfg.Params.StepsPerGeneration = o.steps
	}
	if o.seed != 0 {
		cfg.Seed = o.seed
	}
	if o.mutationChance > 0 {
		cfg.Params.MutationChance = o.mutationChance
	}
	if o.maxScale > 0 {
		cfg.Params.MaxScale = o.maxScale
	}
	if o.scenario != "" {
		cfg.Params.Scenario = o.scenario
	}
}

func initOptions() (*envOptions, *overrides) {
	eo := &envOptions{generations: 20, tps: 20}
	ov := &overrides{}

	flaggy.SetName("lifeforms-cli")
	flaggy.SetDescription("Evolve lifeforms on a grid, headless or in an interactive terminal view")
	flaggy.DefaultParser.ShowHelpOnUnexpected = true

	flaggy.String(&eo.configPath, "c", "config", "YAML file with simulation settings")
	flaggy.Int(&ov.width, "x", "width", "Width of the world")
	flaggy.Int(&ov.height, "y", "height", "Height of the world")
	flaggy.Int(&ov.lifeCount, "l", "lifeforms", "Lifeforms per generation")
	flaggy.Int(&ov.geneCount, "g", "genes", "Genes per genome")
	flaggy.Int(&ov.inner, "i", "inner", "Inner neurons")
	flaggy.Int(&ov.workers, "w", "workers", "Goroutines updating lifeforms, 0 uses every CPU")
	flaggy.Int(&ov.steps, "t", "steps", "Ticks per generation")
	flaggy.Int64(&ov.seed, "s", "seed", "Random seed")
	flaggy.Float64(&ov.mutationChance, "m", "mutation", "Per-gene mutation chance")
	flaggy.Float64(&ov.maxScale, "a", "scale", "Maximum neuron scale")
	flaggy.String(&ov.scenario, "e", "scenario", "Survival scenario ["+strings.Join(lifeforms.Scenarios(), "|")+"]")
	flaggy.Int(&eo.generations, "G", "generations", "Generations to breed in headless mode")
	flaggy.Bool(&eo.interactive, "n", "interactive", "Start the interactive terminal view")
	flaggy.Int(&eo.tps, "r", "tps", "Ticks per second in interactive mode")
	flaggy.Bool(&eo.verbose, "v", "verbose", "Log generation transitions")

	flaggy.Parse()
	return eo, ov
}
