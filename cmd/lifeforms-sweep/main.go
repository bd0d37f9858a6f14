package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"runtime"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"lifeforms/internal/sims/lifeforms"
)

type paramSet struct {
	mutationChance float64
	maxScale       float64
}

func (p paramSet) String() string {
	return fmt.Sprintf("mutation=%.4f scale=%.1f", p.mutationChance, p.maxScale)
}

type sweepResult struct {
	params      paramSet
	generations int
	finalRate   float64
	meanRate    float64
	bestRate    float64
	reseeds     int
}

func main() {
	generations := flag.Int("generations", 30, "generations to breed per parameter set")
	workers := flag.Int("workers", runtime.NumCPU(), "number of parameter sets run concurrently")
	configPath := flag.String("config", "", "YAML file with the base simulation settings")
	top := flag.Int("top", 10, "number of results to print")
	flag.Parse()

	baseCfg := lifeforms.DefaultConfig()
	baseCfg.Width = 64
	baseCfg.Height = 64
	baseCfg.LifeCount = 300
	baseCfg.Params.StepsPerGeneration = 100
	if *configPath != "" {
		cfg, err := lifeforms.LoadConfig(*configPath)
		if err != nil {
			log.Fatalf("load %s: %v", *configPath, err)
		}
		baseCfg = cfg
	}
	// each run steps on one goroutine; the sweep supplies the parallelism
	baseCfg.Workers = 1

	mutationOptions := []float64{0.0005, 0.001, 0.005, 0.01, 0.05}
	scaleOptions := []float64{1, 2.5, 5, 10}

	var sets []paramSet
	for _, mutation := range mutationOptions {
		for _, scale := range scaleOptions {
			sets = append(sets, paramSet{mutationChance: mutation, maxScale: scale})
		}
	}

	fmt.Printf("Sweeping %d parameter sets (%d workers, %d generations, scenario %s)\n",
		len(sets), *workers, *generations, baseCfg.Params.Scenario)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	start := time.Now()
	var (
		mu  sync.Mutex
		all []sweepResult
	)
	var g errgroup.Group
	g.SetLimit(max(*workers, 1))
	for _, params := range sets {
		g.Go(func() error {
			res, err := runSweep(baseCfg, params, *generations, logger)
			if err != nil {
				return fmt.Errorf("%s: %w", params, err)
			}
			mu.Lock()
			all = append(all, res)
			mu.Unlock()
			fmt.Printf("  %s mean survival %.3f\n", params, res.meanRate)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatal(err)
	}

	sort.Slice(all, func(i, j int) bool { return all[i].meanRate > all[j].meanRate })
	fmt.Printf("Sweep finished in %s\n", time.Since(start).Round(time.Millisecond))
	fmt.Printf("%-28s %8s %8s %8s %8s\n", "params", "mean", "final", "best", "reseeds")
	for _, res := range all[:min(*top, len(all))] {
		fmt.Printf("%-28s %8.3f %8.3f %8.3f %8d\n", res.params, res.meanRate, res.finalRate, res.bestRate, res.reseeds)
	}
}

func runSweep(base lifeforms.Config, params paramSet, generations int, logger *slog.Logger) (sweepResult, error) {
	cfg := base
	cfg.Params.MutationChance = params.mutationChance
	cfg.Params.MaxScale = params.maxScale
	sim, err := lifeforms.NewWithConfig(cfg, logger)
	if err != nil {
		return sweepResult{}, err
	}

	res := sweepResult{params: params, generations: generations}
	var total float64
	for range generations {
		stats := sim.RunGeneration()
		rate := stats.SurvivalRate()
		total += rate
		res.finalRate = rate
		res.bestRate = max(res.bestRate, rate)
		if stats.Reseeded {
			res.reseeds++
		}
	}
	if generations > 0 {
		res.meanRate = total / float64(generations)
	}
	return res, nil
}
