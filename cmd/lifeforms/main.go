//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"lifeforms/internal/app"
	"lifeforms/internal/core"
	"lifeforms/internal/sims/lifeforms"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	var sim core.Sim
	if cfg.ConfigFile != "" {
		simCfg, err := lifeforms.LoadConfig(cfg.ConfigFile)
		if err != nil {
			log.Fatalf("load %s: %v", cfg.ConfigFile, err)
		}
		s, err := lifeforms.NewWithConfig(simCfg, nil)
		if err != nil {
			log.Fatalf("new simulation: %v", err)
		}
		sim = s
	} else {
		factory, ok := core.Sims()[cfg.Sim]
		if !ok {
			log.Fatalf("unknown sim %q (available: %v)", cfg.Sim, core.SimNames())
		}
		sim = factory(nil)
	}
	sim.Reset(cfg.Seed)

	game := app.New(sim, cfg)
	size := sim.Size()

	ebiten.SetWindowTitle("lifeforms: " + sim.Name())
	ebiten.SetWindowSize(size.W*cfg.Scale+cfg.HUDWidth, size.H*cfg.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
