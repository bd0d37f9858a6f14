package app

import (
	"flag"
	"testing"
)

func TestConfigBind(t *testing.T) {
	cfg := NewConfig()
	fs := flag.NewFlagSet("lifeforms", flag.ContinueOnError)
	cfg.Bind(fs)
	if err := fs.Parse([]string{"-scale", "3", "-seed", "7", "-config", "world.yaml"}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Scale != 3 || cfg.Seed != 7 || cfg.ConfigFile != "world.yaml" {
		t.Fatalf("bound config %+v", cfg)
	}
	if cfg.Sim != "lifeforms" || cfg.TPS != 30 {
		t.Fatalf("defaults lost: %+v", cfg)
	}
}
