package lifeforms

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"lifeforms/internal/life"
)

// Params holds the evolution tunables.
type Params struct {
	MutationChance     float64 `yaml:"mutation_chance"`
	MaxScale           float64 `yaml:"max_scale"`
	StepsPerGeneration int     `yaml:"steps_per_generation"`
	Scenario           string  `yaml:"scenario"`
}

// Config controls the lifeforms simulation.
type Config struct {
	Width  int   `yaml:"width"`
	Height int   `yaml:"height"`
	Seed   int64 `yaml:"seed"`

	LifeCount    int `yaml:"life_count"`
	GeneCount    int `yaml:"gene_count"`
	InnerNeurons int `yaml:"inner_neurons"`
	Workers      int `yaml:"workers"`

	Params Params `yaml:",inline"`
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:        128,
		Height:       128,
		Seed:         1337,
		LifeCount:    1000,
		GeneCount:    8,
		InnerNeurons: 2,
		Params: Params{
			MutationChance:     0.001,
			MaxScale:           5,
			StepsPerGeneration: 150,
			Scenario:           "east",
		},
	}
}

// Tuning returns the world tunables.
func (c Config) Tuning() life.Tuning {
	return life.Tuning{MutationChance: c.Params.MutationChance, MaxScale: c.Params.MaxScale}
}

// Validate reports configurations no world can be built from.
func (c Config) Validate() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("size %dx%d must be positive", c.Width, c.Height))
	}
	if c.LifeCount < 0 || c.LifeCount > c.Width*c.Height {
		errs = append(errs, fmt.Errorf("life_count %d does not fit %dx%d", c.LifeCount, c.Width, c.Height))
	}
	if c.GeneCount < 0 || c.InnerNeurons < 0 {
		errs = append(errs, errors.New("gene_count and inner_neurons must not be negative"))
	}
	if c.Params.MutationChance < 0 || c.Params.MutationChance > 1 {
		errs = append(errs, fmt.Errorf("mutation_chance %g outside [0,1]", c.Params.MutationChance))
	}
	if c.Params.MaxScale <= 0 {
		errs = append(errs, fmt.Errorf("max_scale %g must be positive", c.Params.MaxScale))
	}
	if c.Params.StepsPerGeneration <= 0 {
		errs = append(errs, fmt.Errorf("steps_per_generation %d must be positive", c.Params.StepsPerGeneration))
	}
	if _, ok := Survival(c.Params.Scenario); !ok {
		errs = append(errs, fmt.Errorf("unknown scenario %q", c.Params.Scenario))
	}
	return errors.Join(errs...)
}

// LoadConfig reads a YAML file over the defaults.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes YAML over the defaults and validates the result.
func ParseConfig(data []byte) (Config, error) {
	c := DefaultConfig()
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return c, nil
}

// FromMap populates the config from a string map (flag-style key/value pairs).
// Unparseable or out of range values keep their defaults.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["life_count"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.LifeCount = parsed
		}
	}
	if c.LifeCount > c.Width*c.Height {
		c.LifeCount = c.Width * c.Height
	}
	if v, ok := cfg["gene_count"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.GeneCount = parsed
		}
	}
	if v, ok := cfg["inner_neurons"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.InnerNeurons = parsed
		}
	}
	if v, ok := cfg["workers"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Workers = parsed
		}
	}
	if v, ok := cfg["mutation_chance"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 1 {
			c.Params.MutationChance = parsed
		}
	}
	if v, ok := cfg["max_scale"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			c.Params.MaxScale = parsed
		}
	}
	if v, ok := cfg["steps_per_generation"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Params.StepsPerGeneration = parsed
		}
	}
	if v, ok := cfg["scenario"]; ok {
		if _, known := Survival(v); known {
			c.Params.Scenario = v
		}
	}
	return c
}
