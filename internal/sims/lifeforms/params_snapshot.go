package lifeforms

import (
	"strconv"

	"lifeforms/internal/core"
)

func (s *Sim) Parameters() core.ParameterSnapshot {
	params := s.cfg.Params
	groups := []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				intParam("w", "Width", s.cfg.Width),
				intParam("h", "Height", s.cfg.Height),
				int64Param("seed", "Seed", s.cfg.Seed),
				intParam("life_count", "Life count", s.cfg.LifeCount),
				intParam("gene_count", "Gene count", s.cfg.GeneCount),
				intParam("inner_neurons", "Inner neurons", s.cfg.InnerNeurons),
				intParam("workers", "Workers", s.cfg.Workers),
			},
		},
		{
			Name: "Evolution",
			Params: []core.Parameter{
				floatParam("mutation_chance", "Mutation chance", params.MutationChance),
				floatParam("max_scale", "Max scale", params.MaxScale),
				intParam("steps_per_generation", "Steps per generation", params.StepsPerGeneration),
				stringParam("scenario", "Scenario", params.Scenario),
			},
		},
		{
			Name: "Progress",
			Params: []core.Parameter{
				intParam("generation", "Generation", s.Generation()),
				intParam("tick", "Tick", s.Tick()),
				intParam("population", "Population", s.Population()),
				intParam("last_survivors", "Last survivors", s.lastSurvivors()),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

func (s *Sim) lastSurvivors() int {
	if len(s.history) == 0 {
		return 0
	}
	return s.history[len(s.history)-1].Survivors
}

var controls = []core.ParameterControl{
	{Key: "mutation_chance", Label: "Mutation chance", Step: 0.001, Min: 0, Max: 1},
	{Key: "max_scale", Label: "Max scale", Step: 0.5, Min: 0.5, Max: 20},
}

// ParameterControls lists the tunables adjustable while running.
func (s *Sim) ParameterControls() []core.ParameterControl {
	out := make([]core.ParameterControl, len(controls))
	copy(out, controls)
	return out
}

// SetFloatParameter updates an adjustable tunable, clamping it to the
// control's range. MaxScale applies from the next generation's networks.
func (s *Sim) SetFloatParameter(key string, value float64) bool {
	for _, c := range controls {
		if c.Key != key {
			continue
		}
		value = c.Clamp(value)
		switch key {
		case "mutation_chance":
			s.cfg.Params.MutationChance = value
		case "max_scale":
			s.cfg.Params.MaxScale = value
		}
		s.world.SetTuning(s.cfg.Tuning())
		return true
	}
	return false
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.FormatInt(value, 10),
	}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'f', -1, 64),
	}
}

func stringParam(key, label, value string) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeString,
		Value: value,
	}
}
