// Package genome defines the wiring instructions lifeforms inherit.
package genome

import (
	"math"
	"time"

	"lifeforms/internal/core"
)

// Gene is one wiring instruction: connect the sensor at Source to the
// actuator at Destination with the given Strength. Index fields are raw and
// reduced modulo the registry sizes when compiled. Genes are values; copying
// one never shares state.
type Gene struct {
	Source      int32
	Destination int32
	Strength    int64
}

// FieldLimit bounds freshly generated field values to [0, FieldLimit).
const FieldLimit = math.MaxInt32

var shared = core.NewRNG(time.Now().UnixNano())

// SeedShared reseeds the process-wide stream used by GenerateShared and
// CreateChild.
func SeedShared(seed int64) { shared.Seed(seed) }

// Shared returns the process-wide locked stream.
func Shared() *core.RNG { return shared }

// Generate returns a gene drawn from an independent stream seeded with seed.
func Generate(seed int64) Gene {
	return GenerateWith(core.NewRNG(seed))
}

// GenerateShared draws a gene from the shared stream. Safe for concurrent use.
func GenerateShared() Gene {
	return GenerateWith(shared)
}

// GenerateWith draws a gene from rng.
func GenerateWith(rng *core.RNG) Gene {
	return Gene{
		Source:      rng.Int32N(FieldLimit),
		Destination: rng.Int32N(FieldLimit),
		Strength:    rng.Int64N(FieldLimit),
	}
}

// GenerateGenome draws n genes from rng.
func GenerateGenome(rng *core.RNG, n int) []Gene {
	if n <= 0 {
		return nil
	}
	genes := make([]Gene, n)
	for i := range genes {
		genes[i] = GenerateWith(rng)
	}
	return genes
}

// GenerateGenomeSeeded draws n genes from one stream seeded with seed.
func GenerateGenomeSeeded(seed int64, n int) []Gene {
	return GenerateGenome(core.NewRNG(seed), n)
}

// CreateChild copies g, mutating it with the shared stream.
func (g Gene) CreateChild(chance float64) Gene {
	return g.Mutate(shared, chance)
}

// Mutate copies g. With probability chance (per RNG.OneInChance) one field,
// picked uniformly, moves by exactly one step up or down. Fields wrap at
// their integer width.
func (g Gene) Mutate(rng *core.RNG, chance float64) Gene {
	child := g
	if !rng.OneInChance(chance) {
		return child
	}
	delta := rng.Sign()
	switch rng.IntN(3) {
	case 0:
		child.Source += int32(delta)
	case 1:
		child.Destination += int32(delta)
	default:
		child.Strength += int64(delta)
	}
	return child
}

// Mutated reports how many fields differ between g and other.
func (g Gene) Mutated(other Gene) int {
	n := 0
	if g.Source != other.Source {
		n++
	}
	if g.Destination != other.Destination {
		n++
	}
	if g.Strength != other.Strength {
		n++
	}
	return n
}
