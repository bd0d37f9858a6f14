package genome

import (
	"math"
	"slices"
	"sync"
	"testing"

	"lifeforms/internal/core"
)

func TestGenerateSeededDeterministic(t *testing.T) {
	if Generate(9) != Generate(9) {
		t.Fatal("Generate with identical seeds must match")
	}
	if Generate(9) == Generate(10) {
		t.Fatal("different seeds should produce different genes")
	}

	a := GenerateGenomeSeeded(21, 16)
	b := GenerateGenomeSeeded(21, 16)
	if !slices.Equal(a, b) {
		t.Fatal("seeded genomes diverged")
	}
	if len(GenerateGenomeSeeded(21, 0)) != 0 {
		t.Fatal("zero-length genome expected")
	}
}

func TestGenerateWithinFieldLimit(t *testing.T) {
	rng := core.NewRNG(4)
	for i := 0; i < 500; i++ {
		g := GenerateWith(rng)
		if g.Source < 0 || g.Destination < 0 || g.Strength < 0 || g.Strength >= FieldLimit {
			t.Fatalf("generated gene out of range: %+v", g)
		}
	}
}

func TestGenerateSharedConcurrent(t *testing.T) {
	var wg sync.WaitGroup
	out := make([]Gene, 64)
	for i := range out {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			out[i] = GenerateShared()
		}(i)
	}
	wg.Wait()
	for i, g := range out {
		if g.Source < 0 || g.Destination < 0 || g.Strength < 0 {
			t.Fatalf("gene %d out of range: %+v", i, g)
		}
	}
}

func TestMutateCertainChangesExactlyOneFieldByOne(t *testing.T) {
	rng := core.NewRNG(77)
	parent := Gene{Source: 10, Destination: 20, Strength: 30}
	for i := 0; i < 300; i++ {
		child := parent.Mutate(rng, 1.0)
		if n := parent.Mutated(child); n != 1 {
			t.Fatalf("expected exactly one mutated field, got %d (%+v)", n, child)
		}
		diff := int64(child.Source-parent.Source) + int64(child.Destination-parent.Destination) + (child.Strength - parent.Strength)
		if diff != 1 && diff != -1 {
			t.Fatalf("mutation must move a field by exactly one, moved by %d", diff)
		}
	}
}

func TestMutateNeverWithZeroChance(t *testing.T) {
	rng := core.NewRNG(1)
	parent := Gene{Source: 3, Destination: 4, Strength: 5}
	for i := 0; i < 100; i++ {
		if child := parent.Mutate(rng, 0); child != parent {
			t.Fatalf("zero chance mutated gene to %+v", child)
		}
	}
}

func TestMutateWrapsWithoutClamping(t *testing.T) {
	rng := core.NewRNG(2)
	parent := Gene{Source: math.MaxInt32, Destination: math.MaxInt32, Strength: math.MaxInt64}
	sawWrap := false
	for i := 0; i < 300 && !sawWrap; i++ {
		child := parent.Mutate(rng, 1.0)
		if child.Source == math.MinInt32 || child.Destination == math.MinInt32 || child.Strength == math.MinInt64 {
			sawWrap = true
		}
	}
	if !sawWrap {
		t.Fatal("expected an upward mutation to wrap the field")
	}
}

func TestCreateChildUsesSharedStream(t *testing.T) {
	SeedShared(5)
	parent := Gene{Source: 1, Destination: 2, Strength: 3}
	first := parent.CreateChild(1.0)

	SeedShared(5)
	if again := parent.CreateChild(1.0); again != first {
		t.Fatalf("reseeded shared stream diverged: %+v vs %+v", first, again)
	}
}
