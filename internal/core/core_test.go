package core

import (
	"image"
	"testing"
	"time"
)

func TestGridBoundsAndOccupancy(t *testing.T) {
	g := NewGrid[*int](4, 3)
	v := 7

	if g.Occupied(image.Pt(1, 1)) {
		t.Fatal("fresh grid must be empty")
	}
	if !g.Set(image.Pt(1, 1), &v) {
		t.Fatal("in-bounds write rejected")
	}
	if got := g.At(image.Pt(1, 1)); got != &v {
		t.Fatalf("At returned %v, expected stored pointer", got)
	}
	if g.Set(image.Pt(4, 0), &v) || g.Set(image.Pt(0, -1), &v) {
		t.Fatal("out of bounds write must be rejected")
	}
	if g.At(image.Pt(-1, 0)) != nil {
		t.Fatal("out of bounds read must return the empty sentinel")
	}
	if idx := g.Index(1, 1); g.Cells()[idx] != &v {
		t.Fatalf("row-major index %d does not hold the occupant", idx)
	}

	g.Clear()
	if g.Occupied(image.Pt(1, 1)) {
		t.Fatal("Clear must empty every cell")
	}
}

func TestNewGridFloorsDimensions(t *testing.T) {
	g := NewGrid[int](0, -3)
	if g.W != 1 || g.H != 1 || len(g.Cells()) != 1 {
		t.Fatalf("expected 1x1 grid, got %dx%d with %d cells", g.W, g.H, len(g.Cells()))
	}
}

func TestRNGDeterministic(t *testing.T) {
	a := NewRNG(42)
	b := NewRNG(42)
	for i := 0; i < 64; i++ {
		if x, y := a.Int64N(1000), b.Int64N(1000); x != y {
			t.Fatalf("draw %d diverged: %d vs %d", i, x, y)
		}
	}

	a.Seed(7)
	c := NewRNG(7)
	if a.Int64() != c.Int64() {
		t.Fatal("Seed must reset the stream to NewRNG state")
	}
}

func TestRNGSign(t *testing.T) {
	r := NewRNG(3)
	seen := map[int]bool{}
	for i := 0; i < 200; i++ {
		s := r.Sign()
		if s != 1 && s != -1 {
			t.Fatalf("Sign returned %d", s)
		}
		seen[s] = true
	}
	if len(seen) != 2 {
		t.Fatal("expected both signs over 200 draws")
	}
}

func TestChanceRange(t *testing.T) {
	cases := []struct {
		p    float64
		want int64
	}{
		{1, 1},
		{0.5, 2},
		{0.3, 3},
		{0.001, 1000},
		{5, 1},
		{0, 0},
		{-0.5, 0},
		{1e-300, 2147483647},
	}
	for _, tc := range cases {
		if got := ChanceRange(tc.p); got != tc.want {
			t.Fatalf("ChanceRange(%g) = %d, expected %d", tc.p, got, tc.want)
		}
	}
}

func TestOneInChanceExtremes(t *testing.T) {
	r := NewRNG(11)
	for i := 0; i < 100; i++ {
		if !r.OneInChance(1) {
			t.Fatal("p=1 must always succeed")
		}
		if r.OneInChance(0) || r.OneInChance(-1) {
			t.Fatal("non-positive p must never succeed")
		}
	}
}

func TestOneInChanceApproximatesInverseRange(t *testing.T) {
	r := NewRNG(5)
	const trials = 20000
	hits := 0
	for i := 0; i < trials; i++ {
		if r.OneInChance(0.25) {
			hits++
		}
	}
	rate := float64(hits) / trials
	if rate < 0.2 || rate > 0.3 {
		t.Fatalf("expected success rate near 1/4, got %.3f", rate)
	}
}

func TestFixedIntervalSteps(t *testing.T) {
	clock := time.Unix(0, 0)
	fs := NewFixedInterval(100 * time.Millisecond)
	fs.now = func() time.Time { return clock }

	if !fs.ShouldStep() {
		t.Fatal("first call should fire from the primed accumulator")
	}
	clock = clock.Add(50 * time.Millisecond)
	if fs.ShouldStep() {
		t.Fatal("should not fire before the interval elapses")
	}
	clock = clock.Add(60 * time.Millisecond)
	if !fs.ShouldStep() {
		t.Fatal("should fire once the interval elapsed")
	}
}

func TestSimNamesSorted(t *testing.T) {
	Register("zeta", func(map[string]string) Sim { return nil })
	Register("alpha", func(map[string]string) Sim { return nil })
	defer delete(sims, "zeta")
	defer delete(sims, "alpha")

	names := SimNames()
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Fatalf("names not sorted: %v", names)
		}
	}
}
