package life

import (
	"errors"
	"image"
	"sync/atomic"
	"testing"

	"lifeforms/internal/genome"
)

func basicRegistry() *Registry {
	reg := NewRegistry()
	reg.AddSensor(&fakeSensor{value: 1})
	a := &fakeActuator{}
	a.slot = reg.AddActuator(a)
	return reg
}

func TestWorldSeedsDudsOnDistinctCells(t *testing.T) {
	w, err := NewWorld(basicRegistry(), Options{Width: 10, Height: 10, LifeCount: 4, GeneCount: 0, Seed: 9, Logger: quietLogger()})
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	if w.Population() != 4 {
		t.Fatalf("population %d, expected 4", w.Population())
	}
	before := map[image.Point]bool{}
	for _, l := range w.Lifeforms() {
		before[l.Location()] = true
	}
	if len(before) != 4 {
		t.Fatalf("expected 4 distinct cells, got %d", len(before))
	}

	w.Update()
	for _, l := range w.Lifeforms() {
		if !before[l.Location()] || l.Location() != l.PreviousLocation() {
			t.Fatalf("dud lifeform moved to %v", l.Location())
		}
		if l.Age() != 1 {
			t.Fatalf("age %d after one tick", l.Age())
		}
	}
	if w.Tick() != 1 {
		t.Fatalf("tick %d, expected 1", w.Tick())
	}
	assertGridConsistent(t, w)
}

func TestWorldSeedingDeterministic(t *testing.T) {
	build := func() *World {
		w, err := NewWorld(basicRegistry(), Options{Width: 12, Height: 8, LifeCount: 20, GeneCount: 4, Seed: 77, Logger: quietLogger()})
		if err != nil {
			t.Fatalf("NewWorld: %v", err)
		}
		return w
	}
	a, b := build(), build()
	for i := range a.Lifeforms() {
		x, y := a.Lifeforms()[i], b.Lifeforms()[i]
		if x.Location() != y.Location() {
			t.Fatalf("lifeform %d placed at %v and %v", i, x.Location(), y.Location())
		}
		xg, yg := x.Genome(), y.Genome()
		for j := range xg {
			if xg[j] != yg[j] {
				t.Fatalf("lifeform %d gene %d differs", i, j)
			}
		}
	}
}

func TestNewWorldErrors(t *testing.T) {
	if _, err := NewWorld(NewRegistry(), Options{Width: 4, Height: 4}); !errors.Is(err, ErrEmptyRegistry) {
		t.Fatalf("expected ErrEmptyRegistry, got %v", err)
	}
	if _, err := NewWorld(basicRegistry(), Options{Width: 0, Height: 4}); !errors.Is(err, ErrInvalidSize) {
		t.Fatalf("expected ErrInvalidSize, got %v", err)
	}
	if _, err := NewWorld(basicRegistry(), Options{Width: 2, Height: 2, LifeCount: 5, Logger: quietLogger()}); !errors.Is(err, ErrOverpopulated) {
		t.Fatalf("expected ErrOverpopulated, got %v", err)
	}
}

// stepper moves lifeforms in column 0 right and everything else left.
func stepperRegistry() *Registry {
	reg := NewRegistry()
	reg.AddSensor(&fakeSensor{})
	a := &fakeActuator{onActivate: func(l *Lifeform) {
		if l.Location().X == 0 {
			l.Shift(image.Pt(1, 0))
			return
		}
		l.Shift(image.Pt(-1, 0))
	}}
	a.slot = reg.AddActuator(a)
	return reg
}

func TestConflictingMovesCommitInPopulationOrder(t *testing.T) {
	w := emptyWorld(t, stepperRegistry(), 3, 1)
	first := spawn(w, nil, image.Pt(0, 0))
	second := spawn(w, nil, image.Pt(2, 0))

	w.Update()

	if first.Location() != image.Pt(1, 0) {
		t.Fatalf("first lifeform at %v, expected (1,0)", first.Location())
	}
	if second.Location() != image.Pt(2, 0) || second.PreviousLocation() != image.Pt(2, 0) {
		t.Fatalf("second lifeform must stay put, at %v", second.Location())
	}
	assertGridConsistent(t, w)
}

func TestMovesDeferredUntilTickCompletes(t *testing.T) {
	reg := NewRegistry()
	reg.AddSensor(&fakeSensor{})
	var during atomic.Int64
	a := &fakeActuator{}
	a.onActivate = func(l *Lifeform) {
		start := l.Location()
		l.Shift(image.Pt(0, 1))
		if l.Location() == start {
			during.Add(1)
		}
	}
	a.slot = reg.AddActuator(a)

	w := emptyWorld(t, reg, 4, 4)
	l := spawn(w, nil, image.Pt(1, 1))
	w.Update()

	if during.Load() != 1 {
		t.Fatal("move must not apply while the tick is running")
	}
	if l.Location() != image.Pt(1, 2) {
		t.Fatalf("move intent not committed, at %v", l.Location())
	}
}

func TestParallelUpdateKeepsGridConsistent(t *testing.T) {
	w, err := NewWorld(stepperRegistry(), Options{Width: 16, Height: 16, LifeCount: 120, Seed: 5, Workers: 8, Logger: quietLogger()})
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	for i := 0; i < 10; i++ {
		w.Update()
		assertGridConsistent(t, w)
	}
}

func TestDrawCallbackOncePerLifeform(t *testing.T) {
	seen := map[*Lifeform]int{}
	w, err := NewWorld(basicRegistry(), Options{
		Width: 8, Height: 8, LifeCount: 10, Seed: 2, Logger: quietLogger(),
		Draw: func(l *Lifeform) { seen[l]++ },
	})
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	w.Update()
	w.Update()
	if len(seen) != 10 {
		t.Fatalf("draw saw %d lifeforms, expected 10", len(seen))
	}
	for _, n := range seen {
		if n != 2 {
			t.Fatalf("lifeform drawn %d times over two ticks", n)
		}
	}
}

func TestNextGenerationChildCount(t *testing.T) {
	w, err := NewWorld(basicRegistry(), Options{Width: 20, Height: 20, LifeCount: 40, GeneCount: 6, Seed: 13, Logger: quietLogger()})
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	survives := func(l *Lifeform) bool { return l.Location().X < 10 }
	survivors := 0
	for _, l := range w.Lifeforms() {
		if survives(l) {
			survivors++
		}
	}
	if survivors == 0 {
		t.Skip("seed placed no lifeform in the left half")
	}

	const target = 50
	next, err := w.NextGeneration(15, 15, target, survives)
	if err != nil {
		t.Fatalf("NextGeneration: %v", err)
	}
	childCount := (2*target + survivors) / (2 * survivors)
	if next.Population() != childCount*survivors {
		t.Fatalf("population %d, expected %d*%d", next.Population(), childCount, survivors)
	}
	if next.Generation() != w.Generation()+1 || next.Width() != 15 || next.Height() != 15 {
		t.Fatal("child world must have the requested size and next generation index")
	}
	if next.RNG() != w.RNG() {
		t.Fatal("child world must share the random stream")
	}
	for _, l := range next.Lifeforms() {
		if len(l.Genome()) != 6 {
			t.Fatalf("child genome length %d, expected 6", len(l.Genome()))
		}
		if l.World() != next || w.Lifeform(l.Location()) == l {
			t.Fatal("children must live only in the new world")
		}
	}
	assertGridConsistent(t, next)

	children := 0
	for _, l := range w.Lifeforms() {
		children += l.Properties().Children
	}
	if children != next.Population() {
		t.Fatalf("parents report %d children, new population %d", children, next.Population())
	}
}

func TestNextGenerationErrors(t *testing.T) {
	w, err := NewWorld(basicRegistry(), Options{Width: 5, Height: 5, LifeCount: 5, Seed: 1, Logger: quietLogger()})
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	if _, err := w.NextGeneration(5, 5, 10, func(*Lifeform) bool { return false }); !errors.Is(err, ErrNoSurvivors) {
		t.Fatalf("expected ErrNoSurvivors, got %v", err)
	}
	if _, err := w.NextGeneration(2, 2, 10, func(*Lifeform) bool { return true }); !errors.Is(err, ErrOverpopulated) {
		t.Fatalf("expected ErrOverpopulated, got %v", err)
	}
}

func TestSpawnRejectsTakenAndOutsideCells(t *testing.T) {
	w := emptyWorld(t, basicRegistry(), 3, 3)
	genes := []genome.Gene{{Source: 1}}
	l := w.Spawn(genes, image.Pt(0, 1))
	if l == nil || w.Lifeform(image.Pt(0, 1)) != l {
		t.Fatal("spawn on an empty cell must place the lifeform")
	}
	genes[0].Source = 9
	if l.Genome()[0].Source != 1 {
		t.Fatal("spawn must copy the genome")
	}
	if w.Spawn(nil, image.Pt(0, 1)) != nil || w.Spawn(nil, image.Pt(3, 0)) != nil {
		t.Fatal("spawn on taken or outside cells must fail")
	}
	if w.Population() != 1 {
		t.Fatalf("population %d, expected 1", w.Population())
	}
}

func TestLifeformLookupSentinel(t *testing.T) {
	w := emptyWorld(t, basicRegistry(), 3, 3)
	l := spawn(w, []genome.Gene{{}}, image.Pt(1, 2))
	if w.Lifeform(image.Pt(1, 2)) != l {
		t.Fatal("lookup must return the occupant")
	}
	if w.Lifeform(image.Pt(0, 0)) != nil || w.Lifeform(image.Pt(5, 5)) != nil {
		t.Fatal("empty and out of bounds lookups must return nil")
	}
}
