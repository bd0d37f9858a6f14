package life

import (
	"image"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"

	"lifeforms/internal/genome"
)

type fakeSensor struct {
	order int
	value float64
	reads atomic.Int64
}

func (s *fakeSensor) SenseOrder() int { return s.order }

func (s *fakeSensor) Value(*Lifeform) float64 {
	s.reads.Add(1)
	return s.value
}

type fakeActuator struct {
	order       int
	slot        int
	sets        atomic.Int64
	activations atomic.Int64
	onActivate  func(l *Lifeform)
}

func (a *fakeActuator) ActOrder() int { return a.order }

func (a *fakeActuator) SetValue(l *Lifeform, v float64) {
	a.sets.Add(1)
	l.Properties().Signals[a.slot] += v
}

func (a *fakeActuator) Activate(l *Lifeform) {
	a.activations.Add(1)
	if a.onActivate != nil {
		a.onActivate(l)
	}
}

func newActuator(reg *Registry, order int) *fakeActuator {
	a := &fakeActuator{order: order}
	a.slot = reg.AddActuator(a)
	return a
}

func newSensor(reg *Registry, order int, value float64) *fakeSensor {
	s := &fakeSensor{order: order, value: value}
	reg.AddSensor(s)
	return s
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// emptyWorld builds a world with no lifeforms for hand placement.
func emptyWorld(t *testing.T, reg *Registry, w, h int) *World {
	t.Helper()
	world, err := NewWorld(reg, Options{Width: w, Height: h, Seed: 1, Logger: quietLogger()})
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	return world
}

func spawn(w *World, genes []genome.Gene, loc image.Point) *Lifeform {
	l := newLifeform(genes, loc, w)
	w.place(l)
	return l
}

func assertGridConsistent(t *testing.T, w *World) {
	t.Helper()
	for _, l := range w.Lifeforms() {
		if got := w.Lifeform(l.Location()); got != l {
			t.Fatalf("grid at %v does not hold its lifeform", l.Location())
		}
	}
	occupied := 0
	for y := 0; y < w.Height(); y++ {
		for x := 0; x < w.Width(); x++ {
			p := image.Pt(x, y)
			l := w.Lifeform(p)
			if l == nil {
				continue
			}
			occupied++
			if l.Location() != p {
				t.Fatalf("cell %v holds lifeform located at %v", p, l.Location())
			}
		}
	}
	if occupied != w.Population() {
		t.Fatalf("grid holds %d lifeforms, population is %d", occupied, w.Population())
	}
}
