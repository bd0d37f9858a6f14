// Package cells provides the default sensors and actuators lifeforms are
// wired from.
package cells

import (
	"image"
	"math"

	"lifeforms/internal/life"
)

// Execution tiers. Sensors feed inner neurons, which feed the movement
// accumulators; the move actuator fires last.
const (
	orderSensor = 0
	orderInner  = 1

	orderInnerWrite = 0
	orderAccumulate = 1
	orderMove       = 2
)

// OscillatorPeriod is the tick period of the oscillator sensor.
const OscillatorPeriod = 20

// Set records the capabilities Register added.
type Set struct {
	Sensors []life.Sensor
	Inner   []*Inner
	MoveX   *Accumulator
	MoveY   *Accumulator
	Wander  *Accumulator
	Move    *Move
}

// Register appends the default capabilities to reg: the sensors, inner
// neurons, the three movement accumulators and the move actuator.
func Register(reg *life.Registry, inner int) *Set {
	s := &Set{
		Sensors: []life.Sensor{
			SensorFunc{Name: "age", Fn: age},
			SensorFunc{Name: "position_x", Fn: positionX},
			SensorFunc{Name: "position_y", Fn: positionY},
			SensorFunc{Name: "border", Fn: borderDistance},
			SensorFunc{Name: "last_move_x", Fn: lastMoveX},
			SensorFunc{Name: "last_move_y", Fn: lastMoveY},
			SensorFunc{Name: "random", Fn: random},
			SensorFunc{Name: "oscillator", Fn: oscillator},
			SensorFunc{Name: "density", Fn: density},
		},
	}
	for _, sensor := range s.Sensors {
		reg.AddSensor(sensor)
	}
	for range inner {
		in := &Inner{}
		in.slot = reg.AddInner(in)
		s.Inner = append(s.Inner, in)
	}
	s.MoveX = newAccumulator(reg, "move_x")
	s.MoveY = newAccumulator(reg, "move_y")
	s.Wander = newAccumulator(reg, "wander")
	s.Move = &Move{x: s.MoveX, y: s.MoveY, wander: s.Wander}
	s.Move.slot = reg.AddActuator(s.Move)
	return s
}

// SensorFunc adapts a function to life.Sensor.
type SensorFunc struct {
	Name string
	Fn   func(l *life.Lifeform) float64
}

// SenseOrder implements life.Sensor.
func (s SensorFunc) SenseOrder() int { return orderSensor }

// Value implements life.Sensor.
func (s SensorFunc) Value(l *life.Lifeform) float64 { return s.Fn(l) }

// Inner is a hidden neuron: it sums its inputs and exposes their tanh.
type Inner struct {
	slot int
}

// SenseOrder implements life.Sensor.
func (n *Inner) SenseOrder() int { return orderInner }

// ActOrder implements life.Actuator.
func (n *Inner) ActOrder() int { return orderInnerWrite }

// Value implements life.Sensor.
func (n *Inner) Value(l *life.Lifeform) float64 {
	return math.Tanh(l.Properties().Signals[n.slot])
}

// SetValue implements life.Actuator.
func (n *Inner) SetValue(l *life.Lifeform, v float64) {
	l.Properties().Signals[n.slot] += v
}

// Activate implements life.Actuator.
func (n *Inner) Activate(*life.Lifeform) {}

// Accumulator sums neuron output into its slot for the move actuator.
type Accumulator struct {
	Name string
	slot int
}

func newAccumulator(reg *life.Registry, name string) *Accumulator {
	a := &Accumulator{Name: name}
	a.slot = reg.AddActuator(a)
	return a
}

// ActOrder implements life.Actuator.
func (a *Accumulator) ActOrder() int { return orderAccumulate }

// SetValue implements life.Actuator.
func (a *Accumulator) SetValue(l *life.Lifeform, v float64) {
	l.Properties().Signals[a.slot] += v
}

// Activate implements life.Actuator.
func (a *Accumulator) Activate(*life.Lifeform) {}

// Level returns tanh of the accumulated signal.
func (a *Accumulator) Level(l *life.Lifeform) float64 {
	return math.Tanh(l.Properties().Signals[a.slot])
}

// Move turns the accumulators into at most one step per axis per tick. Its
// own slot is a forward urge along the last successful move.
type Move struct {
	slot   int
	x      *Accumulator
	y      *Accumulator
	wander *Accumulator
}

// ActOrder implements life.Actuator.
func (m *Move) ActOrder() int { return orderMove }

// SetValue implements life.Actuator.
func (m *Move) SetValue(l *life.Lifeform, v float64) {
	l.Properties().Signals[m.slot] += v
}

// Activate implements life.Actuator.
func (m *Move) Activate(l *life.Lifeform) {
	x := m.x.Level(l)
	y := m.y.Level(l)

	forward := math.Tanh(l.Properties().Signals[m.slot])
	last := l.Location().Sub(l.PreviousLocation())
	x += forward * float64(sign(last.X))
	y += forward * float64(sign(last.Y))

	if w := m.wander.Level(l); l.OneInChance(math.Abs(w)) {
		rng := l.World().RNG()
		x += float64(rng.Sign())
		y += float64(rng.Sign())
	}

	step := image.Point{}
	if l.OneInChance(math.Abs(x)) {
		step.X = signf(x)
	}
	if l.OneInChance(math.Abs(y)) {
		step.Y = signf(y)
	}
	if step != (image.Point{}) {
		l.Shift(step)
	}
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

func signf(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
