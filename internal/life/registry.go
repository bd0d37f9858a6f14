// Package life runs the lifeform simulation: genome compilation, the
// per-tick signal pass and the generational world.
package life

import "errors"

// ErrEmptyRegistry is returned when a registry has no sensors or no actuators
// and therefore cannot compile a genome.
var ErrEmptyRegistry = errors.New("life: registry needs at least one sensor and one actuator")

// Sensor is a capability a neuron can read from. Neurons whose source has a
// lower SenseOrder run earlier in a tick.
type Sensor interface {
	SenseOrder() int
	Value(l *Lifeform) float64
}

// Actuator is a capability a neuron can write to. SetValue receives every
// neuron contribution in a tick; Activate runs once per tick afterwards.
type Actuator interface {
	ActOrder() int
	SetValue(l *Lifeform, v float64)
	Activate(l *Lifeform)
}

// Inner is a capability wired in both directions, such as a hidden neuron.
type Inner interface {
	Sensor
	Actuator
}

// Registry holds the ordered sensor and actuator lists genomes compile
// against. Capabilities are appended during setup; the first World built on a
// registry freezes it.
type Registry struct {
	sensors   []Sensor
	actuators []Actuator
	slots     int
	frozen    bool
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry { return &Registry{} }

// AddSensor appends s and returns the signal slot reserved for it.
func (r *Registry) AddSensor(s Sensor) int {
	r.mustBeOpen()
	r.sensors = append(r.sensors, s)
	return r.reserve()
}

// AddActuator appends a and returns the signal slot reserved for it.
func (r *Registry) AddActuator(a Actuator) int {
	r.mustBeOpen()
	r.actuators = append(r.actuators, a)
	return r.reserve()
}

// AddInner appends c to both lists under a single signal slot.
func (r *Registry) AddInner(c Inner) int {
	r.mustBeOpen()
	r.sensors = append(r.sensors, c)
	r.actuators = append(r.actuators, c)
	return r.reserve()
}

func (r *Registry) reserve() int {
	slot := r.slots
	r.slots++
	return slot
}

func (r *Registry) mustBeOpen() {
	if r.frozen {
		panic("life: capability registered after the registry was frozen")
	}
}

// Sensors returns the registered sensors in registration order.
func (r *Registry) Sensors() []Sensor { return r.sensors }

// Actuators returns the registered actuators in registration order.
func (r *Registry) Actuators() []Actuator { return r.actuators }

// Slots is the number of signal slots each lifeform carries.
func (r *Registry) Slots() int { return r.slots }

// Freeze stops further registration.
func (r *Registry) Freeze() { r.frozen = true }

// Frozen reports whether registration has closed.
func (r *Registry) Frozen() bool { return r.frozen }

// Validate reports ErrEmptyRegistry when either list is empty.
func (r *Registry) Validate() error {
	if r == nil || len(r.sensors) == 0 || len(r.actuators) == 0 {
		return ErrEmptyRegistry
	}
	return nil
}
