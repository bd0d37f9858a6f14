package life

import (
	"cmp"
	"math"
	"slices"

	"lifeforms/internal/genome"
)

// strengthCeiling is the top of the strength domain mapped onto scales.
const strengthCeiling = math.MaxInt32 - 1

// Neuron is a gene compiled into a scaled sensor to actuator connection.
type Neuron struct {
	source      Sensor
	destination Actuator
	scale       float64
}

// Source returns the sensor the neuron reads.
func (n Neuron) Source() Sensor { return n.source }

// Destination returns the actuator the neuron writes.
func (n Neuron) Destination() Actuator { return n.destination }

// Scale returns the factor applied to the source value.
func (n Neuron) Scale() float64 { return n.scale }

// Activate forwards the scaled source value to the destination.
func (n Neuron) Activate(l *Lifeform) {
	n.destination.SetValue(l, n.source.Value(l)*n.scale)
}

// compileNeuron resolves g against reg. The registry must not be empty.
func compileNeuron(g genome.Gene, reg *Registry, maxScale float64) Neuron {
	sensors, actuators := reg.Sensors(), reg.Actuators()
	if len(sensors) == 0 || len(actuators) == 0 {
		panic(ErrEmptyRegistry)
	}
	return Neuron{
		source:      sensors[wrapIndex(int64(g.Source), len(sensors))],
		destination: actuators[wrapIndex(int64(g.Destination), len(actuators))],
		scale:       strengthScale(g.Strength, maxScale),
	}
}

// wrapIndex reduces a raw gene index into [0, n), negative values included.
func wrapIndex(i int64, n int) int {
	m := int64(n)
	return int(((i % m) + m) % m)
}

// strengthScale maps strength, clamped to [0, strengthCeiling], linearly onto
// [-maxScale, maxScale].
func strengthScale(strength int64, maxScale float64) float64 {
	s := min(max(strength, 0), strengthCeiling)
	return -maxScale + 2*maxScale*float64(s)/strengthCeiling
}

// Network is the ordered neuron set compiled from one genome.
type Network struct {
	neurons   []Neuron
	actuators []Actuator
}

// NewNetwork compiles one neuron per gene and orders them by source
// SenseOrder, then destination ActOrder. Ties keep genome order.
func NewNetwork(genes []genome.Gene, reg *Registry, maxScale float64) *Network {
	n := &Network{actuators: reg.Actuators()}
	if len(genes) == 0 {
		return n
	}
	n.neurons = make([]Neuron, len(genes))
	for i, g := range genes {
		n.neurons[i] = compileNeuron(g, reg, maxScale)
	}
	slices.SortStableFunc(n.neurons, func(a, b Neuron) int {
		if c := cmp.Compare(a.source.SenseOrder(), b.source.SenseOrder()); c != 0 {
			return c
		}
		return cmp.Compare(a.destination.ActOrder(), b.destination.ActOrder())
	})
	return n
}

// Len returns the number of neurons.
func (n *Network) Len() int { return len(n.neurons) }

// Neurons returns the neurons in execution order.
func (n *Network) Neurons() []Neuron { return n.neurons }

// Compute runs one tick: every neuron in order, then every registered
// actuator's Activate exactly once whether or not a gene wires it. The pass is
// a single forward sweep: a neuron reading a capability that is written later
// in the same pass only sees what had accumulated when it ran.
func (n *Network) Compute(l *Lifeform) {
	for _, neuron := range n.neurons {
		neuron.Activate(l)
	}
	for _, a := range n.actuators {
		a.Activate(l)
	}
}
