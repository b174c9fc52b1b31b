package flow

import (
	"math"

	"github.com/san-kum/sdgft/internal/dynamo"
)

// Gauge group indices.
const (
	SU3 = iota
	SU2
	U1
)

// Yukawa flavour indices.
const (
	Top = iota
	Bottom
	Tau
)

// Dim is the number of couplings carried through the flow.
const Dim = 9

// State is the set of running couplings at one scale point.
type State struct {
	G      float64    `json:"g"`
	D      float64    `json:"d"`
	Lambda float64    `json:"lambda"`
	Gauge  [3]float64 `json:"gauge"`
	Yukawa [3]float64 `json:"yukawa"`
}

// PlanckState is the initial condition at the reference scale: unit G,
// topological dimension 2, no cosmological term, GUT-scale gauge couplings
// and third-generation Yukawas.
func PlanckState() State {
	return State{
		G:      1.0,
		D:      2.0,
		Lambda: 0.0,
		Gauge:  [3]float64{0.7, 0.65, 0.35},
		Yukawa: [3]float64{1.0, 0.02, 0.01},
	}
}

// Vector flattens s in the order G, D, Λ, gauge, yukawa.
func (s State) Vector() dynamo.State {
	return dynamo.State{
		s.G, s.D, s.Lambda,
		s.Gauge[SU3], s.Gauge[SU2], s.Gauge[U1],
		s.Yukawa[Top], s.Yukawa[Bottom], s.Yukawa[Tau],
	}
}

// FromVector is the inverse of Vector. Short vectors leave the tail zero.
func FromVector(v dynamo.State) State {
	var full [Dim]float64
	copy(full[:], v)
	return State{
		G:      full[0],
		D:      full[1],
		Lambda: full[2],
		Gauge:  [3]float64{full[3], full[4], full[5]},
		Yukawa: [3]float64{full[6], full[7], full[8]},
	}
}

func (s State) IsValid() bool {
	return s.Vector().IsValid()
}

// MaxAbsDiff is the largest component-wise distance between two states.
func (s State) MaxAbsDiff(o State) float64 {
	return s.Vector().MaxAbsDiff(o.Vector())
}

// Labels names the components of Vector, in order.
func Labels() []string {
	return []string{"G", "D", "Lambda", "g3", "g2", "g1", "y_t", "y_b", "y_tau"}
}

func loopFactor() float64 {
	return 16.0 * math.Pi * math.Pi
}
