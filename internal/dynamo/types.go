package dynamo

import (
	"math"
)

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

// MaxAbsDiff is the infinity norm of s - other over the shared prefix.
func (s State) MaxAbsDiff(other State) float64 {
	n := min(len(s), len(other))
	worst := 0.0
	for i := 0; i < n; i++ {
		if d := math.Abs(s[i] - other[i]); d > worst {
			worst = d
		}
	}
	return worst
}

func (s State) Sub(other State) State {
	result := make(State, len(s))
	for i := range s {
		if i < len(other) {
			result[i] = s[i] - other[i]
		} else {
			result[i] = s[i]
		}
	}
	return result
}

// System is dX/dχ = Derive(X, χ).
type System interface {
	Derive(x State, chi float64) State
	StateDim() int
}

type Integrator interface {
	Step(sys System, x State, chi float64, h float64) State
}

// Observer is notified with each checkpoint of a trajectory.
type Observer interface {
	OnStep(x State, chi float64)
}

// ObserverFunc adapts a plain function to Observer.
type ObserverFunc func(x State, chi float64)

func (f ObserverFunc) OnStep(x State, chi float64) { f(x, chi) }

type Metric interface {
	Observer
	Name() string
	Value() float64
	Reset()
}
