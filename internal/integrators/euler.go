package integrators

import "github.com/san-kum/sdgft/internal/dynamo"

// Euler is the explicit first-order stepper, kept for order comparisons.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(sys dynamo.System, x dynamo.State, chi, h float64) dynamo.State {
	dx := sys.Derive(x, chi)
	result := make(dynamo.State, len(x))
	for i := range x {
		result[i] = x[i] + h*dx[i]
	}
	return result
}
