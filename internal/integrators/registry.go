package integrators

import (
	"fmt"
	"sort"

	"github.com/san-kum/sdgft/internal/dynamo"
)

var registry = map[string]func() dynamo.Integrator{
	"rk4":   func() dynamo.Integrator { return NewRK4() },
	"euler": func() dynamo.Integrator { return NewEuler() },
}

// New returns a fresh integrator by name. The empty name selects rk4.
func New(name string) (dynamo.Integrator, error) {
	if name == "" {
		name = "rk4"
	}
	ctor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", dynamo.ErrUnknownIntegrator, name)
	}
	return ctor(), nil
}

func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Advance applies steps equal sub-steps of integ across [from, to].
func Advance(integ dynamo.Integrator, sys dynamo.System, x dynamo.State, from, to float64, steps int) dynamo.State {
	if steps < 1 || from == to {
		return x.Clone()
	}
	h := (to - from) / float64(steps)
	cur := x
	for i := 0; i < steps; i++ {
		cur = integ.Step(sys, cur, from+float64(i)*h, h)
	}
	return cur
}
