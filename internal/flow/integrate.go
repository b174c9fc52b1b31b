package flow

import (
	"github.com/san-kum/sdgft/internal/dynamo"
	"github.com/san-kum/sdgft/internal/integrators"
	"github.com/san-kum/sdgft/internal/params"
)

// DefaultSteps is the number of equal sub-steps per integrated interval.
const DefaultSteps = 1000

type Options struct {
	// Steps per interval; values below 1 select DefaultSteps.
	Steps int
	// Integrator performs each sub-step; nil selects a fresh RK4.
	Integrator dynamo.Integrator
	// Observers see every checkpoint of a Trajectory, including the first.
	Observers []dynamo.Observer
}

func DefaultOptions() Options {
	return Options{Steps: DefaultSteps}
}

// OptionsFrom builds Options from the numerical settings.
func OptionsFrom(n params.Numerics) (Options, error) {
	integ, err := integrators.New(n.Stepper)
	if err != nil {
		return Options{}, err
	}
	return Options{Steps: n.FlowSteps, Integrator: integ}, nil
}

func (o Options) steps() int {
	if o.Steps < 1 {
		return DefaultSteps
	}
	return o.Steps
}

func (o Options) integrator() dynamo.Integrator {
	if o.Integrator == nil {
		return integrators.NewRK4()
	}
	return o.Integrator
}

// Integrate advances s from chiStart to chiEnd. A zero-length interval
// returns s unchanged and chiEnd < chiStart integrates backwards. The
// input is never modified.
func Integrate(s State, chiStart, chiEnd float64, m params.Model, opts Options) State {
	if chiStart == chiEnd {
		return s
	}
	out := integrators.Advance(opts.integrator(), NewSystem(m), s.Vector(), chiStart, chiEnd, opts.steps())
	return FromVector(out)
}

// Trajectory integrates s0 across grid, carrying the state from each
// checkpoint to the next. states[0] is s0.
func Trajectory(grid []float64, s0 State, m params.Model, opts Options) ([]State, error) {
	if err := dynamo.ValidateGrid(grid); err != nil {
		return nil, err
	}

	integ := opts.integrator()
	opts.Integrator = integ

	states := make([]State, len(grid))
	states[0] = s0
	notify(opts.Observers, s0, grid[0])
	for i := 1; i < len(grid); i++ {
		states[i] = Integrate(states[i-1], grid[i-1], grid[i], m, opts)
		notify(opts.Observers, states[i], grid[i])
	}
	return states, nil
}

// PlanckTrajectory is Trajectory starting from PlanckState.
func PlanckTrajectory(grid []float64, m params.Model, opts Options) ([]State, error) {
	return Trajectory(grid, PlanckState(), m, opts)
}

// UniformGrid returns n points evenly spaced on [from, to].
func UniformGrid(from, to float64, n int) []float64 {
	if n < 1 {
		return nil
	}
	if n == 1 {
		return []float64{from}
	}
	grid := make([]float64, n)
	h := (to - from) / float64(n-1)
	for i := range grid {
		grid[i] = from + float64(i)*h
	}
	grid[n-1] = to
	return grid
}

func notify(obs []dynamo.Observer, s State, chi float64) {
	if len(obs) == 0 {
		return
	}
	v := s.Vector()
	for _, o := range obs {
		o.OnStep(v, chi)
	}
}
