// Package flow integrates the renormalization-group flow of the coupled
// gravitational, geometric, gauge and Yukawa couplings across the
// logarithmic scale χ = ln(k/k0).
//
// The integrator is fixed-step: every call to [Integrate] splits its
// interval into Options.Steps equal sub-steps regardless of how stiff the
// flow becomes. No step is rejected and no divergence is reported; callers
// that care use [State.IsValid] or attach a metrics.Finite observer to a
// [Trajectory].
//
// # Example
//
//	grid := []float64{0, 0.1, 0.2, 0.5}
//	states, err := flow.PlanckTrajectory(grid, params.DefaultModel(), flow.DefaultOptions())
package flow
