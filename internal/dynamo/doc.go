// Package dynamo provides the ODE primitives shared by the flow integrator.
//
// The package defines the fundamental interfaces and types for numerical
// integration of autonomous-in-form ODE systems over a scale variable:
//
//   - [State]: flat vector representing the integrated variables
//   - [System]: interface for ODE systems (dX/dχ = f(X, χ))
//   - [Integrator]: single-step numerical integrator interface
//   - [Observer]: checkpoint callback used by trajectory runners
//
// # Example
//
//	sys := flow.NewSystem(params.DefaultModel())
//	rk := integrators.NewRK4()
//	x1 := rk.Step(sys, x0, 0, 1e-3)
//
// # Thread Safety
//
// Integrators keep scratch buffers and are NOT safe for concurrent use.
// Create one per goroutine.
package dynamo
