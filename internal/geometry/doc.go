// Package geometry provides the closed-form scale-dependent quantities of
// the model: the fractal dimension D(χ), the running gravitational coupling
// G(χ), the cosmological term Λ(χ), the quantum-geometry correction Q(a, D)
// and the primordial observables derived from the six-cone geometry.
//
// # Numerical degeneracy
//
// Every exponential goes through [SafeExp], which saturates the argument at
// ±params.ExponentClip so that no evaluator produces Inf from an exp
// overflow. The gravitational enhancement exp((D-3)χ) is additionally
// clipped at ±10.
//
// All functions are pure and safe for concurrent use.
package geometry
