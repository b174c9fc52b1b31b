// Package background evaluates the modified Friedmann equation
//
//	H² = (8πG(χ)/3)ρ - K/a² + Λ(χ)/3 + Q(a, D)/3,   χ = ln a
//
// and the observables that integrate it: luminosity distance, distance
// modulus, age of the universe and the early/late Hubble-constant
// estimates.
//
// # Failure values
//
// Non-positive scale factors and redshifts at or below -1 are input errors
// (ErrInvalidScaleFactor, ErrInvalidRedshift). A negative H² is not an input
// error: it is reported as *UnphysicalError, which matches ErrUnphysical,
// and each integrating caller decides explicitly what to do with it. The
// distance integrals always propagate it; the age integral follows
// Numerics.AgePolicy.
//
// A Solver is an immutable value and safe for concurrent use.
package background
