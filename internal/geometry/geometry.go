package geometry

import (
	"math"

	"github.com/san-kum/sdgft/internal/params"
)

// SafeExp is math.Exp with the argument saturated at ±params.ExponentClip.
func SafeExp(x float64) float64 {
	return math.Exp(Clip(x, params.ExponentClip))
}

// Clip saturates x to [-limit, limit].
func Clip(x, limit float64) float64 {
	if x > limit {
		return limit
	}
	if x < -limit {
		return -limit
	}
	return x
}

// FractalDimension is the logistic interpolation
//
//	D(χ) = 2 + (D∞ - 2) / (1 + exp(-χ/α))
//
// It is non-decreasing in χ, equals (2+D∞)/2 at χ = 0 and reaches D∞ in
// float64 well before χ = 10·χ_P.
func FractalDimension(chi float64, m params.Model) float64 {
	return 2.0 + (m.DAsymptotic-2.0)/(1.0+SafeExp(-chi/m.Alpha))
}

// GravitationalCoupling returns G(χ) in SI units, the Newton constant
// dressed by the dimension-dependent enhancement and the one-loop quantum
// correction.
func GravitationalCoupling(chi float64, m params.Model, c params.Constants) float64 {
	d := FractalDimension(chi, m)
	g := c.NewtonG * math.Exp(Clip((d-3.0)*chi, c.GravityClip))
	return g * (1.0 + 2.0/(3.0*math.Pi)*g + m.Beta/24.0*g*g)
}

// CosmologicalTerm returns Λ(χ) = Λ0·[exp(-(3-D)χ/2) + ξ_G·exp(-χ/χ_P)],
// in the units of lambda0.
func CosmologicalTerm(chi float64, m params.Model, lambda0 float64) float64 {
	d := FractalDimension(chi, m)
	emergent := SafeExp(-(3.0 - d) * chi / 2.0)
	vacuum := m.XiG * SafeExp(-chi/m.ChiPlanck)
	return lambda0 * (emergent + vacuum)
}

// QuantumGeometry is the trace of the quantum-geometry correction in units
// of H0²: chiral ξ_G R² with R = 6/a², the cone curvature weighted by
// (β/4π)θ² and the unfolding term α(3-D)/a².
func QuantumGeometry(a, d float64, m params.Model) float64 {
	r := 6.0 / (a * a)
	theta := m.ThetaRadians()
	chiral := m.XiG * r * r
	cone := m.Beta / (4.0 * math.Pi) * theta * theta * ConeCurvature(m.ThetaMax, a)
	unfold := m.Alpha * (3.0 - d) / (a * a)
	return chiral + cone + unfold
}

// ConeCurvature sums the deficit-angle curvature of the six cone tips.
func ConeCurvature(thetaMaxDeg, a float64) float64 {
	theta := thetaMaxDeg * math.Pi / 180.0
	deficit := 2.0 * math.Pi * (1.0 - math.Sin(theta))
	return 6.0 * deficit / (a * a)
}

// ConformalFactor is φ = ln√(-g) for a FLRW metric with determinant -a^(2D).
func ConformalFactor(a, d float64) float64 {
	return d * math.Log(a)
}
