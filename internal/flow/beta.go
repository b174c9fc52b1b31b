package flow

import (
	"math"

	"github.com/san-kum/sdgft/internal/geometry"
	"github.com/san-kum/sdgft/internal/params"
)

// One-loop Standard Model gauge coefficients for SU(3), SU(2), U(1).
var gaugeCoefficients = [3]float64{-7.0, -19.0 / 6.0, 41.0 / 10.0}

// GaugeCoefficient returns the one-loop coefficient b_i of gauge group i.
func GaugeCoefficient(i int) float64 {
	return gaugeCoefficients[i]
}

// BetaG is dG/dχ = (D-3)G + (2/3π)G² + (β/24)G³.
func BetaG(g, d float64, m params.Model) float64 {
	return (d-3.0)*g + 2.0/(3.0*math.Pi)*g*g + m.Beta/24.0*g*g*g
}

// BetaD is dD/dχ = -(3-D)²/(4π) + exp(-χ/χ_P)/24.
func BetaD(d, chi float64, m params.Model) float64 {
	s := 3.0 - d
	return -s*s/(4.0*math.Pi) + geometry.SafeExp(-chi/m.ChiPlanck)/24.0
}

// BetaDPrime is ∂β_D/∂D.
func BetaDPrime(d float64) float64 {
	return (3.0 - d) / (2.0 * math.Pi)
}

// BetaLambda is dΛ/dχ = -(3-D)Λ + ξ_G·G²/(16π²).
func BetaLambda(lambda, g, d float64, m params.Model) float64 {
	return -(3.0-d)*lambda + m.XiG*g*g/loopFactor()
}

// BetaGauge is the one-loop SM running of gauge coupling i plus the
// dimension and emergence corrections.
func BetaGauge(i int, gi, d float64, m params.Model) float64 {
	cube := gi * gi * gi
	sm := gaugeCoefficients[i] * cube / loopFactor()
	return sm + (d-3.0)*gi + m.Beta/(8.0*math.Pi*math.Pi)*cube
}

// BetaYukawa returns the one-loop running of the third-generation Yukawas
// with the (D-3)y dimension correction.
func BetaYukawa(s State) [3]float64 {
	l := loopFactor()
	yt, yb, ytau := s.Yukawa[Top], s.Yukawa[Bottom], s.Yukawa[Tau]
	g3sq := s.Gauge[SU3] * s.Gauge[SU3]
	g2sq := s.Gauge[SU2] * s.Gauge[SU2]
	g1sq := s.Gauge[U1] * s.Gauge[U1]
	yt2, yb2, ytau2 := yt*yt, yb*yb, ytau*ytau
	dim := s.D - 3.0

	return [3]float64{
		yt/l*(4.5*yt2+1.5*yb2+ytau2-8*g3sq-2.25*g2sq-0.85*g1sq) + dim*yt,
		yb/l*(1.5*yt2+4.5*yb2+ytau2-8*g3sq-2.25*g2sq-0.25*g1sq) + dim*yb,
		ytau/l*(3*yt2+3*yb2+2.5*ytau2-2.25*g2sq-2.25*g1sq) + dim*ytau,
	}
}

// Betas evaluates every beta function at (s, χ).
func Betas(s State, chi float64, m params.Model) State {
	var out State
	out.G = BetaG(s.G, s.D, m)
	out.D = BetaD(s.D, chi, m)
	out.Lambda = BetaLambda(s.Lambda, s.G, s.D, m)
	for i := range s.Gauge {
		out.Gauge[i] = BetaGauge(i, s.Gauge[i], s.D, m)
	}
	out.Yukawa = BetaYukawa(s)
	return out
}
