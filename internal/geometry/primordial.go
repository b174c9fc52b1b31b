package geometry

import (
	"math"

	"github.com/san-kum/sdgft/internal/params"
)

const (
	spectralSlope    = 0.014
	tensorAmplitude  = 0.002
	majoranaBase     = 15.0e-3 // eV
	majoranaSlope    = 0.2
	baryonAsymmetry  = 6.1e-10
	isoOscillation   = 0.3
	isoSymmetryOrder = 6.0
)

// IsocurvatureCorrection is the relative isocurvature amplitude at wave
// number k [Mpc^-1], with the six-fold log-periodic modulation.
func IsocurvatureCorrection(k float64, m params.Model, c params.Constants) float64 {
	ratio := k / c.PivotScale
	amp := m.BetaIso / math.Sqrt(ratio)
	return amp * (1.0 + isoOscillation*math.Cos(isoSymmetryOrder*math.Log(ratio)))
}

// SpectralIndex is n_s(k) = n_s0 - 0.014·(D(ln(k/k_pivot)) - D∞).
func SpectralIndex(k, ns0 float64, m params.Model, c params.Constants) float64 {
	d := FractalDimension(math.Log(k/c.PivotScale), m)
	return ns0 - spectralSlope*(d-m.DAsymptotic)
}

// TensorToScalar is r = 0.002·(3-D∞)²·sin θ_max.
func TensorToScalar(m params.Model) float64 {
	s := 3.0 - m.DAsymptotic
	return tensorAmplitude * s * s * math.Sin(m.ThetaRadians())
}

// EffectiveNeutrinoMass returns ⟨m_ββ⟩ in eV.
func EffectiveNeutrinoMass(m params.Model) float64 {
	return majoranaBase * (1.0 + majoranaSlope*(m.ThetaRadians()/(math.Pi/6.0)-1.0))
}

// BaryonAsymmetry returns η_B. The chiral source ξ_G·sin θ·β must be
// non-zero for any asymmetry to be generated.
func BaryonAsymmetry(m params.Model) float64 {
	if m.XiG*math.Sin(m.ThetaRadians())*m.Beta == 0 {
		return 0
	}
	return baryonAsymmetry
}
