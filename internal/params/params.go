// Package params holds the immutable scalar configuration shared by every
// evaluator: the geometric/coupling model, the background cosmology, the
// numerical knobs and the physical constants.
//
// Values are created once (usually through the Default* constructors or a
// config file) and passed by value; nothing in this module mutates them.
package params

import (
	"errors"
	"fmt"
	"math"
)

// ErrParameterBounds indicates a parameter value outside its valid range.
var ErrParameterBounds = errors.New("params: parameter out of valid bounds")

// ExponentClip bounds every exponent argument so that exp stays finite.
const ExponentClip = 700.0

// Constants collects every physical literal used by the evaluators.
type Constants struct {
	NewtonG         float64 // m^3 kg^-1 s^-2
	SpeedOfLight    float64 // m/s
	Megaparsec      float64 // m
	Year            float64 // s
	PlanckMassGeV   float64
	ReferenceGeV    float64 // k0 of the scale variable
	LambdaObserved  float64 // m^-2
	PhotonDensityH2 float64 // Ω_γ h² at T = CMBReference
	NeutrinoFactor  float64 // ρ_ν / ρ_γ per effective species
	CMBReference    float64 // K
	EarlyRedshift   float64
	LateRedshift    float64
	PivotScale      float64 // Mpc^-1
	GravityClip     float64
}

func DefaultConstants() Constants {
	return Constants{
		NewtonG:         6.67430e-11,
		SpeedOfLight:    299792458.0,
		Megaparsec:      3.08567758e22,
		Year:            365.25 * 24.0 * 3600.0,
		PlanckMassGeV:   1.220910e19,
		ReferenceGeV:    1.0,
		LambdaObserved:  1.1056e-52,
		PhotonDensityH2: 2.469e-5,
		NeutrinoFactor:  0.2271,
		CMBReference:    2.7255,
		EarlyRedshift:   1100.0,
		LateRedshift:    0.1,
		PivotScale:      0.05,
		GravityClip:     10.0,
	}
}

// Model is the scale-dependent geometry and coupling model.
type Model struct {
	ThetaMax    float64 `yaml:"theta_max"`    // maximum cone angle [deg]
	DAsymptotic float64 `yaml:"d_asymptotic"` // asymptotic fractal dimension
	XiG         float64 `yaml:"xi_g"`         // chirality / CP coefficient
	Beta        float64 `yaml:"beta"`         // emergence strength
	Alpha       float64 `yaml:"alpha"`        // unfolding parameter
	ChiPlanck   float64 `yaml:"chi_planck"`   // reference (Planck) scale
	BetaIso     float64 `yaml:"beta_iso"`     // isocurvature amplitude
}

func DefaultModel() Model {
	c := DefaultConstants()
	return Model{
		ThetaMax:    30.0,
		DAsymptotic: 2.7916667,
		XiG:         0.004,
		Beta:        0.1,
		Alpha:       1.0,
		ChiPlanck:   math.Log(c.PlanckMassGeV / c.ReferenceGeV),
		BetaIso:     0.028,
	}
}

// ThetaRadians returns the cone angle in radians.
func (m Model) ThetaRadians() float64 {
	return m.ThetaMax * math.Pi / 180.0
}

func (m Model) Validate() error {
	switch {
	case !finite(m.ThetaMax, m.DAsymptotic, m.XiG, m.Beta, m.Alpha, m.ChiPlanck, m.BetaIso):
		return fmt.Errorf("%w: model contains NaN or Inf", ErrParameterBounds)
	case m.ThetaMax <= 0 || m.ThetaMax >= 90:
		return fmt.Errorf("%w: theta_max must be in (0, 90), got %g", ErrParameterBounds, m.ThetaMax)
	case m.DAsymptotic < 2 || m.DAsymptotic > 3:
		return fmt.Errorf("%w: d_asymptotic must be in [2, 3], got %g", ErrParameterBounds, m.DAsymptotic)
	case m.Alpha <= 0:
		return fmt.Errorf("%w: alpha must be positive, got %g", ErrParameterBounds, m.Alpha)
	case m.ChiPlanck <= 0:
		return fmt.Errorf("%w: chi_planck must be positive, got %g", ErrParameterBounds, m.ChiPlanck)
	}
	return nil
}

// Cosmology is the background cosmology.
type Cosmology struct {
	H        float64 `yaml:"h"` // H0 / (100 km/s/Mpc)
	OmegaB   float64 `yaml:"omega_b"`
	OmegaCDM float64 `yaml:"omega_cdm"`
	OmegaK   float64 `yaml:"omega_k"`
	OmegaL   float64 `yaml:"omega_lambda"`
	TCMB     float64 `yaml:"t_cmb"` // K
	NEff     float64 `yaml:"n_eff"`
	As       float64 `yaml:"a_s"`
	Ns       float64 `yaml:"n_s"`
	TauReio  float64 `yaml:"tau_reio"`
}

func DefaultCosmology() Cosmology {
	return Cosmology{
		H:        0.674,
		OmegaB:   0.0493,
		OmegaCDM: 0.264,
		OmegaK:   0.0,
		OmegaL:   0.6847,
		TCMB:     2.7255,
		NEff:     3.046,
		As:       2.1e-9,
		Ns:       0.965,
		TauReio:  0.0544,
	}
}

// OmegaM is the total matter density fraction.
func (c Cosmology) OmegaM() float64 {
	return c.OmegaB + c.OmegaCDM
}

// OmegaR is the radiation density fraction (photons plus neutrinos).
func (c Cosmology) OmegaR(k Constants) float64 {
	t := c.TCMB / k.CMBReference
	photons := k.PhotonDensityH2 / (c.H * c.H) * t * t * t * t
	return photons * (1.0 + k.NeutrinoFactor*c.NEff)
}

// H0 returns the Hubble constant in s^-1.
func (c Cosmology) H0(k Constants) float64 {
	return c.H * 100.0 * 1000.0 / k.Megaparsec
}

func (c Cosmology) Validate() error {
	switch {
	case !finite(c.H, c.OmegaB, c.OmegaCDM, c.OmegaK, c.OmegaL, c.TCMB, c.NEff, c.As, c.Ns, c.TauReio):
		return fmt.Errorf("%w: cosmology contains NaN or Inf", ErrParameterBounds)
	case c.H <= 0:
		return fmt.Errorf("%w: h must be positive, got %g", ErrParameterBounds, c.H)
	case c.OmegaB < 0 || c.OmegaCDM < 0:
		return fmt.Errorf("%w: matter densities must be non-negative", ErrParameterBounds)
	case c.TCMB < 0 || c.NEff < 0:
		return fmt.Errorf("%w: t_cmb and n_eff must be non-negative", ErrParameterBounds)
	}
	return nil
}

func finite(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
