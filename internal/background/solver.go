package background

import (
	"fmt"
	"math"

	"github.com/san-kum/sdgft/internal/geometry"
	"github.com/san-kum/sdgft/internal/params"
)

// Solver holds the parameter set of one background evaluation.
type Solver struct {
	model  params.Model
	cosmo  params.Cosmology
	num    params.Numerics
	consts params.Constants

	h0        float64 // s^-1
	rhoCrit   float64 // kg/m^3
	omegaR    float64
	lambda0   float64 // s^-2
	curvature float64 // K, s^-2
}

// New validates the parameters and precomputes the derived constants.
func New(m params.Model, cosmo params.Cosmology, num params.Numerics, k params.Constants) (Solver, error) {
	if err := m.Validate(); err != nil {
		return Solver{}, err
	}
	if err := cosmo.Validate(); err != nil {
		return Solver{}, err
	}
	if err := num.Validate(); err != nil {
		return Solver{}, err
	}

	h0 := cosmo.H0(k)
	return Solver{
		model:     m,
		cosmo:     cosmo,
		num:       num,
		consts:    k,
		h0:        h0,
		rhoCrit:   3 * h0 * h0 / (8 * math.Pi * k.NewtonG),
		omegaR:    cosmo.OmegaR(k),
		lambda0:   3 * cosmo.OmegaL * h0 * h0,
		curvature: -cosmo.OmegaK * h0 * h0,
	}, nil
}

// Default returns a solver over the default parameter set.
func Default() Solver {
	s, err := New(params.DefaultModel(), params.DefaultCosmology(), params.DefaultNumerics(), params.DefaultConstants())
	if err != nil {
		panic(fmt.Sprintf("background: default parameters invalid: %v", err))
	}
	return s
}

func (s Solver) Model() params.Model         { return s.model }
func (s Solver) Cosmology() params.Cosmology { return s.cosmo }
func (s Solver) Numerics() params.Numerics   { return s.num }
func (s Solver) Constants() params.Constants { return s.consts }

// WithNumerics returns a copy of s using n.
func (s Solver) WithNumerics(n params.Numerics) (Solver, error) {
	if err := n.Validate(); err != nil {
		return Solver{}, err
	}
	s.num = n
	return s, nil
}

// H0 is the input Hubble constant in s^-1.
func (s Solver) H0() float64 { return s.h0 }

// KmPerSecPerMpc converts a rate in s^-1 to km/s/Mpc.
func (s Solver) KmPerSecPerMpc(h float64) float64 {
	return h * s.consts.Megaparsec / 1000
}

// Components is the energy density split at one scale factor, in kg/m^3.
type Components struct {
	Matter    float64
	Radiation float64
}

func (c Components) Total() float64 { return c.Matter + c.Radiation }

// Density returns the matter and radiation densities at a. Radiation
// dilutes as a^-(D+1) instead of a^-4.
func (s Solver) Density(a float64) (Components, error) {
	if err := checkScale(a); err != nil {
		return Components{}, err
	}
	return s.density(a, geometry.FractalDimension(math.Log(a), s.model)), nil
}

func (s Solver) density(a, d float64) Components {
	a3 := a * a * a
	return Components{
		Matter:    s.cosmo.OmegaM() * s.rhoCrit / a3,
		Radiation: s.omegaR * s.rhoCrit / (a3 * a) * math.Pow(a, 3-d),
	}
}

// HubbleSquared evaluates the right-hand side of the Friedmann equation
// without the sign check.
func (s Solver) HubbleSquared(a float64) (float64, error) {
	if err := checkScale(a); err != nil {
		return 0, err
	}
	h2 := s.hubbleSquared(a)
	if math.IsNaN(h2) || math.IsInf(h2, 0) {
		return 0, fmt.Errorf("%w: a = %g", ErrDegenerate, a)
	}
	return h2, nil
}

func (s Solver) hubbleSquared(a float64) float64 {
	chi := math.Log(a)
	d := geometry.FractalDimension(chi, s.model)
	g := geometry.GravitationalCoupling(chi, s.model, s.consts)
	lambda := geometry.CosmologicalTerm(chi, s.model, s.lambda0)
	q := s.h0 * s.h0 * geometry.QuantumGeometry(a, d, s.model)
	rho := s.density(a, d).Total()

	h2 := 8*math.Pi*g/3*rho + lambda/3 + q/3
	if s.curvature != 0 {
		h2 -= s.curvature / (a * a)
	}
	return h2
}

// Hubble returns H(a) in s^-1.
func (s Solver) Hubble(a float64) (float64, error) {
	h2, err := s.HubbleSquared(a)
	if err != nil {
		return 0, err
	}
	if h2 < 0 {
		return 0, &UnphysicalError{A: a, H2: h2}
	}
	return math.Sqrt(h2), nil
}

// HubbleAtZ returns H at redshift z, a = 1/(1+z).
func (s Solver) HubbleAtZ(z float64) (float64, error) {
	if !(z > -1) || math.IsInf(z, 1) {
		return 0, fmt.Errorf("%w: z = %g must be > -1", ErrInvalidRedshift, z)
	}
	return s.Hubble(1 / (1 + z))
}

// Acceleration returns ä/a in s^-2: matter is pressureless, radiation has
// p = ρ/3 and the quantum-geometry term accelerates with weight (D-2)/3.
func (s Solver) Acceleration(a float64) (float64, error) {
	if err := checkScale(a); err != nil {
		return 0, err
	}
	chi := math.Log(a)
	d := geometry.FractalDimension(chi, s.model)
	g := geometry.GravitationalCoupling(chi, s.model, s.consts)
	lambda := geometry.CosmologicalTerm(chi, s.model, s.lambda0)
	rho := s.density(a, d)
	q := s.h0 * s.h0 * geometry.QuantumGeometry(a, d, s.model)

	acc := -4*math.Pi*g/3*(rho.Matter+2*rho.Radiation) + lambda/3 + q*(d-2)/3
	if math.IsNaN(acc) || math.IsInf(acc, 0) {
		return 0, fmt.Errorf("%w: a = %g", ErrDegenerate, a)
	}
	return acc, nil
}

// Deceleration returns q = -(ä/a)/H².
func (s Solver) Deceleration(a float64) (float64, error) {
	acc, err := s.Acceleration(a)
	if err != nil {
		return 0, err
	}
	h, err := s.Hubble(a)
	if err != nil {
		return 0, err
	}
	return -acc / (h * h), nil
}

func checkScale(a float64) error {
	if !(a > 0) || math.IsInf(a, 1) {
		return fmt.Errorf("%w: a = %g", ErrInvalidScaleFactor, a)
	}
	return nil
}
