package background

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/sdgft/internal/geometry"
	"github.com/san-kum/sdgft/internal/params"
)

// LuminosityDistance returns d_L(z) in Mpc by the midpoint rule over
// DistanceSamples sub-intervals of [0, z].
func (s Solver) LuminosityDistance(z float64) (float64, error) {
	if !(z > 0) || math.IsInf(z, 1) {
		return 0, fmt.Errorf("%w: distance needs z > 0, got %g", ErrInvalidRedshift, z)
	}
	n := s.num.DistanceSamples
	dz := z / float64(n)
	integral := 0.0
	for i := 0; i < n; i++ {
		h, err := s.HubbleAtZ((float64(i) + 0.5) * dz)
		if err != nil {
			return 0, err
		}
		integral += dz / h
	}
	dl := s.consts.SpeedOfLight * (1 + z) * integral
	return dl / s.consts.Megaparsec, nil
}

// DistanceModulus returns μ(z) = 5·log10(d_L/Mpc) + 25.
func (s Solver) DistanceModulus(z float64) (float64, error) {
	dl, err := s.LuminosityDistance(z)
	if err != nil {
		return 0, err
	}
	return 5*math.Log10(dl) + 25, nil
}

// AgeResult is the age integral with its bookkeeping.
type AgeResult struct {
	Seconds float64
	Years   float64
	Samples int
	Skipped int
}

// Gyr returns the age in billions of years.
func (r AgeResult) Gyr() float64 { return r.Years / 1e9 }

// Age integrates t0 = ∫ da/(aH) over (0, 1] with the right-endpoint rule
// on a = i/N. Unphysical samples either abort the integral or are dropped
// from the sum, depending on Numerics.AgePolicy.
func (s Solver) Age() (AgeResult, error) {
	n := s.num.AgeSamples
	da := 1 / float64(n)
	res := AgeResult{Samples: n}
	for i := 1; i <= n; i++ {
		a := float64(i) * da
		h, err := s.Hubble(a)
		if err != nil {
			if s.num.AgePolicy == params.AgeSkipUnphysical && errors.Is(err, ErrUnphysical) {
				res.Skipped++
				continue
			}
			return AgeResult{}, err
		}
		res.Seconds += da / (a * h)
	}
	res.Years = res.Seconds / s.consts.Year
	return res, nil
}

// Tension holds the two Hubble-constant estimates in km/s/Mpc.
type Tension struct {
	Early   float64
	Late    float64
	Percent float64 // 100·|late-early|/early
}

// ResolveTension extrapolates H at the early (CMB) and late (SNe)
// redshifts to today: the standard expansion E(z) is divided out and the
// coupling drift is undone with √(G(0)/G(χ_z)).
func (s Solver) ResolveTension() (Tension, error) {
	early, err := s.extrapolateH0(s.consts.EarlyRedshift)
	if err != nil {
		return Tension{}, fmt.Errorf("early estimate: %w", err)
	}
	late, err := s.extrapolateH0(s.consts.LateRedshift)
	if err != nil {
		return Tension{}, fmt.Errorf("late estimate: %w", err)
	}
	return Tension{
		Early:   early,
		Late:    late,
		Percent: 100 * math.Abs(late-early) / early,
	}, nil
}

func (s Solver) extrapolateH0(z float64) (float64, error) {
	h, err := s.HubbleAtZ(z)
	if err != nil {
		return 0, err
	}
	e := s.StandardExpansion(z)
	if !(e > 0) {
		return 0, &UnphysicalError{A: 1 / (1 + z), H2: e * e}
	}
	chi := -math.Log1p(z)
	g0 := geometry.GravitationalCoupling(0, s.model, s.consts)
	gz := geometry.GravitationalCoupling(chi, s.model, s.consts)
	return s.KmPerSecPerMpc(h / e * math.Sqrt(g0/gz)), nil
}

// StandardExpansion is the ΛCDM E(z) = H(z)/H0 for the same density
// fractions, or NaN where E² < 0.
func (s Solver) StandardExpansion(z float64) float64 {
	zp := 1 + z
	e2 := s.cosmo.OmegaM()*zp*zp*zp + s.omegaR*zp*zp*zp*zp + s.cosmo.OmegaL + s.cosmo.OmegaK*zp*zp
	if e2 < 0 {
		return math.NaN()
	}
	return math.Sqrt(e2)
}
