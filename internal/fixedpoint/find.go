package fixedpoint

import (
	"math"

	"github.com/san-kum/sdgft/internal/flow"
	"github.com/san-kum/sdgft/internal/params"
)

// Search window for the dimension root.
const (
	DMin = 1.0
	DMax = 4.0
)

// Point is a scale/state pair where β_D vanishes.
type Point struct {
	Chi      float64    `json:"chi"`
	State    flow.State `json:"state"`
	Residual float64    `json:"residual"` // |β_D| at the root
	Distance float64    `json:"distance"` // |D* - D∞|
}

// Result separates accepted fixed points from roots that fail the
// acceptance tolerance.
type Result struct {
	Points   []Point
	Rejected []Point
}

// Found reports whether at least one fixed point was accepted.
func (r Result) Found() bool {
	return len(r.Points) > 0
}

// Options control the scan. Zero values fall back to the numeric defaults.
type Options struct {
	Scales          []float64
	Samples         int
	Tol             float64
	MaxIter         int
	AcceptTolerance float64
}

// OptionsFrom builds scan options from the numeric settings: ScanScales
// scales evenly spaced on [0, χ_P].
func OptionsFrom(n params.Numerics, m params.Model) Options {
	return Options{
		Scales:          flow.UniformGrid(0, m.ChiPlanck, n.ScanScales),
		Samples:         n.ScanSamples,
		Tol:             n.RootTol,
		MaxIter:         n.MaxIter,
		AcceptTolerance: n.AcceptTolerance,
	}
}

func (o Options) withDefaults(m params.Model) Options {
	d := OptionsFrom(params.DefaultNumerics(), m)
	if len(o.Scales) == 0 {
		o.Scales = d.Scales
	}
	if o.Samples < 2 {
		o.Samples = d.Samples
	}
	if o.Tol <= 0 {
		o.Tol = d.Tol
	}
	if o.MaxIter < 1 {
		o.MaxIter = d.MaxIter
	}
	if o.AcceptTolerance <= 0 {
		o.AcceptTolerance = d.AcceptTolerance
	}
	return o
}

// Find scans every configured scale for roots of D ↦ β_D(D; χ). Roots
// within AcceptTolerance of D∞ are accepted; the rest are returned as
// rejected candidates. An error is returned only if a bracket fails to
// converge.
func Find(m params.Model, opts Options) (Result, error) {
	opts = opts.withDefaults(m)

	var res Result
	for _, chi := range opts.Scales {
		f := func(d float64) float64 { return flow.BetaD(d, chi, m) }
		for _, b := range Brackets(f, DMin, DMax, opts.Samples) {
			d, err := Newton(f, flow.BetaDPrime, b.Lo, b.Hi, opts.Tol, opts.MaxIter)
			if err != nil {
				return Result{}, err
			}
			p := Point{
				Chi:      chi,
				State:    StateAt(d, m),
				Residual: math.Abs(f(d)),
				Distance: math.Abs(d - m.DAsymptotic),
			}
			if p.Distance < opts.AcceptTolerance {
				res.Points = append(res.Points, p)
			} else {
				res.Rejected = append(res.Rejected, p)
			}
		}
	}
	return res, nil
}

// StateAt sets every remaining coupling to its own fixed point at
// dimension d: G* is the positive root of β_G/G, Λ* solves β_Λ = 0, gauge
// couplings take their non-trivial root where it is real and the Yukawas
// sit at the Gaussian point.
func StateAt(d float64, m params.Model) flow.State {
	s := flow.State{D: d}
	s.G = gravityFixedPoint(d, m)
	if d != 3 {
		s.Lambda = m.XiG * s.G * s.G / (16 * math.Pi * math.Pi * (3 - d))
	}
	for i := range s.Gauge {
		c := flow.GaugeCoefficient(i)/(16*math.Pi*math.Pi) + m.Beta/(8*math.Pi*math.Pi)
		if c != 0 && (3-d)/c > 0 {
			s.Gauge[i] = math.Sqrt((3 - d) / c)
		}
	}
	return s
}

// gravityFixedPoint solves (D-3) + (2/3π)G + (β/24)G² = 0 for G > 0.
func gravityFixedPoint(d float64, m params.Model) float64 {
	a := m.Beta / 24
	b := 2 / (3 * math.Pi)
	c := d - 3
	if a == 0 {
		if g := -c / b; g > 0 {
			return g
		}
		return 0
	}
	disc := b*b - 4*a*c
	if disc < 0 {
		return 0
	}
	g := (-b + math.Sqrt(disc)) / (2 * a)
	if g > 0 {
		return g
	}
	return 0
}
