package geometry

import (
	"math"
	"testing"

	"github.com/san-kum/sdgft/internal/params"
)

func TestFractalDimensionBounds(t *testing.T) {
	m := params.DefaultModel()
	for chi := -30.0; chi <= 30.0; chi += 0.25 {
		d := FractalDimension(chi, m)
		if !(d > 2.0 && d < m.DAsymptotic) {
			t.Fatalf("D(%g) = %.17g outside (2, %g)", chi, d, m.DAsymptotic)
		}
	}
}

func TestFractalDimensionMonotonic(t *testing.T) {
	m := params.DefaultModel()
	prev := FractalDimension(-1000, m)
	for chi := -999.0; chi <= 1000.0; chi += 0.5 {
		d := FractalDimension(chi, m)
		if d < prev {
			t.Fatalf("D decreased at χ=%g: %g < %g", chi, d, prev)
		}
		prev = d
	}
}

func TestFractalDimensionLimits(t *testing.T) {
	m := params.DefaultModel()

	d0 := FractalDimension(0, m)
	if !(d0 > 2.0 && d0 < 2.8) {
		t.Errorf("D(0) = %g, want in (2, 2.8)", d0)
	}
	if math.Abs(d0-(2+m.DAsymptotic)/2) > 1e-15 {
		t.Errorf("D(0) = %g, want midpoint %g", d0, (2+m.DAsymptotic)/2)
	}

	far := 10 * m.ChiPlanck
	if got := FractalDimension(far, m); math.Abs(got-m.DAsymptotic) > 1e-12 {
		t.Errorf("D(10χ_P) = %.17g, want %.17g", got, m.DAsymptotic)
	}
}

func TestSafeExpSaturates(t *testing.T) {
	tests := []struct {
		x    float64
		want float64
	}{
		{0, 1},
		{1e6, math.Exp(params.ExponentClip)},
		{-1e6, math.Exp(-params.ExponentClip)},
	}
	for _, tt := range tests {
		got := SafeExp(tt.x)
		if got != tt.want {
			t.Errorf("SafeExp(%g) = %g, want %g", tt.x, got, tt.want)
		}
		if math.IsInf(got, 0) {
			t.Errorf("SafeExp(%g) overflowed", tt.x)
		}
	}
}

func TestGravitationalCoupling(t *testing.T) {
	m := params.DefaultModel()
	c := params.DefaultConstants()

	if got := GravitationalCoupling(0, m, c); math.Abs(got/c.NewtonG-1) > 1e-9 {
		t.Errorf("G(0)/G_N = %g, want 1", got/c.NewtonG)
	}
	for _, chi := range []float64{-1e4, -50, -1, 1, 50, 1e4} {
		g := GravitationalCoupling(chi, m, c)
		if math.IsNaN(g) || math.IsInf(g, 0) || g <= 0 {
			t.Errorf("G(%g) = %g, want finite positive", chi, g)
		}
	}
	// (D-3)χ < 0 for χ > 0, so gravity weakens toward the UV side.
	if GravitationalCoupling(1, m, c) >= c.NewtonG {
		t.Error("G(1) should be below G_N")
	}
}

func TestCosmologicalTerm(t *testing.T) {
	m := params.DefaultModel()
	got := CosmologicalTerm(0, m, 1)
	if want := 1 + m.XiG; math.Abs(got-want) > 1e-15 {
		t.Errorf("Λ(0) = %g, want %g", got, want)
	}
	if v := CosmologicalTerm(-1e5, m, 1); math.IsInf(v, 0) || math.IsNaN(v) {
		t.Errorf("Λ(-1e5) = %g, want finite", v)
	}
}

func TestQuantumGeometry(t *testing.T) {
	m := params.DefaultModel()
	d := FractalDimension(0, m)

	// At a = 1: 36ξ + (β/4π)θ²·12π(1-sin θ) + α(3-D).
	theta := math.Pi / 6
	want := 36*m.XiG + m.Beta/(4*math.Pi)*theta*theta*12*math.Pi*(1-math.Sin(theta)) + m.Alpha*(3-d)
	if got := QuantumGeometry(1, d, m); math.Abs(got-want) > 1e-12 {
		t.Errorf("Q(1) = %.15g, want %.15g", got, want)
	}
	if QuantumGeometry(0.5, d, m) <= QuantumGeometry(1, d, m) {
		t.Error("Q should grow toward small a")
	}
}

func TestConformalFactor(t *testing.T) {
	if got := ConformalFactor(1, 2.5); got != 0 {
		t.Errorf("φ(1) = %g, want 0", got)
	}
	if got := ConformalFactor(math.E, 2.5); math.Abs(got-2.5) > 1e-15 {
		t.Errorf("φ(e) = %g, want 2.5", got)
	}
}

func TestPrimordialObservables(t *testing.T) {
	m := params.DefaultModel()
	c := params.DefaultConstants()

	r := TensorToScalar(m)
	if r < 1e-5 || r > 1e-4 {
		t.Errorf("r = %g, want O(1e-5)", r)
	}
	if got := EffectiveNeutrinoMass(m); math.Abs(got-0.015) > 1e-12 {
		t.Errorf("m_ββ = %g, want 0.015 at θ=30°", got)
	}
	if got := BaryonAsymmetry(m); got != 6.1e-10 {
		t.Errorf("η_B = %g", got)
	}
	m0 := m
	m0.XiG = 0
	if got := BaryonAsymmetry(m0); got != 0 {
		t.Errorf("η_B without CP violation = %g, want 0", got)
	}
	if got := IsocurvatureCorrection(c.PivotScale, m, c); math.Abs(got-1.3*m.BetaIso) > 1e-15 {
		t.Errorf("iso(k_pivot) = %g, want %g", got, 1.3*m.BetaIso)
	}
	if ns := SpectralIndex(c.PivotScale, 0.965, m, c); ns <= 0.965 {
		t.Errorf("n_s(k_pivot) = %g, want > n_s0 since D(0) < D∞", ns)
	}
}
