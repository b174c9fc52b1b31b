package viz

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"
	"unicode/utf8"

	"go.uber.org/goleak"

	"github.com/san-kum/sdgft/internal/background"
	"github.com/san-kum/sdgft/internal/flow"
	"github.com/san-kum/sdgft/internal/params"
	"github.com/san-kum/sdgft/internal/perturb"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestSampleMatchesSerial(t *testing.T) {
	xs := Linspace(-2, 2, 97)
	square := func(x float64) (float64, error) { return x * x, nil }

	for _, limit := range []int{0, 1, 3, 16} {
		ys, err := Sample(context.Background(), xs, square, limit)
		if err != nil {
			t.Fatalf("limit %d: %v", limit, err)
		}
		for i, x := range xs {
			if ys[i] != x*x {
				t.Fatalf("limit %d: ys[%d] = %g, want %g", limit, i, ys[i], x*x)
			}
		}
	}
}

func TestSampleError(t *testing.T) {
	boom := errors.New("boom")
	xs := Linspace(0, 1, 20)
	_, err := Sample(context.Background(), xs, func(x float64) (float64, error) {
		if x > 0.5 {
			return 0, boom
		}
		return x, nil
	}, 4)
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped boom", err)
	}
}

func TestSampleCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	calls := 0
	_, err := Sample(ctx, Linspace(0, 1, 10), func(x float64) (float64, error) {
		calls++
		return x, nil
	}, 1)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if calls != 0 {
		t.Errorf("f called %d times after cancel", calls)
	}
}

func TestLinspace(t *testing.T) {
	if Linspace(0, 1, 0) != nil {
		t.Error("n = 0 should give nil")
	}
	if got := Linspace(3, 5, 1); len(got) != 1 || got[0] != 3 {
		t.Errorf("n = 1: %v", got)
	}
	xs := Linspace(0, 1, 5)
	want := []float64{0, 0.25, 0.5, 0.75, 1}
	for i := range want {
		if math.Abs(xs[i]-want[i]) > 1e-15 {
			t.Errorf("xs[%d] = %g, want %g", i, xs[i], want[i])
		}
	}
}

func TestHubbleCurve(t *testing.T) {
	s := background.Default()
	c, err := HubbleCurve(context.Background(), s, 3, 31, 4)
	if err != nil {
		t.Fatal(err)
	}
	if len(c.Y) != 31 || len(c.Overlay) != 1 {
		t.Fatalf("got %d points, %d overlays", len(c.Y), len(c.Overlay))
	}
	if math.Abs(c.Y[0]-75.77) > 0.1 {
		t.Errorf("H(0) = %.3f km/s/Mpc, want ~75.77", c.Y[0])
	}
	if c.Y[30] <= c.Y[0] {
		t.Errorf("H should grow with z: H(0)=%g H(3)=%g", c.Y[0], c.Y[30])
	}

	out, err := Plot(c, PlotOptions{Height: 8, Width: 40})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "H [km/s/Mpc] vs z") {
		t.Errorf("caption missing from plot:\n%s", out)
	}
}

func TestDistanceCurve(t *testing.T) {
	c, err := DistanceCurve(context.Background(), background.Default(), 2, 20, 0)
	if err != nil {
		t.Fatal(err)
	}
	if c.X[0] <= 0 {
		t.Errorf("first redshift %g must be positive", c.X[0])
	}
	for i := 1; i < len(c.Y); i++ {
		if c.Y[i] <= c.Y[i-1] {
			t.Fatalf("mu not increasing at %d: %g <= %g", i, c.Y[i], c.Y[i-1])
		}
	}
}

func TestDimensionCurve(t *testing.T) {
	m := params.DefaultModel()
	grid := flow.UniformGrid(0, 1, 6)
	states, err := flow.PlanckTrajectory(grid, m, flow.Options{Steps: 100})
	if err != nil {
		t.Fatal(err)
	}
	c, err := DimensionCurve(grid, states)
	if err != nil {
		t.Fatal(err)
	}
	if c.Y[0] != states[0].D || c.Overlay[0].Y[5] != states[5].G {
		t.Errorf("curve does not mirror trajectory")
	}
	if _, err := DimensionCurve(grid[:2], states); !errors.Is(err, ErrEmptyCurve) {
		t.Errorf("mismatched lengths: err = %v", err)
	}
}

func TestSpectrumCurve(t *testing.T) {
	calc := perturb.New(params.DefaultModel(), params.DefaultCosmology(), params.DefaultNumerics(), params.DefaultConstants())
	c, err := SpectrumCurve(calc, 100)
	if err != nil {
		t.Fatal(err)
	}
	if len(c.X) != 99 || c.X[0] != 2 {
		t.Errorf("got %d multipoles starting at %g", len(c.X), c.X[0])
	}
	if _, err := SpectrumCurve(calc, 1); err == nil {
		t.Error("lMax = 1 should fail")
	}
}

func TestPlotEmpty(t *testing.T) {
	if _, err := Plot(Curve{}, DefaultPlotOptions()); !errors.Is(err, ErrEmptyCurve) {
		t.Errorf("err = %v", err)
	}
}

func TestFiniteFillsGaps(t *testing.T) {
	got := finite([]float64{1, math.NaN(), 3, math.Inf(1)})
	want := []float64{1, 1, 3, 3}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("finite[%d] = %g, want %g", i, got[i], want[i])
		}
	}
}

func TestSparkline(t *testing.T) {
	vals := Linspace(0, 1, 100)
	s := Sparkline(vals, 20)
	if n := utf8.RuneCountInString(s); n != 20 {
		t.Errorf("sparkline has %d runes, want 20", n)
	}
	ramp := Sparkline([]float64{0, 1, 2, 3, 4, 5, 6, 7}, 8)
	if ramp != "▁▂▃▄▅▆▇█" {
		t.Errorf("ramp = %q", ramp)
	}
	if Sparkline(nil, 5) != "─────" {
		t.Error("empty sparkline should be a rule")
	}
}

func TestThemes(t *testing.T) {
	if GetTheme("nope").Name != "cosmic" {
		t.Error("unknown theme should fall back to cosmic")
	}
	name := "cosmic"
	for range Themes {
		name = NextTheme(name).Name
	}
	if name != "cosmic" {
		t.Errorf("cycling all themes ended at %q", name)
	}
	if len(ThemeNames()) != len(Themes) {
		t.Error("theme names out of sync")
	}
}
