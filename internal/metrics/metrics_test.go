package metrics

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/sdgft/internal/dynamo"
	"github.com/san-kum/sdgft/internal/flow"
	"github.com/san-kum/sdgft/internal/params"
)

func TestDimensionRange(t *testing.T) {
	d := NewDimensionRange()
	for _, v := range []float64{2.3, 2.1, 2.6} {
		d.OnStep(dynamo.State{1, v}, 0)
	}
	if math.Abs(d.Value()-0.5) > 1e-15 || d.Min() != 2.1 || d.Max() != 2.6 {
		t.Errorf("range = %g [%g, %g]", d.Value(), d.Min(), d.Max())
	}
	d.Reset()
	if d.Value() != 0 {
		t.Errorf("after reset: %g", d.Value())
	}
}

func TestCouplingPeak(t *testing.T) {
	c := NewCouplingPeak("G", IndexG)
	c.OnStep(dynamo.State{0.5}, 0)
	c.OnStep(dynamo.State{-2}, 1)
	c.OnStep(dynamo.State{1}, 2)
	if c.Value() != 2 || c.At() != 1 {
		t.Errorf("peak %g at %g", c.Value(), c.At())
	}
	if c.Name() != "G_peak" {
		t.Errorf("name %q", c.Name())
	}
}

func TestFinite(t *testing.T) {
	f := NewFinite()
	f.OnStep(dynamo.State{1, 2}, 0)
	f.OnStep(dynamo.State{math.Inf(1), 2}, 0.5)
	f.OnStep(dynamo.State{math.NaN(), 2}, 1)
	f.OnStep(dynamo.State{1, 2}, 1.5)
	if f.Value() != 0.5 {
		t.Errorf("finite fraction %g", f.Value())
	}
	if bad, at := f.Diverged(); !bad || at != 0.5 {
		t.Errorf("Diverged() = %v, %g", bad, at)
	}
	if err := f.Err(); !errors.Is(err, dynamo.ErrInvalidState) {
		t.Errorf("Err() = %v", err)
	}
	if err := Divergence([]dynamo.Metric{NewDimensionRange(), f}); !errors.Is(err, dynamo.ErrInvalidState) {
		t.Errorf("Divergence() = %v", err)
	}

	f.Reset()
	f.OnStep(dynamo.State{1, 2}, 0)
	if err := f.Err(); err != nil {
		t.Errorf("Err() after reset = %v", err)
	}
	if err := Divergence(Standard()); err != nil {
		t.Errorf("Divergence() on fresh metrics = %v", err)
	}
}

func TestStability(t *testing.T) {
	tests := []struct {
		name   string
		states []dynamo.State
		want   float64
	}{
		{"empty", nil, 1},
		{"all inside", []dynamo.State{{1}, {-1}}, 1},
		{"one out", []dynamo.State{{1}, {20}}, 0.5},
		{"nan counts as out", []dynamo.State{{math.NaN()}}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStability(10)
			for _, x := range tt.states {
				s.OnStep(x, 0)
			}
			if got := s.Value(); got != tt.want {
				t.Errorf("Value() = %g, want %g", got, tt.want)
			}
		})
	}
}

func TestStandardOnTrajectory(t *testing.T) {
	ms := Standard()
	opts := flow.DefaultOptions()
	opts.Observers = Observers(ms)

	grid := flow.UniformGrid(0, 0.5, 6)
	if _, err := flow.PlanckTrajectory(grid, params.DefaultModel(), opts); err != nil {
		t.Fatal(err)
	}
	vals := Values(ms)
	if vals["finite"] != 1 || vals["stability"] != 1 {
		t.Errorf("short flow should stay finite and bounded: %v", vals)
	}
	if vals["dimension_range"] <= 0 {
		t.Errorf("D did not move: %v", vals)
	}
	if vals["G_peak"] != 1 {
		t.Errorf("G peaks at the Planck start, got %v", vals["G_peak"])
	}
}
