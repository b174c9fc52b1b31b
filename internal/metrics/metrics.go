// Package metrics provides checkpoint observers that summarize a flow
// trajectory into single numbers. Every type implements dynamo.Metric and
// can be passed in flow.Options.Observers.
package metrics

import (
	"fmt"
	"math"

	"github.com/san-kum/sdgft/internal/dynamo"
)

// Flow vector indices used by the metrics.
const (
	IndexG = 0
	IndexD = 1
)

// DimensionRange tracks the spread of the fractal dimension.
type DimensionRange struct {
	name     string
	min, max float64
	samples  int
}

func NewDimensionRange() *DimensionRange {
	return &DimensionRange{name: "dimension_range"}
}

func (d *DimensionRange) Name() string { return d.name }

func (d *DimensionRange) OnStep(x dynamo.State, chi float64) {
	if len(x) <= IndexD || math.IsNaN(x[IndexD]) {
		return
	}
	v := x[IndexD]
	if d.samples == 0 {
		d.min, d.max = v, v
	}
	d.min = math.Min(d.min, v)
	d.max = math.Max(d.max, v)
	d.samples++
}

func (d *DimensionRange) Min() float64 { return d.min }
func (d *DimensionRange) Max() float64 { return d.max }

func (d *DimensionRange) Value() float64 {
	return d.max - d.min
}

func (d *DimensionRange) Reset() {
	d.min, d.max = 0, 0
	d.samples = 0
}

// CouplingPeak records the largest |x[idx]| and the scale where it
// occurred.
type CouplingPeak struct {
	name  string
	index int
	peak  float64
	chi   float64
}

func NewCouplingPeak(name string, index int) *CouplingPeak {
	return &CouplingPeak{name: name + "_peak", index: index}
}

func (c *CouplingPeak) Name() string { return c.name }

func (c *CouplingPeak) OnStep(x dynamo.State, chi float64) {
	if c.index >= len(x) {
		return
	}
	if v := math.Abs(x[c.index]); v > c.peak {
		c.peak = v
		c.chi = chi
	}
}

func (c *CouplingPeak) Value() float64 { return c.peak }

// At returns the scale of the peak.
func (c *CouplingPeak) At() float64 { return c.chi }

func (c *CouplingPeak) Reset() {
	c.peak = 0
	c.chi = 0
}

// Finite counts checkpoints with NaN or Inf components. The flow integrator
// does not stop on divergence, so this is how callers notice it.
type Finite struct {
	name     string
	bad      int
	samples  int
	firstBad float64
}

func NewFinite() *Finite {
	return &Finite{name: "finite"}
}

func (f *Finite) Name() string { return f.name }

func (f *Finite) OnStep(x dynamo.State, chi float64) {
	f.samples++
	if !x.IsValid() {
		if f.bad == 0 {
			f.firstBad = chi
		}
		f.bad++
	}
}

// Value is the fraction of finite checkpoints.
func (f *Finite) Value() float64 {
	if f.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(f.bad)/float64(f.samples)
}

// Diverged reports whether any checkpoint was non-finite and, if so, the
// first scale where it happened.
func (f *Finite) Diverged() (bool, float64) {
	return f.bad > 0, f.firstBad
}

// Err wraps dynamo.ErrInvalidState when any checkpoint was non-finite.
func (f *Finite) Err() error {
	if f.bad == 0 {
		return nil
	}
	return fmt.Errorf("%w: %d of %d checkpoints, first at χ = %g",
		dynamo.ErrInvalidState, f.bad, f.samples, f.firstBad)
}

func (f *Finite) Reset() {
	f.bad = 0
	f.samples = 0
	f.firstBad = 0
}

// Stability is the fraction of checkpoints whose components all stay
// within a threshold.
type Stability struct {
	name       string
	threshold  float64
	violations int
	samples    int
}

func NewStability(threshold float64) *Stability {
	return &Stability{
		name:      "stability",
		threshold: threshold,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) OnStep(x dynamo.State, chi float64) {
	s.samples++
	for _, val := range x {
		if !(math.Abs(val) <= s.threshold) {
			s.violations++
			break
		}
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}

// Standard returns the default metric set for a flow run.
func Standard() []dynamo.Metric {
	return []dynamo.Metric{
		NewDimensionRange(),
		NewCouplingPeak("G", IndexG),
		NewFinite(),
		NewStability(1e3),
	}
}

// Observers converts metrics to observers for flow.Options.
func Observers(ms []dynamo.Metric) []dynamo.Observer {
	out := make([]dynamo.Observer, len(ms))
	for i, m := range ms {
		out[i] = m
	}
	return out
}

// Divergence returns the error of the first Finite metric in ms that saw a
// non-finite checkpoint.
func Divergence(ms []dynamo.Metric) error {
	for _, m := range ms {
		if f, ok := m.(*Finite); ok {
			if err := f.Err(); err != nil {
				return err
			}
		}
	}
	return nil
}

// Values collects metric values keyed by name.
func Values(ms []dynamo.Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}
