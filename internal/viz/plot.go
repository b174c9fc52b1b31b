package viz

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/sdgft/internal/background"
	"github.com/san-kum/sdgft/internal/flow"
	"github.com/san-kum/sdgft/internal/perturb"
)

var ErrEmptyCurve = errors.New("viz: curve has no points")

// Curve is a sampled observable ready for plotting.
type Curve struct {
	Name    string
	XLabel  string
	YLabel  string
	X       []float64
	Y       []float64
	Overlay []Curve
}

type PlotOptions struct {
	Height int
	Width  int
}

func DefaultPlotOptions() PlotOptions {
	return PlotOptions{Height: 12, Width: 70}
}

var overlayColors = []asciigraph.AnsiColor{
	asciigraph.Default,
	asciigraph.Red,
	asciigraph.Green,
	asciigraph.Blue,
	asciigraph.Yellow,
}

// Plot renders c and its overlays as an ASCII chart.
func Plot(c Curve, opts PlotOptions) (string, error) {
	if len(c.Y) == 0 {
		return "", ErrEmptyCurve
	}
	if opts.Height <= 0 || opts.Width <= 0 {
		opts = DefaultPlotOptions()
	}

	caption := fmt.Sprintf("%s vs %s", c.YLabel, c.XLabel)
	if len(c.X) > 0 {
		caption += fmt.Sprintf("  [%s = %.3g .. %.3g]", c.XLabel, c.X[0], c.X[len(c.X)-1])
	}

	series := [][]float64{finite(c.Y)}
	for _, o := range c.Overlay {
		if len(o.Y) > 0 {
			series = append(series, finite(o.Y))
		}
	}

	colors := make([]asciigraph.AnsiColor, len(series))
	for i := range colors {
		colors[i] = overlayColors[i%len(overlayColors)]
	}

	return asciigraph.PlotMany(series,
		asciigraph.Height(opts.Height),
		asciigraph.Width(opts.Width),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(colors...),
	), nil
}

// finite replaces non-finite samples with the previous finite one so
// asciigraph can scale the axis.
func finite(ys []float64) []float64 {
	out := make([]float64, len(ys))
	last := 0.0
	for i, y := range ys {
		if math.IsNaN(y) || math.IsInf(y, 0) {
			y = last
		}
		out[i] = y
		last = y
	}
	return out
}

// HubbleCurve samples H(z) in km/s/Mpc on [0, maxZ] and overlays the
// standard LCDM expansion.
func HubbleCurve(ctx context.Context, s background.Solver, maxZ float64, n, workers int) (Curve, error) {
	zs := Linspace(0, maxZ, n)
	hs, err := Sample(ctx, zs, func(z float64) (float64, error) {
		h, err := s.HubbleAtZ(z)
		if err != nil {
			return 0, err
		}
		return s.KmPerSecPerMpc(h), nil
	}, workers)
	if err != nil {
		return Curve{}, err
	}

	lcdm := make([]float64, len(zs))
	for i, z := range zs {
		lcdm[i] = s.KmPerSecPerMpc(s.H0() * s.StandardExpansion(z))
	}

	return Curve{
		Name:    "hubble",
		XLabel:  "z",
		YLabel:  "H [km/s/Mpc]",
		X:       zs,
		Y:       hs,
		Overlay: []Curve{{Name: "lcdm", XLabel: "z", YLabel: "H [km/s/Mpc]", X: zs, Y: lcdm}},
	}, nil
}

// DistanceCurve samples mu(z) on (0, maxZ]. The first point is placed at
// maxZ/n since the modulus diverges at z = 0.
func DistanceCurve(ctx context.Context, s background.Solver, maxZ float64, n, workers int) (Curve, error) {
	if n < 1 {
		return Curve{}, ErrEmptyCurve
	}
	zs := Linspace(maxZ/float64(n), maxZ, n)
	mus, err := Sample(ctx, zs, s.DistanceModulus, workers)
	if err != nil {
		return Curve{}, err
	}
	return Curve{Name: "distance", XLabel: "z", YLabel: "mu [mag]", X: zs, Y: mus}, nil
}

// DimensionCurve extracts D(chi) from a flow trajectory and overlays G.
func DimensionCurve(grid []float64, states []flow.State) (Curve, error) {
	if len(states) == 0 || len(states) != len(grid) {
		return Curve{}, ErrEmptyCurve
	}
	d := make([]float64, len(states))
	g := make([]float64, len(states))
	for i, st := range states {
		d[i] = st.D
		g[i] = st.G
	}
	return Curve{
		Name:    "dimension",
		XLabel:  "chi",
		YLabel:  "D",
		X:       grid,
		Y:       d,
		Overlay: []Curve{{Name: "gravity", XLabel: "chi", YLabel: "G", X: grid, Y: g}},
	}, nil
}

// SpectrumCurve returns l(l+1)C_l/2pi for l = 2..lMax.
func SpectrumCurve(c perturb.Calculator, lMax int) (Curve, error) {
	cl, err := c.TemperatureSpectrum(lMax)
	if err != nil {
		return Curve{}, err
	}
	ls := make([]float64, 0, lMax-1)
	dl := make([]float64, 0, lMax-1)
	for l := 2; l <= lMax; l++ {
		fl := float64(l)
		ls = append(ls, fl)
		dl = append(dl, fl*(fl+1)*cl[l]/(2*math.Pi))
	}
	return Curve{Name: "spectrum", XLabel: "l", YLabel: "l(l+1)C_l/2pi", X: ls, Y: dl}, nil
}
