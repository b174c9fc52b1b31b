package analysis

import "math"

// Criterion is a window outside of which a measurement falsifies the model.
type Criterion struct {
	Quantity   string
	Prediction float64
	Below      float64 // falsified if measured below; NaN when open
	Above      float64 // falsified if measured above; NaN when open
	Test       string
	Year       int
}

// Falsified reports whether a measured value lies outside the window.
func (c Criterion) Falsified(measured float64) bool {
	if !math.IsNaN(c.Below) && measured < c.Below {
		return true
	}
	return !math.IsNaN(c.Above) && measured > c.Above
}

func FalsificationCriteria(p Predictions) []Criterion {
	open := math.NaN()
	return []Criterion{
		{Quantity: "beta_iso", Prediction: p.BetaIso, Below: 0.002, Above: 0.050, Test: "CMB-S4", Year: 2030},
		{Quantity: "m_betabeta [meV]", Prediction: p.MBetaBetaMeV, Below: 10.0, Above: 20.0, Test: "LEGEND-1000", Year: 2030},
		{Quantity: "S_8", Prediction: 0.76, Below: open, Above: 0.83, Test: "EUCLID/DESI", Year: 2025},
		{Quantity: "r", Prediction: p.R, Below: open, Above: 0.01, Test: "CMB-S4", Year: 2030},
	}
}
