package analysis

import "math"

// CompatibilitySigma is the distance beyond which a prediction is
// considered in conflict with a measurement.
const CompatibilitySigma = 3.0

// TensionResolvedPercent is the early/late gap below which the Hubble
// tension counts as resolved.
const TensionResolvedPercent = 5.0

// Comparison of one predicted quantity with one measurement.
type Comparison struct {
	Quantity   string
	Dataset    string
	Predicted  float64
	Observed   float64
	Sigma      float64
	Compatible bool
}

func compare(quantity, dataset string, predicted float64, m Measurement) Comparison {
	sigma := math.Inf(1)
	if m.Err > 0 {
		sigma = math.Abs(predicted-m.Value) / m.Err
	}
	return Comparison{
		Quantity:   quantity,
		Dataset:    dataset,
		Predicted:  predicted,
		Observed:   m.Value,
		Sigma:      sigma,
		Compatible: sigma < CompatibilitySigma,
	}
}

func CompareH0(quantity string, predicted float64, d Dataset) Comparison {
	return compare(quantity, d.Name, predicted, d.H0)
}

func CompareSpectralIndex(predicted float64, d Dataset) Comparison {
	return compare("n_s", d.Name, predicted, d.Ns)
}

func CompareS8(predicted float64, d Dataset) Comparison {
	return compare("S_8", d.Name, predicted, d.S8)
}

// TensionResolved reports whether the early/late gap is below 5%.
func TensionResolved(p Predictions) bool {
	return p.TensionPercent < TensionResolvedPercent
}

// Compare runs every comparison supported by the reference datasets.
func Compare(p Predictions) []Comparison {
	planck := Planck2018()
	desi := DESI2024()
	return []Comparison{
		CompareH0("H0 early", p.H0Early, planck),
		CompareH0("H0 late", p.H0Late, SH0ES2022()),
		CompareSpectralIndex(p.Ns, planck),
		CompareS8(p.S8, desi),
	}
}

// Detection is the forecast significance of a predicted signal.
type Detection struct {
	Quantity    string
	Experiment  string
	Predicted   float64
	Sensitivity float64
	Sigma       float64
	Detectable  bool
}

// Detectability forecasts β_iso and r for CMB-S4 (3σ) and m_ββ for
// LEGEND-1000 (1σ).
func Detectability(p Predictions) []Detection {
	s4 := CMBS4()
	legend := LEGEND1000()
	return []Detection{
		detect("beta_iso", s4.Experiment, p.BetaIso, s4.BetaIso, 3),
		detect("r", s4.Experiment, p.R, s4.R, 3),
		detect("m_betabeta [meV]", legend.Experiment, p.MBetaBetaMeV, legend.MBetaBeta, 1),
	}
}

// DiscoveryProbability is min(1, σ/3) for a detection forecast.
func (d Detection) DiscoveryProbability() float64 {
	return math.Min(1, d.Sigma/3)
}

func detect(quantity, experiment string, predicted, sens, threshold float64) Detection {
	sigma := predicted / sens
	return Detection{
		Quantity:    quantity,
		Experiment:  experiment,
		Predicted:   predicted,
		Sensitivity: sens,
		Sigma:       sigma,
		Detectable:  sigma > threshold,
	}
}
