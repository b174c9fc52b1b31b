package analysis

// Measurement is a central value with a one-sigma error.
type Measurement struct {
	Value float64 `json:"value"`
	Err   float64 `json:"err"`
}

// Dataset is a published set of cosmological measurements. Zero-valued
// measurements are absent from the release.
type Dataset struct {
	Name    string      `json:"name"`
	H0      Measurement `json:"h0"`
	Ns      Measurement `json:"n_s"`
	As      Measurement `json:"a_s"`
	Sigma8  Measurement `json:"sigma_8"`
	S8      Measurement `json:"s_8"`
	TauReio float64     `json:"tau_reio"`
}

func Planck2018() Dataset {
	return Dataset{
		Name:    "Planck 2018",
		H0:      Measurement{67.4, 0.5},
		Ns:      Measurement{0.9649, 0.0042},
		As:      Measurement{2.1e-9, 0.03e-9},
		Sigma8:  Measurement{0.811, 0.006},
		S8:      Measurement{0.834, 0.016},
		TauReio: 0.0544,
	}
}

func SH0ES2022() Dataset {
	return Dataset{Name: "SH0ES 2022", H0: Measurement{73.04, 1.04}}
}

func DESI2024() Dataset {
	return Dataset{
		Name: "DESI 2024",
		H0:   Measurement{68.5, 1.2},
		S8:   Measurement{0.76, 0.03},
	}
}

// Sensitivity is the forecast one-sigma reach of an experiment.
type Sensitivity struct {
	Experiment string
	BetaIso    float64
	R          float64
	Ns         float64
	MBetaBeta  float64 // meV
	HalfLife   float64 // yr
}

func CMBS4() Sensitivity {
	return Sensitivity{Experiment: "CMB-S4", BetaIso: 0.008, R: 0.001, Ns: 0.002}
}

func LEGEND1000() Sensitivity {
	return Sensitivity{Experiment: "LEGEND-1000", MBetaBeta: 10.0, HalfLife: 1e28}
}
