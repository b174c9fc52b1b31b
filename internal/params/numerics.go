package params

import "fmt"

// AgePolicy decides what the age integral does with an unphysical sample.
type AgePolicy string

const (
	// AgePropagate aborts the age integral on the first unphysical sample.
	AgePropagate AgePolicy = "propagate"
	// AgeSkipUnphysical drops unphysical samples from the sum and counts them.
	AgeSkipUnphysical AgePolicy = "skip"
)

// Numerics exposes the fixed sample counts and solver tolerances.
type Numerics struct {
	FlowSteps       int       `yaml:"flow_steps"`
	Stepper         string    `yaml:"stepper"`
	DistanceSamples int       `yaml:"distance_samples"`
	AgeSamples      int       `yaml:"age_samples"`
	Sigma8Samples   int       `yaml:"sigma8_samples"`
	ScanScales      int       `yaml:"scan_scales"`
	ScanSamples     int       `yaml:"scan_samples"`
	RootTol         float64   `yaml:"root_tol"`
	MaxIter         int       `yaml:"max_iter"`
	AcceptTolerance float64   `yaml:"accept_tolerance"`
	AgePolicy       AgePolicy `yaml:"age_policy"`
}

func DefaultNumerics() Numerics {
	return Numerics{
		FlowSteps:       1000,
		Stepper:         "rk4",
		DistanceSamples: 100,
		AgeSamples:      1000,
		Sigma8Samples:   1000,
		ScanScales:      5,
		ScanSamples:     64,
		RootTol:         1e-12,
		MaxIter:         200,
		AcceptTolerance: 0.5,
		AgePolicy:       AgePropagate,
	}
}

func (n Numerics) Validate() error {
	if n.FlowSteps < 1 || n.DistanceSamples < 1 || n.AgeSamples < 1 || n.Sigma8Samples < 1 {
		return fmt.Errorf("%w: sample counts must be at least 1", ErrParameterBounds)
	}
	if n.ScanScales < 1 || n.ScanSamples < 2 {
		return fmt.Errorf("%w: fixed-point scan needs >= 1 scale and >= 2 samples", ErrParameterBounds)
	}
	if n.RootTol <= 0 || n.MaxIter < 1 {
		return fmt.Errorf("%w: root_tol must be positive and max_iter >= 1", ErrParameterBounds)
	}
	if n.AcceptTolerance <= 0 {
		return fmt.Errorf("%w: accept_tolerance must be positive, got %g", ErrParameterBounds, n.AcceptTolerance)
	}
	switch n.AgePolicy {
	case AgePropagate, AgeSkipUnphysical:
	default:
		return fmt.Errorf("%w: unknown age_policy %q", ErrParameterBounds, n.AgePolicy)
	}
	return nil
}
