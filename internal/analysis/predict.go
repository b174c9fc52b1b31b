package analysis

import (
	"fmt"

	"github.com/san-kum/sdgft/internal/background"
	"github.com/san-kum/sdgft/internal/geometry"
	"github.com/san-kum/sdgft/internal/perturb"
)

// Predictions are the model's testable numbers for one parameter set.
type Predictions struct {
	H0Early        float64 `json:"h0_early"`
	H0Late         float64 `json:"h0_late"`
	TensionPercent float64 `json:"tension_percent"`
	R              float64 `json:"r_tensor"`
	BetaIso        float64 `json:"beta_iso"`
	MBetaBetaMeV   float64 `json:"m_betabeta_mev"`
	EtaB           float64 `json:"eta_b"`
	DAsymptotic    float64 `json:"d_asymptotic"`
	ThetaMax       float64 `json:"theta_max"`
	Ns             float64 `json:"n_s"`
	Sigma8         float64 `json:"sigma_8"`
	S8             float64 `json:"s_8"`
	AgeGyr         float64 `json:"age_gyr"`
}

// Predict evaluates the background and perturbation observables of s.
func Predict(s background.Solver) (Predictions, error) {
	m := s.Model()
	tension, err := s.ResolveTension()
	if err != nil {
		return Predictions{}, fmt.Errorf("tension: %w", err)
	}
	age, err := s.Age()
	if err != nil {
		return Predictions{}, fmt.Errorf("age: %w", err)
	}
	calc := perturb.New(m, s.Cosmology(), s.Numerics(), s.Constants())

	return Predictions{
		H0Early:        tension.Early,
		H0Late:         tension.Late,
		TensionPercent: tension.Percent,
		R:              geometry.TensorToScalar(m),
		BetaIso:        m.BetaIso,
		MBetaBetaMeV:   geometry.EffectiveNeutrinoMass(m) * 1000,
		EtaB:           geometry.BaryonAsymmetry(m),
		DAsymptotic:    m.DAsymptotic,
		ThetaMax:       m.ThetaMax,
		Ns:             s.Cosmology().Ns,
		Sigma8:         calc.Sigma8(),
		S8:             calc.S8(),
		AgeGyr:         age.Gyr(),
	}, nil
}
