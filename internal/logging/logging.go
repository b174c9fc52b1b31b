// Package logging builds the zap logger used by the command-line tools.
// Library packages never log; they return errors and counts that the
// caller reports through this logger.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/san-kum/sdgft/internal/params"
)

// New returns a production JSON logger on stderr, at debug level when
// verbose is set.
func New(verbose bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// Nop discards everything.
func Nop() *zap.Logger {
	return zap.NewNop()
}

// Model returns the model parameters as structured fields.
func Model(m params.Model) zap.Field {
	return zap.Object("model", zapcore.ObjectMarshalerFunc(func(enc zapcore.ObjectEncoder) error {
		enc.AddFloat64("theta_max", m.ThetaMax)
		enc.AddFloat64("d_asymptotic", m.DAsymptotic)
		enc.AddFloat64("xi_g", m.XiG)
		enc.AddFloat64("beta", m.Beta)
		enc.AddFloat64("alpha", m.Alpha)
		enc.AddFloat64("chi_planck", m.ChiPlanck)
		enc.AddFloat64("beta_iso", m.BetaIso)
		return nil
	}))
}

// Cosmology returns the background parameters as structured fields.
func Cosmology(c params.Cosmology) zap.Field {
	return zap.Object("cosmology", zapcore.ObjectMarshalerFunc(func(enc zapcore.ObjectEncoder) error {
		enc.AddFloat64("h", c.H)
		enc.AddFloat64("omega_b", c.OmegaB)
		enc.AddFloat64("omega_cdm", c.OmegaCDM)
		enc.AddFloat64("omega_k", c.OmegaK)
		enc.AddFloat64("omega_lambda", c.OmegaL)
		enc.AddFloat64("t_cmb", c.TCMB)
		enc.AddFloat64("n_eff", c.NEff)
		return nil
	}))
}

// Numerics returns the sample counts as structured fields.
func Numerics(n params.Numerics) zap.Field {
	return zap.Object("numerics", zapcore.ObjectMarshalerFunc(func(enc zapcore.ObjectEncoder) error {
		enc.AddInt("flow_steps", n.FlowSteps)
		enc.AddString("stepper", n.Stepper)
		enc.AddInt("distance_samples", n.DistanceSamples)
		enc.AddInt("age_samples", n.AgeSamples)
		enc.AddString("age_policy", string(n.AgePolicy))
		return nil
	}))
}
