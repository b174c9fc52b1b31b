package main

import (
	"errors"
	"fmt"
	"math"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/sdgft/internal/analysis"
	"github.com/san-kum/sdgft/internal/background"
	"github.com/san-kum/sdgft/internal/params"
	"github.com/san-kum/sdgft/internal/perturb"
	"github.com/san-kum/sdgft/internal/report"
)

func (a *app) solver() (background.Solver, error) {
	return background.New(a.cfg.Model, a.cfg.Cosmology, a.cfg.Numerics, a.consts)
}

func (a *app) hubbleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hubble [z...]",
		Short: "Hubble rate and deceleration at the given redshifts",
		RunE: func(cmd *cobra.Command, args []string) error {
			zs, err := parseFloats(args, []float64{0, 0.1, 0.5, 1, 2, 1100})
			if err != nil {
				return err
			}
			s, err := a.solver()
			if err != nil {
				return err
			}
			h0 := s.KmPerSecPerMpc(s.H0())
			t := report.NewTable(a.mode)
			t.Header("z", "H [km/s/Mpc]", "H/H0", "H_LCDM/H0", "q")
			for _, z := range zs {
				h, err := s.HubbleAtZ(z)
				var unphysical *background.UnphysicalError
				if errors.As(err, &unphysical) {
					a.logger.Warn("unphysical expansion", zap.Float64("z", z), zap.Float64("h2", unphysical.H2))
					t.Row(z, "unphysical", "-", s.StandardExpansion(z), "-")
					continue
				}
				if err != nil {
					return err
				}
				q, err := s.Deceleration(1 / (1 + z))
				if err != nil {
					return err
				}
				hk := s.KmPerSecPerMpc(h)
				t.Row(z, fmt.Sprintf("%.4g", hk), fmt.Sprintf("%.4g", hk/h0), fmt.Sprintf("%.4g", s.StandardExpansion(z)), fmt.Sprintf("%.3f", q))
			}
			t.RightAlign(1, 5)
			a.println(cmd, report.Section(a.mode, fmt.Sprintf("Expansion (input H0 = %.2f km/s/Mpc)", h0)))
			a.println(cmd, t.String())
			return nil
		},
	}
}

func (a *app) distanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "distance [z...]",
		Short: "luminosity distance and distance modulus",
		RunE: func(cmd *cobra.Command, args []string) error {
			zs, err := parseFloats(args, []float64{0.01, 0.1, 0.5, 1, 2})
			if err != nil {
				return err
			}
			s, err := a.solver()
			if err != nil {
				return err
			}
			t := report.NewTable(a.mode)
			t.Header("z", "d_L [Mpc]", "mu [mag]")
			for _, z := range zs {
				dl, err := s.LuminosityDistance(z)
				if err != nil {
					return fmt.Errorf("distance at z=%g: %w", z, err)
				}
				mu, err := s.DistanceModulus(z)
				if err != nil {
					return fmt.Errorf("distance modulus at z=%g: %w", z, err)
				}
				t.Row(z, fmt.Sprintf("%.2f", dl), fmt.Sprintf("%.3f", mu))
			}
			t.RightAlign(1, 3)
			a.println(cmd, report.Section(a.mode, "Distances"))
			a.println(cmd, t.String())
			return nil
		},
	}
}

func (a *app) ageCmd() *cobra.Command {
	var skip bool
	cmd := &cobra.Command{
		Use:   "age",
		Short: "age of the universe",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.solver()
			if err != nil {
				return err
			}
			if skip {
				n := s.Numerics()
				n.AgePolicy = params.AgeSkipUnphysical
				if s, err = s.WithNumerics(n); err != nil {
					return err
				}
			}
			age, err := s.Age()
			if err != nil {
				return fmt.Errorf("age: %w", err)
			}
			if age.Skipped > 0 {
				a.logger.Warn("skipped unphysical age samples",
					zap.Int("skipped", age.Skipped),
					zap.Int("samples", age.Samples))
			}
			a.println(cmd, report.Section(a.mode, "Age"))
			a.println(cmd, report.KeyValues(a.mode, [2]string{"quantity", "value"}, map[string]float64{
				"age [Gyr]": age.Gyr(),
				"age [s]":   age.Seconds,
				"samples":   float64(age.Samples),
				"skipped":   float64(age.Skipped),
			}))
			return nil
		},
	}
	cmd.Flags().BoolVar(&skip, "skip-unphysical", false, "skip samples where H^2 < 0 instead of failing")
	return cmd
}

func (a *app) tensionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tension",
		Short: "early and late Hubble constant inferred under scale-dependent gravity",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.solver()
			if err != nil {
				return err
			}
			t, err := s.ResolveTension()
			if err != nil {
				return fmt.Errorf("tension: %w", err)
			}
			a.println(cmd, report.Section(a.mode, "Hubble tension"))
			a.println(cmd, report.KeyValues(a.mode, [2]string{"quantity", "value"}, map[string]float64{
				"H0 early [km/s/Mpc]": t.Early,
				"H0 late [km/s/Mpc]":  t.Late,
				"difference [%]":      t.Percent,
			}))
			if t.Percent < analysis.TensionResolvedPercent {
				a.println(cmd, "tension resolved")
			}
			return nil
		},
	}
}

func (a *app) spectraCmd() *cobra.Command {
	var lMax int
	cmd := &cobra.Command{
		Use:   "spectra [k...]",
		Short: "primordial and matter power spectra at wavenumbers in 1/Mpc",
		RunE: func(cmd *cobra.Command, args []string) error {
			ks, err := parseFloats(args, []float64{1e-4, 1e-3, 0.01, 0.05, 0.1, 1})
			if err != nil {
				return err
			}
			calc := perturb.New(a.cfg.Model, a.cfg.Cosmology, a.cfg.Numerics, a.consts)

			t := report.NewTable(a.mode)
			t.Header("k [1/Mpc]", "P_s", "P_t", "T(k)", "P(k, z=0)")
			for _, k := range ks {
				t.Row(k,
					fmt.Sprintf("%.4e", calc.Scalar(k)),
					fmt.Sprintf("%.4e", calc.Tensor(k)),
					fmt.Sprintf("%.4e", calc.Transfer(k)),
					fmt.Sprintf("%.4e", calc.MatterPower(k, 0)))
			}
			t.RightAlign(1, 5)

			sp := calc.Spectra()
			a.println(cmd, report.Section(a.mode, "Spectra"))
			a.println(cmd, t.String())
			a.println(cmd, report.KeyValues(a.mode, [2]string{"quantity", "value"}, map[string]float64{
				"n_s":     sp.Ns,
				"r":       sp.R,
				"sigma_8": calc.Sigma8(),
				"S_8":     calc.S8(),
			}))

			if lMax >= 2 {
				cl, err := calc.TemperatureSpectrum(lMax)
				if err != nil {
					return err
				}
				peak, peakL := 0.0, 0
				for l := 2; l <= lMax; l++ {
					if dl := float64(l*(l+1)) * cl[l] / (2 * math.Pi); dl > peak {
						peak, peakL = dl, l
					}
				}
				a.println(cmd, fmt.Sprintf("C_l computed to l=%d, peak l(l+1)C_l/2pi = %.4g at l=%d", lMax, peak, peakL))
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&lMax, "lmax", 0, "also compute the temperature spectrum up to this multipole")
	return cmd
}

func (a *app) predictCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "predict",
		Short: "observational predictions, comparisons and falsification criteria",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.solver()
			if err != nil {
				return err
			}
			p, err := analysis.Predict(s)
			if err != nil {
				return fmt.Errorf("predict: %w", err)
			}
			a.println(cmd, report.Section(a.mode, "Predictions"))
			a.println(cmd, report.Predictions(a.mode, p))
			a.println(cmd, report.Section(a.mode, "Comparison with data"))
			a.println(cmd, report.Comparisons(a.mode, analysis.Compare(p)))
			a.println(cmd, report.Section(a.mode, "Detectability"))
			a.println(cmd, report.Detections(a.mode, analysis.Detectability(p)))
			a.println(cmd, report.Section(a.mode, "Falsification criteria"))
			a.println(cmd, report.Criteria(a.mode, analysis.FalsificationCriteria(p)))
			if analysis.TensionResolved(p) {
				a.println(cmd, "Hubble tension resolved")
			} else {
				a.println(cmd, fmt.Sprintf("Hubble tension remains at %.1f%%", p.TensionPercent))
			}
			return nil
		},
	}
}
