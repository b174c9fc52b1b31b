package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/sdgft/internal/analysis"
	"github.com/san-kum/sdgft/internal/fixedpoint"
	"github.com/san-kum/sdgft/internal/flow"
	"github.com/san-kum/sdgft/internal/integrators"
	"github.com/san-kum/sdgft/internal/metrics"
	"github.com/san-kum/sdgft/internal/report"
	"github.com/san-kum/sdgft/internal/storage"
)

func (a *app) flowCmd() *cobra.Command {
	var (
		from, to   float64
		points     int
		steps      int
		integrator string
		save       bool
		jsonPath   string
	)
	cmd := &cobra.Command{
		Use:   "flow",
		Short: "integrate the coupling flow from the Planck state",
		RunE: func(cmd *cobra.Command, args []string) error {
			fc := a.cfg.Flow
			if cmd.Flags().Changed("from") {
				fc.ChiStart = from
			}
			if cmd.Flags().Changed("to") {
				fc.ChiEnd = to
			}
			if cmd.Flags().Changed("points") {
				fc.Points = points
			}
			num := a.cfg.Numerics
			if cmd.Flags().Changed("steps") {
				num.FlowSteps = steps
			}
			if cmd.Flags().Changed("integrator") {
				num.Stepper = integrator
			}
			if err := num.Validate(); err != nil {
				return err
			}

			opts, err := flow.OptionsFrom(num)
			if err != nil {
				return err
			}
			ms := metrics.Standard()
			opts.Observers = metrics.Observers(ms)

			grid := flow.UniformGrid(fc.ChiStart, fc.ChiEnd, fc.Points)
			a.logger.Info("integrating flow",
				zap.Float64("chi_start", fc.ChiStart),
				zap.Float64("chi_end", fc.ChiEnd),
				zap.Int("points", len(grid)),
				zap.String("integrator", num.Stepper),
				zap.Int("steps", num.FlowSteps))

			start := time.Now()
			states, err := flow.PlanckTrajectory(grid, a.cfg.Model, opts)
			if err != nil {
				return fmt.Errorf("flow: %w", err)
			}
			a.logger.Info("flow complete", zap.Duration("elapsed", time.Since(start)))
			if err := metrics.Divergence(ms); err != nil {
				a.logger.Warn("flow left the finite range", zap.Error(err))
			}

			table, err := report.Flow(a.mode, grid, states)
			if err != nil {
				return err
			}
			values := metrics.Values(ms)
			a.println(cmd, report.Section(a.mode, "Flow"))
			a.println(cmd, table)
			a.println(cmd, report.Section(a.mode, "Metrics"))
			a.println(cmd, report.KeyValues(a.mode, [2]string{"metric", "value"}, values))

			run := storage.Run{
				Preset:     a.preset,
				Integrator: num.Stepper,
				Steps:      num.FlowSteps,
				Model:      a.cfg.Model,
				Grid:       grid,
				States:     states,
				Metrics:    values,
			}
			if save {
				st := storage.New(a.dataDir)
				if err := st.Init(); err != nil {
					return err
				}
				id, err := st.Save(run)
				if err != nil {
					return fmt.Errorf("save run: %w", err)
				}
				a.logger.Info("run saved", zap.String("id", id), zap.String("dir", a.dataDir))
				a.println(cmd, "run id: "+id)
			}
			if jsonPath != "" {
				if err := storage.ExportJSONFile(jsonPath, run); err != nil {
					return fmt.Errorf("export json: %w", err)
				}
				a.println(cmd, "exported to "+jsonPath)
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.Float64Var(&from, "from", 0, "first checkpoint chi")
	f.Float64Var(&to, "to", 1, "last checkpoint chi")
	f.IntVar(&points, "points", 11, "number of checkpoints")
	f.IntVar(&steps, "steps", flow.DefaultSteps, "sub-steps per interval")
	f.StringVar(&integrator, "integrator", "rk4", fmt.Sprintf("stepper %v", integrators.Names()))
	f.BoolVar(&save, "save", false, "save the run under --data")
	f.StringVar(&jsonPath, "json", "", "export the run as JSON to this path")
	return cmd
}

func (a *app) fixedPointsCmd() *cobra.Command {
	var (
		span  float64
		steps int
		eps   float64
	)
	cmd := &cobra.Command{
		Use:   "fixedpoints",
		Short: "scan for fixed points of the dimension flow",
		RunE: func(cmd *cobra.Command, args []string) error {
			m := a.cfg.Model
			res, err := fixedpoint.Find(m, fixedpoint.OptionsFrom(a.cfg.Numerics, m))
			if err != nil {
				return fmt.Errorf("fixed points: %w", err)
			}
			a.logger.Info("fixed point scan",
				zap.Int("accepted", len(res.Points)),
				zap.Int("rejected", len(res.Rejected)))

			integ, err := integrators.New(a.cfg.Numerics.Stepper)
			if err != nil {
				return err
			}
			sys := flow.NewSystem(m)
			exps := make([]float64, len(res.Points))
			for i, p := range res.Points {
				exps[i], err = analysis.StabilityExponent(sys, integ, p.State.Vector(), metrics.IndexD, p.Chi, span, steps, eps)
				if err != nil {
					return fmt.Errorf("stability at χ = %g: %w", p.Chi, err)
				}
			}

			a.println(cmd, report.Section(a.mode, "Fixed points"))
			a.println(cmd, report.FixedPoints(a.mode, res, exps))
			if !res.Found() {
				a.logger.Warn("no fixed point within acceptance tolerance",
					zap.Float64("tolerance", a.cfg.Numerics.AcceptTolerance))
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.Float64Var(&span, "span", -1, "chi span for the stability exponent (negative probes the IR)")
	f.IntVar(&steps, "stability-steps", 200, "steps for the stability exponent")
	f.Float64Var(&eps, "perturbation", 1e-8, "initial perturbation of D")
	return cmd
}
