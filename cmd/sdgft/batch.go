package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/sdgft/internal/automation"
	"github.com/san-kum/sdgft/internal/report"
	"github.com/san-kum/sdgft/internal/storage"
)

func (a *app) runner() automation.Runner {
	return automation.Runner{
		Base:   a.cfg,
		Consts: a.consts,
		Store:  storage.New(a.dataDir),
		Progress: func(i, n int, name string) {
			a.logger.Info("evaluating", zap.Int("step", i), zap.Int("of", n), zap.String("name", name))
		},
	}
}

func (a *app) batchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "batch <scenario.yaml>",
		Short: "evaluate every step of a YAML scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := automation.LoadScenario(args[0])
			if err != nil {
				return err
			}
			r := a.runner()
			if err := r.Store.Init(); err != nil {
				return err
			}
			results, runErr := r.RunScenario(cmd.Context(), sc)
			title := sc.Name
			if title == "" {
				title = args[0]
			}
			if len(results) > 0 {
				a.println(cmd, report.Section(a.mode, "Scenario "+title))
				a.println(cmd, report.Scenario(a.mode, results))
			}
			if runErr != nil {
				return fmt.Errorf("scenario %s: %w", title, runErr)
			}
			return nil
		},
	}
}

func (a *app) sweepCmd() *cobra.Command {
	var sweep automation.ParameterSweep
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "predictions along one parameter",
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := a.runner().RunSweep(cmd.Context(), sweep)
			if err != nil {
				return err
			}
			failed := 0
			for _, r := range results {
				if r.Err != nil {
					failed++
				}
			}
			if failed > 0 {
				a.logger.Warn("sweep values rejected", zap.Int("failed", failed), zap.Int("total", len(results)))
			}
			a.println(cmd, report.Section(a.mode, "Sweep over "+sweep.Param))
			a.println(cmd, report.Sweep(a.mode, sweep.Param, results))
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&sweep.Param, "param", "d_asymptotic", "parameter to vary")
	f.Float64Var(&sweep.ParamMin, "from", 2.5, "first value")
	f.Float64Var(&sweep.ParamMax, "to", 3.0, "last value")
	f.IntVar(&sweep.NumSteps, "n", 6, "number of values")
	return cmd
}
