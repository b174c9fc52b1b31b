package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/sdgft/internal/config"
	"github.com/san-kum/sdgft/internal/optim"
	"github.com/san-kum/sdgft/internal/report"
)

func (a *app) scanCmd() *cobra.Command {
	var (
		specs   []string
		workers int
		top     int
		save    string
	)
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "grid-search parameters for the smallest Hubble tension",
		Long: fmt.Sprintf("Each --axis is name=from:to:n or name=v1,v2,...\nParameters: %v",
			config.ParamNames()),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(specs) == 0 {
				specs = []string{"d_asymptotic=2.5:3:6", "theta_max=10:60:6"}
			}
			axes := make([]optim.Axis, 0, len(specs))
			for _, s := range specs {
				ax, err := optim.ParseAxis(s)
				if err != nil {
					return err
				}
				axes = append(axes, ax)
			}

			start := time.Now()
			res, err := optim.GridSearch(cmd.Context(), a.cfg, axes, optim.Tension(a.consts), workers)
			if err != nil {
				return fmt.Errorf("scan: %w", err)
			}
			a.logger.Info("scan complete",
				zap.Int("points", len(res.Points)),
				zap.Int("failed", res.Failed),
				zap.Float64("best", res.Best.Value),
				zap.Duration("elapsed", time.Since(start)))
			for _, p := range res.Points {
				if p.Err != nil {
					a.logger.Debug("grid point skipped", zap.Any("params", p.Params), zap.Error(p.Err))
				}
			}

			a.println(cmd, report.Section(a.mode, "Tension scan [%]"))
			a.println(cmd, report.Scan(a.mode, axes, res, top))

			if save != "" {
				best, err := a.cfg.With(res.Best.Params)
				if err != nil {
					return err
				}
				if err := config.Save(save, best); err != nil {
					return err
				}
				a.println(cmd, "best configuration written to "+save)
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringArrayVar(&specs, "axis", nil, "scanned parameter, repeatable")
	f.IntVar(&workers, "workers", 0, "concurrent evaluations (0 uses GOMAXPROCS)")
	f.IntVar(&top, "top", 10, "rows to show (0 shows all)")
	f.StringVar(&save, "save", "", "write the best configuration as YAML")
	return cmd
}
