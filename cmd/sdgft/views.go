package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/sdgft/internal/config"
	"github.com/san-kum/sdgft/internal/flow"
	"github.com/san-kum/sdgft/internal/perturb"
	"github.com/san-kum/sdgft/internal/report"
	"github.com/san-kum/sdgft/internal/storage"
	"github.com/san-kum/sdgft/internal/tui"
	"github.com/san-kum/sdgft/internal/viz"
)

var observables = []string{"hubble", "distance", "dimension", "spectrum"}

func (a *app) plotCmd() *cobra.Command {
	var (
		workers int
		opts    = viz.DefaultPlotOptions()
	)
	cmd := &cobra.Command{
		Use:       "plot <observable>",
		Short:     "ASCII plot of " + strings.Join(observables, ", "),
		Args:      cobra.ExactArgs(1),
		ValidArgs: observables,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.curve(cmd.Context(), args[0], workers)
			if err != nil {
				return err
			}
			out, err := viz.Plot(c, opts)
			if err != nil {
				return err
			}
			a.println(cmd, out)
			return nil
		},
	}
	f := cmd.Flags()
	f.IntVar(&workers, "workers", 0, "concurrent samplers (0 uses GOMAXPROCS)")
	f.IntVar(&opts.Height, "height", opts.Height, "plot height")
	f.IntVar(&opts.Width, "width", opts.Width, "plot width")
	return cmd
}

func (a *app) curve(ctx context.Context, name string, workers int) (viz.Curve, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	pc := a.cfg.Plot
	a.logger.Debug("sampling observable", zap.String("observable", name), zap.Int("points", pc.Points))

	switch name {
	case "hubble", "distance":
		s, err := a.solver()
		if err != nil {
			return viz.Curve{}, err
		}
		if name == "hubble" {
			return viz.HubbleCurve(ctx, s, pc.MaxZ, pc.Points, workers)
		}
		return viz.DistanceCurve(ctx, s, pc.MaxZ, pc.Points, workers)
	case "dimension":
		opts, err := flow.OptionsFrom(a.cfg.Numerics)
		if err != nil {
			return viz.Curve{}, err
		}
		fc := a.cfg.Flow
		grid := flow.UniformGrid(fc.ChiStart, fc.ChiEnd, max(fc.Points, pc.Points))
		states, err := flow.PlanckTrajectory(grid, a.cfg.Model, opts)
		if err != nil {
			return viz.Curve{}, err
		}
		return viz.DimensionCurve(grid, states)
	case "spectrum":
		calc := perturb.New(a.cfg.Model, a.cfg.Cosmology, a.cfg.Numerics, a.consts)
		return viz.SpectrumCurve(calc, pc.LMax)
	}
	return viz.Curve{}, fmt.Errorf("unknown observable %q (want one of %v)", name, observables)
}

func (a *app) exploreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "explore",
		Short: "interactive parameter explorer",
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.Run(a.cfg)
		},
	}
}

func (a *app) runsCmd() *cobra.Command {
	runs := &cobra.Command{
		Use:   "runs",
		Short: "inspect saved flow runs",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "list saved runs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			rs, err := storage.New(a.dataDir).List()
			if err != nil {
				return err
			}
			if len(rs) == 0 {
				a.println(cmd, "no runs found")
				return nil
			}
			a.println(cmd, report.Runs(a.mode, rs))
			return nil
		},
	}

	var jsonPath string
	show := &cobra.Command{
		Use:   "show <run-id>",
		Short: "show a saved run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st := storage.New(a.dataDir)
			meta, err := st.Load(args[0])
			if err != nil {
				return err
			}
			grid, states, err := st.LoadStates(args[0])
			if err != nil {
				return err
			}
			table, err := report.Flow(a.mode, grid, states)
			if err != nil {
				return err
			}
			a.println(cmd, report.Runs(a.mode, []storage.RunMetadata{*meta}))
			a.println(cmd, table)
			if len(meta.Metrics) > 0 {
				a.println(cmd, report.KeyValues(a.mode, [2]string{"metric", "value"}, meta.Metrics))
			}
			if jsonPath != "" {
				run := storage.Run{
					Preset:     meta.Preset,
					Integrator: meta.Integrator,
					Steps:      meta.Steps,
					Model:      meta.Model,
					Grid:       grid,
					States:     states,
					Metrics:    meta.Metrics,
				}
				if err := storage.ExportJSONFile(jsonPath, run); err != nil {
					return err
				}
				a.println(cmd, "exported to "+jsonPath)
			}
			return nil
		},
	}
	show.Flags().StringVar(&jsonPath, "json", "", "also export the run as JSON")

	runs.AddCommand(list, show)
	return runs
}

func (a *app) presetsCmd() *cobra.Command {
	var export string
	cmd := &cobra.Command{
		Use:   "presets [name]",
		Short: "list presets, or show one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				for _, name := range config.ListPresets() {
					a.println(cmd, "  "+name)
				}
				return nil
			}
			p := config.GetPreset(args[0])
			if p == nil {
				return fmt.Errorf("unknown preset: %s (available: %v)", args[0], config.ListPresets())
			}
			a.println(cmd, report.Section(a.mode, "Preset "+args[0]))
			a.println(cmd, report.KeyValues(a.mode, [2]string{"parameter", "value"}, map[string]float64{
				"theta_max":    p.Model.ThetaMax,
				"d_asymptotic": p.Model.DAsymptotic,
				"h":            p.Cosmology.H,
				"omega_b":      p.Cosmology.OmegaB,
				"omega_cdm":    p.Cosmology.OmegaCDM,
				"omega_k":      p.Cosmology.OmegaK,
				"omega_l":      p.Cosmology.OmegaL,
			}))
			if export != "" {
				if err := config.Save(export, p); err != nil {
					return err
				}
				a.println(cmd, "written to "+export)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&export, "export", "", "write the preset as a YAML config file")
	return cmd
}
