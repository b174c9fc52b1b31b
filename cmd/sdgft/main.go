package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/sdgft/internal/config"
	"github.com/san-kum/sdgft/internal/logging"
	"github.com/san-kum/sdgft/internal/params"
	"github.com/san-kum/sdgft/internal/report"
)

// app carries the persistent flags and the state resolved from them.
type app struct {
	dataDir    string
	configFile string
	preset     string
	format     string
	verbose    bool

	cfg    *config.Config
	consts params.Constants
	mode   report.Mode
	logger *zap.Logger
}

func main() {
	if err := newRootCmd(&app{}).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "sdgft",
		Short:        "scale-dependent gravity cosmology lab",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&a.dataDir, "data", ".sdgft", "data directory for saved runs")
	pf.StringVar(&a.configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&a.preset, "preset", "", "use a named preset")
	pf.StringVar(&a.format, "format", "ascii", "table format: ascii or markdown")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(
		a.flowCmd(),
		a.fixedPointsCmd(),
		a.hubbleCmd(),
		a.distanceCmd(),
		a.ageCmd(),
		a.tensionCmd(),
		a.spectraCmd(),
		a.predictCmd(),
		a.plotCmd(),
		a.exploreCmd(),
		a.runsCmd(),
		a.presetsCmd(),
		a.scanCmd(),
		a.batchCmd(),
		a.sweepCmd(),
	)
	return rootCmd
}

// setup builds the logger and resolves the configuration: defaults, then
// the preset, then the config file.
func (a *app) setup(cmd *cobra.Command) error {
	if a.logger == nil {
		if cmd.Name() == "explore" {
			a.logger = logging.Nop()
		} else {
			logger, err := logging.New(a.verbose)
			if err != nil {
				return err
			}
			a.logger = logger
		}
	}

	mode, err := report.ParseMode(a.format)
	if err != nil {
		return err
	}
	a.mode = mode
	a.consts = params.DefaultConstants()

	a.cfg = config.DefaultConfig()
	source := "defaults"
	if a.preset != "" {
		p := config.GetPreset(a.preset)
		if p == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", a.preset, config.ListPresets())
		}
		a.cfg = p
		source = "preset:" + a.preset
	}
	if a.configFile != "" {
		cfg, err := config.Load(a.configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		a.cfg = cfg
		source = "file:" + a.configFile
	}

	a.logger.Debug("configuration resolved",
		zap.String("command", cmd.Name()),
		zap.String("source", source),
		logging.Model(a.cfg.Model),
		logging.Cosmology(a.cfg.Cosmology),
		logging.Numerics(a.cfg.Numerics),
	)
	return nil
}

func (a *app) println(cmd *cobra.Command, s string) {
	fmt.Fprintln(cmd.OutOrStdout(), s)
}

// parseFloats converts positional arguments, falling back to defaults
// when none are given.
func parseFloats(args []string, defaults []float64) ([]float64, error) {
	if len(args) == 0 {
		return defaults, nil
	}
	out := make([]float64, len(args))
	for i, s := range args {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q: %w", s, err)
		}
		out[i] = v
	}
	return out, nil
}
