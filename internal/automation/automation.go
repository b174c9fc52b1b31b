// Package automation runs scripted sequences of model evaluations: YAML
// scenarios of named parameter sets and one-parameter sweeps.
package automation

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/sdgft/internal/analysis"
	"github.com/san-kum/sdgft/internal/background"
	"github.com/san-kum/sdgft/internal/config"
	"github.com/san-kum/sdgft/internal/flow"
	"github.com/san-kum/sdgft/internal/params"
	"github.com/san-kum/sdgft/internal/storage"
)

var ErrEmptyScenario = errors.New("automation: scenario has no steps")

// Scenario is a named list of parameter sets to evaluate in order.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep starts from Preset (defaults when empty) and applies Params.
// With SaveFlow the Planck-state trajectory is stored as a run.
type ScenarioStep struct {
	Name     string             `yaml:"name"`
	Preset   string             `yaml:"preset"`
	Params   map[string]float64 `yaml:"params"`
	SaveFlow bool               `yaml:"save_flow"`
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(sc.Steps) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmptyScenario)
	}
	return &sc, nil
}

type StepResult struct {
	Name        string
	Config      *config.Config
	Predictions analysis.Predictions
	RunID       string
}

// Runner evaluates scenario steps. Store may be nil when no step saves.
type Runner struct {
	Base   *config.Config
	Consts params.Constants
	Store  *storage.Store
	// Progress, when set, is called before each step.
	Progress func(i, n int, name string)
}

// RunScenario executes all steps in order and stops at the first failure,
// returning the results gathered so far.
func (r Runner) RunScenario(ctx context.Context, sc *Scenario) ([]StepResult, error) {
	if len(sc.Steps) == 0 {
		return nil, ErrEmptyScenario
	}
	results := make([]StepResult, 0, len(sc.Steps))
	for i, step := range sc.Steps {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		name := step.Name
		if name == "" {
			name = fmt.Sprintf("step-%d", i+1)
		}
		if r.Progress != nil {
			r.Progress(i+1, len(sc.Steps), name)
		}

		base := r.Base
		if step.Preset != "" {
			base = config.GetPreset(step.Preset)
			if base == nil {
				return results, fmt.Errorf("step %d: unknown preset %q", i+1, step.Preset)
			}
		}
		if base == nil {
			base = config.DefaultConfig()
		}
		cfg, err := base.With(step.Params)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		res, err := r.evaluate(cfg)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		res.Name = name

		if step.SaveFlow {
			id, err := r.saveFlow(name, cfg)
			if err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
			res.RunID = id
		}
		results = append(results, res)
	}
	return results, nil
}

func (r Runner) evaluate(cfg *config.Config) (StepResult, error) {
	s, err := background.New(cfg.Model, cfg.Cosmology, cfg.Numerics, r.Consts)
	if err != nil {
		return StepResult{}, err
	}
	p, err := analysis.Predict(s)
	if err != nil {
		return StepResult{}, err
	}
	return StepResult{Config: cfg, Predictions: p}, nil
}

func (r Runner) saveFlow(name string, cfg *config.Config) (string, error) {
	if r.Store == nil {
		return "", errors.New("automation: no store configured")
	}
	opts, err := flow.OptionsFrom(cfg.Numerics)
	if err != nil {
		return "", err
	}
	grid := flow.UniformGrid(cfg.Flow.ChiStart, cfg.Flow.ChiEnd, cfg.Flow.Points)
	states, err := flow.PlanckTrajectory(grid, cfg.Model, opts)
	if err != nil {
		return "", err
	}
	return r.Store.Save(storage.Run{
		Preset:     name,
		Integrator: cfg.Numerics.Stepper,
		Steps:      cfg.Numerics.FlowSteps,
		Model:      cfg.Model,
		Grid:       grid,
		States:     states,
	})
}

// ParameterSweep varies one parameter over NumSteps evenly spaced values.
type ParameterSweep struct {
	Param    string
	ParamMin float64
	ParamMax float64
	NumSteps int
}

type SweepResult struct {
	ParamValue  float64
	Predictions analysis.Predictions
	Err         error
}

// RunSweep evaluates the predictions at every sweep value. Values that are
// invalid or unphysical are kept with their error instead of aborting.
func (r Runner) RunSweep(ctx context.Context, sweep ParameterSweep) ([]SweepResult, error) {
	if sweep.NumSteps < 1 {
		return nil, fmt.Errorf("automation: sweep needs at least one step, got %d", sweep.NumSteps)
	}
	base := r.Base
	if base == nil {
		base = config.DefaultConfig()
	}
	if _, err := base.Param(sweep.Param); err != nil {
		return nil, err
	}

	step := 0.0
	if sweep.NumSteps > 1 {
		step = (sweep.ParamMax - sweep.ParamMin) / float64(sweep.NumSteps-1)
	}
	results := make([]SweepResult, 0, sweep.NumSteps)
	for i := 0; i < sweep.NumSteps; i++ {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		v := sweep.ParamMin + float64(i)*step
		if r.Progress != nil {
			r.Progress(i+1, sweep.NumSteps, fmt.Sprintf("%s=%.4g", sweep.Param, v))
		}
		res := SweepResult{ParamValue: v}
		cfg, err := base.With(map[string]float64{sweep.Param: v})
		if err == nil {
			var sr StepResult
			sr, err = r.evaluate(cfg)
			res.Predictions = sr.Predictions
		}
		res.Err = err
		results = append(results, res)
	}
	return results, nil
}
