package automation

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/sdgft/internal/config"
	"github.com/san-kum/sdgft/internal/params"
	"github.com/san-kum/sdgft/internal/storage"
)

const scenarioYAML = `
name: presets
description: compare the flat and closed cosmologies
steps:
  - name: baseline
  - name: closed
    preset: closed
  - name: wide-cone
    params:
      theta_max: 45
    save_flow: true
`

func writeScenario(t *testing.T, doc string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadScenario(t *testing.T) {
	sc, err := LoadScenario(writeScenario(t, scenarioYAML))
	if err != nil {
		t.Fatal(err)
	}
	if sc.Name != "presets" || len(sc.Steps) != 3 {
		t.Fatalf("scenario = %+v", sc)
	}
	if sc.Steps[2].Params["theta_max"] != 45 || !sc.Steps[2].SaveFlow {
		t.Errorf("step 3 = %+v", sc.Steps[2])
	}

	if _, err := LoadScenario(writeScenario(t, "name: empty\n")); !errors.Is(err, ErrEmptyScenario) {
		t.Errorf("empty scenario err = %v", err)
	}
}

func TestRunScenario(t *testing.T) {
	sc, err := LoadScenario(writeScenario(t, scenarioYAML))
	if err != nil {
		t.Fatal(err)
	}
	cfg := config.DefaultConfig()
	cfg.Flow.Points = 3
	cfg.Numerics.FlowSteps = 50
	st := storage.New(t.TempDir())

	var seen []string
	r := Runner{
		Base:     cfg,
		Consts:   params.DefaultConstants(),
		Store:    st,
		Progress: func(i, n int, name string) { seen = append(seen, name) },
	}
	res, err := r.RunScenario(context.Background(), sc)
	if err != nil {
		t.Fatal(err)
	}
	if len(res) != 3 || len(seen) != 3 {
		t.Fatalf("got %d results, %d progress calls", len(res), len(seen))
	}
	if res[1].Config.Cosmology.OmegaK != config.GetPreset("closed").Cosmology.OmegaK {
		t.Error("closed step did not use its preset")
	}
	if res[2].Predictions.ThetaMax != 45 {
		t.Errorf("theta_max = %g", res[2].Predictions.ThetaMax)
	}
	if res[2].RunID == "" || res[0].RunID != "" {
		t.Errorf("run ids = %q, %q", res[0].RunID, res[2].RunID)
	}
	runs, err := st.List()
	if err != nil || len(runs) != 1 {
		t.Fatalf("stored runs = %d, err = %v", len(runs), err)
	}
}

func TestRunScenarioStopsOnError(t *testing.T) {
	sc := &Scenario{Steps: []ScenarioStep{
		{Name: "ok"},
		{Name: "bad", Params: map[string]float64{"d_asymptotic": 4}},
		{Name: "never"},
	}}
	res, err := Runner{Consts: params.DefaultConstants()}.RunScenario(context.Background(), sc)
	if !errors.Is(err, params.ErrParameterBounds) {
		t.Fatalf("err = %v", err)
	}
	if len(res) != 1 {
		t.Errorf("got %d partial results, want 1", len(res))
	}
}

func TestSaveFlowNeedsStore(t *testing.T) {
	sc := &Scenario{Steps: []ScenarioStep{{SaveFlow: true}}}
	if _, err := (Runner{Consts: params.DefaultConstants()}).RunScenario(context.Background(), sc); err == nil {
		t.Error("save_flow without a store should fail")
	}
}

func TestRunSweep(t *testing.T) {
	r := Runner{Consts: params.DefaultConstants()}
	res, err := r.RunSweep(context.Background(), ParameterSweep{Param: "d_asymptotic", ParamMin: 2.6, ParamMax: 3.2, NumSteps: 4})
	if err != nil {
		t.Fatal(err)
	}
	if len(res) != 4 {
		t.Fatalf("got %d results", len(res))
	}
	if math.Abs(res[0].ParamValue-2.6) > 1e-12 || math.Abs(res[3].ParamValue-3.2) > 1e-12 {
		t.Errorf("values %g..%g", res[0].ParamValue, res[3].ParamValue)
	}
	if !errors.Is(res[3].Err, params.ErrParameterBounds) {
		t.Errorf("D = 3.2 should be out of bounds, err = %v", res[3].Err)
	}
	if res[0].Err != nil || res[0].Predictions.DAsymptotic != 2.6 {
		t.Errorf("first point = %+v", res[0])
	}

	if _, err := r.RunSweep(context.Background(), ParameterSweep{Param: "nope", NumSteps: 2}); !errors.Is(err, config.ErrUnknownParam) {
		t.Errorf("unknown param err = %v", err)
	}
	if _, err := r.RunSweep(context.Background(), ParameterSweep{Param: "h"}); err == nil {
		t.Error("zero steps should fail")
	}
}
