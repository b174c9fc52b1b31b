package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/sdgft/internal/config"
	"github.com/san-kum/sdgft/internal/logging"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd(&app{logger: logging.Nop()})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestHubbleCommand(t *testing.T) {
	out, err := run(t, "hubble", "0", "1")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "75.77") {
		t.Errorf("expected H0 = 75.77 in output:\n%s", out)
	}
}

func TestDistanceRejectsZero(t *testing.T) {
	if _, err := run(t, "distance", "0"); err == nil {
		t.Error("z = 0 should be rejected")
	}
}

func TestFlowSaveAndShow(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "run.json")
	out, err := run(t, "--data", dir, "flow", "--points", "3", "--steps", "50", "--save", "--json", jsonPath)
	if err != nil {
		t.Fatal(err)
	}
	idx := strings.Index(out, "run id: ")
	if idx < 0 {
		t.Fatalf("no run id in output:\n%s", out)
	}
	id := strings.Fields(out[idx+len("run id: "):])[0]
	if _, err := os.Stat(jsonPath); err != nil {
		t.Errorf("json export missing: %v", err)
	}

	list, err := run(t, "--data", dir, "runs", "list")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(list, id) {
		t.Errorf("runs list missing %s:\n%s", id, list)
	}

	if _, err := run(t, "--data", dir, "runs", "show", id, "--format", "markdown"); err != nil {
		t.Errorf("runs show: %v", err)
	}
}

func TestPresets(t *testing.T) {
	out, err := run(t, "presets")
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range config.ListPresets() {
		if !strings.Contains(out, name) {
			t.Errorf("preset %s not listed", name)
		}
	}

	path := filepath.Join(t.TempDir(), "sh0es.yaml")
	if _, err := run(t, "presets", "sh0es", "--export", path); err != nil {
		t.Fatal(err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Cosmology.H != config.GetPreset("sh0es").Cosmology.H {
		t.Errorf("exported h = %g", cfg.Cosmology.H)
	}

	if _, err := run(t, "--config", path, "tension"); err != nil {
		t.Errorf("tension with exported config: %v", err)
	}
}

func TestUnknownPreset(t *testing.T) {
	if _, err := run(t, "--preset", "nope", "age"); err == nil {
		t.Error("unknown preset should fail")
	}
}

func TestPlotObservables(t *testing.T) {
	for _, name := range observables {
		if _, err := run(t, "plot", name, "--height", "5", "--width", "30"); err != nil {
			t.Errorf("plot %s: %v", name, err)
		}
	}
	if _, err := run(t, "plot", "bogus"); err == nil {
		t.Error("unknown observable should fail")
	}
}

func TestPredictAndFixedPoints(t *testing.T) {
	out, err := run(t, "predict", "--format", "md")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "## Predictions") {
		t.Errorf("markdown sections missing:\n%s", out)
	}
	out, err = run(t, "fixedpoints", "--stability-steps", "20")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "accepted") {
		t.Errorf("no accepted fixed point:\n%s", out)
	}
}

func TestScanCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "best.yaml")
	out, err := run(t, "scan", "--axis", "theta_max=20,40", "--top", "0", "--save", path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "best configuration written") {
		t.Errorf("unexpected output:\n%s", out)
	}
	if _, err := config.Load(path); err != nil {
		t.Errorf("saved config does not load: %v", err)
	}
	if _, err := run(t, "scan", "--axis", "bogus=1"); err == nil {
		t.Error("unknown parameter should fail")
	}
}

func TestBatchAndSweep(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scenario.yaml")
	doc := "name: quick\nsteps:\n  - name: base\n  - name: sh0es\n    preset: sh0es\n"
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}
	out, err := run(t, "--data", dir, "batch", path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "sh0es") {
		t.Errorf("batch output:\n%s", out)
	}

	out, err = run(t, "sweep", "--param", "theta_max", "--from", "20", "--to", "40", "--n", "3")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "30") {
		t.Errorf("sweep output:\n%s", out)
	}
}
