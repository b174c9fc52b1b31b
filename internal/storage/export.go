package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/sdgft/internal/flow"
)

type ExportData struct {
	Preset     string             `json:"preset"`
	Integrator string             `json:"integrator"`
	Steps      int                `json:"steps"`
	Points     int                `json:"points"`
	Grid       []float64          `json:"grid"`
	States     []flow.State       `json:"states"`
	Metrics    map[string]float64 `json:"metrics"`
}

func exportData(run Run) ExportData {
	return ExportData{
		Preset:     run.Preset,
		Integrator: run.Integrator,
		Steps:      run.Steps,
		Points:     len(run.Grid),
		Grid:       run.Grid,
		States:     run.States,
		Metrics:    run.Metrics,
	}
}

// ExportJSON writes run as indented JSON to w.
func ExportJSON(w io.Writer, run Run) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(exportData(run))
}

func ExportJSONFile(path string, run Run) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return ExportJSON(file, run)
}
