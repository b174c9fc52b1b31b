package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/sdgft/internal/flow"
	"github.com/san-kum/sdgft/internal/params"
)

type Store struct {
	baseDir string
	now     func() time.Time
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, now: time.Now}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// Run is one flow trajectory with the settings that produced it.
type Run struct {
	Preset     string
	Integrator string
	Steps      int
	Model      params.Model
	Grid       []float64
	States     []flow.State
	Metrics    map[string]float64
}

type RunMetadata struct {
	ID         string             `json:"id"`
	Preset     string             `json:"preset"`
	Timestamp  time.Time          `json:"timestamp"`
	Integrator string             `json:"integrator"`
	Steps      int                `json:"steps"`
	ChiStart   float64            `json:"chi_start"`
	ChiEnd     float64            `json:"chi_end"`
	Points     int                `json:"points"`
	Model      params.Model       `json:"model"`
	Metrics    map[string]float64 `json:"metrics"`
}

// Save writes metadata.json and states.csv under a fresh run directory.
func (s *Store) Save(run Run) (string, error) {
	if len(run.Grid) != len(run.States) {
		return "", fmt.Errorf("storage: %d checkpoints for %d states", len(run.Grid), len(run.States))
	}
	ts := s.now()
	runID := fmt.Sprintf("flow_%d", ts.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		Preset:     run.Preset,
		Timestamp:  ts,
		Integrator: run.Integrator,
		Steps:      run.Steps,
		Points:     len(run.Grid),
		Model:      run.Model,
		Metrics:    run.Metrics,
	}
	if n := len(run.Grid); n > 0 {
		meta.ChiStart = run.Grid[0]
		meta.ChiEnd = run.Grid[n-1]
	}

	if err := writeJSON(filepath.Join(runDir, "metadata.json"), meta); err != nil {
		return "", err
	}
	if err := writeStates(filepath.Join(runDir, "states.csv"), run.Grid, run.States); err != nil {
		return "", err
	}
	return runID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeStates(path string, grid []float64, states []flow.State) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(append([]string{"chi"}, flow.Labels()...)); err != nil {
		return err
	}
	for i, st := range states {
		row := []string{strconv.FormatFloat(grid[i], 'g', -1, 64)}
		for _, val := range st.Vector() {
			row = append(row, strconv.FormatFloat(val, 'g', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns every readable run, newest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadStates reads back the checkpoint grid and states of a run.
func (s *Store) LoadStates(runID string) ([]float64, []flow.State, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "states.csv"))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) < 2 {
		return []float64{}, []flow.State{}, nil
	}

	grid := make([]float64, 0, len(records)-1)
	states := make([]flow.State, 0, len(records)-1)
	for i, record := range records[1:] {
		vals := make([]float64, len(record))
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, nil, fmt.Errorf("states.csv line %d: %w", i+2, err)
			}
			vals[j] = v
		}
		if len(vals) == 0 {
			continue
		}
		grid = append(grid, vals[0])
		states = append(states, flow.FromVector(vals[1:]))
	}
	return grid, states, nil
}
