// Package optim scans parameter grids for the configuration that
// minimizes an objective such as the Hubble tension.
package optim

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/sdgft/internal/background"
	"github.com/san-kum/sdgft/internal/config"
	"github.com/san-kum/sdgft/internal/params"
)

var (
	ErrNoAxes      = errors.New("optim: no axes to scan")
	ErrNoCandidate = errors.New("optim: no grid point could be evaluated")
)

// Axis is one scanned parameter and its values.
type Axis struct {
	Name   string
	Values []float64
}

// ParseAxis reads "name=from:to:n" or "name=v1,v2,...".
func ParseAxis(s string) (Axis, error) {
	name, spec, ok := strings.Cut(s, "=")
	if !ok || name == "" || spec == "" {
		return Axis{}, fmt.Errorf("optim: axis %q must look like name=from:to:n or name=v1,v2", s)
	}
	if _, err := config.DefaultConfig().Param(name); err != nil {
		return Axis{}, err
	}

	if parts := strings.Split(spec, ":"); len(parts) == 3 {
		from, err1 := strconv.ParseFloat(parts[0], 64)
		to, err2 := strconv.ParseFloat(parts[1], 64)
		n, err3 := strconv.Atoi(parts[2])
		if err := errors.Join(err1, err2, err3); err != nil {
			return Axis{}, fmt.Errorf("optim: axis %q: %w", s, err)
		}
		if n < 1 {
			return Axis{}, fmt.Errorf("optim: axis %q needs at least one point", s)
		}
		vals := make([]float64, n)
		for i := range vals {
			if n == 1 {
				vals[i] = from
				continue
			}
			vals[i] = from + (to-from)*float64(i)/float64(n-1)
		}
		return Axis{Name: name, Values: vals}, nil
	}

	var vals []float64
	for _, p := range strings.Split(spec, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return Axis{}, fmt.Errorf("optim: axis %q: %w", s, err)
		}
		vals = append(vals, v)
	}
	return Axis{Name: name, Values: vals}, nil
}

// Objective scores one configuration; lower is better.
type Objective func(*config.Config) (float64, error)

// Tension scores a configuration by its early/late H0 gap in percent.
func Tension(k params.Constants) Objective {
	return func(cfg *config.Config) (float64, error) {
		s, err := background.New(cfg.Model, cfg.Cosmology, cfg.Numerics, k)
		if err != nil {
			return 0, err
		}
		t, err := s.ResolveTension()
		if err != nil {
			return 0, err
		}
		return t.Percent, nil
	}
}

// Point is one evaluated grid point.
type Point struct {
	Params map[string]float64
	Value  float64
	Err    error
}

type Result struct {
	Best   Point
	Points []Point // sorted by Value, failures last
	Failed int
}

// GridSearch evaluates obj on every combination of the axes, starting
// from base, with at most workers evaluations in flight. Grid points that
// fail validation or evaluation are recorded and skipped.
func GridSearch(ctx context.Context, base *config.Config, axes []Axis, obj Objective, workers int) (Result, error) {
	if len(axes) == 0 {
		return Result{}, ErrNoAxes
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	var combos []map[string]float64
	enumerate(axes, 0, map[string]float64{}, &combos)

	points := make([]Point, len(combos))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	var mu sync.Mutex
	failed := 0
	for i, combo := range combos {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			p := Point{Params: combo, Value: math.Inf(1)}
			cfg, err := base.With(combo)
			if err == nil {
				p.Value, err = obj(cfg)
			}
			if err != nil {
				p.Err = err
				p.Value = math.Inf(1)
				mu.Lock()
				failed++
				mu.Unlock()
			}
			points[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	sort.SliceStable(points, func(i, j int) bool { return points[i].Value < points[j].Value })
	res := Result{Points: points, Failed: failed}
	if failed == len(points) {
		return res, ErrNoCandidate
	}
	res.Best = points[0]
	return res, nil
}

// enumerate walks the axes depth first, appending one map per combination.
func enumerate(axes []Axis, depth int, current map[string]float64, out *[]map[string]float64) {
	if depth == len(axes) {
		combo := make(map[string]float64, len(current))
		for k, v := range current {
			combo[k] = v
		}
		*out = append(*out, combo)
		return
	}
	ax := axes[depth]
	for _, v := range ax.Values {
		current[ax.Name] = v
		enumerate(axes, depth+1, current, out)
	}
	delete(current, ax.Name)
}
