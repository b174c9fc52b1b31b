package dynamo

import (
	"errors"
	"fmt"
	"math"
)

// Domain errors for integration runs.
var (
	// ErrInvalidState indicates a state vector with NaN or Inf entries.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrEmptyGrid indicates a checkpoint grid with no elements.
	ErrEmptyGrid = errors.New("dynamo: empty scale grid")

	// ErrNonMonotonicGrid indicates a grid that is not strictly increasing.
	ErrNonMonotonicGrid = errors.New("dynamo: scale grid not strictly increasing")

	// ErrNonFiniteGrid indicates a grid checkpoint that is NaN or Inf.
	ErrNonFiniteGrid = errors.New("dynamo: scale grid contains NaN or Inf")

	// ErrDimensionMismatch indicates mismatched state/system dimensions.
	ErrDimensionMismatch = errors.New("dynamo: dimension mismatch between state and system")

	// ErrUnknownIntegrator indicates an integrator name with no registration.
	ErrUnknownIntegrator = errors.New("dynamo: unknown integrator")
)

// GridError reports the first offending grid index.
type GridError struct {
	Index   int
	Prev    float64
	Value   float64
	Wrapped error
}

func (e *GridError) Error() string {
	if e.Index == 0 {
		return fmt.Sprintf("grid[0]=%g: %v", e.Value, e.Wrapped)
	}
	return fmt.Sprintf("grid[%d]=%g after %g: %v", e.Index, e.Value, e.Prev, e.Wrapped)
}

func (e *GridError) Unwrap() error {
	return e.Wrapped
}

// ValidateGrid checks that grid is non-empty, finite and strictly
// increasing.
func ValidateGrid(grid []float64) error {
	if len(grid) == 0 {
		return ErrEmptyGrid
	}
	for i, v := range grid {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			ge := &GridError{Index: i, Value: v, Wrapped: ErrNonFiniteGrid}
			if i > 0 {
				ge.Prev = grid[i-1]
			}
			return ge
		}
	}
	for i := 1; i < len(grid); i++ {
		if !(grid[i] > grid[i-1]) {
			return &GridError{Index: i, Prev: grid[i-1], Value: grid[i], Wrapped: ErrNonMonotonicGrid}
		}
	}
	return nil
}
