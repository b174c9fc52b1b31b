package viz

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Sample evaluates f at every x with at most limit concurrent workers.
// Results keep the order of xs. limit <= 0 uses GOMAXPROCS.
func Sample(ctx context.Context, xs []float64, f func(float64) (float64, error), limit int) ([]float64, error) {
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}
	ys := make([]float64, len(xs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, x := range xs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			y, err := f(x)
			if err != nil {
				return fmt.Errorf("sample %d (x=%g): %w", i, x, err)
			}
			ys[i] = y
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ys, nil
}

// Linspace returns n evenly spaced points on [from, to].
func Linspace(from, to float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{from}
	}
	xs := make([]float64, n)
	h := (to - from) / float64(n-1)
	for i := range xs {
		xs[i] = from + float64(i)*h
	}
	xs[n-1] = to
	return xs
}
