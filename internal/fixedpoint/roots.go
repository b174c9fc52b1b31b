package fixedpoint

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrNoBracket     = errors.New("fixedpoint: function does not change sign on interval")
	ErrNoConvergence = errors.New("fixedpoint: root iteration did not converge")
)

// Bracket is an interval [Lo, Hi] on which f changes sign.
type Bracket struct {
	Lo, Hi float64
}

// Brackets samples f at n evenly spaced points on [lo, hi] and returns
// every sub-interval with a sign change. Exact zeros at sample points are
// returned as degenerate brackets.
func Brackets(f func(float64) float64, lo, hi float64, n int) []Bracket {
	if n < 2 {
		n = 2
	}
	h := (hi - lo) / float64(n-1)
	var out []Bracket
	prevX := lo
	prevF := f(lo)
	if prevF == 0 {
		out = append(out, Bracket{lo, lo})
	}
	for i := 1; i < n; i++ {
		x := lo + float64(i)*h
		if i == n-1 {
			x = hi
		}
		fx := f(x)
		switch {
		case fx == 0:
			out = append(out, Bracket{x, x})
		case prevF != 0 && math.Signbit(fx) != math.Signbit(prevF):
			out = append(out, Bracket{prevX, x})
		}
		prevX, prevF = x, fx
	}
	return out
}

// Bisect finds a root of f inside [lo, hi] to within tol.
func Bisect(f func(float64) float64, lo, hi, tol float64, maxIter int) (float64, error) {
	flo, fhi := f(lo), f(hi)
	if flo == 0 {
		return lo, nil
	}
	if fhi == 0 {
		return hi, nil
	}
	if math.Signbit(flo) == math.Signbit(fhi) {
		return 0, fmt.Errorf("%w: [%g, %g]", ErrNoBracket, lo, hi)
	}
	for i := 0; i < maxIter; i++ {
		mid := 0.5 * (lo + hi)
		fm := f(mid)
		if fm == 0 || 0.5*(hi-lo) < tol {
			return mid, nil
		}
		if math.Signbit(fm) == math.Signbit(flo) {
			lo, flo = mid, fm
		} else {
			hi = mid
		}
	}
	return 0, fmt.Errorf("%w after %d bisections", ErrNoConvergence, maxIter)
}

// Newton refines a root of f inside the bracket [lo, hi] using df, falling
// back to bisection whenever a step leaves the bracket or df vanishes.
func Newton(f, df func(float64) float64, lo, hi, tol float64, maxIter int) (float64, error) {
	flo, fhi := f(lo), f(hi)
	if flo == 0 {
		return lo, nil
	}
	if fhi == 0 {
		return hi, nil
	}
	if math.Signbit(flo) == math.Signbit(fhi) {
		return 0, fmt.Errorf("%w: [%g, %g]", ErrNoBracket, lo, hi)
	}

	x := 0.5 * (lo + hi)
	for i := 0; i < maxIter; i++ {
		fx := f(x)
		if fx == 0 {
			return x, nil
		}
		if math.Signbit(fx) == math.Signbit(flo) {
			lo, flo = x, fx
		} else {
			hi = x
		}

		next := 0.5 * (lo + hi)
		if d := df(x); d != 0 && !math.IsNaN(d) {
			if cand := x - fx/d; cand > lo && cand < hi {
				next = cand
			}
		}
		if math.Abs(next-x) < tol || hi-lo < tol {
			return next, nil
		}
		x = next
	}
	return 0, fmt.Errorf("%w after %d iterations", ErrNoConvergence, maxIter)
}
