package analysis

import (
	"fmt"
	"math"

	"github.com/san-kum/sdgft/internal/dynamo"
)

// StabilityExponent estimates the mean logarithmic growth rate of a small
// perturbation of component idx along the flow from chi0 over span, using
// steps sub-steps of integ. The perturbation is renormalized after every
// step. A positive value means the point repels along the direction of
// integration; integrate with a negative span to probe the IR. x0 must
// match the dimension of sys.
func StabilityExponent(
	sys dynamo.System,
	integ dynamo.Integrator,
	x0 dynamo.State,
	idx int,
	chi0, span float64,
	steps int,
	perturbation float64,
) (float64, error) {
	if len(x0) != sys.StateDim() {
		return 0, fmt.Errorf("%w: state has %d components, system %d",
			dynamo.ErrDimensionMismatch, len(x0), sys.StateDim())
	}
	if len(x0) == 0 || idx < 0 || idx >= len(x0) || steps < 1 || span == 0 || perturbation <= 0 {
		return 0, nil
	}

	x := x0.Clone()
	xp := x0.Clone()
	xp[idx] += perturbation

	h := span / float64(steps)
	sumLog := 0.0
	for i := 0; i < steps; i++ {
		chi := chi0 + float64(i)*h
		x = integ.Step(sys, x, chi, h)
		xp = integ.Step(sys, xp, chi, h)

		sep := xp.Sub(x).Norm()
		if sep == 0 || math.IsNaN(sep) || math.IsInf(sep, 0) {
			break
		}
		sumLog += math.Log(sep / perturbation)

		scale := perturbation / sep
		for j := range xp {
			xp[j] = x[j] + (xp[j]-x[j])*scale
		}
	}
	return sumLog / math.Abs(span), nil
}
