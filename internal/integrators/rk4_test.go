package integrators

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/sdgft/internal/dynamo"
)

type oscillator struct{}

func (o *oscillator) Derive(x dynamo.State, chi float64) dynamo.State {
	return dynamo.State{x[1], -x[0]}
}

func (o *oscillator) StateDim() int { return 2 }

// decay is dy/dχ = -y, exact solution y0·e^(-χ).
type decay struct{}

func (d *decay) Derive(x dynamo.State, chi float64) dynamo.State {
	return dynamo.State{-x[0]}
}

func (d *decay) StateDim() int { return 1 }

func TestRK4Accuracy(t *testing.T) {
	sys := &oscillator{}
	integ := NewRK4()

	x := dynamo.State{1.0, 0.0}
	h := 0.01
	steps := 100

	for i := 0; i < steps; i++ {
		x = integ.Step(sys, x, float64(i)*h, h)
	}

	expectedX := math.Cos(float64(steps) * h)
	expectedV := -math.Sin(float64(steps) * h)

	if math.Abs(x[0]-expectedX) > 1e-8 {
		t.Errorf("position error too large: got %.10f, expected %.10f", x[0], expectedX)
	}
	if math.Abs(x[1]-expectedV) > 1e-8 {
		t.Errorf("velocity error too large: got %.10f, expected %.10f", x[1], expectedV)
	}
}

func TestRK4Backwards(t *testing.T) {
	got := Advance(NewRK4(), &decay{}, dynamo.State{1}, 0, -1, 1000)
	if math.Abs(got[0]-math.E) > 1e-10 {
		t.Errorf("backward decay: got %.12f, want %.12f", got[0], math.E)
	}
}

func TestAdvanceZeroLength(t *testing.T) {
	x := dynamo.State{3, 4}
	got := Advance(NewRK4(), &oscillator{}, x, 2, 2, 1000)
	if got[0] != 3 || got[1] != 4 {
		t.Errorf("zero-length interval changed state: %v", got)
	}
	got[0] = 99
	if x[0] != 3 {
		t.Error("Advance must not alias its input")
	}
}

func TestConvergenceOrder(t *testing.T) {
	tests := []struct {
		name  string
		integ func() dynamo.Integrator
		order float64
	}{
		{"euler", func() dynamo.Integrator { return NewEuler() }, 1},
		{"rk4", func() dynamo.Integrator { return NewRK4() }, 4},
	}

	exact := math.Exp(-1)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e1 := math.Abs(Advance(tt.integ(), &decay{}, dynamo.State{1}, 0, 1, 20)[0] - exact)
			e2 := math.Abs(Advance(tt.integ(), &decay{}, dynamo.State{1}, 0, 1, 40)[0] - exact)
			observed := math.Log2(e1 / e2)
			if math.Abs(observed-tt.order) > 0.2 {
				t.Errorf("observed order %.3f, want %.0f", observed, tt.order)
			}
		})
	}
}

func TestNew(t *testing.T) {
	for _, name := range Names() {
		if _, err := New(name); err != nil {
			t.Errorf("New(%q): %v", name, err)
		}
	}
	if integ, err := New(""); err != nil {
		t.Errorf("New(\"\"): %v", err)
	} else if _, ok := integ.(*RK4); !ok {
		t.Errorf("New(\"\") = %T, want *RK4", integ)
	}
	if _, err := New("rk45"); !errors.Is(err, dynamo.ErrUnknownIntegrator) {
		t.Errorf("New(rk45) = %v, want ErrUnknownIntegrator", err)
	}
}
