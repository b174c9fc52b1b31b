package flow

import (
	"github.com/san-kum/sdgft/internal/dynamo"
	"github.com/san-kum/sdgft/internal/params"
)

// System adapts the beta functions to dynamo.System.
type System struct {
	model params.Model
}

func NewSystem(m params.Model) *System {
	return &System{model: m}
}

func (s *System) Derive(x dynamo.State, chi float64) dynamo.State {
	return Betas(FromVector(x), chi, s.model).Vector()
}

func (s *System) StateDim() int { return Dim }
