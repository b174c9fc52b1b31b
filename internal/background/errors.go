package background

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidScaleFactor = errors.New("background: scale factor must be positive and finite")
	ErrInvalidRedshift    = errors.New("background: redshift out of range")
	ErrUnphysical         = errors.New("background: unphysical expansion (H² < 0)")
	// ErrDegenerate means the scale factor is so extreme that H² overflows
	// or loses all precision in float64.
	ErrDegenerate = errors.New("background: degenerate expansion (H² not finite)")
)

// UnphysicalError records where the Friedmann equation went negative.
type UnphysicalError struct {
	A  float64
	H2 float64
}

func (e *UnphysicalError) Error() string {
	return fmt.Sprintf("background: H² = %g < 0 at a = %g", e.H2, e.A)
}

func (e *UnphysicalError) Is(target error) bool {
	return target == ErrUnphysical
}
