package kernel

import (
	"errors"
	"math"

	"dronedelivery/internal/pkg/errs"
)

// GridSize is the declared extent of the operating area. Planning never checks
// order coordinates against it.
type GridSize struct {
	width  int
	height int
}

// NewGridSize validates that both extents are non-negative.
func NewGridSize(width, height int) (GridSize, error) {
	var err error
	if width < 0 {
		err = errors.Join(err, errs.NewValueIsOutOfRangeError("width", width, 0, math.MaxInt))
	}
	if height < 0 {
		err = errors.Join(err, errs.NewValueIsOutOfRangeError("height", height, 0, math.MaxInt))
	}
	if err != nil {
		return GridSize{}, err
	}

	return GridSize{width: width, height: height}, nil
}

func (g GridSize) Width() int  { return g.width }
func (g GridSize) Height() int { return g.height }

// CheckNonNegative rejects negative and non-finite measures such as weights and ranges.
func CheckNonNegative(param string, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return errs.NewValueIsInvalidErrorWithCause(param, errors.New("value must be a finite number"))
	}
	if value < 0 {
		return errs.NewValueIsOutOfRangeError(param, value, 0, math.MaxFloat64)
	}
	return nil
}
