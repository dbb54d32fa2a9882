package dda

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// HeightOrder describes the direction of the height coordinate along the
// bin axis.
type HeightOrder int

const (
	// HeightsAscending means bin index increases with altitude.
	HeightsAscending HeightOrder = iota + 1
	// HeightsDescending means bin index decreases with altitude, as in the
	// ATL09 profile ordering.
	HeightsDescending
)

// String returns a human-readable ordering name.
func (h HeightOrder) String() string {
	switch h {
	case HeightsAscending:
		return "ascending"
	case HeightsDescending:
		return "descending"
	default:
		return "unknown"
	}
}

// HeightOrdering validates that heights is strictly monotonic and reports
// its direction. Mixed-sign or zero first differences return
// ErrHeightsUnordered; fewer than two bins cannot establish an ordering and
// are rejected the same way.
func HeightOrdering(heights []float64) (HeightOrder, error) {
	if len(heights) < 2 {
		return 0, fmt.Errorf("%w: need at least 2 height bins, got %d", ErrHeightsUnordered, len(heights))
	}
	diff := make([]float64, len(heights)-1)
	floats.SubTo(diff, heights[1:], heights[:len(heights)-1])

	ascending, descending := true, true
	for _, d := range diff {
		if d <= 0 {
			ascending = false
		}
		if d >= 0 {
			descending = false
		}
	}
	switch {
	case ascending:
		return HeightsAscending, nil
	case descending:
		return HeightsDescending, nil
	default:
		return 0, fmt.Errorf("%w: first differences are not uniformly signed", ErrHeightsUnordered)
	}
}
