package dda

import (
	"fmt"

	"go.uber.org/zap"
)

// GroundBin is a nullable bin index: the bin where the ground return starts
// for one profile, or "no ground detected" when Valid is false. Using an
// explicit validity flag avoids overloading a float index with NaN.
type GroundBin struct {
	Bin   int
	Valid bool
}

// ValidGroundBin wraps a detected ground-bin index.
func ValidGroundBin(bin int) GroundBin { return GroundBin{Bin: bin, Valid: true} }

// MissingGroundBin marks a profile with no detected ground return.
func MissingGroundBin() GroundBin { return GroundBin{} }

// GroundStats accumulates per-call counters for tuning and validation.
type GroundStats struct {
	// ProfilesMasked counts profiles whose ground band was removed.
	ProfilesMasked int
	// ProfilesSkipped counts profiles with no valid ground bin.
	ProfilesSkipped int
	// BinsTransferred counts cloudy bins moved into the ground mask.
	BinsTransferred int
}

// GroundRemover strips a fixed-width ground-return band from cloud masks.
// The zero value is usable and removes a zero-width (no-op) band; construct
// with NewGroundRemover to set the band width.
type GroundRemover struct {
	// Width is the number of consecutive bins, starting at the ground bin
	// and counting up in index, treated as ground signal. The band is this
	// wide because the kernel convolution smears the surface return across
	// neighbouring bins in the density field.
	Width int

	// Log receives verbose diagnostics; nil stays silent.
	Log *zap.Logger

	stats GroundStats
}

// NewGroundRemover returns a remover for a ground band of the given width.
func NewGroundRemover(width int) *GroundRemover {
	return &GroundRemover{Width: width}
}

// RemoveGround partitions cloudMask into a cleaned cloud mask and a ground
// mask. For every profile with a valid ground bin, the cloud-mask values in
// the band [bin, bin+Width) move to the ground mask and are zeroed in the
// cleaned mask; profiles without a valid ground bin pass through unchanged.
// Band indices are clamped to the grid, so a band running off the top
// truncates instead of failing.
//
// layerMask is the consolidated layer mask from the same pass. It is shape
// checked but does not gate which profiles are masked; only ground-bin
// validity does. (This mirrors the reference algorithm, where the layer
// mask travels with the call but the gating never materialised.)
//
// heights is used solely to validate bin ordering: it must be strictly
// monotonic, ascending or descending, or ErrHeightsUnordered is returned
// before any masking. Ground bins are defined in stored-bin order, so the
// same [lo, hi) band applies under either direction.
//
// Neither input mask is modified; both results are freshly allocated and
// share cloudMask's shape.
func (r *GroundRemover) RemoveGround(layerMask *BoolGrid, groundBins []GroundBin, cloudMask *BoolGrid, heights []float64) (noGround, ground *BoolGrid, err error) {
	if r.Width < 0 {
		return nil, nil, fmt.Errorf("%w: got %d", ErrNegativeWidth, r.Width)
	}
	if cloudMask == nil || cloudMask.Rows() == 0 || cloudMask.Cols() == 0 {
		return nil, nil, fmt.Errorf("%w: cloud mask", ErrEmptyGrid)
	}
	n, m := cloudMask.Rows(), cloudMask.Cols()

	order, err := HeightOrdering(heights)
	if err != nil {
		return nil, nil, err
	}
	if len(heights) != m {
		return nil, nil, fmt.Errorf("%w: %d heights for %d bins", ErrShapeMismatch, len(heights), m)
	}
	if err := checkGridShape("layerMask", layerMask, n, m); err != nil {
		return nil, nil, err
	}
	if len(groundBins) != n {
		return nil, nil, fmt.Errorf("%w: %d ground bins for %d profiles", ErrShapeMismatch, len(groundBins), n)
	}

	if r.Log != nil {
		r.Log.Debug("removing ground band from cloud mask",
			zap.Int("profiles", n),
			zap.Int("bins", m),
			zap.Int("ground_width", r.Width),
			zap.Stringer("height_order", order),
		)
	}

	noGround = cloudMask.Clone()
	ground = NewBoolGrid(n, m)

	for i := 0; i < n; i++ {
		gb := groundBins[i]
		if !gb.Valid {
			r.stats.ProfilesSkipped++
			continue
		}
		lo, hi := clampBand(gb.Bin, gb.Bin+r.Width, m)
		cloudRow := cloudMask.Row(i)
		groundRow := ground.Row(i)
		cleanRow := noGround.Row(i)
		for j := lo; j < hi; j++ {
			if cloudRow[j] {
				groundRow[j] = true
				r.stats.BinsTransferred++
			}
			cleanRow[j] = false
		}
		r.stats.ProfilesMasked++
	}

	if r.Log != nil {
		r.Log.Debug("ground band removed",
			zap.Int("profiles_masked", r.stats.ProfilesMasked),
			zap.Int("profiles_skipped", r.stats.ProfilesSkipped),
			zap.Int("bins_transferred", r.stats.BinsTransferred),
		)
	}
	return noGround, ground, nil
}

// Stats returns the counters accumulated across calls.
func (r *GroundRemover) Stats() GroundStats { return r.stats }

// ResetStats clears the accumulated counters.
func (r *GroundRemover) ResetStats() { r.stats = GroundStats{} }

// RemoveGround is the package-level convenience form of
// GroundRemover.RemoveGround for one-shot calls.
func RemoveGround(layerMask *BoolGrid, groundBins []GroundBin, cloudMask *BoolGrid, groundWidth int, heights []float64) (noGround, ground *BoolGrid, err error) {
	r := NewGroundRemover(groundWidth)
	return r.RemoveGround(layerMask, groundBins, cloudMask, heights)
}

// clampBand clamps [lo, hi) onto [0, m). A band that collapses or lies
// entirely outside the grid comes back empty (lo == hi).
func clampBand(lo, hi, m int) (int, int) {
	if lo < 0 {
		lo = 0
	}
	if hi > m {
		hi = m
	}
	if hi < lo {
		hi = lo
	}
	return lo, hi
}
