package dda

import "errors"

// Sentinel errors for pipeline validation. Callers should match with
// errors.Is; returned errors wrap these with the offending dimensions or
// values.
var (
	// ErrHeightsUnordered indicates the heights coordinate is not strictly
	// monotonic (ascending or descending).
	ErrHeightsUnordered = errors.New("dda: heights isn't ordered")
	// ErrShapeMismatch indicates input arrays disagree on (n, m) dimensions.
	ErrShapeMismatch = errors.New("dda: shape mismatch")
	// ErrEmptyGrid indicates a grid with zero rows or zero columns where
	// data is required.
	ErrEmptyGrid = errors.New("dda: empty grid")
	// ErrNegativeWidth indicates a negative ground-band width.
	ErrNegativeWidth = errors.New("dda: ground width must be >= 0")
	// ErrKernelSigma indicates a non-positive Gaussian kernel sigma.
	ErrKernelSigma = errors.New("dda: kernel sigma must be > 0")
	// ErrBadQuantile indicates a threshold quantile outside (0, 1].
	ErrBadQuantile = errors.New("dda: quantile must be in (0, 1]")
)
