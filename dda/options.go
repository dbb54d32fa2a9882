package dda

// BoundaryMode selects how the density convolution treats cells beyond the
// edges of the field, mirroring the usual 2D convolution boundary handling.
type BoundaryMode int

const (
	// BoundarySymm reflects the field about its edges (default).
	BoundarySymm BoundaryMode = iota
	// BoundaryWrap treats the field as periodic on both axes.
	BoundaryWrap
	// BoundaryFill pads the field with DensityOptions.FillValue.
	BoundaryFill
)

// Connectivity selects the pixel adjacency rule used when clustering mask
// cells for small-object removal.
type Connectivity int

const (
	// Conn4 connects orthogonal neighbours only.
	Conn4 Connectivity = iota
	// Conn8 additionally connects diagonal neighbours.
	Conn8
)

// KernelOptions parameterises the Gaussian density kernel. Sigmas are in
// bins along each axis; the kernel extends Cutoff sigmas from its centre
// and always has odd dimensions so it is centred on a cell.
type KernelOptions struct {
	// SigmaProfiles is the standard deviation along the profile (row) axis.
	SigmaProfiles float64
	// SigmaBins is the standard deviation along the height-bin (column) axis.
	SigmaBins float64
	// Cutoff is the kernel half-extent in units of sigma.
	Cutoff float64
}

// DefaultKernelOptions returns the anisotropic kernel used for ATL09-style
// profiles: wide along track, narrow in height.
func DefaultKernelOptions() KernelOptions {
	return KernelOptions{SigmaProfiles: 6, SigmaBins: 3, Cutoff: 1}
}

// DensityOptions parameterises the masked density convolution.
type DensityOptions struct {
	// Boundary selects the edge handling for the convolution.
	Boundary BoundaryMode
	// FillValue pads the data field when Boundary is BoundaryFill. Padding
	// cells always count as invalid for the renormalisation term.
	FillValue float64
	// Workers bounds the number of goroutines convolving profile rows.
	// Zero or negative means one worker per available CPU.
	Workers int
}

// DefaultDensityOptions returns symmetric-boundary, auto-parallel options.
func DefaultDensityOptions() DensityOptions {
	return DensityOptions{Boundary: BoundarySymm}
}

// ThresholdOptions parameterises the per-profile cloud threshold, the
// synthesis of methods A and B from the ATL04/09 ATBD part 2.
type ThresholdOptions struct {
	// Downsample is the max-filter half-width applied before the quantile
	// calculation; 0 disables downsampling.
	Downsample int
	// SegmentLength is the moving-window half-width in (downsampled)
	// profiles used for the quantile calculation.
	SegmentLength int
	// Bias is the constant threshold offset.
	Bias float64
	// Sensitivity scales the window quantile.
	Sensitivity float64
	// Quantile is the window quantile in (0, 1].
	Quantile float64
}

// DefaultThresholdOptions returns the method-B defaults.
func DefaultThresholdOptions() ThresholdOptions {
	return ThresholdOptions{
		Downsample:    0,
		SegmentLength: 5,
		Bias:          60,
		Sensitivity:   1,
		Quantile:      0.90,
	}
}

// CloudMaskOptions parameterises the density thresholding step.
type CloudMaskOptions struct {
	// MinClusterSize removes connected cloudy regions smaller than this
	// many cells immediately after thresholding; 0 keeps every cluster.
	MinClusterSize int
	// Connectivity is the adjacency rule for cluster removal.
	Connectivity Connectivity
}

// NoiseOptions parameterises the synthetic-noise backfill of cloudy bins.
type NoiseOptions struct {
	// VMin floors generated samples so noise cannot dip below a physical
	// minimum (for backscatter, 0).
	VMin float64
	// Seed fixes the noise generator for reproducible runs; 0 draws a seed
	// from the global source.
	Seed uint64
}

// DefaultNoiseOptions floors noise at zero with a random seed.
func DefaultNoiseOptions() NoiseOptions {
	return NoiseOptions{VMin: 0}
}
