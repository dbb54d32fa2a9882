package dda

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// NewGaussianKernel builds a normalised 2D Gaussian convolution kernel for
// the density calculation. The kernel has odd dimensions
// (2*ceil(Cutoff*sigma)+1 per axis) so it is centred on a cell, and its
// entries sum to 1 so an unmasked uniform field convolves to itself.
func NewGaussianKernel(opts KernelOptions) (*mat.Dense, error) {
	if opts.SigmaProfiles <= 0 || opts.SigmaBins <= 0 {
		return nil, fmt.Errorf("%w: got (%g, %g)", ErrKernelSigma, opts.SigmaProfiles, opts.SigmaBins)
	}
	cutoff := opts.Cutoff
	if cutoff <= 0 {
		cutoff = 1
	}

	halfR := int(math.Ceil(cutoff * opts.SigmaProfiles))
	halfC := int(math.Ceil(cutoff * opts.SigmaBins))
	rows := 2*halfR + 1
	cols := 2*halfC + 1

	k := mat.NewDense(rows, cols, nil)
	sum := 0.0
	for i := 0; i < rows; i++ {
		dr := float64(i-halfR) / opts.SigmaProfiles
		for j := 0; j < cols; j++ {
			dc := float64(j-halfC) / opts.SigmaBins
			v := math.Exp(-0.5 * (dr*dr + dc*dc))
			k.Set(i, j, v)
			sum += v
		}
	}
	k.Scale(1/sum, k)
	return k, nil
}
