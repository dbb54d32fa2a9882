package dda

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// CalcCloudMask thresholds the density field into a boolean cloud mask: a
// bin is cloudy when its density exceeds the threshold for its profile and
// the underlying datum is valid. With MinClusterSize > 0, connected cloudy
// regions smaller than that are discarded in the same step.
func CalcCloudMask(density *mat.Dense, thresholds []float64, dataMask *BoolGrid, opts CloudMaskOptions) (*BoolGrid, error) {
	n, m := density.Dims()
	if n == 0 || m == 0 {
		return nil, fmt.Errorf("%w: density is (%d,%d)", ErrEmptyGrid, n, m)
	}
	if len(thresholds) != n {
		return nil, fmt.Errorf("%w: %d thresholds for %d profiles", ErrShapeMismatch, len(thresholds), n)
	}
	if dataMask != nil {
		if err := checkGridShape("dataMask", dataMask, n, m); err != nil {
			return nil, err
		}
	}

	mask := NewBoolGrid(n, m)
	for i := 0; i < n; i++ {
		thr := thresholds[i]
		for j := 0; j < m; j++ {
			if dataMask != nil && dataMask.At(i, j) {
				continue
			}
			if density.At(i, j) > thr {
				mask.Set(i, j, true)
			}
		}
	}

	if opts.MinClusterSize > 0 {
		return RemoveSmallClusters(mask, opts.MinClusterSize, opts.Connectivity)
	}
	return mask, nil
}
