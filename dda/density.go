package dda

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
)

// densityBatchRows is the number of profile rows convolved per scheduled
// task; also the granularity of cancellation checks.
const densityBatchRows = 16

// CalcDensity convolves the backscatter field with the kernel to produce
// the density field, renormalising for invalid data.
//
// Invalid cells (set in dataMask) contribute zero to the convolution sum,
// and the sum is divided by the kernel weight that actually overlapped
// valid cells, so the density is unbiased next to data gaps. Cells whose
// neighbourhood is entirely invalid get density 0. If dataMask is nil it is
// derived from the NaN cells of data.
//
// Rows are convolved in parallel; results are independent of the worker
// count. The context is checked between row batches.
func CalcDensity(ctx context.Context, data *mat.Dense, dataMask *BoolGrid, kernel *mat.Dense, opts DensityOptions) (*mat.Dense, error) {
	n, m := data.Dims()
	if n == 0 || m == 0 {
		return nil, fmt.Errorf("%w: data is (%d,%d)", ErrEmptyGrid, n, m)
	}
	if dataMask == nil {
		dataMask = InvalidData(data)
	} else if err := checkGridShape("dataMask", dataMask, n, m); err != nil {
		return nil, err
	}
	kr, kc := kernel.Dims()
	if kr == 0 || kc == 0 {
		return nil, fmt.Errorf("%w: kernel is (%d,%d)", ErrEmptyGrid, kr, kc)
	}

	density := mat.NewDense(n, m, nil)

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for lo := 0; lo < n; lo += densityBatchRows {
		lo := lo
		hi := lo + densityBatchRows
		if hi > n {
			hi = n
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			convolveRows(density, data, dataMask, kernel, opts, lo, hi)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return density, nil
}

// convolveRows computes density rows [lo, hi). Each output cell is the
// kernel-weighted sum of valid data divided by the kernel-weighted count of
// valid cells (the renormalisation term).
func convolveRows(density, data *mat.Dense, dataMask *BoolGrid, kernel *mat.Dense, opts DensityOptions, lo, hi int) {
	n, m := data.Dims()
	kr, kc := kernel.Dims()
	hr, hc := kr/2, kc/2

	for i := lo; i < hi; i++ {
		for j := 0; j < m; j++ {
			sum, norm := 0.0, 0.0
			for p := 0; p < kr; p++ {
				si, iok := mapBoundary(i+hr-p, n, opts.Boundary)
				for q := 0; q < kc; q++ {
					sj, jok := mapBoundary(j+hc-q, m, opts.Boundary)
					w := kernel.At(p, q)
					if !iok || !jok {
						// Fill padding counts as valid data at FillValue.
						sum += w * opts.FillValue
						norm += w
						continue
					}
					if dataMask.At(si, sj) {
						continue
					}
					sum += w * data.At(si, sj)
					norm += w
				}
			}
			if norm > 0 {
				density.Set(i, j, sum/norm)
			} else {
				density.Set(i, j, 0)
			}
		}
	}
}

// mapBoundary maps a possibly out-of-range index onto [0, n) according to
// the boundary mode. ok is false only for BoundaryFill padding.
func mapBoundary(i, n int, mode BoundaryMode) (int, bool) {
	if i >= 0 && i < n {
		return i, true
	}
	switch mode {
	case BoundaryWrap:
		i %= n
		if i < 0 {
			i += n
		}
		return i, true
	case BoundarySymm:
		// Reflect about the edges, repeating for kernels wider than the
		// field: ..., 2, 1, 0 | 0, 1, 2, ... | m-1, m-2, ...
		for i < 0 || i >= n {
			if i < 0 {
				i = -i - 1
			}
			if i >= n {
				i = 2*n - i - 1
			}
		}
		return i, true
	default:
		return 0, false
	}
}
