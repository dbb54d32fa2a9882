package dda

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// CalcThresholds derives the per-profile cloud threshold from the density
// field: threshold = Bias + Sensitivity * quantile(window), where the
// window is a strided segment of profiles centred on the target profile.
//
// With Downsample = d > 0, the field is first passed through a
// (2d+1)-neighbourhood max filter so the quantile sees one independent
// maximum per stride. Invalid cells are excluded from the quantile; a
// window with no valid cells falls back to the bare Bias.
func CalcThresholds(density *mat.Dense, dataMask *BoolGrid, opts ThresholdOptions) ([]float64, error) {
	if opts.Quantile <= 0 || opts.Quantile > 1 {
		return nil, fmt.Errorf("%w: got %g", ErrBadQuantile, opts.Quantile)
	}
	n, m := density.Dims()
	if n == 0 || m == 0 {
		return nil, fmt.Errorf("%w: density is (%d,%d)", ErrEmptyGrid, n, m)
	}
	if dataMask != nil {
		if err := checkGridShape("dataMask", dataMask, n, m); err != nil {
			return nil, err
		}
	}

	working := downsampleMax(density, opts.Downsample)

	// Masked cells must not contribute a density value to the quantile.
	if dataMask != nil {
		for i := 0; i < n; i++ {
			row := working[i]
			for j := 0; j < m; j++ {
				if dataMask.At(i, j) {
					row[j] = math.NaN()
				}
			}
		}
	}

	delta := 2*opts.Downsample + 1
	span := opts.SegmentLength * delta

	thresholds := make([]float64, n)
	var window []float64
	for x := 0; x < n; x++ {
		left, right := x-span, x+span
		if left < 0 {
			left = 0
		}
		if right > n-1 {
			right = n - 1
		}

		window = window[:0]
		for r := left; r <= right; r += delta {
			for _, v := range working[r] {
				if !math.IsNaN(v) {
					window = append(window, v)
				}
			}
		}
		if len(window) == 0 {
			thresholds[x] = opts.Bias
			continue
		}
		sort.Float64s(window)
		q := stat.Quantile(opts.Quantile, stat.LinInterp, window, nil)
		thresholds[x] = opts.Bias + opts.Sensitivity*q
	}
	return thresholds, nil
}

// downsampleMax copies density into row slices, replacing each cell by the
// maximum of its d-neighbourhood when d > 0. NaN cells are skipped; a
// neighbourhood with no finite values stays NaN.
func downsampleMax(density *mat.Dense, d int) [][]float64 {
	n, m := density.Dims()
	out := make([][]float64, n)
	for i := range out {
		out[i] = make([]float64, m)
		mat.Row(out[i], i, density)
	}
	if d <= 0 {
		return out
	}
	for x := 0; x < n; x++ {
		rlo, rhi := x-d, x+d
		if rlo < 0 {
			rlo = 0
		}
		if rhi > n {
			rhi = n
		}
		for y := 0; y < m; y++ {
			clo, chi := y-d, y+d
			if clo < 0 {
				clo = 0
			}
			if chi > m {
				chi = m
			}
			best := math.NaN()
			for r := rlo; r < rhi; r++ {
				for c := clo; c < chi; c++ {
					v := density.At(r, c)
					if math.IsNaN(v) {
						continue
					}
					if math.IsNaN(best) || v > best {
						best = v
					}
				}
			}
			out[x][y] = best
		}
	}
	return out
}
