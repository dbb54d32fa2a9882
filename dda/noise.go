package dda

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// NoiseStats estimates the per-profile noise spectrum from bins well above
// the surface: for each profile it takes the mean and standard deviation of
// valid, non-cloudy data at least altitude above the DEM height for that
// profile. Profiles with fewer than two qualifying bins yield NaN stats and
// are left untouched by ReplaceWithNoise.
func NoiseStats(data *mat.Dense, cloudMask *BoolGrid, heights, dem []float64, altitude float64) (means, sds []float64, err error) {
	n, m := data.Dims()
	if err := checkGridShape("cloudMask", cloudMask, n, m); err != nil {
		return nil, nil, err
	}
	if len(heights) != m {
		return nil, nil, fmt.Errorf("%w: %d heights for %d bins", ErrShapeMismatch, len(heights), m)
	}
	if len(dem) != n {
		return nil, nil, fmt.Errorf("%w: %d dem values for %d profiles", ErrShapeMismatch, len(dem), n)
	}

	means = make([]float64, n)
	sds = make([]float64, n)
	samples := make([]float64, 0, m)
	for i := 0; i < n; i++ {
		floor := dem[i] + altitude
		samples = samples[:0]
		for j := 0; j < m; j++ {
			if heights[j] < floor || cloudMask.At(i, j) {
				continue
			}
			v := data.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			samples = append(samples, v)
		}
		if len(samples) < 2 {
			means[i], sds[i] = math.NaN(), math.NaN()
			continue
		}
		means[i], sds[i] = stat.MeanStdDev(samples, nil)
	}
	return means, sds, nil
}

// ReplaceWithNoise returns a copy of data in which every masked bin is
// replaced by a draw from N(means[i], sds[i]) for its profile, floored at
// opts.VMin. Profiles with NaN stats keep their original values. The input
// field is not modified.
func ReplaceWithNoise(data *mat.Dense, mask *BoolGrid, means, sds []float64, opts NoiseOptions) (*mat.Dense, error) {
	n, m := data.Dims()
	if err := checkGridShape("mask", mask, n, m); err != nil {
		return nil, err
	}
	if len(means) != n || len(sds) != n {
		return nil, fmt.Errorf("%w: %d means / %d sds for %d profiles", ErrShapeMismatch, len(means), len(sds), n)
	}

	seed := opts.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	src := rand.NewPCG(seed, seed)

	noisy := mat.DenseCopyOf(data)
	for i := 0; i < n; i++ {
		if math.IsNaN(means[i]) || math.IsNaN(sds[i]) {
			continue
		}
		dist := distuv.Normal{Mu: means[i], Sigma: sds[i], Src: src}
		for j := 0; j < m; j++ {
			if !mask.At(i, j) {
				continue
			}
			v := means[i]
			if sds[i] > 0 {
				v = dist.Rand()
			}
			if v < opts.VMin {
				v = opts.VMin
			}
			noisy.Set(i, j, v)
		}
	}
	return noisy, nil
}
