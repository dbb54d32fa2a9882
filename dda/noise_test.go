package dda

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestNoiseStats(t *testing.T) {
	t.Parallel()

	// One profile, four bins at 0/1000/2000/3000 m, DEM at 0.
	data := denseFromRows(t, [][]float64{{99, 10, 20, 30}})
	heights := []float64{0, 1000, 2000, 3000}
	dem := []float64{0}

	t.Run("bins above the altitude floor", func(t *testing.T) {
		t.Parallel()
		clear := maskFromStrings(t, "0000")
		means, sds, err := NoiseStats(data, clear, heights, dem, 500)
		require.NoError(t, err)
		// Bins 1..3 qualify: mean(10,20,30)=20, sample sd 10.
		assert.InDelta(t, 20, means[0], 1e-12)
		assert.InDelta(t, 10, sds[0], 1e-12)
	})

	t.Run("cloudy bins excluded", func(t *testing.T) {
		t.Parallel()
		cloudy := maskFromStrings(t, "0010")
		means, sds, err := NoiseStats(data, cloudy, heights, dem, 500)
		require.NoError(t, err)
		// Only bins 1 and 3 remain: mean 20, sd sqrt(200).
		assert.InDelta(t, 20, means[0], 1e-12)
		assert.InDelta(t, math.Sqrt(200), sds[0], 1e-12)
	})

	t.Run("too few samples yields NaN", func(t *testing.T) {
		t.Parallel()
		clear := maskFromStrings(t, "0000")
		means, sds, err := NoiseStats(data, clear, heights, dem, 2500)
		require.NoError(t, err)
		assert.True(t, math.IsNaN(means[0]))
		assert.True(t, math.IsNaN(sds[0]))
	})

	t.Run("shape validation", func(t *testing.T) {
		t.Parallel()
		clear := maskFromStrings(t, "0000")
		_, _, err := NoiseStats(data, clear, heights[:3], dem, 500)
		assert.ErrorIs(t, err, ErrShapeMismatch)
		_, _, err = NoiseStats(data, clear, heights, []float64{0, 0}, 500)
		assert.ErrorIs(t, err, ErrShapeMismatch)
		_, _, err = NoiseStats(data, maskFromStrings(t, "000"), heights, dem, 500)
		assert.ErrorIs(t, err, ErrShapeMismatch)
	})
}

func TestReplaceWithNoise(t *testing.T) {
	t.Parallel()

	data := denseFromRows(t, [][]float64{
		{1, 2, 3, 4},
		{5, 6, 7, 8},
	})
	mask := maskFromStrings(t, "0110", "0001")

	t.Run("seeded runs are reproducible", func(t *testing.T) {
		t.Parallel()
		opts := NoiseOptions{Seed: 42}
		means, sds := []float64{10, 10}, []float64{2, 2}

		a, err := ReplaceWithNoise(data, mask, means, sds, opts)
		require.NoError(t, err)
		b, err := ReplaceWithNoise(data, mask, means, sds, opts)
		require.NoError(t, err)
		assert.True(t, mat.Equal(a, b))
	})

	t.Run("unmasked bins keep their values", func(t *testing.T) {
		t.Parallel()
		out, err := ReplaceWithNoise(data, mask, []float64{10, 10}, []float64{2, 2}, NoiseOptions{Seed: 7})
		require.NoError(t, err)
		assert.Equal(t, 1.0, out.At(0, 0))
		assert.Equal(t, 4.0, out.At(0, 3))
		assert.Equal(t, 5.0, out.At(1, 0))
		assert.Equal(t, 7.0, out.At(1, 2))
	})

	t.Run("samples are floored at VMin", func(t *testing.T) {
		t.Parallel()
		// A mean far below the floor forces every sample to clamp.
		out, err := ReplaceWithNoise(data, mask, []float64{-100, -100}, []float64{1, 1}, NoiseOptions{VMin: 0, Seed: 3})
		require.NoError(t, err)
		assert.Equal(t, 0.0, out.At(0, 1))
		assert.Equal(t, 0.0, out.At(0, 2))
		assert.Equal(t, 0.0, out.At(1, 3))
	})

	t.Run("zero sd fills with the mean", func(t *testing.T) {
		t.Parallel()
		out, err := ReplaceWithNoise(data, mask, []float64{9, 11}, []float64{0, 0}, NoiseOptions{Seed: 5})
		require.NoError(t, err)
		assert.Equal(t, 9.0, out.At(0, 1))
		assert.Equal(t, 9.0, out.At(0, 2))
		assert.Equal(t, 11.0, out.At(1, 3))
	})

	t.Run("NaN stats leave the profile untouched", func(t *testing.T) {
		t.Parallel()
		out, err := ReplaceWithNoise(data, mask, []float64{math.NaN(), 10}, []float64{math.NaN(), 1}, NoiseOptions{Seed: 5})
		require.NoError(t, err)
		assert.Equal(t, 2.0, out.At(0, 1))
		assert.Equal(t, 3.0, out.At(0, 2))
		assert.NotEqual(t, 8.0, out.At(1, 3))
	})

	t.Run("input is not mutated", func(t *testing.T) {
		t.Parallel()
		before := mat.DenseCopyOf(data)
		_, err := ReplaceWithNoise(data, mask, []float64{10, 10}, []float64{2, 2}, NoiseOptions{Seed: 1})
		require.NoError(t, err)
		assert.True(t, mat.Equal(before, data))
	})

	t.Run("stats length validation", func(t *testing.T) {
		t.Parallel()
		_, err := ReplaceWithNoise(data, mask, []float64{10}, []float64{2, 2}, NoiseOptions{})
		assert.ErrorIs(t, err, ErrShapeMismatch)
	})
}
