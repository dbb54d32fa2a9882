package dda

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeightOrdering(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		heights []float64
		want    HeightOrder
		wantErr bool
	}{
		{name: "ascending", heights: []float64{0, 10, 20, 30}, want: HeightsAscending},
		{name: "descending", heights: []float64{30, 20, 10, 0}, want: HeightsDescending},
		{name: "negative ascending", heights: []float64{-300, -200, -100}, want: HeightsAscending},
		{name: "non-monotonic", heights: []float64{1, 2, 4, 3}, wantErr: true},
		{name: "plateau", heights: []float64{1, 1, 2}, wantErr: true},
		{name: "single bin", heights: []float64{5}, wantErr: true},
		{name: "empty", heights: nil, wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := HeightOrdering(tt.heights)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrHeightsUnordered)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHeightOrder_String(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "ascending", HeightsAscending.String())
	assert.Equal(t, "descending", HeightsDescending.String())
	assert.Equal(t, "unknown", HeightOrder(0).String())
}
