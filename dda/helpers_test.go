package dda

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// maskFromStrings builds a BoolGrid from rows of '1'/'0' characters, so
// fixtures read like the masks they describe.
func maskFromStrings(t *testing.T, rows ...string) *BoolGrid {
	t.Helper()
	cells := make([][]bool, len(rows))
	for i, r := range rows {
		row := make([]bool, len(r))
		for j, c := range r {
			row[j] = c == '1'
		}
		cells[i] = row
	}
	g, err := BoolGridFromRows(cells)
	require.NoError(t, err)
	return g
}

// rowsOf flattens a BoolGrid back into [][]bool for cmp-friendly diffs.
func rowsOf(g *BoolGrid) [][]bool {
	out := make([][]bool, g.Rows())
	for i := range out {
		out[i] = append([]bool(nil), g.Row(i)...)
	}
	return out
}

// denseFromRows builds a *mat.Dense from row slices.
func denseFromRows(t *testing.T, rows [][]float64) *mat.Dense {
	t.Helper()
	require.NotEmpty(t, rows)
	n, m := len(rows), len(rows[0])
	d := mat.NewDense(n, m, nil)
	for i, r := range rows {
		require.Len(t, r, m)
		d.SetRow(i, r)
	}
	return d
}

// constDense builds an (n, m) field filled with v.
func constDense(n, m int, v float64) *mat.Dense {
	d := mat.NewDense(n, m, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < m; j++ {
			d.Set(i, j, v)
		}
	}
	return d
}

// ascendingHeights returns 0, step, 2*step, ...
func ascendingHeights(m int, step float64) []float64 {
	h := make([]float64, m)
	for i := range h {
		h[i] = float64(i) * step
	}
	return h
}
