package dda

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// BoolGrid is a dense (rows, cols) boolean field stored row-major, used for
// data-validity masks, cloud masks and ground masks. Row index is the
// profile (time) axis, column index is the range-bin (height) axis.
//
// The zero value is not usable; construct with NewBoolGrid or
// BoolGridFromRows.
type BoolGrid struct {
	rows, cols int
	cells      []bool
}

// NewBoolGrid returns an all-false grid with the given dimensions.
// It panics if either dimension is not positive, matching mat.NewDense.
func NewBoolGrid(rows, cols int) *BoolGrid {
	if rows <= 0 || cols <= 0 {
		panic("dda: non-positive BoolGrid dimension")
	}
	return &BoolGrid{rows: rows, cols: cols, cells: make([]bool, rows*cols)}
}

// BoolGridFromRows builds a grid from a rectangular [][]bool, copying the
// input. Returns ErrEmptyGrid for zero rows/columns and ErrShapeMismatch if
// the rows are ragged.
func BoolGridFromRows(rows [][]bool) (*BoolGrid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	g := NewBoolGrid(len(rows), len(rows[0]))
	for i, r := range rows {
		if len(r) != g.cols {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrShapeMismatch, i, len(r), g.cols)
		}
		copy(g.Row(i), r)
	}
	return g, nil
}

// Rows returns the number of profiles.
func (g *BoolGrid) Rows() int { return g.rows }

// Cols returns the number of range bins.
func (g *BoolGrid) Cols() int { return g.cols }

// At returns the cell value at (i, j).
func (g *BoolGrid) At(i, j int) bool { return g.cells[i*g.cols+j] }

// Set assigns the cell value at (i, j).
func (g *BoolGrid) Set(i, j int, v bool) { g.cells[i*g.cols+j] = v }

// Row returns the backing slice for profile i. Mutating it mutates the grid.
func (g *BoolGrid) Row(i int) []bool {
	return g.cells[i*g.cols : (i+1)*g.cols]
}

// Clone returns a deep copy of the grid.
func (g *BoolGrid) Clone() *BoolGrid {
	out := NewBoolGrid(g.rows, g.cols)
	copy(out.cells, g.cells)
	return out
}

// SameShape reports whether o has identical dimensions.
func (g *BoolGrid) SameShape(o *BoolGrid) bool {
	return o != nil && g.rows == o.rows && g.cols == o.cols
}

// CountTrue returns the number of set cells.
func (g *BoolGrid) CountTrue() int {
	n := 0
	for _, v := range g.cells {
		if v {
			n++
		}
	}
	return n
}

// Equal reports whether both grids have the same shape and cell values.
func (g *BoolGrid) Equal(o *BoolGrid) bool {
	if !g.SameShape(o) {
		return false
	}
	for i, v := range g.cells {
		if v != o.cells[i] {
			return false
		}
	}
	return true
}

// orInto sets g |= o. Shapes must already agree.
func (g *BoolGrid) orInto(o *BoolGrid) {
	for i, v := range o.cells {
		if v {
			g.cells[i] = true
		}
	}
}

// InvalidData derives the data-validity mask from a backscatter field: a
// cell is set where the datum is NaN or infinite and must be excluded from
// density and threshold calculations.
func InvalidData(data *mat.Dense) *BoolGrid {
	n, m := data.Dims()
	mask := NewBoolGrid(n, m)
	for i := 0; i < n; i++ {
		for j := 0; j < m; j++ {
			v := data.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				mask.Set(i, j, true)
			}
		}
	}
	return mask
}

// checkGridShape verifies that grid has exactly (n, m) cells.
func checkGridShape(name string, g *BoolGrid, n, m int) error {
	if g == nil {
		return fmt.Errorf("%w: %s is nil", ErrShapeMismatch, name)
	}
	if g.rows != n || g.cols != m {
		return fmt.Errorf("%w: %s is (%d,%d), want (%d,%d)", ErrShapeMismatch, name, g.rows, g.cols, n, m)
	}
	return nil
}
