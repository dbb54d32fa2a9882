package dda

import (
	"fmt"

	"github.com/katalvlaran/lvlath/gridgraph"
)

// RemoveSmallClusters returns a copy of mask with every connected true
// region of fewer than minSize cells cleared. Connectivity selects whether
// diagonal neighbours join a region. minSize <= 1 returns an unmodified
// copy.
func RemoveSmallClusters(mask *BoolGrid, minSize int, conn Connectivity) (*BoolGrid, error) {
	if mask == nil || mask.Rows() == 0 || mask.Cols() == 0 {
		return nil, ErrEmptyGrid
	}
	out := mask.Clone()
	if minSize <= 1 {
		return out, nil
	}

	// gridgraph treats cells >= 1 as "land"; mirror the mask into a 0/1
	// grid and let it label the islands.
	cells := make([][]int, mask.Rows())
	for i := range cells {
		row := make([]int, mask.Cols())
		for j, v := range mask.Row(i) {
			if v {
				row[j] = 1
			}
		}
		cells[i] = row
	}
	gconn := gridgraph.Conn4
	if conn == Conn8 {
		gconn = gridgraph.Conn8
	}
	gg, err := gridgraph.NewGridGraph(cells, gridgraph.GridOptions{LandThreshold: 1, Conn: gconn})
	if err != nil {
		return nil, fmt.Errorf("dda: clustering mask: %w", err)
	}

	for _, comps := range gg.ConnectedComponents() {
		for _, comp := range comps {
			if len(comp) >= minSize {
				continue
			}
			for _, cell := range comp {
				out.Set(cell.Y, cell.X, false)
			}
		}
	}
	return out, nil
}
