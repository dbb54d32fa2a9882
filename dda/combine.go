package dda

import "fmt"

// CombineMasks ORs the per-pass cloud masks together and optionally removes
// small clusters from the combined result. All masks must share a shape.
func CombineMasks(masks []*BoolGrid, minClusterSize int, conn Connectivity) (*BoolGrid, error) {
	if len(masks) == 0 || masks[0] == nil {
		return nil, fmt.Errorf("%w: no masks to combine", ErrEmptyGrid)
	}
	combined := masks[0].Clone()
	for i, m := range masks[1:] {
		if err := checkGridShape(fmt.Sprintf("mask %d", i+1), m, combined.Rows(), combined.Cols()); err != nil {
			return nil, err
		}
		combined.orInto(m)
	}
	if minClusterSize > 0 {
		return RemoveSmallClusters(combined, minClusterSize, conn)
	}
	return combined, nil
}
