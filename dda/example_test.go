package dda_test

import (
	"fmt"

	"github.com/DAndrewA/dda-atmos/dda"
)

// ExampleRemoveGround strips a two-bin ground band from a small cloud mask.
// The second profile has no detected ground and passes through unchanged.
func ExampleRemoveGround() {
	cloud, _ := dda.BoolGridFromRows([][]bool{
		{true, true, true, true, true},
		{true, false, true, false, true},
	})
	heights := []float64{0, 1, 2, 3, 4}
	bins := []dda.GroundBin{dda.ValidGroundBin(2), dda.MissingGroundBin()}

	noGround, ground, err := dda.RemoveGround(cloud, bins, cloud, 2, heights)
	if err != nil {
		panic(err)
	}

	print := func(g *dda.BoolGrid) {
		for i := 0; i < g.Rows(); i++ {
			for j := 0; j < g.Cols(); j++ {
				if g.At(i, j) {
					fmt.Print("1")
				} else {
					fmt.Print("0")
				}
			}
			fmt.Println()
		}
	}
	fmt.Println("cloud, ground removed:")
	print(noGround)
	fmt.Println("ground:")
	print(ground)

	// Output:
	// cloud, ground removed:
	// 11001
	// 10101
	// ground:
	// 00110
	// 00000
}
