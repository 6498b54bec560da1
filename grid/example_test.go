// SPDX-License-Identifier: MIT

package grid_test

import (
	"fmt"

	"github.com/katalvlaran/sphgrid/grid"
	"github.com/katalvlaran/sphgrid/sphere"
)

// ExampleConfigure shows the two-phase build and the refined sizes.
func ExampleConfigure() {
	p, err := grid.Configure(grid.LonLatSpec{
		LonRange: [2]float64{0, 360}, LatRange: [2]float64{-90, 90},
		NLon: 4, NLat: 3, RefineSteps: 2, Mode: grid.ModeBilinear,
	})
	if err != nil {
		fmt.Println(err)
		return
	}
	nx, ny := p.FineSize()
	fmt.Println("fine:", nx, ny)

	tile, err := p.Finalize()
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println("centres:", degrees(tile.Axes.LatT))
	fmt.Println("corners:", degrees(tile.Axes.LatC))
	// Output:
	// fine: 16 9
	// centres: [-90.0 0.0 90.0]
	// corners: [-90.0 -45.0 45.0 90.0]
}

func degrees(rad []float64) []string {
	out := make([]string, len(rad))
	for k, r := range rad {
		out[k] = fmt.Sprintf("%.1f", r*sphere.R2D)
	}

	return out
}

// ExampleBuildCubeSphere builds a C8 cubed sphere.
func ExampleBuildCubeSphere() {
	tiles, err := grid.BuildCubeSphere(8)
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, t := range tiles[:2] {
		fmt.Println(t.Name, t.Type, t.NX, t.NY, t.Arc)
	}
	// Output:
	// tile1 gnomonic_ed 8 8 great_circle
	// tile2 gnomonic_ed 8 8 great_circle
}
