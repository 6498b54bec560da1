// SPDX-License-Identifier: MIT

package xgrid_test

import (
	"fmt"

	"github.com/katalvlaran/sphgrid/grid"
	"github.com/katalvlaran/sphgrid/xgrid"
)

// ExampleCreate remaps a 4×2 global grid onto a 2×1 one.
func ExampleCreate() {
	build := func(nlon, nlat int) *grid.Tile {
		t, err := grid.Build(grid.LonLatSpec{
			LonRange: [2]float64{0, 360}, LatRange: [2]float64{-90, 90},
			NLon: nlon, NLat: nlat, CenterY: true,
		})
		if err != nil {
			panic(err)
		}
		return t
	}
	src, tgt := build(4, 2), build(2, 1)

	x, err := xgrid.Create(src, tgt)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println("records:", len(x.Records))
	for _, r := range x.Records[:4] {
		fmt.Printf("tgt (%d,%d) <- src (%d,%d) frac %.3f\n",
			r.TgtI, r.TgtJ, r.SrcI, r.SrcJ, r.Area/x.Tgt[0].Area[0])
	}

	out, err := x.RemapTile([]float64{1, 2, 3, 4, 5, 6, 7, 8})
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("remapped: %.3f %.3f\n", out[0], out[1])
	// Output:
	// records: 8
	// tgt (0,0) <- src (0,0) frac 0.250
	// tgt (0,0) <- src (1,0) frac 0.250
	// tgt (0,0) <- src (0,1) frac 0.250
	// tgt (0,0) <- src (1,1) frac 0.250
	// remapped: 3.500 5.500
}
