// SPDX-License-Identifier: MIT

package cubesphere_test

import (
	"fmt"

	"github.com/katalvlaran/sphgrid/cubesphere"
	"github.com/katalvlaran/sphgrid/field"
)

// ExampleDescriptor prints where tile 1 takes its halos from.
func ExampleDescriptor() {
	for e := cubesphere.West; e <= cubesphere.North; e++ {
		d, err := cubesphere.Descriptor(1, e)
		if err != nil {
			fmt.Println(err)
			return
		}
		fmt.Printf("%-5s <- %v\n", e, d)
	}
	// Output:
	// west  <- tile5.north reverse=true swap=true
	// east  <- tile2.west reverse=false swap=false
	// south <- tile6.north reverse=false swap=false
	// north <- tile3.west reverse=true swap=true
}

// ExampleExchange fills a width-1 halo on a field tagged by tile number.
func ExampleExchange() {
	in := make([]*field.Field, cubesphere.NumTiles)
	for k := range in {
		in[k], _ = field.Constant(2, 2, float64(k+1))
	}
	out, err := cubesphere.Exchange(1, in)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Print(out[0])
	// Output:
	// [4, 3, 3, 2.5]
	// [5, 1, 1, 2]
	// [5, 1, 1, 2]
	// [5.5, 6, 6, 4]
}
