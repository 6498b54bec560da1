// SPDX-License-Identifier: MIT

package cubesphere_test

import (
	"testing"

	"github.com/katalvlaran/sphgrid/cubesphere"
	"github.com/katalvlaran/sphgrid/field"
)

// BenchmarkExchange measures a width-3 exchange on C96 tiles.
// Complexity: O(6·n·width) plus the interior copies
func BenchmarkExchange(b *testing.B) {
	in := make([]*field.Field, cubesphere.NumTiles)
	for k := range in {
		f, err := field.Constant(96, 96, float64(k))
		if err != nil {
			b.Fatalf("setup Constant failed: %v", err)
		}
		in[k] = f
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := cubesphere.Exchange(3, in); err != nil {
			b.Fatalf("Exchange failed: %v", err)
		}
	}
}
