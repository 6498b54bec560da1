// SPDX-License-Identifier: MIT

package xgrid_test

import (
	"testing"

	"github.com/katalvlaran/sphgrid/grid"
	"github.com/katalvlaran/sphgrid/xgrid"
)

func benchTiles(b *testing.B) (*grid.Tile, *grid.Tile) {
	b.Helper()
	src, err := grid.Build(grid.LonLatSpec{
		LonRange: [2]float64{0, 360}, LatRange: [2]float64{-90, 90},
		NLon: 144, NLat: 90, CenterY: true,
	})
	if err != nil {
		b.Fatalf("setup Build failed: %v", err)
	}
	tgt, err := grid.Build(grid.LonLatSpec{
		LonRange: [2]float64{0, 360}, LatRange: [2]float64{-90, 90},
		NLon: 96, NLat: 64, CenterY: true,
	})
	if err != nil {
		b.Fatalf("setup Build failed: %v", err)
	}

	return src, tgt
}

// BenchmarkCreate measures a 2.5° to 3.75° exchange grid.
// Complexity: O(Ntgt·(log Nsrc + k))
func BenchmarkCreate(b *testing.B) {
	src, tgt := benchTiles(b)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := xgrid.Create(src, tgt); err != nil {
			b.Fatalf("Create failed: %v", err)
		}
	}
}

// BenchmarkCreateCube measures a C24 to 2.5° mosaic exchange grid.
func BenchmarkCreateCube(b *testing.B) {
	cube, err := grid.BuildCubeSphere(24)
	if err != nil {
		b.Fatalf("setup BuildCubeSphere failed: %v", err)
	}
	tgt, _ := benchTiles(b)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := xgrid.CreateMosaic(cube, []*grid.Tile{tgt}); err != nil {
			b.Fatalf("CreateMosaic failed: %v", err)
		}
	}
}

// BenchmarkRemapSecondOrder measures gradient fitting plus remapping.
func BenchmarkRemapSecondOrder(b *testing.B) {
	src, tgt := benchTiles(b)
	x, err := xgrid.Create(src, tgt, xgrid.WithOrder(2))
	if err != nil {
		b.Fatalf("setup Create failed: %v", err)
	}
	f := make([]float64, src.Cells())
	for k := range f {
		f[k] = float64(k % 17)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := x.RemapTile(f, xgrid.WithLimiter()); err != nil {
			b.Fatalf("RemapTile failed: %v", err)
		}
	}
}
