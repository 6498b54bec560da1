// SPDX-License-Identifier: MIT

package remapstore_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/sphgrid/grid"
	"github.com/katalvlaran/sphgrid/internal/provenance"
	"github.com/katalvlaran/sphgrid/remapstore"
	"github.com/katalvlaran/sphgrid/xgrid"
)

func lonlat(t *testing.T, nlon, nlat int) *grid.Tile {
	t.Helper()
	tile, err := grid.Build(grid.LonLatSpec{
		LonRange: [2]float64{0, 360}, LatRange: [2]float64{-90, 90},
		NLon: nlon, NLat: nlat, CenterY: true,
	})
	require.NoError(t, err)

	return tile
}

func TestRoundTripMosaic(t *testing.T) {
	ctx := context.Background()
	cube, err := grid.BuildCubeSphere(3)
	require.NoError(t, err)
	x, err := xgrid.CreateMosaic(cube, []*grid.Tile{lonlat(t, 6, 3)}, xgrid.WithOrder(2))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "remap.db")
	attrs := provenance.Collect([]string{"sphgrid", "xgrid"})
	require.NoError(t, remapstore.Save(ctx, path, x, attrs))

	y, got, err := remapstore.Load(ctx, path)
	require.NoError(t, err)
	if d := cmp.Diff(x, y); d != "" {
		t.Fatalf("exchange grid differs after load (-saved +loaded):\n%s", d)
	}
	if d := cmp.Diff(attrs, got); d != "" {
		t.Fatalf("provenance differs (-saved +loaded):\n%s", d)
	}

	// the loaded grid remaps like the original
	src := make([][]float64, len(y.Src))
	for s := range src {
		src[s] = make([]float64, y.Src[s].Cells())
		for k := range src[s] {
			src[s][k] = float64(s*10 + k)
		}
	}
	want, err := x.Remap(src)
	require.NoError(t, err)
	have, err := y.Remap(src)
	require.NoError(t, err)
	assert.Equal(t, want, have)
}

func TestRoundTripMaskedAndReplace(t *testing.T) {
	ctx := context.Background()
	g := lonlat(t, 5, 4)
	mask := make([]float64, g.Cells())
	for k := range mask {
		mask[k] = float64(k % 2)
	}
	x, err := xgrid.Create(g, lonlat(t, 3, 3), xgrid.WithMask(mask))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "remap.db")
	// a second save replaces the first file
	require.NoError(t, remapstore.Save(ctx, path, x, provenance.Collect(nil)))
	attrs := provenance.Collect([]string{"again"})
	require.NoError(t, remapstore.Save(ctx, path, x, attrs))

	y, got, err := remapstore.Load(ctx, path)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(x, y))
	assert.Equal(t, mask, y.Src[0].Mask)
	assert.Equal(t, attrs.RunID, got.RunID)
	assert.Equal(t, "again", got.History)
}

func TestLoadErrors(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	_, _, err := remapstore.Load(ctx, filepath.Join(dir, "missing.db"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	junk := filepath.Join(dir, "junk.db")
	require.NoError(t, os.WriteFile(junk, []byte(strings.Repeat("not a database\n", 200)), 0o600))
	_, _, err = remapstore.Load(ctx, junk)
	assert.ErrorIs(t, err, remapstore.ErrNotRemapFile)

	assert.Error(t, remapstore.Save(ctx, filepath.Join(dir, "nil.db"), nil, provenance.Attrs{}))
}
