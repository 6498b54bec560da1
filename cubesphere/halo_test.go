// SPDX-License-Identifier: MIT

package cubesphere_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/katalvlaran/sphgrid/cubesphere"
	"github.com/katalvlaran/sphgrid/field"
	"github.com/katalvlaran/sphgrid/grid"
	"github.com/katalvlaran/sphgrid/sphere"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// tiles builds six nx×ny fields with value fn(tile, i, j), tile 1-based.
func tiles(t *testing.T, nx, ny int, fn func(tile, i, j int) float64) []*field.Field {
	t.Helper()
	out := make([]*field.Field, cubesphere.NumTiles)
	for k := range out {
		v := make([]float64, nx*ny)
		for j := 0; j < ny; j++ {
			for i := 0; i < nx; i++ {
				v[j*nx+i] = fn(k+1, i, j)
			}
		}
		f, err := field.FromSlice(nx, ny, v)
		require.NoError(t, err)
		out[k] = f
	}

	return out
}

func at(t *testing.T, f *field.Field, i, j int) float64 {
	t.Helper()
	v, err := f.At(i, j)
	require.NoError(t, err)

	return v
}

// TestDescriptorSymmetry checks that every contact is seen identically from
// both sides.
func TestDescriptorSymmetry(t *testing.T) {
	for tile := cubesphere.TileID(1); tile <= cubesphere.NumTiles; tile++ {
		for e := cubesphere.West; e <= cubesphere.North; e++ {
			d, err := cubesphere.Descriptor(tile, e)
			require.NoError(t, err)
			require.NotEqual(t, tile, d.Neighbor)
			back, err := cubesphere.Descriptor(d.Neighbor, d.NeighborEdge)
			require.NoError(t, err)
			assert.Equal(t, tile, back.Neighbor, "%d.%v", tile, e)
			assert.Equal(t, e, back.NeighborEdge, "%d.%v", tile, e)
			assert.Equal(t, d.Reverse, back.Reverse, "%d.%v", tile, e)
			assert.Equal(t, d.Swap, back.Swap, "%d.%v", tile, e)
			// swapped contacts are always reversed on a cube
			if d.Swap {
				assert.True(t, d.Reverse, "%d.%v", tile, e)
			}
		}
	}

	// odd tiles swap on west/north, even tiles on east/south
	for tile := cubesphere.TileID(1); tile <= cubesphere.NumTiles; tile++ {
		w, _ := cubesphere.Descriptor(tile, cubesphere.West)
		s, _ := cubesphere.Descriptor(tile, cubesphere.South)
		assert.Equal(t, tile%2 == 1, w.Swap, "tile %d west", tile)
		assert.Equal(t, tile%2 == 0, s.Swap, "tile %d south", tile)
	}

	_, err := cubesphere.Descriptor(7, cubesphere.West)
	assert.ErrorIs(t, err, cubesphere.ErrInvalidTile)
}

// TestConstantField checks that a field constant across all tiles stays
// constant in every halo point for several widths and staggers.
func TestConstantField(t *testing.T) {
	const n, c = 4, 2.5
	for _, off := range []int{0, 1} {
		in := tiles(t, n+off, n+off, func(int, int, int) float64 { return c })
		for width := 0; width <= 3; width++ {
			out, err := cubesphere.Exchange(width, in, cubesphere.WithStagger(off, off))
			require.NoError(t, err)
			require.Len(t, out, cubesphere.NumTiles)
			for k, f := range out {
				require.Equal(t, width, f.Halo())
				for j := -width; j < n+off+width; j++ {
					for i := -width; i < n+off+width; i++ {
						assert.Equal(t, c, at(t, f, i, j), "tile %d (%d,%d) width %d", k+1, i, j, width)
					}
				}
			}
		}
	}
}

// legacyEdges evaluates the width-1 halo formulas of the parity-based
// implementation for a symmetric stagger off (field is its own pair).
func legacyEdges(tile, n, off int, all [][]float64) (west, east, south, north []float64) {
	nx, ny := n, n
	nxp, nyp := n+off, n+off
	ioff, joff := off, off
	west, east = make([]float64, nyp), make([]float64, nyp)
	south, north = make([]float64, nxp), make([]float64, nxp)
	if tile%2 == 1 {
		lw, le, ls, ln := (tile+5)%6, (tile+8)%6, (tile+4)%6, (tile+7)%6
		for j := 1; j <= nyp; j++ {
			west[j-1] = all[lw][(j-1)*nxp+nx-1]
			east[j-1] = all[le][ioff*nxp+nyp-j]
		}
		for i := 1; i <= nxp; i++ {
			south[i-1] = all[ls][(nxp-i)*nyp+(nx-1)]
			north[i-1] = all[ln][joff*nxp+i-1]
		}
	} else {
		lw, le, ls, ln := (tile+4)%6, (tile+7)%6, (tile+5)%6, (tile+8)%6
		for j := 1; j <= nyp; j++ {
			west[j-1] = all[lw][(ny-1)*nxp+nyp-j]
			east[j-1] = all[le][(j-1)*nxp+ioff]
		}
		for i := 1; i <= nxp; i++ {
			south[i-1] = all[ls][(ny-1)*nxp+i-1]
			north[i-1] = all[ln][(nxp-i)*nyp+joff]
		}
	}

	return west, east, south, north
}

// TestLegacyWidthOne reproduces the width-1 parity formulas on a field
// whose every value encodes its tile and position.
func TestLegacyWidthOne(t *testing.T) {
	const n = 4
	for _, off := range []int{0, 1} {
		in := tiles(t, n+off, n+off, func(tile, i, j int) float64 {
			return float64(1000*tile + 100*j + i)
		})
		all := make([][]float64, cubesphere.NumTiles)
		for k, f := range in {
			all[k] = f.Interior()
		}
		for tile := 1; tile <= cubesphere.NumTiles; tile++ {
			f, err := cubesphere.FillHalo(cubesphere.TileID(tile), 1, in, cubesphere.WithStagger(off, off))
			require.NoError(t, err)
			west, east, south, north := legacyEdges(tile-1, n, off, all)
			m := n + off
			for p := 0; p < m; p++ {
				assert.Equal(t, west[p], at(t, f, -1, p), "tile %d west p=%d off=%d", tile, p, off)
				assert.Equal(t, east[p], at(t, f, m, p), "tile %d east p=%d off=%d", tile, p, off)
				assert.Equal(t, south[p], at(t, f, p, -1), "tile %d south p=%d off=%d", tile, p, off)
				assert.Equal(t, north[p], at(t, f, p, m), "tile %d north p=%d off=%d", tile, p, off)
			}
			// the interior is untouched
			assert.Equal(t, all[tile-1], f.Interior())
		}
	}
}

// TestGeometricContinuity exchanges the corner coordinates of a real cubed
// sphere and checks that every first halo point mirrors the first interior
// line across the shared edge.
func TestGeometricContinuity(t *testing.T) {
	const n = 6
	cube, err := grid.BuildCubeSphere(n)
	require.NoError(t, err)

	comp := func(get func(v sphere.Vec3) float64) []*field.Field {
		return tiles(t, n+1, n+1, func(tile, i, j int) float64 {
			c := cube[tile-1]
			return get(c.XYZ[c.CornerIndex(i, j)])
		})
	}
	var xyz [3][]*field.Field
	for k, get := range []func(v sphere.Vec3) float64{
		func(v sphere.Vec3) float64 { return v.X },
		func(v sphere.Vec3) float64 { return v.Y },
		func(v sphere.Vec3) float64 { return v.Z },
	} {
		xyz[k], err = cubesphere.Exchange(2, comp(get), cubesphere.WithStagger(1, 1))
		require.NoError(t, err)
	}
	point := func(tile, i, j int) sphere.Vec3 {
		return sphere.Vec3{
			X: at(t, xyz[0][tile], i, j),
			Y: at(t, xyz[1][tile], i, j),
			Z: at(t, xyz[2][tile], i, j),
		}
	}

	for tile := 0; tile < cubesphere.NumTiles; tile++ {
		for p := 0; p <= n; p++ {
			for _, c := range []struct {
				edge       string
				h, e0, in1 [2]int
			}{
				{"west", [2]int{-1, p}, [2]int{0, p}, [2]int{1, p}},
				{"east", [2]int{n + 1, p}, [2]int{n, p}, [2]int{n - 1, p}},
				{"south", [2]int{p, -1}, [2]int{p, 0}, [2]int{p, 1}},
				{"north", [2]int{p, n + 1}, [2]int{p, n}, [2]int{p, n - 1}},
			} {
				h := point(tile, c.h[0], c.h[1])
				e0 := point(tile, c.e0[0], c.e0[1])
				in1 := point(tile, c.in1[0], c.in1[1])
				out, back := h.Sub(e0), in1.Sub(e0)
				assert.InDelta(t, back.Norm(), out.Norm(), 1e-12, "tile %d %s p=%d", tile+1, c.edge, p)
				assert.Less(t, out.Dot(back), 0.0, "tile %d %s p=%d crosses the edge", tile+1, c.edge, p)
			}
		}
	}
}

// TestPairedStagger checks that swapped edges read the pair field.
func TestPairedStagger(t *testing.T) {
	const n, c1, c2 = 3, 1.0, 2.0
	u := tiles(t, n+1, n, func(int, int, int) float64 { return c1 })
	v := tiles(t, n, n+1, func(int, int, int) float64 { return c2 })

	_, err := cubesphere.FillHalo(1, 1, u, cubesphere.WithStagger(1, 0))
	require.ErrorIs(t, err, cubesphere.ErrShapeMismatch, "asymmetric stagger needs a pair")

	for tile := cubesphere.TileID(1); tile <= cubesphere.NumTiles; tile++ {
		f, err := cubesphere.FillHalo(tile, 1, u, cubesphere.WithStagger(1, 0), cubesphere.WithPair(v))
		require.NoError(t, err)
		want := func(e cubesphere.Edge) float64 {
			d, derr := cubesphere.Descriptor(tile, e)
			require.NoError(t, derr)
			if d.Swap {
				return c2
			}
			return c1
		}
		assert.Equal(t, want(cubesphere.West), at(t, f, -1, 1), "tile %d", tile)
		assert.Equal(t, want(cubesphere.East), at(t, f, n+1, 1), "tile %d", tile)
		assert.Equal(t, want(cubesphere.South), at(t, f, 1, -1), "tile %d", tile)
		assert.Equal(t, want(cubesphere.North), at(t, f, 1, n), "tile %d", tile)
		assert.Equal(t, 0.5*(c1+c2), at(t, f, -1, -1), "tile %d SW corner", tile)
	}
}

// TestCornerMissing checks the legacy corner fill.
func TestCornerMissing(t *testing.T) {
	in := tiles(t, 3, 3, func(int, int, int) float64 { return 7 })
	f, err := cubesphere.FillHalo(2, 2, in, cubesphere.WithCornerPolicy(cubesphere.CornerMissing))
	require.NoError(t, err)
	for _, ij := range [][2]int{{-1, -1}, {-2, -2}, {3, -1}, {4, 4}, {-2, 3}} {
		assert.Equal(t, cubesphere.MissingValue, at(t, f, ij[0], ij[1]), "%v", ij)
	}
	assert.Equal(t, 7.0, at(t, f, -2, 0))
}

// TestFillHaloErrors covers argument validation.
func TestFillHaloErrors(t *testing.T) {
	in := tiles(t, 3, 3, func(int, int, int) float64 { return 0 })

	_, err := cubesphere.FillHalo(0, 1, in)
	assert.ErrorIs(t, err, cubesphere.ErrInvalidTile)
	_, err = cubesphere.FillHalo(1, 4, in)
	assert.ErrorIs(t, err, cubesphere.ErrInvalidWidth)
	_, err = cubesphere.FillHalo(1, -1, in)
	assert.ErrorIs(t, err, cubesphere.ErrInvalidWidth)
	_, err = cubesphere.FillHalo(1, 1, in[:5])
	assert.ErrorIs(t, err, cubesphere.ErrShapeMismatch)

	odd, err := field.New(4, 3, 0)
	require.NoError(t, err)
	bad := append([]*field.Field(nil), in...)
	bad[3] = odd
	_, err = cubesphere.Exchange(1, bad)
	assert.ErrorIs(t, err, cubesphere.ErrShapeMismatch)

	assert.Panics(t, func() { cubesphere.WithStagger(2, 0) })
	assert.Panics(t, func() { cubesphere.WithCornerPolicy(cubesphere.CornerPolicy(9)) })
}

// TestContacts checks the mosaic contact list.
func TestContacts(t *testing.T) {
	cs := cubesphere.Contacts(4)
	require.Len(t, cs, 12)
	assert.Equal(t, "mosaic:tile1::mosaic:tile5", cs[0].Name)
	assert.Equal(t, "1:1,1:4::4:1,4:4", cs[0].Index)
	assert.Equal(t, "mosaic:tile1::mosaic:tile2", cs[1].Name)
	assert.Equal(t, "4:4,1:4::1:1,1:4", cs[1].Index)

	seen := make(map[[2]cubesphere.TileID]bool)
	for _, c := range cs {
		require.Less(t, c.Tile1, c.Tile2)
		key := [2]cubesphere.TileID{c.Tile1, c.Tile2}
		assert.False(t, seen[key], "contact %v listed twice", key)
		seen[key] = true
	}
}
