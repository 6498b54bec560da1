// SPDX-License-Identifier: MIT

package domain_test

import (
	"testing"

	"github.com/katalvlaran/sphgrid/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDefineCoversGrid checks, over a sweep of layouts and halos, that the
// compute windows tile [0,nx)×[0,ny) exactly and data ⊇ compute.
func TestDefineCoversGrid(t *testing.T) {
	for _, c := range []struct {
		nx, ny, px, py, xh, yh int
	}{
		{10, 6, 3, 2, 1, 1},
		{12, 12, 4, 3, 2, 1},
		{7, 5, 1, 1, 0, 0},
		{48, 24, 6, 4, 3, 2},
	} {
		d, err := domain.Define(c.nx, c.ny, domain.Layout{PX: c.px, PY: c.py}, c.xh, c.yh)
		require.NoError(t, err)
		require.Equal(t, c.px*c.py, d.NumRanks())

		owner := make([]int, c.nx*c.ny)
		for k := range owner {
			owner[k] = -1
		}
		for _, rd := range d.Ranks() {
			require.Equal(t, rd.J*c.px+rd.I, rd.Rank, "rank numbering r = j*px + i")
			require.True(t, rd.Data.ContainsWindow(rd.Compute), "data window contains compute window")
			require.Equal(t, rd.Compute.Expand(c.xh, c.yh), rd.Data)
			for j := rd.Compute.JS; j <= rd.Compute.JE; j++ {
				for i := rd.Compute.IS; i <= rd.Compute.IE; i++ {
					require.Equal(t, -1, owner[j*c.nx+i], "cell (%d,%d) owned twice", i, j)
					owner[j*c.nx+i] = rd.Rank
				}
			}
		}
		for k, r := range owner {
			require.NotEqual(t, -1, r, "cell %d not owned", k)
			require.Equal(t, r, d.Owner(k%c.nx, k/c.nx), "Owner agrees with windows")
		}
	}
}

// TestDefineInvalid covers bad layouts and halos.
func TestDefineInvalid(t *testing.T) {
	_, err := domain.Define(10, 10, domain.Layout{PX: 0, PY: 2}, 1, 1)
	require.ErrorIs(t, err, domain.ErrInvalidDecomposition)

	_, err = domain.Define(10, 10, domain.Layout{PX: 11, PY: 1}, 0, 0)
	require.ErrorIs(t, err, domain.ErrInvalidDecomposition)

	_, err = domain.Define(10, 10, domain.Layout{PX: 2, PY: 2}, -1, 0)
	require.ErrorIs(t, err, domain.ErrInvalidDecomposition)

	_, err = domain.Define(10, 10, domain.Layout{PX: 5, PY: 1}, 3, 0) // extents of 2
	require.ErrorIs(t, err, domain.ErrInvalidDecomposition)

	d, err := domain.Define(10, 10, domain.Layout{PX: 2, PY: 2}, 1, 1)
	require.NoError(t, err)
	_, err = d.Rank(4)
	require.ErrorIs(t, err, domain.ErrRankOutOfRange)
}

// TestWrapClosed checks that a plain domain has no seams.
func TestWrapClosed(t *testing.T) {
	d, err := domain.Define(8, 4, domain.Layout{PX: 2, PY: 2}, 1, 1)
	require.NoError(t, err)
	_, _, ok := d.Wrap(-1, 0)
	assert.False(t, ok)
	_, _, ok = d.Wrap(0, 4)
	assert.False(t, ok)
	assert.Equal(t, -1, d.Owner(8, 0))

	nb, err := d.Neighbors(0)
	require.NoError(t, err)
	assert.Equal(t, domain.Neighbors{West: -1, East: 1, South: -1, North: 2}, nb)
}

// TestWrapCyclic checks periodic x.
func TestWrapCyclic(t *testing.T) {
	d, err := domain.Define(8, 4, domain.Layout{PX: 2, PY: 2}, 1, 1, domain.WithCyclicX())
	require.NoError(t, err)
	require.True(t, d.CyclicX())

	gi, gj, ok := d.Wrap(-1, 2)
	require.True(t, ok)
	assert.Equal(t, [2]int{7, 2}, [2]int{gi, gj})
	gi, _, ok = d.Wrap(8, 0)
	require.True(t, ok)
	assert.Equal(t, 0, gi)
	_, _, ok = d.Wrap(0, -1)
	assert.False(t, ok, "south stays closed")

	nb, err := d.Neighbors(0)
	require.NoError(t, err)
	assert.Equal(t, domain.Neighbors{West: 1, East: 1, South: -1, North: 2}, nb)
}

// TestWrapTripolar checks the northern fold (i, ny+k) ↦ (nx-1-i, ny-1-k).
func TestWrapTripolar(t *testing.T) {
	d, err := domain.Define(8, 4, domain.Layout{PX: 2, PY: 2}, 1, 1, domain.WithTripolarFold())
	require.NoError(t, err)
	require.True(t, d.Tripolar())
	require.True(t, d.CyclicX(), "tripolar implies periodic x")

	gi, gj, ok := d.Wrap(1, 4)
	require.True(t, ok)
	assert.Equal(t, [2]int{6, 3}, [2]int{gi, gj})
	gi, gj, ok = d.Wrap(0, 5)
	require.True(t, ok)
	assert.Equal(t, [2]int{7, 2}, [2]int{gi, gj})

	nb, err := d.Neighbors(2) // i=0, j=1: top-left rank
	require.NoError(t, err)
	assert.Equal(t, 3, nb.North, "fold lands on the top-right rank")
}

// TestDefineLayout checks the automatic layout choice.
func TestDefineLayout(t *testing.T) {
	l, err := domain.DefineLayout(360, 180, 8)
	require.NoError(t, err)
	assert.Equal(t, domain.Layout{PX: 4, PY: 2}, l)

	l, err = domain.DefineLayout(100, 100, 6)
	require.NoError(t, err)
	assert.Equal(t, domain.Layout{PX: 2, PY: 3}, l)

	l, err = domain.DefineLayout(10, 10, 7)
	require.NoError(t, err)
	assert.Equal(t, 7, l.NumRanks())

	_, err = domain.DefineLayout(2, 2, 9)
	require.ErrorIs(t, err, domain.ErrInvalidDecomposition)

	d, err := domain.Define(360, 180, domain.Layout{}, 1, 1, domain.WithPEs(8))
	require.NoError(t, err)
	assert.Equal(t, domain.Layout{PX: 4, PY: 2}, d.Layout)

	require.Panics(t, func() { domain.WithPEs(0) })
}
