// SPDX-License-Identifier: MIT

package domain_test

import (
	"slices"
	"testing"

	"github.com/katalvlaran/sphgrid/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestComputeExtentTenByThree checks the ceiling-division example 10/3 → {4,3,3}.
func TestComputeExtentTenByThree(t *testing.T) {
	ax, err := domain.ComputeExtent(10, 3)
	require.NoError(t, err)
	require.Equal(t, []int{4, 3, 3}, ax.Sizes())
	require.Equal(t, domain.Axis{{0, 3}, {4, 6}, {7, 9}}, ax)
}

// TestComputeExtentMirrored checks mirror symmetry when parities match, and for
// odd ndivs over an even npts with ndivs < npts/2.
func TestComputeExtentMirrored(t *testing.T) {
	cases := []struct {
		npts, ndivs int
		sizes       []int
	}{
		{9, 3, []int{3, 3, 3}},
		{11, 3, []int{4, 3, 4}},
		{10, 4, []int{3, 2, 2, 3}},
		{6, 4, []int{2, 1, 1, 2}},
		{8, 6, []int{2, 1, 1, 1, 1, 2}},
		{5, 5, []int{1, 1, 1, 1, 1}},
		{20, 3, []int{7, 6, 7}},
		{14, 3, []int{5, 4, 5}},
		{22, 5, []int{5, 4, 4, 4, 5}},
	}
	for _, c := range cases {
		ax, err := domain.ComputeExtent(c.npts, c.ndivs)
		require.NoError(t, err)
		assert.Equal(t, c.sizes, ax.Sizes(), "npts=%d ndivs=%d", c.npts, c.ndivs)
	}
}

// TestComputeExtentFallback checks that an unbalanced mirrored split (7/3 → 3,1,3)
// is replaced by the sequential one.
func TestComputeExtentFallback(t *testing.T) {
	ax, err := domain.ComputeExtent(7, 3)
	require.NoError(t, err)
	require.Equal(t, []int{3, 2, 2}, ax.Sizes())

	// odd over even, but ndivs >= npts/2: no mirrored attempt
	ax, err = domain.ComputeExtent(6, 3)
	require.NoError(t, err)
	require.Equal(t, []int{2, 2, 2}, ax.Sizes())
}

// TestComputeExtentInvalid covers ndivs <= 0 and ndivs > npts.
func TestComputeExtentInvalid(t *testing.T) {
	_, err := domain.ComputeExtent(10, 0)
	require.ErrorIs(t, err, domain.ErrInvalidDecomposition)
	_, err = domain.ComputeExtent(10, -2)
	require.ErrorIs(t, err, domain.ErrInvalidDecomposition)
	_, err = domain.ComputeExtent(3, 4)
	require.ErrorIs(t, err, domain.ErrInvalidDecomposition)
}

// TestComputeExtentPartitionProperty sweeps 1 <= ndivs <= npts <= 64 and checks
// the partition invariants: contiguous, sorted, covering, sizes within one.
func TestComputeExtentPartitionProperty(t *testing.T) {
	for npts := 1; npts <= 64; npts++ {
		for ndivs := 1; ndivs <= npts; ndivs++ {
			ax, err := domain.ComputeExtent(npts, ndivs)
			require.NoError(t, err)
			require.Len(t, ax, ndivs)

			next := 0
			for _, e := range ax {
				require.Equal(t, next, e.Begin, "npts=%d ndivs=%d: contiguous", npts, ndivs)
				require.GreaterOrEqual(t, e.End, e.Begin, "npts=%d ndivs=%d: non-empty", npts, ndivs)
				next = e.End + 1
			}
			require.Equal(t, npts, next, "npts=%d ndivs=%d: covers the range", npts, ndivs)

			sizes := ax.Sizes()
			require.LessOrEqual(t, slices.Max(sizes)-slices.Min(sizes), 1, "npts=%d ndivs=%d: balanced", npts, ndivs)
		}
	}
}

// TestAxisFind checks index-to-division lookup.
func TestAxisFind(t *testing.T) {
	ax, err := domain.ComputeExtent(10, 3)
	require.NoError(t, err)
	assert.Equal(t, 0, ax.Find(0))
	assert.Equal(t, 0, ax.Find(3))
	assert.Equal(t, 1, ax.Find(4))
	assert.Equal(t, 2, ax.Find(9))
	assert.Equal(t, -1, ax.Find(10))
	assert.Equal(t, -1, ax.Find(-1))
}
