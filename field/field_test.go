// SPDX-License-Identifier: MIT

package field_test

import (
	"testing"

	"github.com/katalvlaran/sphgrid/field"
	"github.com/stretchr/testify/require"
)

// TestNewInvalidDimensions ensures New rejects empty interiors and negative halos.
func TestNewInvalidDimensions(t *testing.T) {
	_, err := field.New(0, 3, 0)                        // zero width
	require.ErrorIs(t, err, field.ErrInvalidDimensions) // expect ErrInvalidDimensions

	_, err = field.New(3, 3, -1)                        // negative halo
	require.ErrorIs(t, err, field.ErrInvalidDimensions) // expect ErrInvalidDimensions
}

// TestHaloIndexing verifies halo points are addressable with negative and ≥n indices.
func TestHaloIndexing(t *testing.T) {
	f, err := field.New(3, 2, 2) // 3×2 interior, halo 2
	require.NoError(t, err)

	require.NoError(t, f.Set(-2, -2, 1.5)) // south-west halo corner
	require.NoError(t, f.Set(4, 3, 2.5))   // north-east halo corner
	v, err := f.At(-2, -2)
	require.NoError(t, err)
	require.Equal(t, 1.5, v)
	v, err = f.At(4, 3)
	require.NoError(t, err)
	require.Equal(t, 2.5, v)

	_, err = f.At(-3, 0)                         // beyond the halo
	require.ErrorIs(t, err, field.ErrOutOfRange) // expect ErrOutOfRange
	err = f.Set(0, 4, 1)                         // beyond the halo
	require.ErrorIs(t, err, field.ErrOutOfRange) // expect ErrOutOfRange
}

// TestFromSliceAndInterior checks row-major ingestion and extraction.
func TestFromSliceAndInterior(t *testing.T) {
	vals := []float64{1, 2, 3, 4, 5, 6} // two rows of three
	f, err := field.FromSlice(3, 2, vals)
	require.NoError(t, err)

	v, err := f.At(2, 1) // last column, second row
	require.NoError(t, err)
	require.Equal(t, 6.0, v)
	require.Equal(t, vals, f.Interior())

	_, err = field.FromSlice(3, 2, vals[:5])
	require.ErrorIs(t, err, field.ErrShapeMismatch)
}

// TestWithHaloCopiesInterior ensures WithHalo keeps interior values and zeroes the ring.
func TestWithHaloCopiesInterior(t *testing.T) {
	f, err := field.FromSlice(2, 2, []float64{1, 2, 3, 4})
	require.NoError(t, err)

	g, err := f.WithHalo(1)
	require.NoError(t, err)
	require.Equal(t, 1, g.Halo())
	require.Equal(t, f.Interior(), g.Interior())

	v, err := g.At(-1, -1)
	require.NoError(t, err)
	require.Equal(t, 0.0, v) // new halo starts at zero
}

// TestCloneIndependence ensures Clone returns a deep copy.
func TestCloneIndependence(t *testing.T) {
	f, err := field.Constant(2, 2, 7)
	require.NoError(t, err)
	c := f.Clone()
	require.NoError(t, c.Set(0, 0, 1))

	v, err := f.At(0, 0)
	require.NoError(t, err)
	require.Equal(t, 7.0, v) // original unchanged
}

// TestStringOutput checks String prints the top row first.
func TestStringOutput(t *testing.T) {
	f, err := field.FromSlice(2, 2, []float64{1, 2, 3, 4})
	require.NoError(t, err)
	require.Equal(t, "[3, 4]\n[1, 2]\n", f.String())
	require.True(t, f.SameShape(f.Clone()))
}
