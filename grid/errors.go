// SPDX-License-Identifier: MIT

package grid

import "errors"

var (
	// ErrInvalidSpec indicates non-positive sizes, inverted or out-of-range
	// coordinate ranges, or a negative refinement.
	ErrInvalidSpec = errors.New("grid: invalid grid specification")

	// ErrShapeMismatch indicates corner, centre, area or mask arrays whose
	// lengths do not match the tile's nx, ny.
	ErrShapeMismatch = errors.New("grid: shape mismatch")

	// ErrUnsupportedGridType indicates an unrecognised grid type or
	// construction mode, or a recognised type this package cannot build.
	ErrUnsupportedGridType = errors.New("grid: unsupported grid type")
)
