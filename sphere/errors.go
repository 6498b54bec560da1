// SPDX-License-Identifier: MIT

package sphere

import "errors"

var (
	// ErrDegenerateGeometry is returned for cells that cannot take part in
	// area or overlap computations: non-finite coordinates, |lat| > π/2,
	// fewer than three distinct vertices, zero area, or outlines that are not
	// convex (self-intersecting outlines fall in this class).
	ErrDegenerateGeometry = errors.New("sphere: degenerate geometry")

	// ErrUnknownArc is returned by ParseArc for unrecognised edge types.
	ErrUnknownArc = errors.New("sphere: unknown arc type")
)
