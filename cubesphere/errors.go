// SPDX-License-Identifier: MIT

package cubesphere

import "errors"

var (
	// ErrInvalidTile indicates a tile id outside 1..6.
	ErrInvalidTile = errors.New("cubesphere: tile id must be in 1..6")

	// ErrInvalidWidth indicates a negative halo width or one wider than a tile.
	ErrInvalidWidth = errors.New("cubesphere: invalid halo width")

	// ErrShapeMismatch indicates a wrong tile count, nil or inconsistently
	// sized tile fields, or a missing pair for an asymmetric stagger.
	ErrShapeMismatch = errors.New("cubesphere: shape mismatch")
)
