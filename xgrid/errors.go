// SPDX-License-Identifier: MIT

package xgrid

import (
	"errors"

	"github.com/katalvlaran/sphgrid/sphere"
)

var (
	// ErrInvalidOrder indicates an interpolation order other than 1 or 2.
	ErrInvalidOrder = errors.New("xgrid: order must be 1 or 2")

	// ErrShapeMismatch indicates a mask, field or tile list whose length
	// does not match the grid it belongs to, or a record outside its tiles.
	ErrShapeMismatch = errors.New("xgrid: shape mismatch")

	// ErrDegenerateGeometry is sphere.ErrDegenerateGeometry: zero-area,
	// self-intersecting or non-convex cells and bad coordinates.
	ErrDegenerateGeometry = sphere.ErrDegenerateGeometry
)
