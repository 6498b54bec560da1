// SPDX-License-Identifier: MIT

package field

import "errors"

var (
	// ErrInvalidDimensions is returned when nx or ny is not positive or the
	// halo is negative.
	ErrInvalidDimensions = errors.New("field: dimensions must be > 0 and halo >= 0")

	// ErrOutOfRange indicates an (i, j) outside [-halo, n+halo).
	ErrOutOfRange = errors.New("field: index out of range")

	// ErrShapeMismatch indicates a value slice whose length is not nx*ny.
	ErrShapeMismatch = errors.New("field: shape mismatch")
)
