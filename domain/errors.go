// SPDX-License-Identifier: MIT

package domain

import "errors"

var (
	// ErrInvalidDecomposition indicates an impossible split: ndivs <= 0,
	// ndivs > npts, a non-positive layout, a negative halo, or a halo wider
	// than the narrowest compute extent.
	ErrInvalidDecomposition = errors.New("domain: invalid decomposition")

	// ErrRankOutOfRange indicates a rank outside [0, px*py).
	ErrRankOutOfRange = errors.New("domain: rank out of range")
)
