// SPDX-License-Identifier: MIT

package remapstore

import "errors"

var (
	// ErrNotRemapFile is returned when a file lacks the remap metadata.
	ErrNotRemapFile = errors.New("remapstore: not a remap file")

	// ErrCorrupt is returned when stored tables disagree with each other.
	ErrCorrupt = errors.New("remapstore: inconsistent contents")
)
