// SPDX-License-Identifier: MIT

// Package domain decomposes a global 2-D index space into per-rank compute
// and data (halo-expanded) windows.
//
// What:
//
//   - ComputeExtent splits npts points into ndivs contiguous extents whose
//     sizes differ by at most one. When npts and ndivs share parity (or
//     ndivs is odd, npts even and ndivs < npts/2) the split is mirrored:
//     division k and ndivs-1-k get equal sizes, unless that would unbalance
//     the sizes.
//   - Define composes two axes into a Domain2D over a px×py layout; rank
//     r = j*px + i owns compute window (X[i], Y[j]).
//   - DefineLayout chooses a px×py layout for a processor count.
//   - WithCyclicX / WithTripolarFold give the seam semantics used by Wrap,
//     Owner and Neighbors.
//
// Indices:
//
//   - All indices are 0-based and global; extents and windows are inclusive.
//
// Errors:
//
//   - ErrInvalidDecomposition: ndivs <= 0, ndivs > npts, bad layout, negative
//     halo or a halo wider than the narrowest extent.
//   - ErrRankOutOfRange: rank outside [0, px*py).
//
// Complexity:
//
//   - ComputeExtent: O(ndivs). Define: O(px·py). Owner: O(log px + log py).
package domain
