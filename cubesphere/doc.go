// SPDX-License-Identifier: MIT

// Package cubesphere fills halo rings of fields defined on the six tiles of
// a cubed sphere.
//
// What:
//
//   - A static HaloDescriptor table maps every (tile, edge) to the
//     neighbouring tile, the neighbour's edge, and the index transform:
//     Reverse (the along-edge index runs backwards) and Swap (the
//     neighbour's edge lies on the other axis, so rows become columns).
//   - FillHalo fills one tile, Exchange fills all six. Any halo width up
//     to the tile size is supported.
//   - Odd tiles (1, 3, 5) and even tiles (2, 4, 6) have mirrored
//     neighbour roles: an odd tile takes its west and north halos across
//     swapped edges, an even tile its east and south halos.
//
// Staggering:
//
//   - WithStagger(ioff, joff) describes fields located on cell corners or
//     edges: the interior is (n+ioff)×(n+joff). Shared edge points are not
//     duplicated into the halo.
//   - Across a swapped edge rows and columns trade places, so a field with
//     ioff != joff needs its companion (dx with dy, u with v) supplied via
//     WithPair.
//
// Corners:
//
//   - Three tiles meet at every cube vertex, so the corner blocks of a halo
//     have no natural source. CornerAverage fills each corner point with
//     the mean of its two diagonal reflections in the adjoining halo
//     strips; CornerMissing writes MissingValue.
//
// Synchronisation:
//
//   - Exchange snapshots every interior first and only then fills halos.
//     The two phases are separated by errgroup.Wait, a full barrier.
package cubesphere
