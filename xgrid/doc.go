// SPDX-License-Identifier: MIT

// Package xgrid builds exchange grids: the overlaps between the cells of a
// source grid and a target grid on the sphere, used as conservative remap
// weights.
//
// What:
//
//   - Create intersects every target cell with every source cell that can
//     reach it and records the overlap area (m²). CreateXGrid is the plain
//     record-list form; CreateMosaic covers every tile pair of two mosaics.
//   - Order 1 records are piecewise-constant weights.
//   - Order 2 records also carry the overlap centroid as an offset
//     (DLon, DLat) from the source cell centroid. Remap fits a
//     least-squares gradient per source cell and evaluates it there.
//
// How:
//
//   - Edge type: great-circle arcs when either grid has them, lon/lat-
//     aligned edges when both grids are regular lon/lat (WithArc overrides).
//   - Candidate search: an R-tree of source cell boxes, queried per target
//     cell at longitude offsets -2π, 0 and +2π so the seam needs no special
//     case. Cells containing a pole span every longitude.
//   - Exact clipping: sphere.Clip or sphere.ClipLonLat.
//   - Records below AreaRatio times the smaller cell area are dropped;
//     masked source cells are skipped entirely.
//   - Target rows are shared out to worker goroutines (errgroup), each with
//     a private result slice. The concatenation is sorted by
//     (TgtTile, TgtJ, TgtI, SrcTile, SrcJ, SrcI), so the output does not
//     depend on scheduling.
//
// Errors:
//
//   - ErrInvalidOrder, ErrShapeMismatch, ErrDegenerateGeometry. Any error
//     aborts the whole build; no partial result is returned.
package xgrid
