// SPDX-License-Identifier: MIT

// Package remapstore persists exchange grids to a single SQLite file so that
// a model restart can reuse them instead of rebuilding.
//
// Layout:
//
//	meta   key/value attributes (provenance, order, arc)
//	tiles  one row per source or target tile (role, position, sizes, offsets)
//	cells  per-cell area, centroid and mask
//	xgrid  one row per overlap record
//
// Save always writes a fresh file; Load validates every record against the
// stored tiles via xgrid.Assemble.
package remapstore
