// SPDX-License-Identifier: MIT

// Package grid builds curvilinear grid tiles on the sphere.
//
// What:
//
//   - Tile: one logically rectangular patch: corner lon/lat arrays
//     (radians, row-major (NY+1)×(NX+1)), cell centres, cell areas (m²),
//     optional corner Cartesian coordinates, optional validity mask and an
//     optional refined point set with tangent vectors.
//   - Regular lon/lat tiles are built in two explicit phases:
//     Configure(spec) validates and sizes, Plan.Finalize() allocates and
//     fills. Nothing is computed lazily on read.
//   - BuildCubeSphere builds the six gnomonic faces of a cubed sphere,
//     oriented to match the cubesphere package's contact table.
//
// Latitude placement (regular tiles):
//
//   - CenterY: centres at band midpoints, corners on band edges.
//   - otherwise: centres on latbegin + j·dlat with dlat = range/(nlat-1),
//     corners half a band away (clamped to ±90°).
//
// Refinement:
//
//   - Modes that need sub-cell accuracy (ModeBilinear) also produce a
//     refined point set at RefineSteps² the native resolution, with unit
//     Cartesian positions and the local (vlon, vlat) tangent basis.
//
// Errors:
//
//   - ErrInvalidSpec, ErrShapeMismatch, ErrUnsupportedGridType.
package grid
