// SPDX-License-Identifier: MIT

// Package sphere is the native geometry kernel used by the grid builders and
// the exchange-grid engine: unit-sphere vectors, lon/lat conversions, tangent
// bases, convex cell polygons, polygon clipping and spherical areas.
//
// What:
//
//   - Vec3 arithmetic on the unit sphere and LonLatToXYZ / XYZToLonLat.
//   - UnitVectors(lon, lat): local zonal/meridional tangent basis.
//   - Polygon: convex cell whose edges are great-circle arcs.
//   - LonLatPolygon: convex cell whose edges are straight in (lon, lat), the
//     natural edge type of regular latitude-longitude grids.
//   - Clip / ClipLonLat: Sutherland–Hodgman clipping of a subject polygon by a
//     convex clip polygon.
//   - Box: lon/lat bounding boxes for candidate search (seam and pole aware).
//
// Units:
//
//   - Angles are radians. Areas are steradians (multiply by R² for m²).
//
// Errors:
//
//   - ErrDegenerateGeometry: non-finite or out-of-range coordinates, fewer
//     than three distinct vertices, zero area, non-convex or self-intersecting
//     outlines.
//
// Complexity:
//
//   - Validation, area, centroid and bounds: O(n) per polygon.
//   - Clip: O(n·m) for an n-gon clipped by an m-gon.
package sphere
