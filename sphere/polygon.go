// SPDX-License-Identifier: MIT

package sphere

import (
	"fmt"
	"math"
)

// Great-circle cells
//
// Description:
//
//	A Polygon is a convex cell on the unit sphere whose edges are the short
//	great-circle arcs between consecutive vertices. Cubed-sphere cells and
//	any cell given as 3-D corner vectors use this edge type.
//
// Construction:
//  1. Convert (lon, lat) corners to unit vectors, or take them as given.
//  2. Merge vertices closer than vertexTol (collapsed pole corners).
//  3. Orient counter-clockwise seen from outside: a negative fan area
//     reverses the vertex order.
//  4. Reject fewer than three vertices, (numerically) zero area, reflex
//     turns and outlines that wind more than once.
//
// Area:
//
//	Fan triangulation from v0; each triangle contributes its signed excess
//	E = 2·atan2(a·(b×c), 1 + a·b + b·c + c·a). The atan2 form stays accurate
//	for the tiny triangles of fine grids, where l'Huilier loses digits.
//
// Clipping:
//
//	Sutherland–Hodgman against the clip polygon's edge planes. An edge
//	plane through the origin is a great circle, so the half-space test is a
//	single dot product and the cut point is the normalised chord point.
//
// Complexity:
//   - Construction, area, centroid, bounds: O(n).
//   - Clip of an n-gon by an m-gon: O(n·m).

// Numeric tolerances of the great-circle kernel (unit-sphere chord units).
const (
	// vertexTol merges vertices closer than this chord length.
	vertexTol = 1e-12

	// insideTol is the half-space slack of the clipping predicate.
	insideTol = 1e-15

	// turnTol is the largest negative sine of a turn angle still accepted
	// as convex (collinear vertices produce tiny signed noise).
	turnTol = 1e-9

	// minSteradians rejects cells with (numerically) zero area.
	minSteradians = 1e-24

	// latTol allows |lat| to exceed π/2 by round-off only.
	latTol = 1e-10
)

// Polygon is a spherical polygon on the unit sphere whose consecutive
// vertices are joined by the shorter great-circle arc. Polygons produced by
// NewPolygon are convex and counter-clockwise seen from outside the sphere.
type Polygon []Vec3

// NewPolygon builds a validated cell polygon from corner coordinates in
// radians.
// Implementation:
//   - Stage 1: reject mismatched lengths, non-finite values and |lat| > π/2.
//   - Stage 2: map corners to the unit sphere and merge coincident vertices
//     (a pole corner repeated along a collapsed edge).
//   - Stage 3: orient counter-clockwise using the signed area.
//   - Stage 4: reject reflex turns and outlines that wind more than once.
//
// Errors:
//   - ErrDegenerateGeometry for every rejected input.
//
// Complexity:
//   - Time O(n), Space O(n).
func NewPolygon(lons, lats []float64) (Polygon, error) {
	if len(lons) != len(lats) {
		return nil, fmt.Errorf("NewPolygon: %d lons vs %d lats: %w", len(lons), len(lats), ErrDegenerateGeometry)
	}
	p := make(Polygon, 0, len(lons))
	for k := range lons {
		if !isFinite(lons[k]) || !isFinite(lats[k]) {
			return nil, fmt.Errorf("NewPolygon: vertex %d not finite: %w", k, ErrDegenerateGeometry)
		}
		if math.Abs(lats[k]) > math.Pi/2+latTol {
			return nil, fmt.Errorf("NewPolygon: vertex %d latitude %g out of range: %w", k, lats[k], ErrDegenerateGeometry)
		}
		p = append(p, LonLatToXYZ(lons[k], clamp(lats[k], -math.Pi/2, math.Pi/2)))
	}

	return PolygonFromXYZ(p)
}

// PolygonFromXYZ validates and orients a polygon given directly on the unit
// sphere. The input slice is not modified.
func PolygonFromXYZ(vs []Vec3) (Polygon, error) {
	for k, v := range vs {
		if !v.IsFinite() {
			return nil, fmt.Errorf("PolygonFromXYZ: vertex %d not finite: %w", k, ErrDegenerateGeometry)
		}
	}
	p := dedupe(append(Polygon(nil), vs...))
	if len(p) < 3 {
		return nil, fmt.Errorf("PolygonFromXYZ: %d distinct vertices: %w", len(p), ErrDegenerateGeometry)
	}
	area := p.SignedArea()
	if !isFinite(area) || math.Abs(area) < minSteradians {
		return nil, fmt.Errorf("PolygonFromXYZ: area %g: %w", area, ErrDegenerateGeometry)
	}
	if area < 0 {
		p.reverse()
	}
	if err := p.checkConvex(); err != nil {
		return nil, err
	}

	return p, nil
}

// SignedArea returns the area in steradians, positive for counter-clockwise
// outlines. It sums the signed excess of the fan triangles (v0, vi, vi+1):
//
//	E = 2·atan2(a·(b×c), 1 + a·b + b·c + c·a)
func (p Polygon) SignedArea() float64 {
	if len(p) < 3 {
		return 0
	}
	var s float64
	a := p[0]
	for i := 1; i+1 < len(p); i++ {
		s += triangleExcess(a, p[i], p[i+1])
	}

	return s
}

// Area returns |SignedArea| in steradians.
func (p Polygon) Area() float64 { return math.Abs(p.SignedArea()) }

// Centroid returns the unit direction of the area centroid, approximated by
// the excess-weighted sum of the fan triangle centroids. Exact in the limit of
// small cells.
func (p Polygon) Centroid() Vec3 {
	if len(p) == 0 {
		return Vec3{}
	}
	var m Vec3
	a := p[0]
	for i := 1; i+1 < len(p); i++ {
		b, c := p[i], p[i+1]
		w := triangleExcess(a, b, c)
		m = m.Add(a.Add(b).Add(c).Normalize().Scale(w))
	}
	if m.Norm() == 0 {
		for _, v := range p {
			m = m.Add(v)
		}
	}

	return m.Normalize()
}

// Contains reports whether the unit vector v lies inside the convex polygon
// (boundary included).
func (p Polygon) Contains(v Vec3) bool {
	n := len(p)
	for k := 0; k < n; k++ {
		nrm := p[k].Cross(p[(k+1)%n]).Normalize()
		if nrm.Dot(v) < -insideTol {
			return false
		}
	}

	return n >= 3
}

// Clip returns subject ∩ clip using Sutherland–Hodgman against the edge
// planes of the convex, counter-clockwise clip polygon. The result is nil
// when the intersection has fewer than three distinct vertices.
// Implementation:
//   - Stage 1: for each clip edge (a, b) keep the half-space (a×b)·x ≥ 0.
//   - Stage 2: crossing subject edges are cut where the chord meets the edge
//     plane; normalising that chord point lands on the subject's arc.
//   - Stage 3: merge coincident vertices of the result.
//
// Complexity:
//   - Time O(n·m), Space O(n+m).
func Clip(subject, clip Polygon) Polygon {
	out := append(Polygon(nil), subject...)
	m := len(clip)
	for k := 0; k < m && len(out) >= 3; k++ {
		nrm := clip[k].Cross(clip[(k+1)%m]).Normalize()
		in := out
		out = make(Polygon, 0, len(in)+2)
		for i := range in {
			p, q := in[i], in[(i+1)%len(in)]
			dp, dq := nrm.Dot(p), nrm.Dot(q)
			pin, qin := dp >= -insideTol, dq >= -insideTol
			if pin {
				out = append(out, p)
			}
			if pin != qin {
				t := dp / (dp - dq)
				out = append(out, p.Add(q.Sub(p).Scale(t)).Normalize())
			}
		}
	}
	out = dedupe(out)
	if len(out) < 3 {
		return nil
	}

	return out
}

// triangleExcess is the signed spherical excess of triangle (a, b, c).
func triangleExcess(a, b, c Vec3) float64 {
	num := a.Dot(b.Cross(c))
	den := 1 + a.Dot(b) + b.Dot(c) + c.Dot(a)

	return 2 * math.Atan2(num, den)
}

// checkConvex rejects reflex turns and multiply-wound outlines of a
// counter-clockwise polygon.
func (p Polygon) checkConvex() error {
	n := len(p)
	var turning float64
	for k := 0; k < n; k++ {
		a, b, c := p[(k+n-1)%n], p[k], p[(k+1)%n]
		u, w := b.Sub(a), c.Sub(b)
		lu, lw := u.Norm(), w.Norm()
		det := a.Cross(b).Dot(c)
		sinTurn := det / (lu * lw)
		if sinTurn < -turnTol {
			return fmt.Errorf("Polygon: reflex turn at vertex %d: %w", k, ErrDegenerateGeometry)
		}
		turning += math.Atan2(math.Max(sinTurn, 0), u.Dot(w)/(lu*lw))
	}
	if turning > 3*math.Pi {
		return fmt.Errorf("Polygon: outline winds %.2f turns: %w", turning/TwoPi, ErrDegenerateGeometry)
	}

	return nil
}

// reverse flips the vertex order in place.
func (p Polygon) reverse() {
	for i, j := 0, len(p)-1; i < j; i, j = i+1, j-1 {
		p[i], p[j] = p[j], p[i]
	}
}

// dedupe drops consecutive (and wrap-around) coincident vertices.
func dedupe(p Polygon) Polygon {
	if len(p) == 0 {
		return p
	}
	out := p[:1]
	for _, v := range p[1:] {
		if v.Sub(out[len(out)-1]).Norm() > vertexTol {
			out = append(out, v)
		}
	}
	for len(out) > 1 && out[len(out)-1].Sub(out[0]).Norm() <= vertexTol {
		out = out[:len(out)-1]
	}

	return out
}
