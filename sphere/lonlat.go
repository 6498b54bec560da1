// SPDX-License-Identifier: MIT

package sphere

import (
	"fmt"
	"math"
)

// Lon/lat cells
//
// Description:
//
//	A LonLatPolygon is a cell whose edges are straight lines in the
//	(λ, φ) plane: meridians and parallels for regular grids, and straight
//	(λ, φ) segments for the pieces cut out of them. Clipping is therefore
//	planar, while areas and centroids are taken on the sphere.
//
// Longitude frame:
//
//	Longitudes are never wrapped inside a polygon. A cell keeps whatever
//	continuous frame it was built in, so a single column may span 180° or
//	the whole circle. Callers line two cells up with Shift(±2π).
//
// Area:
//
//	Green's theorem turns ∬cosφ dλdφ into the edge sum of -∫sinφ dλ.
//	With λ linear in φ along an edge this integral is closed-form, with a
//	midpoint rule for nearly zonal edges.
//
// Centroid:
//
//	Moments ∬λ·cosφ and ∬φ·cosφ, also as edge integrals, evaluated with
//	4-point Gauss–Legendre per edge and divided by the area.
//
// Complexity:
//   - Construction, area, centroid, bounds: O(n).
//   - ClipLonLat of an n-gon by an m-gon: O(n·m).

// Tolerances of the lon/lat kernel (radians).
const (
	planarVertexTol = 1e-13
	planarInsideTol = 1e-15
	smallDLat       = 1e-10
)

// 4-point Gauss–Legendre nodes and weights on [-1, 1].
var (
	gaussX = [4]float64{-0.8611363115940526, -0.3399810435848563, 0.3399810435848563, 0.8611363115940526}
	gaussW = [4]float64{0.3478548451374538, 0.6521451548625461, 0.6521451548625461, 0.3478548451374538}
)

// LonLat is a (lon, lat) pair in radians.
type LonLat struct {
	Lon, Lat float64
}

// LonLatPolygon is a cell whose edges are straight in the (lon, lat) plane.
// Longitudes are used as given: a cell crossing the seam must carry
// continuous longitudes (e.g. 350°..370°), never wrapped ones.
type LonLatPolygon []LonLat

// NewLonLatPolygon validates and orients a lon/lat cell.
// Implementation:
//   - Stage 1: reject mismatched lengths, non-finite values, |lat| > π/2.
//   - Stage 2: merge coincident vertices.
//   - Stage 3: orient counter-clockwise in the (lon, lat) plane.
//   - Stage 4: reject reflex turns and zero spherical area.
//
// Errors:
//   - ErrDegenerateGeometry.
func NewLonLatPolygon(lons, lats []float64) (LonLatPolygon, error) {
	if len(lons) != len(lats) {
		return nil, fmt.Errorf("NewLonLatPolygon: %d lons vs %d lats: %w", len(lons), len(lats), ErrDegenerateGeometry)
	}
	p := make(LonLatPolygon, 0, len(lons))
	for k := range lons {
		if !isFinite(lons[k]) || !isFinite(lats[k]) {
			return nil, fmt.Errorf("NewLonLatPolygon: vertex %d not finite: %w", k, ErrDegenerateGeometry)
		}
		if math.Abs(lats[k]) > math.Pi/2+latTol {
			return nil, fmt.Errorf("NewLonLatPolygon: vertex %d latitude %g out of range: %w", k, lats[k], ErrDegenerateGeometry)
		}
		p = append(p, LonLat{Lon: lons[k], Lat: clamp(lats[k], -math.Pi/2, math.Pi/2)})
	}
	p = dedupePlanar(p)
	if len(p) < 3 {
		return nil, fmt.Errorf("NewLonLatPolygon: %d distinct vertices: %w", len(p), ErrDegenerateGeometry)
	}
	if p.shoelace() < 0 {
		p.reverse()
	}
	n := len(p)
	for k := 0; k < n; k++ {
		a, b, c := p[(k+n-1)%n], p[k], p[(k+1)%n]
		ux, uy := b.Lon-a.Lon, b.Lat-a.Lat
		wx, wy := c.Lon-b.Lon, c.Lat-b.Lat
		sinTurn := (ux*wy - uy*wx) / (math.Hypot(ux, uy) * math.Hypot(wx, wy))
		if sinTurn < -turnTol {
			return nil, fmt.Errorf("NewLonLatPolygon: reflex turn at vertex %d: %w", k, ErrDegenerateGeometry)
		}
	}
	area := p.SignedArea()
	if !isFinite(area) || area < minSteradians {
		return nil, fmt.Errorf("NewLonLatPolygon: area %g: %w", area, ErrDegenerateGeometry)
	}

	return p, nil
}

// SignedArea returns the spherical area in steradians enclosed by the
// outline, positive when counter-clockwise. Each edge contributes the exact
// integral of -sinφ dλ with λ linear in φ:
//
//	Δλ·(cosφ2 - cosφ1)/(φ2 - φ1), or -Δλ·sin(φmid) when φ1 ≈ φ2.
func (p LonLatPolygon) SignedArea() float64 {
	var s float64
	n := len(p)
	for i := 0; i < n; i++ {
		a, b := p[i], p[(i+1)%n]
		dx := b.Lon - a.Lon
		if dx == 0 {
			continue
		}
		dy := b.Lat - a.Lat
		if math.Abs(dy) < smallDLat {
			s -= dx * math.Sin(0.5*(a.Lat+b.Lat))
		} else {
			s += dx * (math.Cos(b.Lat) - math.Cos(a.Lat)) / dy
		}
	}

	return s
}

// Area returns |SignedArea| in steradians.
func (p LonLatPolygon) Area() float64 { return math.Abs(p.SignedArea()) }

// Centroid returns the area centroid in (lon, lat): the ratio of the
// moments ∬λ·cosφ and ∬φ·cosφ to the area, each turned into an edge
// integral by Green's theorem and evaluated with 4-point Gauss–Legendre.
// Longitudes stay in the polygon's own (unwrapped) frame.
func (p LonLatPolygon) Centroid() LonLat {
	if len(p) == 0 {
		return LonLat{}
	}
	area := p.SignedArea()
	if area == 0 {
		var sx, sy float64
		for _, v := range p {
			sx += v.Lon
			sy += v.Lat
		}
		k := float64(len(p))

		return LonLat{Lon: sx / k, Lat: sy / k}
	}
	var ml, mp float64
	n := len(p)
	for i := 0; i < n; i++ {
		a, b := p[i], p[(i+1)%n]
		dx, dy := b.Lon-a.Lon, b.Lat-a.Lat
		for g := range gaussX {
			t := 0.5 * (1 + gaussX[g])
			w := 0.5 * gaussW[g]
			lam, phi := a.Lon+t*dx, a.Lat+t*dy
			sp, cp := math.Sincos(phi)
			ml += w * 0.5 * lam * lam * cp * dy
			mp -= w * (phi*sp + cp) * dx
		}
	}

	return LonLat{Lon: ml / area, Lat: mp / area}
}

// Shift returns a copy translated by dlon.
func (p LonLatPolygon) Shift(dlon float64) LonLatPolygon {
	out := make(LonLatPolygon, len(p))
	for i, v := range p {
		out[i] = LonLat{Lon: v.Lon + dlon, Lat: v.Lat}
	}

	return out
}

// ClipLonLat returns subject ∩ clip in the (lon, lat) plane using
// Sutherland–Hodgman against the convex, counter-clockwise clip polygon.
// The result is nil when fewer than three distinct vertices remain.
// Complexity:
//   - Time O(n·m), Space O(n+m).
func ClipLonLat(subject, clip LonLatPolygon) LonLatPolygon {
	out := append(LonLatPolygon(nil), subject...)
	m := len(clip)
	for k := 0; k < m && len(out) >= 3; k++ {
		a, b := clip[k], clip[(k+1)%m]
		ex, ey := b.Lon-a.Lon, b.Lat-a.Lat
		side := func(v LonLat) float64 { return ex*(v.Lat-a.Lat) - ey*(v.Lon-a.Lon) }
		in := out
		out = make(LonLatPolygon, 0, len(in)+2)
		for i := range in {
			p, q := in[i], in[(i+1)%len(in)]
			dp, dq := side(p), side(q)
			pin, qin := dp >= -planarInsideTol, dq >= -planarInsideTol
			if pin {
				out = append(out, p)
			}
			if pin != qin {
				t := dp / (dp - dq)
				out = append(out, LonLat{Lon: p.Lon + t*(q.Lon-p.Lon), Lat: p.Lat + t*(q.Lat-p.Lat)})
			}
		}
	}
	out = dedupePlanar(out)
	if len(out) < 3 {
		return nil
	}

	return out
}

// shoelace returns twice the signed planar area.
func (p LonLatPolygon) shoelace() float64 {
	var s float64
	n := len(p)
	for i := 0; i < n; i++ {
		a, b := p[i], p[(i+1)%n]
		s += a.Lon*b.Lat - b.Lon*a.Lat
	}

	return s
}

func (p LonLatPolygon) reverse() {
	for i, j := 0, len(p)-1; i < j; i, j = i+1, j-1 {
		p[i], p[j] = p[j], p[i]
	}
}

// dedupePlanar drops consecutive (and wrap-around) coincident vertices.
func dedupePlanar(p LonLatPolygon) LonLatPolygon {
	if len(p) == 0 {
		return p
	}
	same := func(a, b LonLat) bool {
		return math.Abs(a.Lon-b.Lon) <= planarVertexTol && math.Abs(a.Lat-b.Lat) <= planarVertexTol
	}
	out := p[:1]
	for _, v := range p[1:] {
		if !same(v, out[len(out)-1]) {
			out = append(out, v)
		}
	}
	for len(out) > 1 && same(out[len(out)-1], out[0]) {
		out = out[:len(out)-1]
	}

	return out
}
