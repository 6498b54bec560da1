// SPDX-License-Identifier: MIT

package sphere

import "math"

// fullLonMin / fullLonMax bound a box that must match every longitude
// query, whichever 2π offset the query uses.
const (
	fullLonMin = -3 * math.Pi
	fullLonMax = 5 * math.Pi
	poleTol    = 1e-14
)

// Box is a lon/lat bounding box in radians. MinLon may be negative and
// MaxLon may exceed 2π: boxes live in the unwrapped frame of their cell.
type Box struct {
	MinLon, MaxLon float64
	MinLat, MaxLat float64
}

// Overlaps reports whether b and o intersect (closed intervals).
func (b Box) Overlaps(o Box) bool {
	return b.MinLon <= o.MaxLon && o.MinLon <= b.MaxLon &&
		b.MinLat <= o.MaxLat && o.MinLat <= b.MaxLat
}

// Shift translates the box in longitude.
func (b Box) Shift(dlon float64) Box {
	b.MinLon += dlon
	b.MaxLon += dlon

	return b
}

// Pad grows the box by eps on every side.
func (b Box) Pad(eps float64) Box {
	return Box{MinLon: b.MinLon - eps, MaxLon: b.MaxLon + eps, MinLat: b.MinLat - eps, MaxLat: b.MaxLat + eps}
}

// FullLon reports whether the box spans every longitude (pole cells).
func (b Box) FullLon() bool {
	return b.MinLon <= fullLonMin && b.MaxLon >= fullLonMax
}

// Bounds returns the lon/lat box of a lon/lat polygon.
func (p LonLatPolygon) Bounds() Box {
	b := Box{MinLon: math.Inf(1), MaxLon: math.Inf(-1), MinLat: math.Inf(1), MaxLat: math.Inf(-1)}
	for _, v := range p {
		b.MinLon = math.Min(b.MinLon, v.Lon)
		b.MaxLon = math.Max(b.MaxLon, v.Lon)
		b.MinLat = math.Min(b.MinLat, v.Lat)
		b.MaxLat = math.Max(b.MaxLat, v.Lat)
	}

	return b
}

// Bounds returns the lon/lat box of a great-circle polygon.
// Implementation:
//   - Stage 1: unwrap vertex longitudes along the outline; polar vertices
//     carry no longitude and are skipped.
//   - Stage 2: a net longitude winding of ±2π means the cell contains a
//     pole: the box spans every longitude and reaches that pole.
//   - Stage 3: widen the latitude range by the interior extrema of each arc
//     (great circles bulge poleward between their endpoints).
func (p Polygon) Bounds() Box {
	b := Box{MinLon: math.Inf(1), MaxLon: math.Inf(-1), MinLat: math.Inf(1), MaxLat: math.Inf(-1)}
	n := len(p)
	var (
		prev    float64
		first   float64
		have    bool
		winding float64
	)
	for _, v := range p {
		lon, lat := XYZToLonLat(v)
		b.MinLat = math.Min(b.MinLat, lat)
		b.MaxLat = math.Max(b.MaxLat, lat)
		if math.Abs(v.Z) >= 1-poleTol {
			continue
		}
		if have {
			u := Unwrap(lon, prev)
			winding += u - prev
			lon = u
		} else {
			first = lon
			have = true
		}
		prev = lon
		b.MinLon = math.Min(b.MinLon, lon)
		b.MaxLon = math.Max(b.MaxLon, lon)
	}
	if have {
		winding += WrapPi(first - prev)
	}
	if math.Abs(winding) > math.Pi {
		b.MinLon, b.MaxLon = fullLonMin, fullLonMax
		if p.Centroid().Z > 0 {
			b.MaxLat = math.Pi / 2
		} else {
			b.MinLat = -math.Pi / 2
		}
	}
	if !have {
		b.MinLon, b.MaxLon = fullLonMin, fullLonMax
	}
	for k := 0; k < n; k++ {
		lo, hi, ok := arcLatExtrema(p[k], p[(k+1)%n])
		if ok {
			b.MinLat = math.Min(b.MinLat, lo)
			b.MaxLat = math.Max(b.MaxLat, hi)
		}
	}

	return b
}

// arcLatExtrema returns the latitude range reached strictly inside the
// great-circle arc a→b, when the arc passes a latitude extremum.
func arcLatExtrema(a, b Vec3) (lo, hi float64, ok bool) {
	nrm := a.Cross(b)
	if nrm.Norm() == 0 {
		return 0, 0, false
	}
	nrm = nrm.Normalize()
	top := Vec3{Z: 1}.Sub(nrm.Scale(nrm.Z))
	if top.Norm() == 0 {
		return 0, 0, false
	}
	top = top.Normalize()
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, h := range [2]Vec3{top, top.Scale(-1)} {
		if a.Cross(h).Dot(nrm) >= 0 && h.Cross(b).Dot(nrm) >= 0 {
			lat := math.Asin(clamp(h.Z, -1, 1))
			lo = math.Min(lo, lat)
			hi = math.Max(hi, lat)
			ok = true
		}
	}

	return lo, hi, ok
}
