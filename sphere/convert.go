// SPDX-License-Identifier: MIT

package sphere

import "math"

// LonLatToXYZ maps (lon, lat) in radians to the unit sphere:
// x = cosφ·cosλ, y = cosφ·sinλ, z = sinφ.
func LonLatToXYZ(lon, lat float64) Vec3 {
	cl := math.Cos(lat)

	return Vec3{X: cl * math.Cos(lon), Y: cl * math.Sin(lon), Z: math.Sin(lat)}
}

// XYZToLonLat is the inverse of LonLatToXYZ. v need not be normalised.
// Longitude is returned in [0, 2π); at the poles it is 0.
func XYZToLonLat(v Vec3) (lon, lat float64) {
	n := v.Norm()
	if n == 0 {
		return 0, 0
	}
	lat = math.Asin(clamp(v.Z/n, -1, 1))
	if v.X == 0 && v.Y == 0 {
		return 0, lat
	}
	lon = math.Atan2(v.Y, v.X)
	if lon < 0 {
		lon += TwoPi
	}

	return lon, lat
}

// UnitVectors returns the local eastward (vlon) and northward (vlat) unit
// tangent vectors at (lon, lat):
//
//	vlon = (-sinλ, cosλ, 0)
//	vlat = (-sinφ·cosλ, -sinφ·sinλ, cosφ)
//
// Both are orthogonal to LonLatToXYZ(lon, lat) and to each other.
func UnitVectors(lon, lat float64) (vlon, vlat Vec3) {
	sl, cl := math.Sincos(lon)
	sp, cp := math.Sincos(lat)
	vlon = Vec3{X: -sl, Y: cl, Z: 0}
	vlat = Vec3{X: -sp * cl, Y: -sp * sl, Z: cp}

	return vlon, vlat
}

// TangentToXYZ expresses the tangent vector u·vlon + v·vlat in Cartesian form.
func TangentToXYZ(u, v float64, vlon, vlat Vec3) Vec3 {
	return vlon.Scale(u).Add(vlat.Scale(v))
}

// XYZToTangent projects w onto the tangent basis (vlon, vlat).
func XYZToTangent(w, vlon, vlat Vec3) (u, v float64) {
	return w.Dot(vlon), w.Dot(vlat)
}

// WrapPi maps an angle difference into (-π, π].
func WrapPi(x float64) float64 {
	if x > -math.Pi && x <= math.Pi {
		return x
	}
	x = math.Mod(x+math.Pi, TwoPi)
	if x <= 0 {
		x += TwoPi
	}

	return x - math.Pi
}

// Unwrap returns the representative of lon that lies within π of ref.
func Unwrap(lon, ref float64) float64 {
	return ref + WrapPi(lon-ref)
}

// clamp limits x to [lo, hi].
func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}

	return x
}
