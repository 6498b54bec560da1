// SPDX-License-Identifier: MIT

package sphere

import (
	"fmt"
	"math"
)

const (
	// EarthRadius is the mean Earth radius in metres.
	EarthRadius = 6371000.0

	// D2R converts degrees to radians.
	D2R = math.Pi / 180.0

	// R2D converts radians to degrees.
	R2D = 180.0 / math.Pi

	// TwoPi is one full turn in radians.
	TwoPi = 2 * math.Pi
)

// Vec3 is a point or direction in 3-D Cartesian space. Points on the unit
// sphere satisfy X²+Y²+Z² = 1.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns a+b.
func (a Vec3) Add(b Vec3) Vec3 { return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z} }

// Sub returns a-b.
func (a Vec3) Sub(b Vec3) Vec3 { return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z} }

// Scale returns s·a.
func (a Vec3) Scale(s float64) Vec3 { return Vec3{s * a.X, s * a.Y, s * a.Z} }

// Dot returns the scalar product a·b.
func (a Vec3) Dot(b Vec3) float64 { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }

// Cross returns the vector product a×b.
func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

// Norm returns the Euclidean length of a.
func (a Vec3) Norm() float64 { return math.Sqrt(a.Dot(a)) }

// Normalize returns a scaled to unit length. The zero vector is returned
// unchanged.
func (a Vec3) Normalize() Vec3 {
	n := a.Norm()
	if n == 0 {
		return a
	}

	return a.Scale(1 / n)
}

// IsFinite reports whether every component is finite.
func (a Vec3) IsFinite() bool {
	return isFinite(a.X) && isFinite(a.Y) && isFinite(a.Z)
}

// String implements fmt.Stringer.
func (a Vec3) String() string {
	return fmt.Sprintf("(%g, %g, %g)", a.X, a.Y, a.Z)
}

// Arc selects how cell edges are interpreted between two corners.
type Arc int

const (
	// ArcGreatCircle treats every edge as the shorter great-circle arc.
	ArcGreatCircle Arc = iota

	// ArcLonLat treats every edge as a straight segment in (lon, lat). Edges
	// of constant latitude then follow the parallel, as on regular grids.
	ArcLonLat
)

// String implements fmt.Stringer.
func (a Arc) String() string {
	switch a {
	case ArcGreatCircle:
		return "great_circle"
	case ArcLonLat:
		return "lonlat"
	default:
		return fmt.Sprintf("Arc(%d)", int(a))
	}
}

// ParseArc converts "great_circle" or "lonlat" to an Arc.
func ParseArc(s string) (Arc, error) {
	switch s {
	case "great_circle", "gc":
		return ArcGreatCircle, nil
	case "lonlat", "lon_lat":
		return ArcLonLat, nil
	default:
		return 0, fmt.Errorf("ParseArc(%q): %w", s, ErrUnknownArc)
	}
}

// isFinite reports whether x is neither NaN nor ±Inf.
func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
