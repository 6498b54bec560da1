// SPDX-License-Identifier: MIT

package grid

import (
	"fmt"
	"math"

	"github.com/katalvlaran/sphgrid/sphere"
)

// cubeFrame is the (centre, x-axis, y-axis) frame of one cube face.
// e1×e2 = c for every face.
type cubeFrame struct{ c, e1, e2 sphere.Vec3 }

// cubeFrames are ordered by tile id (1-based). Their orientation matches
// the edge-contact table of package cubesphere.
var cubeFrames = [6]cubeFrame{
	{sphere.Vec3{X: 1}, sphere.Vec3{Y: 1}, sphere.Vec3{Z: 1}},
	{sphere.Vec3{Y: 1}, sphere.Vec3{X: -1}, sphere.Vec3{Z: 1}},
	{sphere.Vec3{Z: 1}, sphere.Vec3{X: -1}, sphere.Vec3{Y: -1}},
	{sphere.Vec3{X: -1}, sphere.Vec3{Z: -1}, sphere.Vec3{Y: -1}},
	{sphere.Vec3{Y: -1}, sphere.Vec3{Z: -1}, sphere.Vec3{X: 1}},
	{sphere.Vec3{Z: -1}, sphere.Vec3{Y: 1}, sphere.Vec3{X: 1}},
}

// BuildCubeSphere builds the six faces of an equiangular gnomonic cubed
// sphere with n×n cells per face. Faces share their edge corners exactly.
//
// Errors:
//   - ErrInvalidSpec when n < 1.
//
// Complexity: O(6·n²).
func BuildCubeSphere(n int) ([]*Tile, error) {
	if n < 1 {
		return nil, fmt.Errorf("BuildCubeSphere(%d): %w", n, ErrInvalidSpec)
	}
	x := make([]float64, n+1)
	for i := range x {
		x[i] = math.Tan(float64(2*i-n) * (math.Pi / 4) / float64(n))
	}
	x[0], x[n] = -1, 1

	tiles := make([]*Tile, 6)
	for f, fr := range cubeFrames {
		t := &Tile{
			ID: f + 1, Name: fmt.Sprintf("tile%d", f+1), Type: GnomonicED,
			NX: n, NY: n,
			Arc: sphere.ArcGreatCircle,
			Lon: make([]float64, (n+1)*(n+1)),
			Lat: make([]float64, (n+1)*(n+1)),
			XYZ: make([]sphere.Vec3, (n+1)*(n+1)),
		}
		for j := 0; j <= n; j++ {
			for i := 0; i <= n; i++ {
				k := t.CornerIndex(i, j)
				v := cubePoint(fr, x[i], x[j])
				t.XYZ[k] = v
				t.Lon[k], t.Lat[k] = sphere.XYZToLonLat(v)
			}
		}
		if err := fillCubeCells(t); err != nil {
			return nil, fmt.Errorf("BuildCubeSphere(%d): %w", n, err)
		}
		tiles[f] = t
	}

	return tiles, nil
}

// cubePoint projects face coordinates (a, b) onto the unit sphere. Frame
// vectors are signed unit axes and tan is odd, so an edge point computed
// from either face has identical components.
func cubePoint(fr cubeFrame, a, b float64) sphere.Vec3 {
	return fr.c.Add(fr.e1.Scale(a)).Add(fr.e2.Scale(b)).Normalize()
}

// fillCubeCells computes centres and areas from the corner XYZ so that
// pole corners need no longitude.
func fillCubeCells(t *Tile) error {
	t.LonT = make([]float64, t.Cells())
	t.LatT = make([]float64, t.Cells())
	t.Area = make([]float64, t.Cells())
	for j := 0; j < t.NY; j++ {
		for i := 0; i < t.NX; i++ {
			vs := []sphere.Vec3{
				t.XYZ[t.CornerIndex(i, j)], t.XYZ[t.CornerIndex(i+1, j)],
				t.XYZ[t.CornerIndex(i+1, j+1)], t.XYZ[t.CornerIndex(i, j+1)],
			}
			p, err := sphere.PolygonFromXYZ(vs)
			if err != nil {
				return fmt.Errorf("tile %d cell (%d,%d): %w", t.ID, i, j, err)
			}
			k := t.CellIndex(i, j)
			t.LonT[k], t.LatT[k] = sphere.XYZToLonLat(p.Centroid())
			t.Area[k] = p.Area() * sphere.EarthRadius * sphere.EarthRadius
		}
	}

	return nil
}
