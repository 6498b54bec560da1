// SPDX-License-Identifier: MIT

package grid

import (
	"fmt"

	"github.com/katalvlaran/sphgrid/domain"
	"github.com/katalvlaran/sphgrid/sphere"
	"gonum.org/v1/gonum/floats"
)

// Cells returns NX*NY.
func (t *Tile) Cells() int { return t.NX * t.NY }

// CornerIndex returns the position of corner (i, j) in Lon/Lat.
func (t *Tile) CornerIndex(i, j int) int { return j*(t.NX+1) + i }

// CellIndex returns the position of cell (i, j) in LonT/LatT/Area/Mask.
func (t *Tile) CellIndex(i, j int) int { return j*t.NX + i }

// CellCorners returns the four corners of cell (i, j) in the order
// (i,j), (i+1,j), (i+1,j+1), (i,j+1).
func (t *Tile) CellCorners(i, j int) (lons, lats [4]float64) {
	for k, c := range [4][2]int{{i, j}, {i + 1, j}, {i + 1, j + 1}, {i, j + 1}} {
		idx := t.CornerIndex(c[0], c[1])
		lons[k], lats[k] = t.Lon[idx], t.Lat[idx]
	}

	return lons, lats
}

// Valid reports whether cell k (row-major) takes part in remapping.
func (t *Tile) Valid(k int) bool {
	return t.Mask == nil || t.Mask[k] > 0.5
}

// TotalArea returns the sum of cell areas in m².
func (t *Tile) TotalArea() float64 { return floats.Sum(t.Area) }

// Validate checks that every array agrees with NX, NY.
// Errors:
//   - ErrShapeMismatch naming the first inconsistent array.
func (t *Tile) Validate() error {
	if t.NX <= 0 || t.NY <= 0 {
		return fmt.Errorf("Tile.Validate: size %dx%d: %w", t.NX, t.NY, ErrShapeMismatch)
	}
	nc, nt := (t.NX+1)*(t.NY+1), t.NX*t.NY
	checks := []struct {
		name string
		got  int
		want int
		opt  bool
	}{
		{"lon", len(t.Lon), nc, false},
		{"lat", len(t.Lat), nc, false},
		{"lon_t", len(t.LonT), nt, true},
		{"lat_t", len(t.LatT), nt, true},
		{"area", len(t.Area), nt, true},
		{"mask", len(t.Mask), nt, true},
		{"xyz", len(t.XYZ), nc, true},
	}
	for _, c := range checks {
		if c.opt && c.got == 0 {
			continue
		}
		if c.got != c.want {
			return fmt.Errorf("Tile.Validate: %s has %d values, want %d: %w", c.name, c.got, c.want, ErrShapeMismatch)
		}
	}

	return nil
}

// FromCorners builds a tile from externally supplied corner coordinates in
// degrees (row-major (ny+1)×(nx+1)). Centres and areas are derived.
// Errors:
//   - ErrShapeMismatch for inconsistent array lengths.
//   - sphere.ErrDegenerateGeometry for unusable cells.
func FromCorners(nx, ny int, lonDeg, latDeg []float64, arc sphere.Arc) (*Tile, error) {
	t := &Tile{ID: 1, Name: "tile1", Type: FromFile, NX: nx, NY: ny, Arc: arc}
	if nx <= 0 || ny <= 0 || len(lonDeg) != (nx+1)*(ny+1) || len(latDeg) != (nx+1)*(ny+1) {
		return nil, fmt.Errorf("FromCorners(%d,%d): %d lons, %d lats: %w", nx, ny, len(lonDeg), len(latDeg), ErrShapeMismatch)
	}
	t.Lon = make([]float64, len(lonDeg))
	t.Lat = make([]float64, len(latDeg))
	for k := range lonDeg {
		t.Lon[k] = lonDeg[k] * sphere.D2R
		t.Lat[k] = latDeg[k] * sphere.D2R
	}
	fillCentres(t)
	if err := fillAreas(t); err != nil {
		return nil, err
	}

	return t, nil
}

// WithMask returns a shallow copy of t carrying mask.
// Errors:
//   - ErrShapeMismatch when len(mask) != NX*NY.
func (t *Tile) WithMask(mask []float64) (*Tile, error) {
	if mask != nil && len(mask) != t.Cells() {
		return nil, fmt.Errorf("Tile.WithMask: %d values for %d cells: %w", len(mask), t.Cells(), ErrShapeMismatch)
	}
	out := *t
	out.Mask = append([]float64(nil), mask...)

	return &out, nil
}

// Window extracts the cells of compute window w (global cell indices of
// this tile) as a new tile. The result keeps global offsets in IOff/JOff so
// that exchange-grid records still carry global indices.
// Errors:
//   - ErrShapeMismatch when w is empty or not inside the tile.
func (t *Tile) Window(w domain.Window) (*Tile, error) {
	li, lj := w.IS-t.IOff, w.JS-t.JOff
	nx, ny := w.NX(), w.NY()
	if nx <= 0 || ny <= 0 || li < 0 || lj < 0 || li+nx > t.NX || lj+ny > t.NY {
		return nil, fmt.Errorf("Tile.Window(%v): tile covers i[%d,%d] j[%d,%d]: %w",
			w, t.IOff, t.IOff+t.NX-1, t.JOff, t.JOff+t.NY-1, ErrShapeMismatch)
	}
	out := &Tile{
		ID: t.ID, Name: t.Name, Type: t.Type,
		NX: nx, NY: ny,
		IOff: w.IS, JOff: w.JS,
		Arc: t.Arc,
	}
	for j := 0; j <= ny; j++ {
		for i := 0; i <= nx; i++ {
			k := t.CornerIndex(li+i, lj+j)
			out.Lon = append(out.Lon, t.Lon[k])
			out.Lat = append(out.Lat, t.Lat[k])
			if t.XYZ != nil {
				out.XYZ = append(out.XYZ, t.XYZ[k])
			}
		}
	}
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			k := t.CellIndex(li+i, lj+j)
			if t.LonT != nil {
				out.LonT = append(out.LonT, t.LonT[k])
				out.LatT = append(out.LatT, t.LatT[k])
			}
			if t.Area != nil {
				out.Area = append(out.Area, t.Area[k])
			}
			if t.Mask != nil {
				out.Mask = append(out.Mask, t.Mask[k])
			}
		}
	}

	return out, nil
}

// fillCentres sets LonT/LatT to the normalised mean of each cell's corners.
func fillCentres(t *Tile) {
	t.LonT = make([]float64, t.Cells())
	t.LatT = make([]float64, t.Cells())
	for j := 0; j < t.NY; j++ {
		for i := 0; i < t.NX; i++ {
			lons, lats := t.CellCorners(i, j)
			var s sphere.Vec3
			for k := range lons {
				s = s.Add(sphere.LonLatToXYZ(lons[k], lats[k]))
			}
			k := t.CellIndex(i, j)
			t.LonT[k], t.LatT[k] = sphere.XYZToLonLat(s)
		}
	}
}

// fillAreas computes cell areas (m²) with the tile's edge type.
func fillAreas(t *Tile) error {
	t.Area = make([]float64, t.Cells())
	for j := 0; j < t.NY; j++ {
		for i := 0; i < t.NX; i++ {
			a, err := CellArea(t, i, j)
			if err != nil {
				return err
			}
			t.Area[t.CellIndex(i, j)] = a
		}
	}

	return nil
}

// CellArea returns the area in m² of cell (i, j) using the tile's Arc.
// Errors:
//   - sphere.ErrDegenerateGeometry, wrapped with the tile and cell.
func CellArea(t *Tile, i, j int) (float64, error) {
	lons, lats := t.CellCorners(i, j)
	var (
		sr  float64
		err error
	)
	switch t.Arc {
	case sphere.ArcLonLat:
		var p sphere.LonLatPolygon
		if p, err = sphere.NewLonLatPolygon(lons[:], lats[:]); err == nil {
			sr = p.Area()
		}
	default:
		var p sphere.Polygon
		if p, err = sphere.NewPolygon(lons[:], lats[:]); err == nil {
			sr = p.Area()
		}
	}
	if err != nil {
		return 0, fmt.Errorf("tile %d cell (%d,%d): %w", t.ID, i, j, err)
	}

	return sr * sphere.EarthRadius * sphere.EarthRadius, nil
}
