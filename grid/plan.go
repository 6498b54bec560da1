// SPDX-License-Identifier: MIT

package grid

import (
	"fmt"
	"math"

	"github.com/katalvlaran/sphgrid/sphere"
)

// LonLatSpec describes a regular longitude/latitude tile. Ranges are in
// degrees.
type LonLatSpec struct {
	LonRange    [2]float64 `mapstructure:"lon_range" yaml:"lon_range"`
	LatRange    [2]float64 `mapstructure:"lat_range" yaml:"lat_range"`
	NLon        int        `mapstructure:"nlon" yaml:"nlon"`
	NLat        int        `mapstructure:"nlat" yaml:"nlat"`
	RefineSteps int        `mapstructure:"refine_steps" yaml:"refine_steps"` // 0 means 1
	CenterY     bool       `mapstructure:"center_y" yaml:"center_y"`
	Mode        Mode       `mapstructure:"-" yaml:"-"`
	// Cartesian also fills Tile.XYZ for the corners.
	Cartesian bool `mapstructure:"cartesian" yaml:"cartesian"`
	// ID is the tile id; 0 means 1.
	ID int `mapstructure:"-" yaml:"-"`
}

// Plan is a validated LonLatSpec with its derived sizes committed.
// Finalize allocates and fills the tile.
type Plan struct {
	spec   LonLatSpec
	steps  int
	nxFine int
	nyFine int
}

// Configure validates spec and commits the derived sizes.
//
// Errors:
//   - ErrInvalidSpec: non-positive NLon/NLat, negative RefineSteps,
//     non-finite or inverted ranges, latitudes outside [-90,90], a
//     longitude span over 360°, or NLat < 2 without CenterY.
//   - ErrUnsupportedGridType: unknown Mode.
func Configure(spec LonLatSpec) (*Plan, error) {
	if !spec.Mode.valid() {
		return nil, fmt.Errorf("Configure: mode %v: %w", spec.Mode, ErrUnsupportedGridType)
	}
	if spec.NLon <= 0 || spec.NLat <= 0 {
		return nil, fmt.Errorf("Configure: size %dx%d: %w", spec.NLon, spec.NLat, ErrInvalidSpec)
	}
	if spec.RefineSteps < 0 {
		return nil, fmt.Errorf("Configure: refine_steps %d: %w", spec.RefineSteps, ErrInvalidSpec)
	}
	lo, la := spec.LonRange, spec.LatRange
	for _, v := range []float64{lo[0], lo[1], la[0], la[1]} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("Configure: non-finite range: %w", ErrInvalidSpec)
		}
	}
	if lo[1] <= lo[0] || lo[1]-lo[0] > 360 {
		return nil, fmt.Errorf("Configure: lon range [%g,%g]: %w", lo[0], lo[1], ErrInvalidSpec)
	}
	if la[1] <= la[0] || la[0] < -90 || la[1] > 90 {
		return nil, fmt.Errorf("Configure: lat range [%g,%g]: %w", la[0], la[1], ErrInvalidSpec)
	}
	if !spec.CenterY && spec.NLat < 2 {
		return nil, fmt.Errorf("Configure: nlat %d needs center_y: %w", spec.NLat, ErrInvalidSpec)
	}
	p := &Plan{spec: spec, steps: max(spec.RefineSteps, 1)}
	if spec.Mode.NeedsRefinement() {
		s2 := p.steps * p.steps
		p.nxFine = s2 * spec.NLon
		p.nyFine = s2*(spec.NLat-1) + 1
		if spec.CenterY && spec.NLat == 1 {
			p.nyFine = s2
		}
	}

	return p, nil
}

// Spec returns the validated spec.
func (p *Plan) Spec() LonLatSpec { return p.spec }

// FineSize returns the refined point-set size, zero when the mode needs no
// refinement.
func (p *Plan) FineSize() (nx, ny int) { return p.nxFine, p.nyFine }

// Finalize allocates and fills the tile.
// Implementation:
//   - Stage 1: 1-D corner and centre axes in radians.
//   - Stage 2: 2-D corner arrays, centres, areas from lon/lat-aligned cells.
//   - Stage 3 (optional): corner XYZ; refined point set with tangents.
//
// Complexity: O(nlon·nlat + nxFine·nyFine).
func (p *Plan) Finalize() (*Tile, error) {
	s := p.spec
	id := s.ID
	if id == 0 {
		id = 1
	}
	ax := regularAxes(s)
	t := &Tile{
		ID: id, Name: fmt.Sprintf("tile%d", id), Type: RegularLonLat,
		NX: s.NLon, NY: s.NLat,
		Arc:  sphere.ArcLonLat,
		Axes: ax,
		Lon:  make([]float64, (s.NLon+1)*(s.NLat+1)),
		Lat:  make([]float64, (s.NLon+1)*(s.NLat+1)),
		LonT: make([]float64, s.NLon*s.NLat),
		LatT: make([]float64, s.NLon*s.NLat),
	}
	for j := 0; j <= s.NLat; j++ {
		for i := 0; i <= s.NLon; i++ {
			k := t.CornerIndex(i, j)
			t.Lon[k], t.Lat[k] = ax.LonC[i], ax.LatC[j]
		}
	}
	for j := 0; j < s.NLat; j++ {
		for i := 0; i < s.NLon; i++ {
			k := t.CellIndex(i, j)
			t.LonT[k], t.LatT[k] = ax.LonT[i], ax.LatT[j]
		}
	}
	if err := fillAreas(t); err != nil {
		return nil, fmt.Errorf("Finalize: %w", err)
	}
	if s.Cartesian {
		t.XYZ = make([]sphere.Vec3, len(t.Lon))
		for k := range t.Lon {
			t.XYZ[k] = sphere.LonLatToXYZ(t.Lon[k], t.Lat[k])
		}
	}
	if s.Mode.NeedsRefinement() {
		t.Refined = p.refine()
	}

	return t, nil
}

// Build is Configure followed by Finalize.
func Build(spec LonLatSpec) (*Tile, error) {
	p, err := Configure(spec)
	if err != nil {
		return nil, err
	}

	return p.Finalize()
}

func regularAxes(s LonLatSpec) *RegularAxes {
	lon0, lat0 := s.LonRange[0], s.LatRange[0]
	lonSpan, latSpan := s.LonRange[1]-lon0, s.LatRange[1]-lat0
	ax := &RegularAxes{
		LonC: make([]float64, s.NLon+1),
		LonT: make([]float64, s.NLon),
		LatC: make([]float64, s.NLat+1),
		LatT: make([]float64, s.NLat),
	}
	dlon := lonSpan / float64(s.NLon)
	for i := 0; i <= s.NLon; i++ {
		ax.LonC[i] = (lon0 + float64(i)*dlon) * sphere.D2R
		if i < s.NLon {
			ax.LonT[i] = (lon0 + (float64(i)+0.5)*dlon) * sphere.D2R
		}
	}
	// pin the far edge so shared edges of adjacent tiles agree bit for bit
	ax.LonC[s.NLon] = s.LonRange[1] * sphere.D2R

	if s.CenterY {
		dlat := latSpan / float64(s.NLat)
		for j := 0; j <= s.NLat; j++ {
			ax.LatC[j] = (lat0 + float64(j)*dlat) * sphere.D2R
			if j < s.NLat {
				ax.LatT[j] = (lat0 + (float64(j)+0.5)*dlat) * sphere.D2R
			}
		}
		ax.LatC[s.NLat] = s.LatRange[1] * sphere.D2R

		return ax
	}
	dlat := latSpan / float64(s.NLat-1)
	for j := 0; j <= s.NLat; j++ {
		ax.LatC[j] = clamp90(lat0+(float64(j)-0.5)*dlat) * sphere.D2R
		if j < s.NLat {
			ax.LatT[j] = (lat0 + float64(j)*dlat) * sphere.D2R
		}
	}

	return ax
}

func (p *Plan) refine() *Refined {
	s := p.spec
	nx, ny := p.nxFine, p.nyFine
	r := &Refined{
		NX: nx, NY: ny,
		Lon:  make([]float64, nx*ny),
		Lat:  make([]float64, nx*ny),
		XYZ:  make([]sphere.Vec3, nx*ny),
		VLon: make([]sphere.Vec3, nx*ny),
		VLat: make([]sphere.Vec3, nx*ny),
	}
	lon0, lat0 := s.LonRange[0], s.LatRange[0]
	dlon := (s.LonRange[1] - lon0) / float64(nx)
	latSpan := s.LatRange[1] - lat0
	lats := make([]float64, ny)
	switch {
	case s.CenterY:
		dlat := latSpan / float64(ny)
		for j := range lats {
			lats[j] = (lat0 + (float64(j)+0.5)*dlat) * sphere.D2R
		}
	case ny == 1:
		lats[0] = lat0 * sphere.D2R
	default:
		dlat := latSpan / float64(ny-1)
		for j := range lats {
			lats[j] = (lat0 + float64(j)*dlat) * sphere.D2R
		}
	}
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			k := j*nx + i
			lon := (lon0 + (float64(i)+0.5)*dlon) * sphere.D2R
			r.Lon[k], r.Lat[k] = lon, lats[j]
			r.XYZ[k] = sphere.LonLatToXYZ(lon, lats[j])
			r.VLon[k], r.VLat[k] = sphere.UnitVectors(lon, lats[j])
		}
	}

	return r
}

func clamp90(x float64) float64 { return math.Max(-90, math.Min(90, x)) }
