// SPDX-License-Identifier: MIT

package grid

import (
	"fmt"

	"github.com/katalvlaran/sphgrid/sphere"
)

// Mode is the remapping mode a grid is built for.
type Mode int

const (
	// ModeConserveOrder1 builds native corners and centres only.
	ModeConserveOrder1 Mode = iota
	// ModeConserveOrder2 builds native corners and centres only.
	ModeConserveOrder2
	// ModeBilinear additionally builds the refined point set.
	ModeBilinear
)

var modeNames = map[Mode]string{
	ModeConserveOrder1: "conserve_order1",
	ModeConserveOrder2: "conserve_order2",
	ModeBilinear:       "bilinear",
}

// String implements fmt.Stringer.
func (m Mode) String() string {
	if s, ok := modeNames[m]; ok {
		return s
	}

	return fmt.Sprintf("Mode(%d)", int(m))
}

// NeedsRefinement reports whether the mode asks for the refined point set.
func (m Mode) NeedsRefinement() bool { return m == ModeBilinear }

// valid reports whether m is a known mode.
func (m Mode) valid() bool {
	_, ok := modeNames[m]
	return ok
}

// ParseMode converts "conserve_order1", "conserve_order2" or "bilinear".
func ParseMode(s string) (Mode, error) {
	for m, name := range modeNames {
		if name == s {
			return m, nil
		}
	}

	return 0, fmt.Errorf("ParseMode(%q): %w", s, ErrUnsupportedGridType)
}

// GridType names a grid construction recipe.
type GridType string

// Known grid types. Only RegularLonLat and GnomonicED are buildable here.
const (
	RegularLonLat   GridType = "regular_lonlat_grid"
	Tripolar        GridType = "tripolar_grid"
	FromFile        GridType = "from_file"
	SimpleCartesian GridType = "simple_cartesian_grid"
	Spectral        GridType = "spectral_grid"
	ConformalCubic  GridType = "conformal_cubic_grid"
	GnomonicED      GridType = "gnomonic_ed"
	FPlane          GridType = "f_plane_grid"
	BetaPlane       GridType = "beta_plane_grid"
)

var knownTypes = []GridType{
	RegularLonLat, Tripolar, FromFile, SimpleCartesian, Spectral,
	ConformalCubic, GnomonicED, FPlane, BetaPlane,
}

// ParseGridType recognises a grid type name and reports whether it can be
// built by this package.
// Errors:
//   - ErrUnsupportedGridType for unknown names and for known names other
//     than regular_lonlat_grid and gnomonic_ed.
func ParseGridType(s string) (GridType, error) {
	for _, gt := range knownTypes {
		if string(gt) != s {
			continue
		}
		if gt != RegularLonLat && gt != GnomonicED {
			return gt, fmt.Errorf("ParseGridType(%q): recognised but not buildable: %w", s, ErrUnsupportedGridType)
		}

		return gt, nil
	}

	return "", fmt.Errorf("ParseGridType(%q): %w", s, ErrUnsupportedGridType)
}

// Refined is the sub-cell point set of a tile.
type Refined struct {
	NX, NY int
	// Lon, Lat are point coordinates in radians, row-major NY×NX.
	Lon, Lat []float64
	// XYZ are the points on the unit sphere.
	XYZ []sphere.Vec3
	// VLon, VLat are the eastward and northward unit tangents.
	VLon, VLat []sphere.Vec3
}

// RegularAxes are the 1-D coordinates of a regular lon/lat tile (radians).
type RegularAxes struct {
	LonC, LatC []float64 // corners: NX+1, NY+1
	LonT, LatT []float64 // centres: NX, NY
}

// Tile is one logically rectangular patch of a (possibly multi-tile) grid.
// A Tile is read-only once returned by a builder.
type Tile struct {
	ID   int      // 1-based position within its mosaic
	Name string   // e.g. "tile1"
	Type GridType // construction recipe

	NX, NY     int // cells along x and y
	IOff, JOff int // global index of local cell (0,0)

	// Lon, Lat are corner coordinates in radians, row-major (NY+1)×(NX+1).
	Lon, Lat []float64
	// LonT, LatT are cell centres in radians, row-major NY×NX.
	LonT, LatT []float64
	// Area holds cell areas in m², row-major NY×NX.
	Area []float64
	// Arc is the edge type between corners.
	Arc sphere.Arc
	// Mask marks valid cells (> 0.5); nil means every cell is valid.
	Mask []float64
	// XYZ are optional corner positions on the unit sphere.
	XYZ []sphere.Vec3
	// Axes is set for regular lon/lat tiles.
	Axes *RegularAxes
	// Refined is set when the mode needs refinement.
	Refined *Refined
}
