// SPDX-License-Identifier: MIT

package xgrid

import (
	"fmt"
	"math"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/index/rtree"

	"github.com/katalvlaran/sphgrid/grid"
	"github.com/katalvlaran/sphgrid/sphere"
)

// cell is a prepared grid cell: its polygon in the build's edge type and
// its lon/lat box. The embedded geom.Geom is the padded box the R-tree
// indexes.
type cell struct {
	geom.Geom
	tile int // position in the source or target tile list
	id   int // tile id
	i, j int // global indices
	k    int // local row-major index
	gc   sphere.Polygon
	ll   sphere.LonLatPolygon
	box  sphere.Box
	area float64 // steradians
	clon float64
	clat float64
}

// prepared holds the cells of one tile.
type prepared struct {
	tile  *grid.Tile
	meta  TileMeta
	cells []*cell // nil entries for masked cells
}

// prepareTile builds the polygons of every valid cell of t.
// Errors:
//   - ErrDegenerateGeometry wrapped with the tile id and cell.
func prepareTile(pos int, t *grid.Tile, arc sphere.Arc, mask []float64) (*prepared, error) {
	n := t.Cells()
	p := &prepared{
		tile:  t,
		cells: make([]*cell, n),
		meta: TileMeta{
			ID: t.ID, NX: t.NX, NY: t.NY, IOff: t.IOff, JOff: t.JOff,
			CyclicX: isCyclic(t),
			Area:    make([]float64, n),
			CLon:    make([]float64, n),
			CLat:    make([]float64, n),
			Mask:    mask,
		},
	}
	for j := 0; j < t.NY; j++ {
		for i := 0; i < t.NX; i++ {
			k := t.CellIndex(i, j)
			if mask != nil && mask[k] <= 0.5 {
				if t.LonT != nil {
					p.meta.CLon[k], p.meta.CLat[k] = t.LonT[k], t.LatT[k]
				}
				continue
			}
			c, err := newCell(t, i, j, arc)
			if err != nil {
				return nil, err
			}
			c.tile, c.k = pos, k
			p.cells[k] = c
			p.meta.Area[k] = c.area * sphere.EarthRadius * sphere.EarthRadius
			p.meta.CLon[k], p.meta.CLat[k] = c.clon, c.clat
		}
	}

	return p, nil
}

func newCell(t *grid.Tile, i, j int, arc sphere.Arc) (*cell, error) {
	c := &cell{id: t.ID, i: t.IOff + i, j: t.JOff + j}
	wrap := func(err error) error {
		return fmt.Errorf("tile %d cell (%d,%d): %w", t.ID, c.i, c.j, err)
	}
	var err error
	if arc == sphere.ArcLonLat {
		lons, lats := t.CellCorners(i, j)
		// one 2π shift for the whole cell puts the first corner in [0, 2π)
		ref := math.Mod(lons[0], sphere.TwoPi)
		if ref < 0 {
			ref += sphere.TwoPi
		}
		shift := ref - lons[0]
		for k := range lons {
			lons[k] += shift
		}
		if c.ll, err = sphere.NewLonLatPolygon(lons[:], lats[:]); err != nil {
			return nil, wrap(err)
		}
		c.area = c.ll.Area()
		ctr := c.ll.Centroid()
		c.clon, c.clat = ctr.Lon, ctr.Lat
		c.box = c.ll.Bounds()
	} else {
		if t.XYZ != nil {
			vs := []sphere.Vec3{
				t.XYZ[t.CornerIndex(i, j)], t.XYZ[t.CornerIndex(i+1, j)],
				t.XYZ[t.CornerIndex(i+1, j+1)], t.XYZ[t.CornerIndex(i, j+1)],
			}
			c.gc, err = sphere.PolygonFromXYZ(vs)
		} else {
			lons, lats := t.CellCorners(i, j)
			c.gc, err = sphere.NewPolygon(lons[:], lats[:])
		}
		if err != nil {
			return nil, wrap(err)
		}
		c.area = c.gc.Area()
		c.clon, c.clat = sphere.XYZToLonLat(c.gc.Centroid())
		c.box = c.gc.Bounds()
	}
	b := c.box.Pad(boxPad)
	c.Geom = &geom.Bounds{
		Min: geom.Point{X: b.MinLon, Y: b.MinLat},
		Max: geom.Point{X: b.MaxLon, Y: b.MaxLat},
	}

	return c, nil
}

// isCyclic reports whether a tile closes on itself in longitude.
func isCyclic(t *grid.Tile) bool {
	if t.Axes == nil || len(t.Axes.LonC) < 2 {
		return false
	}
	span := t.Axes.LonC[len(t.Axes.LonC)-1] - t.Axes.LonC[0]

	return math.Abs(math.Abs(span)-sphere.TwoPi) < 1e-9
}

// index finds source cells whose box meets a query box.
type index interface {
	search(b sphere.Box) []*cell
}

// treeIndex is an R-tree over padded source boxes.
type treeIndex struct{ tree *rtree.Rtree }

func newTreeIndex(srcs []*prepared) *treeIndex {
	tree := rtree.NewTree(25, 50)
	for _, p := range srcs {
		for _, c := range p.cells {
			if c != nil {
				tree.Insert(c)
			}
		}
	}

	return &treeIndex{tree: tree}
}

func (x *treeIndex) search(b sphere.Box) []*cell {
	hits := x.tree.SearchIntersect(&geom.Bounds{
		Min: geom.Point{X: b.MinLon, Y: b.MinLat},
		Max: geom.Point{X: b.MaxLon, Y: b.MaxLat},
	})
	out := make([]*cell, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.(*cell))
	}

	return out
}

// bruteIndex tests every source cell.
type bruteIndex struct{ cells []*cell }

func newBruteIndex(srcs []*prepared) *bruteIndex {
	var all []*cell
	for _, p := range srcs {
		for _, c := range p.cells {
			if c != nil {
				all = append(all, c)
			}
		}
	}

	return &bruteIndex{cells: all}
}

func (x *bruteIndex) search(b sphere.Box) []*cell {
	var out []*cell
	for _, c := range x.cells {
		if c.box.Pad(boxPad).Overlaps(b) {
			out = append(out, c)
		}
	}

	return out
}
