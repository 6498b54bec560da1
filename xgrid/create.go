// SPDX-License-Identifier: MIT

package xgrid

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/sphgrid/grid"
	"github.com/katalvlaran/sphgrid/sphere"
)

// Exchange grid construction
//
// Description:
//
//	The exchange grid is the set of non-empty intersections between source
//	and target cells. Each intersection becomes a Record carrying both cell
//	indices and the overlap area; order 2 adds the offset of the overlap
//	centroid from its source cell centroid.
//
// Algorithm Outline:
//  1. Choose the edge type: great circles when any tile uses them, lon/lat
//     segments otherwise. Both sides are measured with that edge type.
//  2. Prepare every valid cell: polygon, area, centroid and a padded lon/lat
//     box. Masked source cells are skipped.
//  3. Index source boxes (R-tree by default, brute force on request).
//  4. For each target cell query the index at longitude offsets -2π, 0, +2π
//     so cells on opposite sides of the seam still meet, then clip against
//     every candidate.
//  5. Merge pieces of the same source cell found at different offsets and
//     drop slivers: area <= AreaRatio·min(source area, target area).
//  6. For order 2, move each source centroid to the area-weighted mean of
//     its overlap centroids, then store DLon/DLat per record.
//  7. Sort records canonically: target tile, j, i, then source tile, j, i.
//
// Concurrency:
//
//	Target rows are independent tasks in an errgroup limited to Workers.
//	Each task writes only its own result slot, so the output does not
//	depend on the worker count or scheduling.
//
// Coverage:
//
//	Target cells that no record reaches are counted per tile and logged
//	once as a warning. They are not an error: partial sources are valid.

// seamOffsets are the longitude shifts applied to every target box query.
var seamOffsets = [3]float64{-sphere.TwoPi, 0, sphere.TwoPi}

// piece is a record under construction with its absolute overlap centroid.
type piece struct {
	rec      Record
	src      *cell
	lon, lat float64
}

// CreateXGrid returns the overlap records between src and tgt. mask, when
// non-nil, overrides src.Mask.
//
// Errors:
//   - ErrInvalidOrder: order not 1 or 2.
//   - ErrShapeMismatch: mask length differs from the source cell count, or
//     inconsistent tile arrays.
//   - ErrDegenerateGeometry: a valid cell that cannot be used.
func CreateXGrid(src, tgt *grid.Tile, mask []float64, order int, opts ...Option) ([]Record, error) {
	opts = append(opts, WithOrder(order))
	if mask != nil {
		opts = append(opts, WithMask(mask))
	}
	x, err := Create(src, tgt, opts...)
	if err != nil {
		return nil, err
	}

	return x.Records, nil
}

// Create builds the exchange grid between one source and one target tile.
// Errors: as CreateXGrid.
func Create(src, tgt *grid.Tile, opts ...Option) (*XGrid, error) {
	if src == nil || tgt == nil {
		return nil, fmt.Errorf("Create: nil tile: %w", ErrShapeMismatch)
	}

	return CreateMosaic([]*grid.Tile{src}, []*grid.Tile{tgt}, opts...)
}

// CreateMosaic builds one exchange grid covering every source/target tile
// pair. Tile ids must be unique within each list. WithMask applies only
// when there is a single source tile.
//
// Implementation:
//   - Stage 1: validate and prepare source and target cell polygons.
//   - Stage 2: index source boxes.
//   - Stage 3: workers take target rows; each clips its target cells
//     against the candidates and keeps a private piece list.
//   - Stage 4: concatenate, derive order-2 centroids, sort canonically.
//
// Complexity: O(Ntgt·(log Nsrc + k)) clips with k candidates per cell.
func CreateMosaic(srcs, tgts []*grid.Tile, opts ...Option) (*XGrid, error) {
	o := gatherOptions(opts...)
	log := o.logger
	if o.order != 1 && o.order != 2 {
		return nil, fmt.Errorf("CreateMosaic: order %d: %w", o.order, ErrInvalidOrder)
	}
	if len(srcs) == 0 || len(tgts) == 0 {
		return nil, fmt.Errorf("CreateMosaic: %d source and %d target tiles: %w", len(srcs), len(tgts), ErrShapeMismatch)
	}
	if o.mask != nil && len(srcs) != 1 {
		return nil, fmt.Errorf("CreateMosaic: a mask needs exactly one source tile: %w", ErrShapeMismatch)
	}
	for _, t := range append(slices.Clone(srcs), tgts...) {
		if t == nil {
			return nil, fmt.Errorf("CreateMosaic: nil tile: %w", ErrShapeMismatch)
		}
	}
	arc := chooseArc(srcs, tgts, o.arc)

	// Stage 1
	sp, err := prepareAll("source", srcs, arc, o.mask, true)
	if err != nil {
		return nil, err
	}
	tp, err := prepareAll("target", tgts, arc, nil, false)
	if err != nil {
		return nil, err
	}

	// Stage 2
	var idx index
	if o.search == SearchBruteForce {
		idx = newBruteIndex(sp)
	} else {
		idx = newTreeIndex(sp)
	}

	// Stage 3
	type task struct{ tile, j int }
	var tasks []task
	for t, p := range tp {
		for j := 0; j < p.tile.NY; j++ {
			tasks = append(tasks, task{t, j})
		}
	}
	results := make([][]piece, len(tasks))
	eg, egCtx := errgroup.WithContext(o.ctx)
	eg.SetLimit(o.workers)
	for n, tk := range tasks {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			p := tp[tk.tile]
			var row []piece
			for i := 0; i < p.tile.NX; i++ {
				tc := p.cells[p.tile.CellIndex(i, tk.j)]
				row = append(row, overlaps(tc, idx, arc, o.areaRatio)...)
			}
			results[n] = row
			return nil
		})
	}
	if err = eg.Wait(); err != nil {
		return nil, fmt.Errorf("CreateMosaic: %w", err)
	}

	// Stage 4
	var pieces []piece
	for _, r := range results {
		pieces = append(pieces, r...)
	}
	x := &XGrid{Order: o.order, Arc: arc, Src: metas(sp), Tgt: metas(tp)}
	if o.order == 2 {
		sourceCentroids(x, pieces)
	}
	x.Records = make([]Record, len(pieces))
	for k, pc := range pieces {
		r := pc.rec
		if o.order == 2 {
			m := &x.Src[pc.src.tile]
			r.DLon = sphere.Unwrap(pc.lon, m.CLon[pc.src.k]) - m.CLon[pc.src.k]
			r.DLat = pc.lat - m.CLat[pc.src.k]
		}
		x.Records[k] = r
	}
	slices.SortFunc(x.Records, compareRecords)

	logCoverage(log, x)
	log.Debug("exchange grid built",
		zap.Int("order", o.order),
		zap.Stringer("arc", arc),
		zap.Int("source_tiles", len(srcs)),
		zap.Int("target_tiles", len(tgts)),
		zap.Int("records", len(x.Records)),
		zap.Int("workers", o.workers))

	return x, nil
}

// chooseArc prefers great circles whenever one side has them.
func chooseArc(srcs, tgts []*grid.Tile, force *sphere.Arc) sphere.Arc {
	if force != nil {
		return *force
	}
	for _, list := range [2][]*grid.Tile{srcs, tgts} {
		for _, t := range list {
			if t.Arc == sphere.ArcGreatCircle {
				return sphere.ArcGreatCircle
			}
		}
	}

	return sphere.ArcLonLat
}

// prepareAll prepares a tile list. Only sources honour masks; every target
// cell is prepared and validated.
func prepareAll(role string, tiles []*grid.Tile, arc sphere.Arc, mask []float64, masked bool) ([]*prepared, error) {
	out := make([]*prepared, len(tiles))
	seen := make(map[int]bool, len(tiles))
	for k, t := range tiles {
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("CreateMosaic: %s: %w: %w", role, ErrShapeMismatch, err)
		}
		if seen[t.ID] {
			return nil, fmt.Errorf("CreateMosaic: %s tile id %d repeated: %w", role, t.ID, ErrShapeMismatch)
		}
		seen[t.ID] = true
		m := mask
		switch {
		case !masked:
			m = nil
		case m == nil:
			m = t.Mask
		case len(m) != t.Cells():
			return nil, fmt.Errorf("CreateMosaic: mask has %d values for %d cells: %w", len(m), t.Cells(), ErrShapeMismatch)
		}
		p, err := prepareTile(k, t, arc, m)
		if err != nil {
			return nil, fmt.Errorf("CreateMosaic: %s: %w", role, err)
		}
		out[k] = p
	}

	return out, nil
}

// overlaps clips one target cell against its candidates. Pieces of the same
// source cell found at different seam offsets are merged.
func overlaps(tc *cell, idx index, arc sphere.Arc, ratio float64) []piece {
	type acc struct {
		src          *cell
		area, ml, mp float64
	}
	var (
		accs  []*acc
		bySrc = make(map[*cell]*acc)
	)
	add := func(sc *cell, area, lon, lat float64) {
		a := bySrc[sc]
		if a == nil {
			a = &acc{src: sc}
			bySrc[sc] = a
			accs = append(accs, a)
		}
		lon = sphere.Unwrap(lon, sc.clon)
		a.area += area
		a.ml += area * lon
		a.mp += area * lat
	}

	offsets := seamOffsets[:]
	if tc.box.FullLon() {
		offsets = []float64{0}
	}
	if arc == sphere.ArcGreatCircle {
		seen := make(map[*cell]bool)
		var cands []*cell
		for _, off := range offsets {
			for _, sc := range idx.search(tc.box.Shift(off)) {
				if !seen[sc] {
					seen[sc] = true
					cands = append(cands, sc)
				}
			}
		}
		sortCells(cands)
		for _, sc := range cands {
			pc := sphere.Clip(sc.gc, tc.gc)
			if pc == nil {
				continue
			}
			lon, lat := sphere.XYZToLonLat(pc.Centroid())
			add(sc, pc.Area(), lon, lat)
		}
	} else {
		for _, off := range offsets {
			cands := idx.search(tc.box.Shift(off))
			sortCells(cands)
			var shifted sphere.LonLatPolygon
			for _, sc := range cands {
				if shifted == nil {
					shifted = tc.ll.Shift(off)
				}
				pc := sphere.ClipLonLat(sc.ll, shifted)
				if pc == nil {
					continue
				}
				ctr := pc.Centroid()
				add(sc, pc.Area(), ctr.Lon, ctr.Lat)
			}
		}
	}

	out := make([]piece, 0, len(accs))
	for _, a := range accs {
		if !(a.area > ratio*math.Min(a.src.area, tc.area)) {
			continue
		}
		out = append(out, piece{
			rec: Record{
				SrcTile: a.src.id, SrcI: a.src.i, SrcJ: a.src.j,
				TgtTile: tc.id, TgtI: tc.i, TgtJ: tc.j,
				Area: a.area * sphere.EarthRadius * sphere.EarthRadius,
			},
			src: a.src,
			lon: a.ml / a.area,
			lat: a.mp / a.area,
		})
	}

	return out
}

func sortCells(cs []*cell) {
	slices.SortFunc(cs, func(a, b *cell) int {
		return cmp.Or(cmp.Compare(a.tile, b.tile), cmp.Compare(a.k, b.k))
	})
}

func metas(ps []*prepared) []TileMeta {
	out := make([]TileMeta, len(ps))
	for k, p := range ps {
		out[k] = p.meta
	}

	return out
}

// sourceCentroids replaces source centroids by the area-weighted mean of
// their overlap centroids, so that Σ area·(DLon, DLat) = 0 per source cell.
func sourceCentroids(x *XGrid, pieces []piece) {
	type acc struct{ a, ml, mp float64 }
	sums := make(map[*cell]*acc)
	for _, pc := range pieces {
		s := sums[pc.src]
		if s == nil {
			s = &acc{}
			sums[pc.src] = s
		}
		a := pc.rec.Area
		s.a += a
		s.ml += a * sphere.Unwrap(pc.lon, pc.src.clon)
		s.mp += a * pc.lat
	}
	for c, s := range sums {
		m := &x.Src[c.tile]
		m.CLon[c.k] = s.ml / s.a
		m.CLat[c.k] = s.mp / s.a
	}
}

// logCoverage warns about target cells that no record reaches.
func logCoverage(log *zap.Logger, x *XGrid) {
	covered := make(map[[3]int]bool, len(x.Records))
	for _, r := range x.Records {
		covered[[3]int{r.TgtTile, r.TgtI, r.TgtJ}] = true
	}
	for _, m := range x.Tgt {
		missing := 0
		first := [2]int{-1, -1}
		for j := 0; j < m.NY; j++ {
			for i := 0; i < m.NX; i++ {
				if !covered[[3]int{m.ID, m.IOff + i, m.JOff + j}] {
					if missing == 0 {
						first = [2]int{m.IOff + i, m.JOff + j}
					}
					missing++
				}
			}
		}
		if missing > 0 {
			log.Warn("target cells without overlap",
				zap.Int("tile", m.ID),
				zap.Int("cells", missing),
				zap.Ints("first", first[:]))
		}
	}
}
