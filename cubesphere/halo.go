// SPDX-License-Identifier: MIT

package cubesphere

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/sphgrid/field"
)

// Halo index mapping
//
// For halo line d (1..width) outside edge e of a tile, the descriptor names
// the neighbour and its edge E. Position p along e reads position q along E:
//
//	q = p              (Reverse == false)
//	q = length-1-p     (Reverse == true)
//
// and the source line is the d-th interior line inside E, counted from the
// edge. Staggered fields own the shared edge line themselves, so the count
// starts one line further in (ioff or joff). A swapped edge reads the pair
// snapshot, whose extents are transposed.

// snapshot is a frozen copy of one tile's interior.
type snapshot struct {
	nx, ny     int
	ioff, joff int
	v          []float64
}

func (s *snapshot) at(i, j int) float64 { return s.v[j*s.nx+i] }

// exchange holds the validated inputs of one halo pass.
type exchange struct {
	n     int
	width int
	opts  Options
	data1 []*field.Field
	data2 []*field.Field
	// frozen interiors, filled in phase 1
	snap1, snap2 []*snapshot
}

// newExchange validates the tile fields and derives the tile size n.
func newExchange(width int, interior []*field.Field, opts ...Option) (*exchange, error) {
	o := gatherOptions(opts...)
	if len(interior) != NumTiles {
		return nil, fmt.Errorf("got %d tiles, want %d: %w", len(interior), NumTiles, ErrShapeMismatch)
	}
	if interior[0] == nil {
		return nil, fmt.Errorf("tile 1 is nil: %w", ErrShapeMismatch)
	}
	n := interior[0].NX() - o.ioff
	if n < 1 {
		return nil, fmt.Errorf("tile size %d: %w", n, ErrShapeMismatch)
	}
	if err := checkTiles("field", interior, n+o.ioff, n+o.joff); err != nil {
		return nil, err
	}
	pair := o.pair
	if pair == nil {
		if o.ioff != o.joff {
			return nil, fmt.Errorf("stagger (%d,%d) needs a pair field: %w", o.ioff, o.joff, ErrShapeMismatch)
		}
		pair = interior
	}
	if err := checkTiles("pair", pair, n+o.joff, n+o.ioff); err != nil {
		return nil, err
	}
	if width < 0 || width > n {
		return nil, fmt.Errorf("width %d for tile size %d: %w", width, n, ErrInvalidWidth)
	}

	return &exchange{
		n: n, width: width, opts: o,
		data1: interior, data2: pair,
		snap1: make([]*snapshot, NumTiles),
		snap2: make([]*snapshot, NumTiles),
	}, nil
}

func checkTiles(name string, fs []*field.Field, nx, ny int) error {
	if len(fs) != NumTiles {
		return fmt.Errorf("%s: got %d tiles, want %d: %w", name, len(fs), NumTiles, ErrShapeMismatch)
	}
	for k, f := range fs {
		if f == nil || f.NX() != nx || f.NY() != ny {
			return fmt.Errorf("%s: tile %d is not %dx%d: %w", name, k+1, nx, ny, ErrShapeMismatch)
		}
	}

	return nil
}

// freeze copies tile t's interiors (0-based) into the snapshots.
func (x *exchange) freeze(t int) {
	o := x.opts
	x.snap1[t] = &snapshot{nx: x.n + o.ioff, ny: x.n + o.joff, ioff: o.ioff, joff: o.joff, v: x.data1[t].Interior()}
	x.snap2[t] = &snapshot{nx: x.n + o.joff, ny: x.n + o.ioff, ioff: o.joff, joff: o.ioff, v: x.data2[t].Interior()}
}

// fill builds tile t's (0-based) haloed field from the snapshots.
// Implementation:
//   - Stage 1: copy the interior.
//   - Stage 2: for each edge, copy depth-d lines of the neighbour named by
//     the descriptor, reading the pair snapshot across swapped edges.
//   - Stage 3: fill the four corner blocks.
//
// Complexity: O(n·width).
func (x *exchange) fill(t int) (*field.Field, error) {
	own := x.snap1[t]
	nxp, nyp := own.nx, own.ny
	base, err := field.FromSlice(nxp, nyp, own.v)
	if err != nil {
		return nil, err
	}
	out, err := base.WithHalo(x.width)
	if err != nil {
		return nil, err
	}

	for e := West; e <= North; e++ {
		d := topology[t][e]
		g := x.snap1[d.Neighbor-1]
		if d.Swap {
			g = x.snap2[d.Neighbor-1]
		}
		length := nyp
		if e.alongX() {
			length = nxp
		}
		for depth := 1; depth <= x.width; depth++ {
			for p := 0; p < length; p++ {
				q := p
				if d.Reverse {
					q = length - 1 - p
				}
				gi, gj := x.sourceIndex(g, d.NeighborEdge, depth, q)
				i, j := haloIndex(e, depth, p, nxp, nyp)
				if err = out.Set(i, j, g.at(gi, gj)); err != nil {
					return nil, err
				}
			}
		}
	}
	if err = x.fillCorners(out, nxp, nyp); err != nil {
		return nil, err
	}

	return out, nil
}

// sourceIndex locates the depth-th line inside the neighbour's edge,
// skipping the shared line of staggered fields.
func (x *exchange) sourceIndex(g *snapshot, e Edge, depth, q int) (int, int) {
	switch e {
	case West:
		return g.ioff + depth - 1, q
	case East:
		return x.n - depth, q
	case South:
		return q, g.joff + depth - 1
	default:
		return q, x.n - depth
	}
}

// haloIndex is the halo position at the given depth outside edge e.
func haloIndex(e Edge, depth, p, nxp, nyp int) (int, int) {
	switch e {
	case West:
		return -depth, p
	case East:
		return nxp - 1 + depth, p
	case South:
		return p, -depth
	default:
		return p, nyp - 1 + depth
	}
}

// fillCorners fills the four width×width corner blocks. Coordinates are
// taken relative to the south-west corner and mirrored for the others.
func (x *exchange) fillCorners(out *field.Field, nxp, nyp int) error {
	h := x.width
	for _, c := range [4]struct{ east, north bool }{{false, false}, {true, false}, {false, true}, {true, true}} {
		mi := func(v int) int {
			if c.east {
				return nxp - 1 - v
			}
			return v
		}
		mj := func(v int) int {
			if c.north {
				return nyp - 1 - v
			}
			return v
		}
		for a := 1; a <= h; a++ {
			for b := 1; b <= h; b++ {
				v := MissingValue
				if x.opts.corners == CornerAverage {
					w, err := out.At(mi(-b), mj(a-1))
					if err != nil {
						return err
					}
					s, err := out.At(mi(b-1), mj(-a))
					if err != nil {
						return err
					}
					v = 0.5 * (w + s)
				}
				if err := out.Set(mi(-a), mj(-b), v); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

// FillHalo returns a copy of tile's interior surrounded by a halo of the
// given width, filled from the neighbouring tiles of interior (indexed by
// tile id - 1).
//
// Errors:
//   - ErrInvalidTile: tile outside 1..6.
//   - ErrInvalidWidth: width < 0 or width > n.
//   - ErrShapeMismatch: wrong tile count or sizes, or a missing pair.
func FillHalo(tile TileID, width int, interior []*field.Field, opts ...Option) (*field.Field, error) {
	if !tile.valid() {
		return nil, fmt.Errorf("FillHalo(%d): %w", tile, ErrInvalidTile)
	}
	x, err := newExchange(width, interior, opts...)
	if err != nil {
		return nil, fmt.Errorf("FillHalo(%d): %w", tile, err)
	}
	for t := 0; t < NumTiles; t++ {
		x.freeze(t)
	}
	out, err := x.fill(int(tile) - 1)
	if err != nil {
		return nil, fmt.Errorf("FillHalo(%d): %w", tile, err)
	}

	return out, nil
}

// Exchange fills the halos of all six tiles. Every interior is snapshotted
// before any halo is written, so the result does not depend on goroutine
// scheduling.
//
// Errors: as FillHalo.
func Exchange(width int, interior []*field.Field, opts ...Option) ([]*field.Field, error) {
	x, err := newExchange(width, interior, opts...)
	if err != nil {
		return nil, fmt.Errorf("Exchange: %w", err)
	}
	log := x.opts.logger

	// phase 1: snapshot
	eg, _ := errgroup.WithContext(context.Background())
	for t := 0; t < NumTiles; t++ {
		eg.Go(func() error {
			x.freeze(t)
			return nil
		})
	}
	if err = eg.Wait(); err != nil {
		return nil, fmt.Errorf("Exchange: %w", err)
	}
	log.Debug("interiors frozen", zap.Int("n", x.n), zap.Int("width", width))

	// phase 2: fill
	out := make([]*field.Field, NumTiles)
	eg, _ = errgroup.WithContext(context.Background())
	for t := 0; t < NumTiles; t++ {
		eg.Go(func() error {
			f, ferr := x.fill(t)
			if ferr != nil {
				return fmt.Errorf("tile %d: %w", t+1, ferr)
			}
			out[t] = f
			return nil
		})
	}
	if err = eg.Wait(); err != nil {
		return nil, fmt.Errorf("Exchange: %w", err)
	}
	log.Debug("halos filled",
		zap.Int("tiles", NumTiles),
		zap.Int("ioff", x.opts.ioff), zap.Int("joff", x.opts.joff),
		zap.Bool("pair", x.opts.pair != nil))

	return out, nil
}
