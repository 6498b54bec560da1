// SPDX-License-Identifier: MIT

package domain

import (
	"fmt"
	"math"
)

// Domain2D is the decomposition of an nx×ny global index space over a
// px×py rank layout. It is immutable once built.
type Domain2D struct {
	NX, NY int
	Layout Layout
	XHalo  int
	YHalo  int
	X, Y   Axis

	cyclicX  bool
	tripolar bool
	ranks    []RankDomain
}

// Define builds a Domain2D.
// Implementation:
//   - Stage 1: resolve the layout (explicit, or DefineLayout under WithPEs).
//   - Stage 2: X = ComputeExtent(nx, px), Y = ComputeExtent(ny, py).
//   - Stage 3: validate the halos against the narrowest extent.
//   - Stage 4: rank r = j*px + i gets compute window (X[i], Y[j]) and data
//     window = compute expanded by (xhalo, yhalo).
//
// Errors:
//   - ErrInvalidDecomposition (wrapped with the offending arguments).
//
// Complexity:
//   - Time O(px·py), Space O(px·py).
func Define(nx, ny int, layout Layout, xhalo, yhalo int, opts ...Option) (*Domain2D, error) {
	o := gatherOptions(opts...)
	if layout == (Layout{}) && o.npes > 0 {
		l, err := DefineLayout(nx, ny, o.npes)
		if err != nil {
			return nil, err
		}
		layout = l
	}
	if layout.PX <= 0 || layout.PY <= 0 {
		return nil, fmt.Errorf("Define: layout %dx%d: %w", layout.PX, layout.PY, ErrInvalidDecomposition)
	}
	xs, err := ComputeExtent(nx, layout.PX)
	if err != nil {
		return nil, fmt.Errorf("Define: x axis: %w", err)
	}
	ys, err := ComputeExtent(ny, layout.PY)
	if err != nil {
		return nil, fmt.Errorf("Define: y axis: %w", err)
	}
	if xhalo < 0 || yhalo < 0 {
		return nil, fmt.Errorf("Define: halo (%d,%d): %w", xhalo, yhalo, ErrInvalidDecomposition)
	}
	if xhalo > xs.MinSize() || yhalo > ys.MinSize() {
		return nil, fmt.Errorf("Define: halo (%d,%d) wider than smallest extent (%d,%d): %w",
			xhalo, yhalo, xs.MinSize(), ys.MinSize(), ErrInvalidDecomposition)
	}

	d := &Domain2D{
		NX: nx, NY: ny,
		Layout: layout,
		XHalo:  xhalo, YHalo: yhalo,
		X: xs, Y: ys,
		cyclicX:  o.cyclicX,
		tripolar: o.tripolar,
		ranks:    make([]RankDomain, 0, layout.NumRanks()),
	}
	for j := 0; j < layout.PY; j++ {
		for i := 0; i < layout.PX; i++ {
			c := Window{IS: xs[i].Begin, IE: xs[i].End, JS: ys[j].Begin, JE: ys[j].End}
			d.ranks = append(d.ranks, RankDomain{
				Rank:    j*layout.PX + i,
				I:       i,
				J:       j,
				Compute: c,
				Data:    c.Expand(xhalo, yhalo),
			})
		}
	}

	return d, nil
}

// NumRanks returns px*py.
func (d *Domain2D) NumRanks() int { return len(d.ranks) }

// CyclicX reports whether x wraps.
func (d *Domain2D) CyclicX() bool { return d.cyclicX }

// Tripolar reports whether the northern seam folds.
func (d *Domain2D) Tripolar() bool { return d.tripolar }

// Rank returns rank r's windows.
func (d *Domain2D) Rank(r int) (RankDomain, error) {
	if r < 0 || r >= len(d.ranks) {
		return RankDomain{}, fmt.Errorf("Domain2D.Rank(%d): %w", r, ErrRankOutOfRange)
	}

	return d.ranks[r], nil
}

// Ranks returns a copy of every rank's windows in rank order.
func (d *Domain2D) Ranks() []RankDomain {
	return append([]RankDomain(nil), d.ranks...)
}

// Wrap resolves a possibly out-of-range global index to the owning global
// index under the domain's seam rules. ok is false across closed boundaries.
//   - x: indices outside [0, nx) wrap modulo nx when cyclic.
//   - south (j < 0): always closed.
//   - north (j >= ny): closed, unless tripolar, where (i, ny+k) maps to
//     (nx-1-i, ny-1-k) after the x wrap.
func (d *Domain2D) Wrap(i, j int) (gi, gj int, ok bool) {
	gi, gj = i, j
	if gi < 0 || gi >= d.NX {
		if !d.cyclicX {
			return 0, 0, false
		}
		gi = ((gi % d.NX) + d.NX) % d.NX
	}
	if gj < 0 {
		return 0, 0, false
	}
	if gj >= d.NY {
		if !d.tripolar {
			return 0, 0, false
		}
		gj = 2*d.NY - 1 - gj
		gi = d.NX - 1 - gi
		if gj < 0 {
			return 0, 0, false
		}
	}

	return gi, gj, true
}

// Owner returns the rank whose compute window holds (i, j) after Wrap, or -1.
func (d *Domain2D) Owner(i, j int) int {
	gi, gj, ok := d.Wrap(i, j)
	if !ok {
		return -1
	}
	pi, pj := d.X.Find(gi), d.Y.Find(gj)
	if pi < 0 || pj < 0 {
		return -1
	}

	return pj*d.Layout.PX + pi
}

// Neighbors returns the ranks owning the cells just outside rank r's compute
// window, probed at the window's low corner on each side.
func (d *Domain2D) Neighbors(r int) (Neighbors, error) {
	rd, err := d.Rank(r)
	if err != nil {
		return Neighbors{}, err
	}
	c := rd.Compute

	return Neighbors{
		West:  d.Owner(c.IS-1, c.JS),
		East:  d.Owner(c.IE+1, c.JS),
		South: d.Owner(c.IS, c.JS-1),
		North: d.Owner(c.IS, c.JE+1),
	}, nil
}

// DefineLayout picks px×py = npes with px/py close to nx/ny: px starts at
// round(sqrt(npes·nx/ny)) and decreases until it divides npes.
// Errors:
//   - ErrInvalidDecomposition for non-positive inputs, or when the layout
//     would put more divisions on an axis than it has points.
func DefineLayout(nx, ny, npes int) (Layout, error) {
	if nx <= 0 || ny <= 0 || npes <= 0 {
		return Layout{}, fmt.Errorf("DefineLayout(%d,%d,%d): %w", nx, ny, npes, ErrInvalidDecomposition)
	}
	px := int(math.Round(math.Sqrt(float64(npes) * float64(nx) / float64(ny))))
	px = max(px, 1)
	px = min(px, npes)
	for npes%px != 0 {
		px--
	}
	l := Layout{PX: px, PY: npes / px}
	if l.PX > nx || l.PY > ny {
		return Layout{}, fmt.Errorf("DefineLayout(%d,%d,%d): layout %dx%d: %w", nx, ny, npes, l.PX, l.PY, ErrInvalidDecomposition)
	}

	return l, nil
}
