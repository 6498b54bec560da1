// SPDX-License-Identifier: MIT

package xgrid

import (
	"cmp"
	"fmt"
	"slices"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/sphgrid/sphere"
)

// Record is one source/target cell overlap. Cell indices are global: they
// include the tile's IOff/JOff.
type Record struct {
	SrcTile int `yaml:"src_tile" toml:"src_tile"`
	SrcI    int `yaml:"src_i" toml:"src_i"`
	SrcJ    int `yaml:"src_j" toml:"src_j"`
	TgtTile int `yaml:"tgt_tile" toml:"tgt_tile"`
	TgtI    int `yaml:"tgt_i" toml:"tgt_i"`
	TgtJ    int `yaml:"tgt_j" toml:"tgt_j"`
	// Area of the overlap in m².
	Area float64 `yaml:"area" toml:"area"`
	// DLon, DLat locate the overlap centroid relative to the source cell
	// centroid (radians). Zero for order 1.
	DLon float64 `yaml:"dlon,omitempty" toml:"dlon,omitempty"`
	DLat float64 `yaml:"dlat,omitempty" toml:"dlat,omitempty"`
}

// compareRecords is the canonical order:
// (TgtTile, TgtJ, TgtI, SrcTile, SrcJ, SrcI).
func compareRecords(a, b Record) int {
	return cmp.Or(
		cmp.Compare(a.TgtTile, b.TgtTile),
		cmp.Compare(a.TgtJ, b.TgtJ),
		cmp.Compare(a.TgtI, b.TgtI),
		cmp.Compare(a.SrcTile, b.SrcTile),
		cmp.Compare(a.SrcJ, b.SrcJ),
		cmp.Compare(a.SrcI, b.SrcI),
	)
}

// TileMeta is what an exchange grid keeps of each tile. Per-cell slices are
// row-major NY×NX in local indices.
type TileMeta struct {
	ID         int
	NX, NY     int
	IOff, JOff int
	// CyclicX marks tiles that wrap around in longitude.
	CyclicX bool
	// Area holds the cell areas (m²) measured with the exchange grid's edge
	// type.
	Area []float64
	// CLon, CLat are cell centroids (radians). For order-2 sources they are
	// the area-weighted mean of the overlap centroids.
	CLon, CLat []float64
	// Mask is the source mask used by the build; nil means all valid.
	Mask []float64
}

// Cells returns NX*NY.
func (m *TileMeta) Cells() int { return m.NX * m.NY }

// local converts global cell indices to a row-major local index.
func (m *TileMeta) local(i, j int) (int, bool) {
	li, lj := i-m.IOff, j-m.JOff
	if li < 0 || lj < 0 || li >= m.NX || lj >= m.NY {
		return 0, false
	}

	return lj*m.NX + li, true
}

func (m *TileMeta) valid(k int) bool { return m.Mask == nil || m.Mask[k] > 0.5 }

func (m *TileMeta) check() error {
	n := m.Cells()
	if m.NX <= 0 || m.NY <= 0 || len(m.Area) != n || len(m.CLon) != n || len(m.CLat) != n {
		return fmt.Errorf("tile %d (%dx%d): %w", m.ID, m.NX, m.NY, ErrShapeMismatch)
	}
	if m.Mask != nil && len(m.Mask) != n {
		return fmt.Errorf("tile %d: mask has %d values: %w", m.ID, len(m.Mask), ErrShapeMismatch)
	}

	return nil
}

// XGrid is a complete exchange grid.
type XGrid struct {
	Order   int
	Arc     sphere.Arc
	Records []Record
	Src     []TileMeta
	Tgt     []TileMeta
}

// Assemble rebuilds an exchange grid from stored parts and checks that every
// record addresses existing cells. Records are put in canonical order.
// Errors:
//   - ErrInvalidOrder, ErrShapeMismatch.
func Assemble(order int, arc sphere.Arc, records []Record, src, tgt []TileMeta) (*XGrid, error) {
	if order != 1 && order != 2 {
		return nil, fmt.Errorf("Assemble: order %d: %w", order, ErrInvalidOrder)
	}
	x := &XGrid{Order: order, Arc: arc, Records: slices.Clone(records), Src: src, Tgt: tgt}
	for _, list := range [2][]TileMeta{src, tgt} {
		for k := range list {
			if err := list[k].check(); err != nil {
				return nil, fmt.Errorf("Assemble: %w", err)
			}
		}
	}
	si, ti := x.srcIndex(), x.tgtIndex()
	for n, r := range x.Records {
		s, ok1 := si[r.SrcTile]
		t, ok2 := ti[r.TgtTile]
		if !ok1 || !ok2 {
			return nil, fmt.Errorf("Assemble: record %d: tiles %d->%d: %w", n, r.SrcTile, r.TgtTile, ErrShapeMismatch)
		}
		_, ok1 = x.Src[s].local(r.SrcI, r.SrcJ)
		_, ok2 = x.Tgt[t].local(r.TgtI, r.TgtJ)
		if !ok1 || !ok2 {
			return nil, fmt.Errorf("Assemble: record %d: cell outside its tile: %w", n, ErrShapeMismatch)
		}
	}
	slices.SortFunc(x.Records, compareRecords)

	return x, nil
}

// TotalArea returns the sum of record areas (m²).
func (x *XGrid) TotalArea() float64 {
	a := make([]float64, len(x.Records))
	for k, r := range x.Records {
		a[k] = r.Area
	}

	return floats.Sum(a)
}

// srcIndex maps a source tile id to its position in Src.
func (x *XGrid) srcIndex() map[int]int { return metaIndex(x.Src) }

// tgtIndex maps a target tile id to its position in Tgt.
func (x *XGrid) tgtIndex() map[int]int { return metaIndex(x.Tgt) }

func metaIndex(ms []TileMeta) map[int]int {
	idx := make(map[int]int, len(ms))
	for k, m := range ms {
		idx[m.ID] = k
	}

	return idx
}
