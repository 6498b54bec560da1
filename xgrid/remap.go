// SPDX-License-Identifier: MIT

package xgrid

import (
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/sphgrid/sphere"
)

// Remapping
//
// Description:
//
//	A remap is a sparse sum over the exchange grid records:
//	out[t] = Σ area·value / divisor. With NormalizeDestArea the divisor is
//	the target cell area, which makes the remap conservative:
//	Σ out·area_t = Σ src·area_s over the covered cells. NormalizeFraction
//	divides by the covered part only, so partially covered cells keep the
//	range of their sources.
//
// Second order:
//  1. Fit (∂f/∂λ, ∂f/∂φ) for each source cell by least squares over its
//     Conn4 or Conn8 neighbours.
//  2. Optionally limit each gradient so no overlap value leaves the range
//     spanned by the cell and its neighbours.
//  3. Evaluate f + g·(DLon, DLat) at every overlap centroid. Because the
//     source centroid is the area mean of its overlap centroids, the
//     gradient terms of one source cell sum to zero and conservation holds.
//
// Vectors:
//
//	Tangent vectors are lifted to 3-D, remapped per Cartesian component
//	and projected back on the target's local basis. This avoids the pole
//	singularity of remapping u and v directly.

// Remap interpolates source fields (one slice per source tile, in Src order,
// row-major local indices) onto the target tiles.
//
// Order 1: out = Σ area·src / divisor.
// Order 2: each overlap uses src + g·(DLon, DLat), with g the least-squares
// gradient of the source cell from its stencil neighbours.
//
// Uncovered target cells get the fill value (WithFillValue).
//
// Errors:
//   - ErrShapeMismatch: wrong tile count or field length.
func (x *XGrid) Remap(src [][]float64, opts ...Option) ([][]float64, error) {
	o := gatherOptions(opts...)
	if err := x.checkFields("Remap", src); err != nil {
		return nil, err
	}
	var grads [][][2]float64
	if x.Order == 2 {
		grads = x.gradients(src, o)
	}
	si, ti := x.srcIndex(), x.tgtIndex()

	sum := make([][]float64, len(x.Tgt))
	cov := make([][]float64, len(x.Tgt))
	for t, m := range x.Tgt {
		sum[t] = make([]float64, m.Cells())
		cov[t] = make([]float64, m.Cells())
	}
	for _, r := range x.Records {
		s, t := si[r.SrcTile], ti[r.TgtTile]
		ks, _ := x.Src[s].local(r.SrcI, r.SrcJ)
		kt, _ := x.Tgt[t].local(r.TgtI, r.TgtJ)
		v := src[s][ks]
		if grads != nil {
			g := grads[s][ks]
			v += g[0]*r.DLon + g[1]*r.DLat
		}
		sum[t][kt] += r.Area * v
		cov[t][kt] += r.Area
	}

	out := make([][]float64, len(x.Tgt))
	for t, m := range x.Tgt {
		out[t] = make([]float64, m.Cells())
		for k := range out[t] {
			switch {
			case cov[t][k] == 0:
				out[t][k] = o.fill
			case o.norm == NormalizeFraction:
				out[t][k] = sum[t][k] / cov[t][k]
			default:
				out[t][k] = sum[t][k] / m.Area[k]
			}
		}
	}

	return out, nil
}

// RemapTile is Remap for a single source and a single target tile.
// Errors: as Remap.
func (x *XGrid) RemapTile(src []float64, opts ...Option) ([]float64, error) {
	if len(x.Src) != 1 || len(x.Tgt) != 1 {
		return nil, fmt.Errorf("RemapTile: %d source, %d target tiles: %w", len(x.Src), len(x.Tgt), ErrShapeMismatch)
	}
	out, err := x.Remap([][]float64{src}, opts...)
	if err != nil {
		return nil, err
	}

	return out[0], nil
}

// Coverage returns, per target cell, the covered fraction of its area.
func (x *XGrid) Coverage() [][]float64 {
	ti := x.tgtIndex()
	out := make([][]float64, len(x.Tgt))
	for t, m := range x.Tgt {
		out[t] = make([]float64, m.Cells())
	}
	for _, r := range x.Records {
		t := ti[r.TgtTile]
		k, _ := x.Tgt[t].local(r.TgtI, r.TgtJ)
		out[t][k] += r.Area
	}
	for t, m := range x.Tgt {
		for k := range out[t] {
			out[t][k] /= m.Area[k]
		}
	}

	return out
}

// RemapVector remaps a tangent vector field given by its eastward (u) and
// northward (v) components. Each source vector is lifted to 3-D with the
// local basis at the source centroid, the Cartesian components are
// remapped, and the result is projected onto the target basis.
// Errors: as Remap.
func (x *XGrid) RemapVector(u, v [][]float64, opts ...Option) (uo, vo [][]float64, err error) {
	if err = x.checkFields("RemapVector", u); err != nil {
		return nil, nil, err
	}
	if err = x.checkFields("RemapVector", v); err != nil {
		return nil, nil, err
	}
	var comps [3][][]float64
	for c := range comps {
		comps[c] = make([][]float64, len(x.Src))
	}
	for s, m := range x.Src {
		for c := range comps {
			comps[c][s] = make([]float64, m.Cells())
		}
		for k := 0; k < m.Cells(); k++ {
			elon, elat := sphere.UnitVectors(m.CLon[k], m.CLat[k])
			w := sphere.TangentToXYZ(u[s][k], v[s][k], elon, elat)
			comps[0][s][k], comps[1][s][k], comps[2][s][k] = w.X, w.Y, w.Z
		}
	}
	var res [3][][]float64
	for c := range comps {
		if res[c], err = x.Remap(comps[c], opts...); err != nil {
			return nil, nil, err
		}
	}
	uo = make([][]float64, len(x.Tgt))
	vo = make([][]float64, len(x.Tgt))
	for t, m := range x.Tgt {
		uo[t] = make([]float64, m.Cells())
		vo[t] = make([]float64, m.Cells())
		for k := 0; k < m.Cells(); k++ {
			elon, elat := sphere.UnitVectors(m.CLon[k], m.CLat[k])
			w := sphere.Vec3{X: res[0][t][k], Y: res[1][t][k], Z: res[2][t][k]}
			uo[t][k], vo[t][k] = sphere.XYZToTangent(w, elon, elat)
		}
	}

	return uo, vo, nil
}

func (x *XGrid) checkFields(op string, src [][]float64) error {
	if len(src) != len(x.Src) {
		return fmt.Errorf("%s: %d fields for %d source tiles: %w", op, len(src), len(x.Src), ErrShapeMismatch)
	}
	for s, m := range x.Src {
		if len(src[s]) != m.Cells() {
			return fmt.Errorf("%s: tile %d field has %d values, want %d: %w", op, m.ID, len(src[s]), m.Cells(), ErrShapeMismatch)
		}
	}

	return nil
}

// gradients fits (∂/∂lon, ∂/∂lat) for every valid source cell.
// Implementation:
//   - rows (Δlon, Δlat) and right-hand side Δvalue for each valid stencil
//     neighbour (x wraps on cyclic tiles);
//   - mat.VecDense.SolveVec gives the least-squares solution; fewer than
//     two neighbours or a rank-deficient system yield a zero gradient;
//   - WithLimiter scales the gradient (Barth–Jespersen) so that no overlap
//     value leaves the range of the cell and its neighbours.
func (x *XGrid) gradients(src [][]float64, o Options) [][][2]float64 {
	offs := stencilOffsets[o.stencil]
	out := make([][][2]float64, len(x.Src))
	lo := make([][]float64, len(x.Src))
	hi := make([][]float64, len(x.Src))
	for s := range x.Src {
		m := &x.Src[s]
		out[s] = make([][2]float64, m.Cells())
		lo[s] = slices.Clone(src[s])
		hi[s] = slices.Clone(src[s])
		for j := 0; j < m.NY; j++ {
			for i := 0; i < m.NX; i++ {
				k := j*m.NX + i
				if !m.valid(k) {
					continue
				}
				var rows, rhs []float64
				for _, d := range offs {
					ni, nj := i+d[0], j+d[1]
					if m.CyclicX {
						ni = (ni%m.NX + m.NX) % m.NX
					}
					if ni < 0 || nj < 0 || ni >= m.NX || nj >= m.NY || (ni == i && nj == j) {
						continue
					}
					n := nj*m.NX + ni
					if !m.valid(n) {
						continue
					}
					dl := sphere.Unwrap(m.CLon[n], m.CLon[k]) - m.CLon[k]
					rows = append(rows, dl, m.CLat[n]-m.CLat[k])
					rhs = append(rhs, src[s][n]-src[s][k])
					lo[s][k] = math.Min(lo[s][k], src[s][n])
					hi[s][k] = math.Max(hi[s][k], src[s][n])
				}
				if len(rhs) < 2 {
					continue
				}
				var g mat.VecDense
				if err := g.SolveVec(mat.NewDense(len(rhs), 2, rows), mat.NewVecDense(len(rhs), rhs)); err != nil {
					continue
				}
				gx, gy := g.AtVec(0), g.AtVec(1)
				if math.IsNaN(gx) || math.IsNaN(gy) || math.IsInf(gx, 0) || math.IsInf(gy, 0) {
					continue
				}
				out[s][k] = [2]float64{gx, gy}
			}
		}
	}
	if o.limit {
		x.limit(src, out, lo, hi)
	}

	return out
}

// limit scales each gradient by the largest factor in [0, 1] that keeps
// every overlap value of the cell inside [lo, hi].
func (x *XGrid) limit(src [][]float64, grads [][][2]float64, lo, hi [][]float64) {
	phi := make([][]float64, len(x.Src))
	for s, m := range x.Src {
		phi[s] = make([]float64, m.Cells())
		for k := range phi[s] {
			phi[s][k] = 1
		}
	}
	si := x.srcIndex()
	for _, r := range x.Records {
		s := si[r.SrcTile]
		k, _ := x.Src[s].local(r.SrcI, r.SrcJ)
		g, v := grads[s][k], src[s][k]
		d := g[0]*r.DLon + g[1]*r.DLat
		switch {
		case d > 0:
			phi[s][k] = math.Min(phi[s][k], (hi[s][k]-v)/d)
		case d < 0:
			phi[s][k] = math.Min(phi[s][k], (lo[s][k]-v)/d)
		}
	}
	for s := range grads {
		for k := range grads[s] {
			grads[s][k][0] *= phi[s][k]
			grads[s][k][1] *= phi[s][k]
		}
	}
}
