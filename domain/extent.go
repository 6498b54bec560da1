// SPDX-License-Identifier: MIT

package domain

import "fmt"

// ComputeExtent splits the global range [0, npts) into ndivs extents.
// Implementation:
//   - Stage 1: validate 1 <= ndivs <= npts.
//   - Stage 2: when the split can be symmetric (npts and ndivs share parity,
//     or ndivs is odd, npts even and ndivs < npts/2), build it from both
//     ends inward: each step sizes the next low-side extent by ceiling
//     division of the points left over the divisions left, and assigns its
//     mirror division ndivs-1-k the reflected range.
//   - Stage 3: if no mirrored split exists with sizes within one of each
//     other (e.g. npts=7, ndivs=3 would give 3,1,3), or no symmetric split
//     is possible, fall back to the sequential ceiling-division split.
//
// Behavior highlights:
//   - ComputeExtent(10, 3) = [0,3] [4,6] [7,9].
//   - ComputeExtent(9, 3)  = [0,2] [3,5] [6,8].
//   - ComputeExtent(10, 4) = [0,2] [3,4] [5,6] [7,9].
//   - ComputeExtent(20, 3) = [0,6] [7,12] [13,19].
//
// Errors:
//   - ErrInvalidDecomposition when ndivs <= 0 or ndivs > npts.
//
// Complexity:
//   - Time O(ndivs), Space O(ndivs).
func ComputeExtent(npts, ndivs int) (Axis, error) {
	if ndivs <= 0 || ndivs > npts {
		return nil, fmt.Errorf("ComputeExtent(%d,%d): %w", npts, ndivs, ErrInvalidDecomposition)
	}
	if symmetric(npts, ndivs) {
		if ax := mirroredExtent(npts, ndivs); ax.balanced(npts) {
			return ax, nil
		}
	}

	return sequentialExtent(npts, ndivs), nil
}

// symmetric reports whether a mirrored split is attempted: equal parities,
// or an odd number of divisions over an even range at most half as long.
func symmetric(npts, ndivs int) bool {
	if npts%2 == ndivs%2 {
		return true
	}

	return ndivs%2 == 1 && 2*ndivs < npts
}

// mirroredExtent fills the low half by ceiling division and reflects each
// low extent onto its mirror division.
func mirroredExtent(npts, ndivs int) Axis {
	ax := make(Axis, ndivs)
	last := npts - 1
	is, imax, ndmax := 0, last, ndivs
	half := (ndivs-1)/2 + 1
	for ndiv := 0; ndiv < ndivs; ndiv++ {
		var ie int
		if ndiv < half {
			ie = is + ceilDiv(imax-is+1, ndmax-ndiv) - 1
			if mirror := ndivs - 1 - ndiv; mirror > ndiv {
				ax[mirror] = Extent{Begin: max(last-ie, ie+1), End: max(last-is, ie+1)}
				imax = ax[mirror].Begin - 1
				ndmax--
			}
		} else {
			is, ie = ax[ndiv].Begin, ax[ndiv].End
		}
		ax[ndiv] = Extent{Begin: is, End: ie}
		is = ie + 1
	}

	return ax
}

// sequentialExtent assigns ceil(remaining/divisions left) to each division
// in turn; sizes are non-increasing and differ by at most one.
func sequentialExtent(npts, ndivs int) Axis {
	ax := make(Axis, ndivs)
	is := 0
	for ndiv := 0; ndiv < ndivs; ndiv++ {
		size := ceilDiv(npts-is, ndivs-ndiv)
		ax[ndiv] = Extent{Begin: is, End: is + size - 1}
		is += size
	}

	return ax
}

// balanced reports whether the axis partitions [0, npts) contiguously with
// extent sizes within one of each other.
func (a Axis) balanced(npts int) bool {
	next, lo, hi := 0, npts, 0
	for _, e := range a {
		if e.Begin != next || e.Size() <= 0 {
			return false
		}
		lo, hi = min(lo, e.Size()), max(hi, e.Size())
		next = e.End + 1
	}

	return next == npts && hi-lo <= 1
}

// Find returns the division whose extent contains i, or -1.
func (a Axis) Find(i int) int {
	lo, hi := 0, len(a)-1
	for lo <= hi {
		mid := (lo + hi) / 2
		switch {
		case i < a[mid].Begin:
			hi = mid - 1
		case i > a[mid].End:
			lo = mid + 1
		default:
			return mid
		}
	}

	return -1
}

func ceilDiv(a, b int) int { return (a + b - 1) / b }
