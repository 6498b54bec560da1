// SPDX-License-Identifier: MIT

package field

import (
	"fmt"
	"strings"
)

const (
	ctxAt  = "At"
	ctxSet = "Set"
)

// fieldErrorf wraps an error with the method tag and callsite indices.
func fieldErrorf(method string, i, j int, err error) error {
	return fmt.Errorf("Field.%s(%d,%d): %w", method, i, j, err)
}

// Field is a row-major nx×ny array surrounded by a halo ring of width halo.
type Field struct {
	nx, ny int
	halo   int
	stride int       // nx + 2*halo
	data   []float64 // len == stride*(ny+2*halo)
}

// New allocates a zero field of nx×ny interior points and the given halo.
// Errors:
//   - ErrInvalidDimensions when nx <= 0, ny <= 0 or halo < 0.
func New(nx, ny, halo int) (*Field, error) {
	if nx <= 0 || ny <= 0 || halo < 0 {
		return nil, ErrInvalidDimensions
	}
	stride := nx + 2*halo

	return &Field{
		nx:     nx,
		ny:     ny,
		halo:   halo,
		stride: stride,
		data:   make([]float64, stride*(ny+2*halo)),
	}, nil
}

// FromSlice builds a halo-free field from row-major interior values
// (values[j*nx+i]). The slice is copied.
func FromSlice(nx, ny int, values []float64) (*Field, error) {
	f, err := New(nx, ny, 0)
	if err != nil {
		return nil, err
	}
	if len(values) != nx*ny {
		return nil, fmt.Errorf("FromSlice(%d,%d): got %d values: %w", nx, ny, len(values), ErrShapeMismatch)
	}
	copy(f.data, values)

	return f, nil
}

// Constant returns a halo-free nx×ny field filled with v.
func Constant(nx, ny int, v float64) (*Field, error) {
	f, err := New(nx, ny, 0)
	if err != nil {
		return nil, err
	}
	f.Fill(v)

	return f, nil
}

// NX returns the interior width.
func (f *Field) NX() int { return f.nx }

// NY returns the interior height.
func (f *Field) NY() int { return f.ny }

// Halo returns the halo width.
func (f *Field) Halo() int { return f.halo }

// InBounds reports whether (i, j) addresses an interior or halo point.
func (f *Field) InBounds(i, j int) bool {
	return i >= -f.halo && i < f.nx+f.halo && j >= -f.halo && j < f.ny+f.halo
}

// At returns the value at (i, j); halo points use i < 0, i >= nx, etc.
func (f *Field) At(i, j int) (float64, error) {
	if !f.InBounds(i, j) {
		return 0, fieldErrorf(ctxAt, i, j, ErrOutOfRange)
	}

	return f.data[f.offset(i, j)], nil
}

// Set stores v at (i, j).
func (f *Field) Set(i, j int, v float64) error {
	if !f.InBounds(i, j) {
		return fieldErrorf(ctxSet, i, j, ErrOutOfRange)
	}
	f.data[f.offset(i, j)] = v

	return nil
}

// Fill sets every point, halo included, to v.
func (f *Field) Fill(v float64) {
	for k := range f.data {
		f.data[k] = v
	}
}

// Clone returns a deep copy.
func (f *Field) Clone() *Field {
	out := *f
	out.data = append([]float64(nil), f.data...)

	return &out
}

// Interior returns a row-major copy of the nx×ny interior.
func (f *Field) Interior() []float64 {
	out := make([]float64, 0, f.nx*f.ny)
	for j := 0; j < f.ny; j++ {
		k := f.offset(0, j)
		out = append(out, f.data[k:k+f.nx]...)
	}

	return out
}

// WithHalo returns a new field holding a copy of the interior surrounded by a
// zero halo of the given width.
func (f *Field) WithHalo(halo int) (*Field, error) {
	out, err := New(f.nx, f.ny, halo)
	if err != nil {
		return nil, err
	}
	for j := 0; j < f.ny; j++ {
		src := f.offset(0, j)
		dst := out.offset(0, j)
		copy(out.data[dst:dst+f.nx], f.data[src:src+f.nx])
	}

	return out, nil
}

// SameShape reports whether g has the same interior size as f.
func (f *Field) SameShape(g *Field) bool {
	return g != nil && f.nx == g.nx && f.ny == g.ny
}

// String prints the field row by row, top row (largest j) first, halo included.
func (f *Field) String() string {
	var sb strings.Builder
	for j := f.ny + f.halo - 1; j >= -f.halo; j-- {
		sb.WriteString("[")
		for i := -f.halo; i < f.nx+f.halo; i++ {
			if i > -f.halo {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "%g", f.data[f.offset(i, j)])
		}
		sb.WriteString("]\n")
	}

	return sb.String()
}

// offset is the row-major position of (i, j).
func (f *Field) offset(i, j int) int {
	return (j+f.halo)*f.stride + (i + f.halo)
}
