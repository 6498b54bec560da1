// SPDX-License-Identifier: MIT

package domain

import "fmt"

// Extent is an inclusive index range [Begin, End].
type Extent struct {
	Begin int `yaml:"begin" toml:"begin"`
	End   int `yaml:"end" toml:"end"`
}

// Size returns the number of indices covered.
func (e Extent) Size() int { return e.End - e.Begin + 1 }

// Contains reports whether i lies in the extent.
func (e Extent) Contains(i int) bool { return i >= e.Begin && i <= e.End }

// String implements fmt.Stringer.
func (e Extent) String() string { return fmt.Sprintf("[%d,%d]", e.Begin, e.End) }

// Axis is the ordered sequence of extents of one dimension, one per division.
type Axis []Extent

// Sizes returns the extent sizes in division order.
func (a Axis) Sizes() []int {
	out := make([]int, len(a))
	for k, e := range a {
		out[k] = e.Size()
	}

	return out
}

// MinSize returns the smallest extent size (0 for an empty axis).
func (a Axis) MinSize() int {
	if len(a) == 0 {
		return 0
	}
	m := a[0].Size()
	for _, e := range a[1:] {
		if s := e.Size(); s < m {
			m = s
		}
	}

	return m
}

// Layout is the number of divisions along x (PX) and y (PY).
type Layout struct {
	PX int `yaml:"px" toml:"px"`
	PY int `yaml:"py" toml:"py"`
}

// NumRanks returns PX*PY.
func (l Layout) NumRanks() int { return l.PX * l.PY }

// Window is an inclusive 2-D index window.
type Window struct {
	IS int `yaml:"is" toml:"is"`
	IE int `yaml:"ie" toml:"ie"`
	JS int `yaml:"js" toml:"js"`
	JE int `yaml:"je" toml:"je"`
}

// NX returns the window width.
func (w Window) NX() int { return w.IE - w.IS + 1 }

// NY returns the window height.
func (w Window) NY() int { return w.JE - w.JS + 1 }

// Contains reports whether (i, j) lies in the window.
func (w Window) Contains(i, j int) bool {
	return i >= w.IS && i <= w.IE && j >= w.JS && j <= w.JE
}

// ContainsWindow reports whether o lies entirely inside w.
func (w Window) ContainsWindow(o Window) bool {
	return o.IS >= w.IS && o.IE <= w.IE && o.JS >= w.JS && o.JE <= w.JE
}

// Expand grows the window by xh columns and yh rows on every side.
func (w Window) Expand(xh, yh int) Window {
	return Window{IS: w.IS - xh, IE: w.IE + xh, JS: w.JS - yh, JE: w.JE + yh}
}

// String implements fmt.Stringer.
func (w Window) String() string {
	return fmt.Sprintf("i[%d,%d] j[%d,%d]", w.IS, w.IE, w.JS, w.JE)
}

// RankDomain is one rank's share of a Domain2D.
type RankDomain struct {
	Rank    int    `yaml:"rank" toml:"rank"`
	I       int    `yaml:"i" toml:"i"` // division index along x
	J       int    `yaml:"j" toml:"j"` // division index along y
	Compute Window `yaml:"compute" toml:"compute"`
	Data    Window `yaml:"data" toml:"data"`
}

// Neighbors lists the ranks adjacent to a compute window; -1 marks a closed
// boundary.
type Neighbors struct {
	West  int `yaml:"west" toml:"west"`
	East  int `yaml:"east" toml:"east"`
	South int `yaml:"south" toml:"south"`
	North int `yaml:"north" toml:"north"`
}
