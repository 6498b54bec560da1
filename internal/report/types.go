// SPDX-License-Identifier: MIT

package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/katalvlaran/sphgrid/internal/provenance"
)

// Rank is one row of a decomposition table. Windows are 0-based inclusive
// index ranges.
type Rank struct {
	Rank    int    `yaml:"rank" toml:"rank"`
	Compute string `yaml:"compute" toml:"compute"`
	Data    string `yaml:"data" toml:"data"`
	West    int    `yaml:"west" toml:"west"`
	East    int    `yaml:"east" toml:"east"`
	South   int    `yaml:"south" toml:"south"`
	North   int    `yaml:"north" toml:"north"`
}

// Decomposition describes a 2-D domain decomposition.
type Decomposition struct {
	NX     int    `yaml:"nx" toml:"nx"`
	NY     int    `yaml:"ny" toml:"ny"`
	Layout [2]int `yaml:"layout" toml:"layout"`
	XHalo  int    `yaml:"xhalo" toml:"xhalo"`
	YHalo  int    `yaml:"yhalo" toml:"yhalo"`
	XSizes []int  `yaml:"xsizes" toml:"xsizes"`
	YSizes []int  `yaml:"ysizes" toml:"ysizes"`
	Ranks  []Rank `yaml:"ranks" toml:"ranks"`
}

// WriteText implements Texter.
func (d *Decomposition) WriteText(w io.Writer) error {
	fmt.Fprintf(w, "grid %dx%d layout %dx%d halo %d,%d\n", d.NX, d.NY, d.Layout[0], d.Layout[1], d.XHalo, d.YHalo)
	fmt.Fprintf(w, "x sizes %v\ny sizes %v\n", d.XSizes, d.YSizes)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tCOMPUTE\tDATA\tW\tE\tS\tN")
	for _, r := range d.Ranks {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%d\t%d\t%d\n", r.Rank, r.Compute, r.Data, r.West, r.East, r.South, r.North)
	}

	return tw.Flush()
}

// Tile summarises one grid tile.
type Tile struct {
	ID        int     `yaml:"id" toml:"id"`
	Name      string  `yaml:"name" toml:"name"`
	NX        int     `yaml:"nx" toml:"nx"`
	NY        int     `yaml:"ny" toml:"ny"`
	Arc       string  `yaml:"arc" toml:"arc"`
	Area      float64 `yaml:"area" toml:"area"`
	MinCell   float64 `yaml:"min_cell_area" toml:"min_cell_area"`
	MaxCell   float64 `yaml:"max_cell_area" toml:"max_cell_area"`
	FineNX    int     `yaml:"fine_nx,omitempty" toml:"fine_nx,omitempty"`
	FineNY    int     `yaml:"fine_ny,omitempty" toml:"fine_ny,omitempty"`
	GridType  string  `yaml:"grid_type" toml:"grid_type"`
	Mode      string  `yaml:"mode,omitempty" toml:"mode,omitempty"`
}

// Grid summarises a built grid or mosaic.
type Grid struct {
	Tiles []Tile `yaml:"tiles" toml:"tiles"`
	// Area is the total area in m²; Fraction is Area over the sphere area.
	Area     float64 `yaml:"area" toml:"area"`
	Fraction float64 `yaml:"sphere_fraction" toml:"sphere_fraction"`
}

// WriteText implements Texter.
func (g *Grid) WriteText(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TILE\tTYPE\tSIZE\tARC\tAREA\tMIN CELL\tMAX CELL\tFINE")
	for _, t := range g.Tiles {
		fine := "-"
		if t.FineNX > 0 {
			fine = fmt.Sprintf("%dx%d", t.FineNX, t.FineNY)
		}
		fmt.Fprintf(tw, "%s\t%s\t%dx%d\t%s\t%.6e\t%.4e\t%.4e\t%s\n",
			t.Name, t.GridType, t.NX, t.NY, t.Arc, t.Area, t.MinCell, t.MaxCell, fine)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "total area %.9e m² (%.12f of the sphere)\n", g.Area, g.Fraction)

	return err
}

// Contact is one cube-sphere edge contact.
type Contact struct {
	Name  string `yaml:"name" toml:"name"`
	Index string `yaml:"index" toml:"index"`
}

// Halo is one row of the halo descriptor table.
type Halo struct {
	Tile     int    `yaml:"tile" toml:"tile"`
	Edge     string `yaml:"edge" toml:"edge"`
	Neighbor int    `yaml:"neighbor" toml:"neighbor"`
	NbrEdge  string `yaml:"neighbor_edge" toml:"neighbor_edge"`
	Reverse  bool   `yaml:"reverse" toml:"reverse"`
	Swap     bool   `yaml:"swap" toml:"swap"`
	// Observed is the tile id found in the halo after an exchange of
	// tile-id fields; 0 when no check ran.
	Observed int `yaml:"observed,omitempty" toml:"observed,omitempty"`
}

// Mosaic lists the contacts and halo descriptors of a cubed sphere.
type Mosaic struct {
	N        int       `yaml:"n" toml:"n"`
	Contacts []Contact `yaml:"contacts" toml:"contacts"`
	Halos    []Halo    `yaml:"halos" toml:"halos"`
}

// WriteText implements Texter.
func (m *Mosaic) WriteText(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CONTACT\tINDEX")
	for _, c := range m.Contacts {
		fmt.Fprintf(tw, "%s\t%s\n", c.Name, c.Index)
	}
	fmt.Fprintln(tw, "\t")
	fmt.Fprintln(tw, "TILE\tEDGE\tFROM\tREVERSE\tSWAP\tCHECK")
	for _, h := range m.Halos {
		check := "-"
		switch {
		case h.Observed == h.Neighbor:
			check = "ok"
		case h.Observed != 0:
			check = fmt.Sprintf("got tile%d", h.Observed)
		}
		fmt.Fprintf(tw, "%d\t%s\ttile%d.%s\t%t\t%t\t%s\n", h.Tile, h.Edge, h.Neighbor, h.NbrEdge, h.Reverse, h.Swap, check)
	}

	return tw.Flush()
}

// XGrid summarises an exchange grid build.
type XGrid struct {
	Order       int     `yaml:"order" toml:"order"`
	Arc         string  `yaml:"arc" toml:"arc"`
	SrcTiles    int     `yaml:"source_tiles" toml:"source_tiles"`
	TgtTiles    int     `yaml:"target_tiles" toml:"target_tiles"`
	Records     int     `yaml:"records" toml:"records"`
	Area        float64 `yaml:"area" toml:"area"`
	MinCoverage float64 `yaml:"min_coverage" toml:"min_coverage"`
	MaxCoverage float64 `yaml:"max_coverage" toml:"max_coverage"`
	Uncovered   int     `yaml:"uncovered_cells" toml:"uncovered_cells"`
	Elapsed     string  `yaml:"elapsed" toml:"elapsed"`
	Store       string  `yaml:"store,omitempty" toml:"store,omitempty"`

	Provenance provenance.Attrs `yaml:"provenance" toml:"provenance"`
}

// WriteText implements Texter.
func (x *XGrid) WriteText(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	rows := [][2]string{
		{"order", fmt.Sprint(x.Order)},
		{"arc", x.Arc},
		{"tiles", fmt.Sprintf("%d -> %d", x.SrcTiles, x.TgtTiles)},
		{"records", fmt.Sprint(x.Records)},
		{"area", fmt.Sprintf("%.9e m²", x.Area)},
		{"coverage", fmt.Sprintf("%.6f .. %.6f (%d uncovered)", x.MinCoverage, x.MaxCoverage, x.Uncovered)},
		{"elapsed", x.Elapsed},
	}
	if x.Store != "" {
		rows = append(rows, [2]string{"store", x.Store})
	}
	rows = append(rows, x.Provenance.Pairs()...)
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\n", r[0], r[1])
	}

	return tw.Flush()
}
