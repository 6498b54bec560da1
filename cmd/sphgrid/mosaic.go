// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/sphgrid/cubesphere"
	"github.com/katalvlaran/sphgrid/field"
	"github.com/katalvlaran/sphgrid/internal/report"
)

var mosaicCmd = &cobra.Command{
	Use:   "mosaic",
	Short: "Print the cubed-sphere contacts and halo descriptors",
	Long: `Lists the 12 edge contacts of an n×n cubed-sphere mosaic and, for every
tile edge, the neighbouring tile and edge its halo is read from.

With --check the halos of tile-id fields are exchanged and the tile found
in each halo is compared with the descriptor.`,
	RunE: runMosaic,
}

func init() {
	mosaicCmd.Flags().Int("n", 48, "cells per cube edge")
	mosaicCmd.Flags().Bool("check", false, "exchange tile-id fields and verify every halo")
	rootCmd.AddCommand(mosaicCmd)
}

func runMosaic(cmd *cobra.Command, args []string) error {
	n, _ := cmd.Flags().GetInt("n")
	check, _ := cmd.Flags().GetBool("check")
	if n < 1 {
		return fmt.Errorf("mosaic: n %d must be positive", n)
	}

	rep := &report.Mosaic{N: n}
	for _, c := range cubesphere.Contacts(n) {
		rep.Contacts = append(rep.Contacts, report.Contact{Name: c.Name, Index: c.Index})
	}

	var halos []*field.Field
	if check {
		var err error
		if halos, err = exchangeTileIDs(n); err != nil {
			return fmt.Errorf("mosaic: %w", err)
		}
	}
	for t := cubesphere.TileID(1); t <= cubesphere.NumTiles; t++ {
		for e := cubesphere.West; e <= cubesphere.North; e++ {
			d, err := cubesphere.Descriptor(t, e)
			if err != nil {
				return fmt.Errorf("mosaic: %w", err)
			}
			h := report.Halo{
				Tile: int(t), Edge: e.String(),
				Neighbor: int(d.Neighbor), NbrEdge: d.NeighborEdge.String(),
				Reverse: d.Reverse, Swap: d.Swap,
			}
			if halos != nil {
				i, j := edgeMidHalo(e, n)
				v, err := halos[t-1].At(i, j)
				if err != nil {
					return fmt.Errorf("mosaic: %w", err)
				}
				h.Observed = int(v)
			}
			rep.Halos = append(rep.Halos, h)
		}
	}

	return report.Write(cmd.OutOrStdout(), format(), rep)
}

// exchangeTileIDs fills width-1 halos of fields holding their tile id.
func exchangeTileIDs(n int) ([]*field.Field, error) {
	in := make([]*field.Field, cubesphere.NumTiles)
	for k := range in {
		f, err := field.Constant(n, n, float64(k+1))
		if err != nil {
			return nil, err
		}
		in[k] = f
	}

	return cubesphere.Exchange(1, in, cubesphere.WithLogger(logger))
}

// edgeMidHalo is the first halo point outside the middle of edge e.
func edgeMidHalo(e cubesphere.Edge, n int) (int, int) {
	switch e {
	case cubesphere.West:
		return -1, n / 2
	case cubesphere.East:
		return n, n / 2
	case cubesphere.South:
		return n / 2, -1
	default:
		return n / 2, n
	}
}
