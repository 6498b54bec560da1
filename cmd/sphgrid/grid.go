// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/sphgrid/grid"
	"github.com/katalvlaran/sphgrid/internal/config"
	"github.com/katalvlaran/sphgrid/internal/report"
	"github.com/katalvlaran/sphgrid/sphere"
)

var gridCmd = &cobra.Command{
	Use:   "grid [source|target]",
	Short: "Build the source or target grid and check its area",
	Long: `Builds the configured grid (target by default) and prints its tiles with
their total and extreme cell areas. For a global grid the area fraction of
the sphere should be 1 up to rounding.`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"source", "target"},
	RunE:      runGrid,
}

func init() {
	rootCmd.AddCommand(gridCmd)
}

func runGrid(cmd *cobra.Command, args []string) error {
	which := "target"
	if len(args) == 1 {
		which = args[0]
	}
	var gc config.GridConfig
	switch which {
	case "source":
		gc = cfg.Source
	case "target":
		gc = cfg.Target
	default:
		return fmt.Errorf("grid: unknown grid %q (want source or target)", which)
	}
	tiles, err := gc.Build()
	if err != nil {
		return fmt.Errorf("grid: %s: %w", which, err)
	}

	rep := &report.Grid{Tiles: make([]report.Tile, 0, len(tiles))}
	for _, t := range tiles {
		rt := report.Tile{
			ID: t.ID, Name: t.Name, NX: t.NX, NY: t.NY,
			Arc:      t.Arc.String(),
			Area:     t.TotalArea(),
			MinCell:  floats.Min(t.Area),
			MaxCell:  floats.Max(t.Area),
			GridType: string(t.Type),
		}
		if t.Type == grid.RegularLonLat {
			rt.Mode = gc.Mode
		}
		if t.Refined != nil {
			rt.FineNX, rt.FineNY = t.Refined.NX, t.Refined.NY
		}
		rep.Tiles = append(rep.Tiles, rt)
		rep.Area += rt.Area
	}
	rep.Fraction = rep.Area / (4 * math.Pi * sphere.EarthRadius * sphere.EarthRadius)
	logger.Debug("grid built", zap.String("grid", which), zap.Int("tiles", len(tiles)), zap.Float64("fraction", rep.Fraction))

	return report.Write(cmd.OutOrStdout(), format(), rep)
}
