// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/katalvlaran/sphgrid/domain"
	"github.com/katalvlaran/sphgrid/internal/report"
)

var decomposeCmd = &cobra.Command{
	Use:   "decompose",
	Short: "Print the per-rank compute and data windows of a 2-D decomposition",
	Long: `Splits an nx×ny index space over a px×py layout (or an automatic layout
for --npes ranks) and prints each rank's compute window, halo-extended data
window and W/E/S/N neighbours (-1 = closed boundary).

Example:
  sphgrid decompose --nx 10 --ny 4 --px 3 --py 1 --xhalo 1`,
	RunE: runDecompose,
}

func init() {
	f := decomposeCmd.Flags()
	f.Int("nx", 0, "global x size")
	f.Int("ny", 0, "global y size")
	f.Int("px", 0, "divisions along x")
	f.Int("py", 0, "divisions along y")
	f.Int("npes", 0, "rank count for an automatic layout")
	f.Int("xhalo", 0, "x halo width")
	f.Int("yhalo", 0, "y halo width")
	f.Bool("cyclic-x", false, "wrap x")
	f.Bool("tripolar", false, "fold the north edge")
	for flag, key := range map[string]string{
		"nx": "decompose.nx", "ny": "decompose.ny", "px": "decompose.px", "py": "decompose.py",
		"npes": "decompose.npes", "xhalo": "decompose.xhalo", "yhalo": "decompose.yhalo",
		"cyclic-x": "decompose.cyclic_x", "tripolar": "decompose.tripolar",
	} {
		cobra.CheckErr(viper.BindPFlag(key, f.Lookup(flag)))
	}
	rootCmd.AddCommand(decomposeCmd)
}

func runDecompose(cmd *cobra.Command, args []string) error {
	c := cfg.Decompose
	var opts []domain.Option
	if c.CyclicX {
		opts = append(opts, domain.WithCyclicX())
	}
	if c.Tripolar {
		opts = append(opts, domain.WithTripolarFold())
	}
	layout := domain.Layout{PX: c.PX, PY: c.PY}
	if layout.NumRanks() == 0 {
		layout = domain.Layout{}
		opts = append(opts, domain.WithPEs(c.NPes))
	}
	d, err := domain.Define(c.NX, c.NY, layout, c.XHalo, c.YHalo, opts...)
	if err != nil {
		return fmt.Errorf("decompose: %w", err)
	}
	logger.Debug("domain defined",
		zap.Int("nx", c.NX), zap.Int("ny", c.NY),
		zap.Int("px", d.Layout.PX), zap.Int("py", d.Layout.PY))

	rep := &report.Decomposition{
		NX: d.NX, NY: d.NY,
		Layout: [2]int{d.Layout.PX, d.Layout.PY},
		XHalo:  d.XHalo, YHalo: d.YHalo,
		XSizes: d.X.Sizes(), YSizes: d.Y.Sizes(),
	}
	for _, r := range d.Ranks() {
		nb, err := d.Neighbors(r.Rank)
		if err != nil {
			return fmt.Errorf("decompose: %w", err)
		}
		rep.Ranks = append(rep.Ranks, report.Rank{
			Rank:    r.Rank,
			Compute: r.Compute.String(),
			Data:    r.Data.String(),
			West:    nb.West, East: nb.East, South: nb.South, North: nb.North,
		})
	}

	return report.Write(cmd.OutOrStdout(), format(), rep)
}
