// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/katalvlaran/sphgrid/internal/config"
	"github.com/katalvlaran/sphgrid/internal/provenance"
	"github.com/katalvlaran/sphgrid/internal/report"
	"github.com/katalvlaran/sphgrid/remapstore"
	"github.com/katalvlaran/sphgrid/xgrid"
)

var xgridCmd = &cobra.Command{
	Use:   "xgrid",
	Short: "Build the exchange grid between the source and target grids",
	Long: `Computes the conservative exchange grid from the configured source grid
(every tile) to the target grid, prints a summary and optionally saves it to
a SQLite remap file with --out.

With --watch the build is repeated whenever the config file changes, until
interrupted.

Example:
  sphgrid xgrid --config remap.yaml --order 2 --out remap.db`,
	RunE: runXGrid,
}

func init() {
	f := xgridCmd.Flags()
	f.Int("order", 0, "conservative order, 1 or 2")
	f.String("out", "", "remap file to write")
	f.Int("workers", 0, "parallel workers (0 = GOMAXPROCS)")
	f.Bool("watch", false, "rebuild when the config file changes")
	for flag, key := range map[string]string{"order": "xgrid.order", "out": "xgrid.out", "workers": "xgrid.workers"} {
		cobra.CheckErr(viper.BindPFlag(key, f.Lookup(flag)))
	}
	rootCmd.AddCommand(xgridCmd)
}

func runXGrid(cmd *cobra.Command, args []string) error {
	watch, _ := cmd.Flags().GetBool("watch")
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	out := cmd.OutOrStdout()
	if !watch {
		return buildXGrid(ctx, cfg, out)
	}

	if viper.ConfigFileUsed() == "" {
		return errors.New("xgrid: --watch needs a config file")
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := buildXGrid(ctx, cfg, out); err != nil {
		logger.Error("build failed", zap.Error(err))
	}
	watchConfig(ctx, viper.GetViper(), func(c config.Config) error {
		cfg = c
		return buildXGrid(ctx, c, out)
	})

	return nil
}

// watchConfig reloads v's config file on every change and hands the new
// config to rebuild, until ctx is done. Rejected configs and failed
// rebuilds are logged; the previous config stays in effect.
func watchConfig(ctx context.Context, v *viper.Viper, rebuild func(config.Config) error) {
	var mu sync.Mutex
	v.OnConfigChange(func(e fsnotify.Event) {
		mu.Lock()
		defer mu.Unlock()
		if ctx.Err() != nil {
			return
		}
		logger.Info("config changed", zap.String("file", e.Name), zap.Stringer("op", e.Op))
		c, err := config.Load(v)
		if err != nil {
			logger.Error("config rejected", zap.Error(err))
			return
		}
		if err := rebuild(c); err != nil {
			logger.Error("build failed", zap.Error(err))
		}
	})
	v.WatchConfig()
	logger.Info("watching config", zap.String("file", v.ConfigFileUsed()))
	<-ctx.Done()
}

// buildXGrid runs one exchange grid build and writes its summary to w.
func buildXGrid(ctx context.Context, c config.Config, w io.Writer) error {
	srcs, err := c.Source.Build()
	if err != nil {
		return fmt.Errorf("xgrid: source grid: %w", err)
	}
	tgts, err := c.Target.Build()
	if err != nil {
		return fmt.Errorf("xgrid: target grid: %w", err)
	}
	opts := []xgrid.Option{
		xgrid.WithOrder(c.XGrid.Order),
		xgrid.WithAreaRatio(c.XGrid.AreaRatio),
		xgrid.WithLogger(logger),
		xgrid.WithContext(ctx),
	}
	if c.XGrid.Search == "brute" {
		opts = append(opts, xgrid.WithSearch(xgrid.SearchBruteForce))
	}
	if c.XGrid.Workers > 0 {
		opts = append(opts, xgrid.WithWorkers(c.XGrid.Workers))
	}

	start := time.Now()
	x, err := xgrid.CreateMosaic(srcs, tgts, opts...)
	if err != nil {
		return fmt.Errorf("xgrid: %w", err)
	}
	elapsed := time.Since(start)

	rep := &report.XGrid{
		Order:    x.Order,
		Arc:      x.Arc.String(),
		SrcTiles: len(x.Src),
		TgtTiles: len(x.Tgt),
		Records:  len(x.Records),
		Area:     x.TotalArea(),
		Elapsed:  elapsed.Round(time.Millisecond).String(),

		Provenance: provenance.Collect(os.Args),
	}
	rep.MinCoverage, rep.MaxCoverage, rep.Uncovered = coverageStats(x.Coverage())
	if c.XGrid.Out != "" {
		if err := remapstore.Save(ctx, c.XGrid.Out, x, rep.Provenance); err != nil {
			return fmt.Errorf("xgrid: %w", err)
		}
		rep.Store = c.XGrid.Out
	}
	logger.Info("exchange grid ready",
		zap.Int("records", rep.Records),
		zap.Duration("elapsed", elapsed),
		zap.String("store", rep.Store))

	return report.Write(w, format(), rep)
}

func coverageStats(cov [][]float64) (lo, hi float64, uncovered int) {
	lo = 1
	for _, tile := range cov {
		for _, f := range tile {
			lo, hi = min(lo, f), max(hi, f)
			if f == 0 {
				uncovered++
			}
		}
	}

	return lo, hi, uncovered
}
