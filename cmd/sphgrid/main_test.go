// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/sphgrid/internal/config"
	"github.com/katalvlaran/sphgrid/internal/report"
	"github.com/katalvlaran/sphgrid/remapstore"
)

// run executes the root command with a config file written from body.
func run(t *testing.T, body string, args ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sphgrid.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(append([]string{"--config", path}, args...))
	require.NoError(t, rootCmd.ExecuteContext(context.Background()))

	return out.String()
}

func TestDecomposeCommand(t *testing.T) {
	out := run(t, "decompose: {npes: 0}\n", "decompose", "--format", "yaml",
		"--nx", "10", "--ny", "4", "--px", "3", "--py", "1", "--xhalo", "1", "--yhalo", "1")

	var rep report.Decomposition
	require.NoError(t, yaml.Unmarshal([]byte(out), &rep))
	assert.Equal(t, []int{4, 3, 3}, rep.XSizes)
	require.Len(t, rep.Ranks, 3)
	assert.Equal(t, -1, rep.Ranks[0].West)
	assert.Equal(t, 1, rep.Ranks[0].East)
	assert.Equal(t, "i[4,6] j[0,3]", rep.Ranks[1].Compute)
}

func TestMosaicCommand(t *testing.T) {
	out := run(t, "verbose: false\n", "mosaic", "--format", "text", "--n", "4", "--check")
	assert.Contains(t, out, "mosaic:tile1::mosaic:tile2")
	assert.Contains(t, out, "4:4,1:4::1:1,1:4")
	assert.Contains(t, out, "ok")
	assert.NotContains(t, out, "got tile")
}

func TestGridCommand(t *testing.T) {
	out := run(t, `
target:
  nlon: 8
  nlat: 4
`, "grid", "--format", "yaml")
	var rep report.Grid
	require.NoError(t, yaml.Unmarshal([]byte(out), &rep))
	require.Len(t, rep.Tiles, 1)
	assert.Equal(t, 8, rep.Tiles[0].NX)
	assert.InDelta(t, 1.0, rep.Fraction, 1e-12)

	out = run(t, "source: {cube_n: 3}\n", "grid", "source", "--format", "yaml")
	rep = report.Grid{}
	require.NoError(t, yaml.Unmarshal([]byte(out), &rep))
	assert.Len(t, rep.Tiles, 6)
	assert.InDelta(t, 1.0, rep.Fraction, 1e-9)
}

func TestXGridCommand(t *testing.T) {
	store := filepath.Join(t.TempDir(), "remap.db")
	out := run(t, `
source:
  type: regular_lonlat_grid
  nlon: 6
  nlat: 3
target:
  type: gnomonic_ed
  cube_n: 2
xgrid:
  order: 2
  out: `+store+`
`, "xgrid", "--format", "yaml")

	var rep report.XGrid
	require.NoError(t, yaml.Unmarshal([]byte(out), &rep))
	assert.Equal(t, 2, rep.Order)
	assert.Equal(t, "great_circle", rep.Arc)
	assert.Equal(t, 6, rep.TgtTiles)
	assert.Zero(t, rep.Uncovered)
	assert.InDelta(t, 1.0, rep.MinCoverage, 1e-9)
	assert.Equal(t, store, rep.Store)

	x, attrs, err := remapstore.Load(context.Background(), store)
	require.NoError(t, err)
	assert.Len(t, x.Records, rep.Records)
	assert.Equal(t, rep.Provenance.RunID, attrs.RunID)
}

// TestWatchConfigReload rewrites a watched config file and waits for the
// rebuild callback to see the new values.
func TestWatchConfigReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "watch.yaml")
	require.NoError(t, os.WriteFile(path, []byte("xgrid: {order: 1}\n"), 0o600))

	v := viper.New()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	ctx, cancel := context.WithCancel(context.Background())
	reloads := make(chan config.Config, 64)
	done := make(chan struct{})
	go func() {
		defer close(done)
		watchConfig(ctx, v, func(c config.Config) error {
			select {
			case reloads <- c:
			default:
			}
			return nil
		})
	}()
	defer func() {
		cancel()
		<-done
	}()

	changed := []byte("xgrid: {order: 2}\ntarget: {nlon: 8, nlat: 4}\n")
	deadline := time.After(10 * time.Second)
	tick := time.NewTicker(100 * time.Millisecond)
	defer tick.Stop()
	for {
		select {
		case c := <-reloads:
			// truncate-then-write can surface an intermediate empty file
			if c.XGrid.Order != 2 {
				continue
			}
			assert.Equal(t, 8, c.Target.NLon)
			assert.Equal(t, 4, c.Target.NLat)
			return
		case <-tick.C:
			require.NoError(t, os.WriteFile(path, changed, 0o600))
		case <-deadline:
			t.Fatal("no reload after rewriting the config file")
		}
	}
}
