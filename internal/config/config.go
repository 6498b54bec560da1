// SPDX-License-Identifier: MIT

// Package config holds the sphgrid CLI configuration. Values come from a
// YAML or TOML file, SPHGRID_* environment variables and flags, in viper's
// usual precedence.
package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"

	"github.com/katalvlaran/sphgrid/grid"
	"github.com/katalvlaran/sphgrid/internal/report"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("config: invalid")

// GridConfig describes one grid: a regular lon-lat tile or a cubed sphere.
type GridConfig struct {
	Type        string    `mapstructure:"type"`
	LonRange    []float64 `mapstructure:"lon_range"`
	LatRange    []float64 `mapstructure:"lat_range"`
	NLon        int       `mapstructure:"nlon"`
	NLat        int       `mapstructure:"nlat"`
	CenterY     bool      `mapstructure:"center_y"`
	RefineSteps int       `mapstructure:"refine_steps"`
	Mode        string    `mapstructure:"mode"`
	// CubeN is the cells per cube edge for gnomonic_ed.
	CubeN int `mapstructure:"cube_n"`
}

// XGridConfig controls exchange grid builds.
type XGridConfig struct {
	Order     int     `mapstructure:"order"`
	AreaRatio float64 `mapstructure:"area_ratio"`
	Search    string  `mapstructure:"search"`
	Workers   int     `mapstructure:"workers"`
	// Out is the remap file path; empty skips saving.
	Out string `mapstructure:"out"`
}

// DecomposeConfig describes a domain decomposition.
type DecomposeConfig struct {
	NX       int  `mapstructure:"nx"`
	NY       int  `mapstructure:"ny"`
	PX       int  `mapstructure:"px"`
	PY       int  `mapstructure:"py"`
	NPes     int  `mapstructure:"npes"`
	XHalo    int  `mapstructure:"xhalo"`
	YHalo    int  `mapstructure:"yhalo"`
	CyclicX  bool `mapstructure:"cyclic_x"`
	Tripolar bool `mapstructure:"tripolar"`
}

// Config is the complete CLI configuration.
type Config struct {
	Verbose   bool            `mapstructure:"verbose"`
	Format    string          `mapstructure:"format"`
	Source    GridConfig      `mapstructure:"source"`
	Target    GridConfig      `mapstructure:"target"`
	XGrid     XGridConfig     `mapstructure:"xgrid"`
	Decompose DecomposeConfig `mapstructure:"decompose"`
}

// SetDefaults registers the built-in defaults on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("verbose", false)
	v.SetDefault("format", string(report.FormatText))

	for key, typ := range map[string]grid.GridType{"source": grid.GnomonicED, "target": grid.RegularLonLat} {
		v.SetDefault(key+".type", string(typ))
		v.SetDefault(key+".lon_range", []float64{0, 360})
		v.SetDefault(key+".lat_range", []float64{-90, 90})
		v.SetDefault(key+".nlon", 144)
		v.SetDefault(key+".nlat", 90)
		v.SetDefault(key+".center_y", true)
		v.SetDefault(key+".refine_steps", 0)
		v.SetDefault(key+".mode", grid.ModeConserveOrder1.String())
		v.SetDefault(key+".cube_n", 48)
	}

	v.SetDefault("xgrid.order", 1)
	v.SetDefault("xgrid.area_ratio", 1e-6)
	v.SetDefault("xgrid.search", "rtree")
	v.SetDefault("xgrid.workers", 0)
	v.SetDefault("xgrid.out", "")

	v.SetDefault("decompose.nx", 360)
	v.SetDefault("decompose.ny", 180)
	v.SetDefault("decompose.px", 0)
	v.SetDefault("decompose.py", 0)
	v.SetDefault("decompose.npes", 4)
	v.SetDefault("decompose.xhalo", 1)
	v.SetDefault("decompose.yhalo", 1)
	v.SetDefault("decompose.cyclic_x", false)
	v.SetDefault("decompose.tripolar", false)
}

// Load applies the defaults to v, decodes it and validates the result.
func Load(v *viper.Viper) (Config, error) {
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks the values that the builders would otherwise reject late.
func (c Config) Validate() error {
	if _, err := report.ParseFormat(c.Format); err != nil {
		return fmt.Errorf("%w: format: %w", ErrInvalidConfig, err)
	}
	for name, g := range map[string]GridConfig{"source": c.Source, "target": c.Target} {
		if err := g.validate(); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidConfig, name, err)
		}
	}
	x := c.XGrid
	switch {
	case x.Order != 1 && x.Order != 2:
		return fmt.Errorf("%w: xgrid.order %d", ErrInvalidConfig, x.Order)
	case x.AreaRatio < 0 || x.AreaRatio >= 1:
		return fmt.Errorf("%w: xgrid.area_ratio %g", ErrInvalidConfig, x.AreaRatio)
	case x.Search != "rtree" && x.Search != "brute":
		return fmt.Errorf("%w: xgrid.search %q", ErrInvalidConfig, x.Search)
	case x.Workers < 0:
		return fmt.Errorf("%w: xgrid.workers %d", ErrInvalidConfig, x.Workers)
	}
	d := c.Decompose
	if d.NX <= 0 || d.NY <= 0 || d.XHalo < 0 || d.YHalo < 0 || d.PX < 0 || d.PY < 0 || d.NPes < 0 {
		return fmt.Errorf("%w: decompose %+v", ErrInvalidConfig, d)
	}
	if d.PX*d.PY == 0 && d.NPes == 0 {
		return fmt.Errorf("%w: decompose needs px/py or npes", ErrInvalidConfig)
	}

	return nil
}

func (g GridConfig) validate() error {
	typ, err := grid.ParseGridType(g.Type)
	if err != nil {
		return err
	}
	if typ == grid.GnomonicED {
		if g.CubeN < 1 {
			return fmt.Errorf("cube_n %d", g.CubeN)
		}
		return nil
	}
	spec, err := g.Spec()
	if err != nil {
		return err
	}
	_, err = grid.Configure(spec)

	return err
}

// Spec converts a regular_lonlat_grid config into a grid.LonLatSpec.
func (g GridConfig) Spec() (grid.LonLatSpec, error) {
	if len(g.LonRange) != 2 || len(g.LatRange) != 2 {
		return grid.LonLatSpec{}, fmt.Errorf("lon_range and lat_range need two values, got %v and %v", g.LonRange, g.LatRange)
	}
	mode, err := grid.ParseMode(g.Mode)
	if err != nil {
		return grid.LonLatSpec{}, err
	}

	return grid.LonLatSpec{
		LonRange:    [2]float64{g.LonRange[0], g.LonRange[1]},
		LatRange:    [2]float64{g.LatRange[0], g.LatRange[1]},
		NLon:        g.NLon,
		NLat:        g.NLat,
		RefineSteps: g.RefineSteps,
		CenterY:     g.CenterY,
		Mode:        mode,
	}, nil
}

// Build constructs the tiles the config describes.
func (g GridConfig) Build() ([]*grid.Tile, error) {
	typ, err := grid.ParseGridType(g.Type)
	if err != nil {
		return nil, err
	}
	if typ == grid.GnomonicED {
		return grid.BuildCubeSphere(g.CubeN)
	}
	spec, err := g.Spec()
	if err != nil {
		return nil, err
	}
	t, err := grid.Build(spec)
	if err != nil {
		return nil, err
	}

	return []*grid.Tile{t}, nil
}
