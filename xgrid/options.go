// SPDX-License-Identifier: MIT

package xgrid

import (
	"context"
	"runtime"

	"go.uber.org/zap"

	"github.com/katalvlaran/sphgrid/sphere"
)

// SearchMode selects the candidate search.
type SearchMode int

const (
	// SearchRTree queries an R-tree of source cell boxes.
	SearchRTree SearchMode = iota
	// SearchBruteForce tests every source box against every target box.
	SearchBruteForce
)

// Normalization selects the divisor used by Remap.
type Normalization int

const (
	// NormalizeDestArea divides by the full target cell area.
	NormalizeDestArea Normalization = iota
	// NormalizeFraction divides by the covered part of the target cell.
	NormalizeFraction
)

// Stencil selects the neighbours used for order-2 gradients.
type Stencil int

const (
	// Conn4 uses the W, E, S, N neighbours.
	Conn4 Stencil = iota
	// Conn8 adds the diagonal neighbours.
	Conn8
)

// stencilOffsets are (di, dj) per stencil.
var stencilOffsets = map[Stencil][][2]int{
	Conn4: {{0, -1}, {1, 0}, {0, 1}, {-1, 0}},
	Conn8: {{0, -1}, {1, -1}, {1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}},
}

// Defaults.
const (
	// DefaultOrder is first-order conservative.
	DefaultOrder = 1
	// DefaultAreaRatio drops overlaps smaller than this fraction of the
	// smaller of the two cells.
	DefaultAreaRatio = 1e-6
	// DefaultWorkers = 0 means runtime.GOMAXPROCS(0).
	DefaultWorkers = 0
	// DefaultSearch is the R-tree.
	DefaultSearch = SearchRTree
	// DefaultNormalization divides by the target cell area.
	DefaultNormalization = NormalizeDestArea
	// DefaultFillValue is written to target cells no record reaches.
	DefaultFillValue = 0.0
	// DefaultStencil is Conn4.
	DefaultStencil = Conn4
)

// boxPad widens source boxes so that shared edges always overlap.
const boxPad = 1e-9

const (
	panicWorkersInvalid   = "xgrid: WithWorkers: n must be > 0"
	panicAreaRatioInvalid = "xgrid: WithAreaRatio: ratio must be in [0,1)"
	panicSearchInvalid    = "xgrid: WithSearch: unknown mode"
	panicNormInvalid      = "xgrid: WithNormalize: unknown normalization"
	panicStencilInvalid   = "xgrid: WithStencil: unknown stencil"
	panicContextNil       = "xgrid: WithContext: nil context"
)

// Option configures Create and Remap.
type Option func(*Options)

// Options is the effective configuration.
type Options struct {
	order     int
	mask      []float64
	arc       *sphere.Arc
	workers   int
	logger    *zap.Logger
	ctx       context.Context
	areaRatio float64
	search    SearchMode
	norm      Normalization
	fill      float64
	stencil   Stencil
	limit     bool
}

func defaultOptions() Options {
	return Options{
		order:     DefaultOrder,
		workers:   DefaultWorkers,
		logger:    zap.NewNop(),
		ctx:       context.Background(),
		areaRatio: DefaultAreaRatio,
		search:    DefaultSearch,
		norm:      DefaultNormalization,
		fill:      DefaultFillValue,
		stencil:   DefaultStencil,
	}
}

func gatherOptions(opts ...Option) Options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.workers == 0 {
		o.workers = runtime.GOMAXPROCS(0)
	}

	return o
}

// WithOrder sets the interpolation order (1 or 2). Other values make
// Create fail with ErrInvalidOrder.
func WithOrder(order int) Option {
	return func(o *Options) { o.order = order }
}

// WithMask sets the source validity mask (> 0.5 is valid), overriding the
// source tile's own mask.
func WithMask(mask []float64) Option {
	return func(o *Options) { o.mask = mask }
}

// WithArc forces the edge type used for clipping.
func WithArc(a sphere.Arc) Option {
	return func(o *Options) { o.arc = &a }
}

// WithWorkers bounds the number of goroutines.
func WithWorkers(n int) Option {
	if n <= 0 {
		panic(panicWorkersInvalid)
	}

	return func(o *Options) { o.workers = n }
}

// WithLogger sets the logger; nil keeps the no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithContext lets the caller cancel a build.
func WithContext(ctx context.Context) Option {
	if ctx == nil {
		panic(panicContextNil)
	}

	return func(o *Options) { o.ctx = ctx }
}

// WithAreaRatio sets the relative area below which overlaps are dropped.
func WithAreaRatio(r float64) Option {
	if r < 0 || r >= 1 {
		panic(panicAreaRatioInvalid)
	}

	return func(o *Options) { o.areaRatio = r }
}

// WithSearch selects the candidate search.
func WithSearch(m SearchMode) Option {
	if m != SearchRTree && m != SearchBruteForce {
		panic(panicSearchInvalid)
	}

	return func(o *Options) { o.search = m }
}

// WithNormalize selects the Remap divisor.
func WithNormalize(n Normalization) Option {
	if n != NormalizeDestArea && n != NormalizeFraction {
		panic(panicNormInvalid)
	}

	return func(o *Options) { o.norm = n }
}

// WithFillValue sets the Remap value of uncovered target cells.
func WithFillValue(v float64) Option {
	return func(o *Options) { o.fill = v }
}

// WithStencil selects the gradient neighbours for order-2 Remap.
func WithStencil(s Stencil) Option {
	if _, ok := stencilOffsets[s]; !ok {
		panic(panicStencilInvalid)
	}

	return func(o *Options) { o.stencil = s }
}

// WithLimiter scales order-2 gradients so that no overlap value leaves the
// range of the source cell and its stencil neighbours.
func WithLimiter() Option {
	return func(o *Options) { o.limit = true }
}
