// SPDX-License-Identifier: MIT

package cubesphere

import (
	"go.uber.org/zap"

	"github.com/katalvlaran/sphgrid/field"
)

// CornerPolicy selects how the corner blocks of a halo are filled.
type CornerPolicy int

const (
	// CornerAverage fills the mean of the two diagonal reflections.
	CornerAverage CornerPolicy = iota
	// CornerMissing fills MissingValue.
	CornerMissing
)

// MissingValue marks halo points with no source.
const MissingValue = -9999.0

// Defaults: cell-centred, no pair, averaged corners.
const (
	DefaultIOff         = 0
	DefaultJOff         = 0
	DefaultCornerPolicy = CornerAverage
)

const (
	panicStaggerInvalid = "cubesphere: WithStagger: offsets must be 0 or 1"
	panicPolicyInvalid  = "cubesphere: WithCornerPolicy: unknown policy"
)

// Option configures FillHalo and Exchange.
type Option func(*Options)

// Options is the effective halo configuration.
type Options struct {
	ioff, joff int
	pair       []*field.Field
	corners    CornerPolicy
	logger     *zap.Logger
}

func defaultOptions() Options {
	return Options{
		ioff:    DefaultIOff,
		joff:    DefaultJOff,
		corners: DefaultCornerPolicy,
		logger:  zap.NewNop(),
	}
}

func gatherOptions(opts ...Option) Options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// WithStagger sets the field location: ioff = 1 for points on x cell
// edges, joff = 1 for points on y cell edges.
func WithStagger(ioff, joff int) Option {
	if ioff < 0 || ioff > 1 || joff < 0 || joff > 1 {
		panic(panicStaggerInvalid)
	}

	return func(o *Options) { o.ioff, o.joff = ioff, joff }
}

// WithPair supplies the companion field read across swapped edges. Its tiles
// are (n+joff)×(n+ioff). Without a pair the field is its own companion.
func WithPair(pair []*field.Field) Option {
	return func(o *Options) { o.pair = pair }
}

// WithCornerPolicy selects the corner fill.
func WithCornerPolicy(p CornerPolicy) Option {
	if p != CornerAverage && p != CornerMissing {
		panic(panicPolicyInvalid)
	}

	return func(o *Options) { o.corners = p }
}

// WithLogger sets a logger for exchange diagnostics. nil keeps the no-op
// logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.logger = l
		}
	}
}
