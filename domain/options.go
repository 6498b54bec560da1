// SPDX-License-Identifier: MIT

package domain

// Defaults: closed boundaries, explicit layout.
const (
	DefaultCyclicX  = false
	DefaultTripolar = false
)

const panicPEsInvalid = "domain: WithPEs: npes must be > 0"

// Option configures Define.
type Option func(*Options)

// Options is the effective Define configuration.
type Options struct {
	cyclicX  bool
	tripolar bool
	npes     int // used when the layout passed to Define is zero
}

func defaultOptions() Options {
	return Options{cyclicX: DefaultCyclicX, tripolar: DefaultTripolar}
}

func gatherOptions(opts ...Option) Options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.tripolar {
		o.cyclicX = true
	}

	return o
}

// WithCyclicX makes the x axis periodic: index nx wraps to 0 and -1 to nx-1.
func WithCyclicX() Option {
	return func(o *Options) { o.cyclicX = true }
}

// WithTripolarFold makes x periodic and folds the northern seam: the row
// above ny-1 is row ny-1 read in reverse, (i, ny+k) ↦ (nx-1-i, ny-1-k).
func WithTripolarFold() Option {
	return func(o *Options) { o.tripolar = true }
}

// WithPEs lets Define choose the layout (via DefineLayout) when it is given
// the zero Layout.
func WithPEs(npes int) Option {
	if npes <= 0 {
		panic(panicPEsInvalid)
	}

	return func(o *Options) { o.npes = npes }
}
