// Package stream implements the stateful streaming filter engines: direct
// form FIR, IIR (direct form II and transposed), cascaded second-order
// sections, zero-phase IIR, sliding median, downsampling, multi-rate FIR
// and decimation.
//
// Every engine runs in one of two modes. In post-processing mode each
// Apply is an independent stream starting from the stamped initial
// conditions. In real-time mode the delay line persists across calls, so
// arbitrarily chopped packets concatenate to exactly the single-shot
// post-processing output.
//
// Engines are generic over the sample type; Xxx and Xxx32 are the float64
// and float32 specializations. Coefficients always enter as float64 (the
// design packages produce float64) and are narrowed at initialization.
package stream

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-seisdsp/dsp/core"
)

// ErrNotInitialized is returned by any operation on an engine that has not
// been (or is no longer) successfully initialized.
var ErrNotInitialized = errors.New("stream: filter not initialized")

// IIRImplementation selects the recurrence used by the IIR engine.
type IIRImplementation int

const (
	// DirectFormIITransposed is the numerically preferred default.
	DirectFormIITransposed IIRImplementation = iota
	// DirectFormII is the faster non-transposed form.
	DirectFormII
)

// Option configures an engine at initialization.
type Option func(*options)

type options struct {
	mode             core.ProcessingMode
	impl             IIRImplementation
	padLength        int
	startPhase       int
	filterLength     int
	removePhaseShift bool
}

func defaultOptions() options {
	return options{
		mode:             core.PostProcessing,
		impl:             DirectFormIITransposed,
		filterLength:     30,
		removePhaseShift: true,
	}
}

func applyOptions(opts []Option) options {
	cfg := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithMode selects post-processing (default) or real-time semantics.
func WithMode(mode core.ProcessingMode) Option {
	return func(o *options) {
		o.mode = mode
	}
}

// WithImplementation selects the IIR recurrence form.
func WithImplementation(impl IIRImplementation) Option {
	return func(o *options) {
		o.impl = impl
	}
}

// WithPadLength overrides the zero-phase reflect-pad length. The default
// is 3*max(nb, na).
func WithPadLength(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.padLength = n
		}
	}
}

// WithStartPhase sets the initial downsampler phase in [0, factor).
func WithStartPhase(phase int) Option {
	return func(o *options) {
		if phase >= 0 {
			o.startPhase = phase
		}
	}
}

// WithFilterLength sets the requested anti-alias FIR length for the
// decimator. The decimator may grow it to satisfy its alignment rules.
func WithFilterLength(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.filterLength = n
		}
	}
}

// WithPhaseShiftRemoval controls whether the decimator compensates the
// FIR group delay. Removal only applies in post-processing mode.
func WithPhaseShiftRemoval(enabled bool) Option {
	return func(o *options) {
		o.removePhaseShift = enabled
	}
}

// errShortOutput formats the short-destination argument error.
func errShortOutput(need, got int) error {
	return fmt.Errorf("stream: output needs %d samples, got %d", need, got)
}

// narrow converts design coefficients to the engine sample type.
func narrow[F core.Float](src []float64) []F {
	dst := make([]F, len(src))
	for i, v := range src {
		dst[i] = F(v)
	}
	return dst
}
