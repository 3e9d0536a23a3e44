// Package transform provides the real-to-complex DFT plan, the analytic
// envelope transforms and the DFT utility functions.
package transform

import (
	"errors"
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/cwbudde/algo-seisdsp/dsp/core"
)

// ErrNotInitialized is returned by any operation on a transform that has
// not been (or is no longer) successfully initialized.
var ErrNotInitialized = errors.New("transform: not initialized")

// Implementation selects the transform backend.
type Implementation int

const (
	// ImplementationDFT always works, for any transform length.
	ImplementationDFT Implementation = iota
	// ImplementationFFT uses a power-of-two FFT plan; requesting it for a
	// non-power-of-two length silently falls back to the DFT backend.
	ImplementationFFT
)

// Option configures a transform at initialization.
type Option func(*options)

type options struct {
	impl Implementation
	mode core.ProcessingMode
}

func applyTransformOptions(opts []Option) options {
	var cfg options
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithImplementation requests a transform backend.
func WithImplementation(impl Implementation) Option {
	return func(o *options) {
		o.impl = impl
	}
}

// WithMode selects post-processing (default) or real-time semantics for
// the transforms that distinguish them.
func WithMode(mode core.ProcessingMode) Option {
	return func(o *options) {
		o.mode = mode
	}
}

// RealToComplexDFTT is a fixed-length plan for forward real-to-complex
// and inverse complex-to-real transforms. Forward input shorter than the
// plan length is zero-padded; inverse input shorter than N/2+1 bins is
// Hermitian-extended with zeros. Inverse output carries the 1/N scale, so
// Inverse(Forward(x)) == x.
type RealToComplexDFTT[F core.Float] struct {
	n    int
	impl Implementation

	rfft  *fourier.FFT
	plan  *algofft.Plan[complex128]
	cbuf  []complex128
	fbuf  []float64
	init  bool
}

// RealToComplexDFT is the float64 specialization.
type RealToComplexDFT = RealToComplexDFTT[float64]

// RealToComplexDFT32 is the float32 specialization.
type RealToComplexDFT32 = RealToComplexDFTT[float32]

// NewRealToComplexDFT creates and initializes a float64 plan.
func NewRealToComplexDFT(n int, opts ...Option) (*RealToComplexDFT, error) {
	d := &RealToComplexDFT{}
	if err := d.Initialize(n, opts...); err != nil {
		return nil, err
	}
	return d, nil
}

// Initialize fixes the transform length and builds the backend plan.
func (d *RealToComplexDFTT[F]) Initialize(n int, opts ...Option) error {
	d.Clear()
	if n < 2 {
		return fmt.Errorf("transform: length must be at least 2: %d", n)
	}
	cfg := applyTransformOptions(opts)

	impl := ImplementationDFT
	if cfg.impl == ImplementationFFT && n&(n-1) == 0 {
		plan, err := algofft.NewPlan64(n)
		if err != nil {
			d.Clear()
			return fmt.Errorf("transform: fft plan creation failed: %w", err)
		}
		d.plan = plan
		d.cbuf = make([]complex128, n)
		impl = ImplementationFFT
	} else {
		d.rfft = fourier.NewFFT(n)
		d.fbuf = make([]float64, n)
	}

	d.n = n
	d.impl = impl
	d.init = true
	return nil
}

// IsInitialized reports whether the plan is usable.
func (d *RealToComplexDFTT[F]) IsInitialized() bool { return d.init }

// Implementation returns the backend actually in use.
func (d *RealToComplexDFTT[F]) Implementation() (Implementation, error) {
	if !d.init {
		return 0, ErrNotInitialized
	}
	return d.impl, nil
}

// SignalLength returns the plan length N.
func (d *RealToComplexDFTT[F]) SignalLength() (int, error) {
	if !d.init {
		return 0, ErrNotInitialized
	}
	return d.n, nil
}

// Length returns the forward output bin count N/2 + 1.
func (d *RealToComplexDFTT[F]) Length() (int, error) {
	if !d.init {
		return 0, ErrNotInitialized
	}
	return d.n/2 + 1, nil
}

// Forward transforms up to N real samples (zero-padded) into N/2+1
// complex bins.
func (d *RealToComplexDFTT[F]) Forward(x []F) ([]complex128, error) {
	if !d.init {
		return nil, ErrNotInitialized
	}
	if len(x) > d.n {
		return nil, fmt.Errorf("transform: input length %d exceeds plan length %d", len(x), d.n)
	}

	nbins := d.n/2 + 1
	if d.impl == ImplementationFFT {
		for i := range d.cbuf {
			d.cbuf[i] = 0
		}
		for i, v := range x {
			d.cbuf[i] = complex(float64(v), 0)
		}
		if err := d.plan.Forward(d.cbuf, d.cbuf); err != nil {
			return nil, fmt.Errorf("transform: forward fft failed: %w", err)
		}
		out := make([]complex128, nbins)
		copy(out, d.cbuf[:nbins])
		return out, nil
	}

	core.Zero(d.fbuf)
	for i, v := range x {
		d.fbuf[i] = float64(v)
	}
	return d.rfft.Coefficients(nil, d.fbuf), nil
}

// Inverse transforms up to N/2+1 complex bins (zero-extended, Hermitian
// symmetry implied) into N real samples scaled by 1/N.
func (d *RealToComplexDFTT[F]) Inverse(bins []complex128) ([]F, error) {
	if !d.init {
		return nil, ErrNotInitialized
	}
	nbins := d.n/2 + 1
	if len(bins) > nbins {
		return nil, fmt.Errorf("transform: bin count %d exceeds %d", len(bins), nbins)
	}

	out := make([]F, d.n)
	scale := 1 / float64(d.n)

	if d.impl == ImplementationFFT {
		for i := range d.cbuf {
			d.cbuf[i] = 0
		}
		copy(d.cbuf, bins)
		// Hermitian extension of the upper half.
		for k := 1; k < nbins-1; k++ {
			re, im := real(d.cbuf[k]), imag(d.cbuf[k])
			d.cbuf[d.n-k] = complex(re, -im)
		}
		if err := d.plan.Inverse(d.cbuf, d.cbuf); err != nil {
			return nil, fmt.Errorf("transform: inverse fft failed: %w", err)
		}
		for i := range out {
			out[i] = F(real(d.cbuf[i]))
		}
		return out, nil
	}

	full := make([]complex128, nbins)
	copy(full, bins)
	seq := d.rfft.Sequence(nil, full)
	for i, v := range seq {
		out[i] = F(v * scale)
	}
	return out, nil
}

// Clear releases the plan and returns to uninitialized.
func (d *RealToComplexDFTT[F]) Clear() {
	d.n = 0
	d.impl = ImplementationDFT
	d.rfft = nil
	d.plan = nil
	d.cbuf = nil
	d.fbuf = nil
	d.init = false
}
