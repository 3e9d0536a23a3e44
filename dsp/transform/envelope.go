package transform

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/cwbudde/algo-seisdsp/dsp/core"
)

// EnvelopeT computes the magnitude of the analytic signal through the
// frequency-domain construction: the negative-frequency half of the
// spectrum is zeroed and the positive half doubled, so the inverse
// transform yields x + j*H{x}. The transform length is fixed at
// initialization; this is a whole-signal (post-processing) operation.
type EnvelopeT[F core.Float] struct {
	n    int
	impl Implementation

	plan  *fourier.CmplxFFT
	plan2 *algofft.Plan[complex128]
	buf   []complex128
	aux   []complex128
	re    []float64
	im    []float64
	mag   []float64
	init  bool
}

// Envelope is the float64 specialization.
type Envelope = EnvelopeT[float64]

// Envelope32 is the float32 specialization.
type Envelope32 = EnvelopeT[float32]

// NewEnvelope creates and initializes a float64 envelope transform.
func NewEnvelope(n int, opts ...Option) (*Envelope, error) {
	e := &Envelope{}
	if err := e.Initialize(n, opts...); err != nil {
		return nil, err
	}
	return e, nil
}

// Initialize fixes the signal length. ImplementationFFT uses a
// power-of-two plan when possible.
func (e *EnvelopeT[F]) Initialize(n int, opts ...Option) error {
	e.Clear()
	if n < 2 {
		return fmt.Errorf("transform: envelope length must be at least 2: %d", n)
	}
	cfg := applyTransformOptions(opts)

	impl := ImplementationDFT
	if cfg.impl == ImplementationFFT && n&(n-1) == 0 {
		plan, err := algofft.NewPlan64(n)
		if err != nil {
			e.Clear()
			return fmt.Errorf("transform: fft plan creation failed: %w", err)
		}
		e.plan2 = plan
		impl = ImplementationFFT
	} else {
		e.plan = fourier.NewCmplxFFT(n)
	}

	e.n = n
	e.impl = impl
	e.buf = make([]complex128, n)
	e.aux = make([]complex128, n)
	e.re = make([]float64, n)
	e.im = make([]float64, n)
	e.mag = make([]float64, n)
	e.init = true
	return nil
}

// IsInitialized reports whether the transform is usable.
func (e *EnvelopeT[F]) IsInitialized() bool { return e.init }

// Length returns the fixed signal length.
func (e *EnvelopeT[F]) Length() (int, error) {
	if !e.init {
		return 0, ErrNotInitialized
	}
	return e.n, nil
}

// Apply computes the envelope of exactly Length() samples into dst.
func (e *EnvelopeT[F]) Apply(dst, src []F) error {
	if !e.init {
		return ErrNotInitialized
	}
	if len(src) != e.n {
		return fmt.Errorf("transform: envelope input needs %d samples, got %d", e.n, len(src))
	}
	if len(dst) < e.n {
		return fmt.Errorf("transform: envelope output needs %d samples, got %d", e.n, len(dst))
	}

	for i, v := range src {
		e.buf[i] = complex(float64(v), 0)
	}
	if err := e.forward(); err != nil {
		return err
	}

	// Analytic-signal spectrum: keep DC (and Nyquist for even lengths),
	// double the positive frequencies, zero the rest.
	half := e.n / 2
	for k := 1; k < half; k++ {
		e.buf[k] *= 2
	}
	if e.n%2 == 1 {
		e.buf[half] *= 2
	}
	for k := half + 1; k < e.n; k++ {
		e.buf[k] = 0
	}

	if err := e.inverse(); err != nil {
		return err
	}

	for i, v := range e.buf {
		e.re[i] = real(v)
		e.im[i] = imag(v)
	}
	vecmath.Magnitude(e.mag, e.re, e.im)
	for i := range dst[:e.n] {
		dst[i] = F(e.mag[i])
	}
	return nil
}

func (e *EnvelopeT[F]) forward() error {
	if e.impl == ImplementationFFT {
		if err := e.plan2.Forward(e.buf, e.buf); err != nil {
			return fmt.Errorf("transform: forward fft failed: %w", err)
		}
		return nil
	}
	e.plan.Coefficients(e.aux, e.buf)
	copy(e.buf, e.aux)
	return nil
}

func (e *EnvelopeT[F]) inverse() error {
	if e.impl == ImplementationFFT {
		if err := e.plan2.Inverse(e.buf, e.buf); err != nil {
			return fmt.Errorf("transform: inverse fft failed: %w", err)
		}
		return nil
	}
	e.plan.Sequence(e.aux, e.buf)
	scale := complex(1/float64(e.n), 0)
	for i := range e.buf {
		e.buf[i] = e.aux[i] * scale
	}
	return nil
}

// Clear releases the plan and returns to uninitialized.
func (e *EnvelopeT[F]) Clear() {
	e.n = 0
	e.impl = ImplementationDFT
	e.plan = nil
	e.plan2 = nil
	e.buf = nil
	e.aux = nil
	e.re = nil
	e.im = nil
	e.mag = nil
	e.init = false
}
