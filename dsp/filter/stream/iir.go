package stream

import (
	"fmt"

	"github.com/cwbudde/algo-seisdsp/dsp/core"
	"github.com/cwbudde/algo-seisdsp/dsp/filter/rep"
)

// IIRFilterT filters with the difference equation
//
//	a[0]*y[n] = sum_k b[k]*x[n-k] - sum_{k>0} a[k]*y[n-k]
//
// using either the transposed direct form II (default, numerically
// preferred) or the faster non-transposed direct form II. The state holds
// max(nb, na)-1 accumulators; its layout is implementation specific, so
// initial conditions are portable only between filters using the same
// form.
type IIRFilterT[F core.Float] struct {
	b    []F
	a    []F
	zi   []F
	dly  []F
	work []F
	mode core.ProcessingMode
	impl IIRImplementation
	init bool
}

// IIRFilter is the float64 specialization.
type IIRFilter = IIRFilterT[float64]

// IIRFilter32 is the float32 specialization.
type IIRFilter32 = IIRFilterT[float32]

// NewIIRFilter creates and initializes a float64 IIR filter.
func NewIIRFilter(b, a []float64, opts ...Option) (*IIRFilter, error) {
	f := &IIRFilter{}
	if err := f.Initialize(b, a, opts...); err != nil {
		return nil, err
	}
	return f, nil
}

// Initialize captures the coefficients, normalizes them by a[0] and pads
// both to max(nb, na).
func (f *IIRFilterT[F]) Initialize(b, a []float64, opts ...Option) error {
	f.Clear()
	if len(b) == 0 || len(a) == 0 {
		return fmt.Errorf("stream: iir coefficients must not be empty")
	}
	if a[0] == 0 {
		return fmt.Errorf("stream: leading denominator coefficient is zero")
	}
	cfg := applyOptions(opts)

	n := len(b)
	if len(a) > n {
		n = len(a)
	}
	bn := make([]float64, n)
	an := make([]float64, n)
	for i, v := range b {
		bn[i] = v / a[0]
	}
	for i, v := range a {
		an[i] = v / a[0]
	}

	f.b = narrow[F](bn)
	f.a = narrow[F](an)
	f.zi = make([]F, n-1)
	f.dly = make([]F, n-1)
	f.work = make([]F, n-1)
	f.mode = cfg.mode
	f.impl = cfg.impl
	f.init = true
	return nil
}

// InitializeFromRepresentation initializes from a design output.
func (f *IIRFilterT[F]) InitializeFromRepresentation(ba rep.BA, opts ...Option) error {
	return f.Initialize(ba.Numerator(), ba.Denominator(), opts...)
}

// IsInitialized reports whether the filter can accept samples.
func (f *IIRFilterT[F]) IsInitialized() bool { return f.init }

// InitialConditionLength returns max(nb, na)-1.
func (f *IIRFilterT[F]) InitialConditionLength() (int, error) {
	if !f.init {
		return 0, ErrNotInitialized
	}
	return len(f.zi), nil
}

// SetInitialConditions stamps zi and loads it into the working state.
func (f *IIRFilterT[F]) SetInitialConditions(zi []float64) error {
	if !f.init {
		return ErrNotInitialized
	}
	if len(zi) != len(f.zi) {
		return fmt.Errorf("stream: initial conditions need %d samples, got %d", len(f.zi), len(zi))
	}
	for i, v := range zi {
		f.zi[i] = F(v)
	}
	copy(f.dly, f.zi)
	return nil
}

// ResetInitialConditions restores the working state to the stamped
// initial conditions.
func (f *IIRFilterT[F]) ResetInitialConditions() error {
	if !f.init {
		return ErrNotInitialized
	}
	copy(f.dly, f.zi)
	return nil
}

// Apply filters src into dst, which must hold at least len(src) samples.
func (f *IIRFilterT[F]) Apply(dst, src []F) error {
	if !f.init {
		return ErrNotInitialized
	}
	if len(src) == 0 {
		return nil
	}
	if len(dst) < len(src) {
		return errShortOutput(len(src), len(dst))
	}

	state := f.dly
	if f.mode == core.PostProcessing {
		copy(f.work, f.dly)
		state = f.work
	}

	if f.impl == DirectFormII {
		df2Kernel(f.b, f.a, state, dst, src)
	} else {
		df2tKernel(f.b, f.a, state, dst, src)
	}
	return nil
}

// Clear releases all state and returns the filter to uninitialized.
func (f *IIRFilterT[F]) Clear() {
	f.b = nil
	f.a = nil
	f.zi = nil
	f.dly = nil
	f.work = nil
	f.mode = core.PostProcessing
	f.impl = DirectFormIITransposed
	f.init = false
}

// df2tKernel runs the transposed direct form II recurrence. b and a are
// normalized and padded to equal length n; state holds n-1 accumulators.
func df2tKernel[F core.Float](b, a, state []F, dst, src []F) {
	order := len(b) - 1
	if order == 0 {
		for i, x := range src {
			dst[i] = b[0] * x
		}
		return
	}
	for i, x := range src {
		y := b[0]*x + state[0]
		for k := 0; k < order-1; k++ {
			state[k] = b[k+1]*x + state[k+1] - a[k+1]*y
		}
		state[order-1] = b[order]*x - a[order]*y
		dst[i] = y
	}
}

// df2Kernel runs the non-transposed direct form II recurrence; the state
// holds the most recent intermediate values w[n-1..n-order].
func df2Kernel[F core.Float](b, a, state []F, dst, src []F) {
	order := len(b) - 1
	if order == 0 {
		for i, x := range src {
			dst[i] = b[0] * x
		}
		return
	}
	for i, x := range src {
		w := x
		for k := 0; k < order; k++ {
			w -= a[k+1] * state[k]
		}
		y := b[0] * w
		for k := 0; k < order; k++ {
			y += b[k+1] * state[k]
		}
		copy(state[1:], state[:order-1])
		state[0] = w
		dst[i] = y
	}
}
