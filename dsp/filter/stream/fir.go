package stream

import (
	"fmt"

	"github.com/cwbudde/algo-seisdsp/dsp/core"
	"github.com/cwbudde/algo-seisdsp/dsp/filter/rep"
)

// FIRFilterT is a direct-form FIR filter with an nt-1 sample delay line:
//
//	y[n] = sum_{k=0}^{nt-1} b[k] * x[n-k]
type FIRFilterT[F core.Float] struct {
	taps []F
	zi   []F
	dly  []F
	ext  []F
	mode core.ProcessingMode
	init bool
}

// FIRFilter is the float64 specialization.
type FIRFilter = FIRFilterT[float64]

// FIRFilter32 is the float32 specialization.
type FIRFilter32 = FIRFilterT[float32]

// NewFIRFilter creates and initializes a float64 FIR filter.
func NewFIRFilter(taps []float64, opts ...Option) (*FIRFilter, error) {
	f := &FIRFilter{}
	if err := f.Initialize(taps, opts...); err != nil {
		return nil, err
	}
	return f, nil
}

// Initialize captures the tap values and allocates the delay line. The
// initial conditions start at zero.
func (f *FIRFilterT[F]) Initialize(taps []float64, opts ...Option) error {
	f.Clear()
	if len(taps) == 0 {
		return fmt.Errorf("stream: fir taps must not be empty")
	}
	cfg := applyOptions(opts)

	f.taps = narrow[F](taps)
	f.zi = make([]F, len(taps)-1)
	f.dly = make([]F, len(taps)-1)
	f.mode = cfg.mode
	f.init = true
	return nil
}

// InitializeFromRepresentation initializes from a design output.
func (f *FIRFilterT[F]) InitializeFromRepresentation(fir rep.FIR, opts ...Option) error {
	return f.Initialize(fir.Taps(), opts...)
}

// IsInitialized reports whether the filter can accept samples.
func (f *FIRFilterT[F]) IsInitialized() bool { return f.init }

// InitialConditionLength returns the delay-line length nt-1.
func (f *FIRFilterT[F]) InitialConditionLength() (int, error) {
	if !f.init {
		return 0, ErrNotInitialized
	}
	return len(f.zi), nil
}

// SetInitialConditions stamps zi and loads it into the working delay
// line. zi[0] is the most recent past input x[-1], zi[1] is x[-2], and
// so on.
func (f *FIRFilterT[F]) SetInitialConditions(zi []float64) error {
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

// ResetInitialConditions restores the working delay line to the stamped
// initial conditions.
func (f *FIRFilterT[F]) ResetInitialConditions() error {
	if !f.init {
		return ErrNotInitialized
	}
	copy(f.dly, f.zi)
	return nil
}

// Apply filters src into dst, which must hold at least len(src) samples.
// In real-time mode the trailing input samples become the delay line for
// the next call; in post-processing mode the delay line is untouched.
func (f *FIRFilterT[F]) Apply(dst, src []F) error {
	if !f.init {
		return ErrNotInitialized
	}
	if len(src) == 0 {
		return nil
	}
	if len(dst) < len(src) {
		return errShortOutput(len(src), len(dst))
	}

	order := len(f.taps) - 1
	f.ext = core.EnsureLen(f.ext, order+len(src))
	// The delay line stores past inputs newest-first; the extended signal
	// is oldest-first.
	for i := 0; i < order; i++ {
		f.ext[i] = f.dly[order-1-i]
	}
	copy(f.ext[order:], src)

	for i := range src {
		var acc F
		base := order + i
		for k, b := range f.taps {
			acc += b * f.ext[base-k]
		}
		dst[i] = acc
	}

	if f.mode == core.RealTime && order > 0 {
		for i := 0; i < order; i++ {
			f.dly[i] = f.ext[order+len(src)-1-i]
		}
	}
	return nil
}

// Clear releases all state and returns the filter to uninitialized.
func (f *FIRFilterT[F]) Clear() {
	f.taps = nil
	f.zi = nil
	f.dly = nil
	f.ext = nil
	f.mode = core.PostProcessing
	f.init = false
}
