package stream

import (
	"fmt"

	"github.com/cwbudde/algo-seisdsp/dsp/core"
	"github.com/cwbudde/algo-seisdsp/dsp/filter/design"
	"github.com/cwbudde/algo-seisdsp/dsp/window"
)

// DecimatorT lowpass-filters with a Hamming-window FIR at cutoff 1/q and
// keeps every q-th sample. With phase-shift removal (post-processing
// only, the default) the output is advanced by the FIR group delay and
// trimmed so that ceil(n/q) aligned samples come out; the filter length
// is grown so that group delay + 1 divides evenly by q. In real-time
// mode, or with removal disabled, the causal filter-then-downsample
// chain runs with carried state.
type DecimatorT[F core.Float] struct {
	factor      int
	firLen      int
	groupDelay  int
	removeShift bool
	fir         FIRFilterT[F]
	down        DownsamplerT[F]
	tmp         []F
	ext         []F
	mode        core.ProcessingMode
	init        bool
}

// Decimator is the float64 specialization.
type Decimator = DecimatorT[float64]

// Decimator32 is the float32 specialization.
type Decimator32 = DecimatorT[float32]

// NewDecimator creates and initializes a float64 decimator.
func NewDecimator(factor int, opts ...Option) (*Decimator, error) {
	f := &Decimator{}
	if err := f.Initialize(factor, opts...); err != nil {
		return nil, err
	}
	return f, nil
}

// Initialize designs the anti-alias filter and sets up the chain. The
// requested filter length (WithFilterLength, default 30, minimum 5) may
// grow to satisfy the alignment rules.
func (f *DecimatorT[F]) Initialize(factor int, opts ...Option) error {
	f.Clear()
	if factor < 2 {
		return fmt.Errorf("stream: decimation factor must be at least 2: %d", factor)
	}
	cfg := applyOptions(opts)
	if cfg.filterLength < 5 {
		return fmt.Errorf("stream: decimator filter length must be at least 5: %d", cfg.filterLength)
	}

	removeShift := cfg.removePhaseShift && cfg.mode == core.PostProcessing
	firLen := cfg.filterLength
	if removeShift {
		// Odd length keeps the group delay integral; growing until
		// groupDelay+1 divides by the factor aligns the advanced output
		// with the input grid.
		for firLen%2 == 0 || ((firLen-1)/2+1)%factor != 0 {
			firLen++
		}
	}

	taps, err := design.FIRLowpass(firLen-1, 1/float64(factor), window.TypeHamming)
	if err != nil {
		f.Clear()
		return fmt.Errorf("stream: decimator filter design failed: %w", err)
	}
	actual := taps.Taps()

	if err := f.fir.Initialize(actual, WithMode(cfg.mode)); err != nil {
		f.Clear()
		return err
	}
	if err := f.down.Initialize(factor, WithMode(cfg.mode)); err != nil {
		f.Clear()
		return err
	}

	f.factor = factor
	f.firLen = len(actual)
	f.groupDelay = (len(actual) - 1) / 2
	f.removeShift = removeShift
	f.mode = cfg.mode
	f.init = true
	return nil
}

// IsInitialized reports whether the decimator can accept samples.
func (f *DecimatorT[F]) IsInitialized() bool { return f.init }

// Factor returns the decimation factor.
func (f *DecimatorT[F]) Factor() (int, error) {
	if !f.init {
		return 0, ErrNotInitialized
	}
	return f.factor, nil
}

// FIRLength returns the effective anti-alias filter length.
func (f *DecimatorT[F]) FIRLength() (int, error) {
	if !f.init {
		return 0, ErrNotInitialized
	}
	return f.firLen, nil
}

// InitialConditionLength returns the FIR delay-line length.
func (f *DecimatorT[F]) InitialConditionLength() (int, error) {
	if !f.init {
		return 0, ErrNotInitialized
	}
	return f.fir.InitialConditionLength()
}

// SetInitialConditions stamps the FIR delay line.
func (f *DecimatorT[F]) SetInitialConditions(zi []float64) error {
	if !f.init {
		return ErrNotInitialized
	}
	if err := f.fir.SetInitialConditions(zi); err != nil {
		return err
	}
	return f.down.ResetInitialConditions()
}

// ResetInitialConditions restores the FIR delay line and the downsampler
// phase.
func (f *DecimatorT[F]) ResetInitialConditions() error {
	if !f.init {
		return ErrNotInitialized
	}
	if err := f.fir.ResetInitialConditions(); err != nil {
		return err
	}
	return f.down.ResetInitialConditions()
}

// EstimateSpace returns the output capacity needed for n input samples.
func (f *DecimatorT[F]) EstimateSpace(n int) (int, error) {
	if !f.init {
		return 0, ErrNotInitialized
	}
	if n < 0 {
		return 0, fmt.Errorf("stream: input length must be non-negative: %d", n)
	}
	return (n + f.factor - 1) / f.factor, nil
}

// Apply decimates src into dst and returns the emitted sample count.
func (f *DecimatorT[F]) Apply(dst, src []F) (int, error) {
	if !f.init {
		return 0, ErrNotInitialized
	}
	if len(src) == 0 {
		return 0, nil
	}

	if !f.removeShift {
		f.tmp = core.EnsureLen(f.tmp, len(src))
		if err := f.fir.Apply(f.tmp, src); err != nil {
			return 0, err
		}
		return f.down.Apply(dst, f.tmp)
	}

	// Post-processing with phase-shift removal: filter the zero-extended
	// signal and read the group-delay-advanced samples on the q grid.
	m := len(src)
	g := f.groupDelay
	need := (m + f.factor - 1) / f.factor
	if len(dst) < need {
		return 0, errShortOutput(need, len(dst))
	}

	f.ext = core.EnsureLen(f.ext, m+g)
	copy(f.ext, src)
	core.Zero(f.ext[m:])
	f.tmp = core.EnsureLen(f.tmp, m+g)
	if err := f.fir.Apply(f.tmp, f.ext); err != nil {
		return 0, err
	}

	for i := 0; i < need; i++ {
		dst[i] = f.tmp[g+i*f.factor]
	}
	return need, nil
}

// Clear releases all state and returns the decimator to uninitialized.
func (f *DecimatorT[F]) Clear() {
	f.factor = 0
	f.firLen = 0
	f.groupDelay = 0
	f.removeShift = false
	f.fir.Clear()
	f.down.Clear()
	f.tmp = nil
	f.ext = nil
	f.mode = core.PostProcessing
	f.init = false
}
