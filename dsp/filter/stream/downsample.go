package stream

import (
	"fmt"

	"github.com/cwbudde/algo-seisdsp/dsp/core"
)

// DownsamplerT keeps every q-th sample. The phase counts the position in
// the current decimation cycle: a sample is emitted whenever the phase is
// zero. In real-time mode the phase carries across packets; in
// post-processing mode every call starts at the stamped phase.
type DownsamplerT[F core.Float] struct {
	factor int
	phase0 int
	phase  int
	mode   core.ProcessingMode
	init   bool
}

// Downsampler is the float64 specialization.
type Downsampler = DownsamplerT[float64]

// Downsampler32 is the float32 specialization.
type Downsampler32 = DownsamplerT[float32]

// NewDownsampler creates and initializes a float64 downsampler.
func NewDownsampler(factor int, opts ...Option) (*Downsampler, error) {
	f := &Downsampler{}
	if err := f.Initialize(factor, opts...); err != nil {
		return nil, err
	}
	return f, nil
}

// Initialize fixes the decimation factor and the stamped starting phase
// (WithStartPhase, default 0).
func (f *DownsamplerT[F]) Initialize(factor int, opts ...Option) error {
	f.Clear()
	if factor < 1 {
		return fmt.Errorf("stream: downsampling factor must be positive: %d", factor)
	}
	cfg := applyOptions(opts)
	if cfg.startPhase < 0 || cfg.startPhase >= factor {
		return fmt.Errorf("stream: start phase %d outside [0, %d)", cfg.startPhase, factor)
	}

	f.factor = factor
	f.phase0 = cfg.startPhase
	f.phase = cfg.startPhase
	f.mode = cfg.mode
	f.init = true
	return nil
}

// IsInitialized reports whether the downsampler can accept samples.
func (f *DownsamplerT[F]) IsInitialized() bool { return f.init }

// Factor returns the decimation factor.
func (f *DownsamplerT[F]) Factor() (int, error) {
	if !f.init {
		return 0, ErrNotInitialized
	}
	return f.factor, nil
}

// InitialConditionLength returns 0: the downsampler state is only the
// phase, stamped at initialization.
func (f *DownsamplerT[F]) InitialConditionLength() (int, error) {
	if !f.init {
		return 0, ErrNotInitialized
	}
	return 0, nil
}

// SetInitialConditions accepts the (empty) delay line for interface
// parity with the other engines.
func (f *DownsamplerT[F]) SetInitialConditions(zi []float64) error {
	if !f.init {
		return ErrNotInitialized
	}
	if len(zi) != 0 {
		return fmt.Errorf("stream: downsampler takes no initial conditions, got %d", len(zi))
	}
	f.phase = f.phase0
	return nil
}

// ResetInitialConditions restores the stamped starting phase.
func (f *DownsamplerT[F]) ResetInitialConditions() error {
	if !f.init {
		return ErrNotInitialized
	}
	f.phase = f.phase0
	return nil
}

// EstimateSpace returns the output capacity needed for n input samples.
func (f *DownsamplerT[F]) EstimateSpace(n int) (int, error) {
	if !f.init {
		return 0, ErrNotInitialized
	}
	if n < 0 {
		return 0, fmt.Errorf("stream: input length must be non-negative: %d", n)
	}
	return (n + f.factor - 1) / f.factor, nil
}

// Apply downsamples src into dst and returns the number of emitted
// samples: those that arrive at cycle position 0, which is
// floor((len(src) - s + q - 1)/q) with s = (q - phase) mod q the offset of
// the first such sample.
func (f *DownsamplerT[F]) Apply(dst, src []F) (int, error) {
	if !f.init {
		return 0, ErrNotInitialized
	}
	if len(src) == 0 {
		return 0, nil
	}

	phase := f.phase
	if f.mode == core.PostProcessing {
		phase = f.phase0
	}

	need := (len(src) - (f.factor-phase)%f.factor + f.factor - 1) / f.factor
	if len(dst) < need {
		return 0, errShortOutput(need, len(dst))
	}

	ny := 0
	for _, v := range src {
		if phase == 0 {
			dst[ny] = v
			ny++
		}
		phase++
		if phase == f.factor {
			phase = 0
		}
	}

	if f.mode == core.RealTime {
		f.phase = phase
	}
	return ny, nil
}

// Clear releases all state and returns the downsampler to uninitialized.
func (f *DownsamplerT[F]) Clear() {
	f.factor = 0
	f.phase0 = 0
	f.phase = 0
	f.mode = core.PostProcessing
	f.init = false
}
