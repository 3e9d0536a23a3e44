package stream

import (
	"fmt"

	"github.com/cwbudde/algo-seisdsp/dsp/core"
)

// MultiRateFIRT upsamples by zero-stuffing, filters and downsamples in a
// single polyphase pass. The FIR taps are implicitly scaled by the
// upsampling factor so that interpolation preserves amplitude; this
// deliberately diverges from MATLAB's upfirdn, which expects the caller
// to pre-scale the filter.
//
// The engine carries the input-domain FIR history and the output phase
// across packets, so in real-time mode concatenated packets reproduce the
// single-shot result exactly.
type MultiRateFIRT[F core.Float] struct {
	up, down int
	heff     []F
	histLen  int
	zi       []F
	dly      []F
	ext      []F

	// nIn counts the inputs consumed and sNext is the next output index
	// on the upsampled lattice, both since the last reset.
	nIn   int
	sNext int

	mode core.ProcessingMode
	init bool
}

// MultiRateFIR is the float64 specialization.
type MultiRateFIR = MultiRateFIRT[float64]

// MultiRateFIR32 is the float32 specialization.
type MultiRateFIR32 = MultiRateFIRT[float32]

// NewMultiRateFIR creates and initializes a float64 multi-rate filter.
func NewMultiRateFIR(up, down int, taps []float64, opts ...Option) (*MultiRateFIR, error) {
	f := &MultiRateFIR{}
	if err := f.Initialize(up, down, taps, opts...); err != nil {
		return nil, err
	}
	return f, nil
}

// Initialize captures the rate factors and the taps (scaled by up).
func (f *MultiRateFIRT[F]) Initialize(up, down int, taps []float64, opts ...Option) error {
	f.Clear()
	if up < 1 {
		return fmt.Errorf("stream: upsampling factor must be positive: %d", up)
	}
	if down < 1 {
		return fmt.Errorf("stream: downsampling factor must be positive: %d", down)
	}
	if len(taps) == 0 {
		return fmt.Errorf("stream: fir taps must not be empty")
	}
	cfg := applyOptions(opts)

	f.up = up
	f.down = down
	f.heff = make([]F, len(taps))
	for i, v := range taps {
		f.heff[i] = F(v * float64(up))
	}
	f.histLen = (len(taps) - 1) / up
	f.zi = make([]F, f.histLen)
	f.dly = make([]F, f.histLen)
	f.mode = cfg.mode
	f.init = true
	return nil
}

// IsInitialized reports whether the filter can accept samples.
func (f *MultiRateFIRT[F]) IsInitialized() bool { return f.init }

// Factors returns the up- and downsampling factors.
func (f *MultiRateFIRT[F]) Factors() (up, down int, err error) {
	if !f.init {
		return 0, 0, ErrNotInitialized
	}
	return f.up, f.down, nil
}

// InitialConditionLength returns the input-domain history length
// floor((nt-1)/up).
func (f *MultiRateFIRT[F]) InitialConditionLength() (int, error) {
	if !f.init {
		return 0, ErrNotInitialized
	}
	return f.histLen, nil
}

// SetInitialConditions stamps the pre-history, ordered oldest-first, and
// loads it into the working delay line.
func (f *MultiRateFIRT[F]) SetInitialConditions(zi []float64) error {
	if !f.init {
		return ErrNotInitialized
	}
	if len(zi) != f.histLen {
		return fmt.Errorf("stream: initial conditions need %d samples, got %d", f.histLen, len(zi))
	}
	for i, v := range zi {
		f.zi[i] = F(v)
	}
	copy(f.dly, f.zi)
	f.nIn = 0
	f.sNext = 0
	return nil
}

// ResetInitialConditions restores the working history and phases to the
// stamped state.
func (f *MultiRateFIRT[F]) ResetInitialConditions() error {
	if !f.init {
		return ErrNotInitialized
	}
	copy(f.dly, f.zi)
	f.nIn = 0
	f.sNext = 0
	return nil
}

// EstimateSpace conservatively bounds the output count for n inputs:
// ceil((n*up + nt - 1)/down).
func (f *MultiRateFIRT[F]) EstimateSpace(n int) (int, error) {
	if !f.init {
		return 0, ErrNotInitialized
	}
	if n < 0 {
		return 0, fmt.Errorf("stream: input length must be non-negative: %d", n)
	}
	return (n*f.up + len(f.heff) - 1 + f.down - 1) / f.down, nil
}

// Apply filters src into dst and returns the emitted sample count: the
// outputs on the downsampled lattice that the newly available input span
// covers.
func (f *MultiRateFIRT[F]) Apply(dst, src []F) (int, error) {
	if !f.init {
		return 0, ErrNotInitialized
	}
	if len(src) == 0 {
		return 0, nil
	}

	nIn, sNext := f.nIn, f.sNext
	hist := f.dly
	if f.mode == core.PostProcessing {
		nIn, sNext = 0, 0
		hist = f.zi
	}

	m := len(src)
	limit := (nIn + m) * f.up
	need := 0
	if limit > sNext {
		need = (limit - sNext + f.down - 1) / f.down
	}
	if len(dst) < need {
		return 0, errShortOutput(need, len(dst))
	}

	f.ext = core.EnsureLen(f.ext, f.histLen+m)
	copy(f.ext, hist)
	copy(f.ext[f.histLen:], src)
	base := nIn - f.histLen

	nt := len(f.heff)
	ny := 0
	for s := sNext; s < limit; s += f.down {
		tmax := nt - 1
		if lim := s - base*f.up; lim < tmax {
			tmax = lim
		}
		var acc F
		for t := s % f.up; t <= tmax; t += f.up {
			acc += f.heff[t] * f.ext[(s-t)/f.up-base]
		}
		dst[ny] = acc
		ny++
	}

	if f.mode == core.RealTime {
		f.nIn = nIn + m
		f.sNext = sNext + ny*f.down
		if f.histLen > 0 {
			copy(f.dly, f.ext[len(f.ext)-f.histLen:])
		}
	}
	return ny, nil
}

// Clear releases all state and returns the filter to uninitialized.
func (f *MultiRateFIRT[F]) Clear() {
	f.up, f.down = 0, 0
	f.heff = nil
	f.histLen = 0
	f.zi = nil
	f.dly = nil
	f.ext = nil
	f.nIn = 0
	f.sNext = 0
	f.mode = core.PostProcessing
	f.init = false
}
