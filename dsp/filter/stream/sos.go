package stream

import (
	"fmt"

	"github.com/cwbudde/algo-seisdsp/dsp/core"
	"github.com/cwbudde/algo-seisdsp/dsp/filter/rep"
)

// SOSFilterT applies a cascade of second-order sections, each realized as
// a transposed direct form II biquad. The state holds two accumulators
// per section in section order.
type SOSFilterT[F core.Float] struct {
	// coefficients per section, a0-normalized
	b0, b1, b2 []F
	a1, a2     []F
	zi         []F
	dly        []F
	work       []F
	mode       core.ProcessingMode
	init       bool
}

// SOSFilter is the float64 specialization.
type SOSFilter = SOSFilterT[float64]

// SOSFilter32 is the float32 specialization.
type SOSFilter32 = SOSFilterT[float32]

// NewSOSFilter creates and initializes a float64 SOS cascade.
func NewSOSFilter(sos rep.SOS, opts ...Option) (*SOSFilter, error) {
	f := &SOSFilter{}
	if err := f.Initialize(sos, opts...); err != nil {
		return nil, err
	}
	return f, nil
}

// Initialize captures the section coefficients, normalizing each section
// by its leading denominator coefficient.
func (f *SOSFilterT[F]) Initialize(sos rep.SOS, opts ...Option) error {
	f.Clear()
	ns := sos.Sections()
	if ns < 1 {
		return fmt.Errorf("stream: sos filter needs at least one section")
	}
	cfg := applyOptions(opts)

	bs := sos.NumeratorCoefficients()
	as := sos.DenominatorCoefficients()
	f.b0 = make([]F, ns)
	f.b1 = make([]F, ns)
	f.b2 = make([]F, ns)
	f.a1 = make([]F, ns)
	f.a2 = make([]F, ns)
	for i := 0; i < ns; i++ {
		a0 := as[3*i]
		f.b0[i] = F(bs[3*i] / a0)
		f.b1[i] = F(bs[3*i+1] / a0)
		f.b2[i] = F(bs[3*i+2] / a0)
		f.a1[i] = F(as[3*i+1] / a0)
		f.a2[i] = F(as[3*i+2] / a0)
	}

	f.zi = make([]F, 2*ns)
	f.dly = make([]F, 2*ns)
	f.work = make([]F, 2*ns)
	f.mode = cfg.mode
	f.init = true
	return nil
}

// IsInitialized reports whether the filter can accept samples.
func (f *SOSFilterT[F]) IsInitialized() bool { return f.init }

// Sections returns the section count.
func (f *SOSFilterT[F]) Sections() (int, error) {
	if !f.init {
		return 0, ErrNotInitialized
	}
	return len(f.b0), nil
}

// InitialConditionLength returns 2*ns, two accumulators per section.
func (f *SOSFilterT[F]) InitialConditionLength() (int, error) {
	if !f.init {
		return 0, ErrNotInitialized
	}
	return len(f.zi), nil
}

// SetInitialConditions stamps zi and loads it into the working state.
// Section i owns zi[2i] and zi[2i+1].
func (f *SOSFilterT[F]) SetInitialConditions(zi []float64) error {
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
func (f *SOSFilterT[F]) ResetInitialConditions() error {
	if !f.init {
		return ErrNotInitialized
	}
	copy(f.dly, f.zi)
	return nil
}

// Apply runs the cascade over src into dst, which must hold at least
// len(src) samples.
func (f *SOSFilterT[F]) Apply(dst, src []F) error {
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

	for i, x := range src {
		for s := range f.b0 {
			d0 := state[2*s]
			d1 := state[2*s+1]
			y := f.b0[s]*x + d0
			state[2*s] = f.b1[s]*x - f.a1[s]*y + d1
			state[2*s+1] = f.b2[s]*x - f.a2[s]*y
			x = y
		}
		dst[i] = x
	}
	return nil
}

// Clear releases all state and returns the filter to uninitialized.
func (f *SOSFilterT[F]) Clear() {
	f.b0, f.b1, f.b2 = nil, nil, nil
	f.a1, f.a2 = nil, nil
	f.zi = nil
	f.dly = nil
	f.work = nil
	f.mode = core.PostProcessing
	f.init = false
}
