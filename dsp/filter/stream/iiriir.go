package stream

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-seisdsp/dsp/core"
	"github.com/cwbudde/algo-seisdsp/dsp/filter/rep"
)

// ZeroPhaseIIRT filters forward, reverses, filters forward and reverses
// again, cancelling the filter's phase response. It only exists in
// post-processing form: the reversal needs the whole signal.
//
// Edges are handled by odd reflection padding (2*x[0] - x reversed) of a
// configurable length defaulting to 3*max(nb, na), and the transient at
// each end is suppressed by starting the filter in its steady state for
// the boundary sample: the state zi solves (I - A)zi = B scaled by the
// first padded sample.
type ZeroPhaseIIRT[F core.Float] struct {
	b   []F
	a   []F
	zi  []float64
	pad int

	ext  []F
	out  []F
	st   []F
	init bool
}

// ZeroPhaseIIR is the float64 specialization.
type ZeroPhaseIIR = ZeroPhaseIIRT[float64]

// ZeroPhaseIIR32 is the float32 specialization.
type ZeroPhaseIIR32 = ZeroPhaseIIRT[float32]

// NewZeroPhaseIIR creates and initializes a float64 zero-phase filter.
func NewZeroPhaseIIR(b, a []float64, opts ...Option) (*ZeroPhaseIIR, error) {
	f := &ZeroPhaseIIR{}
	if err := f.Initialize(b, a, opts...); err != nil {
		return nil, err
	}
	return f, nil
}

// Initialize captures the coefficients, normalizes and pads them, and
// precomputes the unit steady-state initial conditions.
func (f *ZeroPhaseIIRT[F]) Initialize(b, a []float64, opts ...Option) error {
	f.Clear()
	if len(b) == 0 || len(a) == 0 {
		return fmt.Errorf("stream: iir coefficients must not be empty")
	}
	if a[0] == 0 {
		return fmt.Errorf("stream: leading denominator coefficient is zero")
	}
	cfg := applyOptions(opts)
	if cfg.mode == core.RealTime {
		return fmt.Errorf("stream: zero-phase filtering is post-processing only")
	}

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

	zi, err := steadyStateConditions(bn, an)
	if err != nil {
		f.Clear()
		return err
	}

	f.b = narrow[F](bn)
	f.a = narrow[F](an)
	f.zi = zi
	f.pad = 3 * n
	if cfg.padLength > 0 {
		f.pad = cfg.padLength
	}
	f.init = true
	return nil
}

// InitializeFromRepresentation initializes from a design output.
func (f *ZeroPhaseIIRT[F]) InitializeFromRepresentation(ba rep.BA, opts ...Option) error {
	return f.Initialize(ba.Numerator(), ba.Denominator(), opts...)
}

// IsInitialized reports whether the filter can accept samples.
func (f *ZeroPhaseIIRT[F]) IsInitialized() bool { return f.init }

// PadLength returns the reflect-pad length applied at both ends.
func (f *ZeroPhaseIIRT[F]) PadLength() (int, error) {
	if !f.init {
		return 0, ErrNotInitialized
	}
	return f.pad, nil
}

// Apply runs the forward-backward filter over src into dst, which must
// hold at least len(src) samples.
func (f *ZeroPhaseIIRT[F]) Apply(dst, src []F) error {
	if !f.init {
		return ErrNotInitialized
	}
	if len(src) == 0 {
		return nil
	}
	if len(dst) < len(src) {
		return errShortOutput(len(src), len(dst))
	}

	n := len(src)
	pad := f.pad
	if pad > n-1 {
		pad = n - 1
	}
	total := n + 2*pad

	f.ext = core.EnsureLen(f.ext, total)
	f.out = core.EnsureLen(f.out, total)
	// Odd reflection about both boundary samples.
	for i := 0; i < pad; i++ {
		f.ext[i] = 2*src[0] - src[pad-i]
		f.ext[total-1-i] = 2*src[n-1] - src[n-2-(pad-1-i)]
	}
	copy(f.ext[pad:], src)

	f.filterScaled(f.out, f.ext)
	reverse(f.out)
	f.filterScaled(f.out, f.out)
	reverse(f.out)

	copy(dst[:n], f.out[pad:pad+n])
	return nil
}

// filterScaled runs one causal pass with the state started at the
// steady-state conditions scaled by the first sample.
func (f *ZeroPhaseIIRT[F]) filterScaled(dst, src []F) {
	order := len(f.b) - 1
	f.st = core.EnsureLen(f.st, order)
	for i := 0; i < order; i++ {
		f.st[i] = F(f.zi[i]) * src[0]
	}
	df2tKernel(f.b, f.a, f.st, dst, src)
}

// Clear releases all state and returns the filter to uninitialized.
func (f *ZeroPhaseIIRT[F]) Clear() {
	f.b = nil
	f.a = nil
	f.zi = nil
	f.pad = 0
	f.ext = nil
	f.out = nil
	f.st = nil
	f.init = false
}

// steadyStateConditions solves (I - A)zi = B for the transposed direct
// form II state transition so a unit-amplitude DC input leaves the filter
// transient-free. A is the companion matrix of the denominator and
// B = b[1:] - a[1:]*b[0].
func steadyStateConditions(b, a []float64) ([]float64, error) {
	order := len(a) - 1
	if order == 0 {
		return nil, nil
	}

	m := mat.NewDense(order, order, nil)
	for i := 0; i < order; i++ {
		m.Set(i, 0, a[i+1])
		if i < order-1 {
			m.Set(i, i+1, -1)
		}
		m.Set(i, i, m.At(i, i)+1)
	}

	rhs := mat.NewVecDense(order, nil)
	for i := 0; i < order; i++ {
		rhs.SetVec(i, b[i+1]-a[i+1]*b[0])
	}

	var zi mat.VecDense
	if err := zi.SolveVec(m, rhs); err != nil {
		return nil, fmt.Errorf("stream: steady-state solve failed: %w", err)
	}

	out := make([]float64, order)
	for i := range out {
		out[i] = zi.AtVec(i)
	}
	return out, nil
}

func reverse[F core.Float](x []F) {
	for i, j := 0, len(x)-1; i < j; i, j = i+1, j-1 {
		x[i], x[j] = x[j], x[i]
	}
}
