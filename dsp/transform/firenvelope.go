package transform

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-seisdsp/dsp/core"
	"github.com/cwbudde/algo-seisdsp/dsp/filter/design"
	"github.com/cwbudde/algo-seisdsp/dsp/filter/stream"
)

// firEnvelopeChunk is the packet size the real-time path processes at a
// time.
const firEnvelopeChunk = 1024

// FIREnvelopeT computes the envelope through a Kaiser-windowed FIR
// Hilbert transformer pair. In post-processing mode the signal is
// demeaned, zero-extended by the group delay and the branch outputs are
// realigned, so the envelope is phase-compensated and the mean restored.
// In real-time mode the signal streams through both branches in
// 1024-sample chunks with no group-delay compensation.
type FIREnvelopeT[F core.Float] struct {
	ntaps      int
	groupDelay int
	type3      bool
	mode       core.ProcessingMode

	realFIR stream.FIRFilterT[F]
	imagFIR stream.FIRFilterT[F]

	pad  []F
	yr   []F
	yi   []F
	init bool
}

// FIREnvelope is the float64 specialization.
type FIREnvelope = FIREnvelopeT[float64]

// FIREnvelope32 is the float32 specialization.
type FIREnvelope32 = FIREnvelopeT[float32]

// NewFIREnvelope creates and initializes a float64 FIR envelope.
func NewFIREnvelope(ntaps int, opts ...Option) (*FIREnvelope, error) {
	e := &FIREnvelope{}
	if err := e.Initialize(ntaps, opts...); err != nil {
		return nil, err
	}
	return e, nil
}

// Initialize designs the Hilbert pair with ntaps taps (odd counts give
// the type III design whose real branch is a pure delay) and sets up both
// filter branches.
func (e *FIREnvelopeT[F]) Initialize(ntaps int, opts ...Option) error {
	e.Clear()
	if ntaps < 1 {
		return fmt.Errorf("transform: tap count must be positive: %d", ntaps)
	}
	cfg := applyTransformOptions(opts)

	const beta = 8
	re, im, err := design.HilbertTransformer(ntaps-1, beta)
	if err != nil {
		e.Clear()
		return fmt.Errorf("transform: hilbert design failed: %w", err)
	}

	mode := stream.WithMode(cfg.mode)
	if err := e.realFIR.Initialize(re.Taps(), mode); err != nil {
		e.Clear()
		return err
	}
	if err := e.imagFIR.Initialize(im.Taps(), mode); err != nil {
		e.Clear()
		return err
	}

	e.ntaps = ntaps
	e.groupDelay = ntaps / 2
	e.type3 = ntaps%2 == 1
	e.mode = cfg.mode
	e.init = true
	return nil
}

// IsInitialized reports whether the transform is usable.
func (e *FIREnvelopeT[F]) IsInitialized() bool { return e.init }

// GroupDelay returns the Hilbert branch latency in samples.
func (e *FIREnvelopeT[F]) GroupDelay() (int, error) {
	if !e.init {
		return 0, ErrNotInitialized
	}
	return e.groupDelay, nil
}

// InitialConditionLength returns the branch delay-line length ntaps-1.
func (e *FIREnvelopeT[F]) InitialConditionLength() (int, error) {
	if !e.init {
		return 0, ErrNotInitialized
	}
	return e.imagFIR.InitialConditionLength()
}

// SetInitialConditions stamps the same delay line into both branches.
func (e *FIREnvelopeT[F]) SetInitialConditions(zi []float64) error {
	if !e.init {
		return ErrNotInitialized
	}
	if err := e.realFIR.SetInitialConditions(zi); err != nil {
		return err
	}
	return e.imagFIR.SetInitialConditions(zi)
}

// ResetInitialConditions restores both branch delay lines.
func (e *FIREnvelopeT[F]) ResetInitialConditions() error {
	if !e.init {
		return ErrNotInitialized
	}
	if err := e.realFIR.ResetInitialConditions(); err != nil {
		return err
	}
	return e.imagFIR.ResetInitialConditions()
}

// Apply computes the envelope of src into dst, which must hold at least
// len(src) samples.
func (e *FIREnvelopeT[F]) Apply(dst, src []F) error {
	if !e.init {
		return ErrNotInitialized
	}
	if len(src) == 0 {
		return nil
	}
	if len(dst) < len(src) {
		return fmt.Errorf("transform: envelope output needs %d samples, got %d", len(src), len(dst))
	}

	if e.mode == core.PostProcessing {
		return e.applyPost(dst, src)
	}
	return e.applyRealTime(dst, src)
}

func (e *FIREnvelopeT[F]) applyPost(dst, src []F) error {
	n := len(src)
	g := e.groupDelay
	npad := n + g

	var mean float64
	for _, v := range src {
		mean += float64(v)
	}
	mean /= float64(n)

	e.pad = core.EnsureLen(e.pad, npad)
	for i, v := range src {
		e.pad[i] = v - F(mean)
	}
	core.Zero(e.pad[n:])

	e.yi = core.EnsureLen(e.yi, npad)
	if err := e.imagFIR.Apply(e.yi, e.pad); err != nil {
		return err
	}

	if e.type3 {
		// The real branch is a pure delay; the demeaned input itself is
		// the in-phase signal once the quadrature branch is advanced by
		// the group delay.
		for i := 0; i < n; i++ {
			dst[i] = F(math.Hypot(float64(e.pad[i]), float64(e.yi[g+i])) + mean)
		}
		return nil
	}

	e.yr = core.EnsureLen(e.yr, npad)
	if err := e.realFIR.Apply(e.yr, e.pad); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		dst[i] = F(math.Hypot(float64(e.yr[g+i]), float64(e.yi[g+i])) + mean)
	}
	return nil
}

func (e *FIREnvelopeT[F]) applyRealTime(dst, src []F) error {
	e.yr = core.EnsureLen(e.yr, firEnvelopeChunk)
	e.yi = core.EnsureLen(e.yi, firEnvelopeChunk)

	for pos := 0; pos < len(src); pos += firEnvelopeChunk {
		end := pos + firEnvelopeChunk
		if end > len(src) {
			end = len(src)
		}
		chunk := src[pos:end]
		if err := e.realFIR.Apply(e.yr, chunk); err != nil {
			return err
		}
		if err := e.imagFIR.Apply(e.yi, chunk); err != nil {
			return err
		}
		for i := range chunk {
			dst[pos+i] = F(math.Hypot(float64(e.yr[i]), float64(e.yi[i])))
		}
	}
	return nil
}

// Clear releases all state and returns to uninitialized.
func (e *FIREnvelopeT[F]) Clear() {
	e.ntaps = 0
	e.groupDelay = 0
	e.type3 = false
	e.mode = core.PostProcessing
	e.realFIR.Clear()
	e.imagFIR.Clear()
	e.pad = nil
	e.yr = nil
	e.yi = nil
	e.init = false
}
