package design

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-seisdsp/dsp/filter/rep"
	"github.com/cwbudde/algo-seisdsp/dsp/window"
)

// DefaultKaiserBeta is the Kaiser shape parameter used when none is given.
// It matches the Hilbert transformer and envelope defaults.
const DefaultKaiserBeta = 8.0

// FIROption configures the window-method FIR designers.
type FIROption func(*firConfig)

type firConfig struct {
	beta float64
}

// WithKaiserBeta overrides the Kaiser window shape parameter. It only
// affects designs using window.TypeKaiser.
func WithKaiserBeta(beta float64) FIROption {
	return func(c *firConfig) {
		if beta >= 0 {
			c.beta = beta
		}
	}
}

func firOptions(opts []FIROption) firConfig {
	cfg := firConfig{beta: DefaultKaiserBeta}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// FIRLowpass designs an order-n windowed-sinc lowpass with normalized
// cutoff r in (0, 1). The filter has n+1 taps centered at n/2.
func FIRLowpass(order int, r float64, win window.Type, opts ...FIROption) (rep.FIR, error) {
	if err := validateFIR(order, r); err != nil {
		return rep.FIR{}, err
	}
	cfg := firOptions(opts)

	n := order + 1
	taps := make([]float64, n)
	m := float64(n-1) / 2
	for k := range taps {
		taps[k] = r * sinc(r*(float64(k)-m))
	}
	applyWindow(taps, win, cfg)

	return rep.NewFIR(taps)
}

// FIRHighpass designs an order-n windowed-sinc highpass with normalized
// cutoff r. The tap count must be odd for the spectral inversion to hold
// at Nyquist, so even tap counts are rounded up by one; the returned
// representation reports the actual length.
func FIRHighpass(order int, r float64, win window.Type, opts ...FIROption) (rep.FIR, error) {
	if err := validateFIR(order, r); err != nil {
		return rep.FIR{}, err
	}
	cfg := firOptions(opts)

	n := oddLength(order + 1)
	taps := make([]float64, n)
	m := (n - 1) / 2
	for k := range taps {
		d := float64(k - m)
		taps[k] = -r * sinc(r*d)
	}
	taps[m] += 1
	applyWindow(taps, win, cfg)

	return rep.NewFIR(taps)
}

// FIRBandpass designs an order-n windowed-sinc bandpass with normalized
// edges 0 < r1 < r2 < 1.
func FIRBandpass(order int, r1, r2 float64, win window.Type, opts ...FIROption) (rep.FIR, error) {
	if err := validateFIRBand(order, r1, r2); err != nil {
		return rep.FIR{}, err
	}
	cfg := firOptions(opts)

	n := order + 1
	taps := make([]float64, n)
	m := float64(n-1) / 2
	for k := range taps {
		d := float64(k) - m
		taps[k] = r2*sinc(r2*d) - r1*sinc(r1*d)
	}
	applyWindow(taps, win, cfg)

	return rep.NewFIR(taps)
}

// FIRBandstop designs an order-n windowed-sinc bandstop with normalized
// edges 0 < r1 < r2 < 1. Even tap counts are rounded up by one.
func FIRBandstop(order int, r1, r2 float64, win window.Type, opts ...FIROption) (rep.FIR, error) {
	if err := validateFIRBand(order, r1, r2); err != nil {
		return rep.FIR{}, err
	}
	cfg := firOptions(opts)

	n := oddLength(order + 1)
	taps := make([]float64, n)
	m := (n - 1) / 2
	for k := range taps {
		d := float64(k - m)
		taps[k] = r1*sinc(r1*d) - r2*sinc(r2*d)
	}
	taps[m] += 1
	applyWindow(taps, win, cfg)

	return rep.NewFIR(taps)
}

// HilbertTransformer designs the FIR pair approximating the analytic
// signal filter: the real branch delays, the imaginary branch is the
// Kaiser-windowed Hilbert transformer. Even orders yield a type III
// design (odd length, exact delta real branch); odd orders yield type IV
// (even length, fractional-delay real branch with non-zero Nyquist
// response).
func HilbertTransformer(order int, beta float64) (realPart, imagPart rep.FIR, err error) {
	if order < 1 {
		return rep.FIR{}, rep.FIR{}, fmt.Errorf("design: hilbert order must be at least 1: %d", order)
	}
	if beta < 0 {
		return rep.FIR{}, rep.FIR{}, fmt.Errorf("design: kaiser beta must be non-negative: %g", beta)
	}

	n := order + 1
	win := window.Generate(window.TypeKaiser, n, window.WithBeta(beta))

	rTaps := make([]float64, n)
	iTaps := make([]float64, n)
	m := float64(n-1) / 2

	if n%2 == 1 {
		// Type III: the real branch is a pure delay of (n-1)/2 samples.
		rTaps[(n-1)/2] = 1
		for k := range iTaps {
			d := float64(k) - m
			if d == 0 {
				continue
			}
			s := math.Sin(math.Pi * d / 2)
			iTaps[k] = win[k] * 2 / (math.Pi * d) * s * s
		}
	} else {
		// Type IV: half-integer delays; the real branch is a windowed
		// fractional-delay half-band.
		for k := range iTaps {
			d := float64(k) - m
			rTaps[k] = win[k] * sinc(d)
			s := math.Sin(math.Pi * d / 2)
			iTaps[k] = win[k] * 2 / (math.Pi * d) * s * s
		}
	}

	realPart, err = rep.NewFIR(rTaps)
	if err != nil {
		return rep.FIR{}, rep.FIR{}, err
	}
	imagPart, err = rep.NewFIR(iTaps)
	if err != nil {
		return rep.FIR{}, rep.FIR{}, err
	}
	return realPart, imagPart, nil
}

func validateFIR(order int, r float64) error {
	if order < 1 {
		return fmt.Errorf("design: filter order must be at least 1: %d", order)
	}
	if r <= 0 || r >= 1 {
		return fmt.Errorf("design: normalized cutoff must lie in (0, 1): %g", r)
	}
	return nil
}

func validateFIRBand(order int, r1, r2 float64) error {
	if order < 1 {
		return fmt.Errorf("design: filter order must be at least 1: %d", order)
	}
	if r1 <= 0 || r2 >= 1 || r1 >= r2 {
		return fmt.Errorf("design: normalized band must satisfy 0 < r1 < r2 < 1: (%g, %g)", r1, r2)
	}
	return nil
}

func oddLength(n int) int {
	if n%2 == 0 {
		return n + 1
	}
	return n
}

func applyWindow(taps []float64, win window.Type, cfg firConfig) {
	coeffs := window.Generate(win, len(taps), window.WithBeta(cfg.beta))
	for i := range taps {
		taps[i] *= coeffs[i]
	}
}

func sinc(x float64) float64 {
	if x == 0 {
		return 1
	}
	px := math.Pi * x
	return math.Sin(px) / px
}
