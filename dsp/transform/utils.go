package transform

import (
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/floats"
)

// Phase returns atan2(imag, real) for each element, in radians or, when
// deg is true, degrees.
func Phase(z []complex128, deg bool) []float64 {
	if len(z) == 0 {
		return nil
	}
	phi := make([]float64, len(z))
	for i, v := range z {
		phi[i] = cmplx.Phase(v)
	}
	if deg {
		floats.Scale(180/math.Pi, phi)
	}
	return phi
}

// Unwrap removes phase jumps larger than tol (default pi when tol is 0)
// by accumulating +-2*pi corrections. The first sample anchors the
// result.
func Unwrap(p []float64, tol float64) ([]float64, error) {
	if tol < 0 {
		return nil, fmt.Errorf("transform: unwrap tolerance must be non-negative: %g", tol)
	}
	if tol == 0 {
		tol = math.Pi
	}
	if len(p) == 0 {
		return nil, nil
	}

	const twoPi = 2 * math.Pi
	pmin := floats.Min(p)
	q := make([]float64, len(p))
	for i, v := range p {
		d := v - pmin
		q[i] = d - twoPi*math.Trunc(d/twoPi) + pmin
	}

	cumulative := 0.0
	prev := q[0]
	for i := range q {
		diff := q[i] - prev
		if i == 0 {
			diff = 0
		}
		prev = q[i]
		if diff > tol {
			cumulative -= twoPi
		} else if diff < -tol {
			cumulative += twoPi
		}
		q[i] += cumulative
	}
	return q, nil
}

// NextPowerOfTwo returns the smallest power of two >= n, or an error on
// negative input or overflow.
func NextPowerOfTwo(n int) (int, error) {
	if n < 0 {
		return 0, fmt.Errorf("transform: n must be non-negative: %d", n)
	}
	if n <= 1 {
		return 1, nil
	}
	p := 1
	for p < n {
		if p > math.MaxInt/2 {
			return 0, fmt.Errorf("transform: next power of two overflows for %d", n)
		}
		p <<= 1
	}
	return p, nil
}

// Shiftable is the element set FFTShift operates on.
type Shiftable interface {
	~float32 | ~float64 | ~complex64 | ~complex128 | ~int
}

// FFTShift rotates the zero-frequency element to the center: index 0
// maps to floor(n/2), so odd lengths rotate by ceil(n/2).
func FFTShift[T Shiftable](x []T) []T {
	n := len(x)
	if n == 0 {
		return nil
	}
	y := make([]T, n)
	split := n / 2
	if n%2 == 1 {
		split = n/2 + 1
	}
	copy(y, x[split:])
	copy(y[n-split:], x[:split])
	return y
}

// RealToComplexDFTFrequencies returns the n/2+1 bin frequencies k/(n*dt)
// of a length-n real transform at sampling period dt.
func RealToComplexDFTFrequencies(n int, dt float64) ([]float64, error) {
	if n < 1 {
		return nil, fmt.Errorf("transform: sample count must be positive: %d", n)
	}
	if dt <= 0 {
		return nil, fmt.Errorf("transform: sampling period must be positive: %g", dt)
	}
	nbins := n/2 + 1
	freqs := make([]float64, nbins)
	if nbins == 1 {
		return freqs, nil
	}
	df := 1 / (float64(n) * dt)
	floats.Span(freqs, 0, df*float64(nbins-1))
	return freqs, nil
}
