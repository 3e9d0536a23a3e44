package design

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-seisdsp/dsp/filter/rep"
	"github.com/cwbudde/algo-seisdsp/internal/polyroot"
)

// Butterworth returns the order-n analog lowpass Butterworth prototype
// with cutoff 1 rad/s: no zeros, poles on the unit semicircle, gain 1.
func Butterworth(n int) (rep.ZPK, error) {
	if n < 1 {
		return rep.ZPK{}, fmt.Errorf("design: order must be at least 1: %d", n)
	}

	poles := make([]complex128, n)
	for k := 1; k <= n; k++ {
		theta := math.Pi * float64(2*k+n-1) / float64(2*n)
		poles[k-1] = cmplx.Exp(complex(0, theta))
	}

	return rep.NewZPK(nil, poles, 1), nil
}

// ChebyshevI returns the order-n analog lowpass Chebyshev type I
// prototype with rp dB of passband ripple.
func ChebyshevI(n int, rp float64) (rep.ZPK, error) {
	if n < 1 {
		return rep.ZPK{}, fmt.Errorf("design: order must be at least 1: %d", n)
	}
	if rp <= 0 {
		return rep.ZPK{}, fmt.Errorf("design: passband ripple must be positive: %g", rp)
	}

	eps := math.Sqrt(math.Pow(10, rp/10) - 1)
	mu := math.Asinh(1/eps) / float64(n)
	sinhMu := math.Sinh(mu)
	coshMu := math.Cosh(mu)

	poles := make([]complex128, n)
	gain := complex(1, 0)
	for k := 1; k <= n; k++ {
		theta := math.Pi * float64(2*k-1) / float64(2*n)
		p := complex(-sinhMu*math.Sin(theta), coshMu*math.Cos(theta))
		poles[k-1] = p
		gain *= -p
	}

	k := real(gain)
	if n%2 == 0 {
		k /= math.Sqrt(1 + eps*eps)
	}

	return rep.NewZPK(nil, poles, k), nil
}

// ChebyshevII returns the order-n analog lowpass Chebyshev type II
// (inverse Chebyshev) prototype with rs dB of stopband attenuation.
// The stopband edge sits at 1 rad/s. Odd orders have n-1 finite zeros.
func ChebyshevII(n int, rs float64) (rep.ZPK, error) {
	if n < 1 {
		return rep.ZPK{}, fmt.Errorf("design: order must be at least 1: %d", n)
	}
	if rs <= 0 {
		return rep.ZPK{}, fmt.Errorf("design: stopband ripple must be positive: %g", rs)
	}

	de := 1 / math.Sqrt(math.Pow(10, rs/10)-1)
	mu := math.Asinh(1/de) / float64(n)
	sinhMu := math.Sinh(mu)
	coshMu := math.Cosh(mu)

	zeros := make([]complex128, 0, n)
	poles := make([]complex128, n)
	for k := 1; k <= n; k++ {
		theta := math.Pi * float64(2*k-1) / float64(2*n)
		c := math.Cos(theta)
		// The middle angle of an odd order maps to a zero at infinity.
		if math.Abs(c) > 1e-14 {
			zeros = append(zeros, complex(0, 1/c))
		}
		p := complex(-sinhMu*math.Sin(theta), coshMu*math.Cos(theta))
		poles[k-1] = 1 / p
	}

	num := complex(1, 0)
	for _, p := range poles {
		num *= -p
	}
	den := complex(1, 0)
	for _, z := range zeros {
		den *= -z
	}

	return rep.NewZPK(zeros, poles, real(num/den)), nil
}

// Bessel returns the order-n analog lowpass Bessel prototype: the roots
// of the reverse Bessel polynomial, magnitude-normalized so the
// high-frequency asymptote matches the Butterworth prototype; gain 1.
func Bessel(n int) (rep.ZPK, error) {
	if n < 1 {
		return rep.ZPK{}, fmt.Errorf("design: order must be at least 1: %d", n)
	}

	coeffs := reverseBesselCoeffs(n)
	roots, err := polyroot.Roots(coeffs)
	if err != nil {
		return rep.ZPK{}, fmt.Errorf("design: bessel root finding failed: %w", err)
	}

	scale := math.Pow(coeffs[n], 1/float64(n))
	poles := make([]complex128, n)
	for i, r := range roots {
		poles[i] = r / complex(scale, 0)
	}

	return rep.NewZPK(nil, poles, 1), nil
}

// reverseBesselCoeffs returns the reverse Bessel polynomial coefficients
// in descending power order. The coefficient of s^k is
// (2n-k)! / (2^(n-k) k! (n-k)!), evaluated by downward recurrence to
// avoid factorial overflow.
func reverseBesselCoeffs(n int) []float64 {
	coeffs := make([]float64, n+1)
	ak := 1.0 // coefficient of s^n
	coeffs[0] = ak
	for k := n; k >= 1; k-- {
		ak *= float64((2*n - k + 1) * k)
		ak /= 2 * float64(n-k+1)
		coeffs[n-k+1] = ak
	}
	return coeffs
}
