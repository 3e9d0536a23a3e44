// Package polyroot provides polynomial construction, evaluation and
// root-finding utilities shared by the filter design packages.
package polyroot

import (
	"errors"
	"math"
	"math/cmplx"
)

// ErrDegeneratePolynomial is returned when a polynomial has degenerate
// coefficients (leading coefficient zero, convergence failure, etc.).
var ErrDegeneratePolynomial = errors.New("polyroot: degenerate polynomial")

// Poly expands a set of roots into monic polynomial coefficients in
// descending power order by iterative convolution:
//
//	prod_i (x - r[i]) = c[0]*x^n + c[1]*x^(n-1) + ... + c[n],  c[0] = 1
func Poly(roots []complex128) []complex128 {
	coeffs := []complex128{1}
	for _, r := range roots {
		next := make([]complex128, len(coeffs)+1)
		for i, c := range coeffs {
			next[i] += c
			next[i+1] -= c * r
		}
		coeffs = next
	}
	return coeffs
}

// PolyReal expands roots occurring in conjugate pairs (or on the real axis)
// into real polynomial coefficients in descending power order. The imaginary
// residue left by rounding is discarded.
func PolyReal(roots []complex128) []float64 {
	c := Poly(roots)
	out := make([]float64, len(c))
	for i, v := range c {
		out[i] = real(v)
	}
	return out
}

// PolyEval evaluates a polynomial at x using Horner's method. Coefficients
// are in descending power order: coeff[0]*x^n + ... + coeff[n].
func PolyEval(coeff []complex128, x complex128) complex128 {
	v := coeff[0]
	for i := 1; i < len(coeff); i++ {
		v = v*x + coeff[i]
	}

	return v
}

// Roots finds all roots of a real polynomial given in descending power
// order using the Durand-Kerner solver. Leading zeros are stripped first.
func Roots(coeff []float64) ([]complex128, error) {
	i := 0
	for i < len(coeff) && coeff[i] == 0 {
		i++
	}
	coeff = coeff[i:]
	if len(coeff) < 2 {
		return nil, ErrDegeneratePolynomial
	}

	c := make([]complex128, len(coeff))
	for j, v := range coeff {
		c[j] = complex(v, 0)
	}

	return DurandKerner(c)
}

// DurandKerner finds all roots of a polynomial using the Durand-Kerner
// (Weierstrass) simultaneous iteration method. Coefficients are in descending
// power order: coeff[0]*z^n + coeff[1]*z^(n-1) + ... + coeff[n].
//
//nolint:cyclop
func DurandKerner(coeff []complex128) ([]complex128, error) {
	if len(coeff) < 2 {
		return nil, ErrDegeneratePolynomial
	}

	lead := coeff[0]
	if lead == 0 {
		return nil, ErrDegeneratePolynomial
	}

	n := len(coeff) - 1

	norm := make([]complex128, len(coeff))
	for i := range coeff {
		norm[i] = coeff[i] / lead
	}

	radius := 0.0
	for i := 1; i <= n; i++ {
		if r := cmplx.Abs(norm[i]); r > radius {
			radius = r
		}
	}

	if radius < 1 {
		radius = 1
	}

	roots := make([]complex128, n)
	for i := range n {
		angle := 2*math.Pi*float64(i)/float64(n) + 0.3
		r := radius * (1 + 0.1*float64(i)/float64(n))
		roots[i] = complex(r*math.Cos(angle), r*math.Sin(angle))
	}

	const (
		maxIter = 500
		tol     = 1e-12
	)

	for range maxIter {
		maxDelta := 0.0

		for i := range n {
			den := complex(1, 0)

			for j := range n {
				if i == j {
					continue
				}

				den *= roots[i] - roots[j]
			}

			if cmplx.Abs(den) == 0 {
				roots[i] += complex(1e-10, 1e-10)
				continue
			}

			f := PolyEval(norm, roots[i])
			delta := f / den

			roots[i] -= delta
			if d := cmplx.Abs(delta); d > maxDelta {
				maxDelta = d
			}
		}

		if maxDelta < tol {
			return roots, nil
		}
	}

	maxResidual := 0.0

	for _, r := range roots {
		res := cmplx.Abs(PolyEval(norm, r))
		if res > maxResidual {
			maxResidual = res
		}
	}

	if maxResidual < 1e-6 {
		return roots, nil
	}

	return nil, ErrDegeneratePolynomial
}

// ConjugateTol is the relative tolerance for conjugate pair matching.
const ConjugateTol = 1e-7

// IsConjugate checks whether a and b are complex conjugates within tolerance.
func IsConjugate(a, b complex128, tol float64) bool {
	if math.Abs(real(a)-real(b)) > tol*math.Max(1, math.Abs(real(a))) {
		return false
	}

	if math.Abs(imag(a)+imag(b)) > tol*math.Max(1, math.Abs(imag(a))) {
		return false
	}

	return true
}

// PairConjugates groups a slice of complex roots into conjugate pairs. For
// each unused root, it finds the closest match to the expected conjugate and
// validates the pairing within ConjugateTol.
func PairConjugates(roots []complex128) ([][2]complex128, error) {
	used := make([]bool, len(roots))
	pairs := make([][2]complex128, 0, len(roots)/2)

	for i := range roots {
		if used[i] {
			continue
		}

		root := roots[i]
		conj := complex(real(root), -imag(root))
		best := -1
		bestDist := math.MaxFloat64

		for j := range roots {
			if i == j || used[j] {
				continue
			}

			d := cmplx.Abs(roots[j] - conj)
			if d < bestDist {
				bestDist = d
				best = j
			}
		}

		if best == -1 || !IsConjugate(root, roots[best], ConjugateTol) {
			return nil, ErrDegeneratePolynomial
		}

		used[i] = true
		used[best] = true
		pairs = append(pairs, [2]complex128{root, roots[best]})
	}

	return pairs, nil
}
