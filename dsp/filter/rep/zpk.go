// Package rep defines the filter representations exchanged between the
// design and streaming packages: zero-pole-gain, transfer-function,
// second-order-section and FIR tap forms. All types are values: the
// constructors copy their inputs and accessors return copies, so a
// representation can be shared freely once built.
package rep

import (
	"fmt"
	"math"
	"math/cmplx"
	"sort"
)

// DefaultTolerance is the absolute pointwise tolerance used by the
// equality methods unless overridden.
const DefaultTolerance = 1e-12

// ZPK is a zero-pole-gain filter representation.
type ZPK struct {
	zeros []complex128
	poles []complex128
	gain  float64
	tol   float64
}

// NewZPK builds a zero-pole-gain representation. For real filters the
// complex roots are expected in conjugate pairs; this is not enforced here
// because intermediate analog transforms may hold partially built sets.
func NewZPK(zeros, poles []complex128, gain float64) ZPK {
	return ZPK{
		zeros: append([]complex128(nil), zeros...),
		poles: append([]complex128(nil), poles...),
		gain:  gain,
		tol:   DefaultTolerance,
	}
}

// Zeros returns a copy of the zeros.
func (z ZPK) Zeros() []complex128 {
	return append([]complex128(nil), z.zeros...)
}

// Poles returns a copy of the poles.
func (z ZPK) Poles() []complex128 {
	return append([]complex128(nil), z.poles...)
}

// Gain returns the gain.
func (z ZPK) Gain() float64 { return z.gain }

// NumZeros returns the number of zeros.
func (z ZPK) NumZeros() int { return len(z.zeros) }

// NumPoles returns the number of poles.
func (z ZPK) NumPoles() int { return len(z.poles) }

// WithTolerance returns a copy using the given absolute equality tolerance.
func (z ZPK) WithTolerance(tol float64) ZPK {
	if tol < 0 {
		tol = DefaultTolerance
	}
	z.tol = tol
	return z
}

// Equal reports whether two representations have the same roots and gain
// within the receiver's tolerance. Root ordering is not significant: both
// sets are sorted by real part (real parts within the tolerance count as
// equal) and then by imaginary part before the pointwise comparison.
func (z ZPK) Equal(other ZPK) bool {
	if len(z.zeros) != len(other.zeros) || len(z.poles) != len(other.poles) {
		return false
	}
	if math.Abs(z.gain-other.gain) > z.tol {
		return false
	}
	if !rootsEqual(z.zeros, other.zeros, z.tol) {
		return false
	}
	return rootsEqual(z.poles, other.poles, z.tol)
}

func (z ZPK) String() string {
	return fmt.Sprintf("ZPK{nz=%d, np=%d, k=%g}", len(z.zeros), len(z.poles), z.gain)
}

func sortedRoots(r []complex128, tol float64) []complex128 {
	s := append([]complex128(nil), r...)
	sort.Slice(s, func(i, j int) bool {
		if math.Abs(real(s[i])-real(s[j])) > tol {
			return real(s[i]) < real(s[j])
		}
		return imag(s[i]) < imag(s[j])
	})
	return s
}

func rootsEqual(a, b []complex128, tol float64) bool {
	sa := sortedRoots(a, tol)
	sb := sortedRoots(b, tol)
	for i := range sa {
		if cmplx.Abs(sa[i]-sb[i]) > tol {
			return false
		}
	}
	return true
}
