package rep

import (
	"fmt"
	"math"
)

// BA is a transfer-function representation with numerator b and
// denominator a, both in descending powers of z (or s).
type BA struct {
	b   []float64
	a   []float64
	tol float64
}

// NewBA builds a transfer-function representation. The denominator's
// leading coefficient must be non-zero.
func NewBA(b, a []float64) (BA, error) {
	if len(b) == 0 {
		return BA{}, fmt.Errorf("rep: numerator must not be empty")
	}
	if len(a) == 0 {
		return BA{}, fmt.Errorf("rep: denominator must not be empty")
	}
	if a[0] == 0 {
		return BA{}, fmt.Errorf("rep: leading denominator coefficient is zero")
	}
	return BA{
		b:   append([]float64(nil), b...),
		a:   append([]float64(nil), a...),
		tol: DefaultTolerance,
	}, nil
}

// Numerator returns a copy of the numerator coefficients.
func (f BA) Numerator() []float64 {
	return append([]float64(nil), f.b...)
}

// Denominator returns a copy of the denominator coefficients.
func (f BA) Denominator() []float64 {
	return append([]float64(nil), f.a...)
}

// Normalize divides both polynomials by a[0] and reports whether any
// scaling actually occurred.
func (f BA) Normalize() (BA, bool) {
	a0 := f.a[0]
	if a0 == 1 {
		return f, false
	}
	b := make([]float64, len(f.b))
	a := make([]float64, len(f.a))
	for i, v := range f.b {
		b[i] = v / a0
	}
	for i, v := range f.a {
		a[i] = v / a0
	}
	return BA{b: b, a: a, tol: f.tol}, true
}

// WithTolerance returns a copy using the given absolute equality tolerance.
func (f BA) WithTolerance(tol float64) BA {
	if tol < 0 {
		tol = DefaultTolerance
	}
	f.tol = tol
	return f
}

// Equal reports pointwise equality of both polynomials within the
// receiver's tolerance.
func (f BA) Equal(other BA) bool {
	if len(f.b) != len(other.b) || len(f.a) != len(other.a) {
		return false
	}
	for i := range f.b {
		if math.Abs(f.b[i]-other.b[i]) > f.tol {
			return false
		}
	}
	for i := range f.a {
		if math.Abs(f.a[i]-other.a[i]) > f.tol {
			return false
		}
	}
	return true
}

func (f BA) String() string {
	return fmt.Sprintf("BA{nb=%d, na=%d}", len(f.b), len(f.a))
}
