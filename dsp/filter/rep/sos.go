package rep

import (
	"fmt"
	"math"
)

// SOS is a cascade of second-order sections. Numerator and denominator
// coefficients are stored as consecutive triplets: section i occupies
// indices [3i, 3i+2]. Section order is significant for numerical behavior.
type SOS struct {
	ns  int
	bs  []float64
	as  []float64
	tol float64
}

// NewSOS builds a second-order-section representation. Every section's
// leading numerator and denominator coefficients must be non-zero.
func NewSOS(ns int, bs, as []float64) (SOS, error) {
	if ns < 1 {
		return SOS{}, fmt.Errorf("rep: number of sections must be positive: %d", ns)
	}
	if len(bs) != 3*ns {
		return SOS{}, fmt.Errorf("rep: len(bs) = %d must equal 3*ns = %d", len(bs), 3*ns)
	}
	if len(as) != 3*ns {
		return SOS{}, fmt.Errorf("rep: len(as) = %d must equal 3*ns = %d", len(as), 3*ns)
	}
	for i := 0; i < ns; i++ {
		if bs[3*i] == 0 {
			return SOS{}, fmt.Errorf("rep: leading numerator coefficient of section %d is zero", i)
		}
		if as[3*i] == 0 {
			return SOS{}, fmt.Errorf("rep: leading denominator coefficient of section %d is zero", i)
		}
	}
	return SOS{
		ns:  ns,
		bs:  append([]float64(nil), bs...),
		as:  append([]float64(nil), as...),
		tol: DefaultTolerance,
	}, nil
}

// Sections returns the number of second-order sections.
func (s SOS) Sections() int { return s.ns }

// NumeratorCoefficients returns a copy of the stacked numerator triplets.
func (s SOS) NumeratorCoefficients() []float64 {
	return append([]float64(nil), s.bs...)
}

// DenominatorCoefficients returns a copy of the stacked denominator triplets.
func (s SOS) DenominatorCoefficients() []float64 {
	return append([]float64(nil), s.as...)
}

// WithTolerance returns a copy using the given absolute equality tolerance.
func (s SOS) WithTolerance(tol float64) SOS {
	if tol < 0 {
		tol = DefaultTolerance
	}
	s.tol = tol
	return s
}

// Equal reports pointwise equality of the section coefficients within the
// receiver's tolerance. Section order matters.
func (s SOS) Equal(other SOS) bool {
	if s.ns != other.ns {
		return false
	}
	for i := range s.bs {
		if math.Abs(s.bs[i]-other.bs[i]) > s.tol {
			return false
		}
	}
	for i := range s.as {
		if math.Abs(s.as[i]-other.as[i]) > s.tol {
			return false
		}
	}
	return true
}

func (s SOS) String() string {
	return fmt.Sprintf("SOS{ns=%d}", s.ns)
}
