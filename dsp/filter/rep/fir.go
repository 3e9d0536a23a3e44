package rep

import (
	"fmt"
	"math"
)

// FIR is a finite impulse response represented by its tap sequence.
type FIR struct {
	taps []float64
	tol  float64
}

// NewFIR builds an FIR representation from a non-empty tap sequence.
func NewFIR(taps []float64) (FIR, error) {
	if len(taps) == 0 {
		return FIR{}, fmt.Errorf("rep: taps must not be empty")
	}
	return FIR{
		taps: append([]float64(nil), taps...),
		tol:  DefaultTolerance,
	}, nil
}

// Taps returns a copy of the tap sequence.
func (f FIR) Taps() []float64 {
	return append([]float64(nil), f.taps...)
}

// Len returns the number of taps.
func (f FIR) Len() int { return len(f.taps) }

// GroupDelay returns (nt-1)/2, the latency in samples of a linear-phase
// filter with these taps.
func (f FIR) GroupDelay() int {
	return (len(f.taps) - 1) / 2
}

// WithTolerance returns a copy using the given absolute equality tolerance.
func (f FIR) WithTolerance(tol float64) FIR {
	if tol < 0 {
		tol = DefaultTolerance
	}
	f.tol = tol
	return f
}

// Equal reports pointwise tap equality within the receiver's tolerance.
func (f FIR) Equal(other FIR) bool {
	if len(f.taps) != len(other.taps) {
		return false
	}
	for i := range f.taps {
		if math.Abs(f.taps[i]-other.taps[i]) > f.tol {
			return false
		}
	}
	return true
}

func (f FIR) String() string {
	return fmt.Sprintf("FIR{nt=%d}", len(f.taps))
}
