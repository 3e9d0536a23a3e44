package design

import (
	"fmt"
	"math"
	"math/cmplx"
	"sort"

	"github.com/cwbudde/algo-seisdsp/dsp/filter/rep"
	"github.com/cwbudde/algo-seisdsp/internal/polyroot"
)

// ZPKToBA multiplies the root monomials out into transfer-function form:
// b = k*poly(zeros), a = poly(poles), both in descending powers.
func ZPKToBA(z rep.ZPK) (rep.BA, error) {
	b := polyroot.PolyReal(z.Zeros())
	for i := range b {
		b[i] *= z.Gain()
	}
	a := polyroot.PolyReal(z.Poles())
	return rep.NewBA(b, a)
}

// BAToZPK factors a transfer function back into roots and gain. The gain
// is the ratio of the leading non-zero coefficients.
func BAToZPK(f rep.BA) (rep.ZPK, error) {
	b := trimLeadingZeros(f.Numerator())
	a := trimLeadingZeros(f.Denominator())
	if len(b) == 0 || len(a) == 0 {
		return rep.ZPK{}, fmt.Errorf("design: transfer function has no non-zero coefficients")
	}

	var zeros []complex128
	if len(b) > 1 {
		var err error
		zeros, err = polyroot.Roots(b)
		if err != nil {
			return rep.ZPK{}, fmt.Errorf("design: numerator factoring failed: %w", err)
		}
	}
	var poles []complex128
	if len(a) > 1 {
		var err error
		poles, err = polyroot.Roots(a)
		if err != nil {
			return rep.ZPK{}, fmt.Errorf("design: denominator factoring failed: %w", err)
		}
	}

	return rep.NewZPK(zeros, poles, b[0]/a[0]), nil
}

func trimLeadingZeros(c []float64) []float64 {
	i := 0
	for i < len(c) && c[i] == 0 {
		i++
	}
	return c[i:]
}

// imagTol decides whether a digital root is treated as real when pairing
// sections.
const imagTol = 1e-10

// ZPKToSOS converts a digital filter to second-order sections using
// nearest pairing: poles are consumed farthest-from-the-unit-circle
// first, each paired with its unconsumed nearest zero (conjugates
// consumed together), so the section holding the pole closest to the
// unit circle runs last. The overall gain is folded into the first
// section's numerator. Ties break toward the smaller pre-sort index.
func ZPKToSOS(z rep.ZPK) (rep.SOS, error) {
	poles := z.Poles()
	zeros := z.Zeros()
	if len(poles) == 0 {
		return rep.SOS{}, fmt.Errorf("design: filter has no poles")
	}
	if len(zeros) > len(poles) {
		return rep.SOS{}, fmt.Errorf("design: filter must have at least as many poles as zeros: %d poles, %d zeros",
			len(poles), len(zeros))
	}
	// Zeros at the origin contribute a unit numerator factor in the
	// z^-1 section convention, so padding balances the counts without
	// changing the filter.
	for len(zeros) < len(poles) {
		zeros = append(zeros, 0)
	}

	poleUsed := make([]bool, len(poles))
	zeroUsed := make([]bool, len(zeros))

	var bs, as []float64
	for {
		pi := selectFarthestPole(poles, poleUsed)
		if pi < 0 {
			break
		}
		p := poles[pi]
		poleUsed[pi] = true

		if isRealRoot(p) {
			zi := nearestRealZero(zeros, zeroUsed, p)
			if zi < 0 {
				// Only complex zeros remain (a bandstop built from an
				// odd-order prototype does this): join two real poles
				// into one section so a conjugate zero pair has a home.
				p2i := nearestRealPole(poles, poleUsed, p)
				if p2i < 0 {
					return rep.SOS{}, fmt.Errorf("design: real pole %v cannot be paired", p)
				}
				poleUsed[p2i] = true
				p2 := real(poles[p2i])
				b1, b2 := sectionNumerator(zeros, zeroUsed, p)
				bs = append(bs, 1, b1, b2)
				as = append(as, 1, -real(p)-p2, real(p)*p2)
				continue
			}
			// A lone real pole occupies a first-order section.
			zeroUsed[zi] = true
			bs = append(bs, 1, -real(zeros[zi]), 0)
			as = append(as, 1, -real(p), 0)
			continue
		}

		// Complex pole: consume the conjugate with it.
		ci := findConjugate(poles, poleUsed, p)
		if ci < 0 {
			return rep.SOS{}, fmt.Errorf("design: pole %v has no conjugate partner", p)
		}
		poleUsed[ci] = true

		b1, b2 := sectionNumerator(zeros, zeroUsed, p)
		bs = append(bs, 1, b1, b2)
		as = append(as, 1, -2*real(p), real(p)*real(p)+imag(p)*imag(p))
	}

	// Any remaining real zeros would make the filter improper; by
	// construction the counts match, so everything is consumed here.
	gain := z.Gain()
	bs[0] *= gain
	bs[1] *= gain
	bs[2] *= gain

	return rep.NewSOS(len(as)/3, bs, as)
}

// SOSToBA multiplies the section polynomials back into a single transfer
// function. First-order sections (zero third coefficients) convolve as
// 2-tap polynomials so no spurious trailing roots appear.
func SOSToBA(s rep.SOS) (rep.BA, error) {
	bs := s.NumeratorCoefficients()
	as := s.DenominatorCoefficients()

	b := []float64{1}
	a := []float64{1}
	for i := 0; i < s.Sections(); i++ {
		bi := bs[3*i : 3*i+3]
		ai := as[3*i : 3*i+3]
		if bi[2] == 0 && ai[2] == 0 {
			bi = bi[:2]
			ai = ai[:2]
		}
		b = convolve(b, bi)
		a = convolve(a, ai)
	}

	return rep.NewBA(b, a)
}

func convolve(a, b []float64) []float64 {
	out := make([]float64, len(a)+len(b)-1)
	for i, x := range a {
		for j, y := range b {
			out[i+j] += x * y
		}
	}
	return out
}

func isRealRoot(r complex128) bool {
	return math.Abs(imag(r)) <= imagTol*(1+cmplx.Abs(r))
}

// unitCircleDistance orders the pole consumption: the farthest pole from
// the unit circle is paired first so the most resonant section runs last.
func unitCircleDistance(p complex128) float64 {
	return math.Abs(1 - cmplx.Abs(p))
}

func selectFarthestPole(poles []complex128, used []bool) int {
	best := -1
	bestDist := -1.0
	for i, p := range poles {
		if used[i] {
			continue
		}
		d := unitCircleDistance(p)
		if d > bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}

func findConjugate(roots []complex128, used []bool, r complex128) int {
	conj := cmplx.Conj(r)
	best := -1
	bestDist := math.MaxFloat64
	for i, c := range roots {
		if used[i] || isRealRoot(c) {
			continue
		}
		if d := cmplx.Abs(c - conj); d < bestDist {
			bestDist = d
			best = i
		}
	}
	if best >= 0 && !polyroot.IsConjugate(r, roots[best], 1e-6) {
		return -1
	}
	return best
}

func nearestZero(zeros []complex128, used []bool, p complex128) int {
	best := -1
	bestDist := math.MaxFloat64
	for i, z := range zeros {
		if used[i] {
			continue
		}
		if d := cmplx.Abs(z - p); d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}

func nearestRealPole(poles []complex128, used []bool, p complex128) int {
	best := -1
	bestDist := math.MaxFloat64
	for i, c := range poles {
		if used[i] || !isRealRoot(c) {
			continue
		}
		if d := cmplx.Abs(c - p); d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}

func nearestRealZero(zeros []complex128, used []bool, p complex128) int {
	best := -1
	bestDist := math.MaxFloat64
	for i, z := range zeros {
		if used[i] || !isRealRoot(z) {
			continue
		}
		if d := cmplx.Abs(z - p); d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}

// sectionNumerator consumes the zeros paired with a complex pole pair and
// returns the monic numerator's first- and second-order coefficients.
func sectionNumerator(zeros []complex128, used []bool, p complex128) (b1, b2 float64) {
	zi := nearestZero(zeros, used, p)
	if zi < 0 {
		return 0, 0
	}
	z := zeros[zi]
	used[zi] = true

	if !isRealRoot(z) {
		if ci := findConjugate(zeros, used, z); ci >= 0 {
			used[ci] = true
		}
		return -2 * real(z), real(z)*real(z) + imag(z)*imag(z)
	}

	// Real zero: pair it with the next-nearest real zero if one remains.
	if z2i := nearestRealZero(zeros, used, p); z2i >= 0 {
		z2 := zeros[z2i]
		used[z2i] = true
		return -real(z) - real(z2), real(z) * real(z2)
	}
	return -real(z), 0
}

// sortPolesByDistance is used by tests to observe the consumption order.
func sortPolesByDistance(poles []complex128) []complex128 {
	out := append([]complex128(nil), poles...)
	sort.SliceStable(out, func(i, j int) bool {
		return unitCircleDistance(out[i]) > unitCircleDistance(out[j])
	})
	return out
}
