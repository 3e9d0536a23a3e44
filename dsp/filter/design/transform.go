package design

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-seisdsp/dsp/filter/rep"
)

// The bilinear transform operates on a fixed normalized sampling rate.
const bilinearFS = 2.0

// PreWarp maps a normalized digital cutoff r in (0, 1) to the analog
// frequency 2*fs*tan(pi*r/2) that the bilinear transform will place at r.
func PreWarp(r float64) (float64, error) {
	if r <= 0 || r >= 1 {
		return 0, fmt.Errorf("design: normalized cutoff must lie in (0, 1): %g", r)
	}
	return 2 * bilinearFS * math.Tan(math.Pi*r/2), nil
}

// LowpassToLowpass moves the analog prototype cutoff from 1 rad/s to wo.
func LowpassToLowpass(z rep.ZPK, wo float64) (rep.ZPK, error) {
	if wo <= 0 {
		return rep.ZPK{}, fmt.Errorf("design: cutoff must be positive: %g", wo)
	}
	degree, err := relativeDegree(z)
	if err != nil {
		return rep.ZPK{}, err
	}

	w := complex(wo, 0)
	zeros := scaleRoots(z.Zeros(), w)
	poles := scaleRoots(z.Poles(), w)
	gain := z.Gain() * math.Pow(wo, float64(degree))

	return rep.NewZPK(zeros, poles, gain), nil
}

// LowpassToHighpass substitutes s -> wo/s, turning the prototype into a
// highpass with cutoff wo. Zeros at infinity map to the origin.
func LowpassToHighpass(z rep.ZPK, wo float64) (rep.ZPK, error) {
	if wo <= 0 {
		return rep.ZPK{}, fmt.Errorf("design: cutoff must be positive: %g", wo)
	}
	degree, err := relativeDegree(z)
	if err != nil {
		return rep.ZPK{}, err
	}

	w := complex(wo, 0)
	oldZeros := z.Zeros()
	oldPoles := z.Poles()

	zeros := make([]complex128, 0, len(oldPoles))
	for _, r := range oldZeros {
		zeros = append(zeros, w/r)
	}
	poles := make([]complex128, len(oldPoles))
	for i, r := range oldPoles {
		poles[i] = w / r
	}
	for i := 0; i < degree; i++ {
		zeros = append(zeros, 0)
	}

	gain := z.Gain() * realRootRatio(oldZeros, oldPoles)

	return rep.NewZPK(zeros, poles, gain), nil
}

// LowpassToBandpass substitutes s -> (s^2 + w1*w2)/((w2-w1)*s). Each root
// doubles through the +- discriminant branch; zeros at infinity split
// between the origin and infinity.
func LowpassToBandpass(z rep.ZPK, w1, w2 float64) (rep.ZPK, error) {
	if w1 <= 0 || w2 <= w1 {
		return rep.ZPK{}, fmt.Errorf("design: band edges must satisfy 0 < w1 < w2: (%g, %g)", w1, w2)
	}
	degree, err := relativeDegree(z)
	if err != nil {
		return rep.ZPK{}, err
	}

	bw := w2 - w1
	wo := math.Sqrt(w1 * w2)

	zeros := bandpassRoots(scaleRoots(z.Zeros(), complex(bw/2, 0)), wo)
	poles := bandpassRoots(scaleRoots(z.Poles(), complex(bw/2, 0)), wo)
	for i := 0; i < degree; i++ {
		zeros = append(zeros, 0)
	}

	gain := z.Gain() * math.Pow(bw, float64(degree))

	return rep.NewZPK(zeros, poles, gain), nil
}

// LowpassToBandstop substitutes s -> (w2-w1)*s/(s^2 + w1*w2). Each root
// doubles; zeros at infinity map to the imaginary band-center pair.
func LowpassToBandstop(z rep.ZPK, w1, w2 float64) (rep.ZPK, error) {
	if w1 <= 0 || w2 <= w1 {
		return rep.ZPK{}, fmt.Errorf("design: band edges must satisfy 0 < w1 < w2: (%g, %g)", w1, w2)
	}
	degree, err := relativeDegree(z)
	if err != nil {
		return rep.ZPK{}, err
	}

	bw := w2 - w1
	wo := math.Sqrt(w1 * w2)
	halfBW := complex(bw/2, 0)

	oldZeros := z.Zeros()
	oldPoles := z.Poles()

	invZeros := make([]complex128, len(oldZeros))
	for i, r := range oldZeros {
		invZeros[i] = halfBW / r
	}
	invPoles := make([]complex128, len(oldPoles))
	for i, r := range oldPoles {
		invPoles[i] = halfBW / r
	}

	zeros := bandpassRoots(invZeros, wo)
	poles := bandpassRoots(invPoles, wo)
	for i := 0; i < degree; i++ {
		zeros = append(zeros, complex(0, wo), complex(0, -wo))
	}

	gain := z.Gain() * realRootRatio(oldZeros, oldPoles)

	return rep.NewZPK(zeros, poles, gain), nil
}

// Bilinear maps an analog zero-pole-gain filter to the digital plane with
// s = 2*fs*(z-1)/(z+1) at the normalized rate fs = 2. Zeros at infinity
// land at z = -1.
func Bilinear(z rep.ZPK) (rep.ZPK, error) {
	degree, err := relativeDegree(z)
	if err != nil {
		return rep.ZPK{}, err
	}

	fs2 := complex(2*bilinearFS, 0)
	oldZeros := z.Zeros()
	oldPoles := z.Poles()

	zeros := make([]complex128, 0, len(oldPoles))
	for _, r := range oldZeros {
		zeros = append(zeros, (fs2+r)/(fs2-r))
	}
	poles := make([]complex128, len(oldPoles))
	for i, r := range oldPoles {
		poles[i] = (fs2 + r) / (fs2 - r)
	}
	for i := 0; i < degree; i++ {
		zeros = append(zeros, -1)
	}

	num := complex(1, 0)
	for _, r := range oldZeros {
		num *= fs2 - r
	}
	den := complex(1, 0)
	for _, r := range oldPoles {
		den *= fs2 - r
	}
	gain := z.Gain() * real(num/den)

	return rep.NewZPK(zeros, poles, gain), nil
}

// relativeDegree returns len(poles) - len(zeros), rejecting improper
// transfer functions.
func relativeDegree(z rep.ZPK) (int, error) {
	degree := z.NumPoles() - z.NumZeros()
	if degree < 0 {
		return 0, fmt.Errorf("design: filter must have at least as many poles as zeros: %d poles, %d zeros",
			z.NumPoles(), z.NumZeros())
	}
	return degree, nil
}

func scaleRoots(roots []complex128, s complex128) []complex128 {
	out := make([]complex128, len(roots))
	for i, r := range roots {
		out[i] = r * s
	}
	return out
}

// bandpassRoots doubles each root r into r +- sqrt(r^2 - wo^2).
func bandpassRoots(roots []complex128, wo float64) []complex128 {
	out := make([]complex128, 0, 2*len(roots))
	wo2 := complex(wo*wo, 0)
	for _, r := range roots {
		d := cmplx.Sqrt(r*r - wo2)
		out = append(out, r+d, r-d)
	}
	return out
}

// realRootRatio returns Re(prod(-zeros)/prod(-poles)).
func realRootRatio(zeros, poles []complex128) float64 {
	num := complex(1, 0)
	for _, r := range zeros {
		num *= -r
	}
	den := complex(1, 0)
	for _, r := range poles {
		den *= -r
	}
	return real(num / den)
}
