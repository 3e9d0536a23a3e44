package design

import (
	"fmt"

	"github.com/cwbudde/algo-seisdsp/dsp/filter/rep"
)

// Prototype selects the analog lowpass prototype family.
type Prototype int

const (
	PrototypeButterworth Prototype = iota
	PrototypeBessel
	PrototypeChebyshevI
	PrototypeChebyshevII
)

// String returns the prototype name.
func (p Prototype) String() string {
	switch p {
	case PrototypeBessel:
		return "bessel"
	case PrototypeChebyshevI:
		return "chebyshev1"
	case PrototypeChebyshevII:
		return "chebyshev2"
	default:
		return "butterworth"
	}
}

// Band selects the digital passband geometry.
type Band int

const (
	Lowpass Band = iota
	Highpass
	Bandpass
	Bandstop
)

// String returns the band name.
func (b Band) String() string {
	switch b {
	case Highpass:
		return "highpass"
	case Bandpass:
		return "bandpass"
	case Bandstop:
		return "bandstop"
	default:
		return "lowpass"
	}
}

// IIRSpec fully describes a digital IIR design request. R1 is the cutoff
// for lowpass/highpass; R1 < R2 are the edges for bandpass/bandstop, all
// normalized to (0, 1). Ripple carries the passband ripple (Chebyshev I)
// or stopband attenuation (Chebyshev II) in dB and is ignored otherwise.
type IIRSpec struct {
	Order     int
	Prototype Prototype
	Band      Band
	R1, R2    float64
	Ripple    float64
}

// IIR designs a digital IIR filter: analog prototype, pre-warped band
// transform, then the bilinear transform. The result is a digital
// zero-pole-gain representation.
func IIR(spec IIRSpec) (rep.ZPK, error) {
	proto, err := analogPrototype(spec)
	if err != nil {
		return rep.ZPK{}, err
	}

	shaped, err := applyBandTransform(proto, spec)
	if err != nil {
		return rep.ZPK{}, err
	}

	return Bilinear(shaped)
}

// IIRAsBA designs a digital IIR filter in transfer-function form.
func IIRAsBA(spec IIRSpec) (rep.BA, error) {
	z, err := IIR(spec)
	if err != nil {
		return rep.BA{}, err
	}
	ba, err := ZPKToBA(z)
	if err != nil {
		return rep.BA{}, err
	}
	normalized, _ := ba.Normalize()
	return normalized, nil
}

// IIRAsSOS designs a digital IIR filter in second-order-section form.
func IIRAsSOS(spec IIRSpec) (rep.SOS, error) {
	z, err := IIR(spec)
	if err != nil {
		return rep.SOS{}, err
	}
	return ZPKToSOS(z)
}

func analogPrototype(spec IIRSpec) (rep.ZPK, error) {
	switch spec.Prototype {
	case PrototypeButterworth:
		return Butterworth(spec.Order)
	case PrototypeBessel:
		return Bessel(spec.Order)
	case PrototypeChebyshevI:
		return ChebyshevI(spec.Order, spec.Ripple)
	case PrototypeChebyshevII:
		return ChebyshevII(spec.Order, spec.Ripple)
	default:
		return rep.ZPK{}, fmt.Errorf("design: unknown prototype %d", spec.Prototype)
	}
}

func applyBandTransform(proto rep.ZPK, spec IIRSpec) (rep.ZPK, error) {
	switch spec.Band {
	case Lowpass, Highpass:
		w, err := PreWarp(spec.R1)
		if err != nil {
			return rep.ZPK{}, err
		}
		if spec.Band == Lowpass {
			return LowpassToLowpass(proto, w)
		}
		return LowpassToHighpass(proto, w)
	case Bandpass, Bandstop:
		if spec.R1 >= spec.R2 {
			return rep.ZPK{}, fmt.Errorf("design: band edges must satisfy r1 < r2: (%g, %g)", spec.R1, spec.R2)
		}
		w1, err := PreWarp(spec.R1)
		if err != nil {
			return rep.ZPK{}, err
		}
		w2, err := PreWarp(spec.R2)
		if err != nil {
			return rep.ZPK{}, err
		}
		if spec.Band == Bandpass {
			return LowpassToBandpass(proto, w1, w2)
		}
		return LowpassToBandstop(proto, w1, w2)
	default:
		return rep.ZPK{}, fmt.Errorf("design: unknown band %d", spec.Band)
	}
}
