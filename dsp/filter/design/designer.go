package design

import (
	"github.com/cwbudde/algo-seisdsp/dsp/filter/rep"
	"github.com/cwbudde/algo-seisdsp/dsp/window"
)

// Designer memoizes design outputs keyed by the full parameter tuple.
// Designing the same filter repeatedly (per-channel pipelines commonly
// re-derive identical filters) then costs one map lookup. The zero value
// is ready to use. A Designer is owned by a single goroutine; it must not
// be shared without external synchronization.
type Designer struct {
	iir map[IIRSpec]rep.ZPK
	sos map[IIRSpec]rep.SOS
	ba  map[IIRSpec]rep.BA
	fir map[firKey]rep.FIR
}

type firKey struct {
	band   Band
	order  int
	r1, r2 float64
	win    window.Type
	beta   float64
}

// IIR returns the memoized zero-pole-gain design for spec.
func (d *Designer) IIR(spec IIRSpec) (rep.ZPK, error) {
	if z, ok := d.iir[spec]; ok {
		return z, nil
	}
	z, err := IIR(spec)
	if err != nil {
		return rep.ZPK{}, err
	}
	if d.iir == nil {
		d.iir = make(map[IIRSpec]rep.ZPK)
	}
	d.iir[spec] = z
	return z, nil
}

// IIRAsSOS returns the memoized second-order-section design for spec.
func (d *Designer) IIRAsSOS(spec IIRSpec) (rep.SOS, error) {
	if s, ok := d.sos[spec]; ok {
		return s, nil
	}
	s, err := IIRAsSOS(spec)
	if err != nil {
		return rep.SOS{}, err
	}
	if d.sos == nil {
		d.sos = make(map[IIRSpec]rep.SOS)
	}
	d.sos[spec] = s
	return s, nil
}

// IIRAsBA returns the memoized transfer-function design for spec.
func (d *Designer) IIRAsBA(spec IIRSpec) (rep.BA, error) {
	if f, ok := d.ba[spec]; ok {
		return f, nil
	}
	f, err := IIRAsBA(spec)
	if err != nil {
		return rep.BA{}, err
	}
	if d.ba == nil {
		d.ba = make(map[IIRSpec]rep.BA)
	}
	d.ba[spec] = f
	return f, nil
}

// FIR returns the memoized window-method FIR design for the given band.
// For Lowpass and Highpass only r1 is used.
func (d *Designer) FIR(band Band, order int, r1, r2 float64, win window.Type, opts ...FIROption) (rep.FIR, error) {
	cfg := firOptions(opts)
	key := firKey{band: band, order: order, r1: r1, r2: r2, win: win, beta: cfg.beta}
	if f, ok := d.fir[key]; ok {
		return f, nil
	}

	var (
		f   rep.FIR
		err error
	)
	switch band {
	case Lowpass:
		f, err = FIRLowpass(order, r1, win, opts...)
	case Highpass:
		f, err = FIRHighpass(order, r1, win, opts...)
	case Bandpass:
		f, err = FIRBandpass(order, r1, r2, win, opts...)
	case Bandstop:
		f, err = FIRBandstop(order, r1, r2, win, opts...)
	}
	if err != nil {
		return rep.FIR{}, err
	}

	if d.fir == nil {
		d.fir = make(map[firKey]rep.FIR)
	}
	d.fir[key] = f
	return f, nil
}

// Clear drops every cached design.
func (d *Designer) Clear() {
	d.iir = nil
	d.sos = nil
	d.ba = nil
	d.fir = nil
}
