// Package design produces filter representations: analog lowpass
// prototypes, analog band transforms, the bilinear transform, conversions
// between zero-pole-gain, transfer-function and second-order-section
// forms, window-method FIR design and the FIR Hilbert transformer pair.
//
// All digital cutoffs are normalized to (0, 1) with 1 equal to the
// Nyquist frequency. Use dsp/core to convert from Hz.
package design
