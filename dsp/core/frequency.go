package core

import "fmt"

// Nyquist returns the Nyquist frequency 1/(2*dt) for a sampling period dt.
func Nyquist(dt float64) (float64, error) {
	if dt <= 0 {
		return 0, fmt.Errorf("core: sampling period must be positive: %g", dt)
	}
	return 1 / (2 * dt), nil
}

// NormalizedFrequency converts a frequency in Hz to the normalized cutoff
// r = f/fNyquist used by the filter designers. The result must lie in the
// open interval (0, 1).
func NormalizedFrequency(freqHz, dt float64) (float64, error) {
	fn, err := Nyquist(dt)
	if err != nil {
		return 0, err
	}
	r := freqHz / fn
	if r <= 0 || r >= 1 {
		return 0, fmt.Errorf("core: frequency %g Hz outside (0, %g) Hz", freqHz, fn)
	}
	return r, nil
}

// NormalizedBand converts a band (f1, f2) in Hz to normalized edges
// 0 < r1 < r2 < 1.
func NormalizedBand(f1Hz, f2Hz, dt float64) (r1, r2 float64, err error) {
	r1, err = NormalizedFrequency(f1Hz, dt)
	if err != nil {
		return 0, 0, err
	}
	r2, err = NormalizedFrequency(f2Hz, dt)
	if err != nil {
		return 0, 0, err
	}
	if r1 >= r2 {
		return 0, 0, fmt.Errorf("core: band edges must satisfy f1 < f2: %g >= %g", f1Hz, f2Hz)
	}
	return r1, r2, nil
}
