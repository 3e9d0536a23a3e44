package design

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-seisdsp/dsp/filter/rep"
	"github.com/cwbudde/algo-seisdsp/dsp/window"
)

// firResponse evaluates |H| of a tap set at normalized frequency r
// (1 = Nyquist).
func firResponse(f rep.FIR, r float64) float64 {
	taps := f.Taps()
	w := math.Pi * r
	re, im := 0.0, 0.0
	for k, c := range taps {
		re += c * math.Cos(w*float64(k))
		im -= c * math.Sin(w*float64(k))
	}
	return math.Hypot(re, im)
}

func TestFIRLowpassResponse(t *testing.T) {
	f, err := FIRLowpass(64, 0.3, window.TypeHamming)
	if err != nil {
		t.Fatalf("FIRLowpass: %v", err)
	}
	if f.Len() != 65 {
		t.Fatalf("len = %d, want 65", f.Len())
	}
	if g := firResponse(f, 0); math.Abs(g-1) > 1e-2 {
		t.Fatalf("DC gain = %v, want 1", g)
	}
	if g := firResponse(f, 0.9); g > 1e-2 {
		t.Fatalf("stopband gain = %v, want 0", g)
	}
	// Symmetric (linear phase).
	taps := f.Taps()
	for i := range taps {
		j := len(taps) - 1 - i
		if math.Abs(taps[i]-taps[j]) > 1e-15 {
			t.Fatalf("asymmetric taps at %d", i)
		}
	}
}

func TestFIRHighpassResponse(t *testing.T) {
	f, err := FIRHighpass(64, 0.4, window.TypeHamming)
	if err != nil {
		t.Fatalf("FIRHighpass: %v", err)
	}
	if g := firResponse(f, 1); math.Abs(g-1) > 1e-2 {
		t.Fatalf("Nyquist gain = %v, want 1", g)
	}
	if g := firResponse(f, 0.05); g > 1e-2 {
		t.Fatalf("DC-side gain = %v, want 0", g)
	}
}

func TestFIRHighpassRoundsToOddLength(t *testing.T) {
	f, err := FIRHighpass(63, 0.4, window.TypeHamming)
	if err != nil {
		t.Fatalf("FIRHighpass: %v", err)
	}
	if f.Len() != 65 {
		t.Fatalf("len = %d, want 65 (rounded up)", f.Len())
	}
}

func TestFIRBandpassResponse(t *testing.T) {
	f, err := FIRBandpass(128, 0.2, 0.5, window.TypeBlackman)
	if err != nil {
		t.Fatalf("FIRBandpass: %v", err)
	}
	if g := firResponse(f, 0.35); math.Abs(g-1) > 1e-2 {
		t.Fatalf("midband gain = %v, want 1", g)
	}
	if g := firResponse(f, 0.05); g > 1e-2 {
		t.Fatalf("low stopband gain = %v", g)
	}
	if g := firResponse(f, 0.8); g > 1e-2 {
		t.Fatalf("high stopband gain = %v", g)
	}
}

func TestFIRBandstopResponse(t *testing.T) {
	f, err := FIRBandstop(128, 0.2, 0.5, window.TypeHamming)
	if err != nil {
		t.Fatalf("FIRBandstop: %v", err)
	}
	if g := firResponse(f, 0.35); g > 1e-2 {
		t.Fatalf("notch gain = %v, want 0", g)
	}
	if g := firResponse(f, 0.05); math.Abs(g-1) > 1e-2 {
		t.Fatalf("low passband gain = %v, want 1", g)
	}
	if g := firResponse(f, 0.9); math.Abs(g-1) > 1e-2 {
		t.Fatalf("high passband gain = %v, want 1", g)
	}
}

func TestFIRKaiserBetaOption(t *testing.T) {
	wide, err := FIRLowpass(64, 0.3, window.TypeKaiser, WithKaiserBeta(2))
	if err != nil {
		t.Fatalf("FIRLowpass: %v", err)
	}
	narrow, err := FIRLowpass(64, 0.3, window.TypeKaiser, WithKaiserBeta(12))
	if err != nil {
		t.Fatalf("FIRLowpass: %v", err)
	}
	if wide.Equal(narrow) {
		t.Fatal("beta option had no effect")
	}
	// Higher beta gives deeper stopband.
	if firResponse(narrow, 0.8) >= firResponse(wide, 0.8) {
		t.Fatal("beta 12 should attenuate more than beta 2")
	}
}

func TestFIRValidation(t *testing.T) {
	if _, err := FIRLowpass(0, 0.5, window.TypeHamming); err == nil {
		t.Fatal("order 0 should fail")
	}
	if _, err := FIRLowpass(10, 1.5, window.TypeHamming); err == nil {
		t.Fatal("cutoff above Nyquist should fail")
	}
	if _, err := FIRBandpass(10, 0.5, 0.2, window.TypeHamming); err == nil {
		t.Fatal("inverted band should fail")
	}
}

func TestHilbertTypeIII(t *testing.T) {
	re, im, err := HilbertTransformer(300, 8)
	if err != nil {
		t.Fatalf("HilbertTransformer: %v", err)
	}
	if re.Len() != 301 || im.Len() != 301 {
		t.Fatalf("lengths = %d, %d, want 301", re.Len(), im.Len())
	}

	// Real branch is a pure delay of 150 samples.
	rTaps := re.Taps()
	for k, v := range rTaps {
		want := 0.0
		if k == 150 {
			want = 1
		}
		if v != want {
			t.Fatalf("real tap %d = %v, want %v", k, v, want)
		}
	}

	// Imaginary branch: antisymmetric, zero DC and Nyquist response.
	iTaps := im.Taps()
	for k := range iTaps {
		j := len(iTaps) - 1 - k
		if math.Abs(iTaps[k]+iTaps[j]) > 1e-15 {
			t.Fatalf("imag taps not antisymmetric at %d", k)
		}
	}
	if g := firResponse(im, 1e-12); g > 1e-6 {
		t.Fatalf("DC response = %v, want 0", g)
	}
	if g := firResponse(im, 1); g > 1e-6 {
		t.Fatalf("Nyquist response = %v, want 0", g)
	}
	// Near-unit response over the midband.
	for _, r := range []float64{0.2, 0.5, 0.8} {
		if g := firResponse(im, r); math.Abs(g-1) > 1e-2 {
			t.Fatalf("midband response at %v = %v, want 1", r, g)
		}
	}
}

func TestHilbertTypeIV(t *testing.T) {
	re, im, err := HilbertTransformer(301, 8)
	if err != nil {
		t.Fatalf("HilbertTransformer: %v", err)
	}
	if re.Len() != 302 || im.Len() != 302 {
		t.Fatalf("lengths = %d, %d, want 302", re.Len(), im.Len())
	}
	// Type IV keeps response at Nyquist.
	if g := firResponse(im, 1); math.Abs(g-1) > 1e-2 {
		t.Fatalf("Nyquist response = %v, want 1", g)
	}
	// The real branch is a half-band fractional delay with unit passband.
	if g := firResponse(re, 0.5); math.Abs(g-1) > 1e-2 {
		t.Fatalf("real branch midband response = %v, want 1", g)
	}
}

func TestHilbertValidation(t *testing.T) {
	if _, _, err := HilbertTransformer(0, 8); err == nil {
		t.Fatal("order 0 should fail")
	}
	if _, _, err := HilbertTransformer(10, -1); err == nil {
		t.Fatal("negative beta should fail")
	}
}
