package rep

import (
	"math"
	"testing"
)

func TestZPKEqualPermutationInsensitive(t *testing.T) {
	z1 := NewZPK(
		[]complex128{complex(0, 1), complex(0, -1)},
		[]complex128{complex(-0.5, 0.5), complex(-0.5, -0.5)},
		2.0,
	)
	z2 := NewZPK(
		[]complex128{complex(0, -1), complex(0, 1)},
		[]complex128{complex(-0.5, -0.5), complex(-0.5, 0.5)},
		2.0,
	)
	if !z1.Equal(z2) {
		t.Fatal("permuted roots should compare equal")
	}
}

func TestZPKEqualTolerance(t *testing.T) {
	z1 := NewZPK(nil, []complex128{complex(-1, 0)}, 1)
	z2 := NewZPK(nil, []complex128{complex(-1+5e-13, 0)}, 1)
	if !z1.Equal(z2) {
		t.Fatal("roots within default tolerance should compare equal")
	}
	z3 := NewZPK(nil, []complex128{complex(-1+1e-9, 0)}, 1)
	if z1.Equal(z3) {
		t.Fatal("roots beyond tolerance should not compare equal")
	}
	if !z1.WithTolerance(1e-6).Equal(z3) {
		t.Fatal("widened tolerance should accept the perturbation")
	}
}

func TestZPKEqualSizeAndGain(t *testing.T) {
	z1 := NewZPK(nil, []complex128{-1}, 1)
	z2 := NewZPK(nil, []complex128{-1, -2}, 1)
	if z1.Equal(z2) {
		t.Fatal("different pole counts should not compare equal")
	}
	z3 := NewZPK(nil, []complex128{-1}, 1.5)
	if z1.Equal(z3) {
		t.Fatal("different gains should not compare equal")
	}
}

func TestZPKAccessorsCopy(t *testing.T) {
	z := NewZPK([]complex128{1}, []complex128{-1}, 1)
	zeros := z.Zeros()
	zeros[0] = 99
	if z.Zeros()[0] == 99 {
		t.Fatal("Zeros must return a copy")
	}
}

func TestBAValidation(t *testing.T) {
	if _, err := NewBA(nil, []float64{1}); err == nil {
		t.Fatal("empty numerator should fail")
	}
	if _, err := NewBA([]float64{1}, []float64{0, 1}); err == nil {
		t.Fatal("zero leading denominator should fail")
	}
}

func TestBANormalize(t *testing.T) {
	f, err := NewBA([]float64{2, 4}, []float64{2, 1})
	if err != nil {
		t.Fatalf("NewBA: %v", err)
	}
	n, scaled := f.Normalize()
	if !scaled {
		t.Fatal("normalization should report scaling")
	}
	b, a := n.Numerator(), n.Denominator()
	if b[0] != 1 || b[1] != 2 || a[0] != 1 || a[1] != 0.5 {
		t.Fatalf("normalized = %v / %v", b, a)
	}
	if _, scaled := n.Normalize(); scaled {
		t.Fatal("already-normalized filter should not rescale")
	}
}

func TestSOSValidation(t *testing.T) {
	if _, err := NewSOS(0, nil, nil); err == nil {
		t.Fatal("zero sections should fail")
	}
	if _, err := NewSOS(1, []float64{1, 0, 0}, []float64{1, 0}); err == nil {
		t.Fatal("short denominator should fail")
	}
	if _, err := NewSOS(1, []float64{0, 1, 0}, []float64{1, 0, 0}); err == nil {
		t.Fatal("zero leading numerator should fail")
	}
}

func TestSOSEqual(t *testing.T) {
	s1, err := NewSOS(2,
		[]float64{1, 2, 1, 1, -2, 1},
		[]float64{1, -0.5, 0.25, 1, -0.4, 0.2},
	)
	if err != nil {
		t.Fatalf("NewSOS: %v", err)
	}
	s2, _ := NewSOS(2,
		[]float64{1, 2, 1, 1, -2, 1},
		[]float64{1, -0.5, 0.25, 1, -0.4, 0.2 + 1e-13},
	)
	if !s1.Equal(s2) {
		t.Fatal("sections within tolerance should compare equal")
	}
	// Swapped section order must not compare equal.
	s3, _ := NewSOS(2,
		[]float64{1, -2, 1, 1, 2, 1},
		[]float64{1, -0.4, 0.2, 1, -0.5, 0.25},
	)
	if s1.Equal(s3) {
		t.Fatal("section order is significant")
	}
}

func TestFIRGroupDelay(t *testing.T) {
	f, err := NewFIR(make([]float64, 301))
	if err != nil {
		t.Fatalf("NewFIR: %v", err)
	}
	if f.GroupDelay() != 150 {
		t.Fatalf("group delay = %d, want 150", f.GroupDelay())
	}
	if _, err := NewFIR(nil); err == nil {
		t.Fatal("empty taps should fail")
	}
}

func TestFIREqual(t *testing.T) {
	f1, _ := NewFIR([]float64{0.25, 0.5, 0.25})
	f2, _ := NewFIR([]float64{0.25, 0.5 + 1e-13, 0.25})
	if !f1.Equal(f2) {
		t.Fatal("taps within tolerance should compare equal")
	}
	f3, _ := NewFIR([]float64{0.25, 0.5 + 1e-3, 0.25})
	if f1.Equal(f3) {
		t.Fatal("taps beyond tolerance should not compare equal")
	}
	if math.Abs(f1.Taps()[1]-0.5) > 0 {
		t.Fatal("Taps must round-trip values")
	}
}
