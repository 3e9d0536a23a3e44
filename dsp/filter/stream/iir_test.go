package stream

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-seisdsp/internal/testutil"
)

func TestIIRKnownSecondOrder(t *testing.T) {
	// butter(2, 0.5): y for a unit impulse, first samples derived from
	// the difference equation with a = [1, 0, 0.17157288], b symmetric.
	b := []float64{0.2928932188134524, 0.5857864376269049, 0.2928932188134524}
	a := []float64{1, 0, 0.1715728752538099}

	f, err := NewIIRFilter(b, a)
	if err != nil {
		t.Fatalf("NewIIRFilter: %v", err)
	}
	x := testutil.Impulse(4, 0)
	y := make([]float64, 4)
	if err := f.Apply(y, x); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	want := []float64{
		b[0],
		b[1],
		b[2] - a[2]*b[0],
		-a[2] * (b[1]),
	}
	testutil.RequireSliceNearlyEqual(t, y, want, 1e-12)
}

func TestIIRImplementationsAgree(t *testing.T) {
	b, a := iirTestCoeffs(t)
	x := testutil.Seismogram(4000)

	run := func(impl IIRImplementation) []float64 {
		f, err := NewIIRFilter(b, a, WithImplementation(impl))
		if err != nil {
			t.Fatalf("NewIIRFilter: %v", err)
		}
		y := make([]float64, len(x))
		if err := f.Apply(y, x); err != nil {
			t.Fatalf("Apply: %v", err)
		}
		return y
	}

	testutil.RequireSliceNearlyEqual(t, run(DirectFormII), run(DirectFormIITransposed), 1e-9)
}

func TestIIRNormalizesByA0(t *testing.T) {
	f1, err := NewIIRFilter([]float64{1, 1}, []float64{1, -0.5})
	if err != nil {
		t.Fatalf("NewIIRFilter: %v", err)
	}
	f2, err := NewIIRFilter([]float64{2, 2}, []float64{2, -1})
	if err != nil {
		t.Fatalf("NewIIRFilter: %v", err)
	}

	x := testutil.Seismogram(100)
	y1 := make([]float64, len(x))
	y2 := make([]float64, len(x))
	if err := f1.Apply(y1, x); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if err := f2.Apply(y2, x); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, y2, y1, 1e-12)
}

func TestIIRDCGain(t *testing.T) {
	// y[n] = x[n] + 0.5 y[n-1] has DC gain 2.
	f, err := NewIIRFilter([]float64{1}, []float64{1, -0.5})
	if err != nil {
		t.Fatalf("NewIIRFilter: %v", err)
	}
	x := testutil.Ones(2000)
	y := make([]float64, len(x))
	if err := f.Apply(y, x); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if math.Abs(y[len(y)-1]-2) > 1e-9 {
		t.Fatalf("settled DC output = %v, want 2", y[len(y)-1])
	}
}

func TestIIRValidation(t *testing.T) {
	var f IIRFilter
	if err := f.Initialize([]float64{1}, []float64{0, 1}); err == nil {
		t.Fatal("zero a[0] should fail")
	}
	if err := f.Initialize(nil, []float64{1}); err == nil {
		t.Fatal("empty numerator should fail")
	}
	if f.IsInitialized() {
		t.Fatal("failed initialize must leave the filter cleared")
	}
	if err := f.Apply(nil, []float64{1}); err != ErrNotInitialized {
		t.Fatalf("err = %v, want ErrNotInitialized", err)
	}
}
