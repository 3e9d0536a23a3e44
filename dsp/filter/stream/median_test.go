package stream

import (
	"math"
	"sort"
	"testing"

	"github.com/cwbudde/algo-seisdsp/internal/testutil"
)

// Reference medians of the classic 8-sample probe (centered convention);
// the engine's trailing-window output reproduces them at a lag of the
// group delay.
var (
	medianProbe = []float64{1, 2, 127, 4, 5, 0, 7, 8}
	medianRef3  = []float64{1, 2, 4, 5, 4, 5, 7, 7}
	medianRef5  = []float64{1, 2, 4, 4, 5, 5, 5, 0}
)

func TestMedianSmallWindow3(t *testing.T) {
	f, err := NewMedianFilter(3)
	if err != nil {
		t.Fatalf("NewMedianFilter: %v", err)
	}
	y := make([]float64, len(medianProbe))
	if err := f.Apply(y, medianProbe); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	for i := 1; i < len(medianProbe)-1; i++ {
		if math.Abs(y[i+1]-medianRef3[i]) > 1e-14 {
			t.Fatalf("y[%d] = %v, want %v", i+1, y[i+1], medianRef3[i])
		}
	}
}

func TestMedianSmallWindow5(t *testing.T) {
	f, err := NewMedianFilter(5)
	if err != nil {
		t.Fatalf("NewMedianFilter: %v", err)
	}
	y := make([]float64, len(medianProbe))
	if err := f.Apply(y, medianProbe); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	for i := 2; i < len(medianProbe)-2; i++ {
		if math.Abs(y[i+2]-medianRef5[i]) > 1e-14 {
			t.Fatalf("y[%d] = %v, want %v", i+2, y[i+2], medianRef5[i])
		}
	}
}

func TestMedianMatchesNaiveReference(t *testing.T) {
	x := testutil.Seismogram(3000)
	const w = 11

	f, err := NewMedianFilter(w)
	if err != nil {
		t.Fatalf("NewMedianFilter: %v", err)
	}
	got := make([]float64, len(x))
	if err := f.Apply(got, x); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	ext := make([]float64, w-1+len(x))
	copy(ext[w-1:], x)
	scratch := make([]float64, w)
	for i := range x {
		copy(scratch, ext[i:i+w])
		sort.Float64s(scratch)
		if math.Abs(got[i]-scratch[w/2]) > 1e-14 {
			t.Fatalf("sample %d: got %v, want %v", i, got[i], scratch[w/2])
		}
	}
}

func TestMedianEvenWindowRoundsUp(t *testing.T) {
	f, err := NewMedianFilter(4)
	if err != nil {
		t.Fatalf("NewMedianFilter: %v", err)
	}
	w, err := f.Window()
	if err != nil || w != 5 {
		t.Fatalf("Window = %d, %v, want 5", w, err)
	}
	g, err := f.GroupDelay()
	if err != nil || g != 2 {
		t.Fatalf("GroupDelay = %d, %v, want 2", g, err)
	}
	n, err := f.InitialConditionLength()
	if err != nil || n != 4 {
		t.Fatalf("InitialConditionLength = %d, %v, want 4", n, err)
	}
}

func TestMedianValidation(t *testing.T) {
	var f MedianFilter
	if err := f.Initialize(0); err == nil {
		t.Fatal("zero window should fail")
	}
	if err := f.Apply(nil, []float64{1}); err != ErrNotInitialized {
		t.Fatalf("err = %v, want ErrNotInitialized", err)
	}
}
