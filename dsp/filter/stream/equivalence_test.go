package stream

import (
	"testing"

	"github.com/cwbudde/algo-seisdsp/dsp/core"
	"github.com/cwbudde/algo-seisdsp/dsp/filter/design"
	"github.com/cwbudde/algo-seisdsp/dsp/window"
	"github.com/cwbudde/algo-seisdsp/internal/testutil"
)

const (
	equivalenceN     = 12000
	equivalenceTol   = 1e-10
	equivalenceTol32 = 1e-5
)

// partitions returns every packet schedule of the equivalence contract:
// the fixed sizes plus seeded random sizes in [1, 50].
func partitions(n int) [][]int {
	var out [][]int
	for _, size := range testutil.FixedPacketSizes {
		out = append(out, testutil.FixedPartition(n, size))
	}
	for seed := int64(1); seed <= 3; seed++ {
		out = append(out, testutil.RandomPartition(n, 50, seed))
	}
	return out
}

// checkEquivalence drives a post-processing run and a chunked real-time
// run of the same engine family over every packet schedule. post computes
// the single-shot output; newRT builds a fresh real-time instance and
// returns a feeder that appends each packet's output.
func checkEquivalence[F core.Float](
	t *testing.T,
	x []F,
	post func(t *testing.T, x []F) []F,
	newRT func(t *testing.T) func(packet []F) []F,
	tol float64,
) {
	t.Helper()
	want := post(t, x)

	for si, sched := range partitions(len(x)) {
		feed := newRT(t)
		got := make([]F, 0, len(want))
		pos := 0
		for _, m := range sched {
			got = append(got, feed(x[pos:pos+m])...)
			pos += m
		}
		if len(got) != len(want) {
			t.Fatalf("schedule %d: output length %d, want %d", si, len(got), len(want))
		}
		for i := range want {
			d := float64(got[i] - want[i])
			if d < 0 {
				d = -d
			}
			if d > tol {
				t.Fatalf("schedule %d: sample %d differs by %v (tol %v)", si, i, d, tol)
			}
		}
	}
}

func narrowSlice[F core.Float](x []float64) []F {
	out := make([]F, len(x))
	for i, v := range x {
		out[i] = F(v)
	}
	return out
}

func firTestTaps(t *testing.T) []float64 {
	t.Helper()
	f, err := design.FIRLowpass(50, 0.3, window.TypeHamming)
	if err != nil {
		t.Fatalf("FIRLowpass: %v", err)
	}
	return f.Taps()
}

func iirTestCoeffs(t *testing.T) ([]float64, []float64) {
	t.Helper()
	ba, err := design.IIRAsBA(design.IIRSpec{
		Order: 4, Prototype: design.PrototypeButterworth, Band: design.Lowpass, R1: 0.25,
	})
	if err != nil {
		t.Fatalf("IIRAsBA: %v", err)
	}
	return ba.Numerator(), ba.Denominator()
}

func TestFIRStreamingEquivalence(t *testing.T) {
	x := testutil.Seismogram(equivalenceN)
	taps := firTestTaps(t)

	checkEquivalence(t, x,
		func(t *testing.T, x []float64) []float64 {
			f, err := NewFIRFilter(taps)
			if err != nil {
				t.Fatalf("NewFIRFilter: %v", err)
			}
			y := make([]float64, len(x))
			if err := f.Apply(y, x); err != nil {
				t.Fatalf("Apply: %v", err)
			}
			return y
		},
		func(t *testing.T) func([]float64) []float64 {
			f, err := NewFIRFilter(taps, WithMode(core.RealTime))
			if err != nil {
				t.Fatalf("NewFIRFilter: %v", err)
			}
			return func(packet []float64) []float64 {
				y := make([]float64, len(packet))
				if err := f.Apply(y, packet); err != nil {
					t.Fatalf("Apply: %v", err)
				}
				return y
			}
		},
		equivalenceTol,
	)
}

func TestFIRStreamingEquivalence32(t *testing.T) {
	x := narrowSlice[float32](testutil.Seismogram(equivalenceN))
	taps := firTestTaps(t)

	checkEquivalence(t, x,
		func(t *testing.T, x []float32) []float32 {
			var f FIRFilter32
			if err := f.Initialize(taps); err != nil {
				t.Fatalf("Initialize: %v", err)
			}
			y := make([]float32, len(x))
			if err := f.Apply(y, x); err != nil {
				t.Fatalf("Apply: %v", err)
			}
			return y
		},
		func(t *testing.T) func([]float32) []float32 {
			var f FIRFilter32
			if err := f.Initialize(taps, WithMode(core.RealTime)); err != nil {
				t.Fatalf("Initialize: %v", err)
			}
			return func(packet []float32) []float32 {
				y := make([]float32, len(packet))
				if err := f.Apply(y, packet); err != nil {
					t.Fatalf("Apply: %v", err)
				}
				return y
			}
		},
		equivalenceTol32,
	)
}

func TestIIRStreamingEquivalence(t *testing.T) {
	x := testutil.Seismogram(equivalenceN)
	b, a := iirTestCoeffs(t)

	for _, impl := range []IIRImplementation{DirectFormIITransposed, DirectFormII} {
		checkEquivalence(t, x,
			func(t *testing.T, x []float64) []float64 {
				f, err := NewIIRFilter(b, a, WithImplementation(impl))
				if err != nil {
					t.Fatalf("NewIIRFilter: %v", err)
				}
				y := make([]float64, len(x))
				if err := f.Apply(y, x); err != nil {
					t.Fatalf("Apply: %v", err)
				}
				return y
			},
			func(t *testing.T) func([]float64) []float64 {
				f, err := NewIIRFilter(b, a, WithMode(core.RealTime), WithImplementation(impl))
				if err != nil {
					t.Fatalf("NewIIRFilter: %v", err)
				}
				return func(packet []float64) []float64 {
					y := make([]float64, len(packet))
					if err := f.Apply(y, packet); err != nil {
						t.Fatalf("Apply: %v", err)
					}
					return y
				}
			},
			equivalenceTol,
		)
	}
}

func TestSOSStreamingEquivalence(t *testing.T) {
	x := testutil.Seismogram(equivalenceN)
	sos, err := design.IIRAsSOS(design.IIRSpec{
		Order: 6, Prototype: design.PrototypeButterworth, Band: design.Bandpass, R1: 0.05, R2: 0.35,
	})
	if err != nil {
		t.Fatalf("IIRAsSOS: %v", err)
	}

	checkEquivalence(t, x,
		func(t *testing.T, x []float64) []float64 {
			f, err := NewSOSFilter(sos)
			if err != nil {
				t.Fatalf("NewSOSFilter: %v", err)
			}
			y := make([]float64, len(x))
			if err := f.Apply(y, x); err != nil {
				t.Fatalf("Apply: %v", err)
			}
			return y
		},
		func(t *testing.T) func([]float64) []float64 {
			f, err := NewSOSFilter(sos, WithMode(core.RealTime))
			if err != nil {
				t.Fatalf("NewSOSFilter: %v", err)
			}
			return func(packet []float64) []float64 {
				y := make([]float64, len(packet))
				if err := f.Apply(y, packet); err != nil {
					t.Fatalf("Apply: %v", err)
				}
				return y
			}
		},
		equivalenceTol,
	)
}

func TestMedianStreamingEquivalence(t *testing.T) {
	x := testutil.Seismogram(equivalenceN)

	checkEquivalence(t, x,
		func(t *testing.T, x []float64) []float64 {
			f, err := NewMedianFilter(11)
			if err != nil {
				t.Fatalf("NewMedianFilter: %v", err)
			}
			y := make([]float64, len(x))
			if err := f.Apply(y, x); err != nil {
				t.Fatalf("Apply: %v", err)
			}
			return y
		},
		func(t *testing.T) func([]float64) []float64 {
			f, err := NewMedianFilter(11, WithMode(core.RealTime))
			if err != nil {
				t.Fatalf("NewMedianFilter: %v", err)
			}
			return func(packet []float64) []float64 {
				y := make([]float64, len(packet))
				if err := f.Apply(y, packet); err != nil {
					t.Fatalf("Apply: %v", err)
				}
				return y
			}
		},
		equivalenceTol,
	)
}

func TestDownsampleStreamingEquivalence(t *testing.T) {
	x := testutil.Seismogram(equivalenceN)

	for q := 1; q <= 7; q++ {
		checkEquivalence(t, x,
			func(t *testing.T, x []float64) []float64 {
				f, err := NewDownsampler(q)
				if err != nil {
					t.Fatalf("NewDownsampler: %v", err)
				}
				y := make([]float64, len(x))
				ny, err := f.Apply(y, x)
				if err != nil {
					t.Fatalf("Apply: %v", err)
				}
				return y[:ny]
			},
			func(t *testing.T) func([]float64) []float64 {
				f, err := NewDownsampler(q, WithMode(core.RealTime))
				if err != nil {
					t.Fatalf("NewDownsampler: %v", err)
				}
				return func(packet []float64) []float64 {
					y := make([]float64, len(packet)+1)
					ny, err := f.Apply(y, packet)
					if err != nil {
						t.Fatalf("Apply: %v", err)
					}
					return y[:ny]
				}
			},
			0, // downsampling moves samples verbatim; equality is exact
		)
	}
}

func TestMultiRateStreamingEquivalence(t *testing.T) {
	x := testutil.Seismogram(equivalenceN)
	taps := firTestTaps(t)

	cases := []struct{ up, down int }{
		{1, 1}, {2, 1}, {1, 3}, {3, 2}, {2, 5}, {7, 3},
	}
	for _, c := range cases {
		checkEquivalence(t, x,
			func(t *testing.T, x []float64) []float64 {
				f, err := NewMultiRateFIR(c.up, c.down, taps)
				if err != nil {
					t.Fatalf("NewMultiRateFIR: %v", err)
				}
				space, err := f.EstimateSpace(len(x))
				if err != nil {
					t.Fatalf("EstimateSpace: %v", err)
				}
				y := make([]float64, space)
				ny, err := f.Apply(y, x)
				if err != nil {
					t.Fatalf("Apply: %v", err)
				}
				return y[:ny]
			},
			func(t *testing.T) func([]float64) []float64 {
				f, err := NewMultiRateFIR(c.up, c.down, taps, WithMode(core.RealTime))
				if err != nil {
					t.Fatalf("NewMultiRateFIR: %v", err)
				}
				return func(packet []float64) []float64 {
					space, err := f.EstimateSpace(len(packet))
					if err != nil {
						t.Fatalf("EstimateSpace: %v", err)
					}
					y := make([]float64, space)
					ny, err := f.Apply(y, packet)
					if err != nil {
						t.Fatalf("Apply: %v", err)
					}
					return y[:ny]
				}
			},
			equivalenceTol,
		)
	}
}

func TestDecimateStreamingEquivalence(t *testing.T) {
	x := testutil.Seismogram(equivalenceN)

	for _, q := range []int{2, 3, 5} {
		checkEquivalence(t, x,
			func(t *testing.T, x []float64) []float64 {
				f, err := NewDecimator(q, WithPhaseShiftRemoval(false))
				if err != nil {
					t.Fatalf("NewDecimator: %v", err)
				}
				y := make([]float64, len(x))
				ny, err := f.Apply(y, x)
				if err != nil {
					t.Fatalf("Apply: %v", err)
				}
				return y[:ny]
			},
			func(t *testing.T) func([]float64) []float64 {
				f, err := NewDecimator(q, WithMode(core.RealTime))
				if err != nil {
					t.Fatalf("NewDecimator: %v", err)
				}
				return func(packet []float64) []float64 {
					y := make([]float64, len(packet)+1)
					ny, err := f.Apply(y, packet)
					if err != nil {
						t.Fatalf("Apply: %v", err)
					}
					return y[:ny]
				}
			},
			equivalenceTol,
		)
	}
}

func TestSOSStreamingEquivalence32(t *testing.T) {
	x := narrowSlice[float32](testutil.Seismogram(equivalenceN))
	sos, err := design.IIRAsSOS(design.IIRSpec{
		Order: 4, Prototype: design.PrototypeButterworth, Band: design.Lowpass, R1: 0.3,
	})
	if err != nil {
		t.Fatalf("IIRAsSOS: %v", err)
	}

	checkEquivalence(t, x,
		func(t *testing.T, x []float32) []float32 {
			var f SOSFilter32
			if err := f.Initialize(sos); err != nil {
				t.Fatalf("Initialize: %v", err)
			}
			y := make([]float32, len(x))
			if err := f.Apply(y, x); err != nil {
				t.Fatalf("Apply: %v", err)
			}
			return y
		},
		func(t *testing.T) func([]float32) []float32 {
			var f SOSFilter32
			if err := f.Initialize(sos, WithMode(core.RealTime)); err != nil {
				t.Fatalf("Initialize: %v", err)
			}
			return func(packet []float32) []float32 {
				y := make([]float32, len(packet))
				if err := f.Apply(y, packet); err != nil {
					t.Fatalf("Apply: %v", err)
				}
				return y
			}
		},
		equivalenceTol32,
	)
}
