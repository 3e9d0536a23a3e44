package stream

import (
	"fmt"

	"github.com/cwbudde/algo-seisdsp/dsp/core"
)

// MedianFilterT computes the sliding median of the w most recent samples:
// output n is the median of the delay-line-extended window ending at
// input n. The window must be odd; even sizes are rounded up and the
// effective size is observable through Window. Group delay is w/2.
type MedianFilterT[F core.Float] struct {
	window int
	zi     []F
	dly    []F
	ext    []F
	sorted []F
	mode   core.ProcessingMode
	init   bool
}

// MedianFilter is the float64 specialization.
type MedianFilter = MedianFilterT[float64]

// MedianFilter32 is the float32 specialization.
type MedianFilter32 = MedianFilterT[float32]

// NewMedianFilter creates and initializes a float64 median filter.
func NewMedianFilter(window int, opts ...Option) (*MedianFilter, error) {
	f := &MedianFilter{}
	if err := f.Initialize(window, opts...); err != nil {
		return nil, err
	}
	return f, nil
}

// Initialize fixes the window size, rounding even sizes up to the next
// odd value.
func (f *MedianFilterT[F]) Initialize(window int, opts ...Option) error {
	f.Clear()
	if window < 1 {
		return fmt.Errorf("stream: median window must be positive: %d", window)
	}
	if window%2 == 0 {
		window++
	}
	cfg := applyOptions(opts)

	f.window = window
	f.zi = make([]F, window-1)
	f.dly = make([]F, window-1)
	f.sorted = make([]F, window)
	f.mode = cfg.mode
	f.init = true
	return nil
}

// IsInitialized reports whether the filter can accept samples.
func (f *MedianFilterT[F]) IsInitialized() bool { return f.init }

// Window returns the effective (odd) window size.
func (f *MedianFilterT[F]) Window() (int, error) {
	if !f.init {
		return 0, ErrNotInitialized
	}
	return f.window, nil
}

// GroupDelay returns window/2.
func (f *MedianFilterT[F]) GroupDelay() (int, error) {
	if !f.init {
		return 0, ErrNotInitialized
	}
	return f.window / 2, nil
}

// InitialConditionLength returns window-1.
func (f *MedianFilterT[F]) InitialConditionLength() (int, error) {
	if !f.init {
		return 0, ErrNotInitialized
	}
	return len(f.zi), nil
}

// SetInitialConditions stamps zi and loads it into the working delay
// line. zi is ordered oldest-first.
func (f *MedianFilterT[F]) SetInitialConditions(zi []float64) error {
	if !f.init {
		return ErrNotInitialized
	}
	if len(zi) != len(f.zi) {
		return fmt.Errorf("stream: initial conditions need %d samples, got %d", len(f.zi), len(zi))
	}
	for i, v := range zi {
		f.zi[i] = F(v)
	}
	copy(f.dly, f.zi)
	return nil
}

// ResetInitialConditions restores the working delay line to the stamped
// initial conditions.
func (f *MedianFilterT[F]) ResetInitialConditions() error {
	if !f.init {
		return ErrNotInitialized
	}
	copy(f.dly, f.zi)
	return nil
}

// Apply filters src into dst, which must hold at least len(src) samples.
func (f *MedianFilterT[F]) Apply(dst, src []F) error {
	if !f.init {
		return ErrNotInitialized
	}
	if len(src) == 0 {
		return nil
	}
	if len(dst) < len(src) {
		return errShortOutput(len(src), len(dst))
	}

	w := f.window
	hist := w - 1
	f.ext = core.EnsureLen(f.ext, hist+len(src))
	copy(f.ext, f.dly)
	copy(f.ext[hist:], src)

	// Seed the sorted window with the first w samples, then slide it by
	// one remove/insert pair per step.
	copy(f.sorted, f.ext[:w])
	insertionSort(f.sorted)
	mid := w / 2

	dst[0] = f.sorted[mid]
	for i := 1; i < len(src); i++ {
		sortedRemove(f.sorted, f.ext[i-1])
		sortedInsert(f.sorted, f.ext[i+w-1])
		dst[i] = f.sorted[mid]
	}

	if f.mode == core.RealTime && hist > 0 {
		copy(f.dly, f.ext[len(src):])
	}
	return nil
}

// Clear releases all state and returns the filter to uninitialized.
func (f *MedianFilterT[F]) Clear() {
	f.window = 0
	f.zi = nil
	f.dly = nil
	f.ext = nil
	f.sorted = nil
	f.mode = core.PostProcessing
	f.init = false
}

func insertionSort[F core.Float](x []F) {
	for i := 1; i < len(x); i++ {
		v := x[i]
		j := i - 1
		for j >= 0 && x[j] > v {
			x[j+1] = x[j]
			j--
		}
		x[j+1] = v
	}
}

// sortedRemove deletes one occurrence of v, compacting left and leaving
// the final slot free for the subsequent insert.
func sortedRemove[F core.Float](x []F, v F) {
	i := lowerBound(x, v)
	copy(x[i:], x[i+1:])
}

// sortedInsert places v into the slice whose last slot has been freed.
func sortedInsert[F core.Float](x []F, v F) {
	i := lowerBound(x[:len(x)-1], v)
	copy(x[i+1:], x[i:len(x)-1])
	x[i] = v
}

// lowerBound returns the first index whose value is >= v.
func lowerBound[F core.Float](x []F, v F) int {
	lo, hi := 0, len(x)
	for lo < hi {
		mid := (lo + hi) / 2
		if x[mid] < v {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}
