package core

// ProcessingMode selects how a streaming filter treats its delay line
// across successive Apply calls.
type ProcessingMode int

const (
	// PostProcessing restarts every Apply from the stamped initial
	// conditions; each call is an independent stream.
	PostProcessing ProcessingMode = iota
	// RealTime persists the delay line across Apply calls so that
	// arbitrarily chopped packets concatenate to the single-shot result.
	RealTime
)

// String returns the mode name.
func (m ProcessingMode) String() string {
	if m == RealTime {
		return "real-time"
	}
	return "post-processing"
}
