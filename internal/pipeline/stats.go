package pipeline

import "github.com/backmassage/kompressor/internal/display"

// RunStats tracks aggregate counters and byte totals across a batch run.
type RunStats struct {
	Total            int
	Current          int
	Compressed       int
	Skipped          int
	Failed           int
	TotalInputBytes  int64
	TotalOutputBytes int64

	// Results holds one entry per successfully compressed image, in
	// processing order, for the final report.
	Results []display.Result
}

// SpaceSaved returns the aggregate byte difference between inputs and
// outputs. Positive means outputs are smaller; negative means they grew.
func (s *RunStats) SpaceSaved() int64 {
	return s.TotalInputBytes - s.TotalOutputBytes
}
