package contracts

import "time"

// Location is the observer's place on Earth for a chart
type Location struct {
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	UTCOffset float64 `json:"utc_offset"` // hours east of UTC
}

// MaxScanDays caps an electional scan range. Longer requests are truncated
// to this many days and the result marks the truncation — documented policy,
// never silent clipping.
const MaxScanDays = 30

// ScanResult is the electional scanner's output for one request
// ⭐ SSOT: Scanner → 호출자 결과 전달
type ScanResult struct {
	ID       string `json:"id"`
	Activity string `json:"activity"`

	// Best is always present for a non-empty range, possibly at a low tier
	// when no day reached the notable threshold
	Best         CandidateScore   `json:"best"`
	Alternatives []CandidateScore `json:"alternatives"`

	RangeStart  time.Time `json:"range_start"`
	RangeEnd    time.Time `json:"range_end"` // after any truncation
	DaysScanned int       `json:"days_scanned"`
	Truncated   bool      `json:"truncated"`

	// Partial is set when the scan was cancelled mid-range and holds the
	// best of the days scored so far
	Partial bool `json:"partial,omitempty"`

	// Degraded is set when any scored day used an unknown position
	Degraded bool `json:"degraded,omitempty"`
}
