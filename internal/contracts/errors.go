package contracts

import (
	"fmt"
	"strings"
	"time"
)

// EphemerisError marks a single failed body/day lookup. Never fatal on its
// own — the resolver degrades the one position to Unknown and continues.
type EphemerisError struct {
	Body      Body
	JulianDay float64
	Err       error
}

func (e *EphemerisError) Error() string {
	return fmt.Sprintf("ephemeris lookup failed for %s at jd=%.5f: %v", e.Body, e.JulianDay, e.Err)
}

func (e *EphemerisError) Unwrap() error {
	return e.Err
}

// TotalResolutionError means every lookup in a scan failed; the scan result
// would be meaningless, so it is surfaced instead of papered over.
type TotalResolutionError struct {
	RangeStart time.Time
	RangeEnd   time.Time
}

func (e *TotalResolutionError) Error() string {
	return fmt.Sprintf("no day in range %s..%s could be resolved",
		e.RangeStart.Format("2006-01-02"), e.RangeEnd.Format("2006-01-02"))
}

// InvalidRangeError reports an end-before-start or non-calendar request.
// Surfaced immediately, never silently corrected.
type InvalidRangeError struct {
	Reason string
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid date range: %s", e.Reason)
}

// IncompleteNatalChartError names the classical bodies a tabulation request
// was missing. Zero-filling a body's whole table would silently inflate
// confidence; failing loudly is the contract.
type IncompleteNatalChartError struct {
	Missing []Body
}

func (e *IncompleteNatalChartError) Error() string {
	names := make([]string, len(e.Missing))
	for i, b := range e.Missing {
		names[i] = b.DisplayName()
	}
	return fmt.Sprintf("natal chart incomplete: missing %s", strings.Join(names, ", "))
}
