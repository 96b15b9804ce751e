package metrics

import "time"

// OutcomeLabel enumerates scan outcome categories for counters.
type OutcomeLabel string

const (
	OutcomeSuccess OutcomeLabel = "success"
	OutcomeFatal   OutcomeLabel = "fatal"
)

// EdgeLabel identifies which side of a coalesced burst fired the action.
type EdgeLabel string

const (
	EdgeLeading  EdgeLabel = "leading"
	EdgeTrailing EdgeLabel = "trailing"
)

// Recorder defines observability hooks for sidebar scans and reload coalescing.
// Implementations must be safe for concurrent use: entry failures are reported
// from the scan's fan-out goroutines.
type Recorder interface {
	ObserveScanDuration(d time.Duration)
	IncScanOutcome(outcome OutcomeLabel)
	IncEntryFailure(op string)
	SetLastScan(groups, documents int)
	IncCoalescerFire(edge EdgeLabel)
	IncCoalescerDeferred()
	IncCoalescerIgnored()
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveScanDuration(time.Duration) {}
func (NoopRecorder) IncScanOutcome(OutcomeLabel)       {}
func (NoopRecorder) IncEntryFailure(string)            {}
func (NoopRecorder) SetLastScan(int, int)              {}
func (NoopRecorder) IncCoalescerFire(EdgeLabel)        {}
func (NoopRecorder) IncCoalescerDeferred()             {}
func (NoopRecorder) IncCoalescerIgnored()              {}
