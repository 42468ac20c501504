package metrics

import "time"

// PageKind enumerates the page kinds produced by a run.
type PageKind string

const (
	PageClass  PageKind = "class"
	PageModule PageKind = "module"
	PageIndex  PageKind = "index"
)

// ResultLabel enumerates page result categories for counters.
type ResultLabel string

const (
	ResultWritten   ResultLabel = "written"
	ResultUnchanged ResultLabel = "unchanged"
	ResultIgnored   ResultLabel = "ignored"
	ResultFailed    ResultLabel = "failed"
)

// RunOutcomeLabel enumerates final run outcomes.
type RunOutcomeLabel string

const (
	RunSuccess  RunOutcomeLabel = "success"
	RunWarning  RunOutcomeLabel = "warning"
	RunFailed   RunOutcomeLabel = "failed"
	RunCanceled RunOutcomeLabel = "canceled"
)

// Recorder defines observability hooks for conversion runs. Implementations
// must be safe for concurrent use; pages are processed in parallel.
type Recorder interface {
	ObservePageDuration(kind PageKind, d time.Duration)
	IncPageResult(kind PageKind, result ResultLabel)
	AddSkippedDeclarations(n int)
	ObserveRunDuration(d time.Duration)
	IncRunOutcome(outcome RunOutcomeLabel)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObservePageDuration(PageKind, time.Duration) {}
func (NoopRecorder) IncPageResult(PageKind, ResultLabel)         {}
func (NoopRecorder) AddSkippedDeclarations(int)                  {}
func (NoopRecorder) ObserveRunDuration(time.Duration)            {}
func (NoopRecorder) IncRunOutcome(RunOutcomeLabel)               {}
