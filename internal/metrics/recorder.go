package metrics

import "time"

// Resolution enumerates how a page obtained its parent.
type Resolution string

const (
	ResolutionDirect  Resolution = "direct"  // URL parent directory matched a page
	ResolutionSibling Resolution = "sibling" // taken from the default-language sibling
	ResolutionNone    Resolution = "none"    // no parent
)

// Recorder defines observability hooks for generator and plugin metrics.
type Recorder interface {
	IncPagesInitialized()
	IncParentResolution(r Resolution)
	AddInheritedKeys(n int)
	IncPagesWritten()
	ObserveBuildDuration(d time.Duration)
	IncBuildOutcome(outcome string) // outcome: success|failed
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) IncPagesInitialized()               {}
func (NoopRecorder) IncParentResolution(Resolution)     {}
func (NoopRecorder) AddInheritedKeys(int)               {}
func (NoopRecorder) IncPagesWritten()                   {}
func (NoopRecorder) ObserveBuildDuration(time.Duration) {}
func (NoopRecorder) IncBuildOutcome(string)             {}
