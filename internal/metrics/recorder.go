package metrics

import "time"

// OperatorResult enumerates what happened to one operator folder.
type OperatorResult string

const (
	OperatorRendered  OperatorResult = "rendered"
	OperatorUnchanged OperatorResult = "unchanged"
	OperatorSkipped   OperatorResult = "skipped"
)

// FixtureKind distinguishes input datasets from example expressions.
type FixtureKind string

const (
	FixtureInput   FixtureKind = "input"
	FixtureExample FixtureKind = "example"
)

// Recorder defines observability hooks for a run.
type Recorder interface {
	ObserveCommandDuration(command string, d time.Duration)
	IncOperatorResult(result OperatorResult)
	AddFixtures(kind FixtureKind, n int)
	SetVersionsSelected(n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveCommandDuration(string, time.Duration) {}
func (NoopRecorder) IncOperatorResult(OperatorResult)             {}
func (NoopRecorder) AddFixtures(FixtureKind, int)                 {}
func (NoopRecorder) SetVersionsSelected(int)                      {}
