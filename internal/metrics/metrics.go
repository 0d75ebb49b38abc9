// Package metrics provides lightweight hooks for instrumentation.
package metrics

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// Profile lifecycle metrics
	IncProfileCreated()
	IncProfileUpdated()

	// Classification outcome metrics
	IncClassification(kind string) // kind: "bucket", "consultation", "fallback"

	// Account metrics
	IncAccountRegistered()
	IncLoginSuccess()
	IncLoginFailure()
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
