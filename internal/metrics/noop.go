package metrics

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncProfileCreated is a no-op.
func (n *NoopRecorder) IncProfileCreated() {}

// IncProfileUpdated is a no-op.
func (n *NoopRecorder) IncProfileUpdated() {}

// IncClassification is a no-op.
func (n *NoopRecorder) IncClassification(kind string) {}

// IncAccountRegistered is a no-op.
func (n *NoopRecorder) IncAccountRegistered() {}

// IncLoginSuccess is a no-op.
func (n *NoopRecorder) IncLoginSuccess() {}

// IncLoginFailure is a no-op.
func (n *NoopRecorder) IncLoginFailure() {}
