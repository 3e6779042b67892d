package report

// Sink receives report entries. The bridge's command router is the only
// production implementation.
type Sink interface {
	Report(entry Entry)
}

// Reporter is the caller-facing reporting handle bound to one session.
type Reporter struct {
	sink     Sink
	disabled bool
}

// NewReporter binds a reporter to a sink.
func NewReporter(sink Sink, disabled bool) *Reporter {
	return &Reporter{sink: sink, disabled: disabled}
}

// Disabled reports whether this reporter drops all entries.
func (r *Reporter) Disabled() bool {
	return r == nil || r.disabled || r.sink == nil
}

// Step records a step-level pass/fail entry.
func (r *Reporter) Step(description string, passed bool, message string) {
	if r.Disabled() {
		return
	}
	entry := NewEntry(KindStep, description, passed)
	entry.Message = message
	r.sink.Report(entry)
}

// StepWithScreenshot records a step entry flagged for screenshot capture.
// The capture itself happens agent-side.
func (r *Reporter) StepWithScreenshot(description string, passed bool, message string) {
	if r.Disabled() {
		return
	}
	entry := NewEntry(KindStep, description, passed)
	entry.Message = message
	entry.Screenshot = true
	r.sink.Report(entry)
}

// Test records a test-level pass/fail entry.
func (r *Reporter) Test(name string, passed bool) {
	if r.Disabled() {
		return
	}
	r.sink.Report(NewEntry(KindTest, name, passed))
}

// TestListener is the companion hook a test framework integration must
// register so the framework, not the driver, owns pass/fail reporting.
type TestListener interface {
	TestFinished(name string, passed bool)
}
