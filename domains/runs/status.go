package runs

// Status represents the lifecycle state of an analysis run
type Status string

const (
	StatusPending   Status = "pending"
	StatusAnalyzing Status = "analyzing"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// String returns the string representation of the status
func (s Status) String() string {
	return string(s)
}

// IsActive returns true if the run is currently being processed
func (s Status) IsActive() bool {
	return s == StatusAnalyzing
}

// IsTerminal returns true if the run has finished
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}
