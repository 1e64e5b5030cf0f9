package pipeline

import "time"

// Status is the terminal state of a pipeline run.
type Status string

const (
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Result is the outcome of one Run.
type Result struct {
	RunID     string
	Name      string
	Status    Status
	Total     int
	Completed int
	// AtStage is the 1-based index of the failed stage; 0 on success.
	AtStage  int
	Cause    *StageError
	Duration time.Duration
}

// OK reports whether every stage completed.
func (r Result) OK() bool { return r.Status == StatusSucceeded }

// Err returns the failure cause, or nil when the pipeline succeeded.
func (r Result) Err() error {
	if r.Cause == nil {
		return nil
	}
	return r.Cause
}
