package metrics

import "time"

// ResultLabel enumerates stage result categories for counters.
type ResultLabel string

const (
	ResultSuccess      ResultLabel = "success"
	ResultSpawnError   ResultLabel = "spawn_error"
	ResultNonZeroExit  ResultLabel = "nonzero_exit"
	ResultPrecondition ResultLabel = "precondition_failed"
	ResultTaskFailed   ResultLabel = "task_failed"
	ResultCanceled     ResultLabel = "canceled"
)

// Recorder defines observability hooks for pipeline and stage metrics.
type Recorder interface {
	ObserveStageDuration(pipeline, stage string, d time.Duration)
	IncStageResult(pipeline, stage string, result ResultLabel)
	ObservePipelineDuration(pipeline string, d time.Duration)
	IncPipelineOutcome(pipeline string, outcome string) // outcome: succeeded|failed
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveStageDuration(string, string, time.Duration) {}
func (NoopRecorder) IncStageResult(string, string, ResultLabel)         {}
func (NoopRecorder) ObservePipelineDuration(string, time.Duration)      {}
func (NoopRecorder) IncPipelineOutcome(string, string)                  {}
