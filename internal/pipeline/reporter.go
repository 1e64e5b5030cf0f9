package pipeline

import (
	"log/slog"
	"time"

	"github.com/moonsphere-systems/moonsphere-cli/internal/logfields"
	"github.com/moonsphere-systems/moonsphere-cli/internal/metrics"
)

// RunInfo describes a pipeline run as it starts.
type RunInfo struct {
	ID    string
	Name  string
	Total int
}

// Reporter receives callbacks around stage execution and the pipeline lifecycle.
// Callbacks are delivered from the goroutine calling Run, in stage order.
type Reporter interface {
	PipelineStarted(run RunInfo)
	StageStarted(p Progress, label string)
	StageUpdated(p Progress, status string)
	StageSucceeded(p Progress, label string, d time.Duration)
	StageFailed(p Progress, label string, d time.Duration, err *StageError)
	PipelineFinished(res Result)
}

// NoopReporter is a no-op implementation; embed it to implement a subset of callbacks.
type NoopReporter struct{}

func (NoopReporter) PipelineStarted(RunInfo)                                  {}
func (NoopReporter) StageStarted(Progress, string)                            {}
func (NoopReporter) StageUpdated(Progress, string)                            {}
func (NoopReporter) StageSucceeded(Progress, string, time.Duration)           {}
func (NoopReporter) StageFailed(Progress, string, time.Duration, *StageError) {}
func (NoopReporter) PipelineFinished(Result)                                  {}

// MultiReporter fans callbacks out to several reporters in order.
type MultiReporter []Reporter

func (m MultiReporter) PipelineStarted(run RunInfo) {
	for _, r := range m {
		r.PipelineStarted(run)
	}
}

func (m MultiReporter) StageStarted(p Progress, label string) {
	for _, r := range m {
		r.StageStarted(p, label)
	}
}

func (m MultiReporter) StageUpdated(p Progress, status string) {
	for _, r := range m {
		r.StageUpdated(p, status)
	}
}

func (m MultiReporter) StageSucceeded(p Progress, label string, d time.Duration) {
	for _, r := range m {
		r.StageSucceeded(p, label, d)
	}
}

func (m MultiReporter) StageFailed(p Progress, label string, d time.Duration, err *StageError) {
	for _, r := range m {
		r.StageFailed(p, label, d, err)
	}
}

func (m MultiReporter) PipelineFinished(res Result) {
	for _, r := range m {
		r.PipelineFinished(res)
	}
}

// LogReporter writes stage transitions as structured log records.
type LogReporter struct {
	logger *slog.Logger
	runID  string
	name   string
}

// NewLogReporter creates a log reporter; a nil logger uses slog.Default().
func NewLogReporter(logger *slog.Logger) *LogReporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogReporter{logger: logger}
}

func (l *LogReporter) PipelineStarted(run RunInfo) {
	l.runID, l.name = run.ID, run.Name
	l.logger.Debug("Pipeline started", logfields.RunID(run.ID), logfields.Pipeline(run.Name), logfields.StageTotal(run.Total))
}

func (l *LogReporter) StageStarted(p Progress, label string) {
	l.logger.Debug("Starting stage", l.stageAttrs(p, label)...)
}

func (l *LogReporter) StageUpdated(p Progress, status string) {
	l.logger.Debug("Stage progress", l.stageAttrs(p, status)...)
}

func (l *LogReporter) StageSucceeded(p Progress, label string, d time.Duration) {
	attrs := append(l.stageAttrs(p, label), logfields.DurationMS(float64(d.Milliseconds())))
	l.logger.Debug("Stage completed successfully", attrs...)
}

func (l *LogReporter) StageFailed(p Progress, label string, d time.Duration, err *StageError) {
	attrs := append(l.stageAttrs(p, label),
		logfields.DurationMS(float64(d.Milliseconds())),
		slog.String("kind", string(err.Kind)),
		logfields.Error(err.Err))
	if code := err.ExitCode(); code >= 0 {
		attrs = append(attrs, logfields.ExitCode(code))
	}
	l.logger.Error("Stage failed", attrs...)
}

func (l *LogReporter) PipelineFinished(res Result) {
	l.logger.Info("Pipeline finished",
		logfields.RunID(res.RunID),
		logfields.Pipeline(res.Name),
		logfields.Outcome(string(res.Status)),
		slog.Int("completed", res.Completed),
		logfields.StageTotal(res.Total),
		logfields.DurationMS(float64(res.Duration.Milliseconds())))
}

func (l *LogReporter) stageAttrs(p Progress, label string) []any {
	return []any{
		logfields.RunID(l.runID),
		logfields.Pipeline(l.name),
		logfields.StageIndex(p.Index),
		logfields.StageTotal(p.Total),
		logfields.Stage(label),
	}
}

// recorderReporter adapts metrics.Recorder into a Reporter.
type recorderReporter struct {
	NoopReporter
	rec  metrics.Recorder
	name string
}

// NewRecorderReporter forwards stage timings and outcomes to a metrics recorder.
func NewRecorderReporter(rec metrics.Recorder) Reporter {
	if rec == nil {
		return NoopReporter{}
	}
	return &recorderReporter{rec: rec}
}

func (r *recorderReporter) PipelineStarted(run RunInfo) { r.name = run.Name }

func (r *recorderReporter) StageSucceeded(_ Progress, label string, d time.Duration) {
	r.rec.ObserveStageDuration(r.name, label, d)
	r.rec.IncStageResult(r.name, label, metrics.ResultSuccess)
}

func (r *recorderReporter) StageFailed(_ Progress, label string, d time.Duration, err *StageError) {
	r.rec.ObserveStageDuration(r.name, label, d)
	r.rec.IncStageResult(r.name, label, metrics.ResultLabel(err.Kind))
}

func (r *recorderReporter) PipelineFinished(res Result) {
	r.rec.ObservePipelineDuration(res.Name, res.Duration)
	r.rec.IncPipelineOutcome(res.Name, string(res.Status))
}
