package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/moonsphere-systems/moonsphere-cli/internal/process"
)

// Runner executes stage lists sequentially.
type Runner struct {
	name     string
	exec     process.Executor
	reporter Reporter
}

// NewRunner creates a runner named after the command it serves.
func NewRunner(name string, exec process.Executor, reporters ...Reporter) *Runner {
	if exec == nil {
		exec = process.NewExecutor()
	}
	var rep Reporter = NoopReporter{}
	switch len(reporters) {
	case 0:
	case 1:
		rep = reporters[0]
	default:
		rep = MultiReporter(reporters)
	}
	return &Runner{name: name, exec: exec, reporter: rep}
}

// Run executes stages in order, stopping at the first failure. An empty list succeeds.
func (r *Runner) Run(ctx context.Context, stages []Stage) Result {
	started := time.Now()
	res := Result{
		RunID: uuid.NewString(),
		Name:  r.name,
		Total: len(stages),
	}
	r.reporter.PipelineStarted(RunInfo{ID: res.RunID, Name: r.name, Total: res.Total})

	for i, st := range stages {
		p := Progress{Index: i + 1, Total: res.Total}

		if err := ctx.Err(); err != nil {
			se := &StageError{Progress: p, Label: st.Start, Kind: KindCanceled, Err: err}
			r.reporter.StageFailed(p, st.Start, 0, se)
			return r.finish(res, se, started)
		}

		r.reporter.StageStarted(p, st.Start)

		rt := &Runtime{Exec: r.exec, progress: p, reporter: r.reporter}
		t0 := time.Now()
		err := execute(ctx, st, rt)
		dur := time.Since(t0)

		if err != nil {
			se := &StageError{Progress: p, Label: failureLabel(st), Kind: classify(st.Action, err), Err: err}
			r.reporter.StageFailed(p, se.Label, dur, se)
			return r.finish(res, se, started)
		}

		label := st.Success
		if rt.success != "" {
			label = rt.success
		}
		r.reporter.StageSucceeded(p, label, dur)
		res.Completed++
	}

	return r.finish(res, nil, started)
}

func (r *Runner) finish(res Result, cause *StageError, started time.Time) Result {
	res.Status = StatusSucceeded
	if cause != nil {
		res.Status = StatusFailed
		res.AtStage = cause.Progress.Index
		res.Cause = cause
	}
	res.Duration = time.Since(started)
	r.reporter.PipelineFinished(res)
	return res
}

func execute(ctx context.Context, st Stage, rt *Runtime) error {
	if st.Action == nil {
		return errNoAction
	}
	return st.Action.Execute(ctx, rt)
}

func failureLabel(st Stage) string {
	if st.Failure != "" {
		return st.Failure
	}
	return st.Start
}
