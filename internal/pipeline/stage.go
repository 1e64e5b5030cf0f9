package pipeline

import (
	"context"
	"fmt"

	"github.com/moonsphere-systems/moonsphere-cli/internal/process"
)

// Progress is the position of a stage inside its pipeline.
type Progress struct {
	Index int
	Total int
}

func (p Progress) String() string {
	return fmt.Sprintf("[%d/%d]", p.Index, p.Total)
}

// Stage is one step of a pipeline.
type Stage struct {
	// Start is shown while the stage runs.
	Start string
	// Success is reported when the stage completes; a Task may replace it at runtime.
	Success string
	// Failure is reported when the stage fails.
	Failure string
	Action  Action
}

// Action is the work performed by a stage.
type Action interface {
	Execute(ctx context.Context, rt *Runtime) error
}

// Runtime is handed to an Action while its stage runs.
type Runtime struct {
	Exec     process.Executor
	progress Progress
	reporter Reporter
	success  string
}

// Progress returns the position of the running stage.
func (rt *Runtime) Progress() Progress { return rt.progress }

// Update replaces the status text shown for the running stage.
func (rt *Runtime) Update(status string) {
	if rt.reporter != nil {
		rt.reporter.StageUpdated(rt.progress, status)
	}
}

// Succeed overrides the success label reported when the stage completes.
func (rt *Runtime) Succeed(label string) {
	rt.success = label
}

type commandAction struct {
	inv process.Invocation
}

func (a commandAction) Execute(ctx context.Context, rt *Runtime) error {
	return rt.Exec.Run(ctx, a.inv)
}

// CheckFunc is a precondition guard; a non-nil error means the condition does not hold.
type CheckFunc func(ctx context.Context, ex process.Executor) error

type checkAction struct {
	fn CheckFunc
}

func (a checkAction) Execute(ctx context.Context, rt *Runtime) error {
	return a.fn(ctx, rt.Exec)
}

// TaskFunc performs in-process work for a stage.
type TaskFunc func(ctx context.Context, rt *Runtime) error

type taskAction struct {
	fn TaskFunc
}

func (a taskAction) Execute(ctx context.Context, rt *Runtime) error {
	return a.fn(ctx, rt)
}

// Command declares a stage running one external program. The end phrase is
// completed into "Successfully <end>" and "Failure <end>".
func Command(start, end string, inv process.Invocation) Stage {
	return Stage{
		Start:   start,
		Success: "Successfully " + end,
		Failure: "Failure " + end,
		Action:  commandAction{inv: inv},
	}
}

// Check declares a precondition stage.
func Check(start, success, failure string, fn CheckFunc) Stage {
	return Stage{Start: start, Success: success, Failure: failure, Action: checkAction{fn: fn}}
}

// Task declares an in-process stage.
func Task(start, success, failure string, fn TaskFunc) Stage {
	return Stage{Start: start, Success: success, Failure: failure, Action: taskAction{fn: fn}}
}

// Invocation returns the external program a Command stage runs.
func (s Stage) Invocation() (process.Invocation, bool) {
	if a, ok := s.Action.(commandAction); ok {
		return a.inv, true
	}
	return process.Invocation{}, false
}

// Builder is a fluent builder for ordered stage lists.
type Builder struct{ stages []Stage }

// NewBuilder creates an empty builder.
func NewBuilder() *Builder { return &Builder{stages: make([]Stage, 0, 8)} }

// Add appends stages unconditionally.
func (b *Builder) Add(stages ...Stage) *Builder {
	b.stages = append(b.stages, stages...)
	return b
}

// AddIf appends stages only if cond is true.
func (b *Builder) AddIf(cond bool, stages ...Stage) *Builder {
	if cond {
		b.Add(stages...)
	}
	return b
}

// Len reports how many stages have been added.
func (b *Builder) Len() int { return len(b.stages) }

// Build returns a copy of the stage list.
func (b *Builder) Build() []Stage {
	out := make([]Stage, len(b.stages))
	copy(out, b.stages)
	return out
}
