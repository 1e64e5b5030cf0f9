package pipeline

import (
	"errors"
	"fmt"

	msphErrors "github.com/moonsphere-systems/moonsphere-cli/internal/errors"
	"github.com/moonsphere-systems/moonsphere-cli/internal/process"
)

// ErrorKind classifies why a stage failed.
type ErrorKind string

const (
	KindSpawn        ErrorKind = "spawn_error"         // Program could not be started.
	KindNonZeroExit  ErrorKind = "nonzero_exit"        // Program ran and reported failure.
	KindPrecondition ErrorKind = "precondition_failed" // Guard check did not hold.
	KindTask         ErrorKind = "task_failed"         // In-process work failed.
	KindCanceled     ErrorKind = "canceled"            // Context canceled before the stage started.
)

var errNoAction = errors.New("stage has no action")

// StageError is the terminal failure of a pipeline.
type StageError struct {
	Progress Progress
	Label    string
	Kind     ErrorKind
	Err      error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %d/%d %q: %s: %v", e.Progress.Index, e.Progress.Total, e.Label, e.Kind, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// ExitCode returns the exit status of the failed program, or -1 when no program exited.
func (e *StageError) ExitCode() int {
	var exitErr *process.ExitError
	if errors.As(e.Err, &exitErr) {
		return exitErr.Code
	}
	return -1
}

// Classified converts the stage failure into the CLI error taxonomy.
func (e *StageError) Classified() *msphErrors.MsphError {
	var category msphErrors.ErrorCategory
	switch e.Kind {
	case KindSpawn:
		category = msphErrors.CategorySpawn
	case KindNonZeroExit:
		category = msphErrors.CategoryExit
	case KindPrecondition:
		category = msphErrors.CategoryPrecondition
	case KindCanceled:
		category = msphErrors.CategoryCanceled
	default:
		category = msphErrors.CategoryTask
	}
	return msphErrors.Wrap(e.Err, category, msphErrors.SeverityFatal, e.Label).
		WithContext("stage", e.Progress.String())
}

func classify(action Action, err error) ErrorKind {
	if _, ok := action.(checkAction); ok {
		return KindPrecondition
	}
	var startErr *process.StartError
	if errors.As(err, &startErr) {
		return KindSpawn
	}
	var exitErr *process.ExitError
	if errors.As(err, &exitErr) {
		return KindNonZeroExit
	}
	return KindTask
}
