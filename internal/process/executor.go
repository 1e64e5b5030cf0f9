package process

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"time"

	"github.com/moonsphere-systems/moonsphere-cli/internal/logfields"
)

// Executor runs invocations to completion.
type Executor interface {
	// Run executes the invocation and returns nil on exit status 0,
	// *StartError when it could not be started and *ExitError otherwise.
	Run(ctx context.Context, inv Invocation) error
	// Output is Run that also returns the captured stdout.
	Output(ctx context.Context, inv Invocation) ([]byte, error)
}

// ExecExecutor runs invocations with os/exec.
//
// The context is only consulted before a program starts; a running program is
// never interrupted, its outcome is always awaited.
type ExecExecutor struct {
	// Echo, when set, additionally receives the program output as it is produced.
	Echo io.Writer
}

// NewExecutor returns an executor backed by os/exec.
func NewExecutor() *ExecExecutor {
	return &ExecExecutor{}
}

func (e *ExecExecutor) Run(ctx context.Context, inv Invocation) error {
	_, err := e.run(ctx, inv, nil)
	return err
}

func (e *ExecExecutor) Output(ctx context.Context, inv Invocation) ([]byte, error) {
	var stdout bytes.Buffer
	_, err := e.run(ctx, inv, &stdout)
	return stdout.Bytes(), err
}

func (e *ExecExecutor) run(ctx context.Context, inv Invocation, stdout *bytes.Buffer) (int, error) {
	if err := ctx.Err(); err != nil {
		return -1, &StartError{Program: inv.Program, Err: err}
	}

	cmd := exec.Command(inv.Program, inv.Args...)
	cmd.Dir = inv.Dir
	if env := inv.Environ(); len(env) > 0 {
		cmd.Env = append(os.Environ(), env...)
	}

	var combined bytes.Buffer
	var out io.Writer = &combined
	if e.Echo != nil {
		out = io.MultiWriter(&combined, e.Echo)
	}
	cmd.Stderr = out
	if stdout != nil {
		cmd.Stdout = io.MultiWriter(out, stdout)
	} else {
		cmd.Stdout = out
	}

	slog.Debug("Running external program",
		logfields.Program(inv.Program), logfields.Args(inv.DisplayArgs()), logfields.Dir(inv.Dir))

	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start)

	if err == nil {
		slog.Debug("External program finished",
			logfields.Program(inv.Program), logfields.ExitCode(0),
			logfields.DurationMS(float64(elapsed.Milliseconds())))
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		slog.Debug("External program failed",
			logfields.Program(inv.Program), logfields.ExitCode(code),
			logfields.DurationMS(float64(elapsed.Milliseconds())))
		return code, &ExitError{Program: inv.Program, Code: code, Output: tail(combined.Bytes())}
	}
	return -1, &StartError{Program: inv.Program, Err: err}
}
