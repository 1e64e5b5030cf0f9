package docker

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/moonsphere-systems/moonsphere-cli/internal/pipeline"
	"github.com/moonsphere-systems/moonsphere-cli/internal/process"
)

// Inspect asks the runtime whether a container is running; stdout is a JSON boolean.
func Inspect(container string) process.Invocation {
	return process.Command(dockerBin, "inspect", "--format", "{{json .State.Running}}", container)
}

// NotRunningError reports a container that exists but is stopped, or is unknown.
type NotRunningError struct {
	Container string
	Err       error
}

func (e *NotRunningError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("container %q is not running: %v", e.Container, e.Err)
	}
	return fmt.Sprintf("container %q is not running", e.Container)
}

func (e *NotRunningError) Unwrap() error { return e.Err }

// IsRunning reports whether container is running.
func IsRunning(ctx context.Context, ex process.Executor, container string) (bool, error) {
	out, err := ex.Output(ctx, Inspect(container))
	if err != nil {
		return false, err
	}
	var running bool
	if err := json.Unmarshal([]byte(strings.TrimSpace(string(out))), &running); err != nil {
		return false, fmt.Errorf("unexpected inspect output %q: %w", strings.TrimSpace(string(out)), err)
	}
	return running, nil
}

// RunningCheck is a precondition stage verifying that container is running.
func RunningCheck(container string) pipeline.Stage {
	return pipeline.Check(
		fmt.Sprintf("Checking, if container %s is running", container),
		fmt.Sprintf("Container %q is running", container),
		fmt.Sprintf("Container %q is not running", container),
		func(ctx context.Context, ex process.Executor) error {
			running, err := IsRunning(ctx, ex, container)
			if err != nil {
				return &NotRunningError{Container: container, Err: err}
			}
			if !running {
				return &NotRunningError{Container: container}
			}
			return nil
		},
	)
}
