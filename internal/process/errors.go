package process

import (
	"fmt"
	"strings"
)

// maxOutputTail bounds the captured output kept on an ExitError.
const maxOutputTail = 4096

// StartError reports a program that could not be started at all.
type StartError struct {
	Program string
	Err     error
}

func (e *StartError) Error() string {
	return fmt.Sprintf("cannot start %s: %v", e.Program, e.Err)
}

func (e *StartError) Unwrap() error { return e.Err }

// ExitError reports a program that ran and exited with a non-zero status.
type ExitError struct {
	Program string
	Code    int
	// Output is the tail of the combined stdout/stderr of the program.
	Output string
}

func (e *ExitError) Error() string {
	msg := fmt.Sprintf("%s exited with status %d", e.Program, e.Code)
	if last := lastLine(e.Output); last != "" {
		msg += ": " + last
	}
	return msg
}

func tail(b []byte) string {
	s := strings.TrimSpace(string(b))
	if len(s) > maxOutputTail {
		s = s[len(s)-maxOutputTail:]
	}
	return s
}

func lastLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[i+1:])
	}
	return s
}
