// Package process runs external programs (docker, yarn, mvn, mc) on behalf of
// pipeline stages and classifies how they failed.
package process

import (
	"sort"
	"strings"
)

// Invocation describes one external program call.
type Invocation struct {
	Program string
	Args    []string
	// Dir is the working directory; empty means the current directory.
	Dir string
	// Env overrides are applied on top of the inherited process environment.
	Env map[string]string
	// Redact holds indexes into Args whose values are masked in String and logs.
	Redact []int
}

const redacted = "***"

// Command builds an Invocation from a program and its arguments.
func Command(program string, args ...string) Invocation {
	return Invocation{Program: program, Args: args}
}

// In returns a copy of the invocation running in dir.
func (i Invocation) In(dir string) Invocation {
	i.Dir = dir
	return i
}

// WithEnv returns a copy of the invocation with an additional environment override.
func (i Invocation) WithEnv(key, value string) Invocation {
	env := make(map[string]string, len(i.Env)+1)
	for k, v := range i.Env {
		env[k] = v
	}
	env[key] = value
	i.Env = env
	return i
}

// WithSecrets returns a copy of the invocation with values appended to Args
// and masked wherever the invocation is displayed.
func (i Invocation) WithSecrets(values ...string) Invocation {
	args := make([]string, len(i.Args), len(i.Args)+len(values))
	copy(args, i.Args)
	redact := append([]int(nil), i.Redact...)
	for _, v := range values {
		redact = append(redact, len(args))
		args = append(args, v)
	}
	i.Args, i.Redact = args, redact
	return i
}

// DisplayArgs returns Args with every redacted value replaced by a mask.
func (i Invocation) DisplayArgs() []string {
	if len(i.Redact) == 0 {
		return i.Args
	}
	out := append([]string(nil), i.Args...)
	for _, idx := range i.Redact {
		if idx >= 0 && idx < len(out) {
			out[idx] = redacted
		}
	}
	return out
}

// Environ renders the overrides as sorted KEY=VALUE pairs.
func (i Invocation) Environ() []string {
	if len(i.Env) == 0 {
		return nil
	}
	out := make([]string, 0, len(i.Env))
	for k, v := range i.Env {
		out = append(out, k+"="+v)
	}
	sort.Strings(out)
	return out
}

// String renders the invocation the way it would be typed in a shell.
func (i Invocation) String() string {
	parts := make([]string, 0, len(i.Args)+len(i.Env)+1)
	parts = append(parts, i.Environ()...)
	parts = append(parts, i.Program)
	for _, a := range i.DisplayArgs() {
		if a == "" || strings.ContainsAny(a, " \t\"'{}") {
			a = "'" + strings.ReplaceAll(a, "'", `'\''`) + "'"
		}
		parts = append(parts, a)
	}
	return strings.Join(parts, " ")
}
