// Package pipeline runs a fixed, ordered list of stages, one at a time, and
// stops at the first stage that fails.
//
// A stage wraps a single external program invocation (Command), a guard that
// must hold before later stages may touch shared external state (Check), or a
// small piece of in-process work such as rendering a file (Task). The runner
// numbers stages as it goes ([index/total]) and reports every transition to a
// Reporter; the position counter is local to each Run call, so a Runner can be
// reused and two runs over the same external state report the same sequence.
//
// Stages never run concurrently and are never retried. Cancellation is only
// observed between stages: a started program is always awaited.
package pipeline
