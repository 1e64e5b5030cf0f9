package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID      = "run_id"
	KeyPipeline   = "pipeline"
	KeyStage      = "stage"
	KeyStageIndex = "stage_index"
	KeyStageTotal = "stage_total"
	KeyProgram    = "program"
	KeyArgs       = "args"
	KeyDir        = "dir"
	KeyExitCode   = "exit_code"
	KeyDurationMS = "duration_ms"
	KeyModule     = "module"
	KeyContainer  = "container"
	KeyPath       = "path"
	KeyMode       = "mode"
	KeyOutcome    = "outcome"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr         { return slog.String(KeyRunID, id) }
func Pipeline(name string) slog.Attr    { return slog.String(KeyPipeline, name) }
func Stage(label string) slog.Attr      { return slog.String(KeyStage, label) }
func StageIndex(i int) slog.Attr        { return slog.Int(KeyStageIndex, i) }
func StageTotal(n int) slog.Attr        { return slog.Int(KeyStageTotal, n) }
func Program(p string) slog.Attr        { return slog.String(KeyProgram, p) }
func Args(a []string) slog.Attr         { return slog.Any(KeyArgs, a) }
func Dir(d string) slog.Attr            { return slog.String(KeyDir, d) }
func ExitCode(c int) slog.Attr          { return slog.Int(KeyExitCode, c) }
func DurationMS(ms float64) slog.Attr   { return slog.Float64(KeyDurationMS, ms) }
func Module(name string) slog.Attr      { return slog.String(KeyModule, name) }
func Container(name string) slog.Attr   { return slog.String(KeyContainer, name) }
func Path(p string) slog.Attr           { return slog.String(KeyPath, p) }
func Mode(m string) slog.Attr           { return slog.String(KeyMode, m) }
func Outcome(o string) slog.Attr        { return slog.String(KeyOutcome, o) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
