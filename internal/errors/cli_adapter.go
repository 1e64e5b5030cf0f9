package errors

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
)

// CLIErrorAdapter handles error presentation and exit code determination for the CLI.
type CLIErrorAdapter struct {
	verbose bool
	logger  *slog.Logger
}

// NewCLIErrorAdapter creates a new CLI error adapter.
func NewCLIErrorAdapter(verbose bool, logger *slog.Logger) *CLIErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIErrorAdapter{
		verbose: verbose,
		logger:  logger,
	}
}

// ExitCodeFor determines the exit code for an error. Every failure maps to 1.
func (a *CLIErrorAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}
	return 1
}

// FormatError formats an error for user-friendly display.
func (a *CLIErrorAdapter) FormatError(err error) string {
	if err == nil {
		return ""
	}

	if me, ok := As(err); ok {
		return a.formatMsph(me)
	}

	return err.Error()
}

func (a *CLIErrorAdapter) formatMsph(err *MsphError) string {
	if a.verbose {
		return err.Error()
	}

	switch err.Category {
	case CategoryValidation, CategoryConfig:
		msg := err.Message
		if hint := contextHint(err.Context); hint != "" {
			msg += " (" + hint + ")"
		}
		if err.Cause != nil {
			msg += ": " + err.Cause.Error()
		}
		return msg
	default:
		if err.Cause != nil {
			return fmt.Sprintf("%s: %s: %v", err.Category, err.Message, err.Cause)
		}
		return fmt.Sprintf("%s: %s", err.Category, err.Message)
	}
}

func contextHint(ctx ContextFields) string {
	if len(ctx) == 0 {
		return ""
	}
	keys := make([]string, 0, len(ctx))
	for k := range ctx {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		v := ctx[k]
		if list, ok := v.([]string); ok {
			v = strings.Join(list, ", ")
		}
		parts = append(parts, fmt.Sprintf("%s=%v", k, v))
	}
	return strings.Join(parts, " ")
}

// LogError logs an error with a level derived from its severity.
func (a *CLIErrorAdapter) LogError(err error) {
	if err == nil {
		return
	}
	if me, ok := As(err); ok {
		attrs := []slog.Attr{
			slog.String("category", string(me.Category)),
		}
		if me.Cause != nil {
			attrs = append(attrs, slog.String("cause", me.Cause.Error()))
		}
		a.logger.LogAttrs(context.Background(), a.levelFor(me.Severity), me.Message, attrs...)
		return
	}

	a.logger.Debug("Unclassified error", "error", err)
}

func (a *CLIErrorAdapter) levelFor(severity ErrorSeverity) slog.Level {
	switch severity {
	case SeverityWarning:
		return slog.LevelWarn
	case SeverityFatal, SeverityError:
		return slog.LevelError
	default:
		return slog.LevelError
	}
}
