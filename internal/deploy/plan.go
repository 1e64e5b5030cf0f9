// Package deploy declares the stage list of every msph command. It is the only
// place where stages are assembled; running them is left to the pipeline runner.
package deploy

import (
	"fmt"
	"slices"

	msphErrors "github.com/moonsphere-systems/moonsphere-cli/internal/errors"
	"github.com/moonsphere-systems/moonsphere-cli/internal/pipeline"
)

// Plan is a ready-to-run command.
type Plan struct {
	// Name identifies the pipeline in logs and metrics.
	Name string
	// Notes are printed before the first stage.
	Notes []Note
	// Stages run in order.
	Stages []pipeline.Stage
	// Success is printed after every stage completed.
	Success string
}

// Note is an informational line; Values are substituted into Format and
// rendered highlighted.
type Note struct {
	Format string
	Values []string
}

// Render formats the note, passing every value through highlight.
func (n Note) Render(highlight func(string) string) string {
	args := make([]any, len(n.Values))
	for i, v := range n.Values {
		if highlight != nil {
			v = highlight(v)
		}
		args[i] = v
	}
	return fmt.Sprintf(n.Format, args...)
}

func note(format string, values ...string) Note {
	return Note{Format: format, Values: values}
}

// Mode selects the build profile of a frontend module.
type Mode string

const (
	ModeDev  Mode = "dev"
	ModeProd Mode = "prod"
)

// Modes lists the accepted modes.
var Modes = []string{string(ModeDev), string(ModeProd)}

// ParseMode validates a mode flag value.
func ParseMode(s string) (Mode, error) {
	if err := allowed("mode", s, Modes); err != nil {
		return "", err
	}
	return Mode(s), nil
}

func modeNote(mode Mode) Note {
	return note("Preparing for %s mode.", fmt.Sprintf("%q", string(mode)))
}

func allowed(field, value string, values []string) error {
	if slices.Contains(values, value) {
		return nil
	}
	return msphErrors.UnsupportedValue(field, value, values)
}
