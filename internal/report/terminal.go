package report

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"

	"github.com/moonsphere-systems/moonsphere-cli/internal/pipeline"
)

// clearLine returns the cursor to column 0 and erases the line.
const clearLine = "\r\x1b[K"

// Terminal renders stage progress. On a terminal the running stage is shown
// with an animated spinner that is replaced by a ✓ or X line when the stage
// ends; elsewhere every transition is written as its own line.
type Terminal struct {
	pipeline.NoopReporter
	*Printer

	animate bool
	frames  []string
	fps     time.Duration

	mu     sync.Mutex
	line   string
	frame  int
	stopCh chan struct{}
	doneCh chan struct{}
}

// NewTerminal creates a terminal reporter writing to w.
func NewTerminal(w io.Writer, opts Options) *Terminal {
	animate := isTerminal(w)
	if opts.Animate != nil {
		animate = *opts.Animate
	}
	return &Terminal{
		Printer: NewPrinter(w, opts),
		animate: animate,
		frames:  spinner.MiniDot.Frames,
		fps:     spinner.MiniDot.FPS,
	}
}

func (t *Terminal) StageStarted(p pipeline.Progress, label string) {
	text := fmt.Sprintf("%s %s...", p, label)
	if !t.animate {
		fmt.Fprintln(t.w, t.styles.muted.Render("- "+text))
		return
	}
	t.mu.Lock()
	t.line = text
	t.frame = 0
	t.drawLocked()
	t.mu.Unlock()
	t.startSpinner()
}

func (t *Terminal) StageUpdated(p pipeline.Progress, status string) {
	text := fmt.Sprintf("%s %s", p, status)
	if !t.animate {
		fmt.Fprintln(t.w, t.styles.muted.Render("  "+text))
		return
	}
	t.mu.Lock()
	t.line = text
	t.drawLocked()
	t.mu.Unlock()
}

func (t *Terminal) StageSucceeded(p pipeline.Progress, label string, _ time.Duration) {
	t.stopSpinner()
	fmt.Fprintln(t.w, t.styles.success.Render(fmt.Sprintf("✓ %s %s.", p, label)))
}

func (t *Terminal) StageFailed(p pipeline.Progress, label string, _ time.Duration, _ *pipeline.StageError) {
	t.stopSpinner()
	fmt.Fprintln(t.w, t.styles.failure.Render(fmt.Sprintf("X %s %s.", p, label)))
}

func (t *Terminal) drawLocked() {
	fmt.Fprintf(t.w, "%s%s %s", clearLine, t.frames[t.frame%len(t.frames)], t.line)
}

func (t *Terminal) startSpinner() {
	t.stopCh = make(chan struct{})
	t.doneCh = make(chan struct{})
	go func(stop <-chan struct{}, done chan<- struct{}) {
		defer close(done)
		ticker := time.NewTicker(t.fps)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				t.mu.Lock()
				t.frame++
				t.drawLocked()
				t.mu.Unlock()
			}
		}
	}(t.stopCh, t.doneCh)
}

func (t *Terminal) stopSpinner() {
	if !t.animate || t.stopCh == nil {
		return
	}
	close(t.stopCh)
	<-t.doneCh
	t.stopCh, t.doneCh = nil, nil
	fmt.Fprint(t.w, clearLine)
}
