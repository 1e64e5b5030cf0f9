// Package report renders pipeline progress and result banners for humans.
package report

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Options controls terminal rendering.
type Options struct {
	// NoColor disables ANSI colours even on a terminal.
	NoColor bool
	// Animate forces the spinner on or off; nil detects a terminal.
	Animate *bool
}

type styles struct {
	success   lipgloss.Style
	failure   lipgloss.Style
	highlight lipgloss.Style
	muted     lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		success:   r.NewStyle().Foreground(lipgloss.Color("#8BC34A")),
		failure:   r.NewStyle().Foreground(lipgloss.Color("#e53935")),
		highlight: r.NewStyle().Foreground(lipgloss.Color("#26C6DA")),
		muted:     r.NewStyle().Faint(true),
	}
}

// Printer writes styled lines.
type Printer struct {
	w      io.Writer
	styles styles
}

// NewPrinter creates a printer for w.
func NewPrinter(w io.Writer, opts Options) *Printer {
	r := lipgloss.NewRenderer(w)
	if opts.NoColor {
		r.SetColorProfile(termenv.Ascii)
	}
	return &Printer{w: w, styles: newStyles(r)}
}

// Highlight renders s in the accent colour, for names inside messages.
func (p *Printer) Highlight(s string) string {
	return p.styles.highlight.Render(s)
}

// Println writes one plain line.
func (p *Printer) Println(a ...any) {
	fmt.Fprintln(p.w, a...)
}

// Printf writes formatted text.
func (p *Printer) Printf(format string, a ...any) {
	fmt.Fprintf(p.w, format, a...)
}

// NewLine writes an empty line.
func (p *Printer) NewLine() {
	fmt.Fprintln(p.w)
}

// Success writes the final success banner.
func (p *Printer) Success(message string) {
	fmt.Fprintln(p.w, p.styles.success.Render("SUCCESS! "+message))
}

// Error writes the final failure banner.
func (p *Printer) Error(message string) {
	fmt.Fprintln(p.w, p.styles.failure.Render("ERROR! "+message))
}

// Header describes the project printed above every pipeline.
type Header struct {
	Year          int
	LicensedBy    string
	License       string
	Developer     string
	PersonalPage  string
	RepositoryURL string
}

// PrintHeader writes the copyright block.
func (p *Printer) PrintHeader(h Header) {
	p.Printf("(c) %d by %s. On %s license.\n", h.Year, p.Highlight(h.LicensedBy), h.License)
	p.Printf("Developed by %s.\n\n", h.Developer)
	p.Printf("  Personal page: %s\n", h.PersonalPage)
	p.Printf("  Repository url: %s\n\n", h.RepositoryURL)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
