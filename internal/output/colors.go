package output

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Palette used for console output
var (
	commandColor = lipgloss.Color("#4ccbf1") // Light blue
	successColor = lipgloss.Color("#4dca7d") // Green
	warnColor    = lipgloss.Color("#f5c800") // Yellow
	errorColor   = lipgloss.Color("#f46251") // Red
)

// styles groups the lipgloss styles for one output stream
type styles struct {
	command lipgloss.Style
	success lipgloss.Style
	warn    lipgloss.Style
	err     lipgloss.Style
}

// newStyles builds styles rendering for w. Colour is dropped when w is not a terminal.
func newStyles(w io.Writer) styles {
	renderer := lipgloss.NewRenderer(w)
	if !IsTerminal(w) {
		renderer.SetColorProfile(termenv.Ascii)
	}
	return styles{
		command: renderer.NewStyle().Foreground(commandColor),
		success: renderer.NewStyle().Foreground(successColor).Bold(true),
		warn:    renderer.NewStyle().Foreground(warnColor),
		err:     renderer.NewStyle().Foreground(errorColor).Bold(true),
	}
}

// IsTerminal reports whether w is a terminal (including Cygwin terminals)
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
