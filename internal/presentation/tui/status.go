package tui

import (
	"io"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Styler colors short status words for text output.
type Styler struct {
	out *termenv.Output
}

// NewStyler detects the color profile of w. Pass termenv.WithProfile to force one.
func NewStyler(w io.Writer, opts ...termenv.OutputOption) *Styler {
	return &Styler{out: termenv.NewOutput(w, opts...)}
}

// OK renders s in green.
func (s *Styler) OK(text string) string {
	return s.out.String(text).Foreground(s.out.Color("#22c55e")).String()
}

// Fail renders s in bold red.
func (s *Styler) Fail(text string) string {
	return s.out.String(text).Foreground(s.out.Color("#ef4444")).Bold().String()
}

// Status picks OK or Fail.
func (s *Styler) Status(ok bool, text string) string {
	if ok {
		return s.OK(text)
	}
	return s.Fail(text)
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
