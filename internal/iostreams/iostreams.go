// Package iostreams wraps the standard streams with terminal detection so
// commands can be tested against buffers.
package iostreams

import (
	"io"
	"os"

	"golang.org/x/term"
)

// IOStreams provides access to standard input/output/error streams.
// It follows the GitHub CLI pattern for testable I/O.
type IOStreams struct {
	In     io.Reader
	Out    io.Writer
	ErrOut io.Writer

	// TTY caches: -1 = unchecked, 0 = false, 1 = true
	isInputTTY  int
	isOutputTTY int
	isStderrTTY int

	// colorEnabled: -1 = auto (detect from TTY), 0 = disabled, 1 = enabled
	colorEnabled int

	termWidth int
}

// New creates an IOStreams connected to standard streams.
func New() *IOStreams {
	ios := &IOStreams{
		In:           os.Stdin,
		Out:          os.Stdout,
		ErrOut:       os.Stderr,
		isInputTTY:   -1,
		isOutputTTY:  -1,
		isStderrTTY:  -1,
		colorEnabled: -1,
	}
	if os.Getenv("NO_COLOR") != "" {
		ios.colorEnabled = 0
	}
	return ios
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// IsInputTTY returns true if stdin is a terminal.
func (s *IOStreams) IsInputTTY() bool {
	if s.isInputTTY == -1 {
		s.isInputTTY = boolToInt(isTerminal(s.In))
	}
	return s.isInputTTY == 1
}

// IsOutputTTY returns true if stdout is a terminal.
func (s *IOStreams) IsOutputTTY() bool {
	if s.isOutputTTY == -1 {
		s.isOutputTTY = boolToInt(isTerminal(s.Out))
	}
	return s.isOutputTTY == 1
}

// IsStderrTTY returns true if stderr is a terminal.
func (s *IOStreams) IsStderrTTY() bool {
	if s.isStderrTTY == -1 {
		s.isStderrTTY = boolToInt(isTerminal(s.ErrOut))
	}
	return s.isStderrTTY == 1
}

// SetTTY overrides terminal detection for all three streams.
func (s *IOStreams) SetTTY(tty bool) {
	v := boolToInt(tty)
	s.isInputTTY, s.isOutputTTY, s.isStderrTTY = v, v, v
}

// ColorEnabled returns whether color output is enabled. In auto mode colors
// follow whether stdout is a terminal.
func (s *IOStreams) ColorEnabled() bool {
	if s.colorEnabled == -1 {
		return s.IsOutputTTY()
	}
	return s.colorEnabled == 1
}

// SetColorEnabled explicitly enables or disables color output.
func (s *IOStreams) SetColorEnabled(enabled bool) {
	s.colorEnabled = boolToInt(enabled)
}

// ColorScheme returns a ColorScheme configured for this IOStreams.
func (s *IOStreams) ColorScheme() *ColorScheme {
	return NewColorScheme(s.ColorEnabled())
}

// TerminalWidth returns the width of stdout in columns, 80 when unknown.
func (s *IOStreams) TerminalWidth() int {
	if s.termWidth > 0 {
		return s.termWidth
	}
	if f, ok := s.Out.(*os.File); ok {
		if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
			return w
		}
	}
	return 80
}

// SetTerminalWidth pins the terminal width.
func (s *IOStreams) SetTerminalWidth(w int) {
	s.termWidth = w
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
