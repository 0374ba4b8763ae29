package style

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Spinner is a progress indicator shown while the loop pauses.
type Spinner interface {
	SetSuffix(suffix string)
	Start()
	Stop()
}

// TestSpinner prints each spinner transition on its own line instead of
// redrawing, so output can be asserted on.
type TestSpinner struct {
	mu     sync.Mutex
	Writer io.Writer
	Suffix string
	active bool
}

func (s *TestSpinner) SetSuffix(suffix string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.Writer, "[SET SUFFIX] %s\n", suffix)
	s.Suffix = suffix
}

// Start will start the indicator.
func (s *TestSpinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active {
		return
	}
	s.active = true
	fmt.Fprintf(s.Writer, "[SPINNER START]\n")
}

// Stop stops the indicator.
func (s *TestSpinner) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active {
		return
	}
	s.active = false
	fmt.Fprintf(s.Writer, "[SPINNER STOP]\n")
}

type TerminalSpinner struct {
	spinner *spinner.Spinner
	muted   func(a ...interface{}) string
}

func NewTerminalSpinner(cs []string, d time.Duration, options ...spinner.Option) *TerminalSpinner {
	return &TerminalSpinner{
		spinner: spinner.New(cs, d, options...),
		muted:   color.New(color.FgHiBlack).SprintFunc(),
	}
}

func (s *TerminalSpinner) SetSuffix(suffix string) {
	s.spinner.Suffix = s.muted(suffix)
}

func (s *TerminalSpinner) Start() {
	s.spinner.Start()
}

func (s *TerminalSpinner) Stop() {
	s.spinner.Stop()
}

type noopSpinner struct{}

func (noopSpinner) SetSuffix(string) {}
func (noopSpinner) Start()           {}
func (noopSpinner) Stop()            {}

// NewSpinner returns a spinner drawing on w. It is a TestSpinner when
// HEARTBEAT_TEST is "true", and does nothing when w is not a terminal.
func NewSpinner(w io.Writer) Spinner {
	if os.Getenv("HEARTBEAT_TEST") == "true" {
		return &TestSpinner{Writer: w}
	}

	if !IsTerminal(w) {
		return noopSpinner{}
	}

	return NewTerminalSpinner(spinner.CharSets[9], 100*time.Millisecond,
		spinner.WithWriter(w),
		spinner.WithHiddenCursor(true))
}

// IsTerminal reports whether w is a file attached to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
