package shell

import (
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/fatih/color"
	"github.com/josephlewis42/mash/core/editor"
	"github.com/josephlewis42/mash/core/logger"
)

// LineEditor supplies input lines and keeps the history of those that ran.
type LineEditor interface {
	// Readline returns io.EOF at end of input and editor.ErrInterrupt when
	// the line was cancelled.
	Readline(prompt string) (string, error)
	AddHistory(line string) error
}

// Shell reads lines from an editor and executes them in a session until the
// user types exit or input ends.
type Shell struct {
	Session *Session
	Editor  LineEditor

	// Stderr receives error messages.
	Stderr io.Writer
	// ErrorColor highlights the prefix of error messages.
	ErrorColor *color.Color
	// Log receives diagnostics that aren't the user's fault.
	Log *log.Logger
}

// NewShell creates a shell writing errors to stderr.
func NewShell(session *Session, ed LineEditor, stderr io.Writer) *Shell {
	return &Shell{
		Session:    session,
		Editor:     ed,
		Stderr:     stderr,
		ErrorColor: color.New(color.FgRed, color.Bold),
		Log:        log.New(stderr, "[mash] ", 0),
	}
}

// Run executes lines until exit or end of input.
func (s *Shell) Run() {
	for {
		line, err := s.Editor.Readline(s.Session.Prompt())

		switch {
		case errors.Is(err, io.EOF):
			fmt.Fprintln(s.Stderr, "exit")
			s.Session.record(&logger.SessionEnd{Reason: "eof"})
			return

		case errors.Is(err, editor.ErrInterrupt):
			// Interrupt clears line.
			continue

		case err != nil:
			s.printError(err)
			continue

		case strings.TrimSpace(line) == "exit":
			s.Session.record(&logger.SessionEnd{Reason: "exit"})
			return
		}

		cmd := Parse(line)
		if cmd.IsEmpty() {
			continue
		}

		if err := s.Session.Execute(cmd); err != nil {
			s.printError(err)
			continue
		}

		if err := s.Editor.AddHistory(line); err != nil {
			s.Log.Printf("couldn't save history: %v", err)
		}
	}
}

func (s *Shell) printError(err error) {
	s.ErrorColor.Fprint(s.Stderr, "mash:")
	fmt.Fprintf(s.Stderr, " %v\n", err)
}
