// Package editor reads command lines from the terminal with line editing,
// persistent history, Ctrl-R history search and Tab completion.
package editor

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/abiosoft/readline"
)

// ErrInterrupt is returned by Readline when the user pressed Ctrl-C.
var ErrInterrupt = readline.ErrInterrupt

// Options configures a new Editor.
type Options struct {
	// HistoryFile is loaded on start and appended to by AddHistory. It is
	// created if it doesn't exist.
	HistoryFile  string
	HistoryLimit int
	// HistorySearchFold makes Ctrl-R search case-insensitive.
	HistorySearchFold bool

	// Completer is consulted on Tab, nil disables completion.
	Completer readline.AutoCompleter

	Stdin  io.ReadCloser
	Stdout io.Writer
	Stderr io.Writer
}

// Editor is a line editor backed by readline.
type Editor struct {
	rl *readline.Instance
}

// New creates an Editor and loads its history.
func New(opts Options) (*Editor, error) {
	if opts.HistoryFile != "" {
		fd, err := os.OpenFile(opts.HistoryFile, os.O_CREATE|os.O_RDONLY, 0600)
		if err != nil {
			return nil, fmt.Errorf("create history file: %w", err)
		}
		fd.Close()
	}

	cfg := &readline.Config{
		HistoryFile:       opts.HistoryFile,
		HistoryLimit:      opts.HistoryLimit,
		HistorySearchFold: opts.HistorySearchFold,

		// Only lines that ran successfully are kept, see AddHistory.
		DisableAutoSaveHistory: true,

		AutoComplete: opts.Completer,
		Stdout:       opts.Stdout,
		Stderr:       opts.Stderr,
	}
	if opts.Stdin != nil {
		cfg.Stdin = readline.NewCancelableStdin(opts.Stdin)
	}
	if err := cfg.Init(); err != nil {
		return nil, err
	}

	rl, err := readline.NewEx(cfg)
	if err != nil {
		return nil, err
	}

	return &Editor{rl: rl}, nil
}

// Readline shows prompt and reads one line. It returns io.EOF at end of
// input and ErrInterrupt if the line was cancelled.
func (e *Editor) Readline(prompt string) (string, error) {
	e.rl.SetPrompt(prompt)
	line, err := e.rl.Readline()
	switch {
	case err == nil, errors.Is(err, io.EOF), errors.Is(err, ErrInterrupt):
		return line, err
	default:
		return line, fmt.Errorf("read line: %w", err)
	}
}

// AddHistory appends line to the in-memory history and the history file.
func (e *Editor) AddHistory(line string) error {
	return e.rl.SaveHistory(line)
}

// Write writes to the terminal without corrupting the line being edited.
func (e *Editor) Write(b []byte) (int, error) {
	return e.rl.Write(b)
}

// Close restores the terminal and flushes history.
func (e *Editor) Close() error {
	return e.rl.Close()
}
