package shell

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/josephlewis42/mash/core/logger"
	"github.com/josephlewis42/mash/core/proc"
	"github.com/josephlewis42/mash/third_party/realpath"
)

// PromptSuffix follows the working directory in the prompt.
const PromptSuffix = " % "

// EventRecorder stores session events.
type EventRecorder interface {
	Record(event logger.LogType) error
}

// Session holds the shell state that outlives a single command: the home
// directory, the working directory and the prompt derived from it.
//
// The working directory of the session and of the process are always the
// same; both are only changed by a successful cd.
type Session struct {
	home   string
	cwd    string
	prompt string

	launcher proc.Launcher
	events   EventRecorder
}

// NewSession starts a session in home, which must be an absolute path to an
// existing directory. The process's working directory is changed to it.
func NewSession(home string, launcher proc.Launcher, events EventRecorder) (*Session, error) {
	if home == "" {
		return nil, ErrNoHome
	}
	if !filepath.IsAbs(home) {
		return nil, fmt.Errorf("HOME must be absolute, got %q", home)
	}
	if events == nil {
		events = logger.NewNopLogger().Sessionless()
	}

	s := &Session{
		home:     home,
		launcher: launcher,
		events:   events,
	}
	if err := s.chdir(home); err != nil {
		return nil, err
	}

	s.record(&logger.SessionStart{Pid: os.Getpid(), Home: home, Dir: s.cwd})
	return s, nil
}

// Prompt returns the prompt to show before reading the next line.
func (s *Session) Prompt() string {
	return s.prompt
}

// Dir returns the canonical working directory.
func (s *Session) Dir() string {
	return s.cwd
}

// Home returns the home directory the session was started with.
func (s *Session) Home() string {
	return s.home
}

// Execute runs cmd to completion. Blank commands do nothing, builtins run in
// the shell and everything else is launched as an external program in the
// session's working directory. A failed command leaves the session as it
// was.
func (s *Session) Execute(cmd Command) error {
	if cmd.IsEmpty() {
		return nil
	}

	var err error
	if builtin, ok := AllBuiltins[cmd.Name]; ok {
		err = builtin.Main(s, cmd.Args)
	} else {
		err = s.runExternal(cmd)
	}

	if err != nil {
		s.record(&logger.CommandError{Command: cmd.Argv(), ErrorMessage: err.Error()})
	}
	return err
}

func (s *Session) runExternal(cmd Command) error {
	start := time.Now()
	status, err := s.launcher.Run(cmd.Name, cmd.Args, s.cwd)
	if err != nil {
		return &ExternalCommandError{Command: cmd, Err: err}
	}

	event := &logger.RunCommand{
		Command:        cmd.Argv(),
		Dir:            s.cwd,
		Pid:            status.Pid,
		ExitCode:       status.Code,
		DurationMicros: time.Since(start).Microseconds(),
	}
	if status.Signal != 0 {
		event.Signal = status.Signal.String()
	}
	s.record(event)
	return nil
}

// chdir canonicalizes target and makes it the working directory of both the
// process and the session. On failure nothing changes.
func (s *Session) chdir(target string) error {
	canonical, err := realpath.Realpath(realpath.Host, target)
	if err != nil {
		return &PathResolutionError{Path: target, Err: err}
	}
	if err := os.Chdir(canonical); err != nil {
		return &PathResolutionError{Path: target, Err: err}
	}

	from := s.cwd
	s.cwd = canonical
	s.prompt = canonical + PromptSuffix

	if from != "" {
		s.record(&logger.ChangeDirectory{From: from, To: canonical})
	}
	return nil
}

func (s *Session) record(event logger.LogType) {
	// The event log is best effort, it never fails a command.
	_ = s.events.Record(event)
}
