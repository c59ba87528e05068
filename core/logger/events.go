package logger

// LogType is implemented by every event that can be recorded.
type LogType interface {
	setOn(le *LogEntry)
}

// LogEntry is a single line in the event log.
type LogEntry struct {
	TimestampMicros int64  `json:"timestamp_micros"`
	SessionID       string `json:"session_id,omitempty"`

	SessionStart    *SessionStart    `json:"session_start,omitempty"`
	SessionEnd      *SessionEnd      `json:"session_end,omitempty"`
	RunCommand      *RunCommand      `json:"run_command,omitempty"`
	ChangeDirectory *ChangeDirectory `json:"change_directory,omitempty"`
	CommandError    *CommandError    `json:"command_error,omitempty"`
}

// SessionStart is logged once when the shell starts.
type SessionStart struct {
	Pid  int    `json:"pid"`
	Home string `json:"home"`
	Dir  string `json:"dir"`
}

func (e *SessionStart) setOn(le *LogEntry) { le.SessionStart = e }

// SessionEnd is logged when the shell loop terminates.
type SessionEnd struct {
	// Reason is "exit" or "eof".
	Reason string `json:"reason"`
}

func (e *SessionEnd) setOn(le *LogEntry) { le.SessionEnd = e }

// RunCommand is logged after an external program was reaped.
type RunCommand struct {
	Command        []string `json:"command"`
	Dir            string   `json:"dir"`
	Pid            int      `json:"pid"`
	ExitCode       int      `json:"exit_code"`
	Signal         string   `json:"signal,omitempty"`
	DurationMicros int64    `json:"duration_micros"`
}

func (e *RunCommand) setOn(le *LogEntry) { le.RunCommand = e }

// ChangeDirectory is logged after a successful cd.
type ChangeDirectory struct {
	From string `json:"from"`
	To   string `json:"to"`
}

func (e *ChangeDirectory) setOn(le *LogEntry) { le.ChangeDirectory = e }

// CommandError is logged when a command could not be run.
type CommandError struct {
	Command      []string `json:"command"`
	ErrorMessage string   `json:"error_message"`
}

func (e *CommandError) setOn(le *LogEntry) { le.CommandError = e }
