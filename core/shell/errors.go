package shell

import (
	"errors"
	"fmt"
	"io/fs"
)

// ErrNoHome is returned when a session is started without a home directory.
var ErrNoHome = errors.New("HOME is not set")

// PathResolutionError is returned by cd when the target doesn't exist or
// can't be entered. The session is left unchanged.
type PathResolutionError struct {
	Path string
	Err  error
}

func (e *PathResolutionError) Error() string {
	cause := e.Err
	var pathErr *fs.PathError
	if errors.As(e.Err, &pathErr) {
		cause = pathErr.Err
	}
	return fmt.Sprintf("cd: %s: %v", e.Path, cause)
}

func (e *PathResolutionError) Unwrap() error { return e.Err }

// ExternalCommandError wraps a failure to launch an external program.
type ExternalCommandError struct {
	Command Command
	Err     error
}

func (e *ExternalCommandError) Error() string {
	return e.Err.Error()
}

func (e *ExternalCommandError) Unwrap() error { return e.Err }
