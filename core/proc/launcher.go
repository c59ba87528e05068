// Package proc launches external programs in the foreground.
package proc

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"syscall"

	"github.com/spf13/afero"
	"golang.org/x/sys/unix"
)

// Status describes how a child process terminated.
type Status struct {
	Pid int
	// Code is the exit code, or 128+signal if the child was killed.
	Code   int
	Signal syscall.Signal
}

// Success reports whether the child exited normally with code 0.
func (s Status) Success() bool {
	return s.Code == 0 && s.Signal == 0
}

func (s Status) String() string {
	if s.Signal != 0 {
		return fmt.Sprintf("signal: %v", s.Signal)
	}
	return fmt.Sprintf("exit status %d", s.Code)
}

// Launcher runs a program to completion.
type Launcher interface {
	Run(name string, args []string, dir string) (Status, error)
}

// ProcAttr holds the attributes applied to every launched child.
type ProcAttr struct {
	// Env is the child's environment, nil uses the environment of the shell at
	// the time of the call.
	Env []string

	// Files are the child's stdin, stdout and stderr. Nil entries are
	// inherited from the shell.
	Files [3]*os.File
}

// ForkExecLauncher creates one child per Run with fork+exec and blocks until
// it exits. Only one child exists at a time.
type ForkExecLauncher struct {
	// Fs is used to resolve the program, defaults to the OS filesystem.
	Fs   afero.Fs
	Attr ProcAttr

	mu sync.Mutex
}

var _ Launcher = (*ForkExecLauncher)(nil)

// NewLauncher creates a launcher whose children inherit the shell's standard
// streams and environment.
func NewLauncher() *ForkExecLauncher {
	return &ForkExecLauncher{Fs: afero.NewOsFs()}
}

// Run starts name with argv [name, args...] in dir and waits for it. A child
// that exits non-zero is not an error; the error is reserved for failures to
// start or reap it.
func (l *ForkExecLauncher) Run(name string, args []string, dir string) (Status, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	argv := append([]string{name}, args...)
	if err := checkEncoding(argv); err != nil {
		return Status{}, err
	}

	env := l.Attr.Env
	if env == nil {
		env = os.Environ()
	}

	fsys := l.Fs
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	path, err := LookPath(fsys, getenv(env, "PATH"), dir, name)
	if err != nil {
		return Status{}, &LaunchError{Name: name, Err: err}
	}

	// The runtime's child chdirs to Dir before execve and never returns to Go
	// code: an exec failure is written to a status pipe and the child exits.
	pid, err := syscall.ForkExec(path, argv, &syscall.ProcAttr{
		Dir:   dir,
		Env:   env,
		Files: l.fds(),
	})
	if err != nil {
		if isForkFailure(err) {
			return Status{}, &ForkError{Name: name, Err: err}
		}
		return Status{}, &LaunchError{Name: name, Err: err}
	}

	return wait(pid)
}

func (l *ForkExecLauncher) fds() []uintptr {
	std := [3]*os.File{os.Stdin, os.Stdout, os.Stderr}
	out := make([]uintptr, len(std))
	for i, f := range std {
		if l.Attr.Files[i] != nil {
			f = l.Attr.Files[i]
		}
		out[i] = f.Fd()
	}
	return out
}

// wait blocks, without timeout, until the child with the given pid exits.
func wait(pid int) (Status, error) {
	var ws unix.WaitStatus
	for {
		_, err := unix.Wait4(pid, &ws, 0, nil)
		if errors.Is(err, unix.EINTR) {
			continue
		}
		if err != nil {
			return Status{Pid: pid}, fmt.Errorf("wait for pid %d: %w", pid, err)
		}
		break
	}

	status := Status{Pid: pid}
	switch {
	case ws.Exited():
		status.Code = ws.ExitStatus()
	case ws.Signaled():
		status.Signal = syscall.Signal(ws.Signal())
		status.Code = 128 + int(status.Signal)
	}
	return status, nil
}

// isForkFailure reports whether err came from creating the child rather than
// from the child's chdir or execve.
func isForkFailure(err error) bool {
	return errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.ENOMEM)
}

func checkEncoding(argv []string) error {
	for i, word := range argv {
		if strings.IndexByte(word, 0) >= 0 {
			return &EncodingError{Index: i, Word: word}
		}
	}
	return nil
}

func getenv(env []string, key string) string {
	prefix := key + "="
	value := ""
	for _, kv := range env {
		if strings.HasPrefix(kv, prefix) {
			// Last one wins, like os/exec.
			value = kv[len(prefix):]
		}
	}
	return value
}
