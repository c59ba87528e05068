package proc

import (
	"fmt"
	"strconv"
)

// ForkError is returned when the child process could not be created at all.
type ForkError struct {
	Name string
	Err  error
}

func (e *ForkError) Error() string {
	return fmt.Sprintf("%s: fork failed: %v", e.Name, e.Err)
}

func (e *ForkError) Unwrap() error { return e.Err }

// LaunchError is returned when the program could not be resolved or the
// child failed to replace its image with it.
type LaunchError struct {
	Name string
	Err  error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("%s: %v", e.Name, e.Err)
}

func (e *LaunchError) Unwrap() error { return e.Err }

// EncodingError is returned when a command name or argument can't be passed
// to the OS, e.g. because it holds a NUL byte.
type EncodingError struct {
	// Index of the offending word in argv, 0 is the command name.
	Index int
	Word  string
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("argument %d (%s) contains a NUL byte", e.Index, strconv.Quote(e.Word))
}
