package shell

// Input lines are handled in a subset of the steps defined by
// https://pubs.opengroup.org/onlinepubs/9699919799/utilities/V3_chap02.html
//
// 2. The shell breaks the input into tokens. Here a token is any run of
// non-blank characters; there are no operators, quotes or escapes.
//
// 6. The shell executes a built-in or executable file, giving the names of
// the arguments as positional parameters numbered 1 to n, and the name of
// the command as the positional parameter numbered 0.
//
// 7. The shell waits for the command to complete.

import "strings"

// Command is a parsed input line.
type Command struct {
	// Name is empty only for a blank line.
	Name string
	Args []string
}

// IsEmpty reports whether the command came from a blank line.
func (c Command) IsEmpty() bool {
	return c.Name == ""
}

// Argv returns the name followed by the arguments.
func (c Command) Argv() []string {
	if c.IsEmpty() {
		return nil
	}
	return append([]string{c.Name}, c.Args...)
}

// Parse splits line on runs of whitespace. The first field is the command
// name and the rest are its arguments, in order.
func Parse(line string) Command {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}
	}
	return Command{Name: fields[0], Args: fields[1:]}
}
