package shell

import (
	"path/filepath"
	"sort"
)

// AllBuiltins holds a list of all registered shell builtins
var AllBuiltins = make(map[string]ShellBuiltin)

type ShellBuiltin interface {
	Main(s *Session, args []string) error
}

type ShellBuiltinFunc func(s *Session, args []string) error

func (f ShellBuiltinFunc) Main(s *Session, args []string) error {
	return f(s, args)
}

var _ ShellBuiltin = (ShellBuiltinFunc)(nil)

// BuiltinNames returns the sorted names of all builtins.
func BuiltinNames() []string {
	var out []string
	for name := range AllBuiltins {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Cd is the cd shell builtin. With no arguments it changes to the home
// directory, otherwise to its first argument; relative paths are taken from
// the current directory and extra arguments are ignored.
func Cd(s *Session, args []string) error {
	target := s.home
	if len(args) > 0 {
		target = args[0]
		if !filepath.IsAbs(target) {
			// Joined without cleaning so ".." applies after symlinks are
			// resolved.
			target = s.cwd + "/" + target
		}
	}

	return s.chdir(target)
}

func init() {
	AllBuiltins["cd"] = ShellBuiltinFunc(Cd)
}
