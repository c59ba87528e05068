package editor

import (
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"github.com/abiosoft/readline"
	"github.com/josephlewis42/mash/core/proc"
	"github.com/spf13/afero"
)

// Completer completes the command word from builtins and executables on the
// search path, and every other word from the filesystem.
type Completer struct {
	Fs       afero.Fs
	Builtins []string

	// Path returns the colon separated program search path.
	Path func() string
	// Dir returns the directory relative paths are completed against.
	Dir func() string
}

var _ readline.AutoCompleter = (*Completer)(nil)

// Do implements readline.AutoCompleter. It returns the suffixes that can
// follow the word under the cursor and that word's length.
func (c *Completer) Do(line []rune, pos int) ([][]rune, int) {
	head := line[:pos]
	start := len(head)
	for start > 0 && !unicode.IsSpace(head[start-1]) {
		start--
	}
	word := string(head[start:])
	isCommand := strings.TrimSpace(string(head[:start])) == ""

	var candidates []string
	var prefix string
	if isCommand && !strings.Contains(word, "/") {
		prefix = word
		candidates = c.commands(word)
	} else {
		prefix, candidates = c.paths(word)
	}

	sort.Strings(candidates)
	out := make([][]rune, 0, len(candidates))
	for _, candidate := range candidates {
		out = append(out, []rune(candidate[len(prefix):]))
	}
	return out, len([]rune(prefix))
}

func (c *Completer) commands(prefix string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, name := range c.Builtins {
		if strings.HasPrefix(name, prefix) && !seen[name] {
			seen[name] = true
			out = append(out, name+" ")
		}
	}

	path := ""
	if c.Path != nil {
		path = c.Path()
	}
	for _, name := range proc.Executables(c.Fs, path, prefix) {
		if !seen[name] {
			seen[name] = true
			out = append(out, name+" ")
		}
	}
	return out
}

// paths returns the base name being completed and the entries matching it;
// directories end with a slash.
func (c *Completer) paths(word string) (string, []string) {
	dirPart, base := "", word
	if i := strings.LastIndex(word, "/"); i >= 0 {
		dirPart, base = word[:i+1], word[i+1:]
	}

	dir := dirPart
	if !filepath.IsAbs(dir) {
		cwd := "."
		if c.Dir != nil {
			cwd = c.Dir()
		}
		dir = filepath.Join(cwd, dirPart)
	}

	infos, err := afero.ReadDir(c.Fs, dir)
	if err != nil {
		return base, nil
	}

	var out []string
	for _, info := range infos {
		name := info.Name()
		if !strings.HasPrefix(name, base) {
			continue
		}
		if strings.HasPrefix(name, ".") && !strings.HasPrefix(base, ".") {
			continue
		}
		if info.IsDir() {
			out = append(out, name+"/")
		} else {
			out = append(out, name+" ")
		}
	}
	return base, out
}
