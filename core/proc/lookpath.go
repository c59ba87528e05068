package proc

import (
	"errors"
	"io/fs"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// ErrNotFound is the error resulting if a path search failed to find an executable file.
var ErrNotFound = exec.ErrNotFound

func findExecutable(fsys afero.Fs, file string) error {
	d, err := fsys.Stat(file)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return ErrNotFound
	case err != nil:
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0111 != 0 {
		return nil
	}
	return fs.ErrPermission
}

// LookPath searches for an executable named file in the directories named by
// path, a colon separated list like $PATH. If file contains a slash, it is
// tried directly relative to dir and the path is not consulted. The result
// is always absolute.
func LookPath(fsys afero.Fs, path, dir, file string) (string, error) {
	if strings.Contains(file, "/") {
		if !filepath.IsAbs(file) {
			file = filepath.Join(dir, file)
		}
		if err := findExecutable(fsys, file); err != nil {
			return "", err
		}
		return file, nil
	}

	for _, entry := range filepath.SplitList(path) {
		if entry == "" {
			// Unix shell semantics: path element "" means "."
			entry = "."
		}
		if !filepath.IsAbs(entry) {
			entry = filepath.Join(dir, entry)
		}
		candidate := filepath.Join(entry, file)
		if err := findExecutable(fsys, candidate); err == nil {
			return candidate, nil
		}
	}
	return "", ErrNotFound
}

// Executables lists the names of executables in path that start with prefix.
// Earlier path entries shadow later ones.
func Executables(fsys afero.Fs, path, prefix string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, entry := range filepath.SplitList(path) {
		if entry == "" {
			continue
		}
		infos, err := afero.ReadDir(fsys, entry)
		if err != nil {
			continue
		}
		for _, info := range infos {
			name := info.Name()
			if seen[name] || !strings.HasPrefix(name, prefix) {
				continue
			}
			if findExecutable(fsys, filepath.Join(entry, name)) != nil {
				continue
			}
			seen[name] = true
			out = append(out, name)
		}
	}
	return out
}
