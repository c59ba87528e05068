package shell

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/josephlewis42/mash/core/logger"
	"github.com/josephlewis42/mash/core/proc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type launchCall struct {
	Name string
	Args []string
	Dir  string
}

type fakeLauncher struct {
	calls  []launchCall
	status proc.Status
	err    error
	// failures overrides err for specific program names.
	failures map[string]error
}

func (f *fakeLauncher) Run(name string, args []string, dir string) (proc.Status, error) {
	f.calls = append(f.calls, launchCall{Name: name, Args: args, Dir: dir})
	if err, ok := f.failures[name]; ok {
		return proc.Status{}, err
	}
	return f.status, f.err
}

type eventLog struct {
	events []logger.LogType
}

func (e *eventLog) Record(event logger.LogType) error {
	e.events = append(e.events, event)
	return nil
}

// keepWorkingDir restores the process's working directory after the test.
func keepWorkingDir(t *testing.T) {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() {
		os.Chdir(wd)
	})
}

// canonicalTempDir returns a temporary directory without symlinks in its path.
func canonicalTempDir(t *testing.T) string {
	t.Helper()

	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	return dir
}

func newTestSession(t *testing.T, home string) (*Session, *fakeLauncher, *eventLog) {
	t.Helper()
	keepWorkingDir(t)

	launcher := &fakeLauncher{}
	events := &eventLog{}
	s, err := NewSession(home, launcher, events)
	require.NoError(t, err)
	return s, launcher, events
}

// assertState checks that the session and the process agree on dir.
func assertState(t *testing.T, s *Session, dir string) {
	t.Helper()

	assert.Equal(t, dir, s.Dir())
	assert.Equal(t, dir+" % ", s.Prompt())

	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, dir, wd)
}

func TestNewSession(t *testing.T) {
	t.Run("starts-in-canonical-home", func(t *testing.T) {
		root := canonicalTempDir(t)
		require.NoError(t, os.Mkdir(filepath.Join(root, "real"), 0755))
		require.NoError(t, os.Symlink(filepath.Join(root, "real"), filepath.Join(root, "home")))

		s, _, events := newTestSession(t, filepath.Join(root, "home"))
		assertState(t, s, filepath.Join(root, "real"))
		assert.Equal(t, filepath.Join(root, "home"), s.Home())

		require.Len(t, events.events, 1)
		assert.IsType(t, &logger.SessionStart{}, events.events[0])
	})

	t.Run("no-home", func(t *testing.T) {
		_, err := NewSession("", &fakeLauncher{}, nil)
		assert.ErrorIs(t, err, ErrNoHome)
	})

	t.Run("relative-home", func(t *testing.T) {
		_, err := NewSession("home/me", &fakeLauncher{}, nil)
		assert.Error(t, err)
	})

	t.Run("missing-home", func(t *testing.T) {
		keepWorkingDir(t)

		_, err := NewSession(filepath.Join(canonicalTempDir(t), "missing"), &fakeLauncher{}, nil)
		var pathErr *PathResolutionError
		assert.True(t, errors.As(err, &pathErr))
	})
}

func TestSession_Execute_blank(t *testing.T) {
	home := canonicalTempDir(t)
	s, launcher, events := newTestSession(t, home)

	for _, line := range []string{"", " ", "\t\t", "   \n"} {
		assert.NoError(t, s.Execute(Parse(line)))
	}

	assert.Empty(t, launcher.calls)
	assert.Len(t, events.events, 1, "only the session start")
	assertState(t, s, home)
}

func TestSession_Execute_cd(t *testing.T) {
	home := canonicalTempDir(t)
	require.NoError(t, os.MkdirAll(filepath.Join(home, "a", "b"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(home, "file"), nil, 0644))
	require.NoError(t, os.Symlink(filepath.Join(home, "a", "b"), filepath.Join(home, "link")))

	t.Run("no-args-goes-home", func(t *testing.T) {
		s, _, _ := newTestSession(t, home)
		require.NoError(t, s.Execute(Parse("cd a/b")))

		require.NoError(t, s.Execute(Parse("cd")))
		assertState(t, s, home)
	})

	t.Run("relative", func(t *testing.T) {
		s, _, _ := newTestSession(t, home)

		require.NoError(t, s.Execute(Parse("cd a")))
		assertState(t, s, filepath.Join(home, "a"))

		require.NoError(t, s.Execute(Parse("cd b")))
		assertState(t, s, filepath.Join(home, "a", "b"))
	})

	t.Run("absolute", func(t *testing.T) {
		s, _, _ := newTestSession(t, home)

		require.NoError(t, s.Execute(Parse("cd "+filepath.Join(home, "a"))))
		assertState(t, s, filepath.Join(home, "a"))
	})

	t.Run("dot-and-dotdot", func(t *testing.T) {
		s, _, _ := newTestSession(t, home)

		require.NoError(t, s.Execute(Parse("cd ./a/./b/..")))
		assertState(t, s, filepath.Join(home, "a"))
	})

	t.Run("symlink-is-resolved", func(t *testing.T) {
		s, _, _ := newTestSession(t, home)

		require.NoError(t, s.Execute(Parse("cd link")))
		assertState(t, s, filepath.Join(home, "a", "b"))

		// .. applies to the resolved path, not the link.
		require.NoError(t, s.Execute(Parse("cd ..")))
		assertState(t, s, filepath.Join(home, "a"))
	})

	t.Run("extra-args-ignored", func(t *testing.T) {
		s, launcher, _ := newTestSession(t, home)

		require.NoError(t, s.Execute(Parse("cd a does-not-exist")))
		assertState(t, s, filepath.Join(home, "a"))
		assert.Empty(t, launcher.calls)
	})

	errCases := map[string]string{
		"relative-missing": "cd missing",
		"absolute-missing": "cd /nonexistent/mash/dir",
		"not-a-directory":  "cd file",
		"through-a-file":   "cd file/a",
		"file-then-dotdot": "cd file/..",
	}
	for tn, line := range errCases {
		t.Run(tn, func(t *testing.T) {
			s, _, events := newTestSession(t, home)
			require.NoError(t, s.Execute(Parse("cd a")))
			prompt := s.Prompt()

			err := s.Execute(Parse(line))
			var pathErr *PathResolutionError
			require.True(t, errors.As(err, &pathErr), "got %v", err)

			assert.Equal(t, prompt, s.Prompt())
			assertState(t, s, filepath.Join(home, "a"))
			assert.IsType(t, &logger.CommandError{}, events.events[len(events.events)-1])
		})
	}
}

func TestSession_Execute_cdSequence(t *testing.T) {
	home := canonicalTempDir(t)
	s, _, _ := newTestSession(t, home)

	tmp, err := filepath.EvalSymlinks(os.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.Execute(Parse("cd "+tmp)))
	assertState(t, s, tmp)

	require.NoError(t, s.Execute(Parse("cd ..")))
	assertState(t, s, filepath.Dir(tmp))

	require.NoError(t, s.Execute(Parse("cd")))
	assertState(t, s, home)
}

func TestSession_Execute_external(t *testing.T) {
	home := canonicalTempDir(t)
	require.NoError(t, os.Mkdir(filepath.Join(home, "src"), 0755))

	t.Run("launches-in-working-directory", func(t *testing.T) {
		s, launcher, events := newTestSession(t, home)
		require.NoError(t, s.Execute(Parse("cd src")))

		require.NoError(t, s.Execute(Parse("ls -la  /etc")))
		assert.Equal(t, []launchCall{
			{Name: "ls", Args: []string{"-la", "/etc"}, Dir: filepath.Join(home, "src")},
		}, launcher.calls)

		last := events.events[len(events.events)-1]
		require.IsType(t, &logger.RunCommand{}, last)
		assert.Equal(t, []string{"ls", "-la", "/etc"}, last.(*logger.RunCommand).Command)
	})

	t.Run("non-zero-exit-is-success", func(t *testing.T) {
		s, launcher, _ := newTestSession(t, home)
		launcher.status = proc.Status{Code: 1}

		assert.NoError(t, s.Execute(Parse("false")))
	})

	t.Run("launch-failure", func(t *testing.T) {
		s, launcher, _ := newTestSession(t, home)
		launcher.err = &proc.LaunchError{Name: "nope", Err: proc.ErrNotFound}

		err := s.Execute(Parse("nope"))
		var extErr *ExternalCommandError
		require.True(t, errors.As(err, &extErr))
		assert.Equal(t, "nope", extErr.Command.Name)

		var launchErr *proc.LaunchError
		assert.True(t, errors.As(err, &launchErr))
		assert.ErrorIs(t, err, proc.ErrNotFound)
		assertState(t, s, home)
	})

	t.Run("fork-failure", func(t *testing.T) {
		s, launcher, _ := newTestSession(t, home)
		launcher.err = &proc.ForkError{Name: "ls", Err: errors.New("resource temporarily unavailable")}

		err := s.Execute(Parse("ls"))
		var forkErr *proc.ForkError
		assert.True(t, errors.As(err, &forkErr))
		assertState(t, s, home)
	})
}

func TestSession_Execute_realLauncher(t *testing.T) {
	home := canonicalTempDir(t)
	keepWorkingDir(t)

	out, err := os.Create(filepath.Join(canonicalTempDir(t), "stdout"))
	require.NoError(t, err)
	defer out.Close()

	launcher := proc.NewLauncher()
	launcher.Attr.Files[1] = out

	s, err := NewSession(home, launcher, nil)
	require.NoError(t, err)

	require.NoError(t, s.Execute(Parse("echo hello")))
	require.NoError(t, s.Execute(Parse("pwd")))
	assertState(t, s, home)

	err = s.Execute(Parse("mash-no-such-program --flag"))
	var launchErr *proc.LaunchError
	assert.True(t, errors.As(err, &launchErr))

	err = s.Execute(Command{Name: "echo", Args: []string{"a\x00b"}})
	var encErr *proc.EncodingError
	assert.True(t, errors.As(err, &encErr))

	contents, err := os.ReadFile(out.Name())
	require.NoError(t, err)
	assert.Equal(t, "hello\n"+home+"\n", string(contents))
}

func TestPathResolutionError(t *testing.T) {
	err := &PathResolutionError{
		Path: "/x",
		Err:  &os.PathError{Op: "lstat", Path: "/x", Err: os.ErrNotExist},
	}
	assert.Equal(t, "cd: /x: file does not exist", err.Error())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestBuiltinNames(t *testing.T) {
	assert.Equal(t, []string{"cd"}, BuiltinNames())
}
