package editor

import (
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_createsHistoryFile(t *testing.T) {
	historyFile := filepath.Join(t.TempDir(), ".mash_history")

	e, err := New(Options{
		HistoryFile:  historyFile,
		HistoryLimit: 10,
		Stdin:        io.NopCloser(strings.NewReader("")),
		Stdout:       ioutil.Discard,
		Stderr:       ioutil.Discard,
	})
	require.NoError(t, err)
	defer e.Close()

	_, err = os.Stat(historyFile)
	assert.NoError(t, err)
}

func TestNew_badHistoryFile(t *testing.T) {
	_, err := New(Options{
		HistoryFile: filepath.Join(t.TempDir(), "missing", "dir", ".mash_history"),
		Stdin:       io.NopCloser(strings.NewReader("")),
		Stdout:      ioutil.Discard,
		Stderr:      ioutil.Discard,
	})
	assert.Error(t, err)
}
