package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

// Load loads the configuration from the directory, falling back to the
// defaults if it holds no configuration file. Keys missing from the file
// keep their default values.
func Load(fsys afero.Fs, path string) (*Configuration, error) {
	// If given the path to a configuration file, move back up a level.
	if filepath.Base(path) == ConfigurationName {
		path = filepath.Dir(path)
	}

	out := defaultConfig()
	out.configFs = fsys
	out.configDir = path

	configContents, err := afero.ReadFile(fsys, filepath.Join(path, ConfigurationName))
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return out, nil
	case err != nil:
		return nil, err
	}

	if err := yaml.UnmarshalStrict(configContents, out); err != nil {
		return nil, fmt.Errorf("%s: %w", ConfigurationName, err)
	}
	if err := out.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", ConfigurationName, err)
	}
	return out, nil
}
