package config

import (
	_ "embed"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

var (
	//go:embed default/config.yaml
	defaultConfigData []byte
)

const (
	ConfigurationName  = ".mash.yaml"
	DefaultHistoryName = ".mash_history"

	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

type Configuration struct {
	configFs  afero.Fs
	configDir string

	HistoryFile       string `json:"history_file" validate:"required"`
	HistoryLimit      int    `json:"history_limit" validate:"gte=-1,ne=0"`
	HistorySearchFold bool   `json:"history_search_fold"`

	Color string `json:"color" validate:"oneof=auto always never"`

	EventLog string `json:"event_log"`

	Completion bool `json:"completion"`
}

// Validate the configuration for basic semantic errors.
func (c *Configuration) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		return name
	})

	return validate.Struct(c)
}

func (c *Configuration) fs() afero.Fs {
	if c.configFs == nil {
		return afero.NewOsFs()
	}
	return c.configFs
}

// HistoryPath returns the absolute path of the history file, relative paths
// are resolved against startDir.
func (c *Configuration) HistoryPath(startDir string) string {
	if filepath.IsAbs(c.HistoryFile) {
		return c.HistoryFile
	}
	return filepath.Join(startDir, c.HistoryFile)
}

// HistoryEnabled reports whether lines should be kept in history at all.
func (c *Configuration) HistoryEnabled() bool {
	return c.HistoryLimit != -1
}

// EventLogEnabled reports whether an event log was configured.
func (c *Configuration) EventLogEnabled() bool {
	return c.EventLog != ""
}

// OpenEventLog opens the event log in an append only state.
func (c *Configuration) OpenEventLog() (afero.File, error) {
	name := c.EventLog
	if !filepath.IsAbs(name) {
		name = filepath.Join(c.configDir, name)
	}
	return c.fs().OpenFile(name, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
}

func defaultConfig() *Configuration {
	var out Configuration
	if err := yaml.UnmarshalStrict(defaultConfigData, &out); err != nil {
		panic(err)
	}
	return &out
}
