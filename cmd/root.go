package cmd

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/josephlewis42/mash/core/config"
	"github.com/josephlewis42/mash/core/editor"
	"github.com/josephlewis42/mash/core/logger"
	"github.com/josephlewis42/mash/core/proc"
	"github.com/josephlewis42/mash/core/shell"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mash",
	Short: "A minimal interactive shell",
	Long: `mash reads one command per line and runs it in the foreground.

cd is built in, "exit" or end of input quits, and everything else is
launched as a program found on $PATH. History is kept in .mash_history in
the directory mash was started from; settings are read from ~/.mash.yaml.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func run(cmd *cobra.Command) error {
	mashLogger := log.New(cmd.ErrOrStderr(), "[mash] ", 0)

	home := os.Getenv("HOME")
	if home == "" {
		return shell.ErrNoHome
	}

	// Resolve the history file before the session leaves the start directory.
	startDir, err := os.Getwd()
	if err != nil {
		return err
	}

	osFs := afero.NewOsFs()
	cfg, err := config.Load(osFs, home)
	if err != nil {
		return err
	}

	events := logger.NewNopLogger()
	if cfg.EventLogEnabled() {
		logFd, err := cfg.OpenEventLog()
		if err != nil {
			return fmt.Errorf("open event log: %w", err)
		}
		defer logFd.Close()
		events = logger.NewJsonLinesLogRecorder(logFd)
		mashLogger.Printf("Logging events to: file://%s\n", logFd.Name())
	}

	session, err := shell.NewSession(home, proc.NewLauncher(), events.NewSession())
	if err != nil {
		return err
	}

	opts := editor.Options{
		HistoryLimit:      cfg.HistoryLimit,
		HistorySearchFold: cfg.HistorySearchFold,
	}
	if cfg.HistoryEnabled() {
		opts.HistoryFile = cfg.HistoryPath(startDir)
	}
	if cfg.Completion {
		opts.Completer = &editor.Completer{
			Fs:       osFs,
			Builtins: shell.BuiltinNames(),
			Path:     func() string { return os.Getenv("PATH") },
			Dir:      session.Dir,
		}
	}

	ed, err := editor.New(opts)
	if err != nil {
		return fmt.Errorf("create line editor: %w", err)
	}
	defer ed.Close()

	sh := shell.NewShell(session, ed, cmd.ErrOrStderr())
	sh.Log = mashLogger
	switch cfg.Color {
	case config.ColorAlways:
		sh.ErrorColor.EnableColor()
	case config.ColorNever:
		sh.ErrorColor.DisableColor()
	}

	sh.Run()
	return nil
}

func init() {
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return errors.New("mash takes no flags")
	})
}
