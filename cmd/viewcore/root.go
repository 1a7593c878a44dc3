package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dshills/viewcore/internal/config"
	"github.com/dshills/viewcore/internal/logging"
)

// app carries the state shared by all subcommands.
type app struct {
	configPath string
	logLevel   string

	opts   config.Options
	log    *slog.Logger
	closer io.Closer
}

func newRootCmd() *cobra.Command {
	a := &app{}
	rootCmd := &cobra.Command{
		Use:   "viewcore",
		Short: "Wrap text into view lines and replay cursor editing sessions",
		Long: `viewcore drives the projection and cursor engine without an editor.

  viewcore wrap FILE              Print the view lines of FILE
  viewcore replay FILE SCRIPT     Apply an editing script to FILE

Options come from --config (TOML or YAML) and VIEWCORE_* environment
variables, for example VIEWCORE_EDITOR_WRAPPING_COLUMN=80.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd.ErrOrStderr())
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.closer != nil {
				return a.closer.Close()
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "config file path (.toml, .yaml or .yml)")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "override logging.level")

	rootCmd.AddCommand(
		newWrapCmd(a),
		newReplayCmd(a),
	)
	return rootCmd
}

// setup loads options and builds the logger.
func (a *app) setup(stderr io.Writer) error {
	opts, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		opts.Logging.Level = a.logLevel
		if err := opts.Validate(); err != nil {
			return err
		}
	}
	a.opts = opts

	cfg := opts.LoggingConfig()
	cfg.Output = stderr
	a.log, a.closer = logging.New(cfg)
	a.log.Debug("config loaded", "path", a.configPath, "wrappingColumn", opts.Editor.WrappingColumn)
	return nil
}
