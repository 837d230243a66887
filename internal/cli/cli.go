package cli

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/specialistvlad/horizon/internal/app"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes the environment variables that mirror the flags, e.g.
// HORIZON_LOG_LEVEL.
const EnvPrefix = "HORIZON"

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Execute runs the command line described by args. Usage problems come back
// as an *ExitError with code 2 and failed validations with code 1.
func Execute(ctx context.Context, outW, logW io.Writer, args []string) error {
	root := NewRootCommand(outW, logW)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return nil
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}
	return &ExitError{Code: 2, Message: err.Error()}
}

// NewRootCommand builds the command tree.
func NewRootCommand(outW, logW io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:   "horizon",
		Short: "Validate the time domain of energy-system model configurations",
		Long: `Horizon validates the time horizon, time slices, clusters and settings of
energy-system model configurations written in YAML, JSON or HCL.

Every flag can also be set through the environment, e.g. HORIZON_LOG_LEVEL=debug.`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.SetOut(outW)
	root.SetErr(outW)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &ExitError{Code: 2, Message: err.Error()}
	})

	root.PersistentFlags().AddFlagSet(globalFlags())
	root.AddCommand(newValidateCmd(outW, logW), newHistoryCmd(outW, logW))
	return root
}

// globalFlags holds the flags shared by every subcommand.
func globalFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("global", pflag.ContinueOnError)
	flags.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	flags.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	flags.String("log-path", "", "Directory for error logs when a model does not set settings.log_path (default <cwd>/logs).")
	flags.String("history-db", "", "SQLite file recording validation runs. Empty disables history.")
	flags.StringSlice("solvers", nil, "Installed solvers, overriding detection on PATH (e.g. glpk,cbc).")
	return flags
}

// loadConfig merges flags and environment into an app.Config.
func loadConfig(cmd *cobra.Command, paths []string) (*app.Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, err
	}

	cfg, err := app.NewConfig(app.Config{
		Paths:     paths,
		LogLevel:  v.GetString("log-level"),
		LogFormat: v.GetString("log-format"),
		LogPath:   v.GetString("log-path"),
		HistoryDB: v.GetString("history-db"),
		Solvers:   v.GetStringSlice("solvers"),
	})
	if err != nil {
		return nil, &ExitError{Code: 2, Message: err.Error()}
	}
	return cfg, nil
}
