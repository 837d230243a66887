package cli

import (
	"io"

	"github.com/specialistvlad/horizon/internal/app"
	"github.com/spf13/cobra"
)

func newValidateCmd(outW, logW io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "validate PATH...",
		Short: "Validate configuration files or directories",
		Long: `Validate one or more configuration files. A directory is searched
recursively for .yaml, .yml, .json and .hcl files.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, args)
			if err != nil {
				return err
			}

			a := app.NewApp(outW, logW, cfg, app.NewLoader())
			if _, err := a.Run(cmd.Context()); err != nil {
				return &ExitError{Code: 1, Message: err.Error()}
			}
			return nil
		},
	}
}
