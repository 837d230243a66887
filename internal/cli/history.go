package cli

import (
	"io"

	"github.com/specialistvlad/horizon/internal/app"
	"github.com/spf13/cobra"
)

func newHistoryCmd(outW, logW io.Writer) *cobra.Command {
	var (
		limit int
		id    string
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded validation runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, nil)
			if err != nil {
				return err
			}

			a := app.NewApp(outW, logW, cfg, app.NewLoader())
			if err := a.History(cmd.Context(), limit, id); err != nil {
				return &ExitError{Code: 1, Message: err.Error()}
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to list.")
	cmd.Flags().StringVar(&id, "id", "", "Show a single run with its messages.")
	return cmd
}
