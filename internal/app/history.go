package app

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/specialistvlad/horizon/internal/logtable"
	"github.com/specialistvlad/horizon/internal/reportstore"
)

// ErrHistoryDisabled is returned by History when no history database is
// configured.
var ErrHistoryDisabled = errors.New("validation history is disabled: no history database configured")

// History prints recorded validation runs. With an id it prints that run and
// its messages; otherwise it lists up to limit runs, newest first.
func (a *App) History(ctx context.Context, limit int, id string) error {
	ctx = a.withLogger(ctx)
	if a.config.HistoryDB == "" {
		return ErrHistoryDisabled
	}

	store, err := reportstore.Open(ctx, a.config.HistoryDB)
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}
	defer store.Close()

	if id != "" {
		run, err := store.Get(ctx, id)
		if err != nil {
			return err
		}
		return a.printRun(run)
	}

	runs, err := store.List(ctx, limit)
	if err != nil {
		return err
	}
	a.logger.Debug("History loaded.", "runs", len(runs))
	if len(runs) == 0 {
		fmt.Fprintln(a.outW, "no validation runs recorded")
		return nil
	}

	tw := tabwriter.NewWriter(a.outW, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTARTED\tSTATUS\tWARNINGS\tERRORS\tSOURCE")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%s\n",
			r.ID, r.StartedAt.Local().Format(time.DateTime), r.Status, r.Warnings, r.Errors, r.Source)
	}
	return tw.Flush()
}

func (a *App) printRun(run *reportstore.Run) error {
	fmt.Fprintf(a.outW, "run:     %s\n", run.ID)
	fmt.Fprintf(a.outW, "source:  %s\n", run.Source)
	fmt.Fprintf(a.outW, "started: %s\n", run.StartedAt.Local().Format(time.DateTime))
	fmt.Fprintf(a.outW, "status:  %s\n", run.Status)
	if run.Error != "" {
		fmt.Fprintf(a.outW, "error:   %s\n", run.Error)
	}

	messages := make([]string, len(run.Messages))
	for i, m := range run.Messages {
		messages[i] = fmt.Sprintf("[%s] %s", m.Severity, m.Text)
	}
	return logtable.Render(a.outW, messages)
}
