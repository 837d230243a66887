package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/specialistvlad/horizon/internal/ctxlog"
	"github.com/specialistvlad/horizon/internal/fsutil"
	"github.com/specialistvlad/horizon/internal/modeldata"
	"github.com/specialistvlad/horizon/internal/reportstore"
)

// ErrValidationFailed is returned by Run when at least one configuration
// could not be built.
var ErrValidationFailed = errors.New("validation failed")

// Outcome is the result of validating one configuration file.
type Outcome struct {
	Source string
	Model  *modeldata.Model
	Report *modeldata.Report
	Err    error
}

// Run validates every configuration file found under the configured paths,
// prints a report for each, and records them in the history when enabled.
func (a *App) Run(ctx context.Context) ([]Outcome, error) {
	ctx = a.withLogger(ctx)
	logger := ctxlog.FromContext(ctx)
	logger.Debug("App.Run method started.")

	if len(a.config.Paths) == 0 {
		return nil, errors.New("at least one configuration path is required")
	}

	files, err := fsutil.ResolveInputs(a.config.Paths, a.loader.Extensions()...)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		logger.Warn("No configuration files found.", "paths", a.config.Paths)
		return nil, fmt.Errorf("no configuration files found in %v", a.config.Paths)
	}
	logger.Debug("Configuration files discovered.", "count", len(files))

	var store *reportstore.Store
	if a.config.HistoryDB != "" {
		store, err = reportstore.Open(ctx, a.config.HistoryDB)
		if err != nil {
			return nil, fmt.Errorf("failed to open history: %w", err)
		}
		defer store.Close()
	}

	outcomes := make([]Outcome, 0, len(files))
	failed := 0
	for _, file := range files {
		started := time.Now()
		oc := a.validateFile(ctx, file)
		outcomes = append(outcomes, oc)
		if oc.Err != nil {
			failed++
		}

		if err := a.printOutcome(oc); err != nil {
			return outcomes, fmt.Errorf("failed to write report: %w", err)
		}

		if store != nil {
			run := reportstore.NewRun(oc.Source, started, oc.Report.Diags, oc.Err)
			id, err := store.Record(ctx, run)
			if err != nil {
				return outcomes, fmt.Errorf("failed to record history: %w", err)
			}
			logger.Debug("Validation recorded.", "source", oc.Source, "run_id", id)
		}
	}

	logger.Info("Validation finished.", "files", len(files), "failed", failed)
	if failed > 0 {
		return outcomes, fmt.Errorf("%w: %d of %d configurations have errors", ErrValidationFailed, failed, len(files))
	}
	return outcomes, nil
}

func (a *App) validateFile(ctx context.Context, path string) Outcome {
	logger := ctxlog.FromContext(ctx)

	m, err := a.loader.Load(ctx, path)
	if err != nil {
		logger.Error("Failed to load configuration.", "source", path, "error", err)
		return Outcome{Source: path, Report: &modeldata.Report{Source: path}, Err: err}
	}

	model, report, err := a.builder.Build(ctx, m)
	for _, w := range report.Warnings() {
		logger.Warn("Validation warning.", "source", path, "message", w)
	}
	if err != nil {
		logger.Error("Validation failed.", "source", path, "error", err)
	}
	return Outcome{Source: path, Model: model, Report: report, Err: err}
}
