// Package modeldata assembles a validated model from a configuration
// document. It runs the section validators in dependency order, collects
// their warnings, and stops at the first section that has errors.
package modeldata

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/horizon/internal/cluster"
	"github.com/specialistvlad/horizon/internal/config"
	"github.com/specialistvlad/horizon/internal/ctxlog"
	"github.com/specialistvlad/horizon/internal/horizon"
	"github.com/specialistvlad/horizon/internal/issue"
	"github.com/specialistvlad/horizon/internal/logtable"
	"github.com/specialistvlad/horizon/internal/settings"
	"github.com/specialistvlad/horizon/internal/timeslice"
)

// Model is the validated time domain of one configuration document.
type Model struct {
	Source     string
	Settings   settings.Settings
	Horizon    horizon.Horizon
	TimeSlices timeslice.TimeSlices
	Clusters   []cluster.Cluster
	Coverage   cluster.Coverage
}

// Report collects every diagnostic produced while building, in order.
type Report struct {
	Source string
	Diags  hcl.Diagnostics
}

func (r *Report) Errors() []string { return issue.Errors(r.Diags) }
func (r *Report) Warnings() []string { return issue.Warnings(r.Diags) }

// Builder validates configuration models.
type Builder struct {
	settings *settings.Validator
}

// NewBuilder creates a Builder that validates settings with v.
func NewBuilder(v *settings.Validator) *Builder {
	return &Builder{settings: v}
}

// Build validates m. The returned Report is never nil, even when an error
// is returned. A missing run period yields an error matching
// horizon.ErrEssentialSetMissing. Errors in time_horizon halt the build
// before the later sections run; errors in time_slices and clusters are
// collected together. Either way the result is a *SectionError returned
// after the error log has been written.
func (b *Builder) Build(ctx context.Context, m *config.Model) (*Model, *Report, error) {
	logger := ctxlog.FromContext(ctx).With("source", m.Source)
	logger.Debug("Model build started.")

	report := &Report{Source: m.Source}
	out := &Model{Source: m.Source}

	if len(m.Unknown) > 0 {
		report.Diags = append(report.Diags, issue.Warning(issue.UnknownKeys, "model",
			"Following sections in the model configuration are not valid and are ignored: \n"+issue.FormatKeys(m.Unknown)))
	}

	st := b.settings.Validate(m.Settings)
	report.Diags = append(report.Diags, st.Diags...)
	out.Settings = st.Settings
	logger.Debug("Settings validated.", "solver", st.Settings.Solver, "log_path", st.Settings.LogPath)

	hr, err := horizon.Validate(m.TimeHorizon)
	if err != nil {
		logger.Debug("Model build aborted.", "error", err)
		return nil, report, err
	}
	report.Diags = append(report.Diags, hr.Diags...)
	if hr.HasErrors() {
		var failed sectionFailures
		failed.add(horizon.Section, ErrTimeHorizon, hr.Errors())
		return nil, report, b.halt(ctx, failed, out.Settings.LogPath)
	}
	out.Horizon = hr.Horizon
	logger.Debug("Time horizon validated.", "years", len(hr.Horizon.AllPeriods))

	// Slices and clusters are both checked before halting.
	var failed sectionFailures

	ts := timeslice.Validate(m.TimeSlices)
	report.Diags = append(report.Diags, ts.Diags...)
	if ts.HasErrors() {
		failed.add(timeslice.Section, ErrTimeSlices, ts.Errors())
	} else {
		out.TimeSlices = ts.TimeSlices
		logger.Debug("Time slices validated.", "name", ts.TimeSlices.Name, "count", len(ts.TimeSlices.Slices))
	}

	years := hr.Horizon.ValidYears()
	cr := cluster.Validate(m.Clusters, years)
	report.Diags = append(report.Diags, cr.Diags...)
	if cr.HasErrors() {
		failed.add(cluster.Section, ErrClusters, cr.Errors())
	} else {
		out.Clusters = cr.Clusters
		out.Coverage = cluster.ComputeUncoveredYears(cr.Clusters, years)
		logger.Debug("Clusters validated.", "clusters", len(cr.Clusters), "uncovered_years", len(out.Coverage.Uncovered))
	}

	if len(failed.sections) > 0 {
		return nil, report, b.halt(ctx, failed, out.Settings.LogPath)
	}

	logger.Debug("Model build finished.", "warnings", len(report.Warnings()))
	return out, report, nil
}

type sectionFailures struct {
	sections  []string
	sentinels []error
	errs      []string
}

func (f *sectionFailures) add(section string, sentinel error, errs []string) {
	f.sections = append(f.sections, section)
	f.sentinels = append(f.sentinels, sentinel)
	f.errs = append(f.errs, errs...)
}

// halt writes the errors of every failed section to one error log and
// returns the matching *SectionError.
func (b *Builder) halt(ctx context.Context, f sectionFailures, logDir string) error {
	logger := ctxlog.FromContext(ctx)
	sectionErr := &SectionError{Sections: f.sections, LogDir: logDir, Errors: f.errs, sentinels: f.sentinels}

	path := filepath.Join(logDir, ErrorLogFile)
	if werr := logtable.Write(path, f.errs); werr != nil {
		logger.Error("Failed to write error log.", "path", path, "error", werr)
		return errors.Join(sectionErr, werr)
	}
	logger.Debug("Error log written.", "path", path, "errors", len(f.errs))
	return sectionErr
}
