package app

import (
	"fmt"
	"io"
	"strings"

	"github.com/specialistvlad/horizon/internal/horizon"
	"github.com/specialistvlad/horizon/internal/issue"
	"github.com/specialistvlad/horizon/internal/logtable"
	"github.com/specialistvlad/horizon/internal/modeldata"
)

func (a *App) printOutcome(oc Outcome) error {
	return writeOutcome(a.outW, oc)
}

// writeOutcome prints a human-readable report for one configuration.
func writeOutcome(w io.Writer, oc Outcome) error {
	status := "ok"
	if oc.Err != nil {
		status = "failed"
	}
	fmt.Fprintf(w, "%s: %s\n", oc.Source, status)

	if warnings := oc.Report.Warnings(); len(warnings) > 0 {
		fmt.Fprintf(w, "warnings (%d):\n", len(warnings))
		if err := logtable.Render(w, warnings); err != nil {
			return err
		}
	}
	if errs := oc.Report.Errors(); len(errs) > 0 {
		fmt.Fprintf(w, "errors (%d):\n", len(errs))
		if err := logtable.Render(w, errs); err != nil {
			return err
		}
	}
	if oc.Err != nil {
		fmt.Fprintf(w, "error: %s\n", oc.Err)
	}
	if oc.Model != nil {
		writeModel(w, oc.Model)
	}
	fmt.Fprintln(w)
	return nil
}

func writeModel(w io.Writer, m *modeldata.Model) {
	for _, p := range horizon.Periods {
		years, ok := m.Horizon.Years(p)
		if !ok {
			continue
		}
		fmt.Fprintf(w, "  %-10s %s\n", p+":", describeYears(years))
	}
	fmt.Fprintf(w, "  %-10s %d years\n", "all:", len(m.Horizon.ValidYears()))
	fmt.Fprintf(w, "  time slices: %s [%s]\n", m.TimeSlices.Name, strings.Join(m.TimeSlices.Labels(), ", "))
	if len(m.Coverage.Clusters) > 0 {
		fmt.Fprintf(w, "  clusters: %s\n", strings.Join(m.Coverage.Clusters, ", "))
		if len(m.Coverage.Uncovered) > 0 {
			fmt.Fprintf(w, "  years outside clusters: %s\n", issue.FormatInts(m.Coverage.Uncovered))
		}
	}
	if m.Settings.Solver != "" {
		fmt.Fprintf(w, "  solver: %s\n", m.Settings.Solver)
	}
	fmt.Fprintf(w, "  log path: %s\n", m.Settings.LogPath)
}

func describeYears(years []int) string {
	if len(years) == 0 {
		return "none"
	}
	first, last := years[0], years[len(years)-1]
	if first == last {
		return fmt.Sprintf("%d", first)
	}
	return fmt.Sprintf("%d-%d (%d years)", first, last, len(years))
}
