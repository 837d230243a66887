// Package settings validates the model's run settings, falling back to
// defaults and warning whenever a configured value cannot be used.
package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/horizon/internal/issue"
	"github.com/specialistvlad/horizon/internal/raw"
)

// Section is the configuration section validated by this package.
const Section = "settings"

var keys = []string{"solver", "log_path"}

// Settings holds the effective settings after validation.
type Settings struct {
	Solver  string
	LogPath string

	SolverDefaulted  bool
	LogPathDefaulted bool
}

// Result is the outcome of Validate. Settings problems are only ever
// warnings.
type Result struct {
	Diags    hcl.Diagnostics
	Settings Settings
}

func (r Result) Warnings() []string { return issue.Warnings(r.Diags) }

// DefaultLogPath is the logs directory under the working directory.
func DefaultLogPath() string {
	wd, err := os.Getwd()
	if err != nil {
		return "logs"
	}
	return filepath.Join(wd, "logs")
}

// Validator checks settings against a solver catalog.
type Validator struct {
	catalog        SolverCatalog
	defaultLogPath string
}

// NewValidator creates a Validator. An empty defaultLogPath means
// DefaultLogPath().
func NewValidator(catalog SolverCatalog, defaultLogPath string) *Validator {
	if defaultLogPath == "" {
		defaultLogPath = DefaultLogPath()
	}
	return &Validator{catalog: catalog, defaultLogPath: defaultLogPath}
}

// Validate resolves solver and log_path from a settings mapping. A null value
// means the section is absent and every setting takes its default.
func (v *Validator) Validate(in raw.Value) Result {
	var diags hcl.Diagnostics
	installed := v.catalog.Installed()
	defSolver, hasDefault := DefaultSolver(v.catalog)

	if !in.IsNull() && in.Kind() != raw.KindMap {
		diags = append(diags, issue.Warning(issue.InvalidSetting, Section,
			"settings should be defined as a mapping. Default settings are used."))
		in = raw.Null
	}

	s := Settings{Solver: defSolver, LogPath: v.defaultLogPath, SolverDefaulted: true, LogPathDefaulted: true}

	if sv, ok := in.Get("solver"); ok && !sv.IsNull() {
		name, isStr := sv.AsString()
		if isStr && slices.Contains(installed, strings.ToUpper(name)) {
			s.Solver, s.SolverDefaulted = strings.ToUpper(name), false
		} else if hasDefault {
			diags = append(diags, issue.Warning(issue.InvalidSetting, Section+": solver",
				fmt.Sprintf("%s is not a valid solver or not installed on your machine. Default solver (%s) is used.", sv, defSolver)))
		}
	}
	if !hasDefault && s.SolverDefaulted {
		diags = append(diags, issue.Warning(issue.InvalidSetting, Section+": solver",
			"no supported solver is installed on your machine. The solver is left unset."))
	}

	if lp, ok := in.Get("log_path"); ok && !lp.IsNull() {
		if path, isStr := lp.AsString(); isStr {
			s.LogPath, s.LogPathDefaulted = path, false
		} else {
			diags = append(diags, issue.Warning(issue.InvalidSetting, Section+": log_path",
				fmt.Sprintf("log_path should be str. Default log_path (%s) is used.", v.defaultLogPath)))
		}
	}

	if extra := issue.ExtraKeys(in.Keys(), keys...); len(extra) > 0 {
		diags = append(diags, issue.Warning(issue.UnknownKeys, Section,
			"Following keys in the model settings are not valid and are ignored: \n"+issue.FormatKeys(extra)))
	}

	return Result{Diags: diags, Settings: s}
}
