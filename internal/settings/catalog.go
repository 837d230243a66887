package settings

import (
	"os/exec"
	"strings"
)

// SolverCatalog reports the solvers available on this machine, upper-cased.
type SolverCatalog interface {
	Installed() []string
}

// StaticCatalog is a fixed solver list, e.g. from the --solvers flag.
type StaticCatalog []string

// Installed returns the catalog upper-cased and without blanks.
func (c StaticCatalog) Installed() []string {
	out := make([]string, 0, len(c))
	for _, s := range c {
		if s = strings.ToUpper(strings.TrimSpace(s)); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// solverExecutables maps a solver's command-line binary to its name.
var solverExecutables = []struct {
	binary string
	solver string
}{
	{"glpsol", "GLPK"},
	{"cbc", "CBC"},
	{"highs", "HIGHS"},
	{"scip", "SCIP"},
	{"cplex", "CPLEX"},
	{"gurobi_cl", "GUROBI"},
}

// PathCatalog detects solvers by looking for their executables on PATH.
type PathCatalog struct {
	// LookPath defaults to exec.LookPath.
	LookPath func(file string) (string, error)
}

// Installed returns the solvers whose binaries were found.
func (c PathCatalog) Installed() []string {
	look := c.LookPath
	if look == nil {
		look = exec.LookPath
	}
	var out []string
	for _, se := range solverExecutables {
		if _, err := look(se.binary); err == nil {
			out = append(out, se.solver)
		}
	}
	return out
}

// FreeSolvers is the order in which a default solver is chosen.
var FreeSolvers = []string{"GLPK", "CBC", "HIGHS", "SCIP"}

// DefaultSolver returns the first installed free solver.
func DefaultSolver(c SolverCatalog) (string, bool) {
	installed := c.Installed()
	for _, free := range FreeSolvers {
		for _, s := range installed {
			if s == free {
				return free, true
			}
		}
	}
	return "", false
}
