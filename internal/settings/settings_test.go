package settings

import (
	"errors"
	"testing"

	"github.com/specialistvlad/horizon/internal/raw"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathCatalog(t *testing.T) {
	t.Parallel()

	found := map[string]bool{"cbc": true, "gurobi_cl": true}
	c := PathCatalog{LookPath: func(file string) (string, error) {
		if found[file] {
			return "/usr/bin/" + file, nil
		}
		return "", errors.New("not found")
	}}
	assert.Equal(t, []string{"CBC", "GUROBI"}, c.Installed())

	def, ok := DefaultSolver(c)
	require.True(t, ok)
	assert.Equal(t, "CBC", def)
}

func TestDefaultSolver_PrefersFreeSolverOrder(t *testing.T) {
	t.Parallel()

	def, ok := DefaultSolver(StaticCatalog{"scip", " glpk ", "cplex"})
	require.True(t, ok)
	assert.Equal(t, "GLPK", def)

	_, ok = DefaultSolver(StaticCatalog{"cplex"})
	assert.False(t, ok)
}

func TestValidate(t *testing.T) {
	t.Parallel()
	v := NewValidator(StaticCatalog{"GLPK", "CPLEX"}, "/tmp/logs")

	t.Run("Success: absent section uses defaults silently", func(t *testing.T) {
		t.Parallel()
		res := v.Validate(raw.Null)
		assert.Empty(t, res.Diags)
		assert.Equal(t, Settings{Solver: "GLPK", LogPath: "/tmp/logs", SolverDefaulted: true, LogPathDefaulted: true}, res.Settings)
	})

	t.Run("Success: solver is case-insensitive", func(t *testing.T) {
		t.Parallel()
		res := v.Validate(raw.Map(raw.KV("solver", raw.String("cplex")), raw.KV("log_path", raw.String("out"))))
		assert.Empty(t, res.Diags)
		assert.Equal(t, "CPLEX", res.Settings.Solver)
		assert.Equal(t, "out", res.Settings.LogPath)
		assert.False(t, res.Settings.LogPathDefaulted)
	})

	t.Run("Failure: unknown solver falls back", func(t *testing.T) {
		t.Parallel()
		res := v.Validate(raw.Map(raw.KV("solver", raw.String("dummy"))))
		assert.Equal(t, []string{"dummy is not a valid solver or not installed on your machine. Default solver (GLPK) is used."}, res.Warnings())
		assert.Equal(t, "GLPK", res.Settings.Solver)
		assert.False(t, res.Diags.HasErrors())
	})

	t.Run("Failure: log_path must be a string", func(t *testing.T) {
		t.Parallel()
		res := v.Validate(raw.Map(raw.KV("log_path", raw.Int(12))))
		assert.Equal(t, []string{"log_path should be str. Default log_path (/tmp/logs) is used."}, res.Warnings())
		assert.Equal(t, "/tmp/logs", res.Settings.LogPath)
	})

	t.Run("Failure: extra keys warn", func(t *testing.T) {
		t.Parallel()
		res := v.Validate(raw.Map(raw.KV("threads", raw.Int(4)), raw.KV("solver", raw.String("glpk"))))
		assert.Equal(t, []string{"Following keys in the model settings are not valid and are ignored: \n{'threads'}"}, res.Warnings())
	})
}

func TestValidate_NoSolverInstalled(t *testing.T) {
	t.Parallel()

	t.Run("Success: absent section", func(t *testing.T) {
		t.Parallel()
		res := NewValidator(StaticCatalog{}, "logs").Validate(raw.Null)
		require.Len(t, res.Warnings(), 1)
		assert.Empty(t, res.Settings.Solver)
	})

	t.Run("Failure: configured solver gives a single warning", func(t *testing.T) {
		t.Parallel()
		res := NewValidator(StaticCatalog{}, "logs").Validate(raw.Map(raw.KV("solver", raw.String("cplex"))))
		assert.Equal(t, []string{"no supported solver is installed on your machine. The solver is left unset."}, res.Warnings())
		assert.Empty(t, res.Settings.Solver)
		assert.True(t, res.Settings.SolverDefaulted)
	})
}
