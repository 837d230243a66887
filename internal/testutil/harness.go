// Package testutil provides a harness for end-to-end tests that validate
// configuration files through the full application stack.
package testutil

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/horizon/internal/app"
	"github.com/stretchr/testify/require"
)

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	Dir       string
	LogDir    string
	Output    string
	LogOutput string
	Outcomes  []app.Outcome
	Err       error
}

// Outcome returns the outcome for the file at name, relative to the harness
// directory.
func (r *HarnessResult) Outcome(t *testing.T, name string) app.Outcome {
	t.Helper()
	want := filepath.Join(r.Dir, name)
	for _, oc := range r.Outcomes {
		if oc.Source == want {
			return oc
		}
	}
	require.FailNow(t, "no outcome recorded", "file %s", name)
	return app.Outcome{}
}

// RunIntegrationTest writes files (relative path to content) into a temporary
// directory and validates that directory with the given base config.
func RunIntegrationTest(t *testing.T, files map[string]string, cfg app.Config) *HarnessResult {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	if cfg.LogPath == "" {
		cfg.LogPath = filepath.Join(t.TempDir(), "logs")
	}
	cfg.Paths = []string{dir}

	testApp, out, logs := app.SetupAppTest(t, cfg)
	outcomes, err := testApp.Run(context.Background())

	return &HarnessResult{
		Dir:       dir,
		LogDir:    cfg.LogPath,
		Output:    out.String(),
		LogOutput: logs.String(),
		Outcomes:  outcomes,
		Err:       err,
	}
}
