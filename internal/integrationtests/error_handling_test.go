package integrationtests

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/specialistvlad/horizon/internal/app"
	"github.com/specialistvlad/horizon/internal/horizon"
	"github.com/specialistvlad/horizon/internal/modeldata"
	"github.com/specialistvlad/horizon/internal/testutil"
	"github.com/stretchr/testify/require"
)

// TestErrorHandling_HorizonErrorsAreLogged validates that every time_horizon
// error is written to the error log and reported, and that later sections
// are not validated.
func TestErrorHandling_HorizonErrorsAreLogged(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	model := `
time_horizon:
  run: ["range(2020, 2030)"]
  warm_up: [2018, 2019, x]
  cool_down: ["range(2029, 2032)"]
time_slices:
  slices: [1, 1]
`
	// --- Act ---
	result := testutil.RunIntegrationTest(t, map[string]string{"bad.yaml": model}, app.Config{})

	// --- Assert ---
	require.ErrorIs(t, result.Err, app.ErrValidationFailed)
	oc := result.Outcome(t, "bad.yaml")
	require.ErrorIs(t, oc.Err, modeldata.ErrTimeHorizon)

	errs := oc.Report.Errors()
	require.Equal(t, []string{
		"time definition can be a range (e.g. range(start,end,step)),an integer or a list of integers for 'warm_up'",
		"'run' and 'cool_down' periods overlap in years {2029}.",
	}, errs)
	for _, e := range errs {
		testutil.AssertErrorLogged(t, result, e)
	}
	require.NotContains(t, strings.Join(errs, "\n"), "duplicate", "time_slices must not be validated after a horizon failure")
	require.Contains(t, result.Output, "2 errors exist in the definition of time_horizon.")
}

// TestErrorHandling_MissingRunIsFatal validates that a model without a run
// period is rejected without writing an error log.
func TestErrorHandling_MissingRunIsFatal(t *testing.T) {
	t.Parallel()

	result := testutil.RunIntegrationTest(t, map[string]string{
		"norun.hcl": "time_horizon {\n  warm_up = [2020]\n}\n",
	}, app.Config{})

	require.Error(t, result.Err)
	require.ErrorIs(t, result.Outcome(t, "norun.hcl").Err, horizon.ErrEssentialSetMissing)
	require.NoFileExists(t, filepath.Join(result.LogDir, modeldata.ErrorLogFile))
}

// TestErrorHandling_OneBadFileDoesNotMaskOthers validates that every file in
// a directory is validated even when one of them fails.
func TestErrorHandling_OneBadFileDoesNotMaskOthers(t *testing.T) {
	t.Parallel()

	result := testutil.RunIntegrationTest(t, map[string]string{
		"a/ok.yaml":      "time_horizon:\n  run: [2030]\n",
		"b/clusters.yml": "time_horizon:\n  run: [2030]\nclusters:\n  c: [2031]\n",
	}, app.Config{})

	require.ErrorIs(t, result.Err, app.ErrValidationFailed)
	require.NoError(t, result.Outcome(t, "a/ok.yaml").Err)
	require.ErrorIs(t, result.Outcome(t, "b/clusters.yml").Err, modeldata.ErrClusters)
	testutil.AssertErrorLogged(t, result, "cluster 'c' has years ({2031}) that are not valid years.")
}
