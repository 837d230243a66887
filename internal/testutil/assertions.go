package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/specialistvlad/horizon/internal/modeldata"
	"github.com/stretchr/testify/require"
)

// AssertErrorLogged checks that the error log in the harness log directory
// contains msg.
func AssertErrorLogged(t *testing.T, result *HarnessResult, msg string) {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(result.LogDir, modeldata.ErrorLogFile))
	require.NoError(t, err, "expected an error log in %s", result.LogDir)
	require.True(t, strings.Contains(string(data), msg),
		"error log does not mention %q:\n%s", msg, data)
}
