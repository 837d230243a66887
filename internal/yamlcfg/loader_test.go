package yamlcfg

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/horizon/internal/ctxlog"
	"github.com/specialistvlad/horizon/internal/raw"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext() context.Context {
	return ctxlog.WithLogger(context.Background(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestLoader_Load(t *testing.T) {
	t.Parallel()

	t.Run("Success: YAML keeps key order and scalar kinds", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "model.yaml")
		doc := `
time_horizon:
  run: range(2020, 2030)
  warm_up: [2018, 2019]
  cool_down: ~
time_slices:
  name: hour
  slices: [1, 2.5, true, peak]
clusters:
  zeta: [2020]
  alpha: [2021]
extras: 1
`
		require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

		m, err := NewLoader().Load(testContext(), path)
		require.NoError(t, err)

		assert.Equal(t, path, m.Source)
		assert.Equal(t, []string{"run", "warm_up", "cool_down"}, m.TimeHorizon.Keys())
		run, _ := m.TimeHorizon.Get("run")
		assert.Equal(t, raw.String("range(2020, 2030)"), run)
		cool, _ := m.TimeHorizon.Get("cool_down")
		assert.True(t, cool.IsNull())

		slices, _ := m.TimeSlices.Get("slices")
		assert.Equal(t, []raw.Kind{raw.KindInt, raw.KindFloat, raw.KindBool, raw.KindString},
			[]raw.Kind{slices.Items()[0].Kind(), slices.Items()[1].Kind(), slices.Items()[2].Kind(), slices.Items()[3].Kind()})

		assert.Equal(t, []string{"zeta", "alpha"}, m.Clusters.Keys())
		assert.True(t, m.Settings.IsNull())
		assert.Equal(t, []string{"extras"}, m.Unknown)
	})

	t.Run("Success: JSON", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "model.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"time_horizon": {"run": [2020, 2021]}, "settings": {"solver": "glpk"}}`), 0o600))

		m, err := NewLoader().Load(testContext(), path)
		require.NoError(t, err)
		run, _ := m.TimeHorizon.Get("run")
		assert.True(t, run.Equal(raw.Ints(2020, 2021)))
		solver, _ := m.Settings.Get("solver")
		assert.Equal(t, raw.String("glpk"), solver)
	})

	t.Run("Success: anchors resolve", func(t *testing.T) {
		t.Parallel()
		m, err := NewLoader().Parse(testContext(), "anchors.yaml", []byte("time_horizon:\n  run: &years [2020, 2021]\nclusters:\n  all: *years\n"))
		require.NoError(t, err)
		all, _ := m.Clusters.Get("all")
		assert.True(t, all.Equal(raw.Ints(2020, 2021)))
	})

	t.Run("Success: empty document", func(t *testing.T) {
		t.Parallel()
		m, err := NewLoader().Parse(testContext(), "empty.yaml", nil)
		require.NoError(t, err)
		assert.True(t, m.TimeHorizon.IsNull())
	})

	t.Run("Failure: missing file", func(t *testing.T) {
		t.Parallel()
		_, err := NewLoader().Load(testContext(), filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read config file")
	})

	t.Run("Failure: malformed YAML", func(t *testing.T) {
		t.Parallel()
		_, err := NewLoader().Parse(testContext(), "bad.yaml", []byte("time_horizon: [1, 2\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse config file bad.yaml")
	})

	t.Run("Failure: top level is not a mapping", func(t *testing.T) {
		t.Parallel()
		_, err := NewLoader().Parse(testContext(), "list.yaml", []byte("- 1\n- 2\n"))
		require.Error(t, err)
	})
}
