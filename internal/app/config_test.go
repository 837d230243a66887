package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	t.Parallel()

	t.Run("Success: defaults and normalization", func(t *testing.T) {
		t.Parallel()
		cfg, err := NewConfig(Config{Paths: []string{"m.yaml"}, LogLevel: "DEBUG", Solvers: []string{"glpk, cbc", " ", "highs"}})
		require.NoError(t, err)
		assert.Equal(t, "text", cfg.LogFormat)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, []string{"glpk", "cbc", "highs"}, cfg.Solvers)
	})

	t.Run("Failure: log format", func(t *testing.T) {
		t.Parallel()
		_, err := NewConfig(Config{LogFormat: "xml"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log-format")
	})

	t.Run("Failure: log level", func(t *testing.T) {
		t.Parallel()
		_, err := NewConfig(Config{LogLevel: "trace"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log-level")
	})
}

func TestNewLogger(t *testing.T) {
	t.Parallel()

	var buf SafeBuffer
	logger := newLogger("warn", "json", &buf)
	logger.Info("hidden")
	logger.Warn("shown", "source", "m.yaml")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
	assert.Contains(t, buf.String(), `"source":"m.yaml"`)
}
