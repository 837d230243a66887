package app

import (
	"bytes"
	"os"
	"sync"
	"testing"
)

// SafeBuffer is a thread-safe buffer for capturing output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// SetupAppTest creates a new app instance for system testing. It returns the
// app with its report and log buffers. Logs are echoed to the test output
// when HORIZON_TEST_LOGS=true.
func SetupAppTest(t *testing.T, cfg Config) (*App, *SafeBuffer, *SafeBuffer) {
	t.Helper()

	cfg.LogLevel = "debug"
	if len(cfg.Solvers) == 0 {
		cfg.Solvers = []string{"GLPK"}
	}
	if cfg.LogPath == "" {
		cfg.LogPath = t.TempDir()
	}
	appConfig, err := NewConfig(cfg)
	if err != nil {
		t.Fatalf("invalid test config: %v", err)
	}

	out, logs := &SafeBuffer{}, &SafeBuffer{}
	testApp := NewApp(out, logs, appConfig, NewLoader())

	t.Cleanup(func() {
		if os.Getenv("HORIZON_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logs.String())
		}
	})

	return testApp, out, logs
}
