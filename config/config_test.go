package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
}

func TestLoadDefaults(t *testing.T) {
	resetViper(t)

	cfg := NewConfig()
	require.NoError(t, cfg.Load())

	assert.Equal(t, SourceCSV, cfg.DatasetSource)
	assert.Equal(t, "github_dataset.csv", cfg.DatasetPath)
	assert.Equal(t, ":8501", cfg.ListenAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 640, cfg.ChartWidth)
	assert.Equal(t, 400, cfg.ChartHeight)
}

func TestLoadFromEnvironment(t *testing.T) {
	resetViper(t)
	t.Setenv("DATASET_SOURCE", "postgres")
	t.Setenv("DATASET_PATH", "repositories")
	t.Setenv("LISTEN_ADDR", "127.0.0.1:9000")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")

	cfg := NewConfig()
	require.NoError(t, cfg.Load())

	assert.Equal(t, SourcePostgres, cfg.DatasetSource)
	assert.Equal(t, "repositories", cfg.DatasetPath)
	assert.Equal(t, "127.0.0.1:9000", cfg.ListenAddr)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
}

func TestLoadFromEnvFile(t *testing.T) {
	resetViper(t)
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("DATASET_PATH=from_file.csv\nLOG_LEVEL=debug\n"), 0o600))
	t.Setenv("ENV_FILE", envFile)
	t.Cleanup(func() {
		os.Unsetenv("DATASET_PATH")
		os.Unsetenv("LOG_LEVEL")
	})

	cfg := NewConfig()
	require.NoError(t, cfg.Load())

	assert.Equal(t, "from_file.csv", cfg.DatasetPath)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "unknown source", env: map[string]string{"DATASET_SOURCE": "s3"}},
		{name: "bad timeout", env: map[string]string{"SHUTDOWN_TIMEOUT": "soon"}},
		{name: "zero width", env: map[string]string{"CHART_WIDTH": "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetViper(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			assert.Error(t, NewConfig().Load())
		})
	}
}
