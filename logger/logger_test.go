package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestInitialize(t *testing.T) {
	t.Cleanup(func() { Logger = nil })

	tests := []struct {
		name    string
		level   string
		enabled zapcore.Level
		wantErr bool
	}{
		{name: "debug", level: "debug", enabled: zapcore.DebugLevel},
		{name: "info", level: "info", enabled: zapcore.InfoLevel},
		{name: "warn", level: "warn", enabled: zapcore.WarnLevel},
		{name: "invalid", level: "loud", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Logger = nil
			err := Initialize(tt.level)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, Logger)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, Logger)
			assert.True(t, Logger.Core().Enabled(tt.enabled))
			if tt.enabled > zapcore.DebugLevel {
				assert.False(t, Logger.Core().Enabled(tt.enabled-1))
			}
		})
	}
}

func TestGetLoggerFallback(t *testing.T) {
	Logger = nil
	assert.NotNil(t, GetLogger())
	assert.NotPanics(t, func() {
		Info("not initialised")
		Warn("not initialised")
		With().Debug("not initialised")
	})
}
