package logging

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"jira_webhook_mock/internal/config"
)

func TestNewRespectsLevel(t *testing.T) {
	t.Setenv("GIN_MODE", "")

	logger, err := New(&config.Config{LogLevel: "warn"})
	require.NoError(t, err)
	require.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	require.True(t, logger.Core().Enabled(zapcore.WarnLevel))
}

func TestNewFallsBackToInfo(t *testing.T) {
	t.Setenv("GIN_MODE", "")

	logger, err := New(&config.Config{LogLevel: "chatty"})
	require.NoError(t, err)
	require.False(t, logger.Core().Enabled(zapcore.DebugLevel))
	require.True(t, logger.Core().Enabled(zapcore.InfoLevel))
}
