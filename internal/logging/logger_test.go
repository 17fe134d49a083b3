package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "relocate.log")

	logger, err := New(FileConfig("debug", path, false))
	require.NoError(t, err)

	logger.Info("hello", zap.String("view", "visa"))
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"hello"`)
	assert.Contains(t, string(data), `"view":"visa"`)
}

func TestNewRejectsBadLevel(t *testing.T) {
	_, err := New(Config{Level: "loud", OutputPaths: []string{"stdout"}})
	assert.Error(t, err)

	assert.NotNil(t, NewOrNop(Config{Level: "loud"}))
}

func TestRetryLogger(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	rl := NewRetryLogger(zap.New(core))

	rl.Debug("performing request", "method", "GET")
	rl.Warn("retrying", "attempt", 2)
	rl.Error("giving up")
	rl.Info("done")

	require.Equal(t, 4, logs.Len())
	first := logs.All()[0]
	assert.Equal(t, "performing request", first.Message)
	assert.Equal(t, "http", first.LoggerName)
	assert.Equal(t, "GET", first.ContextMap()["method"])
}
