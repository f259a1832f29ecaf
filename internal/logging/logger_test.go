package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew_WritesJSONEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "client.log")

	logger, closeFn, err := New(path, false)
	require.NoError(t, err)

	logger.Info("login succeeded", zap.String("user", "Jane"))
	closeFn()

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	line := strings.TrimSpace(string(raw))
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &entry))
	assert.Equal(t, "login succeeded", entry["msg"])
	assert.Equal(t, "Jane", entry["user"])
}

func TestNew_VerboseEnablesDebug(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.log")

	logger, closeFn, err := New(path, true)
	require.NoError(t, err)

	logger.Debug("debug visible")
	closeFn()

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "debug visible")
}

func TestNew_DebugSuppressedByDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.log")

	logger, closeFn, err := New(path, false)
	require.NoError(t, err)

	logger.Debug("should not appear")
	closeFn()

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "should not appear")
}
