package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	} {
		got, err := ParseLevel(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseLevel("chatty")
	assert.Error(t, err)
}

func TestNew_FallbackWriter(t *testing.T) {
	var buf bytes.Buffer
	logger, closer, err := New(slog.LevelWarn, "", &buf)
	require.NoError(t, err)
	defer closer.Close()

	logger.Info("hidden")
	logger.Warn("shown", "id", 7)

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "id=7")
}

func TestNew_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "tasks.log")
	var buf bytes.Buffer
	logger, closer, err := New(slog.LevelDebug, path, &buf)
	require.NoError(t, err)

	logger.Debug("to file")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
	assert.Empty(t, buf.String())
}
