package app

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasklist/internal/config"
	"tasklist/internal/storage"
)

func testConfig(t *testing.T, backend string) config.Config {
	cfg := config.Default()
	cfg.SlotBackend = backend
	cfg.SlotPath = filepath.Join(t.TempDir(), "data")
	if backend == config.BackendSQLite {
		cfg.SlotPath = filepath.Join(cfg.SlotPath, "tasks.db")
	}
	return cfg
}

func TestNew_BackendsPersistAcrossRuns(t *testing.T) {
	for _, backend := range []string{config.BackendSQLite, config.BackendFile} {
		t.Run(backend, func(t *testing.T) {
			cfg := testConfig(t, backend)

			a, err := New(cfg, Options{})
			require.NoError(t, err)
			created := a.Store.Create("T1", "d")
			require.NoError(t, a.Close())

			b, err := New(cfg, Options{})
			require.NoError(t, err)
			defer b.Close()
			assert.Equal(t, 1, b.Store.Len())
			got, err := b.Store.Get(created.ID)
			require.NoError(t, err)
			assert.Equal(t, created, got)
		})
	}
}

func TestNew_SingleInstance(t *testing.T) {
	cfg := testConfig(t, config.BackendSQLite)

	a, err := New(cfg, Options{})
	require.NoError(t, err)
	defer a.Close()

	_, err = New(cfg, Options{})
	assert.ErrorIs(t, err, storage.ErrLocked)
}

func TestNew_UnreadableSlotRefusesToStart(t *testing.T) {
	cfg := testConfig(t, config.BackendFile)
	blocker := filepath.Join(cfg.SlotPath, cfg.SlotKey+".json")
	require.NoError(t, os.MkdirAll(blocker, 0o755))

	_, err := New(cfg, Options{})
	require.Error(t, err)
	assert.NotErrorIs(t, err, storage.ErrLocked)
	assert.DirExists(t, blocker)

	require.NoError(t, os.Remove(blocker))
	a, err := New(cfg, Options{})
	require.NoError(t, err)
	defer a.Close()
	assert.Equal(t, 0, a.Store.Len())
}

func TestNew_DebugLogsToFallback(t *testing.T) {
	cfg := testConfig(t, config.BackendFile)
	var buf bytes.Buffer

	a, err := New(cfg, Options{Debug: true, LogFallback: &buf})
	require.NoError(t, err)
	defer a.Close()

	assert.Contains(t, buf.String(), "slot opened")
}

func TestNew_BadLogLevel(t *testing.T) {
	cfg := testConfig(t, config.BackendFile)
	cfg.LogLevel = "loud"

	_, err := New(cfg, Options{})
	assert.Error(t, err)
}
