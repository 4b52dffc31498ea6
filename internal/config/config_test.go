package config

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOrCreate_WritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", DefaultConfigFileName)

	cfg, err := LoadOrCreate(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.FileExists(t, path)

	again, err := LoadOrCreate(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, again)
}

func TestLoadOrCreate_OverridesAndNormalizes(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultConfigFileName)
	data := `
slot_backend = "file"
slot_path = "/tmp/slots"
log_level = "debug"

[keys]
quit = "x"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := LoadOrCreate(path)
	require.NoError(t, err)
	assert.Equal(t, BackendFile, cfg.SlotBackend)
	assert.Equal(t, "/tmp/slots", cfg.SlotPath)
	assert.Equal(t, DefaultSlotKey, cfg.SlotKey)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "x", cfg.Keys.Quit)
	assert.Equal(t, "a", cfg.Keys.Add)
}

func TestLoadOrCreate_EmptyValuesFallBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(`slot_path = ""
slot_key = ""
slot_backend = ""
`), 0o644))

	cfg, err := LoadOrCreate(path)
	require.NoError(t, err)
	assert.Equal(t, BackendSQLite, cfg.SlotBackend)
	assert.Equal(t, DefaultSlotKey, cfg.SlotKey)
	assert.NotEmpty(t, cfg.SlotPath)
}

func TestLoadOrCreate_UnknownBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(`slot_backend = "redis"`), 0o644))

	_, err := LoadOrCreate(path)
	assert.ErrorContains(t, err, "redis")
}

func TestLoadOrCreate_RejectsPathLikeSlotKey(t *testing.T) {
	for _, key := range []string{"../x", "a/b", `a\b`, "..", "."} {
		path := filepath.Join(t.TempDir(), DefaultConfigFileName)
		body := fmt.Sprintf("slot_backend = \"file\"\nslot_key = %q\n", key)
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

		_, err := LoadOrCreate(path)
		assert.ErrorContains(t, err, "slot_key", "key %q", key)
	}
}

func TestLoadOrCreate_BadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(`slot_backend = `), 0o644))

	_, err := LoadOrCreate(path)
	assert.Error(t, err)
}
