package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("HABITEX_DB", "/tmp/hx.db")
	t.Setenv("HABITEX_SEED", "42")
	t.Setenv("HABITEX_VERBOSE", "true")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, Config{DBPath: "/tmp/hx.db", Seed: 42, Verbose: true}, cfg)
}

func TestLoadDotEnvDoesNotOverrideEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("HABITEX_DB=/from/file.db\nHABITEX_SEED=7\n"), 0o600))
	t.Setenv("HABITEX_SEED", "9")
	// Registered so the value read from the file is cleared after the test.
	t.Setenv("HABITEX_DB", "")
	require.NoError(t, os.Unsetenv("HABITEX_DB"))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/from/file.db", cfg.DBPath)
	assert.Equal(t, int64(9), cfg.Seed)
}

func TestLoadRejectsBadSeed(t *testing.T) {
	t.Setenv("HABITEX_SEED", "lots")
	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
}

func TestRandIsSeeded(t *testing.T) {
	a := Config{Seed: 5}.Rand()
	b := Config{Seed: 5}.Rand()
	assert.Equal(t, a.Int63(), b.Int63())
}

func TestLoggerPrefix(t *testing.T) {
	assert.Equal(t, "[habitex] ", Config{}.Logger().Prefix())
}
