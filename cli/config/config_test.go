package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
store: /tmp/contacts.yaml
autosave: true
metrics_file: /tmp/addressbook.prom
log:
  level: debug
  format: json
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/contacts.yaml", cfg.Store)
	assert.True(t, cfg.Autosave)
	assert.Equal(t, "/tmp/addressbook.prom", cfg.MetricsFile)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadFileKeepsDefaultsForMissingKeys(t *testing.T) {
	cfg, err := Load(writeConfig(t, "autosave: true\n"))
	require.NoError(t, err)

	assert.Equal(t, DefaultConfig().Store, cfg.Store)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.True(t, cfg.Autosave)
}

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadFindsFileInConfigDir(t *testing.T) {
	t.Chdir(t.TempDir())
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	require.NoError(t, os.MkdirAll(filepath.Join(xdg, "addressbook"), 0700))
	require.NoError(t, os.WriteFile(filepath.Join(xdg, "addressbook", "config.yaml"), []byte("store: found.json\n"), 0600))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "found.json", cfg.Store)
}

func TestLoadEnvironmentOverridesFile(t *testing.T) {
	t.Setenv("ADDRESSBOOK_STORE", "env.db")
	t.Setenv("ADDRESSBOOK_LOG_LEVEL", "warn")

	cfg, err := Load(writeConfig(t, "store: file.db\n"))
	require.NoError(t, err)
	assert.Equal(t, "env.db", cfg.Store)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadMissingExplicitFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadInvalidFileFails(t *testing.T) {
	_, err := Load(writeConfig(t, "store: [\n"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	assert.NoError(t, cfg.Validate())

	cfg.Store = ""
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Log.Format = "xml"
	assert.Error(t, cfg.Validate())
}
