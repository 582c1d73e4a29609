package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoadFromDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadFrom(dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "journal.db"), cfg.DBPath)
	assert.Equal(t, "2006-01-02 15:04:05", cfg.TimeLayout)
	assert.Equal(t, DefaultListLimit, cfg.ListLimit)
	assert.Equal(t, DefaultExportTemplate, cfg.ExportTemplate)
}

func TestLoadFromTOML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "config.toml"), `
db_path = "/tmp/verse.db"
time_layout = "02 Jan 15:04"
list_limit = 5
`)
	writeFile(t, filepath.Join(dir, "export_template.md"), "{{ship}}\n")

	cfg, err := LoadFrom(dir)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/verse.db", cfg.DBPath)
	assert.Equal(t, "02 Jan 15:04", cfg.TimeLayout)
	assert.Equal(t, 5, cfg.ListLimit)
	assert.Equal(t, "{{ship}}\n", cfg.ExportTemplate)
}

func TestEnvOverridesTOML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "config.toml"), `db_path = "/tmp/from-file.db"
list_limit = 5
`)
	t.Setenv("SCJOURNAL_DB", "/tmp/from-env.db")
	t.Setenv("SCJOURNAL_LIST_LIMIT", "0")

	cfg, err := LoadFrom(dir)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/from-env.db", cfg.DBPath)
	assert.Equal(t, 0, cfg.ListLimit)
}

func TestLoadFromErrors(t *testing.T) {
	t.Run("malformed toml", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "config.toml"), "db_path = [unterminated")

		_, err := LoadFrom(dir)
		assert.ErrorContains(t, err, "config.toml")
	})

	t.Run("bad env value", func(t *testing.T) {
		t.Setenv("SCJOURNAL_LIST_LIMIT", "lots")

		_, err := LoadFrom(t.TempDir())
		assert.ErrorContains(t, err, "parse env:")
	})
}
