package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoader(t *testing.T) {
	loader := NewLoader()
	assert.NotNil(t, loader)
	assert.NotNil(t, loader.v)
}

func TestLoaderLoad(t *testing.T) {
	t.Run("loads config from file", func(t *testing.T) {
		tmpDir := t.TempDir()
		configFile := filepath.Join(tmpDir, "config.yaml")

		content := `
iocsFile: /cds/data/iocs.json
templateFile: /cds/data/summary.tpl.html
outputFile: /tmp/summary.html
format: text
log:
  timestamps: true
`
		require.NoError(t, os.WriteFile(configFile, []byte(content), 0o644))

		loader := NewLoader()
		cfg, err := loader.Load(configFile)

		require.NoError(t, err)
		assert.Equal(t, "/cds/data/iocs.json", cfg.IOCsFile)
		assert.Equal(t, "/cds/data/summary.tpl.html", cfg.TemplateFile)
		assert.Equal(t, "/tmp/summary.html", cfg.OutputFile)
		assert.Equal(t, "text", cfg.Format)
		require.NotNil(t, cfg.Log.Timestamps)
		assert.True(t, *cfg.Log.Timestamps)
	})

	t.Run("returns defaults for missing file", func(t *testing.T) {
		tmpDir := t.TempDir()
		configFile := filepath.Join(tmpDir, "nonexistent.yaml")

		loader := NewLoader()
		cfg, err := loader.Load(configFile)

		require.NoError(t, err)
		assert.Equal(t, "iocs.json", cfg.IOCsFile)
		assert.Equal(t, "html", cfg.Format)
		assert.Empty(t, cfg.TemplateFile)
		assert.Nil(t, cfg.Log.Timestamps)
	})

	t.Run("loads from environment variables", func(t *testing.T) {
		t.Setenv("EPICS_USAGE_IOCS_FILE", "/env/iocs.json")
		t.Setenv("EPICS_USAGE_FORMAT", "none")

		tmpDir := t.TempDir()
		configFile := filepath.Join(tmpDir, "empty.yaml")
		require.NoError(t, os.WriteFile(configFile, []byte(""), 0o644))

		loader := NewLoader()
		cfg, err := loader.Load(configFile)

		require.NoError(t, err)
		assert.Equal(t, "/env/iocs.json", cfg.IOCsFile)
		assert.Equal(t, "none", cfg.Format)
	})

	t.Run("env vars override file values", func(t *testing.T) {
		t.Setenv("EPICS_USAGE_IOCS_FILE", "/env/iocs.json")

		tmpDir := t.TempDir()
		configFile := filepath.Join(tmpDir, "config.yaml")
		content := `iocsFile: /file/iocs.json`
		require.NoError(t, os.WriteFile(configFile, []byte(content), 0o644))

		loader := NewLoader()
		cfg, err := loader.Load(configFile)

		require.NoError(t, err)
		assert.Equal(t, "/env/iocs.json", cfg.IOCsFile)
	})

	t.Run("rejects malformed yaml", func(t *testing.T) {
		tmpDir := t.TempDir()
		configFile := filepath.Join(tmpDir, "config.yaml")
		require.NoError(t, os.WriteFile(configFile, []byte("iocsFile: [unclosed"), 0o644))

		loader := NewLoader()
		_, err := loader.Load(configFile)
		require.Error(t, err)
	})
}

func TestWriteDefault(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "config.yaml")

	require.NoError(t, WriteDefault(configFile))

	loader := NewLoader()
	cfg, err := loader.Load(configFile)
	require.NoError(t, err)
	assert.Equal(t, "iocs.json", cfg.IOCsFile)
	require.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	t.Run("accepts defaults", func(t *testing.T) {
		assert.NoError(t, DefaultConfig().Validate())
	})

	t.Run("rejects empty iocs file", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.IOCsFile = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("rejects directory iocs file", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.IOCsFile = "/cds/data/"
		assert.Error(t, cfg.Validate())
	})
}