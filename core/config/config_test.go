package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "/nanograv/timing/releases/15y/toagen/releases/latest/", cfg.Release.Location)
	assert.Equal(t, ".tim", cfg.Release.Extension)
	assert.Equal(t, "fix", cfg.Document.Suffix)
	assert.Equal(t, "rt", cfg.Document.RoundtripSuffix)
	assert.Equal(t, 2, cfg.Document.Indent)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Database.Enabled)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 30, cfg.Storage.TimeoutSeconds)
}

func TestLoadConfig_Environment(t *testing.T) {
	t.Setenv("RELEASE_LOCATION", "s3://toas/releases/latest/")
	t.Setenv("DOCUMENT_INDENT", "4")
	t.Setenv("DATABASE_ENABLED", "true")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "s3://toas/releases/latest/", cfg.Release.Location)
	assert.Equal(t, 4, cfg.Document.Indent)
	assert.True(t, cfg.Database.Enabled)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("LOG_LEVEL=debug\nDOCUMENT_SUFFIX=new\n"), 0o644))
	t.Cleanup(func() {
		_ = os.Unsetenv("LOG_LEVEL")
		_ = os.Unsetenv("DOCUMENT_SUFFIX")
	})

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "new", cfg.Document.Suffix)
}

func TestConfig_Validate(t *testing.T) {
	valid := func() Config {
		cfg, err := LoadConfig(t.TempDir())
		require.NoError(t, err)
		return *cfg
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"Defaults", func(*Config) {}, true},
		{"Empty extension", func(c *Config) { c.Release.Extension = "" }, false},
		{"Empty suffix", func(c *Config) { c.Document.Suffix = "" }, false},
		{"Zero indent", func(c *Config) { c.Document.Indent = 0 }, false},
		{"Bad format", func(c *Config) { c.Log.Format = "xml" }, false},
		{"Bad driver ignored when disabled", func(c *Config) { c.Database.Driver = "oracle" }, true},
		{"Bad driver", func(c *Config) { c.Database.Enabled = true; c.Database.Driver = "oracle" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			if tt.ok {
				assert.NoError(t, cfg.Validate())
			} else {
				assert.Error(t, cfg.Validate())
			}
		})
	}
}
