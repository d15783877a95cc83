package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg, err := LoadFrom(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080", cfg.API.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.API.Timeout)
	assert.Equal(t, 2, cfg.API.Retries)
	assert.Equal(t, 10, cfg.List.PageSize)
	assert.Equal(t, 500*time.Millisecond, cfg.List.Debounce)
	assert.Equal(t, 20, cfg.Reports.PageSize)
	assert.Equal(t, 5555, cfg.Studio.Port)
	assert.Equal(t, "exports", cfg.ExportPath)
	require.NoError(t, cfg.Validate())
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	content := `{
  "api": {"base_url": "https://estoque.example.com/api/", "timeout": "3s", "retries": -4},
  "list": {"page_size": 25},
  "log": {"level": "debug", "format": "json"}
}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	v := viper.New()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	cfg, err := LoadFrom(v)
	require.NoError(t, err)

	assert.Equal(t, "https://estoque.example.com/api", cfg.API.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.API.Timeout)
	assert.Equal(t, 0, cfg.API.Retries)
	assert.Equal(t, 25, cfg.List.PageSize)
	require.NoError(t, cfg.Validate())

	logger := cfg.NewLogger()
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logger.Formatter)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("STOCKPANEL_LIST_PAGE_SIZE", "40")

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg, err := LoadFrom(v)
	require.NoError(t, err)
	assert.Equal(t, 40, cfg.List.PageSize)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg, err := LoadFrom(viper.New())
		require.NoError(t, err)
		return cfg
	}

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad scheme", func(c *Config) { c.API.BaseURL = "ftp://host" }},
		{"no host", func(c *Config) { c.API.BaseURL = "http://" }},
		{"zero timeout", func(c *Config) { c.API.Timeout = 0 }},
		{"zero page size", func(c *Config) { c.List.PageSize = 0 }},
		{"zero report size", func(c *Config) { c.Reports.PageSize = 0 }},
		{"negative debounce", func(c *Config) { c.List.Debounce = -time.Second }},
		{"empty export path", func(c *Config) { c.ExportPath = "" }},
		{"unknown level", func(c *Config) { c.Log.Level = "loud" }},
		{"unknown format", func(c *Config) { c.Log.Format = "xml" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestAPIToken(t *testing.T) {
	cfg, err := LoadFrom(viper.New())
	require.NoError(t, err)

	t.Setenv("STOCKPANEL_API_TOKEN", "  s3cret ")
	assert.Equal(t, "s3cret", cfg.APIToken())

	cfg.API.TokenEnv = ""
	assert.Empty(t, cfg.APIToken())
}

func TestIsInitialized(t *testing.T) {
	dir := t.TempDir()
	originalDir, err := os.Getwd()
	require.NoError(t, err)
	defer os.Chdir(originalDir)
	require.NoError(t, os.Chdir(dir))

	assert.False(t, IsInitialized())
	require.NoError(t, os.WriteFile(FileName, []byte("{}"), 0644))
	assert.True(t, IsInitialized())
}
