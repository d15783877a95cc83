package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	FileName   = "stockpanel.config.json"
	EnvPrefix  = "STOCKPANEL"
	defaultURL = "http://localhost:8080"
)

type Config struct {
	Version    string  `json:"version" mapstructure:"version"`
	ExportPath string  `json:"export_path" mapstructure:"export_path"`
	API        API     `json:"api" mapstructure:"api"`
	List       List    `json:"list" mapstructure:"list"`
	Reports    Reports `json:"reports" mapstructure:"reports"`
	Studio     Studio  `json:"studio" mapstructure:"studio"`
	Log        Log     `json:"log" mapstructure:"log"`
}

type API struct {
	BaseURL      string        `json:"base_url" mapstructure:"base_url"`
	Timeout      time.Duration `json:"timeout" mapstructure:"timeout"`
	Retries      int           `json:"retries" mapstructure:"retries"`
	RetryBackoff time.Duration `json:"retry_backoff" mapstructure:"retry_backoff"`
	TokenEnv     string        `json:"token_env" mapstructure:"token_env"`
}

type List struct {
	PageSize int           `json:"page_size" mapstructure:"page_size"`
	Debounce time.Duration `json:"debounce" mapstructure:"debounce"`
}

type Reports struct {
	PageSize int `json:"page_size" mapstructure:"page_size"`
}

type Studio struct {
	Port       int           `json:"port" mapstructure:"port"`
	SessionTTL time.Duration `json:"session_ttl" mapstructure:"session_ttl"`
}

type Log struct {
	Level  string `json:"level" mapstructure:"level"`
	Format string `json:"format" mapstructure:"format"`
}

// SetDefaults registers default values on v so that env overrides resolve
// even when no config file exists.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("version", "1")
	v.SetDefault("export_path", "exports")
	v.SetDefault("api.base_url", defaultURL)
	v.SetDefault("api.timeout", "15s")
	v.SetDefault("api.retries", 2)
	v.SetDefault("api.retry_backoff", "300ms")
	v.SetDefault("api.token_env", EnvPrefix+"_API_TOKEN")
	v.SetDefault("list.page_size", 10)
	v.SetDefault("list.debounce", "500ms")
	v.SetDefault("reports.page_size", 20)
	v.SetDefault("studio.port", 5555)
	v.SetDefault("studio.session_ttl", "30m")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

func LoadFrom(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.API.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.API.BaseURL), "/")
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = defaultURL
	}
	if cfg.API.Retries < 0 {
		cfg.API.Retries = 0
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("api.base_url must be an http(s) URL, got %q", c.API.BaseURL)
	}

	if c.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive")
	}

	if c.List.PageSize <= 0 {
		return fmt.Errorf("list.page_size must be positive, got %d", c.List.PageSize)
	}

	if c.Reports.PageSize <= 0 {
		return fmt.Errorf("reports.page_size must be positive, got %d", c.Reports.PageSize)
	}

	if c.List.Debounce < 0 {
		return fmt.Errorf("list.debounce cannot be negative")
	}

	if c.ExportPath == "" {
		return fmt.Errorf("export_path cannot be empty")
	}

	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("unsupported log level: %s", c.Log.Level)
	}

	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("unsupported log format: %s. Supported formats: [text json]", c.Log.Format)
	}

	return nil
}

// APIToken reads the bearer token from the environment variable named by
// api.token_env. An empty result means requests go out unauthenticated.
func (c *Config) APIToken() string {
	if c.API.TokenEnv == "" {
		return ""
	}
	return strings.TrimSpace(os.Getenv(c.API.TokenEnv))
}

func (c *Config) EnsureExportDir() error {
	if err := os.MkdirAll(c.ExportPath, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", c.ExportPath, err)
	}
	return nil
}

// NewLogger builds the diagnostic logger described by the log section.
func (c *Config) NewLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)

	level, err := logrus.ParseLevel(c.Log.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if c.Log.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return logger
}

func IsInitialized() bool {
	_, err := os.Stat(FileName)
	return err == nil
}
