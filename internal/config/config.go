// Package config loads and validates the noteport configuration file.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Export  ExportConfig  `yaml:"export"`
	Logging LoggingConfig `yaml:"logging"`
	History HistoryConfig `yaml:"history"`
	Preview PreviewConfig `yaml:"preview"`
	Notify  NotifyConfig  `yaml:"notify"`
	Repo    RepoConfig    `yaml:"repo"`
}

// ExportConfig controls where and how exports are produced.
type ExportConfig struct {
	// BaseDir is the directory under which one export directory per root
	// document is created. There is deliberately no hidden default location;
	// an empty value falls back to ./export relative to the working
	// directory, visible in the generated config.
	BaseDir string `yaml:"base_dir"`
	// Depth bounds document-link traversal. Negative or absent means
	// unbounded.
	Depth *int `yaml:"depth,omitempty"`
	// HTML enables rendering the root document to a standalone HTML page.
	HTML bool `yaml:"html"`
	// Verify checks produced HTML pages for dangling internal references
	// after the export finishes.
	Verify bool `yaml:"verify"`
}

// LoggingConfig controls slog output.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug|info|warn|error
	Format string `yaml:"format"` // text|json
}

// HistoryConfig controls the export-run journal.
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"` // sqlite database file
}

// PreviewConfig controls the live preview server.
type PreviewConfig struct {
	Port            int           `yaml:"port"`
	RebuildInterval time.Duration `yaml:"rebuild_interval"` // 0 disables the periodic rebuild
}

// NotifyConfig enables publishing an export summary event to NATS.
// Disabled unless a URL is set.
type NotifyConfig struct {
	URL     string `yaml:"url"`
	Subject string `yaml:"subject"`
}

// RepoConfig optionally points at a git repository holding the vault.
type RepoConfig struct {
	URL    string `yaml:"url"`
	Branch string `yaml:"branch,omitempty"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Export: ExportConfig{
			BaseDir: "./export",
			HTML:    true,
		},
		Logging: LoggingConfig{
			Level:  string(LogLevelInfo),
			Format: string(LogFormatText),
		},
		History: HistoryConfig{
			Enabled: true,
			Path:    "noteport-history.db",
		},
		Preview: PreviewConfig{
			Port: 8383,
		},
		Notify: NotifyConfig{
			Subject: "noteport.exports",
		},
	}
}

// Load reads configuration from path. A missing file is not an error: the
// defaults apply, so the CLI works without any setup. Environment variables
// referenced in the YAML ($VAR / ${VAR}) are expanded after an optional .env
// file has been loaded.
func Load(path string) (*Config, error) {
	// Best effort; absence of a .env file is the normal case.
	_ = godotenv.Load()

	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) normalize() {
	c.Logging.Level = string(NormalizeLogLevel(c.Logging.Level))
	c.Logging.Format = string(NormalizeLogFormat(c.Logging.Format))
	if c.Export.BaseDir == "" {
		c.Export.BaseDir = "./export"
	}
	if c.Preview.Port == 0 {
		c.Preview.Port = 8383
	}
	if c.Notify.Subject == "" {
		c.Notify.Subject = "noteport.exports"
	}
}

// Validate reports configuration that cannot be acted on.
func (c *Config) Validate() error {
	if c.Export.Depth != nil && *c.Export.Depth < 0 {
		return fmt.Errorf("export.depth must be non-negative, got %d (omit it for unbounded traversal)", *c.Export.Depth)
	}
	if c.Preview.Port < 0 || c.Preview.Port > 65535 {
		return fmt.Errorf("preview.port out of range: %d", c.Preview.Port)
	}
	if c.History.Enabled && c.History.Path == "" {
		return fmt.Errorf("history.path is required when history is enabled")
	}
	if c.Notify.URL != "" && c.Notify.Subject == "" {
		return fmt.Errorf("notify.subject is required when notify.url is set")
	}
	return nil
}

// WriteDefault writes a commented default configuration to path.
func WriteDefault(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", path)
		}
	}
	return os.WriteFile(path, []byte(defaultYAML), 0o600)
}

const defaultYAML = `# noteport configuration
export:
  # Directory under which one export directory per root document is created.
  base_dir: ./export
  # Maximum document-link traversal depth. Omit for unbounded.
  # depth: 2
  html: true
  verify: false

logging:
  level: info   # debug|info|warn|error
  format: text  # text|json

history:
  enabled: true
  path: noteport-history.db

preview:
  port: 8383
  # rebuild_interval: 5m

# Publish an export summary event when a URL is configured.
# notify:
#   url: nats://localhost:4222
#   subject: noteport.exports

# Export from a git repository instead of the local filesystem.
# repo:
#   url: https://example.com/me/vault.git
#   branch: main
`
