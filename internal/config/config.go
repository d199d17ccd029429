// Package config provides YAML-based configuration loading, validation, and
// defaults for the cwms command-line tools.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration for the cwms CLI. Command-line
// flags override values loaded from the file, and ${VAR} references in the
// YAML are expanded from the environment so API keys can stay out of the
// file itself.
type Config struct {
	APIRoot        string              `yaml:"api_root"`
	APIKey         string              `yaml:"api_key"`
	Office         string              `yaml:"office"`
	LogLevel       string              `yaml:"log_level"`
	TimeoutSeconds int                 `yaml:"timeout_seconds"`
	RateLimitRPS   float64             `yaml:"rate_limit_rps"`
	MaxRetries     int                 `yaml:"max_retries"`
	Watch          WatchConfig         `yaml:"watch"`
	Observability  ObservabilityConfig `yaml:"observability"`
}

// WatchConfig controls the directory-watch upload pipeline.
type WatchConfig struct {
	// Dirs are the directories watched for newly dropped files.
	Dirs []string `yaml:"dirs"`
	// JournalPath is where the upload journal is persisted.
	JournalPath string `yaml:"journal_path"`
	// Concurrency bounds the number of simultaneous uploads.
	Concurrency int `yaml:"concurrency"`
	// SettleDelay is how long a file must be quiet before upload, so
	// partially written files are not picked up mid-copy.
	SettleDelay Duration `yaml:"settle_delay"`
	// IDPrefix is prepended to the blob id derived from each file name.
	IDPrefix string `yaml:"id_prefix"`
}

// ObservabilityConfig controls the metrics/health HTTP server used in
// watch mode.
type ObservabilityConfig struct {
	Addr string `yaml:"addr"`
}

// Duration is a time.Duration that unmarshals from YAML strings like "500ms" or "30s".
type Duration struct {
	time.Duration
}

// UnmarshalYAML implements yaml.Unmarshaler for Duration.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	dur, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	d.Duration = dur
	return nil
}

// MarshalYAML implements yaml.Marshaler for Duration.
func (d Duration) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}

// Load reads a YAML config file, expands environment variables, and validates.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand ${VAR} and $VAR references in the YAML.
	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	ApplyDefaults(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// ApplyDefaults sets default values for unset fields, including the
// environment fallback chains for the connection settings.
func ApplyDefaults(cfg *Config) {
	if cfg.APIRoot == "" {
		cfg.APIRoot = EnvOr("APIROOT", "API_ROOT", "CDA_HOST", "CDA_API_ROOT")
	}
	if cfg.APIKey == "" {
		cfg.APIKey = EnvOr("APIKEY", "API_KEY", "CDA_API_KEY")
	}
	if cfg.Office == "" {
		cfg.Office = EnvOr("OFFICE", "OFFICE_ID", "CDA_OFFICE")
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = EnvOr("LOG_LEVEL")
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.TimeoutSeconds == 0 {
		cfg.TimeoutSeconds = 60
	}

	w := &cfg.Watch
	if w.JournalPath == "" {
		w.JournalPath = "uploads.json"
	}
	if w.Concurrency <= 0 {
		w.Concurrency = 4
	}
	if w.SettleDelay.Duration == 0 {
		w.SettleDelay.Duration = 2 * time.Second
	}

	if cfg.Observability.Addr == "" {
		cfg.Observability.Addr = ":8080"
	}
}

// Validate checks that all required fields are present and valid.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.APIRoot == "" {
		errs = append(errs, errors.New("api_root is required (or set CDA_API_ROOT)"))
	} else if u, err := url.Parse(cfg.APIRoot); err != nil || u.Scheme == "" {
		errs = append(errs, fmt.Errorf("api_root is not a valid URL: %s", cfg.APIRoot))
	}
	if cfg.APIKey == "" {
		errs = append(errs, errors.New("api_key is required (or set CDA_API_KEY)"))
	}
	if cfg.Office == "" {
		errs = append(errs, errors.New("office is required (or set CDA_OFFICE)"))
	}

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log_level must be debug, info, warn, or error, got %q", cfg.LogLevel))
	}

	if len(cfg.Watch.Dirs) == 0 {
		errs = append(errs, errors.New("watch.dirs must contain at least one directory"))
	}
	for _, dir := range cfg.Watch.Dirs {
		info, err := os.Stat(dir)
		if err != nil {
			errs = append(errs, fmt.Errorf("watch dir not found: %s", dir))
		} else if !info.IsDir() {
			errs = append(errs, fmt.Errorf("watch dir is not a directory: %s", dir))
		}
	}

	return errors.Join(errs...)
}

// EnvOr returns the first non-empty value among the named environment
// variables.
func EnvOr(names ...string) string {
	for _, name := range names {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}
