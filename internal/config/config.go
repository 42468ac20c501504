// Package config loads and validates the qdoc2rst YAML configuration.
package config

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/qdoc2rst/internal/foundation/errors"
)

// DefaultPath is the configuration file looked up when none is given.
const DefaultPath = "qdoc2rst.yaml"

// Config represents the application configuration
type Config struct {
	Input     InputConfig     `yaml:"input"`
	Output    OutputConfig    `yaml:"output"`
	Templates TemplatesConfig `yaml:"templates,omitempty"`
	Build     BuildConfig     `yaml:"build"`
	Logging   LoggingConfig   `yaml:"logging"`
	Metrics   MetricsConfig   `yaml:"metrics,omitempty"`
	Watch     WatchConfig     `yaml:"watch"`
}

// InputConfig describes where the generated HTML pages live.
type InputConfig struct {
	Directory string `yaml:"directory"`
	// Exclude holds doublestar patterns matched against file names.
	Exclude []string `yaml:"exclude"`
	// ModuleMarker identifies module index pages by file name.
	ModuleMarker string `yaml:"module_marker"`
}

// OutputConfig represents output configuration
type OutputConfig struct {
	Directory string `yaml:"directory"`
	RefPrefix string `yaml:"ref_prefix"`
}

// TemplatesConfig holds optional override paths for the page templates.
type TemplatesConfig struct {
	Page  string `yaml:"page,omitempty"`
	Index string `yaml:"index,omitempty"`
}

// BuildConfig tunes the conversion run.
type BuildConfig struct {
	Workers  int  `yaml:"workers"`
	FailFast bool `yaml:"fail_fast"`
}

// LoggingConfig selects the log level and handler format.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// MetricsConfig configures the Prometheus textfile export.
type MetricsConfig struct {
	Textfile string `yaml:"textfile,omitempty"`
}

// WatchConfig configures watch mode.
type WatchConfig struct {
	Debounce string `yaml:"debounce"`
}

// DebounceDuration returns the parsed debounce interval. Validated
// configurations always parse; anything else yields the default.
func (w WatchConfig) DebounceDuration() time.Duration {
	d, err := time.ParseDuration(w.Debounce)
	if err != nil || d <= 0 {
		return defaultDebounce
	}
	return d
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	// Defaults never fail on an empty configuration.
	_ = NewDefaultApplier().ApplyDefaults(cfg)
	return cfg
}

// Load loads configuration from the specified file
func Load(configPath string) (*Config, error) {
	loadEnvFile()

	// #nosec G304 -- configuration path is operator input.
	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFoundError("configuration file not found").
				WithCause(err).
				WithContext("path", configPath).
				Build()
		}
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to read config file").
			WithContext("path", configPath).
			Build()
	}

	cfg, err := Parse(data)
	if err != nil {
		if classified, ok := errors.AsClassified(err); ok {
			return nil, classified.WithContext("path", configPath)
		}
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault behaves like Load but returns the defaults when configPath
// is the default path and no such file exists.
func LoadOrDefault(configPath string) (*Config, error) {
	cfg, err := Load(configPath)
	if err != nil && configPath == DefaultPath && errors.HasCategory(err, errors.CategoryNotFound) {
		return Default(), nil
	}
	return cfg, err
}

// Parse decodes YAML configuration, expanding environment variables first,
// then applies defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader([]byte(expanded)))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to unmarshal config").Build()
	}

	if err := NewDefaultApplier().ApplyDefaults(&cfg); err != nil {
		return nil, err
	}
	if err := ValidateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Init creates a new configuration file with example content
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return errors.ConfigError("configuration file already exists (use --force to overwrite)").
			WithContext("path", configPath).
			Build()
	}

	data, err := yaml.Marshal(Default())
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to marshal config").Build()
	}

	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return errors.FileSystemError("failed to write config file").WithCause(err).
			WithContext("path", configPath).
			Build()
	}
	return nil
}
