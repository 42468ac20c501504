package config

import (
	"fmt"
	"strings"
	"time"
)

const (
	defaultInputDirectory  = "html"
	defaultOutputDirectory = "reference"
	defaultModuleMarker    = "-module"
	defaultRefPrefix       = "api"
	defaultWorkers         = 4
	defaultDebounce        = 500 * time.Millisecond
)

// defaultExclude skips the generator's own landing pages.
var defaultExclude = []string{"thunder-engine*.html"}

// DefaultApplier applies defaults for a specific configuration domain.
type DefaultApplier interface {
	ApplyDefaults(cfg *Config) error
	Domain() string
}

// InputDefaultApplier handles Input configuration defaults.
type InputDefaultApplier struct{}

func (i *InputDefaultApplier) Domain() string { return "input" }

func (i *InputDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Input.Directory == "" {
		cfg.Input.Directory = defaultInputDirectory
	}
	// An explicitly empty list disables exclusion.
	if cfg.Input.Exclude == nil {
		cfg.Input.Exclude = append([]string(nil), defaultExclude...)
	}
	cfg.Input.Exclude = trimStringSlice(cfg.Input.Exclude)
	if cfg.Input.ModuleMarker == "" {
		cfg.Input.ModuleMarker = defaultModuleMarker
	}
	return nil
}

// OutputDefaultApplier handles Output configuration defaults.
type OutputDefaultApplier struct{}

func (o *OutputDefaultApplier) Domain() string { return "output" }

func (o *OutputDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Output.Directory == "" {
		cfg.Output.Directory = defaultOutputDirectory
	}
	if cfg.Output.RefPrefix == "" {
		cfg.Output.RefPrefix = defaultRefPrefix
	}
	return nil
}

// BuildDefaultApplier handles Build configuration defaults.
type BuildDefaultApplier struct{}

func (b *BuildDefaultApplier) Domain() string { return "build" }

func (b *BuildDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Build.Workers <= 0 {
		cfg.Build.Workers = defaultWorkers
	}
	return nil
}

// LoggingDefaultApplier handles Logging configuration defaults. Unknown
// values are left for validation to report.
type LoggingDefaultApplier struct{}

func (l *LoggingDefaultApplier) Domain() string { return "logging" }

func (l *LoggingDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = LogLevelInfo
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = LogFormatText
	}
	return nil
}

// WatchDefaultApplier handles Watch configuration defaults.
type WatchDefaultApplier struct{}

func (w *WatchDefaultApplier) Domain() string { return "watch" }

func (w *WatchDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Watch.Debounce == "" {
		cfg.Watch.Debounce = defaultDebounce.String()
	}
	return nil
}

// CompositeDefaultApplier applies defaults across all configuration domains
type CompositeDefaultApplier struct {
	appliers []DefaultApplier
}

// NewDefaultApplier creates a composite default applier with all domain appliers
func NewDefaultApplier() *CompositeDefaultApplier {
	return &CompositeDefaultApplier{
		appliers: []DefaultApplier{
			&InputDefaultApplier{},
			&OutputDefaultApplier{},
			&BuildDefaultApplier{},
			&LoggingDefaultApplier{},
			&WatchDefaultApplier{},
		},
	}
}

// ApplyDefaults applies defaults for all configuration domains
func (c *CompositeDefaultApplier) ApplyDefaults(cfg *Config) error {
	for _, applier := range c.appliers {
		if err := applier.ApplyDefaults(cfg); err != nil {
			return fmt.Errorf("applying defaults for %s: %w", applier.Domain(), err)
		}
	}
	return nil
}

// trimStringSlice removes empty entries (after trimming whitespace) from a string slice.
// Does not dedupe or sort. Use this for order-sensitive configuration fields.
func trimStringSlice(in []string) []string {
	if len(in) == 0 {
		return in
	}
	out := make([]string, 0, len(in))
	for _, v := range in {
		if t := strings.TrimSpace(v); t != "" {
			out = append(out, t)
		}
	}
	return out
}
