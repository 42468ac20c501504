package config

import (
	"path/filepath"
	"regexp"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"git.home.luguber.info/inful/qdoc2rst/internal/foundation/errors"
)

var refPrefixPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ValidateConfig validates a configuration with defaults already applied.
func ValidateConfig(cfg *Config) error {
	validator := newConfigurationValidator(cfg)
	return validator.validate()
}

// configurationValidator coordinates validation across all configuration domains.
type configurationValidator struct {
	config *Config
}

func newConfigurationValidator(config *Config) *configurationValidator {
	return &configurationValidator{config: config}
}

func (cv *configurationValidator) validate() error {
	for _, check := range []func() error{
		cv.validatePaths,
		cv.validateExclude,
		cv.validateOutput,
		cv.validateBuild,
		cv.validateLogging,
		cv.validateWatch,
	} {
		if err := check(); err != nil {
			return err
		}
	}
	return nil
}

func (cv *configurationValidator) validatePaths() error {
	in := filepath.Clean(cv.config.Input.Directory)
	out := filepath.Clean(cv.config.Output.Directory)
	if in == out {
		return errors.ValidationError("input and output directories must differ").
			WithContext("directory", in).
			Build()
	}
	return nil
}

func (cv *configurationValidator) validateExclude() error {
	for _, pattern := range cv.config.Input.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return errors.ValidationError("invalid exclude pattern").
				WithContext("pattern", pattern).
				Build()
		}
	}
	return nil
}

func (cv *configurationValidator) validateOutput() error {
	if !refPrefixPattern.MatchString(cv.config.Output.RefPrefix) {
		return errors.ValidationError("output.ref_prefix may only contain letters, digits, '_' and '-'").
			WithContext("value", cv.config.Output.RefPrefix).
			Build()
	}
	return nil
}

func (cv *configurationValidator) validateBuild() error {
	if cv.config.Build.Workers < 1 {
		return errors.ValidationError("build.workers must be at least 1").
			WithContext("value", cv.config.Build.Workers).
			Build()
	}
	return nil
}

func (cv *configurationValidator) validateLogging() error {
	level, err := logLevelNormalizer.NormalizeWithError(string(cv.config.Logging.Level))
	if err != nil {
		return err
	}
	format, err := logFormatNormalizer.NormalizeWithError(string(cv.config.Logging.Format))
	if err != nil {
		return err
	}
	cv.config.Logging.Level = level
	cv.config.Logging.Format = format
	return nil
}

func (cv *configurationValidator) validateWatch() error {
	d, err := time.ParseDuration(cv.config.Watch.Debounce)
	if err != nil {
		return errors.ValidationError("invalid watch.debounce duration").
			WithCause(err).
			WithContext("value", cv.config.Watch.Debounce).
			Build()
	}
	if d <= 0 {
		return errors.ValidationError("watch.debounce must be positive").
			WithContext("value", cv.config.Watch.Debounce).
			Build()
	}
	return nil
}
