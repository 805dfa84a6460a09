package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gobwas/glob"

	"github.com/mvp-joe/code-outline/internal/render"
)

var (
	// ErrInvalidFormat indicates an unsupported output format
	ErrInvalidFormat = errors.New("invalid output format")

	// ErrInvalidDepth indicates a negative max depth
	ErrInvalidDepth = errors.New("invalid max depth")

	// ErrInvalidPattern indicates a glob that does not compile
	ErrInvalidPattern = errors.New("invalid path pattern")

	// ErrInvalidWorkers indicates a negative worker count
	ErrInvalidWorkers = errors.New("invalid worker count")

	// ErrInvalidCacheSize indicates a negative cache size
	ErrInvalidCacheSize = errors.New("invalid cache size")

	// ErrInvalidLogLevel indicates an unknown log level
	ErrInvalidLogLevel = errors.New("invalid log level")

	// ErrInvalidLogFormat indicates an unknown log format
	ErrInvalidLogFormat = errors.New("invalid log format")
)

// Validate checks that the configuration is valid and complete.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.Outline.MaxDepth < 0 {
		errs = append(errs, fmt.Errorf("%w: max_depth cannot be negative, got %d (0 means unbounded)", ErrInvalidDepth, cfg.Outline.MaxDepth))
	}

	if _, err := render.ParseFormat(cfg.Output.Format); err != nil {
		errs = append(errs, fmt.Errorf("%w: %v", ErrInvalidFormat, err))
	}

	if err := validatePaths(&cfg.Paths); err != nil {
		errs = append(errs, err)
	}

	if cfg.Processing.Workers < 0 {
		errs = append(errs, fmt.Errorf("%w: workers cannot be negative, got %d", ErrInvalidWorkers, cfg.Processing.Workers))
	}
	if cfg.Processing.CacheSize < 0 {
		errs = append(errs, fmt.Errorf("%w: cache_size cannot be negative, got %d", ErrInvalidCacheSize, cfg.Processing.CacheSize))
	}

	if err := validateLog(&cfg.Log); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validatePaths(cfg *PathsConfig) error {
	var errs []error
	for _, group := range [][]string{cfg.Include, cfg.Ignore} {
		for _, pattern := range group {
			if _, err := glob.Compile(pattern, '/'); err != nil {
				errs = append(errs, fmt.Errorf("%w: %q: %v", ErrInvalidPattern, pattern, err))
			}
		}
	}
	if len(errs) > 0 {
		return joinErrors(errs)
	}
	return nil
}

func validateLog(cfg *LogConfig) error {
	var errs []error

	switch strings.ToLower(cfg.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("%w: must be debug, info, warn or error, got '%s'", ErrInvalidLogLevel, cfg.Level))
	}

	switch strings.ToLower(cfg.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("%w: must be 'text' or 'json', got '%s'", ErrInvalidLogFormat, cfg.Format))
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}
	return nil
}

// joinErrors combines multiple errors into a single error with clear
// formatting. The sentinels stay reachable through errors.Is.
func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}

	if len(errs) == 1 {
		return errs[0]
	}

	return &validationError{errs: errs}
}

type validationError struct {
	errs []error
}

func (e *validationError) Error() string {
	msgs := make([]string, 0, len(e.errs))
	for _, err := range e.errs {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}

func (e *validationError) Unwrap() []error { return e.errs }
