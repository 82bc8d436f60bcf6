package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

var (
	// ErrInvalidCacheSettings indicates invalid cache configuration
	ErrInvalidCacheSettings = errors.New("invalid cache settings")

	// ErrInvalidFileSize indicates a max_file_size outside (0, 5 MiB]
	ErrInvalidFileSize = errors.New("invalid max file size")

	// ErrInvalidPattern indicates an ignore pattern that does not compile
	ErrInvalidPattern = errors.New("invalid ignore pattern")

	// ErrInvalidRenderSettings indicates invalid render memo configuration
	ErrInvalidRenderSettings = errors.New("invalid render settings")

	// ErrInvalidLogging indicates an unknown log level or format
	ErrInvalidLogging = errors.New("invalid logging settings")
)

// Validate checks that the configuration is valid and complete.
// All problems are reported together.
func Validate(cfg *Config) error {
	return errors.Join(
		validateCache(&cfg.Cache),
		validateFiles(&cfg.Files),
		validateRender(&cfg.Render),
		validateLogging(&cfg.Logging),
	)
}

func validateCache(cfg *CacheConfig) error {
	var errs []error

	if cfg.MaxEntries <= 0 {
		errs = append(errs, fmt.Errorf("%w: max_entries must be positive, got %d", ErrInvalidCacheSettings, cfg.MaxEntries))
	}
	if cfg.TTL <= 0 {
		errs = append(errs, fmt.Errorf("%w: ttl must be positive, got %s", ErrInvalidCacheSettings, cfg.TTL))
	}

	return errors.Join(errs...)
}

func validateFiles(cfg *FilesConfig) error {
	var errs []error

	if cfg.MaxFileSize <= 0 || cfg.MaxFileSize > MaxFileSizeCeiling {
		errs = append(errs, fmt.Errorf("%w: must be between 1 and %d bytes, got %d", ErrInvalidFileSize, MaxFileSizeCeiling, cfg.MaxFileSize))
	}

	for _, pattern := range cfg.Ignore {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			errs = append(errs, fmt.Errorf("%w: %q: %v", ErrInvalidPattern, pattern, err))
		}
	}

	return errors.Join(errs...)
}

func validateRender(cfg *RenderConfig) error {
	var errs []error

	if cfg.CacheSize <= 0 {
		errs = append(errs, fmt.Errorf("%w: cache_size must be positive, got %d", ErrInvalidRenderSettings, cfg.CacheSize))
	}
	if cfg.TTL <= 0 {
		errs = append(errs, fmt.Errorf("%w: ttl must be positive, got %s", ErrInvalidRenderSettings, cfg.TTL))
	}

	return errors.Join(errs...)
}

func validateLogging(cfg *LoggingConfig) error {
	var errs []error

	switch strings.ToLower(cfg.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("%w: level must be debug, info, warn or error, got '%s'", ErrInvalidLogging, cfg.Level))
	}

	switch strings.ToLower(cfg.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("%w: format must be 'text' or 'json', got '%s'", ErrInvalidLogging, cfg.Format))
	}

	return errors.Join(errs...)
}
