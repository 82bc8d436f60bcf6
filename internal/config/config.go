// Package config provides configuration loading for cortex-outline.
//
// Configuration Hierarchy (highest to lowest priority):
//  1. Environment variables (CORTEX_OUTLINE_*)
//  2. Project config (.cortex-outline/config.yml)
//  3. Built-in defaults
//
// Nested fields map to env vars with underscores, e.g. cache.ttl is
// CORTEX_OUTLINE_CACHE_TTL.
package config

import "time"

// Config represents the complete cortex-outline configuration.
type Config struct {
	Cache   CacheConfig   `yaml:"cache" mapstructure:"cache"`
	Files   FilesConfig   `yaml:"files" mapstructure:"files"`
	Render  RenderConfig  `yaml:"render" mapstructure:"render"`
	Logging LoggingConfig `yaml:"logging" mapstructure:"logging"`
}

// CacheConfig sizes the parse result cache.
type CacheConfig struct {
	MaxEntries int           `yaml:"max_entries" mapstructure:"max_entries"` // completed results kept (FIFO)
	TTL        time.Duration `yaml:"ttl" mapstructure:"ttl"`                 // lifetime of a cached result
}

// FilesConfig controls how request paths are resolved.
type FilesConfig struct {
	MaxFileSize int64    `yaml:"max_file_size" mapstructure:"max_file_size"` // bytes, at most 5 MiB
	Roots       []string `yaml:"roots" mapstructure:"roots"`                 // extra bases for relative paths
	Ignore      []string `yaml:"ignore" mapstructure:"ignore"`               // glob patterns reported as not found
}

// RenderConfig sizes the rendered summary memo.
type RenderConfig struct {
	CacheSize int           `yaml:"cache_size" mapstructure:"cache_size"`
	TTL       time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// LoggingConfig selects the log handler.
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // text or json
}

// MaxFileSizeCeiling is the largest accepted max_file_size.
const MaxFileSizeCeiling int64 = 5 * 1024 * 1024

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Cache: CacheConfig{
			MaxEntries: 100,
			TTL:        5 * time.Minute,
		},
		Files: FilesConfig{
			MaxFileSize: MaxFileSizeCeiling,
			Roots:       []string{},
			Ignore: []string{
				"**/node_modules/**",
				"**/.git/**",
			},
		},
		Render: RenderConfig{
			CacheSize: 256,
			TTL:       5 * time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
