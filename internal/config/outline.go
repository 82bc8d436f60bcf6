package config

import (
	"github.com/mvp-joe/cortex-outline/internal/outline"
)

// ToOutlineConfig converts a Config to an outline.Config.
func (c *Config) ToOutlineConfig() *outline.Config {
	return &outline.Config{
		MaxEntries:      c.Cache.MaxEntries,
		TTL:             c.Cache.TTL,
		MaxFileSize:     c.Files.MaxFileSize,
		Roots:           c.Files.Roots,
		Ignore:          c.Files.Ignore,
		RenderCacheSize: c.Render.CacheSize,
		RenderTTL:       c.Render.TTL,
	}
}
