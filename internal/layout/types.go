package layout

import (
	"fmt"

	"github.com/vite-pwa/sveltekit-precache/internal/domain"
	"github.com/vite-pwa/sveltekit-precache/internal/policy"
)

// Config represents a parsed layout file
type Config struct {
	Base               string    `yaml:"base" json:"base"`
	AppDir             string    `yaml:"app_dir,omitempty" json:"app_dir,omitempty"`
	TrailingSlash      string    `yaml:"trailing_slash,omitempty" json:"trailing_slash,omitempty"`
	Fallback           string    `yaml:"fallback,omitempty" json:"fallback,omitempty"`
	SPA                SPAConfig `yaml:"spa,omitempty" json:"spa,omitempty"`
	WebManifest        string    `yaml:"webmanifest,omitempty" json:"webmanifest,omitempty"`
	IncludeVersionFile bool      `yaml:"include_version_file,omitempty" json:"include_version_file,omitempty"`
	Patterns           []string  `yaml:"patterns,omitempty" json:"patterns,omitempty"`
	Ignores            []string  `yaml:"ignores,omitempty" json:"ignores,omitempty"`
}

// SPAConfig represents the SPA section of a layout file. A custom revision
// supplier cannot be expressed in a file; it is set programmatically on the
// resulting domain.Layout by library callers.
type SPAConfig struct {
	Enabled         bool   `yaml:"enabled" json:"enabled"`
	FallbackMapping string `yaml:"fallback_mapping,omitempty" json:"fallback_mapping,omitempty"`
}

// Validate validates the layout configuration
func (c *Config) Validate() error {
	switch c.TrailingSlash {
	case "", string(domain.TrailingSlashDefault), string(domain.TrailingSlashAlways):
	default:
		return fmt.Errorf("%w: trailing_slash %q", ErrInvalidTrailingSlash, c.TrailingSlash)
	}
	if c.SPA.Enabled && c.Fallback == "" {
		return ErrSPAWithoutFallback
	}
	return nil
}

// ToLayout resolves the configuration into the immutable layout value
// consumed by the transform. clientOutputDir is the absolute path of the
// client build stage, needed for the fallback revision source.
func (c *Config) ToLayout(clientOutputDir string) domain.Layout {
	base := c.Base
	if base == "" {
		base = "/"
	}

	trailing := domain.TrailingSlashDefault
	if c.TrailingSlash == string(domain.TrailingSlashAlways) {
		trailing = domain.TrailingSlashAlways
	}

	return domain.Layout{
		Base:          base,
		AppDir:        c.AppDir,
		TrailingSlash: trailing,
		Fallback:      c.Fallback,
		SPA: domain.SPA{
			Enabled:         c.SPA.Enabled,
			FallbackMapping: c.SPA.FallbackMapping,
		},
		WebManifestName: c.WebManifest,
		ClientOutputDir: clientOutputDir,
	}
}

// GlobSets returns the final include/ignore pattern sets after merging the
// policy baselines.
func (c *Config) GlobSets() (patterns, ignores []string) {
	patterns = policy.BuildPatterns(c.Patterns)
	if c.IncludeVersionFile {
		patterns = policy.IncludeVersionFile(patterns, c.AppDir)
	}
	ignores = policy.BuildIgnores(c.Ignores)
	return patterns, ignores
}
