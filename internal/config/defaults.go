package config

import (
	"os"
	"path/filepath"
	"time"
)

// Default values
const (
	// Build defaults
	DefaultOutDir     = ".svelte-kit/output"
	DefaultLayoutFile = "precache.yaml"

	// Output defaults
	DefaultManifestFile = "precache-manifest.json"

	// Concurrency defaults
	DefaultWorkers = 4

	// Cache defaults
	DefaultCacheEnabled = true
	DefaultCacheTTL     = 7 * 24 * time.Hour

	// Logging defaults
	DefaultLogLevel  = "info"
	DefaultLogFormat = "pretty"
)

// ConfigDir returns the config directory path
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".sveltekit-precache"
	}
	return filepath.Join(home, ".sveltekit-precache")
}

// CacheDir returns the revision cache directory path
func CacheDir() string {
	return filepath.Join(ConfigDir(), "cache")
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Build: BuildConfig{
			OutDir:     DefaultOutDir,
			LayoutFile: DefaultLayoutFile,
		},
		Output: OutputConfig{
			ManifestFile: DefaultManifestFile,
			SummaryFile:  "",
			Progress:     false,
		},
		Concurrency: ConcurrencyConfig{
			Workers: DefaultWorkers,
		},
		Cache: CacheConfig{
			Enabled:   DefaultCacheEnabled,
			TTL:       DefaultCacheTTL,
			Directory: CacheDir(),
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
