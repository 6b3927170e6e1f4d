package config

import "time"

// Config represents the application configuration
type Config struct {
	Build       BuildConfig       `mapstructure:"build" yaml:"build"`
	Output      OutputConfig      `mapstructure:"output" yaml:"output"`
	Concurrency ConcurrencyConfig `mapstructure:"concurrency" yaml:"concurrency"`
	Cache       CacheConfig       `mapstructure:"cache" yaml:"cache"`
	Logging     LoggingConfig     `mapstructure:"logging" yaml:"logging"`
}

// BuildConfig locates the adapter's build output and the layout file
type BuildConfig struct {
	OutDir     string `mapstructure:"out_dir" yaml:"out_dir"`
	LayoutFile string `mapstructure:"layout_file" yaml:"layout_file"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	ManifestFile string `mapstructure:"manifest_file" yaml:"manifest_file"`
	SummaryFile  string `mapstructure:"summary_file" yaml:"summary_file"`
	Progress     bool   `mapstructure:"progress" yaml:"progress"`
}

// ConcurrencyConfig contains concurrency settings
type ConcurrencyConfig struct {
	Workers int `mapstructure:"workers" yaml:"workers"`
}

// CacheConfig contains revision cache settings
type CacheConfig struct {
	Enabled   bool          `mapstructure:"enabled" yaml:"enabled"`
	TTL       time.Duration `mapstructure:"ttl" yaml:"ttl"`
	Directory string        `mapstructure:"directory" yaml:"directory"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// Validate validates the configuration and applies defaults for invalid values
func (c *Config) Validate() error {
	if c.Build.OutDir == "" {
		c.Build.OutDir = DefaultOutDir
	}
	if c.Output.ManifestFile == "" {
		c.Output.ManifestFile = DefaultManifestFile
	}
	if c.Concurrency.Workers < 1 {
		c.Concurrency.Workers = DefaultWorkers
	}
	if c.Cache.TTL < time.Minute {
		c.Cache.TTL = DefaultCacheTTL
	}
	return nil
}
