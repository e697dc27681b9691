// Package config handles .qapulse.yaml and .qapulse.toml configuration files.
package config

import "time"

// Config represents the contents of a qapulse config file.
type Config struct {
	Source          SourceConfig        `yaml:"source,omitempty" toml:"source,omitempty"`
	RefreshInterval string              `yaml:"refresh_interval,omitempty" toml:"refresh_interval,omitempty"`
	TrendWindow     int                 `yaml:"trend_window,omitempty" toml:"trend_window,omitempty"`
	MaxParallel     int                 `yaml:"max_parallel,omitempty" toml:"max_parallel,omitempty"`
	OutputFormat    string              `yaml:"output_format,omitempty" toml:"output_format,omitempty"`
	Tabs            []TabConfig         `yaml:"tabs,omitempty" toml:"tabs,omitempty"`
	Aliases         map[string][]string `yaml:"aliases,omitempty" toml:"aliases,omitempty"`
	Filter          FilterConfig        `yaml:"filter,omitempty" toml:"filter,omitempty"`
}

// SourceConfig describes the published spreadsheet.
type SourceConfig struct {
	// URL is the published document URL; tabs without their own url or path
	// are fetched from it by gid.
	URL     string `yaml:"url,omitempty" toml:"url,omitempty"`
	Timeout string `yaml:"timeout,omitempty" toml:"timeout,omitempty"`
}

// TabConfig is one logical tab. Exactly one of GID, URL or Path locates it.
type TabConfig struct {
	Name  string `yaml:"name" toml:"name"`
	Label string `yaml:"label,omitempty" toml:"label,omitempty"`
	GID   string `yaml:"gid,omitempty" toml:"gid,omitempty"`
	URL   string `yaml:"url,omitempty" toml:"url,omitempty"`
	Path  string `yaml:"path,omitempty" toml:"path,omitempty"`
}

// FilterConfig is the initial filter selection. Dates accept any format the
// filter package parses.
type FilterConfig struct {
	Platform string `yaml:"platform,omitempty" toml:"platform,omitempty"`
	Build    string `yaml:"build,omitempty" toml:"build,omitempty"`
	Start    string `yaml:"start,omitempty" toml:"start,omitempty"`
	End      string `yaml:"end,omitempty" toml:"end,omitempty"`
}

// FileName is the expected YAML config file name in a project directory.
const FileName = ".qapulse.yaml"

// TOMLFileName is the TOML alternative to FileName.
const TOMLFileName = ".qapulse.toml"

// Defaults applied when a field is unset.
const (
	DefaultTimeout         = 30 * time.Second
	DefaultRefreshInterval = 5 * time.Minute
	DefaultOutputFormat    = "text"
)

// Timeout returns the fetch timeout, or DefaultTimeout when unset or invalid.
func (c *Config) Timeout() time.Duration {
	return durationOr(c.Source.Timeout, DefaultTimeout)
}

// Interval returns the refresh interval, or DefaultRefreshInterval when unset
// or invalid.
func (c *Config) Interval() time.Duration {
	return durationOr(c.RefreshInterval, DefaultRefreshInterval)
}

// Format returns the output format, or DefaultOutputFormat when unset.
func (c *Config) Format() string {
	if c.OutputFormat == "" {
		return DefaultOutputFormat
	}
	return c.OutputFormat
}

func durationOr(s string, def time.Duration) time.Duration {
	if s == "" {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
