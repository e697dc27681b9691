package config

import (
	"maps"

	"github.com/spf13/pflag"
)

// Merge layers a project config over the global one. Scalar fields from
// project win when set. Tabs are taken wholesale from whichever config
// defines them, project first. Aliases merge per field, project first.
func Merge(global, project *Config) *Config {
	if global == nil {
		global = &Config{}
	}
	if project == nil {
		project = &Config{}
	}
	result := *project

	if result.Source.URL == "" {
		result.Source.URL = global.Source.URL
	}
	if result.Source.Timeout == "" {
		result.Source.Timeout = global.Source.Timeout
	}
	if result.RefreshInterval == "" {
		result.RefreshInterval = global.RefreshInterval
	}
	if result.TrendWindow == 0 {
		result.TrendWindow = global.TrendWindow
	}
	if result.MaxParallel == 0 {
		result.MaxParallel = global.MaxParallel
	}
	if result.OutputFormat == "" {
		result.OutputFormat = global.OutputFormat
	}
	if len(result.Tabs) == 0 {
		result.Tabs = append([]TabConfig(nil), global.Tabs...)
	}

	if len(global.Aliases) > 0 {
		merged := maps.Clone(global.Aliases)
		maps.Copy(merged, project.Aliases)
		result.Aliases = merged
	}

	if result.Filter.Platform == "" {
		result.Filter.Platform = global.Filter.Platform
	}
	if result.Filter.Build == "" {
		result.Filter.Build = global.Filter.Build
	}
	if result.Filter.Start == "" {
		result.Filter.Start = global.Filter.Start
	}
	if result.Filter.End == "" {
		result.Filter.End = global.Filter.End
	}

	return &result
}

// Flag names read by ApplyFlags.
const (
	FlagSourceURL   = "source-url"
	FlagTimeout     = "timeout"
	FlagInterval    = "interval"
	FlagTrendWindow = "trend-window"
	FlagMaxParallel = "max-parallel"
	FlagFormat      = "format"
	FlagPlatform    = "platform"
	FlagBuild       = "build"
	FlagFrom        = "from"
	FlagTo          = "to"
)

// ApplyFlags overrides cfg with every flag the user explicitly set on fs.
// Flags that are not defined on fs are ignored.
func ApplyFlags(cfg *Config, fs *pflag.FlagSet) error {
	strs := []struct {
		flag string
		dst  *string
	}{
		{FlagSourceURL, &cfg.Source.URL},
		{FlagTimeout, &cfg.Source.Timeout},
		{FlagInterval, &cfg.RefreshInterval},
		{FlagFormat, &cfg.OutputFormat},
		{FlagPlatform, &cfg.Filter.Platform},
		{FlagBuild, &cfg.Filter.Build},
		{FlagFrom, &cfg.Filter.Start},
		{FlagTo, &cfg.Filter.End},
	}
	for _, s := range strs {
		if !changed(fs, s.flag) {
			continue
		}
		v, err := fs.GetString(s.flag)
		if err != nil {
			return err
		}
		*s.dst = v
	}

	ints := []struct {
		flag string
		dst  *int
	}{
		{FlagTrendWindow, &cfg.TrendWindow},
		{FlagMaxParallel, &cfg.MaxParallel},
	}
	for _, i := range ints {
		if !changed(fs, i.flag) {
			continue
		}
		v, err := fs.GetInt(i.flag)
		if err != nil {
			return err
		}
		*i.dst = v
	}
	return nil
}

func changed(fs *pflag.FlagSet, name string) bool {
	f := fs.Lookup(name)
	return f != nil && f.Changed
}
