package config

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMerge_ProjectOverridesGlobal(t *testing.T) {
	global := &Config{
		Source:       SourceConfig{URL: "https://global", Timeout: "5s"},
		OutputFormat: "json",
		TrendWindow:  20,
		Tabs:         []TabConfig{{Name: "global-tab", GID: "1"}},
		Filter:       FilterConfig{Platform: "Web", End: "2024-12-31"},
	}
	project := &Config{
		Source:      SourceConfig{URL: "https://project"},
		TrendWindow: 5,
		Tabs:        []TabConfig{{Name: "android", GID: "2"}},
		Filter:      FilterConfig{Platform: "Android"},
	}

	got := Merge(global, project)
	assert.Equal(t, "https://project", got.Source.URL)
	assert.Equal(t, "5s", got.Source.Timeout)
	assert.Equal(t, "json", got.OutputFormat)
	assert.Equal(t, 5, got.TrendWindow)
	assert.Equal(t, []TabConfig{{Name: "android", GID: "2"}}, got.Tabs, "tabs are not merged item by item")
	assert.Equal(t, "Android", got.Filter.Platform)
	assert.Equal(t, "2024-12-31", got.Filter.End)
}

func TestMerge_GlobalFillsEmptyProject(t *testing.T) {
	global := &Config{
		RefreshInterval: "1m",
		MaxParallel:     3,
		Tabs:            []TabConfig{{Name: "a", Path: "a.csv"}},
	}
	got := Merge(global, nil)
	assert.Equal(t, "1m", got.RefreshInterval)
	assert.Equal(t, 3, got.MaxParallel)
	assert.Equal(t, global.Tabs, got.Tabs)

	got.Tabs[0].Name = "mutated"
	assert.Equal(t, "a", global.Tabs[0].Name, "merge must not alias the global tabs")
}

func TestMerge_AliasesPerField(t *testing.T) {
	global := &Config{Aliases: map[string][]string{"build": {"Cycle"}, "passed": {"OK"}}}
	project := &Config{Aliases: map[string][]string{"build": {"Sprint"}}}

	got := Merge(global, project)
	assert.Equal(t, map[string][]string{"build": {"Sprint"}, "passed": {"OK"}}, got.Aliases)
	assert.Equal(t, []string{"Cycle"}, global.Aliases["build"])
}

func TestMerge_NilBoth(t *testing.T) {
	assert.Equal(t, &Config{}, Merge(nil, nil))
}

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String(FlagPlatform, "", "")
	fs.String(FlagBuild, "", "")
	fs.String(FlagFrom, "", "")
	fs.String(FlagTo, "", "")
	fs.String(FlagFormat, "text", "")
	fs.String(FlagInterval, "", "")
	fs.Int(FlagTrendWindow, 0, "")
	return fs
}

func TestApplyFlags_OnlyChangedFlagsWin(t *testing.T) {
	cfg := &Config{
		OutputFormat: "json",
		TrendWindow:  7,
		Filter:       FilterConfig{Platform: "Web", Build: "1.0"},
	}
	fs := newFlagSet()
	require.NoError(t, fs.Parse([]string{"--platform", "Android", "--from", "2024-03-01", "--trend-window", "3"}))

	require.NoError(t, ApplyFlags(cfg, fs))
	assert.Equal(t, "Android", cfg.Filter.Platform)
	assert.Equal(t, "1.0", cfg.Filter.Build)
	assert.Equal(t, "2024-03-01", cfg.Filter.Start)
	assert.Equal(t, 3, cfg.TrendWindow)
	assert.Equal(t, "json", cfg.OutputFormat, "flag default must not override the file")
}

func TestApplyFlags_UndefinedFlagsIgnored(t *testing.T) {
	cfg := &Config{MaxParallel: 2, Source: SourceConfig{URL: "https://x"}}
	fs := pflag.NewFlagSet("empty", pflag.ContinueOnError)
	require.NoError(t, ApplyFlags(cfg, fs))
	assert.Equal(t, 2, cfg.MaxParallel)
	assert.Equal(t, "https://x", cfg.Source.URL)
}
