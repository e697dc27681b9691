package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetValue(t *testing.T) {
	cfg := &Config{
		OutputFormat: "json",
		TrendWindow:  12,
		Source:       SourceConfig{Timeout: "10s"},
		Aliases:      map[string][]string{"build": {"Cycle"}},
	}

	val, err := GetValue(cfg, "output_format")
	require.NoError(t, err)
	assert.Equal(t, "json", val)

	val, err = GetValue(cfg, "trend_window")
	require.NoError(t, err)
	assert.Equal(t, 12, val)

	val, err = GetValue(cfg, "source.timeout")
	require.NoError(t, err)
	assert.Equal(t, "10s", val)

	val, err = GetValue(cfg, "aliases.build")
	require.NoError(t, err)
	assert.Equal(t, []any{"Cycle"}, val)

	_, err = GetValue(cfg, "filter.platform")
	assert.ErrorContains(t, err, "not found")

	_, err = GetValue(cfg, "output_format.x")
	assert.ErrorContains(t, err, "parent is not a map")
}

func TestSetValue(t *testing.T) {
	data := map[string]any{"filter": map[string]any{"build": "1.0"}}

	require.NoError(t, SetValue(data, "trend_window", "15"))
	require.NoError(t, SetValue(data, "filter.build", "5.10"))
	require.NoError(t, SetValue(data, "source.url", "https://x"))
	require.NoError(t, SetValue(data, "aliases.passed", "OK, Pass ,"))

	assert.Equal(t, 15, data["trend_window"])
	assert.Equal(t, "5.10", data["filter"].(map[string]any)["build"])
	assert.Equal(t, "https://x", data["source"].(map[string]any)["url"])
	assert.Equal(t, []any{"OK", "Pass"}, data["aliases"].(map[string]any)["passed"])

	assert.Error(t, SetValue(data, "trend_window.x", "1"))
}

func TestFlattenMap(t *testing.T) {
	got := FlattenMap(map[string]any{
		"output_format": "json",
		"source":        map[string]any{"url": "u", "timeout": "1s"},
	}, "")
	assert.Equal(t, map[string]any{
		"output_format":  "json",
		"source.url":     "u",
		"source.timeout": "1s",
	}, got)
}

func TestValidateKeyPath(t *testing.T) {
	for _, ok := range []string{"output_format", "refresh_interval", "source.url", "filter.start", "aliases.build"} {
		assert.NoError(t, ValidateKeyPath(ok), ok)
	}

	tests := map[string]string{
		"":                 "empty key path",
		"tabs":             "edit .qapulse.yaml directly",
		"colour":           "unknown key",
		"trend_window.x":   "is a scalar",
		"source":           "requires a field name (e.g. source.url)",
		"source.password":  "unknown source field",
		"aliases":          "requires a field name",
		"aliases.colour":   "unknown alias field",
		"filter.start.day": "requires a field name",
	}
	for path, want := range tests {
		err := ValidateKeyPath(path)
		require.Error(t, err, path)
		assert.Contains(t, err.Error(), want, path)
	}
}

func TestCoerceValue(t *testing.T) {
	assert.Equal(t, true, coerceValue("true"))
	assert.Equal(t, false, coerceValue("false"))
	assert.Equal(t, 42, coerceValue("42"))
	assert.Equal(t, "5.10", coerceValue("5.10"))
	assert.Equal(t, "Android", coerceValue("Android"))
}

func TestRawRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)

	data, err := LoadRaw(path)
	require.NoError(t, err)
	assert.Empty(t, data)

	require.NoError(t, SetValue(data, "filter.platform", "iOS"))
	require.NoError(t, SetValue(data, "trend_window", "6"))
	require.NoError(t, WriteFile(path, data))

	data, err = LoadRaw(path)
	require.NoError(t, err)
	cfg, err := FromRaw(data)
	require.NoError(t, err)
	assert.Equal(t, "iOS", cfg.Filter.Platform)
	assert.Equal(t, 6, cfg.TrendWindow)

	flat, err := Flatten(cfg)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"filter.platform": "iOS", "trend_window": 6}, flat)
}
