package config

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/davetashner/qapulse/internal/alias"
	"github.com/davetashner/qapulse/internal/filter"
)

// Validate checks all fields in the config and returns all errors at once.
func Validate(cfg *Config) error {
	return validate(cfg, true)
}

// ValidateFragment checks a single config layer, which may legitimately
// leave tabs or source.url to another layer.
func ValidateFragment(cfg *Config) error {
	return validate(cfg, false)
}

func validate(cfg *Config, complete bool) error {
	var errs []string

	for _, d := range []struct{ key, val string }{
		{"source.timeout", cfg.Source.Timeout},
		{"refresh_interval", cfg.RefreshInterval},
	} {
		if d.val == "" {
			continue
		}
		dur, err := time.ParseDuration(d.val)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: invalid duration %q", d.key, d.val))
		} else if dur <= 0 {
			errs = append(errs, fmt.Sprintf("%s: must be positive, got %s", d.key, d.val))
		}
	}

	if cfg.TrendWindow < 0 {
		errs = append(errs, fmt.Sprintf("trend_window: must be non-negative, got %d", cfg.TrendWindow))
	}
	if cfg.MaxParallel < 0 {
		errs = append(errs, fmt.Sprintf("max_parallel: must be non-negative, got %d", cfg.MaxParallel))
	}

	switch cfg.OutputFormat {
	case "", "text", "json", "markdown":
	default:
		errs = append(errs, fmt.Sprintf("output_format: invalid value %q (must be text, json or markdown)", cfg.OutputFormat))
	}

	if complete && len(cfg.Tabs) == 0 {
		errs = append(errs, "tabs: at least one tab is required")
	}
	seen := make(map[string]bool)
	for i, tab := range cfg.Tabs {
		key := fmt.Sprintf("tabs[%d]", i)
		if tab.Name == "" {
			errs = append(errs, key+".name: required")
		} else if seen[tab.Name] {
			errs = append(errs, fmt.Sprintf("%s.name: duplicate tab name %q", key, tab.Name))
		}
		seen[tab.Name] = true

		locators := 0
		for _, v := range []string{tab.GID, tab.URL, tab.Path} {
			if v != "" {
				locators++
			}
		}
		switch {
		case locators == 0:
			errs = append(errs, key+": one of gid, url or path is required")
		case locators > 1:
			errs = append(errs, key+": gid, url and path are mutually exclusive")
		case complete && tab.GID != "" && cfg.Source.URL == "":
			errs = append(errs, key+".gid: requires source.url")
		}
	}

	fields := make([]string, 0, len(cfg.Aliases))
	for field := range cfg.Aliases {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		if _, ok := alias.Lookup(field); !ok {
			errs = append(errs, fmt.Sprintf("aliases.%s: unknown field", field))
		}
		for _, name := range cfg.Aliases[field] {
			if strings.TrimSpace(name) == "" {
				errs = append(errs, fmt.Sprintf("aliases.%s: empty header name", field))
				break
			}
		}
	}

	start, startOK := parseBound("filter.start", cfg.Filter.Start, &errs)
	end, endOK := parseBound("filter.end", cfg.Filter.End, &errs)
	if startOK && endOK && start.After(end) {
		errs = append(errs, fmt.Sprintf("filter: start %s is after end %s", cfg.Filter.Start, cfg.Filter.End))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

func parseBound(key, val string, errs *[]string) (time.Time, bool) {
	if val == "" {
		return time.Time{}, false
	}
	t, ok := filter.ParseDate(val)
	if !ok {
		*errs = append(*errs, fmt.Sprintf("%s: unrecognized date %q", key, val))
	}
	return t, ok
}
