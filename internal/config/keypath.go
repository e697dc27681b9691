package config

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/davetashner/qapulse/internal/alias"
)

// GetValue retrieves a value from a Config by dot-notation key path.
// It returns scalar values as-is, and maps/slices for intermediate nodes.
func GetValue(cfg *Config, keyPath string) (any, error) {
	m, err := configToMap(cfg)
	if err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	return navigateMap(m, keyPath)
}

// SetValue sets a value in a raw YAML map by dot-notation key path,
// creating intermediate maps as needed. Values under aliases are split on
// commas into a header list.
func SetValue(data map[string]any, keyPath string, rawValue string) error {
	parts := strings.Split(keyPath, ".")
	current := data
	for _, part := range parts[:len(parts)-1] {
		child, ok := current[part]
		if !ok {
			next := make(map[string]any)
			current[part] = next
			current = next
			continue
		}
		next, ok := child.(map[string]any)
		if !ok {
			return fmt.Errorf("key %q is not a map", part)
		}
		current = next
	}

	leaf := parts[len(parts)-1]
	if parts[0] == "aliases" {
		var names []any
		for _, n := range strings.Split(rawValue, ",") {
			if n = strings.TrimSpace(n); n != "" {
				names = append(names, n)
			}
		}
		current[leaf] = names
		return nil
	}
	current[leaf] = coerceValue(rawValue)
	return nil
}

// FlattenMap recursively flattens a nested map to dot-notation keys.
func FlattenMap(m map[string]any, prefix string) map[string]any {
	result := make(map[string]any)
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if sub, ok := v.(map[string]any); ok {
			for sk, sv := range FlattenMap(sub, key) {
				result[sk] = sv
			}
		} else {
			result[key] = v
		}
	}
	return result
}

// nestedKeys maps top-level keys that hold a struct to that struct's type.
var nestedKeys = map[string]reflect.Type{
	"source": reflect.TypeOf(SourceConfig{}),
	"filter": reflect.TypeOf(FilterConfig{}),
}

// ValidateKeyPath checks that a dot-notation key path names a settable
// Config field. It uses yaml struct tags to build the valid key set.
func ValidateKeyPath(keyPath string) error {
	if keyPath == "" {
		return fmt.Errorf("empty key path")
	}
	parts := strings.Split(keyPath, ".")
	first := parts[0]

	if first == "tabs" {
		return fmt.Errorf("tabs cannot be set via config set; edit %s directly", FileName)
	}

	topKeys := yamlKeys(reflect.TypeOf(Config{}))
	if !topKeys[first] {
		return fmt.Errorf("unknown key %q; valid top-level keys: %s", first, sortedKeys(topKeys))
	}

	if first == "aliases" {
		if len(parts) != 2 {
			return fmt.Errorf("aliases requires a field name (e.g. aliases.%s)", alias.FieldBuild)
		}
		if _, ok := alias.Lookup(parts[1]); !ok {
			fields := make(map[string]bool)
			for _, g := range alias.All() {
				fields[g.Field] = true
			}
			return fmt.Errorf("unknown alias field %q; valid fields: %s", parts[1], sortedKeys(fields))
		}
		return nil
	}

	typ, nested := nestedKeys[first]
	if !nested {
		if len(parts) > 1 {
			return fmt.Errorf("key %q is a scalar; cannot use sub-keys", first)
		}
		return nil
	}

	if len(parts) != 2 {
		return fmt.Errorf("%s requires a field name (e.g. %s.%s)", first, first, firstKey(typ))
	}
	fields := yamlKeys(typ)
	if !fields[parts[1]] {
		return fmt.Errorf("unknown %s field %q; valid fields: %s", first, parts[1], sortedKeys(fields))
	}
	return nil
}

// configToMap marshals a Config to a map via YAML round-trip.
func configToMap(cfg *Config) (map[string]any, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	if m == nil {
		m = make(map[string]any)
	}
	return m, nil
}

// navigateMap traverses a nested map using a dot-notation key path.
func navigateMap(m map[string]any, keyPath string) (any, error) {
	var current any = m
	for _, part := range strings.Split(keyPath, ".") {
		cm, ok := current.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("key %q: parent is not a map", part)
		}
		val, exists := cm[part]
		if !exists {
			return nil, fmt.Errorf("key %q not found", keyPath)
		}
		current = val
	}
	return current, nil
}

// coerceValue parses a string into bool or int, or keeps it as a string.
// Build-like values such as "5.10" stay strings.
func coerceValue(s string) any {
	switch s {
	case "true":
		return true
	case "false":
		return false
	}
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	return s
}

// yamlKeys extracts yaml tag names from a struct type.
func yamlKeys(t reflect.Type) map[string]bool {
	keys := make(map[string]bool)
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("yaml")
		if tag == "" || tag == "-" {
			continue
		}
		if name := strings.Split(tag, ",")[0]; name != "" {
			keys[name] = true
		}
	}
	return keys
}

func firstKey(t reflect.Type) string {
	return strings.Split(t.Field(0).Tag.Get("yaml"), ",")[0]
}

// sortedKeys returns a comma-separated sorted list of map keys.
func sortedKeys(m map[string]bool) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return strings.Join(keys, ", ")
}
