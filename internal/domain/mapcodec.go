package domain

import (
	"fmt"
	"math"
)

// Typed field readers for the canonical map form. JSON decoding hands us
// float64 for every number and []any for every list, so each reader
// accepts both the native Go shape and the decoded JSON shape.

func stringField(m map[string]any, key string) (string, error) {
	v, ok := m[key]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrMissingField, key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %q must be a string, got %T", ErrInvalidValue, key, v)
	}
	return s, nil
}

func intField(m map[string]any, key string) (int, error) {
	v, ok := m[key]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrMissingField, key)
	}
	return asInt(key, v)
}

func asInt(key string, v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		if n != math.Trunc(n) {
			return 0, fmt.Errorf("%w: %q must be an integer, got %v", ErrInvalidValue, key, n)
		}
		return int(n), nil
	}
	return 0, fmt.Errorf("%w: %q must be an integer, got %T", ErrInvalidValue, key, v)
}

func optionalString(m map[string]any, key, fallback string) (string, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return fallback, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %q must be a string, got %T", ErrInvalidValue, key, v)
	}
	return s, nil
}

func optionalBool(m map[string]any, key string, fallback bool) (bool, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return fallback, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("%w: %q must be a boolean, got %T", ErrInvalidValue, key, v)
	}
	return b, nil
}

func mapField(m map[string]any, key string) (map[string]any, error) {
	v, ok := m[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingField, key)
	}
	sub, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: %q must be a mapping, got %T", ErrInvalidValue, key, v)
	}
	return sub, nil
}

func optionalAnyMap(m map[string]any, key string) (map[string]any, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return map[string]any{}, nil
	}
	sub, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: %q must be a mapping, got %T", ErrInvalidValue, key, v)
	}
	return sub, nil
}

func optionalCountMap(m map[string]any, key string) (map[string]int, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return map[string]int{}, nil
	}
	switch sub := v.(type) {
	case map[string]int:
		out := make(map[string]int, len(sub))
		for k, n := range sub {
			out[k] = n
		}
		return out, nil
	case map[string]any:
		out := make(map[string]int, len(sub))
		for k, raw := range sub {
			n, err := asInt(key+"."+k, raw)
			if err != nil {
				return nil, err
			}
			out[k] = n
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: %q must be a mapping of counts, got %T", ErrInvalidValue, key, v)
}

func optionalStringSlice(m map[string]any, key string) ([]string, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return []string{}, nil
	}
	switch list := v.(type) {
	case []string:
		out := make([]string, len(list))
		copy(out, list)
		return out, nil
	case []any:
		out := make([]string, 0, len(list))
		for i, raw := range list {
			s, ok := raw.(string)
			if !ok {
				return nil, fmt.Errorf("%w: %s[%d] must be a string, got %T", ErrInvalidValue, key, i, raw)
			}
			out = append(out, s)
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: %q must be a list of strings, got %T", ErrInvalidValue, key, v)
}

func optionalMapSlice(m map[string]any, key string) ([]map[string]any, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return nil, nil
	}
	switch list := v.(type) {
	case []map[string]any:
		return list, nil
	case []any:
		out := make([]map[string]any, 0, len(list))
		for i, raw := range list {
			sub, ok := raw.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("%w: %s[%d] must be a mapping, got %T", ErrInvalidValue, key, i, raw)
			}
			out = append(out, sub)
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: %q must be a list of mappings, got %T", ErrInvalidValue, key, v)
}

// countMapToAny widens a count map for the canonical wire form so the
// round trip through encoding/json stays shape-stable.
func countMapToAny(m map[string]int) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
