package sanitize

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Record is an untrusted upstream dictionary, typically decoded JSON.
type Record = map[string]any

// Field looks up key in r. Missing keys and explicit nulls are both absent.
func Field(r Record, key string) Optional[any] {
	if r == nil {
		return None[any]()
	}
	v, ok := r[key]
	if !ok || v == nil {
		return None[any]()
	}
	return Some(v)
}

// String returns the trimmed string at key. Non-strings and blank strings
// are absent.
func String(r Record, key string) Optional[string] {
	v, ok := Field(r, key).Get()
	if !ok {
		return None[string]()
	}
	s, isString := v.(string)
	if !isString {
		return None[string]()
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return None[string]()
	}
	return Some(s)
}

// FirstString returns the first present string among keys.
func FirstString(r Record, keys ...string) Optional[string] {
	for _, k := range keys {
		if s := String(r, k); s.IsPresent() {
			return s
		}
	}
	return None[string]()
}

// Number returns a numeric value at key. Numeric strings are parsed.
func Number(r Record, key string) Optional[float64] {
	v, ok := Field(r, key).Get()
	if !ok {
		return None[float64]()
	}
	return Float(v)
}

// Float converts a numeric value or numeric string to float64.
func Float(v any) Optional[float64] {
	switch n := v.(type) {
	case float64:
		return Some(n)
	case float32:
		return Some(float64(n))
	case int:
		return Some(float64(n))
	case int64:
		return Some(float64(n))
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return None[float64]()
		}
		return Some(f)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return None[float64]()
		}
		return Some(f)
	}
	return None[float64]()
}

// Nested returns the mapping at key, or an empty mapping when it is absent
// or not a mapping.
func Nested(r Record, key string) Record {
	v, ok := Field(r, key).Get()
	if !ok {
		return Record{}
	}
	if m, isMap := v.(map[string]any); isMap {
		return m
	}
	return Record{}
}

// List returns the list at key, or an empty list.
func List(r Record, key string) []any {
	v, ok := Field(r, key).Get()
	if !ok {
		return []any{}
	}
	switch l := v.(type) {
	case []any:
		return l
	case []map[string]any:
		out := make([]any, len(l))
		for i, m := range l {
			out[i] = m
		}
		return out
	case []string:
		out := make([]any, len(l))
		for i, s := range l {
			out[i] = s
		}
		return out
	}
	return []any{}
}

// Strings returns the non-blank string elements of the list at key.
// The result is never nil.
func Strings(r Record, key string) []string {
	items := List(r, key)
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			continue
		}
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Records returns the mapping elements of a list, dropping nulls and
// non-mappings silently.
func Records(items []any) []Record {
	out := make([]Record, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]any); ok && m != nil {
			out = append(out, m)
		}
	}
	return out
}
