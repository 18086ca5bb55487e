package tools

import (
	"encoding/json"

	"github.com/spf13/cast"
)

// Args are the decoded arguments of one tool call. Values arrive as generic
// JSON (float64 numbers, map[string]any objects) and are coerced on read.
type Args map[string]any

// Has reports whether key is present and not null.
func (a Args) Has(key string) bool {
	v, ok := a[key]
	return ok && v != nil
}

func (a Args) String(key string) string {
	return a.StringOr(key, "")
}

// StringOr returns def when key is absent or empty.
func (a Args) StringOr(key, def string) string {
	if !a.Has(key) {
		return def
	}
	if s := cast.ToString(a[key]); s != "" {
		return s
	}
	return def
}

func (a Args) Float(key string, def float64) float64 {
	if !a.Has(key) {
		return def
	}
	f, err := cast.ToFloat64E(a[key])
	if err != nil {
		return def
	}
	return f
}

func (a Args) Int(key string, def int) int {
	if !a.Has(key) {
		return def
	}
	n, err := cast.ToIntE(a[key])
	if err != nil {
		return def
	}
	return n
}

func (a Args) Bool(key string, def bool) bool {
	if !a.Has(key) {
		return def
	}
	b, err := cast.ToBoolE(a[key])
	if err != nil {
		return def
	}
	return b
}

// Map returns an object argument, or nil when absent or not an object.
func (a Args) Map(key string) map[string]any {
	if !a.Has(key) {
		return nil
	}
	m, err := cast.ToStringMapE(a[key])
	if err != nil {
		return nil
	}
	return m
}

// Slice returns an array argument, or nil when absent or not an array.
func (a Args) Slice(key string) []any {
	if !a.Has(key) {
		return nil
	}
	s, err := cast.ToSliceE(a[key])
	if err != nil {
		return nil
	}
	return s
}

// Strings returns an array argument as strings.
func (a Args) Strings(key string) []string {
	if !a.Has(key) {
		return nil
	}
	return cast.ToStringSlice(a[key])
}

// Pick copies the present keys into a new payload map.
func (a Args) Pick(keys ...string) map[string]any {
	out := make(map[string]any)
	for _, k := range keys {
		if a.Has(k) {
			out[k] = a[k]
		}
	}
	return out
}

// Bind decodes the arguments into a struct through JSON.
func (a Args) Bind(v any) error {
	b, err := json.Marshal(a)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}
