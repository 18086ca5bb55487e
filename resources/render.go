package resources

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// record is one decoded upstream object.
type record map[string]any

func asRecord(v any) record {
	m, _ := v.(map[string]any)
	return record(m)
}

// asList accepts a bare array or an object wrapping one.
func asList(v any, keys ...string) []record {
	var items []any
	switch x := v.(type) {
	case []any:
		items = x
	case map[string]any:
		for _, k := range append(keys, "items", "data") {
			if list, ok := x[k].([]any); ok {
				items = list
				break
			}
		}
	}
	out := make([]record, 0, len(items))
	for _, item := range items {
		out = append(out, asRecord(item))
	}
	return out
}

func (r record) raw(key string) any {
	if r == nil {
		return nil
	}
	return r[key]
}

func (r record) str(key string) string {
	v := r.raw(key)
	if v == nil {
		return ""
	}
	return cast.ToString(v)
}

// or renders a field with loose truthiness: missing, empty, zero and false
// all give def.
func (r record) or(key, def string) string {
	if !truthy(r.raw(key)) {
		return def
	}
	return r.str(key)
}

// defined renders a field that may legitimately be zero.
func (r record) defined(key string) string {
	if r.raw(key) == nil {
		return "N/A"
	}
	return r.str(key)
}

func (r record) yesNo(key string) string {
	if truthy(r.raw(key)) {
		return "Yes"
	}
	return "No"
}

func (r record) sub(key string) record {
	return asRecord(r.raw(key))
}

func (r record) count(key string) int {
	list, _ := r.raw(key).([]any)
	return len(list)
}

func (r record) when(key string) string {
	s := r.str(key)
	if s == "" {
		return "N/A"
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return s
	}
	return t.Local().Format("1/2/2006, 3:04:05 PM")
}

func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case float64:
		return x != 0
	}
	if f, err := cast.ToFloat64E(v); err == nil {
		return f != 0
	}
	return true
}

func jsonText(v any, indent bool) string {
	var b []byte
	if indent {
		b, _ = json.MarshalIndent(v, "", "  ")
	} else {
		b, _ = json.Marshal(v)
	}
	return string(b)
}

// section starts a markdown document with a title.
func section(title string) *strings.Builder {
	b := &strings.Builder{}
	fmt.Fprintf(b, "# %s\n\n", title)
	return b
}
