package prompts

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

var ErrInvalidArguments = errors.New("invalid prompt arguments")

// args reads prompt arguments, which arrive as strings. The first problem
// sticks; later reads return zero values and Err reports it.
type args struct {
	raw map[string]string
	err error
}

func newArgs(raw map[string]string) *args {
	if raw == nil {
		raw = map[string]string{}
	}
	return &args{raw: raw}
}

func (a *args) Err() error { return a.err }

func (a *args) fail(format string, v ...any) {
	if a.err == nil {
		a.err = fmt.Errorf("%w: %s", ErrInvalidArguments, fmt.Sprintf(format, v...))
	}
}

func (a *args) lookup(name string) (string, bool) {
	v, ok := a.raw[name]
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

// required returns a non-empty string argument.
func (a *args) required(name string) string {
	v, ok := a.lookup(name)
	if !ok {
		a.fail("%s is required", name)
	}
	return v
}

func (a *args) str(name, def string) string {
	if v, ok := a.lookup(name); ok {
		return v
	}
	return def
}

func (a *args) enum(name, def string, allowed ...string) string {
	v := a.str(name, def)
	if !slices.Contains(allowed, v) {
		a.fail("%s must be one of %s", name, strings.Join(allowed, ", "))
	}
	return v
}

func (a *args) number(name string, def float64) float64 {
	v, ok := a.lookup(name)
	if !ok {
		return def
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		a.fail("%s must be a number", name)
	}
	return f
}

func (a *args) between(name string, def, min, max float64) float64 {
	f := a.number(name, def)
	if f < min || f > max {
		a.fail("%s must be between %s and %s", name, num(min), num(max))
	}
	return f
}

func (a *args) duration(name string, def int) int {
	v, ok := a.lookup(name)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		a.fail("%s must be an integer", name)
	} else if n < 100 {
		a.fail("%s must be at least 100", name)
	}
	return n
}

func (a *args) boolean(name string, def bool) bool {
	v, ok := a.lookup(name)
	if !ok {
		return def
	}
	b, err := cast.ToBoolE(v)
	if err != nil {
		a.fail("%s must be true or false", name)
	}
	return b
}

func (a *args) url(name string) string {
	v := a.required(name)
	if v == "" {
		return v
	}
	u, err := url.Parse(v)
	if err != nil || u.Scheme == "" || u.Host == "" {
		a.fail("%s must be a valid URL", name)
	}
	return v
}

// decode unmarshals a JSON-valued argument into dst. It reports whether the
// argument was present.
func (a *args) decode(name string, dst any) bool {
	v, ok := a.lookup(name)
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(v), dst); err != nil {
		a.fail("%s must be valid JSON: %v", name, err)
		return false
	}
	return true
}

// list accepts a JSON array or a comma separated list.
func (a *args) list(name string) []string {
	v, ok := a.lookup(name)
	if !ok {
		return nil
	}
	var out []string
	if strings.HasPrefix(v, "[") {
		a.decode(name, &out)
		return out
	}
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
