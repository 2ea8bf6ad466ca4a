package chi

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Query parameter parsing is strict: a malformed value fails the request
// instead of silently degrading the predicate.

func intParam(q url.Values, name string, def int) (int, error) {
	raw := q.Get(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("parameter %q must be an integer", name)
	}
	return n, nil
}

func floatParam(q url.Values, name string) (*float64, error) {
	raw := q.Get(name)
	if raw == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("parameter %q must be a number", name)
	}
	return &f, nil
}

func boolParam(q url.Values, name string) (*bool, error) {
	raw := q.Get(name)
	if raw == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fmt.Errorf("parameter %q must be a boolean", name)
	}
	return &b, nil
}

// timeParam accepts RFC 3339 timestamps and plain dates (2006-01-02).
func timeParam(q url.Values, name string) (*time.Time, error) {
	raw := q.Get(name)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		u := t.UTC()
		return &u, nil
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		u := t.UTC()
		return &u, nil
	}
	return nil, fmt.Errorf("parameter %q must be an RFC 3339 timestamp or a date", name)
}

// listParam collects a repeatable parameter, splitting each occurrence on
// commas and dropping empties.
func listParam(q url.Values, name string) []string {
	var out []string
	for _, raw := range q[name] {
		for _, tok := range strings.Split(raw, ",") {
			if v := strings.TrimSpace(tok); v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}
