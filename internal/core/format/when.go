package format

import (
	"fmt"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

var fixedLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	DefaultLayout,
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02 15:04",
	"2006/01/02",
}

// ParseWhen resolves a user supplied time. Fixed layouts are tried first so
// that plain dates are never reinterpreted; anything else goes through the
// natural language parser ("2 hours ago", "yesterday at 20:00") relative to
// base.
func ParseWhen(s string, base time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty time")
	}
	if s == "now" {
		return base, nil
	}

	for _, layout := range fixedLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}

	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)

	result, err := w.Parse(s, base)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse time %q: %w", s, err)
	}
	if result == nil {
		return time.Time{}, fmt.Errorf("unrecognised time %q", s)
	}
	return result.Time, nil
}
