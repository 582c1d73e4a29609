// Package format holds the small pure helpers shared by the journal core and
// every shell: currency and time rendering, advisory validation and JSON
// file round-tripping.
package format

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultLayout is used when no explicit layout is given to DateTime or
// ParseDateTime.
const DefaultLayout = "2006-01-02 15:04:05"

// CurrencyUnit is the in-game currency suffix.
const CurrencyUnit = "aUEC"

var printer = message.NewPrinter(language.English)

// Currency formats an amount with grouped thousands and two decimals,
// e.g. 1234.5 -> "1,234.50 aUEC".
func Currency(amount float64) string {
	return printer.Sprintf("%.2f %s", amount, CurrencyUnit)
}

// Amount renders a float the way activity lines show it: shortest form,
// always carrying a fractional part (1500 -> "1500.0"). Magnitudes from
// 1e16 up and below 1e-4 switch to exponent form ("1e+16", "1e-05").
func Amount(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}

	if f != 0 {
		e := strconv.FormatFloat(f, 'e', -1, 64)
		exp, err := strconv.Atoi(e[strings.IndexByte(e, 'e')+1:])
		if err == nil && (exp < -4 || exp >= 16) {
			return e
		}
	}

	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// DateTime formats t with layout, falling back to DefaultLayout.
func DateTime(t time.Time, layout string) string {
	if layout == "" {
		layout = DefaultLayout
	}
	return t.Format(layout)
}

// ParseDateTime parses s with layout (DefaultLayout when empty) in the local
// time zone.
func ParseDateTime(s, layout string) (time.Time, error) {
	if layout == "" {
		layout = DefaultLayout
	}
	return time.ParseInLocation(layout, s, time.Local)
}

// HM renders an elapsed interval as "{H}h {M}m". Seconds are floored first,
// then hours and minutes use floor division, so negative intervals come out
// as e.g. "-1h 30m" for minus thirty minutes.
func HM(d time.Duration) string {
	secs := int64(math.Floor(d.Seconds()))
	hours := floorDiv(secs, 3600)
	minutes := floorMod(secs, 3600) / 60
	return fmt.Sprintf("%dh %dm", hours, minutes)
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int64) int64 {
	return a - floorDiv(a, b)*b
}

// Relative renders t relative to now ("3 hours ago").
func Relative(t time.Time) string {
	if t.IsZero() {
		return "unknown"
	}
	return humanize.Time(t)
}

// ValidateShipName reports whether ship is non-empty after trimming.
func ValidateShipName(ship string) bool {
	return strings.TrimSpace(ship) != ""
}

// ValidateLocation reports whether location is non-empty after trimming.
func ValidateLocation(location string) bool {
	return strings.TrimSpace(location) != ""
}

// SaveJSON writes v to path as indented UTF-8 JSON.
func SaveJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return f.Close()
}

// LoadJSON decodes the JSON file at path into v.
func LoadJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}
