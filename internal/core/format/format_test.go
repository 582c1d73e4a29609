package format

import (
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrency(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{0, "0.00 aUEC"},
		{12.5, "12.50 aUEC"},
		{1234.5, "1,234.50 aUEC"},
		{1234567.891, "1,234,567.89 aUEC"},
		{-2500, "-2,500.00 aUEC"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Currency(tt.amount))
	}
}

func TestAmount(t *testing.T) {
	assert.Equal(t, "1500.0", Amount(1500))
	assert.Equal(t, "12.5", Amount(12.5))
	assert.Equal(t, "-3.0", Amount(-3))
	assert.Equal(t, "0.0", Amount(0))
	assert.Equal(t, "1e+16", Amount(1e16))
	assert.Equal(t, "1.5e+16", Amount(1.5e16))
	assert.Equal(t, "1234567890123456.0", Amount(1234567890123456))
	assert.Equal(t, "1e-05", Amount(1e-5))
	assert.Equal(t, "0.0001", Amount(1e-4))
	assert.Equal(t, "-2.5e-07", Amount(-2.5e-7))
	assert.Equal(t, "inf", Amount(math.Inf(1)))
	assert.Equal(t, "nan", Amount(math.NaN()))
}

func TestHM(t *testing.T) {
	tests := []struct {
		name string
		d    time.Duration
		want string
	}{
		{"zero", 0, "0h 0m"},
		{"ninety minutes", 90 * time.Minute, "1h 30m"},
		{"seconds truncated", 59*time.Minute + 59*time.Second, "0h 59m"},
		{"sub-second truncated", 2*time.Hour + 500*time.Millisecond, "2h 0m"},
		{"long", 26*time.Hour + 5*time.Minute, "26h 5m"},
		{"negative half hour", -30 * time.Minute, "-1h 30m"},
		{"negative two hours", -2 * time.Hour, "-2h 0m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HM(tt.d))
		})
	}
}

func TestValidate(t *testing.T) {
	assert.True(t, ValidateShipName("Cutlass Black"))
	assert.True(t, ValidateShipName("  Avenger "))
	assert.False(t, ValidateShipName(""))
	assert.False(t, ValidateShipName(" \t\n"))

	assert.True(t, ValidateLocation("Lorville"))
	assert.False(t, ValidateLocation("   "))
}

func TestDateTimeRoundTrip(t *testing.T) {
	ts := time.Date(2025, 3, 14, 21, 5, 9, 0, time.Local)

	s := DateTime(ts, "")
	assert.Equal(t, "2025-03-14 21:05:09", s)

	parsed, err := ParseDateTime(s, "")
	require.NoError(t, err)
	assert.True(t, ts.Equal(parsed))

	assert.Equal(t, "14/03/2025", DateTime(ts, "02/01/2006"))
}

func TestParseWhen(t *testing.T) {
	base := time.Date(2025, 6, 10, 18, 0, 0, 0, time.Local)

	got, err := ParseWhen("2025-06-09 20:30", base)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 9, 20, 30, 0, 0, time.Local), got)

	got, err = ParseWhen("now", base)
	require.NoError(t, err)
	assert.Equal(t, base, got)

	got, err = ParseWhen("2 hours ago", base)
	require.NoError(t, err)
	assert.Equal(t, base.Add(-2*time.Hour), got)

	_, err = ParseWhen("", base)
	assert.Error(t, err)

	_, err = ParseWhen("definitely not a time", base)
	assert.Error(t, err)
}

func TestJSONFiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")

	in := map[string]any{"ship": "Carrack <expedition>", "count": 2.0}
	require.NoError(t, SaveJSON(path, in))

	var out map[string]any
	require.NoError(t, LoadJSON(path, &out))
	assert.Equal(t, in, out)

	err := LoadJSON(filepath.Join(t.TempDir(), "missing.json"), &out)
	assert.Error(t, err)
}
