// Package codec converts between document scalars and the Go values held by
// ontic properties.
package codec

import (
	"fmt"
	"time"
)

// ParseRFC3339 accepts RFC3339 with or without fractional seconds.
func ParseRFC3339(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		if t2, err2 := time.Parse(time.RFC3339, s); err2 == nil {
			return t2, nil
		}
		return time.Time{}, fmt.Errorf("invalid RFC3339 time %q: %w", s, err)
	}
	return t, nil
}

// FormatRFC3339 normalizes to UTC and formats with RFC3339Nano (Go trims
// trailing zeros).
func FormatRFC3339(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// Widen turns the integers produced by document decoding into float64 and
// returns any other value unchanged.
func Widen(v any) any {
	switch n := v.(type) {
	case int64:
		return float64(n)
	case int:
		return float64(n)
	}
	return v
}
