// Package deltatime formats and parses the fixed timestamp encodings used by
// the exemptions data flow: the 20-digit delta_at version string and the
// published_at stamp on outbound notifications.
package deltatime

import (
	"fmt"
	"strconv"
	"time"
)

const (
	secondsLayout     = "20060102150405"
	publishedAtLayout = "2006-01-02T15:04:05"

	deltaAtLen = 20
)

// Format renders t as a delta_at string: yyyyMMddHHmmss followed by six
// microsecond digits, UTC. The encoding sorts lexicographically.
func Format(t time.Time) string {
	t = t.UTC()
	return t.Format(secondsLayout) + fmt.Sprintf("%06d", t.Nanosecond()/1000)
}

// Parse is the inverse of Format.
func Parse(s string) (time.Time, error) {
	if len(s) != deltaAtLen {
		return time.Time{}, fmt.Errorf("delta_at %q: want %d digits, got %d", s, deltaAtLen, len(s))
	}
	base, err := time.ParseInLocation(secondsLayout, s[:14], time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("delta_at %q: %w", s, err)
	}
	micros, err := strconv.Atoi(s[14:])
	if err != nil || micros < 0 {
		return time.Time{}, fmt.Errorf("delta_at %q: invalid microseconds", s)
	}
	return base.Add(time.Duration(micros) * time.Microsecond), nil
}

// PublishedAt renders t in the shape downstream notification consumers
// expect, second precision, UTC.
func PublishedAt(t time.Time) string {
	return t.UTC().Format(publishedAtLayout)
}
