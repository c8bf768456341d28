package timeutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidFormat marks datetime strings that match no accepted layout.
var ErrInvalidFormat = errors.New("invalid ISO 8601 datetime")

// Layouts accepted for incoming date strings. The frontend and the AI both
// emit ISO 8601 with or without an offset; naive timestamps are read as UTC.
var parseLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// ResponseLayout is the format used for all timestamps in API responses.
const ResponseLayout = "2006-01-02T15:04:05"

// Parse converts an ISO 8601 string to a UTC instant. A trailing "Z" means
// UTC; strings without any offset are treated as UTC as well.
func Parse(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty string", ErrInvalidFormat)
	}

	for _, layout := range parseLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
}

// Format renders an instant for API responses.
func Format(t time.Time) string {
	return t.UTC().Format(ResponseLayout)
}

// DayBounds returns the start and end of the UTC calendar day containing now.
func DayBounds(now time.Time) (time.Time, time.Time) {
	now = now.UTC()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	end := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, time.UTC)
	return start, end
}
