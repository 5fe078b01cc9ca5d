package utils

import (
	"errors"
	"strings"
	"time"
)

// ErrBadDate is returned by ParseDate for input that is neither a plain
// calendar date nor an RFC3339 timestamp.
var ErrBadDate = errors.New("invalid date format")

// ParseDate accepts ISO 8601 dates as sent by clients: either a plain
// "YYYY-MM-DD" or a full RFC3339 timestamp. The result is in UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, ErrBadDate
}

// FormatTimestamp renders a timestamp the way trip dates appear on the wire
// (RFC3339 in UTC).
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
