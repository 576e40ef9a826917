package utils

import "time"

// FormatTimestamp renders a time as RFC3339Nano in UTC, the representation
// stored in item attributes and timestamp-prefixed sort keys. Nanosecond
// precision keeps feed ordering stable for writes within the same second.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// ParseTimestamp parses a stored RFC3339Nano timestamp
func ParseTimestamp(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}
