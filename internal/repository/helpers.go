package repository

import (
	"time"
)

// timestampLayout is how timestamps are stored. Fixed-width fractions keep
// the text sortable.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

// formatTimestamp converts t to its stored UTC text form.
func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// parseTimestamp parses a stored timestamp.
func parseTimestamp(s string) (time.Time, error) {
	return time.Parse(timestampLayout, s)
}

// nowUTC returns the current UTC time in stored form.
func nowUTC() string {
	return formatTimestamp(time.Now())
}
