package domain

import (
	"fmt"
	"time"
)

// DateLayout is the wire and storage form of a due date.
const DateLayout = "2006-01-02"

// timestampLayouts are the full timestamps some drivers and backends return for a date column.
// Only the date part, as written, is kept.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
}

// ParseDate parses a calendar date, either bare or as a complete timestamp. Anything else,
// including a valid date followed by trailing text, is rejected.
func ParseDate(value string) (time.Time, error) {
	if date, err := time.Parse(DateLayout, value); err == nil {
		return date, nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return DateOf(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDueDate, value)
}

func FormatDate(date time.Time) string {
	return date.Format(DateLayout)
}

// DateOf truncates t to its calendar date in UTC.
func DateOf(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
