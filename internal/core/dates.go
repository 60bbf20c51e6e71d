package core

import (
	"strings"
	"time"
)

// parseCalendarDate accepts "YYYY-MM-DD" or an RFC 3339 timestamp and returns the calendar
// date it names at UTC midnight. For timestamps the date is taken in the timestamp's own offset.
func parseCalendarDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(time.DateOnly, value); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}
