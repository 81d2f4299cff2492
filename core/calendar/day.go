package calendar

import (
	"strings"
	"time"

	"github.com/pkg/errors"
)

// nowFunc is swapped in tests.
var nowFunc = time.Now

var dayLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.RFC3339,
	time.RFC3339Nano,
}

// InvalidDateError is returned when a date string cannot be parsed.
type InvalidDateError struct {
	Value string
}

func (err InvalidDateError) Error() string {
	return "invalid date: " + err.Value
}

func IsInvalidDate(err error) bool {
	_, ok := errors.Cause(err).(*InvalidDateError)
	return ok
}

// NormalizeDay returns the start (00:00:00.000) of t's calendar day in local time.
func NormalizeDay(t time.Time) time.Time {
	y, m, d := t.In(time.Local).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

// EndOfDay returns the last millisecond (23:59:59.999) of t's calendar day in local time.
func EndOfDay(t time.Time) time.Time {
	return NormalizeDay(t).AddDate(0, 0, 1).Add(-time.Millisecond)
}

// Today returns the start of the current day.
func Today() time.Time {
	return NormalizeDay(nowFunc())
}

// ParseDay parses a date or timestamp and normalizes it to the start of its day.
// Zone-less values are read as local time.
func ParseDay(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dayLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return NormalizeDay(t), nil
		}
	}
	return time.Time{}, &InvalidDateError{Value: s}
}

// SameDay reports whether a and b fall on the same local calendar day.
func SameDay(a, b time.Time) bool {
	return NormalizeDay(a).Equal(NormalizeDay(b))
}
