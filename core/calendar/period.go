package calendar

import (
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Relative period presets.
const (
	Weekly  = "WEEKLY"
	Monthly = "MONTHLY"
	Yearly  = "YEARLY"
)

// UnknownPeriodError is returned for a period that is neither a preset nor a month index.
type UnknownPeriodError struct {
	Period string
}

func (err UnknownPeriodError) Error() string {
	return "unknown period: " + err.Period
}

func IsUnknownPeriod(err error) bool {
	_, ok := errors.Cause(err).(*UnknownPeriodError)
	return ok
}

// Range is an inclusive [Start, End] time range.
type Range struct {
	Start time.Time
	End   time.Time
}

func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// Empty reports whether no instant can fall inside the range.
func (r Range) Empty() bool {
	return r.End.Before(r.Start)
}

// IsRelative reports whether spec is one of the WEEKLY/MONTHLY/YEARLY presets.
func IsRelative(spec string) bool {
	switch strings.ToUpper(strings.TrimSpace(spec)) {
	case Weekly, Monthly, Yearly:
		return true
	}
	return false
}

// MonthIndex parses a 0-based month index ("0".."11").
func MonthIndex(spec string) (time.Month, bool) {
	spec = strings.TrimSpace(spec)
	if spec == "" || len(spec) > 2 {
		return 0, false
	}
	for _, r := range spec {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	idx, err := strconv.Atoi(spec)
	if err != nil || idx < 0 || idx > 11 {
		return 0, false
	}
	return time.Month(idx + 1), true
}

// ResolvePeriod turns a period spec into an inclusive range.
//
// Presets go back from ref (WEEKLY 7 days, MONTHLY 1 month, YEARLY 1 year) and end at ref,
// capped at the current time. A month index "0".."11" resolves to that whole calendar month of
// `year` (ref's year when year is 0) and is never capped, so future months give a range with no rows yet.
func ResolvePeriod(spec string, ref time.Time, year int) (Range, error) {
	end := ref
	if now := nowFunc(); end.After(now) {
		end = now
	}

	switch strings.ToUpper(strings.TrimSpace(spec)) {
	case Weekly:
		return Range{Start: ref.AddDate(0, 0, -7), End: end}, nil
	case Monthly:
		return Range{Start: ref.AddDate(0, -1, 0), End: end}, nil
	case Yearly:
		return Range{Start: ref.AddDate(-1, 0, 0), End: end}, nil
	}

	month, ok := MonthIndex(spec)
	if !ok {
		return Range{}, &UnknownPeriodError{Period: spec}
	}
	if year == 0 {
		year = ref.In(time.Local).Year()
	}
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	return Range{Start: start, End: EndOfDay(start.AddDate(0, 1, -1))}, nil
}

// PeriodLabel is a file-name friendly label for spec: "weekly", "monthly", "yearly" or "month_N" (1-based).
func PeriodLabel(spec string) string {
	if IsRelative(spec) {
		return strings.ToLower(strings.TrimSpace(spec))
	}
	if month, ok := MonthIndex(spec); ok {
		return "month_" + strconv.Itoa(int(month))
	}
	return "custom"
}
