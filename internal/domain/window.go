package domain

import (
	"fmt"
	"strings"
	"time"
)

const (
	// Months before and after the reference date covered by the activity window.
	WindowMonthsBack    = 2
	WindowMonthsForward = 1
)

// ActivityWindow is the inclusive date range [Start, End] of one run.
type ActivityWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewActivityWindow derives the window around a reference date.
func NewActivityWindow(referenceDate time.Time) ActivityWindow {
	ref := TruncateToDate(referenceDate)
	return ActivityWindow{
		Start: AddMonths(ref, -WindowMonthsBack),
		End:   AddMonths(ref, WindowMonthsForward),
	}
}

// Contains reports whether day falls inside the window, both ends included.
func (w ActivityWindow) Contains(day time.Time) bool {
	return !day.Before(w.Start) && !day.After(w.End)
}

func (w ActivityWindow) String() string {
	return fmt.Sprintf("[%s, %s]", w.Start.Format(time.DateOnly), w.End.Format(time.DateOnly))
}

// AddMonths shifts t by a number of calendar months. When the day of month does not
// exist in the target month it is clamped to that month's last day, so 2024-03-31
// minus one month is 2024-02-29 and not 2024-03-02.
func AddMonths(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	first := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	if last := daysIn(first.Year(), first.Month(), t.Location()); day > last {
		day = last
	}
	hour, min, sec := t.Clock()
	return time.Date(first.Year(), first.Month(), day, hour, min, sec, t.Nanosecond(), t.Location())
}

func daysIn(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}

// TruncateToDate drops the time of day, keeping the calendar date in UTC.
func TruncateToDate(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// ParseReferenceDate parses the run's reference date. Only YYYY-MM-DD is accepted.
func ParseReferenceDate(value string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, value)
	}
	return t, nil
}

var recordDateLayouts = []string{
	time.DateOnly,
	time.DateTime,
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// ParseRecordDate normalizes a ledger date to a calendar date.
func ParseRecordDate(value string) (time.Time, error) {
	v := strings.TrimSpace(value)
	for _, layout := range recordDateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return TruncateToDate(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: unparseable date %q", ErrMalformedRecord, value)
}
