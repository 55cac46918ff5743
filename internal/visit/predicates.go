package visit

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// ErrWeekendDate is the user-facing scheduling violation.
var ErrWeekendDate = errors.New("Visits cannot be scheduled on weekends (Saturday or Sunday)")

// IsApproved reports whether the visit's completion report has been
// received. Only ReceivedDate counts; the cached Approved flag is ignored.
func IsApproved(v Visit) bool {
	return strings.TrimSpace(v.ReceivedDate) != ""
}

// IsOverdue reports whether an unapproved visit has gone 2 or more business
// days without a report. Weekdays are counted from the day after the visit
// date through today; a visit dated today or in the future is never overdue.
// This is a 2 business days grace period rule, not a calendar guarantee.
func IsOverdue(v Visit, today time.Time) bool {
	if IsApproved(v) {
		return false
	}
	visitDate := ParseDate(v.Date)
	if visitDate.IsZero() {
		return false
	}
	today = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.Local)

	days := 0
	for cur := visitDate.AddDate(0, 0, 1); !cur.After(today); cur = cur.AddDate(0, 0, 1) {
		if wd := cur.Weekday(); wd != time.Saturday && wd != time.Sunday {
			days++
		}
	}
	return days >= 2
}

// ValidateDate rejects weekend dates. An empty date is valid; the form
// treats it as "not yet chosen".
func ValidateDate(date string) error {
	if date == "" {
		return nil
	}
	d := ParseDate(date)
	if d.IsZero() {
		return nil
	}
	if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return ErrWeekendDate
	}
	return nil
}

// ParseDate parses an ISO YYYY-MM-DD string into a local calendar date by
// splitting it numerically. A generic layout parser is deliberately avoided:
// timezone-aware parsing can shift the date by one day. Returns the zero
// time for malformed input.
func ParseDate(date string) time.Time {
	parts := strings.Split(date, "-")
	if len(parts) != 3 {
		return time.Time{}
	}
	year, err1 := strconv.Atoi(parts[0])
	month, err2 := strconv.Atoi(parts[1])
	day, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return time.Time{}
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)
}

// FormatDate renders a local calendar date as ISO YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}
