package util

import (
	"strconv"
	"time"
)

// DateLayout is the calendar-date format used by the date pickers and the API.
const DateLayout = "2006-01-02"

// unixEpochOrdinal is the ordinal of 1970-01-01.
const unixEpochOrdinal = 719163

const secondsPerDay = 24 * 60 * 60

// ParseTime tries RFC3339, RFC3339Nano, and unix seconds. Returns (t, true) if any worked.
func ParseTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, true
	}
	if ts, err := strconv.ParseInt(s, 10, 64); err == nil && ts > 0 {
		return time.Unix(ts, 0), true
	}
	return time.Time{}, false
}

// ParseDate parses a calendar date (YYYY-MM-DD, or any ParseTime format) and
// truncates it to midnight UTC.
func ParseDate(s string) (time.Time, bool) {
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, true
	}
	if t, ok := ParseTime(s); ok {
		return Day(t), true
	}
	return time.Time{}, false
}

// Day truncates t to its calendar date at midnight UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Ordinal returns the proleptic Gregorian day number of t's date, 0001-01-01 being 1.
func Ordinal(t time.Time) int64 {
	return Day(t).Unix()/secondsPerDay + unixEpochOrdinal
}

// FromOrdinal is the inverse of Ordinal.
func FromOrdinal(n int64) time.Time {
	return time.Unix((n-unixEpochOrdinal)*secondsPerDay, 0).UTC()
}
