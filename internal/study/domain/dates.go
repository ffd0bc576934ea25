package domain

import "time"

// DateLayout is the calendar date format used by every study record.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD string at local midnight in loc.
func ParseDate(s string, loc *time.Location) (time.Time, bool) {
	if len(s) != len(DateLayout) {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ValidDate reports whether s is a well-formed YYYY-MM-DD date.
func ValidDate(s string) bool {
	_, ok := ParseDate(s, time.UTC)
	return ok
}

// DatePrefix truncates a timestamp such as 2024-01-03T10:00:00Z to its date
// portion. It returns false when the prefix is not a valid date.
func DatePrefix(s string) (string, bool) {
	if len(s) < len(DateLayout) {
		return "", false
	}
	d := s[:len(DateLayout)]
	if !ValidDate(d) {
		return "", false
	}
	return d, true
}

// FormatDate renders t as YYYY-MM-DD in its own location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
