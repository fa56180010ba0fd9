package pncp

import (
	"regexp"
	"time"
)

var eightDigits = regexp.MustCompile(`^\d{8}$`)

// DateRange returns the YYYYMMDD window ending today and starting days ago.
// Times are anchored at noon so DST edges and day rollover can't invert the
// window.
func DateRange(days int) (start, end string) {
	if days < 0 {
		days = -days
	}
	now := time.Now()
	b := time.Date(now.Year(), now.Month(), now.Day(), 12, 0, 0, 0, now.Location())
	a := b.AddDate(0, 0, -days)
	if a.After(b) {
		a, b = b, a
	}
	return a.Format("20060102"), b.Format("20060102")
}

// ParseDate accepts YYYYMMDD or anything RFC3339-ish and returns the zero
// time when it can't make sense of the value.
func ParseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	if eightDigits.MatchString(s) {
		t, err := time.Parse("20060102", s)
		if err != nil {
			return time.Time{}
		}
		return t
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// FormatBR renders a resolvable date as dd/mm/yyyy, "" otherwise.
func FormatBR(s string) string {
	t := ParseDate(s)
	if t.IsZero() {
		return ""
	}
	return t.Format("02/01/2006")
}
