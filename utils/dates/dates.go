package dates

import (
	"fmt"
	"time"
)

// Layout is the calendar-date format used for all deadlines. Dates are
// timezone-naive: two dates compare by calendar day only, and because the
// layout is ISO-ordered the comparison is plain string ordering.
const Layout = "2006-01-02"

// Today returns the server's current calendar day
func Today() string {
	return time.Now().Format(Layout)
}

// Parse validates a calendar-date string
func Parse(s string) (time.Time, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return t, nil
}

// Before reports whether calendar day a is strictly before b
func Before(a, b string) bool {
	return a < b
}

// DaysUntil returns the number of whole days from today until the given
// date; zero means the date is today, negative means it has passed.
func DaysUntil(date string) int {
	d, err := Parse(date)
	if err != nil {
		return 0
	}
	today, _ := Parse(Today())
	return int(d.Sub(today).Hours() / 24)
}
