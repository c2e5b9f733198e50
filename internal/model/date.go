package model

import "time"

// DateLayout is the MM/DD/YYYY form used by the source document.
const DateLayout = "01/02/2006"

// Date is a calendar date. The zero value and the Unix epoch both mean
// "no date"; the epoch is what the source uses as a missing-data sentinel.
type Date struct {
	t time.Time
}

// NewDate returns the date for the given year, month and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses an MM/DD/YYYY string. Empty input yields the zero Date.
func ParseDate(s string) (Date, error) {
	if s == "" {
		return Date{}, nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, err
	}
	return Date{t: t}, nil
}

// Present reports whether the date carries a real value.
func (d Date) Present() bool {
	if d.t.IsZero() {
		return false
	}
	y, m, day := d.t.Date()
	return !(y == 1970 && m == time.January && day == 1)
}

// Time returns the underlying time at midnight UTC.
func (d Date) Time() time.Time {
	return d.t
}

// String formats the date as MM/DD/YYYY, or "" when absent.
func (d Date) String() string {
	if !d.Present() {
		return ""
	}
	return d.t.Format(DateLayout)
}

// Compare orders two present dates: -1, 0 or +1.
func (d Date) Compare(other Date) int {
	return d.t.Compare(other.t)
}
