package domain

import "time"

// DateLayout is the canonical calendar-date format used in storage and on the wire.
const DateLayout = "2006-01-02"

// DayOf returns local midnight of the calendar day containing t in loc.
func DayOf(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// DaysBetween returns the number of calendar days from a to b (negative when b
// is earlier). Computed on civil dates so DST shifts never produce fractions.
func DaysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	ac := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	bc := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(bc.Sub(ac).Hours() / 24)
}

// SameDay reports whether a and b fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	return DaysBetween(a, b) == 0
}

// IsWeekend reports whether the day is a Saturday or Sunday.
func IsWeekend(day time.Time) bool {
	wd := day.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// WeekStart returns the Monday that begins the week containing day.
func WeekStart(day time.Time) time.Time {
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// AtMinute returns the instant minute minutes after midnight of day.
func AtMinute(day time.Time, minute int) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, minute/60, minute%60, 0, 0, day.Location())
}
