// Package calendar implements the day-granularity arithmetic shared by the
// capacity, conflict and recommendation engines. Every input is normalized to
// midnight UTC of its own calendar date before comparison, so time-of-day and
// location never leak into day counts.
package calendar

import "time"

// DayKey identifies one calendar day (days since the Unix epoch).
type DayKey int64

const day = 24 * time.Hour

// Day truncates t to midnight UTC of the calendar date t carries in its own location.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// KeyOf returns the DayKey for t.
func KeyOf(t time.Time) DayKey {
	return DayKey(Day(t).Unix() / int64(day/time.Second))
}

// AddDays shifts t by n calendar days and normalizes the result.
func AddDays(t time.Time, n int) time.Time {
	return Day(t).AddDate(0, 0, n)
}

// DaysBetween returns the number of calendar days from a to b (negative if b is before a).
func DaysBetween(a, b time.Time) int {
	return int(KeyOf(b) - KeyOf(a))
}

// IsWeekend reports whether t falls on a Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := Day(t).Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// CountWorkingDays counts weekdays in the inclusive range [start, end].
// A reversed range yields 0.
func CountWorkingDays(start, end time.Time) int {
	s, e := Day(start), Day(end)
	if s.After(e) {
		return 0
	}
	n := 0
	for d := s; !d.After(e); d = d.AddDate(0, 0, 1) {
		if !IsWeekend(d) {
			n++
		}
	}
	return n
}

// RangesOverlap reports whether two inclusive day ranges share at least one day.
// Adjacent ranges (one ends the day before the other starts) do not overlap.
func RangesOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	_, _, ok := Intersect(aStart, aEnd, bStart, bEnd)
	return ok
}

// Intersect returns the inclusive intersection of two day ranges.
func Intersect(aStart, aEnd, bStart, bEnd time.Time) (time.Time, time.Time, bool) {
	s := maxTime(Day(aStart), Day(bStart))
	e := minTime(Day(aEnd), Day(bEnd))
	if s.After(e) {
		return time.Time{}, time.Time{}, false
	}
	return s, e, true
}

// OverlapWorkingDays counts weekdays in the intersection of two inclusive ranges.
func OverlapWorkingDays(aStart, aEnd, bStart, bEnd time.Time) int {
	s, e, ok := Intersect(aStart, aEnd, bStart, bEnd)
	if !ok {
		return 0
	}
	return CountWorkingDays(s, e)
}

// Contains reports whether [inner] lies entirely inside [outer].
func Contains(outerStart, outerEnd, innerStart, innerEnd time.Time) bool {
	return !Day(innerStart).Before(Day(outerStart)) && !Day(innerEnd).After(Day(outerEnd))
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
