package calendar

import "time"

// Range is an inclusive span of calendar days.
type Range struct {
	Start time.Time
	End   time.Time
}

// DaySet is a de-duplicated set of calendar days. Holidays and PTO are folded
// into a DaySet so a day listed twice, or listed as both holiday and PTO, is
// subtracted from capacity only once.
type DaySet map[DayKey]struct{}

// NewDaySet builds a set containing every calendar day of the given ranges.
func NewDaySet(ranges ...Range) DaySet {
	s := make(DaySet)
	for _, r := range ranges {
		s.AddRange(r.Start, r.End)
	}
	return s
}

// AddRange adds every calendar day of the inclusive range. Reversed ranges add nothing.
func (s DaySet) AddRange(start, end time.Time) {
	st, e := Day(start), Day(end)
	for d := st; !d.After(e); d = d.AddDate(0, 0, 1) {
		s[KeyOf(d)] = struct{}{}
	}
}

// Has reports whether t's calendar day is in the set.
func (s DaySet) Has(t time.Time) bool {
	_, ok := s[KeyOf(t)]
	return ok
}

// CountWorkingDaysIn counts weekdays of [start, end] that are in the set.
func (s DaySet) CountWorkingDaysIn(start, end time.Time) int {
	if len(s) == 0 {
		return 0
	}
	st, e := Day(start), Day(end)
	n := 0
	for d := st; !d.After(e); d = d.AddDate(0, 0, 1) {
		if !IsWeekend(d) && s.Has(d) {
			n++
		}
	}
	return n
}

// CountWorkingDaysExcluding counts weekdays of [start, end] that are in s but
// not in exclude. Used to subtract PTO without re-subtracting holidays.
func (s DaySet) CountWorkingDaysExcluding(start, end time.Time, exclude DaySet) int {
	if len(s) == 0 {
		return 0
	}
	st, e := Day(start), Day(end)
	n := 0
	for d := st; !d.After(e); d = d.AddDate(0, 0, 1) {
		if IsWeekend(d) || !s.Has(d) || exclude.Has(d) {
			continue
		}
		n++
	}
	return n
}

// IsWorkingDay reports whether t is a weekday not present in skip.
func IsWorkingDay(t time.Time, skip DaySet) bool {
	return !IsWeekend(t) && !skip.Has(t)
}

// AddWorkingDays returns the end date of a span that starts at start and
// contains n working days (weekdays not in skip). For n <= 0 it returns start.
func AddWorkingDays(start time.Time, n int, skip DaySet) time.Time {
	d := Day(start)
	if n <= 0 {
		return d
	}
	counted := 0
	for {
		if IsWorkingDay(d, skip) {
			counted++
			if counted == n {
				return d
			}
		}
		d = d.AddDate(0, 0, 1)
	}
}
