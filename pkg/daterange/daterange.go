// Package daterange normalizes and compares rental date intervals.
//
// Rentals are day-granular and inclusive on both ends: only the calendar day
// matters, never the time of day. Two distinct normalizations exist on
// purpose. DayStart pins a date to 00:00:00.000 and is used for range starts
// and for enumerating discrete booked days; DayEnd pins a date to
// 23:59:59.999 and is used only for inclusive overlap queries. Mixing the two
// up produces off-by-one conflicts on shared boundary days.
//
// All functions are pure and operate in UTC.
package daterange

import "time"

const day = 24 * time.Hour

// DayStart returns t's calendar day at 00:00:00.000 UTC.
func DayStart(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// DayEnd returns t's calendar day at 23:59:59.999 UTC.
func DayEnd(t time.Time) time.Time {
	return DayStart(t).Add(day - time.Millisecond)
}

// Days returns the number of billable days for the inclusive range
// [pickup, ret], computed on normalized bounds. A same-day rental counts as
// one day; the result is never below 1.
func Days(pickup, ret time.Time) int {
	diff := DayEnd(ret).Sub(DayStart(pickup))
	if diff < 0 {
		return 1
	}
	return int((diff + day - 1) / day)
}

// Overlaps reports whether the inclusive day-ranges [aPickup, aReturn] and
// [bPickup, bReturn] share at least one calendar day.
func Overlaps(aPickup, aReturn, bPickup, bReturn time.Time) bool {
	return !DayStart(aPickup).After(DayEnd(bReturn)) && !DayEnd(aReturn).Before(DayStart(bPickup))
}

// EnumerateDays lists every calendar day of the inclusive range
// [pickup, ret], each at 00:00:00.000 UTC. Returns nil when ret precedes
// pickup.
func EnumerateDays(pickup, ret time.Time) []time.Time {
	start := DayStart(pickup)
	end := DayStart(ret)
	if end.Before(start) {
		return nil
	}

	var days []time.Time
	for d := start; !d.After(end); d = d.Add(day) {
		days = append(days, d)
	}
	return days
}
