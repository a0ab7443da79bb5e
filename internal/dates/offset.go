package dates

import (
	"time"

	"github.com/rickar/cal/v2"
)

// nthWeekday returns the n-th occurrence of weekday in month.
func nthWeekday(year int, month time.Month, weekday time.Weekday, n int) time.Time {
	h := &cal.Holiday{
		Month:   month,
		Weekday: weekday,
		Offset:  n,
		Func:    cal.CalcWeekdayOffset,
	}
	actual, _ := h.Calc(year)
	return dateOnly(actual)
}

// offsetToWeekday returns the signed number of days from anchor to the
// occurrence of target selected by position. A matching weekday is always
// found within seven days in either direction.
func offsetToWeekday(target time.Weekday, anchor time.Time, position Position) int {
	before := beforeOffset(target, anchor)
	after := afterOffset(target, anchor)

	switch position {
	case Before:
		return before
	case After:
		return after
	case Near:
		// A full week back means the anchor itself is the target weekday.
		if before == -7 {
			return 0
		}
		if -before <= after {
			return before
		}
		return after
	default:
		return 0
	}
}

func beforeOffset(target time.Weekday, anchor time.Time) int {
	count := -1
	for anchor.AddDate(0, 0, count).Weekday() != target {
		count--
	}
	return count
}

func afterOffset(target time.Weekday, anchor time.Time) int {
	count := 1
	for anchor.AddDate(0, 0, count).Weekday() != target {
		count++
	}
	return count
}
