package dates

import (
	"time"

	"github.com/rickar/cal/v2"
)

var easter = &cal.Holiday{Name: "Easter Sunday", Func: cal.CalcEasterOffset}

// easterSunday returns Easter Sunday of year in the Gregorian calendar.
func easterSunday(year int) time.Time {
	actual, _ := easter.Calc(year)
	return dateOnly(actual)
}

// dateOnly drops the clock and zone from t, keeping its calendar date.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
