package dates

import (
	"regexp"
	"time"

	"github.com/rickar/cal/v2"
)

// Observance moves a literal holiday date to the day it is observed.
// Applies receives the rule as written and the freshly computed literal date.
type Observance struct {
	Name    string
	Applies func(rule string, literal time.Time) bool
	Shift   func(literal time.Time) time.Time
}

var (
	boxingDayPattern            = regexp.MustCompile(`(?i)December 26`)
	indigenousPeoplesDayPattern = regexp.MustCompile(`(?i)June 21`)
)

// DefaultObservances returns the Canadian observance table in priority order.
//
// Boxing Day on a Sunday or Monday goes to Tuesday, since Christmas takes
// the Monday. Any other weekend date goes to the following Monday, except
// National Indigenous Peoples Day which is observed on June 21 regardless.
func DefaultObservances() []Observance {
	return []Observance{
		{
			Name: "boxing day",
			Applies: func(rule string, literal time.Time) bool {
				wd := literal.Weekday()
				return (wd == time.Sunday || wd == time.Monday) && boxingDayPattern.MatchString(rule)
			},
			Shift: shiftAfter(time.Tuesday),
		},
		{
			Name: "weekend",
			Applies: func(rule string, literal time.Time) bool {
				return cal.IsWeekend(literal) && !indigenousPeoplesDayPattern.MatchString(rule)
			},
			Shift: shiftAfter(time.Monday),
		},
	}
}

// shiftAfter moves a date to the next given weekday strictly after it.
func shiftAfter(weekday time.Weekday) func(time.Time) time.Time {
	return func(d time.Time) time.Time {
		return d.AddDate(0, 0, offsetToWeekday(weekday, d, After))
	}
}

// observe applies the first matching observance. It must only be given a
// literal date; feeding it an already shifted date can shift twice.
func observe(observances []Observance, rule string, literal time.Time) time.Time {
	for _, o := range observances {
		if o.Applies(rule, literal) {
			return o.Shift(literal)
		}
	}
	return literal
}
