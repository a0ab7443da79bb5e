// Package dates resolves holiday date rules such as "July 1",
// "Third Monday September" or "Monday before May 25" to calendar dates,
// applies weekend observance shifts, and renders dates for display.
//
// Every result is a pure function of the rule, the year and the resolver's
// clock, so a Resolver is safe for concurrent use.
package dates

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var mayPattern = regexp.MustCompile(`(?i)May`)

// Resolver evaluates date rules. The clock supplies the default year and
// the reference point for relative phrasing.
type Resolver struct {
	now         func() time.Time
	observances []Observance
}

// NewResolver creates a resolver using now as its clock.
// A nil clock means time.Now.
func NewResolver(now func() time.Time) *Resolver {
	if now == nil {
		now = time.Now
	}
	return &Resolver{
		now:         now,
		observances: DefaultObservances(),
	}
}

// WithObservances returns a copy of r that applies the given observance
// table, in order, instead of DefaultObservances.
func (r *Resolver) WithObservances(observances ...Observance) *Resolver {
	return &Resolver{
		now:         r.now,
		observances: append([]Observance(nil), observances...),
	}
}

// Now returns the resolver's current time.
func (r *Resolver) Now() time.Time {
	return r.now()
}

// CurrentYear returns the current UTC calendar year.
func (r *Resolver) CurrentYear() int {
	return r.now().UTC().Year()
}

func (r *Resolver) year(year int) int {
	if year == 0 {
		return r.CurrentYear()
	}
	return year
}

// Literal returns the date a rule denotes in year, before any observance
// shift. A zero year means the current year.
func (r *Resolver) Literal(rule string, year int) (time.Time, error) {
	parsed, err := Parse(literalRule(rule), r.year(year))
	if err != nil {
		return time.Time{}, err
	}
	return parsed.Date(), nil
}

// Observed returns the date a rule is observed on in year.
// A zero year means the current year.
func (r *Resolver) Observed(rule string, year int) (time.Time, error) {
	parsed, err := Parse(rule, r.year(year))
	if err != nil {
		return time.Time{}, err
	}
	return observe(r.observances, rule, parsed.Date()), nil
}

// LiteralDate is Literal formatted as YYYY-MM-DD.
func (r *Resolver) LiteralDate(rule string, year int) (string, error) {
	d, err := r.Literal(rule, year)
	if err != nil {
		return "", err
	}
	return FormatDate(d), nil
}

// ObservedDate is Observed formatted as YYYY-MM-DD.
func (r *Resolver) ObservedDate(rule string, year int) (string, error) {
	d, err := r.Observed(rule, year)
	if err != nil {
		return "", err
	}
	return FormatDate(d), nil
}

// RelativeDate phrases how far away an ISO date is: "That’s today!",
// "That’s tomorrow!" or "That’s in 4 days". The date is read in the clock's
// location and counts as today until 23:59.
func (r *Resolver) RelativeDate(iso string) (string, error) {
	now := r.now()
	d, err := ParseDate(iso, now.Location())
	if err != nil {
		return "", err
	}
	return relativeDate(d, now), nil
}

// literalRule drops a leading weekday qualifier from rules ending in a day
// number, so "Monday near July 12" is literally July 12. Rules mentioning
// May keep theirs: "Monday before May 25" is literally that Monday.
func literalRule(rule string) string {
	rule = strings.TrimSpace(rule)
	if !endsWithNumber(rule) || mayPattern.MatchString(rule) {
		return rule
	}

	fields := strings.Fields(rule)
	if len(fields) > 2 {
		fields = fields[len(fields)-2:]
	}
	return strings.Join(fields, " ")
}

// endsWithNumber reports whether the last two characters of s start with a
// non-zero integer.
func endsWithNumber(s string) bool {
	tail := s
	if len(tail) > 2 {
		tail = tail[len(tail)-2:]
	}
	tail = strings.TrimLeft(tail, " \t")

	digits := 0
	for digits < len(tail) && tail[digits] >= '0' && tail[digits] <= '9' {
		digits++
	}
	n, err := strconv.Atoi(tail[:digits])
	return err == nil && n != 0
}
