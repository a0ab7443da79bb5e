package dates

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Position places a relative rule's weekday against its anchor date.
type Position int

const (
	Before Position = iota + 1
	After
	Near
)

func (p Position) String() string {
	switch p {
	case Before:
		return "before"
	case After:
		return "after"
	case Near:
		return "near"
	default:
		return "Position(" + strconv.Itoa(int(p)) + ")"
	}
}

func parsePosition(tok string) (Position, error) {
	switch strings.ToLower(tok) {
	case "before":
		return Before, nil
	case "after":
		return After, nil
	case "near":
		return Near, nil
	}
	return 0, newRuleError(ErrUnparsablePosition, tok)
}

var (
	relativePattern = regexp.MustCompile(`(?i)before|after|near`)
	ordinalPattern  = regexp.MustCompile(`(?i)first|second|third|fourth`)
	yearPattern     = regexp.MustCompile(`^\d{4}$`)
)

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// relativeWeekdays are the weekdays a relative rule may name.
var relativeWeekdays = map[time.Weekday]bool{
	time.Monday:  true,
	time.Tuesday: true,
	time.Friday:  true,
}

var ordinals = map[string]int{
	"first":  1,
	"second": 2,
	"third":  3,
	"fourth": 4,
}

// Rule is a parsed date rule: one of Absolute, Easter, OrdinalWeekday or
// Relative. Date returns the literal calendar date at midnight UTC.
type Rule interface {
	Date() time.Time
	rule()
}

// Absolute is a fixed calendar date such as "July 1".
type Absolute struct {
	Year  int
	Month time.Month
	Day   int
}

func (r Absolute) Date() time.Time {
	return time.Date(r.Year, r.Month, r.Day, 0, 0, 0, 0, time.UTC)
}

// Easter is Easter Sunday of Year.
type Easter struct {
	Year int
}

func (r Easter) Date() time.Time {
	return easterSunday(r.Year)
}

// OrdinalWeekday is the N-th Weekday of Month, e.g. "Third Monday September".
type OrdinalWeekday struct {
	Year    int
	Month   time.Month
	Weekday time.Weekday
	N       int
}

func (r OrdinalWeekday) Date() time.Time {
	return nthWeekday(r.Year, r.Month, r.Weekday, r.N)
}

// Relative is a weekday placed before, after or near an anchor,
// e.g. "Monday before May 25" or "Friday before Easter".
type Relative struct {
	Weekday  time.Weekday
	Position Position
	Anchor   Rule
}

func (r Relative) Date() time.Time {
	anchor := r.Anchor.Date()
	return anchor.AddDate(0, 0, offsetToWeekday(r.Weekday, anchor, r.Position))
}

func (Absolute) rule()       {}
func (Easter) rule()         {}
func (OrdinalWeekday) rule() {}
func (Relative) rule()       {}

// Parse classifies a rule string and extracts its parts. year applies to
// any part of the rule that does not name its own year.
func Parse(s string, year int) (Rule, error) {
	s = strings.TrimSpace(s)
	if relativePattern.MatchString(s) {
		return parseRelative(s, year)
	}
	return parseAnchor(s, year)
}

// parseRelative handles "Weekday Position AnchorExpr [Year]".
func parseRelative(s string, year int) (Rule, error) {
	fields := strings.Fields(s)
	if len(fields) < 3 {
		return nil, newRuleError(ErrUnparsableDate, s)
	}

	weekday, ok := weekdays[strings.ToLower(fields[0])]
	if !ok || !relativeWeekdays[weekday] {
		return nil, newRuleError(ErrUnparsableWeekday, fields[0])
	}

	position, err := parsePosition(fields[1])
	if err != nil {
		return nil, err
	}

	anchor, err := parseAnchor(strings.Join(fields[2:], " "), year)
	if err != nil {
		return nil, err
	}

	return Relative{Weekday: weekday, Position: position, Anchor: anchor}, nil
}

// parseAnchor handles every non-relative expression: "Easter", ordinal
// weekday-of-month and "Month Day", each with an optional trailing year.
func parseAnchor(expr string, year int) (Rule, error) {
	fields := strings.Fields(strings.ReplaceAll(expr, ",", " "))
	if n := len(fields); n > 1 && yearPattern.MatchString(fields[n-1]) {
		year, _ = strconv.Atoi(fields[n-1])
		fields = fields[:n-1]
	}
	if len(fields) == 0 {
		return nil, newRuleError(ErrUnparsableDate, expr)
	}

	switch {
	case strings.Contains(expr, "Easter"):
		return Easter{Year: year}, nil
	case ordinalPattern.MatchString(expr):
		return parseOrdinal(fields, expr, year)
	default:
		return parseCalendar(fields, expr, year)
	}
}

// parseOrdinal handles "[The] Third Monday [of|in] September".
func parseOrdinal(fields []string, expr string, year int) (Rule, error) {
	var parts []string
	for _, f := range fields {
		switch strings.ToLower(f) {
		case "the", "of", "in":
			continue
		}
		parts = append(parts, f)
	}
	if len(parts) != 3 {
		return nil, newRuleError(ErrUnparsableDate, expr)
	}

	n, ok := ordinals[strings.ToLower(parts[0])]
	if !ok {
		return nil, newRuleError(ErrUnparsableDate, expr)
	}
	weekday, ok := weekdays[strings.ToLower(parts[1])]
	if !ok {
		return nil, newRuleError(ErrUnparsableWeekday, parts[1])
	}
	month, ok := parseMonth(parts[2])
	if !ok {
		return nil, newRuleError(ErrUnparsableDate, expr)
	}

	return OrdinalWeekday{Year: year, Month: month, Weekday: weekday, N: n}, nil
}

// parseCalendar handles "July 1".
func parseCalendar(fields []string, expr string, year int) (Rule, error) {
	if len(fields) != 2 {
		return nil, newRuleError(ErrUnparsableDate, expr)
	}

	month, ok := parseMonth(fields[0])
	if !ok {
		return nil, newRuleError(ErrUnparsableDate, expr)
	}
	day, err := strconv.Atoi(fields[1])
	if err != nil {
		return nil, newRuleError(ErrUnparsableDate, expr)
	}

	// time.Date normalizes overflow (February 30 becomes March 1 or 2),
	// so a valid date must survive the round trip.
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if d.Month() != month || d.Day() != day {
		return nil, newRuleError(ErrUnparsableDate, expr)
	}

	return Absolute{Year: year, Month: month, Day: day}, nil
}

// parseMonth accepts full and three-letter English month names in any case.
func parseMonth(s string) (time.Month, bool) {
	for _, layout := range []string{"January", "Jan"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Month(), true
		}
	}
	return 0, false
}
