package dates

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rickar/cal/v2"
)

// ISOLayout is the wire format for resolved dates.
const ISOLayout = "2006-01-02"

const nbsp = "\u00a0"

// beforeMidnight is 23:59, which keeps a date "today" until its last minute.
const beforeMidnight = 1439 * time.Minute

const (
	oneDay   = 24 * time.Hour
	oneMonth = 30 * oneDay
	oneYear  = 365 * oneDay
	// yearMonth splits a year into twelfths for "over"/"almost" phrasing.
	yearMonth = oneYear / 12
)

// distanceBand phrases distances below upTo. Counts are rounded to the
// nearest unit.
type distanceBand struct {
	upTo   time.Duration
	unit   time.Duration
	format string
}

// distanceBands phrase a duration the way people say how far off a
// holiday is: "4 days", "about 1 month", "over 1 year". Units never shrink
// from one band to the next.
var distanceBands = buildDistanceBands(100)

// distanceMagnitudes is distanceBands with each bound pushed out by half a
// unit, so a distance rounded to its band's unit still falls in that band.
var distanceMagnitudes = toMagnitudes(distanceBands)

func buildDistanceBands(years int) []distanceBand {
	bands := []distanceBand{
		{time.Minute, time.Minute, "less than a minute %s"},
		{2 * time.Minute, time.Minute, "1 minute %s"},
		{45 * time.Minute, time.Minute, "%d minutes %s"},
		{90 * time.Minute, time.Minute, "about 1 hour %s"},
		{oneDay, time.Hour, "about %d hours %s"},
		{42 * time.Hour, time.Hour, "1 day %s"},
		{oneMonth, oneDay, "%d days %s"},
		{45 * oneDay, oneDay, "about 1 month %s"},
		{2 * oneMonth, oneDay, "about 2 months %s"},
		{oneYear, oneMonth, "%d months %s"},
	}

	for y := 1; y <= years; y++ {
		start := time.Duration(y) * oneYear
		bands = append(bands,
			distanceBand{start + 3*yearMonth, oneMonth, "about " + pluralYears(y) + " %s"},
			distanceBand{start + 9*yearMonth, oneMonth, "over " + pluralYears(y) + " %s"},
			distanceBand{start + oneYear, oneMonth, "almost " + pluralYears(y+1) + " %s"},
		)
	}
	return bands
}

func pluralYears(n int) string {
	if n == 1 {
		return "1 year"
	}
	return strconv.Itoa(n) + " years"
}

func toMagnitudes(bands []distanceBand) []humanize.RelTimeMagnitude {
	mags := make([]humanize.RelTimeMagnitude, len(bands))
	for i, b := range bands {
		mags[i] = humanize.RelTimeMagnitude{D: b.upTo + b.unit/2, Format: b.format, DivBy: b.unit}
	}
	return mags
}

// FormatDate renders d as YYYY-MM-DD.
func FormatDate(d time.Time) string {
	return d.Format(ISOLayout)
}

// ParseDate parses a YYYY-MM-DD string as midnight in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	d, err := time.ParseInLocation(ISOLayout, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, newRuleError(ErrUnparsableDate, s)
	}
	return d, nil
}

// DisplayDate renders an ISO date as "July 1", with a non-breaking space
// between month and day. withWeekday appends the weekday: "July 1, Monday".
func DisplayDate(iso string, withWeekday bool) (string, error) {
	d, err := ParseDate(iso, time.UTC)
	if err != nil {
		return "", err
	}

	msg := strings.ReplaceAll(d.Format("January 2"), " ", nbsp)
	if withWeekday {
		return msg + ", " + d.Format("Monday"), nil
	}
	return msg, nil
}

// relativeDate phrases how far d is from now.
func relativeDate(d, now time.Time) string {
	target := d.Add(beforeMidnight)
	offset := int(cal.DayStart(now).Sub(target).Hours() / 24)

	switch offset {
	case 0:
		return "That’s today!"
	case -1:
		return "That’s tomorrow!"
	default:
		return "That’s in " + distance(target, now)
	}
}

// distance phrases the gap between a and b. It is measured in whole
// minutes, then rounded to the unit of the band it falls in.
func distance(a, b time.Time) string {
	diff := a.Sub(b)
	if diff < 0 {
		diff = -diff
	}
	diff = diff.Round(time.Minute)

	i := sort.Search(len(distanceBands), func(i int) bool { return distanceBands[i].upTo > diff })
	if i == len(distanceBands) {
		i--
	}
	rounded := diff + distanceBands[i].unit/2

	return strings.TrimSpace(humanize.CustomRelTime(b, b.Add(rounded), "", "", distanceMagnitudes))
}
