// Package calendar resolves stored holiday definitions to dates for a
// given year.
package calendar

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/mnigh/hols/internal/database"
	"github.com/mnigh/hols/internal/dates"
)

// ResolvedHoliday is a holiday with its dates for one year.
type ResolvedHoliday struct {
	database.Holiday
	Year         int    `json:"year"`
	Date         string `json:"date"`         // Literal date, YYYY-MM-DD
	ObservedDate string `json:"observedDate"` // Day off, YYYY-MM-DD
}

// ResolvedProvince is a province with its holidays for one year.
type ResolvedProvince struct {
	database.Province
	Holidays    []ResolvedHoliday `json:"holidays"`
	NextHoliday *ResolvedHoliday  `json:"nextHoliday"`
}

// RuleDates is every rendering of a single rule for one year.
type RuleDates struct {
	Rule         string `json:"rule"`
	Year         int    `json:"year"`
	Date         string `json:"date"`
	ObservedDate string `json:"observedDate"`
	Display      string `json:"display"`
	Relative     string `json:"relative"`
}

// Queryable is the subset of the store the resolver reads from.
type Queryable interface {
	ListHolidays(ctx context.Context, filter database.HolidayFilter) ([]database.Holiday, error)
	GetHoliday(ctx context.Context, id int64) (*database.Holiday, error)
	ListProvinces(ctx context.Context) ([]database.Province, error)
	GetProvince(ctx context.Context, id string) (*database.Province, error)
}

// HolidayResolver resolves stored holidays through a dates.Resolver.
type HolidayResolver struct {
	db     Queryable
	dates  *dates.Resolver
	logger *slog.Logger
}

// NewHolidayResolver creates a new holiday resolver.
func NewHolidayResolver(db Queryable, resolver *dates.Resolver, logger *slog.Logger) *HolidayResolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &HolidayResolver{
		db:     db,
		dates:  resolver,
		logger: logger,
	}
}

// Dates returns the underlying date resolver.
func (hr *HolidayResolver) Dates() *dates.Resolver {
	return hr.dates
}

// HolidaysForYear returns the holidays matching filter, resolved for year and
// sorted by observed date. A zero year means the current year.
//
// Holidays whose rule cannot be parsed are logged and left out.
func (hr *HolidayResolver) HolidaysForYear(ctx context.Context, filter database.HolidayFilter, year int) ([]ResolvedHoliday, error) {
	if year == 0 {
		year = hr.dates.CurrentYear()
	}

	holidays, err := hr.db.ListHolidays(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list holidays: %w", err)
	}

	resolved := make([]ResolvedHoliday, 0, len(holidays))
	for _, h := range holidays {
		rh, err := hr.resolve(h, year)
		if err != nil {
			if dates.IsRuleError(err) {
				hr.logger.Warn("skipping holiday with bad date rule",
					slog.Int64("id", h.ID),
					slog.String("name", h.NameEn),
					slog.String("rule", h.DateRule),
					slog.String("error", err.Error()),
				)
				continue
			}
			return nil, err
		}
		resolved = append(resolved, *rh)
	}

	sort.SliceStable(resolved, func(i, j int) bool {
		if resolved[i].ObservedDate != resolved[j].ObservedDate {
			return resolved[i].ObservedDate < resolved[j].ObservedDate
		}
		return resolved[i].ID < resolved[j].ID
	})

	return resolved, nil
}

// Holiday returns a single holiday resolved for year.
func (hr *HolidayResolver) Holiday(ctx context.Context, id int64, year int) (*ResolvedHoliday, error) {
	if year == 0 {
		year = hr.dates.CurrentYear()
	}

	h, err := hr.db.GetHoliday(ctx, id)
	if err != nil {
		return nil, err
	}
	return hr.resolve(*h, year)
}

// NextHoliday returns the first holiday matching filter that is observed
// today or later. If none are left this year, it looks at next year.
// Returns database.ErrNotFound if nothing matches.
func (hr *HolidayResolver) NextHoliday(ctx context.Context, filter database.HolidayFilter) (*ResolvedHoliday, error) {
	now := hr.dates.Now()
	today := dates.FormatDate(now)

	for _, year := range []int{now.Year(), now.Year() + 1} {
		holidays, err := hr.HolidaysForYear(ctx, filter, year)
		if err != nil {
			return nil, err
		}
		for i := range holidays {
			if holidays[i].ObservedDate >= today {
				return &holidays[i], nil
			}
		}
	}

	return nil, database.ErrNotFound
}

// Province returns a province with its holidays resolved for year and its
// next upcoming holiday.
func (hr *HolidayResolver) Province(ctx context.Context, id string, year int) (*ResolvedProvince, error) {
	p, err := hr.db.GetProvince(ctx, id)
	if err != nil {
		return nil, err
	}
	return hr.province(ctx, *p, year)
}

// Provinces returns every province with its holidays resolved for year.
func (hr *HolidayResolver) Provinces(ctx context.Context, year int) ([]ResolvedProvince, error) {
	provinces, err := hr.db.ListProvinces(ctx)
	if err != nil {
		return nil, fmt.Errorf("list provinces: %w", err)
	}

	resolved := make([]ResolvedProvince, 0, len(provinces))
	for _, p := range provinces {
		rp, err := hr.province(ctx, p, year)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, *rp)
	}
	return resolved, nil
}

func (hr *HolidayResolver) province(ctx context.Context, p database.Province, year int) (*ResolvedProvince, error) {
	filter := database.HolidayFilter{ProvinceID: p.ID}

	holidays, err := hr.HolidaysForYear(ctx, filter, year)
	if err != nil {
		return nil, fmt.Errorf("province %s: %w", p.ID, err)
	}

	next, err := hr.NextHoliday(ctx, filter)
	if err != nil && !errors.Is(err, database.ErrNotFound) {
		return nil, fmt.Errorf("province %s: %w", p.ID, err)
	}

	return &ResolvedProvince{
		Province:    p,
		Holidays:    holidays,
		NextHoliday: next,
	}, nil
}

// ResolveRule renders an arbitrary rule for year.
func (hr *HolidayResolver) ResolveRule(rule string, year int) (*RuleDates, error) {
	if year == 0 {
		year = hr.dates.CurrentYear()
	}

	literal, err := hr.dates.LiteralDate(rule, year)
	if err != nil {
		return nil, err
	}
	observed, err := hr.dates.ObservedDate(rule, year)
	if err != nil {
		return nil, err
	}
	display, err := dates.DisplayDate(observed, true)
	if err != nil {
		return nil, err
	}
	relative, err := hr.dates.RelativeDate(observed)
	if err != nil {
		return nil, err
	}

	return &RuleDates{
		Rule:         rule,
		Year:         year,
		Date:         literal,
		ObservedDate: observed,
		Display:      display,
		Relative:     relative,
	}, nil
}

func (hr *HolidayResolver) resolve(h database.Holiday, year int) (*ResolvedHoliday, error) {
	literal, err := hr.dates.LiteralDate(h.DateRule, year)
	if err != nil {
		return nil, fmt.Errorf("holiday %d: %w", h.ID, err)
	}
	observed, err := hr.dates.ObservedDate(h.DateRule, year)
	if err != nil {
		return nil, fmt.Errorf("holiday %d: %w", h.ID, err)
	}

	return &ResolvedHoliday{
		Holiday:      h,
		Year:         year,
		Date:         literal,
		ObservedDate: observed,
	}, nil
}
