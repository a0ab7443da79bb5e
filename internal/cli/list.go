package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mnigh/hols/internal/calendar"
	"github.com/mnigh/hols/internal/database"
	"github.com/mnigh/hols/internal/dates"
	"github.com/mnigh/hols/internal/logger"
)

func (a *App) listCmd() *cobra.Command {
	var filter database.HolidayFilter

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List holidays for a year",
		Long: `List holidays for a year, sorted by observed date.

The database is created and seeded with the bundled Canadian holidays on
first use.`,
		Example: `  hols list
  hols list --province QC --year 2023
  hols list --federal`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			holidays, closeStore, err := a.openHolidays(ctx)
			if err != nil {
				return err
			}
			defer closeStore()

			year := a.year
			if year == 0 {
				year = a.resolver.CurrentYear()
			}

			resolved, err := holidays.HolidaysForYear(ctx, filter, year)
			if err != nil {
				return fmt.Errorf("listing holidays: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(resolved) == 0 {
				fmt.Fprintln(out, "No holidays found.")
				return nil
			}

			title := fmt.Sprintf("Holidays %d", year)
			if filter.ProvinceID != "" {
				title += " (" + strings.ToUpper(filter.ProvinceID) + ")"
			}
			fmt.Fprintf(out, "=== %s ===\n\n", formatHeader(title))

			for _, h := range resolved {
				printHoliday(out, h)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&filter.ProvinceID, "province", "p", "", "Only holidays observed in this province (e.g. ON)")
	cmd.Flags().BoolVar(&filter.Federal, "federal", false, "Only federal holidays")

	return cmd
}

func (a *App) nextCmd() *cobra.Command {
	var filter database.HolidayFilter

	cmd := &cobra.Command{
		Use:     "next",
		Short:   "Show the next upcoming holiday",
		Example: `  hols next --province NL`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			holidays, closeStore, err := a.openHolidays(ctx)
			if err != nil {
				return err
			}
			defer closeStore()

			next, err := holidays.NextHoliday(ctx, filter)
			if err != nil {
				if database.IsNotFound(err) {
					fmt.Fprintln(cmd.OutOrStdout(), "No upcoming holidays.")
					return nil
				}
				return fmt.Errorf("finding next holiday: %w", err)
			}

			display, err := dates.DisplayDate(next.ObservedDate, true)
			if err != nil {
				return err
			}
			relative, err := a.resolver.RelativeDate(next.ObservedDate)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n%s\n",
				formatHeader(next.NameEn), formatDate(display), formatRelative(relative))
			return nil
		},
	}

	cmd.Flags().StringVarP(&filter.ProvinceID, "province", "p", "", "Only holidays observed in this province (e.g. ON)")
	cmd.Flags().BoolVar(&filter.Federal, "federal", false, "Only federal holidays")

	return cmd
}

// openHolidays opens, migrates and seeds the store. The returned func
// closes it.
func (a *App) openHolidays(ctx context.Context) (*calendar.HolidayResolver, func(), error) {
	if ctx == nil {
		ctx = context.Background()
	}

	level := "warn"
	if a.verbose {
		level = "debug"
	}
	log := logger.New(a.root.ErrOrStderr(), level, "text")

	db, err := database.Open(database.DefaultConfig(a.dbPath), log)
	if err != nil {
		return nil, nil, fmt.Errorf("opening database: %w", err)
	}
	closeStore := func() { _ = db.Close() }

	if _, err := db.Migrate(ctx); err != nil {
		closeStore()
		return nil, nil, fmt.Errorf("migrating database: %w", err)
	}
	if _, err := db.Seed(ctx); err != nil {
		closeStore()
		return nil, nil, fmt.Errorf("seeding database: %w", err)
	}

	return calendar.NewHolidayResolver(db, a.resolver, log), closeStore, nil
}

// printHoliday prints one row: observed date, weekday, name, and the
// literal date when the holiday was shifted.
func printHoliday(w io.Writer, h calendar.ResolvedHoliday) {
	weekday := ""
	if d, err := time.Parse(dates.ISOLayout, h.ObservedDate); err == nil {
		weekday = d.Format("Mon")
	}

	line := fmt.Sprintf("  %s %s  %s", formatDate(h.ObservedDate), weekday, h.NameEn)
	if h.Date != h.ObservedDate {
		line += " " + formatMuted("(falls on "+h.Date+")")
	}
	if h.Federal {
		line += " " + formatFederal("federal")
	}
	fmt.Fprintln(w, line)
}
