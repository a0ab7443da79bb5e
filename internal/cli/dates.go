package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mnigh/hols/internal/dates"
)

func (a *App) literalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "literal RULE",
		Short: "Print the date a rule falls on",
		Long: `Print the date a rule denotes, before any weekend shift.

The rule may be given as one quoted argument or as separate words.`,
		Example: `  hols literal July 1 --year 2023
  hols literal "Monday near July 12"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.resolver.LiteralDate(strings.Join(args, " "), a.year)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), d)
			return nil
		},
	}
}

func (a *App) observedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "observed RULE",
		Short: "Print the day a rule is observed on",
		Long: `Print the day a holiday is observed, after weekend shifts:
Saturday and Sunday holidays move to Monday, and Boxing Day moves to
Tuesday when it falls on a Sunday or Monday.`,
		Example: `  hols observed December 26 --year 2021
  hols observed "Friday before Easter"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.resolver.ObservedDate(strings.Join(args, " "), a.year)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), d)
			return nil
		},
	}
}

func (a *App) displayCmd() *cobra.Command {
	var weekday bool

	cmd := &cobra.Command{
		Use:     "display DATE",
		Short:   "Render a YYYY-MM-DD date as \"July 1\"",
		Example: `  hols display 2022-07-01 --weekday`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := dates.DisplayDate(args[0], weekday)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), s)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&weekday, "weekday", "w", false, "Append the weekday")

	return cmd
}

func (a *App) relativeCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "relative DATE",
		Short:   "Say how far away a YYYY-MM-DD date is",
		Example: `  hols relative 2022-12-25`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.resolver.RelativeDate(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatRelative(s))
			return nil
		},
	}
}
