// Package cli implements the hols command line tool.
package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/mnigh/hols/internal/config"
	"github.com/mnigh/hols/internal/dates"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	config   *config.Config
	resolver *dates.Resolver
	root     *cobra.Command

	year    int    // --year, 0 means the current year
	dbPath  string // --db
	verbose bool   // --verbose
	noColor bool   // --no-color
}

// NewApp creates the CLI. now is the clock used for default years and
// relative phrasing; nil means time.Now.
func NewApp(cfg *config.Config, now func() time.Time) *App {
	a := &App{
		config:   cfg,
		resolver: dates.NewResolver(now),
	}

	a.root = &cobra.Command{
		Use:   "hols",
		Short: "Canadian statutory holiday dates",
		Long: `hols resolves Canadian holiday date rules such as "July 1",
"Third Monday September" or "Monday before May 25" to calendar dates,
applies weekend observance shifts, and lists holidays by province.`,
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if a.noColor {
				DisableColor()
			}
		},
	}

	a.root.PersistentFlags().IntVar(&a.year, "year", 0, "Year to resolve (defaults to the current year)")
	a.root.PersistentFlags().StringVar(&a.dbPath, "db", cfg.DatabasePath, "Path to SQLite database")
	a.root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Log database activity to stderr")
	a.root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "Disable color output")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.literalCmd())
	a.root.AddCommand(a.observedCmd())
	a.root.AddCommand(a.displayCmd())
	a.root.AddCommand(a.relativeCmd())
	a.root.AddCommand(a.listCmd())
	a.root.AddCommand(a.nextCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "hols %s (commit: %s)\n", Version, Commit)
		},
	}
}

// SetOutput redirects command output, for tests.
func (a *App) SetOutput(w io.Writer) {
	a.root.SetOut(w)
	a.root.SetErr(w)
}

// SetArgs overrides os.Args[1:], for tests.
func (a *App) SetArgs(args []string) {
	a.root.SetArgs(args)
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}
