// Command import loads provinces and holiday definitions into the SQLite
// database.
//
// Usage:
//
//	go run ./cmd/import -json holidays.json -db data/hols.db
//
// Without -json the bundled Canadian data set is imported.
//
// This tool:
// 1. Reads and parses the JSON file
// 2. Checks that every date rule resolves
// 3. Creates/opens the SQLite database and runs migrations
// 4. Imports provinces, holidays and their links in a single transaction
//
// Running it twice fails on duplicate provinces. To reimport, delete the
// database file first.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/mnigh/hols/internal/database"
	"github.com/mnigh/hols/internal/dates"
)

func main() {
	jsonPath := flag.String("json", "", "Path to holidays JSON file (default: bundled data)")
	dbPath := flag.String("db", "data/hols.db", "Path to SQLite database")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))

	if err := run(*jsonPath, *dbPath, logger); err != nil {
		logger.Error("import failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("import complete")
}

func run(jsonPath, dbPath string, logger *slog.Logger) error {
	ctx := context.Background()
	startTime := time.Now()

	// =========================================================================
	// Step 1: Read and parse JSON
	// =========================================================================
	data, err := loadData(jsonPath, logger)
	if err != nil {
		return err
	}

	logger.Info("parsed JSON",
		slog.Int("provinces", len(data.Provinces)),
		slog.Int("holidays", len(data.Holidays)),
	)

	// =========================================================================
	// Step 2: Check every rule resolves
	// =========================================================================
	if err := checkRules(data.Holidays, time.Now().Year()); err != nil {
		return err
	}

	// =========================================================================
	// Step 3: Open database and run migrations
	// =========================================================================
	logger.Info("opening database", slog.String("path", dbPath))

	db, err := database.Open(database.DefaultConfig(dbPath), logger)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	migrated, err := db.Migrate(ctx)
	if err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("migrations complete", slog.Int("applied", migrated))

	// =========================================================================
	// Step 4: Import data in a transaction
	// =========================================================================
	logger.Info("starting import")

	stats, err := db.Import(ctx, data)
	if err != nil {
		return fmt.Errorf("import data: %w", err)
	}

	count, err := db.CountHolidays(ctx)
	if err != nil {
		return fmt.Errorf("count holidays: %w", err)
	}

	elapsed := time.Since(startTime)

	logger.Info("import verified",
		slog.Int("holidays", count),
		slog.Duration("elapsed", elapsed),
	)

	fmt.Println()
	fmt.Println("=== Import Summary ===")
	fmt.Printf("Provinces imported:  %d\n", stats.Provinces)
	fmt.Printf("Holidays imported:   %d\n", stats.Holidays)
	fmt.Printf("Province links:      %d\n", stats.Links)
	fmt.Printf("Time elapsed:        %v\n", elapsed.Round(time.Millisecond))

	return nil
}

func loadData(jsonPath string, logger *slog.Logger) (*database.ImportData, error) {
	if jsonPath == "" {
		logger.Info("using bundled holiday data")
		return database.DefaultData()
	}

	logger.Info("reading JSON file", slog.String("path", jsonPath))
	raw, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("read JSON file: %w", err)
	}
	return database.ParseImportData(raw)
}

// checkRules resolves every holiday's rule for year and reports all
// failures at once.
func checkRules(holidays []database.Holiday, year int) error {
	resolver := dates.NewResolver(nil)

	var errs []error
	for _, h := range holidays {
		if _, err := resolver.LiteralDate(h.DateRule, year); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", h.NameEn, err))
			continue
		}
		if _, err := resolver.ObservedDate(h.DateRule, year); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", h.NameEn, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid date rules: %w", errors.Join(errs...))
	}
	return nil
}
