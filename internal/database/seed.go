package database

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
)

//go:embed data/holidays.json
var defaultData []byte

// DefaultData returns the bundled Canadian provinces and holidays.
func DefaultData() (*ImportData, error) {
	return ParseImportData(defaultData)
}

// ParseImportData decodes the JSON import format.
func ParseImportData(raw []byte) (*ImportData, error) {
	var data ImportData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parse import data: %w", err)
	}
	return &data, nil
}

// Import inserts provinces, then holidays and their province links, in a
// single transaction. Nothing is written if any insert fails.
func (db *DB) Import(ctx context.Context, data *ImportData) (ImportStats, error) {
	var stats ImportStats

	err := db.WithTx(ctx, func(tx *Tx) error {
		for i := range data.Provinces {
			p := &data.Provinces[i]
			if err := tx.CreateProvince(ctx, p); err != nil {
				return fmt.Errorf("province %s: %w", p.ID, err)
			}
			stats.Provinces++
		}

		for i := range data.Holidays {
			h := &data.Holidays[i]
			if err := tx.CreateHoliday(ctx, h); err != nil {
				return fmt.Errorf("holiday %q: %w", h.NameEn, err)
			}
			db.logger.Debug("imported holiday",
				slog.Int64("id", h.ID),
				slog.String("name", h.NameEn),
				slog.String("rule", h.DateRule),
			)
			stats.Holidays++
			stats.Links += len(h.Provinces)
		}
		return nil
	})
	if err != nil {
		return ImportStats{}, err
	}

	return stats, nil
}

// Seed imports the bundled data set if the store has no holidays yet.
// Returns the number of holidays inserted.
func (db *DB) Seed(ctx context.Context) (int, error) {
	count, err := db.CountHolidays(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		db.logger.Debug("store already seeded", slog.Int("holidays", count))
		return 0, nil
	}

	data, err := DefaultData()
	if err != nil {
		return 0, err
	}

	stats, err := db.Import(ctx, data)
	if err != nil {
		return 0, fmt.Errorf("seed: %w", err)
	}

	db.logger.Info("seeded holiday data",
		slog.Int("provinces", stats.Provinces),
		slog.Int("holidays", stats.Holidays),
	)
	return stats.Holidays, nil
}
