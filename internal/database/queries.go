package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// querier is satisfied by both *DB and *Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// =============================================================================
// Province Queries
// =============================================================================

// CreateProvince inserts a province. Returns ErrDuplicate if the ID exists.
func (db *DB) CreateProvince(ctx context.Context, p *Province) error {
	return createProvince(ctx, db, p)
}

// CreateProvince inserts a province within the transaction.
func (tx *Tx) CreateProvince(ctx context.Context, p *Province) error {
	return createProvince(ctx, tx, p)
}

func createProvince(ctx context.Context, q querier, p *Province) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO provinces (id, name_en, name_fr, source_link, source_en)
		VALUES (?, ?, ?, ?, ?)
	`, p.ID, p.NameEn, p.NameFr, p.SourceLink, p.SourceEn)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert province %s: %w", p.ID, err)
	}
	return nil
}

// ListProvinces returns all provinces ordered by ID.
func (db *DB) ListProvinces(ctx context.Context) ([]Province, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, name_en, name_fr, source_link, source_en
		FROM provinces
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("query provinces: %w", err)
	}
	defer rows.Close()

	var provinces []Province
	for rows.Next() {
		var p Province
		if err := rows.Scan(&p.ID, &p.NameEn, &p.NameFr, &p.SourceLink, &p.SourceEn); err != nil {
			return nil, fmt.Errorf("scan province row: %w", err)
		}
		provinces = append(provinces, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate province rows: %w", err)
	}

	return provinces, nil
}

// GetProvince returns a province by ID ("ON"). IDs are matched
// case-insensitively. Returns ErrNotFound if it doesn't exist.
func (db *DB) GetProvince(ctx context.Context, id string) (*Province, error) {
	var p Province
	err := db.QueryRowContext(ctx, `
		SELECT id, name_en, name_fr, source_link, source_en
		FROM provinces
		WHERE id = ?
	`, strings.ToUpper(id)).Scan(&p.ID, &p.NameEn, &p.NameFr, &p.SourceLink, &p.SourceEn)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query province %s: %w", id, err)
	}
	return &p, nil
}

// =============================================================================
// Holiday Queries
// =============================================================================

// CreateHoliday inserts a holiday and links it to its provinces in one
// transaction. Sets h.ID on success.
func (db *DB) CreateHoliday(ctx context.Context, h *Holiday) error {
	return db.WithTx(ctx, func(tx *Tx) error {
		return tx.CreateHoliday(ctx, h)
	})
}

// CreateHoliday inserts a holiday within the transaction.
func (tx *Tx) CreateHoliday(ctx context.Context, h *Holiday) error {
	return createHoliday(ctx, tx, h)
}

func createHoliday(ctx context.Context, q querier, h *Holiday) error {
	result, err := q.ExecContext(ctx, `
		INSERT INTO holidays (date_rule, name_en, name_fr, federal)
		VALUES (?, ?, ?, ?)
	`, h.DateRule, h.NameEn, h.NameFr, h.Federal)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert holiday %q: %w", h.NameEn, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get holiday id: %w", err)
	}
	h.ID = id

	for _, provinceID := range h.Provinces {
		_, err := q.ExecContext(ctx,
			"INSERT INTO province_holidays (province_id, holiday_id) VALUES (?, ?)",
			strings.ToUpper(provinceID), id,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return ErrDuplicate
			}
			return fmt.Errorf("link holiday %d to %s: %w", id, provinceID, err)
		}
	}
	sort.Strings(h.Provinces)

	return nil
}

const holidaySelect = `
	SELECT h.id, h.date_rule, h.name_en, h.name_fr, h.federal,
		COALESCE(GROUP_CONCAT(ph.province_id), '')
	FROM holidays h
	LEFT JOIN province_holidays ph ON ph.holiday_id = h.id
`

// ListHolidays returns holidays matching the filter, ordered by ID.
func (db *DB) ListHolidays(ctx context.Context, filter HolidayFilter) ([]Holiday, error) {
	query := holidaySelect + `
		WHERE (? = '' OR h.id IN (
			SELECT holiday_id FROM province_holidays WHERE province_id = ?
		))
		AND (? = 0 OR h.federal = 1)
		GROUP BY h.id
		ORDER BY h.id
	`
	provinceID := strings.ToUpper(filter.ProvinceID)

	rows, err := db.QueryContext(ctx, query, provinceID, provinceID, filter.Federal)
	if err != nil {
		return nil, fmt.Errorf("query holidays: %w", err)
	}
	defer rows.Close()

	var holidays []Holiday
	for rows.Next() {
		h, err := scanHoliday(rows)
		if err != nil {
			return nil, err
		}
		holidays = append(holidays, *h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate holiday rows: %w", err)
	}

	return holidays, nil
}

// GetHoliday returns a holiday by ID. Returns ErrNotFound if it doesn't exist.
func (db *DB) GetHoliday(ctx context.Context, id int64) (*Holiday, error) {
	query := holidaySelect + `
		WHERE h.id = ?
		GROUP BY h.id
	`
	row := db.QueryRowContext(ctx, query, id)
	h, err := scanHoliday(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return h, nil
}

// CountHolidays returns the number of stored holidays.
func (db *DB) CountHolidays(ctx context.Context) (int, error) {
	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM holidays").Scan(&count); err != nil {
		return 0, fmt.Errorf("count holidays: %w", err)
	}
	return count, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanHoliday(s scanner) (*Holiday, error) {
	var h Holiday
	var provinces string
	err := s.Scan(&h.ID, &h.DateRule, &h.NameEn, &h.NameFr, &h.Federal, &provinces)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan holiday row: %w", err)
	}

	h.Provinces = []string{}
	if provinces != "" {
		h.Provinces = strings.Split(provinces, ",")
		sort.Strings(h.Provinces)
	}
	return &h, nil
}
