package database

// migrationsSQL contains all database migrations.
// Migrations are applied in order by version number.
var migrationsSQL = map[int]string{
	1: migrationV1Holidays,
}

// migrationV1Holidays creates the provinces and holidays tables.
//
// A holiday row holds its date rule, not a date. The same rule can back
// several holidays (Family Day and Louis Riel Day are both
// "Third Monday February"), and a holiday applies to every province linked
// in province_holidays.
const migrationV1Holidays = `
-- ============================================================================
-- Table: provinces
-- ============================================================================
CREATE TABLE IF NOT EXISTS provinces (
    -- Two-letter postal abbreviation: "ON", "QC", "NL"
    id TEXT PRIMARY KEY,
    name_en TEXT NOT NULL,
    name_fr TEXT NOT NULL,
    source_link TEXT NOT NULL DEFAULT '',
    source_en TEXT NOT NULL DEFAULT '',

    created_at TEXT NOT NULL DEFAULT (datetime('now'))
);

-- ============================================================================
-- Table: holidays
-- ============================================================================
CREATE TABLE IF NOT EXISTS holidays (
    id INTEGER PRIMARY KEY AUTOINCREMENT,

    -- Examples: "July 1", "Third Monday September", "Friday before Easter"
    date_rule TEXT NOT NULL,

    name_en TEXT NOT NULL,
    name_fr TEXT NOT NULL,

    -- Observed by federally regulated employers
    federal INTEGER NOT NULL DEFAULT 0 CHECK (federal IN (0, 1)),

    created_at TEXT NOT NULL DEFAULT (datetime('now')),

    UNIQUE (name_en, date_rule)
);

CREATE INDEX IF NOT EXISTS idx_holidays_federal
    ON holidays(federal)
    WHERE federal = 1;

-- ============================================================================
-- Table: province_holidays
-- ============================================================================
CREATE TABLE IF NOT EXISTS province_holidays (
    province_id TEXT NOT NULL,
    holiday_id INTEGER NOT NULL,

    FOREIGN KEY (province_id) REFERENCES provinces(id) ON DELETE CASCADE,
    FOREIGN KEY (holiday_id) REFERENCES holidays(id) ON DELETE CASCADE,

    UNIQUE (province_id, holiday_id)
);

CREATE INDEX IF NOT EXISTS idx_province_holidays_holiday
    ON province_holidays(holiday_id);
`
