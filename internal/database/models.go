package database

// Province is a Canadian province or territory.
type Province struct {
	ID         string `json:"id"` // Postal abbreviation, e.g. "ON"
	NameEn     string `json:"nameEn"`
	NameFr     string `json:"nameFr"`
	SourceLink string `json:"sourceLink,omitempty"`
	SourceEn   string `json:"sourceEn,omitempty"`
}

// Holiday is a holiday definition. DateRule is resolved to a date per year
// by package dates.
type Holiday struct {
	ID        int64    `json:"id"`
	DateRule  string   `json:"dateRule"` // e.g. "Monday before May 25"
	NameEn    string   `json:"nameEn"`
	NameFr    string   `json:"nameFr"`
	Federal   bool     `json:"federal"`
	Provinces []string `json:"provinces"` // Province IDs, sorted
}

// HolidayFilter narrows ListHolidays. The zero value matches every holiday.
type HolidayFilter struct {
	ProvinceID string // Only holidays observed in this province
	Federal    bool   // Only federal holidays
}

// ImportData is the on-disk format read by Import and Seed.
type ImportData struct {
	Provinces []Province `json:"provinces"`
	Holidays  []Holiday  `json:"holidays"`
}

// ImportStats reports what an import inserted.
type ImportStats struct {
	Provinces int
	Holidays  int
	Links     int
}
