// Package core provides the roster import, entry and aggregation logic.
// This package has no UI dependencies and can be used by any frontend.
package core

import "time"

// RawRow is one spreadsheet row as read from the file. Cells are untyped text.
type RawRow []string

// Gender is the single-letter gender code used by the school's data:
// "L" (laki-laki) or "P" (perempuan). Imported rows keep whatever text the
// source carried, so a Gender value is not guaranteed to be one of the two.
type Gender string

const (
	GenderMale   Gender = "L"
	GenderFemale Gender = "P"
)

// Valid reports whether g is one of the two known codes.
func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

// StudentRecord is the canonical 9-field student shape used everywhere
// downstream of import. Every field is always present; missing data is "".
type StudentRecord struct {
	NISN       string `json:"nisn"`
	FullName   string `json:"full_name"`
	ClassName  string `json:"class_name"`
	Gender     Gender `json:"gender"`
	BirthPlace string `json:"birth_place"`
	BirthDate  string `json:"birth_date"` // formatted text, never re-parsed
	ParentName string `json:"parent_name"`
	Address    string `json:"address"`
	Religion   string `json:"religion"`
}

// Layout identifies which shape a raw table was recognised as.
type Layout string

const (
	// LayoutLegacy is the fixed-column school export with a track label
	// ("IPA"/"IPS") in the sixth column.
	LayoutLegacy Layout = "legacy"

	// LayoutStandard is a header-bearing table matched by column name.
	LayoutStandard Layout = "standard"
)

// Batch is the result of classifying one raw table. The layout is decided
// once for the whole table.
type Batch struct {
	Layout  Layout
	Records []StudentRecord

	// Skipped counts input rows that produced no record (the standard header,
	// or rows of a legacy table that do not carry the track label).
	Skipped int
}

// ImportResult describes a completed import into a session roster.
type ImportResult struct {
	ImportID  string        `json:"import_id"`
	FileName  string        `json:"file_name"`
	Layout    Layout        `json:"layout"`
	TotalRows int           `json:"total_rows"`
	Imported  int           `json:"imported"`
	Skipped   int           `json:"skipped"`
	RosterLen int           `json:"roster_len"`
	Duration  time.Duration `json:"duration"`
}

// GenderCount is one bar of the gender chart.
type GenderCount struct {
	Gender Gender `json:"gender"`
	Count  int    `json:"count"`
}

// ClassCount is the number of students recorded under one class label.
type ClassCount struct {
	ClassName string `json:"class_name"`
	Count     int    `json:"count"`
}

// RosterStats holds the on-demand aggregates shown on the dashboard.
type RosterStats struct {
	Total   int           `json:"total"`
	Genders []GenderCount `json:"genders"`
	Classes []ClassCount  `json:"classes"`
}
