package core

// convert.go holds the small text conversions shared by import and entry:
//   - header cleanup and header-to-field indexing
//   - safe positional cell access
//   - birth date parsing (entry forms) and formatting (stored text)

import (
	"fmt"
	"strings"
	"time"
)

// BirthDateLayout is the layout birth dates are formatted with at entry time,
// e.g. "17 August 2006". After formatting the value is opaque text.
const BirthDateLayout = "02 January 2006"

// entryDateLayouts are accepted when a birth date arrives as text from a form
// or the CLI. HTML date inputs submit ISO dates.
var entryDateLayouts = []string{
	"2006-01-02",
	"02/01/2006", "2/1/2006",
	"02-01-2006", "2-1-2006",
	"02.01.2006",
	BirthDateLayout,
	"2 January 2006",
}

// HeaderIndex maps canonical fields to their position in a standard table.
type HeaderIndex map[Field]int

// MakeHeaderIndex builds a HeaderIndex from a header row. Unrecognised
// columns are ignored; when a field appears twice the first column wins.
func MakeHeaderIndex(header RawRow) HeaderIndex {
	idx := make(HeaderIndex, len(fieldSpecs))
	for i, h := range header {
		f, ok := LookupField(h)
		if !ok {
			continue
		}
		if _, seen := idx[f]; seen {
			continue
		}
		idx[f] = i
	}
	return idx
}

// CleanCell removes common spreadsheet artifacts from a header cell:
// - Trims whitespace (including a stray BOM)
// - Removes Excel formula prefix (="...")
// - Removes surrounding quotes
func CleanCell(s string) string {
	s = strings.TrimSpace(strings.TrimPrefix(s, "\ufeff"))

	if strings.HasPrefix(s, "=\"") && strings.HasSuffix(s, "\"") {
		s = s[2 : len(s)-1]
	} else if strings.HasPrefix(s, "=") {
		s = s[1:]
	}

	return strings.TrimSpace(strings.Trim(s, `"'`))
}

// cellAt returns row[i], or "" when the row is too short.
func cellAt(row RawRow, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

// FormatBirthDate renders a birth date the way it is stored on the roster.
func FormatBirthDate(t time.Time) string {
	return t.Format(BirthDateLayout)
}

// ParseEntryDate parses a birth date typed or picked at entry time.
func ParseEntryDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("invalid date: empty")
	}
	for _, layout := range entryDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date: %q", s)
}
