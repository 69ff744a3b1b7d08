package core

// classify.go turns a raw, headerless table into canonical student records.
//
// Two shapes are recognised without the caller declaring which one it has:
//
//  1. The school's own export ("legacy layout"): no usable header, fixed
//     column positions, a track label in column index 5. Rows are sniffed one
//     at a time; rows that do not carry the label (titles, blank lines,
//     sub-headers) produce nothing.
//  2. A standard table: the first row names the columns, later rows are
//     matched by name.
//
// The standard interpretation is used only when not a single row of the input
// looks like a legacy row.

// legacyMinCells is the sniff threshold: a legacy row has more than this
// many cells. Offsets beyond the threshold are still read; missing ones
// default to "".
const legacyMinCells = 10

// legacyTrackColumn holds the track label in a legacy row.
const legacyTrackColumn = 5

// legacyTracks are the track labels that identify a legacy row.
var legacyTracks = map[string]bool{
	"IPA": true,
	"IPS": true,
}

// legacyColumns maps legacy export offsets (0-based) to canonical fields.
// A change in the export format is a one-line edit here.
var legacyColumns = []struct {
	Offset int
	Field  Field
}{
	{3, FieldNISN},
	{7, FieldFullName},
	{6, FieldClassName},
	{10, FieldGender},
	{8, FieldBirthPlace},
	{9, FieldBirthDate},
	{11, FieldParentName},
	{12, FieldAddress},
	{15, FieldReligion},
}

// IsLegacyRow reports whether row follows the legacy export layout.
func IsLegacyRow(row RawRow) bool {
	return len(row) > legacyMinCells && legacyTracks[row[legacyTrackColumn]]
}

// Classify converts rows into student records. See ClassifyBatch.
func Classify(rows []RawRow) []StudentRecord {
	return ClassifyBatch(rows).Records
}

// ClassifyBatch decides the layout of rows and converts every usable row
// into a StudentRecord, preserving input order. It never fails: cells that
// are missing default to "". The function is pure and safe to repeat.
func ClassifyBatch(rows []RawRow) Batch {
	for _, row := range rows {
		if IsLegacyRow(row) {
			return classifyLegacy(rows)
		}
	}
	return classifyStandard(rows)
}

func classifyLegacy(rows []RawRow) Batch {
	b := Batch{Layout: LayoutLegacy, Records: make([]StudentRecord, 0, len(rows))}
	for _, row := range rows {
		if !IsLegacyRow(row) {
			b.Skipped++
			continue
		}
		b.Records = append(b.Records, legacyRecord(row))
	}
	return b
}

func legacyRecord(row RawRow) StudentRecord {
	var rec StudentRecord
	for _, col := range legacyColumns {
		rec.Set(col.Field, cellAt(row, col.Offset))
	}
	return rec
}

func classifyStandard(rows []RawRow) Batch {
	b := Batch{Layout: LayoutStandard}
	if len(rows) == 0 {
		b.Records = []StudentRecord{}
		return b
	}

	idx := MakeHeaderIndex(rows[0])
	b.Skipped = 1
	b.Records = make([]StudentRecord, 0, len(rows)-1)

	for _, row := range rows[1:] {
		var rec StudentRecord
		for f, pos := range idx {
			rec.Set(f, cellAt(row, pos))
		}
		b.Records = append(b.Records, rec)
	}
	return b
}
