package core

// ingest.go reads an uploaded spreadsheet into an ordered table of raw rows.
//
// Supported containers:
//   - CSV (comma, semicolon or tab separated; UTF-8 with or without BOM, or Windows-1252)
//   - XLSX/XLSM workbooks (first sheet only)
//
// The whole file is read into memory before it is decoded. Any failure here means the
// file is not tabular data at all and is reported as an *IngestionError.

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/xuri/excelize/v2"
)

// FileKind is the container format of an uploaded file.
type FileKind string

const (
	KindCSV  FileKind = "csv"
	KindXLSX FileKind = "xlsx"
)

// zipMagic starts every XLSX file.
var zipMagic = []byte("PK\x03\x04")

// IngestionError reports a file that cannot be read as a table.
// No rows from the file are applied when it is returned.
type IngestionError struct {
	FileName string
	Reason   string
	Err      error
}

func (e *IngestionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("ingest %s: %s: %v", e.FileName, e.Reason, e.Err)
	}
	return fmt.Sprintf("ingest %s: %s", e.FileName, e.Reason)
}

func (e *IngestionError) Unwrap() error {
	return e.Err
}

// IsIngestionError reports whether err is (or wraps) an *IngestionError.
func IsIngestionError(err error) bool {
	var ie *IngestionError
	return errors.As(err, &ie)
}

// DetectKind picks the container format from the file name, falling back to
// the leading bytes when the extension is missing or unknown.
func DetectKind(fileName string, head []byte) (FileKind, error) {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".csv", ".txt":
		return KindCSV, nil
	case ".xlsx", ".xlsm":
		return KindXLSX, nil
	case ".xls":
		return "", errors.New("unsupported file type: legacy .xls workbook, save as .xlsx or .csv")
	}

	if bytes.HasPrefix(head, zipMagic) {
		return KindXLSX, nil
	}
	if ext := filepath.Ext(fileName); ext != "" {
		return "", fmt.Errorf("unsupported file type: %s", ext)
	}
	return KindCSV, nil
}

// Table is a decoded spreadsheet. Lines[i] is the 1-based line (CSV) or
// sheet row (XLSX) on which Rows[i] starts. Blank lines are not rows.
type Table struct {
	Rows  []RawRow
	Lines []int
}

func (t *Table) add(row RawRow, line int) {
	t.Rows = append(t.Rows, row)
	t.Lines = append(t.Lines, line)
}

// ReadTable reads the whole file into a table. maxSize <= 0 disables the
// size check. An empty file yields an empty table and no error.
//
// ctx is checked between records, so a deadline stops decoding of a large
// file part way through. That error is returned as is, not as an
// *IngestionError.
func ReadTable(ctx context.Context, fileName string, r io.Reader, maxSize int64) (*Table, error) {
	if maxSize > 0 {
		r = io.LimitReader(r, maxSize+1)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &IngestionError{FileName: fileName, Reason: "read file", Err: err}
	}
	if maxSize > 0 && int64(len(data)) > maxSize {
		return nil, &IngestionError{
			FileName: fileName,
			Reason:   fmt.Sprintf("file too large: exceeds %d bytes", maxSize),
		}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return &Table{}, nil
	}

	kind, err := DetectKind(fileName, data)
	if err != nil {
		return nil, &IngestionError{FileName: fileName, Reason: err.Error()}
	}

	var t *Table
	switch kind {
	case KindXLSX:
		t, err = readXLSX(ctx, fileName, data)
	default:
		t, err = readCSV(ctx, fileName, data)
	}
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			return nil, fmt.Errorf("read %s: %w", fileName, err)
		}
		return nil, err
	}
	return t, nil
}

func readCSV(ctx context.Context, fileName string, data []byte) (*Table, error) {
	if bytes.IndexByte(data, 0) >= 0 {
		return nil, &IngestionError{FileName: fileName, Reason: "encoding error: file contains binary data"}
	}

	text, err := decodeText(data)
	if err != nil {
		return nil, &IngestionError{FileName: fileName, Reason: err.Error()}
	}

	cr := csv.NewReader(bytes.NewReader(text))
	cr.Comma = sniffDelimiter(text)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	t := &Table{}
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec, err := cr.Read()
		if err == io.EOF {
			return t, nil
		}
		if err != nil {
			return nil, &IngestionError{FileName: fileName, Reason: "invalid csv", Err: err}
		}
		line, _ := cr.FieldPos(0)
		t.add(RawRow(rec), line)
	}
}

// sniffRecords is how many leading records sniffDelimiter looks at.
const sniffRecords = 20

var delimiters = []rune{',', ';', '\t'}

// sniffDelimiter picks the separator that splits the leading records most
// consistently: the one whose most common per-record count (outside quotes)
// is shared by the most records. A title line such as "DAFTAR; SMAN 2" above
// a comma separated table therefore does not decide the file. Ties go to the
// higher count, then to ','. Indonesian-locale Excel writes ';'.
func sniffDelimiter(data []byte) rune {
	var records []map[rune]int
	cur := map[rune]int{}
	blank, inQuotes := true, false
	flush := func() {
		if !blank {
			records = append(records, cur)
		}
		cur, blank = map[rune]int{}, true
	}

	for _, r := range string(data) {
		if len(records) == sniffRecords {
			break
		}
		switch {
		case r == '"':
			inQuotes = !inQuotes
			blank = false
		case r == '\n' && !inQuotes:
			flush()
		case inQuotes:
		case r == ',' || r == ';' || r == '\t':
			cur[r]++
			blank = false
		case !unicode.IsSpace(r):
			blank = false
		}
	}
	if len(records) < sniffRecords {
		flush()
	}

	best, bestScore, bestCount := ',', 0, 0
	for _, d := range delimiters {
		freq := map[int]int{}
		for _, rec := range records {
			if n := rec[d]; n > 0 {
				freq[n]++
			}
		}
		score, count := 0, 0
		for n, f := range freq {
			if f > score || (f == score && n > count) {
				score, count = f, n
			}
		}
		if score > bestScore || (score == bestScore && count > bestCount) {
			best, bestScore, bestCount = d, score, count
		}
	}
	return best
}

// readXLSX reads the first sheet. Rows are padded to the widest row so that
// trailing blank cells, which the workbook does not store, still count
// towards the row width the way they do in a CSV export.
func readXLSX(ctx context.Context, fileName string, data []byte) (*Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, &IngestionError{FileName: fileName, Reason: "invalid workbook", Err: err}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &IngestionError{FileName: fileName, Reason: "workbook has no sheets"}
	}
	sheetErr := func(err error) error {
		return &IngestionError{FileName: fileName, Reason: fmt.Sprintf("read sheet %q", sheets[0]), Err: err}
	}

	rows, err := f.Rows(sheets[0])
	if err != nil {
		return nil, sheetErr(err)
	}
	defer rows.Close()

	t := &Table{}
	width, rowNum := 0, 0
	for rows.Next() {
		rowNum++
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		cols, err := rows.Columns()
		if err != nil {
			return nil, sheetErr(err)
		}
		if len(cols) == 0 {
			continue
		}
		width = max(width, len(cols))
		t.add(RawRow(cols), rowNum)
	}
	if err := rows.Error(); err != nil {
		return nil, sheetErr(err)
	}

	for i, row := range t.Rows {
		if len(row) < width {
			t.Rows[i] = append(row, make(RawRow, width-len(row))...)
		}
	}
	return t, nil
}
