package core

// export.go writes a roster back out as a standard table. Both formats use
// the standard header row, so an exported file imports again unchanged.

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// ExportSheetName is the sheet written by WriteXLSX.
const ExportSheetName = "Data Siswa"

// textNumFmt is Excel's built-in "@" (text) format. It keeps NISNs with
// leading zeros from being turned into numbers when the file is edited.
const textNumFmt = 49

// WriteCSV writes records as a standard comma-separated table.
func WriteCSV(w io.Writer, recs []StudentRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns()); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for i := range recs {
		if err := cw.Write(recs[i].Row()); err != nil {
			return fmt.Errorf("write csv row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteTemplateCSV writes the header row only.
func WriteTemplateCSV(w io.Writer) error {
	return WriteCSV(w, nil)
}

// WriteXLSX writes records as a single-sheet workbook with every cell stored
// as text.
func WriteXLSX(w io.Writer, recs []StudentRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), ExportSheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	style, err := f.NewStyle(&excelize.Style{NumFmt: textNumFmt})
	if err != nil {
		return fmt.Errorf("create text style: %w", err)
	}

	cols := Columns()
	if err := writeSheetRow(f, 1, cols); err != nil {
		return err
	}
	for i := range recs {
		if err := writeSheetRow(f, i+2, recs[i].Row()); err != nil {
			return err
		}
	}

	last, err := excelize.CoordinatesToCellName(len(cols), len(recs)+1)
	if err != nil {
		return fmt.Errorf("style range: %w", err)
	}
	if err := f.SetCellStyle(ExportSheetName, "A1", last, style); err != nil {
		return fmt.Errorf("apply text style: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeSheetRow(f *excelize.File, rowNum int, cells []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return fmt.Errorf("row %d: %w", rowNum, err)
	}
	values := make([]any, len(cells))
	for i, c := range cells {
		values[i] = c
	}
	if err := f.SetSheetRow(ExportSheetName, cell, &values); err != nil {
		return fmt.Errorf("write row %d: %w", rowNum, err)
	}
	return nil
}
