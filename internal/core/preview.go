package core

import (
	"context"
	"io"
	"time"
)

// PreviewSummary contains the summary counts for an import preview.
type PreviewSummary struct {
	Layout          Layout `json:"layout"`
	TotalRows       int    `json:"totalRows"`
	Records         int    `json:"records"`
	SkippedRows     int    `json:"skippedRows"`
	DuplicateNISN   int    `json:"duplicateNisn"`
	MissingNameRows int    `json:"missingNameRows"`
}

// RowPreview is one record as it would be appended, with its source line.
type RowPreview struct {
	LineNumber int           `json:"lineNumber"`
	Record     StudentRecord `json:"record"`
}

// DuplicatePreview lists the source lines sharing one NISN. Duplicates are
// imported anyway; the preview only points them out.
type DuplicatePreview struct {
	NISN        string `json:"nisn"`
	LineNumbers []int  `json:"lineNumbers"`
}

// PreviewResponse is the read-only analysis of an upload.
type PreviewResponse struct {
	FileName         string             `json:"fileName"`
	Summary          PreviewSummary     `json:"summary"`
	Samples          []RowPreview       `json:"samples"`
	DuplicateSamples []DuplicatePreview `json:"duplicateSamples"`
	ProcessingTimeMs int64              `json:"processingTimeMs"`
}

// Sample limits
const (
	maxRowSamples       = 10
	maxDuplicateSamples = 10
)

// Preview reads and classifies a file exactly like Import but appends
// nothing, so the user can check which layout was detected first.
func (s *Service) Preview(ctx context.Context, fileName string, r io.Reader) (*PreviewResponse, error) {
	if err := s.limiter.Acquire(ctx); err != nil {
		return nil, err
	}
	defer s.limiter.Release()

	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, s.cfg.ImportTimeout)
	defer cancel()

	table, err := ReadTable(ctx, fileName, r, s.cfg.MaxFileSize)
	if err != nil {
		return nil, err
	}

	resp := AnalyzeTable(table)
	resp.FileName = fileName
	resp.ProcessingTimeMs = time.Since(start).Milliseconds()
	return resp, nil
}

// AnalyzeRows summarises rows that carry no source positions; row i is
// reported as line i+1.
func AnalyzeRows(rows []RawRow) *PreviewResponse {
	t := &Table{Rows: rows, Lines: make([]int, len(rows))}
	for i := range rows {
		t.Lines[i] = i + 1
	}
	return AnalyzeTable(t)
}

// AnalyzeTable classifies the table and summarises the outcome. Line numbers
// in the response are the positions recorded by ReadTable.
func AnalyzeTable(t *Table) *PreviewResponse {
	rows := t.Rows
	batch := ClassifyBatch(rows)
	lines := recordLines(t, batch.Layout)

	resp := &PreviewResponse{
		Summary: PreviewSummary{
			Layout:      batch.Layout,
			TotalRows:   len(rows),
			Records:     len(batch.Records),
			SkippedRows: batch.Skipped,
		},
		Samples:          make([]RowPreview, 0, maxRowSamples),
		DuplicateSamples: make([]DuplicatePreview, 0),
	}

	byNISN := make(map[string][]int)
	var order []string
	for i, rec := range batch.Records {
		if len(resp.Samples) < maxRowSamples {
			resp.Samples = append(resp.Samples, RowPreview{LineNumber: lines[i], Record: rec})
		}
		if rec.FullName == "" {
			resp.Summary.MissingNameRows++
		}
		if rec.NISN == "" {
			continue
		}
		if _, ok := byNISN[rec.NISN]; !ok {
			order = append(order, rec.NISN)
		}
		byNISN[rec.NISN] = append(byNISN[rec.NISN], lines[i])
	}

	for _, nisn := range order {
		lns := byNISN[nisn]
		if len(lns) < 2 {
			continue
		}
		resp.Summary.DuplicateNISN++
		if len(resp.DuplicateSamples) < maxDuplicateSamples {
			resp.DuplicateSamples = append(resp.DuplicateSamples, DuplicatePreview{NISN: nisn, LineNumbers: lns})
		}
	}
	return resp
}

// recordLines returns the source line of every record ClassifyBatch
// produces for t, in the same order.
func recordLines(t *Table, layout Layout) []int {
	if layout != LayoutLegacy {
		if len(t.Lines) < 2 {
			return nil
		}
		return t.Lines[1:]
	}
	var lines []int
	for i, row := range t.Rows {
		if IsLegacyRow(row) {
			lines = append(lines, t.Lines[i])
		}
	}
	return lines
}
