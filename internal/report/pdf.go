package report

import (
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/sman2ps/dapodik/internal/core"
)

const (
	// pageBreakY is the cursor position (mm) past which the next row starts
	// a new page.
	pageBreakY = 180

	headerRowHeight = 8
	rowHeight       = 6
	signatureWidth  = 90
)

// Render writes the roster document for recs to w.
func Render(w io.Writer, recs []core.StudentRecord, opts Options) error {
	pdf, err := build(recs, opts)
	if err != nil {
		return err
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}

func build(recs []core.StudentRecord, opts Options) (*fpdf.Fpdf, error) {
	if len(recs) == 0 {
		return nil, ErrEmptyRoster
	}
	now := time.Now()
	if opts.Now != nil {
		now = opts.Now()
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetHeaderFunc(func() {
		pdf.SetFont("Arial", "B", 12)
		centered(pdf, tr(opts.Province))
		centered(pdf, tr(opts.Office))
		pdf.SetFont("Arial", "B", 14)
		centered(pdf, tr(opts.School))
		pdf.SetFont("Arial", "", 9)
		centered(pdf, tr(opts.Address))
		centered(pdf, tr(opts.Email))
		pdf.Ln(5)
		pdf.Line(10, 35, 285, 35)
		pdf.Ln(5)
	})

	printed := now.Format("02-01-2006")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Arial", "I", 8)
		footer := fmt.Sprintf("Halaman %d/{nb} - Dicetak pada: %s", pdf.PageNo(), printed)
		pdf.CellFormat(0, 10, footer, "", 0, "C", false, 0, "")
	})
	pdf.AliasNbPages("")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(0, 10, tr(opts.Title), "", 1, "C", false, 0, "")
	pdf.Ln(2)

	tableHeader(pdf)
	pdf.SetFont("Arial", "", 7)
	for _, row := range GridRows(recs) {
		if pdf.GetY() > pageBreakY {
			pdf.AddPage()
			tableHeader(pdf)
			pdf.SetFont("Arial", "", 7)
		}
		for i, col := range Columns {
			pdf.CellFormat(col.Width, rowHeight, tr(row[i]), "1", 0, col.Align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	signatures(pdf, tr, opts, now)

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return pdf, nil
}

func centered(pdf *fpdf.Fpdf, text string) {
	pdf.CellFormat(0, 5, text, "", 1, "C", false, 0, "")
}

// tableHeader draws the shaded column header row.
func tableHeader(pdf *fpdf.Fpdf) {
	pdf.SetFont("Arial", "B", 8)
	pdf.SetFillColor(200, 220, 255)
	for _, col := range Columns {
		pdf.CellFormat(col.Width, headerRowHeight, col.Header, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
}

// signatures draws the verifier (left) and principal (right) columns.
func signatures(pdf *fpdf.Fpdf, tr func(string) string, opts Options, now time.Time) {
	line := func(left, right string) {
		pdf.CellFormat(signatureWidth, 5, tr(left), "", 0, "C", false, 0, "")
		pdf.CellFormat(signatureWidth, 5, "", "", 0, "C", false, 0, "")
		pdf.CellFormat(signatureWidth, 5, tr(right), "", 1, "C", false, 0, "")
	}

	pdf.Ln(10)
	pdf.SetFont("Arial", "", 8)
	line(opts.Verifier.Title, opts.signatureLine(now))
	line("", opts.Principal.Title)

	pdf.Ln(20)

	pdf.SetFont("Arial", "B", 8)
	line(opts.Verifier.Name, opts.Principal.Name)
	pdf.SetFont("Arial", "", 8)
	line(opts.Verifier.NIP, opts.Principal.NIP)
}
