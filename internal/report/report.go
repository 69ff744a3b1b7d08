// Package report renders a roster as the printable verification document:
// letterhead, a paginated student grid and the signature block.
package report

import (
	"errors"
	"strconv"
	"time"

	"github.com/sman2ps/dapodik/internal/config"
	"github.com/sman2ps/dapodik/internal/core"
)

// ErrEmptyRoster is returned when there is nothing to print.
var ErrEmptyRoster = errors.New("tidak ada data untuk dicetak")

// FileName is the download name of the generated document.
const FileName = "Data_Siswa_SMAN2_PSiantar.pdf"

// Column is one column of the printed grid.
type Column struct {
	Header   string
	Width    float64 // mm
	MaxChars int     // 0 = no truncation
	Align    string  // fpdf alignment: "L" or "C"
}

// Columns is the fixed grid layout, in print order.
var Columns = []Column{
	{Header: "No", Width: 10, Align: "C"},
	{Header: "NISN", Width: 25, Align: "C"},
	{Header: "Nama Lengkap", Width: 60, MaxChars: 35, Align: "L"},
	{Header: "Kelas", Width: 25, Align: "C"},
	{Header: "L/P", Width: 10, Align: "C"},
	{Header: "Tgl Lahir", Width: 30, Align: "L"},
	{Header: "Orangtua", Width: 40, MaxChars: 20, Align: "L"},
	{Header: "Alamat", Width: 50, MaxChars: 30, Align: "L"},
	{Header: "Agama", Width: 20, Align: "C"},
}

// Signatory is one signature column.
type Signatory struct {
	Title string
	Name  string
	NIP   string
}

// Options controls the letterhead and signature block.
type Options struct {
	Province string
	Office   string
	School   string
	Address  string
	Email    string

	Title string

	// City and SignatureDate form the place/date line above the principal.
	// An empty SignatureDate prints the month and year of Now.
	City          string
	SignatureDate string

	Verifier  Signatory
	Principal Signatory

	// Now stamps the footer. Defaults to time.Now.
	Now func() time.Time
}

// OptionsFromConfig builds Options from the school settings.
func OptionsFromConfig(c config.SchoolConfig) Options {
	return Options{
		Province:      c.Province,
		Office:        c.Office,
		School:        c.Name,
		Address:       c.Address,
		Email:         "E-mail: " + c.Email,
		Title:         c.ReportTitle,
		City:          c.City,
		SignatureDate: c.SignatureDate,
		Verifier:      Signatory{Title: c.VerifierTitle, Name: c.VerifierName, NIP: "NIP: " + c.VerifierNIP},
		Principal:     Signatory{Title: c.PrincipalTitle, Name: c.PrincipalName, NIP: "NIP. " + c.PrincipalNIP},
	}
}

// GridRows returns the printed cells of every record, numbered from 1, with
// long names, parents and addresses cut to their column limits.
func GridRows(recs []core.StudentRecord) [][]string {
	rows := make([][]string, len(recs))
	for i, r := range recs {
		cells := []string{
			strconv.Itoa(i + 1),
			r.NISN,
			r.FullName,
			r.ClassName,
			string(r.Gender),
			r.BirthDate,
			r.ParentName,
			r.Address,
			r.Religion,
		}
		for j, col := range Columns {
			cells[j] = truncate(cells[j], col.MaxChars)
		}
		rows[i] = cells
	}
	return rows
}

// truncate keeps at most n characters of s.
func truncate(s string, n int) string {
	if n <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

var monthNames = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// signatureLine returns the "City, Month Year" line.
func (o Options) signatureLine(now time.Time) string {
	date := o.SignatureDate
	if date == "" {
		date = monthNames[now.Month()-1] + " " + strconv.Itoa(now.Year())
	}
	if o.City == "" {
		return date
	}
	return o.City + ", " + date
}
