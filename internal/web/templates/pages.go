package templates

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/sman2ps/dapodik/internal/core"
)

const allClasses = core.AllClasses

// DashboardData is the view model of the roster listing.
type DashboardData struct {
	Classes  []string // filter options, first-seen order
	Selected string
	Records  []core.StudentRecord
	Stats    core.RosterStats
	Empty    bool // the whole roster is empty, not just the filtered view
}

// Dashboard lists the roster with the class filter and gender chart.
func Dashboard(d DashboardData) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<h2>Data Siswa Terdaftar</h2>`)

		if d.Empty {
			alert(&b, "warning", "Belum ada data siswa. Silakan Input atau Upload file.")
			_, err := io.WriteString(w, b.String())
			return err
		}

		b.WriteString(`<form method="get" action="/"><label for="kelas">Filter Kelas:</label>`)
		classSelect(&b, "kelas", d.Classes, d.Selected, true)
		b.WriteString(` <button type="submit">Tampilkan</button></form>`)

		recordTable(&b, d.Records)
		alert(&b, "info", fmt.Sprintf("Total Siswa: %d Orang", d.Stats.Total))
		genderChart(&b, d.Stats.Genders)

		_, err := io.WriteString(w, b.String())
		return err
	})
}

func recordTable(b *strings.Builder, recs []core.StudentRecord) {
	b.WriteString(`<table><thead><tr><th>#</th>`)
	for _, col := range core.Columns() {
		b.WriteString(`<th>` + templ.EscapeString(col) + `</th>`)
	}
	b.WriteString(`</tr></thead><tbody>`)
	for i, rec := range recs {
		b.WriteString(`<tr><td>` + strconv.Itoa(i+1) + `</td>`)
		for _, cell := range rec.Row() {
			b.WriteString(`<td>` + templ.EscapeString(cell) + `</td>`)
		}
		b.WriteString(`</tr>`)
	}
	b.WriteString(`</tbody></table>`)
}

func genderChart(b *strings.Builder, counts []core.GenderCount) {
	if len(counts) == 0 {
		return
	}
	top := counts[0].Count
	b.WriteString(`<h3>Jenis Kelamin</h3><div class="chart" style="max-width:480px">`)
	for _, gc := range counts {
		pct := 0
		if top > 0 {
			pct = gc.Count * 100 / top
		}
		label := string(gc.Gender)
		if label == "" {
			label = "-"
		}
		fmt.Fprintf(b, `<div>%s</div><div class="bar" style="width:%d%%">%d</div>`,
			templ.EscapeString(label), pct, gc.Count)
	}
	b.WriteString(`</div>`)
}

// EntryFormData is the view model of the manual entry form.
type EntryFormData struct {
	Classes   []string
	Religions []string
	Input     core.StudentInput
	Errors    []core.ValidationError
	Added     string // name of the student just added
}

// EntryForm renders the manual entry form. Rejected input is echoed back.
func EntryForm(d EntryFormData) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<h2>Input Data Siswa Baru</h2>`)

		if d.Added != "" {
			alert(&b, "success", fmt.Sprintf("Siswa %s berhasil ditambahkan!", d.Added))
		}
		if len(d.Errors) > 0 {
			b.WriteString(`<div class="alert alert-error"><ul>`)
			for _, ve := range d.Errors {
				b.WriteString(`<li>` + templ.EscapeString(ve.Error()) + `</li>`)
			}
			b.WriteString(`</ul></div>`)
		}

		in := d.Input
		b.WriteString(`<form class="grid" method="post" action="/input">`)
		textInput(&b, "nisn", "NISN", in.NISN, "text")
		textInput(&b, "birth_place", "Tempat Lahir", in.BirthPlace, "text")
		textInput(&b, "full_name", "Nama Lengkap", in.FullName, "text")
		textInput(&b, "birth_date", "Tanggal Lahir", in.BirthDate, "date")

		b.WriteString(`<div><label for="class_name">Kelas</label>`)
		classSelect(&b, "class_name", d.Classes, in.ClassName, false)
		b.WriteString(`</div>`)
		textInput(&b, "parent_name", "Nama Orangtua", in.ParentName, "text")

		b.WriteString(`<div><label>Jenis Kelamin</label>`)
		for _, g := range []core.Gender{core.GenderMale, core.GenderFemale} {
			checked := ""
			if strings.EqualFold(in.Gender, string(g)) || (in.Gender == "" && g == core.GenderMale) {
				checked = " checked"
			}
			fmt.Fprintf(&b, `<label><input type="radio" name="gender" value="%s"%s style="width:auto"> %s</label>`, g, checked, g)
		}
		b.WriteString(`</div>`)
		textInput(&b, "address", "Alamat", in.Address, "text")

		b.WriteString(`<div><label for="religion">Agama</label>`)
		classSelect(&b, "religion", d.Religions, in.Religion, false)
		b.WriteString(`</div>`)

		b.WriteString(`<div style="grid-column:1/3"><button type="submit">Simpan Data</button></div></form>`)

		_, err := io.WriteString(w, b.String())
		return err
	})
}

func textInput(b *strings.Builder, name, label, value, typ string) {
	fmt.Fprintf(b, `<div><label for="%s">%s</label><input type="%s" id="%s" name="%s" value="%s"></div>`,
		name, templ.EscapeString(label), typ, name, name, templ.EscapeString(value))
}

// UploadPageData is the view model of the upload page.
type UploadPageData struct {
	MaxFileSize int64
	Result      *core.ImportResult
	Error       *core.UserMessage
}

// ImportMessage is the success line shown after an import. It names the
// layout the file was recognised as.
func ImportMessage(res *core.ImportResult) string {
	if res.Layout == core.LayoutLegacy {
		return fmt.Sprintf("Berhasil mengimpor %d data dari format khusus SMAN 2!", res.Imported)
	}
	return fmt.Sprintf("Berhasil mengimpor %d data (format standar).", res.Imported)
}

// UploadPage renders the file upload form and the outcome of the last import.
func UploadPage(d UploadPageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<h2>Upload File CSV/Excel</h2>`)

		if d.Result != nil {
			alert(&b, "success", ImportMessage(d.Result))
		}
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
		if d.Error != nil {
			if err := ErrorAlert(d.Error.Message, d.Error.Action, d.Error.Code).Render(ctx, w); err != nil {
				return err
			}
		}

		b.Reset()
		b.WriteString(`<form method="post" action="/upload" enctype="multipart/form-data">`)
		b.WriteString(`<label for="file">Pilih file</label>`)
		b.WriteString(`<input type="file" id="file" name="file" accept=".csv,.xlsx">`)
		if d.MaxFileSize > 0 {
			fmt.Fprintf(&b, `<small>Maksimal %d MB</small>`, d.MaxFileSize/(1<<20))
		}
		b.WriteString(`<p><button type="submit">Upload</button></p></form>`)
		b.WriteString(`<p><a href="/api/template.csv">Unduh template CSV</a></p>`)

		_, err := io.WriteString(w, b.String())
		return err
	})
}

// PrintPageData is the view model of the print page.
type PrintPageData struct {
	Classes  []string
	Selected string
	Count    int
}

// PrintPage offers the PDF download for the whole roster or one class.
func PrintPage(d PrintPageData) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<h2>Cetak Laporan PDF</h2>`)

		if d.Count == 0 {
			alert(&b, "error", "Tidak ada data untuk dicetak.")
			_, err := io.WriteString(w, b.String())
			return err
		}

		b.WriteString(`<form method="get" action="/cetak/report.pdf"><label for="kelas">Kelas</label>`)
		classSelect(&b, "kelas", d.Classes, d.Selected, true)
		b.WriteString(`<p><button type="submit">Generate PDF</button></p></form>`)
		alert(&b, "info", fmt.Sprintf("%d siswa siap dicetak.", d.Count))

		_, err := io.WriteString(w, b.String())
		return err
	})
}
