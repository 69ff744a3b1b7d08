package templates

import (
	"bytes"
	"context"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sman2ps/dapodik/internal/core"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

func TestLayout_MarksActiveMenu(t *testing.T) {
	out := render(t, Layout("upload", templ.NopComponent))
	assert.Contains(t, out, `<a href="/upload" class="active">Upload File</a>`)
	assert.Contains(t, out, `<a href="/">Dashboard</a>`)
	assert.Contains(t, out, AppTitle)
}

func TestDashboard_EscapesCells(t *testing.T) {
	recs := []core.StudentRecord{
		{FullName: "<script>x</script>", ClassName: "XII IPS 1", Gender: core.GenderMale},
		{FullName: "Ani", ClassName: "XII IPS 1", Gender: core.GenderFemale},
		{FullName: "Budi", ClassName: "XII IPS 1", Gender: core.GenderMale},
	}
	out := render(t, Dashboard(DashboardData{
		Classes:  []string{"XII IPS 1"},
		Selected: core.AllClasses,
		Records:  recs,
		Stats:    core.ComputeStats(recs),
	}))

	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "&lt;script&gt;")
	assert.Contains(t, out, "Total Siswa: 3 Orang")
	assert.Contains(t, out, `style="width:100%">2</div>`)
	assert.Contains(t, out, `style="width:50%">1</div>`)
	assert.Contains(t, out, `<option value="Semua" selected>`)
}

func TestDashboard_Empty(t *testing.T) {
	out := render(t, Dashboard(DashboardData{Empty: true}))
	assert.Contains(t, out, "Belum ada data siswa. Silakan Input atau Upload file.")
	assert.NotContains(t, out, "<table>")
}

func TestImportMessage(t *testing.T) {
	assert.Equal(t, "Berhasil mengimpor 5 data dari format khusus SMAN 2!",
		ImportMessage(&core.ImportResult{Layout: core.LayoutLegacy, Imported: 5}))
	assert.Equal(t, "Berhasil mengimpor 3 data (format standar).",
		ImportMessage(&core.ImportResult{Layout: core.LayoutStandard, Imported: 3}))
}

func TestEntryForm_EchoesInput(t *testing.T) {
	out := render(t, EntryForm(EntryFormData{
		Classes:   []string{"XII MIPA 1", "XII IPS 1"},
		Religions: []string{"Islam"},
		Input:     core.StudentInput{FullName: `A "quoted" name`, ClassName: "XII IPS 1", Gender: "P"},
		Errors:    []core.ValidationError{{Field: "Tanggal Lahir", Message: "invalid date format"}},
	}))

	assert.Contains(t, out, `value="A &#34;quoted&#34; name"`)
	assert.Contains(t, out, `<option value="XII IPS 1" selected>`)
	assert.Contains(t, out, `value="P" checked`)
	assert.Contains(t, out, "Tanggal Lahir: invalid date format")
}

func TestErrorAlert(t *testing.T) {
	out := render(t, ErrorAlert("Jenis file tidak didukung", "Gunakan file .csv atau .xlsx", "FILE005"))
	assert.Contains(t, out, `role="alert"`)
	assert.Contains(t, out, "Kode: FILE005")
}
