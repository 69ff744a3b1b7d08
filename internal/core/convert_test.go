package core

import (
	"testing"
	"time"
)

// ----------------------------------------------------------------------------
// CleanCell Tests
// ----------------------------------------------------------------------------

func TestCleanCell(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "simple string unchanged", input: "NISN", want: "NISN"},
		{name: "empty string", input: "", want: ""},
		{name: "surrounding whitespace", input: "  Kelas  ", want: "Kelas"},
		{name: "byte order mark", input: "\ufeffNISN", want: "NISN"},
		{name: "excel formula text", input: `="0012345678"`, want: "0012345678"},
		{name: "formula prefix without quotes", input: "=Agama", want: "Agama"},
		{name: "double quotes", input: `"Nama Lengkap"`, want: "Nama Lengkap"},
		{name: "single quotes", input: "'Alamat'", want: "Alamat"},
		{name: "inner spaces kept", input: " Tempat  Lahir ", want: "Tempat  Lahir"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CleanCell(tt.input)
			if got != tt.want {
				t.Errorf("CleanCell(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// ----------------------------------------------------------------------------
// Header matching Tests
// ----------------------------------------------------------------------------

func TestLookupField(t *testing.T) {
	tests := []struct {
		header string
		want   Field
		ok     bool
	}{
		{"NISN", FieldNISN, true},
		{"nisn", FieldNISN, true},
		{"Nama Lengkap", FieldFullName, true},
		{"nama_lengkap", FieldFullName, true},
		{" NAMA-LENGKAP ", FieldFullName, true},
		{"Nama", FieldFullName, true},
		{"Rombel", FieldClassName, true},
		{"L/P", FieldGender, true},
		{"Jenis Kelamin", FieldGender, true},
		{"Tgl Lahir", FieldBirthDate, true},
		{"Nama Orang Tua", FieldParentName, true},
		{"Religion", FieldReligion, true},
		{"Nomor HP", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			got, ok := LookupField(tt.header)
			if ok != tt.ok {
				t.Fatalf("LookupField(%q) ok = %v, want %v", tt.header, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("LookupField(%q) = %v, want %v", tt.header, got, tt.want)
			}
		})
	}
}

func TestMakeHeaderIndex(t *testing.T) {
	tests := []struct {
		name   string
		header RawRow
		want   HeaderIndex
	}{
		{
			name:   "standard headers",
			header: RawRow{"NISN", "Nama Lengkap", "Kelas", "JK"},
			want:   HeaderIndex{FieldNISN: 0, FieldFullName: 1, FieldClassName: 2, FieldGender: 3},
		},
		{
			name:   "any order and case",
			header: RawRow{"agama", "KELAS", "nisn"},
			want:   HeaderIndex{FieldReligion: 0, FieldClassName: 1, FieldNISN: 2},
		},
		{
			name:   "unknown columns ignored",
			header: RawRow{"No", "NISN", "Nomor HP", "Alamat"},
			want:   HeaderIndex{FieldNISN: 1, FieldAddress: 3},
		},
		{
			name:   "quoted headers cleaned",
			header: RawRow{`"NISN"`, `"Tanggal Lahir"`},
			want:   HeaderIndex{FieldNISN: 0, FieldBirthDate: 1},
		},
		{
			name:   "empty header",
			header: RawRow{},
			want:   HeaderIndex{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx := MakeHeaderIndex(tt.header)
			if len(idx) != len(tt.want) {
				t.Fatalf("MakeHeaderIndex() has %d fields, want %d: %v", len(idx), len(tt.want), idx)
			}
			for f, pos := range tt.want {
				if got, ok := idx[f]; !ok || got != pos {
					t.Errorf("idx[%v] = %d (present %v), want %d", f, got, ok, pos)
				}
			}
		})
	}
}

func TestMakeHeaderIndex_DuplicateHeaders(t *testing.T) {
	// "Nama" and "Nama Lengkap" both mean FullName; the first column wins.
	idx := MakeHeaderIndex(RawRow{"Nama", "NISN", "Nama Lengkap"})

	if got := idx[FieldFullName]; got != 0 {
		t.Errorf("idx[FullName] = %d, want 0", got)
	}
}

// ----------------------------------------------------------------------------
// Birth date Tests
// ----------------------------------------------------------------------------

func TestParseEntryDate(t *testing.T) {
	want := time.Date(2006, time.August, 17, 0, 0, 0, 0, time.UTC)

	valid := []string{
		"2006-08-17",
		"17/08/2006",
		"17/8/2006",
		"17-08-2006",
		"17.08.2006",
		"17 August 2006",
		" 2006-08-17 ",
	}
	for _, in := range valid {
		t.Run(in, func(t *testing.T) {
			got, err := ParseEntryDate(in)
			if err != nil {
				t.Fatalf("ParseEntryDate(%q) error: %v", in, err)
			}
			if !got.Equal(want) {
				t.Errorf("ParseEntryDate(%q) = %v, want %v", in, got, want)
			}
		})
	}

	invalid := []string{"", "17 Agustus 2006", "2006-13-01", "kemarin"}
	for _, in := range invalid {
		t.Run("invalid "+in, func(t *testing.T) {
			if _, err := ParseEntryDate(in); err == nil {
				t.Errorf("ParseEntryDate(%q) should fail", in)
			}
		})
	}
}

func TestFormatBirthDate(t *testing.T) {
	got := FormatBirthDate(time.Date(2007, time.March, 5, 0, 0, 0, 0, time.UTC))
	if got != "05 March 2007" {
		t.Errorf("FormatBirthDate() = %q, want %q", got, "05 March 2007")
	}
}

// ----------------------------------------------------------------------------
// Record accessor Tests
// ----------------------------------------------------------------------------

func TestStudentRecordRow(t *testing.T) {
	rec := StudentRecord{
		NISN:       "0061234567",
		FullName:   "Budi Santoso",
		ClassName:  "XII MIPA 1",
		Gender:     GenderMale,
		BirthPlace: "Pematangsiantar",
		BirthDate:  "17 August 2006",
		ParentName: "Siti",
		Address:    "Jl. Merdeka 1",
		Religion:   "Islam",
	}

	row := rec.Row()
	cols := Columns()
	if len(row) != len(cols) {
		t.Fatalf("Row() has %d cells, Columns() has %d", len(row), len(cols))
	}

	var back StudentRecord
	for i, h := range cols {
		f, ok := LookupField(h)
		if !ok {
			t.Fatalf("standard column %q does not resolve", h)
		}
		back.Set(f, row[i])
	}
	if back != rec {
		t.Errorf("Set(Get) round trip = %+v, want %+v", back, rec)
	}
}

func TestFieldString(t *testing.T) {
	if got := FieldGender.String(); got != "JK" {
		t.Errorf("FieldGender.String() = %q, want JK", got)
	}
	if got := Field(99).String(); got != "unknown" {
		t.Errorf("Field(99).String() = %q, want unknown", got)
	}
}
