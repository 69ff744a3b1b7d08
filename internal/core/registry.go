package core

import (
	"strings"
	"unicode"
)

// Field identifies one of the nine canonical StudentRecord fields.
type Field int

const (
	FieldNISN Field = iota
	FieldFullName
	FieldClassName
	FieldGender
	FieldBirthPlace
	FieldBirthDate
	FieldParentName
	FieldAddress
	FieldReligion
)

// FieldType represents the kind of value a field carries at entry time.
// Imported values are always kept as text.
type FieldType int

const (
	FieldText FieldType = iota
	FieldEnum
	FieldDate
)

// FieldSpec describes a canonical field: its standard header, the other
// header spellings accepted on import, and its entry-time type.
type FieldSpec struct {
	Field      Field
	Name       string   // Header written by exports and templates
	Aliases    []string // Other accepted header names (case/spacing insensitive)
	Type       FieldType
	EnumValues []string // Allowed values for FieldEnum at entry time
}

// fieldSpecs is ordered the way the roster is displayed and exported.
var fieldSpecs = []FieldSpec{
	{Field: FieldNISN, Name: "NISN", Aliases: []string{"Nomor Induk Siswa Nasional", "Student ID"}},
	{Field: FieldFullName, Name: "Nama Lengkap", Aliases: []string{"Nama", "Nama Siswa", "Nama Peserta Didik", "Full Name", "Name"}},
	{Field: FieldClassName, Name: "Kelas", Aliases: []string{"Rombel", "Class", "Class Name"}},
	{Field: FieldGender, Name: "JK", Type: FieldEnum, EnumValues: []string{string(GenderMale), string(GenderFemale)},
		Aliases: []string{"L/P", "Jenis Kelamin", "Gender", "Sex"}},
	{Field: FieldBirthPlace, Name: "Tempat Lahir", Aliases: []string{"Birth Place", "Place of Birth"}},
	{Field: FieldBirthDate, Name: "Tanggal Lahir", Type: FieldDate, Aliases: []string{"Tgl Lahir", "Birth Date", "Date of Birth"}},
	{Field: FieldParentName, Name: "Nama Orangtua", Aliases: []string{"Nama Orang Tua", "Orangtua", "Nama Wali", "Parent", "Parent Name"}},
	{Field: FieldAddress, Name: "Alamat", Aliases: []string{"Address"}},
	{Field: FieldReligion, Name: "Agama", Aliases: []string{"Religion"}},
}

// headerLookup maps a normalized header spelling to its field.
var headerLookup = buildHeaderLookup()

func buildHeaderLookup() map[string]Field {
	m := make(map[string]Field)
	for _, spec := range fieldSpecs {
		m[headerKey(spec.Name)] = spec.Field
		for _, alias := range spec.Aliases {
			m[headerKey(alias)] = spec.Field
		}
	}
	return m
}

// headerKey lowercases a header and drops everything but letters and digits,
// so "Nama Lengkap", "nama_lengkap" and " NAMA-LENGKAP " compare equal.
func headerKey(h string) string {
	h = CleanCell(h)
	var b strings.Builder
	b.Grow(len(h))
	for _, r := range strings.ToLower(h) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// LookupField resolves a header cell to its canonical field.
func LookupField(header string) (Field, bool) {
	f, ok := headerLookup[headerKey(header)]
	return f, ok
}

// FieldSpecs returns the canonical field specs in display order.
func FieldSpecs() []FieldSpec {
	out := make([]FieldSpec, len(fieldSpecs))
	copy(out, fieldSpecs)
	return out
}

// Columns returns the standard header row.
func Columns() []string {
	cols := make([]string, len(fieldSpecs))
	for i, spec := range fieldSpecs {
		cols[i] = spec.Name
	}
	return cols
}

// Spec returns the spec of a single field.
func (f Field) Spec() FieldSpec {
	return fieldSpecs[f]
}

// String returns the standard header name of the field.
func (f Field) String() string {
	if f < 0 || int(f) >= len(fieldSpecs) {
		return "unknown"
	}
	return fieldSpecs[f].Name
}

// Get returns the value of field f.
func (r *StudentRecord) Get(f Field) string {
	switch f {
	case FieldNISN:
		return r.NISN
	case FieldFullName:
		return r.FullName
	case FieldClassName:
		return r.ClassName
	case FieldGender:
		return string(r.Gender)
	case FieldBirthPlace:
		return r.BirthPlace
	case FieldBirthDate:
		return r.BirthDate
	case FieldParentName:
		return r.ParentName
	case FieldAddress:
		return r.Address
	case FieldReligion:
		return r.Religion
	}
	return ""
}

// Set assigns v to field f.
func (r *StudentRecord) Set(f Field, v string) {
	switch f {
	case FieldNISN:
		r.NISN = v
	case FieldFullName:
		r.FullName = v
	case FieldClassName:
		r.ClassName = v
	case FieldGender:
		r.Gender = Gender(v)
	case FieldBirthPlace:
		r.BirthPlace = v
	case FieldBirthDate:
		r.BirthDate = v
	case FieldParentName:
		r.ParentName = v
	case FieldAddress:
		r.Address = v
	case FieldReligion:
		r.Religion = v
	}
}

// Row returns the record's values in standard column order.
func (r *StudentRecord) Row() RawRow {
	row := make(RawRow, len(fieldSpecs))
	for i, spec := range fieldSpecs {
		row[i] = r.Get(spec.Field)
	}
	return row
}
