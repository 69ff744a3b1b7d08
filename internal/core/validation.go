package core

// validation.go checks manually entered students before they join a roster.
//
// Entry is the only place with constraints: gender must be L or P, class and
// religion come from the configured option lists and the birth date must
// parse. Imported rows bypass all of this and are kept as text.

import (
	"fmt"
	"strings"
)

// ValidationError represents a single validation error for a field.
type ValidationError struct {
	Field   string `json:"field"`   // Field/column name
	Value   string `json:"value"`   // The invalid value
	Message string `json:"message"` // Human-readable error message
}

func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// ValidationResult contains the result of validating one entry.
type ValidationResult struct {
	Valid  bool              // True if all validations passed
	Errors []ValidationError // List of validation errors (empty if Valid)
}

func (r *ValidationResult) add(f Field, value, msg string) {
	r.Valid = false
	r.Errors = append(r.Errors, ValidationError{Field: f.String(), Value: value, Message: msg})
}

// Err returns the result as an error, or nil when valid.
func (r ValidationResult) Err() error {
	if r.Valid {
		return nil
	}
	return &EntryError{Errors: r.Errors}
}

// EntryError is returned when a manual entry is rejected.
type EntryError struct {
	Errors []ValidationError
}

func (e *EntryError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, ve := range e.Errors {
		msgs[i] = ve.Error()
	}
	return "invalid entry: " + strings.Join(msgs, "; ")
}

// StudentInput is a student as submitted by a form or the CLI, before
// validation. BirthDate is a date string (ISO from HTML date inputs).
type StudentInput struct {
	NISN       string `json:"nisn"`
	FullName   string `json:"full_name"`
	ClassName  string `json:"class_name"`
	Gender     string `json:"gender"`
	BirthPlace string `json:"birth_place"`
	BirthDate  string `json:"birth_date"`
	ParentName string `json:"parent_name"`
	Address    string `json:"address"`
	Religion   string `json:"religion"`
}

// EntryValidator validates StudentInput against the school's option lists.
type EntryValidator struct {
	classes   []string
	religions []string
}

// NewEntryValidator creates a validator. An empty list accepts any value.
func NewEntryValidator(classes, religions []string) *EntryValidator {
	return &EntryValidator{classes: classes, religions: religions}
}

// Classes returns the class options offered on the entry form.
func (v *EntryValidator) Classes() []string { return v.classes }

// Religions returns the religion options offered on the entry form.
func (v *EntryValidator) Religions() []string { return v.religions }

// Validate checks in and returns the record it would produce. The record is
// only meaningful when the result is valid.
func (v *EntryValidator) Validate(in StudentInput) (StudentRecord, ValidationResult) {
	result := ValidationResult{Valid: true}
	rec := StudentRecord{
		NISN:       strings.TrimSpace(in.NISN),
		FullName:   strings.TrimSpace(in.FullName),
		BirthPlace: strings.TrimSpace(in.BirthPlace),
		ParentName: strings.TrimSpace(in.ParentName),
		Address:    strings.TrimSpace(in.Address),
	}

	if rec.FullName == "" {
		result.add(FieldFullName, "", "required field is empty")
	}

	g := Gender(strings.ToUpper(strings.TrimSpace(in.Gender)))
	if !g.Valid() {
		result.add(FieldGender, in.Gender, fmt.Sprintf("value must be one of: %s, %s", GenderMale, GenderFemale))
	}
	rec.Gender = g

	if class, ok := pickOption(in.ClassName, v.classes); ok {
		rec.ClassName = class
	} else {
		result.add(FieldClassName, in.ClassName, "value must be one of: "+strings.Join(v.classes, ", "))
	}

	if religion, ok := pickOption(in.Religion, v.religions); ok {
		rec.Religion = religion
	} else {
		result.add(FieldReligion, in.Religion, "value must be one of: "+strings.Join(v.religions, ", "))
	}

	if t, err := ParseEntryDate(in.BirthDate); err != nil {
		result.add(FieldBirthDate, in.BirthDate, "invalid date format (use YYYY-MM-DD or DD/MM/YYYY)")
	} else {
		rec.BirthDate = FormatBirthDate(t)
	}

	return rec, result
}

// pickOption matches value case-insensitively against options and returns
// the option's own spelling. With no options any non-empty value is accepted.
func pickOption(value string, options []string) (string, bool) {
	value = strings.TrimSpace(value)
	if len(options) == 0 {
		return value, value != ""
	}
	for _, opt := range options {
		if strings.EqualFold(opt, value) {
			return opt, true
		}
	}
	return "", false
}
