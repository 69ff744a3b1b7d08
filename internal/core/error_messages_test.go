package core

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{
			name:     "nil error returns empty",
			err:      nil,
			wantCode: "",
		},
		{
			name:     "oversized file",
			err:      &IngestionError{FileName: "a.csv", Reason: "file too large: exceeds 10 bytes"},
			wantCode: "FILE001",
		},
		{
			name:     "broken csv",
			err:      &IngestionError{FileName: "a.csv", Reason: "invalid csv", Err: errors.New(`bare " in non-quoted field`)},
			wantCode: "FILE002",
		},
		{
			name:     "binary content",
			err:      &IngestionError{FileName: "a.csv", Reason: "encoding error: file contains binary data"},
			wantCode: "FILE003",
		},
		{
			name:     "old excel format",
			err:      &IngestionError{FileName: "a.xls", Reason: "unsupported file type: legacy .xls workbook"},
			wantCode: "FILE005",
		},
		{
			name:     "corrupt workbook",
			err:      &IngestionError{FileName: "a.xlsx", Reason: "invalid workbook", Err: errors.New("zip: not a valid zip file")},
			wantCode: "FILE006",
		},
		{
			name:     "file name does not pick the code",
			err:      &IngestionError{FileName: "file too large.csv", Reason: "invalid csv", Err: errors.New("extraneous quote")},
			wantCode: "FILE002",
		},
		{
			name:     "deadline on oddly named file",
			err:      fmt.Errorf("read unsupported file type.csv: %w", context.DeadlineExceeded),
			wantCode: "IMP002",
		},
		{
			name:     "limiter full",
			err:      ErrTooManyImports,
			wantCode: "IMP001",
		},
		{
			name:     "wrapped deadline",
			err:      fmt.Errorf("import a.csv: %w", context.DeadlineExceeded),
			wantCode: "IMP002",
		},
		{
			name:     "bad birth date",
			err:      errors.New(`invalid entry: Tanggal Lahir: invalid date format`),
			wantCode: "VAL001",
		},
		{
			name:     "gender outside options",
			err:      errors.New("invalid entry: JK: value must be one of: L, P"),
			wantCode: "VAL002",
		},
		{
			name:     "expired session",
			err:      ErrSessionNotFound,
			wantCode: "SES001",
		},
		{
			name:     "store full",
			err:      ErrTooManySessions,
			wantCode: "SES002",
		},
		{
			name:     "rate limit",
			err:      errors.New("rate limit exceeded"),
			wantCode: "RATE001",
		},
		{
			name:     "unknown error returns default",
			err:      errors.New("some random internal error"),
			wantCode: "ERR000",
		},
		{
			name:     "case insensitive matching",
			err:      errors.New("SESSION NOT FOUND"),
			wantCode: "SES001",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("MapError() code = %q, want %q", got.Code, tt.wantCode)
			}
		})
	}
}

func TestFormatUserError(t *testing.T) {
	result := FormatUserError(ErrSessionNotFound)

	expected := "Sesi sudah berakhir (Kode: SES001). Muat ulang halaman untuk memulai sesi baru"
	if result != expected {
		t.Errorf("FormatUserError() = %q, want %q", result, expected)
	}

	if got := FormatUserError(nil); got != "" {
		t.Errorf("FormatUserError(nil) = %q, want empty", got)
	}
}

func TestIsUserFacing(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil error is not user facing", nil, false},
		{"known error is user facing", ErrTooManyImports, true},
		{"unknown error is not user facing", errors.New("random internal error xyz"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUserFacing(tt.err); got != tt.want {
				t.Errorf("IsUserFacing() = %v, want %v", got, tt.want)
			}
		})
	}
}
