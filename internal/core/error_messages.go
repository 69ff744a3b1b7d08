package core

// # Error Codes Reference
//
// This file maps technical errors to short user messages with a code that can
// be quoted to whoever maintains the tool. Messages are in Indonesian, the
// language of the rest of the interface.
//
// # File Errors (FILE001-FILE099)
//
//	FILE001 - File too large              Patterns: "file too large"
//	FILE002 - Invalid CSV                 Patterns: "invalid csv"
//	FILE003 - Encoding error              Patterns: "encoding error"
//	FILE004 - No file selected            Patterns: "no file provided"
//	FILE005 - Unsupported file type       Patterns: "unsupported file type"
//	FILE006 - Unreadable workbook         Patterns: "invalid workbook", "workbook has no sheets"
//
// # Import Errors (IMP001-IMP099)
//
//	IMP001 - Server busy                  Patterns: "too many concurrent imports"
//	IMP002 - Import timed out             Patterns: "context deadline exceeded"
//	IMP003 - Request cancelled            Patterns: "context canceled"
//
// # Validation Errors (VAL001-VAL099)
//
// Manual entry only. Imported rows are never validated.
//
//	VAL001 - Invalid date                 Patterns: "invalid date"
//	VAL002 - Value not in option list     Patterns: "value must be one of"
//	VAL003 - Required field empty         Patterns: "required field"
//	VAL004 - Malformed form               Patterns: "invalid form"
//
// # Session Errors (SES001-SES099)
//
//	SES001 - Session expired              Patterns: "session not found"
//	SES002 - Too many sessions            Patterns: "too many active sessions"
//
// # Report Errors (RPT001-RPT099)
//
//	RPT001 - Nothing to print             Patterns: "tidak ada data untuk dicetak"
//	RPT002 - PDF generation failed        Patterns: "render pdf"
//
// # Rate Limiting (RATE001)
//
//	RATE001 - Too many requests           Patterns: "rate limit"
//
// # Default Error (ERR000)
//
// Fallback when no pattern matches. Check the server log (by request ID) for
// the technical error.
//
// Entries that name a sentinel error match it with errors.Is before any text
// is compared. Otherwise patterns are matched case-insensitively with
// strings.Contains and the first match in table order wins. For an
// *IngestionError only the Reason is compared, so a file name never decides
// the code.

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string `json:"message"` // What happened
	Action  string `json:"action"`  // What to do about it
	Code    string `json:"code"`    // Error code for support reference
}

type errorPattern struct {
	pattern string
	target  error
	msg     UserMessage
}

var errorPatterns = []errorPattern{
	// File errors
	{
		pattern: "file too large",
		msg: UserMessage{
			Message: "Ukuran file melebihi batas",
			Action:  "Pisahkan data menjadi beberapa file",
			Code:    "FILE001",
		},
	},
	{
		pattern: "invalid csv",
		msg: UserMessage{
			Message: "File bukan CSV yang valid",
			Action:  "Periksa tanda kutip dan pemisah kolom, lalu unggah ulang",
			Code:    "FILE002",
		},
	},
	{
		pattern: "encoding error",
		msg: UserMessage{
			Message: "File berisi karakter yang tidak dapat dibaca",
			Action:  "Simpan ulang file sebagai CSV UTF-8 atau XLSX",
			Code:    "FILE003",
		},
	},
	{
		pattern: "no file provided",
		msg: UserMessage{
			Message: "Belum ada file yang dipilih",
			Action:  "Pilih file CSV atau XLSX untuk diunggah",
			Code:    "FILE004",
		},
	},
	{
		pattern: "unsupported file type",
		msg: UserMessage{
			Message: "Jenis file tidak didukung",
			Action:  "Gunakan file .csv atau .xlsx",
			Code:    "FILE005",
		},
	},
	{
		pattern: "invalid workbook",
		msg: UserMessage{
			Message: "File Excel rusak atau tidak dapat dibuka",
			Action:  "Buka dan simpan ulang file di Excel, lalu unggah kembali",
			Code:    "FILE006",
		},
	},
	{
		pattern: "workbook has no sheets",
		msg: UserMessage{
			Message: "File Excel tidak memiliki sheet",
			Action:  "Pastikan data berada di sheet pertama",
			Code:    "FILE006",
		},
	},

	// Import errors
	{
		pattern: "too many concurrent imports",
		target:  ErrTooManyImports,
		msg: UserMessage{
			Message: "Server sedang memproses unggahan lain",
			Action:  "Tunggu sebentar lalu coba lagi",
			Code:    "IMP001",
		},
	},
	{
		pattern: "context deadline exceeded",
		target:  context.DeadlineExceeded,
		msg: UserMessage{
			Message: "Proses unggah melebihi batas waktu",
			Action:  "Coba file yang lebih kecil atau ulangi beberapa saat lagi",
			Code:    "IMP002",
		},
	},
	{
		pattern: "context canceled",
		target:  context.Canceled,
		msg: UserMessage{
			Message: "Permintaan dibatalkan",
			Action:  "Silakan coba lagi",
			Code:    "IMP003",
		},
	},

	// Validation errors
	{
		pattern: "invalid date",
		msg: UserMessage{
			Message: "Format tanggal lahir tidak valid",
			Action:  "Gunakan format YYYY-MM-DD atau DD/MM/YYYY",
			Code:    "VAL001",
		},
	},
	{
		pattern: "value must be one of",
		msg: UserMessage{
			Message: "Nilai tidak ada dalam daftar pilihan",
			Action:  "Pilih jenis kelamin, kelas dan agama dari daftar",
			Code:    "VAL002",
		},
	},
	{
		pattern: "required field",
		msg: UserMessage{
			Message: "Kolom wajib belum diisi",
			Action:  "Lengkapi nama siswa",
			Code:    "VAL003",
		},
	},
	{
		pattern: "invalid form",
		msg: UserMessage{
			Message: "Data formulir tidak dapat dibaca",
			Action:  "Muat ulang halaman lalu isi kembali formulir",
			Code:    "VAL004",
		},
	},

	// Session errors
	{
		pattern: "session not found",
		target:  ErrSessionNotFound,
		msg: UserMessage{
			Message: "Sesi sudah berakhir",
			Action:  "Muat ulang halaman untuk memulai sesi baru",
			Code:    "SES001",
		},
	},
	{
		pattern: "too many active sessions",
		target:  ErrTooManySessions,
		msg: UserMessage{
			Message: "Terlalu banyak sesi aktif",
			Action:  "Coba lagi nanti",
			Code:    "SES002",
		},
	},

	// Report errors
	{
		pattern: "tidak ada data untuk dicetak",
		msg: UserMessage{
			Message: "Tidak ada data untuk dicetak",
			Action:  "Tambahkan siswa atau pilih kelas lain",
			Code:    "RPT001",
		},
	},
	{
		pattern: "render pdf",
		msg: UserMessage{
			Message: "Gagal membuat PDF",
			Action:  "Silakan coba lagi",
			Code:    "RPT002",
		},
	},

	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Terlalu banyak permintaan",
			Action:  "Tunggu sebentar sebelum mencoba lagi",
			Code:    "RATE001",
		},
	},
}

// defaultMessage is returned when no pattern matches (ERR000).
var defaultMessage = UserMessage{
	Message: "Terjadi kesalahan yang tidak terduga",
	Action:  "Silakan coba lagi",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message. A nil
// error yields the zero UserMessage.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	for _, ep := range errorPatterns {
		if ep.target != nil && errors.Is(err, ep.target) {
			return ep.msg
		}
	}

	text := err.Error()
	var ie *IngestionError
	if errors.As(err, &ie) {
		text = ie.Reason
	}
	text = strings.ToLower(text)
	for _, ep := range errorPatterns {
		if strings.Contains(text, ep.pattern) {
			return ep.msg
		}
	}
	return defaultMessage
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Kode: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Kode: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err matches a known pattern rather than the
// ERR000 fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
