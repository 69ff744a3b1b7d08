// Package core provides the roster import, entry and aggregation logic.
//
// This package holds all domain logic independent of any UI or transport
// layer. The web server, the CLI and the tests use it unchanged.
//
// # Import Pipeline
//
// An uploaded file goes through three steps:
//
//  1. [ReadTable] reads the whole CSV or XLSX file into raw rows. Anything
//     that is not tabular data fails here as an [*IngestionError].
//  2. [ClassifyBatch] decides once per file whether the rows follow the
//     school's legacy export (fixed positions, a track label in column 6) or
//     a standard header-bearing table, and converts rows to [StudentRecord].
//  3. [Roster.AppendAll] adds every record in one step.
//
// Classification never fails: missing cells become empty strings.
//
// # Sessions
//
// Each user works on their own [Roster] held by a [Session]. Sessions live in
// a [SessionStore], expire after a period of inactivity and are swept by
// [Service.StartSessionSweeper]. Nothing is persisted.
//
// # Error Handling
//
// Technical errors are mapped to user-friendly messages using [MapError].
// Each error category has a code for support reference:
//
//   - FILE001-FILE006: File errors (size, encoding, format)
//   - IMP001-IMP003: Import errors (busy, timeout, cancelled)
//   - VAL001-VAL004: Manual entry validation
//   - SES001-SES002: Session errors
//   - RPT001-RPT002: Report errors
package core
