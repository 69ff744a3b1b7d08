package core

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// DefaultImportTimeout bounds reading and classifying one file.
const DefaultImportTimeout = 2 * time.Minute

// ServiceConfig holds the settings the service needs from the application
// configuration.
type ServiceConfig struct {
	MaxFileSize   int64
	MaxConcurrent int
	MaxWait       time.Duration
	ImportTimeout time.Duration
	SessionTTL    time.Duration
	MaxSessions   int
	Classes       []string
	Religions     []string
}

// Service provides roster import, entry and query operations over the live
// sessions.
type Service struct {
	cfg       ServiceConfig
	sessions  *SessionStore
	limiter   *ImportLimiter
	validator *EntryValidator
}

// NewService creates a Service with an empty session store.
func NewService(cfg ServiceConfig) *Service {
	if cfg.ImportTimeout <= 0 {
		cfg.ImportTimeout = DefaultImportTimeout
	}
	return &Service{
		cfg:       cfg,
		sessions:  NewSessionStore(cfg.SessionTTL, cfg.MaxSessions),
		limiter:   NewImportLimiter(cfg.MaxConcurrent, cfg.MaxWait),
		validator: NewEntryValidator(cfg.Classes, cfg.Religions),
	}
}

// Sessions returns the session store.
func (s *Service) Sessions() *SessionStore {
	return s.sessions
}

// Validator returns the manual entry validator.
func (s *Service) Validator() *EntryValidator {
	return s.validator
}

// MaxFileSize returns the upload size limit in bytes (0 = unlimited).
func (s *Service) MaxFileSize() int64 {
	return s.cfg.MaxFileSize
}

// Import reads one file, classifies it and appends every record to the
// session roster in a single step. On any error the roster is unchanged.
func (s *Service) Import(ctx context.Context, sess *Session, fileName string, r io.Reader) (*ImportResult, error) {
	if err := s.limiter.Acquire(ctx); err != nil {
		return nil, err
	}
	defer s.limiter.Release()

	ctx, cancel := context.WithTimeout(ctx, s.cfg.ImportTimeout)
	defer cancel()

	start := time.Now()
	importID := uuid.NewString()
	log := slog.With("session_id", sess.ID, "import_id", importID, "file", fileName)

	table, err := ReadTable(ctx, fileName, r, s.cfg.MaxFileSize)
	if err != nil {
		log.Warn("import rejected", "error", err)
		return nil, err
	}
	rows := table.Rows

	batch := ClassifyBatch(rows)
	rosterLen := sess.Roster.AppendAll(batch.Records)

	result := &ImportResult{
		ImportID:  importID,
		FileName:  fileName,
		Layout:    batch.Layout,
		TotalRows: len(rows),
		Imported:  len(batch.Records),
		Skipped:   batch.Skipped,
		RosterLen: rosterLen,
		Duration:  time.Since(start),
	}

	log.Info("import completed",
		"layout", result.Layout,
		"rows", result.TotalRows,
		"imported", result.Imported,
		"skipped", result.Skipped,
		"duration_ms", result.Duration.Milliseconds(),
	)
	return result, nil
}

// AddStudent validates a manual entry and appends it to the session roster.
func (s *Service) AddStudent(sess *Session, in StudentInput) (StudentRecord, error) {
	rec, result := s.validator.Validate(in)
	if err := result.Err(); err != nil {
		return StudentRecord{}, err
	}

	n := sess.Roster.Append(rec)
	slog.Info("student added",
		"session_id", sess.ID,
		"nisn", rec.NISN,
		"class", rec.ClassName,
		"roster_len", n,
	)
	return rec, nil
}

// LimiterStatus returns the import limiter state.
func (s *Service) LimiterStatus() ImportLimiterStatus {
	return s.limiter.Status()
}

// WaitForImports blocks until in-flight imports finish or ctx is done.
func (s *Service) WaitForImports(ctx context.Context) error {
	return s.limiter.WaitForDrain(ctx)
}
