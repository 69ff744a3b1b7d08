package web

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/a-h/templ"

	"github.com/sman2ps/dapodik/internal/core"
	"github.com/sman2ps/dapodik/internal/logging"
	"github.com/sman2ps/dapodik/internal/report"
	"github.com/sman2ps/dapodik/internal/web/templates"
)

// multipartMemory is how much of a multipart body is kept in memory before
// spilling to temp files.
const multipartMemory = 8 << 20

// formOverhead is allowed on top of the file size limit for the multipart
// envelope.
const formOverhead = 1 << 20

var (
	errUploadTooLarge = errors.New("file too large: upload exceeds the size limit")
	errNoFile         = errors.New("no file provided")
)

// render writes a full page with the given status.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, active string, body templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := templates.Layout(active, body).Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("render page", "path", r.URL.Path, "error", err)
	}
}

// readUpload opens the "file" part of a multipart upload.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) (multipart.File, *multipart.FileHeader, error) {
	if limit := s.service.MaxFileSize(); limit > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, limit+formOverhead)
	}

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return nil, nil, errUploadTooLarge
		}
		return nil, nil, fmt.Errorf("%w: %v", errNoFile, err)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, nil, errNoFile
	}
	return file, header, nil
}

// statusFor picks the HTTP status for a service error.
func statusFor(err error) int {
	var entryErr *core.EntryError
	switch {
	case errors.Is(err, errUploadTooLarge), core.MapError(err).Code == "FILE001":
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, errNoFile):
		return http.StatusBadRequest
	case errors.Is(err, core.ErrTooManyImports), errors.Is(err, core.ErrTooManySessions):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, report.ErrEmptyRoster):
		return http.StatusUnprocessableEntity
	case errors.As(err, &entryErr):
		return http.StatusUnprocessableEntity
	case core.IsIngestionError(err):
		return http.StatusBadRequest
	case errors.Is(err, context.Canceled):
		// client went away
		return 499
	default:
		return http.StatusInternalServerError
	}
}

// classParam returns the ?kelas= filter, defaulting to every class.
func classParam(r *http.Request) string {
	if c := r.URL.Query().Get("kelas"); c != "" {
		return c
	}
	return core.AllClasses
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

// StatusResponse describes server load for operators.
type StatusResponse struct {
	Imports     core.ImportLimiterStatus `json:"imports"`
	Sessions    int                      `json:"sessions"`
	MaxSessions int                      `json:"max_sessions"`
	RosterLen   int                      `json:"roster_len"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, StatusResponse{
		Imports:     s.service.LimiterStatus(),
		Sessions:    s.service.Sessions().Len(),
		MaxSessions: s.service.Sessions().MaxSessions(),
		RosterLen:   session(r).Roster.Len(),
	})
}

// handleSessionReset ends the caller's session and drops its roster.
// The next request starts a new, empty one.
func (s *Server) handleSessionReset(w http.ResponseWriter, r *http.Request) {
	sess := session(r)
	discarded := sess.Roster.Len()
	s.service.Sessions().End(sess.ID)

	http.SetCookie(w, &http.Cookie{
		Name:     s.cfg.Session.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.cfg.Session.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})

	logging.WithSession(r.Context(), sess.ID).Info("session reset", "discarded", discarded)
	writeJSON(w, map[string]any{"status": "reset", "discarded": discarded})
}
