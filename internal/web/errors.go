package web

// errors.go provides unified error response handling for the web layer.
//
// Every error is logged with its technical detail and request ID, then
// mapped through core.MapError to a short Indonesian message with a support
// code. The response format follows the client: JSON for API callers and
// fetch requests, an HTML alert for browser pages.

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/sman2ps/dapodik/internal/core"
	"github.com/sman2ps/dapodik/internal/logging"
	"github.com/sman2ps/dapodik/internal/web/templates"
)

// ErrorResponse is the JSON body of every failed API call. Error repeats
// Message for clients that only read one field.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error, statusCode int) {
	userMsg := core.MapError(err)

	var sessionID string
	if sess, ok := core.SessionFromContext(r.Context()); ok {
		sessionID = sess.ID
	}
	level := slog.LevelWarn
	if statusCode >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	logging.WithSession(r.Context(), sessionID).Log(r.Context(), level, "request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"status", statusCode,
		"code", userMsg.Code,
		"error", err,
	)

	if wantsJSON(r) {
		respondErrorJSON(w, userMsg, statusCode)
		return
	}
	s.renderErrorPage(w, r, userMsg, statusCode)
}

func respondErrorJSON(w http.ResponseWriter, msg core.UserMessage, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error:   msg.Message,
		Message: msg.Message,
		Action:  msg.Action,
		Code:    msg.Code,
	})
}

// renderErrorPage renders the error alert inside the page layout.
func (s *Server) renderErrorPage(w http.ResponseWriter, r *http.Request, msg core.UserMessage, statusCode int) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)

	page := templates.Layout("", templates.ErrorAlert(msg.Message, msg.Action, msg.Code))
	if err := page.Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("render error page", "error", err)
	}
}

// wantsJSON checks if the client prefers JSON response.
func wantsJSON(r *http.Request) bool {
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		return true
	}
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		return true
	}
	// API routes default to JSON
	return strings.HasPrefix(r.URL.Path, "/api/")
}
