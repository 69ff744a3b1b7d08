package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sman2ps/dapodik/internal/core"
	"github.com/sman2ps/dapodik/internal/web/templates"
)

// RosterResponse is the JSON form of the dashboard listing.
type RosterResponse struct {
	Class   string               `json:"class"`
	Count   int                  `json:"count"`
	Records []core.StudentRecord `json:"records"`
}

func (s *Server) handleRoster(w http.ResponseWriter, r *http.Request) {
	class := classParam(r)
	recs := session(r).Roster.Filter(class)
	writeJSON(w, RosterResponse{Class: class, Count: len(recs), Records: recs})
}

// StatsResponse carries the dashboard aggregates and filter options.
type StatsResponse struct {
	Class   string           `json:"class"`
	Classes []string         `json:"classes"`
	Stats   core.RosterStats `json:"stats"`
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	roster := session(r).Roster
	class := classParam(r)
	writeJSON(w, StatsResponse{
		Class:   class,
		Classes: roster.Classes(),
		Stats:   roster.Stats(class),
	})
}

// EntryErrorResponse adds the per-field errors to a rejected entry.
type EntryErrorResponse struct {
	ErrorResponse
	Fields []core.ValidationError `json:"fields"`
}

// handleAddStudent adds one student from a JSON body.
func (s *Server) handleAddStudent(w http.ResponseWriter, r *http.Request) {
	var in core.StudentInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		s.respondError(w, r, errors.New("invalid form: "+err.Error()), http.StatusBadRequest)
		return
	}

	rec, err := s.service.AddStudent(session(r), in)
	if err != nil {
		var entryErr *core.EntryError
		if !errors.As(err, &entryErr) {
			s.respondError(w, r, err, statusFor(err))
			return
		}
		msg := core.MapError(err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(EntryErrorResponse{
			ErrorResponse: ErrorResponse{
				Error:   msg.Message,
				Message: msg.Message,
				Action:  msg.Action,
				Code:    msg.Code,
			},
			Fields: entryErr.Errors,
		})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(rec)
}

// ImportResponse is the JSON result of an import.
type ImportResponse struct {
	*core.ImportResult
	Message string `json:"message"`
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	file, header, err := s.readUpload(w, r)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	defer file.Close()

	res, err := s.service.Import(r.Context(), session(r), header.Filename, file)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	writeJSON(w, ImportResponse{ImportResult: res, Message: templates.ImportMessage(res)})
}

// handlePreview analyses a file without touching the roster.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	file, header, err := s.readUpload(w, r)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	defer file.Close()

	preview, err := s.service.Preview(r.Context(), header.Filename, file)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	writeJSON(w, preview)
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	recs := session(r).Roster.Filter(classParam(r))

	var buf bytes.Buffer
	if err := core.WriteCSV(&buf, recs); err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="data_siswa.csv"`)
	w.Write(buf.Bytes())
}

func (s *Server) handleExportXLSX(w http.ResponseWriter, r *http.Request) {
	recs := session(r).Roster.Filter(classParam(r))

	var buf bytes.Buffer
	if err := core.WriteXLSX(&buf, recs); err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="data_siswa.xlsx"`)
	w.Write(buf.Bytes())
}

func (s *Server) handleTemplateCSV(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="template_data_siswa.csv"`)
	if err := core.WriteTemplateCSV(w); err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
	}
}
