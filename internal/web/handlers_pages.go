package web

import (
	"bytes"
	"errors"
	"net/http"
	"net/url"

	"github.com/sman2ps/dapodik/internal/core"
	"github.com/sman2ps/dapodik/internal/logging"
	"github.com/sman2ps/dapodik/internal/report"
	"github.com/sman2ps/dapodik/internal/web/templates"
)

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	roster := session(r).Roster
	class := classParam(r)
	recs := roster.Filter(class)

	s.render(w, r, http.StatusOK, "dashboard", templates.Dashboard(templates.DashboardData{
		Classes:  roster.Classes(),
		Selected: class,
		Records:  recs,
		Stats:    core.ComputeStats(recs),
		Empty:    roster.Len() == 0,
	}))
}

func (s *Server) entryFormData() templates.EntryFormData {
	v := s.service.Validator()
	return templates.EntryFormData{
		Classes:   v.Classes(),
		Religions: v.Religions(),
	}
}

func (s *Server) handleEntryForm(w http.ResponseWriter, r *http.Request) {
	d := s.entryFormData()
	d.Added = r.URL.Query().Get("added")
	s.render(w, r, http.StatusOK, "input", templates.EntryForm(d))
}

// handleEntrySubmit adds one student from the HTML form. Rejected input is
// shown again with the field errors; success redirects back to an empty form.
func (s *Server) handleEntrySubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.respondError(w, r, errors.New("invalid form: "+err.Error()), http.StatusBadRequest)
		return
	}

	in := core.StudentInput{
		NISN:       r.PostFormValue("nisn"),
		FullName:   r.PostFormValue("full_name"),
		ClassName:  r.PostFormValue("class_name"),
		Gender:     r.PostFormValue("gender"),
		BirthPlace: r.PostFormValue("birth_place"),
		BirthDate:  r.PostFormValue("birth_date"),
		ParentName: r.PostFormValue("parent_name"),
		Address:    r.PostFormValue("address"),
		Religion:   r.PostFormValue("religion"),
	}

	rec, err := s.service.AddStudent(session(r), in)
	if err != nil {
		var entryErr *core.EntryError
		if !errors.As(err, &entryErr) {
			s.respondError(w, r, err, statusFor(err))
			return
		}
		d := s.entryFormData()
		d.Input = in
		d.Errors = entryErr.Errors
		s.render(w, r, http.StatusUnprocessableEntity, "input", templates.EntryForm(d))
		return
	}

	http.Redirect(w, r, "/input?added="+url.QueryEscape(rec.FullName), http.StatusSeeOther)
}

func (s *Server) handleUploadPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "upload", templates.UploadPage(templates.UploadPageData{
		MaxFileSize: s.service.MaxFileSize(),
	}))
}

// handleUploadSubmit imports a file from the browser form and reports which
// layout was recognised.
func (s *Server) handleUploadSubmit(w http.ResponseWriter, r *http.Request) {
	d := templates.UploadPageData{MaxFileSize: s.service.MaxFileSize()}

	file, header, err := s.readUpload(w, r)
	if err != nil {
		s.renderUploadError(w, r, d, err)
		return
	}
	defer file.Close()

	res, err := s.service.Import(r.Context(), session(r), header.Filename, file)
	if err != nil {
		s.renderUploadError(w, r, d, err)
		return
	}

	d.Result = res
	s.render(w, r, http.StatusOK, "upload", templates.UploadPage(d))
}

func (s *Server) renderUploadError(w http.ResponseWriter, r *http.Request, d templates.UploadPageData, err error) {
	status := statusFor(err)
	msg := core.MapError(err)
	logging.WithSession(r.Context(), session(r).ID).Warn("upload failed",
		"status", status,
		"error", err,
		"code", msg.Code,
	)
	d.Error = &msg
	s.render(w, r, status, "upload", templates.UploadPage(d))
}

func (s *Server) handlePrintPage(w http.ResponseWriter, r *http.Request) {
	roster := session(r).Roster
	s.render(w, r, http.StatusOK, "cetak", templates.PrintPage(templates.PrintPageData{
		Classes:  roster.Classes(),
		Selected: classParam(r),
		Count:    roster.Len(),
	}))
}

// handleReportPDF renders the printable roster, optionally for one class.
// The document is built in memory so a failure can still be reported as a
// normal error response.
func (s *Server) handleReportPDF(w http.ResponseWriter, r *http.Request) {
	sess := session(r)
	class := classParam(r)
	recs := sess.Roster.Filter(class)

	var buf bytes.Buffer
	if err := report.Render(&buf, recs, s.report); err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	logging.WithSession(r.Context(), sess.ID).Info("report generated",
		"class", class,
		"rows", len(recs),
		"bytes", buf.Len(),
	)

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+report.FileName+`"`)
	w.Write(buf.Bytes())
}
