package web

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/flosch/pongo2/v6"

	apperrors "github.com/askillindva/XmlTemplateGenerator/internal/common/errors"
	"github.com/askillindva/XmlTemplateGenerator/internal/generator"
)

// formField is one rendered form input, with the re-submitted value and the
// validation message when a submission bounced.
type formField struct {
	Name  string
	Label string
	Value string
	Error string
}

func viewFields(fields []generator.Field, values map[string]string, fieldErrors map[string]string) []formField {
	out := make([]formField, 0, len(fields))
	for _, f := range fields {
		out = append(out, formField{
			Name:  f.Name,
			Label: f.Label,
			Value: values[f.Name],
			Error: fieldErrors[f.Name],
		})
	}
	return out
}

// submissionPair keeps the submitted-data recap in a deterministic order.
type submissionPair struct {
	Key   string
	Value string
}

func sortedPairs(submission map[string]string) []submissionPair {
	keys := make([]string, 0, len(submission))
	for k := range submission {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]submissionPair, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, submissionPair{Key: k, Value: submission[k]})
	}
	return pairs
}

// ==========================
// Listing
// ==========================

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	s.renderer.HTML(w, http.StatusOK, "home.html", pongo2.Context{
		"templates": s.service.ListTemplates(),
		"flash":     popFlash(w, r),
	})
}

// ==========================
// Form
// ==========================

func (s *Server) handleTemplateForm(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	form, err := s.service.FormModel(name)
	if err != nil {
		s.redirectHomeWithError(w, r, name, err)
		return
	}

	s.renderer.HTML(w, http.StatusOK, "form.html", pongo2.Context{
		"templateName": name,
		"fields":       viewFields(form.Fields, nil, nil),
		"flash":        popFlash(w, r),
	})
}

// ==========================
// Generate
// ==========================

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	if err := r.ParseForm(); err != nil {
		s.renderErrorPage(w, http.StatusBadRequest, "The submitted form could not be read.")
		return
	}
	submission := make(map[string]string, len(r.PostForm))
	for key := range r.PostForm {
		submission[key] = r.PostForm.Get(key)
	}

	gen, err := s.service.Generate(r.Context(), name, submission)
	if err != nil {
		s.renderGenerateFailure(w, r, name, submission, err)
		return
	}

	s.renderer.HTML(w, http.StatusOK, "result.html", pongo2.Context{
		"templateName": gen.TemplateName,
		"document":     gen.Document,
		"logId":        gen.LogID,
		"submitted":    sortedPairs(gen.Submission),
	})
}

// renderGenerateFailure maps a failed generation back onto the right page:
// navigation errors bounce to the listing, validation errors re-render the
// form with field messages, everything else re-renders the form with a
// banner. Nothing was logged; no document is shown.
func (s *Server) renderGenerateFailure(w http.ResponseWriter, r *http.Request, name string, submission map[string]string, err error) {
	std, status := s.errs.Handle(err, map[string]interface{}{"templateName": name})

	switch std.Code {
	case apperrors.ErrCodeTemplateNotFound, apperrors.ErrCodeInvalidTemplateName:
		s.redirectHomeWithError(w, r, name, err)
		return
	case apperrors.ErrCodeValidationFailed:
		fieldErrors := map[string]string{}
		for _, field := range metadataNames(std, "missing") {
			fieldErrors[field] = "This field is required."
		}
		message := "Please correct the highlighted fields."
		if unexpected := metadataNames(std, "unexpected"); len(unexpected) > 0 {
			message = "The form no longer matches the template. Please review and resubmit."
		}
		s.rerenderForm(w, r, name, submission, fieldErrors, message, status)
		return
	default:
		s.rerenderForm(w, r, name, submission, nil, "Error generating XML. Please try again.", status)
		return
	}
}

func (s *Server) rerenderForm(w http.ResponseWriter, r *http.Request, name string, submission map[string]string, fieldErrors map[string]string, message string, status int) {
	form, err := s.service.FormModel(name)
	if err != nil {
		s.redirectHomeWithError(w, r, name, err)
		return
	}

	s.renderer.HTML(w, status, "form.html", pongo2.Context{
		"templateName": name,
		"fields":       viewFields(form.Fields, submission, fieldErrors),
		"errorMessage": message,
	})
}

func (s *Server) redirectHomeWithError(w http.ResponseWriter, r *http.Request, name string, err error) {
	std, _ := s.errs.Handle(err, map[string]interface{}{"templateName": name})
	if std.Code == apperrors.ErrCodeTemplateNotFound || std.Code == apperrors.ErrCodeInvalidTemplateName {
		setFlash(w, "Template \""+name+"\" not found.", "error")
	} else {
		setFlash(w, "Error reading template \""+name+"\".", "error")
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// ==========================
// Activity Log
// ==========================

type logEntry struct {
	ID            int64
	CreatedAt     string
	TemplateName  string
	SubmittedData string
	Preview       string
}

func (s *Server) handleLogs(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 200 {
			limit = parsed
		}
	}

	records, err := s.logs.ListRecent(r.Context(), limit)
	if err != nil {
		_, status := s.errs.Handle(err, nil)
		s.renderErrorPage(w, status, "The activity log could not be read.")
		return
	}

	entries := make([]logEntry, 0, len(records))
	for _, rec := range records {
		entries = append(entries, logEntry{
			ID:            rec.ID,
			CreatedAt:     rec.CreatedAt,
			TemplateName:  rec.TemplateName,
			SubmittedData: rec.SubmittedData,
			Preview:       preview(rec.GeneratedDocument, 80),
		})
	}

	s.renderer.HTML(w, http.StatusOK, "logs.html", pongo2.Context{
		"entries": entries,
	})
}

func preview(document string, max int) string {
	runes := []rune(document)
	if len(runes) <= max {
		return document
	}
	return string(runes[:max]) + "..."
}

// ==========================
// Health & fallback
// ==========================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	payload := map[string]string{"status": "ok"}
	if err := s.db.Ping(ctx); err != nil {
		status = http.StatusServiceUnavailable
		payload = map[string]string{"status": "unavailable", "reason": "database unreachable"}
		s.logger.WithError(err).Error("health check failed", nil)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// metadataNames pulls a list of field names out of error metadata. Values
// that round-tripped through serialization arrive as []interface{}.
func metadataNames(std *apperrors.StandardError, key string) []string {
	if std == nil || std.Metadata == nil {
		return nil
	}
	switch v := std.Metadata[key].(type) {
	case []string:
		return v
	case []interface{}:
		names := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				names = append(names, s)
			}
		}
		return names
	default:
		return nil
	}
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.renderErrorPage(w, http.StatusNotFound, "Page not found.")
}

func (s *Server) renderErrorPage(w http.ResponseWriter, status int, message string) {
	s.renderer.HTML(w, status, "error.html", pongo2.Context{
		"status":  status,
		"message": message,
	})
}
