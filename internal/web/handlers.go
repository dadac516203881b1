package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/a-h/templ"
	"github.com/google/uuid"

	"github.com/JonMunkholm/reportviewer/internal/analyzer"
	"github.com/JonMunkholm/reportviewer/internal/logging"
	"github.com/JonMunkholm/reportviewer/internal/report"
	"github.com/JonMunkholm/reportviewer/internal/textio"
	"github.com/JonMunkholm/reportviewer/internal/view"
	"github.com/JonMunkholm/reportviewer/internal/web/templates"
)

// formOverhead is allowed on top of the source size for multipart framing
// and the other form fields.
const formOverhead = 64 << 10

// AnalyzeRequest is the body of POST /api/analyze.
type AnalyzeRequest struct {
	Code string `json:"code"`
}

// AnalyzeResponse is the reply of POST /api/analyze.
type AnalyzeResponse struct {
	ID     string               `json:"id"`
	Report string               `json:"report"`
	Parsed *report.ParsedReport `json:"parsed"`
}

// HealthResponse is the reply of GET /healthz.
type HealthResponse struct {
	Status   string                  `json:"status"`
	Analyzer *analyzer.LimiterStatus `json:"analyzer,omitempty"`
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, http.StatusOK, templates.Home(templates.SampleCode, nil, nil))
}

// handleAnalyzeForm accepts the editor form: a multipart "file" upload takes
// precedence over the "code" textarea.
func (s *Server) handleAnalyzeForm(w http.ResponseWriter, r *http.Request) {
	maxSize := s.cfg.Upload.MaxSourceSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize+formOverhead)

	code, err := s.readFormSource(r)
	if err != nil {
		s.respondError(w, r, err, code)
		return
	}

	a, _, err := s.analyze(r.Context(), code)
	if err != nil {
		s.respondError(w, r, err, code)
		return
	}

	if isHTMX(r) {
		s.renderPage(w, r, http.StatusOK, templates.ResultPanel(a))
		return
	}
	s.renderPage(w, r, http.StatusOK, templates.Home(code, &a, nil))
}

func (s *Server) readFormSource(r *http.Request) (string, error) {
	maxSize := s.cfg.Upload.MaxSourceSize

	err := r.ParseMultipartForm(maxSize)
	if errors.Is(err, http.ErrNotMultipart) {
		err = r.ParseForm()
	}
	if err != nil {
		return "", fmt.Errorf("parse form: %w", err)
	}

	if r.MultipartForm != nil {
		if files := r.MultipartForm.File["file"]; len(files) > 0 && files[0].Size > 0 {
			f, err := files[0].Open()
			if err != nil {
				return "", fmt.Errorf("open upload: %w", err)
			}
			defer f.Close()
			return textio.ReadAll(f, maxSize)
		}
	}

	values, ok := r.Form["code"]
	if !ok || len(values) == 0 {
		return "", ErrNoSource
	}
	if int64(len(values[0])) > maxSize {
		return "", fmt.Errorf("%w: exceeds %d bytes", textio.ErrTooLarge, maxSize)
	}
	return textio.Normalize(values[0]), nil
}

func (s *Server) handleAnalyzeAPI(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Upload.MaxSourceSize+formOverhead)

	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxBytes *http.MaxBytesError
		if !errors.As(err, &maxBytes) {
			err = fmt.Errorf("%w: %v", ErrInvalidJSON, err)
		}
		s.respondError(w, r, err, "")
		return
	}
	if int64(len(req.Code)) > s.cfg.Upload.MaxSourceSize {
		s.respondError(w, r, fmt.Errorf("%w: exceeds %d bytes", textio.ErrTooLarge, s.cfg.Upload.MaxSourceSize), "")
		return
	}

	a, parsed, err := s.analyze(r.Context(), textio.Normalize(req.Code))
	if err != nil {
		s.respondError(w, r, err, "")
		return
	}

	writeJSON(w, http.StatusOK, AnalyzeResponse{ID: a.ID, Report: a.Report, Parsed: parsed})
}

// handleParse parses a report posted as the raw request body.
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	text, err := textio.ReadAll(r.Body, s.cfg.Upload.MaxReportSize)
	if err != nil && !errors.Is(err, textio.ErrEmpty) {
		s.respondError(w, r, err, "")
		return
	}

	parsed := report.Parse(text)
	logging.FromContext(r.Context()).Debug("report parsed",
		"bytes", len(text),
		"categories", len(parsed.Categories),
		"has_errors", parsed.HasErrors(),
	)
	writeJSON(w, http.StatusOK, parsed)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{Status: "ok"}
	if l, ok := s.analyzer.(limited); ok && l.Limiter() != nil {
		st := l.Limiter().Status()
		resp.Analyzer = &st
	}
	writeJSON(w, http.StatusOK, resp)
}

// analyze runs code through the upstream analyzer and parses the report.
func (s *Server) analyze(ctx context.Context, code string) (templates.Analysis, *report.ParsedReport, error) {
	id := uuid.NewString()
	logger := logging.WithFields(ctx, "analysis_id", id)

	text, err := s.analyzer.Analyze(ctx, code)
	if err != nil {
		return templates.Analysis{}, nil, fmt.Errorf("analysis %s: %w", id, err)
	}

	parsed := report.Parse(text)
	logger.Info("analysis completed",
		"source_bytes", len(code),
		"categories", len(parsed.Categories),
		"lexical_errors", len(parsed.LexicalErrors),
		"syntax_errors", len(parsed.SyntaxErrors),
		"semantic_errors", len(parsed.SemanticErrors),
	)

	return templates.Analysis{
		ID:     id,
		Code:   code,
		Report: text,
		Page:   view.Build(parsed),
	}, parsed, nil
}

func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := c.Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("render failed", "path", r.URL.Path, "error", err)
	}
}
