package http

import (
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/Shiningstar2501/editoriallinks/internal/adapter/report"
	"github.com/Shiningstar2501/editoriallinks/internal/domain"
	"github.com/Shiningstar2501/editoriallinks/internal/metrics"
)

// Server is the HTTP adapter: upload form in, scan results out.
type Server struct {
	collector *domain.Collector
	source    domain.RowSource
	mux       *http.ServeMux
	server    *http.Server
	maxUpload int64
	maxRows   int
}

// NewServer creates a new HTTP server.
func NewServer(collector *domain.Collector, source domain.RowSource, addr string, maxUpload int64, maxRows int) *Server {
	s := &Server{
		collector: collector,
		source:    source,
		mux:       http.NewServeMux(),
		maxUpload: maxUpload,
		maxRows:   maxRows,
	}
	s.routes()
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.mux,
	}
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	s.mux.HandleFunc("POST /scan", s.handleScan)
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.Handle("GET /metrics", metrics.Handler())
}

// errorResponse is the JSON error response.
type errorResponse struct {
	Error string `json:"error"`
}

// scanResponse is the JSON response for format=json scans.
type scanResponse struct {
	Results []domain.ResultRecord `json:"results"`
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, nil); err != nil {
		log.Error("render index", "err", err)
	}
}

func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)

	file, header, err := r.FormFile("workbook")
	if err != nil {
		s.reject(w, r, "an .xlsx upload named 'workbook' is required")
		return
	}
	defer file.Close()

	if !strings.HasSuffix(strings.ToLower(header.Filename), ".xlsx") {
		s.reject(w, r, "upload must be an .xlsx file")
		return
	}

	rows, err := s.source.Rows(file)
	if err != nil {
		s.reject(w, r, err.Error())
		return
	}
	if len(rows) == 0 {
		s.reject(w, r, "workbook has no data rows")
		return
	}
	if s.maxRows > 0 && len(rows) > s.maxRows {
		s.reject(w, r, fmt.Sprintf("workbook has %d rows, limit is %d", len(rows), s.maxRows))
		return
	}

	log.Info("scanning batch", "file", header.Filename, "rows", len(rows))
	start := time.Now()
	records := s.collector.Process(r.Context(), rows)
	observeBatch(records, time.Since(start))

	switch r.FormValue("format") {
	case "pdf":
		data, err := report.Build(records)
		if err != nil {
			log.Error("build report", "err", err)
			s.writeError(w, r, http.StatusInternalServerError, "internal error")
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", "attachment; filename=scan-report.pdf")
		_, _ = w.Write(data)
	case "json":
		s.writeJSON(w, http.StatusOK, scanResponse{Results: records})
	default:
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := resultsTemplate.Execute(w, records); err != nil {
			log.Error("render results", "err", err)
		}
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func observeBatch(records []domain.ResultRecord, elapsed time.Duration) {
	metrics.BatchesTotal.WithLabelValues("ok").Inc()
	metrics.BatchDuration.Observe(elapsed.Seconds())
	for _, rec := range records {
		if rec.Failed() {
			metrics.RowsTotal.WithLabelValues("failed").Inc()
			continue
		}
		metrics.RowsTotal.WithLabelValues("ok").Inc()
		metrics.LinksFound.Add(float64(len(rec.Links)))
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// reject refuses an upload before any processing happens.
func (s *Server) reject(w http.ResponseWriter, r *http.Request, msg string) {
	metrics.BatchesTotal.WithLabelValues("rejected").Inc()
	s.writeError(w, r, http.StatusBadRequest, msg)
}

// writeError answers in the shape the caller asked for: JSON for
// format=json, plain text otherwise.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	if r.FormValue("format") == "json" {
		s.writeJSON(w, status, errorResponse{Error: msg})
		return
	}
	http.Error(w, msg, status)
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// ServeHTTP implements http.Handler for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Addr returns the server address.
func (s *Server) Addr() string {
	return s.server.Addr
}

// Port extracts the port from the address.
func (s *Server) Port() int {
	addr := s.server.Addr
	if idx := strings.LastIndex(addr, ":"); idx >= 0 {
		port, _ := strconv.Atoi(addr[idx+1:])
		return port
	}
	return 0
}

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head><title>Editorial-use link scanner</title></head>
<body>
<h1>Editorial-use link scanner</h1>
<p>Upload an .xlsx workbook with "Google Docs URL" and "Website URL" columns.
Each document is exported as a PDF and scanned for restricted-use image links.</p>
<form action="/scan" method="post" enctype="multipart/form-data">
  <p><input type="file" name="workbook" accept=".xlsx" required></p>
  <p>
    <label><input type="radio" name="format" value="html" checked> HTML results</label>
    <label><input type="radio" name="format" value="pdf"> PDF report</label>
  </p>
  <p><button type="submit">Scan</button></p>
</form>
</body>
</html>
`))

var resultsTemplate = template.Must(template.New("results").Parse(`<!DOCTYPE html>
<html>
<head><title>Scan results</title></head>
<body>
<h1>Scan results</h1>
{{range .}}
<section>
  <h2>{{.DisplaySite}}</h2>
  {{if .Failed}}
  <p class="error">Error: {{.Err}}</p>
  {{else if .Links}}
  <ul>
    {{range .Links}}<li>page {{.Page}}: <a href="{{.URL}}">{{.URL}}</a></li>{{end}}
  </ul>
  {{else}}
  <p>No restricted-use links found.</p>
  {{end}}
</section>
{{end}}
<p><a href="/">Scan another workbook</a></p>
</body>
</html>
`))
