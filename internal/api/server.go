package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"glucolens/domain/glucose"
	"glucolens/internal/analyze"
	"glucolens/internal/config"
	"glucolens/internal/errors"
	"glucolens/internal/logging"
)

// Server exposes the analysis pipeline over HTTP.
type Server struct {
	analyzer *analyze.Analyzer
	log      *logging.Logger
	port     string
}

// NewServer creates an HTTP server around an analyzer.
func NewServer(analyzer *analyze.Analyzer, cfg config.ServerConfig, log *logging.Logger) *Server {
	return &Server{analyzer: analyzer, log: log, port: cfg.Port}
}

// Router builds the chi router with all routes mounted.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", s.handleHealth)
	r.Post("/analyze", s.handleAnalyze)
	return r
}

// ListenAndServe starts the server on the configured port.
func (s *Server) ListenAndServe() error {
	addr := ":" + s.port
	s.log.Info("listening on %s", addr)
	return http.ListenAndServe(addr, s.Router())
}

// analyzeRequest is the JSON request body of POST /analyze.
type analyzeRequest struct {
	Samples []glucose.Sample `json:"samples"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, errors.InvalidInput("request body is not valid JSON"))
		return
	}

	series, err := glucose.NewSeries(req.Samples)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	report, err := s.analyzer.Run(r.Context(), series)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.GetCode(err) == errors.CodeInsufficientData {
			status = http.StatusUnprocessableEntity
		}
		s.writeError(w, status, err)
		return
	}

	writeJSON(w, http.StatusOK, report)
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.log.Warn("request failed: %v", err)
	writeJSON(w, status, map[string]string{
		"error": err.Error(),
		"code":  errors.GetCode(err),
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
