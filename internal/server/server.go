// Package server exposes the pipeline over HTTP: a trigger endpoint and a
// health check, with configurable CORS in front of both.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/solentra/enrichflow/config"
	"github.com/solentra/enrichflow/internal/db"
	"github.com/solentra/enrichflow/internal/models"
	"github.com/solentra/enrichflow/internal/pipeline"
)

type Server struct {
	pipeline *pipeline.Pipeline
	store    db.ResultStore
	cors     config.CORSConfig
	logger   *slog.Logger
}

func New(p *pipeline.Pipeline, store db.ResultStore, cors config.CORSConfig, logger *slog.Logger) *Server {
	return &Server{pipeline: p, store: store, cors: cors, logger: logger}
}

// Handler returns the routed handler with the CORS policy applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /pipeline", s.handlePipeline)
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	return corsMiddleware(s.cors, mux)
}

// handlePipeline runs one pipeline invocation. An undecodable body is the
// only client error; a decoded request always answers 200 with a report,
// even when every record failed.
func (s *Server) handlePipeline(w http.ResponseWriter, r *http.Request) {
	var req models.PipelineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.logger.Warn("[Server] Rejecting undecodable request body", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	report := s.pipeline.Run(r.Context(), req)
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(r.Context()); err != nil {
		s.logger.Error("[Server] Health check failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
