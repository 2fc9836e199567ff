// Package server exposes the generation pipeline over HTTP. It is a
// thin collaborator layer: validation and transport only, with all
// resilience handled inside the generator.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/brightpath-ai/brightpath/pkg/cache"
	"github.com/brightpath-ai/brightpath/pkg/generator"
	"github.com/brightpath-ai/brightpath/pkg/models"
	"github.com/brightpath-ai/brightpath/pkg/session"
)

// Server is the Brightpath HTTP API.
type Server struct {
	listen   string
	gen      *generator.Generator
	cache    *cache.Store
	sessions *session.Store
	logger   *zap.Logger
	mux      *http.ServeMux
}

// New creates a Server wired with all dependencies.
func New(listen string, gen *generator.Generator, store *cache.Store, sessions *session.Store, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		listen:   listen,
		gen:      gen,
		cache:    store,
		sessions: sessions,
		logger:   logger,
		mux:      http.NewServeMux(),
	}
	s.mux.HandleFunc("POST /v1/interventions", s.handleGenerate)
	s.mux.HandleFunc("GET /v1/cache/stats", s.handleCacheStats)
	s.mux.HandleFunc("GET /v1/cost/stats", s.handleCostStats)
	s.mux.HandleFunc("POST /v1/sessions/end", s.handleEndSession)
	s.mux.HandleFunc("GET /healthz", s.handleHealth)
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// ListenAndServe starts the server with graceful shutdown support.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.listen,
		Handler: s,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("brightpath listening", zap.String("addr", s.listen))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.sessions.Reset()
		return srv.Shutdown(shutCtx)
	case err := <-errCh:
		return err
	}
}

// generateRequest is the inbound generation payload.
type generateRequest struct {
	LearnerID string            `json:"learner_id"`
	Kind      string            `json:"intervention_kind"`
	Context   map[string]string `json:"context"`
	Priority  models.Priority   `json:"priority"`
}

// generateResponse wraps the result envelope with its session.
type generateResponse struct {
	SessionID string                  `json:"session_id"`
	Result    models.GeneratedContent `json:"result"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Kind == "" {
		writeError(w, http.StatusBadRequest, "intervention_kind is required")
		return
	}
	if req.LearnerID == "" {
		req.LearnerID = "anonymous"
	}
	if req.Priority == "" {
		req.Priority = models.PriorityNormal
	}

	sess := s.sessions.Resolve(req.LearnerID)

	result, err := s.gen.Generate(r.Context(), models.GenerationRequest{
		Kind:     req.Kind,
		Context:  req.Context,
		Priority: req.Priority,
	}, sess.Ledger)
	if err != nil {
		// Unknown kind is the one hard error: a caller bug, not a
		// resilience case.
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, generateResponse{SessionID: sess.ID, Result: result})
}

func (s *Server) handleCacheStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.cache.Stats()
	if err != nil {
		s.logger.Error("cache stats failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "cache stats unavailable")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleCostStats(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("session_id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "session_id is required")
		return
	}

	sess, err := s.sessions.Get(id)
	if errors.Is(err, session.ErrNotFound) {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	writeJSON(w, http.StatusOK, sess.Ledger.Stats())
}

func (s *Server) handleEndSession(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("session_id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "session_id is required")
		return
	}

	if err := s.sessions.End(id); errors.Is(err, session.ErrNotFound) {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
