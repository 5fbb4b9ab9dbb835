// Package server exposes the analysis engines over a JSON HTTP API.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/inkwell-ai/inkwell/internal/audit"
	"github.com/inkwell-ai/inkwell/internal/auth"
	"github.com/inkwell-ai/inkwell/internal/config"
	"github.com/inkwell-ai/inkwell/internal/patterns"
	"github.com/inkwell-ai/inkwell/internal/stylemodel"
	"github.com/inkwell-ai/inkwell/internal/telemetry"
)

// Server wraps the HTTP server components for Inkwell.
type Server struct {
	mux       *http.ServeMux
	cfg       *config.Config
	auth      *auth.Auth
	detector  *patterns.Detector
	style     *stylemodel.Model
	styleNote string
	emitter   *audit.Emitter
	telemetry *telemetry.Provider
	startedAt time.Time
}

// New creates a server with all routes registered. The style model and
// audit emitter are optional; nil values disable those features.
func New(cfg *config.Config, authz *auth.Auth, detector *patterns.Detector, style *stylemodel.Model, styleNote string, emitter *audit.Emitter, tel *telemetry.Provider) *Server {
	mux := http.NewServeMux()

	s := &Server{
		mux:       mux,
		cfg:       cfg,
		auth:      authz,
		detector:  detector,
		style:     style,
		styleNote: styleNote,
		emitter:   emitter,
		telemetry: tel,
		startedAt: time.Now(),
	}

	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/v1/patterns", s.handlePatterns)
	mux.HandleFunc("/v1/readability", s.handleReadability)
	mux.HandleFunc("/v1/sentences", s.handleSentences)
	mux.HandleFunc("/v1/status", s.handleStatus)

	return s
}

// Handler returns the route mux, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start runs the HTTP server on the given address.
func (s *Server) Start(addr string) error {
	log.Printf("Inkwell running on %s", addr)
	return http.ListenAndServe(addr, s.mux)
}

// Shutdown flushes the audit emitter and telemetry providers.
func (s *Server) Shutdown(ctx context.Context) {
	if s.emitter != nil {
		s.emitter.Close(ctx)
	}
	if s.telemetry != nil {
		s.telemetry.Shutdown(ctx)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

func writeError(w http.ResponseWriter, status int, message, typ string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorBody{
		Error: errorDetail{Message: message, Type: typ},
	})
}

// authorize checks the bearer token when auth is enabled. It writes the
// error response itself and reports whether the request may proceed.
func (s *Server) authorize(w http.ResponseWriter, r *http.Request) bool {
	if !s.auth.Enabled() {
		return true
	}
	apiKey, ok := parseBearerToken(r.Header.Get("Authorization"))
	if !ok || !s.auth.Check(apiKey) {
		writeError(w, http.StatusUnauthorized, "Invalid or missing API key", "authentication_error")
		return false
	}
	return true
}

// decodeBody enforces the configured body size cap and decodes JSON into dst.
func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	limit := s.cfg.Server.MaxRequestBodyBytes
	if limit <= 0 {
		limit = 1 << 20
	}
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "Request body too large", "invalid_request_error")
			return false
		}
		writeError(w, http.StatusBadRequest, "Invalid JSON body", "invalid_request_error")
		return false
	}
	return true
}

// parseBearerToken extracts the token from an Authorization: Bearer header.
func parseBearerToken(h string) (string, bool) {
	if h == "" {
		return "", false
	}
	parts := strings.Fields(h)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}
