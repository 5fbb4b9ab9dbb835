package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/inkwell-ai/inkwell/internal/audit"
	"github.com/inkwell-ai/inkwell/internal/patterns"
	"github.com/inkwell-ai/inkwell/internal/readability"
	"github.com/inkwell-ai/inkwell/internal/sentences"
	"github.com/inkwell-ai/inkwell/internal/stylemodel"
)

type patternsRequest struct {
	Text        string `json:"text"`
	Sensitivity string `json:"sensitivity,omitempty"`
}

type patternsResponse struct {
	*patterns.Result
	Style *stylemodel.Result `json:"style,omitempty"`
}

func (s *Server) handlePatterns(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", "invalid_request_error")
		return
	}
	if !s.authorize(w, r) {
		return
	}

	var req patternsRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	raw := req.Sensitivity
	if raw == "" {
		raw = s.cfg.Detector.DefaultSensitivity
	}
	sensitivity, err := patterns.ParseSensitivity(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "invalid_request_error")
		return
	}

	start := time.Now()
	hitsBefore, _, _ := s.detector.CacheStats()
	result, err := s.detector.Analyze(req.Text, sensitivity)
	elapsed := time.Since(start)
	hitsAfter, _, _ := s.detector.CacheStats()
	cacheHit := hitsAfter > hitsBefore

	if err != nil {
		s.record("analyze_ai_patterns", string(sensitivity), req.Text, nil, elapsed, cacheHit, err)
		writeError(w, http.StatusBadRequest, err.Error(), "invalid_request_error")
		return
	}

	resp := patternsResponse{Result: result}
	if s.style != nil {
		styleResult, styleErr := s.style.Evaluate(req.Text)
		if styleErr == nil {
			resp.Style = styleResult
		}
	}

	s.record("analyze_ai_patterns", string(sensitivity), req.Text, result, elapsed, cacheHit, nil)
	writeJSON(w, resp)
}

type readabilityRequest struct {
	Text    string   `json:"text"`
	Metrics []string `json:"metrics,omitempty"`
}

func (s *Server) handleReadability(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", "invalid_request_error")
		return
	}
	if !s.authorize(w, r) {
		return
	}

	var req readabilityRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	start := time.Now()
	report, err := readability.Analyze(req.Text, req.Metrics)
	elapsed := time.Since(start)

	if err != nil {
		s.record("analyze_readability", "", req.Text, nil, elapsed, false, err)
		writeError(w, http.StatusBadRequest, err.Error(), "invalid_request_error")
		return
	}

	s.record("analyze_readability", "", req.Text, nil, elapsed, false, nil)
	writeJSON(w, report)
}

type sentencesRequest struct {
	Text      string  `json:"text"`
	Count     int     `json:"count,omitempty"`
	Threshold float64 `json:"threshold,omitempty"`
}

func (s *Server) handleSentences(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", "invalid_request_error")
		return
	}
	if !s.authorize(w, r) {
		return
	}

	var req sentencesRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	count := req.Count
	if count <= 0 {
		count = s.cfg.Sentences.DefaultCount
	}
	threshold := req.Threshold
	if threshold <= 0 {
		threshold = s.cfg.Sentences.DefaultThreshold
	}

	start := time.Now()
	report, err := sentences.FindDifficult(req.Text, count, threshold)
	elapsed := time.Since(start)

	if err != nil {
		s.record("find_difficult_sentences", "", req.Text, nil, elapsed, false, err)
		writeError(w, http.StatusBadRequest, err.Error(), "invalid_request_error")
		return
	}

	s.record("find_difficult_sentences", "", req.Text, nil, elapsed, false, nil)
	writeJSON(w, report)
}

type statusResponse struct {
	Status        string          `json:"status"`
	UptimeSeconds float64         `json:"uptime_seconds"`
	Cache         cacheStatus     `json:"cache"`
	StyleModel    styleStatus     `json:"style_model"`
	Audit         auditStatus     `json:"audit"`
	Telemetry     telemetryStatus `json:"telemetry"`
}

type cacheStatus struct {
	Hits   uint64 `json:"hits"`
	Misses uint64 `json:"misses"`
	Size   int    `json:"size"`
}

type styleStatus struct {
	Enabled bool   `json:"enabled"`
	Note    string `json:"note,omitempty"`
}

type auditStatus struct {
	Enqueued uint64 `json:"enqueued"`
	Dropped  uint64 `json:"dropped"`
}

type telemetryStatus struct {
	Enabled bool `json:"enabled"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", "invalid_request_error")
		return
	}
	if !s.authorize(w, r) {
		return
	}

	hits, misses, size := s.detector.CacheStats()
	resp := statusResponse{
		Status:        "ok",
		UptimeSeconds: time.Since(s.startedAt).Seconds(),
		Cache:         cacheStatus{Hits: hits, Misses: misses, Size: size},
		StyleModel:    styleStatus{Enabled: s.style != nil, Note: s.styleNote},
		Telemetry:     telemetryStatus{Enabled: s.telemetry != nil && s.telemetry.Enabled},
	}
	if s.emitter != nil {
		m := s.emitter.MetricsSnapshot()
		resp.Audit = auditStatus{Enqueued: m.Enqueued(), Dropped: m.Dropped()}
	}
	writeJSON(w, resp)
}

// record emits the audit event and telemetry for one handled analysis.
func (s *Server) record(tool, sensitivity, text string, result *patterns.Result, elapsed time.Duration, cacheHit bool, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}

	var score float64
	var matchCount int
	var categories []string
	if result != nil {
		score = result.Score
		matchCount = result.Summary.TotalPatterns
		for _, cr := range result.Patterns {
			categories = append(categories, cr.Category)
		}
	}

	if s.telemetry != nil {
		s.telemetry.RecordAnalysis(tool, sensitivity, status, float64(elapsed)/float64(time.Millisecond), score, cacheHit)
	}
	if s.emitter != nil {
		s.emitter.Emit(context.Background(), audit.BuildEvent(audit.BuildParams{
			Tool:        tool,
			Sensitivity: sensitivity,
			Score:       score,
			WordCount:   wordCount(text),
			MatchCount:  matchCount,
			Categories:  categories,
			Text:        text,
			Level:       s.cfg.Logging.AuditLevel,
			Duration:    elapsed,
			Err:         err,
		}))
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to write response: %v", err)
	}
}

func wordCount(text string) int {
	return len(strings.Fields(text))
}
