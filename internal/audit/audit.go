// Package audit records analysis outcomes as structured events and fans
// them out to configured sinks without blocking the request path.
package audit

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"log"
	"strings"
	"time"
)

// Audit levels control how much of the analyzed text an event carries.
const (
	LevelNone     = "none"
	LevelMetadata = "metadata"
	LevelFull     = "full"
)

const previewLimit = 500

// Event is one recorded analysis.
type Event struct {
	Version     string    `json:"version"`
	Timestamp   time.Time `json:"timestamp"`
	RequestID   string    `json:"request_id"`
	Tool        string    `json:"tool"`
	Sensitivity string    `json:"sensitivity,omitempty"`
	Score       float64   `json:"score,omitempty"`
	WordCount   int       `json:"word_count"`
	MatchCount  int       `json:"match_count,omitempty"`
	Categories  []string  `json:"categories,omitempty"`
	TextPreview string    `json:"text_preview,omitempty"`
	DurationMs  float64   `json:"duration_ms"`
	Status      string    `json:"status"`
	Error       string    `json:"error,omitempty"`
}

// BuildParams collects the inputs for one event.
type BuildParams struct {
	RequestID   string
	Tool        string
	Sensitivity string
	Score       float64
	WordCount   int
	MatchCount  int
	Categories  []string
	Text        string
	Level       string
	Duration    time.Duration
	Err         error
}

// BuildEvent assembles an event, applying the audit level to the preview.
func BuildEvent(p BuildParams) *Event {
	ev := &Event{
		Version:     "1",
		Timestamp:   time.Now().UTC(),
		RequestID:   ensureRequestID(p.RequestID),
		Tool:        p.Tool,
		Sensitivity: p.Sensitivity,
		Score:       p.Score,
		WordCount:   p.WordCount,
		MatchCount:  p.MatchCount,
		Categories:  cloneStrings(p.Categories),
		DurationMs:  float64(p.Duration) / float64(time.Millisecond),
		Status:      "ok",
	}
	if p.Err != nil {
		ev.Status = "error"
		ev.Error = p.Err.Error()
	}
	if normalizeLevel(p.Level) == LevelFull {
		ev.TextPreview = truncate(p.Text, previewLimit)
	}
	return ev
}

// LogEvent prints the event as one JSON line on the standard logger.
func LogEvent(ev *Event) {
	if ev == nil {
		return
	}
	data, err := json.Marshal(ev)
	if err != nil {
		log.Printf("audit: failed to marshal event: %v", err)
		return
	}
	log.Printf("audit: %s", data)
}

func normalizeLevel(level string) string {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case LevelFull:
		return LevelFull
	case LevelNone:
		return LevelNone
	default:
		return LevelMetadata
	}
}

func ensureRequestID(id string) string {
	if id != "" {
		return id
	}
	var buf [16]byte
	_, _ = rand.Read(buf[:])
	return hex.EncodeToString(buf[:])
}

func cloneStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
