package telemetry

import (
	"testing"
)

func TestSafeAttributesFiltersSensitiveKeys(t *testing.T) {
	kvs := map[string]interface{}{
		"text":          "should drop",
		"text_preview":  "drop",
		"api_key":       "sk-123",
		"token":         "abc",
		"safe_key":      "ok",
		"long_string":   string(make([]byte, 600)),
		"short_string":  "fine",
		"word_count":    120,
		"authorization": "secret",
	}

	attrs := SafeAttributes(kvs)
	for _, a := range attrs {
		switch string(a.Key) {
		case "text", "text_preview", "api_key", "authorization", "token":
			t.Fatalf("unexpected unsafe attribute %s", a.Key)
		case "long_string":
			t.Fatalf("expected long string to be skipped")
		}
	}

	found := map[string]bool{}
	for _, a := range attrs {
		found[string(a.Key)] = true
	}
	if !found["safe_key"] || !found["word_count"] || !found["short_string"] {
		t.Fatalf("expected safe attributes to survive, got %v", found)
	}
}
