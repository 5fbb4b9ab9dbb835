package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate checks the loaded config for required fields and safe values.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New("config is nil")
	}

	if strings.TrimSpace(cfg.Server.Addr) == "" {
		return errors.New("server.addr must be set")
	}
	if cfg.Server.MaxRequestBodyBytes <= 0 {
		return errors.New("server.max_request_body_bytes must be positive")
	}
	for i, key := range cfg.Server.APIKeys {
		if strings.TrimSpace(key) == "" {
			return fmt.Errorf("server.api_keys entry %d is empty", i)
		}
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Logging.AuditLevel)) {
	case "none", "metadata", "full":
	default:
		return fmt.Errorf("logging.audit_level must be none, metadata, or full, got %q", cfg.Logging.AuditLevel)
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Detector.DefaultSensitivity)) {
	case "low", "medium", "high":
	default:
		return fmt.Errorf("detector.default_sensitivity must be low, medium, or high, got %q", cfg.Detector.DefaultSensitivity)
	}

	if cfg.Sentences.DefaultCount <= 0 {
		return errors.New("sentences.default_count must be positive")
	}
	if cfg.Sentences.DefaultThreshold <= 0 {
		return errors.New("sentences.default_threshold must be positive")
	}

	if cfg.StyleModel.Enabled {
		if strings.TrimSpace(cfg.StyleModel.ModelDir) == "" && !cfg.StyleModel.AllowHeuristicOnly {
			return errors.New("style_model enabled but model_dir is empty and allow_heuristic_only is false")
		}
		if cfg.StyleModel.SeqLen <= 0 {
			return errors.New("style_model.seq_len must be positive")
		}
	}

	if err := validateAuditConfig(cfg.Audit); err != nil {
		return err
	}

	return validateTelemetryConfig(cfg.Telemetry)
}

func validateAuditConfig(a AuditConfig) error {
	for i, s := range a.Sinks {
		switch strings.ToLower(strings.TrimSpace(s.Type)) {
		case "file_jsonl":
			if strings.TrimSpace(s.Path) == "" {
				return fmt.Errorf("audit sink %d (file_jsonl) missing path", i)
			}
		case "webhook":
			if strings.TrimSpace(s.URL) == "" {
				return fmt.Errorf("audit sink %d (webhook) missing url", i)
			}
			u, err := url.Parse(s.URL)
			if err != nil || u.Scheme == "" || u.Host == "" {
				return fmt.Errorf("audit sink %d (webhook) has invalid url", i)
			}
			if u.Scheme != "http" && u.Scheme != "https" {
				return fmt.Errorf("audit sink %d (webhook) url must be http or https", i)
			}
		default:
			return fmt.Errorf("audit sink %d has unknown type %q", i, s.Type)
		}
	}
	return nil
}

func validateTelemetryConfig(t TelemetryConfig) error {
	if !t.Enabled {
		return nil
	}
	if strings.TrimSpace(t.Endpoint) == "" {
		return errors.New("telemetry enabled but endpoint is empty")
	}
	if t.Protocol != "" {
		switch strings.ToLower(strings.TrimSpace(t.Protocol)) {
		case "grpc", "http":
		default:
			return fmt.Errorf("telemetry.protocol must be grpc or http, got %q", t.Protocol)
		}
	}
	return nil
}
