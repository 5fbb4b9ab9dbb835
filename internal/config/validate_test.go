package config

import (
	"strings"
	"testing"
)

func validBase() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func TestValidateFailures(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{
			name:   "missing server addr",
			mutate: func(c *Config) { c.Server.Addr = "" },
			want:   "server.addr",
		},
		{
			name:   "bad body limit",
			mutate: func(c *Config) { c.Server.MaxRequestBodyBytes = -1 },
			want:   "max_request_body_bytes",
		},
		{
			name:   "empty api key entry",
			mutate: func(c *Config) { c.Server.APIKeys = []string{"good", " "} },
			want:   "api_keys",
		},
		{
			name:   "bad audit level",
			mutate: func(c *Config) { c.Logging.AuditLevel = "verbose" },
			want:   "audit_level",
		},
		{
			name:   "bad sensitivity",
			mutate: func(c *Config) { c.Detector.DefaultSensitivity = "extreme" },
			want:   "default_sensitivity",
		},
		{
			name:   "bad sentence count",
			mutate: func(c *Config) { c.Sentences.DefaultCount = -3 },
			want:   "default_count",
		},
		{
			name: "style model without dir or fallback",
			mutate: func(c *Config) {
				c.StyleModel.Enabled = true
				c.StyleModel.ModelDir = ""
				c.StyleModel.AllowHeuristicOnly = false
			},
			want: "model_dir",
		},
		{
			name: "file sink missing path",
			mutate: func(c *Config) {
				c.Audit.Sinks = []AuditSinkConfig{{Type: "file_jsonl"}}
			},
			want: "missing path",
		},
		{
			name: "webhook sink bad url",
			mutate: func(c *Config) {
				c.Audit.Sinks = []AuditSinkConfig{{Type: "webhook", URL: "::://bad"}}
			},
			want: "invalid url",
		},
		{
			name: "unknown sink type",
			mutate: func(c *Config) {
				c.Audit.Sinks = []AuditSinkConfig{{Type: "syslog"}}
			},
			want: "unknown type",
		},
		{
			name: "telemetry enabled without endpoint",
			mutate: func(c *Config) {
				c.Telemetry.Enabled = true
				c.Telemetry.Endpoint = ""
			},
			want: "endpoint",
		},
		{
			name: "telemetry bad protocol",
			mutate: func(c *Config) {
				c.Telemetry.Enabled = true
				c.Telemetry.Endpoint = "localhost:4317"
				c.Telemetry.Protocol = "udp"
			},
			want: "protocol",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validBase()
			tc.mutate(cfg)
			if err := Validate(cfg); err == nil {
				t.Fatalf("expected error containing %q", tc.want)
			} else if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not contain %q", err.Error(), tc.want)
			}
		})
	}
}

func TestValidateOK(t *testing.T) {
	cfg := validBase()
	if err := Validate(cfg); err != nil {
		t.Fatalf("expected valid defaults, got %v", err)
	}

	cfg = validBase()
	cfg.Server.APIKeys = []string{"secret-key"}
	cfg.StyleModel.Enabled = true
	cfg.StyleModel.AllowHeuristicOnly = true
	cfg.Audit.Sinks = []AuditSinkConfig{
		{Type: "file_jsonl", Path: "/tmp/audit.jsonl"},
		{Type: "webhook", URL: "https://example.com/hook"},
	}
	cfg.Telemetry.Enabled = true
	cfg.Telemetry.Endpoint = "localhost:4317"
	if err := Validate(cfg); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load("/nonexistent/inkwell.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Addr != ":8080" || cfg.Logging.AuditLevel != "metadata" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Detector.DefaultSensitivity != "medium" || cfg.Sentences.DefaultCount != 5 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}
