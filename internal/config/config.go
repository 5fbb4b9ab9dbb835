package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds Inkwell configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Logging    LoggingConfig    `yaml:"logging"`
	Detector   DetectorConfig   `yaml:"detector"`
	Sentences  SentencesConfig  `yaml:"sentences"`
	StyleModel StyleModelConfig `yaml:"style_model"`
	Audit      AuditConfig      `yaml:"audit"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
}

type ServerConfig struct {
	Addr                string   `yaml:"addr"`                   // HTTP listen address, e.g. ":8080"
	MaxRequestBodyBytes int64    `yaml:"max_request_body_bytes"` // request body cap
	APIKeys             []string `yaml:"api_keys"`               // empty disables auth
}

type LoggingConfig struct {
	AuditLevel string `yaml:"audit_level"` // none | metadata | full
}

type DetectorConfig struct {
	DefaultSensitivity string `yaml:"default_sensitivity"` // low | medium | high
	CacheCapacity      int    `yaml:"cache_capacity"`      // 0 = default, negative disables
}

type SentencesConfig struct {
	DefaultCount     int     `yaml:"default_count"`
	DefaultThreshold float64 `yaml:"default_threshold"`
}

type StyleModelConfig struct {
	Enabled            bool   `yaml:"enabled"`
	ModelDir           string `yaml:"model_dir"`
	SeqLen             int    `yaml:"seq_len"`
	AllowHeuristicOnly bool   `yaml:"allow_heuristic_only"`
}

type AuditSinkConfig struct {
	Type    string            `yaml:"type"` // file_jsonl | webhook
	Path    string            `yaml:"path"`
	URL     string            `yaml:"url"`
	Headers map[string]string `yaml:"headers"`
}

type AuditConfig struct {
	Sinks     []AuditSinkConfig `yaml:"sinks"`
	QueueSize int               `yaml:"queue_size"`
	Workers   int               `yaml:"workers"`
}

type TelemetryConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Endpoint string `yaml:"endpoint"`
	Protocol string `yaml:"protocol"` // grpc | http
	Service  string `yaml:"service"`
}

// Load reads configuration from a YAML file.
// If the file doesn't exist, it returns a default config and no error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return defaultConfig(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)

	return &cfg, nil
}

func defaultConfig() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Server.MaxRequestBodyBytes <= 0 {
		cfg.Server.MaxRequestBodyBytes = 1 << 20
	}

	if cfg.Logging.AuditLevel == "" {
		cfg.Logging.AuditLevel = "metadata"
	}

	if cfg.Detector.DefaultSensitivity == "" {
		cfg.Detector.DefaultSensitivity = "medium"
	}

	if cfg.Sentences.DefaultCount <= 0 {
		cfg.Sentences.DefaultCount = 5
	}
	if cfg.Sentences.DefaultThreshold <= 0 {
		cfg.Sentences.DefaultThreshold = 10.0
	}

	if cfg.StyleModel.SeqLen <= 0 {
		cfg.StyleModel.SeqLen = 256
	}

	if cfg.Audit.QueueSize <= 0 {
		cfg.Audit.QueueSize = 1000
	}
	if cfg.Audit.Workers <= 0 {
		cfg.Audit.Workers = 1
	}

	if cfg.Telemetry.Service == "" {
		cfg.Telemetry.Service = "inkwell"
	}
	if cfg.Telemetry.Protocol == "" {
		cfg.Telemetry.Protocol = "grpc"
	}
}
