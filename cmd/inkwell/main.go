package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/inkwell-ai/inkwell/internal/audit"
	"github.com/inkwell-ai/inkwell/internal/auth"
	"github.com/inkwell-ai/inkwell/internal/config"
	"github.com/inkwell-ai/inkwell/internal/patterns"
	"github.com/inkwell-ai/inkwell/internal/server"
	"github.com/inkwell-ai/inkwell/internal/stylemodel"
	"github.com/inkwell-ai/inkwell/internal/telemetry"
)

func main() {
	addrFlag := flag.String("addr", "", "HTTP listen address (overrides config)")
	configPath := flag.String("config", "inkwell.yaml", "Path to Inkwell config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if err := config.Validate(cfg); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	addr := cfg.Server.Addr
	if *addrFlag != "" {
		addr = *addrFlag
	}

	authz, err := auth.NewFromConfig(cfg)
	if err != nil {
		log.Fatalf("failed to build auth: %v", err)
	}

	detector := patterns.New(patterns.Options{
		CacheCapacity: cfg.Detector.CacheCapacity,
	})

	style, styleNote := buildStyleModel(cfg)
	emitter := buildAuditEmitter(cfg)

	tel, err := telemetry.NewProvider(context.Background(), telemetry.Config{
		Enabled:  cfg.Telemetry.Enabled,
		Endpoint: cfg.Telemetry.Endpoint,
		Protocol: cfg.Telemetry.Protocol,
		Service:  cfg.Telemetry.Service,
	})
	if err != nil {
		log.Fatalf("failed to init telemetry: %v", err)
	}

	srv := server.New(cfg, authz, detector, style, styleNote, emitter, tel)

	log.Printf("Starting Inkwell on %s...", addr)
	if err := srv.Start(addr); err != nil {
		srv.Shutdown(context.Background())
		log.Fatalf("server error: %v", err)
	}
}

// buildStyleModel loads the optional ONNX classifier. Missing or broken
// assets fall back to heuristic-only when the config allows it.
func buildStyleModel(cfg *config.Config) (*stylemodel.Model, string) {
	if !cfg.StyleModel.Enabled {
		return nil, "disabled"
	}
	if !stylemodel.DirLooksValid(cfg.StyleModel.ModelDir) {
		if cfg.StyleModel.AllowHeuristicOnly {
			log.Printf("style model assets not found in %s; running heuristic-only", cfg.StyleModel.ModelDir)
			return nil, "assets_missing"
		}
		log.Fatalf("style model enabled but assets not found in %s", cfg.StyleModel.ModelDir)
	}
	m, err := stylemodel.Load(cfg.StyleModel.ModelDir, cfg.StyleModel.SeqLen)
	if err != nil {
		if cfg.StyleModel.AllowHeuristicOnly {
			log.Printf("style model load failed: %v; running heuristic-only", err)
			return nil, "load_failed"
		}
		log.Fatalf("style model load failed: %v", err)
	}
	log.Printf("style model loaded from %s (seq_len=%d)", cfg.StyleModel.ModelDir, cfg.StyleModel.SeqLen)
	return m, "loaded"
}

func buildAuditEmitter(cfg *config.Config) *audit.Emitter {
	if len(cfg.Audit.Sinks) == 0 {
		return nil
	}
	var sinks []audit.Sink
	for _, sc := range cfg.Audit.Sinks {
		switch sc.Type {
		case "file_jsonl":
			sink, err := audit.NewFileSink(sc.Path)
			if err != nil {
				log.Fatalf("audit file sink: %v", err)
			}
			sinks = append(sinks, sink)
		case "webhook":
			sink, err := audit.NewWebhookSink(sc.URL, sc.Headers, 2*time.Second)
			if err != nil {
				log.Fatalf("audit webhook sink: %v", err)
			}
			sinks = append(sinks, sink)
		default:
			log.Fatalf("audit sink: unknown type %q", sc.Type)
		}
	}
	return audit.NewEmitter(audit.EmitterConfig{
		QueueSize: cfg.Audit.QueueSize,
		Workers:   cfg.Audit.Workers,
	}, sinks)
}
