package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/rakshak-app/rakshak/internal/config"
	"github.com/rakshak-app/rakshak/internal/detect"
	"github.com/rakshak-app/rakshak/internal/evidence"
	"github.com/rakshak-app/rakshak/internal/monitor"
	"github.com/rakshak-app/rakshak/internal/risk"
	"github.com/rakshak-app/rakshak/internal/rules"
	"github.com/rakshak-app/rakshak/internal/stats"
	"github.com/rakshak-app/rakshak/internal/telemetry"
)

const version = "0.3.0"

func main() {
	_ = godotenv.Load()

	addrFlag := flag.String("addr", "", "status endpoint listen address (overrides config)")
	configPath := flag.String("config", "rakshak.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if err := config.Validate(cfg); err != nil {
		log.Fatalf("invalid config: %v", err)
	}
	if *addrFlag != "" {
		cfg.Server.Addr = *addrFlag
	}

	logger, err := buildLogger(cfg.Logging.Level)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()

	tel, err := telemetry.NewProvider(ctx, telemetry.Config{
		Enabled:  cfg.Telemetry.Enabled,
		Endpoint: cfg.Telemetry.Endpoint,
		Protocol: cfg.Telemetry.Protocol,
		Service:  "rakshakd",
		Version:  version,
	})
	if err != nil {
		logger.Fatal("telemetry setup failed", zap.Error(err))
	}
	defer tel.Shutdown(ctx)

	repo, err := rules.LoadOverrides(cfg.Rules.OverridesPath)
	if err != nil {
		logger.Fatal("rule catalog load failed", zap.Error(err))
	}

	src := risk.DefaultSource()
	classifier := detect.New(repo, src)

	sinks, err := buildSinks(cfg.Alerts)
	if err != nil {
		logger.Fatal("alert sink setup failed", zap.Error(err))
	}
	collector := monitor.NewCollectorSink()
	sinks = append(sinks, collector)
	emitter := monitor.NewEmitter(monitor.EmitterConfig{}, sinks, logger)

	recorder := evidence.NewRecorder(
		evidence.NewSyntheticLedger(src),
		evidence.NewSyntheticStore(src),
		evidence.Settings{
			VoiceAssistant: cfg.Settings.VoiceAssistant,
			BlockchainLog:  cfg.Settings.BlockchainLog,
			IPFSUpload:     cfg.Settings.IPFSUpload,
		},
		logger,
	)

	counters := &stats.Counters{}
	feed := monitor.NewFeed()

	svc := monitor.New(
		monitor.Config{
			Interval:         time.Duration(cfg.Monitor.IntervalSeconds) * time.Second,
			EventProbability: cfg.Monitor.EventProbability,
		},
		classifier,
		monitor.Options{
			Source:    src,
			Emitter:   emitter,
			Recorder:  recorder,
			Counters:  counters,
			Telemetry: tel,
			Feed:      feed,
			Logger:    logger,
		},
	)
	svc.Start(nil, nil, cfg.Monitor.AutoBlock)

	httpSrv := statusServer(cfg.Server.Addr, counters, svc, feed)
	go func() {
		logger.Info("status endpoint listening", zap.String("addr", cfg.Server.Addr))
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("status endpoint failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	svc.Stop()
	emitter.Close(ctx)

	shutdownCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	_ = httpSrv.Shutdown(shutdownCtx)
}

func buildLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	return zcfg.Build()
}

func buildSinks(cfg config.AlertsConfig) ([]monitor.Sink, error) {
	var sinks []monitor.Sink
	for i, sc := range cfg.Sinks {
		switch sc.Type {
		case "file_jsonl":
			s, err := monitor.NewFileSink(sc.Path)
			if err != nil {
				return nil, fmt.Errorf("sink %d: %w", i, err)
			}
			sinks = append(sinks, s)
		case "webhook":
			s, err := monitor.NewWebhookSink(sc.URL, sc.Headers, time.Duration(sc.TimeoutSeconds)*time.Second)
			if err != nil {
				return nil, fmt.Errorf("sink %d: %w", i, err)
			}
			sinks = append(sinks, s)
		}
	}
	return sinks, nil
}

func statusServer(addr string, counters *stats.Counters, svc *monitor.Service, feed *monitor.Feed) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "ok")
	})
	mux.HandleFunc("/stats", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"active":   svc.IsActive(),
			"counters": counters.Snapshot(),
			"monitor":  svc.MetricsSnapshot(),
		})
	})
	mux.HandleFunc("/alerts", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(feed.RecentAlerts())
	})
	return &http.Server{Addr: addr, Handler: mux}
}
