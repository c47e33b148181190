package main

import (
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/galeriku/gallery-assistant/internal/analyzer"
	"github.com/galeriku/gallery-assistant/internal/assistant"
	"github.com/galeriku/gallery-assistant/internal/catalog"
	"github.com/galeriku/gallery-assistant/internal/chatlog"
	"github.com/galeriku/gallery-assistant/internal/config"
	"github.com/galeriku/gallery-assistant/internal/dynamic"
	"github.com/galeriku/gallery-assistant/internal/gallery"
	"github.com/galeriku/gallery-assistant/internal/inference"
	"github.com/galeriku/gallery-assistant/internal/logger"
	"github.com/galeriku/gallery-assistant/internal/metrics"
	"github.com/galeriku/gallery-assistant/internal/session"
	"github.com/galeriku/gallery-assistant/internal/transport"
)

func main() {
	// Load .env file if it exists (for development)
	_ = godotenv.Load()

	cfg := config.Load()

	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	defer log.Sync()
	appLog := logger.NewZapAdapter(log)

	appLog.Info("starting gallery assistant", map[string]interface{}{
		"service":  cfg.ServiceName,
		"nats_url": cfg.NatsURL,
	})

	redisStore, err := session.NewRedisStore(cfg.RedisURL, cfg.SessionTTL)
	if err != nil {
		appLog.WithError(err).Error("failed to connect to Redis", nil)
		os.Exit(1)
	}
	sessions := session.NewManager(redisStore, appLog)
	defer sessions.Close()

	db, err := sql.Open("postgres", cfg.PostgresDSN)
	if err != nil {
		appLog.WithError(err).Error("failed to open Postgres connection", nil)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		appLog.WithError(err).Error("failed to ping Postgres", nil)
		os.Exit(1)
	}

	galleryStore := gallery.NewPostgresStore(db)
	logStore := chatlog.NewPostgresStore(db)

	hf := inference.NewHuggingFaceClient(inference.HuggingFaceConfig{
		BaseURL:        cfg.HFBaseURL,
		APIKey:         cfg.HFAPIKey,
		SentimentModel: cfg.HFSentimentModel,
		NERModel:       cfg.HFNERModel,
		EmbeddingModel: cfg.HFEmbeddingModel,
		Timeout:        cfg.HFTimeout,
		MaxRetries:     cfg.HFMaxRetries,
	}, appLog)

	service := assistant.NewService(
		analyzer.New(hf, hf, appLog),
		catalog.New(),
		dynamic.NewResolver(galleryStore, appLog),
		sessions,
		logStore,
		hf,
		appLog,
	)

	natsTransport, err := transport.NewNATSTransport(cfg, service, appLog)
	if err != nil {
		appLog.WithError(err).Error("failed to initialize NATS transport", nil)
		os.Exit(1)
	}
	defer natsTransport.Close()

	if err := natsTransport.Start(); err != nil {
		appLog.WithError(err).Error("failed to start NATS transport", nil)
		os.Exit(1)
	}

	metricsServer := &http.Server{
		Addr:    cfg.MetricsAddr,
		Handler: metrics.Handler(),
	}
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLog.WithError(err).Error("metrics server failed", nil)
		}
	}()

	appLog.Info("gallery assistant is running", map[string]interface{}{
		"ask_subject":       cfg.NatsAskSubject,
		"history_subject":   cfg.NatsHistorySubject,
		"analytics_subject": cfg.NatsAnalyticsSubject,
		"metrics_addr":      cfg.MetricsAddr,
	})

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan

	appLog.Info("shutting down", map[string]interface{}{
		"signal":          sig.String(),
		"active_sessions": sessions.ActiveSessions(),
	})

	_ = metricsServer.Close()
}
