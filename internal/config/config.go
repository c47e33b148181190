package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	// NATS configuration
	NatsURL              string
	NatsAskSubject       string
	NatsHistorySubject   string
	NatsAnalyticsSubject string
	NatsTimeout          time.Duration

	// Redis session store configuration
	RedisURL   string
	SessionTTL time.Duration

	// Postgres (gallery catalog + interaction log)
	PostgresDSN string

	// HuggingFace inference configuration
	HFBaseURL        string
	HFAPIKey         string
	HFSentimentModel string
	HFNERModel       string
	HFEmbeddingModel string
	HFTimeout        time.Duration
	HFMaxRetries     int

	// Logging
	LogLevel  string
	LogFormat string

	// Metrics
	MetricsAddr string

	// Service configuration
	ServiceName string
}

func Load() *Config {
	return &Config{
		// NATS settings
		NatsURL:              getEnv("NATS_URL", "nats://localhost:4222"),
		NatsAskSubject:       getEnv("NATS_ASK_SUBJECT", "assistant.ask"),
		NatsHistorySubject:   getEnv("NATS_HISTORY_SUBJECT", "assistant.history"),
		NatsAnalyticsSubject: getEnv("NATS_ANALYTICS_SUBJECT", "assistant.analytics"),
		NatsTimeout:          getDurationEnv("NATS_TIMEOUT", 30*time.Second),

		// Redis settings
		RedisURL:   getEnv("REDIS_URL", "redis://localhost:6379/0"),
		SessionTTL: getDurationEnv("SESSION_TTL", 30*time.Minute),

		// Postgres settings
		PostgresDSN: getEnv("POSTGRES_DSN", "postgres://localhost:5432/gallery?sslmode=disable"),

		// HuggingFace settings
		HFBaseURL:        getEnv("HF_BASE_URL", "https://api-inference.huggingface.co"),
		HFAPIKey:         getEnv("HF_API_KEY", ""),
		HFSentimentModel: getEnv("HF_SENTIMENT_MODEL", "nlptown/bert-base-multilingual-uncased-sentiment"),
		HFNERModel:       getEnv("HF_NER_MODEL", "cahya/bert-base-indonesian-NER"),
		HFEmbeddingModel: getEnv("HF_EMBEDDING_MODEL", "sentence-transformers/paraphrase-multilingual-MiniLM-L12-v2"),
		HFTimeout:        getDurationEnv("HF_TIMEOUT", 30*time.Second),
		HFMaxRetries:     getIntEnv("HF_MAX_RETRIES", 2),

		// Logging settings
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),

		// Metrics settings
		MetricsAddr: getEnv("METRICS_ADDR", ":9102"),

		// Service settings
		ServiceName: getEnv("SERVICE_NAME", "gallery-assistant"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
