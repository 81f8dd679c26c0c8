package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/joho/godotenv"
)

// DefaultDatasetURL is the published monthly land-surface temperature series.
const DefaultDatasetURL = "https://raw.githubusercontent.com/FreeCodeCamp/ProjectReferenceData/master/global-temperature.json"

// Config holds all service settings, populated from environment variables.
// Chart geometry is not configurable; see chart.DefaultLayout.
type Config struct {
	DatasetURL   string
	DatasetFile  string
	FetchTimeout time.Duration

	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	RenderCacheSize int

	// Redis payload cache; disabled when RedisURL is empty.
	RedisURL        string
	DatasetCacheTTL time.Duration

	// Interaction event publishing.
	EventsEnabled    bool
	KafkaBrokers     []string
	KafkaEventsTopic string
}

// Load reads configuration from environment variables, applying defaults where
// unset. A .env file in the working directory is loaded first if present;
// variables already set in the environment take precedence.
func Load() (*Config, error) {
	_ = godotenv.Load()

	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	fetchTimeout, err := parseDuration("FETCH_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	cacheTTL, err := parseDuration("DATASET_CACHE_TTL", "24h")
	if err != nil {
		return nil, err
	}

	renderCacheSize, err := parseRenderCacheSize()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		DatasetURL:   sharedcfg.EnvOrDefault("DATASET_URL", DefaultDatasetURL),
		DatasetFile:  os.Getenv("DATASET_FILE"),
		FetchTimeout: fetchTimeout,

		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		RenderCacheSize: renderCacheSize,

		RedisURL:        os.Getenv("REDIS_URL"),
		DatasetCacheTTL: cacheTTL,

		EventsEnabled:    os.Getenv("EVENTS_ENABLED") == "true",
		KafkaBrokers:     sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaEventsTopic: sharedcfg.EnvOrDefault("KAFKA_EVENTS_TOPIC", "chart-interactions"),
	}

	if cfg.DatasetURL == "" && cfg.DatasetFile == "" {
		return nil, errors.New("DATASET_URL or DATASET_FILE is required")
	}
	if cfg.EventsEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("EVENTS_ENABLED is true but KAFKA_BROKERS is empty")
	}
	if cfg.EventsEnabled && cfg.KafkaEventsTopic == "" {
		return nil, errors.New("EVENTS_ENABLED is true but KAFKA_EVENTS_TOPIC is empty")
	}

	return cfg, nil
}

func parseDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(sharedcfg.EnvOrDefault(key, def))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parseRenderCacheSize() (int, error) {
	s := os.Getenv("RENDER_CACHE_SIZE")
	if s == "" {
		return 64, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, errors.New("invalid RENDER_CACHE_SIZE")
	}
	return n, nil
}
