package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	DatabasePath string

	// Kafka event publishing configuration.
	KafkaEnabled     bool
	KafkaBrokers     []string
	KafkaEventsTopic string

	// Weather provider configuration.
	WeatherEnabled  bool
	WeatherAPIKey   string
	WeatherBaseURL  string
	WeatherTimeout  time.Duration
	MaxRetries      int
	RetryDelay      time.Duration
	RetryMultiplier float64
	BreakerTimeout  time.Duration

	// RefreshSchedule is a cron expression for the forecast refresh job.
	RefreshSchedule string
}

// Load reads configuration from the environment (and a .env file when
// present), applying defaults where unset.
func Load() (*Config, error) {
	// A missing .env file is the normal production case.
	_ = godotenv.Load()

	shutdownTimeout, err := parsePositiveDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	weatherTimeout, err := parsePositiveDuration("WEATHER_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	retryDelay, err := parsePositiveDuration("RETRY_DELAY", "1s")
	if err != nil {
		return nil, err
	}
	breakerTimeout, err := parsePositiveDuration("BREAKER_TIMEOUT", "30s")
	if err != nil {
		return nil, err
	}

	maxRetries, err := parseBoundedInt("MAX_RETRIES", 3, 0, 10)
	if err != nil {
		return nil, err
	}

	retryMultiplier := 2.0
	if s := os.Getenv("RETRY_MULTIPLIER"); s != "" {
		v, parseErr := strconv.ParseFloat(s, 64)
		if parseErr != nil || v < 1 {
			return nil, errors.New("invalid RETRY_MULTIPLIER")
		}
		retryMultiplier = v
	}

	weatherAPIKey := os.Getenv("OPENWEATHER_API_KEY")
	weatherEnabled := weatherAPIKey != ""
	if v := os.Getenv("WEATHER_ENABLED"); v != "" {
		weatherEnabled = v == "true"
	}

	kafkaEnabled := true
	if v := os.Getenv("KAFKA_ENABLED"); v != "" {
		kafkaEnabled = v == "true"
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		DatabasePath: envOrDefault("DATABASE_PATH", "photoscout.db"),

		KafkaEnabled:     kafkaEnabled,
		KafkaBrokers:     splitList(envOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaEventsTopic: envOrDefault("KAFKA_EVENTS_TOPIC", "photoscout-domain-events"),

		WeatherEnabled:  weatherEnabled,
		WeatherAPIKey:   weatherAPIKey,
		WeatherBaseURL:  envOrDefault("OPENWEATHER_BASE_URL", "https://api.openweathermap.org/data/3.0"),
		WeatherTimeout:  weatherTimeout,
		MaxRetries:      maxRetries,
		RetryDelay:      retryDelay,
		RetryMultiplier: retryMultiplier,
		BreakerTimeout:  breakerTimeout,

		RefreshSchedule: envOrDefault("REFRESH_SCHEDULE", "@every 1h"),
	}

	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is empty")
	}
	if cfg.KafkaEnabled && cfg.KafkaEventsTopic == "" {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_EVENTS_TOPIC is empty")
	}
	if cfg.WeatherEnabled && cfg.WeatherAPIKey == "" {
		return nil, errors.New("WEATHER_ENABLED is true but OPENWEATHER_API_KEY is not set")
	}
	if cfg.RefreshSchedule == "" {
		return nil, errors.New("REFRESH_SCHEDULE is required")
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parsePositiveDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, def))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parseBoundedInt(key string, def, lo, hi int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < lo || n > hi {
		return 0, fmt.Errorf("invalid %s: must be an integer in [%d, %d]", key, lo, hi)
	}
	return n, nil
}
