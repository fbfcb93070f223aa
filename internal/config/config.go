package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultBaseURL is the OpenWeatherMap current-weather-by-city endpoint.
const DefaultBaseURL = "https://api.openweathermap.org/data/2.5/weather"

// placeholderAPIKey is the sample value shipped with starter projects. It is
// treated as unset so it never goes over the wire.
const placeholderAPIKey = "YOUR_API_KEY"

// Config holds all service settings, populated from environment variables.
type Config struct {
	OpenWeatherAPIKey  string
	OpenWeatherBaseURL string
	HTTPTimeout        time.Duration

	DatabaseURL     string
	Port            string
	Env             string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
	HistoryLimit    int

	KafkaBrokers []string
	KafkaTopic   string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	httpTimeout, err := parsePositiveDuration("HTTP_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	shutdownTimeout, err := parsePositiveDuration("SHUTDOWN_TIMEOUT", "5s")
	if err != nil {
		return nil, err
	}

	historyLimit, err := parseHistoryLimit()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		OpenWeatherAPIKey:  strings.TrimSpace(os.Getenv("OPENWEATHER_API_KEY")),
		OpenWeatherBaseURL: envOrDefault("OPENWEATHER_BASE_URL", DefaultBaseURL),
		HTTPTimeout:        httpTimeout,
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		Port:               envOrDefault("PORT", "8080"),
		Env:                envOrDefault("GO_ENV", "development"),
		LogLevel:           envOrDefault("LOG_LEVEL", "info"),
		LogFormat:          envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout:    shutdownTimeout,
		HistoryLimit:       historyLimit,
		KafkaBrokers:       parseBrokers(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:         envOrDefault("KAFKA_TOPIC", "weather-lookups"),
	}

	if !strings.HasPrefix(cfg.OpenWeatherBaseURL, "http://") && !strings.HasPrefix(cfg.OpenWeatherBaseURL, "https://") {
		return nil, errors.New("invalid OPENWEATHER_BASE_URL: must be an http(s) URL")
	}
	if len(cfg.KafkaBrokers) > 0 && cfg.KafkaTopic == "" {
		return nil, errors.New("KAFKA_TOPIC is required when KAFKA_BROKERS is set")
	}

	return cfg, nil
}

// Configured reports whether a real API key is present.
func (c *Config) Configured() bool {
	return c.OpenWeatherAPIKey != "" && c.OpenWeatherAPIKey != placeholderAPIKey
}

// APIKey returns the OpenWeatherMap API key.
func (c *Config) APIKey() string {
	return c.OpenWeatherAPIKey
}

// Addr is the HTTP listen address.
func (c *Config) Addr() string {
	return ":" + c.Port
}

// KafkaEnabled reports whether lookups are published to Kafka.
func (c *Config) KafkaEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parsePositiveDuration(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, fallback))
	if err != nil || d <= 0 {
		return 0, errors.New("invalid " + key + ": must be a positive duration")
	}
	return d, nil
}

func parseHistoryLimit() (int, error) {
	s := os.Getenv("HISTORY_LIMIT")
	if s == "" {
		return 20, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > 100 {
		return 0, errors.New("invalid HISTORY_LIMIT: must be 1-100")
	}
	return n, nil
}

func parseBrokers(value string) []string {
	parts := strings.Split(value, ",")
	brokers := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			brokers = append(brokers, trimmed)
		}
	}
	return brokers
}
