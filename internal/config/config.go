package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// urlOverridePrefix names env vars that replace a region's upstream URL,
// e.g. ELECWARN_URL_TOKYO=http://localhost:8081/tokyo.csv.
const urlOverridePrefix = "ELECWARN_URL_"

// Config holds all crawler settings, populated from environment variables.
type Config struct {
	Regions      []string          // region ids to crawl; empty = all
	URLOverrides map[string]string // region id -> replacement URL

	FetchTimeout    time.Duration
	PollInterval    time.Duration // daemon mode only
	HTTPAddr        string        // daemon mode only
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Kafka sink, enabled when brokers are set.
	KafkaBrokers []string
	KafkaTopic   string
	KafkaEnabled bool
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	fetchTimeout, err := durationEnv("FETCH_TIMEOUT", 20*time.Second)
	if err != nil {
		return nil, err
	}
	pollInterval, err := durationEnv("POLL_INTERVAL", 10*time.Minute)
	if err != nil {
		return nil, err
	}
	shutdownTimeout, err := durationEnv("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}

	brokers := splitList(os.Getenv("KAFKA_BROKERS"))

	cfg := &Config{
		Regions:      splitList(os.Getenv("ELECWARN_REGIONS")),
		URLOverrides: urlOverrides(os.Environ()),

		FetchTimeout:    fetchTimeout,
		PollInterval:    pollInterval,
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		KafkaBrokers: brokers,
		KafkaTopic:   envOrDefault("KAFKA_TOPIC", "electricity-warnings"),
		KafkaEnabled: len(brokers) > 0,
	}

	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		return nil, fmt.Errorf("invalid LOG_FORMAT %q", cfg.LogFormat)
	}
	if cfg.KafkaEnabled && cfg.KafkaTopic == "" {
		return nil, errors.New("KAFKA_BROKERS is set but KAFKA_TOPIC is empty")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s %q", key, s)
	}
	return d, nil
}

// splitList parses a comma-separated list, dropping empty elements.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// urlOverrides collects ELECWARN_URL_<ID> vars from the environment.
// The id portion is lowercased to match region ids.
func urlOverrides(environ []string) map[string]string {
	overrides := make(map[string]string)
	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || value == "" || !strings.HasPrefix(key, urlOverridePrefix) {
			continue
		}
		id := strings.ToLower(strings.TrimPrefix(key, urlOverridePrefix))
		if id != "" {
			overrides[id] = value
		}
	}
	return overrides
}
