package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

var (
	errInvalidPort           = errors.New("config: invalid PORT number")
	errConcurrencyOutOfRange = errors.New("config: LOOKUP_CONCURRENCY must be 1-100")
	errInvalidResultCap      = errors.New("config: RESULT_CAP must be at least 1")
	errInvalidTimeout        = errors.New("config: timeouts must be positive")
	errInvalidRateLimit      = errors.New("config: HOST_RATE_LIMIT must not be negative")
	errEmptyHint             = errors.New("config: form and field hints must not be empty")
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	Port              string
	LogLevel          string
	LookupConcurrency int

	FormAction     string
	FormMethod     string
	QueryFieldType string
	QueryFieldName string
	Query          string
	ResultCap      int

	FetchTimeout         time.Duration
	SubmitTimeout        time.Duration
	FollowRedirects      bool
	HostRateLimit        float64 // requests per second per host, 0 disables
	AllowPrivateNetworks bool
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (Config, error) {
	cfg := Config{
		Port:              getEnv("PORT", "8080"),
		LogLevel:          getEnv("LOG_LEVEL", "ERROR"),
		LookupConcurrency: getEnvAsInt("LOOKUP_CONCURRENCY", 4),

		FormAction:     getEnv("FORM_ACTION", "/en/search"),
		FormMethod:     getEnv("FORM_METHOD", "get"),
		QueryFieldType: getEnv("QUERY_FIELD_TYPE", "text"),
		QueryFieldName: getEnv("QUERY_FIELD_NAME", "base_query"),
		Query:          getEnv("QUERY", "internships"),
		ResultCap:      getEnvAsInt("RESULT_CAP", 2),

		FetchTimeout:         getEnvAsDuration("FETCH_TIMEOUT", 10*time.Second),
		SubmitTimeout:        getEnvAsDuration("SUBMIT_TIMEOUT", 10*time.Second),
		FollowRedirects:      getEnvAsBool("FOLLOW_REDIRECTS", true),
		HostRateLimit:        getEnvAsFloat("HOST_RATE_LIMIT", 0),
		AllowPrivateNetworks: getEnvAsBool("ALLOW_PRIVATE_NETWORKS", false),
	}

	return cfg, cfg.Validate()
}

// Validate reports the first invalid setting. It is exported so the CLI can
// re-check the config after flags override it.
func (c Config) Validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("%w: %q", errInvalidPort, c.Port)
	}

	if c.LookupConcurrency < 1 || c.LookupConcurrency > 100 {
		return fmt.Errorf("%w: got %d", errConcurrencyOutOfRange, c.LookupConcurrency)
	}

	if c.ResultCap < 1 {
		return fmt.Errorf("%w: got %d", errInvalidResultCap, c.ResultCap)
	}

	if c.FetchTimeout <= 0 || c.SubmitTimeout <= 0 {
		return fmt.Errorf("%w: fetch %s, submit %s", errInvalidTimeout, c.FetchTimeout, c.SubmitTimeout)
	}

	if c.HostRateLimit < 0 {
		return fmt.Errorf("%w: got %g", errInvalidRateLimit, c.HostRateLimit)
	}

	// The action hint may legitimately be empty (<form action="">), the rest may not.
	if strings.TrimSpace(c.QueryFieldName) == "" || strings.TrimSpace(c.QueryFieldType) == "" {
		return errEmptyHint
	}

	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	s := os.Getenv(key)
	if s == "" {
		return fallback
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return v
}

func getEnvAsFloat(key string, fallback float64) float64 {
	s := os.Getenv(key)
	if s == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fallback
	}
	return v
}

func getEnvAsBool(key string, fallback bool) bool {
	s := os.Getenv(key)
	if s == "" {
		return fallback
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return fallback
	}
	return v
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	s := os.Getenv(key)
	if s == "" {
		return fallback
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return v
}
