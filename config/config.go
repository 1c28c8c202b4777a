package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Port    string
	BaseURL string // link prefix, no trailing slash

	Shortener struct {
		CodeLength            int
		MaxGenerateAttempts   int
		DedupByURL            bool
		CoerceNonPositiveUses bool
	}
}

// FromEnv builds the configuration from environment variables, falling back
// to defaults suitable for local development.
func FromEnv() *Config {
	cfg := &Config{
		Port:    getEnv("PORT", "8080"),
		BaseURL: strings.TrimRight(getEnv("BASE_URL", "http://localhost:8080"), "/"),
	}

	cfg.Shortener.CodeLength = getEnvInt("CODE_LENGTH", 8)
	cfg.Shortener.MaxGenerateAttempts = getEnvInt("MAX_CODE_ATTEMPTS", 32)
	cfg.Shortener.DedupByURL = getEnvBool("DEDUP_BY_URL", true)
	cfg.Shortener.CoerceNonPositiveUses = getEnvBool("COERCE_NONPOSITIVE_USES", false)

	return cfg
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}
