package utils

import (
	"log"
	"os"
	"strings"
	"time"
)

// GetEnvWithDefault returns environment variable or default value
func GetEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetDurationWithDefault parses a Go duration ("30s", "5m"); bad values fall back to the default.
func GetDurationWithDefault(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("Invalid duration %s=%q, using %s", key, raw, defaultValue)
		return defaultValue
	}
	return d
}

// GetListWithDefault splits a comma separated variable, dropping empty items.
func GetListWithDefault(key string, defaultValue []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
