package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	defaultPort        = 8080
	defaultStorageKey  = "posts"
	defaultLogLevel    = "info"
	defaultCORSOrigins = "http://localhost:5173"
	defaultGinMode     = "release"
)

// Config holds the server settings read from the environment.
type Config struct {
	Port           int
	StorageKey     string
	LogLevel       string
	LogPretty      bool
	AllowedOrigins []string
	GinMode        string
}

// Load reads a .env file when present, then builds the Config from the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	return FromEnv()
}

// FromEnv builds the Config from the process environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:           defaultPort,
		StorageKey:     getEnv("POSTS_STORAGE_KEY", defaultStorageKey),
		LogLevel:       getEnv("LOG_LEVEL", defaultLogLevel),
		AllowedOrigins: splitOrigins(getEnv("CORS_ALLOWED_ORIGINS", defaultCORSOrigins)),
		GinMode:        getEnv("GIN_MODE", defaultGinMode),
	}

	if raw := strings.TrimSpace(os.Getenv("PORT")); raw != "" {
		port, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT %q: %w", raw, err)
		}
		if port < 1 || port > 65535 {
			return nil, fmt.Errorf("invalid PORT %d: must be between 1 and 65535", port)
		}
		cfg.Port = port
	}

	for _, origin := range cfg.AllowedOrigins {
		if err := validateOrigin(origin); err != nil {
			return nil, fmt.Errorf("invalid CORS_ALLOWED_ORIGINS: %w", err)
		}
	}

	if raw := strings.TrimSpace(os.Getenv("LOG_PRETTY")); raw != "" {
		pretty, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid LOG_PRETTY %q: %w", raw, err)
		}
		cfg.LogPretty = pretty
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return strings.TrimSpace(v)
	}
	return fallback
}

// validateOrigin accepts "*" or an http(s) origin without wildcards.
func validateOrigin(origin string) error {
	if origin == "*" {
		return nil
	}
	if !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
		return fmt.Errorf("origin %q must be * or start with http:// or https://", origin)
	}
	if strings.Contains(origin, "*") {
		return fmt.Errorf("origin %q must not contain a wildcard", origin)
	}
	return nil
}

// splitOrigins turns a comma separated list into origins, dropping blanks.
func splitOrigins(raw string) []string {
	origins := []string{}
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
