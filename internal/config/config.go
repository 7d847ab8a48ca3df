package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPHost          string
	HTTPPort          string
	ReadHeaderTimeout time.Duration
	LivenessEndpoint  string
	LogLevel          string
	LogJSON           bool
	ExportDir         string
	SeedFile          string
	AllowedOrigins    []string
}

// Load reads envFile when it exists, then the environment. Variables already
// set in the environment win over the file.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err) //nolint:exhaustruct
		}
	}

	timeout, err := time.ParseDuration(getEnv("HTTP_READ_HEADER_TIMEOUT", "20s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse HTTP_READ_HEADER_TIMEOUT: %w", err) //nolint:exhaustruct
	}

	logJSON, err := strconv.ParseBool(getEnv("LOG_JSON", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse LOG_JSON: %w", err) //nolint:exhaustruct
	}

	return Config{
		HTTPHost:          getEnv("HTTP_HOST", "localhost"),
		HTTPPort:          getEnv("HTTP_PORT", "8092"),
		ReadHeaderTimeout: timeout,
		LivenessEndpoint:  getEnv("LIVENESS_ENDPOINT", "/liveness"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogJSON:           logJSON,
		ExportDir:         getEnv("EXPORT_DIR", "exports"),
		SeedFile:          os.Getenv("SEED_FILE"),
		AllowedOrigins:    splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
	}, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
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
