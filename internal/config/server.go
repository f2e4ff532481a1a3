package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvRelease     = "release"
)

// ServerConfig holds settings for the HTTP server, read from the environment
type ServerConfig struct {
	Port           int
	Env            string
	FactsFile      string
	Watch          bool
	AllowedOrigins []string
}

// IsDevelopment reports whether verbose development logging should be used
func (c ServerConfig) IsDevelopment() bool {
	return c.Env != EnvRelease
}

// Addr is the listen address for the configured port
func (c ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// LoadServerConfig reads an optional .env file, then the process environment.
// A missing env file is not an error.
func LoadServerConfig(envFile string) (ServerConfig, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return ServerConfig{}, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	cfg := ServerConfig{
		Port:      8080,
		Env:       EnvDevelopment,
		FactsFile: os.Getenv("TAXVIEW_FACTS"),
	}

	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil || p <= 0 || p > 65535 {
			return ServerConfig{}, fmt.Errorf("invalid PORT %q", port)
		}
		cfg.Port = p
	}

	if env := os.Getenv("TAXVIEW_ENV"); env != "" {
		if env != EnvDevelopment && env != EnvRelease {
			return ServerConfig{}, fmt.Errorf("TAXVIEW_ENV must be '%s' or '%s'", EnvDevelopment, EnvRelease)
		}
		cfg.Env = env
	}

	if watch := os.Getenv("TAXVIEW_WATCH"); watch != "" {
		w, err := strconv.ParseBool(watch)
		if err != nil {
			return ServerConfig{}, fmt.Errorf("invalid TAXVIEW_WATCH %q: %w", watch, err)
		}
		cfg.Watch = w
	}

	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		for _, origin := range strings.Split(origins, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
			}
		}
	}

	return cfg, nil
}
