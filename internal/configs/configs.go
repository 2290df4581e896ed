/*
Package configs is responsible for loading and parsing the application's configuration settings.

All configuration is read from operating system environment variables:
the running environment, port, CORS allowed origins, the default room for
sessions that join without one, and the WebSocket payload size limit.
*/
package configs

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// DefaultMaxPayloadBytes bounds a single inbound WebSocket frame. Private
// messages may carry inline image data URIs, so the limit is sized well
// above plain text.
const DefaultMaxPayloadBytes = 10 << 20 // 10 MB

// AppConfig contains all configuration parameters required for the application to run.
// All configuration values are loaded from environment variables.
type AppConfig struct {
	// General Server Settings
	Environment string
	Port        int

	// Security Settings
	AllowedOrigins []string

	// Hub Settings
	DefaultRoom     string
	MaxPayloadBytes int64
}

// LoadConfig reads and parses the application configuration from environment
// variables, applying defaults and validating values where needed.
func LoadConfig() (*AppConfig, error) {
	cfg := &AppConfig{}

	// --- General Server Settings ---
	// Environment
	cfg.Environment = os.Getenv("ENVIRONMENT")
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}

	// Port
	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT environment variable: %w", err)
	}
	cfg.Port = port

	if cfg.Port < 1024 || cfg.Port > 65535 {
		return nil, fmt.Errorf("port number %d is outside the recommended range (%d-%d) to avoid privileged ports", cfg.Port, 1024, 65535)
	}

	// --- Security Settings ---
	// AllowedOrigins
	originsStr := os.Getenv("ALLOWED_ORIGINS")
	if originsStr != "" {
		origins := strings.Split(originsStr, ",")
		for _, origin := range origins {
			trimmed := strings.TrimSpace(origin)
			if trimmed != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, trimmed)
			}
		}
	} else {
		cfg.AllowedOrigins = []string{}
	}

	// --- Hub Settings ---
	// DefaultRoom
	cfg.DefaultRoom = os.Getenv("DEFAULT_ROOM")
	if cfg.DefaultRoom == "" {
		cfg.DefaultRoom = "chat1"
	}

	// MaxPayloadBytes
	maxPayloadStr := os.Getenv("MAX_PAYLOAD_BYTES")
	if maxPayloadStr == "" {
		cfg.MaxPayloadBytes = DefaultMaxPayloadBytes
	} else {
		maxPayload, err := strconv.ParseInt(maxPayloadStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid MAX_PAYLOAD_BYTES environment variable: %w", err)
		}
		if maxPayload <= 0 {
			return nil, fmt.Errorf("MAX_PAYLOAD_BYTES must be positive, got %d", maxPayload)
		}
		cfg.MaxPayloadBytes = maxPayload
	}

	return cfg, nil
}
