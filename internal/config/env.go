package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultAPIEndpoint    = "http://localhost:8080"
	defaultRequestTimeout = 30 * time.Second
	defaultLoginAttempts  = 5
)

// loads the client configuration from environment variables
func LoadEnvironmentVariables() (*Config, error) {
	loadDotEnv()

	apiEndpoint := strings.TrimRight(os.Getenv("PORTAL_API_ENDPOINT"), "/")
	if apiEndpoint == "" {
		apiEndpoint = defaultAPIEndpoint
	}

	wsEndpoint := os.Getenv("PORTAL_WS_ENDPOINT")
	if wsEndpoint == "" {
		wsEndpoint = websocketEndpoint(apiEndpoint)
	}

	timeout := defaultRequestTimeout
	if raw := os.Getenv("PORTAL_REQUEST_TIMEOUT"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("PORTAL_REQUEST_TIMEOUT is not a duration: %w", err)
		}
		if parsed <= 0 {
			return nil, fmt.Errorf("PORTAL_REQUEST_TIMEOUT must be positive")
		}
		timeout = parsed
	}

	logFile := os.Getenv("PORTAL_LOG_FILE")
	if logFile == "" {
		logFile = "portal.log"
	}

	return &Config{
		APIEndpoint:    apiEndpoint,
		WSEndpoint:     wsEndpoint,
		DictionaryPath: os.Getenv("PORTAL_DICTIONARY"),
		LogFile:        logFile,
		Environment:    environment(),
		RequestTimeout: timeout,
	}, nil
}

// loads the development server configuration from environment variables
func LoadServerEnvironmentVariables() (*ServerConfig, error) {
	loadDotEnv()

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	attempts := defaultLoginAttempts
	if raw := os.Getenv("LOGIN_ATTEMPTS_PER_MINUTE"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return nil, fmt.Errorf("LOGIN_ATTEMPTS_PER_MINUTE must be a positive integer")
		}
		attempts = parsed
	}

	return &ServerConfig{
		Port:          port,
		JWTSecret:     jwtSecret,
		Environment:   environment(),
		LoginAttempts: attempts,
	}, nil
}

func loadDotEnv() {
	if err := godotenv.Load(); err != nil {
		_ = err // not an error - production environments may not have .env file
	}
}

func environment() string {
	env := os.Getenv("ENVIRONMENT")
	if env == "" {
		return "development"
	}
	return env
}

// derives the user stream endpoint from the REST endpoint
func websocketEndpoint(apiEndpoint string) string {
	endpoint := apiEndpoint

	switch {
	case strings.HasPrefix(endpoint, "https://"):
		endpoint = "wss://" + strings.TrimPrefix(endpoint, "https://")
	case strings.HasPrefix(endpoint, "http://"):
		endpoint = "ws://" + strings.TrimPrefix(endpoint, "http://")
	}

	return endpoint + "/api/v1/ws"
}
