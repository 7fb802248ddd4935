package config

import "time"

// settings of the terminal client
type Config struct {
	APIEndpoint    string
	WSEndpoint     string
	DictionaryPath string
	LogFile        string
	Environment    string
	RequestTimeout time.Duration
}

// settings of the development API server
type ServerConfig struct {
	Port          string
	JWTSecret     string
	Environment   string
	LoginAttempts int // login attempts allowed per minute
}
