package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Auth     AuthConfig
	LLM      LLMConfig
	History  HistoryConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type DatabaseConfig struct {
	URL      string
	MaxConns int
	MinConns int
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type AuthConfig struct {
	// ServiceToken guards the API when set; empty disables auth entirely.
	ServiceToken string
	TokenHeader  string
}

type LLMConfig struct {
	// APIKey is the ambient credential; its presence is what the startup
	// capability probe reports. A user-supplied credential stored through the
	// credential endpoint overrides it per call.
	APIKey  string
	BaseURL string
	// TimeoutSeconds bounds a single upstream call.
	TimeoutSeconds int
	// MiniApp marks an embedded deployment, where dispatch is always
	// attempted and credential errors are deferred to response
	// classification.
	MiniApp bool
}

type HistoryConfig struct {
	// MaxEntries caps the ledger; a background trim task prunes past it.
	// Zero disables trimming.
	MaxEntries int
}

func Load() (*Config, error) {
	port, err := getEnvInt("SERVER_PORT", 8080)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}

	maxConns, err := getEnvInt("DB_MAX_CONNS", 10)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}

	minConns, err := getEnvInt("DB_MIN_CONNS", 2)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MIN_CONNS: %w", err)
	}

	redisDB, err := getEnvInt("REDIS_DB", 0)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	timeout, err := getEnvInt("TRANSFORM_TIMEOUT", 90)
	if err != nil {
		return nil, fmt.Errorf("invalid TRANSFORM_TIMEOUT: %w", err)
	}

	maxEntries, err := getEnvInt("HISTORY_MAX_ENTRIES", 500)
	if err != nil {
		return nil, fmt.Errorf("invalid HISTORY_MAX_ENTRIES: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: port,
		},
		Database: DatabaseConfig{
			URL:      getEnv("DATABASE_URL", ""),
			MaxConns: maxConns,
			MinConns: minConns,
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Auth: AuthConfig{
			ServiceToken: getEnv("SERVICE_TOKEN", ""),
			TokenHeader:  getEnv("SERVICE_TOKEN_HEADER", "X-Service-Token"),
		},
		LLM: LLMConfig{
			APIKey:         getEnv("GEMINI_API_KEY", ""),
			BaseURL:        getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta/openai/"),
			TimeoutSeconds: timeout,
			MiniApp:        getEnvBool("MINIAPP_MODE", false),
		},
		History: HistoryConfig{
			MaxEntries: maxEntries,
		},
	}

	return cfg, nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	return strconv.Atoi(v)
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
