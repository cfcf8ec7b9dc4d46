package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	LLM      LLMConfig
	Storage  StorageConfig
	Pipeline PipelineConfig
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	DSN              string
	MaxConns         int32
	MinConns         int32
	MaxConnLifetime  time.Duration
	MaxConnIdleTime  time.Duration
	DialTimeout      time.Duration
	StatementTimeout time.Duration
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	HTTPAddr        string
	ShutdownTimeout time.Duration
	MaxUploadBytes  int64
}

// LLMConfig holds OpenRouter-related configuration
type LLMConfig struct {
	APIKey   string
	BaseURL  string
	Model    string
	Timeout  time.Duration
	SiteURL  string
	SiteName string
}

// StorageConfig holds blob-storage configuration
type StorageConfig struct {
	ConnectionString string
	ContainerName    string
}

// PipelineConfig holds document-pipeline configuration
type PipelineConfig struct {
	BatchWorkers int
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			DSN:              getEnv("DB_URL", ""),
			MaxConns:         getEnvAsInt32("DB_MAX_CONNS", 20),
			MinConns:         getEnvAsInt32("DB_MIN_CONNS", 5),
			MaxConnLifetime:  getEnvAsDuration("DB_MAX_CONN_LIFETIME", 30*time.Minute),
			MaxConnIdleTime:  getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", 5*time.Minute),
			DialTimeout:      getEnvAsDuration("DB_DIAL_TIMEOUT", 3*time.Second),
			StatementTimeout: getEnvAsDuration("DB_STATEMENT_TIMEOUT", 0),
		},
		Server: ServerConfig{
			HTTPAddr:        getEnv("HTTP_ADDR", ":8080"),
			ShutdownTimeout: getEnvAsDuration("HTTP_SHUTDOWN_TIMEOUT", 10*time.Second),
			MaxUploadBytes:  int64(getEnvAsInt("HTTP_MAX_UPLOAD_MB", 32)) << 20,
		},
		LLM: LLMConfig{
			APIKey:   getEnv("OPEN_ROUTER_API_KEY", ""),
			BaseURL:  getEnv("OPEN_ROUTER_BASE_URL", "https://openrouter.ai/api/v1"),
			Model:    getEnv("OPEN_ROUTER_MODEL", "openai/gpt-4o"),
			Timeout:  getEnvAsDuration("OPEN_ROUTER_TIMEOUT", 120*time.Second),
			SiteURL:  getEnv("OPEN_ROUTER_SITE_URL", ""),
			SiteName: getEnv("OPEN_ROUTER_SITE_NAME", "MediCare"),
		},
		Storage: StorageConfig{
			ConnectionString: getEnv("AZURE_STORAGE_CONNECTION_STRING", ""),
			ContainerName:    getEnv("AZURE_STORAGE_CONTAINER", "medicare"),
		},
		Pipeline: PipelineConfig{
			BatchWorkers: getEnvAsInt("PIPELINE_BATCH_WORKERS", 3),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsInt32(key string, defaultValue int32) int32 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 32); err == nil {
			return int32(intVal)
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// ValidateConfig validates the loaded configuration
func (c *Config) Validate() error {
	if c.Database.DSN == "" {
		return NewAppError("CONFIG_ERROR", "DB_URL is required", ErrInvalidInput)
	}
	if c.LLM.APIKey == "" {
		return NewAppError("CONFIG_ERROR", "OPEN_ROUTER_API_KEY is required", ErrInvalidInput)
	}
	if c.Storage.ConnectionString == "" {
		return NewAppError("CONFIG_ERROR", "AZURE_STORAGE_CONNECTION_STRING is required", ErrInvalidInput)
	}
	if c.Server.HTTPAddr == "" {
		return NewAppError("CONFIG_ERROR", "HTTP_ADDR is required", ErrInvalidInput)
	}
	return nil
}
