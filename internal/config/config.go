// Package config loads server settings from the environment and an optional .env file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"ragbot/internal/db"
	"ragbot/internal/services"
)

// Config holds the settings of the whole server
type Config struct {
	Server     ServerConfig
	Redis      db.RedisConfig
	Chroma     ChromaConfig
	LLM        services.ProviderSettings
	Embeddings services.ProviderSettings
	Analytics  AnalyticsConfig
}

// ServerConfig controls the HTTP listener
type ServerConfig struct {
	Host            string
	Port            int
	ShutdownTimeout time.Duration
}

// Addr returns the listen address
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ChromaConfig selects the vector store and the shared collection
type ChromaConfig struct {
	db.ChromaDBConfig
	Collection string
}

// AnalyticsConfig controls the interaction log and its retention
type AnalyticsConfig struct {
	MaxInteractions   int
	RetentionDays     int
	RetentionInterval time.Duration
}

// Load reads envFilePath when it exists, then the environment
func Load(envFilePath string) (*Config, error) {
	if envFilePath != "" {
		if err := godotenv.Load(envFilePath); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	redisDefaults := db.DefaultRedisConfig()
	redisConfig := redisDefaults
	redisConfig.Host = getEnv("REDIS_HOST", redisDefaults.Host)
	redisConfig.Port = getEnvAsInt("REDIS_PORT", redisDefaults.Port)
	redisConfig.Password = getEnv("REDIS_PASSWORD", "")
	redisConfig.DB = getEnvAsInt("REDIS_DB", 0)
	redisConfig.PoolSize = getEnvAsInt("REDIS_POOL_SIZE", redisDefaults.PoolSize)

	llmProvider := getEnv("LLM_PROVIDER", services.ProviderOllama)
	llm := services.ProviderSettings{
		Provider: llmProvider,
		BaseURL:  getEnv("OLLAMA_BASE_URL", services.DefaultOllamaBaseURL),
		Model:    getEnv("OLLAMA_MODEL", services.DefaultOllamaModel),
	}
	if llmProvider == services.ProviderOpenAI {
		llm.BaseURL = getEnv("OPENAI_BASE_URL", "")
		llm.Model = getEnv("OPENAI_MODEL", services.DefaultOpenAIModel)
		llm.APIKey = getEnv("OPENAI_API_KEY", "")
	}

	embeddingProvider := getEnv("EMBEDDING_PROVIDER", services.ProviderSidecar)
	embeddings := services.ProviderSettings{
		Provider: embeddingProvider,
		BaseURL:  getEnv("EMBEDDING_URL", "http://localhost:8001"),
		Model:    getEnv("EMBEDDING_MODEL", ""),
	}
	if embeddingProvider == services.ProviderOpenAI {
		embeddings.BaseURL = getEnv("OPENAI_BASE_URL", "")
		embeddings.Model = getEnv("EMBEDDING_MODEL", services.DefaultOpenAIEmbeddingModel)
		embeddings.APIKey = getEnv("OPENAI_API_KEY", "")
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:            getEnv("APP_HOST", "0.0.0.0"),
			Port:            getEnvAsInt("APP_PORT", 8080),
			ShutdownTimeout: getEnvAsDuration("APP_SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Redis: redisConfig,
		Chroma: ChromaConfig{
			ChromaDBConfig: db.ChromaDBConfig{
				Host:     getEnv("CHROMA_HOST", "localhost"),
				Port:     getEnvAsInt("CHROMA_PORT", 8000),
				Tenant:   getEnv("CHROMA_TENANT", "default_tenant"),
				Database: getEnv("CHROMA_DATABASE", "default_database"),
				Timeout:  getEnvAsDuration("CHROMA_TIMEOUT", 30*time.Second),
			},
			Collection: getEnv("CHROMA_COLLECTION", "chatbot_documents"),
		},
		LLM:        llm,
		Embeddings: embeddings,
		Analytics: AnalyticsConfig{
			MaxInteractions:   getEnvAsInt("ANALYTICS_MAX_INTERACTIONS", 10000),
			RetentionDays:     getEnvAsInt("ANALYTICS_RETENTION_DAYS", 90),
			RetentionInterval: getEnvAsDuration("ANALYTICS_RETENTION_INTERVAL", 24*time.Hour),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the server cannot start with
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid APP_PORT: %d", c.Server.Port)
	}
	if c.Chroma.Collection == "" {
		return fmt.Errorf("CHROMA_COLLECTION must not be empty")
	}
	if c.LLM.Provider == services.ProviderOpenAI && c.LLM.APIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is required when LLM_PROVIDER=openai")
	}
	if c.Analytics.RetentionDays < 1 {
		return fmt.Errorf("ANALYTICS_RETENTION_DAYS must be positive")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
