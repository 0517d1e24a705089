// ABOUTME: Centralized configuration for the docstack pipeline
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for ingestion and query.
type Config struct {
	// OpenAI settings
	OpenAIKey        string
	ChatModel        string
	EmbeddingModel   string
	EmbeddingBaseURL string
	Temperature      float64
	MaxTokens        int
	Timeout          time.Duration
	MaxRetries       int
	RetryDelay       time.Duration

	// Chunking settings
	ChunkSize    int
	ChunkOverlap int

	// Retrieval settings
	TopK            int
	MaxContextChars int

	// Storage settings
	StorePath string
	PDFDir    string
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		OpenAIKey:        os.Getenv("OPENAI_API_KEY"),
		ChatModel:        getEnv("LLM_MODEL", "gpt-4o-mini"),
		EmbeddingModel:   getEnv("EMBEDDING_MODEL", "text-embedding-3-small"),
		EmbeddingBaseURL: os.Getenv("EMBEDDING_BASE_URL"),
		Temperature:      getEnvFloat("TEMPERATURE", 0.3),
		MaxTokens:        getEnvInt("MAX_TOKENS", 500),
		Timeout:          getEnvDuration("OPENAI_TIMEOUT", 60*time.Second),
		MaxRetries:       getEnvInt("OPENAI_MAX_RETRIES", 1),
		RetryDelay:       getEnvDuration("OPENAI_RETRY_DELAY", 2*time.Second),
		ChunkSize:        getEnvInt("CHUNK_SIZE", 1000),
		ChunkOverlap:     getEnvInt("CHUNK_OVERLAP", 200),
		TopK:             getEnvInt("RETRIEVAL_TOP_K", 4),
		MaxContextChars:  getEnvInt("MAX_CONTEXT_CHARS", 8000),
		StorePath:        getEnv("VECTOR_STORE_PATH", "./data/vector_store"),
		PDFDir:           getEnv("PDF_STORAGE_DIR", "./data/pdfs"),
	}

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c.ChunkSize <= 0 {
		return fmt.Errorf("CHUNK_SIZE must be positive, got %d", c.ChunkSize)
	}
	if c.ChunkOverlap < 0 || c.ChunkOverlap >= c.ChunkSize {
		return fmt.Errorf("CHUNK_OVERLAP must be in [0, CHUNK_SIZE), got %d", c.ChunkOverlap)
	}
	if c.TopK <= 0 {
		return fmt.Errorf("RETRIEVAL_TOP_K must be positive, got %d", c.TopK)
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("TEMPERATURE must be 0-2, got %f", c.Temperature)
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("MAX_TOKENS must be positive, got %d", c.MaxTokens)
	}
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("OPENAI_MAX_RETRIES must be 0-10, got %d", c.MaxRetries)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
