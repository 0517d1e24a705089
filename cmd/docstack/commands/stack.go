// ABOUTME: Shared pipeline construction for CLI commands
// ABOUTME: Builds config, OpenAI client, index, ingestor, and engine once
package commands

import (
	"fmt"

	"github.com/joho/godotenv"

	"github.com/docstack/docstack/internal/chunker"
	"github.com/docstack/docstack/internal/config"
	"github.com/docstack/docstack/internal/core"
	"github.com/docstack/docstack/internal/index"
	"github.com/docstack/docstack/internal/llm"
)

// stack bundles the wired pipeline for one CLI invocation.
type stack struct {
	cfg      *config.Config
	client   *llm.Client
	index    *index.Index
	ingestor *core.Ingestor
	engine   *core.Engine
}

// openStack wires the full pipeline. Requires an API key since both
// ingestion and querying talk to the embedding service.
func openStack() (*stack, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	client, err := llm.NewClient(&llm.ClientConfig{
		APIKey:         cfg.OpenAIKey,
		BaseURL:        cfg.EmbeddingBaseURL,
		ChatModel:      cfg.ChatModel,
		EmbeddingModel: cfg.EmbeddingModel,
		Temperature:    cfg.Temperature,
		MaxTokens:      cfg.MaxTokens,
		Timeout:        cfg.Timeout,
		MaxRetries:     cfg.MaxRetries,
		RetryDelay:     cfg.RetryDelay,
	})
	if err != nil {
		return nil, fmt.Errorf("initializing OpenAI client: %w", err)
	}

	ix, err := index.Load(cfg.StorePath, client.ModelID())
	if err != nil {
		return nil, fmt.Errorf("loading index: %w", err)
	}

	return &stack{
		cfg:      cfg,
		client:   client,
		index:    ix,
		ingestor: core.NewIngestor(chunker.New(cfg.ChunkSize, cfg.ChunkOverlap), client, ix),
		engine:   core.NewEngine(client, ix, client, cfg.TopK, cfg.MaxContextChars),
	}, nil
}

// openIndex loads just the index for maintenance commands that never
// touch the embedding service, so they work without an API key.
func openIndex() (*config.Config, *index.Index, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	ix, err := index.Load(cfg.StorePath, cfg.EmbeddingModel)
	if err != nil {
		return nil, nil, fmt.Errorf("loading index: %w", err)
	}

	return cfg, ix, nil
}

func loadConfig() (*config.Config, error) {
	// Load .env for API keys
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	return cfg, nil
}
