// ABOUTME: OpenAI client wrapper for embeddings and chat completions
// ABOUTME: Embeddings are never retried; completions retry once with backoff
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/docstack/docstack/internal/util"
)

const (
	// DefaultChatModel is the default model for answer generation
	DefaultChatModel = "gpt-4o-mini"
	// DefaultEmbeddingModel is the default model for embeddings
	DefaultEmbeddingModel = string(openai.SmallEmbedding3)
)

// ClientConfig holds configuration for the OpenAI client.
type ClientConfig struct {
	APIKey         string
	BaseURL        string // empty = api.openai.com; set for a local OpenAI-compatible server
	ChatModel      string
	EmbeddingModel string
	Temperature    float64
	MaxTokens      int
	Timeout        time.Duration
	MaxRetries     int
	RetryDelay     time.Duration
}

// DefaultConfig returns the default client configuration.
func DefaultConfig(apiKey string) *ClientConfig {
	return &ClientConfig{
		APIKey:         apiKey,
		ChatModel:      DefaultChatModel,
		EmbeddingModel: DefaultEmbeddingModel,
		Temperature:    0.3,
		MaxTokens:      500,
		Timeout:        60 * time.Second,
		MaxRetries:     1,
		RetryDelay:     time.Second * 2,
	}
}

// Client wraps the OpenAI API for the ingestion and query paths. The same
// embedding configuration is used for document chunks and questions.
type Client struct {
	client         *openai.Client
	chatModel      string
	embeddingModel openai.EmbeddingModel
	temperature    float32
	maxTokens      int
	timeout        time.Duration
	maxRetries     int
	retryDelay     time.Duration
}

// NewClient creates a client with the given configuration.
func NewClient(cfg *ClientConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	apiCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		apiCfg.BaseURL = cfg.BaseURL
	}

	chatModel := cfg.ChatModel
	if chatModel == "" {
		chatModel = DefaultChatModel
	}
	embeddingModel := cfg.EmbeddingModel
	if embeddingModel == "" {
		embeddingModel = DefaultEmbeddingModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	return &Client{
		client:         openai.NewClientWithConfig(apiCfg),
		chatModel:      chatModel,
		embeddingModel: openai.EmbeddingModel(embeddingModel),
		temperature:    float32(cfg.Temperature),
		maxTokens:      cfg.MaxTokens,
		timeout:        timeout,
		maxRetries:     cfg.MaxRetries,
		retryDelay:     cfg.RetryDelay,
	}, nil
}

// ModelID identifies the embedding model; the index snapshot is versioned
// by it so an incompatible model swap is detected on load.
func (c *Client) ModelID() string {
	return string(c.embeddingModel)
}

// Embed generates the embedding vector for one text.
func (c *Client) Embed(text string) ([]float64, error) {
	vectors, err := c.EmbedBatch([]string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedBatch generates embedding vectors for several texts in one API call.
// Results are element-wise identical to calling Embed per text; the batch
// exists purely to amortize per-call overhead.
func (c *Client) EmbedBatch(texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return nil, &EmbeddingError{Err: errors.New("no texts provided")}
	}
	for i, text := range texts {
		if strings.TrimSpace(text) == "" {
			return nil, &EmbeddingError{Err: fmt.Errorf("text %d is empty", i)}
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	resp, err := c.client.CreateEmbeddings(ctx, openai.EmbeddingRequestStrings{
		Input: texts,
		Model: c.embeddingModel,
	})
	if err != nil {
		return nil, &EmbeddingError{Err: err}
	}
	if len(resp.Data) != len(texts) {
		return nil, &EmbeddingError{Err: fmt.Errorf("expected %d embeddings, got %d", len(texts), len(resp.Data))}
	}

	vectors := make([][]float64, len(texts))
	for _, item := range resp.Data {
		if item.Index < 0 || item.Index >= len(texts) {
			return nil, &EmbeddingError{Err: fmt.Errorf("embedding index %d out of range", item.Index)}
		}
		vectors[item.Index] = toFloat64(item.Embedding)
	}

	return vectors, nil
}

// Complete submits a prompt to the chat model and returns the answer text.
// Transient failures are retried with exponential backoff; a failure that
// survives every attempt is surfaced as a GenerationError.
func (c *Client) Complete(prompt string) (string, error) {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(util.CalculateBackoff(c.retryDelay, attempt))
		}

		ctx, cancel := context.WithTimeout(context.Background(), c.timeout)

		resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model: c.chatModel,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleUser, Content: prompt},
			},
			Temperature: c.temperature,
			MaxTokens:   c.maxTokens,
		})
		cancel()

		if err != nil {
			lastErr = fmt.Errorf("attempt %d: %w", attempt+1, err)
			continue
		}
		if len(resp.Choices) == 0 {
			lastErr = fmt.Errorf("attempt %d: no choices returned", attempt+1)
			continue
		}

		return strings.TrimSpace(resp.Choices[0].Message.Content), nil
	}

	return "", &GenerationError{Err: lastErr}
}

// toFloat64 converts the API's float32 vectors for storage and scoring.
func toFloat64(v []float32) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = float64(x)
	}
	return out
}
