// ABOUTME: Typed errors for the embedding and completion boundaries
// ABOUTME: Lets callers distinguish embedding failures from generation failures
package llm

import "fmt"

// EmbeddingError wraps a failure to produce an embedding vector. These are
// treated as deterministic for a given input and are never retried.
type EmbeddingError struct {
	Err error
}

func (e *EmbeddingError) Error() string {
	return fmt.Sprintf("embedding failed: %v", e.Err)
}

func (e *EmbeddingError) Unwrap() error { return e.Err }

// GenerationError wraps a completion-service failure that persisted after
// retry. Callers still return retrieved sources alongside it.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed: %v", e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }
