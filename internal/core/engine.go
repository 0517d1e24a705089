// ABOUTME: Query engine: embed question, search index, generate cited answer
// ABOUTME: Retrieval, not the model, determines the authoritative source list
package core

import (
	"errors"
	"fmt"
	"strings"

	"github.com/docstack/docstack/internal/models"
)

// ErrEmptyQuery reports an empty or whitespace-only question, rejected
// before any embedding or network I/O.
var ErrEmptyQuery = errors.New("question is empty")

// NoDocumentsResponse is the fixed answer for an empty corpus; the
// completion service is never invoked in that case.
const NoDocumentsResponse = "no documents available"

// excerptLen bounds the excerpt attached to each cited source.
const excerptLen = 300

const promptTemplate = `You are a helpful assistant that answers questions based on the provided context from PDF documents.
Use the following pieces of context to answer the question at the end.
If you don't know the answer or if the context doesn't contain relevant information, just say that you don't know, don't try to make up an answer.
Always cite the source document in your answer.

Context:
%s

Question: %s

Answer: `

// Embedder embeds a single question.
type Embedder interface {
	Embed(text string) ([]float64, error)
}

// Searcher returns the k nearest chunks for a query vector.
type Searcher interface {
	Search(query []float64, k int) []models.SearchResult
}

// Completer generates text for a prompt.
type Completer interface {
	Complete(prompt string) (string, error)
}

// Engine answers questions from the indexed corpus. It borrows read-only
// results from the index during a query and holds no state across queries.
type Engine struct {
	embedder        Embedder
	searcher        Searcher
	completer       Completer
	topK            int
	maxContextChars int
}

// NewEngine creates a query engine. topK defaults to 4 and the context
// budget to 8000 chars when out of range.
func NewEngine(embedder Embedder, searcher Searcher, completer Completer, topK, maxContextChars int) *Engine {
	if topK <= 0 {
		topK = 4
	}
	if maxContextChars <= 0 {
		maxContextChars = 8000
	}
	return &Engine{
		embedder:        embedder,
		searcher:        searcher,
		completer:       completer,
		topK:            topK,
		maxContextChars: maxContextChars,
	}
}

// Answer runs the full query path. On a completion failure the retrieved
// sources are still returned alongside the error, so the caller can show
// "retrieval succeeded, generation failed".
func (e *Engine) Answer(question string) (*models.Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, ErrEmptyQuery
	}

	queryVec, err := e.embedder.Embed(question)
	if err != nil {
		return nil, fmt.Errorf("embedding question: %w", err)
	}

	results := e.searcher.Search(queryVec, e.topK)
	if len(results) == 0 {
		return &models.Answer{Text: NoDocumentsResponse, Sources: []models.Source{}}, nil
	}

	sources := make([]models.Source, len(results))
	for i, r := range results {
		sources[i] = models.Source{
			Document: r.Chunk.DocName,
			Page:     r.Chunk.Page,
			Excerpt:  excerpt(r.Chunk.Text),
		}
	}

	prompt := fmt.Sprintf(promptTemplate, e.buildContext(results), question)

	text, err := e.completer.Complete(prompt)
	if err != nil {
		return &models.Answer{Sources: sources}, err
	}

	return &models.Answer{Text: text, Sources: sources}, nil
}

// buildContext concatenates retrieved chunk texts, each tagged with its
// source document and page, bounded by the context budget.
func (e *Engine) buildContext(results []models.SearchResult) string {
	var b strings.Builder
	for _, r := range results {
		block := fmt.Sprintf("[Source: %s, page %d]\n%s\n\n", r.Chunk.DocName, r.Chunk.Page, r.Chunk.Text)
		if b.Len()+len(block) > e.maxContextChars {
			break
		}
		b.WriteString(block)
	}
	return strings.TrimRight(b.String(), "\n")
}

func excerpt(text string) string {
	runes := []rune(text)
	if len(runes) <= excerptLen {
		return text
	}
	return string(runes[:excerptLen]) + "..."
}
