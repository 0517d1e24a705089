// ABOUTME: Tests for the query engine
// ABOUTME: Uses fakes to verify short circuits, sourcing, and failure paths
package core

import (
	"errors"
	"strings"
	"testing"

	"github.com/docstack/docstack/internal/llm"
	"github.com/docstack/docstack/internal/models"
)

type fakeEmbedder struct {
	vec    []float64
	err    error
	called bool
}

func (f *fakeEmbedder) Embed(text string) ([]float64, error) {
	f.called = true
	return f.vec, f.err
}

type fakeSearcher struct {
	results []models.SearchResult
}

func (f *fakeSearcher) Search(query []float64, k int) []models.SearchResult {
	if k < len(f.results) {
		return f.results[:k]
	}
	return f.results
}

type fakeCompleter struct {
	text   string
	err    error
	called bool
	prompt string
}

func (f *fakeCompleter) Complete(prompt string) (string, error) {
	f.called = true
	f.prompt = prompt
	return f.text, f.err
}

func chunkResult(doc string, page int, text string, score float64) models.SearchResult {
	return models.SearchResult{
		Chunk: models.Chunk{DocID: "d", DocName: doc, Page: page, Text: text},
		Score: score,
	}
}

func TestAnswer_RejectsEmptyQuestion(t *testing.T) {
	embedder := &fakeEmbedder{vec: []float64{1, 0}}
	engine := NewEngine(embedder, &fakeSearcher{}, &fakeCompleter{}, 4, 0)

	for _, q := range []string{"", "   ", "\n\t"} {
		_, err := engine.Answer(q)
		if !errors.Is(err, ErrEmptyQuery) {
			t.Errorf("Answer(%q) = %v, want ErrEmptyQuery", q, err)
		}
	}
	if embedder.called {
		t.Error("empty question must be rejected before any embedding")
	}
}

func TestAnswer_EmptyCorpusShortCircuits(t *testing.T) {
	completer := &fakeCompleter{text: "should not be used"}
	engine := NewEngine(&fakeEmbedder{vec: []float64{1, 0}}, &fakeSearcher{}, completer, 4, 0)

	answer, err := engine.Answer("anything in here?")
	if err != nil {
		t.Fatalf("Answer() failed: %v", err)
	}

	if answer.Text != NoDocumentsResponse {
		t.Errorf("Text = %q, want %q", answer.Text, NoDocumentsResponse)
	}
	if len(answer.Sources) != 0 {
		t.Errorf("Sources = %v, want empty", answer.Sources)
	}
	if completer.called {
		t.Error("completion service must not be called for an empty corpus")
	}
}

func TestAnswer_SourcesComeFromRetrieval(t *testing.T) {
	searcher := &fakeSearcher{results: []models.SearchResult{
		chunkResult("guide.pdf", 3, "Gophers burrow in grasslands.", 0.9),
		chunkResult("atlas.pdf", 12, "Grasslands cover vast plains.", 0.7),
	}}
	completer := &fakeCompleter{text: "Gophers live in grasslands [guide.pdf]."}
	engine := NewEngine(&fakeEmbedder{vec: []float64{1, 0}}, searcher, completer, 4, 0)

	answer, err := engine.Answer("Where do gophers live?")
	if err != nil {
		t.Fatalf("Answer() failed: %v", err)
	}

	if answer.Text != "Gophers live in grasslands [guide.pdf]." {
		t.Errorf("Text = %q", answer.Text)
	}
	if len(answer.Sources) != 2 {
		t.Fatalf("expected 2 sources, got %d", len(answer.Sources))
	}
	if answer.Sources[0].Document != "guide.pdf" || answer.Sources[0].Page != 3 {
		t.Errorf("source 0 = %+v, want guide.pdf page 3", answer.Sources[0])
	}
	if answer.Sources[1].Document != "atlas.pdf" || answer.Sources[1].Page != 12 {
		t.Errorf("source 1 = %+v, want atlas.pdf page 12", answer.Sources[1])
	}

	// The prompt carries tagged context and the question.
	if !strings.Contains(completer.prompt, "[Source: guide.pdf, page 3]") {
		t.Error("prompt should tag chunks with document and page")
	}
	if !strings.Contains(completer.prompt, "Gophers burrow in grasslands.") {
		t.Error("prompt should contain retrieved chunk text")
	}
	if !strings.Contains(completer.prompt, "Where do gophers live?") {
		t.Error("prompt should contain the question")
	}
}

func TestAnswer_GenerationFailureStillReturnsSources(t *testing.T) {
	searcher := &fakeSearcher{results: []models.SearchResult{
		chunkResult("guide.pdf", 1, "some context", 0.8),
	}}
	genErr := &llm.GenerationError{Err: errors.New("rate limited")}
	engine := NewEngine(&fakeEmbedder{vec: []float64{1, 0}}, searcher, &fakeCompleter{err: genErr}, 4, 0)

	answer, err := engine.Answer("a question")

	var ge *llm.GenerationError
	if !errors.As(err, &ge) {
		t.Fatalf("expected *llm.GenerationError, got %v", err)
	}
	if answer == nil {
		t.Fatal("answer with sources must be returned despite generation failure")
	}
	if len(answer.Sources) != 1 || answer.Sources[0].Document != "guide.pdf" {
		t.Errorf("Sources = %+v, want the retrieved chunk", answer.Sources)
	}
}

func TestAnswer_ContextBudgetBoundsPrompt(t *testing.T) {
	long := strings.Repeat("x", 400)
	searcher := &fakeSearcher{results: []models.SearchResult{
		chunkResult("a.pdf", 1, long, 0.9),
		chunkResult("b.pdf", 1, long, 0.8),
	}}
	completer := &fakeCompleter{text: "ok"}
	// Budget fits only the first block.
	engine := NewEngine(&fakeEmbedder{vec: []float64{1, 0}}, searcher, completer, 4, 500)

	if _, err := engine.Answer("q"); err != nil {
		t.Fatalf("Answer() failed: %v", err)
	}

	if !strings.Contains(completer.prompt, "a.pdf") {
		t.Error("first chunk should be in the context")
	}
	if strings.Contains(completer.prompt, "b.pdf") {
		t.Error("second chunk should be dropped by the context budget")
	}
}

func TestAnswer_TopKLimitsRetrieval(t *testing.T) {
	searcher := &fakeSearcher{results: []models.SearchResult{
		chunkResult("a.pdf", 1, "one", 0.9),
		chunkResult("b.pdf", 1, "two", 0.8),
		chunkResult("c.pdf", 1, "three", 0.7),
	}}
	engine := NewEngine(&fakeEmbedder{vec: []float64{1, 0}}, searcher, &fakeCompleter{text: "ok"}, 2, 0)

	answer, err := engine.Answer("q")
	if err != nil {
		t.Fatalf("Answer() failed: %v", err)
	}
	if len(answer.Sources) != 2 {
		t.Errorf("expected 2 sources for topK=2, got %d", len(answer.Sources))
	}
}

func TestExcerpt_Truncates(t *testing.T) {
	short := "short text"
	if got := excerpt(short); got != short {
		t.Errorf("excerpt(%q) = %q, want unchanged", short, got)
	}

	long := strings.Repeat("a", excerptLen+50)
	got := excerpt(long)
	if len([]rune(got)) != excerptLen+3 {
		t.Errorf("excerpt length = %d, want %d", len([]rune(got)), excerptLen+3)
	}
	if !strings.HasSuffix(got, "...") {
		t.Error("truncated excerpt should end with ellipsis")
	}
}
