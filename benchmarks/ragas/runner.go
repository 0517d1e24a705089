// ABOUTME: Benchmark runner - builds a corpus per scenario and scores retrieval
// ABOUTME: Uses a deterministic term embedder so runs need no network access

package ragas

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
	"math"
	"os"
	"strings"
	"time"

	"github.com/docstack/docstack/internal/chunker"
	"github.com/docstack/docstack/internal/core"
	"github.com/docstack/docstack/internal/extract"
	"github.com/docstack/docstack/internal/index"
	"github.com/docstack/docstack/internal/models"
)

const (
	embeddingDim = 64
	chunkSize    = 280
	chunkOverlap = 60
)

// termEmbedder is a deterministic bag-of-words embedder. It stands in for
// the real embedding service so the benchmark exercises the chunker, index,
// and engine without network access, and every run scores identically.
type termEmbedder struct{}

func (termEmbedder) Embed(text string) ([]float64, error) {
	return embedTerms(text), nil
}

func (termEmbedder) EmbedBatch(texts []string) ([][]float64, error) {
	vectors := make([][]float64, len(texts))
	for i, text := range texts {
		vectors[i] = embedTerms(text)
	}
	return vectors, nil
}

func embedTerms(text string) []float64 {
	vec := make([]float64, embeddingDim)
	for _, word := range strings.Fields(strings.ToLower(text)) {
		word = strings.Trim(word, ".,;:!?()\"'")
		if word == "" {
			continue
		}
		h := fnv.New32a()
		h.Write([]byte(word))
		vec[h.Sum32()%embeddingDim]++
	}

	var norm float64
	for _, v := range vec {
		norm += v * v
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec
}

// extractiveCompleter answers with the top retrieved context block, so the
// answer is exactly what retrieval surfaced and scoring measures retrieval,
// not generation.
type extractiveCompleter struct{}

func (extractiveCompleter) Complete(prompt string) (string, error) {
	start := strings.Index(prompt, "Context:\n")
	end := strings.Index(prompt, "\n\nQuestion:")
	if start < 0 || end < 0 || end <= start {
		return prompt, nil
	}
	context := prompt[start+len("Context:\n") : end]

	// Blocks are separated by blank lines; keep only the top-ranked one.
	if cut := strings.Index(context, "\n\n"); cut >= 0 {
		context = context[:cut]
	}
	return strings.TrimSpace(context), nil
}

// BenchmarkRunner executes retrieval benchmark tests
type BenchmarkRunner struct {
	metrics *MetricsCalculator
	verbose bool
}

// NewBenchmarkRunner creates a new benchmark runner
func NewBenchmarkRunner(verbose bool) *BenchmarkRunner {
	return &BenchmarkRunner{
		metrics: NewMetricsCalculator(),
		verbose: verbose,
	}
}

// RunTest executes a single benchmark test against a fresh corpus
func (r *BenchmarkRunner) RunTest(scenario TestScenario) (TestResult, error) {
	if r.verbose {
		fmt.Printf("\n========================================\n")
		fmt.Printf("RUNNING: %s\n", scenario.Name)
		fmt.Printf("========================================\n")
		fmt.Printf("Description: %s\n\n", scenario.Description)
	}

	dir, err := os.MkdirTemp("", "docstack_bench_"+scenario.ID)
	if err != nil {
		return TestResult{}, fmt.Errorf("creating scratch dir: %w", err)
	}
	defer func() { _ = os.RemoveAll(dir) }()

	embedder := termEmbedder{}
	ix := index.New(dir, "benchmark-term-embedder")
	ch := chunker.New(chunkSize, chunkOverlap)

	for _, doc := range scenario.Documents {
		if err := ingestScenarioDoc(ix, ch, embedder, doc); err != nil {
			return TestResult{}, fmt.Errorf("ingesting %s: %w", doc.Name, err)
		}
	}

	topK := scenario.TopK
	if topK <= 0 {
		topK = 4
	}
	engine := core.NewEngine(embedder, ix, extractiveCompleter{}, topK, 8000)

	answer, err := engine.Answer(scenario.Question)
	if err != nil {
		return TestResult{}, fmt.Errorf("answering failed: %w", err)
	}

	retrievedContext := make([]string, 0, len(answer.Sources))
	citedDocs := make([]string, 0, len(answer.Sources))
	for _, source := range answer.Sources {
		retrievedContext = append(retrievedContext, source.Excerpt)
		citedDocs = append(citedDocs, source.Document)
	}

	if r.verbose {
		fmt.Printf("[Question] %s\n", scenario.Question)
		answerPreview := answer.Text
		if len(answerPreview) > 150 {
			answerPreview = answerPreview[:150]
		}
		fmt.Printf("[Answer] %s\n", answerPreview)
		fmt.Printf("[Sources] %v\n\n", citedDocs)
	}

	result := r.metrics.EvaluateScenario(scenario, answer.Text, retrievedContext, citedDocs)

	if r.verbose {
		fmt.Printf("\n========================================\n")
		fmt.Printf("RESULTS: %s\n", scenario.Name)
		fmt.Printf("========================================\n")
		fmt.Printf("Faithfulness: %.2f\n", result.FaithfulnessScore)
		fmt.Printf("Context Recall: %.2f\n", result.ContextRecallScore)
		fmt.Printf("Source Accuracy: %.2f\n", result.SourceAccuracy)
		fmt.Printf("Overall Score: %.2f\n", result.OverallScore)
		fmt.Printf("Status: %s\n", result.Status)
		fmt.Printf("========================================\n\n")
	}

	return result, nil
}

// ingestScenarioDoc chunks, embeds, and indexes one scenario document.
func ingestScenarioDoc(ix *index.Index, ch *chunker.Chunker, embedder termEmbedder, doc ScenarioDocument) error {
	pages := make([]extract.Page, len(doc.Pages))
	for i, text := range doc.Pages {
		pages[i] = extract.Page{Number: i + 1, Text: text}
	}

	docID := core.DocumentID([]byte(doc.Name + "\x00" + strings.Join(doc.Pages, "\x00")))
	chunks := ch.ChunkPages(docID, doc.Name, pages)
	if len(chunks) == 0 {
		return fmt.Errorf("document produced no chunks")
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}
	vectors, err := embedder.EmbedBatch(texts)
	if err != nil {
		return err
	}

	return ix.Add(models.Document{
		DocID:      docID,
		Name:       doc.Name,
		PageCount:  len(pages),
		ChunkCount: len(chunks),
		IngestedAt: time.Now(),
	}, chunks, vectors)
}

// RunAllTests executes all benchmark tests
func (r *BenchmarkRunner) RunAllTests() ([]TestResult, error) {
	scenarios := GetAllScenarios()
	results := make([]TestResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		result, err := r.RunTest(scenario)
		if err != nil {
			return nil, fmt.Errorf("test %s failed: %w", scenario.ID, err)
		}
		results = append(results, result)
	}

	return results, nil
}

// ExportResults exports test results to JSON
func (r *BenchmarkRunner) ExportResults(results []TestResult, outputPath string) error {
	summary := map[string]interface{}{
		"timestamp":   time.Now().Format(time.RFC3339),
		"total_tests": len(results),
		"passed":      0,
		"failed":      0,
		"results":     results,
	}

	for _, result := range results {
		if result.Status == "PASS" {
			summary["passed"] = summary["passed"].(int) + 1
		} else {
			summary["failed"] = summary["failed"].(int) + 1
		}
	}

	jsonData, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}

	if err := os.WriteFile(outputPath, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write results file: %w", err)
	}

	fmt.Printf("✓ Results exported to: %s\n", outputPath)
	return nil
}
