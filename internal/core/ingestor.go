// ABOUTME: Ingestor turns PDF files into indexed, searchable chunks
// ABOUTME: Idempotent per document; batch failures collected, not fatal
package core

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/docstack/docstack/internal/chunker"
	"github.com/docstack/docstack/internal/extract"
	"github.com/docstack/docstack/internal/index"
	"github.com/docstack/docstack/internal/models"
)

// ErrAlreadyIngested reports a document whose identifier is already in the
// index registry; ingestion skips it.
var ErrAlreadyIngested = errors.New("document already ingested")

// BatchEmbedder is the embedding capability the ingestor needs.
type BatchEmbedder interface {
	EmbedBatch(texts []string) ([][]float64, error)
}

// Ingestor orchestrates extract → chunk → embed → index for documents.
// Documents in a batch are processed sequentially, one at a time, so a
// slow or failed document never disturbs the ones before or after it.
type Ingestor struct {
	chunker  *chunker.Chunker
	embedder BatchEmbedder
	index    *index.Index

	// Extraction seam; tests swap this for canned pages.
	extractFile func(path string) ([]extract.Page, error)
}

// NewIngestor creates an Ingestor writing into the given index.
func NewIngestor(c *chunker.Chunker, embedder BatchEmbedder, ix *index.Index) *Ingestor {
	return &Ingestor{
		chunker:     c,
		embedder:    embedder,
		index:       ix,
		extractFile: extract.File,
	}
}

// IngestFile ingests one PDF. Returns ErrAlreadyIngested when the file's
// content hash is already registered. On any failure the index is left
// exactly as it was: registration happens only after every chunk of the
// document has been embedded.
func (ing *Ingestor) IngestFile(path string) (*models.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	docID := DocumentID(data)
	if ing.index.ContainsDocument(docID) {
		return nil, ErrAlreadyIngested
	}

	pages, err := ing.extractFile(path)
	if err != nil {
		return nil, err
	}

	name := filepath.Base(path)
	chunks := ing.chunker.ChunkPages(docID, name, pages)
	if len(chunks) == 0 {
		return nil, &extract.ExtractionError{Name: name, Err: extract.ErrNoTextLayer}
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}

	vectors, err := ing.embedder.EmbedBatch(texts)
	if err != nil {
		return nil, fmt.Errorf("embedding %s: %w", name, err)
	}

	doc := models.Document{
		DocID:      docID,
		Name:       name,
		PageCount:  len(pages),
		ChunkCount: len(chunks),
		IngestedAt: time.Now(),
	}

	if err := ing.index.Add(doc, chunks, vectors); err != nil {
		if errors.Is(err, index.ErrDocumentExists) {
			return nil, ErrAlreadyIngested
		}
		return nil, fmt.Errorf("indexing %s: %w", name, err)
	}

	if err := ing.index.Persist(); err != nil {
		return nil, fmt.Errorf("persisting index after %s: %w", name, err)
	}

	return &doc, nil
}

// IngestBatch ingests several PDFs sequentially. Per-document failures go
// into the report instead of aborting the batch.
func (ing *Ingestor) IngestBatch(paths []string) *models.IngestReport {
	report := &models.IngestReport{
		BatchID: fmt.Sprintf("batch_%s_%s", time.Now().Format("20060102_150405"), uuid.New().String()[:8]),
	}

	for _, path := range paths {
		doc, err := ing.IngestFile(path)
		switch {
		case errors.Is(err, ErrAlreadyIngested):
			report.Skipped = append(report.Skipped, filepath.Base(path))
		case err != nil:
			report.Failures = append(report.Failures, models.IngestFailure{
				Name:   filepath.Base(path),
				Reason: err.Error(),
			})
		default:
			report.Ingested = append(report.Ingested, *doc)
		}
	}

	return report
}

// DocumentID derives the stable document identifier from file content, so
// the same bytes under a different filename are still recognized.
func DocumentID(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])[:16]
}
