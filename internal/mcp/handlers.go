// ABOUTME: MCP tool handler implementations for the docstack server
// ABOUTME: Thin adapters from tool requests to the ingestor, engine, and index
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/docstack/docstack/internal/core"
	"github.com/docstack/docstack/internal/index"
)

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	ingestor *core.Ingestor
	engine   *core.Engine
	index    *index.Index
}

// Ask handles the ask tool
func (h *Handlers) Ask(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	question, err := request.RequireString("question")
	if err != nil {
		return mcp.NewToolResultError("question argument is required and must be a string"), nil
	}

	answer, err := h.engine.Answer(question)
	if errors.Is(err, core.ErrEmptyQuery) {
		return mcp.NewToolResultError("question must not be empty"), nil
	}
	if err != nil {
		// Retrieval may have succeeded even when generation failed; surface
		// the sources so the caller is not left empty-handed.
		if answer != nil && len(answer.Sources) > 0 {
			response := map[string]interface{}{
				"error":   err.Error(),
				"sources": answer.Sources,
			}
			return jsonResult(response)
		}
		return mcp.NewToolResultError(fmt.Sprintf("answering failed: %v", err)), nil
	}

	response := map[string]interface{}{
		"answer":  answer.Text,
		"sources": answer.Sources,
	}
	return jsonResult(response)
}

// IngestPDF handles the ingest_pdf tool
func (h *Handlers) IngestPDF(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("path argument is required and must be a string"), nil
	}

	doc, err := h.ingestor.IngestFile(path)
	if errors.Is(err, core.ErrAlreadyIngested) {
		return jsonResult(map[string]interface{}{
			"status": "skipped",
			"reason": "document already ingested",
		})
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("ingestion failed: %v", err)), nil
	}

	response := map[string]interface{}{
		"status":      "ingested",
		"doc_id":      doc.DocID,
		"name":        doc.Name,
		"page_count":  doc.PageCount,
		"chunk_count": doc.ChunkCount,
	}
	return jsonResult(response)
}

// ListDocuments handles the list_documents tool
func (h *Handlers) ListDocuments(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	docs := h.index.Documents()

	list := make([]map[string]interface{}, 0, len(docs))
	for _, doc := range docs {
		list = append(list, map[string]interface{}{
			"doc_id":      doc.DocID,
			"name":        doc.Name,
			"page_count":  doc.PageCount,
			"chunk_count": doc.ChunkCount,
			"ingested_at": doc.IngestedAt.Format(time.RFC3339),
		})
	}

	return jsonResult(map[string]interface{}{"documents": list})
}

// CorpusStats handles the corpus_stats tool
func (h *Handlers) CorpusStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stats := h.index.Stats()
	response := map[string]interface{}{
		"document_count": stats.DocumentCount,
		"chunk_count":    stats.ChunkCount,
	}
	return jsonResult(response)
}

// RemoveDocument handles the remove_document tool
func (h *Handlers) RemoveDocument(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	docID, err := request.RequireString("doc_id")
	if err != nil {
		return mcp.NewToolResultError("doc_id argument is required and must be a string"), nil
	}

	if err := h.index.RemoveDocument(docID); err != nil {
		if errors.Is(err, index.ErrUnknownDocument) {
			return mcp.NewToolResultError(fmt.Sprintf("no document with id %s", docID)), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("removal failed: %v", err)), nil
	}

	if err := h.index.Persist(); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("persisting after removal failed: %v", err)), nil
	}

	return jsonResult(map[string]interface{}{
		"status": "removed",
		"doc_id": docID,
	})
}

// ClearCorpus handles the clear_corpus tool
func (h *Handlers) ClearCorpus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	removed := h.index.Stats()
	h.index.Clear()

	if err := h.index.Persist(); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("persisting after clear failed: %v", err)), nil
	}

	response := map[string]interface{}{
		"status":            "cleared",
		"documents_removed": removed.DocumentCount,
		"chunks_removed":    removed.ChunkCount,
	}
	return jsonResult(response)
}

func jsonResult(response map[string]interface{}) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
