// ABOUTME: MCP tool definitions and registration for the docstack server
// ABOUTME: Defines JSON schemas for the six document QA tools
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/docstack/docstack/internal/core"
	"github.com/docstack/docstack/internal/index"
)

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, ingestor *core.Ingestor, engine *core.Engine, ix *index.Index) *Handlers {
	handlers := &Handlers{
		ingestor: ingestor,
		engine:   engine,
		index:    ix,
	}

	// 1. ask - Answer a question from the ingested PDF corpus
	server.AddTool(mcp.Tool{
		Name:        "ask",
		Description: "Answer a question using the ingested PDF corpus. Returns the answer together with the source documents and pages it was grounded on.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"question": map[string]interface{}{
					"type":        "string",
					"description": "Question to answer from the corpus",
				},
			},
			Required: []string{"question"},
		},
	}, handlers.Ask)

	// 2. ingest_pdf - Ingest a PDF file into the corpus
	server.AddTool(mcp.Tool{
		Name:        "ingest_pdf",
		Description: "Ingest a PDF file into the corpus. Re-ingesting a file with identical content is skipped, not duplicated.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Filesystem path of the PDF to ingest",
				},
			},
			Required: []string{"path"},
		},
	}, handlers.IngestPDF)

	// 3. list_documents - List all ingested documents
	server.AddTool(mcp.Tool{
		Name:        "list_documents",
		Description: "List all ingested documents with page and chunk counts, in ingestion order.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.ListDocuments)

	// 4. corpus_stats - Report corpus size
	server.AddTool(mcp.Tool{
		Name:        "corpus_stats",
		Description: "Report the number of documents and chunks currently in the corpus.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.CorpusStats)

	// 5. remove_document - Remove one document and its chunks
	server.AddTool(mcp.Tool{
		Name:        "remove_document",
		Description: "Remove a document and all of its chunks from the corpus by document id.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"doc_id": map[string]interface{}{
					"type":        "string",
					"description": "Identifier of the document to remove",
				},
			},
			Required: []string{"doc_id"},
		},
	}, handlers.RemoveDocument)

	// 6. clear_corpus - Remove everything
	server.AddTool(mcp.Tool{
		Name:        "clear_corpus",
		Description: "Remove every document and chunk from the corpus. This cannot be undone.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.ClearCorpus)

	return handlers
}
