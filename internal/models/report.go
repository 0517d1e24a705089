// ABOUTME: IngestReport summarizes one batch ingestion run
// ABOUTME: Collects ingested, skipped, and failed documents with reasons
package models

import (
	"fmt"
	"strings"
)

// IngestFailure records one document that could not be ingested.
type IngestFailure struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// IngestReport is the outcome of a batch ingestion. Per-document failures
// are collected here rather than aborting the batch.
type IngestReport struct {
	BatchID  string          `json:"batch_id"`
	Ingested []Document      `json:"ingested"`
	Skipped  []string        `json:"skipped"`
	Failures []IngestFailure `json:"failures"`
}

// IngestedNames returns the names of the successfully ingested documents.
func (r *IngestReport) IngestedNames() []string {
	names := make([]string, len(r.Ingested))
	for i, doc := range r.Ingested {
		names[i] = doc.Name
	}
	return names
}

// Summary renders a one-line human-readable outcome.
func (r *IngestReport) Summary() string {
	parts := []string{fmt.Sprintf("%d ingested", len(r.Ingested))}
	if len(r.Skipped) > 0 {
		parts = append(parts, fmt.Sprintf("%d skipped (already processed)", len(r.Skipped)))
	}
	if len(r.Failures) > 0 {
		parts = append(parts, fmt.Sprintf("%d failed", len(r.Failures)))
	}
	return strings.Join(parts, ", ")
}
