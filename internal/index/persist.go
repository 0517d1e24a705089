// ABOUTME: Snapshot persistence for the vector index
// ABOUTME: Staging file plus atomic rename; versioned by embedding model
package index

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/docstack/docstack/internal/models"
)

const (
	snapshotVersion = 1
	snapshotFile    = "index.json"
)

// ErrModelMismatch reports a snapshot written with a different embedding
// model. Mixing dimensions would silently corrupt similarity results, so
// this is a hard error; `clear` rebuilds the index for the new model.
var ErrModelMismatch = errors.New("index was built with a different embedding model")

type snapshot struct {
	Version   int               `json:"version"`
	ModelID   string            `json:"model_id"`
	Dimension int               `json:"dimension"`
	Documents []models.Document `json:"documents"`
	Entries   []Entry           `json:"entries"`
}

// Load restores an index from dir. A missing or empty location yields an
// empty index (first-run bootstrap). An unreadable snapshot is logged and
// treated as empty, giving a clean-rebuild path instead of crashing.
func Load(dir, modelID string) (*Index, error) {
	ix := New(dir, modelID)

	data, err := os.ReadFile(filepath.Join(dir, snapshotFile))
	if err != nil {
		if os.IsNotExist(err) {
			return ix, nil
		}
		return nil, fmt.Errorf("reading index snapshot: %w", err)
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		log.Printf("Warning: index snapshot in %s is unreadable, starting empty: %v", dir, err)
		return ix, nil
	}

	if snap.ModelID != "" && modelID != "" && snap.ModelID != modelID {
		return nil, fmt.Errorf("%w: snapshot has %q, configured %q", ErrModelMismatch, snap.ModelID, modelID)
	}

	ix.dimension = snap.Dimension
	ix.entries = snap.Entries
	for _, doc := range snap.Documents {
		ix.docs[doc.DocID] = doc
		ix.docOrder = append(ix.docOrder, doc.DocID)
	}

	return ix, nil
}

// Persist serializes the full index to its directory. The snapshot is
// written to a staging file and renamed into place, so a crash mid-write
// leaves the previous snapshot intact.
func (ix *Index) Persist() error {
	ix.mu.RLock()
	snap := snapshot{
		Version:   snapshotVersion,
		ModelID:   ix.modelID,
		Dimension: ix.dimension,
		Documents: make([]models.Document, 0, len(ix.docOrder)),
		Entries:   ix.entries,
	}
	for _, id := range ix.docOrder {
		snap.Documents = append(snap.Documents, ix.docs[id])
	}
	ix.mu.RUnlock()

	if err := os.MkdirAll(ix.dir, 0755); err != nil {
		return fmt.Errorf("creating index directory: %w", err)
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encoding index snapshot: %w", err)
	}

	staging := filepath.Join(ix.dir, fmt.Sprintf("%s.tmp-%s", snapshotFile, uuid.New().String()[:8]))
	if err := os.WriteFile(staging, data, 0644); err != nil {
		return fmt.Errorf("writing staging snapshot: %w", err)
	}

	if err := os.Rename(staging, filepath.Join(ix.dir, snapshotFile)); err != nil {
		_ = os.Remove(staging)
		return fmt.Errorf("swapping index snapshot: %w", err)
	}

	return nil
}
