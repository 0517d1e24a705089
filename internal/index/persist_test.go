// ABOUTME: Tests for index snapshot persistence and bootstrap
// ABOUTME: Covers round trips, missing/corrupt snapshots, and model mismatch
package index

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestPersistLoad_RoundTrip(t *testing.T) {
	dir := t.TempDir()

	ix := New(dir, "test-model")
	if err := ix.Add(testDoc("doc1", "a.pdf"), testChunks("doc1", "a1", "a2"), [][]float64{{1, 0}, {0, 1}}); err != nil {
		t.Fatalf("Add(doc1) failed: %v", err)
	}
	if err := ix.Add(testDoc("doc2", "b.pdf"), testChunks("doc2", "b1"), [][]float64{{1, 1}}); err != nil {
		t.Fatalf("Add(doc2) failed: %v", err)
	}

	if err := ix.Persist(); err != nil {
		t.Fatalf("Persist() failed: %v", err)
	}

	loaded, err := Load(dir, "test-model")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	stats := loaded.Stats()
	if stats.DocumentCount != 2 || stats.ChunkCount != 3 {
		t.Errorf("loaded stats = %+v, want 2 documents, 3 chunks", stats)
	}
	if !loaded.ContainsDocument("doc1") || !loaded.ContainsDocument("doc2") {
		t.Error("registry should survive the round trip")
	}

	docs := loaded.Documents()
	if len(docs) != 2 || docs[0].DocID != "doc1" || docs[1].DocID != "doc2" {
		t.Errorf("ingestion order not preserved: %+v", docs)
	}

	results := loaded.Search([]float64{1, 0}, 1)
	if len(results) != 1 || results[0].Chunk.Text != "a1" {
		t.Errorf("search after load = %+v, want a1 on top", results)
	}

	// No staging leftovers after a successful persist.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("reading store dir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != snapshotFile {
		t.Errorf("store dir should only hold %s, got %v", snapshotFile, entries)
	}
}

func TestLoad_MissingLocationBootstrapsEmpty(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "never-created")

	ix, err := Load(dir, "test-model")
	if err != nil {
		t.Fatalf("Load() on missing location failed: %v", err)
	}
	if stats := ix.Stats(); stats.DocumentCount != 0 || stats.ChunkCount != 0 {
		t.Errorf("expected empty index, got %+v", stats)
	}
}

func TestLoad_CorruptSnapshotRebuildsEmpty(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, snapshotFile), []byte("{not json"), 0644); err != nil {
		t.Fatalf("writing corrupt snapshot: %v", err)
	}

	ix, err := Load(dir, "test-model")
	if err != nil {
		t.Fatalf("Load() on corrupt snapshot should rebuild empty, got error: %v", err)
	}
	if stats := ix.Stats(); stats.DocumentCount != 0 {
		t.Errorf("expected empty rebuild, got %+v", stats)
	}

	// The rebuilt index must be usable and persistable.
	if err := ix.Add(testDoc("doc1", "a.pdf"), testChunks("doc1", "a"), [][]float64{{1, 0}}); err != nil {
		t.Fatalf("Add() after rebuild failed: %v", err)
	}
	if err := ix.Persist(); err != nil {
		t.Fatalf("Persist() after rebuild failed: %v", err)
	}
}

func TestLoad_ModelMismatchIsError(t *testing.T) {
	dir := t.TempDir()

	ix := New(dir, "model-a")
	if err := ix.Add(testDoc("doc1", "a.pdf"), testChunks("doc1", "a"), [][]float64{{1, 0}}); err != nil {
		t.Fatalf("Add() failed: %v", err)
	}
	if err := ix.Persist(); err != nil {
		t.Fatalf("Persist() failed: %v", err)
	}

	_, err := Load(dir, "model-b")
	if !errors.Is(err, ErrModelMismatch) {
		t.Errorf("Load() with different model = %v, want ErrModelMismatch", err)
	}
}

func TestPersist_RemoveThenReload(t *testing.T) {
	dir := t.TempDir()

	ix := New(dir, "test-model")
	if err := ix.Add(testDoc("doc1", "a.pdf"), testChunks("doc1", "a1", "a2"), [][]float64{{1, 0}, {0, 1}}); err != nil {
		t.Fatalf("Add(doc1) failed: %v", err)
	}
	if err := ix.Add(testDoc("doc2", "b.pdf"), testChunks("doc2", "b1"), [][]float64{{1, 1}}); err != nil {
		t.Fatalf("Add(doc2) failed: %v", err)
	}
	if err := ix.Persist(); err != nil {
		t.Fatalf("Persist() failed: %v", err)
	}

	if err := ix.RemoveDocument("doc1"); err != nil {
		t.Fatalf("RemoveDocument() failed: %v", err)
	}
	if err := ix.Persist(); err != nil {
		t.Fatalf("Persist() after removal failed: %v", err)
	}

	loaded, err := Load(dir, "test-model")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	stats := loaded.Stats()
	if stats.DocumentCount != 1 || stats.ChunkCount != 1 {
		t.Errorf("reloaded stats = %+v, want only doc2's chunk", stats)
	}
}
