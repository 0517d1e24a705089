// ABOUTME: Tests for the overlapping window chunker
// ABOUTME: Covers determinism, coverage, tail merge, and page attribution
package chunker

import (
	"strings"
	"testing"

	"github.com/docstack/docstack/internal/extract"
)

func TestChunkPages_TwoPageScenario(t *testing.T) {
	pages := []extract.Page{
		{Number: 1, Text: "Alpha content."},
		{Number: 2, Text: "Beta content."},
	}

	chunks := New(20, 5).ChunkPages("doc1", "doc.pdf", pages)

	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}

	// The second chunk must begin inside the first chunk's overlap window.
	first, second := chunks[0].Text, chunks[1].Text
	if !strings.HasSuffix(first, second[:5]) {
		t.Errorf("second chunk should start with the first chunk's last 5 chars; first=%q second=%q", first, second)
	}
	if !strings.Contains(second, "Beta content.") {
		t.Errorf("second chunk = %q, want it to contain the page 2 text", second)
	}

	if chunks[0].Page != 1 {
		t.Errorf("chunk 0 page = %d, want 1", chunks[0].Page)
	}
	if chunks[0].Seq != 0 || chunks[1].Seq != 1 {
		t.Errorf("seq = %d, %d, want 0, 1", chunks[0].Seq, chunks[1].Seq)
	}
	if chunks[0].ChunkID != "doc1:0" || chunks[1].ChunkID != "doc1:1" {
		t.Errorf("chunk IDs = %q, %q, want doc1:0, doc1:1", chunks[0].ChunkID, chunks[1].ChunkID)
	}
}

func TestChunkPages_Deterministic(t *testing.T) {
	pages := []extract.Page{
		{Number: 1, Text: strings.Repeat("The quick brown fox jumps over the lazy dog. ", 40)},
		{Number: 2, Text: strings.Repeat("Pack my box with five dozen liquor jugs. ", 40)},
	}

	c := New(300, 60)
	a := c.ChunkPages("d", "d.pdf", pages)
	b := c.ChunkPages("d", "d.pdf", pages)

	if len(a) != len(b) {
		t.Fatalf("chunk counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Text != b[i].Text {
			t.Errorf("chunk %d differs between runs", i)
		}
		if a[i].Page != b[i].Page || a[i].Seq != b[i].Seq {
			t.Errorf("chunk %d metadata differs between runs", i)
		}
	}
}

func TestChunkPages_CoverageReconstructsText(t *testing.T) {
	text := strings.Repeat("Sphinx of black quartz, judge my vow. ", 30)
	pages := []extract.Page{{Number: 1, Text: text}}

	overlap := 20
	chunks := New(100, overlap).ChunkPages("d", "d.pdf", pages)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}

	// Dropping each chunk's leading overlap reproduces the joined text.
	var rebuilt strings.Builder
	rebuilt.WriteString(chunks[0].Text)
	for _, c := range chunks[1:] {
		rebuilt.WriteString(c.Text[overlap:])
	}
	if rebuilt.String() != text {
		t.Error("concatenated chunks (overlap removed) do not reproduce the extracted text")
	}
}

func TestChunkPages_TailShorterThanOverlapIsMerged(t *testing.T) {
	// 23 chars with no separators: the 3-char tail after the first window
	// must be folded into the first chunk instead of emitted on its own.
	pages := []extract.Page{{Number: 1, Text: strings.Repeat("x", 23)}}

	chunks := New(20, 5).ChunkPages("d", "d.pdf", pages)

	if len(chunks) != 1 {
		t.Fatalf("expected 1 merged chunk, got %d", len(chunks))
	}
	if len(chunks[0].Text) != 23 {
		t.Errorf("merged chunk length = %d, want 23", len(chunks[0].Text))
	}
}

func TestChunkPages_PreferredSeparators(t *testing.T) {
	// A paragraph break inside the window must win over the later spaces.
	text := "First paragraph here.\n\nSecond paragraph follows with more words than fit."
	pages := []extract.Page{{Number: 1, Text: text}}

	chunks := New(40, 5).ChunkPages("d", "d.pdf", pages)
	if len(chunks) < 2 {
		t.Fatalf("expected at least 2 chunks, got %d", len(chunks))
	}
	if chunks[0].Text != "First paragraph here.\n\n" {
		t.Errorf("chunk 0 = %q, want the full first paragraph ending at the break", chunks[0].Text)
	}
}

func TestChunkPages_PageAttribution(t *testing.T) {
	pages := []extract.Page{
		{Number: 1, Text: strings.Repeat("a", 30)},
		{Number: 2, Text: strings.Repeat("b", 30)},
	}

	chunks := New(30, 5).ChunkPages("d", "d.pdf", pages)
	if len(chunks) < 2 {
		t.Fatalf("expected at least 2 chunks, got %d", len(chunks))
	}

	if chunks[0].Page != 1 {
		t.Errorf("chunk 0 page = %d, want 1", chunks[0].Page)
	}
	last := chunks[len(chunks)-1]
	if last.Page != 2 {
		t.Errorf("last chunk page = %d, want 2", last.Page)
	}
}

func TestChunkPages_EmptyInput(t *testing.T) {
	if chunks := New(100, 20).ChunkPages("d", "d.pdf", nil); chunks != nil {
		t.Errorf("expected nil for no pages, got %d chunks", len(chunks))
	}

	pages := []extract.Page{{Number: 1, Text: "   \n  "}}
	if chunks := New(100, 20).ChunkPages("d", "d.pdf", pages); chunks != nil {
		t.Errorf("expected nil for whitespace-only text, got %d chunks", len(chunks))
	}
}

func TestChunkPages_NoEmptyChunks(t *testing.T) {
	pages := []extract.Page{
		{Number: 1, Text: strings.Repeat("Lorem ipsum dolor sit amet. ", 50)},
	}

	chunks := New(120, 30).ChunkPages("d", "d.pdf", pages)
	for i, c := range chunks {
		if strings.TrimSpace(c.Text) == "" {
			t.Errorf("chunk %d is empty", i)
		}
	}
}
