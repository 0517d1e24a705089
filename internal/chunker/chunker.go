// ABOUTME: Splits extracted page text into overlapping fixed-size chunks
// ABOUTME: Prefers paragraph/sentence/space boundaries over mid-word cuts
package chunker

import (
	"sort"
	"strings"

	"github.com/docstack/docstack/internal/extract"
	"github.com/docstack/docstack/internal/models"
)

// Separators tried in descending order when looking for a cut point
// inside the window.
var separators = []string{"\n\n", "\n", ". ", " "}

// Chunker produces deterministic overlapping chunks. Identical input and
// configuration always yield identical chunk boundaries.
type Chunker struct {
	size    int
	overlap int
}

// New creates a Chunker. Out-of-range values fall back to the usual
// 1000/200 configuration.
func New(size, overlap int) *Chunker {
	if size <= 0 {
		size = 1000
	}
	if overlap < 0 || overlap >= size {
		overlap = size / 5
	}
	return &Chunker{size: size, overlap: overlap}
}

// ChunkPages concatenates the page texts of one document (retaining a
// page-boundary map) and slides a window of size chars, advancing by
// size-overlap. Each chunk is a contiguous substring of the joined text;
// a chunk's page is the page holding its first character. A tail shorter
// than the overlap is merged into the previous chunk.
func (c *Chunker) ChunkPages(docID, docName string, pages []extract.Page) []models.Chunk {
	var b strings.Builder
	pageStarts := make([]int, 0, len(pages))
	pageNums := make([]int, 0, len(pages))

	for i, p := range pages {
		if i > 0 {
			b.WriteString("\n")
		}
		pageStarts = append(pageStarts, b.Len())
		pageNums = append(pageNums, p.Number)
		b.WriteString(p.Text)
	}

	text := b.String()
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var chunks []models.Chunk
	emit := func(start, end int) {
		seq := len(chunks)
		chunks = append(chunks, models.Chunk{
			ChunkID: models.ChunkID(docID, seq),
			DocID:   docID,
			DocName: docName,
			Page:    pageAt(pageStarts, pageNums, start),
			Seq:     seq,
			Text:    text[start:end],
		})
	}

	start := 0
	for {
		end := start + c.size
		if end >= len(text) {
			emit(start, len(text))
			break
		}

		end = c.splitPoint(text, start, end)

		// Tail merge: the next step would only contribute fewer than
		// overlap new characters, so fold them into this chunk.
		if len(text)-end < c.overlap {
			emit(start, len(text))
			break
		}

		emit(start, end)

		next := end - c.overlap
		if next <= start {
			next = end
		}
		start = next
	}

	return chunks
}

// splitPoint returns the cut offset for the window [start, end), preferring
// the last separator occurrence in descending priority. The separator stays
// with the left chunk so chunks remain contiguous slices of the text. A cut
// inside the leading overlap region would contribute no new content, so
// those candidates are skipped.
func (c *Chunker) splitPoint(text string, start, end int) int {
	window := text[start:end]
	for _, sep := range separators {
		idx := strings.LastIndex(window, sep)
		if idx <= 0 {
			continue
		}
		if idx+len(sep) <= c.overlap {
			continue
		}
		return start + idx + len(sep)
	}
	return end
}

// pageAt finds the page whose span contains the given offset.
func pageAt(starts, nums []int, offset int) int {
	i := sort.Search(len(starts), func(j int) bool { return starts[j] > offset })
	if i == 0 {
		return nums[0]
	}
	return nums[i-1]
}
