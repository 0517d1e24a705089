// ABOUTME: PDF text extraction producing ordered per-page text
// ABOUTME: Distinguishes unreadable files from PDFs with no text layer
package extract

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrNoTextLayer marks a PDF that parsed cleanly but yielded zero
// extractable characters, e.g. a scanned image without a text layer.
// Callers can report "no extractable text" instead of "corrupt file".
var ErrNoTextLayer = errors.New("no extractable text")

// ExtractionError wraps any failure to turn a PDF into page text.
type ExtractionError struct {
	Name string
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extracting %s: %v", e.Name, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// Page is one page of extracted text. Numbers are 1-based.
type Page struct {
	Number int
	Text   string
}

// File extracts per-page text from a PDF on disk.
func File(path string) ([]Page, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ExtractionError{Name: path, Err: err}
	}
	return Bytes(data, path)
}

// Bytes extracts per-page text from PDF bytes. The name is used only for
// error reporting.
func Bytes(data []byte, name string) (pages []Page, err error) {
	// The parser panics on some malformed inputs; convert to an error so a
	// bad document cannot take down a batch.
	defer func() {
		if r := recover(); r != nil {
			pages = nil
			err = &ExtractionError{Name: name, Err: fmt.Errorf("malformed PDF: %v", r)}
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, &ExtractionError{Name: name, Err: err}
	}

	total := 0
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// A single unreadable page is not fatal; the rest of the
			// document may still carry text.
			continue
		}

		pages = append(pages, Page{Number: i, Text: text})
		total += len(strings.TrimSpace(text))
	}

	if total == 0 {
		return nil, &ExtractionError{Name: name, Err: ErrNoTextLayer}
	}

	return pages, nil
}
