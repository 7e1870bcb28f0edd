package pdftext

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"

	apperrors "careerai/internal/errors"
)

// Extractor pulls plain text out of PDFs page by page using
// github.com/ledongthuc/pdf. It holds no state and is safe to share.
type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractFile returns the text of every page of the PDF at path, each page
// followed by a newline. Any failure yields an extraction error and no text.
func (e *Extractor) ExtractFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", apperrors.NewExtraction(fmt.Sprintf("failed to open pdf %s", path), err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", apperrors.NewExtraction(fmt.Sprintf("failed to open pdf %s", path), err)
	}

	r, err := newReader(f, info.Size())
	if err != nil {
		return "", apperrors.NewExtraction(fmt.Sprintf("failed to read pdf %s", path), err)
	}

	return extractPages(r)
}

// ExtractBytes is ExtractFile for a PDF already held in memory.
func (e *Extractor) ExtractBytes(data []byte) (string, error) {
	if len(data) == 0 {
		return "", apperrors.NewExtraction("failed to read pdf: document is empty", nil)
	}

	r, err := newReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", apperrors.NewExtraction("failed to read pdf", err)
	}

	return extractPages(r)
}

// newReader wraps pdf.NewReader, which panics on a damaged xref or trailer.
func newReader(src io.ReaderAt, size int64) (r *pdf.Reader, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("malformed pdf: %v", p)
		}
	}()
	return pdf.NewReader(src, size)
}

func extractPages(r *pdf.Reader) (text string, err error) {
	page := 0

	// the parser panics on some malformed content streams
	defer func() {
		if p := recover(); p != nil {
			text = ""
			err = apperrors.NewExtraction(fmt.Sprintf("failed to extract text from page %d", page), fmt.Errorf("%v", p))
		}
	}()

	var sb strings.Builder
	total := r.NumPage()

	for page = 1; page <= total; page++ {
		p := r.Page(page)
		if p.V.IsNull() {
			sb.WriteString("\n")
			continue
		}

		pageText, err := p.GetPlainText(nil)
		if err != nil {
			return "", apperrors.NewExtraction(fmt.Sprintf("failed to extract text from page %d", page), err)
		}

		sb.WriteString(pageText)
		sb.WriteString("\n")
	}

	return sb.String(), nil
}
