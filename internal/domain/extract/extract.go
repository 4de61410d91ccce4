// Package extract normalizes uploaded statement files into a single text
// blob. Each supported format has its own adapter; all of the hard work of
// recovering structure from that text happens downstream in the statement
// parser.
package extract

import (
	"context"
	"io"
	"log/slog"
)

// Format tags the declared type of an uploaded document.
type Format string

const (
	FormatPDF         Format = "pdf"
	FormatImage       Format = "image"
	FormatDoc         Format = "doc"
	FormatSpreadsheet Format = "spreadsheet"
	FormatPlain       Format = "plain"
)

// Extractor converts byte streams into text. Extraction failures are not
// errors from the pipeline's point of view: the caller gets empty text and
// the parser simply finds no transactions.
type Extractor struct {
	logger       *slog.Logger
	tesseractBin string
}

// NewExtractor creates an extractor. tesseractBin is the OCR binary used for
// image statements ("tesseract" when empty).
func NewExtractor(logger *slog.Logger, tesseractBin string) *Extractor {
	if tesseractBin == "" {
		tesseractBin = "tesseract"
	}
	return &Extractor{logger: logger, tesseractBin: tesseractBin}
}

// Text extracts the text content of r according to the declared format.
// Failures are logged and yield an empty string, never an error.
func (e *Extractor) Text(ctx context.Context, r io.Reader, format Format) string {
	var (
		text string
		err  error
	)

	switch format {
	case FormatPDF:
		text, err = e.pdfText(r)
	case FormatImage:
		text, err = e.imageText(ctx, r)
	case FormatDoc:
		text, err = e.docText(r)
	case FormatSpreadsheet:
		text, err = e.spreadsheetText(r)
	case FormatPlain:
		var data []byte
		data, err = io.ReadAll(r)
		text = string(data)
	default:
		e.logger.Warn("unknown document format", "format", string(format))
		return ""
	}

	if err != nil {
		e.logger.Warn("text extraction failed", "format", string(format), "error", err)
		return ""
	}
	return text
}
