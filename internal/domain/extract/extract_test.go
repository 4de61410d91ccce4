package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestText_Plain(t *testing.T) {
	e := NewExtractor(slog.Default(), "")

	t.Run("passes plain text through unchanged", func(t *testing.T) {
		in := "01/15/2024\nSalary Deposit\nCredit\n5000.00\n5000.00"
		got := e.Text(context.Background(), strings.NewReader(in), FormatPlain)
		assert.Equal(t, in, got)
	})

	t.Run("empty input yields empty text", func(t *testing.T) {
		got := e.Text(context.Background(), strings.NewReader(""), FormatPlain)
		assert.Empty(t, got)
	})
}

func TestText_Spreadsheet(t *testing.T) {
	e := NewExtractor(slog.Default(), "")

	t.Run("flattens rows into tab-separated lines", func(t *testing.T) {
		f := excelize.NewFile()
		require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"01/15/2024", "Salary Deposit", "5000.00"}))
		require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{"01/16/2024", "ATM Withdrawal", "200.00"}))

		var buf bytes.Buffer
		require.NoError(t, f.Write(&buf))
		require.NoError(t, f.Close())

		got := e.Text(context.Background(), &buf, FormatSpreadsheet)
		assert.Contains(t, got, "01/15/2024\tSalary Deposit\t5000.00")
		assert.Contains(t, got, "01/16/2024\tATM Withdrawal\t200.00")
	})

	t.Run("corrupt workbook yields empty text", func(t *testing.T) {
		got := e.Text(context.Background(), strings.NewReader("not a workbook"), FormatSpreadsheet)
		assert.Empty(t, got)
	})
}

func TestText_Failures(t *testing.T) {
	e := NewExtractor(slog.Default(), "")

	t.Run("unknown format yields empty text", func(t *testing.T) {
		got := e.Text(context.Background(), strings.NewReader("anything"), Format("unknown"))
		assert.Empty(t, got)
	})

	t.Run("corrupt pdf yields empty text", func(t *testing.T) {
		got := e.Text(context.Background(), strings.NewReader("not a pdf"), FormatPDF)
		assert.Empty(t, got)
	})

	t.Run("corrupt docx yields empty text", func(t *testing.T) {
		got := e.Text(context.Background(), strings.NewReader("not a zip"), FormatDoc)
		assert.Empty(t, got)
	})

	t.Run("missing ocr binary yields empty text", func(t *testing.T) {
		e := NewExtractor(slog.Default(), "definitely-not-a-real-binary")
		got := e.Text(context.Background(), strings.NewReader("image bytes"), FormatImage)
		assert.Empty(t, got)
	})
}

func TestDocText(t *testing.T) {
	e := NewExtractor(slog.Default(), "")

	t.Run("reads paragraphs from a docx archive", func(t *testing.T) {
		doc := `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>01/15/2024</w:t></w:r></w:p>
    <w:p><w:r><w:t>Salary Deposit</w:t></w:r></w:p>
  </w:body>
</w:document>`

		var buf bytes.Buffer
		require.NoError(t, newZipWithFile(&buf, "word/document.xml", doc))

		got, err := e.docText(&buf)
		require.NoError(t, err)
		assert.Contains(t, got, "01/15/2024\n")
		assert.Contains(t, got, "Salary Deposit\n")
	})

	t.Run("archive without a document body is an error", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, newZipWithFile(&buf, "word/other.xml", "<x/>"))

		_, err := e.docText(&buf)
		assert.Error(t, err)
	})
}

func newZipWithFile(buf *bytes.Buffer, name, content string) error {
	zw := zip.NewWriter(buf)
	w, err := zw.Create(name)
	if err != nil {
		return err
	}
	if _, err := w.Write([]byte(content)); err != nil {
		return err
	}
	return zw.Close()
}
