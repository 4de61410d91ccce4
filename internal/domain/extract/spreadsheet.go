package extract

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// spreadsheetText flattens every sheet of an XLSX workbook into
// tab-separated lines so the downstream parser can pattern-match rows the
// same way it matches PDF text.
func (e *Extractor) spreadsheetText(r io.Reader) (string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return "", fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	defer f.Close()

	var sb strings.Builder
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			e.logger.Warn("failed to read sheet", "sheet", sheet, "error", err)
			continue
		}
		for _, row := range rows {
			sb.WriteString(strings.Join(row, "\t"))
			sb.WriteByte('\n')
		}
	}
	return sb.String(), nil
}
