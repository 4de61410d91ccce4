// Package report renders categorized transactions into the two deliverable
// formats: a multi-sheet Excel workbook and a paginated PDF statement. Both
// are pure views over the classifier and aggregator output; styling, charts
// and logo embedding are decoration and never fail a report.
package report

import (
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/convector/statement-analyzer/internal/domain/aggregate"
	"github.com/convector/statement-analyzer/internal/domain/categorization"
	"github.com/convector/statement-analyzer/internal/domain/statement"
)

const (
	summarySheet   = "Detailed Summary"
	cashflowSheet  = "Cashflow Summary"
	monthlySheet   = "Monthly Average Balance"
	dailySheet     = "Daily Average Balance"
	chartDataSheet = "Chart Data"

	headerFillColor = "366092"
	captionColor    = "800080"
)

var transactionHeader = []any{"date", "description", "amount", "type", "balance"}

// ExcelRenderer writes the tabular analysis workbook.
type ExcelRenderer struct {
	logger      *slog.Logger
	companyName string
	tagline     string
	logoPath    string
}

// NewExcelRenderer creates a workbook renderer. logoPath may be empty; the
// logo block is then skipped.
func NewExcelRenderer(logger *slog.Logger, companyName, tagline, logoPath string) *ExcelRenderer {
	return &ExcelRenderer{
		logger:      logger,
		companyName: companyName,
		tagline:     tagline,
		logoPath:    logoPath,
	}
}

// WriteWorkbook renders the full workbook to path: the detailed summary, one
// sheet per category (empty categories included), the cashflow breakdown,
// the synthetic balance series, chart data and per-category detail sheets.
func (r *ExcelRenderer) WriteWorkbook(path string, categories map[string][]statement.Transaction, summary aggregate.Summary) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := r.writeSummarySheet(f, summary); err != nil {
		return err
	}

	for _, category := range categorization.Categories {
		if err := r.writeCategorySheet(f, SanitizeSheetName(category), categories[category]); err != nil {
			return err
		}
	}

	if err := r.writeCashflowSheet(f, summary); err != nil {
		return err
	}
	r.writeBalanceSeries(f, summary)
	r.writeChartData(f, summary)

	for _, category := range categorization.Categories {
		name := SanitizeSheetName(SanitizeSheetName(category) + " Details")
		if err := r.writeCategorySheet(f, name, categories[category]); err != nil {
			return err
		}
	}

	r.decorate(f)

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

// writeSummarySheet renames the default sheet to the summary and fills the
// 19 category rows plus the TOTAL row.
func (r *ExcelRenderer) writeSummarySheet(f *excelize.File, summary aggregate.Summary) error {
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}

	header := []any{"Category", "Transaction Count", "Total Amount", "Credit Amount", "Debit Amount", "Net Amount"}
	if err := f.SetSheetRow(summarySheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write summary header: %w", err)
	}

	row := 2
	for _, category := range categorization.Categories {
		totals := summary.ByCategory[category]
		if err := r.writeTotalsRow(f, row, category, totals); err != nil {
			return err
		}
		row++
	}
	return r.writeTotalsRow(f, row, "TOTAL", summary.Grand)
}

func (r *ExcelRenderer) writeTotalsRow(f *excelize.File, row int, label string, totals aggregate.Totals) error {
	values := []any{
		label,
		totals.Count,
		round2(totals.Total),
		round2(totals.Credit),
		round2(totals.Debit),
		round2(totals.Net),
	}
	cell := fmt.Sprintf("A%d", row)
	if err := f.SetSheetRow(summarySheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write summary row %q: %w", label, err)
	}
	return nil
}

// writeCategorySheet creates one sheet listing a category's transactions.
// Empty categories still get their sheet with the fixed header row.
func (r *ExcelRenderer) writeCategorySheet(f *excelize.File, name string, txs []statement.Transaction) error {
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("failed to create sheet %q: %w", name, err)
	}
	if err := f.SetSheetRow(name, "A1", &transactionHeader); err != nil {
		return fmt.Errorf("failed to write header for %q: %w", name, err)
	}

	for i, tx := range txs {
		values := []any{tx.Date, tx.Description, round2(tx.Amount), tx.Type, round2(tx.Balance)}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(name, cell, &values); err != nil {
			return fmt.Errorf("failed to write transaction row in %q: %w", name, err)
		}
	}

	r.autosizeColumns(f, name, txs)
	return nil
}

// writeCashflowSheet lists the credit/debit breakdown for every category.
func (r *ExcelRenderer) writeCashflowSheet(f *excelize.File, summary aggregate.Summary) error {
	if _, err := f.NewSheet(cashflowSheet); err != nil {
		return fmt.Errorf("failed to create cashflow sheet: %w", err)
	}

	header := []any{"Category", "Credit", "Debit"}
	if err := f.SetSheetRow(cashflowSheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write cashflow header: %w", err)
	}

	for i, category := range categorization.Categories {
		totals := summary.ByCategory[category]
		values := []any{category, round2(totals.Credit), round2(totals.Debit)}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(cashflowSheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write cashflow row: %w", err)
		}
	}
	return nil
}

// writeBalanceSeries emits the monthly and daily "average balance" sheets.
// These are synthetic decorative series derived from net cashflow through a
// fixed smoothing curve; they are NOT computed from transaction dates and
// must not be read as a real ledger or a forecast.
func (r *ExcelRenderer) writeBalanceSeries(f *excelize.File, summary aggregate.Summary) {
	net := summary.Grand.Credit.Sub(summary.Grand.Debit).InexactFloat64()

	months := []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}
	r.decorateStep("monthly balance series", func() error {
		if _, err := f.NewSheet(monthlySheet); err != nil {
			return err
		}
		header := []any{"Month", "Average Balance"}
		if err := f.SetSheetRow(monthlySheet, "A1", &header); err != nil {
			return err
		}
		balance := 10000.0
		for i, month := range months {
			variation := 0.8 + 0.4*float64(i%6)/6
			balance += net * variation / 12
			values := []any{month, math.Max(0, roundFloat2(balance))}
			if err := f.SetSheetRow(monthlySheet, fmt.Sprintf("A%d", i+2), &values); err != nil {
				return err
			}
		}
		return nil
	})

	r.decorateStep("daily balance series", func() error {
		if _, err := f.NewSheet(dailySheet); err != nil {
			return err
		}
		header := []any{"Day", "Average Balance"}
		if err := f.SetSheetRow(dailySheet, "A1", &header); err != nil {
			return err
		}
		balance := 10000.0
		for i := 0; i < 30; i++ {
			variation := 0.9 + 0.2*float64(i%10)/10
			balance += net / 30 * variation
			values := []any{fmt.Sprintf("Day %d", i+1), math.Max(0, roundFloat2(balance))}
			if err := f.SetSheetRow(dailySheet, fmt.Sprintf("A%d", i+2), &values); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeChartData flattens non-zero credit/debit figures into the label/value
// layout the workbook charts read from.
func (r *ExcelRenderer) writeChartData(f *excelize.File, summary aggregate.Summary) {
	r.decorateStep("chart data", func() error {
		if _, err := f.NewSheet(chartDataSheet); err != nil {
			return err
		}
		header := []any{"Type", "Amount"}
		if err := f.SetSheetRow(chartDataSheet, "A1", &header); err != nil {
			return err
		}

		row := 2
		for _, category := range categorization.Categories {
			totals := summary.ByCategory[category]
			if totals.Credit.IsPositive() {
				values := []any{category + " (Credit)", round2(totals.Credit)}
				if err := f.SetSheetRow(chartDataSheet, fmt.Sprintf("A%d", row), &values); err != nil {
					return err
				}
				row++
			}
			if totals.Debit.IsPositive() {
				values := []any{category + " (Debit)", round2(totals.Debit)}
				if err := f.SetSheetRow(chartDataSheet, fmt.Sprintf("A%d", row), &values); err != nil {
					return err
				}
				row++
			}
		}
		return nil
	})
}

// decorate applies all cosmetic touches: header styling, negative
// highlighting, charts and the logo block. Every step is best-effort.
func (r *ExcelRenderer) decorate(f *excelize.File) {
	r.decorateStep("header styling", func() error { return r.styleHeaders(f) })
	r.decorateStep("negative highlighting", func() error { return r.highlightNegatives(f) })
	r.decorateStep("charts", func() error { return r.addCharts(f) })
	if r.logoPath != "" {
		r.decorateStep("logo", func() error { return r.addLogoBlock(f) })
	}
}

func (r *ExcelRenderer) styleHeaders(f *excelize.File) error {
	style, err := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{headerFillColor}, Pattern: 1},
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return err
	}

	for _, sheet := range f.GetSheetList() {
		cols, err := f.GetCols(sheet)
		if err != nil || len(cols) == 0 {
			continue
		}
		last, err := excelize.ColumnNumberToName(len(cols))
		if err != nil {
			continue
		}
		if err := f.SetCellStyle(sheet, "A1", last+"1", style); err != nil {
			return err
		}
	}
	return nil
}

// highlightNegatives paints negative numbers in the summary red.
func (r *ExcelRenderer) highlightNegatives(f *excelize.File) error {
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Color: "FF0000"}})
	if err != nil {
		return err
	}

	rows, err := f.GetRows(summarySheet)
	if err != nil {
		return err
	}
	for i, row := range rows {
		if i == 0 {
			continue
		}
		for j, value := range row {
			if !strings.HasPrefix(value, "-") {
				continue
			}
			col, err := excelize.ColumnNumberToName(j + 1)
			if err != nil {
				continue
			}
			cell := fmt.Sprintf("%s%d", col, i+1)
			if err := f.SetCellStyle(summarySheet, cell, cell, style); err != nil {
				return err
			}
		}
	}
	return nil
}

// addCharts places the cashflow pie and bar charts and the two balance
// trend area charts.
func (r *ExcelRenderer) addCharts(f *excelize.File) error {
	cashflowRows := len(categorization.Categories) + 1

	pie := &excelize.Chart{
		Type:  excelize.Pie,
		Title: []excelize.RichTextRun{{Text: "Cashflow Summary by Category"}},
		Series: []excelize.ChartSeries{{
			Name:       fmt.Sprintf("'%s'!$B$1", cashflowSheet),
			Categories: fmt.Sprintf("'%s'!$A$2:$A$%d", cashflowSheet, cashflowRows),
			Values:     fmt.Sprintf("'%s'!$B$2:$B$%d", cashflowSheet, cashflowRows),
		}},
	}
	if err := f.AddChart(cashflowSheet, "F2", pie); err != nil {
		return err
	}

	bar := &excelize.Chart{
		Type:  excelize.Col,
		Title: []excelize.RichTextRun{{Text: "Credits vs Debits by Category"}},
		Series: []excelize.ChartSeries{
			{
				Name:       fmt.Sprintf("'%s'!$B$1", cashflowSheet),
				Categories: fmt.Sprintf("'%s'!$A$2:$A$%d", cashflowSheet, cashflowRows),
				Values:     fmt.Sprintf("'%s'!$B$2:$B$%d", cashflowSheet, cashflowRows),
			},
			{
				Name:       fmt.Sprintf("'%s'!$C$1", cashflowSheet),
				Categories: fmt.Sprintf("'%s'!$A$2:$A$%d", cashflowSheet, cashflowRows),
				Values:     fmt.Sprintf("'%s'!$C$2:$C$%d", cashflowSheet, cashflowRows),
			},
		},
	}
	if err := f.AddChart(cashflowSheet, "F15", bar); err != nil {
		return err
	}

	monthly := &excelize.Chart{
		Type:  excelize.Area,
		Title: []excelize.RichTextRun{{Text: "Monthly Average Balance Trend"}},
		Series: []excelize.ChartSeries{{
			Name:       fmt.Sprintf("'%s'!$B$1", monthlySheet),
			Categories: fmt.Sprintf("'%s'!$A$2:$A$13", monthlySheet),
			Values:     fmt.Sprintf("'%s'!$B$2:$B$13", monthlySheet),
		}},
	}
	if err := f.AddChart(monthlySheet, "D2", monthly); err != nil {
		return err
	}

	daily := &excelize.Chart{
		Type:  excelize.Area,
		Title: []excelize.RichTextRun{{Text: "Daily Average Balance Trend"}},
		Series: []excelize.ChartSeries{{
			Name:       fmt.Sprintf("'%s'!$B$1", dailySheet),
			Categories: fmt.Sprintf("'%s'!$A$2:$A$31", dailySheet),
			Values:     fmt.Sprintf("'%s'!$B$2:$B$31", dailySheet),
		}},
	}
	return f.AddChart(dailySheet, "D2", daily)
}

// addLogoBlock embeds the company logo and captions in the summary sheet.
func (r *ExcelRenderer) addLogoBlock(f *excelize.File) error {
	opts := &excelize.GraphicOptions{ScaleX: 0.5, ScaleY: 0.5}
	if err := f.AddPicture(summarySheet, "N1", r.logoPath, opts); err != nil {
		return err
	}

	captionStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 10, Color: captionColor},
		Alignment: &excelize.Alignment{Horizontal: "left"},
	})
	if err != nil {
		return err
	}
	if err := f.SetCellValue(summarySheet, "O1", r.companyName); err != nil {
		return err
	}
	if err := f.SetCellValue(summarySheet, "O2", r.tagline); err != nil {
		return err
	}
	return f.SetCellStyle(summarySheet, "O1", "O2", captionStyle)
}

// autosizeColumns widens columns to fit content, capped at 50 characters.
func (r *ExcelRenderer) autosizeColumns(f *excelize.File, sheet string, txs []statement.Transaction) {
	r.decorateStep("column sizing", func() error {
		widths := make([]int, len(transactionHeader))
		for i, h := range transactionHeader {
			widths[i] = len(fmt.Sprint(h))
		}
		for _, tx := range txs {
			cells := []string{tx.Date, tx.Description, tx.Amount.StringFixed(2), tx.Type, tx.Balance.StringFixed(2)}
			for i, cell := range cells {
				if len(cell) > widths[i] {
					widths[i] = len(cell)
				}
			}
		}
		for i, width := range widths {
			col, err := excelize.ColumnNumberToName(i + 1)
			if err != nil {
				return err
			}
			if err := f.SetColWidth(sheet, col, col, math.Min(float64(width+2), 50)); err != nil {
				return err
			}
		}
		return nil
	})
}

// decorateStep absorbs decoration errors. Reports ship without cosmetics
// rather than failing.
func (r *ExcelRenderer) decorateStep(step string, fn func() error) {
	if err := fn(); err != nil {
		r.logger.Warn("report decoration skipped", "step", step, "error", err)
	}
}

func round2(d interface{ InexactFloat64() float64 }) float64 {
	return roundFloat2(d.InexactFloat64())
}

func roundFloat2(v float64) float64 {
	return math.Round(v*100) / 100
}
