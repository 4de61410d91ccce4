package report

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"

	"github.com/convector/statement-analyzer/internal/domain/aggregate"
	"github.com/convector/statement-analyzer/internal/domain/categorization"
	"github.com/convector/statement-analyzer/internal/domain/statement"
)

// AccountInfo is the header block of the PDF statement. Zero-value fields
// fall back to neutral placeholders.
type AccountInfo struct {
	BankName        string
	AccountNumber   string
	AccountHolder   string
	StatementPeriod string
	OpeningBalance  string
	ClosingBalance  string
}

// PDFRenderer writes the paginated statement document.
type PDFRenderer struct {
	logger      *slog.Logger
	companyName string
}

// NewPDFRenderer creates a statement renderer. companyName appears in the
// document header when AccountInfo carries no bank name.
func NewPDFRenderer(logger *slog.Logger, companyName string) *PDFRenderer {
	return &PDFRenderer{logger: logger, companyName: companyName}
}

// WriteStatement renders the document to path: header and account block, a
// summary table over the non-empty categories plus TOTAL, then one section
// per non-empty category with its transactions in ascending date order.
func (r *PDFRenderer) WriteStatement(path string, categories map[string][]statement.Transaction, summary aggregate.Summary, account AccountInfo) error {
	r.applyDefaults(&account)

	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetAutoPageBreak(true, 18)
	doc.AddPage()

	r.writeHeader(doc, account)
	r.writeAccountBlock(doc, account)
	r.writeSummaryTable(doc, summary)

	for _, category := range categorization.Categories {
		txs := categories[category]
		if len(txs) == 0 {
			continue
		}
		r.writeCategorySection(doc, category, txs)
	}

	r.writeFooter(doc)

	if err := doc.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("failed to write PDF statement: %w", err)
	}
	return nil
}

func (r *PDFRenderer) applyDefaults(account *AccountInfo) {
	if account.BankName == "" {
		account.BankName = r.companyName
	}
	if account.AccountNumber == "" {
		account.AccountNumber = "**** **** **** 0000"
	}
	if account.AccountHolder == "" {
		account.AccountHolder = "Client Account"
	}
	if account.StatementPeriod == "" {
		account.StatementPeriod = time.Now().Format("January 2006")
	}
	if account.OpeningBalance == "" {
		account.OpeningBalance = "$0.00"
	}
	if account.ClosingBalance == "" {
		account.ClosingBalance = "$0.00"
	}
}

func (r *PDFRenderer) writeHeader(doc *fpdf.Fpdf, account AccountInfo) {
	doc.SetFont("Helvetica", "B", 20)
	doc.SetTextColor(0, 0, 139)
	doc.CellFormat(0, 10, account.BankName, "", 1, "C", false, 0, "")

	doc.SetFont("Helvetica", "", 14)
	doc.SetTextColor(128, 128, 128)
	doc.CellFormat(0, 8, "Bank Statement", "", 1, "C", false, 0, "")
	doc.Ln(6)
}

func (r *PDFRenderer) writeAccountBlock(doc *fpdf.Fpdf, account AccountInfo) {
	rows := [][2]string{
		{"Account Number:", account.AccountNumber},
		{"Account Holder:", account.AccountHolder},
		{"Statement Period:", account.StatementPeriod},
		{"Opening Balance:", account.OpeningBalance},
		{"Closing Balance:", account.ClosingBalance},
		{"Generated On:", time.Now().Format("01/02/2006 15:04:05")},
	}

	doc.SetTextColor(0, 0, 0)
	for _, row := range rows {
		doc.SetFont("Helvetica", "B", 10)
		doc.CellFormat(46, 6, row[0], "", 0, "L", false, 0, "")
		doc.SetFont("Helvetica", "", 10)
		doc.CellFormat(0, 6, row[1], "", 1, "L", false, 0, "")
	}
	doc.Ln(8)
}

func (r *PDFRenderer) writeSummaryTable(doc *fpdf.Fpdf, summary aggregate.Summary) {
	doc.SetFont("Helvetica", "B", 14)
	doc.SetTextColor(0, 0, 0)
	doc.CellFormat(0, 8, "Transaction Summary", "", 1, "L", false, 0, "")
	doc.Ln(2)

	widths := []float64{44, 20, 32, 32, 32}
	header := []string{"Category", "Count", "Credits", "Debits", "Net"}

	doc.SetFont("Helvetica", "B", 10)
	doc.SetFillColor(0, 0, 139)
	doc.SetTextColor(255, 255, 255)
	for i, h := range header {
		doc.CellFormat(widths[i], 8, h, "1", 0, "C", true, 0, "")
	}
	doc.Ln(-1)

	doc.SetFont("Helvetica", "", 9)
	doc.SetTextColor(0, 0, 0)
	doc.SetFillColor(211, 211, 211)
	for _, category := range categorization.Categories {
		totals := summary.ByCategory[category]
		if totals.Count == 0 {
			continue
		}
		r.summaryRow(doc, widths, category, totals, true)
	}

	doc.SetFont("Helvetica", "B", 9)
	doc.SetFillColor(0, 0, 139)
	doc.SetTextColor(255, 255, 255)
	r.summaryRow(doc, widths, "TOTAL", summary.Grand, true)

	doc.SetTextColor(0, 0, 0)
	doc.Ln(10)
}

func (r *PDFRenderer) summaryRow(doc *fpdf.Fpdf, widths []float64, label string, totals aggregate.Totals, fill bool) {
	doc.CellFormat(widths[0], 7, label, "1", 0, "C", fill, 0, "")
	doc.CellFormat(widths[1], 7, fmt.Sprintf("%d", totals.Count), "1", 0, "C", fill, 0, "")
	doc.CellFormat(widths[2], 7, formatUSD(totals.Credit), "1", 0, "R", fill, 0, "")
	doc.CellFormat(widths[3], 7, "("+formatUSD(totals.Debit)+")", "1", 0, "R", fill, 0, "")
	doc.CellFormat(widths[4], 7, formatUSD(totals.Net), "1", 1, "R", fill, 0, "")
}

func (r *PDFRenderer) writeCategorySection(doc *fpdf.Fpdf, category string, txs []statement.Transaction) {
	doc.SetFont("Helvetica", "B", 14)
	doc.SetTextColor(0, 0, 0)
	doc.CellFormat(0, 8, category+" Transactions", "", 1, "L", false, 0, "")
	doc.Ln(2)

	widths := []float64{22, 62, 18, 29, 29}
	header := []string{"Date", "Description", "Type", "Amount", "Balance"}

	doc.SetFont("Helvetica", "B", 9)
	doc.SetFillColor(0, 0, 139)
	doc.SetTextColor(255, 255, 255)
	for i, h := range header {
		doc.CellFormat(widths[i], 7, h, "1", 0, "C", true, 0, "")
	}
	doc.Ln(-1)

	doc.SetFont("Helvetica", "", 8)
	doc.SetTextColor(0, 0, 0)
	for _, tx := range sortByDate(txs) {
		amount := formatUSD(tx.Amount)
		if tx.Type != statement.TypeCredit {
			amount = "(" + amount + ")"
		}

		doc.CellFormat(widths[0], 6, tx.Date, "1", 0, "C", false, 0, "")
		doc.CellFormat(widths[1], 6, truncate(tx.Description, 30), "1", 0, "L", false, 0, "")
		doc.CellFormat(widths[2], 6, tx.Type, "1", 0, "C", false, 0, "")
		doc.CellFormat(widths[3], 6, amount, "1", 0, "R", false, 0, "")
		doc.CellFormat(widths[4], 6, formatUSD(tx.Balance), "1", 1, "R", false, 0, "")
	}
	doc.Ln(8)
}

func (r *PDFRenderer) writeFooter(doc *fpdf.Fpdf) {
	doc.Ln(6)
	doc.SetFont("Helvetica", "", 8)
	doc.SetTextColor(128, 128, 128)
	footer := fmt.Sprintf("Confidential - Generated by %s | %s",
		r.companyName, time.Now().Format("2006-01-02 15:04:05"))
	doc.CellFormat(0, 5, footer, "", 1, "C", false, 0, "")
}

// sortByDate orders transactions ascending by date read as month/day/year.
// Dates in other layouts keep their relative input order at the front.
func sortByDate(txs []statement.Transaction) []statement.Transaction {
	sorted := make([]statement.Transaction, len(txs))
	copy(sorted, txs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return parseDate(sorted[i].Date).Before(parseDate(sorted[j].Date))
	})
	return sorted
}

func parseDate(s string) time.Time {
	t, err := time.Parse("1/2/2006", s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func truncate(s string, max int) string {
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}

// formatUSD renders a magnitude as "$1,234.56".
func formatUSD(d decimal.Decimal) string {
	cents := d.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	return money.New(cents, money.USD).Display()
}
