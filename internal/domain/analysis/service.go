// Package analysis orchestrates the statement pipeline: extract text,
// parse transactions, classify, aggregate and render both reports. Each
// invocation works on its own in-memory transaction set; nothing is shared
// between requests except the output directory.
package analysis

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/convector/statement-analyzer/internal/domain/aggregate"
	"github.com/convector/statement-analyzer/internal/domain/categorization"
	"github.com/convector/statement-analyzer/internal/domain/extract"
	"github.com/convector/statement-analyzer/internal/domain/report"
	"github.com/convector/statement-analyzer/internal/domain/statement"
	"github.com/convector/statement-analyzer/pkg/config"
)

// Record is what the persistence layer stores about one finished analysis.
type Record struct {
	UserID         string
	Name           string
	BankName       string
	CustomerNumber string
	FileName       string
	ExcelPath      string
	PDFPath        string
}

// Sink receives finished analysis records. Implementations live outside this
// core; a failed save is surfaced to the caller and never retried here.
type Sink interface {
	SaveAnalysis(ctx context.Context, record Record) error
}

// Result is the outcome of processing one document.
type Result struct {
	ExcelPath    string
	PDFPath      string
	Transactions int
	Categories   map[string][]statement.Transaction
	Summary      aggregate.Summary
	// SinkErr carries a persistence failure when a Sink is configured. The
	// reports are complete and usable even when it is non-nil.
	SinkErr error
}

// Service runs the document-processing pipeline.
type Service struct {
	cfg        *config.Config
	extractor  *extract.Extractor
	classifier *categorization.Classifier
	excel      *report.ExcelRenderer
	pdf        *report.PDFRenderer
	sink       Sink
	logger     *slog.Logger
}

// NewService wires the pipeline from configuration.
func NewService(cfg *config.Config, logger *slog.Logger) *Service {
	return &Service{
		cfg:        cfg,
		extractor:  extract.NewExtractor(logger, cfg.OCR.TesseractBin),
		classifier: categorization.NewClassifier(),
		excel:      report.NewExcelRenderer(logger, cfg.Report.CompanyName, cfg.Report.Tagline, cfg.Report.LogoPath),
		pdf:        report.NewPDFRenderer(logger, cfg.Report.CompanyName),
		sink:       nil,
		logger:     logger,
	}
}

// WithSink adds a persistence sink for finished analyses.
func (s *Service) WithSink(sink Sink) *Service {
	s.sink = sink
	return s
}

// Process runs the full pipeline on one document and writes both reports
// under the configured output directory. A document that yields no
// transactions still produces complete (all-zero) reports; the caller
// decides whether to surface that as "no transactions found".
func (s *Service) Process(ctx context.Context, r io.Reader, format extract.Format, record Record) (*Result, error) {
	text := s.extractor.Text(ctx, r, format)

	categories := s.ParseAndCategorize(text)

	count := 0
	for _, txs := range categories {
		count += len(txs)
	}
	s.logger.Info("statement parsed",
		"file", record.FileName,
		"format", string(format),
		"transactions", count,
	)

	if err := os.MkdirAll(s.cfg.Output.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output dir: %w", err)
	}

	// Timestamp plus a random suffix keeps concurrent requests from ever
	// sharing an output path.
	stem := fmt.Sprintf("report_%s_%s", time.Now().Format("20060102_150405"), uuid.NewString()[:8])
	excelPath := filepath.Join(s.cfg.Output.Dir, stem+".xlsx")
	pdfPath := filepath.Join(s.cfg.Output.Dir, stem+".pdf")

	result := &Result{
		ExcelPath:    excelPath,
		PDFPath:      pdfPath,
		Transactions: count,
		Categories:   categories,
	}

	summary, err := s.RenderReports(categories, excelPath, pdfPath)
	if err != nil {
		return nil, err
	}
	result.Summary = summary

	if s.sink != nil {
		record.ExcelPath = excelPath
		record.PDFPath = pdfPath
		if err := s.sink.SaveAnalysis(ctx, record); err != nil {
			s.logger.Error("failed to persist analysis", "file", record.FileName, "error", err)
			result.SinkErr = err
		}
	}

	return result, nil
}

// ParseAndCategorize extracts transactions from statement text and partitions
// them into the fixed category set. Deterministic: the same text always
// yields the same mapping.
func (s *Service) ParseAndCategorize(text string) map[string][]statement.Transaction {
	return s.classifier.Classify(statement.Parse(text))
}

// RenderReports writes the workbook and the PDF statement for an existing
// category mapping and returns the totals both were rendered from.
func (s *Service) RenderReports(categories map[string][]statement.Transaction, excelPath, pdfPath string) (aggregate.Summary, error) {
	summary := aggregate.Compute(categories)

	if err := s.excel.WriteWorkbook(excelPath, categories, summary); err != nil {
		return summary, fmt.Errorf("failed to render workbook: %w", err)
	}
	if err := s.pdf.WriteStatement(pdfPath, categories, summary, report.AccountInfo{}); err != nil {
		return summary, fmt.Errorf("failed to render PDF statement: %w", err)
	}
	return summary, nil
}
