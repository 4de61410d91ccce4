package analysis

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/convector/statement-analyzer/internal/domain/categorization"
	"github.com/convector/statement-analyzer/internal/domain/extract"
	"github.com/convector/statement-analyzer/pkg/config"
)

const sampleStatement = "01/15/2024\nSalary Deposit\nCredit\n5000.00\n5000.00\n" +
	"01/16/2024\nATM Withdrawal\nDebit\n200.00\n4800.00\n"

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Output: config.Output{Dir: t.TempDir()},
		Report: config.Report{
			CompanyName: "E-Faws Tech Pvt Limited",
			Tagline:     "Bank Statement Analyzer",
		},
	}
}

type recordingSink struct {
	records []Record
	err     error
}

func (s *recordingSink) SaveAnalysis(_ context.Context, record Record) error {
	s.records = append(s.records, record)
	return s.err
}

func TestProcess(t *testing.T) {
	t.Run("plain text end to end", func(t *testing.T) {
		svc := NewService(testConfig(t), slog.Default())

		result, err := svc.Process(context.Background(), strings.NewReader(sampleStatement), extract.FormatPlain, Record{FileName: "statement.txt"})
		require.NoError(t, err)

		assert.Equal(t, 2, result.Transactions)
		assert.Len(t, result.Categories["Deposits"], 1)
		assert.Len(t, result.Categories["ATM Withdrawals"], 1)
		assert.True(t, result.Summary.Grand.Credit.Equal(result.Summary.Grand.Debit.Add(result.Summary.Grand.Net)))

		for _, path := range []string{result.ExcelPath, result.PDFPath} {
			info, err := os.Stat(path)
			require.NoError(t, err, "missing report %s", path)
			assert.Positive(t, info.Size())
		}
		assert.NoError(t, result.SinkErr)
	})

	t.Run("empty document still produces both reports", func(t *testing.T) {
		svc := NewService(testConfig(t), slog.Default())

		result, err := svc.Process(context.Background(), strings.NewReader(""), extract.FormatPlain, Record{FileName: "empty.txt"})
		require.NoError(t, err)

		assert.Zero(t, result.Transactions)
		require.Len(t, result.Categories, len(categorization.Categories))

		_, err = os.Stat(result.ExcelPath)
		assert.NoError(t, err)
		_, err = os.Stat(result.PDFPath)
		assert.NoError(t, err)
	})

	t.Run("sink receives the report paths", func(t *testing.T) {
		sink := &recordingSink{}
		svc := NewService(testConfig(t), slog.Default()).WithSink(sink)

		result, err := svc.Process(context.Background(), strings.NewReader(sampleStatement), extract.FormatPlain, Record{
			UserID:   "user-1",
			FileName: "statement.txt",
		})
		require.NoError(t, err)

		require.Len(t, sink.records, 1)
		assert.Equal(t, "user-1", sink.records[0].UserID)
		assert.Equal(t, result.ExcelPath, sink.records[0].ExcelPath)
		assert.Equal(t, result.PDFPath, sink.records[0].PDFPath)
	})

	t.Run("sink failure does not fail the pipeline", func(t *testing.T) {
		sink := &recordingSink{err: errors.New("db down")}
		svc := NewService(testConfig(t), slog.Default()).WithSink(sink)

		result, err := svc.Process(context.Background(), strings.NewReader(sampleStatement), extract.FormatPlain, Record{FileName: "statement.txt"})
		require.NoError(t, err)

		assert.Error(t, result.SinkErr)
		_, statErr := os.Stat(result.ExcelPath)
		assert.NoError(t, statErr)
	})

	t.Run("distinct calls never share output paths", func(t *testing.T) {
		svc := NewService(testConfig(t), slog.Default())

		first, err := svc.Process(context.Background(), strings.NewReader(sampleStatement), extract.FormatPlain, Record{})
		require.NoError(t, err)
		second, err := svc.Process(context.Background(), strings.NewReader(sampleStatement), extract.FormatPlain, Record{})
		require.NoError(t, err)

		assert.NotEqual(t, first.ExcelPath, second.ExcelPath)
		assert.NotEqual(t, first.PDFPath, second.PDFPath)
	})
}

func TestParseAndCategorize(t *testing.T) {
	svc := NewService(testConfig(t), slog.Default())

	t.Run("partitions parsed transactions", func(t *testing.T) {
		categories := svc.ParseAndCategorize(sampleStatement)
		require.Len(t, categories, len(categorization.Categories))
		assert.Len(t, categories["Deposits"], 1)
		assert.Len(t, categories["ATM Withdrawals"], 1)
	})

	t.Run("deterministic", func(t *testing.T) {
		assert.Equal(t, svc.ParseAndCategorize(sampleStatement), svc.ParseAndCategorize(sampleStatement))
	})
}
