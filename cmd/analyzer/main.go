package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/convector/statement-analyzer/internal/domain/analysis"
	"github.com/convector/statement-analyzer/internal/domain/extract"
	"github.com/convector/statement-analyzer/pkg/config"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "analyzer",
		Short: "Bank statement analyzer",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newAnalyzeCommand())
	return rootCmd
}

func newAnalyzeCommand() *cobra.Command {
	var formatFlag string

	cmd := &cobra.Command{
		Use:   "analyze <file>",
		Short: "Analyze a bank statement and generate Excel and PDF reports",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			format, err := resolveFormat(formatFlag, path)
			if err != nil {
				return err
			}

			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", path, err)
			}
			defer f.Close()

			logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
			svc := analysis.NewService(config.Load(), logger)

			result, err := svc.Process(cmd.Context(), f, format, analysis.Record{
				FileName: filepath.Base(path),
			})
			if err != nil {
				return err
			}

			if result.Transactions == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No transactions found in the document.")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Excel report: %s\n", result.ExcelPath)
			fmt.Fprintf(cmd.OutOrStdout(), "PDF report:   %s\n", result.PDFPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&formatFlag, "format", "f", "", "source format: pdf, image, doc, spreadsheet or plain (default: by extension)")
	return cmd
}

// resolveFormat picks the declared format, falling back to the file
// extension when the flag is empty.
func resolveFormat(flag, path string) (extract.Format, error) {
	if flag != "" {
		switch extract.Format(flag) {
		case extract.FormatPDF, extract.FormatImage, extract.FormatDoc, extract.FormatSpreadsheet, extract.FormatPlain:
			return extract.Format(flag), nil
		}
		return "", fmt.Errorf("unknown format %q", flag)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return extract.FormatPDF, nil
	case ".png", ".jpg", ".jpeg", ".tiff", ".bmp":
		return extract.FormatImage, nil
	case ".doc", ".docx":
		return extract.FormatDoc, nil
	case ".xls", ".xlsx":
		return extract.FormatSpreadsheet, nil
	default:
		return extract.FormatPlain, nil
	}
}
