package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds all application configuration. It is built once by the
// process entry point and passed down explicitly; nothing in the pipeline
// reads the environment on its own.
type Config struct {
	Output Output
	Report Report
	OCR    OCR
}

// Output controls where generated report files land.
type Output struct {
	Dir string
}

// Report holds branding used by the report renderers. Logo embedding is
// decorative: a missing or unreadable file is logged and skipped.
type Report struct {
	CompanyName string
	Tagline     string
	LogoPath    string
}

// OCR configures the external OCR binary used for image statements.
type OCR struct {
	TesseractBin string
}

// Load reads configuration from the environment, after merging in a .env
// file when one exists in the working directory.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Output: Output{
			Dir: getEnv("OUTPUT_DIR", "uploads"),
		},
		Report: Report{
			CompanyName: getEnv("REPORT_COMPANY_NAME", "E-Faws Tech Pvt Limited"),
			Tagline:     getEnv("REPORT_TAGLINE", "Bank Statement Analyzer"),
			LogoPath:    getEnv("REPORT_LOGO_PATH", ""),
		},
		OCR: OCR{
			TesseractBin: getEnv("TESSERACT_BIN", "tesseract"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
