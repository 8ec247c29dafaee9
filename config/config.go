// Package config reads the service settings from the environment.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/adamspd/StudyNotes/pdf"
	"github.com/adamspd/StudyNotes/sheet"
	"github.com/adamspd/StudyNotes/utils"
)

const DefaultTitle = "건축기사 요약 노트"

type Config struct {
	Port            string
	DBPath          string
	SheetID         string
	SheetGID        string
	SheetURL        string
	SheetFormat     string
	SheetCacheTTL   time.Duration
	CredentialsFile string
	ColumnsFile     string
	RedisURL        string
	ExportDir       string
	ChromeBin       string
	ChromeURL       string
	RefreshSchedule string
	Title           string
	LogLevel        string
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		utils.LogDebug("No .env file loaded: %v", err)
	}

	cfg := &Config{
		Port:            utils.GetEnvOrDefault("PORT", "8043"),
		DBPath:          utils.GetEnvOrDefault("DB_PATH", "./studynotes.db"),
		SheetID:         utils.GetEnvOrDefault("SHEET_ID", ""),
		SheetGID:        utils.GetEnvOrDefault("SHEET_GID", "0"),
		SheetURL:        utils.GetEnvOrDefault("SHEET_URL", ""),
		SheetFormat:     strings.ToLower(utils.GetEnvOrDefault("SHEET_FORMAT", sheet.FormatCSV)),
		SheetCacheTTL:   time.Duration(utils.GetEnvInt("SHEET_CACHE_TTL_SECONDS", 60)) * time.Second,
		CredentialsFile: utils.GetEnvOrDefault("GOOGLE_CREDENTIALS_FILE", ""),
		ColumnsFile:     utils.GetEnvOrDefault("COLUMNS_FILE", ""),
		RedisURL:        utils.GetEnvOrDefault("REDIS_URL", ""),
		ExportDir:       utils.GetEnvOrDefault("EXPORT_DIR", "./exports"),
		ChromeBin:       utils.GetEnvOrDefault("CHROME_BIN", ""),
		ChromeURL:       utils.GetEnvOrDefault("CHROME_URL", ""),
		RefreshSchedule: utils.GetEnvOrDefault("REFRESH_SCHEDULE", ""),
		Title:           utils.GetEnvOrDefault("PAGE_TITLE", DefaultTitle),
		LogLevel:        utils.GetEnvOrDefault("LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.SheetFormat != sheet.FormatCSV && c.SheetFormat != sheet.FormatXLSX {
		return fmt.Errorf("SHEET_FORMAT must be %q or %q, got %q", sheet.FormatCSV, sheet.FormatXLSX, c.SheetFormat)
	}
	if c.SheetCacheTTL < 0 {
		return fmt.Errorf("SHEET_CACHE_TTL_SECONDS must not be negative")
	}
	return nil
}

// ExportURL is the sheet download address, SHEET_URL winning over SHEET_ID.
func (c *Config) ExportURL() (string, error) {
	if c.SheetURL != "" {
		return c.SheetURL, nil
	}
	if c.SheetID == "" {
		return "", fmt.Errorf("SHEET_ID or SHEET_URL must be set")
	}
	return sheet.ExportURL(c.SheetID, c.SheetGID, c.SheetFormat), nil
}

func (c *Config) Columns() (sheet.Columns, error) {
	if c.ColumnsFile == "" {
		return sheet.DefaultColumns(), nil
	}
	return sheet.LoadColumns(c.ColumnsFile)
}

// Printer is the PDF printer setup. CHROME_URL attaches to a running
// browser, otherwise one is launched from CHROME_BIN.
func (c *Config) Printer() pdf.Config {
	return pdf.Config{Bin: c.ChromeBin, ControlURL: c.ChromeURL}
}
