package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SHEET_ID", "abc")
	t.Setenv("SHEET_URL", "")
	t.Setenv("PORT", "")
	t.Setenv("SHEET_FORMAT", "")
	t.Setenv("SHEET_CACHE_TTL_SECONDS", "")
	t.Setenv("PAGE_TITLE", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8043", cfg.Port)
	assert.Equal(t, "csv", cfg.SheetFormat)
	assert.Equal(t, time.Minute, cfg.SheetCacheTTL)
	assert.Equal(t, DefaultTitle, cfg.Title)

	url, err := cfg.ExportURL()
	require.NoError(t, err)
	assert.Contains(t, url, "/d/abc/export?format=csv")
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SHEET_URL", "https://example.com/notes.xlsx")
	t.Setenv("SHEET_FORMAT", "XLSX")
	t.Setenv("SHEET_CACHE_TTL_SECONDS", "5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "xlsx", cfg.SheetFormat)
	assert.Equal(t, 5*time.Second, cfg.SheetCacheTTL)
	url, err := cfg.ExportURL()
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/notes.xlsx", url)
}

func TestLoadRejectsUnknownFormat(t *testing.T) {
	t.Setenv("SHEET_FORMAT", "ods")

	_, err := Load()
	assert.Error(t, err)
}

func TestExportURLRequiresSheet(t *testing.T) {
	cfg := &Config{SheetFormat: "csv"}
	_, err := cfg.ExportURL()
	assert.Error(t, err)
}

func TestPrinterConfig(t *testing.T) {
	t.Setenv("CHROME_BIN", "/usr/bin/chromium")
	t.Setenv("CHROME_URL", "ws://127.0.0.1:9222/devtools/browser/abc")

	cfg, err := Load()
	require.NoError(t, err)

	printer := cfg.Printer()
	assert.Equal(t, "/usr/bin/chromium", printer.Bin)
	assert.Equal(t, "ws://127.0.0.1:9222/devtools/browser/abc", printer.ControlURL)
}
