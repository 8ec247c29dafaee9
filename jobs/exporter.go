package jobs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adamspd/StudyNotes/db"
	"github.com/adamspd/StudyNotes/models"
	"github.com/adamspd/StudyNotes/notes"
	"github.com/adamspd/StudyNotes/pdf"
	"github.com/adamspd/StudyNotes/utils"
)

// Exporter renders the notes document for a filter and prints it to PDF.
type Exporter struct {
	db       *db.DB
	notes    *notes.Service
	renderer *notes.Renderer
	printer  pdf.Printer
	dir      string
}

func NewExporter(database *db.DB, service *notes.Service, renderer *notes.Renderer, printer pdf.Printer, dir string) *Exporter {
	return &Exporter{
		db:       database,
		notes:    service,
		renderer: renderer,
		printer:  printer,
		dir:      dir,
	}
}

// PDF prints the document the dashboard would show for filter.
func (e *Exporter) PDF(ctx context.Context, filter models.Filter, favorites map[string]bool) ([]byte, error) {
	result, err := e.notes.Notes(ctx, filter, favorites)
	if err != nil {
		return nil, err
	}

	html, err := e.renderer.DocumentString(result.View, false)
	if err != nil {
		return nil, fmt.Errorf("failed to render document: %w", err)
	}

	return e.printer.Print(ctx, html)
}

// Run executes a stored export and records its outcome.
func (e *Exporter) Run(ctx context.Context, exportID string) error {
	start := time.Now()

	export, err := e.db.GetExport(exportID)
	if err != nil {
		return err
	}
	if export.Status == models.ExportDone {
		utils.LogJob("Export %s already done, skipping", exportID)
		return nil
	}

	if err := e.db.MarkExportRunning(exportID); err != nil {
		return err
	}

	path, err := e.write(ctx, export)
	if err != nil {
		utils.LogError("Export %s failed after %v: %v", exportID, time.Since(start), err)
		if markErr := e.db.MarkExportFailed(exportID, err); markErr != nil {
			utils.LogError("Failed to record export failure: %v", markErr)
		}
		return err
	}

	if err := e.db.MarkExportDone(exportID, path); err != nil {
		return err
	}

	utils.LogJob("Export %s written to %s in %v", exportID, path, time.Since(start))
	return nil
}

func (e *Exporter) write(ctx context.Context, export *models.Export) (string, error) {
	var favorites map[string]bool
	if export.UserID != nil {
		set, err := e.db.FavoriteSet(*export.UserID)
		if err != nil {
			return "", err
		}
		favorites = set
	}

	data, err := e.PDF(ctx, export.Filter, favorites)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create export dir: %w", err)
	}

	path := filepath.Join(e.dir, export.ID+".pdf")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write export: %w", err)
	}
	return path, nil
}
