package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/adamspd/StudyNotes/models"
	"github.com/adamspd/StudyNotes/utils"
)

// CreateExport records a pending PDF export. userID may be nil for exports
// started from the command line.
func (db *DB) CreateExport(userID *int, filter models.Filter) (*models.Export, error) {
	filterJSON, err := json.Marshal(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal export filter: %w", err)
	}

	id := uuid.NewString()
	utils.LogDB("Creating export %s", id)

	_, err = db.Exec(`
		INSERT INTO exports (id, user_id, filter, status)
		VALUES (?, ?, ?, ?)
	`, id, userID, string(filterJSON), models.ExportPending)
	if err != nil {
		utils.LogError("CreateExport failed: %v", err)
		return nil, err
	}

	return db.GetExport(id)
}

func (db *DB) GetExport(id string) (*models.Export, error) {
	var export models.Export
	var userID sql.NullInt64
	var filterJSON string
	var finishedAt sql.NullTime

	err := db.QueryRow(`
		SELECT id, user_id, filter, status, file_path, error, created_at, finished_at
		FROM exports WHERE id = ?
	`, id).Scan(&export.ID, &userID, &filterJSON, &export.Status, &export.FilePath,
		&export.Error, &export.CreatedAt, &finishedAt)

	if err == sql.ErrNoRows {
		utils.LogDB("Export %s not found", id)
		return nil, ErrNotFound
	}
	if err != nil {
		utils.LogError("GetExport(%s) failed: %v", id, err)
		return nil, err
	}

	if err := json.Unmarshal([]byte(filterJSON), &export.Filter); err != nil {
		return nil, fmt.Errorf("failed to parse filter of export %s: %w", id, err)
	}
	if userID.Valid {
		uid := int(userID.Int64)
		export.UserID = &uid
	}
	if finishedAt.Valid {
		t := finishedAt.Time
		export.FinishedAt = &t
	}

	return &export, nil
}

func (db *DB) MarkExportRunning(id string) error {
	return db.setExportStatus(id, models.ExportRunning, "", "", false)
}

func (db *DB) MarkExportDone(id, filePath string) error {
	return db.setExportStatus(id, models.ExportDone, filePath, "", true)
}

func (db *DB) MarkExportFailed(id string, cause error) error {
	return db.setExportStatus(id, models.ExportFailed, "", cause.Error(), true)
}

func (db *DB) setExportStatus(id, status, filePath, message string, finished bool) error {
	utils.LogDB("Export %s -> %s", id, status)

	var finishedAt interface{}
	if finished {
		finishedAt = time.Now().UTC()
	}

	result, err := db.Exec(`
		UPDATE exports SET status = ?, file_path = ?, error = ?, finished_at = ?
		WHERE id = ?
	`, status, filePath, message, finishedAt, id)
	if err != nil {
		utils.LogError("Failed to set export %s to %s: %v", id, status, err)
		return err
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
