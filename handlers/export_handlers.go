package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/adamspd/StudyNotes/db"
	"github.com/adamspd/StudyNotes/jobs"
	"github.com/adamspd/StudyNotes/models"
	"github.com/adamspd/StudyNotes/utils"
)

type ExportHandlers struct {
	db    *db.DB
	queue jobs.Queue
}

func NewExportHandlers(database *db.DB, queue jobs.Queue) *ExportHandlers {
	return &ExportHandlers{db: database, queue: queue}
}

func (eh *ExportHandlers) HandleExports(w http.ResponseWriter, r *http.Request) {
	utils.LogHTTP("%s /exports", r.Method)

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	session := getSessionFromContext(r.Context())
	if session == nil {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	var req models.ExportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if err := utils.ValidateFrequency(req.Filter.MinFrequency); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	userID := session.UserID
	export, err := eh.db.CreateExport(&userID, req.Filter.Normalize())
	if err != nil {
		http.Error(w, "Failed to create export", http.StatusInternalServerError)
		return
	}

	if err := eh.queue.EnqueueExport(export.ID); err != nil {
		utils.LogError("Failed to queue export %s: %v", export.ID, err)
		if markErr := eh.db.MarkExportFailed(export.ID, err); markErr != nil {
			utils.LogError("Failed to record export failure: %v", markErr)
		}
		http.Error(w, "Failed to queue export", http.StatusInternalServerError)
		return
	}

	utils.LogHTTP("Export %s queued for user %s", export.ID, session.Username)
	writeJSON(w, http.StatusAccepted, export)
}

// HandleExportByID serves /exports/{id} and /exports/{id}/file.
func (eh *ExportHandlers) HandleExportByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	path := strings.Trim(strings.TrimPrefix(r.URL.Path, "/exports/"), "/")
	parts := strings.Split(path, "/")
	if parts[0] == "" || len(parts) > 2 || (len(parts) == 2 && parts[1] != "file") {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}

	export, ok := eh.ownedExport(w, r, parts[0])
	if !ok {
		return
	}

	if len(parts) == 1 {
		writeJSON(w, http.StatusOK, export)
		return
	}

	if export.Status != models.ExportDone {
		http.Error(w, fmt.Sprintf("Export is %s", export.Status), http.StatusConflict)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="notes-%s.pdf"`, export.ID))
	http.ServeFile(w, r, export.FilePath)
}

func (eh *ExportHandlers) ownedExport(w http.ResponseWriter, r *http.Request, id string) (*models.Export, bool) {
	session := getSessionFromContext(r.Context())
	if session == nil {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return nil, false
	}

	export, err := eh.db.GetExport(id)
	if errors.Is(err, db.ErrNotFound) {
		http.Error(w, "Export not found", http.StatusNotFound)
		return nil, false
	}
	if err != nil {
		http.Error(w, "Failed to fetch export", http.StatusInternalServerError)
		return nil, false
	}

	owner := export.UserID != nil && *export.UserID == session.UserID
	if !owner && session.Role != models.RoleAdmin {
		http.Error(w, "Insufficient permissions", http.StatusForbidden)
		return nil, false
	}
	return export, true
}
