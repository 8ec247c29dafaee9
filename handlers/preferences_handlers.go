package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/adamspd/StudyNotes/db"
	"github.com/adamspd/StudyNotes/models"
	"github.com/adamspd/StudyNotes/utils"
)

type PreferencesHandlers struct {
	db *db.DB
}

func NewPreferencesHandlers(database *db.DB) *PreferencesHandlers {
	return &PreferencesHandlers{db: database}
}

func (ph *PreferencesHandlers) HandlePreferences(w http.ResponseWriter, r *http.Request) {
	utils.LogHTTP("%s /preferences", r.Method)

	session := getSessionFromContext(r.Context())
	if session == nil {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	switch r.Method {
	case http.MethodGet:
		ph.getPreferences(w, session.UserID)
	case http.MethodPut:
		ph.updatePreferences(w, r, session.UserID)
	default:
		utils.LogHTTP("Method %s not allowed for /preferences", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (ph *PreferencesHandlers) getPreferences(w http.ResponseWriter, userID int) {
	preferences, err := ph.db.GetUserPreferences(userID)
	if err != nil {
		utils.LogError("Failed to get preferences for user %d: %v", userID, err)
		http.Error(w, "Failed to get preferences", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, preferences)
}

func (ph *PreferencesHandlers) updatePreferences(w http.ResponseWriter, r *http.Request, userID int) {
	var req models.UserPreferencesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.LogHTTP("Invalid JSON in preferences update request: %v", err)
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	if req.MinFrequency != nil {
		if err := utils.ValidateFrequency(*req.MinFrequency); err != nil {
			utils.LogHTTP("Invalid preference values: %v", err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	preferences, err := ph.db.UpdateUserPreferences(userID, req)
	if err != nil {
		utils.LogError("Failed to update preferences for user %d: %v", userID, err)
		http.Error(w, "Failed to update preferences", http.StatusInternalServerError)
		return
	}

	utils.LogHTTP("Updated preferences for user %d", userID)
	writeJSON(w, http.StatusOK, preferences)
}
