package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/adamspd/StudyNotes/auth"
	"github.com/adamspd/StudyNotes/db"
	"github.com/adamspd/StudyNotes/jobs"
	"github.com/adamspd/StudyNotes/models"
	"github.com/adamspd/StudyNotes/notes"
	"github.com/adamspd/StudyNotes/utils"
)

// Invalidator drops the cached sheet so the next request refetches it.
type Invalidator interface {
	Invalidate()
}

// API wrapper to hold all handlers
type API struct {
	authHandlers        *AuthHandlers
	notesHandlers       *NotesHandlers
	favoritesHandlers   *FavoritesHandlers
	preferencesHandlers *PreferencesHandlers
	exportHandlers      *ExportHandlers
}

func NewAPI(database *db.DB, sessionStore *auth.SessionStore, service *notes.Service, renderer *notes.Renderer, sheet Invalidator, queue jobs.Queue) *API {
	return &API{
		authHandlers:        NewAuthHandlers(database, sessionStore),
		notesHandlers:       NewNotesHandlers(database, service, renderer, sheet),
		favoritesHandlers:   NewFavoritesHandlers(database),
		preferencesHandlers: NewPreferencesHandlers(database),
		exportHandlers:      NewExportHandlers(database, queue),
	}
}

func NewRouter(database *db.DB, sessionStore *auth.SessionStore, service *notes.Service, renderer *notes.Renderer, sheet Invalidator, queue jobs.Queue) http.Handler {
	api := NewAPI(database, sessionStore, service, renderer, sheet, queue)

	requireAuth := authMiddleware(sessionStore)
	optionalAuth := optionalAuthMiddleware(sessionStore)

	mux := http.NewServeMux()

	// Health check (no auth required)
	mux.HandleFunc("/health", healthCheck)

	// Auth endpoints (handle their own auth as needed)
	mux.HandleFunc("/auth/", api.authHandlers.HandleAuth)

	// Notes pages and data, personalised when a session is present
	mux.HandleFunc("/", optionalAuth(api.notesHandlers.HandleDashboard))
	mux.HandleFunc("/notes/document", optionalAuth(api.notesHandlers.HandleDocument))
	mux.HandleFunc("/api/filters", optionalAuth(api.notesHandlers.HandleFilters))
	mux.HandleFunc("/api/sections", optionalAuth(api.notesHandlers.HandleSections))
	mux.HandleFunc("/api/refresh", requireAuth(requirePermission((*models.Session).CanRefreshSheet)(api.notesHandlers.HandleRefresh)))

	mux.HandleFunc("/favorites", requireAuth(api.favoritesHandlers.HandleFavorites))
	mux.HandleFunc("/preferences", requireAuth(api.preferencesHandlers.HandlePreferences))

	mux.HandleFunc("/exports", requireAuth(api.exportHandlers.HandleExports))
	mux.HandleFunc("/exports/", requireAuth(api.exportHandlers.HandleExportByID))

	return corsMiddleware(loggingMiddleware(mux))
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	utils.LogHTTP("Health check requested")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		utils.LogError("Failed to encode response: %v", err)
	}
}
