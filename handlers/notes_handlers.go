package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/adamspd/StudyNotes/db"
	"github.com/adamspd/StudyNotes/models"
	"github.com/adamspd/StudyNotes/notes"
	"github.com/adamspd/StudyNotes/utils"
)

type NotesHandlers struct {
	db       *db.DB
	notes    *notes.Service
	renderer *notes.Renderer
	sheet    Invalidator
}

func NewNotesHandlers(database *db.DB, service *notes.Service, renderer *notes.Renderer, sheet Invalidator) *NotesHandlers {
	return &NotesHandlers{
		db:       database,
		notes:    service,
		renderer: renderer,
		sheet:    sheet,
	}
}

// HandleDashboard serves the filter sidebar with the document framed next
// to it. Signed-in users get their saved filter until they submit the form.
func (nh *NotesHandlers) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	session := getSessionFromContext(r.Context())
	query := r.URL.Query()

	filter, err := parseFilter(query)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if session != nil && query.Get("applied") == "" {
		prefs, err := nh.db.GetUserPreferences(session.UserID)
		if err != nil {
			utils.LogError("Failed to load preferences for user %d: %v", session.UserID, err)
		} else {
			filter = prefs.Filter()
		}
	}

	data := notes.DashboardData{
		Title:  nh.notes.Title(),
		Filter: filter,
		User:   session,
	}

	result, err := nh.notes.Notes(r.Context(), filter, nh.favoritesFor(session))
	if err != nil {
		utils.LogError("Failed to load notes: %v", err)
		data.Error = notes.LoadFailedMessage
	} else {
		data.Filter = result.View.Filter
		data.Options = result.Options
		data.MissingColumns = result.MissingColumns
		data.RowCount = result.View.RowCount
		data.IframeHeight = notes.IframeHeight(result.View.RowCount)
		data.DocumentURL = "/notes/document?" + encodeFilter(result.View.Filter)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := nh.renderer.Dashboard(w, data); err != nil {
		utils.LogError("Failed to render dashboard: %v", err)
	}
}

// HandleDocument serves the printable notes document on its own.
func (nh *NotesHandlers) HandleDocument(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	result, ok := nh.load(w, r)
	if !ok {
		return
	}

	html, err := nh.renderer.DocumentString(result.View, true)
	if err != nil {
		utils.LogError("Failed to render document: %v", err)
		http.Error(w, "Failed to render document", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(html))
}

func (nh *NotesHandlers) HandleFilters(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	result, ok := nh.load(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"all_option":      models.AllOption,
		"options":         result.Options,
		"missing_columns": result.MissingColumns,
	})
}

func (nh *NotesHandlers) HandleSections(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	result, ok := nh.load(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, result.View)
}

func (nh *NotesHandlers) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	nh.sheet.Invalidate()
	if session := getSessionFromContext(r.Context()); session != nil {
		utils.LogSheet("Sheet cache invalidated by %s", session.Username)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Sheet cache cleared",
	})
}

// load parses the filter and loads the notes, answering the request itself
// when either fails.
func (nh *NotesHandlers) load(w http.ResponseWriter, r *http.Request) (*notes.Result, bool) {
	filter, err := parseFilter(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, false
	}

	session := getSessionFromContext(r.Context())
	result, err := nh.notes.Notes(r.Context(), filter, nh.favoritesFor(session))
	if err != nil {
		utils.LogError("Failed to load notes: %v", err)
		http.Error(w, notes.LoadFailedMessage, http.StatusBadGateway)
		return nil, false
	}
	return result, true
}

// favoritesFor returns nil for anonymous users so favorites-only is ignored.
func (nh *NotesHandlers) favoritesFor(session *models.Session) map[string]bool {
	if session == nil {
		return nil
	}
	set, err := nh.db.FavoriteSet(session.UserID)
	if err != nil {
		utils.LogError("Failed to load favorites for user %d: %v", session.UserID, err)
		return nil
	}
	return set
}

func parseFilter(q url.Values) (models.Filter, error) {
	filter := models.Filter{
		Subject:         strings.TrimSpace(q.Get("subject")),
		MainCategory:    strings.TrimSpace(q.Get("main_category")),
		SortByFrequency: parseFlag(q.Get("sort")),
		ConceptOnly:     parseFlag(q.Get("concept_only")),
		FavoritesOnly:   parseFlag(q.Get("favorites_only")),
	}

	if raw := q.Get("min_frequency"); raw != "" {
		min, err := strconv.Atoi(raw)
		if err != nil {
			return filter, fmt.Errorf("invalid min_frequency: %s", raw)
		}
		if err := utils.ValidateFrequency(min); err != nil {
			return filter, err
		}
		filter.MinFrequency = min
	}

	return filter.Normalize(), nil
}

func parseFlag(value string) bool {
	switch strings.ToLower(value) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}

// encodeFilter is the inverse of parseFilter, omitting defaults.
func encodeFilter(f models.Filter) string {
	q := url.Values{}
	if f.Subject != "" {
		q.Set("subject", f.Subject)
	}
	if f.MainCategory != "" {
		q.Set("main_category", f.MainCategory)
	}
	if f.MinFrequency > 0 {
		q.Set("min_frequency", strconv.Itoa(f.MinFrequency))
	}
	if f.SortByFrequency {
		q.Set("sort", "1")
	}
	if f.ConceptOnly {
		q.Set("concept_only", "1")
	}
	if f.FavoritesOnly {
		q.Set("favorites_only", "1")
	}
	return q.Encode()
}
