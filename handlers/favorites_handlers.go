package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/adamspd/StudyNotes/db"
	"github.com/adamspd/StudyNotes/models"
	"github.com/adamspd/StudyNotes/utils"
)

type FavoritesHandlers struct {
	db *db.DB
}

func NewFavoritesHandlers(database *db.DB) *FavoritesHandlers {
	return &FavoritesHandlers{db: database}
}

func (fh *FavoritesHandlers) HandleFavorites(w http.ResponseWriter, r *http.Request) {
	utils.LogHTTP("%s /favorites", r.Method)

	session := getSessionFromContext(r.Context())
	if session == nil {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	switch r.Method {
	case http.MethodGet:
		fh.listFavorites(w, session.UserID)
	case http.MethodPost:
		fh.addFavorite(w, r, session.UserID)
	case http.MethodDelete:
		fh.removeFavorite(w, r, session.UserID)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (fh *FavoritesHandlers) listFavorites(w http.ResponseWriter, userID int) {
	favorites, err := fh.db.ListFavorites(userID)
	if err != nil {
		http.Error(w, "Failed to fetch favorites", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"favorites": favorites,
	})
}

func (fh *FavoritesHandlers) addFavorite(w http.ResponseWriter, r *http.Request, userID int) {
	var req models.FavoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.RowKey) == "" {
		http.Error(w, "row_key is required", http.StatusBadRequest)
		return
	}

	if err := fh.db.AddFavorite(userID, req.RowKey); err != nil {
		http.Error(w, "Failed to add favorite", http.StatusInternalServerError)
		return
	}

	utils.LogHTTP("User %d favorited %s", userID, req.RowKey)
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"row_key": strings.TrimSpace(req.RowKey),
		"message": "Favorite added",
	})
}

// removeFavorite takes the key from ?row_key= or a JSON body.
func (fh *FavoritesHandlers) removeFavorite(w http.ResponseWriter, r *http.Request, userID int) {
	rowKey := r.URL.Query().Get("row_key")
	if rowKey == "" {
		var req models.FavoriteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err == nil {
			rowKey = req.RowKey
		}
	}
	if strings.TrimSpace(rowKey) == "" {
		http.Error(w, "row_key is required", http.StatusBadRequest)
		return
	}

	err := fh.db.RemoveFavorite(userID, strings.TrimSpace(rowKey))
	if errors.Is(err, db.ErrNotFound) {
		http.Error(w, "Favorite not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "Failed to remove favorite", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Favorite removed",
	})
}
