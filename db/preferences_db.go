package db

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/adamspd/StudyNotes/models"
	"github.com/adamspd/StudyNotes/utils"
)

func (db *DB) GetUserPreferences(userID int) (*models.UserPreferences, error) {
	utils.LogDB("Getting preferences for user %d", userID)

	var prefs models.UserPreferences
	err := db.QueryRow(`
		SELECT user_id, subject, main_category, min_frequency,
		       sort_by_frequency, concept_only, favorites_only, updated_at
		FROM user_preferences WHERE user_id = ?
	`, userID).Scan(
		&prefs.UserID, &prefs.Subject, &prefs.MainCategory, &prefs.MinFrequency,
		&prefs.SortByFrequency, &prefs.ConceptOnly, &prefs.FavoritesOnly, &prefs.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		utils.LogDB("No preferences found for user %d, creating defaults", userID)
		return db.CreateDefaultPreferences(userID)
	}

	if err != nil {
		utils.LogError("Failed to get preferences for user %d: %v", userID, err)
		return nil, err
	}

	return &prefs, nil
}

func (db *DB) CreateDefaultPreferences(userID int) (*models.UserPreferences, error) {
	utils.LogDB("Creating default preferences for user %d", userID)

	defaults := models.GetDefaultPreferences(userID)

	_, err := db.Exec(`
		INSERT INTO user_preferences (
			user_id, subject, main_category, min_frequency,
			sort_by_frequency, concept_only, favorites_only, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	`, userID, defaults.Subject, defaults.MainCategory, defaults.MinFrequency,
		defaults.SortByFrequency, defaults.ConceptOnly, defaults.FavoritesOnly)

	if err != nil {
		utils.LogError("Failed to create default preferences for user %d: %v", userID, err)
		return nil, err
	}

	return defaults, nil
}

// UpdateUserPreferences applies only the fields set in req.
func (db *DB) UpdateUserPreferences(userID int, req models.UserPreferencesRequest) (*models.UserPreferences, error) {
	utils.LogDB("Updating preferences for user %d", userID)
	start := time.Now()

	current, err := db.GetUserPreferences(userID)
	if err != nil {
		return nil, err
	}

	var setParts []string
	var args []interface{}

	if req.Subject != nil {
		setParts = append(setParts, "subject = ?")
		args = append(args, normalizeChoice(*req.Subject))
	}

	if req.MainCategory != nil {
		setParts = append(setParts, "main_category = ?")
		args = append(args, normalizeChoice(*req.MainCategory))
	}

	if req.MinFrequency != nil {
		setParts = append(setParts, "min_frequency = ?")
		args = append(args, *req.MinFrequency)
	}

	if req.SortByFrequency != nil {
		setParts = append(setParts, "sort_by_frequency = ?")
		args = append(args, *req.SortByFrequency)
	}

	if req.ConceptOnly != nil {
		setParts = append(setParts, "concept_only = ?")
		args = append(args, *req.ConceptOnly)
	}

	if req.FavoritesOnly != nil {
		setParts = append(setParts, "favorites_only = ?")
		args = append(args, *req.FavoritesOnly)
	}

	if len(setParts) == 0 {
		utils.LogDB("No preferences to update for user %d", userID)
		return current, nil
	}

	setParts = append(setParts, "updated_at = CURRENT_TIMESTAMP")
	args = append(args, userID)

	query := fmt.Sprintf("UPDATE user_preferences SET %s WHERE user_id = ?", strings.Join(setParts, ", "))

	result, err := db.Exec(query, args...)
	if err != nil {
		utils.LogError("Failed to update preferences for user %d: %v (%v)", userID, err, time.Since(start))
		return nil, err
	}

	rowsAffected, _ := result.RowsAffected()
	utils.LogDB("Updated preferences for user %d: %d rows affected (%v)", userID, rowsAffected, time.Since(start))

	return db.GetUserPreferences(userID)
}

// "전체" is stored as the empty selection.
func normalizeChoice(value string) string {
	value = strings.TrimSpace(value)
	if value == models.AllOption {
		return ""
	}
	return value
}
