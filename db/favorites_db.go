package db

import (
	"fmt"
	"strings"
	"time"

	"github.com/adamspd/StudyNotes/models"
	"github.com/adamspd/StudyNotes/utils"
)

func (db *DB) ListFavorites(userID int) ([]models.Favorite, error) {
	utils.LogDB("Listing favorites for user %d", userID)
	start := time.Now()

	rows, err := db.Query(`
		SELECT user_id, row_key, created_at
		FROM favorites WHERE user_id = ? ORDER BY created_at, row_key
	`, userID)
	if err != nil {
		utils.LogError("ListFavorites(%d) query failed: %v", userID, err)
		return nil, err
	}
	defer rows.Close()

	favorites := []models.Favorite{}
	for rows.Next() {
		var fav models.Favorite
		if err := rows.Scan(&fav.UserID, &fav.RowKey, &fav.CreatedAt); err != nil {
			utils.LogError("Failed to scan favorite row: %v", err)
			return nil, err
		}
		favorites = append(favorites, fav)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	utils.LogDB("ListFavorites(%d): %d favorites in %v", userID, len(favorites), time.Since(start))
	return favorites, nil
}

// FavoriteSet returns the user's favorite row keys as a lookup set.
func (db *DB) FavoriteSet(userID int) (map[string]bool, error) {
	favorites, err := db.ListFavorites(userID)
	if err != nil {
		return nil, err
	}
	set := make(map[string]bool, len(favorites))
	for _, fav := range favorites {
		set[fav.RowKey] = true
	}
	return set, nil
}

// AddFavorite is idempotent: adding an existing favorite is not an error.
func (db *DB) AddFavorite(userID int, rowKey string) error {
	rowKey = strings.TrimSpace(rowKey)
	if rowKey == "" {
		return fmt.Errorf("row_key is required")
	}

	utils.LogDB("Adding favorite %s for user %d", rowKey, userID)
	_, err := db.Exec(`
		INSERT OR IGNORE INTO favorites (user_id, row_key) VALUES (?, ?)
	`, userID, rowKey)
	if err != nil {
		utils.LogError("AddFavorite(%d, %s) failed: %v", userID, rowKey, err)
		return err
	}
	return nil
}

func (db *DB) RemoveFavorite(userID int, rowKey string) error {
	utils.LogDB("Removing favorite %s for user %d", rowKey, userID)

	result, err := db.Exec("DELETE FROM favorites WHERE user_id = ? AND row_key = ?", userID, rowKey)
	if err != nil {
		utils.LogError("RemoveFavorite(%d, %s) failed: %v", userID, rowKey, err)
		return err
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
