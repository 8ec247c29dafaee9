package models

import "time"

// Favorite marks a sheet row (by pk/fpk) for a user.
type Favorite struct {
	UserID    int       `json:"user_id"`
	RowKey    string    `json:"row_key"`
	CreatedAt time.Time `json:"created_at"`
}

type FavoriteRequest struct {
	RowKey string `json:"row_key"`
}
