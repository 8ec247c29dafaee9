package models

import "time"

// UserPreferences is the saved default filter of a user
type UserPreferences struct {
	UserID          int       `json:"user_id"`
	Subject         string    `json:"subject"`
	MainCategory    string    `json:"main_category"`
	MinFrequency    int       `json:"min_frequency"`
	SortByFrequency bool      `json:"sort_by_frequency"`
	ConceptOnly     bool      `json:"concept_only"`
	FavoritesOnly   bool      `json:"favorites_only"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// UserPreferencesRequest for partial updates
type UserPreferencesRequest struct {
	Subject         *string `json:"subject,omitempty"`
	MainCategory    *string `json:"main_category,omitempty"`
	MinFrequency    *int    `json:"min_frequency,omitempty"`
	SortByFrequency *bool   `json:"sort_by_frequency,omitempty"`
	ConceptOnly     *bool   `json:"concept_only,omitempty"`
	FavoritesOnly   *bool   `json:"favorites_only,omitempty"`
}

// GetDefaultPreferences returns the unfiltered view
func GetDefaultPreferences(userID int) *UserPreferences {
	return &UserPreferences{
		UserID:    userID,
		UpdatedAt: time.Now(),
	}
}

// Filter converts the saved preferences into a dashboard filter.
func (p *UserPreferences) Filter() Filter {
	return Filter{
		Subject:         p.Subject,
		MainCategory:    p.MainCategory,
		MinFrequency:    p.MinFrequency,
		SortByFrequency: p.SortByFrequency,
		ConceptOnly:     p.ConceptOnly,
		FavoritesOnly:   p.FavoritesOnly,
	}
}
