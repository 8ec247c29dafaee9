package models

// AllOption is the dashboard label for "no restriction".
const AllOption = "전체"

// Filter is the sidebar selection applied to the sheet rows.
type Filter struct {
	Subject         string `json:"subject"`
	MainCategory    string `json:"main_category"`
	MinFrequency    int    `json:"min_frequency"`
	SortByFrequency bool   `json:"sort_by_frequency"`
	ConceptOnly     bool   `json:"concept_only"`
	FavoritesOnly   bool   `json:"favorites_only"`
}

// Normalize maps the "all" label to the empty selection.
func (f Filter) Normalize() Filter {
	if f.Subject == AllOption {
		f.Subject = ""
	}
	if f.MainCategory == AllOption {
		f.MainCategory = ""
	}
	return f
}

type FrequencyOption struct {
	Min   int    `json:"min"`
	Label string `json:"label"`
}

var FrequencyOptions = []FrequencyOption{
	{Min: 0, Label: AllOption},
	{Min: 3, Label: "3회 이상 출제"},
	{Min: 5, Label: "5회 이상 출제"},
}

// FilterOptions lists the choices offered for the current selection.
type FilterOptions struct {
	Subjects       []string          `json:"subjects"`
	MainCategories []string          `json:"main_categories"`
	Frequencies    []FrequencyOption `json:"frequencies"`
}
