package models

import (
	"strings"
	"time"
)

// Row is one sheet record. Missing cells are already "".
type Row struct {
	Index         int    `json:"index"`
	Subject       string `json:"subject"`
	MainCategory  string `json:"main_category"`
	SubCategory   string `json:"sub_category"`
	SubNumber     string `json:"sub_number"`
	Label         string `json:"label"`
	LabelNumber   string `json:"label_number"`
	Concept       string `json:"concept"`
	ConceptImage  string `json:"concept_image"`
	Problem       string `json:"problem"`
	ProblemNumber string `json:"problem_number"`
	ProblemImage  string `json:"problem_image"`
	Answer        string `json:"answer"`
	Years         string `json:"years"`
	Frequency     int    `json:"frequency"`
	PK            string `json:"pk"`
	FPK           string `json:"fpk"`
	GroupID       string `json:"group_id"`
}

// Key identifies the row for favorites. Empty when the row has no pk/fpk.
func (r Row) Key() string {
	if pk := strings.TrimSpace(r.PK); !IsBlank(pk) {
		return pk
	}
	if fpk := strings.TrimSpace(r.FPK); !IsBlank(fpk) {
		return fpk
	}
	return ""
}

// Table is a parsed sheet export.
type Table struct {
	Rows           []Row     `json:"rows"`
	Columns        []string  `json:"columns"`
	MissingColumns []string  `json:"missing_columns,omitempty"`
	Source         string    `json:"source"`
	LoadedAt       time.Time `json:"loaded_at"`
}

// IsBlank treats whitespace and the literal "nan" left by spreadsheet exports as empty.
func IsBlank(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || strings.EqualFold(s, "nan")
}
