package sheet

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Columns maps note fields to sheet header names.
type Columns struct {
	Subject       string `yaml:"subject"`
	MainCategory  string `yaml:"main_category"`
	SubCategory   string `yaml:"sub_category"`
	SubNumber     string `yaml:"sub_number"`
	Label         string `yaml:"label"`
	LabelNumber   string `yaml:"label_number"`
	Concept       string `yaml:"concept"`
	ConceptImage  string `yaml:"concept_image"`
	Problem       string `yaml:"problem"`
	ProblemNumber string `yaml:"problem_number"`
	ProblemImage  string `yaml:"problem_image"`
	Answer        string `yaml:"answer"`
	Years         string `yaml:"years"`
	Frequency     string `yaml:"frequency"`
	PK            string `yaml:"pk"`
	FPK           string `yaml:"fpk"`
}

// DefaultColumns returns the headers used by the architecture exam sheet.
func DefaultColumns() Columns {
	return Columns{
		Subject:       "과목",
		MainCategory:  "대카테고리",
		SubCategory:   "소카테고리",
		SubNumber:     "숫소",
		Label:         "구분",
		LabelNumber:   "숫구",
		Concept:       "개념",
		ConceptImage:  "개념이미지",
		Problem:       "문제",
		ProblemNumber: "숫문",
		ProblemImage:  "문제이미지",
		Answer:        "정답",
		Years:         "출제년도",
		Frequency:     "개념빈출",
		PK:            "pk",
		FPK:           "fpk",
	}
}

// LoadColumns overlays a YAML file on the defaults. An empty path returns the defaults.
func LoadColumns(path string) (Columns, error) {
	cols := DefaultColumns()
	if path == "" {
		return cols, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cols, fmt.Errorf("failed to read column map: %w", err)
	}
	if err := yaml.Unmarshal(data, &cols); err != nil {
		return cols, fmt.Errorf("failed to parse column map %s: %w", path, err)
	}
	return cols, nil
}

// Headers lists every mapped header in field order.
func (c Columns) Headers() []string {
	return []string{
		c.Subject, c.MainCategory, c.SubCategory, c.SubNumber,
		c.Label, c.LabelNumber, c.Concept, c.ConceptImage,
		c.Problem, c.ProblemNumber, c.ProblemImage, c.Answer,
		c.Years, c.Frequency, c.PK, c.FPK,
	}
}
